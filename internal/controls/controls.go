// Package controls maps key names to viewer actions.
package controls

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/Faultbox/kv6view/internal/engine/camera"
)

// Action is a logical input action.
type Action int

// Viewer actions.
const (
	ActionNone Action = iota
	ActionForward
	ActionBackward
	ActionLeft
	ActionRight
	ActionUp
	ActionDown
	ActionBoost
	ActionMoveLight
	ActionToggleLight
	ActionScreenshot
	ActionExit
)

var actionNames = map[Action]string{
	ActionForward:     "forward",
	ActionBackward:    "backward",
	ActionLeft:        "left",
	ActionRight:       "right",
	ActionUp:          "up",
	ActionDown:        "down",
	ActionBoost:       "boost",
	ActionMoveLight:   "move_light",
	ActionToggleLight: "toggle_light",
	ActionScreenshot:  "screenshot",
	ActionExit:        "exit",
}

var movements = map[Action]camera.Movement{
	ActionForward:  camera.MoveForward,
	ActionBackward: camera.MoveBackward,
	ActionLeft:     camera.MoveLeft,
	ActionRight:    camera.MoveRight,
	ActionUp:       camera.MoveUp,
	ActionDown:     camera.MoveDown,
	ActionBoost:    camera.MoveBoost,
}

// String returns the configuration name of the action.
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "none"
}

// Movement returns the camera movement intent driven by the action.
func (a Action) Movement() (camera.Movement, bool) {
	m, ok := movements[a]
	return m, ok
}

// ParseAction looks up an action by its configuration name.
func ParseAction(name string) (Action, error) {
	for a, n := range actionNames {
		if n == name {
			return a, nil
		}
	}
	return ActionNone, fmt.Errorf("unknown action %q", name)
}

// Binding errors.
var (
	ErrUnboundKey   = errors.New("empty key name")
	ErrDuplicateKey = errors.New("key bound to more than one action")
)

// Bindings resolves key names to actions. Key names are compared without
// regard to case, so "left shift" matches SDL's "Left Shift".
type Bindings struct {
	keys map[string]Action
}

// NewBindings builds bindings from an action name -> key name table.
func NewBindings(table map[string]string) (*Bindings, error) {
	b := &Bindings{keys: make(map[string]Action, len(table))}

	// Sorted so errors do not depend on map order.
	names := make([]string, 0, len(table))
	for name := range table {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		action, err := ParseAction(name)
		if err != nil {
			return nil, err
		}
		key := normalizeKey(table[name])
		if key == "" {
			return nil, fmt.Errorf("%w for action %s", ErrUnboundKey, name)
		}
		if prev, ok := b.keys[key]; ok {
			return nil, fmt.Errorf("%w: %q (%s, %s)", ErrDuplicateKey, table[name], prev, action)
		}
		b.keys[key] = action
	}
	return b, nil
}

// Lookup returns the action bound to the named key, or ActionNone.
func (b *Bindings) Lookup(keyName string) Action {
	return b.keys[normalizeKey(keyName)]
}

// KeyFor returns the normalized key name bound to action, or "".
func (b *Bindings) KeyFor(action Action) string {
	for k, a := range b.keys {
		if a == action {
			return k
		}
	}
	return ""
}

func normalizeKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
