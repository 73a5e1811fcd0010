package controls

import (
	"errors"
	"testing"

	"github.com/Faultbox/kv6view/internal/engine/camera"
)

func defaultTable() map[string]string {
	return map[string]string{
		"forward":      "W",
		"backward":     "S",
		"left":         "A",
		"right":        "D",
		"up":           "Space",
		"down":         "Left Ctrl",
		"boost":        "Left Shift",
		"move_light":   "L",
		"toggle_light": "K",
		"screenshot":   "F12",
		"exit":         "Escape",
	}
}

func TestNewBindings_Lookup(t *testing.T) {
	b, err := NewBindings(defaultTable())
	if err != nil {
		t.Fatalf("NewBindings failed: %v", err)
	}

	tests := []struct {
		key  string
		want Action
	}{
		{"W", ActionForward},
		{"w", ActionForward},
		{"Left Shift", ActionBoost},
		{"left shift", ActionBoost},
		{"Escape", ActionExit},
		{"Q", ActionNone},
		{"", ActionNone},
	}

	for _, tc := range tests {
		if got := b.Lookup(tc.key); got != tc.want {
			t.Errorf("Lookup(%q) = %s, want %s", tc.key, got, tc.want)
		}
	}

	if got := b.KeyFor(ActionToggleLight); got != "k" {
		t.Errorf("KeyFor(toggle_light) = %q, want %q", got, "k")
	}
}

func TestNewBindings_Errors(t *testing.T) {
	dup := defaultTable()
	dup["boost"] = "w"
	if _, err := NewBindings(dup); !errors.Is(err, ErrDuplicateKey) {
		t.Errorf("expected ErrDuplicateKey, got %v", err)
	}

	empty := defaultTable()
	empty["exit"] = "  "
	if _, err := NewBindings(empty); !errors.Is(err, ErrUnboundKey) {
		t.Errorf("expected ErrUnboundKey, got %v", err)
	}

	unknown := defaultTable()
	unknown["jump"] = "J"
	if _, err := NewBindings(unknown); err == nil {
		t.Error("expected error for unknown action")
	}
}

func TestAction_Movement(t *testing.T) {
	tests := []struct {
		action Action
		want   camera.Movement
		ok     bool
	}{
		{ActionForward, camera.MoveForward, true},
		{ActionBackward, camera.MoveBackward, true},
		{ActionLeft, camera.MoveLeft, true},
		{ActionRight, camera.MoveRight, true},
		{ActionUp, camera.MoveUp, true},
		{ActionDown, camera.MoveDown, true},
		{ActionBoost, camera.MoveBoost, true},
		{ActionMoveLight, 0, false},
		{ActionExit, 0, false},
		{ActionNone, 0, false},
	}

	for _, tc := range tests {
		got, ok := tc.action.Movement()
		if ok != tc.ok || got != tc.want {
			t.Errorf("%s.Movement() = (%07b, %v), want (%07b, %v)", tc.action, got, ok, tc.want, tc.ok)
		}
	}
}

func TestParseAction(t *testing.T) {
	for a := ActionForward; a <= ActionExit; a++ {
		got, err := ParseAction(a.String())
		if err != nil || got != a {
			t.Errorf("ParseAction(%q) = (%v, %v), want %v", a.String(), got, err, a)
		}
	}
}
