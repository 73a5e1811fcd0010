// Package input turns SDL2 events into viewer events.
package input

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/kv6view/internal/controls"
)

// EventType identifies a processed input event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventFocusGained
	EventFocusLost
	EventKeyDown
	EventKeyUp
	EventMouseMove
)

// Event represents a processed input event.
type Event struct {
	Type    EventType
	Key     string          // SDL key name
	Action  controls.Action // Bound action, ActionNone when unbound
	Width   int
	Height  int
	MouseDX int32 // Relative motion
	MouseDY int32
}

// Input polls SDL events and resolves key presses through bindings.
type Input struct {
	bindings *controls.Bindings
	events   []Event
}

// New creates a new input handler.
func New(bindings *controls.Bindings) *Input {
	return &Input{
		bindings: bindings,
		events:   make([]Event, 0, 16),
	}
}

// Update polls SDL events and converts them to viewer events.
// Returns true if the window was closed.
func (i *Input) Update() bool {
	i.events = i.events[:0]
	quit := false

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.events = append(i.events, Event{Type: EventQuit})
			quit = true

		case *sdl.WindowEvent:
			switch e.Event {
			case sdl.WINDOWEVENT_SIZE_CHANGED:
				i.events = append(i.events, Event{
					Type:   EventWindowResize,
					Width:  int(e.Data1),
					Height: int(e.Data2),
				})
			case sdl.WINDOWEVENT_FOCUS_GAINED:
				i.events = append(i.events, Event{Type: EventFocusGained})
			case sdl.WINDOWEVENT_FOCUS_LOST:
				i.events = append(i.events, Event{Type: EventFocusLost})
			}

		case *sdl.KeyboardEvent:
			if e.Repeat != 0 {
				continue
			}
			name := sdl.GetScancodeName(e.Keysym.Scancode)
			ev := Event{
				Type:   EventKeyUp,
				Key:    name,
				Action: i.bindings.Lookup(name),
			}
			if e.Type == sdl.KEYDOWN {
				ev.Type = EventKeyDown
			}
			i.events = append(i.events, ev)

		case *sdl.MouseMotionEvent:
			i.events = append(i.events, Event{
				Type:    EventMouseMove,
				MouseDX: e.XRel,
				MouseDY: e.YRel,
			})
		}
	}

	return quit
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}
