// Package session holds the viewer state driven by input: the camera, the
// light, focus and pending requests. It has no window or GL dependency.
package session

import (
	"github.com/Faultbox/kv6view/internal/controls"
	"github.com/Faultbox/kv6view/internal/engine/camera"
	"github.com/Faultbox/kv6view/internal/engine/lighting"
	"github.com/Faultbox/kv6view/pkg/math"
)

// Config holds the initial session state.
type Config struct {
	CameraPosition math.Vec3
	CameraForward  math.Vec3
	Camera         camera.Settings

	LightDirection math.Vec3 // Zero uses the default direction
	LightDistance  float32
	LightVisible   bool

	TeamColor [3]uint8
}

// Session is the viewer state between frames.
type Session struct {
	Camera    *camera.FreeCamera
	Light     *lighting.Light
	TeamColor [3]uint8

	focused    bool
	running    bool
	screenshot bool
}

// View is what a frame needs to draw the model and the light marker.
type View struct {
	Projection math.Mat4
	View       math.Mat4

	LightDir math.Vec3 // Light direction for the model

	MarkerVisible  bool
	MarkerModel    math.Mat4
	MarkerLightDir math.Vec3
}

// New creates a running, focused session.
func New(cfg Config) *Session {
	return &Session{
		Camera:    camera.NewFreeCamera(cfg.CameraPosition, cfg.CameraForward, cfg.Camera),
		Light:     lighting.NewLight(cfg.LightDirection, cfg.LightDistance, cfg.LightVisible),
		TeamColor: cfg.TeamColor,
		focused:   true,
		running:   true,
	}
}

// Running reports whether the viewer should keep going.
func (s *Session) Running() bool {
	return s.running
}

// Quit stops the session.
func (s *Session) Quit() {
	s.running = false
}

// Focused reports whether the window has input focus.
func (s *Session) Focused() bool {
	return s.focused
}

// SetFocus records a focus change. Losing focus drops held keys and pending
// mouse motion. Returns true when the focus state changed.
func (s *Session) SetFocus(focused bool) bool {
	if s.focused == focused {
		return false
	}
	s.focused = focused
	if !focused {
		s.Camera.Release()
	}
	return true
}

// HandleAction applies a bound key press or release. Input is ignored while
// unfocused, except for releases which are always safe.
func (s *Session) HandleAction(a controls.Action, pressed bool) {
	if !s.focused && pressed {
		return
	}

	if m, ok := a.Movement(); ok {
		s.Camera.HandleKey(m, pressed)
		return
	}
	if !pressed {
		return
	}

	switch a {
	case controls.ActionMoveLight:
		s.Light.PointFrom(s.Camera.Forward())
	case controls.ActionToggleLight:
		s.Light.Toggle()
	case controls.ActionScreenshot:
		s.screenshot = true
	case controls.ActionExit:
		s.running = false
	}
}

// HandleMouse feeds relative mouse motion to the camera while focused.
func (s *Session) HandleMouse(dx, dy float32) {
	if !s.focused {
		return
	}
	s.Camera.HandleMouse(dx, dy)
}

// Tick advances the simulation by one fixed step.
func (s *Session) Tick() {
	s.Camera.Update()
}

// TakeScreenshot returns whether a screenshot was requested and clears the
// request.
func (s *Session) TakeScreenshot() bool {
	req := s.screenshot
	s.screenshot = false
	return req
}

// View returns the matrices and light vectors for a frame drawn fraction of a
// tick after the last Tick.
func (s *Session) View(fraction, aspect float32) View {
	return View{
		Projection:     s.Camera.ProjectionMatrix(aspect),
		View:           s.Camera.ViewMatrix(fraction),
		LightDir:       s.Light.Direction,
		MarkerVisible:  s.Light.Visible,
		MarkerModel:    s.Light.MarkerModel(),
		MarkerLightDir: s.Light.MarkerLightDir(),
	}
}
