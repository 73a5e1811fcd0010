// Package viewer implements the main viewer loop.
package viewer

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/kv6view/internal/assets"
	"github.com/Faultbox/kv6view/internal/config"
	"github.com/Faultbox/kv6view/internal/controls"
	"github.com/Faultbox/kv6view/internal/engine/camera"
	"github.com/Faultbox/kv6view/internal/engine/debug"
	"github.com/Faultbox/kv6view/internal/engine/input"
	"github.com/Faultbox/kv6view/internal/engine/loop"
	"github.com/Faultbox/kv6view/internal/engine/renderer"
	"github.com/Faultbox/kv6view/internal/engine/voxel"
	"github.com/Faultbox/kv6view/internal/engine/window"
	"github.com/Faultbox/kv6view/internal/logger"
	"github.com/Faultbox/kv6view/internal/viewer/session"
	"github.com/Faultbox/kv6view/pkg/formats"
	"github.com/Faultbox/kv6view/pkg/math"
)

// Viewer is the main viewer instance.
type Viewer struct {
	cfg *config.Config
	log *zap.Logger

	window      *window.Window
	renderer    *renderer.Renderer
	input       *input.Input
	screenshots *debug.ScreenshotCapture

	session *session.Session
	stepper *loop.Stepper

	model  *renderer.Model
	marker *renderer.Model
}

// New loads the models, opens the window and uploads the meshes.
func New(cfg *config.Config) (*Viewer, error) {
	v := &Viewer{
		cfg: cfg,
		log: logger.Named("viewer"),
	}

	bindings, err := controls.NewBindings(cfg.Controls)
	if err != nil {
		return nil, fmt.Errorf("controls: %w", err)
	}
	v.screenshots, err = debug.NewScreenshotCapture(cfg.Graphics.ScreenshotDir, "kv6view", cfg.Graphics.ScreenshotFormat)
	if err != nil {
		return nil, err
	}

	// Decode before opening a window so bad files fail fast.
	manager := assets.NewManager(cfg.Model.SearchDirs...)
	defer manager.Close()

	model, err := manager.LoadKV6(cfg.Model.Path)
	if err != nil {
		return nil, err
	}
	marker, err := manager.LightMarker(cfg.Model.LightPath)
	if err != nil {
		return nil, fmt.Errorf("light marker: %w", err)
	}

	normals := formats.DefaultNormalTable()
	modelMesh := voxel.BuildMesh(model, normals)
	markerMesh := voxel.BuildMesh(marker, normals)
	v.log.Info("model loaded",
		zap.String("path", cfg.Model.Path),
		zap.Uint32s("size", model.Size[:]),
		zap.Uint32("voxels", model.VoxelCount),
		zap.Int("faces", modelMesh.FaceCount()),
	)

	v.window, err = window.New(window.Config{
		Title:      "kv6view - " + cfg.Model.Path,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// The renderer needs the GL context the window created.
	width, height := v.window.GetSize()
	v.renderer, err = renderer.New(renderer.Config{Width: width, Height: height})
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	v.model = v.renderer.Upload(modelMesh)
	v.marker = v.renderer.Upload(markerMesh)

	v.input = input.New(bindings)
	v.stepper = loop.NewStepper(cfg.Camera.TickRate)
	v.session = session.New(sessionConfig(cfg))

	v.window.SetMouseCapture(true)

	v.log.Info("viewer initialized")
	return v, nil
}

func sessionConfig(cfg *config.Config) session.Config {
	settings := camera.DefaultSettings()
	settings.TickStep = 1 / float32(cfg.Camera.TickRate)
	settings.MouseSensitivity = cfg.Camera.MouseSensitivity
	settings.Speed = cfg.Camera.Speed

	return session.Config{
		CameraPosition: math.Vec3FromArray(cfg.Camera.Position),
		CameraForward:  math.Vec3FromArray(cfg.Camera.Forward),
		Camera:         settings,
		LightDirection: math.Vec3FromArray(cfg.Light.Direction),
		LightDistance:  cfg.Light.Distance,
		LightVisible:   cfg.Light.Visible,
		TeamColor:      cfg.Model.TeamColor,
	}
}

// Run drives the loop until the window closes or exit is pressed. Each frame
// polls input, runs the whole ticks the elapsed time covers, then draws with
// the leftover fraction.
func (v *Viewer) Run() error {
	v.log.Info("starting viewer loop", zap.Duration("tick", v.stepper.Step()))

	v.stepper.Start()
	frames := 0
	fpsTimer := time.Now()

	for v.session.Running() {
		if v.input.Update() {
			v.session.Quit()
		}
		v.handleEvents()
		if !v.session.Running() {
			break
		}

		for n := v.stepper.Frame(); n > 0; n-- {
			v.session.Tick()
		}

		v.render()

		if v.session.TakeScreenshot() {
			v.captureScreenshot()
		}

		v.window.SwapBuffers()

		frames++
		if time.Since(fpsTimer) >= time.Second {
			v.log.Debug("fps", zap.Int("count", frames), zap.Uint64("ticks", v.stepper.Ticks()))
			frames = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

func (v *Viewer) handleEvents() {
	for _, ev := range v.input.Events() {
		switch ev.Type {
		case input.EventWindowResize:
			v.renderer.Resize(v.window.GetSize())
		case input.EventFocusLost:
			if v.session.SetFocus(false) {
				v.window.SetMouseCapture(false)
			}
		case input.EventFocusGained:
			if v.session.SetFocus(true) {
				v.window.SetMouseCapture(true)
			}
		case input.EventKeyDown:
			v.session.HandleAction(ev.Action, true)
		case input.EventKeyUp:
			v.session.HandleAction(ev.Action, false)
		case input.EventMouseMove:
			v.session.HandleMouse(float32(ev.MouseDX), float32(ev.MouseDY))
		}
	}
}

func (v *Viewer) render() {
	view := v.session.View(v.stepper.Fraction(), v.renderer.Aspect())

	v.renderer.Begin(renderer.Frame{
		Projection: view.Projection,
		View:       view.View,
		TeamColor:  v.session.TeamColor,
	})
	v.renderer.Draw(v.model, math.Identity(), view.LightDir)
	if view.MarkerVisible {
		v.renderer.Draw(v.marker, view.MarkerModel, view.MarkerLightDir)
	}
}

func (v *Viewer) captureScreenshot() {
	pixels, w, h := v.renderer.ReadPixels()
	path, err := v.screenshots.CaptureFromPixels(pixels, w, h)
	if err != nil {
		v.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	v.log.Info("screenshot saved", zap.String("path", path))
}

// Close releases GPU resources and the window.
func (v *Viewer) Close() {
	v.log.Info("closing viewer")

	if v.renderer != nil {
		for _, m := range []*renderer.Model{v.model, v.marker} {
			if m != nil {
				v.renderer.Release(m)
			}
		}
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}
