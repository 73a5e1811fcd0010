// Package config handles viewer configuration loading and management.
package config

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all viewer settings.
type Config struct {
	Graphics GraphicsConfig    `yaml:"graphics"`
	Camera   CameraConfig      `yaml:"camera"`
	Controls map[string]string `yaml:"controls"` // action name -> SDL key name
	Model    ModelConfig       `yaml:"model"`
	Light    LightConfig       `yaml:"light"`
	Logging  LoggingConfig     `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`

	ScreenshotDir    string `yaml:"screenshot_dir"`
	ScreenshotFormat string `yaml:"screenshot_format"` // png or bmp
}

// CameraConfig holds the free camera start state and tuning.
type CameraConfig struct {
	Position         [3]float32 `yaml:"position"`
	Forward          [3]float32 `yaml:"forward"`
	MouseSensitivity float32    `yaml:"mouse_sensitivity"`
	Speed            float32    `yaml:"speed"`
	TickRate         int        `yaml:"tick_rate"` // Simulation ticks per second
}

// ModelConfig holds model file locations and team color.
type ModelConfig struct {
	Path       string   `yaml:"path"`
	LightPath  string   `yaml:"light_path"` // Empty uses the built-in marker
	TeamColor  Color    `yaml:"team_color"`
	SearchDirs []string `yaml:"search_dirs"`
}

// LightConfig holds the directional light state.
type LightConfig struct {
	Direction [3]float32 `yaml:"direction"`
	Distance  float32    `yaml:"distance"`
	Visible   bool       `yaml:"visible"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Color is an 8-bit RGB triple, written as "r,g,b" in config and flags.
type Color [3]uint8

// ParseColor parses "r,g,b" with each channel in 0..255.
func ParseColor(s string) (Color, error) {
	var c Color
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return c, fmt.Errorf("color %q: want r,g,b", s)
	}
	for i, p := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
		if err != nil {
			return c, fmt.Errorf("color %q: channel %d: %w", s, i, err)
		}
		c[i] = uint8(v)
	}
	return c, nil
}

// String formats the color as "r,g,b".
func (c Color) String() string {
	return fmt.Sprintf("%d,%d,%d", c[0], c[1], c[2])
}

// MarshalYAML writes the color as "r,g,b".
func (c Color) MarshalYAML() (any, error) {
	return c.String(), nil
}

// UnmarshalYAML accepts "r,g,b".
func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseColor(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// DefaultControls returns the standard key bindings.
func DefaultControls() map[string]string {
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

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,

			ScreenshotDir:    "screenshots",
			ScreenshotFormat: "png",
		},
		Camera: CameraConfig{
			Position:         [3]float32{0, 32, 0},
			Forward:          [3]float32{0, -1, 0},
			MouseSensitivity: 5.0,
			Speed:            32.0,
			TickRate:         60,
		},
		Controls: DefaultControls(),
		Model: ModelConfig{
			SearchDirs: []string{"."},
		},
		Light: LightConfig{
			Direction: [3]float32{128, 128, -64},
			Distance:  128,
			Visible:   true,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
