package config

import (
	"flag"
	"fmt"
)

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
	flagTeam       = flag.String("team", "", "Team color as r,g,b")
	flagLightModel = flag.String("light-model", "", "Path to light marker KV6 model")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config. The first positional
// argument, if any, is the model path.
func applyFlags(cfg *Config, args []string) error {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagWindowed {
		cfg.Graphics.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Graphics.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
	if *flagTeam != "" {
		c, err := ParseColor(*flagTeam)
		if err != nil {
			return fmt.Errorf("-team: %w", err)
		}
		cfg.Model.TeamColor = c
	}
	if *flagLightModel != "" {
		cfg.Model.LightPath = *flagLightModel
	}
	if len(args) > 0 {
		cfg.Model.Path = args[0]
	}
	return nil
}
