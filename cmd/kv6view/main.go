// Package main is the entry point for the KV6 model viewer.
//
// Usage:
//
//	kv6view [flags] model.kv6
//
// Without a model path a file dialog asks for one.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/Faultbox/kv6view/internal/config"
	"github.com/Faultbox/kv6view/internal/logger"
	"github.com/Faultbox/kv6view/internal/viewer"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] model.kv6\n\nFlags:\n", os.Args[0])
		flag.PrintDefaults()
	}
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	if cfg.Model.Path == "" {
		path, err := pickModel()
		if errors.Is(err, dialog.ErrCancelled) {
			os.Exit(0)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "File dialog error: %v\n", err)
		}
		cfg.Model.Path = path
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		flag.Usage()
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== KV6 Viewer ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	v, err := viewer.New(cfg)
	if err != nil {
		logger.Error("failed to start viewer", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}

	if err := v.Run(); err != nil {
		logger.Error("viewer error", zap.Error(err))
		v.Close()
		logger.Sync()
		os.Exit(1)
	}
	v.Close()

	logger.Info("viewer closed normally")
}

// pickModel shows a native file dialog to select a KV6 model.
func pickModel() (string, error) {
	return dialog.File().
		Filter("KV6 Models", "kv6").
		Filter("All Files", "*").
		Title("Open KV6 Model").
		Load()
}
