// Package main is the entry point for the interactive grass viewer.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/verdantfx/grassfield/internal/config"
	"github.com/verdantfx/grassfield/internal/logger"
	"github.com/verdantfx/grassfield/internal/viewer"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== grassfield viewer ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	// Create and run the viewer
	v, err := viewer.New(cfg)
	if err != nil {
		logger.Error("failed to create viewer", zap.Error(err))
		os.Exit(1)
	}
	defer v.Close()

	if err := v.Run(); err != nil {
		logger.Error("viewer error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("viewer closed normally")
}
