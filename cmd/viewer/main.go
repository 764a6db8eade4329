package main

import (
	"flag"
	"fmt"
	"os"

	"SceneViewer/internal/config"
	"SceneViewer/internal/engine"
	"SceneViewer/internal/logger"

	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "Path to a TOML scene file. The built-in demo scene is used when empty.")
	logLevel := flag.String("log-level", "", "Override the configured log level (debug, info, warn, error).")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			return err
		}
	}
	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
	}

	if err := logger.Init(logger.Options{Level: cfg.Logging.Level, Format: cfg.Logging.Format}); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()

	logger.Log.Info("Scene viewer starting",
		zap.String("config", *configPath),
		zap.Int("lights", len(cfg.Lights)),
		zap.Int("entities", len(cfg.Entities)))

	return engine.NewViewer(cfg).Run()
}
