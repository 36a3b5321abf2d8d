package cmd

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/whiterosearts/petalsite/internal/config"
	"github.com/whiterosearts/petalsite/internal/content"
	"github.com/whiterosearts/petalsite/internal/logging"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `petalsite init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// loadContent reads the content file named by cfg.
func loadContent(cfg *config.Config) (*content.Content, error) {
	c, err := content.Load(cfg.ContentFile)
	if err != nil {
		return nil, fmt.Errorf("loading content: %w", err)
	}
	return c, nil
}

// newLogger builds the command logger from the config level and --verbose.
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	level := ""
	if cfg != nil {
		level = cfg.LogLevel
	}
	return logging.New(level, verbose)
}
