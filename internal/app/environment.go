package app

import (
	"go.uber.org/zap"

	"vocal-separator/internal/app/logging"
	"vocal-separator/internal/config"
)

// LoadEnvironment reads .env, assembles the separator configuration and
// builds the logger it asks for. verbose forces debug logging.
func LoadEnvironment(verbose bool) (*config.SeparatorConfig, *zap.Logger, error) {
	envFile, err := config.LoadEnv()
	if err != nil {
		return nil, nil, err
	}

	cfg, err := config.LoadSeparatorConfig()
	if err != nil {
		return nil, nil, err
	}
	if verbose {
		cfg.LogLevel = "debug"
	}

	logger, err := logging.NewLogger(logging.Options{Level: cfg.LogLevel, File: cfg.LogFile})
	if err != nil {
		return nil, nil, err
	}

	if envFile != "" {
		logger.Debug("Loaded environment file", zap.String("path", envFile))
	}
	return cfg, logger, nil
}
