package app

import (
	"context"

	"go.uber.org/zap"

	"vocal-separator/internal/app/pipeline"
	"vocal-separator/internal/app/separator"
	"vocal-separator/internal/config"
)

// provideSeparatorFactory builds CLI separators around the configured
// audio-separator executable.
func provideSeparatorFactory(cfg *config.SeparatorConfig, logger *zap.Logger) separator.Factory {
	return separator.NewCLIFactory(cfg.Binary, logger)
}

// provideStatusChecker checks the Python environment the separator runs in.
func provideStatusChecker(cfg *config.SeparatorConfig, logger *zap.Logger) pipeline.StatusChecker {
	return func(ctx context.Context) separator.Status {
		return separator.CheckStatus(ctx, cfg.Python, logger)
	}
}
