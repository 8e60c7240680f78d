//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"go.uber.org/zap"

	"vocal-separator/internal/app/metrics"
	"vocal-separator/internal/app/pipeline"
	"vocal-separator/internal/app/separation"
	"vocal-separator/internal/config"
)

var runnerSet = wire.NewSet(
	provideSeparatorFactory,
	metrics.NewRecorder,
	separation.NewRunner,
)

func InitializeRunner(cfg *config.SeparatorConfig, logger *zap.Logger) *separation.Runner {
	wire.Build(runnerSet)
	return &separation.Runner{}
}

func InitializeIsolator(cfg *config.SeparatorConfig, logger *zap.Logger) *pipeline.Isolator {
	wire.Build(runnerSet, provideStatusChecker, pipeline.NewIsolator)
	return &pipeline.Isolator{}
}
