package separation

import (
	"context"
	"time"

	"go.uber.org/zap"

	"vocal-separator/internal/app/errors"
	"vocal-separator/internal/app/metrics"
	"vocal-separator/internal/app/result"
	"vocal-separator/internal/app/separator"
	"vocal-separator/internal/config"
)

// UsageMessage is reported when fewer than three arguments are supplied.
const UsageMessage = "Usage: separate <input_audio> <output_dir> <model_dir>"

// Invocation holds the positional arguments of one run.
type Invocation struct {
	InputAudio string
	OutputDir  string
	ModelDir   string
}

// ParseArgs takes the first three arguments; anything after them is ignored.
func ParseArgs(args []string) (Invocation, error) {
	if len(args) < 3 {
		return Invocation{}, errors.ErrUsage
	}
	return Invocation{
		InputAudio: args[0],
		OutputDir:  args[1],
		ModelDir:   args[2],
	}, nil
}

// Runner performs a single separation: construct, load model, separate.
type Runner struct {
	factory  separator.Factory
	cfg      *config.SeparatorConfig
	recorder *metrics.Recorder
	logger   *zap.Logger
}

// NewRunner creates a Runner.
func NewRunner(factory separator.Factory, cfg *config.SeparatorConfig, recorder *metrics.Recorder, logger *zap.Logger) *Runner {
	return &Runner{
		factory:  factory,
		cfg:      cfg,
		recorder: recorder,
		logger:   logger,
	}
}

// Options derives the separator options for inv.
func (r *Runner) Options(inv Invocation) separator.Options {
	return separator.Options{
		OutputDir:    inv.OutputDir,
		ModelDir:     inv.ModelDir,
		OutputFormat: r.cfg.OutputFormat,
		SingleStem:   r.cfg.SingleStem,
		UseDirectML:  r.cfg.UseDirectML,
	}
}

// Run separates inv.InputAudio and returns the produced stem files. Errors
// from the separator are returned unchanged.
func (r *Runner) Run(ctx context.Context, inv Invocation) ([]string, error) {
	logger := r.logger.With(
		zap.String("input", inv.InputAudio),
		zap.String("output_dir", inv.OutputDir),
		zap.String("model_dir", inv.ModelDir),
		zap.String("model", r.cfg.ModelFilename),
	)

	start := time.Now()
	files, err := r.run(ctx, inv)
	elapsed := time.Since(start)

	if err != nil {
		logger.Error("Separation failed", zap.Error(err), zap.Duration("elapsed", elapsed))
		r.recorder.ObserveFailure(elapsed)
	} else {
		logger.Info("Separation succeeded", zap.Strings("output_files", files), zap.Duration("elapsed", elapsed))
		r.recorder.ObserveSuccess(elapsed, len(files))
	}

	if werr := r.recorder.WriteTextfile(r.cfg.MetricsFile); werr != nil {
		logger.Warn("Failed to write metrics textfile", zap.String("path", r.cfg.MetricsFile), zap.Error(werr))
	}

	return files, err
}

func (r *Runner) run(ctx context.Context, inv Invocation) ([]string, error) {
	sep, err := r.factory(r.Options(inv))
	if err != nil {
		return nil, err
	}

	if err := sep.LoadModel(ctx, r.cfg.ModelFilename); err != nil {
		return nil, err
	}

	return sep.Separate(ctx, inv.InputAudio)
}

// Execute runs inv and folds the outcome into the result envelope.
func (r *Runner) Execute(ctx context.Context, inv Invocation) result.Envelope {
	files, err := r.Run(ctx, inv)
	if err != nil {
		return result.FromError(err)
	}
	return result.Success(files)
}
