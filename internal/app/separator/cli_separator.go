package separator

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"

	apperrors "vocal-separator/internal/app/errors"
)

var _ Separator = (*CLISeparator)(nil)

// CLISeparator drives the audio-separator command line tool. Each Separate
// call runs the tool once and blocks until it exits.
type CLISeparator struct {
	binaryPath string
	opts       Options
	model      string
	logger     *zap.Logger
}

// NewCLIFactory returns a Factory that builds CLISeparators around binary.
func NewCLIFactory(binary string, logger *zap.Logger) Factory {
	return func(opts Options) (Separator, error) {
		return NewCLISeparator(binary, opts, logger)
	}
}

// NewCLISeparator resolves binary on PATH and prepares the output and model
// directories.
func NewCLISeparator(binary string, opts Options, logger *zap.Logger) (*CLISeparator, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	binaryPath, err := exec.LookPath(binary)
	if err != nil {
		return nil, apperrors.Detail(apperrors.ErrBinaryNotFound, "%s: %v", binary, err)
	}

	if opts.OutputDir == "" {
		return nil, apperrors.RequiredField("output directory")
	}
	if opts.ModelDir == "" {
		return nil, apperrors.RequiredField("model directory")
	}

	for _, dir := range []string{opts.OutputDir, opts.ModelDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, apperrors.Wrapf(err, "failed to create directory %s", dir)
		}
	}

	return &CLISeparator{
		binaryPath: binaryPath,
		opts:       opts,
		logger:     logger.With(zap.String("binary", binaryPath)),
	}, nil
}

// LoadModel checks that modelFilename exists in the model directory.
func (s *CLISeparator) LoadModel(ctx context.Context, modelFilename string) error {
	if modelFilename == "" {
		return apperrors.RequiredField("model filename")
	}

	modelPath := filepath.Join(s.opts.ModelDir, modelFilename)
	info, err := os.Stat(modelPath)
	if err != nil || info.IsDir() {
		return apperrors.Detail(apperrors.ErrModelNotFound, "%s in %s", modelFilename, s.opts.ModelDir)
	}

	s.model = modelFilename
	s.logger.Debug("Model loaded", zap.String("model", modelPath))
	return nil
}

// Separate runs audio-separator on inputPath and returns the files this run
// wrote to the output directory, sorted by name.
func (s *CLISeparator) Separate(ctx context.Context, inputPath string) ([]string, error) {
	if s.model == "" {
		return nil, apperrors.ErrModelNotLoaded
	}

	info, err := os.Stat(inputPath)
	if err != nil || info.IsDir() {
		return nil, apperrors.Detail(apperrors.ErrInputNotFound, "%s", inputPath)
	}

	before, err := snapshot(s.opts.OutputDir)
	if err != nil {
		return nil, err
	}

	args := s.buildArgs(inputPath)
	logger := s.logger.With(zap.String("input", inputPath), zap.String("model", s.model))
	logger.Info("Running audio-separator", zap.Strings("args", args))

	command := exec.CommandContext(ctx, s.binaryPath, args...)
	var stdout, stderr bytes.Buffer
	command.Stdout = &stdout
	command.Stderr = &stderr

	start := time.Now()
	if err := command.Run(); err != nil {
		logger.Error("audio-separator failed",
			zap.Error(err),
			zap.String("stderr", stderr.String()))
		if ctx.Err() != nil {
			return nil, apperrors.Wrap(ctx.Err(), "separation interrupted")
		}
		return nil, apperrors.Detail(apperrors.ErrSeparationFailed, "%v: %s", err, lastLine(stderr.String(), stdout.String()))
	}
	logger.Debug("audio-separator output",
		zap.String("stdout", stdout.String()),
		zap.String("stderr", stderr.String()))

	after, err := snapshot(s.opts.OutputDir)
	if err != nil {
		return nil, err
	}

	outputs := producedFiles(before, after)
	if len(outputs) == 0 {
		return nil, apperrors.ErrNoOutput
	}

	logger.Info("Separation completed",
		zap.Duration("elapsed", time.Since(start)),
		zap.Strings("output_files", outputs))
	return outputs, nil
}

func (s *CLISeparator) buildArgs(inputPath string) []string {
	args := []string{
		inputPath,
		"--model_filename", s.model,
		"--model_file_dir", s.opts.ModelDir,
		"--output_dir", s.opts.OutputDir,
	}
	if s.opts.OutputFormat != "" {
		args = append(args, "--output_format", s.opts.OutputFormat)
	}
	if s.opts.SingleStem != "" {
		args = append(args, "--single_stem", s.opts.SingleStem)
	}
	if s.opts.UseDirectML {
		args = append(args, "--use_directml")
	}
	return args
}

// fileStamp identifies one version of a file.
type fileStamp struct {
	size    int64
	modTime time.Time
}

// snapshot records the regular files directly under dir, keyed by absolute path.
func snapshot(dir string) (map[string]fileStamp, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, apperrors.Wrapf(err, "cannot convert %s to absolute format", dir)
	}

	entries, err := os.ReadDir(absDir)
	if err != nil {
		return nil, apperrors.Wrapf(err, "error reading output directory %s", absDir)
	}

	files := make(map[string]fileStamp, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files[filepath.Join(absDir, entry.Name())] = fileStamp{size: info.Size(), modTime: info.ModTime()}
	}
	return files, nil
}

// producedFiles returns the paths in after that are new or changed since before.
func producedFiles(before, after map[string]fileStamp) []string {
	changed := lo.PickBy(after, func(path string, stamp fileStamp) bool {
		prev, existed := before[path]
		return !existed || prev.size != stamp.size || !prev.modTime.Equal(stamp.modTime)
	})
	paths := lo.Keys(changed)
	sort.Strings(paths)
	return paths
}

// lastLine returns the last non-empty line of the first output that has one.
// For a Python tool this is the exception message ending the traceback.
func lastLine(outputs ...string) string {
	for _, out := range outputs {
		lines := lo.Filter(strings.Split(out, "\n"), func(line string, _ int) bool {
			return strings.TrimSpace(line) != ""
		})
		if len(lines) > 0 {
			return strings.TrimSpace(lines[len(lines)-1])
		}
	}
	return "no output"
}
