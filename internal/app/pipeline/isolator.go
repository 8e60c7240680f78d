package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"vocal-separator/internal/app/audio"
	apperrors "vocal-separator/internal/app/errors"
	"vocal-separator/internal/app/separation"
	"vocal-separator/internal/app/separator"
	"vocal-separator/internal/app/session"
	"vocal-separator/internal/app/util/files"
	"vocal-separator/internal/config"
)

// ErrNotInstalled is returned when the separator toolchain is missing.
var ErrNotInstalled = apperrors.New("audio-separator is not installed; run: pip install audio-separator[cpu] onnxruntime-directml")

// StatusChecker reports the state of the separator toolchain.
type StatusChecker func(ctx context.Context) separator.Status

// Request describes one isolation run.
type Request struct {
	// VideoPath is the media file whose vocals are isolated.
	VideoPath string
	// SessionDir receives vocals.wav. Defaults to the directory of VideoPath.
	SessionDir string
	// WorkDir holds temporary audio and separator output. Defaults to "temp".
	WorkDir string
	// ModelDir holds separation models. Defaults to <WorkDir>/audio-separator-models.
	ModelDir string
}

// Isolator extracts the audio of a video, separates its vocals and stores
// the vocal track in the video's session.
type Isolator struct {
	runner *separation.Runner
	cfg    *config.SeparatorConfig
	status StatusChecker
	logger *zap.Logger
}

// NewIsolator creates an Isolator.
func NewIsolator(runner *separation.Runner, cfg *config.SeparatorConfig, status StatusChecker, logger *zap.Logger) *Isolator {
	return &Isolator{
		runner: runner,
		cfg:    cfg,
		status: status,
		logger: logger,
	}
}

// Isolate runs every stage for req, reporting progress to reporter, and
// returns the reference to the stored vocal track.
func (i *Isolator) Isolate(ctx context.Context, req Request, reporter Reporter) (string, error) {
	vocalsRef, err := i.isolate(ctx, req, reporter)
	if err != nil {
		i.logger.Error("Vocal isolation failed", zap.String("video", req.VideoPath), zap.Error(err))
		reporter.Report(Update{Stage: StageError, Message: err.Error(), Progress: 0})
		return "", err
	}

	reporter.Report(Update{
		Stage:      StageDone,
		Message:    i.doneMessage(),
		Progress:   100,
		OutputPath: vocalsRef,
	})
	return vocalsRef, nil
}

func (i *Isolator) isolate(ctx context.Context, req Request, reporter Reporter) (string, error) {
	req = withDefaults(req)
	logger := i.logger.With(zap.String("video", req.VideoPath))

	reporter.Report(Update{Stage: StageStarting, Message: "Preparing vocal separation", Progress: 0})

	if !files.Exists(req.VideoPath) {
		return "", apperrors.Detail(apperrors.ErrFileNotFound, "video not found at %s", req.VideoPath)
	}

	reporter.Report(Update{Stage: StageChecking, Message: "Checking audio-separator", Progress: 5})
	st := i.status(ctx)
	if !st.Installed {
		return "", ErrNotInstalled
	}
	if i.cfg.UseDirectML && !st.DirectML {
		// no fallback: the separator decides what a missing GPU means
		logger.Warn("DirectML provider not reported by onnxruntime")
	}

	reporter.Report(Update{Stage: StageExtracting, Message: "Extracting audio", Progress: 20})
	for _, dir := range []string{req.WorkDir, req.ModelDir} {
		if err := files.EnsureDir(dir); err != nil {
			return "", err
		}
	}

	runID := uuid.NewString()
	tempAudio := filepath.Join(req.WorkDir, fmt.Sprintf("audio_%s.wav", runID))
	outputDir := filepath.Join(req.WorkDir, "separated", runID)
	defer i.cleanup(logger, tempAudio, outputDir)

	if err := audio.ExtractWav(ctx, i.cfg.FFmpeg, req.VideoPath, tempAudio, logger); err != nil {
		return "", apperrors.Wrap(err, "audio extraction failed")
	}
	if duration, err := audio.GetAudioDuration(ctx, i.cfg.FFprobe, tempAudio); err == nil {
		logger.Info("Extracted audio", zap.String("path", tempAudio), zap.Int("duration_sec", duration))
	} else {
		logger.Debug("Could not read audio duration", zap.Error(err))
	}

	reporter.Report(Update{Stage: StageSeparating, Message: i.separatingMessage(), Progress: 30})
	if err := files.EnsureDir(outputDir); err != nil {
		return "", err
	}
	runCtx, cancel := i.separationContext(ctx)
	defer cancel()
	outputs, err := i.runner.Run(runCtx, separation.Invocation{
		InputAudio: tempAudio,
		OutputDir:  outputDir,
		ModelDir:   req.ModelDir,
	})
	if err != nil {
		if runCtx.Err() == context.DeadlineExceeded && ctx.Err() == nil {
			return "", apperrors.Wrapf(err, "vocal separation timed out after %s", i.cfg.SeparationTimeout)
		}
		return "", apperrors.Wrap(err, "vocal separation failed")
	}

	reporter.Report(Update{Stage: StageProcessing, Message: "Processing separation result", Progress: 80})
	vocalsFile, err := files.FindStemFile(outputs, "vocals")
	if err != nil {
		return "", err
	}

	sessionDir, vocalsRef := sessionTarget(req)
	if err := files.EnsureDir(sessionDir); err != nil {
		return "", err
	}
	if err := files.CopyFile(vocalsFile, filepath.Join(sessionDir, session.VocalsFileName)); err != nil {
		return "", err
	}

	updated, err := session.MarkSeparated(sessionDir, vocalsRef)
	if err != nil {
		return "", err
	}
	logger.Info("Vocals stored",
		zap.String("session_dir", sessionDir),
		zap.String("vocals", vocalsRef),
		zap.Bool("session_updated", updated))

	return vocalsRef, nil
}

// separationContext applies the configured separation timeout, if any.
func (i *Isolator) separationContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if i.cfg.SeparationTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, i.cfg.SeparationTimeout)
}

func (i *Isolator) cleanup(logger *zap.Logger, tempAudio, outputDir string) {
	if err := os.RemoveAll(tempAudio); err != nil {
		logger.Warn("Failed to remove temp audio", zap.String("path", tempAudio), zap.Error(err))
	}
	if err := os.RemoveAll(outputDir); err != nil {
		logger.Warn("Failed to remove separator output", zap.String("path", outputDir), zap.Error(err))
	}
}

func (i *Isolator) separatingMessage() string {
	if i.cfg.UseDirectML {
		return "Separating vocals (AMD GPU via DirectML)"
	}
	return "Separating vocals"
}

func (i *Isolator) doneMessage() string {
	if i.cfg.UseDirectML {
		return "Vocal separation complete (DirectML)"
	}
	return "Vocal separation complete"
}

func withDefaults(req Request) Request {
	if req.WorkDir == "" {
		req.WorkDir = "temp"
	}
	if req.ModelDir == "" {
		req.ModelDir = filepath.Join(req.WorkDir, "audio-separator-models")
	}
	return req
}

// sessionTarget returns the directory receiving vocals.wav and the reference
// recorded in session.json. Without an explicit session dir the vocal track
// sits next to the video and the reference is the video path with its last
// segment replaced.
func sessionTarget(req Request) (string, string) {
	if req.SessionDir != "" {
		return req.SessionDir, filepath.Join(req.SessionDir, session.VocalsFileName)
	}

	ref := filepath.ToSlash(req.VideoPath)
	ref = ref[:strings.LastIndex(ref, "/")+1] + session.VocalsFileName
	return filepath.Dir(req.VideoPath), filepath.FromSlash(ref)
}
