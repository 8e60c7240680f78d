package audio

import (
	"bytes"
	"context"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"

	apperrors "vocal-separator/internal/app/errors"
)

// Extraction parameters expected by the separation models: 16-bit PCM,
// 44.1 kHz, stereo.
const (
	extractCodec      = "pcm_s16le"
	extractSampleRate = "44100"
	extractChannels   = "2"
)

// GetAudioDuration returns the duration of filePath in whole seconds.
func GetAudioDuration(ctx context.Context, ffprobe string, filePath string) (int, error) {
	cmd := exec.CommandContext(ctx, ffprobe, "-v", "error", "-show_entries", "format=duration", "-of", "default=noprint_wrappers=1:nokey=1", filePath)
	output, err := cmd.Output()
	if err != nil {
		return 0, err
	}
	durationFloat, err := strconv.ParseFloat(strings.TrimSpace(string(output)), 64)
	if err != nil {
		return 0, err
	}
	duration := int(math.Round(durationFloat))
	return duration, nil
}

// ExtractWav extracts the audio track of inputPath (audio or video) into a
// WAV file at outputPath, overwriting it if present.
func ExtractWav(ctx context.Context, ffmpeg string, inputPath string, outputPath string, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	if _, err := os.Stat(inputPath); err != nil {
		return apperrors.Detail(apperrors.ErrFileNotFound, "%s", inputPath)
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return apperrors.Wrapf(err, "failed to create directory for %s", outputPath)
	}

	logger.Info("Extracting audio", zap.String("input", inputPath), zap.String("output", outputPath))

	cmd := exec.CommandContext(ctx, ffmpeg,
		"-i", inputPath,
		"-vn",
		"-acodec", extractCodec,
		"-ar", extractSampleRate,
		"-ac", extractChannels,
		outputPath,
		"-y",
	)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return apperrors.Detail(apperrors.ErrFFmpegFailed, "%v, stderr: %s", err, strings.TrimSpace(stderr.String()))
	}

	logger.Info("Audio extraction completed", zap.String("output", outputPath))
	return nil
}
