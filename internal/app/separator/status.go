package separator

import (
	"context"
	"os/exec"
	"strings"

	"go.uber.org/zap"
)

// Status reports whether the separation toolchain is usable on this machine.
type Status struct {
	Installed bool `json:"installed"`
	DirectML  bool `json:"directml"`
}

const (
	importCheck   = "import audio_separator"
	directMLCheck = "import onnxruntime; print('DmlExecutionProvider' in onnxruntime.get_available_providers())"
)

// CheckStatus asks the Python interpreter that hosts audio-separator whether the
// package imports and whether onnxruntime exposes the DirectML provider.
// Failures are reported as false, never as errors.
func CheckStatus(ctx context.Context, python string, logger *zap.Logger) Status {
	if logger == nil {
		logger = zap.NewNop()
	}

	var status Status

	if err := exec.CommandContext(ctx, python, "-c", importCheck).Run(); err != nil {
		logger.Debug("audio_separator import failed", zap.String("python", python), zap.Error(err))
	} else {
		status.Installed = true
	}

	output, err := exec.CommandContext(ctx, python, "-c", directMLCheck).Output()
	if err != nil {
		logger.Debug("onnxruntime provider check failed", zap.String("python", python), zap.Error(err))
	} else {
		status.DirectML = strings.TrimSpace(string(output)) == "True"
	}

	return status
}
