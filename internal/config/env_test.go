package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "vocal-separator/internal/app/errors"
)

var separatorEnvKeys = []string{
	"SEPARATOR_CONFIG",
	"SEPARATOR_BINARY",
	"SEPARATOR_PYTHON",
	"FFMPEG_BINARY",
	"FFPROBE_BINARY",
	"SEPARATOR_MODEL",
	"SEPARATOR_OUTPUT_FORMAT",
	"SEPARATOR_SINGLE_STEM",
	"SEPARATOR_USE_DIRECTML",
	"SEPARATOR_TIMEOUT",
	"SEPARATOR_METRICS_FILE",
	"SEPARATOR_LOG_LEVEL",
	"SEPARATOR_LOG_FILE",
}

// clearSeparatorEnv blanks every variable the loader reads and restores the
// previous values when the test ends.
func clearSeparatorEnv(t *testing.T) {
	t.Helper()
	for _, key := range separatorEnvKeys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadSeparatorConfig_Defaults(t *testing.T) {
	clearSeparatorEnv(t)

	cfg, err := LoadSeparatorConfig()
	require.NoError(t, err)

	assert.Equal(t, "audio-separator", cfg.Binary)
	assert.Equal(t, "UVR_MDXNET_KARA_2.onnx", cfg.ModelFilename)
	assert.Equal(t, "WAV", cfg.OutputFormat)
	assert.Equal(t, "Vocals", cfg.SingleStem)
	assert.True(t, cfg.UseDirectML)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.MetricsFile)
	assert.Equal(t, 10*time.Minute, cfg.SeparationTimeout)
}

func TestLoadSeparatorConfig_EnvOverrides(t *testing.T) {
	testCases := []struct {
		name          string
		env           map[string]string
		check         func(t *testing.T, cfg *SeparatorConfig)
		expectError   bool
		errorContains string
	}{
		{
			name: "model and binary",
			env: map[string]string{
				"SEPARATOR_MODEL":  "UVR-MDX-NET-Inst_HQ_3.onnx",
				"SEPARATOR_BINARY": "/opt/venv/bin/audio-separator",
			},
			check: func(t *testing.T, cfg *SeparatorConfig) {
				assert.Equal(t, "UVR-MDX-NET-Inst_HQ_3.onnx", cfg.ModelFilename)
				assert.Equal(t, "/opt/venv/bin/audio-separator", cfg.Binary)
			},
		},
		{
			name: "lowercase output format is normalized",
			env:  map[string]string{"SEPARATOR_OUTPUT_FORMAT": "flac"},
			check: func(t *testing.T, cfg *SeparatorConfig) {
				assert.Equal(t, "FLAC", cfg.OutputFormat)
			},
		},
		{
			name: "directml can be disabled",
			env:  map[string]string{"SEPARATOR_USE_DIRECTML": "false"},
			check: func(t *testing.T, cfg *SeparatorConfig) {
				assert.False(t, cfg.UseDirectML)
			},
		},
		{
			name: "empty single stem keeps every stem",
			env:  map[string]string{"SEPARATOR_SINGLE_STEM": ""},
			check: func(t *testing.T, cfg *SeparatorConfig) {
				assert.Empty(t, cfg.SingleStem)
			},
		},
		{
			name: "separation timeout",
			env:  map[string]string{"SEPARATOR_TIMEOUT": "90s"},
			check: func(t *testing.T, cfg *SeparatorConfig) {
				assert.Equal(t, 90*time.Second, cfg.SeparationTimeout)
			},
		},
		{
			name: "zero timeout disables the limit",
			env:  map[string]string{"SEPARATOR_TIMEOUT": "0s"},
			check: func(t *testing.T, cfg *SeparatorConfig) {
				assert.Zero(t, cfg.SeparationTimeout)
			},
		},
		{
			name:          "unparseable timeout",
			env:           map[string]string{"SEPARATOR_TIMEOUT": "ten minutes"},
			expectError:   true,
			errorContains: "SEPARATOR_TIMEOUT",
		},
		{
			name:          "negative timeout",
			env:           map[string]string{"SEPARATOR_TIMEOUT": "-1m"},
			expectError:   true,
			errorContains: "SeparationTimeout",
		},
		{
			name:          "invalid boolean",
			env:           map[string]string{"SEPARATOR_USE_DIRECTML": "sometimes"},
			expectError:   true,
			errorContains: "SEPARATOR_USE_DIRECTML",
		},
		{
			name:          "unsupported output format",
			env:           map[string]string{"SEPARATOR_OUTPUT_FORMAT": "wma"},
			expectError:   true,
			errorContains: "OutputFormat",
		},
		{
			name:          "unknown log level",
			env:           map[string]string{"SEPARATOR_LOG_LEVEL": "trace"},
			expectError:   true,
			errorContains: "LogLevel",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			clearSeparatorEnv(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}

			cfg, err := LoadSeparatorConfig()
			if tc.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.errorContains)
				return
			}
			require.NoError(t, err)
			tc.check(t, cfg)
		})
	}
}

func TestLoadSeparatorConfig_YAMLFile(t *testing.T) {
	clearSeparatorEnv(t)

	path := filepath.Join(t.TempDir(), "separator.yaml")
	content := `model_filename: Kim_Vocal_2.onnx
output_format: mp3
use_directml: false
separation_timeout: 20m
metrics_file: /var/lib/node_exporter/separator.prom
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	t.Setenv("SEPARATOR_CONFIG", path)
	t.Setenv("SEPARATOR_MODEL", "UVR_MDXNET_KARA_2.onnx")

	cfg, err := LoadSeparatorConfig()
	require.NoError(t, err)

	// env wins over the file
	assert.Equal(t, "UVR_MDXNET_KARA_2.onnx", cfg.ModelFilename)
	assert.Equal(t, "MP3", cfg.OutputFormat)
	assert.False(t, cfg.UseDirectML)
	assert.Equal(t, "/var/lib/node_exporter/separator.prom", cfg.MetricsFile)
	assert.Equal(t, "Vocals", cfg.SingleStem)
	assert.Equal(t, 20*time.Minute, cfg.SeparationTimeout)
}

func TestLoadSeparatorConfig_MissingFile(t *testing.T) {
	clearSeparatorEnv(t)
	t.Setenv("SEPARATOR_CONFIG", filepath.Join(t.TempDir(), "nope.yaml"))

	_, err := LoadSeparatorConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestValidate_ReportsInvalidConfig(t *testing.T) {
	cfg := DefaultSeparatorConfig()
	cfg.ModelFilename = ""

	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidConfig)
	assert.Contains(t, err.Error(), "ModelFilename")
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer os.Chdir(wd)

	path, err := LoadEnv()
	require.NoError(t, err)
	assert.Empty(t, path)

	t.Setenv("SEPARATOR_MODEL", "")
	os.Unsetenv("SEPARATOR_MODEL")
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("SEPARATOR_MODEL=from_dotenv.onnx\n"), 0644))

	path, err = LoadEnv()
	require.NoError(t, err)
	assert.Equal(t, ".env", path)
	assert.Equal(t, "from_dotenv.onnx", os.Getenv("SEPARATOR_MODEL"))
}
