package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	apperrors "vocal-separator/internal/app/errors"
)

// Defaults for the vocal separation run.
const (
	DefaultBinary        = "audio-separator"
	DefaultPython        = "python"
	DefaultFFmpeg        = "ffmpeg"
	DefaultFFprobe       = "ffprobe"
	DefaultModelFilename = "UVR_MDXNET_KARA_2.onnx"
	DefaultOutputFormat  = "WAV"
	DefaultSingleStem    = "Vocals"
	DefaultUseDirectML   = true
	DefaultLogLevel      = "info"

	// DefaultSeparationTimeout bounds one separation inside the isolation
	// pipeline. The separate command runs without a deadline.
	DefaultSeparationTimeout = 10 * time.Minute
)

// SeparatorConfig holds every setting of a separation run that is not a
// positional argument.
type SeparatorConfig struct {
	Binary        string `yaml:"binary" validate:"required"`
	Python        string `yaml:"python" validate:"required"`
	FFmpeg        string `yaml:"ffmpeg" validate:"required"`
	FFprobe       string `yaml:"ffprobe" validate:"required"`
	ModelFilename string `yaml:"model_filename" validate:"required"`
	OutputFormat  string `yaml:"output_format" validate:"required,oneof=WAV FLAC MP3 OGG OPUS M4A AIFF AC3"`
	// SingleStem restricts output to one stem; empty keeps every stem.
	SingleStem  string `yaml:"single_stem"`
	UseDirectML bool   `yaml:"use_directml"`
	// SeparationTimeout limits vsep isolate; zero disables the limit.
	SeparationTimeout time.Duration `yaml:"separation_timeout" validate:"gte=0"`

	MetricsFile string `yaml:"metrics_file"`
	LogLevel    string `yaml:"log_level" validate:"required,oneof=debug info warn error"`
	LogFile     string `yaml:"log_file"`
}

// DefaultSeparatorConfig returns the configuration used when nothing is
// overridden.
func DefaultSeparatorConfig() SeparatorConfig {
	return SeparatorConfig{
		Binary:        DefaultBinary,
		Python:        DefaultPython,
		FFmpeg:        DefaultFFmpeg,
		FFprobe:       DefaultFFprobe,
		ModelFilename: DefaultModelFilename,
		OutputFormat:  DefaultOutputFormat,
		SingleStem:    DefaultSingleStem,
		UseDirectML:   DefaultUseDirectML,
		LogLevel:      DefaultLogLevel,

		SeparationTimeout: DefaultSeparationTimeout,
	}
}

var validate = validator.New()

// LoadSeparatorConfig builds the configuration from defaults, the YAML file
// named by SEPARATOR_CONFIG (if any) and SEPARATOR_* environment variables,
// in that order of precedence.
func LoadSeparatorConfig() (*SeparatorConfig, error) {
	cfg := DefaultSeparatorConfig()

	if path := strings.TrimSpace(os.Getenv("SEPARATOR_CONFIG")); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	cfg.OutputFormat = strings.ToUpper(cfg.OutputFormat)
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *SeparatorConfig) mergeFile(path string) error {
	path = os.ExpandEnv(path)

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}
	return nil
}

func (c *SeparatorConfig) applyEnv() error {
	envString("SEPARATOR_BINARY", &c.Binary)
	envString("SEPARATOR_PYTHON", &c.Python)
	envString("FFMPEG_BINARY", &c.FFmpeg)
	envString("FFPROBE_BINARY", &c.FFprobe)
	envString("SEPARATOR_MODEL", &c.ModelFilename)
	envString("SEPARATOR_OUTPUT_FORMAT", &c.OutputFormat)
	envString("SEPARATOR_METRICS_FILE", &c.MetricsFile)
	envString("SEPARATOR_LOG_LEVEL", &c.LogLevel)
	envString("SEPARATOR_LOG_FILE", &c.LogFile)

	// An explicitly empty stem means "all stems", so presence matters here.
	if v, ok := os.LookupEnv("SEPARATOR_SINGLE_STEM"); ok {
		c.SingleStem = strings.TrimSpace(v)
	}

	if err := envDuration("SEPARATOR_TIMEOUT", &c.SeparationTimeout); err != nil {
		return err
	}
	return envBool("SEPARATOR_USE_DIRECTML", &c.UseDirectML)
}

// Validate checks the configuration against its field constraints.
func (c *SeparatorConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s failed %q", fe.Field(), fe.Tag()))
			}
			return apperrors.Detail(apperrors.ErrInvalidConfig, "%s", strings.Join(fields, ", "))
		}
		return apperrors.Wrap(err, "invalid configuration")
	}
	return nil
}
