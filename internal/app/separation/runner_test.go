package separation

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"vocal-separator/internal/app/errors"
	"vocal-separator/internal/app/metrics"
	"vocal-separator/internal/app/separator"
	"vocal-separator/internal/app/separator/separatortest"
	"vocal-separator/internal/config"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestRunner(factory separator.Factory, cfg config.SeparatorConfig) *Runner {
	return NewRunner(factory, &cfg, metrics.NewRecorder(), zap.NewNop())
}

func TestParseArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    Invocation
		wantErr bool
	}{
		{name: "no args", args: nil, wantErr: true},
		{name: "one arg", args: []string{"in.wav"}, wantErr: true},
		{name: "two empty args", args: []string{"", ""}, wantErr: true},
		{
			name: "exactly three",
			args: []string{"in.wav", "out", "models"},
			want: Invocation{InputAudio: "in.wav", OutputDir: "out", ModelDir: "models"},
		},
		{
			name: "trailing args ignored",
			args: []string{"in.wav", "out", "models", "--extra", "more"},
			want: Invocation{InputAudio: "in.wav", OutputDir: "out", ModelDir: "models"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseArgs(tt.args)
			if tt.wantErr {
				assert.ErrorIs(t, err, errors.ErrUsage)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRunner_Success(t *testing.T) {
	sep := separatortest.NewMockSeparator()
	sep.On("LoadModel", mock.Anything, "UVR_MDXNET_KARA_2.onnx").Return(nil).Once()
	sep.On("Separate", mock.Anything, "in.wav").
		Return([]string{"out/in_(Vocals)_UVR_MDXNET_KARA_2.wav"}, nil).Once()
	factory := &separatortest.MockFactory{Separator: sep}

	runner := newTestRunner(factory.Factory(), config.DefaultSeparatorConfig())
	env := runner.Execute(context.Background(), Invocation{InputAudio: "in.wav", OutputDir: "out", ModelDir: "models"})

	assert.True(t, env.Success)
	assert.Equal(t, []string{"out/in_(Vocals)_UVR_MDXNET_KARA_2.wav"}, env.OutputFiles)
	assert.Equal(t, 0, env.ExitCode())
	sep.AssertExpectations(t)

	require.Len(t, factory.Calls, 1)
	assert.Equal(t, separator.Options{
		OutputDir:    "out",
		ModelDir:     "models",
		OutputFormat: "WAV",
		SingleStem:   "Vocals",
		UseDirectML:  true,
	}, factory.Calls[0])
}

func TestRunner_ErrorsAreVerbatim(t *testing.T) {
	loadErr := fmt.Errorf("model file not found: UVR_MDXNET_KARA_2.onnx in models")
	sepErr := fmt.Errorf("RuntimeError: DirectML device not available")

	tests := []struct {
		name       string
		factoryErr error
		setup      func(sep *separatortest.MockSeparator)
		wantMsg    string
	}{
		{
			name:       "construction fails",
			factoryErr: fmt.Errorf("executable not found: audio-separator"),
			setup:      func(sep *separatortest.MockSeparator) {},
			wantMsg:    "executable not found: audio-separator",
		},
		{
			name: "model load fails",
			setup: func(sep *separatortest.MockSeparator) {
				sep.On("LoadModel", mock.Anything, mock.Anything).Return(loadErr)
			},
			wantMsg: loadErr.Error(),
		},
		{
			name: "separation fails",
			setup: func(sep *separatortest.MockSeparator) {
				sep.On("LoadModel", mock.Anything, mock.Anything).Return(nil)
				sep.On("Separate", mock.Anything, mock.Anything).Return(nil, sepErr)
			},
			wantMsg: sepErr.Error(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sep := separatortest.NewMockSeparator()
			tt.setup(sep)
			factory := &separatortest.MockFactory{Separator: sep, Err: tt.factoryErr}

			runner := newTestRunner(factory.Factory(), config.DefaultSeparatorConfig())
			env := runner.Execute(context.Background(), Invocation{InputAudio: "in.wav", OutputDir: "out", ModelDir: "models"})

			assert.False(t, env.Success)
			assert.Equal(t, tt.wantMsg, env.Error)
			assert.Equal(t, 1, env.ExitCode())
			sep.AssertExpectations(t)
		})
	}
}

func TestRunner_SeparateNotCalledWhenModelMissing(t *testing.T) {
	sep := separatortest.NewMockSeparator()
	sep.On("LoadModel", mock.Anything, mock.Anything).Return(errors.ErrModelNotFound)
	factory := &separatortest.MockFactory{Separator: sep}

	_, err := newTestRunner(factory.Factory(), config.DefaultSeparatorConfig()).
		Run(context.Background(), Invocation{InputAudio: "in.wav", OutputDir: "out", ModelDir: "models"})

	assert.ErrorIs(t, err, errors.ErrModelNotFound)
	sep.AssertNotCalled(t, "Separate", mock.Anything, mock.Anything)
}

func TestRunner_UsesConfiguredModel(t *testing.T) {
	cfg := config.DefaultSeparatorConfig()
	cfg.ModelFilename = "Kim_Vocal_2.onnx"
	cfg.SingleStem = ""
	cfg.UseDirectML = false

	sep := separatortest.NewMockSeparator()
	sep.On("LoadModel", mock.Anything, "Kim_Vocal_2.onnx").Return(nil)
	sep.On("Separate", mock.Anything, "in.wav").Return([]string{"a.wav", "b.wav"}, nil)
	factory := &separatortest.MockFactory{Separator: sep}

	files, err := newTestRunner(factory.Factory(), cfg).
		Run(context.Background(), Invocation{InputAudio: "in.wav", OutputDir: "out", ModelDir: "models"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.wav", "b.wav"}, files)
	assert.Empty(t, factory.Calls[0].SingleStem)
	assert.False(t, factory.Calls[0].UseDirectML)
}

func TestRunner_WritesMetricsTextfile(t *testing.T) {
	cfg := config.DefaultSeparatorConfig()
	cfg.MetricsFile = filepath.Join(t.TempDir(), "separator.prom")

	sep := separatortest.NewMockSeparator()
	sep.On("LoadModel", mock.Anything, mock.Anything).Return(nil)
	sep.On("Separate", mock.Anything, mock.Anything).Return([]string{"a.wav"}, nil)
	factory := &separatortest.MockFactory{Separator: sep}

	_, err := newTestRunner(factory.Factory(), cfg).
		Run(context.Background(), Invocation{InputAudio: "in.wav", OutputDir: "out", ModelDir: "models"})
	require.NoError(t, err)

	data, err := os.ReadFile(cfg.MetricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `vocal_separator_runs_total{result="success"} 1`)
}
