package pipeline

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONReporter(t *testing.T) {
	var buf bytes.Buffer
	r := NewJSONReporter(&buf)

	r.Report(Update{Stage: StageExtracting, Message: "Extracting audio", Progress: 20})
	r.Report(Update{Stage: StageDone, Message: "Vocal separation complete", Progress: 100, OutputPath: "s/vocals.wav"})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	assert.JSONEq(t, `{"stage":"extracting","message":"Extracting audio","progress":20}`, lines[0])
	assert.JSONEq(t, `{"stage":"done","message":"Vocal separation complete","progress":100,"outputPath":"s/vocals.wav"}`, lines[1])

	var u Update
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &u))
	assert.Equal(t, StageDone, u.Stage)
}

func TestMultiReporter(t *testing.T) {
	var a, b []Stage
	m := MultiReporter{
		ReporterFunc(func(u Update) { a = append(a, u.Stage) }),
		ReporterFunc(func(u Update) { b = append(b, u.Stage) }),
	}

	m.Report(Update{Stage: StageStarting})
	m.Report(Update{Stage: StageError})

	assert.Equal(t, []Stage{StageStarting, StageError}, a)
	assert.Equal(t, a, b)
}

func TestBarReporter_Disabled(t *testing.T) {
	manager := NewProgressManager(ProgressConfig{Enabled: false})
	r := NewBarReporter(manager, "clip.mp4")

	assert.NotPanics(t, func() {
		r.Report(Update{Stage: StageSeparating, Progress: 30})
		r.Report(Update{Stage: StageError, Message: "boom"})
		manager.Wait()
	})
}

func TestBarReporter_Enabled(t *testing.T) {
	tests := []struct {
		name    string
		updates []Update
	}{
		{
			name: "completes",
			updates: []Update{
				{Stage: StageStarting, Message: "Preparing vocal separation"},
				{Stage: StageSeparating, Message: "Separating vocals", Progress: 30},
				{Stage: StageDone, Message: "Vocal separation complete", Progress: 100},
			},
		},
		{
			name: "aborts",
			updates: []Update{
				{Stage: StageExtracting, Message: "Extracting audio", Progress: 20},
				{Stage: StageError, Message: "ffmpeg failed"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			manager := NewProgressManager(ProgressConfig{Enabled: true, Writer: &buf})
			r := NewBarReporter(manager, "clip.mp4")

			for _, u := range tt.updates {
				r.Report(u)
			}
			manager.Wait()

			// the buffer is not a terminal, so this only renders with auto refresh
			assert.Contains(t, buf.String(), "clip.mp4")
			if last := tt.updates[len(tt.updates)-1]; last.Stage == StageDone {
				assert.Contains(t, buf.String(), last.Message)
			}
		})
	}
}

func TestShouldShowProgress(t *testing.T) {
	assert.True(t, ShouldShowProgress(true))
	assert.False(t, IsTTY(nil))
	assert.False(t, IsTTY(&bytes.Buffer{}))
}
