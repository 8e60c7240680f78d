package pipeline

import (
	"encoding/json"
	"io"
	"sync"
)

// Stage names one step of an isolation run.
type Stage string

const (
	StageStarting   Stage = "starting"
	StageChecking   Stage = "checking"
	StageExtracting Stage = "extracting"
	StageSeparating Stage = "separating"
	StageProcessing Stage = "processing"
	StageDone       Stage = "done"
	StageError      Stage = "error"
)

// Update is one progress notification.
type Update struct {
	Stage      Stage  `json:"stage"`
	Message    string `json:"message"`
	Progress   int    `json:"progress"`
	OutputPath string `json:"outputPath,omitempty"`
}

// Reporter receives the updates of an isolation run in order.
type Reporter interface {
	Report(update Update)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(update Update)

func (f ReporterFunc) Report(update Update) { f(update) }

// JSONReporter writes each update as one line of JSON.
type JSONReporter struct {
	mu  sync.Mutex
	enc *json.Encoder
}

func NewJSONReporter(w io.Writer) *JSONReporter {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return &JSONReporter{enc: enc}
}

func (r *JSONReporter) Report(update Update) {
	r.mu.Lock()
	defer r.mu.Unlock()
	// a broken stdout is not worth failing the run for
	_ = r.enc.Encode(update)
}

// BarReporter mirrors updates onto a progress bar.
type BarReporter struct {
	bar *ProgressBar
}

func NewBarReporter(manager *ProgressManager, description string) *BarReporter {
	return &BarReporter{bar: manager.CreateBar(100, description)}
}

func (r *BarReporter) Report(update Update) {
	switch update.Stage {
	case StageDone:
		r.bar.SetProgress(int64(update.Progress), update.Message)
		r.bar.Complete()
	case StageError:
		r.bar.SetProgress(r.current(), update.Message)
		r.bar.Abort()
	default:
		r.bar.SetProgress(int64(update.Progress), update.Message)
	}
}

func (r *BarReporter) current() int64 {
	if r.bar.bar == nil {
		return 0
	}
	return r.bar.bar.Current()
}

// MultiReporter fans updates out to several reporters.
type MultiReporter []Reporter

func (m MultiReporter) Report(update Update) {
	for _, r := range m {
		r.Report(update)
	}
}
