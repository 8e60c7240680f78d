package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Result labels for a finished run.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// Recorder collects the metrics of one process. A run is short-lived, so
// the metrics are exported as a node-exporter textfile rather than scraped.
type Recorder struct {
	registry    *prometheus.Registry
	runs        *prometheus.CounterVec
	duration    prometheus.Histogram
	outputFiles prometheus.Gauge
}

// NewRecorder creates a Recorder backed by its own registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vocal_separator",
			Name:      "runs_total",
			Help:      "Separation runs by result.",
		}, []string{"result"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "vocal_separator",
			Name:      "duration_seconds",
			Help:      "Wall time of model loading plus separation.",
			Buckets:   []float64{1, 5, 15, 30, 60, 120, 300, 600},
		}),
		outputFiles: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "vocal_separator",
			Name:      "output_files",
			Help:      "Stem files written by the last run.",
		}),
	}
	r.registry.MustRegister(r.runs, r.duration, r.outputFiles)
	return r
}

// ObserveSuccess records a run that produced files.
func (r *Recorder) ObserveSuccess(elapsed time.Duration, files int) {
	r.runs.WithLabelValues(ResultSuccess).Inc()
	r.duration.Observe(elapsed.Seconds())
	r.outputFiles.Set(float64(files))
}

// ObserveFailure records a failed run.
func (r *Recorder) ObserveFailure(elapsed time.Duration) {
	r.runs.WithLabelValues(ResultFailure).Inc()
	r.duration.Observe(elapsed.Seconds())
	r.outputFiles.Set(0)
}

// Gatherer exposes the underlying registry.
func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}

// WriteTextfile writes the metrics to path in the text exposition format.
// An empty path disables the export.
func (r *Recorder) WriteTextfile(path string) error {
	if path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, r.Gatherer())
}
