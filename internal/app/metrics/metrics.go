package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	apperrors "a2t/internal/app/errors"
)

// Upload outcomes
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Recorder collects the metrics of a single run in a private registry.
type Recorder struct {
	registry    *prometheus.Registry
	uploads     *prometheus.CounterVec
	uploadBytes prometheus.Counter
	units       prometheus.Gauge
	runDuration prometheus.Gauge
}

func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		uploads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "a2t_uploads_total",
			Help: "Transcription requests by outcome.",
		}, []string{"outcome"}),
		uploadBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "a2t_upload_bytes_total",
			Help: "Audio bytes sent to the transcription service.",
		}),
		units: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "a2t_units",
			Help: "Units in the chunking plan of the last run.",
		}),
		runDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "a2t_run_duration_seconds",
			Help: "Wall clock time of the last run.",
		}),
	}
	r.registry.MustRegister(r.uploads, r.uploadBytes, r.units, r.runDuration)
	return r
}

func (r *Recorder) ObserveUpload(outcome string, bytes int64) {
	r.uploads.WithLabelValues(outcome).Inc()
	if outcome == OutcomeSuccess {
		r.uploadBytes.Add(float64(bytes))
	}
}

func (r *Recorder) SetUnits(n int) {
	r.units.Set(float64(n))
}

func (r *Recorder) ObserveRun(d time.Duration) {
	r.runDuration.Set(d.Seconds())
}

// Gatherer exposes the registry.
func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}

// WriteFile stores the metrics in node exporter textfile format. A nil
// recorder or an empty path is a no-op.
func (r *Recorder) WriteFile(path string) error {
	if r == nil || path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return apperrors.Environment(err, "cannot write metrics to '%s'", path)
	}
	return nil
}
