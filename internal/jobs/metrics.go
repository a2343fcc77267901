package jobs

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeSuccess = "success"
	outcomeFailure = "failure"
)

// Metrics counts and times job executions. A nil *Metrics records nothing.
type Metrics struct {
	runs     *prometheus.CounterVec
	duration *prometheus.HistogramVec
	running  *prometheus.GaugeVec
}

// NewMetrics registers the job metrics on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		runs: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "scheduler",
			Name:      "job_runs_total",
			Help:      "Job executions by job name and outcome.",
		}, []string{"job", "outcome"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "scheduler",
			Name:      "job_run_duration_seconds",
			Help:      "Job execution time.",
			Buckets:   []float64{0.1, 0.5, 1, 5, 10, 30, 60, 300, 900},
		}, []string{"job"}),
		running: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "scheduler",
			Name:      "jobs_running",
			Help:      "Job executions in progress.",
		}, []string{"job"}),
	}
}

func (m *Metrics) started(name string) {
	if m == nil {
		return
	}
	m.running.WithLabelValues(name).Inc()
}

func (m *Metrics) finished(name string, took time.Duration, err error) {
	if m == nil {
		return
	}
	outcome := outcomeSuccess
	if err != nil {
		outcome = outcomeFailure
	}
	m.running.WithLabelValues(name).Dec()
	m.runs.WithLabelValues(name, outcome).Inc()
	m.duration.WithLabelValues(name).Observe(took.Seconds())
}
