package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics collects the counters of analysis runs on a private registry.
type Metrics struct {
	Registry *prometheus.Registry

	Runs          *prometheus.CounterVec
	Documents     prometheus.Counter
	Tokens        *prometheus.CounterVec
	StageDuration *prometheus.HistogramVec
	LastRun       prometheus.Gauge
}

// New registers every collector on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		Runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "transcripts_runs_total",
				Help: "Analysis runs by outcome.",
			},
			[]string{"outcome"},
		),
		Documents: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "transcripts_documents_total",
				Help: "Transcript files loaded.",
			},
		),
		Tokens: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "transcripts_tokens_total",
				Help: "Word tokens seen, split into kept and dropped by the cleaner.",
			},
			[]string{"result"},
		),
		StageDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "transcripts_stage_duration_seconds",
				Help:    "Time spent in each pipeline stage.",
				Buckets: prometheus.ExponentialBuckets(0.001, 4, 8),
			},
			[]string{"stage"},
		),
		LastRun: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "transcripts_last_run_timestamp_seconds",
				Help: "Unix time of the last finished run.",
			},
		),
	}
	m.Registry.MustRegister(m.Runs, m.Documents, m.Tokens, m.StageDuration, m.LastRun)
	return m
}

// Stage starts timing a stage; call the returned func when it ends.
func (m *Metrics) Stage(name string) func() {
	start := time.Now()
	return func() {
		m.StageDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
	}
}

// Finish records the outcome of a run.
func (m *Metrics) Finish(err error) {
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	m.Runs.WithLabelValues(outcome).Inc()
	m.LastRun.SetToCurrentTime()
}

// WriteTextfile writes the registry in the node-exporter textfile format.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.Registry); err != nil {
		return fmt.Errorf("metrics: %w", err)
	}
	return nil
}
