package report

import (
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics are plain harness counters. They describe what the harness did,
// never what the workloads cost; timings live in RunResult and Matrix.
type Metrics struct {
	BatteriesStarted   atomic.Uint64 // Run() entered with a valid count
	BatteriesCompleted atomic.Uint64 // Run() returned a result
	BatteriesFailed    atomic.Uint64 // a workload panicked

	Checkpoints atomic.Uint64 // one per workload per completed loop
	Iterations  atomic.Uint64 // workload calls, summed over all workloads
}

var (
	batteriesDesc = prometheus.NewDesc(
		"fieldbench_batteries_total",
		"Battery executions by outcome",
		[]string{"outcome"}, nil,
	)
	checkpointsDesc = prometheus.NewDesc(
		"fieldbench_checkpoints_total",
		"Stopwatch checkpoints taken",
		nil, nil,
	)
	iterationsDesc = prometheus.NewDesc(
		"fieldbench_workload_iterations_total",
		"Workload invocations across all batteries",
		nil, nil,
	)
)

// NewMetrics creates a zeroed counter set
func NewMetrics() *Metrics {
	return &Metrics{}
}

// Snapshot returns current counter values
func (m *Metrics) Snapshot() map[string]uint64 {
	return map[string]uint64{
		"batteries_started":   m.BatteriesStarted.Load(),
		"batteries_completed": m.BatteriesCompleted.Load(),
		"batteries_failed":    m.BatteriesFailed.Load(),
		"checkpoints":         m.Checkpoints.Load(),
		"iterations":          m.Iterations.Load(),
	}
}

// Describe implements prometheus.Collector
func (m *Metrics) Describe(ch chan<- *prometheus.Desc) {
	ch <- batteriesDesc
	ch <- checkpointsDesc
	ch <- iterationsDesc
}

// Collect implements prometheus.Collector
func (m *Metrics) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(batteriesDesc, prometheus.CounterValue,
		float64(m.BatteriesStarted.Load()), "started")
	ch <- prometheus.MustNewConstMetric(batteriesDesc, prometheus.CounterValue,
		float64(m.BatteriesCompleted.Load()), "completed")
	ch <- prometheus.MustNewConstMetric(batteriesDesc, prometheus.CounterValue,
		float64(m.BatteriesFailed.Load()), "failed")
	ch <- prometheus.MustNewConstMetric(checkpointsDesc, prometheus.CounterValue,
		float64(m.Checkpoints.Load()))
	ch <- prometheus.MustNewConstMetric(iterationsDesc, prometheus.CounterValue,
		float64(m.Iterations.Load()))
}
