package report

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

var elapsedDesc = prometheus.NewDesc(
	"fieldbench_workload_elapsed_milliseconds",
	"Total milliseconds one battery run spent in a workload",
	[]string{"workload", "run"}, nil,
)

// MatrixCollector exposes every present cell of a matrix as a gauge.
// Absent cells emit nothing. The source func is called on every scrape so
// callers can hand out a locked snapshot.
type MatrixCollector struct {
	source func() *Matrix
}

// NewMatrixCollector creates a collector reading matrices from source
func NewMatrixCollector(source func() *Matrix) *MatrixCollector {
	return &MatrixCollector{source: source}
}

// Describe implements prometheus.Collector
func (c *MatrixCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- elapsedDesc
}

// Collect implements prometheus.Collector
func (c *MatrixCollector) Collect(ch chan<- prometheus.Metric) {
	m := c.source()
	if m == nil {
		return
	}
	for _, name := range m.Rows() {
		for col, cell := range m.Row(name) {
			if !cell.Present {
				continue
			}
			ch <- prometheus.MustNewConstMetric(elapsedDesc, prometheus.GaugeValue,
				cell.Value, name, strconv.Itoa(col+1))
		}
	}
}

// PrometheusExport renders the matrix, plus any extra collectors, in the
// Prometheus text format.
func PrometheusExport(m *Matrix, extra ...prometheus.Collector) (string, error) {
	registry := prometheus.NewRegistry()
	if err := registry.Register(NewMatrixCollector(func() *Matrix { return m })); err != nil {
		return "", fmt.Errorf("failed to register matrix collector: %w", err)
	}
	for _, c := range extra {
		if err := registry.Register(c); err != nil {
			return "", fmt.Errorf("failed to register collector: %w", err)
		}
	}

	families, err := registry.Gather()
	if err != nil {
		return "", fmt.Errorf("failed to gather metrics: %w", err)
	}

	var buf bytes.Buffer
	encoder := expfmt.NewEncoder(&buf, expfmt.FmtText)
	for _, mf := range families {
		if err := encoder.Encode(mf); err != nil {
			return "", fmt.Errorf("failed to encode %s: %w", mf.GetName(), err)
		}
	}
	return buf.String(), nil
}
