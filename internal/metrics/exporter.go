// Package metrics exports benchmark results as Prometheus gauges.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/zebiner/benchkit/internal/harness"
)

const namespace = "benchkit"

// Exporter holds one gauge family per result field on a private registry.
type Exporter struct {
	registry   *prometheus.Registry
	iterations *prometheus.GaugeVec
	avg        *prometheus.GaugeVec
	min        *prometheus.GaugeVec
	max        *prometheus.GaugeVec
	variance   *prometheus.GaugeVec
	cv         *prometheus.GaugeVec
}

// NewExporter creates an exporter with all gauges registered.
func NewExporter() *Exporter {
	gauge := func(name, help string) *prometheus.GaugeVec {
		return prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      name,
			Help:      help,
		}, []string{"benchmark"})
	}

	e := &Exporter{
		registry:   prometheus.NewRegistry(),
		iterations: gauge("iterations", "Iteration budget of the benchmark."),
		avg:        gauge("avg_ns", "Average nanoseconds per iteration."),
		min:        gauge("min_ns", "Fastest sample, nanoseconds per iteration."),
		max:        gauge("max_ns", "Slowest sample, nanoseconds per iteration."),
		variance:   gauge("variance_ns", "Sample variance normalized per iteration."),
		cv:         gauge("cv_percent", "Coefficient of variation in percent."),
	}
	e.registry.MustRegister(e.iterations, e.avg, e.min, e.max, e.variance, e.cv)
	return e
}

// Record sets the gauges for one named result.
func (e *Exporter) Record(name string, r harness.BenchmarkResult) {
	e.iterations.WithLabelValues(name).Set(float64(r.Iterations))
	e.avg.WithLabelValues(name).Set(float64(r.AvgNs))
	e.min.WithLabelValues(name).Set(float64(r.MinNs))
	e.max.WithLabelValues(name).Set(float64(r.MaxNs))
	e.variance.WithLabelValues(name).Set(float64(r.VarianceNs))
	e.cv.WithLabelValues(name).Set(r.CoefficientOfVariation())
}

// RecordAll records every result of a suite run.
func (e *Exporter) RecordAll(results []harness.NamedResult) {
	for _, r := range results {
		e.Record(r.Name, r.Result)
	}
}

// Gatherer exposes the underlying registry.
func (e *Exporter) Gatherer() prometheus.Gatherer {
	return e.registry
}

// WriteTextfile writes the current values in the text exposition format,
// suitable for the node exporter textfile collector.
func (e *Exporter) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, e.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}
