package harness

import (
	"fmt"
	"math"
)

// BenchmarkResult contains benchmark results. All durations are in
// nanoseconds; Avg, Min, Max and Variance are per single iteration while
// TotalNs is the raw sum of the timed samples.
type BenchmarkResult struct {
	Iterations uint64 `json:"iterations" yaml:"iterations"`
	TotalNs    uint64 `json:"total_ns" yaml:"total_ns"`
	AvgNs      uint64 `json:"avg_ns" yaml:"avg_ns"`
	MinNs      uint64 `json:"min_ns" yaml:"min_ns"`
	MaxNs      uint64 `json:"max_ns" yaml:"max_ns"`
	VarianceNs uint64 `json:"variance_ns" yaml:"variance_ns"`
}

// StdDevNs returns the per-iteration standard deviation.
func (r BenchmarkResult) StdDevNs() float64 {
	return math.Sqrt(float64(r.VarianceNs))
}

// CoefficientOfVariation returns the standard deviation as a percentage of
// the average. A zero average yields zero.
func (r BenchmarkResult) CoefficientOfVariation() float64 {
	if r.AvgNs == 0 {
		return 0
	}
	return r.StdDevNs() / float64(r.AvgNs) * 100
}

// String returns a string representation of the benchmark result
func (r BenchmarkResult) String() string {
	return fmt.Sprintf("%d iterations (avg: %d ns, min: %d ns, max: %d ns, cv: %.2f%%)",
		r.Iterations, r.AvgNs, r.MinNs, r.MaxNs, r.CoefficientOfVariation())
}
