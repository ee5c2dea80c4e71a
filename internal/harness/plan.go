// Package harness measures the per-iteration cost of arbitrary callables.
//
// A benchmarking call runs an untimed warm-up, then a small fixed number of
// timed samples, each made of many back-to-back invocations. The raw sample
// times are reduced into a BenchmarkResult holding per-iteration average,
// minimum, maximum and variance. Everything runs on the calling goroutine;
// nothing here is safe to run concurrently with other benchmarks on the same
// machine if the numbers are meant to be trusted.
package harness

import (
	"errors"
	"fmt"
)

const (
	// MaxSamples caps the number of timed samples per benchmark. It is also
	// the capacity of the sample buffer; changing it changes the variance.
	MaxSamples = 10

	// MaxWarmupIterations caps the untimed warm-up phase.
	MaxWarmupIterations = 100

	// warmupDivisor and sampleDivisor derive the warm-up length and sample
	// count from the iteration budget.
	warmupDivisor = 10
	sampleDivisor = 100
)

var (
	// ErrZeroIterations is returned when a benchmark is asked for zero
	// iterations.
	ErrZeroIterations = errors.New("iterations must be greater than zero")

	// ErrEmptySample is returned when a plan would time samples containing
	// no iterations.
	ErrEmptySample = errors.New("iterations per sample must be greater than zero")
)

// SamplePlan describes how an iteration budget is split into a warm-up
// phase and timed samples.
type SamplePlan struct {
	Iterations          uint64 `json:"iterations" yaml:"iterations"`
	WarmupIterations    uint64 `json:"warmup_iterations" yaml:"warmup_iterations"`
	NumSamples          uint64 `json:"num_samples" yaml:"num_samples"`
	IterationsPerSample uint64 `json:"iterations_per_sample" yaml:"iterations_per_sample"`
}

// NewSamplePlan derives the sampling parameters for an iteration budget.
//
// Samples are clamped to [1, MaxSamples]. Since NumSamples never exceeds
// max(1, iterations/100), every sample holds at least one iteration for any
// non-zero budget; ErrEmptySample guards that invariant.
func NewSamplePlan(iterations uint64) (SamplePlan, error) {
	if iterations == 0 {
		return SamplePlan{}, ErrZeroIterations
	}

	numSamples := clamp(iterations/sampleDivisor, 1, MaxSamples)
	plan := SamplePlan{
		Iterations:          iterations,
		WarmupIterations:    min(iterations/warmupDivisor, MaxWarmupIterations),
		NumSamples:          numSamples,
		IterationsPerSample: iterations / numSamples,
	}
	if plan.IterationsPerSample == 0 {
		return SamplePlan{}, fmt.Errorf("%w: %d iterations over %d samples", ErrEmptySample, iterations, numSamples)
	}
	return plan, nil
}

// MeasuredIterations is the number of invocations that fall inside timed
// samples. It can be lower than Iterations because of integer division.
func (p SamplePlan) MeasuredIterations() uint64 {
	return p.NumSamples * p.IterationsPerSample
}

// TotalInvocations counts every call a benchmark makes, warm-up included.
func (p SamplePlan) TotalInvocations() uint64 {
	return p.WarmupIterations + p.MeasuredIterations()
}

func clamp(v, lo, hi uint64) uint64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
