package harness

import (
	"fmt"

	"github.com/zebiner/benchkit/internal/profiling"
)

// Benchmark measures a zero-argument callable over the given iteration
// budget. Every result is routed through profiling.BlackBox so the calls
// cannot be optimized away. A panic in fn aborts the benchmark.
func Benchmark[T any](fn func() T, iterations uint64) (BenchmarkResult, error) {
	return measure(iterations,
		func(n uint64) { spin(fn, n) },
		func(n uint64) (uint64, error) { return timedSpin(fn, n) },
	)
}

// BenchmarkWithArg measures a single-argument callable. The same argument
// is passed to every invocation.
func BenchmarkWithArg[A, T any](fn func(A) T, arg A, iterations uint64) (BenchmarkResult, error) {
	return measure(iterations,
		func(n uint64) { spinWithArg(fn, arg, n) },
		func(n uint64) (uint64, error) { return timedSpinWithArg(fn, arg, n) },
	)
}

// BenchmarkSliceOp measures a callable over a read-only slice. It behaves
// exactly like BenchmarkWithArg and exists to make call sites read clearly.
func BenchmarkSliceOp[E, T any](fn func([]E) T, data []E, iterations uint64) (BenchmarkResult, error) {
	return BenchmarkWithArg(fn, data, iterations)
}

// TimeOperation times a single invocation of fn, for work too expensive to
// repeat. It returns the raw elapsed nanoseconds.
func TimeOperation[T any](fn func() T) (uint64, error) {
	return timedSpin(fn, 1)
}

// TimeOperationWithArg times a single invocation of fn(arg).
func TimeOperationWithArg[A, T any](fn func(A) T, arg A) (uint64, error) {
	return timedSpinWithArg(fn, arg, 1)
}

// measure drives the warm-up and sample phases. warm and timed run n
// invocations each; only timed is measured.
func measure(iterations uint64, warm func(n uint64), timed func(n uint64) (uint64, error)) (BenchmarkResult, error) {
	plan, err := NewSamplePlan(iterations)
	if err != nil {
		return BenchmarkResult{}, err
	}

	warm(plan.WarmupIterations)

	var samples sampleSet
	for i := uint64(0); i < plan.NumSamples; i++ {
		ns, err := timed(plan.IterationsPerSample)
		if err != nil {
			return BenchmarkResult{}, fmt.Errorf("sample %d: %w", i+1, err)
		}
		samples.add(ns)
	}

	return aggregate(samples.slice(), plan), nil
}

// startClock is the clock every timed loop reads. Tests replace it to
// simulate clock failure.
var startClock = profiling.StartClock

// The loops below are kept out of line so fn stays an opaque func value
// inside them and the loop bodies cannot be specialized away.

//go:noinline
func spin[T any](fn func() T, n uint64) {
	for i := uint64(0); i < n; i++ {
		profiling.BlackBox(fn())
	}
}

//go:noinline
func spinWithArg[A, T any](fn func(A) T, arg A, n uint64) {
	for i := uint64(0); i < n; i++ {
		profiling.BlackBox(fn(arg))
	}
}

//go:noinline
func timedSpin[T any](fn func() T, n uint64) (uint64, error) {
	start, err := startClock()
	if err != nil {
		return 0, err
	}
	for i := uint64(0); i < n; i++ {
		profiling.BlackBox(fn())
	}
	return start.Elapsed(), nil
}

//go:noinline
func timedSpinWithArg[A, T any](fn func(A) T, arg A, n uint64) (uint64, error) {
	start, err := startClock()
	if err != nil {
		return 0, err
	}
	for i := uint64(0); i < n; i++ {
		profiling.BlackBox(fn(arg))
	}
	return start.Elapsed(), nil
}
