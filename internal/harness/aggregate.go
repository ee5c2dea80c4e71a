package harness

import (
	"math"
	"math/bits"
)

// sampleSet holds the raw elapsed time of each timed sample.
type sampleSet struct {
	values [MaxSamples]uint64
	n      int
}

func (s *sampleSet) add(ns uint64) {
	s.values[s.n] = ns
	s.n++
}

func (s *sampleSet) slice() []uint64 {
	return s.values[:s.n]
}

// aggregate reduces raw samples into a BenchmarkResult.
//
// Statistics are computed at sample level first and only then normalized to
// a single iteration. Reversing the order changes the result because every
// division truncates.
func aggregate(samples []uint64, plan SamplePlan) BenchmarkResult {
	if len(samples) == 0 {
		return BenchmarkResult{Iterations: plan.Iterations}
	}

	var total, sumHi, sumLo uint64
	minNs, maxNs := uint64(math.MaxUint64), uint64(0)
	for _, s := range samples {
		total = addSaturating(total, s)
		minNs = min(minNs, s)
		maxNs = max(maxNs, s)

		var carry uint64
		sumLo, carry = bits.Add64(sumLo, s, 0)
		sumHi += carry
	}

	// The mean comes from the full 128-bit sum so it stays within
	// [min, max] even when TotalNs saturates.
	count := uint64(len(samples))
	_, avg := div128(sumHi, sumLo, count)
	variance := sampleVariance(samples, avg)

	ips := plan.IterationsPerSample
	return BenchmarkResult{
		Iterations: plan.Iterations,
		TotalNs:    total,
		AvgNs:      avg / ips,
		MinNs:      minNs / ips,
		MaxNs:      maxNs / ips,
		VarianceNs: divBySquare(variance, ips),
	}
}

// sampleVariance is the mean squared deviation from avg. Squares and their
// sum are kept in 128 bits; the quotient saturates at MaxUint64.
func sampleVariance(samples []uint64, avg uint64) uint64 {
	var hi, lo uint64
	for _, s := range samples {
		d := absDiff(s, avg)
		sqHi, sqLo := bits.Mul64(d, d)

		var carry uint64
		lo, carry = bits.Add64(lo, sqLo, 0)
		hi, carry = bits.Add64(hi, sqHi, carry)
		if carry != 0 {
			return math.MaxUint64
		}
	}

	qHi, qLo := div128(hi, lo, uint64(len(samples)))
	if qHi != 0 {
		return math.MaxUint64
	}
	return qLo
}

// div128 divides the 128-bit value hi:lo by d.
func div128(hi, lo, d uint64) (uint64, uint64) {
	qHi := hi / d
	qLo, _ := bits.Div64(hi%d, lo, d)
	return qHi, qLo
}

// divBySquare returns floor(v / (d*d)) without overflowing d*d.
func divBySquare(v, d uint64) uint64 {
	sqHi, sqLo := bits.Mul64(d, d)
	if sqHi != 0 {
		return 0
	}
	return v / sqLo
}

func absDiff(a, b uint64) uint64 {
	if a > b {
		return a - b
	}
	return b - a
}

func addSaturating(a, b uint64) uint64 {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		return math.MaxUint64
	}
	return sum
}
