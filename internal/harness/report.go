package harness

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
)

// Speedup returns b.AvgNs / a.AvgNs. Values above 1.0 mean a is faster.
// Two zero averages compare as equal. A zero average for a alone gives +Inf
// and a zero average for b alone gives 0.
func Speedup(a, b BenchmarkResult) float64 {
	if a.AvgNs == 0 {
		if b.AvgNs == 0 {
			return 1.0
		}
		return math.Inf(1)
	}
	return float64(b.AvgNs) / float64(a.AvgNs)
}

// Comparison is the relative standing of two named results.
type Comparison struct {
	Name1             string          `json:"name1" yaml:"name1"`
	Name2             string          `json:"name2" yaml:"name2"`
	Result1           BenchmarkResult `json:"result1" yaml:"result1"`
	Result2           BenchmarkResult `json:"result2" yaml:"result2"`
	Speedup           float64         `json:"speedup" yaml:"speedup"`
	DifferenceNs      uint64          `json:"difference_ns" yaml:"difference_ns"`
	DifferencePercent float64         `json:"difference_percent" yaml:"difference_percent"`
}

// Compare computes how result1 stands against result2.
func Compare(name1 string, result1 BenchmarkResult, name2 string, result2 BenchmarkResult) Comparison {
	diff := absDiff(result1.AvgNs, result2.AvgNs)

	var pct float64
	switch {
	case result2.AvgNs != 0:
		pct = float64(diff) / float64(result2.AvgNs) * 100
	case diff != 0:
		pct = math.Inf(1)
	}

	return Comparison{
		Name1:             name1,
		Name2:             name2,
		Result1:           result1,
		Result2:           result2,
		Speedup:           Speedup(result1, result2),
		DifferenceNs:      diff,
		DifferencePercent: pct,
	}
}

// MarshalJSON encodes infinite ratios as null since JSON has no infinity.
func (c Comparison) MarshalJSON() ([]byte, error) {
	type plain Comparison
	return json.Marshal(struct {
		plain
		Speedup           *float64 `json:"speedup"`
		DifferencePercent *float64 `json:"difference_percent"`
	}{plain(c), finite(c.Speedup), finite(c.DifferencePercent)})
}

func finite(f float64) *float64 {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return nil
	}
	return &f
}

// Faster reports whether the first result beat the second.
func (c Comparison) Faster() bool {
	return c.Speedup > 1.0
}

// Verdict renders the comparison as a single sentence. A zero average on
// one side only reads as infinitely faster or slower.
func (c Comparison) Verdict() string {
	switch {
	case math.IsInf(c.Speedup, 1):
		return fmt.Sprintf("%s is infinitely faster than %s", c.Name1, c.Name2)
	case c.Speedup == 0:
		return fmt.Sprintf("%s is infinitely slower than %s", c.Name1, c.Name2)
	case c.Faster():
		return fmt.Sprintf("%s is %.2fx faster than %s", c.Name1, c.Speedup, c.Name2)
	default:
		return fmt.Sprintf("%s is %.2fx slower than %s", c.Name1, 1/c.Speedup, c.Name2)
	}
}

// UnitAnnotation returns the average in a larger unit when it reads better,
// e.g. "1.500 ms" or "2.500 µs". Short durations get no annotation.
func UnitAnnotation(ns uint64) string {
	switch {
	case ns > 1_000_000:
		return fmt.Sprintf("%.3f ms", float64(ns)/1e6)
	case ns > 1_000:
		return fmt.Sprintf("%.3f µs", float64(ns)/1e3)
	default:
		return ""
	}
}

// WriteReport writes a human-readable summary of r to w. Write errors are
// returned unchanged.
func WriteReport(w io.Writer, r BenchmarkResult) error {
	ew := &errWriter{w: w}

	ew.printf("  Iterations: %d\n", r.Iterations)
	if unit := UnitAnnotation(r.AvgNs); unit != "" {
		ew.printf("  Average:    %d ns (%s)\n", r.AvgNs, unit)
	} else {
		ew.printf("  Average:    %d ns\n", r.AvgNs)
	}
	ew.printf("  Minimum:    %d ns\n", r.MinNs)
	ew.printf("  Maximum:    %d ns\n", r.MaxNs)
	ew.printf("  Variance:   %d ns²\n", r.VarianceNs)
	ew.printf("  CV:         %.2f%%\n", r.CoefficientOfVariation())

	return ew.err
}

// WriteComparison writes both reports followed by the verdict and the
// absolute difference between the averages.
func WriteComparison(w io.Writer, name1 string, result1 BenchmarkResult, name2 string, result2 BenchmarkResult) error {
	return Compare(name1, result1, name2, result2).Report(w)
}

// Report writes the comparison report to w.
func (c Comparison) Report(w io.Writer) error {
	return c.ReportStyled(w, nil)
}

// ReportStyled is Report with the verdict line passed through style, which
// lets terminal output highlight it. A nil style leaves the verdict as is.
func (c Comparison) ReportStyled(w io.Writer, style func(string) string) error {
	ew := &errWriter{w: w}

	verdict := c.Verdict()
	if style != nil {
		verdict = style(verdict)
	}

	ew.printf("%s:\n", c.Name1)
	if ew.err == nil {
		ew.err = WriteReport(w, c.Result1)
	}
	ew.printf("\n%s:\n", c.Name2)
	if ew.err == nil {
		ew.err = WriteReport(w, c.Result2)
	}
	ew.printf("\n%s\n", verdict)
	if math.IsInf(c.DifferencePercent, 0) {
		ew.printf("Difference: %d ns\n", c.DifferenceNs)
	} else {
		ew.printf("Difference: %d ns (%.2f%%)\n", c.DifferenceNs, c.DifferencePercent)
	}

	return ew.err
}

// errWriter stops writing after the first failure and remembers it.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}
