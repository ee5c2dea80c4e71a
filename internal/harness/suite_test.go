package harness

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuiteRunsCasesInOrder(t *testing.T) {
	var order []string
	track := func(name string) CaseFunc {
		return Case(func() string {
			if len(order) == 0 || order[len(order)-1] != name {
				order = append(order, name)
			}
			return name
		})
	}

	s := NewSuite()
	require.NoError(t, s.Add("first", track("first")))
	require.NoError(t, s.Add("second", track("second")))
	require.NoError(t, s.Add("third", track("third")))

	results, err := s.Run(100)
	require.NoError(t, err)

	assert.Equal(t, []string{"first", "second", "third"}, order)
	require.Len(t, results, 3)
	for i, name := range s.Names() {
		assert.Equal(t, name, results[i].Name)
		assert.Equal(t, uint64(100), results[i].Result.Iterations)
		assert.Equal(t, uint64(1), results[i].Plan.NumSamples)
	}
}

func TestSuiteRejectsDuplicates(t *testing.T) {
	s := NewSuite()
	require.NoError(t, s.Add("x", Case(func() int { return 0 })))

	err := s.Add("x", Case(func() int { return 1 }))
	assert.ErrorIs(t, err, ErrDuplicateCase)
	assert.Equal(t, 1, s.Len())
}

func TestSuiteRunSelected(t *testing.T) {
	s := NewSuite()
	require.NoError(t, s.Add("a", CaseWithArg(func(n int) int { return n + 1 }, 1)))
	require.NoError(t, s.Add("b", CaseSliceOp(func(v []int) int { return len(v) }, []int{1, 2})))

	results, err := s.RunSelected(10, "b", "a")
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "b", results[0].Name)
	assert.Equal(t, "a", results[1].Name)

	_, err = s.RunSelected(10, "a", "missing")
	assert.ErrorIs(t, err, ErrUnknownCase)
}

func TestSuiteStopsOnFirstFailure(t *testing.T) {
	errBoom := errors.New("boom")
	ran := false

	s := NewSuite()
	require.NoError(t, s.Add("ok", Case(func() int { return 1 })))
	require.NoError(t, s.Add("broken", func(uint64) (BenchmarkResult, error) { return BenchmarkResult{}, errBoom }))
	require.NoError(t, s.Add("never", func(uint64) (BenchmarkResult, error) {
		ran = true
		return BenchmarkResult{}, nil
	}))

	results, err := s.Run(10)
	assert.ErrorIs(t, err, errBoom)
	assert.Contains(t, err.Error(), "benchmark broken")
	assert.Len(t, results, 1)
	assert.False(t, ran)
}

func TestSuiteRejectsZeroIterations(t *testing.T) {
	s := NewSuite()
	require.NoError(t, s.Add("x", Case(func() int { return 0 })))

	_, err := s.Run(0)
	assert.ErrorIs(t, err, ErrZeroIterations)
}

func TestSuiteCooldown(t *testing.T) {
	s := NewSuite(WithCooldown(time.Second))
	var pauses []time.Duration
	s.sleep = func(d time.Duration) { pauses = append(pauses, d) }

	for _, name := range []string{"a", "b", "c"} {
		require.NoError(t, s.Add(name, Case(func() int { return 0 })))
	}

	_, err := s.Run(10)
	require.NoError(t, err)
	assert.Equal(t, []time.Duration{time.Second, time.Second}, pauses)
}

func TestSuiteLogsPlan(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	s := NewSuite(WithLogger(logger))
	require.NoError(t, s.Add("logged", Case(func() int { return 0 })))

	_, err := s.Run(1000)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "running benchmark")
	assert.Contains(t, out, "name=logged")
	assert.Contains(t, out, "samples=10")
	assert.Contains(t, out, "iterations_per_sample=100")
	assert.Contains(t, out, "benchmark finished")
}

func TestWithLoggerIgnoresNil(t *testing.T) {
	s := NewSuite(WithLogger(nil), WithCooldown(-time.Second))
	assert.NotNil(t, s.logger)
	assert.Zero(t, s.cooldown)
}
