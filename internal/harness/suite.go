package harness

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"
)

var (
	// ErrDuplicateCase is returned when two cases share a name.
	ErrDuplicateCase = errors.New("duplicate benchmark case")

	// ErrUnknownCase is returned when a case name is not registered.
	ErrUnknownCase = errors.New("unknown benchmark case")
)

// CaseFunc runs one benchmark for the given iteration budget.
type CaseFunc func(iterations uint64) (BenchmarkResult, error)

// Case adapts a zero-argument callable.
func Case[T any](fn func() T) CaseFunc {
	return func(iterations uint64) (BenchmarkResult, error) {
		return Benchmark(fn, iterations)
	}
}

// CaseWithArg adapts a single-argument callable bound to arg.
func CaseWithArg[A, T any](fn func(A) T, arg A) CaseFunc {
	return func(iterations uint64) (BenchmarkResult, error) {
		return BenchmarkWithArg(fn, arg, iterations)
	}
}

// CaseSliceOp adapts a callable over a read-only slice.
func CaseSliceOp[E, T any](fn func([]E) T, data []E) CaseFunc {
	return func(iterations uint64) (BenchmarkResult, error) {
		return BenchmarkSliceOp(fn, data, iterations)
	}
}

// NamedResult pairs a case name with its result and sampling plan.
type NamedResult struct {
	Name   string          `json:"name" yaml:"name"`
	Plan   SamplePlan      `json:"plan" yaml:"plan"`
	Result BenchmarkResult `json:"result" yaml:"result"`
}

type namedCase struct {
	name string
	run  CaseFunc
}

// Suite runs named benchmark cases one after another on the calling
// goroutine.
type Suite struct {
	cases    []namedCase
	logger   *slog.Logger
	cooldown time.Duration
	sleep    func(time.Duration)
}

// SuiteOption configures a Suite.
type SuiteOption func(*Suite)

// WithLogger sets the logger used for per-case debug output.
func WithLogger(logger *slog.Logger) SuiteOption {
	return func(s *Suite) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithCooldown pauses between consecutive cases so the machine can settle.
func WithCooldown(d time.Duration) SuiteOption {
	return func(s *Suite) {
		if d > 0 {
			s.cooldown = d
		}
	}
}

// NewSuite creates an empty suite.
func NewSuite(opts ...SuiteOption) *Suite {
	s := &Suite{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		sleep:  time.Sleep,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add registers a case. Names must be unique.
func (s *Suite) Add(name string, run CaseFunc) error {
	for _, c := range s.cases {
		if c.name == name {
			return fmt.Errorf("%w: %s", ErrDuplicateCase, name)
		}
	}
	s.cases = append(s.cases, namedCase{name: name, run: run})
	return nil
}

// Names returns the registered case names in registration order.
func (s *Suite) Names() []string {
	names := make([]string, len(s.cases))
	for i, c := range s.cases {
		names[i] = c.name
	}
	return names
}

// Len returns the number of registered cases.
func (s *Suite) Len() int {
	return len(s.cases)
}

// Run executes every case with the same iteration budget. The first failure
// stops the run; results gathered so far are returned with the error.
func (s *Suite) Run(iterations uint64) ([]NamedResult, error) {
	return s.run(s.cases, iterations)
}

// RunSelected executes the named cases in the order given.
func (s *Suite) RunSelected(iterations uint64, names ...string) ([]NamedResult, error) {
	selected := make([]namedCase, 0, len(names))
	for _, name := range names {
		c, ok := s.lookup(name)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownCase, name)
		}
		selected = append(selected, c)
	}
	return s.run(selected, iterations)
}

func (s *Suite) lookup(name string) (namedCase, bool) {
	for _, c := range s.cases {
		if c.name == name {
			return c, true
		}
	}
	return namedCase{}, false
}

func (s *Suite) run(cases []namedCase, iterations uint64) ([]NamedResult, error) {
	plan, err := NewSamplePlan(iterations)
	if err != nil {
		return nil, err
	}

	results := make([]NamedResult, 0, len(cases))
	for i, c := range cases {
		if i > 0 && s.cooldown > 0 {
			s.logger.Debug("cooling down", "duration", s.cooldown)
			s.sleep(s.cooldown)
		}

		s.logger.Debug("running benchmark",
			"name", c.name,
			"iterations", plan.Iterations,
			"warmup", plan.WarmupIterations,
			"samples", plan.NumSamples,
			"iterations_per_sample", plan.IterationsPerSample,
		)

		result, err := c.run(iterations)
		if err != nil {
			return results, fmt.Errorf("benchmark %s: %w", c.name, err)
		}

		s.logger.Debug("benchmark finished",
			"name", c.name,
			"avg_ns", result.AvgNs,
			"cv_percent", result.CoefficientOfVariation(),
		)
		results = append(results, NamedResult{Name: c.name, Plan: plan, Result: result})
	}
	return results, nil
}
