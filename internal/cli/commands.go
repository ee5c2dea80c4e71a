// Package cli provides testable command implementations for the benchkit CLI.
//
// The cobra commands in cmd/benchkit only parse flags and load configuration;
// they delegate to the functions here, which take an io.Writer for output so
// tests can capture it.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"

	"github.com/zebiner/benchkit/internal/harness"
	"github.com/zebiner/benchkit/internal/metrics"
	"github.com/zebiner/benchkit/internal/workloads"
)

// SuiteFactory builds the suite a command runs. Tests swap it for a suite
// of cheap cases.
type SuiteFactory func(opts ...harness.SuiteOption) (*harness.Suite, error)

// RunBenchmarks runs the named workloads, or all of them when names is
// empty, and writes the results.
func RunBenchmarks(cfg Config, names []string, logger *slog.Logger, writer io.Writer) error {
	return RunBenchmarksWith(workloads.NewSuite, cfg, names, logger, writer)
}

// RunBenchmarksWith is RunBenchmarks with an injected suite.
func RunBenchmarksWith(factory SuiteFactory, cfg Config, names []string, logger *slog.Logger, writer io.Writer) error {
	suite, err := factory(harness.WithLogger(logger), harness.WithCooldown(cfg.Cooldown))
	if err != nil {
		return fmt.Errorf("failed to build benchmark suite: %w", err)
	}

	logger.Info("running benchmarks", "iterations", cfg.Iterations, "cases", caseCount(suite, names))

	var results []harness.NamedResult
	if len(names) == 0 {
		results, err = suite.Run(cfg.Iterations)
	} else {
		results, err = suite.RunSelected(cfg.Iterations, names...)
	}
	if err != nil {
		return fmt.Errorf("benchmark run failed: %w", err)
	}

	if err := exportMetrics(cfg, results, logger); err != nil {
		return err
	}
	return OutputResults(results, cfg.Output, writer)
}

// RunComparison runs both sides of a catalog pair and writes the comparison.
func RunComparison(cfg Config, pairName string, logger *slog.Logger, writer io.Writer) error {
	pair, err := workloads.LookupPair(pairName)
	if err != nil {
		return err
	}
	return RunComparisonWith(workloads.NewSuite, cfg, pair.First, pair.Second, logger, writer)
}

// RunComparisonWith compares two named cases of an injected suite.
func RunComparisonWith(factory SuiteFactory, cfg Config, first, second string, logger *slog.Logger, writer io.Writer) error {
	suite, err := factory(harness.WithLogger(logger), harness.WithCooldown(cfg.Cooldown))
	if err != nil {
		return fmt.Errorf("failed to build benchmark suite: %w", err)
	}

	logger.Info("comparing benchmarks", "first", first, "second", second, "iterations", cfg.Iterations)

	results, err := suite.RunSelected(cfg.Iterations, first, second)
	if err != nil {
		return fmt.Errorf("comparison run failed: %w", err)
	}
	if err := exportMetrics(cfg, results, logger); err != nil {
		return err
	}

	cmp := harness.Compare(results[0].Name, results[0].Result, results[1].Name, results[1].Result)
	logger.Debug("comparison finished", "speedup", cmp.Speedup, "difference_ns", cmp.DifferenceNs)
	return OutputComparison(cmp, cfg.Output, writer)
}

// ListWorkloads writes the catalog workloads and comparison pairs.
func ListWorkloads(writer io.Writer) error {
	tw := tabwriter.NewWriter(writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "WORKLOAD\tDESCRIPTION")
	for _, w := range workloads.Catalog() {
		fmt.Fprintf(tw, "%s\t%s\n", w.Name, w.Description)
	}
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "PAIR\tCOMPARES")
	for _, p := range workloads.Pairs() {
		fmt.Fprintf(tw, "%s\t%s vs %s\n", p.Name, p.First, p.Second)
	}
	return tw.Flush()
}

func exportMetrics(cfg Config, results []harness.NamedResult, logger *slog.Logger) error {
	if cfg.MetricsFile == "" {
		return nil
	}
	exporter := metrics.NewExporter()
	exporter.RecordAll(results)
	if err := exporter.WriteTextfile(cfg.MetricsFile); err != nil {
		return err
	}
	logger.Info("metrics written", "path", cfg.MetricsFile, "benchmarks", len(results))
	return nil
}

func caseCount(suite *harness.Suite, names []string) int {
	if len(names) == 0 {
		return suite.Len()
	}
	return len(names)
}
