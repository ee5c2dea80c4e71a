package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/zebiner/benchkit/internal/harness"
	"github.com/zebiner/benchkit/internal/workloads"
)

func init() {
	color.NoColor = true
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// cheapSuite holds two short cases with enough work to register on the clock.
func cheapSuite(opts ...harness.SuiteOption) (*harness.Suite, error) {
	s := harness.NewSuite(opts...)
	if err := s.Add("cheap", harness.Case(func() uint64 { return workloads.BusyLoop(2000) })); err != nil {
		return nil, err
	}
	if err := s.Add("cheaper", harness.CaseWithArg(workloads.BusyLoop, uint64(1000))); err != nil {
		return nil, err
	}
	return s, nil
}

func testConfig(output string) Config {
	cfg := DefaultConfig()
	cfg.Iterations = 100
	cfg.Output = output
	return cfg
}

func TestRunBenchmarksJSON(t *testing.T) {
	var buf bytes.Buffer
	err := RunBenchmarksWith(cheapSuite, testConfig("json"), nil, quietLogger(), &buf)
	require.NoError(t, err)

	var results []harness.NamedResult
	require.NoError(t, json.Unmarshal(buf.Bytes(), &results))
	require.Len(t, results, 2)
	assert.Equal(t, "cheap", results[0].Name)
	assert.Equal(t, uint64(100), results[0].Result.Iterations)
	assert.Equal(t, uint64(100), results[1].Plan.IterationsPerSample)
}

func TestRunBenchmarksYAML(t *testing.T) {
	var buf bytes.Buffer
	err := RunBenchmarksWith(cheapSuite, testConfig("yaml"), []string{"cheaper"}, quietLogger(), &buf)
	require.NoError(t, err)

	var results []harness.NamedResult
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &results))
	require.Len(t, results, 1)
	assert.Equal(t, "cheaper", results[0].Name)
}

func TestRunBenchmarksTable(t *testing.T) {
	var buf bytes.Buffer
	err := RunBenchmarksWith(cheapSuite, testConfig("table"), nil, quietLogger(), &buf)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "cheap (1 samples x 100 iterations)\n")
	assert.Contains(t, out, "  Iterations: 100\n")
	assert.Contains(t, out, "cheaper (")
}

func TestRunBenchmarksUnknownCase(t *testing.T) {
	err := RunBenchmarksWith(cheapSuite, testConfig("json"), []string{"missing"}, quietLogger(), io.Discard)
	assert.ErrorIs(t, err, harness.ErrUnknownCase)
}

func TestRunBenchmarksWritesMetrics(t *testing.T) {
	cfg := testConfig("json")
	cfg.MetricsFile = filepath.Join(t.TempDir(), "bench.prom")

	require.NoError(t, RunBenchmarksWith(cheapSuite, cfg, nil, quietLogger(), io.Discard))

	data, err := os.ReadFile(cfg.MetricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `benchkit_avg_ns{benchmark="cheap"}`)
	assert.Contains(t, string(data), `benchkit_avg_ns{benchmark="cheaper"}`)
}

func TestRunComparisonWith(t *testing.T) {
	var buf bytes.Buffer
	err := RunComparisonWith(cheapSuite, testConfig("json"), "cheap", "cheaper", quietLogger(), &buf)
	require.NoError(t, err)

	var cmp harness.Comparison
	require.NoError(t, json.Unmarshal(buf.Bytes(), &cmp))
	assert.Equal(t, "cheap", cmp.Name1)
	assert.Equal(t, "cheaper", cmp.Name2)
	assert.Equal(t, harness.Speedup(cmp.Result1, cmp.Result2), cmp.Speedup)
}

func TestRunComparisonTable(t *testing.T) {
	var buf bytes.Buffer
	err := RunComparisonWith(cheapSuite, testConfig("table"), "cheap", "cheaper", quietLogger(), &buf)
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "cheap:\n")
	assert.Contains(t, out, "Difference: ")
	assert.Equal(t, 1, strings.Count(out, "\ncheap is "), "verdict should be printed once:\n%s", out)
	assert.Less(t, strings.Index(out, "\ncheap is "), strings.Index(out, "Difference: "))
}

func TestRunComparisonUnknownPair(t *testing.T) {
	err := RunComparison(testConfig("table"), "nope", quietLogger(), io.Discard)
	assert.ErrorIs(t, err, workloads.ErrUnknownPair)
}

func TestRunComparisonCatalogPair(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RunComparison(testConfig("json"), "sum", quietLogger(), &buf))

	var cmp harness.Comparison
	require.NoError(t, json.Unmarshal(buf.Bytes(), &cmp))
	assert.Equal(t, "sum-formula", cmp.Name1)
	assert.Equal(t, "sum-loop", cmp.Name2)
}

func TestListWorkloads(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ListWorkloads(&buf))

	out := buf.String()
	for _, w := range workloads.Catalog() {
		assert.Contains(t, out, w.Name)
	}
	assert.Contains(t, out, "hash-xxhash vs hash-fnv")
}

func TestOutputResultsUnsupportedFormat(t *testing.T) {
	err := OutputResults(nil, "xml", io.Discard)
	assert.EqualError(t, err, "unsupported output format: xml")

	err = OutputComparison(harness.Comparison{}, "csv", io.Discard)
	assert.EqualError(t, err, "unsupported output format: csv")
}
