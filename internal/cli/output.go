package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/zebiner/benchkit/internal/harness"
)

var supportedFormats = []string{"table", "json", "yaml"}

func isSupportedFormat(format string) bool {
	for _, f := range supportedFormats {
		if strings.EqualFold(f, format) {
			return true
		}
	}
	return false
}

// OutputResults formats and displays benchmark results in the requested format
func OutputResults(results []harness.NamedResult, outputFormat string, writer io.Writer) error {
	switch strings.ToLower(outputFormat) {
	case "json":
		return outputJSON(results, writer)
	case "yaml":
		return outputYAML(results, writer)
	case "table":
		return outputTable(results, writer)
	default:
		return fmt.Errorf("unsupported output format: %s", outputFormat)
	}
}

// OutputComparison formats and displays a comparison in the requested format
func OutputComparison(cmp harness.Comparison, outputFormat string, writer io.Writer) error {
	switch strings.ToLower(outputFormat) {
	case "json":
		return outputJSON(cmp, writer)
	case "yaml":
		return outputYAML(cmp, writer)
	case "table":
		return outputComparisonTable(cmp, writer)
	default:
		return fmt.Errorf("unsupported output format: %s", outputFormat)
	}
}

// outputJSON outputs results in JSON format
func outputJSON(v interface{}, writer io.Writer) error {
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// outputYAML outputs results in YAML format
func outputYAML(v interface{}, writer io.Writer) (err error) {
	encoder := yaml.NewEncoder(writer)
	encoder.SetIndent(2)
	defer func() {
		if cerr := encoder.Close(); err == nil {
			err = cerr
		}
	}()
	return encoder.Encode(v)
}

// outputTable outputs results in a human-readable format
func outputTable(results []harness.NamedResult, writer io.Writer) error {
	header := color.New(color.Bold)
	for i, r := range results {
		if i > 0 {
			if _, err := fmt.Fprintln(writer); err != nil {
				return err
			}
		}
		if _, err := header.Fprintf(writer, "%s (%s samples x %s iterations)\n",
			r.Name,
			humanize.Comma(int64(r.Plan.NumSamples)),
			humanize.Comma(int64(r.Plan.IterationsPerSample)),
		); err != nil {
			return err
		}
		if err := harness.WriteReport(writer, r.Result); err != nil {
			return err
		}
	}
	return nil
}

func outputComparisonTable(cmp harness.Comparison, writer io.Writer) error {
	verdict := color.New(color.FgRed)
	if cmp.Faster() {
		verdict = color.New(color.FgGreen)
	}
	return cmp.ReportStyled(writer, func(s string) string { return verdict.Sprint(s) })
}
