// Command benchkit runs the built-in workloads through the benchmark harness.
//
// Usage:
//
//	benchkit list
//	benchkit run [workload...] [--iterations N] [--output table|json|yaml]
//	benchkit compare <pair>
//
// Every flag can also be set in a YAML file passed with --config or through a
// BENCHKIT_ environment variable (BENCHKIT_ITERATIONS, BENCHKIT_LOG_LEVEL...).
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zebiner/benchkit/internal/cli"
)

type app struct {
	v          *viper.Viper
	configPath string
	cfg        cli.Config
	logger     *slog.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{v: cli.NewViper()}

	root := &cobra.Command{
		Use:           "benchkit",
		Short:         "Statistical micro-benchmark harness",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load()
		},
	}

	def := cli.DefaultConfig()
	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "path to a YAML config file")
	flags.Uint64P("iterations", "n", def.Iterations, "iteration budget per benchmark")
	flags.StringP("output", "o", def.Output, "output format: table, json, yaml")
	flags.String("log-level", def.LogLevel, "log level: debug, info, warn, error")
	flags.Duration("cooldown", def.Cooldown, "pause between consecutive benchmarks")
	flags.String("metrics-file", def.MetricsFile, "write Prometheus metrics to this textfile")
	flags.Bool("no-color", def.NoColor, "disable coloured output")

	for key, flag := range map[string]string{
		cli.KeyIterations:  "iterations",
		cli.KeyOutput:      "output",
		cli.KeyLogLevel:    "log-level",
		cli.KeyCooldown:    "cooldown",
		cli.KeyMetricsFile: "metrics-file",
		cli.KeyNoColor:     "no-color",
	} {
		if err := a.v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			panic(err)
		}
	}

	root.AddCommand(newListCmd(), newRunCmd(a), newCompareCmd(a))
	return root
}

func (a *app) load() error {
	cfg, err := cli.LoadConfig(a.v, a.configPath)
	if err != nil {
		return err
	}
	logger, err := cli.NewLogger(cfg.LogLevel, os.Stderr)
	if err != nil {
		return err
	}
	if cfg.NoColor {
		color.NoColor = true
	}
	a.cfg = cfg
	a.logger = logger
	return nil
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List built-in workloads and comparison pairs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.ListWorkloads(cmd.OutOrStdout())
		},
	}
}

func newRunCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "run [workload...]",
		Short: "Benchmark workloads, all of them when none are named",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.RunBenchmarks(a.cfg, args, a.logger, cmd.OutOrStdout())
		},
	}
}

func newCompareCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "compare <pair>",
		Short: "Benchmark both sides of a pair and compare them",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.RunComparison(a.cfg, args[0], a.logger, cmd.OutOrStdout())
		},
	}
}
