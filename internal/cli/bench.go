package cli

import (
	"context"
	"fmt"
	"maps"
	"path/filepath"
	"slices"

	"github.com/spf13/cobra"

	"github.com/eunmann/algobench/internal/config"
	"github.com/eunmann/algobench/internal/logctx"
	"github.com/eunmann/algobench/pkg/bench"
	"github.com/eunmann/algobench/pkg/fileutil"
	"github.com/eunmann/algobench/pkg/matmul"
	"github.com/eunmann/algobench/pkg/membudget"
	"github.com/eunmann/algobench/pkg/metrics"
	"github.com/eunmann/algobench/pkg/sysmem"
)

var sortFlags = map[string]string{
	"data-dir":     config.KeyDataDir,
	"results-dir":  config.KeyResultsDir,
	"strategies":   config.KeySortStrategies,
	"metrics-file": config.KeyMetricsFile,
}

var multiplyFlags = map[string]string{
	"data-dir":     config.KeyDataDir,
	"results-dir":  config.KeyResultsDir,
	"strategies":   config.KeyMatmulStrategies,
	"threshold":    config.KeyStrassenThreshold,
	"pad-all":      config.KeyPadAll,
	"metrics-file": config.KeyMetricsFile,
}

var runFlags = func() map[string]string {
	m := maps.Clone(generateFlags)
	maps.Copy(m, map[string]string{
		"results-dir":       config.KeyResultsDir,
		"sort-strategies":   config.KeySortStrategies,
		"matmul-strategies": config.KeyMatmulStrategies,
		"threshold":         config.KeyStrassenThreshold,
		"pad-all":           config.KeyPadAll,
		"metrics-file":      config.KeyMetricsFile,
	})
	return m
}()

// NewSortCommand creates the sort subcommand.
func NewSortCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sort [array-file...]",
		Short: "Time sorting strategies over array datasets",
		Long: `Runs every selected sorting strategy over the given array files, or over
every .txt file in <data-dir>/datasets_a when none are given. Sorted output
and timings go to <results-dir>/Result_of_<algorithm>/.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load(cmd, sortFlags)
			if err != nil {
				return err
			}
			return runBench(cmd, opts, cfg, func(ctx context.Context, r *bench.Runner) (bench.Summary, error) {
				if len(args) == 0 {
					return r.SortAll(ctx, cfg.ArraysDir())
				}
				return eachFile(ctx, args, r.SortFile)
			})
		},
	}

	f := cmd.Flags()
	addDirFlags(cmd)
	f.StringSlice("strategies", nil, "sorting strategies to run (default bubble,merge,quick,baseline)")
	addBudgetFlags(cmd)
	return cmd
}

// NewMultiplyCommand creates the multiply subcommand.
func NewMultiplyCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "multiply [left-matrix-file...]",
		Short: "Time matrix multiplication strategies over matrix pairs",
		Long: `Multiplies every square and rectangular pair in <data-dir>/matrix_datasets,
or only the pairs whose left operands are given. Products and timings go to
<results-dir>/Result_of_<algorithm>/.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load(cmd, multiplyFlags)
			if err != nil {
				return err
			}
			return runBench(cmd, opts, cfg, func(ctx context.Context, r *bench.Runner) (bench.Summary, error) {
				if len(args) == 0 {
					return r.MultiplyAll(ctx, cfg.MatricesDir())
				}
				return eachFile(ctx, args, r.MultiplyPair)
			})
		},
	}

	f := cmd.Flags()
	addDirFlags(cmd)
	f.StringSlice("strategies", nil, "multiplication strategies to run (default naive,optimized,strassen)")
	addMatmulFlags(cmd)
	addBudgetFlags(cmd)
	return cmd
}

// NewRunCommand creates the run subcommand.
func NewRunCommand(opts *RootOptions) *cobra.Command {
	var skipGenerate bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Generate datasets, then run every sorting and multiplication benchmark",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.load(cmd, runFlags)
			if err != nil {
				return err
			}
			if !skipGenerate {
				if err := generate(cmd.Context(), cfg, targetAll); err != nil {
					return err
				}
			}
			return runBench(cmd, opts, cfg, func(ctx context.Context, r *bench.Runner) (bench.Summary, error) {
				return r.RunAll(ctx, cfg.ArraysDir(), cfg.MatricesDir())
			})
		},
	}

	f := cmd.Flags()
	addDirFlags(cmd)
	f.Int64("seed", 0, "random seed (default 42)")
	f.StringSlice("array-sizes", nil, "array lengths (default 10,100,1000,10000,100000)")
	f.StringSlice("matrix-sizes", nil, "matrix dimensions (default 10,100,1000)")
	f.StringSlice("sort-strategies", nil, "sorting strategies to run (default all)")
	f.StringSlice("matmul-strategies", nil, "multiplication strategies to run (default all)")
	f.BoolVar(&skipGenerate, "skip-generate", false, "reuse existing datasets")
	addMatmulFlags(cmd)
	addBudgetFlags(cmd)
	return cmd
}

func addDirFlags(cmd *cobra.Command) {
	cmd.Flags().String("data-dir", ".", "directory holding datasets_a/ and matrix_datasets/")
	cmd.Flags().String("results-dir", ".", "directory receiving Result_of_<algorithm>/")
}

func addMatmulFlags(cmd *cobra.Command) {
	cmd.Flags().Int("threshold", matmul.DefaultThreshold, "Strassen base-case dimension")
	cmd.Flags().Bool("pad-all", true, "pad every pair to a power-of-two square, not only Strassen's")
}

func addBudgetFlags(cmd *cobra.Command) {
	cmd.Flags().String("mem-budget", "", "skip runs needing more memory than this (e.g. 2GiB; default 50% of RAM)")
	cmd.Flags().String("metrics-file", "", "write Prometheus metrics in text format to this file")
}

// runBench builds a Runner from cfg, executes fn and reports the summary.
func runBench(cmd *cobra.Command, opts *RootOptions, cfg config.Config, fn func(context.Context, *bench.Runner) (bench.Summary, error)) error {
	ctx := cmd.Context()
	log := logctx.FromContext(ctx)

	cliBudget, err := cmd.Flags().GetString("mem-budget")
	if err != nil {
		return err
	}
	budget, err := determineMemoryBudget(cliBudget, config.MemBudgetFromFile(opts.v))
	if err != nil {
		return err
	}
	log.Info().
		Str("budget", membudget.FormatBytes(budget.Total())).
		Str("source", string(budget.Source())).
		Str("system_ram", membudget.FormatBytes(sysmem.TotalBytes())).
		Msg("memory budget")

	// Leftovers from an interrupted session; only algorithm dirs are touched.
	for _, alg := range append(slices.Clone(cfg.SortStrategies), cfg.MatmulStrategies...) {
		if err := fileutil.CleanupTmpFiles(bench.AlgorithmDir(cfg.ResultsDir, alg)); err != nil {
			return fmt.Errorf("clean results dir: %w", err)
		}
	}

	rec := metrics.NewRecorder()
	r, err := bench.NewRunner(bench.Config{
		ResultsDir:        cfg.ResultsDir,
		SortStrategies:    cfg.SortStrategies,
		MatmulStrategies:  cfg.MatmulStrategies,
		StrassenThreshold: cfg.StrassenThreshold,
		PadAll:            cfg.PadAll,
		Budget:            budget,
		Metrics:           rec,
	})
	if err != nil {
		return err
	}

	sum, runErr := fn(ctx, r)

	if cfg.MetricsFile != "" {
		if err := rec.WriteTextfile(cfg.MetricsFile); err != nil {
			log.Error().Err(err).Str("path", cfg.MetricsFile).Msg("failed to write metrics")
		} else {
			log.Info().Str("path", cfg.MetricsFile).Msg("metrics written")
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%d completed, %d skipped, %d failed; results in %s\n",
		sum.Completed, sum.Skipped, sum.Failed, cfg.ResultsDir)

	if runErr != nil {
		return runErr
	}
	if sum.Failed > 0 {
		return fmt.Errorf("%d runs failed", sum.Failed)
	}
	return nil
}

// eachFile applies fn to every path and merges the summaries.
func eachFile(ctx context.Context, paths []string, fn func(context.Context, string) (bench.Summary, error)) (bench.Summary, error) {
	var total bench.Summary
	for _, p := range paths {
		s, err := fn(ctx, filepath.Clean(p))
		total.Completed += s.Completed
		total.Skipped += s.Skipped
		total.Failed += s.Failed
		total.Timings = append(total.Timings, s.Timings...)
		if err != nil {
			return total, fmt.Errorf("%s: %w", p, err)
		}
	}
	return total, nil
}
