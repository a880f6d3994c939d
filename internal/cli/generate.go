package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eunmann/algobench/internal/config"
	"github.com/eunmann/algobench/pkg/datagen"
	"github.com/eunmann/algobench/pkg/fileutil"
)

// Dataset targets accepted by generate.
const (
	targetArrays   = "arrays"
	targetMatrices = "matrices"
	targetAll      = "all"
)

var generateFlags = map[string]string{
	"data-dir":     config.KeyDataDir,
	"seed":         config.KeySeed,
	"array-sizes":  config.KeyArraySizes,
	"matrix-sizes": config.KeyMatrixSizes,
}

// NewGenerateCommand creates the generate subcommand.
func NewGenerateCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:       "generate [arrays|matrices|all]",
		Short:     "Write seeded array and matrix datasets",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{targetArrays, targetMatrices, targetAll},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load(cmd, generateFlags)
			if err != nil {
				return err
			}
			target := targetAll
			if len(args) == 1 {
				target = args[0]
			}
			return generate(cmd.Context(), cfg, target)
		},
	}

	f := cmd.Flags()
	f.String("data-dir", ".", "directory receiving datasets_a/ and matrix_datasets/")
	f.Int64("seed", datagen.DefaultSeed, "random seed")
	f.StringSlice("array-sizes", nil, "array lengths (default 10,100,1000,10000,100000)")
	f.StringSlice("matrix-sizes", nil, "matrix dimensions (default 10,100,1000)")
	return cmd
}

func generate(ctx context.Context, cfg config.Config, target string) error {
	for _, dir := range []string{cfg.ArraysDir(), cfg.MatricesDir()} {
		if err := fileutil.CleanupTmpFiles(dir); err != nil {
			return fmt.Errorf("clean data dir: %w", err)
		}
	}
	g := datagen.NewGenerator(datagen.GeneratorConfig{Seed: cfg.Seed, MaxValue: datagen.DefaultMaxValue})

	if target == targetArrays || target == targetAll {
		if _, err := datagen.WriteArrays(ctx, cfg.ArraysDir(), g, cfg.ArraySizes); err != nil {
			return fmt.Errorf("generate arrays: %w", err)
		}
	}
	if target == targetMatrices || target == targetAll {
		if _, err := datagen.WriteMatrices(ctx, cfg.MatricesDir(), g, cfg.MatrixSizes); err != nil {
			return fmt.Errorf("generate matrices: %w", err)
		}
	}
	return nil
}
