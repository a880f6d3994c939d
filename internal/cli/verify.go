package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/eunmann/algobench/internal/config"
	"github.com/eunmann/algobench/internal/logctx"
	"github.com/eunmann/algobench/pkg/fileutil"
	"github.com/eunmann/algobench/pkg/s3publish"
)

var verifyFlags = map[string]string{
	"results-dir": config.KeyResultsDir,
}

// NewVerifyCommand creates the verify subcommand.
func NewVerifyCommand(opts *RootOptions) *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:   "verify [manifest.json]",
		Short: "Check a results directory against a publish manifest",
		Long: `Checks every file listed in the manifest (default
<results-dir>/manifest.json) for size and SHA-256. With --write, records a
new manifest for the results directory instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load(cmd, verifyFlags)
			if err != nil {
				return err
			}
			path := filepath.Join(cfg.ResultsDir, s3publish.ManifestName)
			if len(args) == 1 {
				path = args[0]
			}
			if write {
				return writeManifest(cmd, cfg.ResultsDir, path)
			}

			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read manifest: %w", err)
			}
			m, err := s3publish.ParseManifest(data)
			if err != nil {
				return err
			}
			if err := s3publish.VerifyManifest(cfg.ResultsDir, m); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d files verified\n", len(m.Files))
			return nil
		},
	}

	cmd.Flags().String("results-dir", ".", "directory holding Result_of_<algorithm>/")
	cmd.Flags().BoolVar(&write, "write", false, "write a manifest instead of verifying one")
	return cmd
}

func writeManifest(cmd *cobra.Command, dir, path string) error {
	m, err := s3publish.BuildManifest(dir, logctx.RunID(cmd.Context()))
	if err != nil {
		return err
	}
	data, err := m.Marshal()
	if err != nil {
		return err
	}
	err = fileutil.WriteFile(path, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
	if err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s with %d files\n", path, len(m.Files))
	return nil
}
