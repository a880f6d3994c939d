package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eunmann/algobench/internal/config"
	"github.com/eunmann/algobench/internal/logctx"
	"github.com/eunmann/algobench/pkg/membudget"
	"github.com/eunmann/algobench/pkg/s3publish"
)

var publishFlags = map[string]string{
	"results-dir": config.KeyResultsDir,
	"region":      config.KeyS3Region,
	"endpoint":    config.KeyS3Endpoint,
}

// NewPublishCommand creates the publish subcommand.
func NewPublishCommand(opts *RootOptions) *cobra.Command {
	var (
		dryRun      bool
		manifest    bool
		concurrency int
	)

	cmd := &cobra.Command{
		Use:   "publish s3://bucket/prefix",
		Short: "Upload a results directory to S3",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load(cmd, publishFlags)
			if err != nil {
				return err
			}
			dest, err := s3publish.ParseDestination(args[0])
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			pc := s3publish.PublisherConfig{
				Concurrency: concurrency,
				DryRun:      dryRun,
				Manifest:    manifest,
				RunID:       logctx.RunID(ctx),
			}

			var up s3publish.Uploader
			if !dryRun {
				u, err := s3publish.NewUploader(ctx, s3publish.ClientConfig{
					Region:   cfg.S3Region,
					Endpoint: cfg.S3Endpoint,
				}, pc)
				if err != nil {
					return err
				}
				up = u
			}

			res, err := s3publish.NewPublisher(up, pc, logctx.FromContext(ctx)).Publish(ctx, cfg.ResultsDir, dest)
			if err != nil {
				return err
			}

			verb := "uploaded"
			if dryRun {
				verb = "would upload"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %d files (%s) to %s\n",
				verb, res.Files, membudget.FormatBytes(uint64(res.Bytes)), dest)
			if res.ManifestKey != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "manifest: s3://%s/%s\n", dest.Bucket, res.ManifestKey)
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.String("results-dir", ".", "directory to upload")
	f.String("region", "", "AWS region (default from the shared AWS config)")
	f.String("endpoint", "", "S3-compatible endpoint URL, e.g. MinIO")
	f.BoolVar(&dryRun, "dry-run", false, "list what would be uploaded without contacting S3")
	f.BoolVar(&manifest, "manifest", true, "upload manifest.json with file checksums after the results")
	f.IntVar(&concurrency, "concurrency", 0, "parts uploaded in parallel per object")
	return cmd
}
