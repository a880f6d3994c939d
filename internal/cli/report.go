package cli

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/eunmann/algobench/internal/config"
	"github.com/eunmann/algobench/internal/logctx"
	"github.com/eunmann/algobench/pkg/bench"
	"github.com/eunmann/algobench/pkg/logging"
	"github.com/eunmann/algobench/pkg/report"
)

var reportFlags = map[string]string{
	"results-dir": config.KeyResultsDir,
}

// NewReportCommand creates the report subcommand.
func NewReportCommand(opts *RootOptions) *cobra.Command {
	var (
		family  string
		fastest bool
		totals  bool
		noColor bool
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print a table of recorded timings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.load(cmd, reportFlags)
			if err != nil {
				return err
			}

			fam := bench.Family(family)
			switch fam {
			case "", bench.FamilySort, bench.FamilyMatmul:
			default:
				return fmt.Errorf("invalid --family %q: want %s or %s", family, bench.FamilySort, bench.FamilyMatmul)
			}

			log := logging.WithPhase("report").With().Str("run_id", logctx.RunID(cmd.Context())).Logger()
			timings, err := report.Load(cfg.ResultsDir, log)
			if err != nil {
				return err
			}
			if totals {
				return printTotals(cmd.OutOrStdout(), timings, fam)
			}
			if fastest {
				timings = report.Fastest(timings)
			}

			out := cmd.OutOrStdout()
			color := !noColor && out == os.Stdout && term.IsTerminal(int(os.Stdout.Fd()))
			return report.Render(out, timings, report.Options{Family: fam, Color: color})
		},
	}

	f := cmd.Flags()
	f.String("results-dir", ".", "directory holding Result_of_<algorithm>/")
	f.StringVar(&family, "family", "", "only show one family: sort or matmul")
	f.BoolVar(&fastest, "fastest", false, "only show the fastest algorithm per dataset and size")
	f.BoolVar(&totals, "totals", false, "print total seconds per algorithm instead of the table")
	f.BoolVar(&noColor, "no-color", false, "disable styling")
	return cmd
}

// printTotals writes one "family algorithm seconds" line per algorithm,
// families in order, algorithms by name.
func printTotals(w io.Writer, timings []bench.Timing, fam bench.Family) error {
	families := []bench.Family{bench.FamilySort, bench.FamilyMatmul}
	if fam != "" {
		families = []bench.Family{fam}
	}
	for _, f := range families {
		totals := report.Totals(timings, f)
		algs := make([]string, 0, len(totals))
		for alg := range totals {
			algs = append(algs, alg)
		}
		slices.Sort(algs)
		for _, alg := range algs {
			if _, err := fmt.Fprintf(w, "%s\t%s\t%s\n", f, alg, strconv.FormatFloat(totals[alg], 'f', 6, 64)); err != nil {
				return err
			}
		}
	}
	return nil
}
