package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/eunmann/algobench/pkg/bench"
	"github.com/eunmann/algobench/pkg/datagen"
	"github.com/eunmann/algobench/pkg/humanfmt"
)

// Options controls rendering.
type Options struct {
	// Family limits output to one family. Empty renders all.
	Family bench.Family

	// Color enables header and best-run styling.
	Color bool
}

var headers = []string{"FAMILY", "DATASET", "SIZE", "ALGORITHM", "SECONDS", "TIME", "VS BEST"}

const colVsBest = 6

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	bestStyle   = cellStyle.Foreground(lipgloss.Color("2")).Bold(true)
)

// Render writes timings as a table. Each row is compared against the
// fastest algorithm for the same family, dataset and size.
func Render(w io.Writer, timings []bench.Timing, opts Options) error {
	p := message.NewPrinter(language.English)

	rows := filter(timings, opts.Family)
	best := bestByGroup(rows)

	cells := make([][]string, 0, len(rows))
	for _, t := range rows {
		ratio := 1.0
		if b := best[groupOf(t)]; b > 0 {
			ratio = t.Seconds / b
		}
		cells = append(cells, []string{
			string(t.Family),
			t.Dataset,
			formatSize(p, t.Size),
			t.Algorithm,
			strconv.FormatFloat(t.Seconds, 'f', 6, 64),
			humanfmt.Seconds(t.Seconds),
			p.Sprintf("%.2fx", ratio),
		})
	}

	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(cells...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				if opts.Color {
					return headerStyle
				}
				return cellStyle
			case opts.Color && col == colVsBest && row >= 0 && row < len(cells) && cells[row][col] == "1.00x":
				return bestStyle
			default:
				return cellStyle
			}
		})

	if _, err := fmt.Fprintln(w, tbl.String()); err != nil {
		return err
	}
	_, err := p.Fprintf(w, "%d runs\n", len(rows))
	return err
}

func filter(timings []bench.Timing, family bench.Family) []bench.Timing {
	if family == "" {
		return timings
	}
	var out []bench.Timing
	for _, t := range timings {
		if t.Family == family {
			out = append(out, t)
		}
	}
	return out
}

type group struct {
	family  bench.Family
	dataset string
	size    string
}

func groupOf(t bench.Timing) group {
	return group{family: t.Family, dataset: t.Dataset, size: t.Size}
}

func bestByGroup(timings []bench.Timing) map[group]float64 {
	best := make(map[group]float64)
	for _, t := range timings {
		g := groupOf(t)
		if b, ok := best[g]; !ok || t.Seconds < b {
			best[g] = t.Seconds
		}
	}
	return best
}

// formatSize adds thousands separators: "100000" -> "100,000",
// "1000x1020" -> "1,000x1,020".
func formatSize(p *message.Printer, size string) string {
	if n, err := strconv.Atoi(size); err == nil {
		return p.Sprintf("%d", n)
	}
	if s, err := datagen.ParseShape(size); err == nil {
		return p.Sprintf("%dx%d", s.Rows, s.Cols)
	}
	return size
}

// Fastest returns the fastest algorithm per family, dataset and size.
func Fastest(timings []bench.Timing) []bench.Timing {
	idx := make(map[group]int)
	var out []bench.Timing
	for _, t := range timings {
		g := groupOf(t)
		i, ok := idx[g]
		switch {
		case !ok:
			idx[g] = len(out)
			out = append(out, t)
		case t.Seconds < out[i].Seconds || (t.Seconds == out[i].Seconds && t.Algorithm < out[i].Algorithm):
			out[i] = t
		}
	}
	Sort(out)
	return out
}

// Totals sums seconds per algorithm within a family.
func Totals(timings []bench.Timing, family bench.Family) map[string]float64 {
	totals := make(map[string]float64)
	for _, t := range filter(timings, family) {
		totals[t.Algorithm] += t.Seconds
	}
	return totals
}
