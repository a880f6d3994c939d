package bench

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strconv"
	"time"

	"github.com/eunmann/algobench/internal/logctx"
	"github.com/eunmann/algobench/pkg/datagen"
	"github.com/eunmann/algobench/pkg/fileutil"
	"github.com/eunmann/algobench/pkg/logging"
	"github.com/eunmann/algobench/pkg/textio"
)

// SortAll runs every configured sorting strategy over every .txt file in
// dir, in name order.
func (r *Runner) SortAll(ctx context.Context, dir string) (Summary, error) {
	files, err := fileutil.ListFiles(dir, ".txt")
	if err != nil {
		return Summary{}, fmt.Errorf("sort datasets: %w", err)
	}

	log := logctx.FromContext(ctx)
	pt := logging.NewProgressTracker(string(FamilySort), int64(len(files)*len(r.sorts)), log)
	start := time.Now()

	var total Summary
	for _, path := range files {
		s, err := r.sortFile(ctx, path, pt)
		total.add(s)
		if err != nil {
			return total, err
		}
		pt.LogProgress()
	}

	logging.PhaseComplete(log, string(FamilySort), time.Since(start)).
		Int("files", len(files)).
		Int("completed", total.Completed).
		Int("skipped", total.Skipped).
		Int("failed", total.Failed).
		Log("sorting benchmarks complete")
	return total, nil
}

// SortFile runs every configured sorting strategy over one array file.
func (r *Runner) SortFile(ctx context.Context, path string) (Summary, error) {
	pt := logging.NewProgressTracker(string(FamilySort), int64(len(r.sorts)), logctx.FromContext(ctx))
	return r.sortFile(ctx, path, pt)
}

func (r *Runner) sortFile(ctx context.Context, path string, pt *logging.ProgressTracker) (Summary, error) {
	name := filepath.Base(path)
	ctx = logctx.WithStr(ctx, "dataset", name)
	log := logctx.FromContext(ctx)

	data, err := textio.LoadArray(path)
	if err != nil {
		return Summary{}, fmt.Errorf("load dataset: %w", err)
	}

	// The size label comes from the file name when it follows the
	// generator's naming, so hand-made files still get a label.
	size := strconv.Itoa(len(data))
	if _, n, err := datagen.ParseArrayFileName(name); err == nil {
		size = strconv.Itoa(n)
	} else {
		log.Debug().Err(err).Str("size", size).Msg("dataset name has no size, using element count")
	}

	var sum Summary
	for _, s := range r.sorts {
		if err := ctx.Err(); err != nil {
			return sum, err
		}

		release, ok := r.reserve(EstimateSortBytes(s.Name, len(data)))
		if !ok {
			r.skipped(log, pt, FamilySort, s.Name, name, ReasonOverBudget)
			sum.Skipped++
			continue
		}

		in := slices.Clone(data)
		var out []int
		elapsed, delta, _ := measure(func() error {
			out = s.SortOwned(in)
			return nil
		})
		release()

		t := Timing{
			Family:    FamilySort,
			Algorithm: s.Name,
			Dataset:   name,
			Size:      size,
			Seconds:   elapsed.Seconds(),
		}
		if err := r.persistSort(t, out); err != nil {
			r.failed(FamilySort, s.Name)
			sum.Failed++
			return sum, err
		}

		r.completed(FamilySort, s.Name, len(data), elapsed, delta)
		pt.RecordCompletion(elapsed)
		logging.RunCompleted(log, string(FamilySort), elapsed).
			Str("algorithm", s.Name).
			Str("size", size).
			Count("elements", int64(len(data))).
			Rate("elements_per_sec", int64(len(data))).
			Bytes("alloc_bytes", int64(delta.AllocBytes)).
			Int("gcs", int(delta.GCs)).
			Log("sort run completed")

		sum.Completed++
		sum.Timings = append(sum.Timings, t)
	}
	return sum, nil
}

func (r *Runner) persistSort(t Timing, out []int) error {
	outPath := SortOutputPath(r.cfg.ResultsDir, t.Algorithm, t.Dataset)
	if err := textio.SaveArray(outPath, out); err != nil {
		return fmt.Errorf("save sorted output: %w", err)
	}
	if err := writeTiming(SortTimingPath(r.cfg.ResultsDir, t.Algorithm, t.Dataset, t.Size), t); err != nil {
		return fmt.Errorf("save timing: %w", err)
	}
	return nil
}
