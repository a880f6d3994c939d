// Package report reads the timing files a benchmark session left under a
// results directory and renders them as a comparison table.
package report

import (
	"cmp"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/eunmann/algobench/pkg/bench"
	"github.com/eunmann/algobench/pkg/datagen"
	"github.com/eunmann/algobench/pkg/fileutil"
)

// Load returns every timing recorded under resultsDir, ordered by family,
// size, dataset then algorithm. Files that do not parse are logged and
// skipped.
func Load(resultsDir string, log zerolog.Logger) ([]bench.Timing, error) {
	entries, err := os.ReadDir(resultsDir)
	if err != nil {
		return nil, fmt.Errorf("read results dir: %w", err)
	}

	var timings []bench.Timing
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if _, ok := bench.AlgorithmFromDir(e.Name()); !ok {
			continue
		}
		files, err := fileutil.ListFiles(filepath.Join(resultsDir, e.Name()), ".txt")
		if err != nil {
			return nil, err
		}
		for _, path := range files {
			t, ok := bench.TimingFromPath(path)
			if !ok {
				continue
			}
			if err := readSeconds(path, &t); err != nil {
				log.Warn().Err(err).Str("file", path).Msg("skipping unreadable timing file")
				continue
			}
			timings = append(timings, t)
		}
	}

	Sort(timings)
	return timings, nil
}

func readSeconds(path string, t *bench.Timing) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	family, size, secs, err := bench.ParseTimingLine(string(raw))
	if err != nil {
		return err
	}
	if family != t.Family || size != t.Size {
		return fmt.Errorf("%w: line says %s %s, file name says %s %s", bench.ErrBadTiming, family, size, t.Family, t.Size)
	}
	t.Seconds = secs
	return nil
}

// Sort orders timings by family, numeric size, dataset then algorithm.
func Sort(timings []bench.Timing) {
	slices.SortStableFunc(timings, func(a, b bench.Timing) int {
		return cmp.Or(
			cmp.Compare(a.Family, b.Family),
			cmp.Compare(sizeKey(a.Size), sizeKey(b.Size)),
			cmp.Compare(a.Size, b.Size),
			cmp.Compare(a.Dataset, b.Dataset),
			cmp.Compare(a.Algorithm, b.Algorithm),
		)
	})
}

// sizeKey is the element count a size label stands for: n, or rows*cols.
func sizeKey(size string) int {
	if n, err := strconv.Atoi(size); err == nil {
		return n
	}
	if s, err := datagen.ParseShape(size); err == nil {
		return s.Rows * s.Cols
	}
	return 0
}
