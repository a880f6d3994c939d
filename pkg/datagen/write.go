package datagen

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/eunmann/algobench/internal/logctx"
	"github.com/eunmann/algobench/pkg/logging"
	"github.com/eunmann/algobench/pkg/textio"
)

const phaseGenerate = "generate"

// WriteArrays writes one file per kind and size into dir and returns the
// paths written. Sizes are generated in order, all kinds per size.
func WriteArrays(ctx context.Context, dir string, g *Generator, sizes []int) ([]string, error) {
	log := logctx.FromContext(ctx)
	start := time.Now()

	var paths []string
	var values int64
	for _, n := range sizes {
		for _, kind := range kinds {
			if err := ctx.Err(); err != nil {
				return paths, err
			}
			xs, err := g.Array(kind, n)
			if err != nil {
				return paths, err
			}
			path := filepath.Join(dir, ArrayFileName(kind, n))
			fileStart := time.Now()
			if err := textio.SaveArray(path, xs); err != nil {
				return paths, fmt.Errorf("write %s: %w", path, err)
			}
			logging.FileWritten(log, phaseGenerate, time.Since(fileStart)).
				Str("path", path).
				Str("kind", string(kind)).
				Count("elements", int64(n)).
				LogDebug("array dataset written")
			paths = append(paths, path)
			values += int64(n)
		}
	}

	logging.PhaseComplete(log, phaseGenerate, time.Since(start)).
		Str("dir", dir).
		Int("files", len(paths)).
		Count("elements", values).
		Log("array datasets generated")
	return paths, nil
}

// WriteMatrices writes a square pair and a rectangular pair per size into
// dir and returns the paths written.
func WriteMatrices(ctx context.Context, dir string, g *Generator, sizes []int) ([]string, error) {
	log := logctx.FromContext(ctx)
	start := time.Now()

	var paths []string
	var cells int64
	for _, n := range sizes {
		s1, s2 := SquarePair(n)
		r1, r2 := RectangularPair(n)
		for _, f := range []PairFile{s1, s2, r1, r2} {
			if err := ctx.Err(); err != nil {
				return paths, err
			}
			m := g.Matrix(f.Shape.Rows, f.Shape.Cols)
			path := filepath.Join(dir, f.Name())
			fileStart := time.Now()
			if err := textio.SaveMatrix(path, m); err != nil {
				return paths, fmt.Errorf("write %s: %w", path, err)
			}
			logging.FileWritten(log, phaseGenerate, time.Since(fileStart)).
				Str("path", path).
				Str("shape", f.Shape.String()).
				LogDebug("matrix dataset written")
			paths = append(paths, path)
			cells += int64(f.Shape.Rows * f.Shape.Cols)
		}
	}

	logging.PhaseComplete(log, phaseGenerate, time.Since(start)).
		Str("dir", dir).
		Int("files", len(paths)).
		Count("cells", cells).
		Log("matrix datasets generated")
	return paths, nil
}
