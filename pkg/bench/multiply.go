package bench

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/eunmann/algobench/internal/logctx"
	"github.com/eunmann/algobench/pkg/datagen"
	"github.com/eunmann/algobench/pkg/fileutil"
	"github.com/eunmann/algobench/pkg/logging"
	"github.com/eunmann/algobench/pkg/matmul"
	"github.com/eunmann/algobench/pkg/memdiag"
	"github.com/eunmann/algobench/pkg/textio"
)

// MultiplyAll runs every configured multiplication strategy over every
// operand pair in dir. A pair is keyed by its left operand file
// (square_matrix_1_* or rectangular_matrix_1_*); pairs whose right operand
// is missing are skipped.
func (r *Runner) MultiplyAll(ctx context.Context, dir string) (Summary, error) {
	files, err := fileutil.ListFiles(dir, ".txt")
	if err != nil {
		return Summary{}, fmt.Errorf("matrix datasets: %w", err)
	}

	log := logctx.FromContext(ctx)
	var lefts []datagen.PairFile
	for _, path := range files {
		p, err := datagen.ParsePairFileName(filepath.Base(path))
		if err != nil {
			log.Debug().Str("file", path).Msg("not a matrix operand file, ignoring")
			continue
		}
		if p.Index == 1 {
			lefts = append(lefts, p)
		}
	}

	strategies := r.cfg.MatmulStrategies
	pt := logging.NewProgressTracker(string(FamilyMatmul), int64(len(lefts)*len(strategies)), log)
	start := time.Now()

	var total Summary
	for _, left := range lefts {
		s, err := r.multiplyPair(ctx, dir, left, pt)
		total.add(s)
		if err != nil {
			return total, err
		}
		pt.LogProgress()
	}

	logging.PhaseComplete(log, string(FamilyMatmul), time.Since(start)).
		Int("pairs", len(lefts)).
		Int("completed", total.Completed).
		Int("skipped", total.Skipped).
		Int("failed", total.Failed).
		Log("multiplication benchmarks complete")
	return total, nil
}

// MultiplyPair runs every configured strategy over the pair whose left
// operand file is leftPath.
func (r *Runner) MultiplyPair(ctx context.Context, leftPath string) (Summary, error) {
	left, err := datagen.ParsePairFileName(filepath.Base(leftPath))
	if err != nil {
		return Summary{}, err
	}
	if left.Index != 1 {
		return Summary{}, fmt.Errorf("%w: %s is not a left operand", datagen.ErrBadName, leftPath)
	}
	pt := logging.NewProgressTracker(string(FamilyMatmul), int64(len(r.cfg.MatmulStrategies)), logctx.FromContext(ctx))
	return r.multiplyPair(ctx, filepath.Dir(leftPath), left, pt)
}

func pairDataset(p datagen.PairFile) string {
	if p.Square {
		return datasetSquare
	}
	return datasetRectangular
}

func (r *Runner) multiplyPair(ctx context.Context, dir string, left datagen.PairFile, pt *logging.ProgressTracker) (Summary, error) {
	dataset := pairDataset(left)
	ctx = logctx.WithStr(ctx, "dataset", left.Name())
	log := logctx.FromContext(ctx)

	var sum Summary
	rightPath := filepath.Join(dir, left.Partner().Name())
	// An empty partner is treated as missing; it cannot form a product.
	if !fileutil.IsNonEmpty(rightPath) {
		for _, alg := range r.cfg.MatmulStrategies {
			r.skipped(log, pt, FamilyMatmul, alg, left.Name(), ReasonPartnerMissing)
			sum.Skipped++
		}
		return sum, nil
	}

	a, err := textio.LoadMatrix(filepath.Join(dir, left.Name()))
	if err != nil {
		return sum, fmt.Errorf("load left operand: %w", err)
	}
	b, err := textio.LoadMatrix(rightPath)
	if err != nil {
		return sum, fmt.Errorf("load right operand: %w", err)
	}
	shape := datagen.Shape{Rows: a.Rows(), Cols: a.Cols()}
	ctx = logctx.WithInt(ctx, "threshold", r.cfg.StrassenThreshold)
	log = logctx.FromContext(ctx)

	for _, alg := range r.cfg.MatmulStrategies {
		if err := ctx.Err(); err != nil {
			return sum, err
		}

		pad := r.cfg.PadAll || alg == matmul.NameStrassen
		release, ok := r.reserve(EstimateMatmulBytes(alg, a.Rows(), a.Cols(), b.Cols(), pad))
		if !ok {
			r.skipped(log, pt, FamilyMatmul, alg, left.Name(), ReasonOverBudget)
			sum.Skipped++
			continue
		}

		c, elapsed, err := r.timeProduct(alg, a.Clone(), b.Clone(), pad)
		release()
		if err != nil {
			r.failed(FamilyMatmul, alg)
			sum.Failed++
			runFailed(log, alg, err)
			continue
		}

		t := Timing{
			Family:    FamilyMatmul,
			Algorithm: alg,
			Dataset:   dataset,
			Size:      shape.String(),
			Seconds:   elapsed.Seconds(),
		}
		if err := r.persistProduct(t, left.Square, shape, c.m); err != nil {
			r.failed(FamilyMatmul, alg)
			sum.Failed++
			return sum, err
		}

		r.completed(FamilyMatmul, alg, a.Rows(), elapsed, c.delta)
		pt.RecordCompletion(elapsed)
		logging.RunCompleted(log, string(FamilyMatmul), elapsed).
			Str("algorithm", alg).
			Str("shape", shape.String()).
			Str("padded", c.padded).
			Bytes("alloc_bytes", int64(c.delta.AllocBytes)).
			Log("multiply run completed")

		sum.Completed++
		sum.Timings = append(sum.Timings, t)
	}
	return sum, nil
}

type product struct {
	m      matmul.Matrix
	delta  memdiag.Delta
	padded string
}

// timeProduct pads outside the timed region, times only the strategy call
// and trims the product back to a.Rows() x b.Cols().
func (r *Runner) timeProduct(alg string, a, b matmul.Matrix, pad bool) (product, time.Duration, error) {
	rows, cols := a.Rows(), b.Cols()
	p := product{padded: "no"}
	if pad {
		a, b = matmul.Pad(a, b)
		p.padded = fmt.Sprintf("%dx%d", a.Rows(), a.Cols())
	}

	var c matmul.Matrix
	elapsed, delta, err := measure(func() error {
		var err error
		c, err = matmul.Multiply(alg, a, b,
			matmul.WithThreshold(r.cfg.StrassenThreshold),
			matmul.WithPadding(false))
		return err
	})
	if err != nil {
		return product{}, 0, err
	}
	p.m = matmul.Trim(c, rows, cols)
	p.delta = delta
	return p, elapsed, nil
}

func (r *Runner) persistProduct(t Timing, square bool, shape datagen.Shape, c matmul.Matrix) error {
	outPath := MatmulOutputPath(r.cfg.ResultsDir, t.Algorithm, square, shape)
	if err := textio.SaveMatrix(outPath, c); err != nil {
		return fmt.Errorf("save product: %w", err)
	}
	if err := writeTiming(MatmulTimingPath(r.cfg.ResultsDir, t.Algorithm, shape), t); err != nil {
		return fmt.Errorf("save timing: %w", err)
	}
	return nil
}

func runFailed(log zerolog.Logger, alg string, err error) {
	log.Error().
		Err(err).
		Str("event", "run_failed").
		Str("phase", string(FamilyMatmul)).
		Str("algorithm", alg).
		Msg("multiply run failed")
}
