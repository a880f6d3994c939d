package bench

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/eunmann/algobench/internal/logctx"
	"github.com/eunmann/algobench/pkg/fileutil"
	"github.com/eunmann/algobench/pkg/logging"
	"github.com/eunmann/algobench/pkg/matmul"
	"github.com/eunmann/algobench/pkg/membudget"
	"github.com/eunmann/algobench/pkg/memdiag"
	"github.com/eunmann/algobench/pkg/metrics"
	"github.com/eunmann/algobench/pkg/sorting"
)

// Skip reasons recorded in run_skipped events.
const (
	ReasonOverBudget     = "over_memory_budget"
	ReasonPartnerMissing = "partner_missing"
)

// Config configures a Runner.
type Config struct {
	// ResultsDir receives the Result_of_<alg> directories.
	ResultsDir string

	// SortStrategies to run, in order. Empty means sorting.Names().
	SortStrategies []string

	// MatmulStrategies to run, in order. Empty means matmul.Names().
	MatmulStrategies []string

	// StrassenThreshold is the Strassen base-case dimension.
	StrassenThreshold int

	// PadAll pads every operand pair to a power-of-two square before timing,
	// not only the Strassen ones, so all strategies see the same input.
	PadAll bool

	// Budget, when set, skips runs whose estimated peak memory does not fit.
	Budget *membudget.Budget

	// Metrics, when set, records every run.
	Metrics *metrics.Recorder
}

// Summary counts the outcome of a batch of runs.
type Summary struct {
	Completed int
	Skipped   int
	Failed    int
	Timings   []Timing
}

func (s *Summary) add(o Summary) {
	s.Completed += o.Completed
	s.Skipped += o.Skipped
	s.Failed += o.Failed
	s.Timings = append(s.Timings, o.Timings...)
}

// Runner executes strategies over datasets. Runs are sequential; a Runner
// is not safe for concurrent use.
type Runner struct {
	cfg   Config
	sorts []sorting.Strategy
}

// NewRunner validates cfg and resolves strategy names.
func NewRunner(cfg Config) (*Runner, error) {
	if cfg.ResultsDir == "" {
		return nil, errors.New("bench: results dir is required")
	}
	if cfg.StrassenThreshold < 0 {
		return nil, fmt.Errorf("bench: %w: %d", matmul.ErrInvalidThreshold, cfg.StrassenThreshold)
	}
	if len(cfg.SortStrategies) == 0 {
		cfg.SortStrategies = sorting.Names()
	}
	if len(cfg.MatmulStrategies) == 0 {
		cfg.MatmulStrategies = matmul.Names()
	}

	r := &Runner{cfg: cfg}
	for _, name := range cfg.SortStrategies {
		s, err := sorting.Lookup(name)
		if err != nil {
			return nil, fmt.Errorf("bench: %w", err)
		}
		r.sorts = append(r.sorts, s)
	}
	for _, name := range cfg.MatmulStrategies {
		if !matmul.Known(name) {
			return nil, fmt.Errorf("bench: %w: %q", matmul.ErrUnknownStrategy, name)
		}
	}
	return r, nil
}

// ResultsDir returns the directory results are written under.
func (r *Runner) ResultsDir() string {
	return r.cfg.ResultsDir
}

// reserve asks the budget for n bytes. A nil budget always succeeds.
func (r *Runner) reserve(n uint64) (release func(), ok bool) {
	if r.cfg.Budget == nil {
		return func() {}, true
	}
	ok, err := r.cfg.Budget.TryReserve(n)
	if err != nil || !ok {
		return nil, false
	}
	return func() { r.cfg.Budget.Release(n) }, true
}

// measure runs fn once between a GC and heap snapshots.
func measure(fn func() error) (time.Duration, memdiag.Delta, error) {
	memdiag.Settle("before_run")
	stats := memdiag.Read()
	start := time.Now()
	err := fn()
	elapsed := time.Since(start)
	return elapsed, memdiag.Since(stats), err
}

func (r *Runner) skipped(log zerolog.Logger, pt *logging.ProgressTracker, family Family, alg, dataset, reason string) {
	logging.RunSkipped(log, string(family), alg, dataset, reason)
	if r.cfg.Metrics != nil {
		r.cfg.Metrics.CountOutcome(string(family), alg, metrics.OutcomeSkipped)
	}
	pt.RecordSkip()
}

func (r *Runner) failed(family Family, alg string) {
	if r.cfg.Metrics != nil {
		r.cfg.Metrics.CountOutcome(string(family), alg, metrics.OutcomeFailed)
	}
}

func (r *Runner) completed(family Family, alg string, size int, d time.Duration, delta memdiag.Delta) {
	if r.cfg.Metrics != nil {
		r.cfg.Metrics.ObserveRun(string(family), alg, size, d, delta.AllocBytes)
	}
}

// writeTiming persists one timing line.
func writeTiming(path string, t Timing) error {
	line := FormatTimingLine(t.Family, t.Size, t.Seconds)
	return fileutil.WriteFile(path, func(w io.Writer) error {
		_, err := io.WriteString(w, line)
		return err
	})
}

// RunAll sorts every array dataset in arraysDir and multiplies every pair
// in matricesDir. A missing dataset directory is skipped with a warning.
func (r *Runner) RunAll(ctx context.Context, arraysDir, matricesDir string) (Summary, error) {
	var total Summary
	log := logctx.FromContext(ctx)

	for _, step := range []struct {
		dir string
		fn  func(context.Context, string) (Summary, error)
	}{
		{arraysDir, r.SortAll},
		{matricesDir, r.MultiplyAll},
	} {
		if !fileutil.Exists(step.dir) {
			log.Warn().Str("dir", step.dir).Msg("dataset directory missing, skipping")
			continue
		}
		s, err := step.fn(ctx, step.dir)
		total.add(s)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
