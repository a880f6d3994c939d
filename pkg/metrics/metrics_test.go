package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveRun(t *testing.T) {
	r := NewRecorder()
	r.ObserveRun("sort", "merge", 1000, 3*time.Millisecond, 16384)
	r.ObserveRun("sort", "merge", 1000, 5*time.Millisecond, 16384)
	r.ObserveRun("sort", "quick", 1000, time.Millisecond, 4096)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.runs.WithLabelValues("sort", "merge", OutcomeCompleted)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.runs.WithLabelValues("sort", "quick", OutcomeCompleted)))
	assert.Equal(t, 2, testutil.CollectAndCount(r.duration))
}

func TestCountOutcome(t *testing.T) {
	r := NewRecorder()
	r.CountOutcome("matmul", "strassen", OutcomeSkipped)
	r.CountOutcome("matmul", "strassen", OutcomeSkipped)
	r.CountOutcome("matmul", "naive", OutcomeFailed)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.runs.WithLabelValues("matmul", "strassen", OutcomeSkipped)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.runs.WithLabelValues("matmul", "naive", OutcomeFailed)))
}

func TestWriteTextfile(t *testing.T) {
	r := NewRecorder(WithDurationBuckets([]float64{0.001, 0.01, 0.1}))
	r.ObserveRun("matmul", "naive", 64, 20*time.Millisecond, 1<<20)

	path := filepath.Join(t.TempDir(), "algobench.prom")
	require.NoError(t, r.WriteTextfile(path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(raw)

	assert.True(t, strings.Contains(text, "# TYPE algobench_run_duration_seconds histogram"))
	assert.Contains(t, text, `algobench_run_duration_seconds_bucket{algorithm="naive",family="matmul",size="64",le="0.01"} 0`)
	assert.Contains(t, text, `algobench_run_duration_seconds_bucket{algorithm="naive",family="matmul",size="64",le="0.1"} 1`)
	assert.Contains(t, text, `algobench_runs_total{algorithm="naive",family="matmul",outcome="completed"} 1`)
}

func TestWriteTextfileBadDir(t *testing.T) {
	r := NewRecorder()
	err := r.WriteTextfile(filepath.Join(t.TempDir(), "missing", "x.prom"))
	require.Error(t, err)
}
