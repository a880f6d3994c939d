package logging

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestProgressTracker_BasicOperations(t *testing.T) {
	var buf bytes.Buffer
	pt := NewProgressTracker("sort", 10, zerolog.New(&buf))

	pt.RecordCompletion(100 * time.Millisecond)
	pt.RecordCompletion(150 * time.Millisecond)
	pt.RecordSkip()

	completed, skipped, total := pt.Progress()
	if completed != 2 {
		t.Errorf("expected completed=2, got %d", completed)
	}
	if skipped != 1 {
		t.Errorf("expected skipped=1, got %d", skipped)
	}
	if total != 10 {
		t.Errorf("expected total=10, got %d", total)
	}
	if pct := pt.ProgressPct(); pct != 30.0 {
		t.Errorf("expected progress 30%%, got %.1f%%", pct)
	}
	if remaining := pt.Remaining(); remaining != 7 {
		t.Errorf("expected remaining=7, got %d", remaining)
	}
}

func TestProgressTracker_ETA(t *testing.T) {
	pt := NewProgressTracker("multiply", 10, zerolog.Nop())

	pt.RecordCompletion(100 * time.Millisecond)
	pt.RecordCompletion(100 * time.Millisecond)

	// 8 remaining at 100ms each.
	if eta := pt.ETA(); eta != 800*time.Millisecond {
		t.Errorf("expected ETA 800ms, got %v", eta)
	}
}

func TestProgressTracker_MovingWindow(t *testing.T) {
	pt := NewProgressTracker("sort", 100, zerolog.Nop())

	for i := 0; i < 10; i++ {
		pt.RecordCompletion(time.Second)
	}
	for i := 0; i < 10; i++ {
		pt.RecordCompletion(10 * time.Millisecond)
	}

	// Only the last 10 durations count: 80 remaining at 10ms.
	if eta := pt.ETA(); eta != 800*time.Millisecond {
		t.Errorf("expected ETA 800ms, got %v", eta)
	}
}

func TestProgressTracker_ZeroTotal(t *testing.T) {
	pt := NewProgressTracker("sort", 0, zerolog.Nop())

	if pct := pt.ProgressPct(); pct != 100.0 {
		t.Errorf("expected 100%% for zero total, got %.1f%%", pct)
	}
	if eta := pt.ETA(); eta != 0 {
		t.Errorf("expected 0 ETA for zero total, got %v", eta)
	}
}

func TestCompletionEvent_BasicFields(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)
	SetPrettyMode(false)

	RunCompleted(log, "sort", 500*time.Millisecond).
		Str("algorithm", "merge").
		Int("size", 1000).
		Log("run completed")

	output := buf.String()
	for _, want := range []string{
		`"event":"run_completed"`,
		`"phase":"sort"`,
		`"duration_ms":500`,
		`"duration_ns":500000000`,
		`"algorithm":"merge"`,
		`"size":1000`,
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %s in output, got: %s", want, output)
		}
	}
	if strings.Contains(output, "duration_h") {
		t.Errorf("unexpected humanized field in JSON mode: %s", output)
	}
}

func TestCompletionEvent_PrettyCompanions(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)
	SetPrettyMode(true)
	defer SetPrettyMode(false)

	FileWritten(log, "generate", 2*time.Second).
		Bytes("bytes", 2048).
		Count("elements", 1500).
		Rate("elements_per_sec", 1000).
		Log("file written")

	output := buf.String()
	for _, want := range []string{
		`"bytes":2048`,
		`"bytes_h":"2.00 KiB"`,
		`"elements":1500`,
		`"elements_h":"1.50K"`,
		`"elements_per_sec":500`,
		`"elements_per_sec_h":"500/s"`,
		`"duration_h":"2.00s"`,
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %s in output, got: %s", want, output)
		}
	}
}

func TestCompletionEvent_RateWithoutDuration(t *testing.T) {
	var buf bytes.Buffer
	PhaseComplete(zerolog.New(&buf), "sort", 0).Rate("elements_per_sec", 10).Log("done")

	if strings.Contains(buf.String(), "elements_per_sec") {
		t.Errorf("rate must be omitted for zero duration, got: %s", buf.String())
	}
}

func TestCompletionEvent_LogDebug(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf).Level(zerolog.InfoLevel)

	PhaseComplete(log, "sort", time.Second).LogDebug("hidden")
	if buf.Len() != 0 {
		t.Errorf("debug event leaked at info level: %s", buf.String())
	}
}

func TestProgressFromTracker(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)
	pt := NewProgressTracker("sort", 4, log)
	pt.RecordCompletion(time.Second)
	pt.RecordSkip()

	NewCompletionEvent(log, "progress", "sort", time.Second).ProgressFromTracker(pt).Log("progress")

	output := buf.String()
	for _, want := range []string{`"completed":1`, `"skipped":1`, `"total":4`, `"progress_pct":50`, `"eta_ms":2000`} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %s in output, got: %s", want, output)
		}
	}
}

func TestRunSkipped(t *testing.T) {
	var buf bytes.Buffer
	RunSkipped(zerolog.New(&buf), "multiply", "strassen", "matrix_1024", "memory budget")

	output := buf.String()
	for _, want := range []string{`"level":"warn"`, `"event":"run_skipped"`, `"reason":"memory budget"`} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %s in output, got: %s", want, output)
		}
	}
}
