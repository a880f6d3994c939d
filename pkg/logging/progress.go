package logging

import (
	"time"

	"github.com/eunmann/algobench/pkg/humanfmt"
	"github.com/rs/zerolog"
)

// ProgressTracker tracks how many benchmark runs of a phase are done and
// estimates the time left. It is not safe for concurrent use; the driver
// executes runs one after another.
type ProgressTracker struct {
	total     int64
	completed int64
	skipped   int64
	startTime time.Time
	log       zerolog.Logger
	phase     string

	// Moving window of recent run durations for the ETA.
	recent    []time.Duration
	maxRecent int
}

// NewProgressTracker creates a new progress tracker.
func NewProgressTracker(phase string, total int64, log zerolog.Logger) *ProgressTracker {
	return &ProgressTracker{
		total:     total,
		startTime: time.Now(),
		log:       log,
		phase:     phase,
		recent:    make([]time.Duration, 0, 10),
		maxRecent: 10,
	}
}

// RecordCompletion records that a run completed in d.
func (pt *ProgressTracker) RecordCompletion(d time.Duration) {
	pt.completed++
	if len(pt.recent) >= pt.maxRecent {
		pt.recent = pt.recent[1:]
	}
	pt.recent = append(pt.recent, d)
}

// RecordSkip records that a run was skipped.
func (pt *ProgressTracker) RecordSkip() {
	pt.skipped++
}

// Progress returns current progress stats.
func (pt *ProgressTracker) Progress() (completed, skipped, total int64) {
	return pt.completed, pt.skipped, pt.total
}

// ProgressPct returns the progress percentage (0-100).
func (pt *ProgressTracker) ProgressPct() float64 {
	if pt.total == 0 {
		return 100.0
	}
	return float64(pt.completed+pt.skipped) * 100.0 / float64(pt.total)
}

// ETA estimates the remaining time from the recent run durations.
func (pt *ProgressTracker) ETA() time.Duration {
	if pt.completed == 0 {
		return 0
	}
	remaining := pt.Remaining()
	if remaining <= 0 {
		return 0
	}

	var avg time.Duration
	if len(pt.recent) > 0 {
		var sum time.Duration
		for _, d := range pt.recent {
			sum += d
		}
		avg = sum / time.Duration(len(pt.recent))
	} else {
		avg = time.Since(pt.startTime) / time.Duration(pt.completed)
	}
	return avg * time.Duration(remaining)
}

// Elapsed returns time since tracking started.
func (pt *ProgressTracker) Elapsed() time.Duration {
	return time.Since(pt.startTime)
}

// Remaining returns how many runs are left.
func (pt *ProgressTracker) Remaining() int64 {
	return pt.total - pt.completed - pt.skipped
}

// LogProgress emits a progress event at debug level.
func (pt *ProgressTracker) LogProgress() {
	NewCompletionEvent(pt.log, "progress", pt.phase, pt.Elapsed()).
		ProgressFromTracker(pt).
		LogDebug("benchmark progress")
}

// CompletionEvent builds consistent completion log events.
type CompletionEvent struct {
	log     zerolog.Logger
	event   string
	phase   string
	elapsed time.Duration
	fields  map[string]interface{}
}

// NewCompletionEvent creates a new completion event builder.
func NewCompletionEvent(log zerolog.Logger, event, phase string, elapsed time.Duration) *CompletionEvent {
	return &CompletionEvent{
		log:     log,
		event:   event,
		phase:   phase,
		elapsed: elapsed,
		fields:  make(map[string]interface{}),
	}
}

// Str adds a string field.
func (ce *CompletionEvent) Str(key, val string) *CompletionEvent {
	ce.fields[key] = val
	return ce
}

// Int adds an int field.
func (ce *CompletionEvent) Int(key string, val int) *CompletionEvent {
	ce.fields[key] = val
	return ce
}

// Float64 adds a float64 field.
func (ce *CompletionEvent) Float64(key string, val float64) *CompletionEvent {
	ce.fields[key] = val
	return ce
}

// Bytes adds a byte count with an optional human-readable companion.
func (ce *CompletionEvent) Bytes(key string, b int64) *CompletionEvent {
	ce.fields[key] = b
	if IsPrettyMode() {
		ce.fields[key+"_h"] = humanfmt.Bytes(b)
	}
	return ce
}

// Count adds a count with an optional human-readable companion.
func (ce *CompletionEvent) Count(key string, n int64) *CompletionEvent {
	ce.fields[key] = n
	if IsPrettyMode() {
		ce.fields[key+"_h"] = humanfmt.Count(n)
	}
	return ce
}

// Rate adds elements processed per second over the event duration.
func (ce *CompletionEvent) Rate(key string, n int64) *CompletionEvent {
	if ce.elapsed > 0 {
		ce.fields[key] = float64(n) / ce.elapsed.Seconds()
		if IsPrettyMode() {
			ce.fields[key+"_h"] = humanfmt.Rate(n, ce.elapsed)
		}
	}
	return ce
}

// ProgressFromTracker adds progress fields from a ProgressTracker.
func (ce *CompletionEvent) ProgressFromTracker(pt *ProgressTracker) *CompletionEvent {
	completed, skipped, total := pt.Progress()
	ce.fields["completed"] = completed
	ce.fields["skipped"] = skipped
	ce.fields["total"] = total
	if total > 0 {
		ce.fields["progress_pct"] = pt.ProgressPct()
	}
	if eta := pt.ETA(); eta > 0 {
		ce.fields["eta_ms"] = eta.Milliseconds()
		if IsPrettyMode() {
			ce.fields["eta_h"] = humanfmt.Duration(eta)
		}
	}
	return ce
}

// Log emits the completion event at info level.
func (ce *CompletionEvent) Log(msg string) {
	ce.emit(ce.log.Info(), msg)
}

// LogDebug emits the completion event at debug level.
func (ce *CompletionEvent) LogDebug(msg string) {
	ce.emit(ce.log.Debug(), msg)
}

func (ce *CompletionEvent) emit(e *zerolog.Event, msg string) {
	e = e.Str("event", ce.event).
		Str("phase", ce.phase).
		Int64("duration_ms", ce.elapsed.Milliseconds()).
		Int64("duration_ns", ce.elapsed.Nanoseconds())

	if IsPrettyMode() {
		e = e.Str("duration_h", humanfmt.Duration(ce.elapsed))
	}
	for k, v := range ce.fields {
		e = e.Interface(k, v)
	}
	e.Msg(msg)
}

// RunCompleted starts an event for one timed strategy call.
func RunCompleted(log zerolog.Logger, phase string, elapsed time.Duration) *CompletionEvent {
	return NewCompletionEvent(log, "run_completed", phase, elapsed)
}

// PhaseComplete starts an event for a finished phase (generate, sort, ...).
func PhaseComplete(log zerolog.Logger, phase string, elapsed time.Duration) *CompletionEvent {
	return NewCompletionEvent(log, "phase_completed", phase, elapsed)
}

// FileWritten starts an event for a dataset or result file write.
func FileWritten(log zerolog.Logger, phase string, elapsed time.Duration) *CompletionEvent {
	return NewCompletionEvent(log, "file_written", phase, elapsed)
}

// RunSkipped logs a run that was not executed and why.
func RunSkipped(log zerolog.Logger, phase, algorithm, dataset, reason string) {
	log.Warn().
		Str("event", "run_skipped").
		Str("phase", phase).
		Str("algorithm", algorithm).
		Str("dataset", dataset).
		Str("reason", reason).
		Msg("run skipped")
}
