// Package memdiag measures heap activity around a benchmark run.
//
// Set ALGOBENCH_MEM_DEBUG=1 to log heap stats before every run.
package memdiag

import (
	"fmt"
	"os"
	"runtime"

	"github.com/eunmann/algobench/pkg/logging"
)

// DebugEnabled reports whether ALGOBENCH_MEM_DEBUG=1 is set.
func DebugEnabled() bool {
	return os.Getenv("ALGOBENCH_MEM_DEBUG") == "1"
}

// Stats holds the runtime memory counters the runner cares about.
type Stats struct {
	// HeapAlloc is bytes allocated on heap and still in use.
	HeapAlloc uint64

	// TotalAlloc is cumulative bytes allocated (even if freed).
	TotalAlloc uint64

	// Mallocs is the cumulative count of heap objects allocated.
	Mallocs uint64

	// Sys is bytes obtained from OS.
	Sys uint64

	// NumGC is the number of completed GC cycles.
	NumGC uint32
}

// Read reads current memory statistics.
func Read() Stats {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return Stats{
		HeapAlloc:  m.HeapAlloc,
		TotalAlloc: m.TotalAlloc,
		Mallocs:    m.Mallocs,
		Sys:        m.Sys,
		NumGC:      m.NumGC,
	}
}

// Delta is the allocation activity between two Stats readings.
type Delta struct {
	AllocBytes uint64
	Allocs     uint64
	GCs        uint32
}

// Since returns the activity between start and now.
func Since(start Stats) Delta {
	return Diff(start, Read())
}

// Diff returns the activity between two readings. Counters are monotonic,
// so a reversed pair yields zeros.
func Diff(start, end Stats) Delta {
	var d Delta
	if end.TotalAlloc > start.TotalAlloc {
		d.AllocBytes = end.TotalAlloc - start.TotalAlloc
	}
	if end.Mallocs > start.Mallocs {
		d.Allocs = end.Mallocs - start.Mallocs
	}
	if end.NumGC > start.NumGC {
		d.GCs = end.NumGC - start.NumGC
	}
	return d
}

// FormatMB formats bytes as megabytes.
func FormatMB(b uint64) string {
	return fmt.Sprintf("%.1fMB", float64(b)/(1024*1024))
}

// Settle runs a GC so one run's garbage is not billed to the next. With
// debug enabled it logs the heap before and after.
func Settle(reason string) {
	if !DebugEnabled() {
		runtime.GC()
		return
	}

	before := Read()
	runtime.GC()
	after := Read()

	freed := int64(before.HeapAlloc) - int64(after.HeapAlloc)
	logging.L().Debug().
		Str("reason", reason).
		Str("before_heap", FormatMB(before.HeapAlloc)).
		Str("after_heap", FormatMB(after.HeapAlloc)).
		Str("freed", FormatMB(uint64(max(freed, 0)))).
		Str("sys_total", FormatMB(after.Sys)).
		Uint32("num_gc", after.NumGC).
		Msg("memory stats")
}
