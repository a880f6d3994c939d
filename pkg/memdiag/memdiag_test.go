package memdiag

import "testing"

var sink []int

func TestSinceCountsAllocations(t *testing.T) {
	start := Read()
	sink = make([]int, 1<<16)
	d := Since(start)

	if d.AllocBytes < uint64(len(sink))*8 {
		t.Errorf("AllocBytes = %d, want at least %d", d.AllocBytes, len(sink)*8)
	}
	if d.Allocs == 0 {
		t.Error("Allocs = 0")
	}
}

func TestDiffReversed(t *testing.T) {
	a := Stats{TotalAlloc: 100, Mallocs: 5, NumGC: 2}
	b := Stats{TotalAlloc: 50, Mallocs: 1, NumGC: 1}
	if d := Diff(a, b); d != (Delta{}) {
		t.Errorf("Diff reversed = %+v, want zero", d)
	}
}

func TestSettle(t *testing.T) {
	before := Read().NumGC
	Settle("test")
	if Read().NumGC <= before {
		t.Error("Settle did not run a GC")
	}
}

func TestFormatMB(t *testing.T) {
	if got := FormatMB(3 * 1024 * 1024 / 2); got != "1.5MB" {
		t.Errorf("FormatMB = %q", got)
	}
}
