package datagen

import (
	"os"
	"testing"
)

// SkipIfNoLongBench skips the benchmark if ALGOBENCH_LONG_BENCH is not set.
// Use this to gate long-running benchmarks that shouldn't run by default.
func SkipIfNoLongBench(b *testing.B) {
	if os.Getenv("ALGOBENCH_LONG_BENCH") == "" {
		b.Skip("set ALGOBENCH_LONG_BENCH=1 to run scaling benchmark")
	}
}
