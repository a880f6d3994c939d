package sysmem

import (
	"runtime"
	"testing"
)

func TestRead(t *testing.T) {
	s := Read()

	if s.TotalBytes == 0 {
		t.Fatal("Read() returned 0 total bytes")
	}
	if s.AvailableBytes > s.TotalBytes {
		t.Errorf("available %d exceeds total %d", s.AvailableBytes, s.TotalBytes)
	}

	switch runtime.GOOS {
	case "linux", "darwin":
		if !s.Reliable {
			t.Logf("memory detection not reliable on %s", runtime.GOOS)
		}
	default:
		if s.Reliable {
			t.Errorf("expected Reliable=false on %s", runtime.GOOS)
		}
		if s.TotalBytes != DefaultMemoryBytes {
			t.Errorf("expected fallback %d on %s, got %d", DefaultMemoryBytes, runtime.GOOS, s.TotalBytes)
		}
	}

	t.Logf("total=%d available=%d reliable=%v", s.TotalBytes, s.AvailableBytes, s.Reliable)
}

func TestTotalBytesMatchesRead(t *testing.T) {
	if got, want := TotalBytes(), Read().TotalBytes; got != want {
		t.Errorf("TotalBytes() = %d, Read().TotalBytes = %d", got, want)
	}
}

func TestDefaultMemoryBytes(t *testing.T) {
	if DefaultMemoryBytes != 4<<30 {
		t.Errorf("DefaultMemoryBytes = %d, want 4 GiB", DefaultMemoryBytes)
	}
}
