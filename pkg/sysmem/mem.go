// Package sysmem reports physical memory so the benchmark driver can size
// its memory budget before loading large matrices.
package sysmem

// DefaultMemoryBytes (4 GiB) stands in for total RAM when the platform
// cannot report it.
const DefaultMemoryBytes uint64 = 4 * 1024 * 1024 * 1024

// Snapshot is one reading of system memory.
type Snapshot struct {
	// TotalBytes is physical RAM, or DefaultMemoryBytes on fallback.
	TotalBytes uint64

	// AvailableBytes is free RAM at read time. Zero when unknown.
	AvailableBytes uint64

	// Reliable is false when TotalBytes is the fallback value.
	Reliable bool
}

// Read takes a memory snapshot using the platform probe.
func Read() Snapshot {
	total, avail, ok := probe()
	if !ok || total == 0 {
		return Snapshot{TotalBytes: DefaultMemoryBytes}
	}
	if avail > total {
		avail = total
	}
	return Snapshot{TotalBytes: total, AvailableBytes: avail, Reliable: true}
}

// TotalBytes returns physical RAM, falling back to DefaultMemoryBytes.
func TotalBytes() uint64 {
	return Read().TotalBytes
}
