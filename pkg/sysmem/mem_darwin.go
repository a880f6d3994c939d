//go:build darwin

package sysmem

import "golang.org/x/sys/unix"

// probe reads hw.memsize. macOS has no cheap free-memory counter, so
// avail is left at zero.
func probe() (total, avail uint64, ok bool) {
	mem, err := unix.SysctlUint64("hw.memsize")
	if err != nil {
		return 0, 0, false
	}
	return mem, 0, true
}
