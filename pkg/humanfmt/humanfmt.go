// Package humanfmt renders run measurements for people: allocation sizes and
// element counts in completion events, and timings in the report table.
// Machine-readable log fields keep the raw numbers; these strings only feed
// the "_h" companions and table cells.
package humanfmt

import (
	"fmt"
	"strconv"
	"time"
)

// Binary (IEC) units for bytes.
const (
	KiB = 1024
	MiB = 1024 * KiB
	GiB = 1024 * MiB
	TiB = 1024 * GiB
)

type unit struct {
	size   float64
	suffix string
}

// Largest first.
var (
	byteUnits  = []unit{{TiB, " TiB"}, {GiB, " GiB"}, {MiB, " MiB"}, {KiB, " KiB"}}
	countUnits = []unit{{1e9, "B"}, {1e6, "M"}, {1e3, "K"}}
)

// scale picks the largest unit not above n. Small and negative values are
// printed as plain integers followed by plain.
func scale(n int64, units []unit, plain string) string {
	for _, u := range units {
		if float64(n) >= u.size {
			return fmt.Sprintf("%.2f%s", float64(n)/u.size, u.suffix)
		}
	}
	return strconv.FormatInt(n, 10) + plain
}

// Bytes formats an allocation size, e.g. "1.50 GiB".
func Bytes(b int64) string {
	return scale(b, byteUnits, " B")
}

// Count formats an element or cell count, e.g. "1.23M".
func Count(n int64) string {
	return scale(n, countUnits, "")
}

// Rate formats n items processed in d, e.g. "1.50M/s".
func Rate(n int64, d time.Duration) string {
	if d <= 0 {
		return "∞"
	}
	return Count(int64(float64(n)/d.Seconds())) + "/s"
}

// Seconds formats a timing read back from a timing file.
func Seconds(s float64) string {
	return Duration(time.Duration(s * float64(time.Second)))
}

// Duration formats d compactly: "2h15m", "1m30s", "1.23s", "45.6ms",
// "789.0µs" or "500ns".
func Duration(d time.Duration) string {
	switch {
	case d < 0:
		return d.String()
	case d >= time.Hour:
		return wholeUnits(d, time.Hour, time.Minute, "h", "m")
	case d >= time.Minute:
		return wholeUnits(d, time.Minute, time.Second, "m", "s")
	case d >= time.Second:
		return fmt.Sprintf("%.2fs", d.Seconds())
	case d >= time.Millisecond:
		return fmt.Sprintf("%.1fms", float64(d)/float64(time.Millisecond))
	case d >= time.Microsecond:
		return fmt.Sprintf("%.1fµs", float64(d)/float64(time.Microsecond))
	default:
		return strconv.FormatInt(d.Nanoseconds(), 10) + "ns"
	}
}

// wholeUnits prints d as major units plus truncated minor units, dropping a
// zero minor part.
func wholeUnits(d, major, minor time.Duration, majorSuffix, minorSuffix string) string {
	hi := int64(d / major)
	lo := int64((d % major) / minor)
	if lo == 0 {
		return strconv.FormatInt(hi, 10) + majorSuffix
	}
	return strconv.FormatInt(hi, 10) + majorSuffix + strconv.FormatInt(lo, 10) + minorSuffix
}
