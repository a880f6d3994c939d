// Package membudget bounds how much memory a single benchmark run may use.
//
// The runner asks the budget before loading a dataset and every algorithm's
// working copy; runs that would not fit are skipped rather than letting
// Strassen's temporaries push the machine into swap.
package membudget

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/eunmann/algobench/pkg/sysmem"
)

// DefaultBudgetBytes is used when system RAM cannot be detected.
const DefaultBudgetBytes uint64 = 4 * 1024 * 1024 * 1024

// ErrExceedsBudget is returned when a reservation can never be satisfied.
var ErrExceedsBudget = errors.New("membudget: reservation exceeds budget")

// BudgetSource indicates how the memory budget was determined.
type BudgetSource string

const (
	// BudgetSourceAuto50Pct indicates the budget was set to 50% of detected RAM.
	BudgetSourceAuto50Pct BudgetSource = "auto-50pct"
	// BudgetSourceDefault indicates the budget used the fallback default.
	BudgetSourceDefault BudgetSource = "default"
	// BudgetSourceCLI indicates the budget was set via CLI flag.
	BudgetSourceCLI BudgetSource = "cli"
	// BudgetSourceEnv indicates the budget was set via environment variable.
	BudgetSourceEnv BudgetSource = "env"
	// BudgetSourceConfig indicates the budget came from the config file.
	BudgetSourceConfig BudgetSource = "config"
)

// Budget tracks reserved bytes against a fixed total. Safe for concurrent use.
type Budget struct {
	total  uint64
	inUse  atomic.Uint64
	source BudgetSource
}

// Config holds configuration for creating a Budget.
type Config struct {
	TotalBytes uint64
	Source     BudgetSource
}

// New creates a new Budget with the given configuration.
func New(cfg Config) *Budget {
	return &Budget{total: cfg.TotalBytes, source: cfg.Source}
}

// NewFromSystemRAM creates a Budget set to 50% of system RAM, or
// DefaultBudgetBytes when RAM cannot be detected.
func NewFromSystemRAM() *Budget {
	snap := sysmem.Read()
	if !snap.Reliable {
		return New(Config{TotalBytes: DefaultBudgetBytes, Source: BudgetSourceDefault})
	}
	return New(Config{TotalBytes: snap.TotalBytes / 2, Source: BudgetSourceAuto50Pct})
}

// Total returns the total budget in bytes.
func (b *Budget) Total() uint64 { return b.total }

// InUse returns the currently reserved bytes.
func (b *Budget) InUse() uint64 { return b.inUse.Load() }

// Source returns how the budget was determined.
func (b *Budget) Source() BudgetSource { return b.source }

// Available returns total minus reserved bytes.
func (b *Budget) Available() uint64 {
	inUse := b.inUse.Load()
	if inUse >= b.total {
		return 0
	}
	return b.total - inUse
}

// Fits reports whether n more bytes could be reserved right now.
func (b *Budget) Fits(n uint64) bool {
	return n <= b.Available()
}

// TryReserve reserves n bytes. Returns ErrExceedsBudget if n is larger
// than the whole budget, or false if it does not fit right now.
func (b *Budget) TryReserve(n uint64) (bool, error) {
	if n > b.total {
		return false, fmt.Errorf("%w: %s > %s", ErrExceedsBudget, FormatBytes(n), FormatBytes(b.total))
	}
	for {
		current := b.inUse.Load()
		if current+n > b.total {
			return false, nil
		}
		if b.inUse.CompareAndSwap(current, current+n) {
			return true, nil
		}
	}
}

// Release returns n bytes to the pool. Over-release clamps at zero.
func (b *Budget) Release(n uint64) {
	for {
		current := b.inUse.Load()
		next := uint64(0)
		if n < current {
			next = current - n
		}
		if b.inUse.CompareAndSwap(current, next) {
			return
		}
	}
}

// ParseHumanSize parses a human-readable size string (e.g., "4GiB", "512MB").
// Supported suffixes: B, K, KB, KiB, M, MB, MiB, G, GB, GiB, T, TB, TiB.
func ParseHumanSize(s string) (uint64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New("empty size string")
	}

	numEnd := len(s)
	for i, c := range s {
		if (c < '0' || c > '9') && c != '.' {
			numEnd = i
			break
		}
	}
	numStr, suffix := s[:numEnd], s[numEnd:]

	num, err := strconv.ParseFloat(numStr, 64)
	if err != nil || num < 0 {
		return 0, fmt.Errorf("invalid number: %q", numStr)
	}

	var multiplier float64
	switch suffix {
	case "", "B":
		multiplier = 1
	case "KB":
		multiplier = 1e3
	case "KiB", "K":
		multiplier = 1 << 10
	case "MB":
		multiplier = 1e6
	case "MiB", "M":
		multiplier = 1 << 20
	case "GB":
		multiplier = 1e9
	case "GiB", "G":
		multiplier = 1 << 30
	case "TB":
		multiplier = 1e12
	case "TiB", "T":
		multiplier = 1 << 40
	default:
		return 0, fmt.Errorf("unknown size suffix: %s", suffix)
	}

	return uint64(num * multiplier), nil
}

// FormatBytes formats a byte count as a human-readable string.
func FormatBytes(b uint64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := uint64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %ciB", float64(b)/float64(div), "KMGTPE"[exp])
}
