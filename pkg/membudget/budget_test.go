package membudget

import (
	"errors"
	"testing"
)

func TestBudgetBasic(t *testing.T) {
	budget := New(Config{TotalBytes: 1000, Source: BudgetSourceCLI})

	if budget.Total() != 1000 {
		t.Errorf("Total() = %d, want 1000", budget.Total())
	}
	if budget.Source() != BudgetSourceCLI {
		t.Errorf("Source() = %s, want %s", budget.Source(), BudgetSourceCLI)
	}
	if budget.Available() != 1000 {
		t.Errorf("Available() = %d, want 1000", budget.Available())
	}
}

func TestReserveRelease(t *testing.T) {
	budget := New(Config{TotalBytes: 1000})

	ok, err := budget.TryReserve(600)
	if err != nil || !ok {
		t.Fatalf("TryReserve(600) = %v, %v", ok, err)
	}
	if budget.Fits(500) {
		t.Error("Fits(500) with 400 available")
	}

	ok, err = budget.TryReserve(500)
	if err != nil || ok {
		t.Errorf("TryReserve(500) = %v, %v; want false, nil", ok, err)
	}

	budget.Release(600)
	if budget.InUse() != 0 {
		t.Errorf("InUse() = %d after release", budget.InUse())
	}

	budget.Release(10)
	if budget.InUse() != 0 {
		t.Errorf("over-release went below zero: %d", budget.InUse())
	}
}

func TestTryReserveTooLarge(t *testing.T) {
	budget := New(Config{TotalBytes: 1000})
	ok, err := budget.TryReserve(1001)
	if ok || !errors.Is(err, ErrExceedsBudget) {
		t.Errorf("TryReserve(1001) = %v, %v", ok, err)
	}
}

func TestNewFromSystemRAM(t *testing.T) {
	budget := NewFromSystemRAM()

	if budget.Total() == 0 {
		t.Fatal("zero budget")
	}
	if budget.Source() != BudgetSourceAuto50Pct && budget.Source() != BudgetSourceDefault {
		t.Errorf("Source = %s, want auto-50pct or default", budget.Source())
	}
	if budget.Source() == BudgetSourceDefault && budget.Total() != DefaultBudgetBytes {
		t.Errorf("default source with total %d", budget.Total())
	}
}

func TestParseHumanSize(t *testing.T) {
	tests := []struct {
		input   string
		want    uint64
		wantErr bool
	}{
		{"1024", 1024, false},
		{"100B", 100, false},
		{"1KB", 1000, false},
		{"1KiB", 1024, false},
		{"1K", 1024, false},
		{"1MB", 1000000, false},
		{"1MiB", 1024 * 1024, false},
		{"1M", 1024 * 1024, false},
		{"1GB", 1000000000, false},
		{"1GiB", 1024 * 1024 * 1024, false},
		{"4GiB", 4 * 1024 * 1024 * 1024, false},
		{"0.5GiB", 512 * 1024 * 1024, false},
		{" 2G ", 2 * 1024 * 1024 * 1024, false},
		{"", 0, true},
		{"XYZ", 0, true},
		{"100XB", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseHumanSize(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseHumanSize(%q) should error", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseHumanSize(%q) error: %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("ParseHumanSize(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		input uint64
		want  string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1024, "1.00 KiB"},
		{1536, "1.50 KiB"},
		{1024 * 1024, "1.00 MiB"},
		{4 * 1024 * 1024 * 1024, "4.00 GiB"},
	}

	for _, tt := range tests {
		if got := FormatBytes(tt.input); got != tt.want {
			t.Errorf("FormatBytes(%d) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
