package depreciation_test

import (
	"testing"

	"github.com/assettrack/asset-engine/depreciation"
)

func TestFiscalYearOf_JuneStart(t *testing.T) {
	// GIVEN: The default June fiscal start
	// WHEN: Labeling months either side of the boundary
	// THEN: June keeps its calendar year, May belongs to the prior one

	cases := []struct {
		year, month int
		want        int
	}{
		{2024, 5, 2024},  // June 2024 -> FY2024
		{2024, 4, 2023},  // May 2024 -> FY2023
		{2024, 11, 2024}, // December 2024 -> FY2024
		{2025, 0, 2024},  // January 2025 -> FY2024
		{2023, 5, 2023},
	}

	for _, c := range cases {
		got := depreciation.FiscalYearOf(c.year, c.month, depreciation.DefaultFiscalStartMonth)
		if got != c.want {
			t.Errorf("FiscalYearOf(%d, %d) = %d, want %d", c.year, c.month, got, c.want)
		}
	}
}

func TestFiscalYearOf_JanuaryStart(t *testing.T) {
	// A January start collapses fiscal year onto calendar year.
	for month := 0; month < 12; month++ {
		if got := depreciation.FiscalYearOf(2024, month, 0); got != 2024 {
			t.Errorf("FiscalYearOf(2024, %d, 0) = %d, want 2024", month, got)
		}
	}
}

func TestQuarterMonths_JuneStart(t *testing.T) {
	want := map[int][3]int{
		1: {5, 6, 7},
		2: {8, 9, 10},
		3: {11, 0, 1}, // Dec, Jan, Feb - wraps into the next calendar year
		4: {2, 3, 4},
	}
	for q, months := range want {
		got := depreciation.QuarterMonths(q, depreciation.DefaultFiscalStartMonth)
		if got != months {
			t.Errorf("QuarterMonths(%d) = %v, want %v", q, got, months)
		}
	}
}

func TestFiscalYearMonths_PartitionsIntoQuarters(t *testing.T) {
	// GIVEN: The 12 months of a fiscal year
	// WHEN: Comparing against the four quarter month sets
	// THEN: They partition exactly, no overlap, no omission

	fiscalMonths := depreciation.FiscalYearMonths(depreciation.DefaultFiscalStartMonth)

	var fromQuarters []int
	for q := 1; q <= 4; q++ {
		months := depreciation.QuarterMonths(q, depreciation.DefaultFiscalStartMonth)
		fromQuarters = append(fromQuarters, months[:]...)
	}

	if len(fromQuarters) != 12 {
		t.Fatalf("quarters yielded %d months, want 12", len(fromQuarters))
	}
	for i, m := range fiscalMonths {
		if fromQuarters[i] != m {
			t.Errorf("position %d: fiscal order has %d, quarters have %d", i, m, fromQuarters[i])
		}
	}

	seen := make(map[int]bool)
	for _, m := range fromQuarters {
		if seen[m] {
			t.Errorf("month %d appears in more than one quarter", m)
		}
		seen[m] = true
	}
}

func TestFiscalYearMonths_RoundTrip(t *testing.T) {
	// Every month of FY y labels back to y (from the start month) or to
	// y via the previous calendar year (before it).
	const start = depreciation.DefaultFiscalStartMonth
	for _, m := range depreciation.FiscalYearMonths(start) {
		year := 2024
		if m < start {
			year = 2025 // wrapped months fall in the next calendar year
		}
		if got := depreciation.FiscalYearOf(year, m, start); got != 2024 {
			t.Errorf("FiscalYearOf(%d, %d) = %d, want 2024", year, m, got)
		}
	}
}

func TestMonthLabel(t *testing.T) {
	if got := depreciation.MonthLabel(2023, 5); got != "Jun 2023" {
		t.Errorf("MonthLabel(2023, 5) = %q, want %q", got, "Jun 2023")
	}
	if got := depreciation.MonthLabel(2025, 0); got != "Jan 2025" {
		t.Errorf("MonthLabel(2025, 0) = %q, want %q", got, "Jan 2025")
	}
}
