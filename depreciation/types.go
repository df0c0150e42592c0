/*
Package depreciation computes monthly depreciation schedules and their
fiscal-period aggregations.

PURPOSE:
  Given an asset's cost, purchase date, and useful life, this package
  produces the month-by-month depreciation schedule, projects it onto
  fiscal years, quarters, and arbitrary timelines, and derives
  portfolio-wide statistics. Everything here is pure computation: no
  I/O, no clocks (callers pass "now"), no shared state. Identical input
  always yields identical output.

KEY CONCEPTS IN THIS FILE (types.go):
  - ScheduleEntry: One calendar month's depreciation charge
  - Schedule: The ordered sequence of charges for one asset
  - MonthKey: A (year, zero-based month) pair used as map keys
  - TimelineMonth: One labeled month of a portfolio-wide timeline
  - PortfolioStats: Derived counts and totals across all assets

DESIGN PRINCIPLES:
  1. Precision: decimal.Decimal throughout, rounded to 2dp at entry
     boundaries; the schedule always sums back to cost within 0.01
  2. Forgiveness: malformed input degrades to an empty schedule, and an
     empty schedule contributes zero everywhere downstream
  3. Months are zero-based (0 = January) end to end, matching the
     fiscal quarter arithmetic and the chart layer's keys

SEE ALSO:
  - fiscal.go: Fiscal-year labeling and quarter month sets
  - schedule.go: The schedule builder
  - projection.go: Per-period extraction with zero fill
  - stats.go: Portfolio statistics
*/
package depreciation

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// =============================================================================
// SCHEDULE - Monthly charges for one asset
// =============================================================================

// ScheduleEntry is one calendar month's depreciation charge.
// Month is zero-based (0 = January).
type ScheduleEntry struct {
	Year   int
	Month  int
	Amount decimal.Decimal
}

// Key returns the entry's month key.
func (e ScheduleEntry) Key() MonthKey {
	return MonthKey{Year: e.Year, Month: e.Month}
}

// Schedule is an asset's ordered depreciation schedule: one entry per
// calendar month, strictly increasing, from the purchase month through
// the month the cost is fully recovered.
type Schedule []ScheduleEntry

// Total sums every entry.
func (s Schedule) Total() decimal.Decimal {
	total := decimal.Zero
	for _, e := range s {
		total = total.Add(e.Amount)
	}
	return total
}

// First returns the earliest entry; ok is false for an empty schedule.
func (s Schedule) First() (ScheduleEntry, bool) {
	if len(s) == 0 {
		return ScheduleEntry{}, false
	}
	return s[0], true
}

// Last returns the latest entry; ok is false for an empty schedule.
func (s Schedule) Last() (ScheduleEntry, bool) {
	if len(s) == 0 {
		return ScheduleEntry{}, false
	}
	return s[len(s)-1], true
}

// At returns the entry for an exact (year, month), if any.
func (s Schedule) At(year, month int) (ScheduleEntry, bool) {
	for _, e := range s {
		if e.Year == year && e.Month == month {
			return e, true
		}
	}
	return ScheduleEntry{}, false
}

// =============================================================================
// MONTH KEY - (year, month) pair
// =============================================================================

// MonthKey identifies a calendar month. Month is zero-based.
type MonthKey struct {
	Year  int
	Month int
}

// Before uses year-then-month ordering.
func (k MonthKey) Before(other MonthKey) bool {
	return k.Year < other.Year || (k.Year == other.Year && k.Month < other.Month)
}

// After uses year-then-month ordering.
func (k MonthKey) After(other MonthKey) bool {
	return other.Before(k)
}

// Next advances one calendar month, wrapping December into January.
func (k MonthKey) Next() MonthKey {
	if k.Month >= 11 {
		return MonthKey{Year: k.Year + 1, Month: 0}
	}
	return MonthKey{Year: k.Year, Month: k.Month + 1}
}

// String renders the chart-layer key form, e.g. "2024-5".
func (k MonthKey) String() string {
	return fmt.Sprintf("%d-%d", k.Year, k.Month)
}

// =============================================================================
// TIMELINE - Portfolio-wide contiguous month range
// =============================================================================

// TimelineMonth is one month of a full-lifespan timeline, with its
// display label ("Jun 2023").
type TimelineMonth struct {
	Year  int
	Month int
	Label string
}

// =============================================================================
// PORTFOLIO STATS - Derived counts and totals
// =============================================================================

// PortfolioStats is recomputed on demand from the asset collection; it
// has no independent lifecycle.
type PortfolioStats struct {
	TotalAssets       int
	FullyDepreciated  int
	NewAssets         int
	CurrentMonthTotal decimal.Decimal
	MonthlyTotals     map[MonthKey]decimal.Decimal
}
