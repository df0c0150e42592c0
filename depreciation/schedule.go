/*
schedule.go - Monthly depreciation schedule builder

PURPOSE:
  Turns one asset record into its ordered sequence of monthly
  depreciation charges, covering the full useful life.

ALGORITHM:
  standardMonthly = cost / totalMonths
  dailyRate       = standardMonthly / 30   (fixed 30-day months)

  1. Purchase month is partial: remainingDays = 30 - day + 1, charged
     at dailyRate, capped at cost, rounded to 2dp.
  2. Each following month charges standardMonthly rounded to 2dp,
     advancing one calendar month at a time (11 wraps to 0 with a year
     increment).
  3. The final month is clamped to exactly cost - accumulated so the
     schedule sums back to cost.
  4. A hard stop after totalMonths + 2 entries guards against rounding
     drift causing non-termination.

  The 30-day month is an intentional simplification carried over from
  the book-keeping convention this system replaces; it is not a
  calendar-accuracy bug.

DEGENERATE INPUT:
  Missing purchase date, non-positive cost, non-positive life span, or
  an unparsable date all yield an empty schedule, never an error.
  BuildScheduleChecked additionally reports the unparsable-date case so
  callers can surface a warning for that one record while the rest of
  the portfolio computes normally.

INVARIANTS:
  - Entries strictly increase in (year, month) with no gaps
  - Entry amounts sum to cost within 0.01

SEE ALSO:
  - config.go: life-span unit convention
  - types.go: Schedule and ScheduleEntry
*/
package depreciation

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/assettrack/asset-engine/asset"
)

var thirty = decimal.NewFromInt(30)

// BuildSchedule computes the asset's monthly depreciation schedule.
// Degenerate input yields an empty schedule.
func (p Profile) BuildSchedule(a asset.Asset) Schedule {
	schedule, _ := p.BuildScheduleChecked(a)
	return schedule
}

// BuildScheduleChecked is BuildSchedule plus a warning for the one
// degenerate case worth distinguishing: a purchase date that is present
// but unparsable. The returned schedule is empty whenever err is
// non-nil.
func (p Profile) BuildScheduleChecked(a asset.Asset) (Schedule, error) {
	totalMonths := p.TotalMonths(a.LifeSpan)
	if a.PurchaseDate == "" || a.Cost.Sign() <= 0 || totalMonths <= 0 {
		return nil, nil
	}

	purchase, err := a.PurchaseTime()
	if err != nil {
		return nil, fmt.Errorf("asset %s: %w", a.ID, err)
	}

	standardMonthly := a.Cost.Div(decimal.NewFromInt(int64(totalMonths)))
	dailyRate := standardMonthly.Div(thirty)

	year := purchase.Year()
	month := int(purchase.Month()) - 1

	// Partial purchase month under the 30-day convention. Day 31 yields
	// zero remaining days and a zero first charge.
	remainingDays := 30 - purchase.Day() + 1
	if remainingDays < 0 {
		remainingDays = 0
	}
	first := dailyRate.Mul(decimal.NewFromInt(int64(remainingDays)))
	if first.GreaterThan(a.Cost) {
		first = a.Cost
	}
	first = first.Round(2)

	schedule := Schedule{{Year: year, Month: month, Amount: first}}
	accumulated := first
	monthly := standardMonthly.Round(2)

	for accumulated.LessThan(a.Cost) {
		month++
		if month > 11 {
			month = 0
			year++
		}

		amount := monthly
		if accumulated.Add(amount).GreaterThan(a.Cost) {
			amount = a.Cost.Sub(accumulated)
		}

		schedule = append(schedule, ScheduleEntry{Year: year, Month: month, Amount: amount})
		accumulated = accumulated.Add(amount)

		if len(schedule) > totalMonths+2 {
			break
		}
	}

	return schedule, nil
}

// DepreciationToDate sums the schedule entries whose month has fully
// elapsed by now: an entry counts once its month-end date is on or
// before now.
func DepreciationToDate(s Schedule, now time.Time) decimal.Decimal {
	total := decimal.Zero
	for _, e := range s {
		if !monthEnd(e.Year, e.Month).After(now) {
			total = total.Add(e.Amount)
		}
	}
	return total
}

// monthEnd returns midnight on the last day of a zero-based month
// (time.Date normalizes day 0 of the following month).
func monthEnd(year, month int) time.Time {
	return time.Date(year, time.Month(month+2), 0, 0, 0, 0, 0, time.UTC)
}
