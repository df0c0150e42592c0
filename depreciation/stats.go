/*
stats.go - Portfolio-wide statistics aggregation

PURPOSE:
  Derives the dashboard numbers from the asset collection in a single
  pass: total count, fully-depreciated count, recently-purchased count,
  the current month's aggregate charge, and the month-keyed totals map
  behind the time-series chart.

FULLY DEPRECIATED:
  Schedule-derived: an asset is fully depreciated when the sum of its
  entries whose month-end is on or before "now" is within 0.01 of its
  cost. Status strings and zero life spans are not consulted; they
  drifted out of sync with the schedules in practice.

SINGLE PASS:
  Each asset's schedule is built exactly once and reused for all four
  schedule-dependent statistics.
*/
package depreciation

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/assettrack/asset-engine/asset"
)

// fullyDepreciatedTolerance absorbs the per-entry 2dp rounding.
var fullyDepreciatedTolerance = decimal.NewFromFloat(0.01)

// ComputeStats derives portfolio statistics as of now. Empty input
// yields zero counts and an empty totals map.
func (p Profile) ComputeStats(assets []asset.Asset, now time.Time) PortfolioStats {
	stats := PortfolioStats{
		TotalAssets:       len(assets),
		CurrentMonthTotal: decimal.Zero,
		MonthlyTotals:     make(map[MonthKey]decimal.Decimal),
	}

	currentKey := MonthKey{Year: now.Year(), Month: int(now.Month()) - 1}
	window := time.Duration(p.NewAssetWindowDays) * 24 * time.Hour

	for _, a := range assets {
		if p.isNew(a, now, window) {
			stats.NewAssets++
		}

		schedule := p.BuildSchedule(a)
		if len(schedule) == 0 {
			continue
		}

		toDate := DepreciationToDate(schedule, now)
		if toDate.GreaterThanOrEqual(a.Cost.Sub(fullyDepreciatedTolerance)) {
			stats.FullyDepreciated++
		}

		for _, e := range schedule {
			key := e.Key()
			stats.MonthlyTotals[key] = stats.MonthlyTotals[key].Add(e.Amount)
			if key == currentKey {
				stats.CurrentMonthTotal = stats.CurrentMonthTotal.Add(e.Amount)
			}
		}
	}

	stats.CurrentMonthTotal = stats.CurrentMonthTotal.Round(2)
	return stats
}

// isNew reports whether the asset was acquired within the new-asset
// window. Purchase date is preferred; records imported without one fall
// back to their creation time.
func (p Profile) isNew(a asset.Asset, now time.Time, window time.Duration) bool {
	acquired, err := a.PurchaseTime()
	if err != nil {
		if a.CreatedAt.IsZero() {
			return false
		}
		acquired = a.CreatedAt
	}
	return now.Sub(acquired) <= window
}
