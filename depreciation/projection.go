/*
projection.go - Per-period schedule extraction

PURPOSE:
  Extracts a schedule's amounts for a specific fiscal year, quarter, or
  arbitrary timeline, zero-filled where no entry exists. The positional
  zero fill is what lets report columns line up across assets with
  different purchase dates.

KEY INSIGHT:
  A fiscal-year bucket is (fiscal year, month index), not just a month
  index. A 5-year schedule contains the month "January" five times; the
  fiscal-year label check picks the one January belonging to the
  requested fiscal year. A month therefore matches at most one entry
  per asset.

SEE ALSO:
  - fiscal.go: bucket month sets
  - timeline.go: timeline buckets for the full-lifespan view
*/
package depreciation

import "github.com/shopspring/decimal"

// ProjectFiscalYear extracts the schedule's amount for each of the 12
// months of a fiscal year, in fiscal month order, zero-filled.
func (p Profile) ProjectFiscalYear(s Schedule, fiscalYear int) []decimal.Decimal {
	months := FiscalYearMonths(p.FiscalStartMonth)
	return p.projectMonths(s, fiscalYear, months[:])
}

// ProjectQuarter extracts the schedule's amount for the three months of
// a fiscal quarter (1..4), zero-filled.
func (p Profile) ProjectQuarter(s Schedule, fiscalYear, quarter int) []decimal.Decimal {
	months := QuarterMonths(quarter, p.FiscalStartMonth)
	return p.projectMonths(s, fiscalYear, months[:])
}

func (p Profile) projectMonths(s Schedule, fiscalYear int, months []int) []decimal.Decimal {
	amounts := make([]decimal.Decimal, len(months))
	for i, m := range months {
		amounts[i] = decimal.Zero
		for _, e := range s {
			if e.Month == m && FiscalYearOf(e.Year, e.Month, p.FiscalStartMonth) == fiscalYear {
				amounts[i] = e.Amount
				break
			}
		}
	}
	return amounts
}

// ProjectTimeline extracts the schedule's amount for each timeline
// month by exact (year, month) match, zero-filled. The result is
// positionally aligned with the timeline.
func ProjectTimeline(s Schedule, timeline []TimelineMonth) []decimal.Decimal {
	amounts := make([]decimal.Decimal, len(timeline))
	for i, t := range timeline {
		amounts[i] = decimal.Zero
		if e, ok := s.At(t.Year, t.Month); ok {
			amounts[i] = e.Amount
		}
	}
	return amounts
}

// SumAmounts totals a projected amount slice.
func SumAmounts(amounts []decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}
