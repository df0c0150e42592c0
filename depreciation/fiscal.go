/*
fiscal.go - Calendar month to fiscal period mapping

PURPOSE:
  Pure functions mapping (year, month) pairs to fiscal-year labels and
  quarter membership. The fiscal year runs from a configurable start
  month (June by default) through the following May, and is labeled by
  the calendar year of its starting month: June 2024 through May 2025
  is "fiscal year 2024".

QUARTERS:
  Fixed three-month offsets from the start month. With the June start:
    Q1 = Jun Jul Aug
    Q2 = Sep Oct Nov
    Q3 = Dec Jan Feb   (wraps into the next calendar year)
    Q4 = Mar Apr May

  Quarter validity (1..4) is the caller's concern; these functions do
  not range-check.

SEE ALSO:
  - projection.go: uses these month sets as projection buckets
*/
package depreciation

import (
	"strconv"
	"time"
)

// DefaultFiscalStartMonth is June (months are zero-based).
const DefaultFiscalStartMonth = 5

// FiscalYearOf labels the fiscal year containing (year, month): the
// calendar year itself from the start month onward, the previous one
// before it. Months are zero-based.
func FiscalYearOf(year, month, fiscalStartMonth int) int {
	if month >= fiscalStartMonth {
		return year
	}
	return year - 1
}

// QuarterMonths returns the three month indexes of a fiscal quarter.
func QuarterMonths(quarter, fiscalStartMonth int) [3]int {
	var months [3]int
	for k := 0; k < 3; k++ {
		months[k] = (fiscalStartMonth + 3*(quarter-1) + k) % 12
	}
	return months
}

// FiscalYearMonths returns the twelve month indexes of one fiscal year
// in fiscal order, starting at the start month.
func FiscalYearMonths(fiscalStartMonth int) [12]int {
	var months [12]int
	for k := 0; k < 12; k++ {
		months[k] = (fiscalStartMonth + k) % 12
	}
	return months
}

// MonthLabel renders a zero-based month with its year, e.g. "Jun 2023".
func MonthLabel(year, month int) string {
	return time.Month(month+1).String()[:3] + " " + strconv.Itoa(year)
}
