package depreciation_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assettrack/asset-engine/asset"
	"github.com/assettrack/asset-engine/depreciation"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func money(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func testAsset(cost string, lifeSpan int, purchaseDate string) asset.Asset {
	return asset.Asset{
		ID:           "test-asset",
		Name:         "Office Laptop",
		Category:     asset.CategoryElectronics,
		SerialNumber: "SN-1042",
		Status:       asset.StatusGoodCondition,
		Cost:         money(cost),
		LifeSpan:     lifeSpan,
		PurchaseDate: purchaseDate,
	}
}

// =============================================================================
// SCHEDULE BUILDER TESTS
// =============================================================================

func TestBuildSchedule_TwelveMonthAsset(t *testing.T) {
	// GIVEN: 12,000.00 over 12 months, purchased June 15 2023
	// WHEN: Building the schedule
	// THEN: Partial June (16 of 30 days), eleven full months, clamped tail

	profile := depreciation.DefaultProfile()
	schedule := profile.BuildSchedule(testAsset("12000.00", 12, "2023-06-15"))

	require.Len(t, schedule, 13)

	first := schedule[0]
	assert.Equal(t, 2023, first.Year)
	assert.Equal(t, 5, first.Month) // June
	assert.True(t, first.Amount.Equal(money("533.33")),
		"first entry = %s, want 533.33", first.Amount)

	for i := 1; i < 12; i++ {
		assert.True(t, schedule[i].Amount.Equal(money("1000.00")),
			"entry %d = %s, want 1000.00", i, schedule[i].Amount)
	}

	last := schedule[12]
	assert.Equal(t, 2024, last.Year)
	assert.Equal(t, 5, last.Month) // June again, one year later
	assert.True(t, last.Amount.Equal(money("466.67")),
		"final entry = %s, want 466.67", last.Amount)

	assert.True(t, schedule.Total().Equal(money("12000.00")),
		"total = %s, want exactly 12000.00", schedule.Total())
}

func TestBuildSchedule_FirstOfMonthPurchase(t *testing.T) {
	// Purchased on day 1: 30 of 30 days remain, so the first month is a
	// full standard charge.
	profile := depreciation.DefaultProfile()
	schedule := profile.BuildSchedule(testAsset("3600.00", 36, "2022-01-01"))

	require.NotEmpty(t, schedule)
	assert.True(t, schedule[0].Amount.Equal(money("100.00")),
		"first entry = %s, want 100.00", schedule[0].Amount)
}

func TestBuildSchedule_ThirtyFirstPurchaseDay(t *testing.T) {
	// Day 31 leaves zero billable days under the 30-day convention.
	profile := depreciation.DefaultProfile()
	schedule := profile.BuildSchedule(testAsset("1200.00", 12, "2023-01-31"))

	require.NotEmpty(t, schedule)
	assert.True(t, schedule[0].Amount.IsZero(),
		"first entry = %s, want 0", schedule[0].Amount)
	assert.True(t, schedule.Total().Equal(money("1200.00")))
}

func TestBuildSchedule_SumInvariant(t *testing.T) {
	// GIVEN: A spread of costs, life spans, and purchase days
	// THEN: Every schedule sums to cost within 0.01

	profile := depreciation.DefaultProfile()
	cases := []struct {
		cost string
		life int
		date string
	}{
		{"12000.00", 12, "2023-06-15"},
		{"999.99", 7, "2021-02-28"},
		{"55000.00", 60, "2020-12-31"},
		{"100.00", 3, "2024-01-05"},
		{"84999.50", 48, "2019-07-04"},
		{"0.03", 2, "2023-03-10"},
	}

	tolerance := money("0.01")
	for _, c := range cases {
		schedule := profile.BuildSchedule(testAsset(c.cost, c.life, c.date))
		require.NotEmpty(t, schedule, "case %+v", c)

		diff := schedule.Total().Sub(money(c.cost)).Abs()
		assert.True(t, diff.LessThanOrEqual(tolerance),
			"case %+v: total %s vs cost %s", c, schedule.Total(), c.cost)
	}
}

func TestBuildSchedule_MonotonicContiguousMonths(t *testing.T) {
	profile := depreciation.DefaultProfile()
	schedule := profile.BuildSchedule(testAsset("45000.00", 40, "2022-11-20"))
	require.NotEmpty(t, schedule)

	for i := 1; i < len(schedule); i++ {
		prev := schedule[i-1].Key()
		want := prev.Next()
		got := schedule[i].Key()
		if got != want {
			t.Fatalf("entry %d: got %v, want %v (after %v)", i, got, want, prev)
		}
	}
}

func TestBuildSchedule_SafetyBound(t *testing.T) {
	profile := depreciation.DefaultProfile()
	for _, life := range []int{1, 2, 5, 12, 60, 120} {
		schedule := profile.BuildSchedule(testAsset("9999.97", life, "2023-01-17"))
		assert.LessOrEqual(t, len(schedule), life+3,
			"life %d produced %d entries", life, len(schedule))
	}
}

func TestBuildSchedule_DegenerateInputs(t *testing.T) {
	profile := depreciation.DefaultProfile()

	cases := map[string]asset.Asset{
		"zero cost":        testAsset("0", 12, "2023-06-15"),
		"negative cost":    testAsset("-100.00", 12, "2023-06-15"),
		"zero life span":   testAsset("1000.00", 0, "2023-06-15"),
		"missing date":     testAsset("1000.00", 12, ""),
		"unparsable date":  testAsset("1000.00", 12, "not-a-date"),
		"nonsense numeric": testAsset("1000.00", 12, "9999-99-99"),
	}

	for name, a := range cases {
		assert.Empty(t, profile.BuildSchedule(a), name)
	}
}

func TestBuildScheduleChecked_ReportsUnparsableDate(t *testing.T) {
	profile := depreciation.DefaultProfile()

	schedule, err := profile.BuildScheduleChecked(testAsset("1000.00", 12, "15/06/2023"))
	assert.Empty(t, schedule)
	require.Error(t, err)
	assert.True(t, errors.Is(err, asset.ErrUnparsableDate))

	// Missing date is silent: there is nothing to warn about.
	schedule, err = profile.BuildScheduleChecked(testAsset("1000.00", 12, ""))
	assert.Empty(t, schedule)
	assert.NoError(t, err)
}

func TestBuildSchedule_YearsUnitConvention(t *testing.T) {
	// GIVEN: A profile that reads LifeSpan as years
	// WHEN: Building for a 1-year life
	// THEN: The monthly charge reflects 12 months, not 1

	profile := depreciation.DefaultProfile()
	profile.LifeSpanUnit = depreciation.LifeSpanYears

	schedule := profile.BuildSchedule(testAsset("12000.00", 1, "2023-06-01"))
	require.NotEmpty(t, schedule)
	assert.True(t, schedule[0].Amount.Equal(money("1000.00")),
		"first entry = %s, want a 1000.00 monthly charge", schedule[0].Amount)
}

func TestBuildSchedule_AcceptsRFC3339Dates(t *testing.T) {
	// The legacy API ships timestamps, not bare dates.
	profile := depreciation.DefaultProfile()
	schedule := profile.BuildSchedule(testAsset("12000.00", 12, "2023-06-15T08:30:00Z"))

	require.NotEmpty(t, schedule)
	assert.Equal(t, 2023, schedule[0].Year)
	assert.Equal(t, 5, schedule[0].Month)
	assert.True(t, schedule[0].Amount.Equal(money("533.33")))
}
