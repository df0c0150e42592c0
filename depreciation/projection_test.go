package depreciation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assettrack/asset-engine/asset"
	"github.com/assettrack/asset-engine/depreciation"
)

func TestProjectFiscalYear_AlignsAndZeroFills(t *testing.T) {
	// GIVEN: The 12,000 / 12-month / 2023-06-15 schedule
	// WHEN: Projecting onto FY2023 (Jun 2023 - May 2024)
	// THEN: Partial June, eleven full months, no FY2024 spill

	profile := depreciation.DefaultProfile()
	schedule := profile.BuildSchedule(testAsset("12000.00", 12, "2023-06-15"))

	fy2023 := profile.ProjectFiscalYear(schedule, 2023)
	require.Len(t, fy2023, 12)

	assert.True(t, fy2023[0].Equal(money("533.33")), "Jun = %s", fy2023[0])
	for i := 1; i < 12; i++ {
		assert.True(t, fy2023[i].Equal(money("1000.00")), "fiscal month %d = %s", i, fy2023[i])
	}

	// The clamped tail lands in June 2024, which is FY2024 position 0.
	fy2024 := profile.ProjectFiscalYear(schedule, 2024)
	require.Len(t, fy2024, 12)
	assert.True(t, fy2024[0].Equal(money("466.67")), "Jun 2024 = %s", fy2024[0])
	for i := 1; i < 12; i++ {
		assert.True(t, fy2024[i].IsZero(), "fiscal month %d = %s, want 0", i, fy2024[i])
	}

	// Both projections together recover the full cost.
	total := depreciation.SumAmounts(fy2023).Add(depreciation.SumAmounts(fy2024))
	assert.True(t, total.Equal(money("12000.00")), "total = %s", total)
}

func TestProjectQuarter_MatchesFiscalYearSlice(t *testing.T) {
	// Quarter projections are exactly the corresponding 3-month slices
	// of the fiscal-year projection.
	profile := depreciation.DefaultProfile()
	schedule := profile.BuildSchedule(testAsset("24000.00", 24, "2023-08-10"))

	year := profile.ProjectFiscalYear(schedule, 2023)
	for q := 1; q <= 4; q++ {
		quarter := profile.ProjectQuarter(schedule, 2023, q)
		require.Len(t, quarter, 3)
		for k := 0; k < 3; k++ {
			want := year[3*(q-1)+k]
			assert.True(t, quarter[k].Equal(want),
				"Q%d[%d] = %s, want %s", q, k, quarter[k], want)
		}
	}
}

func TestProjectQuarter_WrappingQuarterCrossesCalendarYears(t *testing.T) {
	// Q3 of FY2023 is Dec 2023, Jan 2024, Feb 2024: same fiscal year,
	// two calendar years.
	profile := depreciation.DefaultProfile()
	schedule := profile.BuildSchedule(testAsset("12000.00", 12, "2023-06-15"))

	q3 := profile.ProjectQuarter(schedule, 2023, 3)
	require.Len(t, q3, 3)
	for k, amount := range q3 {
		assert.True(t, amount.Equal(money("1000.00")), "Q3[%d] = %s", k, amount)
	}
}

func TestProjectFiscalYear_DisambiguatesRepeatedMonths(t *testing.T) {
	// GIVEN: A 5-year schedule containing January five times
	// WHEN: Projecting a single fiscal year
	// THEN: Only that fiscal year's January is picked

	profile := depreciation.DefaultProfile()
	schedule := profile.BuildSchedule(testAsset("60000.00", 60, "2020-01-01"))

	fy2021 := profile.ProjectFiscalYear(schedule, 2021)
	// January is fiscal position 7 under the June start.
	janPos := 7
	jan, ok := schedule.At(2022, 0) // Jan 2022 belongs to FY2021
	require.True(t, ok)
	assert.True(t, fy2021[janPos].Equal(jan.Amount),
		"FY2021 January = %s, want %s", fy2021[janPos], jan.Amount)
}

func TestProjectTimeline_PositionalAlignment(t *testing.T) {
	profile := depreciation.DefaultProfile()

	early := testAsset("1200.00", 12, "2023-01-01")
	late := testAsset("600.00", 6, "2023-09-01")
	assets := []asset.Asset{early, late}

	timeline := profile.FullTimeline(assets)
	require.NotEmpty(t, timeline)

	lateSchedule := profile.BuildSchedule(late)
	projected := depreciation.ProjectTimeline(lateSchedule, timeline)
	require.Len(t, projected, len(timeline))

	// Months before the late asset's purchase project to zero.
	for i, tm := range timeline {
		_, has := lateSchedule.At(tm.Year, tm.Month)
		if has {
			assert.False(t, projected[i].IsZero(), "%s should be nonzero", tm.Label)
		} else {
			assert.True(t, projected[i].IsZero(), "%s should be zero", tm.Label)
		}
	}

	// Projection over the full timeline recovers the full cost.
	assert.True(t, depreciation.SumAmounts(projected).Equal(money("600.00")))
}

func TestFullTimeline_CoversEverySchedule(t *testing.T) {
	// GIVEN: Assets with staggered purchase dates and life spans
	// THEN: The timeline spans min..max and is gapless

	profile := depreciation.DefaultProfile()
	assets := []asset.Asset{
		testAsset("1200.00", 12, "2022-03-15"),
		testAsset("900.00", 9, "2023-01-02"),
		testAsset("100.00", 2, "2022-12-25"),
	}

	timeline := profile.FullTimeline(assets)
	require.NotEmpty(t, timeline)

	first := timeline[0]
	last := timeline[len(timeline)-1]
	assert.Equal(t, 2022, first.Year)
	assert.Equal(t, 2, first.Month) // Mar 2022
	assert.Equal(t, "Mar 2022", first.Label)

	for _, a := range assets {
		schedule := profile.BuildSchedule(a)
		for _, e := range schedule {
			key := e.Key()
			inRange := !key.Before(depreciation.MonthKey{Year: first.Year, Month: first.Month}) &&
				!key.After(depreciation.MonthKey{Year: last.Year, Month: last.Month})
			assert.True(t, inRange, "entry %v outside timeline", key)
		}
	}

	for i := 1; i < len(timeline); i++ {
		prev := depreciation.MonthKey{Year: timeline[i-1].Year, Month: timeline[i-1].Month}
		got := depreciation.MonthKey{Year: timeline[i].Year, Month: timeline[i].Month}
		if got != prev.Next() {
			t.Fatalf("timeline gap at %d: %v after %v", i, got, prev)
		}
	}
}

func TestFullTimeline_EmptyAndDegenerateInput(t *testing.T) {
	profile := depreciation.DefaultProfile()

	assert.Empty(t, profile.FullTimeline(nil))
	assert.Empty(t, profile.FullTimeline([]asset.Asset{}))

	// Assets that produce no schedule contribute nothing either.
	broken := []asset.Asset{
		testAsset("0", 12, "2023-06-15"),
		testAsset("1000.00", 12, "garbage"),
	}
	assert.Empty(t, profile.FullTimeline(broken))
}
