package depreciation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assettrack/asset-engine/depreciation"
)

func TestParseProfile_Defaults(t *testing.T) {
	profile, err := depreciation.ParseProfile([]byte(`{}`))
	require.NoError(t, err)

	assert.Equal(t, depreciation.DefaultFiscalStartMonth, profile.FiscalStartMonth)
	assert.Equal(t, depreciation.LifeSpanMonths, profile.LifeSpanUnit)
	assert.Equal(t, 15, profile.NewAssetWindowDays)
}

func TestParseProfile_Overrides(t *testing.T) {
	profile, err := depreciation.ParseProfile([]byte(`{
		"fiscal_start_month": 0,
		"life_span_unit": "years",
		"new_asset_window_days": 30
	}`))
	require.NoError(t, err)

	assert.Equal(t, 0, profile.FiscalStartMonth)
	assert.Equal(t, depreciation.LifeSpanYears, profile.LifeSpanUnit)
	assert.Equal(t, 30, profile.NewAssetWindowDays)
	assert.Equal(t, 24, profile.TotalMonths(2))
}

func TestParseProfile_Invalid(t *testing.T) {
	cases := map[string]string{
		"month too large": `{"fiscal_start_month": 12}`,
		"negative month":  `{"fiscal_start_month": -1}`,
		"bad unit":        `{"life_span_unit": "weeks"}`,
		"negative window": `{"new_asset_window_days": -1}`,
		"not json":        `{`,
	}
	for name, raw := range cases {
		_, err := depreciation.ParseProfile([]byte(raw))
		assert.Error(t, err, name)
	}
}
