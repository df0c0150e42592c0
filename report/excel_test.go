package report

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/xuri/excelize/v2"
	"github.com/stretchr/testify/require"

	"github.com/assettrack/asset-engine/asset"
	"github.com/assettrack/asset-engine/depreciation"
)

func reportAsset(name, cost string, lifeSpan int, purchaseDate string) asset.Asset {
	c, _ := decimal.NewFromString(cost)
	return asset.Asset{
		ID:           asset.NewID(),
		Name:         name,
		Category:     asset.CategoryElectronics,
		Cost:         c,
		LifeSpan:     lifeSpan,
		PurchaseDate: purchaseDate,
		CreatedAt:    time.Now(),
	}
}

func TestFilename(t *testing.T) {
	b := Builder{Profile: depreciation.DefaultProfile()}

	assert.Equal(t, "AssetDepreciation_2024_ALL.xlsx", b.Filename(Options{FiscalYear: 2024}))
	assert.Equal(t, "AssetDepreciation_2024_3.xlsx", b.Filename(Options{FiscalYear: 2024, Quarter: 3}))
	assert.Equal(t, "AssetDepreciation_FullLifespan.xlsx", b.Filename(Options{FullLife: true}))
}

func TestBuildWorkbook_FiscalYearLayout(t *testing.T) {
	b := Builder{Profile: depreciation.DefaultProfile()}
	assets := []asset.Asset{
		reportAsset("Laptop", "12000", 12, "2023-06-15"),
	}

	f, err := b.BuildWorkbook(assets, Options{FiscalYear: 2023})
	require.NoError(t, err)
	defer f.Close()

	title, err := f.GetCellValue(sheetName, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Asset Depreciation Report", title)

	subtitle, err := f.GetCellValue(sheetName, "A2")
	require.NoError(t, err)
	assert.Equal(t, "Fiscal Year: 2023-2024 (Full Fiscal Year)", subtitle)

	// Fixed headers then fiscal month order starting at June.
	for i, want := range []string{"Particulars", "Class", "Date", "Life", "Cost", "Jun", "Jul"} {
		cell, err := excelize.CoordinatesToCellName(i+1, 3)
		require.NoError(t, err)
		got, err := f.GetCellValue(sheetName, cell)
		require.NoError(t, err)
		assert.Equal(t, want, got, "header column %d", i+1)
	}
	// 5 fixed + 12 months + Total = 18 columns.
	totalHeader, err := f.GetCellValue(sheetName, "R3")
	require.NoError(t, err)
	assert.Equal(t, "Total", totalHeader)

	name, err := f.GetCellValue(sheetName, "A4")
	require.NoError(t, err)
	assert.Equal(t, "Laptop", name)

	date, err := f.GetCellValue(sheetName, "C4")
	require.NoError(t, err)
	assert.Equal(t, "15/06/2023", date)

	// June 2023 is the first fiscal column: the partial first charge.
	june, err := f.GetCellValue(sheetName, "F4")
	require.NoError(t, err)
	assert.Equal(t, "533.33", june)

	july, err := f.GetCellValue(sheetName, "G4")
	require.NoError(t, err)
	assert.Equal(t, "1000", july)
}

func TestBuildWorkbook_TotalRow(t *testing.T) {
	b := Builder{Profile: depreciation.DefaultProfile()}
	assets := []asset.Asset{
		reportAsset("Laptop", "12000", 12, "2023-06-01"),
		reportAsset("Printer", "6000", 12, "2023-06-01"),
	}

	f, err := b.BuildWorkbook(assets, Options{FiscalYear: 2023})
	require.NoError(t, err)
	defer f.Close()

	label, err := f.GetCellValue(sheetName, "A6")
	require.NoError(t, err)
	assert.Equal(t, "TOTAL", label)

	// Both assets start on the fiscal year's first day, so the whole
	// cost depreciates inside FY2023.
	grand, err := f.GetCellValue(sheetName, "R6")
	require.NoError(t, err)
	assert.Equal(t, "18000", grand)
}

func TestBuildWorkbook_QuarterColumns(t *testing.T) {
	b := Builder{Profile: depreciation.DefaultProfile()}
	assets := []asset.Asset{
		reportAsset("Laptop", "12000", 12, "2023-06-01"),
	}

	f, err := b.BuildWorkbook(assets, Options{FiscalYear: 2023, Quarter: 3})
	require.NoError(t, err)
	defer f.Close()

	subtitle, err := f.GetCellValue(sheetName, "A2")
	require.NoError(t, err)
	assert.Equal(t, "Fiscal Year: 2023-2024 - Quarter: Q3", subtitle)

	// Q3 of a June-start year wraps the calendar year boundary.
	for i, want := range []string{"Dec", "Jan", "Feb"} {
		cell, err := excelize.CoordinatesToCellName(fixedColumns+1+i, 3)
		require.NoError(t, err)
		got, err := f.GetCellValue(sheetName, cell)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	// 5 fixed + 3 months + Total = 9 columns.
	totalHeader, err := f.GetCellValue(sheetName, "I3")
	require.NoError(t, err)
	assert.Equal(t, "Total", totalHeader)
}

func TestBuildWorkbook_FullLifeUsesTimeline(t *testing.T) {
	b := Builder{Profile: depreciation.DefaultProfile()}
	assets := []asset.Asset{
		reportAsset("Laptop", "1200", 3, "2023-01-01"),
	}

	f, err := b.BuildWorkbook(assets, Options{FullLife: true})
	require.NoError(t, err)
	defer f.Close()

	subtitle, err := f.GetCellValue(sheetName, "A2")
	require.NoError(t, err)
	assert.Equal(t, "Full Lifespan View", subtitle)

	first, err := f.GetCellValue(sheetName, "F3")
	require.NoError(t, err)
	assert.Equal(t, "Jan 2023", first)
}

func TestBuildWorkbook_CategoryFilter(t *testing.T) {
	b := Builder{Profile: depreciation.DefaultProfile()}
	vehicle := reportAsset("Van", "300000", 60, "2023-06-01")
	vehicle.Category = asset.CategoryVehicles
	assets := []asset.Asset{
		reportAsset("Laptop", "12000", 12, "2023-06-01"),
		vehicle,
	}

	f, err := b.BuildWorkbook(assets, Options{FiscalYear: 2023, Category: asset.CategoryVehicles})
	require.NoError(t, err)
	defer f.Close()

	name, err := f.GetCellValue(sheetName, "A4")
	require.NoError(t, err)
	assert.Equal(t, "Van", name)

	label, err := f.GetCellValue(sheetName, "A5")
	require.NoError(t, err)
	assert.Equal(t, "TOTAL", label)
}

func TestBuildWorkbook_MissingDateRendersDash(t *testing.T) {
	b := Builder{Profile: depreciation.DefaultProfile()}
	a := reportAsset("Orphan", "500", 12, "")

	f, err := b.BuildWorkbook([]asset.Asset{a}, Options{FiscalYear: 2023})
	require.NoError(t, err)
	defer f.Close()

	date, err := f.GetCellValue(sheetName, "C4")
	require.NoError(t, err)
	assert.Equal(t, "-", date)
}
