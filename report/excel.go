/*
Package report renders depreciation projections as spreadsheet
workbooks.

PURPOSE:
  The one externally-meaningful artifact this system produces is the
  depreciation report: a grid with one row per asset, one column per
  period bucket, and a grand-total row. This package turns the core's
  projections into that workbook.

LAYOUT:
  Row 1: "Asset Depreciation Report" (bold 16, merged, centered)
  Row 2: period subtitle (bold, yellow fill, merged, centered)
  Row 3: Particulars | Class | Date | Life | Cost | <periods...> | Total
  Rows:  one per asset; money cells in peso format, right-aligned
  Last:  TOTAL row (bold, yellow fill)

  The first five columns and the first three rows are frozen so the
  period columns scroll under a stable frame.

PERIOD MODES:
  - Full fiscal year: twelve columns in fiscal month order
  - Single quarter:   three columns
  - Full lifespan:    one column per timeline month across all assets

MONEY FORMAT:
  ₱#,##0.00 - peso sign, thousands separators, two decimals.
*/
package report

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/assettrack/asset-engine/asset"
	"github.com/assettrack/asset-engine/depreciation"
)

const (
	sheetName    = "Depreciation"
	fixedColumns = 5 // Particulars, Class, Date, Life, Cost
	pesoFormat   = "₱#,##0.00"
)

// Options selects the report period.
type Options struct {
	FiscalYear int
	Quarter    int    // 1..4; 0 means the full fiscal year
	FullLife   bool   // overrides FiscalYear/Quarter with the full timeline
	Category   string // "" or "ALL" includes every category
}

// Builder renders workbooks under one depreciation profile.
type Builder struct {
	Profile depreciation.Profile
}

// Filename suggests a download name for the options.
func (b Builder) Filename(opts Options) string {
	if opts.FullLife {
		return "AssetDepreciation_FullLifespan.xlsx"
	}
	quarter := "ALL"
	if opts.Quarter >= 1 && opts.Quarter <= 4 {
		quarter = fmt.Sprintf("%d", opts.Quarter)
	}
	return fmt.Sprintf("AssetDepreciation_%d_%s.xlsx", opts.FiscalYear, quarter)
}

// BuildWorkbook renders the report for the given assets.
func (b Builder) BuildWorkbook(assets []asset.Asset, opts Options) (*excelize.File, error) {
	filtered := assets[:0:0]
	filter := asset.Filter{Category: opts.Category}
	for _, a := range assets {
		if filter.Matches(a) {
			filtered = append(filtered, a)
		}
	}

	labels, project := b.Columns(filtered, opts)
	totalColumns := fixedColumns + len(labels) + 1

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, err
	}

	styles, err := newStyleSet(f)
	if err != nil {
		return nil, err
	}

	if err := b.writeHeading(f, styles, opts, labels, totalColumns); err != nil {
		return nil, err
	}

	grand := decimal.Zero
	row := 4
	for _, a := range filtered {
		deps := project(a)
		periodTotal := depreciation.SumAmounts(deps)
		grand = grand.Add(periodTotal)

		if err := writeAssetRow(f, styles, row, a, deps, periodTotal); err != nil {
			return nil, err
		}
		row++
	}

	if err := writeTotalRow(f, styles, row, totalColumns, grand); err != nil {
		return nil, err
	}

	if err := f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		XSplit:      fixedColumns,
		YSplit:      3,
		TopLeftCell: "F4",
		ActivePane:  "bottomRight",
	}); err != nil {
		return nil, err
	}

	// Money columns get a minimum width so peso amounts don't clip.
	for col := fixedColumns; col <= totalColumns; col++ {
		name, err := excelize.ColumnNumberToName(col)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(sheetName, name, name, 11); err != nil {
			return nil, err
		}
	}

	return f, nil
}

// Columns resolves the column labels and the per-asset projection for
// the selected period mode. The JSON report endpoint shares it so the
// API and the workbook always agree on bucket order.
func (b Builder) Columns(assets []asset.Asset, opts Options) ([]string, func(asset.Asset) []decimal.Decimal) {
	if opts.FullLife {
		timeline := b.Profile.FullTimeline(assets)
		labels := make([]string, len(timeline))
		for i, t := range timeline {
			labels[i] = t.Label
		}
		return labels, func(a asset.Asset) []decimal.Decimal {
			return depreciation.ProjectTimeline(b.Profile.BuildSchedule(a), timeline)
		}
	}

	if opts.Quarter >= 1 && opts.Quarter <= 4 {
		months := depreciation.QuarterMonths(opts.Quarter, b.Profile.FiscalStartMonth)
		labels := make([]string, len(months))
		for i, m := range months {
			labels[i] = time.Month(m + 1).String()[:3]
		}
		return labels, func(a asset.Asset) []decimal.Decimal {
			return b.Profile.ProjectQuarter(b.Profile.BuildSchedule(a), opts.FiscalYear, opts.Quarter)
		}
	}

	months := depreciation.FiscalYearMonths(b.Profile.FiscalStartMonth)
	labels := make([]string, len(months))
	for i, m := range months {
		labels[i] = time.Month(m + 1).String()[:3]
	}
	return labels, func(a asset.Asset) []decimal.Decimal {
		return b.Profile.ProjectFiscalYear(b.Profile.BuildSchedule(a), opts.FiscalYear)
	}
}

// styleSet holds the style IDs used across the sheet.
type styleSet struct {
	title, subtitle, header int
	money, totalLabel       int
	totalMoney              int
}

func newStyleSet(f *excelize.File) (styleSet, error) {
	var s styleSet
	var err error

	center := &excelize.Alignment{Horizontal: "center"}
	yellow := excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"FFFF00"}}
	peso := pesoFormat

	if s.title, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 16},
		Alignment: center,
	}); err != nil {
		return s, err
	}
	if s.subtitle, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: center,
		Fill:      yellow,
	}); err != nil {
		return s, err
	}
	if s.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: center,
	}); err != nil {
		return s, err
	}
	if s.money, err = f.NewStyle(&excelize.Style{
		CustomNumFmt: &peso,
		Alignment:    &excelize.Alignment{Horizontal: "right"},
	}); err != nil {
		return s, err
	}
	if s.totalLabel, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: yellow,
	}); err != nil {
		return s, err
	}
	if s.totalMoney, err = f.NewStyle(&excelize.Style{
		Font:         &excelize.Font{Bold: true},
		Fill:         yellow,
		CustomNumFmt: &peso,
		Alignment:    &excelize.Alignment{Horizontal: "right"},
	}); err != nil {
		return s, err
	}
	return s, nil
}

func (b Builder) writeHeading(f *excelize.File, styles styleSet, opts Options, labels []string, totalColumns int) error {
	endCol, err := excelize.ColumnNumberToName(totalColumns)
	if err != nil {
		return err
	}

	if err := f.SetCellValue(sheetName, "A1", "Asset Depreciation Report"); err != nil {
		return err
	}
	if err := f.MergeCell(sheetName, "A1", endCol+"1"); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetName, "A1", endCol+"1", styles.title); err != nil {
		return err
	}

	subtitle := "Full Lifespan View"
	if !opts.FullLife {
		subtitle = fmt.Sprintf("Fiscal Year: %d-%d (Full Fiscal Year)", opts.FiscalYear, opts.FiscalYear+1)
		if opts.Quarter >= 1 && opts.Quarter <= 4 {
			subtitle = fmt.Sprintf("Fiscal Year: %d-%d - Quarter: Q%d", opts.FiscalYear, opts.FiscalYear+1, opts.Quarter)
		}
	}
	if err := f.SetCellValue(sheetName, "A2", subtitle); err != nil {
		return err
	}
	if err := f.MergeCell(sheetName, "A2", endCol+"2"); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetName, "A2", endCol+"2", styles.subtitle); err != nil {
		return err
	}

	headers := append([]string{"Particulars", "Class", "Date", "Life", "Cost"}, labels...)
	headers = append(headers, "Total")
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 3)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return err
		}
	}
	return f.SetCellStyle(sheetName, "A3", endCol+"3", styles.header)
}

func writeAssetRow(f *excelize.File, styles styleSet, row int, a asset.Asset, deps []decimal.Decimal, total decimal.Decimal) error {
	values := []any{a.Name, a.Category, displayDate(a), a.LifeSpan, a.Cost.InexactFloat64()}
	for _, d := range deps {
		values = append(values, d.InexactFloat64())
	}
	values = append(values, total.InexactFloat64())

	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetName, cell, v); err != nil {
			return err
		}
	}

	// Cost through Total are money cells.
	start, err := excelize.CoordinatesToCellName(fixedColumns, row)
	if err != nil {
		return err
	}
	end, err := excelize.CoordinatesToCellName(len(values), row)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheetName, start, end, styles.money)
}

func writeTotalRow(f *excelize.File, styles styleSet, row, totalColumns int, grand decimal.Decimal) error {
	labelCell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetCellValue(sheetName, labelCell, "TOTAL"); err != nil {
		return err
	}

	totalCell, err := excelize.CoordinatesToCellName(totalColumns, row)
	if err != nil {
		return err
	}
	if err := f.SetCellValue(sheetName, totalCell, grand.InexactFloat64()); err != nil {
		return err
	}

	if err := f.SetCellStyle(sheetName, labelCell, totalCell, styles.totalLabel); err != nil {
		return err
	}
	return f.SetCellStyle(sheetName, totalCell, totalCell, styles.totalMoney)
}

// displayDate renders the purchase date day-first as Philippine
// locales do, or "-" when missing or unparsable.
func displayDate(a asset.Asset) string {
	t, err := a.PurchaseTime()
	if err != nil {
		return "-"
	}
	return t.Format("02/01/2006")
}
