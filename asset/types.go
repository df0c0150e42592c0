/*
Package asset defines the inventory domain model.

PURPOSE:
  Types shared by every layer of the system: the Asset record itself,
  its category/status vocabulary, scan events, portfolio snapshots, and
  the storage interface the persistence backends implement.

KEY CONCEPTS IN THIS FILE (types.go):
  - Asset: A registered physical asset (cost, purchase date, life span)
  - Category/Status: The fixed vocabulary used by inventory screens
  - ScanEvent: One QR lookup, logged with timestamp and location
  - StatsSnapshot: A persisted point-in-time portfolio summary

DESIGN PRINCIPLES:
  1. Precision: Costs use decimal.Decimal, never float64
  2. Forgiveness: PurchaseDate stays a raw string; a record with a bad
     date is still a valid inventory record, it just has no schedule
  3. Immutability during computation: the depreciation engine treats an
     Asset as a value for the duration of a calculation

SEE ALSO:
  - store.go: Storage interface and list filters
  - qr.go: QR payload encoding and PNG generation
  - depreciation package: schedule and statistics computation
*/
package asset

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =============================================================================
// ASSET - One registered physical asset
// =============================================================================

// Asset is a single inventory record. Cost is in pesos with two-decimal
// precision. LifeSpan is interpreted by the depreciation profile (months
// by default). PurchaseDate is kept as received; use PurchaseTime to
// parse it.
type Asset struct {
	ID           string
	Name         string
	Category     string
	SerialNumber string
	Description  string
	IssuedTo     string
	Status       string
	Cost         decimal.Decimal
	LifeSpan     int
	PurchaseDate string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PurchaseTime parses the purchase date. An empty date returns a zero
// time and ErrMissingPurchaseDate; a malformed one returns
// ErrUnparsableDate so callers can surface a warning without failing.
func (a Asset) PurchaseTime() (time.Time, error) {
	return ParseDate(a.PurchaseDate)
}

// NewID returns a fresh asset identifier.
func NewID() string {
	return uuid.NewString()
}

// dateLayouts are the formats accepted for purchase dates, in the order
// they are tried. The legacy API emits RFC3339; forms emit YYYY-MM-DD.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05.000Z07:00",
	"01/02/2006",
}

// ParseDate parses a purchase or creation date in any accepted layout.
func ParseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, ErrMissingPurchaseDate
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, &UnparsableDateError{Value: s}
}

// =============================================================================
// VOCABULARY - Categories and statuses used by inventory screens
// =============================================================================

const (
	CategoryElectronics    = "Electronics"
	CategoryOfficeSupplies = "Office Supplies"
	CategoryFurniture      = "Furniture"
	CategoryVehicles       = "Vehicles"
)

const (
	StatusGoodCondition  = "Good Condition"
	StatusForMaintenance = "For Maintenance"
	StatusForDisposal    = "For Disposal"
)

// Categories lists the known asset categories in display order.
func Categories() []string {
	return []string{
		CategoryElectronics,
		CategoryOfficeSupplies,
		CategoryFurniture,
		CategoryVehicles,
	}
}

// Statuses lists the known asset statuses in display order.
func Statuses() []string {
	return []string{
		StatusGoodCondition,
		StatusForMaintenance,
		StatusForDisposal,
	}
}

// =============================================================================
// SCAN EVENT - One QR lookup
// =============================================================================

// ScanEvent records a single QR scan: which asset was resolved, when,
// where, and by whom. Every scan is logged, including lookups that
// update nothing.
type ScanEvent struct {
	ID           string
	AssetID      string
	SerialNumber string
	Location     string
	Operator     string
	ScannedAt    time.Time
}

// =============================================================================
// STATS SNAPSHOT - Persisted portfolio summary
// =============================================================================

// StatsSnapshot is a portfolio statistics record captured at a point in
// time, kept for time-series charts. MonthlyTotals is keyed "YYYY-M"
// with a zero-based month, matching the chart layer's keys.
type StatsSnapshot struct {
	ID                string
	TakenAt           time.Time
	TotalAssets       int
	FullyDepreciated  int
	NewAssets         int
	CurrentMonthTotal decimal.Decimal
	MonthlyTotals     map[string]decimal.Decimal
}
