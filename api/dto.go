/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract, allowing:
  - Field renaming without breaking clients
  - API-specific validation
  - Version evolution

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

TYPES:
  Assets:
    AssetDTO, CreateAssetRequest, UpdateAssetRequest

  Depreciation:
    ScheduleDTO, ScheduleEntryDTO, ReportDTO, ReportRowDTO,
    TimelineMonthDTO

  Statistics:
    StatsDTO, SnapshotDTO

  Scanning:
    ScanRequest, ScanResultDTO, ScanEventDTO

  Scenarios:
    ScenarioDTO, LoadScenarioRequest

MONEY:
  All money fields are decimal strings on the wire ("533.33"), never
  floats. Clients that need numbers parse them; nothing rounds twice.

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
  - asset package: Domain model these types project
*/
package api

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// ASSET TYPES
// =============================================================================

// AssetDTO represents an asset in API responses.
type AssetDTO struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	SerialNumber string          `json:"serialNumber,omitempty"`
	Description  string          `json:"description,omitempty"`
	IssuedTo     string          `json:"issuedTo,omitempty"`
	Status       string          `json:"status"`
	Cost         decimal.Decimal `json:"cost"`
	LifeSpan     int             `json:"lifeSpan"`
	PurchaseDate string          `json:"purchaseDate,omitempty"`
	CreatedAt    string          `json:"createdAt,omitempty"`
	UpdatedAt    string          `json:"updatedAt,omitempty"`
}

// CreateAssetRequest is the request to register an asset. Cost accepts
// a JSON number or a string; both decode into the decimal.
type CreateAssetRequest struct {
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	SerialNumber string          `json:"serialNumber"`
	Description  string          `json:"description"`
	IssuedTo     string          `json:"issuedTo"`
	Status       string          `json:"status"`
	Cost         decimal.Decimal `json:"cost"`
	LifeSpan     int             `json:"lifeSpan"`
	PurchaseDate string          `json:"purchaseDate"`
}

// UpdateAssetRequest is a partial update; nil fields keep their value.
type UpdateAssetRequest struct {
	Name         *string          `json:"name,omitempty"`
	Category     *string          `json:"category,omitempty"`
	SerialNumber *string          `json:"serialNumber,omitempty"`
	Description  *string          `json:"description,omitempty"`
	IssuedTo     *string          `json:"issuedTo,omitempty"`
	Status       *string          `json:"status,omitempty"`
	Cost         *decimal.Decimal `json:"cost,omitempty"`
	LifeSpan     *int             `json:"lifeSpan,omitempty"`
	PurchaseDate *string          `json:"purchaseDate,omitempty"`
}

// =============================================================================
// DEPRECIATION TYPES
// =============================================================================

// ScheduleEntryDTO is one monthly depreciation charge. Month is
// zero-based to match the chart layer.
type ScheduleEntryDTO struct {
	Year   int             `json:"year"`
	Month  int             `json:"month"`
	Amount decimal.Decimal `json:"amount"`
}

// ScheduleDTO is the full schedule for a single asset.
type ScheduleDTO struct {
	AssetID string             `json:"assetId"`
	Entries []ScheduleEntryDTO `json:"entries"`
	Total   decimal.Decimal    `json:"total"`
	Warning string             `json:"warning,omitempty"`
}

// ReportRowDTO is one asset row of a depreciation report, with one
// amount per period column.
type ReportRowDTO struct {
	AssetID     string            `json:"assetId"`
	Name        string            `json:"name"`
	Category    string            `json:"category"`
	Date        string            `json:"date"`
	LifeSpan    int               `json:"lifeSpan"`
	Cost        decimal.Decimal   `json:"cost"`
	Amounts     []decimal.Decimal `json:"amounts"`
	PeriodTotal decimal.Decimal   `json:"periodTotal"`
}

// ReportDTO is the aggregate depreciation report.
type ReportDTO struct {
	FiscalYear int             `json:"fiscalYear,omitempty"`
	Quarter    int             `json:"quarter,omitempty"`
	FullLife   bool            `json:"fullLife,omitempty"`
	Periods    []string        `json:"periods"`
	Rows       []ReportRowDTO  `json:"rows"`
	GrandTotal decimal.Decimal `json:"grandTotal"`
}

// TimelineMonthDTO is one month of the portfolio-wide timeline.
type TimelineMonthDTO struct {
	Year  int    `json:"year"`
	Month int    `json:"month"`
	Label string `json:"label"`
}

// =============================================================================
// STATISTICS TYPES
// =============================================================================

// StatsDTO is the dashboard summary. MonthlyTotals is keyed "YYYY-M"
// with a zero-based month.
type StatsDTO struct {
	TotalAssets       int                        `json:"totalAssets"`
	FullyDepreciated  int                        `json:"fullyDepreciated"`
	NewAssets         int                        `json:"newAssets"`
	CurrentMonthTotal decimal.Decimal            `json:"currentMonthTotal"`
	MonthlyTotals     map[string]decimal.Decimal `json:"monthlyTotals"`
}

// SnapshotDTO is a persisted stats snapshot.
type SnapshotDTO struct {
	ID                string                     `json:"id"`
	TakenAt           string                     `json:"takenAt"`
	TotalAssets       int                        `json:"totalAssets"`
	FullyDepreciated  int                        `json:"fullyDepreciated"`
	NewAssets         int                        `json:"newAssets"`
	CurrentMonthTotal decimal.Decimal            `json:"currentMonthTotal"`
	MonthlyTotals     map[string]decimal.Decimal `json:"monthlyTotals"`
}

// =============================================================================
// SCANNING TYPES
// =============================================================================

// ScanRequest resolves a decoded QR payload (or a bare serial number)
// to an asset and logs the lookup.
type ScanRequest struct {
	SerialNumber string `json:"serialNumber,omitempty"`
	Payload      string `json:"payload,omitempty"` // raw QR payload JSON
	Location     string `json:"location,omitempty"`
	Operator     string `json:"operator,omitempty"`
}

// ScanResultDTO is the response to a successful scan.
type ScanResultDTO struct {
	Asset AssetDTO     `json:"asset"`
	Event ScanEventDTO `json:"event"`
}

// ScanEventDTO is one logged scan.
type ScanEventDTO struct {
	ID           string `json:"id"`
	AssetID      string `json:"assetId"`
	SerialNumber string `json:"serialNumber"`
	Location     string `json:"location,omitempty"`
	Operator     string `json:"operator,omitempty"`
	ScannedAt    string `json:"scannedAt"`
}

// =============================================================================
// SCENARIO AND ADMIN TYPES
// =============================================================================

// ScenarioDTO describes a demo scenario.
type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// LoadScenarioRequest selects a scenario to load.
type LoadScenarioRequest struct {
	ScenarioID string `json:"scenario_id"`
}

// ImportResultDTO summarizes a legacy import run.
type ImportResultDTO struct {
	Fetched  int      `json:"fetched"`
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors,omitempty"`
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
