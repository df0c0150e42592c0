/*
handlers.go - HTTP API handlers for the asset inventory system

PURPOSE:
  Exposes the inventory and depreciation engine via REST API. Handles
  HTTP request/response, JSON serialization, and delegates to domain
  logic.

ENDPOINTS:
  Assets:
    GET    /api/assets               List assets (q, category, status filters)
    POST   /api/assets               Register asset
    GET    /api/assets/{id}          Get asset details
    PUT    /api/assets/{id}          Update asset
    DELETE /api/assets/{id}          Delete asset
    GET    /api/assets/{id}/qr       Asset QR code PNG

  Depreciation:
    GET    /api/depreciation/assets/{id}/schedule Monthly schedule
    GET    /api/depreciation/report               Period report (JSON)
    GET    /api/depreciation/export               Period report (xlsx)
    GET    /api/depreciation/timeline             Portfolio timeline

  Statistics:
    GET    /api/stats                Dashboard summary
    GET    /api/stats/snapshots      Persisted snapshots

  Scanning:
    POST   /api/scan                 Resolve QR payload, log scan
    GET    /api/scan/events          Recent scan events

  Admin:
    POST   /api/admin/import         Import from legacy inventory API
    POST   /api/admin/snapshot       Take a stats snapshot now

  Scenarios:
    GET    /api/scenarios            List demo scenarios
    POST   /api/scenarios/load       Load a demo scenario
    POST   /api/scenarios/reset      Clear all data

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 404: Asset not found
  - 409: Duplicate serial number
  - 502: Legacy API unreachable
  - 500: Internal errors

SECURITY NOTE:
  Currently NO authentication or authorization. All endpoints are public.

SEE ALSO:
  - dto.go: Request/response data structures
  - scenarios.go: Demo scenario loaders
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/assettrack/asset-engine/asset"
	"github.com/assettrack/asset-engine/depreciation"
	"github.com/assettrack/asset-engine/registry"
	"github.com/assettrack/asset-engine/report"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store    asset.Inventory
	Profile  depreciation.Profile
	Registry *registry.Client // nil when no legacy API is configured
	Log      *zap.Logger

	// Track currently loaded scenario
	currentScenario string
}

// NewHandler creates a new handler with the given store and profile.
func NewHandler(store asset.Inventory, profile depreciation.Profile, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		Store:   store,
		Profile: profile,
		Log:     logger.Named("api"),
	}
}

// =============================================================================
// ASSET HANDLERS
// =============================================================================

// ListAssets returns assets matching the query filters.
func (h *Handler) ListAssets(w http.ResponseWriter, r *http.Request) {
	filter := asset.Filter{
		Query:    r.URL.Query().Get("q"),
		Category: r.URL.Query().Get("category"),
		Status:   r.URL.Query().Get("status"),
	}

	assets, err := h.Store.ListAssets(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list assets", err)
		return
	}

	dtos := make([]AssetDTO, len(assets))
	for i, a := range assets {
		dtos[i] = toAssetDTO(a)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateAsset registers a new asset.
func (h *Handler) CreateAsset(w http.ResponseWriter, r *http.Request) {
	var req CreateAssetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Name is required", nil)
		return
	}
	if req.Cost.IsNegative() {
		writeError(w, http.StatusBadRequest, "Cost must not be negative", nil)
		return
	}
	if req.PurchaseDate != "" {
		if _, err := asset.ParseDate(req.PurchaseDate); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid purchaseDate", err)
			return
		}
	}

	now := time.Now().UTC()
	a := asset.Asset{
		ID:           asset.NewID(),
		Name:         req.Name,
		Category:     req.Category,
		SerialNumber: req.SerialNumber,
		Description:  req.Description,
		IssuedTo:     req.IssuedTo,
		Status:       req.Status,
		Cost:         req.Cost,
		LifeSpan:     req.LifeSpan,
		PurchaseDate: req.PurchaseDate,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if a.Status == "" {
		a.Status = asset.StatusGoodCondition
	}

	if err := h.Store.SaveAsset(r.Context(), a); err != nil {
		if errors.Is(err, asset.ErrDuplicateSerial) {
			writeError(w, http.StatusConflict, "Serial number already registered", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to create asset", err)
		return
	}

	h.Log.Info("asset created",
		zap.String("id", a.ID),
		zap.String("name", a.Name),
		zap.String("category", a.Category))

	writeJSON(w, http.StatusCreated, toAssetDTO(a))
}

// GetAsset returns a single asset.
func (h *Handler) GetAsset(w http.ResponseWriter, r *http.Request) {
	a, ok := h.loadAsset(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toAssetDTO(*a))
}

// UpdateAsset applies a partial update to an asset.
func (h *Handler) UpdateAsset(w http.ResponseWriter, r *http.Request) {
	a, ok := h.loadAsset(w, r)
	if !ok {
		return
	}

	var req UpdateAssetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if req.Name != nil {
		a.Name = *req.Name
	}
	if req.Category != nil {
		a.Category = *req.Category
	}
	if req.SerialNumber != nil {
		a.SerialNumber = *req.SerialNumber
	}
	if req.Description != nil {
		a.Description = *req.Description
	}
	if req.IssuedTo != nil {
		a.IssuedTo = *req.IssuedTo
	}
	if req.Status != nil {
		a.Status = *req.Status
	}
	if req.Cost != nil {
		if req.Cost.IsNegative() {
			writeError(w, http.StatusBadRequest, "Cost must not be negative", nil)
			return
		}
		a.Cost = *req.Cost
	}
	if req.LifeSpan != nil {
		a.LifeSpan = *req.LifeSpan
	}
	if req.PurchaseDate != nil {
		if *req.PurchaseDate != "" {
			if _, err := asset.ParseDate(*req.PurchaseDate); err != nil {
				writeError(w, http.StatusBadRequest, "Invalid purchaseDate", err)
				return
			}
		}
		a.PurchaseDate = *req.PurchaseDate
	}
	a.UpdatedAt = time.Now().UTC()

	if err := h.Store.SaveAsset(r.Context(), *a); err != nil {
		if errors.Is(err, asset.ErrDuplicateSerial) {
			writeError(w, http.StatusConflict, "Serial number already registered", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to update asset", err)
		return
	}

	writeJSON(w, http.StatusOK, toAssetDTO(*a))
}

// DeleteAsset removes an asset.
func (h *Handler) DeleteAsset(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.Store.DeleteAsset(r.Context(), id); err != nil {
		if asset.IsNotFound(err) {
			writeError(w, http.StatusNotFound, "Asset not found", nil)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete asset", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted", "id": id})
}

// GetAssetQR renders the asset's QR code as a PNG.
func (h *Handler) GetAssetQR(w http.ResponseWriter, r *http.Request) {
	a, ok := h.loadAsset(w, r)
	if !ok {
		return
	}

	size := 256
	if raw := r.URL.Query().Get("size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 64 || n > 2048 {
			writeError(w, http.StatusBadRequest, "Invalid size (use 64-2048)", err)
			return
		}
		size = n
	}

	png, err := a.QRCodePNG(size)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to render QR code", err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

// =============================================================================
// DEPRECIATION HANDLERS
// =============================================================================

// GetSchedule returns the monthly depreciation schedule for one asset.
func (h *Handler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	a, ok := h.loadAsset(w, r)
	if !ok {
		return
	}

	schedule, err := h.Profile.BuildScheduleChecked(*a)

	dto := ScheduleDTO{
		AssetID: a.ID,
		Entries: make([]ScheduleEntryDTO, len(schedule)),
		Total:   schedule.Total(),
	}
	for i, e := range schedule {
		dto.Entries[i] = ScheduleEntryDTO{Year: e.Year, Month: e.Month, Amount: e.Amount}
	}
	if err != nil {
		// A bad date is not a failure: the record is still valid, it
		// just has no schedule. Surface it so the UI can warn.
		dto.Warning = err.Error()
	}

	writeJSON(w, http.StatusOK, dto)
}

// reportOptions parses the shared report/export query parameters.
func (h *Handler) reportOptions(r *http.Request) (report.Options, error) {
	q := r.URL.Query()
	opts := report.Options{
		Category: q.Get("category"),
		FullLife: q.Get("full_life") == "true",
	}

	if raw := q.Get("fiscal_year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			return opts, fmt.Errorf("invalid fiscal_year %q", raw)
		}
		opts.FiscalYear = year
	} else {
		now := time.Now()
		opts.FiscalYear = depreciation.FiscalYearOf(now.Year(), int(now.Month())-1, h.Profile.FiscalStartMonth)
	}

	if raw := q.Get("quarter"); raw != "" && raw != "ALL" {
		quarter, err := strconv.Atoi(raw)
		if err != nil || quarter < 1 || quarter > 4 {
			return opts, fmt.Errorf("invalid quarter %q (use 1-4)", raw)
		}
		opts.Quarter = quarter
	}

	return opts, nil
}

// GetReport returns the period depreciation report as JSON.
func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	opts, err := h.reportOptions(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	assets, err := h.Store.ListAssets(r.Context(), asset.Filter{Category: opts.Category})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list assets", err)
		return
	}

	builder := report.Builder{Profile: h.Profile}
	periods, project := builder.Columns(assets, opts)

	dto := ReportDTO{
		FiscalYear: opts.FiscalYear,
		Quarter:    opts.Quarter,
		FullLife:   opts.FullLife,
		Periods:    periods,
		Rows:       make([]ReportRowDTO, 0, len(assets)),
		GrandTotal: decimal.Zero,
	}
	if opts.FullLife {
		dto.FiscalYear = 0
		dto.Quarter = 0
	}

	for _, a := range assets {
		amounts := project(a)
		total := depreciation.SumAmounts(amounts)
		dto.GrandTotal = dto.GrandTotal.Add(total)
		dto.Rows = append(dto.Rows, ReportRowDTO{
			AssetID:     a.ID,
			Name:        a.Name,
			Category:    a.Category,
			Date:        a.PurchaseDate,
			LifeSpan:    a.LifeSpan,
			Cost:        a.Cost,
			Amounts:     amounts,
			PeriodTotal: total,
		})
	}

	writeJSON(w, http.StatusOK, dto)
}

// ExportReport streams the period report as an xlsx workbook.
func (h *Handler) ExportReport(w http.ResponseWriter, r *http.Request) {
	opts, err := h.reportOptions(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	assets, err := h.Store.ListAssets(r.Context(), asset.Filter{})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list assets", err)
		return
	}

	builder := report.Builder{Profile: h.Profile}
	f, err := builder.BuildWorkbook(assets, opts)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to build workbook", err)
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", builder.Filename(opts)))
	if err := f.Write(w); err != nil {
		h.Log.Error("workbook write failed", zap.Error(err))
	}
}

// GetTimeline returns the portfolio-wide month timeline.
func (h *Handler) GetTimeline(w http.ResponseWriter, r *http.Request) {
	assets, err := h.Store.ListAssets(r.Context(), asset.Filter{})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list assets", err)
		return
	}

	timeline := h.Profile.FullTimeline(assets)
	dtos := make([]TimelineMonthDTO, len(timeline))
	for i, t := range timeline {
		dtos[i] = TimelineMonthDTO{Year: t.Year, Month: t.Month, Label: t.Label}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// STATISTICS HANDLERS
// =============================================================================

// GetStats returns the dashboard portfolio summary.
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	assets, err := h.Store.ListAssets(r.Context(), asset.Filter{})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list assets", err)
		return
	}

	stats := h.Profile.ComputeStats(assets, time.Now())
	writeJSON(w, http.StatusOK, toStatsDTO(stats))
}

// ListSnapshots returns persisted stats snapshots, newest first.
func (h *Handler) ListSnapshots(w http.ResponseWriter, r *http.Request) {
	limit := 30
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "Invalid limit", err)
			return
		}
		limit = n
	}

	snapshots, err := h.Store.ListSnapshots(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list snapshots", err)
		return
	}

	dtos := make([]SnapshotDTO, len(snapshots))
	for i, s := range snapshots {
		dtos[i] = SnapshotDTO{
			ID:                s.ID,
			TakenAt:           s.TakenAt.Format(time.RFC3339),
			TotalAssets:       s.TotalAssets,
			FullyDepreciated:  s.FullyDepreciated,
			NewAssets:         s.NewAssets,
			CurrentMonthTotal: s.CurrentMonthTotal,
			MonthlyTotals:     s.MonthlyTotals,
		}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// TakeSnapshot computes current stats and persists them.
func (h *Handler) TakeSnapshot(w http.ResponseWriter, r *http.Request) {
	snapshot, err := SnapshotNow(r.Context(), h.Store, h.Profile)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to take snapshot", err)
		return
	}

	writeJSON(w, http.StatusCreated, SnapshotDTO{
		ID:                snapshot.ID,
		TakenAt:           snapshot.TakenAt.Format(time.RFC3339),
		TotalAssets:       snapshot.TotalAssets,
		FullyDepreciated:  snapshot.FullyDepreciated,
		NewAssets:         snapshot.NewAssets,
		CurrentMonthTotal: snapshot.CurrentMonthTotal,
		MonthlyTotals:     snapshot.MonthlyTotals,
	})
}

// =============================================================================
// SCANNING HANDLERS
// =============================================================================

// Scan resolves a decoded QR payload to an asset and logs the lookup.
func (h *Handler) Scan(w http.ResponseWriter, r *http.Request) {
	var req ScanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	serial := req.SerialNumber
	if serial == "" && req.Payload != "" {
		payload, err := asset.DecodePayload([]byte(req.Payload))
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid QR payload", err)
			return
		}
		serial = payload.SerialNumber
	}
	if serial == "" {
		writeError(w, http.StatusBadRequest, "serialNumber or payload is required", nil)
		return
	}

	a, err := h.Store.GetAssetBySerial(r.Context(), serial)
	if err != nil {
		if asset.IsNotFound(err) {
			writeError(w, http.StatusNotFound, "No asset with this serial number", nil)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to resolve serial number", err)
		return
	}

	event := asset.ScanEvent{
		ID:           asset.NewID(),
		AssetID:      a.ID,
		SerialNumber: serial,
		Location:     req.Location,
		Operator:     req.Operator,
		ScannedAt:    time.Now().UTC(),
	}
	if err := h.Store.AppendScan(r.Context(), event); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to log scan", err)
		return
	}

	h.Log.Info("asset scanned",
		zap.String("asset_id", a.ID),
		zap.String("serial", serial),
		zap.String("location", req.Location))

	writeJSON(w, http.StatusOK, ScanResultDTO{
		Asset: toAssetDTO(*a),
		Event: toScanEventDTO(event),
	})
}

// ListScanEvents returns recent scan events, newest first.
func (h *Handler) ListScanEvents(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "Invalid limit", err)
			return
		}
		limit = n
	}

	events, err := h.Store.ListScans(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list scan events", err)
		return
	}

	dtos := make([]ScanEventDTO, len(events))
	for i, e := range events {
		dtos[i] = toScanEventDTO(e)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// ADMIN HANDLERS
// =============================================================================

// ImportLegacy pulls all records from the legacy inventory API and
// upserts them. Records whose serial number already exists keep their
// local ID.
func (h *Handler) ImportLegacy(w http.ResponseWriter, r *http.Request) {
	if h.Registry == nil {
		writeError(w, http.StatusServiceUnavailable, "No legacy API configured", nil)
		return
	}

	ctx := r.Context()
	fetched, err := h.Registry.FetchAll(ctx)
	if err != nil {
		writeError(w, http.StatusBadGateway, "Legacy API fetch failed", err)
		return
	}

	result := ImportResultDTO{Fetched: len(fetched)}
	for _, a := range fetched {
		if a.SerialNumber != "" {
			if existing, err := h.Store.GetAssetBySerial(ctx, a.SerialNumber); err == nil {
				a.ID = existing.ID
				a.CreatedAt = existing.CreatedAt
			}
		}
		a.UpdatedAt = time.Now().UTC()

		if err := h.Store.SaveAsset(ctx, a); err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", a.Name, err))
			continue
		}
		result.Imported++
	}

	h.Log.Info("legacy import completed",
		zap.Int("fetched", result.Fetched),
		zap.Int("imported", result.Imported),
		zap.Int("skipped", result.Skipped))

	writeJSON(w, http.StatusOK, result)
}

// ResetDatabase clears all data.
func (h *Handler) ResetDatabase(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.Reset(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset database", err)
		return
	}
	h.currentScenario = ""
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// =============================================================================
// HELPERS
// =============================================================================

func toAssetDTO(a asset.Asset) AssetDTO {
	dto := AssetDTO{
		ID:           a.ID,
		Name:         a.Name,
		Category:     a.Category,
		SerialNumber: a.SerialNumber,
		Description:  a.Description,
		IssuedTo:     a.IssuedTo,
		Status:       a.Status,
		Cost:         a.Cost,
		LifeSpan:     a.LifeSpan,
		PurchaseDate: a.PurchaseDate,
	}
	if !a.CreatedAt.IsZero() {
		dto.CreatedAt = a.CreatedAt.Format(time.RFC3339)
	}
	if !a.UpdatedAt.IsZero() {
		dto.UpdatedAt = a.UpdatedAt.Format(time.RFC3339)
	}
	return dto
}

func toScanEventDTO(e asset.ScanEvent) ScanEventDTO {
	return ScanEventDTO{
		ID:           e.ID,
		AssetID:      e.AssetID,
		SerialNumber: e.SerialNumber,
		Location:     e.Location,
		Operator:     e.Operator,
		ScannedAt:    e.ScannedAt.Format(time.RFC3339),
	}
}

func toStatsDTO(stats depreciation.PortfolioStats) StatsDTO {
	return StatsDTO{
		TotalAssets:       stats.TotalAssets,
		FullyDepreciated:  stats.FullyDepreciated,
		NewAssets:         stats.NewAssets,
		CurrentMonthTotal: stats.CurrentMonthTotal,
		MonthlyTotals:     monthlyTotalKeys(stats.MonthlyTotals),
	}
}

func monthlyTotalKeys(totals map[depreciation.MonthKey]decimal.Decimal) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(totals))
	for k, v := range totals {
		out[k.String()] = v
	}
	return out
}

// loadAsset resolves the {id} URL parameter, writing the error response
// itself when the asset cannot be loaded.
func (h *Handler) loadAsset(w http.ResponseWriter, r *http.Request) (*asset.Asset, bool) {
	id := chi.URLParam(r, "id")
	a, err := h.Store.GetAsset(r.Context(), id)
	if err != nil {
		if asset.IsNotFound(err) {
			writeError(w, http.StatusNotFound, "Asset not found", nil)
			return nil, false
		}
		writeError(w, http.StatusInternalServerError, "Failed to get asset", err)
		return nil, false
	}
	return a, true
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
