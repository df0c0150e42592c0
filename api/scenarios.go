/*
scenarios.go - Demo scenario loaders for testing and demonstrations

PURPOSE:

	Provides pre-built portfolios that populate the database with
	realistic data for testing and demos. Each scenario registers a set
	of assets whose costs, life spans and purchase dates exercise a
	specific corner of the depreciation engine.

AVAILABLE SCENARIOS:

	office-electronics: Laptops and printers bought through the year
	vehicle-fleet:      Long-lived vehicles, multi-year schedules
	mixed-portfolio:    All four categories, staggered purchase dates
	fully-depreciated:  Old assets whose schedules have fully run out

HOW SCENARIOS WORK:
 1. Reset database (clear all data)
 2. Register the scenario's assets
 3. Take an initial stats snapshot

USAGE VIA API:

	POST /api/scenarios/load
	{"scenario_id": "mixed-portfolio"}

ADDING NEW SCENARIOS:
 1. Add to 'scenarios' slice with ID, name, description
 2. Add a portfolio function returning its assets
 3. Add the case to scenarioAssets

NOTE:

	Scenarios reset the database. Only use in development/demo
	environments.

SEE ALSO:
  - handlers.go: ResetDatabase handler
  - scheduler.go: SnapshotNow
*/
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/assettrack/asset-engine/asset"
)

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

var scenarios = []ScenarioDTO{
	{
		ID:          "office-electronics",
		Name:        "Office Electronics",
		Description: "Laptops and printers purchased through the year, 12-36 month life spans",
	},
	{
		ID:          "vehicle-fleet",
		Name:        "Vehicle Fleet",
		Description: "High-cost vehicles with 60-month schedules spanning several fiscal years",
	},
	{
		ID:          "mixed-portfolio",
		Name:        "Mixed Portfolio",
		Description: "All four categories with staggered purchase dates",
	},
	{
		ID:          "fully-depreciated",
		Name:        "Fully Depreciated",
		Description: "Old assets whose depreciation has fully run out",
	},
}

// ListScenarios returns available scenarios.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scenarios)
}

// GetCurrentScenario returns the currently loaded scenario, if any.
func (h *Handler) GetCurrentScenario(w http.ResponseWriter, r *http.Request) {
	if h.currentScenario == "" {
		writeJSON(w, http.StatusOK, nil)
		return
	}

	for _, s := range scenarios {
		if s.ID == h.currentScenario {
			writeJSON(w, http.StatusOK, s)
			return
		}
	}

	// Scenario ID exists but not in list (shouldn't happen)
	writeJSON(w, http.StatusOK, ScenarioDTO{
		ID:          h.currentScenario,
		Name:        h.currentScenario,
		Description: "Currently loaded scenario",
	})
}

// LoadScenario loads a predefined scenario.
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	var req LoadScenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	portfolio, ok := scenarioAssets(req.ScenarioID)
	if !ok {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Unknown scenario: %s", req.ScenarioID), nil)
		return
	}

	ctx := r.Context()
	if err := h.Store.Reset(ctx); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset database", err)
		return
	}

	for _, a := range portfolio {
		if err := h.Store.SaveAsset(ctx, a); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to load scenario", err)
			return
		}
	}

	if _, err := SnapshotNow(ctx, h.Store, h.Profile); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to snapshot scenario", err)
		return
	}

	h.currentScenario = req.ScenarioID
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "loaded",
		"scenario": req.ScenarioID,
		"assets":   len(portfolio),
	})
}

// scenarioAssets returns the portfolio for a scenario ID.
func scenarioAssets(id string) ([]asset.Asset, bool) {
	switch id {
	case "office-electronics":
		return officeElectronics(), true
	case "vehicle-fleet":
		return vehicleFleet(), true
	case "mixed-portfolio":
		return mixedPortfolio(), true
	case "fully-depreciated":
		return fullyDepreciated(), true
	default:
		return nil, false
	}
}

// =============================================================================
// PORTFOLIOS
// =============================================================================

// demoAsset builds one scenario asset purchased the given number of
// months ago.
func demoAsset(name, category, serial, cost string, lifeSpan, monthsAgo int) asset.Asset {
	c, _ := decimal.NewFromString(cost)
	now := time.Now().UTC()
	purchased := now.AddDate(0, -monthsAgo, 0)
	return asset.Asset{
		ID:           asset.NewID(),
		Name:         name,
		Category:     category,
		SerialNumber: serial,
		Status:       asset.StatusGoodCondition,
		Cost:         c,
		LifeSpan:     lifeSpan,
		PurchaseDate: purchased.Format("2006-01-02"),
		CreatedAt:    purchased,
		UpdatedAt:    now,
	}
}

func officeElectronics() []asset.Asset {
	return []asset.Asset{
		demoAsset("MacBook Pro 14", asset.CategoryElectronics, "DEMO-MBP-001", "120000", 36, 8),
		demoAsset("ThinkPad X1", asset.CategoryElectronics, "DEMO-TPX-002", "85000", 36, 5),
		demoAsset("LaserJet Printer", asset.CategoryElectronics, "DEMO-LJP-003", "24000", 24, 14),
		demoAsset("Projector", asset.CategoryElectronics, "DEMO-PRJ-004", "45000", 24, 2),
		demoAsset("Conference Display", asset.CategoryElectronics, "DEMO-DSP-005", "60000", 36, 0),
	}
}

func vehicleFleet() []asset.Asset {
	return []asset.Asset{
		demoAsset("Delivery Van", asset.CategoryVehicles, "DEMO-VAN-001", "1500000", 60, 20),
		demoAsset("Service Pickup", asset.CategoryVehicles, "DEMO-PCK-002", "1200000", 60, 9),
		demoAsset("Company Sedan", asset.CategoryVehicles, "DEMO-SDN-003", "950000", 60, 3),
	}
}

func mixedPortfolio() []asset.Asset {
	return []asset.Asset{
		demoAsset("Desktop Workstation", asset.CategoryElectronics, "DEMO-WKS-001", "95000", 36, 10),
		demoAsset("Standing Desk", asset.CategoryFurniture, "DEMO-DSK-002", "32000", 48, 16),
		demoAsset("Executive Chair", asset.CategoryFurniture, "DEMO-CHR-003", "18000", 48, 16),
		demoAsset("Paper Shredder", asset.CategoryOfficeSupplies, "DEMO-SHR-004", "8500", 12, 4),
		demoAsset("Delivery Motorcycle", asset.CategoryVehicles, "DEMO-MTR-005", "180000", 60, 7),
		demoAsset("Label Printer", asset.CategoryOfficeSupplies, "DEMO-LBL-006", "6000", 12, 1),
	}
}

func fullyDepreciated() []asset.Asset {
	assets := []asset.Asset{
		demoAsset("Legacy Desktop", asset.CategoryElectronics, "DEMO-OLD-001", "40000", 12, 30),
		demoAsset("Old Filing Cabinet", asset.CategoryFurniture, "DEMO-OLD-002", "12000", 24, 40),
		demoAsset("Retired Scooter", asset.CategoryVehicles, "DEMO-OLD-003", "90000", 24, 36),
		// One live asset so the dashboard still has a current charge.
		demoAsset("Replacement Laptop", asset.CategoryElectronics, "DEMO-NEW-004", "75000", 36, 1),
	}
	for i := range assets[:3] {
		assets[i].Status = asset.StatusForDisposal
	}
	return assets
}
