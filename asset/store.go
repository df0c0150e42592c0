/*
store.go - Storage interfaces for the asset domain

PURPOSE:
  Defines what the persistence layer must provide. Two implementations
  exist: store/sqlite (production) and store/memory (tests/dev). The
  domain and API layers depend only on these interfaces.

INTERFACES:
  Store:      Asset CRUD + filtered listing
  ScanLog:    Append and list scan events
  SnapshotStore: Persist and list portfolio stats snapshots

FILTERING:
  Filter mirrors the inventory screen: a free-text search over name,
  serial number and issued-to, plus exact category/status matches.
  Empty fields match everything.

SEE ALSO:
  - store/sqlite: SQLite implementation
  - store/memory: In-memory implementation
*/
package asset

import (
	"context"
	"strings"
)

// Filter narrows a listing. Zero value matches all assets.
type Filter struct {
	Query    string // substring match on name, serial number, issued-to
	Category string // exact match, "" or "ALL" matches everything
	Status   string // exact match, "" or "ALL" matches everything
}

// Matches reports whether an asset passes the filter. Shared by the
// memory store and by in-process filtering of imported batches.
func (f Filter) Matches(a Asset) bool {
	if f.Category != "" && f.Category != "ALL" && a.Category != f.Category {
		return false
	}
	if f.Status != "" && f.Status != "ALL" && a.Status != f.Status {
		return false
	}
	if f.Query == "" {
		return true
	}
	return containsFold(a.Name, f.Query) ||
		containsFold(a.SerialNumber, f.Query) ||
		containsFold(a.IssuedTo, f.Query)
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// Store is the asset persistence interface.
type Store interface {
	SaveAsset(ctx context.Context, a Asset) error
	GetAsset(ctx context.Context, id string) (*Asset, error)
	GetAssetBySerial(ctx context.Context, serialNumber string) (*Asset, error)
	ListAssets(ctx context.Context, f Filter) ([]Asset, error)
	DeleteAsset(ctx context.Context, id string) error
}

// ScanLog records QR scan events.
type ScanLog interface {
	AppendScan(ctx context.Context, e ScanEvent) error
	ListScans(ctx context.Context, limit int) ([]ScanEvent, error)
}

// SnapshotStore persists portfolio statistics snapshots.
type SnapshotStore interface {
	SaveSnapshot(ctx context.Context, s StatsSnapshot) error
	ListSnapshots(ctx context.Context, limit int) ([]StatsSnapshot, error)
}

// Inventory is the full storage surface the API layer needs.
type Inventory interface {
	Store
	ScanLog
	SnapshotStore

	// Reset clears all data. Development and demo scenarios only.
	Reset(ctx context.Context) error
}
