// Package memory provides an in-memory asset.Inventory implementation
// (for testing/dev).
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/assettrack/asset-engine/asset"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Store struct {
	mu        sync.RWMutex
	assets    map[string]asset.Asset
	scans     []asset.ScanEvent
	snapshots []asset.StatsSnapshot
}

func New() *Store {
	return &Store{
		assets: make(map[string]asset.Asset),
	}
}

// SaveAsset inserts or updates an asset, enforcing serial uniqueness.
func (m *Store) SaveAsset(_ context.Context, a asset.Asset) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.assets {
		if a.SerialNumber != "" && existing.SerialNumber == a.SerialNumber && existing.ID != a.ID {
			return &asset.DuplicateSerialError{
				SerialNumber: a.SerialNumber,
				ExistingID:   existing.ID,
			}
		}
	}
	m.assets[a.ID] = a
	return nil
}

func (m *Store) GetAsset(_ context.Context, id string) (*asset.Asset, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	a, ok := m.assets[id]
	if !ok {
		return nil, asset.ErrNotFound
	}
	return &a, nil
}

func (m *Store) GetAssetBySerial(_ context.Context, serialNumber string) (*asset.Asset, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, a := range m.assets {
		if a.SerialNumber == serialNumber {
			a := a
			return &a, nil
		}
	}
	return nil, asset.ErrNotFound
}

// ListAssets returns matching assets, newest first (ties broken by ID
// for deterministic ordering in tests).
func (m *Store) ListAssets(_ context.Context, f asset.Filter) ([]asset.Asset, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []asset.Asset
	for _, a := range m.assets {
		if f.Matches(a) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *Store) DeleteAsset(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.assets[id]; !ok {
		return asset.ErrNotFound
	}
	delete(m.assets, id)
	return nil
}

// AppendScan records one scan event. Append-only.
func (m *Store) AppendScan(_ context.Context, e asset.ScanEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.scans = append(m.scans, e)
	return nil
}

func (m *Store) ListScans(_ context.Context, limit int) ([]asset.ScanEvent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if limit <= 0 {
		limit = 100
	}
	out := make([]asset.ScanEvent, len(m.scans))
	copy(out, m.scans)
	sort.Slice(out, func(i, j int) bool {
		return out[i].ScannedAt.After(out[j].ScannedAt)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *Store) SaveSnapshot(_ context.Context, s asset.StatsSnapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.snapshots = append(m.snapshots, s)
	return nil
}

func (m *Store) ListSnapshots(_ context.Context, limit int) ([]asset.StatsSnapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if limit <= 0 {
		limit = 90
	}
	out := make([]asset.StatsSnapshot, len(m.snapshots))
	copy(out, m.snapshots)
	sort.Slice(out, func(i, j int) bool {
		return out[i].TakenAt.After(out[j].TakenAt)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Reset clears all data.
func (m *Store) Reset(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.assets = make(map[string]asset.Asset)
	m.scans = nil
	m.snapshots = nil
	return nil
}
