/*
Package sqlite provides the SQLite-backed implementation of the asset
storage interfaces.

PURPOSE:
  Implements asset.Inventory (asset CRUD, scan log, stats snapshots)
  using SQLite. In production the same patterns apply to PostgreSQL -
  only minor SQL dialect differences.

KEY TABLES:
  assets:          Inventory records
  scan_events:     Append-only QR scan log
  stats_snapshots: Periodic portfolio statistics captures

INDEXES:
  - idx_assets_serial (unique): serial-number lookups from scans, and
    the duplicate-serial integrity rule
  - idx_assets_category / idx_assets_status: inventory filters
  - idx_scan_events_at / idx_snapshots_at: newest-first listings

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. With PostgreSQL, database-level
  concurrency control would handle this instead.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) for better
  concurrency: multiple readers don't block, single writer at a time,
  better crash recovery.

MONEY:
  Costs and totals are stored as decimal strings, never floats, so
  round trips are exact.

USAGE:
  store, err := sqlite.New("./data/assets.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper
  migration tool (golang-migrate, goose) with versioned migrations.

SEE ALSO:
  - asset/store.go: Interface definitions
  - store/memory: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/assettrack/asset-engine/asset"
)

// Store implements asset.Inventory using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Inventory records
	CREATE TABLE IF NOT EXISTS assets (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		category TEXT,
		serial_number TEXT NOT NULL,
		description TEXT,
		issued_to TEXT,
		status TEXT,
		cost TEXT NOT NULL,
		life_span INTEGER NOT NULL,
		purchase_date TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE UNIQUE INDEX IF NOT EXISTS idx_assets_serial
		ON assets(serial_number) WHERE serial_number != '';
	CREATE INDEX IF NOT EXISTS idx_assets_category
		ON assets(category);
	CREATE INDEX IF NOT EXISTS idx_assets_status
		ON assets(status);

	-- Append-only QR scan log
	CREATE TABLE IF NOT EXISTS scan_events (
		id TEXT PRIMARY KEY,
		asset_id TEXT NOT NULL,
		serial_number TEXT NOT NULL,
		location TEXT,
		operator TEXT,
		scanned_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_scan_events_at
		ON scan_events(scanned_at);

	-- Periodic portfolio statistics captures
	CREATE TABLE IF NOT EXISTS stats_snapshots (
		id TEXT PRIMARY KEY,
		taken_at TEXT NOT NULL,
		total_assets INTEGER NOT NULL,
		fully_depreciated INTEGER NOT NULL,
		new_assets INTEGER NOT NULL,
		current_month_total TEXT NOT NULL,
		monthly_totals_json TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_snapshots_at
		ON stats_snapshots(taken_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// ASSETS
// =============================================================================

// SaveAsset inserts or updates an asset. A serial number already owned
// by a different asset is rejected with DuplicateSerialError.
func (s *Store) SaveAsset(ctx context.Context, a asset.Asset) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Serial numbers are unique when present; blank serials don't
	// conflict with each other.
	if a.SerialNumber != "" {
		var existingID string
		err := s.db.QueryRowContext(ctx,
			`SELECT id FROM assets WHERE serial_number = ? AND id != ?`,
			a.SerialNumber, a.ID).Scan(&existingID)
		switch {
		case err == nil:
			return &asset.DuplicateSerialError{SerialNumber: a.SerialNumber, ExistingID: existingID}
		case err != sql.ErrNoRows:
			return fmt.Errorf("failed to check serial number: %w", err)
		}
	}

	now := time.Now().UTC()
	createdAt := a.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}
	updatedAt := a.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = now
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO assets (id, name, category, serial_number, description,
			issued_to, status, cost, life_span, purchase_date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			category = excluded.category,
			serial_number = excluded.serial_number,
			description = excluded.description,
			issued_to = excluded.issued_to,
			status = excluded.status,
			cost = excluded.cost,
			life_span = excluded.life_span,
			purchase_date = excluded.purchase_date,
			updated_at = excluded.updated_at`,
		a.ID, a.Name, a.Category, a.SerialNumber, a.Description,
		a.IssuedTo, a.Status, a.Cost.String(), a.LifeSpan, a.PurchaseDate,
		createdAt.Format(time.RFC3339), updatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to save asset: %w", err)
	}
	return nil
}

// GetAsset returns an asset by ID, or ErrNotFound.
func (s *Store) GetAsset(ctx context.Context, id string) (*asset.Asset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.queryOne(ctx, `SELECT `+assetColumns+` FROM assets WHERE id = ?`, id)
}

// GetAssetBySerial returns an asset by serial number, or ErrNotFound.
// This is the scan-resolution path.
func (s *Store) GetAssetBySerial(ctx context.Context, serialNumber string) (*asset.Asset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.queryOne(ctx, `SELECT `+assetColumns+` FROM assets WHERE serial_number = ?`, serialNumber)
}

// ListAssets returns assets matching the filter, newest first.
func (s *Store) ListAssets(ctx context.Context, f asset.Filter) ([]asset.Asset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT ` + assetColumns + ` FROM assets WHERE 1=1`
	var args []any

	if f.Category != "" && f.Category != "ALL" {
		query += ` AND category = ?`
		args = append(args, f.Category)
	}
	if f.Status != "" && f.Status != "ALL" {
		query += ` AND status = ?`
		args = append(args, f.Status)
	}
	if f.Query != "" {
		query += ` AND (name LIKE ? COLLATE NOCASE
			OR serial_number LIKE ? COLLATE NOCASE
			OR issued_to LIKE ? COLLATE NOCASE)`
		like := "%" + f.Query + "%"
		args = append(args, like, like, like)
	}
	query += ` ORDER BY created_at DESC, id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}
	defer rows.Close()

	var assets []asset.Asset
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, err
		}
		assets = append(assets, a)
	}
	return assets, rows.Err()
}

// DeleteAsset removes an asset by ID, or returns ErrNotFound.
func (s *Store) DeleteAsset(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM assets WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete asset: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return asset.ErrNotFound
	}
	return nil
}

const assetColumns = `id, name, category, serial_number, description,
	issued_to, status, cost, life_span, purchase_date, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func (s *Store) queryOne(ctx context.Context, query string, args ...any) (*asset.Asset, error) {
	row := s.db.QueryRowContext(ctx, query, args...)
	a, err := scanAsset(row)
	if err == sql.ErrNoRows {
		return nil, asset.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func scanAsset(row rowScanner) (asset.Asset, error) {
	var (
		a                    asset.Asset
		cost                 string
		createdAt, updatedAt string
	)
	err := row.Scan(&a.ID, &a.Name, &a.Category, &a.SerialNumber, &a.Description,
		&a.IssuedTo, &a.Status, &cost, &a.LifeSpan, &a.PurchaseDate,
		&createdAt, &updatedAt)
	if err != nil {
		return asset.Asset{}, err
	}

	a.Cost, err = decimal.NewFromString(cost)
	if err != nil {
		return asset.Asset{}, fmt.Errorf("corrupt cost for asset %s: %w", a.ID, err)
	}
	a.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	a.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return a, nil
}

// =============================================================================
// SCAN LOG
// =============================================================================

// AppendScan records one QR scan. Append-only: scans are never updated
// or deleted.
func (s *Store) AppendScan(ctx context.Context, e asset.ScanEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO scan_events (id, asset_id, serial_number, location, operator, scanned_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.AssetID, e.SerialNumber, e.Location, e.Operator,
		e.ScannedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to append scan event: %w", err)
	}
	return nil
}

// ListScans returns the most recent scan events, newest first.
func (s *Store) ListScans(ctx context.Context, limit int) ([]asset.ScanEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, asset_id, serial_number, location, operator, scanned_at
		FROM scan_events ORDER BY scanned_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list scan events: %w", err)
	}
	defer rows.Close()

	var events []asset.ScanEvent
	for rows.Next() {
		var (
			e         asset.ScanEvent
			scannedAt string
		)
		if err := rows.Scan(&e.ID, &e.AssetID, &e.SerialNumber, &e.Location,
			&e.Operator, &scannedAt); err != nil {
			return nil, err
		}
		e.ScannedAt, _ = time.Parse(time.RFC3339, scannedAt)
		events = append(events, e)
	}
	return events, rows.Err()
}

// =============================================================================
// STATS SNAPSHOTS
// =============================================================================

// SaveSnapshot persists one portfolio statistics capture.
func (s *Store) SaveSnapshot(ctx context.Context, snap asset.StatsSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	monthly, err := json.Marshal(snap.MonthlyTotals)
	if err != nil {
		return fmt.Errorf("failed to encode monthly totals: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO stats_snapshots (id, taken_at, total_assets, fully_depreciated,
			new_assets, current_month_total, monthly_totals_json)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		snap.ID, snap.TakenAt.UTC().Format(time.RFC3339), snap.TotalAssets,
		snap.FullyDepreciated, snap.NewAssets, snap.CurrentMonthTotal.String(),
		string(monthly))
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

// ListSnapshots returns the most recent snapshots, newest first.
func (s *Store) ListSnapshots(ctx context.Context, limit int) ([]asset.StatsSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 90
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, taken_at, total_assets, fully_depreciated, new_assets,
			current_month_total, monthly_totals_json
		FROM stats_snapshots ORDER BY taken_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer rows.Close()

	var snaps []asset.StatsSnapshot
	for rows.Next() {
		var (
			snap         asset.StatsSnapshot
			takenAt      string
			currentTotal string
			monthlyJSON  sql.NullString
		)
		if err := rows.Scan(&snap.ID, &takenAt, &snap.TotalAssets,
			&snap.FullyDepreciated, &snap.NewAssets, &currentTotal, &monthlyJSON); err != nil {
			return nil, err
		}
		snap.TakenAt, _ = time.Parse(time.RFC3339, takenAt)
		snap.CurrentMonthTotal, err = decimal.NewFromString(currentTotal)
		if err != nil {
			return nil, fmt.Errorf("corrupt snapshot total: %w", err)
		}
		if monthlyJSON.Valid && monthlyJSON.String != "" {
			if err := json.Unmarshal([]byte(monthlyJSON.String), &snap.MonthlyTotals); err != nil {
				return nil, fmt.Errorf("corrupt snapshot monthly totals: %w", err)
			}
		}
		snaps = append(snaps, snap)
	}
	return snaps, rows.Err()
}

// =============================================================================
// RESET
// =============================================================================

// Reset clears all data. Development and demo scenarios only.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, table := range []string{"assets", "scan_events", "stats_snapshots"} {
		if _, err := s.db.ExecContext(ctx, `DELETE FROM `+table); err != nil {
			return fmt.Errorf("failed to reset %s: %w", table, err)
		}
	}
	return nil
}
