/*
scheduler.go - Automated statistics snapshot scheduler

PURPOSE:
  Periodically recomputes portfolio statistics and persists them as a
  snapshot row, so dashboards can chart totals over time without
  recomputing history.

DESIGN:
  - robfig/cron drives the schedule (default: daily at 02:00)
  - Each run lists all assets, computes stats, saves one snapshot
  - Failures are logged and retried on the next tick; a run never
    takes the server down

USAGE:
  scheduler := NewSnapshotScheduler(store, profile, "0 2 * * *", logger)
  if err := scheduler.Start(); err != nil { ... }
  // ... later
  scheduler.Stop()

SEE ALSO:
  - handlers.go: TakeSnapshot endpoint (manual trigger)
  - depreciation/stats.go: ComputeStats
*/
package api

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/assettrack/asset-engine/asset"
	"github.com/assettrack/asset-engine/depreciation"
)

// SnapshotNow computes current portfolio statistics and persists them
// as a snapshot. Shared by the scheduler and the manual admin trigger.
func SnapshotNow(ctx context.Context, store asset.Inventory, profile depreciation.Profile) (asset.StatsSnapshot, error) {
	assets, err := store.ListAssets(ctx, asset.Filter{})
	if err != nil {
		return asset.StatsSnapshot{}, fmt.Errorf("list assets: %w", err)
	}

	now := time.Now().UTC()
	stats := profile.ComputeStats(assets, now)

	snapshot := asset.StatsSnapshot{
		ID:                asset.NewID(),
		TakenAt:           now,
		TotalAssets:       stats.TotalAssets,
		FullyDepreciated:  stats.FullyDepreciated,
		NewAssets:         stats.NewAssets,
		CurrentMonthTotal: stats.CurrentMonthTotal,
		MonthlyTotals:     monthlyTotalKeys(stats.MonthlyTotals),
	}

	if err := store.SaveSnapshot(ctx, snapshot); err != nil {
		return asset.StatsSnapshot{}, fmt.Errorf("save snapshot: %w", err)
	}
	return snapshot, nil
}

// SnapshotScheduler persists portfolio stats on a cron schedule.
type SnapshotScheduler struct {
	Store    asset.Inventory
	Profile  depreciation.Profile
	Schedule string // cron spec, e.g. "0 2 * * *"
	Log      *zap.Logger

	cron *cron.Cron
}

// NewSnapshotScheduler creates a scheduler. It does not start it.
func NewSnapshotScheduler(store asset.Inventory, profile depreciation.Profile, schedule string, logger *zap.Logger) *SnapshotScheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SnapshotScheduler{
		Store:    store,
		Profile:  profile,
		Schedule: schedule,
		Log:      logger.Named("snapshot"),
	}
}

// Start registers the cron job and begins running it.
func (s *SnapshotScheduler) Start() error {
	s.cron = cron.New()
	if _, err := s.cron.AddFunc(s.Schedule, s.runOnce); err != nil {
		return fmt.Errorf("invalid snapshot schedule %q: %w", s.Schedule, err)
	}
	s.cron.Start()
	s.Log.Info("snapshot scheduler started", zap.String("schedule", s.Schedule))
	return nil
}

// Stop stops the scheduler, waiting for a running job to finish.
func (s *SnapshotScheduler) Stop() {
	if s.cron == nil {
		return
	}
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.Log.Info("snapshot scheduler stopped")
}

// RunNow triggers an immediate snapshot (for testing/admin).
func (s *SnapshotScheduler) RunNow() {
	s.runOnce()
}

func (s *SnapshotScheduler) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
	defer cancel()

	snapshot, err := SnapshotNow(ctx, s.Store, s.Profile)
	if err != nil {
		s.Log.Error("snapshot run failed", zap.Error(err))
		return
	}

	s.Log.Info("snapshot taken",
		zap.String("id", snapshot.ID),
		zap.Int("total_assets", snapshot.TotalAssets),
		zap.Int("fully_depreciated", snapshot.FullyDepreciated))
}
