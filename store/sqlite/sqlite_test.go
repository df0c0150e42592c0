package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assettrack/asset-engine/asset"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleAsset(id, serial string) asset.Asset {
	return asset.Asset{
		ID:           id,
		Name:         "Office Laptop",
		Category:     asset.CategoryElectronics,
		SerialNumber: serial,
		IssuedTo:     "R. Santos",
		Status:       asset.StatusGoodCondition,
		Cost:         decimal.RequireFromString("45000.00"),
		LifeSpan:     36,
		PurchaseDate: "2023-06-15",
	}
}

func TestSaveAndGetAsset_RoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	a := sampleAsset("a-1", "SN-1")
	require.NoError(t, store.SaveAsset(ctx, a))

	got, err := store.GetAsset(ctx, "a-1")
	require.NoError(t, err)
	assert.Equal(t, a.Name, got.Name)
	assert.Equal(t, a.SerialNumber, got.SerialNumber)
	assert.Equal(t, a.LifeSpan, got.LifeSpan)
	assert.Equal(t, a.PurchaseDate, got.PurchaseDate)
	assert.True(t, got.Cost.Equal(a.Cost), "cost survives as exact decimal")
	assert.False(t, got.CreatedAt.IsZero(), "created_at is stamped on insert")
}

func TestSaveAsset_UpdateKeepsIdentity(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	a := sampleAsset("a-1", "SN-1")
	require.NoError(t, store.SaveAsset(ctx, a))

	a.Status = asset.StatusForMaintenance
	a.IssuedTo = "M. Cruz"
	require.NoError(t, store.SaveAsset(ctx, a))

	got, err := store.GetAsset(ctx, "a-1")
	require.NoError(t, err)
	assert.Equal(t, asset.StatusForMaintenance, got.Status)
	assert.Equal(t, "M. Cruz", got.IssuedTo)

	all, err := store.ListAssets(ctx, asset.Filter{})
	require.NoError(t, err)
	assert.Len(t, all, 1, "update must not duplicate the record")
}

func TestSaveAsset_DuplicateSerialRejected(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveAsset(ctx, sampleAsset("a-1", "SN-1")))

	err := store.SaveAsset(ctx, sampleAsset("a-2", "SN-1"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, asset.ErrDuplicateSerial))

	var detail *asset.DuplicateSerialError
	require.True(t, errors.As(err, &detail))
	assert.Equal(t, "a-1", detail.ExistingID)
}

func TestGetAssetBySerial(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveAsset(ctx, sampleAsset("a-1", "SN-1042")))

	got, err := store.GetAssetBySerial(ctx, "SN-1042")
	require.NoError(t, err)
	assert.Equal(t, "a-1", got.ID)

	_, err = store.GetAssetBySerial(ctx, "SN-MISSING")
	assert.True(t, errors.Is(err, asset.ErrNotFound))
}

func TestListAssets_Filters(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	laptop := sampleAsset("a-1", "SN-1")
	chair := sampleAsset("a-2", "SN-2")
	chair.Name = "Ergonomic Chair"
	chair.Category = asset.CategoryFurniture
	chair.Status = asset.StatusForDisposal
	require.NoError(t, store.SaveAsset(ctx, laptop))
	require.NoError(t, store.SaveAsset(ctx, chair))

	all, err := store.ListAssets(ctx, asset.Filter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	furniture, err := store.ListAssets(ctx, asset.Filter{Category: asset.CategoryFurniture})
	require.NoError(t, err)
	require.Len(t, furniture, 1)
	assert.Equal(t, "a-2", furniture[0].ID)

	byText, err := store.ListAssets(ctx, asset.Filter{Query: "ergonomic"})
	require.NoError(t, err)
	require.Len(t, byText, 1)
	assert.Equal(t, "a-2", byText[0].ID)

	disposal, err := store.ListAssets(ctx, asset.Filter{Status: asset.StatusForDisposal})
	require.NoError(t, err)
	assert.Len(t, disposal, 1)

	none, err := store.ListAssets(ctx, asset.Filter{Query: "projector"})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestDeleteAsset(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveAsset(ctx, sampleAsset("a-1", "SN-1")))
	require.NoError(t, store.DeleteAsset(ctx, "a-1"))

	_, err := store.GetAsset(ctx, "a-1")
	assert.True(t, errors.Is(err, asset.ErrNotFound))

	assert.True(t, errors.Is(store.DeleteAsset(ctx, "a-1"), asset.ErrNotFound))
}

func TestScanLog_AppendAndList(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		require.NoError(t, store.AppendScan(ctx, asset.ScanEvent{
			ID:           string(rune('a' + i)),
			AssetID:      "a-1",
			SerialNumber: "SN-1",
			Location:     "Warehouse B",
			Operator:     "gate-2",
			ScannedAt:    base.Add(time.Duration(i) * time.Hour),
		}))
	}

	events, err := store.ListScans(ctx, 2)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.True(t, events[0].ScannedAt.After(events[1].ScannedAt), "newest first")
	assert.Equal(t, "Warehouse B", events[0].Location)
}

func TestSnapshots_RoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	snap := asset.StatsSnapshot{
		ID:                "snap-1",
		TakenAt:           time.Date(2024, time.March, 1, 2, 0, 0, 0, time.UTC),
		TotalAssets:       12,
		FullyDepreciated:  3,
		NewAssets:         2,
		CurrentMonthTotal: decimal.RequireFromString("15230.55"),
		MonthlyTotals: map[string]decimal.Decimal{
			"2024-2": decimal.RequireFromString("15230.55"),
		},
	}
	require.NoError(t, store.SaveSnapshot(ctx, snap))

	snaps, err := store.ListSnapshots(ctx, 10)
	require.NoError(t, err)
	require.Len(t, snaps, 1)
	assert.Equal(t, 12, snaps[0].TotalAssets)
	assert.True(t, snaps[0].CurrentMonthTotal.Equal(snap.CurrentMonthTotal))
	assert.True(t, snaps[0].MonthlyTotals["2024-2"].Equal(snap.MonthlyTotals["2024-2"]))
}

func TestReset_ClearsEverything(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveAsset(ctx, sampleAsset("a-1", "SN-1")))
	require.NoError(t, store.AppendScan(ctx, asset.ScanEvent{ID: "s-1", ScannedAt: time.Now()}))
	require.NoError(t, store.Reset(ctx))

	all, err := store.ListAssets(ctx, asset.Filter{})
	require.NoError(t, err)
	assert.Empty(t, all)

	events, err := store.ListScans(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, events)
}
