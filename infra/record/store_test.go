package record

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/causewaylab/crossing/core/record"
)

func openStores(t *testing.T) map[string]record.Store {
	t.Helper()
	dir := t.TempDir()
	jsonl, err := NewJSONLStore(filepath.Join(dir, "crossings.log"))
	require.NoError(t, err)
	sqlite, err := NewSQLiteStore(filepath.Join(dir, "crossings.db"))
	require.NoError(t, err)
	return map[string]record.Store{"jsonl": jsonl, "sqlite": sqlite}
}

func crossingAt(ts time.Time, checkpoint string, hour int, total float64) record.Crossing {
	return record.Crossing{
		Timestamp:         ts,
		Checkpoint:        checkpoint,
		Origin:            "singapore",
		Destination:       "jb",
		Mode:              "car",
		TravelTimeMinutes: total - 10,
		WaitTimeMinutes:   10,
		TotalTimeMinutes:  total,
		HourOfDay:         hour,
		CongestionLevel:   "moderate",
	}
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2026, 8, 1, 8, 0, 0, 0, time.UTC)

	for name, store := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			defer func() { require.NoError(t, store.Close()) }()

			require.NoError(t, store.AddCrossing(ctx, crossingAt(base, "woodlands", 8, 60)))
			require.NoError(t, store.AddCrossing(ctx, crossingAt(base.Add(time.Hour), "woodlands", 9, 90)))
			require.NoError(t, store.AddCrossing(ctx, crossingAt(base.Add(2*time.Hour), "tuas", 10, 40)))

			all, err := store.RecentCrossings(ctx, record.Query{})
			require.NoError(t, err)
			require.Len(t, all, 3)
			// Newest first.
			assert.Equal(t, "tuas", all[0].Checkpoint)
			assert.Equal(t, 60.0, all[2].TotalTimeMinutes)
			// IDs were generated.
			for _, c := range all {
				assert.NotEmpty(t, c.ID)
			}
		})
	}
}

func TestStoreQueryFilters(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2026, 8, 1, 8, 0, 0, 0, time.UTC)

	for name, store := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			defer func() { _ = store.Close() }()

			for i := 0; i < 5; i++ {
				require.NoError(t, store.AddCrossing(ctx, crossingAt(base.Add(time.Duration(i)*time.Hour), "woodlands", 8+i, 60)))
			}
			require.NoError(t, store.AddCrossing(ctx, crossingAt(base, "tuas", 8, 30)))

			byCheckpoint, err := store.RecentCrossings(ctx, record.Query{Checkpoint: "woodlands"})
			require.NoError(t, err)
			assert.Len(t, byCheckpoint, 5)

			limited, err := store.RecentCrossings(ctx, record.Query{Checkpoint: "woodlands", Limit: 2})
			require.NoError(t, err)
			assert.Len(t, limited, 2)

			since, err := store.RecentCrossings(ctx, record.Query{Since: base.Add(3 * time.Hour)})
			require.NoError(t, err)
			assert.Len(t, since, 2)
		})
	}
}

func TestStoreAveragesByHour(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2026, 8, 1, 8, 0, 0, 0, time.UTC)

	for name, store := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			defer func() { _ = store.Close() }()

			require.NoError(t, store.AddCrossing(ctx, crossingAt(base, "woodlands", 8, 60)))
			require.NoError(t, store.AddCrossing(ctx, crossingAt(base, "woodlands", 8, 80)))
			require.NoError(t, store.AddCrossing(ctx, crossingAt(base, "woodlands", 17, 100)))
			require.NoError(t, store.AddCrossing(ctx, crossingAt(base, "tuas", 8, 10)))

			avgs, err := store.AveragesByHour(ctx, "woodlands")
			require.NoError(t, err)
			require.Len(t, avgs, 2)
			assert.Equal(t, 8, avgs[0].HourOfDay)
			assert.InDelta(t, 70.0, avgs[0].AvgMinutes, 1e-9)
			assert.Equal(t, 2, avgs[0].SampleCount)
			assert.Equal(t, 17, avgs[1].HourOfDay)
			assert.InDelta(t, 100.0, avgs[1].AvgMinutes, 1e-9)
		})
	}
}

func TestStoreSnapshots(t *testing.T) {
	ctx := context.Background()
	snap := record.TrafficSnapshot{
		Timestamp:       time.Date(2026, 8, 1, 8, 0, 0, 0, time.UTC),
		Checkpoint:      "woodlands",
		Direction:       "singapore_to_jb",
		DurationMinutes: 42,
		Multiplier:      1.4,
		Source:          "google_maps",
	}
	for name, store := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			defer func() { _ = store.Close() }()
			require.NoError(t, store.AddSnapshot(ctx, snap))
		})
	}
}

func TestStoreKeepsExplicitID(t *testing.T) {
	ctx := context.Background()
	c := crossingAt(time.Date(2026, 8, 1, 8, 0, 0, 0, time.UTC), "woodlands", 8, 60)
	c.ID = "crossing-42"
	for name, store := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			defer func() { _ = store.Close() }()
			require.NoError(t, store.AddCrossing(ctx, c))
			got, err := store.RecentCrossings(ctx, record.Query{})
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, "crossing-42", got[0].ID)
		})
	}
}
