package simulator

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/causewaylab/crossing/core/record"
	"github.com/causewaylab/crossing/infra/logger"
	infrarecord "github.com/causewaylab/crossing/infra/record"
)

func newStore(t *testing.T) record.Store {
	t.Helper()
	store, err := infrarecord.NewJSONLStore(filepath.Join(t.TempDir(), "crossings.log"))
	require.NoError(t, err)
	return store
}

func TestGeneratorWritesExpectedCount(t *testing.T) {
	store := newStore(t)
	defer func() { _ = store.Close() }()

	cfg := Config{Days: 2, CrossingsPerDay: 10, Seed: 1}
	gen := New(store, cfg, logger.NopLogger{})
	n, err := gen.Run(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, 20, n)

	got, err := store.RecentCrossings(context.Background(), record.Query{})
	require.NoError(t, err)
	assert.Len(t, got, 20)
}

func TestGeneratorProducesPlausibleRecords(t *testing.T) {
	store := newStore(t)
	defer func() { _ = store.Close() }()

	cfg := Config{Days: 3, CrossingsPerDay: 30, Seed: 42}
	gen := New(store, cfg, logger.NopLogger{})
	_, err := gen.Run(context.Background(), cfg)
	require.NoError(t, err)

	got, err := store.RecentCrossings(context.Background(), record.Query{})
	require.NoError(t, err)
	for _, c := range got {
		assert.Contains(t, []string{"woodlands", "tuas"}, c.Checkpoint)
		assert.Contains(t, []string{"car", "taxi", "bus"}, c.Mode)
		assert.Greater(t, c.TravelTimeMinutes, 0.0)
		assert.GreaterOrEqual(t, c.WaitTimeMinutes, 0.0)
		assert.InDelta(t, c.TravelTimeMinutes+c.WaitTimeMinutes, c.TotalTimeMinutes, 0.2)
		assert.GreaterOrEqual(t, c.HourOfDay, 0)
		assert.Less(t, c.HourOfDay, 24)
		assert.GreaterOrEqual(t, c.DayOfWeek, 0)
		assert.Less(t, c.DayOfWeek, 7)
		assert.NotEmpty(t, c.CongestionLevel)
	}
}

func TestGeneratorDefaults(t *testing.T) {
	var cfg Config
	cfg.SetDefaults()
	assert.Equal(t, 7, cfg.Days)
	assert.Equal(t, 48, cfg.CrossingsPerDay)
}

func TestGeneratorStopsOnCancel(t *testing.T) {
	store := newStore(t)
	defer func() { _ = store.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	cfg := Config{Days: 1, CrossingsPerDay: 5, Seed: 1}
	gen := New(store, cfg, logger.NopLogger{})
	n, err := gen.Run(ctx, cfg)
	assert.Error(t, err)
	assert.Equal(t, 0, n)
}
