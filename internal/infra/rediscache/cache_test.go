//go:build unit

package rediscache_test

import (
	"context"
	"testing"
	"time"

	"rategrid/internal/domain/rate"
	"rategrid/internal/infra/rediscache"
	"rategrid/internal/pkg/config"
	"rategrid/tests/common/builder"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T, ttl time.Duration) (*miniredis.Miniredis, *rediscache.RateCache) {
	t.Helper()
	mr := miniredis.RunT(t)
	client, cleanup, err := rediscache.NewClient(config.RedisConfig{Addr: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(cleanup)
	return mr, rediscache.NewRateCache(client, ttl)
}

func TestRateCache(t *testing.T) {
	ctx := context.Background()

	t.Run("miss reads through without error", func(t *testing.T) {
		_, cache := newTestCache(t, time.Minute)

		snap, found, err := cache.Get(ctx, uuid.New())
		require.NoError(t, err)
		require.False(t, found)
		require.Nil(t, snap)
	})

	t.Run("set then get returns the stored snapshot", func(t *testing.T) {
		_, cache := newTestCache(t, time.Minute)

		overridePrice := decimal.NewFromInt(99)
		snap := builder.NewRateBuilder().
			AsApproved().
			WithChannel(rate.ChannelWeb, rate.Adjustment{Type: rate.AdjustPercentage, Value: decimal.NewFromInt(5)}).
			WithPropertyRate(rate.PropertyRate{
				PropertyID: uuid.New(),
				BasePrice:  &overridePrice,
				IsOverride: true,
				Sync:       rate.SyncStatus{State: rate.SyncSynced},
			}).
			BuildSnapshot()

		require.NoError(t, cache.Set(ctx, &snap))

		got, found, err := cache.Get(ctx, snap.ID)
		require.NoError(t, err)
		require.True(t, found)
		if diff := cmp.Diff(snap, *got); diff != "" {
			t.Errorf("snapshot mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("entries expire after the ttl", func(t *testing.T) {
		mr, cache := newTestCache(t, time.Minute)

		snap := builder.NewRateBuilder().BuildSnapshot()
		require.NoError(t, cache.Set(ctx, &snap))

		mr.FastForward(2 * time.Minute)

		_, found, err := cache.Get(ctx, snap.ID)
		require.NoError(t, err)
		require.False(t, found)
	})

	t.Run("invalidate drops the entry", func(t *testing.T) {
		_, cache := newTestCache(t, time.Minute)

		snap := builder.NewRateBuilder().BuildSnapshot()
		require.NoError(t, cache.Set(ctx, &snap))
		require.NoError(t, cache.Invalidate(ctx, snap.ID))

		_, found, err := cache.Get(ctx, snap.ID)
		require.NoError(t, err)
		require.False(t, found)
	})

	t.Run("invalidating an absent entry is fine", func(t *testing.T) {
		_, cache := newTestCache(t, time.Minute)
		require.NoError(t, cache.Invalidate(ctx, uuid.New()))
	})

	t.Run("corrupt entry surfaces a decode error", func(t *testing.T) {
		mr, cache := newTestCache(t, time.Minute)

		id := uuid.New()
		require.NoError(t, mr.Set("rate:"+id.String(), "{boom"))

		_, found, err := cache.Get(ctx, id)
		require.Error(t, err)
		require.False(t, found)
	})
}
