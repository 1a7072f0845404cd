package cache

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohan-darji/ai-humanizer/internal/domain/models"
)

func newTestCache(t *testing.T) (*OverviewCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewOverviewCache(client), mr
}

func TestOverviewCacheRoundTrip(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	overview := &AccountOverview{
		Plan:             models.PlanStandard,
		Cycle:            models.CycleMonthly,
		TotalCredits:     5000,
		UsedCredits:      6,
		AvailableCredits: 4994,
		ProjectCount:     3,
	}
	require.NoError(t, c.Set(ctx, 1, overview))

	got, err := c.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, overview, got)
}

func TestOverviewCacheMiss(t *testing.T) {
	c, _ := newTestCache(t)

	_, err := c.Get(context.Background(), 99)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestOverviewCacheInvalidate(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, 1, &AccountOverview{Plan: models.PlanFree}))
	require.NoError(t, c.Invalidate(ctx, 1))

	_, err := c.Get(ctx, 1)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestOverviewCacheExpires(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, 1, &AccountOverview{Plan: models.PlanPremium}))
	mr.FastForward(overviewTTL + 1)

	_, err := c.Get(ctx, 1)
	assert.ErrorIs(t, err, models.ErrNotFound)
}
