package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brokertools/marketplace/api/internal/platform/logger"
	publicapp "github.com/brokertools/marketplace/api/internal/public/application"
	"github.com/brokertools/marketplace/api/internal/public/domain"
)

func TestListingKey(t *testing.T) {
	assert.Equal(t, "listing:abc", listingKey(" abc "))
}

func TestDialRequiresAddr(t *testing.T) {
	_, err := Dial(context.Background(), "  ", time.Minute, logger.NewNop())
	assert.Error(t, err)
}

func TestListingCacheRoundTrip(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("set TEST_REDIS_ADDR to run redis integration tests")
	}
	ctx := context.Background()
	cache, err := Dial(ctx, addr, time.Minute, logger.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = cache.Close() })

	trust := 82.5
	listing := domain.Listing{ID: "vendor-test-1", Name: "Acme", TrustScore: &trust, MarketScore: 71}
	require.NoError(t, cache.Set(ctx, listing))

	got, err := cache.Get(ctx, listing.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme", got.Name)
	assert.Equal(t, 82.5, *got.TrustScore)

	require.NoError(t, cache.Invalidate(ctx, listing.ID))
	_, err = cache.Get(ctx, listing.ID)
	assert.ErrorIs(t, err, publicapp.ErrCacheMiss)
}
