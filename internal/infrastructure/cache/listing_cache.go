// Package cache keeps built public listings in Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/brokertools/marketplace/api/internal/platform/logger"
	publicapp "github.com/brokertools/marketplace/api/internal/public/application"
	"github.com/brokertools/marketplace/api/internal/public/domain"
)

const keyPrefix = "listing:"

// ListingCache stores listings as JSON under listing:<vendor id>. It serves
// the public read path and is invalidated by admin writes.
type ListingCache struct {
	rdb *redis.Client
	ttl time.Duration
	log *logger.Logger
}

// Dial connects to addr and verifies the connection with PING.
func Dial(ctx context.Context, addr string, ttl time.Duration, log *logger.Logger) (*ListingCache, error) {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return nil, fmt.Errorf("missing redis addr")
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return NewListingCache(rdb, ttl, log), nil
}

func NewListingCache(rdb *redis.Client, ttl time.Duration, log *logger.Logger) *ListingCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &ListingCache{rdb: rdb, ttl: ttl, log: log.With("service", "ListingCache")}
}

func listingKey(id string) string {
	return keyPrefix + strings.TrimSpace(id)
}

func (c *ListingCache) Get(ctx context.Context, id string) (*domain.Listing, error) {
	raw, err := c.rdb.Get(ctx, listingKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, publicapp.ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}
	var listing domain.Listing
	if err := json.Unmarshal(raw, &listing); err != nil {
		c.log.Warn("dropping undecodable listing", "key", listingKey(id), "error", err)
		_ = c.rdb.Del(ctx, listingKey(id)).Err()
		return nil, publicapp.ErrCacheMiss
	}
	return &listing, nil
}

func (c *ListingCache) Set(ctx context.Context, listing domain.Listing) error {
	raw, err := json.Marshal(listing)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, listingKey(listing.ID), raw, c.ttl).Err()
}

// Invalidate drops the cached listing for an application. Missing keys are
// not an error.
func (c *ListingCache) Invalidate(ctx context.Context, applicationID string) error {
	return c.rdb.Del(ctx, listingKey(applicationID)).Err()
}

func (c *ListingCache) Close() error {
	return c.rdb.Close()
}
