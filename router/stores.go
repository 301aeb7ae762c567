// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"context"
	"fmt"
	"time"

	"github.com/danielhkuo/quizo/cliparse"
	"github.com/danielhkuo/quizo/ratelimit"
)

const (
	rateKeyPrefix = "quizo:rl:"
	slowKeyPrefix = "quizo:sd:"
	gcInterval    = time.Minute
)

// CounterStores holds the rate-limit and slow-down counters. Close releases
// the backing resources.
type CounterStores struct {
	Rate  ratelimit.Store
	Slow  ratelimit.Store
	Close func() error
}

// NewCounterStores picks Redis when cfg.RedisURL is set, otherwise two
// in-memory stores swept every minute until done is closed.
func NewCounterStores(ctx context.Context, cfg cliparse.Config, done <-chan struct{}) (CounterStores, error) {
	if cfg.RedisURL == "" {
		rate := ratelimit.NewMemoryStore(cfg.RateLimitWindow)
		slow := ratelimit.NewMemoryStore(cfg.RateLimitWindow)
		rate.StartGC(gcInterval, done)
		slow.StartGC(gcInterval, done)
		return CounterStores{Rate: rate, Slow: slow, Close: func() error { return nil }}, nil
	}

	client, err := ratelimit.NewRedisClient(cfg.RedisURL)
	if err != nil {
		return CounterStores{}, err
	}
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return CounterStores{}, fmt.Errorf("redis unreachable: %w", err)
	}

	return CounterStores{
		Rate:  ratelimit.NewRedisStore(client, rateKeyPrefix, cfg.RateLimitWindow),
		Slow:  ratelimit.NewRedisStore(client, slowKeyPrefix, cfg.RateLimitWindow),
		Close: client.Close,
	}, nil
}
