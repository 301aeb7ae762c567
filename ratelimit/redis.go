// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// hitScript increments the counter and starts the window's expiry on the
// first hit, returning {count, pttl}.
var hitScript = redis.NewScript(`
local count = redis.call('INCR', KEYS[1])
if count == 1 then
	redis.call('PEXPIRE', KEYS[1], ARGV[1])
end
local ttl = redis.call('PTTL', KEYS[1])
if ttl < 0 then
	redis.call('PEXPIRE', KEYS[1], ARGV[1])
	ttl = tonumber(ARGV[1])
end
return {count, ttl}
`)

// RedisStore keeps counters in Redis so every replica sees the same window.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
	window time.Duration
}

func NewRedisStore(client redis.UniversalClient, prefix string, window time.Duration) *RedisStore {
	return &RedisStore{client: client, prefix: prefix, window: window}
}

// NewRedisClient parses a redis:// URL into a client.
func NewRedisClient(url string) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}
	return redis.NewClient(opt), nil
}

func (s *RedisStore) Hit(ctx context.Context, key string) (Hit, error) {
	res, err := hitScript.Run(ctx, s.client, []string{s.prefix + key}, s.window.Milliseconds()).Int64Slice()
	if err != nil {
		return Hit{}, fmt.Errorf("redis rate-limit hit: %w", err)
	}
	if len(res) != 2 {
		return Hit{}, fmt.Errorf("redis rate-limit hit: unexpected reply %v", res)
	}

	return Hit{
		Count:   res[0],
		ResetAt: time.Now().Add(time.Duration(res[1]) * time.Millisecond),
	}, nil
}
