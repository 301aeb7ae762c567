// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/danielhkuo/quizo/ratelimit"
)

type RateLimitConfig struct {
	Store      ratelimit.Store
	Max        int64
	TrustProxy bool
}

// RateLimit caps requests per client address per window. Every response
// carries X-RateLimit-* headers; requests over the cap get a 429.
// If the counter store fails the request is let through.
func RateLimit(cfg RateLimitConfig) func(http.Handler) http.Handler {
	limit := strconv.FormatInt(cfg.Max, 10)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := GetClientIP(r, cfg.TrustProxy)
			hit, err := cfg.Store.Hit(r.Context(), ip)
			if err != nil {
				GetLogger(r.Context()).Error("rate limit store failed", "error", err, "client", ip)
				next.ServeHTTP(w, r)
				return
			}

			remaining := max(cfg.Max-hit.Count, 0)
			h := w.Header()
			h.Set("X-RateLimit-Limit", limit)
			h.Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))
			h.Set("X-RateLimit-Reset", strconv.FormatInt(hit.ResetAt.Unix(), 10))

			if hit.Count > cfg.Max {
				retry := int64(math.Ceil(time.Until(hit.ResetAt).Seconds()))
				h.Set("Retry-After", strconv.FormatInt(max(retry, 1), 10))
				GetLogger(r.Context()).Warn("rate limit exceeded", "client", ip, "count", hit.Count)
				ErrorResponse(w, http.StatusTooManyRequests, "Too many requests, please try again later.")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

type SlowDownConfig struct {
	// Store must not be shared with RateLimit; each keeps its own count.
	Store      ratelimit.Store
	After      int64
	Delay      time.Duration
	MaxDelay   time.Duration // zero means uncapped
	TrustProxy bool
}

// delayFor returns how long the count-th request in a window waits.
func (cfg SlowDownConfig) delayFor(count int64) time.Duration {
	over := count - cfg.After
	if over <= 0 {
		return 0
	}
	d := time.Duration(over) * cfg.Delay
	if cfg.MaxDelay > 0 && d > cfg.MaxDelay {
		d = cfg.MaxDelay
	}
	return d
}

// SlowDown delays each request past the After threshold by an increasing
// amount. The wait ends early if the client goes away.
func SlowDown(cfg SlowDownConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := GetClientIP(r, cfg.TrustProxy)
			hit, err := cfg.Store.Hit(r.Context(), ip)
			if err != nil {
				GetLogger(r.Context()).Error("slow down store failed", "error", err, "client", ip)
				next.ServeHTTP(w, r)
				return
			}

			if d := cfg.delayFor(hit.Count); d > 0 {
				if err := sleepCtx(r.Context(), d); err != nil {
					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
