// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ratelimit

import (
	"context"
	"time"
)

// Hit is the state of a key's window after counting one request.
type Hit struct {
	Count   int64
	ResetAt time.Time
}

// Store counts requests per key over a fixed window. Hit must increment
// and read atomically; the first hit of a key opens a new window.
type Store interface {
	Hit(ctx context.Context, key string) (Hit, error)
}
