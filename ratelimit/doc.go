// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package ratelimit provides fixed-window request counters keyed by client
// address. MemoryStore serves a single process; RedisStore shares counters
// between replicas through an INCR/PEXPIRE script.
package ratelimit
