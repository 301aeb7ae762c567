// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Sources

Values are layered, later sources winning:

 1. Defaults()
 2. YAML file given by -config or CONFIG_FILE
 3. Environment variables, seeded from a .env file (-env, default ".env")
 4. CLI flags

A missing .env file is not an error. Variables already present in the
environment are never overwritten by the .env file.

# CLI Flags

	-p            Server port
	-d            Database URL
	-t            Database type (postgres or sqlite)
	-config       YAML config file
	-env          .env file
	-origins      Comma-separated CORS allow-list
	-redis        Redis URL for shared rate-limit counters
	-trust-proxy  Use X-Forwarded-For for client addresses

# Environment Variables

	PORT, DATABASE_URL, DATABASE_TYPE, CORS_ALLOWED_ORIGINS, TRUST_PROXY,
	REDIS_URL, RATE_LIMIT_MAX, RATE_LIMIT_WINDOW, SLOW_DOWN_AFTER,
	SLOW_DOWN_DELAY, SLOW_DOWN_MAX_DELAY, MAX_BODY_BYTES, DB_MAX_OPEN_CONNS,
	DB_MAX_IDLE_CONNS, DB_CONN_MAX_LIFETIME, SHUTDOWN_TIMEOUT, LOG_LEVEL,
	LOG_FORMAT

Durations use time.ParseDuration syntax ("15m", "100ms").

# Validation

ParseFlags returns an error if DATABASE_URL is missing, the database type is
neither postgres nor sqlite, or any limit is out of range.
*/
package cliparse
