// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Quizo API server.

Quizo is a quiz-management backend: teachers log in and create, list,
update, and delete quizzes.

# Starting the Server

The server reads configuration from a YAML file, the environment (a .env
file is loaded if present), and CLI flags, in increasing priority:

	DATABASE_URL=postgres://... go run .

Or with flags:

	go run . -p 5000 -d "postgres://..." -origins https://quizo-frontend.vercel.app

For local development SQLite works too:

	go run . -t sqlite -d quizo.db

# Configuration

Required settings:

  - DATABASE_URL (-d): connection string or SQLite file path

Optional settings:

  - PORT (-p): server port (default: 5000)
  - DATABASE_TYPE (-t): postgres or sqlite (default: postgres)
  - ALLOWED_ORIGINS (-origins): comma-separated CORS allow-list
  - REDIS_URL (-redis): share rate-limit counters across replicas
  - TRUST_PROXY (-trust-proxy): key rate limits on X-Forwarded-For
  - CONFIG_FILE (-config): YAML file with any of the above
  - LOG_LEVEL, LOG_FORMAT: slog level and json or text output

# Architecture

  - handlers: HTTP request handlers (login, quizzes, health)
  - router: chi routes and the middleware chain
  - middleware: CORS, security headers, rate limiting, body checks, logging
  - ratelimit: per-client counters in memory or Redis
  - store: quiz repository
  - auth: credential verification
  - db: connection pool, schema, driver error classification
  - models: request/response types
  - cliparse: configuration parsing

See package documentation for each component.
*/
package main
