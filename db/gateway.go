// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Dialects match the database/sql driver names registered by lib/pq and
// modernc.org/sqlite.
const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)

// sqlitePragmas are applied to every pooled connection through the DSN.
var sqlitePragmas = []string{
	"foreign_keys(1)",
	"busy_timeout(10000)",
	"journal_mode(WAL)",
}

type Options struct {
	Dialect         string
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Gateway owns the connection pool. Every statement borrows a connection
// for its own duration only.
type Gateway struct {
	pool    *sql.DB
	dialect string
}

// Open creates the pool and verifies the store is reachable.
func Open(ctx context.Context, opts Options) (*Gateway, error) {
	dsn := opts.URL
	switch opts.Dialect {
	case DialectPostgres:
	case DialectSQLite:
		dsn = withPragmas(dsn)
	default:
		return nil, fmt.Errorf("unsupported database dialect %q", opts.Dialect)
	}

	pool, err := sql.Open(opts.Dialect, dsn)
	if err != nil {
		return nil, fmt.Errorf("database open failed: %w", err)
	}

	// Zero keeps the database/sql default
	if opts.MaxOpenConns > 0 {
		pool.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if opts.MaxIdleConns > 0 {
		pool.SetMaxIdleConns(opts.MaxIdleConns)
	}
	if opts.ConnMaxLifetime > 0 {
		pool.SetConnMaxLifetime(opts.ConnMaxLifetime)
	}

	if err := pool.PingContext(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	return &Gateway{pool: pool, dialect: opts.Dialect}, nil
}

func withPragmas(dsn string) string {
	params := make([]string, 0, len(sqlitePragmas))
	for _, p := range sqlitePragmas {
		params = append(params, "_pragma="+p)
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + strings.Join(params, "&")
}

func (g *Gateway) Dialect() string { return g.dialect }

// DB exposes the pool for bootstrap and test fixtures.
func (g *Gateway) DB() *sql.DB { return g.pool }

func (g *Gateway) Ping(ctx context.Context) error {
	return Classify(g.pool.PingContext(ctx))
}

func (g *Gateway) Close() error {
	return g.pool.Close()
}

// Query runs a statement and hands each row to scan. The rows, and with
// them the borrowed connection, are released on every return path.
func (g *Gateway) Query(ctx context.Context, query string, args []any, scan func(*sql.Rows) error) error {
	rows, err := g.pool.QueryContext(ctx, query, args...)
	if err != nil {
		return Classify(err)
	}
	defer rows.Close()

	for rows.Next() {
		if err := scan(rows); err != nil {
			return err
		}
	}
	return Classify(rows.Err())
}

// QueryRow runs a statement expected to return at most one row and scans
// it into dest. Returns sql.ErrNoRows when nothing matched.
func (g *Gateway) QueryRow(ctx context.Context, query string, args []any, dest ...any) error {
	return Classify(g.pool.QueryRowContext(ctx, query, args...).Scan(dest...))
}

func (g *Gateway) Exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	res, err := g.pool.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, Classify(err)
	}
	return res, nil
}
