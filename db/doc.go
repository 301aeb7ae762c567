// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db is the persistence gateway: it owns the connection pool, creates
the schema, and classifies driver errors.

# Opening the Pool

	gw, err := db.Open(ctx, db.Options{
		Dialect: db.DialectPostgres,
		URL:     cfg.DatabaseURL,
	})
	defer gw.Close()

Two dialects are supported: PostgreSQL through lib/pq and SQLite through
modernc.org/sqlite. SQLite connections get foreign_keys, busy_timeout and
WAL pragmas through the DSN so every pooled connection carries them.

An unreachable store at Open time fails with ErrStoreUnavailable.

# Schema Creation

	if err := gw.CreateSchema(ctx); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - users: id, username (unique), password
  - quizzes: id, title, description, teacher_id, created_at

	users 1──* quizzes (ON DELETE CASCADE)

# Statements

Query, QueryRow and Exec take $N placeholders only. Query closes its rows,
returning the borrowed connection, on every exit path. Nothing is retried.

# Errors

Classify maps driver failures onto two sentinels:

  - ErrStoreUnavailable: connection failures, pq class 08, SQLite CANTOPEN/BUSY
  - ErrForeignKey: pq 23503, SQLite CONSTRAINT_FOREIGNKEY

sql.ErrNoRows and any other error pass through unchanged.
*/
package db
