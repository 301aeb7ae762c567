// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/danielhkuo/quizo/db"
	"github.com/danielhkuo/quizo/models"
)

// ErrInvalidCredentials is returned when no user matches the supplied
// username and password. It deliberately does not say which one was wrong.
var ErrInvalidCredentials = errors.New("invalid credentials")

type Verifier struct {
	gw *db.Gateway
}

func NewVerifier(gw *db.Gateway) *Verifier {
	return &Verifier{gw: gw}
}

// Verify looks up a user whose stored username and password equal the
// supplied values byte for byte.
//
// Passwords are stored and compared in plaintext. This is a known weakness
// kept for compatibility with existing user rows; see DESIGN.md.
//
// username is unique, so at most one row should match. If the constraint
// was ever violated the first row in store order is returned.
func (v *Verifier) Verify(ctx context.Context, username, password string) (models.User, error) {
	var user models.User
	err := v.gw.QueryRow(ctx, `
		SELECT id, username, password
		FROM users
		WHERE username = $1 AND password = $2
		LIMIT 1
	`, []any{username, password}, &user.ID, &user.Username, &user.Password)

	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrInvalidCredentials
	}
	if err != nil {
		return models.User{}, fmt.Errorf("failed to query user: %w", err)
	}

	return user, nil
}
