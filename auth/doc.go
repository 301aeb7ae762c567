// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth verifies teacher credentials against the users table.

# Verification

	v := auth.NewVerifier(gw)
	user, err := v.Verify(ctx, "ada", "secret")
	if errors.Is(err, auth.ErrInvalidCredentials) {
		// 401
	}

A wrong username and a wrong password produce the same error, so callers
cannot reveal whether a username exists.

# Known Gaps

Passwords are compared in plaintext by the store. Nothing is issued on
success: there is no session or token, so later requests are not bound to the
verified user.
*/
package auth
