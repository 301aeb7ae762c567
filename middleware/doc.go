// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides the HTTP middleware chain and JSON helpers.

# Chain

The router installs the stages in this order; each can end the request:

	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(middleware.DefaultCORSConfig(origins)))
	r.Use(middleware.SecurityHeaders(middleware.DefaultHeaders()))
	r.Use(middleware.ParameterPollution(maxBody))
	r.Use(middleware.RateLimit(rlCfg))
	r.Use(middleware.SlowDown(sdCfg))
	r.Use(middleware.JSONBody(maxBody))

Recoverer answers any panic with a 500 carrying the panic's description.
RequestID stores a request-scoped slog.Logger, read back with GetLogger.

# Request Logging

Wrap route handlers with request logging:

	r.Post("/api/auth/login", middleware.WithLogging(authHandler.Login))

Logs request start (method, path, remote) and completion (status, duration_ms).

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

# Client IP Extraction

GetClientIP uses RemoteAddr unless the service runs behind a trusted proxy,
in which case X-Forwarded-For and X-Real-IP are honored. The address keys
the rate limiter.
*/
package middleware
