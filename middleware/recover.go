// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/danielhkuo/quizo/models"
)

// Recoverer is the terminal error handler. It turns a panic anywhere below
// it into a logged 500 carrying the failure's description. A panic after
// the response has started is only logged.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w}
		defer func() {
			p := recover()
			if p == nil {
				return
			}
			// net/http uses this to abort a response silently
			if p == http.ErrAbortHandler {
				panic(p)
			}

			err, ok := p.(error)
			if !ok {
				err = fmt.Errorf("%v", p)
			}

			GetLogger(r.Context()).Error("unhandled failure",
				"method", r.Method,
				"path", r.URL.Path,
				"error", err,
				"headers_sent", rec.status != 0,
				"stack", string(debug.Stack()),
			)

			// the client already has a status line; only the log remains
			if rec.status != 0 {
				return
			}

			JSONResponse(w, http.StatusInternalServerError, models.ErrorResponse{
				Message: "An unexpected error occurred on the server.",
				Error:   err.Error(),
			})
		}()

		next.ServeHTTP(rec, r)
	})
}
