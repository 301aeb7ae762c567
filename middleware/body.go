// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"
)

func isJSON(contentType string) bool {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mt == "application/json" || strings.HasSuffix(mt, "+json")
}

// JSONBody bounds and validates JSON request bodies before they reach a
// handler. Oversized bodies get a 413 and malformed ones a 400.
func JSONBody(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodPost, http.MethodPut, http.MethodPatch:
			default:
				next.ServeHTTP(w, r)
				return
			}
			if r.Body == nil || !isJSON(r.Header.Get("Content-Type")) {
				next.ServeHTTP(w, r)
				return
			}

			raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBytes))
			if err != nil {
				var tooLarge *http.MaxBytesError
				if errors.As(err, &tooLarge) {
					ErrorResponse(w, http.StatusRequestEntityTooLarge, "Request body too large")
					return
				}
				ErrorResponse(w, http.StatusBadRequest, "Malformed JSON body")
				return
			}
			r.Body.Close()

			if len(bytes.TrimSpace(raw)) > 0 && !json.Valid(raw) {
				GetLogger(r.Context()).Warn("malformed JSON body", "path", r.URL.Path)
				ErrorResponse(w, http.StatusBadRequest, "Malformed JSON body")
				return
			}

			r.Body = io.NopCloser(bytes.NewReader(raw))
			next.ServeHTTP(w, r)
		})
	}
}
