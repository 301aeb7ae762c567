// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"bytes"
	"errors"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strconv"
)

// collapse keeps only the last value of every repeated key.
// Reports whether anything changed.
func collapse(values url.Values) bool {
	changed := false
	for key, vs := range values {
		if len(vs) > 1 {
			values[key] = vs[len(vs)-1:]
			changed = true
		}
	}
	return changed
}

func isFormBody(r *http.Request) bool {
	switch r.Method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
	default:
		return false
	}
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mt == "application/x-www-form-urlencoded"
}

// ParameterPollution collapses repeated query-string keys, and repeated keys
// in urlencoded form bodies, to their last value.
func ParameterPollution(maxBodyBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			query := r.URL.Query()
			if collapse(query) {
				r.URL.RawQuery = query.Encode()
			}

			if isFormBody(r) && r.Body != nil {
				raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
				if err != nil {
					var tooLarge *http.MaxBytesError
					if errors.As(err, &tooLarge) {
						ErrorResponse(w, http.StatusRequestEntityTooLarge, "Request body too large")
						return
					}
					ErrorResponse(w, http.StatusBadRequest, "Malformed form body")
					return
				}
				r.Body.Close()

				if form, err := url.ParseQuery(string(raw)); err == nil && collapse(form) {
					raw = []byte(form.Encode())
				}
				r.Body = io.NopCloser(bytes.NewReader(raw))
				r.ContentLength = int64(len(raw))
				r.Header.Set("Content-Length", strconv.Itoa(len(raw)))
			}

			next.ServeHTTP(w, r)
		})
	}
}
