// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/danielhkuo/quizo/cliparse"
	"github.com/danielhkuo/quizo/db"
	"github.com/danielhkuo/quizo/models"
)

// PostgresURLEnv names the variable that switches tests from in-memory
// SQLite to a real PostgreSQL database.
const PostgresURLEnv = "QUIZO_TEST_POSTGRES_URL"

// SetupTestDB creates a fresh test database with the full schema.
// By default it is an in-memory SQLite database; set QUIZO_TEST_POSTGRES_URL
// to run against PostgreSQL instead (tables are dropped first).
func SetupTestDB(t *testing.T) *db.Gateway {
	t.Helper()
	ctx := context.Background()

	opts := db.Options{
		Dialect: db.DialectSQLite,
		URL:     ":memory:",
		// every connection to :memory: is a separate database
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	}
	if url := os.Getenv(PostgresURLEnv); url != "" {
		opts = db.Options{Dialect: db.DialectPostgres, URL: url}
	}

	gw, err := db.Open(ctx, opts)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { gw.Close() })

	if gw.Dialect() == db.DialectPostgres {
		_, err = gw.Exec(ctx, `
			DROP TABLE IF EXISTS quizzes CASCADE;
			DROP TABLE IF EXISTS users CASCADE;
		`)
		if err != nil {
			t.Fatalf("Failed to clean database: %v", err)
		}
	}

	if err := gw.CreateSchema(ctx); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return gw
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	cfg := cliparse.Defaults()
	cfg.Port = 5000
	cfg.DatabaseURL = ":memory:"
	cfg.DatabaseType = cliparse.DatabaseSQLite
	cfg.AllowedOrigins = []string{"https://quizo.test"}
	cfg.LogFormat = "text"
	// keep slow-down delays out of the way unless a test asks for them
	cfg.SlowDownDelay = time.Millisecond
	return cfg
}

// CreateTestUser inserts a user and returns its ID
func CreateTestUser(t *testing.T, gw *db.Gateway, username, password string) int64 {
	t.Helper()

	var id int64
	err := gw.QueryRow(context.Background(), `
		INSERT INTO users (username, password)
		VALUES ($1, $2)
		RETURNING id
	`, []any{username, password}, &id)
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return id
}

// CreateTestUserWithID inserts a user with a fixed ID
func CreateTestUserWithID(t *testing.T, gw *db.Gateway, id int64, username, password string) {
	t.Helper()

	_, err := gw.Exec(context.Background(), `
		INSERT INTO users (id, username, password)
		VALUES ($1, $2, $3)
	`, id, username, password)
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
}

// CreateTestQuiz inserts a quiz directly and returns the stored record
func CreateTestQuiz(t *testing.T, gw *db.Gateway, title, description string, teacherID int64) models.Quiz {
	t.Helper()

	quiz := models.Quiz{Title: title, Description: description, TeacherID: teacherID}
	var createdAt db.Timestamp
	err := gw.QueryRow(context.Background(), `
		INSERT INTO quizzes (title, description, teacher_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, []any{title, description, teacherID}, &quiz.ID, &createdAt)
	if err != nil {
		t.Fatalf("Failed to create test quiz: %v", err)
	}
	quiz.CreatedAt = createdAt.Time

	return quiz
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		var jsonBody []byte
		if raw, ok := body.(string); ok {
			jsonBody = []byte(raw)
		} else {
			jsonBody, _ = json.Marshal(body)
		}
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}

// AssertMessage decodes a {"message": ...} body and compares the message
func AssertMessage(t *testing.T, w *httptest.ResponseRecorder, expected string) {
	t.Helper()
	var resp models.ErrorResponse
	AssertJSON(t, w, &resp)
	if resp.Message != expected {
		t.Errorf("Expected message %q, got %q", expected, resp.Message)
	}
}
