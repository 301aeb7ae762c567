package models

import (
	"encoding/json"
	"time"
)

// Request types

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TeacherID accepts a JSON number or a numeric string; the handler decides
// whether the value is a usable identifier.
type CreateQuizRequest struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	TeacherID   json.Number `json:"teacher_id"`
}

type UpdateQuizRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Response types

type MessageResponse struct {
	Message string `json:"message"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

// Domain types

type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Password string `json:"-"` // Never expose in JSON
}

type Quiz struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	TeacherID   int64     `json:"teacher_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// Error response

// Error carries the failure description and is only filled in by the
// terminal panic handler.
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}
