// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/danielhkuo/quizo/db"
	"github.com/danielhkuo/quizo/middleware"
	"github.com/danielhkuo/quizo/models"
	"github.com/danielhkuo/quizo/store"
)

// QuizRepository is satisfied by *store.QuizStore.
type QuizRepository interface {
	Create(ctx context.Context, title, description string, teacherID int64) (models.Quiz, error)
	ListByTeacher(ctx context.Context, teacherID int64) ([]models.Quiz, error)
	GetByID(ctx context.Context, id int64) (models.Quiz, error)
	Update(ctx context.Context, id int64, title, description string) (models.Quiz, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type QuizHandler struct {
	quizzes QuizRepository
}

func NewQuizHandler(quizzes QuizRepository) *QuizHandler {
	return &QuizHandler{quizzes: quizzes}
}

// parseID accepts a positive integer, allowing integral decimal forms
// such as "7.0". Anything else, including values past int64, is rejected.
// float64(math.MaxInt64) rounds up to 2^63, hence >=.
func parseID(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if id, err := strconv.ParseInt(s, 10, 64); err == nil {
		return id, id > 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) || f <= 0 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

// internalError logs the cause and answers with the generic 500.
func internalError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	middleware.GetLogger(r.Context()).Error(msg,
		"error", err,
		"store_unavailable", errors.Is(err, db.ErrStoreUnavailable),
	)
	middleware.ErrorResponse(w, http.StatusInternalServerError, "Internal server error.")
}

// CreateQuiz handles POST /api/quizzes
func (h *QuizHandler) CreateQuiz(w http.ResponseWriter, r *http.Request) {
	const required = "Title, description, and teacher_id are required."

	var req models.CreateQuizRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, required)
		return
	}
	teacherID, ok := parseID(req.TeacherID.String())
	if req.Title == "" || req.Description == "" || !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, required)
		return
	}

	quiz, err := h.quizzes.Create(r.Context(), req.Title, req.Description, teacherID)
	if errors.Is(err, store.ErrUnknownTeacher) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Teacher not found.")
		return
	}
	if err != nil {
		internalError(w, r, "failed to create quiz", err)
		return
	}

	middleware.GetLogger(r.Context()).Info("quiz created", "quiz_id", quiz.ID, "teacher_id", teacherID)
	middleware.JSONResponse(w, http.StatusCreated, quiz)
}

// GetQuizzes handles GET /api/quizzes?teacher_id=N
func (h *QuizHandler) GetQuizzes(w http.ResponseWriter, r *http.Request) {
	teacherID, ok := parseID(r.URL.Query().Get("teacher_id"))
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "teacher_id is required.")
		return
	}

	quizzes, err := h.quizzes.ListByTeacher(r.Context(), teacherID)
	if err != nil {
		internalError(w, r, "failed to list quizzes", err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, quizzes)
}

// GetSingleQuiz handles GET /api/quizzes/{id}
func (h *QuizHandler) GetSingleQuiz(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r.PathValue("id"))
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid quiz ID.")
		return
	}

	quiz, err := h.quizzes.GetByID(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Quiz not found.")
		return
	}
	if err != nil {
		internalError(w, r, "failed to get quiz", err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, quiz)
}

// UpdateQuiz handles PUT /api/quizzes/{id}
func (h *QuizHandler) UpdateQuiz(w http.ResponseWriter, r *http.Request) {
	const required = "Quiz ID, title, and description are required."

	id, ok := parseID(r.PathValue("id"))
	var req models.UpdateQuizRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil || !ok || req.Title == "" || req.Description == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, required)
		return
	}

	quiz, err := h.quizzes.Update(r.Context(), id, req.Title, req.Description)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Quiz not found.")
		return
	}
	if err != nil {
		internalError(w, r, "failed to update quiz", err)
		return
	}

	middleware.GetLogger(r.Context()).Info("quiz updated", "quiz_id", id)
	middleware.JSONResponse(w, http.StatusOK, quiz)
}

// DeleteQuiz handles DELETE /api/quizzes/{id}
func (h *QuizHandler) DeleteQuiz(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r.PathValue("id"))
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid quiz ID.")
		return
	}

	deleted, err := h.quizzes.Delete(r.Context(), id)
	if err != nil {
		internalError(w, r, "failed to delete quiz", err)
		return
	}
	if !deleted {
		middleware.ErrorResponse(w, http.StatusNotFound, "Quiz not found.")
		return
	}

	middleware.GetLogger(r.Context()).Info("quiz deleted", "quiz_id", id)
	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Quiz deleted successfully."})
}
