// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/danielhkuo/quizo/db"
	"github.com/danielhkuo/quizo/models"
)

var (
	ErrNotFound       = errors.New("quiz not found")
	ErrUnknownTeacher = errors.New("teacher does not exist")
)

const quizColumns = "id, title, description, teacher_id, created_at"

// QuizStore runs one parameterized statement per operation. Inputs are
// trusted: validation belongs to the caller.
type QuizStore struct {
	gw *db.Gateway
}

func NewQuizStore(gw *db.Gateway) *QuizStore {
	return &QuizStore{gw: gw}
}

// quizDest lists scan targets in quizColumns order.
func quizDest(q *models.Quiz, createdAt *db.Timestamp) []any {
	return []any{&q.ID, &q.Title, &q.Description, &q.TeacherID, createdAt}
}

func (s *QuizStore) queryOne(ctx context.Context, query string, args ...any) (models.Quiz, error) {
	var quiz models.Quiz
	var createdAt db.Timestamp
	if err := s.gw.QueryRow(ctx, query, args, quizDest(&quiz, &createdAt)...); err != nil {
		return models.Quiz{}, err
	}
	quiz.CreatedAt = createdAt.Time
	return quiz, nil
}

// Create inserts a quiz and returns it with the store-assigned id and
// created_at.
func (s *QuizStore) Create(ctx context.Context, title, description string, teacherID int64) (models.Quiz, error) {
	quiz, err := s.queryOne(ctx, `
		INSERT INTO quizzes (title, description, teacher_id)
		VALUES ($1, $2, $3)
		RETURNING `+quizColumns,
		title, description, teacherID)

	if errors.Is(err, db.ErrForeignKey) {
		return models.Quiz{}, fmt.Errorf("%w: %d", ErrUnknownTeacher, teacherID)
	}
	if err != nil {
		return models.Quiz{}, fmt.Errorf("failed to insert quiz: %w", err)
	}

	return quiz, nil
}

// ListByTeacher returns the teacher's quizzes newest first. A teacher with
// no quizzes gets an empty, non-nil slice.
func (s *QuizStore) ListByTeacher(ctx context.Context, teacherID int64) ([]models.Quiz, error) {
	quizzes := []models.Quiz{}

	err := s.gw.Query(ctx, `
		SELECT `+quizColumns+`
		FROM quizzes
		WHERE teacher_id = $1
		ORDER BY created_at DESC, id DESC
	`, []any{teacherID}, func(rows *sql.Rows) error {
		var quiz models.Quiz
		var createdAt db.Timestamp
		if err := rows.Scan(quizDest(&quiz, &createdAt)...); err != nil {
			return fmt.Errorf("failed to scan quiz: %w", err)
		}
		quiz.CreatedAt = createdAt.Time
		quizzes = append(quizzes, quiz)
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to list quizzes: %w", err)
	}

	return quizzes, nil
}

func (s *QuizStore) GetByID(ctx context.Context, id int64) (models.Quiz, error) {
	quiz, err := s.queryOne(ctx, `
		SELECT `+quizColumns+`
		FROM quizzes
		WHERE id = $1
		LIMIT 1
	`, id)

	if errors.Is(err, sql.ErrNoRows) {
		return models.Quiz{}, ErrNotFound
	}
	if err != nil {
		return models.Quiz{}, fmt.Errorf("failed to query quiz: %w", err)
	}

	return quiz, nil
}

// Update changes title and description only; teacher_id and created_at
// are never touched.
func (s *QuizStore) Update(ctx context.Context, id int64, title, description string) (models.Quiz, error) {
	quiz, err := s.queryOne(ctx, `
		UPDATE quizzes
		SET title = $1, description = $2
		WHERE id = $3
		RETURNING `+quizColumns,
		title, description, id)

	if errors.Is(err, sql.ErrNoRows) {
		return models.Quiz{}, ErrNotFound
	}
	if err != nil {
		return models.Quiz{}, fmt.Errorf("failed to update quiz: %w", err)
	}

	return quiz, nil
}

// Delete removes the quiz and reports whether a row existed.
func (s *QuizStore) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := s.gw.Exec(ctx, "DELETE FROM quizzes WHERE id = $1", id)
	if err != nil {
		return false, fmt.Errorf("failed to delete quiz: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to delete quiz: %w", err)
	}

	return n > 0, nil
}
