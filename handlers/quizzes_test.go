// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/quizo/db"
	"github.com/danielhkuo/quizo/models"
	"github.com/danielhkuo/quizo/store"
	"github.com/danielhkuo/quizo/testutil"
)

func setupQuizHandler(t *testing.T) (*QuizHandler, *db.Gateway) {
	t.Helper()
	gw := testutil.SetupTestDB(t)
	return NewQuizHandler(store.NewQuizStore(gw)), gw
}

func TestParseID(t *testing.T) {
	testCases := []struct {
		in string
		id int64
		ok bool
	}{
		{"7", 7, true},
		{" 42 ", 42, true},
		{"7.0", 7, true},
		{"0", 0, false},
		{"-3", 0, false},
		{"abc", 0, false},
		{"", 0, false},
		{"1.5", 0, false},
		{"NaN", 0, false},
		{"Inf", 0, false},
		{"1e400", 0, false},
		{"9223372036854775807", 9223372036854775807, true},
		{"9223372036854775808", 0, false},
		{"9223372036854775807.0", 0, false},
		{"9.223372036854775807e18", 0, false},
	}

	for _, tc := range testCases {
		id, ok := parseID(tc.in)
		if ok != tc.ok || (ok && id != tc.id) {
			t.Errorf("parseID(%q) = (%d, %v), expected (%d, %v)", tc.in, id, ok, tc.id, tc.ok)
		}
	}
}

func TestCreateQuiz(t *testing.T) {
	handler, gw := setupQuizHandler(t)
	teacherID := testutil.CreateTestUser(t, gw, "teacher", "pw")

	t.Run("valid request", func(t *testing.T) {
		body := map[string]interface{}{"title": "Algebra", "description": "Basics", "teacher_id": teacherID}
		w := httptest.NewRecorder()
		handler.CreateQuiz(w, testutil.MakeRequest("POST", "/api/quizzes", body, nil))

		testutil.AssertStatus(t, w, http.StatusCreated)
		var quiz models.Quiz
		testutil.AssertJSON(t, w, &quiz)
		if quiz.ID <= 0 {
			t.Errorf("Expected assigned ID, got %d", quiz.ID)
		}
		if quiz.Title != "Algebra" || quiz.Description != "Basics" || quiz.TeacherID != teacherID {
			t.Errorf("Unexpected quiz: %+v", quiz)
		}
		if quiz.CreatedAt.IsZero() {
			t.Error("Expected created_at to be set")
		}
	})

	t.Run("teacher_id as numeric string", func(t *testing.T) {
		body := fmt.Sprintf(`{"title":"Geometry","description":"Shapes","teacher_id":"%d"}`, teacherID)
		w := httptest.NewRecorder()
		handler.CreateQuiz(w, testutil.MakeRequest("POST", "/api/quizzes", body, nil))

		testutil.AssertStatus(t, w, http.StatusCreated)
	})

	invalid := []struct {
		name string
		body string
	}{
		{"missing title", fmt.Sprintf(`{"description":"d","teacher_id":%d}`, teacherID)},
		{"missing description", fmt.Sprintf(`{"title":"t","teacher_id":%d}`, teacherID)},
		{"missing teacher_id", `{"title":"t","description":"d"}`},
		{"zero teacher_id", `{"title":"t","description":"d","teacher_id":0}`},
		{"negative teacher_id", `{"title":"t","description":"d","teacher_id":-1}`},
		{"non-numeric teacher_id", `{"title":"t","description":"d","teacher_id":"abc"}`},
		{"fractional teacher_id", `{"title":"t","description":"d","teacher_id":1.5}`},
		{"empty body", ``},
	}
	for _, tc := range invalid {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			handler.CreateQuiz(w, testutil.MakeRequest("POST", "/api/quizzes", tc.body, nil))

			testutil.AssertStatus(t, w, http.StatusBadRequest)
			testutil.AssertMessage(t, w, "Title, description, and teacher_id are required.")
		})
	}

	t.Run("unknown teacher", func(t *testing.T) {
		body := map[string]interface{}{"title": "t", "description": "d", "teacher_id": 999}
		w := httptest.NewRecorder()
		handler.CreateQuiz(w, testutil.MakeRequest("POST", "/api/quizzes", body, nil))

		testutil.AssertStatus(t, w, http.StatusBadRequest)
		testutil.AssertMessage(t, w, "Teacher not found.")
	})
}

func TestGetQuizzes(t *testing.T) {
	handler, gw := setupQuizHandler(t)
	teacherID := testutil.CreateTestUser(t, gw, "teacher", "pw")
	otherID := testutil.CreateTestUser(t, gw, "other", "pw")

	testutil.CreateTestQuiz(t, gw, "First", "one", teacherID)
	testutil.CreateTestQuiz(t, gw, "Second", "two", teacherID)
	testutil.CreateTestQuiz(t, gw, "Elsewhere", "three", otherID)

	t.Run("lists teacher's quizzes newest first", func(t *testing.T) {
		w := httptest.NewRecorder()
		path := fmt.Sprintf("/api/quizzes?teacher_id=%d", teacherID)
		handler.GetQuizzes(w, testutil.MakeRequest("GET", path, nil, nil))

		testutil.AssertStatus(t, w, http.StatusOK)
		var quizzes []models.Quiz
		testutil.AssertJSON(t, w, &quizzes)
		if len(quizzes) != 2 {
			t.Fatalf("Expected 2 quizzes, got %d", len(quizzes))
		}
		if quizzes[0].Title != "Second" || quizzes[1].Title != "First" {
			t.Errorf("Expected newest first, got %q then %q", quizzes[0].Title, quizzes[1].Title)
		}
	})

	t.Run("teacher without quizzes gets empty array", func(t *testing.T) {
		lonely := testutil.CreateTestUser(t, gw, "lonely", "pw")
		w := httptest.NewRecorder()
		path := fmt.Sprintf("/api/quizzes?teacher_id=%d", lonely)
		handler.GetQuizzes(w, testutil.MakeRequest("GET", path, nil, nil))

		testutil.AssertStatus(t, w, http.StatusOK)
		if body := w.Body.String(); body != "[]\n" {
			t.Errorf("Expected empty JSON array, got %q", body)
		}
	})

	for _, query := range []string{"", "?teacher_id=", "?teacher_id=abc", "?teacher_id=0", "?teacher_id=9223372036854775808"} {
		t.Run("invalid query "+query, func(t *testing.T) {
			w := httptest.NewRecorder()
			handler.GetQuizzes(w, testutil.MakeRequest("GET", "/api/quizzes"+query, nil, nil))

			testutil.AssertStatus(t, w, http.StatusBadRequest)
			testutil.AssertMessage(t, w, "teacher_id is required.")
		})
	}
}

func TestGetSingleQuiz(t *testing.T) {
	handler, gw := setupQuizHandler(t)
	teacherID := testutil.CreateTestUser(t, gw, "teacher", "pw")
	quiz := testutil.CreateTestQuiz(t, gw, "Algebra", "Basics", teacherID)

	get := func(id string) *httptest.ResponseRecorder {
		req := testutil.MakeRequest("GET", "/api/quizzes/"+id, nil, nil)
		req.SetPathValue("id", id)
		w := httptest.NewRecorder()
		handler.GetSingleQuiz(w, req)
		return w
	}

	t.Run("found and repeatable", func(t *testing.T) {
		var first, second models.Quiz
		w := get(fmt.Sprint(quiz.ID))
		testutil.AssertStatus(t, w, http.StatusOK)
		testutil.AssertJSON(t, w, &first)

		w = get(fmt.Sprint(quiz.ID))
		testutil.AssertJSON(t, w, &second)

		if !first.CreatedAt.Equal(second.CreatedAt) || first.Title != second.Title || first.ID != second.ID {
			t.Errorf("Expected identical records, got %+v and %+v", first, second)
		}
		if first.ID != quiz.ID || first.TeacherID != teacherID {
			t.Errorf("Unexpected quiz: %+v", first)
		}
	})

	t.Run("not found", func(t *testing.T) {
		w := get("9999")
		testutil.AssertStatus(t, w, http.StatusNotFound)
		testutil.AssertMessage(t, w, "Quiz not found.")
	})

	for _, id := range []string{"abc", "0", "-1"} {
		t.Run("invalid id "+id, func(t *testing.T) {
			w := get(id)
			testutil.AssertStatus(t, w, http.StatusBadRequest)
			testutil.AssertMessage(t, w, "Invalid quiz ID.")
		})
	}
}

func TestUpdateQuiz(t *testing.T) {
	handler, gw := setupQuizHandler(t)
	teacherID := testutil.CreateTestUser(t, gw, "teacher", "pw")
	quiz := testutil.CreateTestQuiz(t, gw, "Algebra", "Basics", teacherID)

	put := func(id string, body interface{}) *httptest.ResponseRecorder {
		req := testutil.MakeRequest("PUT", "/api/quizzes/"+id, body, nil)
		req.SetPathValue("id", id)
		w := httptest.NewRecorder()
		handler.UpdateQuiz(w, req)
		return w
	}

	t.Run("updates title and description only", func(t *testing.T) {
		w := put(fmt.Sprint(quiz.ID), map[string]string{"title": "Algebra II", "description": "Harder"})

		testutil.AssertStatus(t, w, http.StatusOK)
		var updated models.Quiz
		testutil.AssertJSON(t, w, &updated)
		if updated.Title != "Algebra II" || updated.Description != "Harder" {
			t.Errorf("Expected new title and description, got %+v", updated)
		}
		if updated.TeacherID != teacherID {
			t.Errorf("Expected teacher_id %d preserved, got %d", teacherID, updated.TeacherID)
		}
		if !updated.CreatedAt.Equal(quiz.CreatedAt) {
			t.Errorf("Expected created_at %v preserved, got %v", quiz.CreatedAt, updated.CreatedAt)
		}
	})

	t.Run("not found", func(t *testing.T) {
		w := put("9999", map[string]string{"title": "t", "description": "d"})
		testutil.AssertStatus(t, w, http.StatusNotFound)
		testutil.AssertMessage(t, w, "Quiz not found.")
	})

	invalid := []struct {
		name string
		id   string
		body interface{}
	}{
		{"missing title", fmt.Sprint(quiz.ID), map[string]string{"description": "d"}},
		{"missing description", fmt.Sprint(quiz.ID), map[string]string{"title": "t"}},
		{"invalid id", "abc", map[string]string{"title": "t", "description": "d"}},
		{"zero id", "0", map[string]string{"title": "t", "description": "d"}},
	}
	for _, tc := range invalid {
		t.Run(tc.name, func(t *testing.T) {
			w := put(tc.id, tc.body)
			testutil.AssertStatus(t, w, http.StatusBadRequest)
			testutil.AssertMessage(t, w, "Quiz ID, title, and description are required.")
		})
	}
}

func TestDeleteQuiz(t *testing.T) {
	handler, gw := setupQuizHandler(t)
	teacherID := testutil.CreateTestUser(t, gw, "teacher", "pw")
	quiz := testutil.CreateTestQuiz(t, gw, "Algebra", "Basics", teacherID)

	del := func(id string) *httptest.ResponseRecorder {
		req := testutil.MakeRequest("DELETE", "/api/quizzes/"+id, nil, nil)
		req.SetPathValue("id", id)
		w := httptest.NewRecorder()
		handler.DeleteQuiz(w, req)
		return w
	}

	w := del(fmt.Sprint(quiz.ID))
	testutil.AssertStatus(t, w, http.StatusOK)
	testutil.AssertMessage(t, w, "Quiz deleted successfully.")

	// second delete is a not-found
	w = del(fmt.Sprint(quiz.ID))
	testutil.AssertStatus(t, w, http.StatusNotFound)
	testutil.AssertMessage(t, w, "Quiz not found.")

	w = del("9999")
	testutil.AssertStatus(t, w, http.StatusNotFound)

	w = del("abc")
	testutil.AssertStatus(t, w, http.StatusBadRequest)
	testutil.AssertMessage(t, w, "Invalid quiz ID.")
}

// failingRepo fails every call with err.
type failingRepo struct{ err error }

func (f failingRepo) Create(context.Context, string, string, int64) (models.Quiz, error) {
	return models.Quiz{}, f.err
}
func (f failingRepo) ListByTeacher(context.Context, int64) ([]models.Quiz, error) {
	return nil, f.err
}
func (f failingRepo) GetByID(context.Context, int64) (models.Quiz, error) {
	return models.Quiz{}, f.err
}
func (f failingRepo) Update(context.Context, int64, string, string) (models.Quiz, error) {
	return models.Quiz{}, f.err
}
func (f failingRepo) Delete(context.Context, int64) (bool, error) {
	return false, f.err
}

func TestQuizHandlers_InternalError(t *testing.T) {
	errs := map[string]error{
		"store unavailable": fmt.Errorf("%w: connection refused", db.ErrStoreUnavailable),
		"unexpected":        errors.New("disk on fire"),
	}

	for name, err := range errs {
		handler := NewQuizHandler(failingRepo{err: err})

		calls := []struct {
			name string
			req  *http.Request
			fn   http.HandlerFunc
		}{
			{"create", testutil.MakeRequest("POST", "/api/quizzes",
				map[string]interface{}{"title": "t", "description": "d", "teacher_id": 1}, nil), handler.CreateQuiz},
			{"list", testutil.MakeRequest("GET", "/api/quizzes?teacher_id=1", nil, nil), handler.GetQuizzes},
			{"get", testutil.MakeRequest("GET", "/api/quizzes/1", nil, nil), handler.GetSingleQuiz},
			{"update", testutil.MakeRequest("PUT", "/api/quizzes/1",
				map[string]string{"title": "t", "description": "d"}, nil), handler.UpdateQuiz},
			{"delete", testutil.MakeRequest("DELETE", "/api/quizzes/1", nil, nil), handler.DeleteQuiz},
		}

		for _, c := range calls {
			t.Run(name+"/"+c.name, func(t *testing.T) {
				c.req.SetPathValue("id", "1")
				w := httptest.NewRecorder()
				c.fn(w, c.req)

				testutil.AssertStatus(t, w, http.StatusInternalServerError)
				testutil.AssertMessage(t, w, "Internal server error.")
			})
		}
	}
}

func TestHealth(t *testing.T) {
	w := httptest.NewRecorder()
	Health(w, testutil.MakeRequest("GET", "/api/health", nil, nil))

	testutil.AssertStatus(t, w, http.StatusOK)
	var resp models.HealthResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Status != "ok" {
		t.Errorf("Expected status 'ok', got %q", resp.Status)
	}
}
