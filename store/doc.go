// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store is the quiz repository.

	quizzes := store.NewQuizStore(gw)
	quiz, err := quizzes.Create(ctx, "Algebra", "Basics", teacherID)

Each operation is a single statement against the quizzes table, so no
transactions are needed:

  - Create: INSERT ... RETURNING
  - ListByTeacher: newest first, empty slice when none
  - GetByID: ErrNotFound when absent
  - Update: title and description only, ErrNotFound when absent
  - Delete: reports whether a row was removed

Create returns ErrUnknownTeacher when teacher_id does not reference a user.
Store failures wrap db.ErrStoreUnavailable.
*/
package store
