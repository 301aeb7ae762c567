// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Quizo API.

# Handler Types

  - AuthHandler: credential check for POST /api/auth/login
  - QuizHandler: quiz CRUD under /api/quizzes
  - Health: liveness probe

Handlers depend on small interfaces rather than the database directly:

	authHandler := handlers.NewAuthHandler(auth.NewVerifier(gw))
	quizHandler := handlers.NewQuizHandler(store.NewQuizStore(gw))

# Validation

Required fields are checked before anything reaches the store. Numeric ids
(path, query, or body, as a JSON number or numeric string) must be positive
integers; anything else is a 400 with the endpoint's fixed message.

# Error Mapping

	auth.ErrInvalidCredentials → 401 "Invalid credentials."
	store.ErrNotFound          → 404 "Quiz not found."
	store.ErrUnknownTeacher    → 400 "Teacher not found."
	anything else              → 500 "Internal server error."

Causes of 500s are logged through the request logger, with
store_unavailable=true when the database could not be reached.

# Authorization

No session or token is issued at login, and quiz endpoints trust the
caller-supplied teacher_id. Binding callers to teachers is left to a
future auth layer.
*/
package handlers
