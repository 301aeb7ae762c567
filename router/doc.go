// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Quizo API.

# Route Registration

NewRouter builds a chi router with the middleware chain and all endpoints:

	handler := router.NewRouter(router.Deps{Gateway: gw, Config: cfg})

# Endpoints

	GET    /api/health           - Liveness probe
	POST   /api/auth/login       - Check credentials
	POST   /api/quizzes          - Create quiz
	GET    /api/quizzes?teacher_id=N - List a teacher's quizzes
	GET    /api/quizzes/{id}     - Get quiz
	PUT    /api/quizzes/{id}     - Update title and description
	DELETE /api/quizzes/{id}     - Delete quiz

Anything else, including a known path with the wrong method, gets
404 {"message":"Resource not found"}.

# Counter Stores

NewCounterStores returns in-memory counters by default, or Redis-backed
ones when REDIS_URL is set so every replica enforces the same limits.
*/
package router
