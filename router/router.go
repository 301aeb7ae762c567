// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/danielhkuo/quizo/auth"
	"github.com/danielhkuo/quizo/cliparse"
	"github.com/danielhkuo/quizo/db"
	"github.com/danielhkuo/quizo/handlers"
	"github.com/danielhkuo/quizo/middleware"
	"github.com/danielhkuo/quizo/ratelimit"
	"github.com/danielhkuo/quizo/store"
)

// Deps carries what the router needs from main. Nil counter stores fall
// back to fresh in-memory stores.
type Deps struct {
	Gateway   *db.Gateway
	Config    cliparse.Config
	RateStore ratelimit.Store
	SlowStore ratelimit.Store
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	if deps.RateStore == nil {
		deps.RateStore = ratelimit.NewMemoryStore(cfg.RateLimitWindow)
	}
	if deps.SlowStore == nil {
		deps.SlowStore = ratelimit.NewMemoryStore(cfg.RateLimitWindow)
	}

	r := chi.NewRouter()

	// Order matters: each stage may end the request
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(middleware.DefaultCORSConfig(cfg.AllowedOrigins)))
	r.Use(middleware.SecurityHeaders(middleware.DefaultHeaders()))
	r.Use(middleware.ParameterPollution(cfg.MaxBodyBytes))
	r.Use(middleware.RateLimit(middleware.RateLimitConfig{
		Store:      deps.RateStore,
		Max:        int64(cfg.RateLimitMax),
		TrustProxy: cfg.TrustProxy,
	}))
	r.Use(middleware.SlowDown(middleware.SlowDownConfig{
		Store:      deps.SlowStore,
		After:      int64(cfg.SlowDownAfter),
		Delay:      cfg.SlowDownDelay,
		MaxDelay:   cfg.SlowDownMaxDelay,
		TrustProxy: cfg.TrustProxy,
	}))
	r.Use(middleware.JSONBody(cfg.MaxBodyBytes))

	// Unknown paths and unsupported methods look the same to clients
	r.NotFound(middleware.NotFound)
	r.MethodNotAllowed(middleware.NotFound)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(auth.NewVerifier(deps.Gateway))
	quizHandler := handlers.NewQuizHandler(store.NewQuizStore(deps.Gateway))

	r.Get("/api/health", handlers.Health)

	r.Post("/api/auth/login", middleware.WithLogging(authHandler.Login))

	r.Route("/api/quizzes", func(r chi.Router) {
		r.Post("/", middleware.WithLogging(quizHandler.CreateQuiz))
		r.Get("/", middleware.WithLogging(quizHandler.GetQuizzes))
		r.Get("/{id}", middleware.WithLogging(quizHandler.GetSingleQuiz))
		r.Put("/{id}", middleware.WithLogging(quizHandler.UpdateQuiz))
		r.Delete("/{id}", middleware.WithLogging(quizHandler.DeleteQuiz))
	})

	return r
}
