package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/quizo/cliparse"
	"github.com/danielhkuo/quizo/db"
	"github.com/danielhkuo/quizo/router"
)

// newLogger builds the process logger from the configured level and format.
func newLogger(w io.Writer, level, format string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if format == "text" {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

func main() {
	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(newLogger(os.Stderr, cfg.LogLevel, cfg.LogFormat))

	// signal.NotifyContext cancels ctx on the first Ctrl-C or SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to the database
	openCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	gw, err := db.Open(openCtx, db.Options{
		Dialect:         cfg.DatabaseType,
		URL:             cfg.DatabaseURL,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
	})
	cancel()
	if err != nil {
		slog.Error("database connection failed", "error", err, "url", cfg.RedactedDatabaseURL())
		os.Exit(1)
	}
	defer gw.Close()
	slog.Info("Database connected", "type", cfg.DatabaseType, "url", cfg.RedactedDatabaseURL())

	// Create schema (tables)
	if err := gw.CreateSchema(ctx); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready")

	// Rate-limit counters
	done := make(chan struct{})
	defer close(done)
	counters, err := router.NewCounterStores(ctx, cfg, done)
	if err != nil {
		slog.Error("rate-limit store failed", "error", err)
		os.Exit(1)
	}
	defer counters.Close()

	slog.Info("Request limits",
		"rate_limit", humanize.Comma(int64(cfg.RateLimitMax))+" per "+cfg.RateLimitWindow.String(),
		"slow_down_after", humanize.Comma(int64(cfg.SlowDownAfter)),
		"max_body", humanize.IBytes(uint64(cfg.MaxBodyBytes)),
		"shared_counters", cfg.RedisURL != "",
	)

	// Create router
	handler := router.NewRouter(router.Deps{
		Gateway:   gw,
		Config:    cfg,
		RateStore: counters.Rate,
		SlowStore: counters.Slow,
	})

	// Create server
	server := &http.Server{
		Handler:           handler,
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("Listening", "port", cfg.Port)
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server closed", "error", err)
		}
		return
	case <-ctx.Done():
	}

	// Drain in-flight requests before the pool closes
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
		server.Close()
	}
	slog.Info("Server closed")
}
