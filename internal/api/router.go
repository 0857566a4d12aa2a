// Package api serves the quiz over HTTP.
package api

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/abhisek/lsatarcade/internal/drill"
	"github.com/abhisek/lsatarcade/internal/llm"
	"github.com/abhisek/lsatarcade/internal/tutor"
)

// DrillGenerator produces practice questions.
type DrillGenerator interface {
	Generate(ctx context.Context, topic string) drill.Drill
}

// Tutor answers tutoring conversations.
type Tutor interface {
	Reply(ctx context.Context, history []tutor.Message) string
}

// Config holds HTTP server settings.
type Config struct {
	Addr         string
	CORSOrigins  []string
	Timeout      time.Duration
	MaxBodyBytes int64
}

// DefaultConfig returns the server defaults.
func DefaultConfig() Config {
	return Config{
		Addr:         ":8080",
		CORSOrigins:  []string{"*"},
		Timeout:      30 * time.Second,
		MaxBodyBytes: 1 << 20,
	}
}

// ConfigFromEnv reads LSAT_HTTP_ADDR and LSAT_CORS_ORIGINS over the defaults.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	if a := strings.TrimSpace(os.Getenv("LSAT_HTTP_ADDR")); a != "" {
		cfg.Addr = a
	}
	if o := os.Getenv("LSAT_CORS_ORIGINS"); strings.TrimSpace(o) != "" {
		cfg.CORSOrigins = splitList(o)
	}
	return cfg
}

// Deps are the services the handlers call.
type Deps struct {
	Drills DrillGenerator
	Tutor  Tutor
	Mode   llm.Mode
	Logger *slog.Logger
}

// NewRouter builds the HTTP handler tree.
func NewRouter(cfg Config, deps Deps) http.Handler {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, requestLogger(logger), jsonRecoverer(logger))
	if cfg.Timeout > 0 {
		r.Use(middleware.Timeout(cfg.Timeout))
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		ExposedHeaders: []string{"Content-Length"},
		MaxAge:         300,
	}))

	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = DefaultConfig().MaxBodyBytes
	}

	r.Post("/api/lsat", LSATHandler(deps.Drills, deps.Tutor, maxBody))
	r.Post("/api/tutor", TutorHandler(deps.Tutor, maxBody))

	health := HealthHandler(deps.Mode)
	r.Get("/healthz", health)
	r.Get("/readyz", health)

	return r
}

// splitList trims every comma-separated entry and removes empties.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
