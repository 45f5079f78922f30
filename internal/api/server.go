// Package api provides the HTTP server exposing the progress engine
// to UI and onboarding callers.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lingua-network/lingua/internal/app/progress"
	"github.com/lingua-network/lingua/internal/health"
)

// Server is the Lingua HTTP API server.
type Server struct {
	engine         *progress.Engine
	recorder       *progress.Recorder
	health         *health.Checker
	challenges     *progress.ChallengeService
	notifications  *progress.NotificationService
	metricsEnabled bool
}

// NewServer creates a new API server.
func NewServer(engine *progress.Engine, recorder *progress.Recorder, checker *health.Checker) *Server {
	return &Server{engine: engine, recorder: recorder, health: checker}
}

// EnableMetrics enables the /metrics Prometheus endpoint.
func (s *Server) EnableMetrics() { s.metricsEnabled = true }

// SetChallenges sets the challenge service (nil disables the routes).
func (s *Server) SetChallenges(c *progress.ChallengeService) { s.challenges = c }

// SetNotifications sets the notification service (nil disables the routes).
func (s *Server) SetNotifications(n *progress.NotificationService) { s.notifications = n }

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(corsMiddleware)

	r.Get("/health", s.handleHealth)

	r.Get("/api/version", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"version": "0.1.0",
		})
	})

	r.Route("/api/progress", func(r chi.Router) {
		r.Get("/state", s.handleState)
		r.Get("/level", s.handleLevel)
		r.Get("/achievements", s.handleAchievements)
		r.Get("/today", s.handleToday)
		r.Get("/window", s.handleWindow)
		r.Get("/totals", s.handleTotals)
		r.Get("/summary", s.handleSummary)
		r.Get("/events", s.handleListEvents)
		r.Post("/events", s.handleRecordEvent)
		r.Post("/reset", s.handleReset)
	})

	if s.challenges != nil {
		r.Get("/api/challenges", s.handleChallenges)
	}
	if s.notifications != nil {
		r.Get("/api/notifications", s.handleNotifications)
		r.Post("/api/notifications/{id}/shown", s.handleNotificationShown)
	}

	if s.metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	return r
}

// handleHealth reports aggregate health plus per-check statuses.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	statuses := s.health.Statuses()
	code := http.StatusOK
	status := "ok"
	if !s.health.IsHealthy() {
		code = http.StatusServiceUnavailable
		status = "degraded"
	}
	writeJSON(w, code, map[string]interface{}{
		"status": status,
		"checks": statuses,
	})
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]interface{}{
		"error": map[string]interface{}{
			"message": msg,
			"type":    "error",
		},
	})
}

// corsMiddleware adds CORS headers for local development.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
