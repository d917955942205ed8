// Package api provides the HTTP server for Wellspring.
// It exposes the tracker REST API consumed by the mobile and web shells.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wellspring-app/wellspring/internal/app/notify"
	"github.com/wellspring-app/wellspring/internal/app/reward"
	"github.com/wellspring-app/wellspring/internal/app/tracker"
	"github.com/wellspring-app/wellspring/internal/infra/sqlite"
)

// Server is the Wellspring HTTP API server.
type Server struct {
	tracker        *tracker.Tracker
	reward         *reward.Service
	notify         *notify.Service
	db             *sqlite.DB
	metricsEnabled bool
}

// NewServer creates a new API server.
func NewServer(tr *tracker.Tracker, rw *reward.Service, nf *notify.Service, db *sqlite.DB) *Server {
	return &Server{tracker: tr, reward: rw, notify: nf, db: db}
}

// EnableMetrics enables the /metrics Prometheus endpoint.
func (s *Server) EnableMetrics() { s.metricsEnabled = true }

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(time.Minute))
	r.Use(corsMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status": "ok",
		})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/status", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]string{
				"status": "Wellspring is running",
			})
		})
		r.Get("/version", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]string{
				"version": "0.1.0",
			})
		})

		r.Post("/events", s.handleRegisterEvent)
		r.Get("/stats", s.handleStats)
		r.Get("/summary", s.handleSummary)
		r.Get("/level", s.handleLevel)

		r.Route("/missions", func(r chi.Router) {
			r.Get("/", s.handleMissions)
			r.Get("/active", s.handleActiveMissions)
			r.Get("/completed", s.handleCompletedMissions)
		})

		r.Route("/achievements", func(r chi.Router) {
			r.Get("/", s.handleListAchievements)
			r.Post("/", s.handleAddAchievement)
			r.Patch("/{id}", s.handleUpdateAchievement)
			r.Delete("/{id}", s.handleDeleteAchievement)
			r.Post("/{id}/progress", s.handleAchievementProgress)
			r.Post("/{id}/unlock", s.handleUnlockAchievement)
			r.Post("/{id}/lock", s.handleLockAchievement)
		})

		r.Route("/journal", func(r chi.Router) {
			r.Get("/", s.handleListJournal)
			r.Post("/", s.handleAddJournalEntry)
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", s.handleNotifications)
			r.Post("/{id}/shown", s.handleNotificationShown)
		})
	})

	// Prometheus metrics endpoint
	if s.metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	return r
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

// corsMiddleware adds CORS headers for the local app shells.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
