// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gamechanger-stats/seasonstats/internal/domain/model"
	"github.com/gamechanger-stats/seasonstats/internal/domain/qualify"
	"github.com/gamechanger-stats/seasonstats/pkg/metrics"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Read operations expose season stat data.
	Organizations(ctx context.Context) ([]model.Organization, error)
	Snapshot(ctx context.Context, orgID string) (model.Snapshot, error)
	Thresholds(ctx context.Context, orgID string) ([]qualify.Threshold, error)
	Leaderboard(ctx context.Context, orgID, category, stat string, limit int) (model.Leaderboard, error)
	StatNames(category string) ([]string, error)

	// Runtime management.
	SetToken(ctx context.Context, token string) error
	SetAdjustmentFactor(ctx context.Context, factor float64) error
	AdjustmentFactor() float64
	SetStrictnessIndex(ctx context.Context, idx map[string]float64) error
	StrictnessIndex() map[string]float64
	Ready() bool
}

// Server wires HTTP routes for the business API.
type Server struct {
	rootHandler         *RootHandler
	healthHandler       *HealthHandler
	tokenHandler        *TokenHandler
	organizationHandler *OrganizationHandler
	statsHandler        *StatsHandler
	leaderboardHandler  *LeaderboardHandler
	adjustmentHandler   *AdjustmentHandler

	corsOrigins []string
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, corsOrigins []string) *Server {
	return &Server{
		rootHandler:         NewRootHandler(deps),
		healthHandler:       NewHealthHandler(deps),
		tokenHandler:        NewTokenHandler(deps),
		organizationHandler: NewOrganizationHandler(deps),
		statsHandler:        NewStatsHandler(deps),
		leaderboardHandler:  NewLeaderboardHandler(deps),
		adjustmentHandler:   NewAdjustmentHandler(deps),
		corsOrigins:         corsOrigins,
	}
}

// Router builds the chi router with middleware and all routes attached.
func (s *Server) Router(_ context.Context) *chi.Mux {
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(30 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/", MetricsMiddleware(s.rootHandler.HandleRoot, "root"))
	r.Get("/metrics", promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}).ServeHTTP)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", MetricsMiddleware(s.healthHandler.HandleHealth, "health"))
		r.Post("/token", MetricsMiddleware(s.tokenHandler.HandleUpdateToken, "token"))
		r.Get("/organizations", MetricsMiddleware(s.organizationHandler.HandleGetOrganizations, "organizations"))
		r.Get("/adjustment", MetricsMiddleware(s.adjustmentHandler.HandleGetAdjustment, "adjustment"))
		r.Post("/adjustment", MetricsMiddleware(s.adjustmentHandler.HandleSetAdjustment, "adjustment"))
		r.Route("/stats/{organizationID}", func(r chi.Router) {
			r.Get("/", MetricsMiddleware(s.statsHandler.HandleGetStats, "stats"))
			r.Get("/thresholds", MetricsMiddleware(s.statsHandler.HandleGetThresholds, "thresholds"))
			r.Get("/leaderboards", MetricsMiddleware(s.leaderboardHandler.HandleGetLeaderboard, "leaderboards"))
		})
	})

	return r
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
