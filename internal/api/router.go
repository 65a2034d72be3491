package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/scavengerhunt/internal/api/apierr"
	"github.com/mcoot/scavengerhunt/internal/api/handler"
	"github.com/mcoot/scavengerhunt/internal/api/middleware"
	"github.com/mcoot/scavengerhunt/internal/api/response"
	"github.com/mcoot/scavengerhunt/internal/dependencies/random"
	"github.com/mcoot/scavengerhunt/internal/services/hunt"
	"github.com/mcoot/scavengerhunt/internal/services/leaderboard"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger             *slog.Logger
	Random             random.Random
	HuntController     *hunt.Controller
	LeaderboardService *leaderboard.Service
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	smsHandler := handler.NewSMSHandler(cfg.HuntController, cfg.Logger)
	playerHandler := handler.NewPlayerHandler(cfg.HuntController)
	leaderboardHandler := handler.NewLeaderboardHandler(cfg.LeaderboardService)

	// Create middleware
	requestIDMiddleware := middleware.RequestID(cfg.Random)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware)

	// Carrier webhook, mounted at both the current and the legacy path
	webhook := middleware.WebhookRecovery(cfg.Logger)(http.HandlerFunc(smsHandler.Receive))
	for _, path := range []string{"/sms", "/scavenger"} {
		r.Handle(path, webhook).Methods(http.MethodGet, http.MethodPost)
	}

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Recovery(cfg.Logger))
	api.NotFoundHandler = http.HandlerFunc(apierr.NotFound)

	api.HandleFunc("/players", byMethod(http.MethodGet, playerHandler.List))
	api.HandleFunc("/players/{id}", byMethod(http.MethodGet, playerHandler.Get))
	api.HandleFunc("/leaderboard", byMethod(http.MethodGet, leaderboardHandler.Get))

	// Health check endpoint
	api.HandleFunc("/health", byMethod(http.MethodGet, healthHandler))

	return r
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	response.JSON(w, http.StatusOK, response.Health{Status: "ok"})
}

// byMethod answers any verb other than method with a JSON 405. A mux
// method matcher on a subrouter route reports 404 once a later route
// misses on path, so the check lives here.
func byMethod(method string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			w.Header().Set("Allow", method)
			apierr.MethodNotAllowed(w, r)
			return
		}
		h(w, r)
	}
}
