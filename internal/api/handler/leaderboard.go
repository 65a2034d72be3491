package handler

import (
	"net/http"

	"github.com/mcoot/scavengerhunt/internal/api/response"
	"github.com/mcoot/scavengerhunt/internal/services/leaderboard"
)

// LeaderboardHandler serves hunt standings
type LeaderboardHandler struct {
	service *leaderboard.Service
}

// NewLeaderboardHandler creates a new leaderboard handler
func NewLeaderboardHandler(service *leaderboard.Service) *LeaderboardHandler {
	return &LeaderboardHandler{service: service}
}

// Get handles GET /api/v1/leaderboard
func (h *LeaderboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	standings, err := h.service.Standings(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.LeaderboardFromModel(standings))
}
