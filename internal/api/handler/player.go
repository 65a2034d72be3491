package handler

import (
	"net/http"

	"github.com/mcoot/scavengerhunt/internal/api/response"
	"github.com/mcoot/scavengerhunt/internal/services/hunt"
)

// PlayerHandler handles player-related endpoints
type PlayerHandler struct {
	controller *hunt.Controller
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(controller *hunt.Controller) *PlayerHandler {
	return &PlayerHandler{
		controller: controller,
	}
}

// List handles GET /api/v1/players
func (h *PlayerHandler) List(w http.ResponseWriter, r *http.Request) {
	players, err := h.controller.ListPlayers(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerListFromModel(players))
}

// Get handles GET /api/v1/players/{id}
func (h *PlayerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := playerIDParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	player, err := h.controller.GetPlayer(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromModel(player))
}
