package handler

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/scavengerhunt/internal/api/request"
	"github.com/mcoot/scavengerhunt/internal/api/response"
	"github.com/mcoot/scavengerhunt/internal/services/hunt"
)

// SMSHandler answers the carrier's inbound message webhook
type SMSHandler struct {
	controller *hunt.Controller
	logger     *slog.Logger
}

// NewSMSHandler creates a new SMS webhook handler
func NewSMSHandler(controller *hunt.Controller, logger *slog.Logger) *SMSHandler {
	return &SMSHandler{
		controller: controller,
		logger:     logger,
	}
}

// Receive handles GET|POST /sms.
// The reply is always TwiML; faults are turned into the fallback text by the controller.
func (h *SMSHandler) Receive(w http.ResponseWriter, r *http.Request) {
	msg, err := request.ParseInbound(r)
	if err != nil {
		// Still run it through the controller so the fault is alerted
		msg = hunt.InboundMessage{From: r.URL.Query().Get(request.FieldFrom)}
	}

	reply := h.controller.HandleMessage(r.Context(), msg)
	if reply.Discard {
		response.NoContent(w)
		return
	}

	if err := response.TwiML(w, reply.Text); err != nil {
		h.logger.Error("failed to write reply",
			slog.String("player_id", string(reply.PlayerID)),
			slog.String("error", err.Error()),
		)
	}
}
