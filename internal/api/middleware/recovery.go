package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/scavengerhunt/internal/api/apierr"
	"github.com/mcoot/scavengerhunt/internal/api/response"
	"github.com/mcoot/scavengerhunt/internal/middleware"
	"github.com/mcoot/scavengerhunt/internal/services/hunt"
)

// Recovery creates panic recovery middleware for the API
// Returns JSON error responses on panic
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger, apiPanicHandler)
}

// WebhookRecovery creates panic recovery middleware for the SMS webhook
// Answers the player with the fallback text
func WebhookRecovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger, webhookPanicHandler)
}

func apiPanicHandler(w http.ResponseWriter, _ *http.Request, _ any) {
	apierr.WriteError(w, apierr.NewInternalError())
}

func webhookPanicHandler(w http.ResponseWriter, _ *http.Request, _ any) {
	if err := response.TwiML(w, hunt.FallbackReply); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
