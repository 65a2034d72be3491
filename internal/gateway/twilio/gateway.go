package twilio

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	twiliogo "github.com/twilio/twilio-go"
	"github.com/twilio/twilio-go/client"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/mcoot/scavengerhunt/internal/gateway"
)

// Config holds Twilio credentials and retry settings
type Config struct {
	AccountSID string
	AuthToken  string
	FromNumber string

	// MaxRetries caps the retries after the first attempt
	MaxRetries      uint64
	InitialInterval time.Duration
}

// DefaultConfig returns sensible retry defaults. Credentials must be filled in.
func DefaultConfig() Config {
	return Config{
		MaxRetries:      3,
		InitialInterval: 500 * time.Millisecond,
	}
}

// messageCreator is the subset of the Twilio API service the gateway uses
type messageCreator interface {
	CreateMessage(params *openapi.CreateMessageParams) (*openapi.ApiV2010Message, error)
}

// Gateway sends SMS and MMS through the Twilio REST API
type Gateway struct {
	api    messageCreator
	cfg    Config
	logger *slog.Logger
}

// Ensure Gateway implements the interface
var _ gateway.Gateway = (*Gateway)(nil)

// New creates a Twilio gateway from credentials
func New(cfg Config, logger *slog.Logger) (*Gateway, error) {
	if cfg.AccountSID == "" || cfg.AuthToken == "" {
		return nil, errors.New("twilio: account sid and auth token are required")
	}
	if cfg.FromNumber == "" {
		return nil, errors.New("twilio: from number is required")
	}

	rest := twiliogo.NewRestClientWithParams(twiliogo.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})
	return newWithCreator(rest.Api, cfg, logger), nil
}

func newWithCreator(api messageCreator, cfg Config, logger *slog.Logger) *Gateway {
	return &Gateway{api: api, cfg: cfg, logger: logger}
}

func (g *Gateway) SendText(ctx context.Context, to, body string) error {
	params := &openapi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(g.cfg.FromNumber)
	params.SetBody(body)
	return g.send(ctx, params)
}

func (g *Gateway) SendPicture(ctx context.Context, to, caption, mediaURL string) error {
	params := &openapi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(g.cfg.FromNumber)
	params.SetBody(caption)
	params.SetMediaUrl([]string{mediaURL})
	return g.send(ctx, params)
}

func (g *Gateway) send(ctx context.Context, params *openapi.CreateMessageParams) error {
	to := ""
	if params.To != nil {
		to = *params.To
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = g.cfg.InitialInterval
	policy := backoff.WithContext(backoff.WithMaxRetries(b, g.cfg.MaxRetries), ctx)

	var sid string
	operation := func() error {
		msg, err := g.api.CreateMessage(params)
		if err != nil {
			if isPermanent(err) {
				return backoff.Permanent(err)
			}
			return err
		}
		if msg != nil && msg.Sid != nil {
			sid = *msg.Sid
		}
		return nil
	}

	notify := func(err error, wait time.Duration) {
		g.logger.Warn("twilio send failed, retrying",
			slog.String("to", to),
			slog.Duration("wait", wait),
			slog.String("error", err.Error()),
		)
	}

	if err := backoff.RetryNotify(operation, policy, notify); err != nil {
		return fmt.Errorf("sending message to %s: %w", to, err)
	}

	g.logger.Debug("twilio message sent", slog.String("to", to), slog.String("sid", sid))
	return nil
}

// isPermanent reports whether retrying cannot help (bad number, auth, etc.)
func isPermanent(err error) bool {
	var restErr *client.TwilioRestError
	if errors.As(err, &restErr) {
		return restErr.Status >= http.StatusBadRequest && restErr.Status < http.StatusInternalServerError &&
			restErr.Status != http.StatusTooManyRequests
	}
	return false
}
