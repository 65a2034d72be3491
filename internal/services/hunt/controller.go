package hunt

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/mcoot/scavengerhunt/internal/dependencies/clock"
	"github.com/mcoot/scavengerhunt/internal/dependencies/random"
	"github.com/mcoot/scavengerhunt/internal/events"
	"github.com/mcoot/scavengerhunt/internal/gateway"
	"github.com/mcoot/scavengerhunt/internal/model"
	"github.com/mcoot/scavengerhunt/internal/services/catalog"
	"github.com/mcoot/scavengerhunt/internal/services/phone"
	"github.com/mcoot/scavengerhunt/internal/storage"
)

// InboundMessage is a text received from the carrier webhook
type InboundMessage struct {
	From       string
	Body       string
	HasBody    bool   // false when the Body field was absent
	MessageSID string // empty when the carrier sent no session id
}

// Reply is what the webhook should answer with
type Reply struct {
	Text     string
	Discard  bool // no session id, answer with an empty response
	PlayerID model.PlayerID
	Err      error // set when the fallback reply was used
}

// Controller runs inbound messages through the state machine, persists the
// result and pushes clue pictures. Messages from one phone number are
// processed one at a time.
type Controller struct {
	storage     storage.Storage
	machine     *Machine
	catalog     *catalog.Catalog
	gateway     gateway.Gateway
	publisher   events.Publisher
	sanitizer   *phone.Sanitizer
	clock       clock.Clock
	random      random.Random
	alertNumber string
	logger      *slog.Logger

	locks   *keyedMutex
	pending sync.WaitGroup
}

// NewController creates a new hunt Controller
func NewController(
	storage storage.Storage,
	machine *Machine,
	catalog *catalog.Catalog,
	gateway gateway.Gateway,
	publisher events.Publisher,
	sanitizer *phone.Sanitizer,
	clock clock.Clock,
	random random.Random,
	alertNumber string,
	logger *slog.Logger,
) *Controller {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &Controller{
		storage:     storage,
		machine:     machine,
		catalog:     catalog,
		gateway:     gateway,
		publisher:   publisher,
		sanitizer:   sanitizer,
		clock:       clock,
		random:      random,
		alertNumber: alertNumber,
		logger:      logger,
		locks:       newKeyedMutex(),
	}
}

// HandleMessage processes one inbound message. It never returns an error:
// faults are logged, alerted and answered with FallbackReply.
func (c *Controller) HandleMessage(ctx context.Context, msg InboundMessage) *Reply {
	reply := &Reply{Discard: msg.MessageSID == ""}

	phoneNumber, err := c.sanitizer.Sanitize(msg.From)
	if err != nil {
		return c.fault(ctx, reply, nil, msg.From, err)
	}
	if !msg.HasBody {
		return c.fault(ctx, reply, nil, phoneNumber, model.ErrMissingBody)
	}

	unlock := c.locks.Lock(phoneNumber)
	defer unlock()

	player, created, err := c.loadOrCreate(ctx, phoneNumber)
	if err != nil {
		return c.fault(ctx, reply, nil, phoneNumber, err)
	}
	reply.PlayerID = player.ID

	outcome, err := c.machine.Transition(player, msg.Body, c.clock.Now())
	if err != nil {
		return c.fault(ctx, reply, player, phoneNumber, err)
	}

	if err := c.storage.SavePlayer(ctx, outcome.Player); err != nil {
		return c.fault(ctx, reply, player, phoneNumber, err)
	}

	if created {
		c.publish(ctx, model.Event{
			Type:        model.EventPlayerJoined,
			Timestamp:   player.CreatedAt,
			PlayerID:    player.ID,
			PhoneNumber: phoneNumber,
		})
	}
	for _, event := range outcome.Events {
		c.publish(ctx, event)
	}

	if outcome.Dispatch != nil {
		c.sendPicture(ctx, *outcome.Dispatch)
	}

	c.logger.Info("message handled",
		slog.String("player_id", string(player.ID)),
		slog.String("from_status", string(player.Status)),
		slog.String("to_status", string(outcome.Player.Status)),
		slog.Int("completed", outcome.Player.CompletedCount),
		slog.Int("remaining", len(outcome.Player.RemainingClues)),
		slog.Bool("dispatched", outcome.Dispatch != nil),
	)

	reply.Text = outcome.Reply
	return reply
}

// GetPlayer retrieves a player by ID
func (c *Controller) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	return c.storage.GetPlayer(ctx, id)
}

// ListPlayers returns every player in join order
func (c *Controller) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	return c.storage.ListPlayers(ctx)
}

// Drain waits for outstanding picture and alert sends
func (c *Controller) Drain() {
	c.pending.Wait()
}

// loadOrCreate returns the player for a number. New players are not saved
// here; the first transition is persisted as a single write.
func (c *Controller) loadOrCreate(ctx context.Context, phoneNumber string) (*model.Player, bool, error) {
	player, err := c.storage.GetPlayerByPhone(ctx, phoneNumber)
	if err == nil {
		return player, false, nil
	}
	if !errors.Is(err, model.ErrPlayerNotFound) {
		return nil, false, err
	}

	now := c.clock.Now()
	player = &model.Player{
		ID:             model.PlayerID(c.random.String(12, random.PlayerIDAlphabet)),
		PhoneNumber:    phoneNumber,
		Status:         model.StatusNew,
		RemainingClues: c.catalog.IDs(),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	c.logger.Info("player created",
		slog.String("player_id", string(player.ID)),
		slog.String("phone_number", phoneNumber),
	)
	return player, true, nil
}

// fault answers with the fallback text and alerts the operator
func (c *Controller) fault(ctx context.Context, reply *Reply, player *model.Player, phoneNumber string, err error) *Reply {
	name := ""
	if player != nil {
		name = player.Name
		reply.PlayerID = player.ID
	}

	c.logger.Error("failed to handle message",
		slog.String("player_id", string(reply.PlayerID)),
		slog.String("phone_number", phoneNumber),
		slog.String("error", err.Error()),
	)

	c.publish(ctx, model.Event{
		Type:        model.EventTransitionFault,
		Timestamp:   c.clock.Now(),
		PlayerID:    reply.PlayerID,
		PhoneNumber: phoneNumber,
		Payload:     model.TransitionFaultPayload{Error: err.Error()},
	})

	c.sendAlert(ctx, AlertText(name, phoneNumber))

	reply.Text = FallbackReply
	reply.Err = err
	return reply
}

func (c *Controller) publish(ctx context.Context, event model.Event) {
	if err := c.publisher.Publish(ctx, event); err != nil {
		c.logger.Warn("failed to publish event",
			slog.String("type", string(event.Type)),
			slog.String("player_id", string(event.PlayerID)),
			slog.String("error", err.Error()),
		)
	}
}

// sendPicture pushes a clue in the background. Failures are logged only;
// the player has already been saved and answered.
func (c *Controller) sendPicture(ctx context.Context, d Dispatch) {
	c.background(ctx, func(ctx context.Context) {
		if err := c.gateway.SendPicture(ctx, d.To, d.Caption, d.MediaURL); err != nil {
			c.logger.Error("failed to send clue picture",
				slog.String("to", d.To),
				slog.String("clue_id", string(d.ClueID)),
				slog.String("error", err.Error()),
			)
		}
	})
}

func (c *Controller) sendAlert(ctx context.Context, text string) {
	if c.alertNumber == "" {
		c.logger.Warn("no alert number configured, alert dropped", slog.String("alert", text))
		return
	}
	c.background(ctx, func(ctx context.Context) {
		if err := c.gateway.SendText(ctx, c.alertNumber, text); err != nil {
			c.logger.Error("failed to send alert", slog.String("error", err.Error()))
		}
	})
}

func (c *Controller) background(ctx context.Context, fn func(ctx context.Context)) {
	detached := context.WithoutCancel(ctx)
	c.pending.Add(1)
	go func() {
		defer c.pending.Done()
		fn(detached)
	}()
}
