package hunt

import (
	"fmt"
	"strings"
	"time"

	"github.com/mcoot/scavengerhunt/internal/dependencies/random"
	"github.com/mcoot/scavengerhunt/internal/model"
	"github.com/mcoot/scavengerhunt/internal/services/catalog"
	"github.com/mcoot/scavengerhunt/internal/services/penalty"
)

// DefaultPenaltyDuration is how long a wrong keyword locks a player out
const DefaultPenaltyDuration = 60 * time.Second

// Config selects which game mechanics are active
type Config struct {
	// InjuryEnabled locks players out after a wrong keyword. When disabled a
	// wrong keyword just swaps in a different clue.
	InjuryEnabled bool

	// TimingEnabled tracks the fastest interval between solves
	TimingEnabled bool

	PenaltyDuration time.Duration
}

// DefaultConfig returns the full game with injuries and timing
func DefaultConfig() Config {
	return Config{
		InjuryEnabled:   true,
		TimingEnabled:   true,
		PenaltyDuration: DefaultPenaltyDuration,
	}
}

// Dispatch is a clue picture to push to the player
type Dispatch struct {
	To       string
	ClueID   model.ClueID
	Caption  string
	MediaURL string
}

// Outcome is the result of feeding one inbound message to the machine
type Outcome struct {
	Player   *model.Player
	Reply    string
	Dispatch *Dispatch // nil when no clue is sent
	Events   []model.Event
}

// Machine computes player transitions. It holds no mutable state of its own
// and never touches storage or the network.
type Machine struct {
	catalog *catalog.Catalog
	bank    *penalty.Bank
	random  random.Random
	cfg     Config
}

// NewMachine creates a state machine over the given catalog and penalty bank
func NewMachine(cat *catalog.Catalog, bank *penalty.Bank, rnd random.Random, cfg Config) *Machine {
	if cfg.PenaltyDuration <= 0 {
		cfg.PenaltyDuration = DefaultPenaltyDuration
	}
	return &Machine{
		catalog: cat,
		bank:    bank,
		random:  rnd,
		cfg:     cfg,
	}
}

// Config returns the active configuration
func (m *Machine) Config() Config {
	return m.cfg
}

// Transition applies an inbound message body to a player at time now.
// The given player is not modified; the returned outcome carries the updated copy.
func (m *Machine) Transition(player *model.Player, body string, now time.Time) (*Outcome, error) {
	t := &transition{
		machine: m,
		player:  player.Clone(),
		now:     now,
		input:   strings.TrimSpace(body),
	}
	t.normalized = strings.ToLower(t.input)

	var err error
	switch t.player.Status {
	case model.StatusNew:
		t.welcome()
	case model.StatusNaming:
		err = t.naming()
	case model.StatusInjured:
		err = t.injured()
	case model.StatusHunting:
		err = t.hunting()
	case model.StatusFinished:
		t.reply = alreadyFinishedReply(t.player)
	default:
		err = fmt.Errorf("%w: %q", model.ErrUnknownStatus, t.player.Status)
	}
	if err != nil {
		return nil, err
	}

	t.player.UpdatedAt = now
	return &Outcome{
		Player:   t.player,
		Reply:    t.reply,
		Dispatch: t.dispatch,
		Events:   t.events,
	}, nil
}

// transition accumulates the effects of a single message
type transition struct {
	machine    *Machine
	player     *model.Player
	now        time.Time
	input      string
	normalized string

	reply    string
	dispatch *Dispatch
	events   []model.Event
}

func (t *transition) welcome() {
	t.player.Status = model.StatusNaming
	t.reply = welcomeReply()
}

func (t *transition) naming() error {
	p := t.player

	if !p.HasName() {
		if t.input == "" {
			t.reply = askNicknameReply()
			return nil
		}
		p.Name = t.input
		t.reply = confirmNicknameReply(p.Name)
		return nil
	}

	if t.normalized != "yes" {
		p.Name = ""
		t.reply = renameReply()
		return nil
	}

	if err := t.assignClue(""); err != nil {
		return err
	}
	p.Status = model.StatusHunting
	p.HuntStartedAt = t.now
	p.LastSolveTime = t.now
	t.emitFirst(model.EventHuntStarted, model.HuntStartedPayload{Name: p.Name})
	t.reply = huntStartedReply(p.Name)
	return nil
}

func (t *transition) injured() error {
	p := t.player
	if p.IsInjured(t.now) {
		t.reply = stillRecoveringReply(p.RecoversIn(t.now))
		return nil
	}

	// The message that ends the injury is not evaluated as a keyword
	if err := t.assignClue(""); err != nil {
		return err
	}
	p.Status = model.StatusHunting
	p.InjuredUntil = time.Time{}
	t.emitFirst(model.EventPlayerRecovered, nil)
	t.reply = recoveredReply(p.Name)
	return nil
}

func (t *transition) hunting() error {
	p := t.player
	if p.IsInjured(t.now) {
		t.reply = stillRecoveringReply(p.RecoversIn(t.now))
		return nil
	}

	if p.CurrentClue == "" || !p.HasRemaining(p.CurrentClue) {
		return fmt.Errorf("%w: %q", model.ErrNoCurrentClue, p.CurrentClue)
	}
	clue, err := t.machine.catalog.Lookup(p.CurrentClue)
	if err != nil {
		return err
	}

	if t.normalized == clue.Keyword {
		return t.solve(clue)
	}
	return t.miss(clue)
}

func (t *transition) solve(clue model.Clue) error {
	p := t.player
	m := t.machine

	p.CompletedCount++

	var interval time.Duration
	if m.cfg.TimingEnabled {
		since := p.LastSolveTime
		if since.IsZero() {
			since = p.HuntStartedAt
		}
		if !since.IsZero() {
			interval = t.now.Sub(since)
			p.RecordInterval(interval)
		}
	}

	p.RemoveClue(clue.ID)
	p.LastSolveTime = t.now

	t.emit(model.EventClueSolved, model.ClueSolvedPayload{
		ClueID:    clue.ID,
		Interval:  interval,
		Completed: p.CompletedCount,
		Remaining: len(p.RemainingClues),
	})

	if len(p.RemainingClues) == 0 {
		p.Status = model.StatusFinished
		p.CurrentClue = ""
		p.FinishedAt = t.now
		t.emit(model.EventHuntFinished, model.HuntFinishedPayload{
			Completed:       p.CompletedCount,
			Missed:          p.MissedCount,
			FastestInterval: p.FastestInterval,
		})
		t.reply = finishedReply(p)
		return nil
	}

	if err := t.assignClue(""); err != nil {
		return err
	}
	t.reply = clueFoundReply(p.Name)
	return nil
}

func (t *transition) miss(clue model.Clue) error {
	p := t.player
	m := t.machine

	p.MissedCount++

	if !m.cfg.InjuryEnabled {
		if err := t.assignClue(clue.ID); err != nil {
			return err
		}
		t.reply = wrongClueReply()
		return nil
	}

	phrase := m.bank.Pick(m.random)
	p.InjuredUntil = t.now.Add(m.cfg.PenaltyDuration)
	p.Status = model.StatusInjured

	t.emit(model.EventPlayerInjured, model.PlayerInjuredPayload{
		ClueID: clue.ID,
		Guess:  t.normalized,
		Until:  p.InjuredUntil,
		Missed: p.MissedCount,
	})
	t.reply = injuredReply(phrase, m.cfg.PenaltyDuration)
	return nil
}

// assignClue draws a random remaining clue, avoiding exclude when anything
// else is left, and queues its picture
func (t *transition) assignClue(exclude model.ClueID) error {
	p := t.player

	candidates := make([]model.ClueID, 0, len(p.RemainingClues))
	for _, id := range p.RemainingClues {
		if id != exclude {
			candidates = append(candidates, id)
		}
	}
	if len(candidates) == 0 {
		candidates = append(candidates, p.RemainingClues...)
	}
	if len(candidates) == 0 {
		return model.ErrNoCluesRemaining
	}

	next := random.Choice(t.machine.random, candidates)
	clue, err := t.machine.catalog.Lookup(next)
	if err != nil {
		return err
	}

	p.CurrentClue = next
	t.dispatch = &Dispatch{
		To:       p.PhoneNumber,
		ClueID:   next,
		Caption:  clue.Title,
		MediaURL: clue.MediaURL,
	}
	t.emit(model.EventClueAssigned, model.ClueAssignedPayload{ClueID: next})
	return nil
}

func (t *transition) emit(eventType model.EventType, payload any) {
	t.events = append(t.events, t.event(eventType, payload))
}

// emitFirst records an event ahead of any already emitted by the same message
func (t *transition) emitFirst(eventType model.EventType, payload any) {
	t.events = append([]model.Event{t.event(eventType, payload)}, t.events...)
}

func (t *transition) event(eventType model.EventType, payload any) model.Event {
	return model.Event{
		Type:        eventType,
		Timestamp:   t.now,
		PlayerID:    t.player.ID,
		PhoneNumber: t.player.PhoneNumber,
		Payload:     payload,
	}
}
