package model

import (
	"slices"
	"time"
)

// PlayerID uniquely identifies a player across the system
type PlayerID string

// Status is the phase of the hunt a player is in
type Status string

const (
	StatusNew      Status = "new"      // First message not yet answered
	StatusNaming   Status = "naming"   // Choosing and confirming a nickname
	StatusHunting  Status = "hunting"  // Looking for the current clue
	StatusInjured  Status = "injured"  // Locked out after a wrong keyword
	StatusFinished Status = "finished" // Every clue solved
)

// ParseStatus converts a stored status value into a Status.
// "playing" is the older name for the post-injury state.
func ParseStatus(s string) (Status, error) {
	switch s {
	case string(StatusNew), string(StatusNaming), string(StatusHunting), string(StatusInjured), string(StatusFinished):
		return Status(s), nil
	case "playing":
		return StatusInjured, nil
	default:
		return "", ErrUnknownStatus
	}
}

// Player is a participant, identified by phone number
type Player struct {
	ID          PlayerID
	PhoneNumber string
	Name        string // empty until chosen
	Status      Status

	CurrentClue    ClueID // empty when no clue is assigned
	RemainingClues []ClueID

	MissedCount     int
	CompletedCount  int
	FastestInterval *time.Duration // nil until the first timed solve

	LastSolveTime time.Time
	InjuredUntil  time.Time

	HuntStartedAt time.Time
	FinishedAt    time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Clone returns a deep copy of the player
func (p *Player) Clone() *Player {
	c := *p
	c.RemainingClues = slices.Clone(p.RemainingClues)
	if p.FastestInterval != nil {
		d := *p.FastestInterval
		c.FastestInterval = &d
	}
	return &c
}

// HasName reports whether a nickname has been set
func (p *Player) HasName() bool {
	return p.Name != ""
}

// IsInjured reports whether the player is still locked out at the given time
func (p *Player) IsInjured(now time.Time) bool {
	return now.Before(p.InjuredUntil)
}

// RecoversIn returns how long until the injury wears off (zero if not injured)
func (p *Player) RecoversIn(now time.Time) time.Duration {
	if !p.IsInjured(now) {
		return 0
	}
	return p.InjuredUntil.Sub(now)
}

// HasRemaining reports whether the clue is still unsolved
func (p *Player) HasRemaining(id ClueID) bool {
	return slices.Contains(p.RemainingClues, id)
}

// RemoveClue drops a solved clue from the remaining set.
// Returns false if the clue was not remaining.
func (p *Player) RemoveClue(id ClueID) bool {
	idx := slices.Index(p.RemainingClues, id)
	if idx < 0 {
		return false
	}
	p.RemainingClues = slices.Delete(p.RemainingClues, idx, idx+1)
	return true
}

// RecordInterval keeps the smallest observed solve interval
func (p *Player) RecordInterval(d time.Duration) {
	if p.FastestInterval == nil || d < *p.FastestInterval {
		p.FastestInterval = &d
	}
}

// IsActive reports whether the player has started hunting
func (p *Player) IsActive() bool {
	return p.Status == StatusHunting || p.Status == StatusInjured || p.Status == StatusFinished
}
