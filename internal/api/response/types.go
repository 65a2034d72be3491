package response

import (
	"time"

	"github.com/mcoot/scavengerhunt/internal/model"
)

// Player represents a player in API responses
type Player struct {
	ID             string     `json:"id"`
	PhoneNumber    string     `json:"phone_number"`
	Name           string     `json:"name,omitempty"`
	Status         string     `json:"status"`
	CurrentClue    string     `json:"current_clue,omitempty"`
	RemainingClues int        `json:"remaining_clues"`
	Completed      int        `json:"completed"`
	Missed         int        `json:"missed"`
	FastestSeconds *float64   `json:"fastest_seconds,omitempty"`
	InjuredUntil   *time.Time `json:"injured_until,omitempty"`
	HuntStartedAt  *time.Time `json:"hunt_started_at,omitempty"`
	FinishedAt     *time.Time `json:"finished_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	return Player{
		ID:             string(p.ID),
		PhoneNumber:    p.PhoneNumber,
		Name:           p.Name,
		Status:         string(p.Status),
		CurrentClue:    string(p.CurrentClue),
		RemainingClues: len(p.RemainingClues),
		Completed:      p.CompletedCount,
		Missed:         p.MissedCount,
		FastestSeconds: seconds(p.FastestInterval),
		InjuredUntil:   optionalTime(p.InjuredUntil),
		HuntStartedAt:  optionalTime(p.HuntStartedAt),
		FinishedAt:     optionalTime(p.FinishedAt),
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

// PlayerList is the response for listing players
type PlayerList struct {
	Players []Player `json:"players"`
}

// PlayerListFromModel converts a slice of players
func PlayerListFromModel(players []*model.Player) PlayerList {
	out := make([]Player, 0, len(players))
	for _, p := range players {
		out = append(out, PlayerFromModel(p))
	}
	return PlayerList{Players: out}
}

// Standing represents one leaderboard row
type Standing struct {
	Rank           int      `json:"rank"`
	PlayerID       string   `json:"player_id"`
	Name           string   `json:"name"`
	Status         string   `json:"status"`
	Completed      int      `json:"completed"`
	Missed         int      `json:"missed"`
	FastestSeconds *float64 `json:"fastest_seconds,omitempty"`
}

// Leaderboard is the response for the leaderboard endpoint
type Leaderboard struct {
	Standings []Standing `json:"standings"`
}

// LeaderboardFromModel converts standings
func LeaderboardFromModel(standings []model.Standing) Leaderboard {
	out := make([]Standing, 0, len(standings))
	for _, s := range standings {
		out = append(out, Standing{
			Rank:           s.Rank,
			PlayerID:       string(s.PlayerID),
			Name:           s.Name,
			Status:         string(s.Status),
			Completed:      s.Completed,
			Missed:         s.Missed,
			FastestSeconds: seconds(s.FastestInterval),
		})
	}
	return Leaderboard{Standings: out}
}

// Health is the response for the health check
type Health struct {
	Status string `json:"status"`
}

func seconds(d *time.Duration) *float64 {
	if d == nil {
		return nil
	}
	s := d.Seconds()
	return &s
}

func optionalTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
