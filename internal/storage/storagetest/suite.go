// Package storagetest holds the behaviour every storage backend must share.
// Backend tests embed PlayerSuite and set Store in their SetupTest.
package storagetest

import (
	"context"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/scavengerhunt/internal/model"
	"github.com/mcoot/scavengerhunt/internal/storage"
)

// PlayerSuite exercises the storage.Storage contract
type PlayerSuite struct {
	suite.Suite
	Store storage.Storage
	Ctx   context.Context
}

var baseTime = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

// NewPlayer returns a fully populated player for round-trip tests
func NewPlayer(id model.PlayerID, phoneNumber string) *model.Player {
	fastest := 3 * time.Minute
	return &model.Player{
		ID:              id,
		PhoneNumber:     phoneNumber,
		Name:            "Zephyr",
		Status:          model.StatusHunting,
		CurrentClue:     "clue2",
		RemainingClues:  []model.ClueID{"clue2", "clue3", "clue4"},
		MissedCount:     2,
		CompletedCount:  1,
		FastestInterval: &fastest,
		LastSolveTime:   baseTime.Add(10 * time.Minute),
		InjuredUntil:    baseTime.Add(11 * time.Minute),
		HuntStartedAt:   baseTime.Add(time.Minute),
		CreatedAt:       baseTime,
		UpdatedAt:       baseTime.Add(10 * time.Minute),
	}
}

func (s *PlayerSuite) TestSaveAndGetPlayer() {
	player := NewPlayer("player-1", "+15551234567")

	s.Require().NoError(s.Store.SavePlayer(s.Ctx, player))

	got, err := s.Store.GetPlayer(s.Ctx, "player-1")
	s.Require().NoError(err)
	s.AssertSamePlayer(player, got)
}

func (s *PlayerSuite) TestFastestIntervalKeepsFullPrecision() {
	player := NewPlayer("player-1", "+15551234567")
	fastest := 2*time.Minute + 3*time.Millisecond + 456*time.Microsecond + 789
	player.FastestInterval = &fastest

	s.Require().NoError(s.Store.SavePlayer(s.Ctx, player))

	got, err := s.Store.GetPlayer(s.Ctx, "player-1")
	s.Require().NoError(err)
	s.Require().NotNil(got.FastestInterval)
	s.Equal(fastest, *got.FastestInterval)
}

func (s *PlayerSuite) TestGetPlayerNotFound() {
	_, err := s.Store.GetPlayer(s.Ctx, "nonexistent")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *PlayerSuite) TestGetPlayerByPhone() {
	player := NewPlayer("player-1", "+15551234567")
	s.Require().NoError(s.Store.SavePlayer(s.Ctx, player))

	got, err := s.Store.GetPlayerByPhone(s.Ctx, "+15551234567")
	s.Require().NoError(err)
	s.Equal(model.PlayerID("player-1"), got.ID)
}

func (s *PlayerSuite) TestGetPlayerByPhoneNotFound() {
	_, err := s.Store.GetPlayerByPhone(s.Ctx, "+15550000000")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *PlayerSuite) TestSavePlayerOverwrites() {
	player := NewPlayer("player-1", "+15551234567")
	s.Require().NoError(s.Store.SavePlayer(s.Ctx, player))

	player.CompletedCount = 2
	player.RemainingClues = []model.ClueID{"clue3", "clue4"}
	player.CurrentClue = "clue3"
	s.Require().NoError(s.Store.SavePlayer(s.Ctx, player))

	got, err := s.Store.GetPlayer(s.Ctx, "player-1")
	s.Require().NoError(err)
	s.Equal(2, got.CompletedCount)
	s.Equal([]model.ClueID{"clue3", "clue4"}, got.RemainingClues)
	s.Equal(model.ClueID("clue3"), got.CurrentClue)
}

func (s *PlayerSuite) TestUnsetOptionalFieldsRoundTrip() {
	player := &model.Player{
		ID:             "player-new",
		PhoneNumber:    "+15557654321",
		Status:         model.StatusNew,
		RemainingClues: []model.ClueID{"clue1"},
		CreatedAt:      baseTime,
		UpdatedAt:      baseTime,
	}
	s.Require().NoError(s.Store.SavePlayer(s.Ctx, player))

	got, err := s.Store.GetPlayer(s.Ctx, "player-new")
	s.Require().NoError(err)
	s.Empty(got.Name)
	s.Empty(got.CurrentClue)
	s.Nil(got.FastestInterval)
	s.True(got.InjuredUntil.IsZero())
	s.True(got.LastSolveTime.IsZero())
	s.True(got.FinishedAt.IsZero())
}

func (s *PlayerSuite) TestEmptyRemainingCluesRoundTrip() {
	player := NewPlayer("player-1", "+15551234567")
	player.Status = model.StatusFinished
	player.CurrentClue = ""
	player.RemainingClues = nil
	s.Require().NoError(s.Store.SavePlayer(s.Ctx, player))

	got, err := s.Store.GetPlayer(s.Ctx, "player-1")
	s.Require().NoError(err)
	s.Empty(got.RemainingClues)
	s.Equal(model.StatusFinished, got.Status)
}

func (s *PlayerSuite) TestReturnedPlayerIsIndependent() {
	player := NewPlayer("player-1", "+15551234567")
	s.Require().NoError(s.Store.SavePlayer(s.Ctx, player))

	got, err := s.Store.GetPlayer(s.Ctx, "player-1")
	s.Require().NoError(err)
	got.RemainingClues[0] = "tampered"
	got.CompletedCount = 99

	again, err := s.Store.GetPlayer(s.Ctx, "player-1")
	s.Require().NoError(err)
	s.Equal(model.ClueID("clue2"), again.RemainingClues[0])
	s.Equal(1, again.CompletedCount)
}

func (s *PlayerSuite) TestListPlayers() {
	first := NewPlayer("player-1", "+15551234567")
	second := NewPlayer("player-2", "+15557654321")
	second.CreatedAt = first.CreatedAt.Add(time.Minute)
	s.Require().NoError(s.Store.SavePlayer(s.Ctx, second))
	s.Require().NoError(s.Store.SavePlayer(s.Ctx, first))

	players, err := s.Store.ListPlayers(s.Ctx)
	s.Require().NoError(err)
	s.Require().Len(players, 2)
	s.Equal(model.PlayerID("player-1"), players[0].ID)
	s.Equal(model.PlayerID("player-2"), players[1].ID)
}

func (s *PlayerSuite) TestListPlayersEmpty() {
	players, err := s.Store.ListPlayers(s.Ctx)
	s.Require().NoError(err)
	s.Empty(players)
}

func (s *PlayerSuite) TestDeletePlayer() {
	player := NewPlayer("player-1", "+15551234567")
	s.Require().NoError(s.Store.SavePlayer(s.Ctx, player))

	s.Require().NoError(s.Store.DeletePlayer(s.Ctx, "player-1"))

	_, err := s.Store.GetPlayer(s.Ctx, "player-1")
	s.ErrorIs(err, model.ErrPlayerNotFound)
	_, err = s.Store.GetPlayerByPhone(s.Ctx, "+15551234567")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *PlayerSuite) TestDeleteMissingPlayerIsNoop() {
	s.NoError(s.Store.DeletePlayer(s.Ctx, "nonexistent"))
}

// AssertSamePlayer compares players field by field, tolerating time zone
// and monotonic clock differences introduced by serialization
func (s *PlayerSuite) AssertSamePlayer(want, got *model.Player) {
	s.Equal(want.ID, got.ID)
	s.Equal(want.PhoneNumber, got.PhoneNumber)
	s.Equal(want.Name, got.Name)
	s.Equal(want.Status, got.Status)
	s.Equal(want.CurrentClue, got.CurrentClue)
	s.Equal(want.RemainingClues, got.RemainingClues)
	s.Equal(want.MissedCount, got.MissedCount)
	s.Equal(want.CompletedCount, got.CompletedCount)
	s.Require().NotNil(got.FastestInterval)
	s.Equal(*want.FastestInterval, *got.FastestInterval)
	s.True(want.LastSolveTime.Equal(got.LastSolveTime), "LastSolveTime")
	s.True(want.InjuredUntil.Equal(got.InjuredUntil), "InjuredUntil")
	s.True(want.HuntStartedAt.Equal(got.HuntStartedAt), "HuntStartedAt")
	s.True(want.CreatedAt.Equal(got.CreatedAt), "CreatedAt")
}
