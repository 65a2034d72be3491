package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/scavengerhunt/internal/storage/storagetest"
)

type StorageSuite struct {
	storagetest.PlayerSuite
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.Store = New()
	s.Ctx = context.Background()
}

func (s *StorageSuite) TestChangingPhoneDropsOldIndex() {
	player := storagetest.NewPlayer("player-1", "+15551234567")
	s.Require().NoError(s.Store.SavePlayer(s.Ctx, player))

	player.PhoneNumber = "+15559999999"
	s.Require().NoError(s.Store.SavePlayer(s.Ctx, player))

	_, err := s.Store.GetPlayerByPhone(s.Ctx, "+15551234567")
	s.Error(err)
	got, err := s.Store.GetPlayerByPhone(s.Ctx, "+15559999999")
	s.Require().NoError(err)
	s.Equal(player.ID, got.ID)
}
