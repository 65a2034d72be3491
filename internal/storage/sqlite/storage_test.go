package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/scavengerhunt/internal/storage/storagetest"
	"github.com/mcoot/scavengerhunt/internal/testutil"
)

type StorageSuite struct {
	storagetest.PlayerSuite
	path    string
	storage *Storage
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.Ctx = context.Background()
	s.path = filepath.Join(s.T().TempDir(), "hunt.db")

	store, err := New(s.Ctx, s.path, testutil.NopLogger())
	s.Require().NoError(err)

	s.storage = store
	s.Store = store
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
}

func (s *StorageSuite) TestPlayersSurviveReopen() {
	player := storagetest.NewPlayer("player-1", "+15551234567")
	s.Require().NoError(s.storage.SavePlayer(s.Ctx, player))
	s.Require().NoError(s.storage.Close())

	reopened, err := New(s.Ctx, s.path, testutil.NopLogger())
	s.Require().NoError(err)
	s.storage = reopened

	got, err := reopened.GetPlayer(s.Ctx, "player-1")
	s.Require().NoError(err)
	s.AssertSamePlayer(player, got)
}

func (s *StorageSuite) TestPhoneNumberIsUnique() {
	s.Require().NoError(s.storage.SavePlayer(s.Ctx, storagetest.NewPlayer("player-1", "+15551234567")))

	err := s.storage.SavePlayer(s.Ctx, storagetest.NewPlayer("player-2", "+15551234567"))
	s.Error(err)
}

func (s *StorageSuite) TestClueListEncoding() {
	ids := splitClues(joinClues(storagetest.NewPlayer("p", "+1").RemainingClues))
	s.Len(ids, 3)
	s.Nil(splitClues(""))
}
