package storage

import (
	"context"

	"github.com/mcoot/scavengerhunt/internal/model"
)

// Storage defines the interface for player persistence.
// A player is written as a whole; SavePlayer is atomic per player and
// inserts or replaces by ID. Phone numbers are unique.
type Storage interface {
	SavePlayer(ctx context.Context, player *model.Player) error
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)
	GetPlayerByPhone(ctx context.Context, phoneNumber string) (*model.Player, error)
	ListPlayers(ctx context.Context) ([]*model.Player, error)
	DeletePlayer(ctx context.Context, id model.PlayerID) error
}
