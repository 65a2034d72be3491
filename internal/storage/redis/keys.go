package redis

import (
	"fmt"

	"github.com/mcoot/scavengerhunt/internal/model"
)

// Key prefix for all hunt-related data
const keyPrefix = "hunt"

// playerKey returns the Redis key for a Player
func playerKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:player:%s", keyPrefix, id)
}

// phoneIndexKey returns the Redis key for the phone number -> player_id index
func phoneIndexKey(phoneNumber string) string {
	return fmt.Sprintf("%s:idx:phone:%s", keyPrefix, phoneNumber)
}

// playersIndexKey returns the Redis key for the SET of all player keys
func playersIndexKey() string {
	return fmt.Sprintf("%s:idx:players", keyPrefix)
}
