package model

import "time"

// Standing is a player's position on the leaderboard
type Standing struct {
	Rank            int
	PlayerID        PlayerID
	Name            string
	Status          Status
	Completed       int
	Missed          int
	FastestInterval *time.Duration
}
