package model

import "time"

// EventType identifies the type of event
type EventType string

const (
	EventPlayerJoined    EventType = "player_joined"
	EventHuntStarted     EventType = "hunt_started"
	EventClueAssigned    EventType = "clue_assigned"
	EventClueSolved      EventType = "clue_solved"
	EventPlayerInjured   EventType = "player_injured"
	EventPlayerRecovered EventType = "player_recovered"
	EventHuntFinished    EventType = "hunt_finished"
	EventTransitionFault EventType = "transition_fault"
)

// Event is the base structure for all events
type Event struct {
	Type        EventType `json:"type"`
	Timestamp   time.Time `json:"timestamp"`
	PlayerID    PlayerID  `json:"player_id"`
	PhoneNumber string    `json:"phone_number"`
	Payload     any       `json:"payload,omitempty"`
}

// HuntStartedPayload contains data for hunt started events
type HuntStartedPayload struct {
	Name string `json:"name"`
}

// ClueAssignedPayload contains data for clue assigned events
type ClueAssignedPayload struct {
	ClueID ClueID `json:"clue_id"`
}

// ClueSolvedPayload contains data for clue solved events
type ClueSolvedPayload struct {
	ClueID    ClueID        `json:"clue_id"`
	Interval  time.Duration `json:"interval"`
	Completed int           `json:"completed"`
	Remaining int           `json:"remaining"`
}

// PlayerInjuredPayload contains data for player injured events
type PlayerInjuredPayload struct {
	ClueID ClueID    `json:"clue_id"`
	Guess  string    `json:"guess"`
	Until  time.Time `json:"until,omitempty"`
	Missed int       `json:"missed"`
}

// HuntFinishedPayload contains data for hunt finished events
type HuntFinishedPayload struct {
	Completed       int            `json:"completed"`
	Missed          int            `json:"missed"`
	FastestInterval *time.Duration `json:"fastest_interval,omitempty"`
}

// TransitionFaultPayload contains data for transition fault events
type TransitionFaultPayload struct {
	Error string `json:"error"`
}
