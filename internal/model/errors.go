package model

import "errors"

// Common errors used across the application
var (
	// Player errors
	ErrPlayerNotFound     = errors.New("player not found")
	ErrInvalidPhoneNumber = errors.New("invalid phone number")
	ErrMissingBody        = errors.New("inbound message has no body")

	// State machine errors
	ErrUnknownStatus    = errors.New("unknown player status")
	ErrNoCurrentClue    = errors.New("player has no current clue")
	ErrNoCluesRemaining = errors.New("no clues remaining")

	// Catalog errors
	ErrClueNotFound  = errors.New("clue not found")
	ErrEmptyCatalog  = errors.New("clue catalog is empty")
	ErrDuplicateClue = errors.New("duplicate clue id")
	ErrInvalidClue   = errors.New("invalid clue")

	// Penalty errors
	ErrEmptyPenaltyBank = errors.New("penalty bank is empty")
)
