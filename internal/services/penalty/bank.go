package penalty

import (
	"slices"

	"github.com/mcoot/scavengerhunt/internal/dependencies/random"
	"github.com/mcoot/scavengerhunt/internal/model"
)

var defaultPhrases = []string{
	"You tripped over a garden gnome and sprained your ankle",
	"A rogue seagull made off with your sandwich",
	"You walked face first into a sliding door",
	"You stubbed your toe on a suspiciously placed brick",
	"A squirrel bit you while you were looking the wrong way",
	"You got tangled in a string of fairy lights",
	"You slipped on a banana peel like it was 1928",
	"A wasp took exception to your guess",
	"You sat on a cactus, do not ask how",
	"You pulled a muscle shouting the wrong word",
}

// Bank holds the flavor text describing an injury
type Bank struct {
	phrases []string
}

// New creates a bank from the given phrases
func New(phrases []string) (*Bank, error) {
	if len(phrases) == 0 {
		return nil, model.ErrEmptyPenaltyBank
	}
	return &Bank{phrases: slices.Clone(phrases)}, nil
}

// Default returns the built-in bank
func Default() *Bank {
	return &Bank{phrases: slices.Clone(defaultPhrases)}
}

// Pick returns a random phrase
func (b *Bank) Pick(r random.Random) string {
	return random.Choice(r, b.phrases)
}

// Phrases returns every phrase in the bank
func (b *Bank) Phrases() []string {
	return slices.Clone(b.phrases)
}
