package penalty

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/scavengerhunt/internal/dependencies/mocks"
	"github.com/mcoot/scavengerhunt/internal/dependencies/random"
	"github.com/mcoot/scavengerhunt/internal/model"
)

func TestPickUsesRandomIndex(t *testing.T) {
	bank, err := New([]string{"first", "second", "third"})
	require.NoError(t, err)

	rnd := mocks.NewMockRandom()
	rnd.QueueIntn(2, 0)

	assert.Equal(t, "third", bank.Pick(rnd))
	assert.Equal(t, "first", bank.Pick(rnd))
}

func TestPickAlwaysReturnsKnownPhrase(t *testing.T) {
	bank := Default()
	rnd := random.New()

	for i := 0; i < 50; i++ {
		assert.Contains(t, bank.Phrases(), bank.Pick(rnd))
	}
}

func TestNewRejectsEmpty(t *testing.T) {
	_, err := New(nil)
	assert.ErrorIs(t, err, model.ErrEmptyPenaltyBank)
}

func TestNewCopiesPhrases(t *testing.T) {
	phrases := []string{"ouch"}
	bank, err := New(phrases)
	require.NoError(t, err)

	phrases[0] = "changed"
	assert.Equal(t, []string{"ouch"}, bank.Phrases())
}
