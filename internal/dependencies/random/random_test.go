package random_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mcoot/scavengerhunt/internal/dependencies/mocks"
	"github.com/mcoot/scavengerhunt/internal/dependencies/random"
)

func TestChoice(t *testing.T) {
	rnd := mocks.NewMockRandom()
	rnd.QueueIntn(2, 7)

	items := []string{"a", "b", "c"}
	assert.Equal(t, "c", random.Choice(rnd, items))
	assert.Equal(t, "", random.Choice(rnd, items), "out of range falls back to zero value")
	assert.Equal(t, 0, random.Choice(rnd, []int(nil)))
}

func TestCryptoRandomString(t *testing.T) {
	rnd := random.New()

	id := rnd.String(12, random.PlayerIDAlphabet)
	assert.Len(t, id, 12)
	for _, c := range id {
		assert.True(t, strings.ContainsRune(random.PlayerIDAlphabet, c))
	}

	assert.Empty(t, rnd.String(0, random.PlayerIDAlphabet))
	assert.Empty(t, rnd.String(5, ""))
}

func TestCryptoRandomIntn(t *testing.T) {
	rnd := random.New()
	for range 50 {
		v := rnd.Intn(3)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 3)
	}
	assert.Equal(t, 0, rnd.Intn(0))
}
