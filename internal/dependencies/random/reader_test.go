package random

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("entropy unavailable")
}

func TestIntnPanicsWhenEntropyFails(t *testing.T) {
	r := &CryptoRandom{reader: failingReader{}}

	assert.PanicsWithValue(t, "random: reading entropy: entropy unavailable", func() {
		r.Intn(10)
	})
	assert.Panics(t, func() {
		r.String(4, PlayerIDAlphabet)
	})
	assert.Equal(t, 0, r.Intn(0))
}
