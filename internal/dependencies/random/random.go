package random

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
)

const (
	// PlayerIDAlphabet avoids lowercase so IDs read cleanly over SMS
	PlayerIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	RequestIDAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
)

// Random drives every non-deterministic choice in the hunt: the next clue,
// the injury phrase, and generated identifiers.
type Random interface {
	// Intn returns a value in [0, n)
	Intn(n int) int

	// String returns length characters drawn from alphabet
	String(length int, alphabet string) string
}

// Choice returns a random element of items, or the zero value if items is empty
func Choice[T any](r Random, items []T) T {
	var zero T
	if len(items) == 0 {
		return zero
	}
	i := r.Intn(len(items))
	if i < 0 || i >= len(items) {
		return zero
	}
	return items[i]
}

// CryptoRandom backs Random with crypto/rand
type CryptoRandom struct {
	reader io.Reader
}

func New() *CryptoRandom {
	return &CryptoRandom{reader: rand.Reader}
}

func (r *CryptoRandom) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	// Entropy failure is unrecoverable
	v, err := rand.Int(r.reader, big.NewInt(int64(n)))
	if err != nil {
		panic(fmt.Sprintf("random: reading entropy: %v", err))
	}
	return int(v.Int64())
}

func (r *CryptoRandom) String(length int, alphabet string) string {
	if length <= 0 || alphabet == "" {
		return ""
	}
	out := make([]byte, length)
	for i := range out {
		out[i] = alphabet[r.Intn(len(alphabet))]
	}
	return string(out)
}
