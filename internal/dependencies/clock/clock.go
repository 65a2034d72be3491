package clock

import "time"

// Clock is the source of time for hunt transitions. Clue intervals and
// injury expiry are both measured against it, so tests swap in a mock.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in UTC so stored timestamps compare
// equal regardless of which backend round-tripped them.
type SystemClock struct{}

func New() *SystemClock {
	return &SystemClock{}
}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}
