package events

import (
	"context"

	"github.com/mcoot/scavengerhunt/internal/model"
)

// Publisher delivers game events to downstream consumers.
// Publishing is best effort: the game never rolls back on a publish error.
type Publisher interface {
	Publish(ctx context.Context, event model.Event) error
	Close() error
}

// Nop discards every event
type Nop struct{}

// Ensure Nop implements the interface
var _ Publisher = Nop{}

func (Nop) Publish(context.Context, model.Event) error { return nil }
func (Nop) Close() error                               { return nil }
