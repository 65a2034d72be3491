package memory

import (
	"context"
	"sync"

	"github.com/mcoot/scavengerhunt/internal/events"
	"github.com/mcoot/scavengerhunt/internal/model"
)

// Publisher keeps published events in memory
type Publisher struct {
	mu     sync.Mutex
	events []model.Event
}

// Ensure Publisher implements the interface
var _ events.Publisher = (*Publisher)(nil)

// New creates an empty in-memory publisher
func New() *Publisher {
	return &Publisher{}
}

func (p *Publisher) Publish(ctx context.Context, event model.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *Publisher) Close() error {
	return nil
}

// Events returns a copy of everything published so far
func (p *Publisher) Events() []model.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]model.Event, len(p.events))
	copy(out, p.events)
	return out
}

// Types returns the type of each published event, in order
func (p *Publisher) Types() []model.EventType {
	evts := p.Events()
	types := make([]model.EventType, len(evts))
	for i, e := range evts {
		types[i] = e.Type
	}
	return types
}

// Reset discards recorded events
func (p *Publisher) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = nil
}
