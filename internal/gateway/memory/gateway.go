package memory

import (
	"context"
	"sync"

	"github.com/mcoot/scavengerhunt/internal/gateway"
)

// Message is an outbound message captured by the gateway
type Message struct {
	To       string
	Body     string
	MediaURL string // empty for plain text
}

// Gateway records outbound messages instead of sending them
type Gateway struct {
	mu       sync.Mutex
	messages []Message
	failWith error
}

// Ensure Gateway implements the interface
var _ gateway.Gateway = (*Gateway)(nil)

// New creates an empty recording gateway
func New() *Gateway {
	return &Gateway{}
}

// FailWith makes every subsequent send return err. Pass nil to recover.
func (g *Gateway) FailWith(err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.failWith = err
}

func (g *Gateway) SendText(ctx context.Context, to, body string) error {
	return g.record(Message{To: to, Body: body})
}

func (g *Gateway) SendPicture(ctx context.Context, to, caption, mediaURL string) error {
	return g.record(Message{To: to, Body: caption, MediaURL: mediaURL})
}

func (g *Gateway) record(msg Message) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.failWith != nil {
		return g.failWith
	}
	g.messages = append(g.messages, msg)
	return nil
}

// Messages returns a copy of everything sent so far
func (g *Gateway) Messages() []Message {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]Message, len(g.messages))
	copy(out, g.messages)
	return out
}

// SentTo returns the messages addressed to a number
func (g *Gateway) SentTo(to string) []Message {
	var out []Message
	for _, msg := range g.Messages() {
		if msg.To == to {
			out = append(out, msg)
		}
	}
	return out
}

// Reset discards recorded messages
func (g *Gateway) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.messages = nil
}
