package gateway

import "context"

// Gateway sends outbound messages to players and operators.
// The sender identity is configuration of the implementation.
type Gateway interface {
	SendText(ctx context.Context, to, body string) error
	SendPicture(ctx context.Context, to, caption, mediaURL string) error
}
