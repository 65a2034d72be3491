package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/scavengerhunt/internal/model"
)

func TestPublisherRecordsInOrder(t *testing.T) {
	p := New()
	ctx := context.Background()

	require.NoError(t, p.Publish(ctx, model.Event{Type: model.EventPlayerJoined, PlayerID: "p1"}))
	require.NoError(t, p.Publish(ctx, model.Event{Type: model.EventHuntStarted, PlayerID: "p1"}))

	assert.Equal(t, []model.EventType{model.EventPlayerJoined, model.EventHuntStarted}, p.Types())
	assert.Equal(t, model.PlayerID("p1"), p.Events()[0].PlayerID)

	p.Reset()
	assert.Empty(t, p.Events())
	assert.NoError(t, p.Close())
}
