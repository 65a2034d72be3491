package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/scavengerhunt/internal/model"
	"github.com/mcoot/scavengerhunt/internal/testutil"
)

func TestPublishEncodesEventAsJSON(t *testing.T) {
	config := mocks.NewTestConfig()
	config.Producer.Return.Successes = true
	producer := mocks.NewSyncProducer(t, config)

	producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		var decoded map[string]any
		if err := json.Unmarshal(val, &decoded); err != nil {
			return err
		}
		if decoded["type"] != string(model.EventClueSolved) {
			return errors.New("unexpected event type")
		}
		if decoded["player_id"] != "p1" {
			return errors.New("unexpected player id")
		}
		return nil
	})

	pub := NewWithProducer(producer, "hunt-events", testutil.NopLogger())
	err := pub.Publish(context.Background(), model.Event{
		Type:      model.EventClueSolved,
		Timestamp: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
		PlayerID:  "p1",
		Payload:   model.ClueSolvedPayload{ClueID: "clue3", Completed: 1, Remaining: 14},
	})
	require.NoError(t, err)
	require.NoError(t, pub.Close())
}

func TestPublishFailure(t *testing.T) {
	config := mocks.NewTestConfig()
	config.Producer.Return.Successes = true
	producer := mocks.NewSyncProducer(t, config)
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	pub := NewWithProducer(producer, "hunt-events", testutil.NopLogger())
	err := pub.Publish(context.Background(), model.Event{Type: model.EventPlayerJoined, PlayerID: "p1"})

	require.Error(t, err)
	assert.ErrorIs(t, err, sarama.ErrOutOfBrokers)
	require.NoError(t, pub.Close())
}
