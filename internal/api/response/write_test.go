package response

import (
	"encoding/xml"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/scavengerhunt/internal/model"
)

type envelope struct {
	XMLName  xml.Name `xml:"Response"`
	Messages []string `xml:"Message"`
}

func TestTwiML(t *testing.T) {
	rr := httptest.NewRecorder()
	require.NoError(t, TwiML(rr, "Well done Zephyr! <3 & more"))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/xml", rr.Header().Get("Content-Type"))

	var env envelope
	require.NoError(t, xml.Unmarshal(rr.Body.Bytes(), &env))
	assert.Equal(t, []string{"Well done Zephyr! <3 & more"}, env.Messages)
}

func TestNoContent(t *testing.T) {
	rr := httptest.NewRecorder()
	NoContent(rr)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Empty(t, rr.Body.String())
}

func TestPlayerFromModel(t *testing.T) {
	created := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	fastest := 90 * time.Second
	p := &model.Player{
		ID:              "PLAYER000001",
		PhoneNumber:     "+15551234567",
		Name:            "Zephyr",
		Status:          model.StatusHunting,
		CurrentClue:     "clue3",
		RemainingClues:  []model.ClueID{"clue3", "clue4"},
		CompletedCount:  2,
		FastestInterval: &fastest,
		HuntStartedAt:   created,
		CreatedAt:       created,
		UpdatedAt:       created,
	}

	out := PlayerFromModel(p)

	assert.Equal(t, "hunting", out.Status)
	assert.Equal(t, 2, out.RemainingClues)
	require.NotNil(t, out.FastestSeconds)
	assert.InDelta(t, 90.0, *out.FastestSeconds, 0.001)
	assert.Nil(t, out.InjuredUntil)
	assert.Nil(t, out.FinishedAt)
	require.NotNil(t, out.HuntStartedAt)
	assert.True(t, out.HuntStartedAt.Equal(created))
}
