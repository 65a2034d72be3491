package twilio

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twilio/twilio-go/client"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/mcoot/scavengerhunt/internal/testutil"
)

type fakeCreator struct {
	calls  []*openapi.CreateMessageParams
	errors []error
}

func (f *fakeCreator) CreateMessage(params *openapi.CreateMessageParams) (*openapi.ApiV2010Message, error) {
	f.calls = append(f.calls, params)
	if len(f.errors) > 0 {
		err := f.errors[0]
		f.errors = f.errors[1:]
		if err != nil {
			return nil, err
		}
	}
	sid := "SM123"
	return &openapi.ApiV2010Message{Sid: &sid}, nil
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.FromNumber = "+15550001111"
	cfg.InitialInterval = time.Millisecond
	return cfg
}

func TestSendText(t *testing.T) {
	fake := &fakeCreator{}
	gw := newWithCreator(fake, testConfig(), testutil.NopLogger())

	require.NoError(t, gw.SendText(context.Background(), "+15551234567", "hello"))

	require.Len(t, fake.calls, 1)
	params := fake.calls[0]
	assert.Equal(t, "+15551234567", *params.To)
	assert.Equal(t, "+15550001111", *params.From)
	assert.Equal(t, "hello", *params.Body)
	assert.Nil(t, params.MediaUrl)
}

func TestSendPicture(t *testing.T) {
	fake := &fakeCreator{}
	gw := newWithCreator(fake, testConfig(), testutil.NopLogger())

	require.NoError(t, gw.SendPicture(context.Background(), "+15551234567", "Clue 1", "https://example.com/clue01.jpg"))

	require.Len(t, fake.calls, 1)
	params := fake.calls[0]
	assert.Equal(t, "Clue 1", *params.Body)
	require.NotNil(t, params.MediaUrl)
	assert.Equal(t, []string{"https://example.com/clue01.jpg"}, *params.MediaUrl)
}

func TestRetriesTransientFailures(t *testing.T) {
	fake := &fakeCreator{errors: []error{
		errors.New("connection reset"),
		&client.TwilioRestError{Status: 503, Message: "unavailable"},
	}}
	gw := newWithCreator(fake, testConfig(), testutil.NopLogger())

	require.NoError(t, gw.SendText(context.Background(), "+15551234567", "hello"))
	assert.Len(t, fake.calls, 3)
}

func TestGivesUpAfterMaxRetries(t *testing.T) {
	boom := errors.New("connection reset")
	fake := &fakeCreator{errors: []error{boom, boom, boom, boom, boom}}
	gw := newWithCreator(fake, testConfig(), testutil.NopLogger())

	err := gw.SendText(context.Background(), "+15551234567", "hello")
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Len(t, fake.calls, 4)
}

func TestClientErrorsAreNotRetried(t *testing.T) {
	fake := &fakeCreator{errors: []error{
		&client.TwilioRestError{Status: 400, Code: 21211, Message: "invalid 'To' phone number"},
	}}
	gw := newWithCreator(fake, testConfig(), testutil.NopLogger())

	err := gw.SendText(context.Background(), "+1", "hello")
	require.Error(t, err)
	assert.Len(t, fake.calls, 1)

	var restErr *client.TwilioRestError
	assert.ErrorAs(t, err, &restErr)
}

func TestRateLimitIsRetried(t *testing.T) {
	fake := &fakeCreator{errors: []error{&client.TwilioRestError{Status: 429}}}
	gw := newWithCreator(fake, testConfig(), testutil.NopLogger())

	require.NoError(t, gw.SendText(context.Background(), "+15551234567", "hello"))
	assert.Len(t, fake.calls, 2)
}

func TestCancelledContextStopsRetries(t *testing.T) {
	boom := errors.New("connection reset")
	fake := &fakeCreator{errors: []error{boom, boom, boom, boom}}
	cfg := testConfig()
	cfg.InitialInterval = time.Hour
	gw := newWithCreator(fake, cfg, testutil.NopLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := gw.SendText(ctx, "+15551234567", "hello")
	require.Error(t, err)
	assert.LessOrEqual(t, len(fake.calls), 1)
}

func TestNewRequiresCredentials(t *testing.T) {
	_, err := New(Config{FromNumber: "+15550001111"}, testutil.NopLogger())
	assert.Error(t, err)

	_, err = New(Config{AccountSID: "AC1", AuthToken: "token"}, testutil.NopLogger())
	assert.Error(t, err)

	gw, err := New(Config{AccountSID: "AC1", AuthToken: "token", FromNumber: "+15550001111"}, testutil.NopLogger())
	require.NoError(t, err)
	assert.NotNil(t, gw)
}
