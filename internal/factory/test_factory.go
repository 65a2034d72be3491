package factory

import (
	"time"

	"github.com/mcoot/scavengerhunt/internal/dependencies/mocks"
	memoryevents "github.com/mcoot/scavengerhunt/internal/events/memory"
	memorygateway "github.com/mcoot/scavengerhunt/internal/gateway/memory"
	"github.com/mcoot/scavengerhunt/internal/services/catalog"
	"github.com/mcoot/scavengerhunt/internal/services/hunt"
	"github.com/mcoot/scavengerhunt/internal/storage/memory"
	"github.com/mcoot/scavengerhunt/internal/testutil"
)

// TestAlertNumber receives operator alerts in test apps
const TestAlertNumber = "+15550009999"

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock   *mocks.MockClock
	MockRandom  *mocks.MockRandom
	MockGateway *memorygateway.Gateway
	MockEvents  *memoryevents.Publisher
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	return NewTestAppWithGame(hunt.DefaultConfig())
}

// NewTestAppWithGame creates a test App with specific game rules
func NewTestAppWithGame(game hunt.Config) *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()
	mockGateway := memorygateway.New()
	mockEvents := memoryevents.New()

	app := newWithDependencies(
		store, mockGateway, mockEvents, mockClock, mockRandom,
		catalog.Default(), game, "US", TestAlertNumber, testutil.NopLogger(),
	)

	return &TestApp{
		App:         app,
		MockClock:   mockClock,
		MockRandom:  mockRandom,
		MockGateway: mockGateway,
		MockEvents:  mockEvents,
	}
}
