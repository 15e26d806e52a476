package factory

import (
	"time"

	"github.com/mcoot/tictacgo/internal/dependencies/mocks"
	"github.com/mcoot/tictacgo/internal/storage/memory"
	"github.com/mcoot/tictacgo/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MemoryStorage *memory.Storage
	MockClock     *mocks.MockClock
	MockIDs       *mocks.MockIDs
}

// NewTestApp creates an App on in-memory storage with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockIDs := mocks.NewMockIDs()

	app := newWithDependencies(store, mockClock, mockIDs, testutil.NopLogger())

	return &TestApp{
		App:           app,
		MemoryStorage: store,
		MockClock:     mockClock,
		MockIDs:       mockIDs,
	}
}

// Restart builds a second App over the same storage, as if the process had
// been restarted
func (t *TestApp) Restart() *TestApp {
	app := newWithDependencies(t.MemoryStorage, t.MockClock, t.MockIDs, testutil.NopLogger())
	return &TestApp{
		App:           app,
		MemoryStorage: t.MemoryStorage,
		MockClock:     t.MockClock,
		MockIDs:       t.MockIDs,
	}
}
