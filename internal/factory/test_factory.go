package factory

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/kmuir/dirtyminds-go/internal/dependencies/mocks"
	"github.com/kmuir/dirtyminds-go/internal/model"
	"github.com/kmuir/dirtyminds-go/internal/services/round"
	"github.com/kmuir/dirtyminds-go/internal/storage/memory"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	app := newWithDependencies(store, mockClock, mockRandom, round.DefaultConfig(), logger)

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}

// LoadTestRiddles loads a small riddle pool for testing
func (t *TestApp) LoadTestRiddles(n int) error {
	riddles := make([]model.Riddle, n)
	for i := range riddles {
		riddles[i] = model.Riddle{
			Clue:   fmt.Sprintf("Clue %d", i+1),
			Answer: fmt.Sprintf("Answer %d", i+1),
		}
	}
	return t.DeckService.LoadRiddles(riddles)
}
