package mocks

import (
	"fmt"
	"sync"

	"github.com/mcoot/tictacgo/internal/dependencies/ids"
	"github.com/mcoot/tictacgo/internal/model"
)

// MockIDs hands out queued game IDs, falling back to a numbered sequence
// once the queue is drained
type MockIDs struct {
	mu     sync.Mutex
	queue  []model.GameID
	issued int
}

var _ ids.Generator = (*MockIDs)(nil)

// NewMockIDs creates a MockIDs with the given queued IDs
func NewMockIDs(queued ...model.GameID) *MockIDs {
	return &MockIDs{queue: queued}
}

func (m *MockIDs) NewGameID() model.GameID {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.issued++
	if len(m.queue) > 0 {
		id := m.queue[0]
		m.queue = m.queue[1:]
		return id
	}
	return model.GameID(fmt.Sprintf("game-%d", m.issued))
}

// Queue appends IDs to be returned by subsequent calls
func (m *MockIDs) Queue(values ...model.GameID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = append(m.queue, values...)
}

// Issued reports how many IDs have been handed out
func (m *MockIDs) Issued() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.issued
}
