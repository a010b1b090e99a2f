package session

import (
	"context"
	"sync"
)

// MemoryStore keeps session state in process memory. Sessions are lost on
// restart; suitable for local runs and tests.
type MemoryStore struct {
	mu     sync.RWMutex
	states map[int64]State
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{states: make(map[int64]State)}
}

func (m *MemoryStore) Get(ctx context.Context, chatID int64) (State, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	state, ok := m.states[chatID]
	return state, ok, nil
}

func (m *MemoryStore) Set(ctx context.Context, chatID int64, state State) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.states[chatID] = state
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, chatID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.states, chatID)
	return nil
}
