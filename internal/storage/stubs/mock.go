package stubs

import (
	"context"
	"sort"
	"sync"

	"formsbot/internal/models"
)

// MockDB is an in-memory implementation of the Storage interface for testing
type MockDB struct {
	mu     sync.RWMutex
	events []models.FillEvent
}

// NewMockDB creates a new mock database
func NewMockDB() *MockDB {
	return &MockDB{
		events: make([]models.FillEvent, 0),
	}
}

// Initialize is a no-op for the mock
func (m *MockDB) Initialize(ctx context.Context) error {
	return nil
}

// RecordFill appends one confirmation outcome
func (m *MockDB) RecordFill(ctx context.Context, event models.FillEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.events = append(m.events, event)
	return nil
}

// LastFills returns the most recent fills for a chat, newest first
func (m *MockDB) LastFills(ctx context.Context, chatID int64, limit int) ([]models.FillEvent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var events []models.FillEvent
	for _, e := range m.events {
		if e.ChatID == chatID {
			events = append(events, e)
		}
	}

	// Newest first
	sort.Slice(events, func(i, j int) bool {
		return events[i].Time.After(events[j].Time)
	})

	if limit > 0 && len(events) > limit {
		events = events[:limit]
	}

	return events, nil
}

// Close is a no-op for the mock
func (m *MockDB) Close() error {
	return nil
}
