package storage

import (
	"context"

	"formsbot/internal/models"
)

// Storage defines the interface for fill-history persistence
type Storage interface {
	// RecordFill appends one confirmation outcome to the history
	RecordFill(ctx context.Context, event models.FillEvent) error

	// LastFills returns up to limit most recent fills for a chat, newest first
	LastFills(ctx context.Context, chatID int64, limit int) ([]models.FillEvent, error)

	// Lifecycle
	Initialize(ctx context.Context) error
	Close() error
}
