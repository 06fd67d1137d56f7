package storage

import (
	"context"
	"time"
)

// LogRecord is one persisted action-log entry.
type LogRecord struct {
	ID        string    `json:"id"`
	Label     string    `json:"label"`
	Amount    int       `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}

// Store is the key-value persistence contract for progress state.
//
// SaveFields writes the whole field set and appends log records in one
// write; backends must not leave a partial write behind.
type Store interface {
	LoadFields(ctx context.Context) (map[string]string, error)
	SaveFields(ctx context.Context, fields map[string]string, appended []LogRecord) error
	// ListLog returns the newest limit records in chronological order.
	// A limit <= 0 returns everything.
	ListLog(ctx context.Context, limit int) ([]LogRecord, error)
	Close() error
}
