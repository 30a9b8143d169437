package leaderboard

import (
	"context"
	"time"
)

// Store persists leaderboard entries. Implementations must be safe for
// concurrent use.
type Store interface {
	// Insert records an entry.
	Insert(ctx context.Context, e Entry) error
	// Top returns up to limit entries submitted at or after since, best first.
	Top(ctx context.Context, since time.Time, limit int) ([]Entry, error)
	// CountAbove counts entries since the given time that score strictly higher.
	CountAbove(ctx context.Context, since time.Time, score int) (int, error)
	// Close releases the backend.
	Close() error
}
