package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/vovakirdan/tui-tetris/internal/leaderboard"
)

// Leaderboard is the SQLite backend of the global leaderboard.
type Leaderboard struct {
	store *Store
}

var _ leaderboard.Store = (*Leaderboard)(nil)

// Leaderboard returns a leaderboard backend sharing this database.
// Closing it closes the Store.
func (s *Store) Leaderboard() *Leaderboard {
	return &Leaderboard{store: s}
}

// OpenLeaderboard opens the database at dbPath as a leaderboard backend.
func OpenLeaderboard(dbPath string) (*Leaderboard, error) {
	s, err := Open(dbPath)
	if err != nil {
		return nil, err
	}
	return s.Leaderboard(), nil
}

func (l *Leaderboard) Insert(ctx context.Context, e leaderboard.Entry) error {
	_, err := l.store.db.ExecContext(ctx,
		"INSERT INTO leaderboard_entries (name, score, created_ms) VALUES (?, ?, ?)",
		e.Name, e.Score, e.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save leaderboard entry: %w", err)
	}
	return nil
}

func (l *Leaderboard) Top(ctx context.Context, since time.Time, limit int) ([]leaderboard.Entry, error) {
	rows, err := l.store.db.QueryContext(ctx,
		`SELECT name, score, created_ms
		 FROM leaderboard_entries
		 WHERE created_ms >= ?
		 ORDER BY score DESC, created_ms ASC
		 LIMIT ?`,
		since.UnixMilli(), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []leaderboard.Entry
	for rows.Next() {
		var e leaderboard.Entry
		if err := rows.Scan(&e.Name, &e.Score, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

func (l *Leaderboard) CountAbove(ctx context.Context, since time.Time, score int) (int, error) {
	var n int
	err := l.store.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM leaderboard_entries WHERE created_ms >= ? AND score > ?",
		since.UnixMilli(), score,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot count leaderboard entries: %w", err)
	}
	return n, nil
}

func (l *Leaderboard) Close() error {
	return l.store.Close()
}
