package leaderboard

import (
	"context"
	"slices"
	"sync"
	"time"
)

// MemoryStore keeps entries in process memory. Everything is lost on exit.
type MemoryStore struct {
	mu      sync.RWMutex
	entries []Entry
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Insert(_ context.Context, e Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, e)
	return nil
}

func (m *MemoryStore) Top(_ context.Context, since time.Time, limit int) ([]Entry, error) {
	if limit <= 0 {
		return nil, nil
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	cutoff := since.UnixMilli()
	out := make([]Entry, 0, min(limit, len(m.entries)))
	for _, e := range m.entries {
		if e.Timestamp >= cutoff {
			out = append(out, e)
		}
	}
	slices.SortStableFunc(out, func(a, b Entry) int {
		switch {
		case less(a, b):
			return -1
		case less(b, a):
			return 1
		}
		return 0
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MemoryStore) CountAbove(_ context.Context, since time.Time, score int) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	cutoff := since.UnixMilli()
	n := 0
	for _, e := range m.entries {
		if e.Timestamp >= cutoff && e.Score > score {
			n++
		}
	}
	return n, nil
}

func (m *MemoryStore) Close() error { return nil }
