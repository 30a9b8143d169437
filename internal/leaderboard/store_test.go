package leaderboard

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exerciseStore checks the Store contract against an empty store.
func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()
	season := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	entries := []Entry{
		{Name: "stale", Score: 9000, Timestamp: season.Add(-time.Hour).UnixMilli()},
		{Name: "a", Score: 300, Timestamp: season.Add(1 * time.Hour).UnixMilli()},
		{Name: "b", Score: 700, Timestamp: season.Add(2 * time.Hour).UnixMilli()},
		{Name: "c", Score: 300, Timestamp: season.Add(3 * time.Hour).UnixMilli()},
	}
	for _, e := range entries {
		require.NoError(t, s.Insert(ctx, e))
	}

	top, err := s.Top(ctx, season, 10)
	require.NoError(t, err)
	require.Len(t, top, 3)
	assert.Equal(t, []string{"b", "a", "c"}, []string{top[0].Name, top[1].Name, top[2].Name})
	assert.Equal(t, entries[2].Timestamp, top[0].Timestamp)

	top, err = s.Top(ctx, season, 1)
	require.NoError(t, err)
	assert.Len(t, top, 1)

	n, err := s.CountAbove(ctx, season, 300)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = s.CountAbove(ctx, season.Add(-2*time.Hour), 300)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	defer s.Close()
	exerciseStore(t, s)

	top, err := s.Top(context.Background(), time.Time{}, 0)
	require.NoError(t, err)
	assert.Empty(t, top)
}

// TestPostgresStore runs against a real database when TETRIS_TEST_POSTGRES_URL is set.
func TestPostgresStore(t *testing.T) {
	url := os.Getenv("TETRIS_TEST_POSTGRES_URL")
	if url == "" {
		t.Skip("TETRIS_TEST_POSTGRES_URL not set")
	}
	ctx := context.Background()

	s, err := OpenPostgres(ctx, url)
	require.NoError(t, err)
	defer s.Close()

	_, err = s.pool.Exec(ctx, `TRUNCATE leaderboard_entries`)
	require.NoError(t, err)
	exerciseStore(t, s)
}

func TestOpenPostgresBadURL(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := OpenPostgres(ctx, "postgres://nobody@127.0.0.1:1/none?connect_timeout=1")
	assert.Error(t, err)
}
