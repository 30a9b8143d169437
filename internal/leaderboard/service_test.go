package leaderboard

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock is a settable time source shared with server goroutines.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func newTestService(t *testing.T, opts ...Option) (*Service, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)}
	opts = append([]Option{WithClock(clock.now)}, opts...)
	svc := NewService(NewMemoryStore(), opts...)
	t.Cleanup(func() { _ = svc.Close() })
	return svc, clock
}

func TestSubmitRanks(t *testing.T) {
	svc, clock := newTestService(t)
	ctx := context.Background()

	res, err := svc.Submit(ctx, "alice", 500)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Rank)

	clock.advance(time.Minute)
	res, err = svc.Submit(ctx, "bob", 900)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Rank)

	clock.advance(time.Minute)
	res, err = svc.Submit(ctx, "", 700)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Rank)
	assert.Equal(t, AnonymousName, res.Entry.Name)
	assert.Equal(t, 5, res.Board.DaysUntilReset)

	names := make([]string, 0, len(res.Board.Scores))
	for _, e := range res.Board.Scores {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"bob", AnonymousName, "alice"}, names)
}

func TestSubmitTiesShareRank(t *testing.T) {
	svc, clock := newTestService(t)
	ctx := context.Background()

	_, err := svc.Submit(ctx, "first", 300)
	require.NoError(t, err)
	clock.advance(time.Second)
	res, err := svc.Submit(ctx, "second", 300)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Rank)

	board, err := svc.Board(ctx, 0)
	require.NoError(t, err)
	require.Len(t, board.Scores, 2)
	assert.Equal(t, "first", board.Scores[0].Name, "earlier entry wins the tie")
}

func TestSubmitRejectsInvalid(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Submit(ctx, "zero", 0)
	assert.ErrorIs(t, err, ErrInvalidScore)
	_, err = svc.Submit(ctx, "bell\a", 10)
	assert.ErrorIs(t, err, ErrInvalidName)

	board, err := svc.Board(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, board.Scores)
	assert.NotNil(t, board.Scores, "an empty board still encodes as a list")
}

func TestBoardLimit(t *testing.T) {
	svc, clock := newTestService(t, WithLimit(3))
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		_, err := svc.Submit(ctx, "p", i*100)
		require.NoError(t, err)
		clock.advance(time.Second)
	}

	board, err := svc.Board(ctx, 0)
	require.NoError(t, err)
	require.Len(t, board.Scores, 3)
	assert.Equal(t, 500, board.Scores[0].Score)

	board, err = svc.Board(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, board.Scores, 2)

	board, err = svc.Board(ctx, 50)
	require.NoError(t, err)
	assert.Len(t, board.Scores, 3, "limit is capped at the service size")
}

func TestBoardWeeklyReset(t *testing.T) {
	svc, clock := newTestService(t)
	ctx := context.Background()

	_, err := svc.Submit(ctx, "old", 5000)
	require.NoError(t, err)

	clock.advance(SeasonLength)
	res, err := svc.Submit(ctx, "new", 100)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Rank, "last week's scores do not count")
	require.Len(t, res.Board.Scores, 1)
	assert.Equal(t, "new", res.Board.Scores[0].Name)
}
