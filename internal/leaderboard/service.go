package leaderboard

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// Board is the visible state of the current season.
type Board struct {
	Scores         []Entry
	DaysUntilReset int
}

// Result is returned after a submission.
type Result struct {
	Entry Entry
	Rank  int
	Board Board
}

// Service applies the leaderboard rules on top of a Store.
type Service struct {
	store  Store
	limit  int
	logger *log.Logger
	now    func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithLimit sets how many entries a board shows.
func WithLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.limit = n
		}
	}
}

// WithLogger sets the service logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a service over store.
func NewService(store Store, opts ...Option) *Service {
	s := &Service{
		store:  store,
		limit:  DefaultLimit,
		logger: log.New(io.Discard),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Limit returns the board size.
func (s *Service) Limit() int { return s.limit }

// Board returns the best entries of the current season. A limit outside
// 1..Limit() is replaced by Limit().
func (s *Service) Board(ctx context.Context, limit int) (Board, error) {
	if limit <= 0 || limit > s.limit {
		limit = s.limit
	}
	now := s.now()
	scores, err := s.store.Top(ctx, SeasonStart(now), limit)
	if err != nil {
		return Board{}, err
	}
	if scores == nil {
		scores = []Entry{}
	}
	return Board{Scores: scores, DaysUntilReset: DaysUntilReset(now)}, nil
}

// Submit validates and records a score, then reports its rank in the season.
func (s *Service) Submit(ctx context.Context, name string, score int) (Result, error) {
	now := s.now()
	e, err := NewEntry(name, score, now)
	if err != nil {
		return Result{}, err
	}
	if err := s.store.Insert(ctx, e); err != nil {
		return Result{}, err
	}

	above, err := s.store.CountAbove(ctx, SeasonStart(now), e.Score)
	if err != nil {
		return Result{}, fmt.Errorf("leaderboard: rank lookup failed: %w", err)
	}

	board, err := s.Board(ctx, s.limit)
	if err != nil {
		return Result{}, err
	}

	s.logger.Info("score submitted", "name", e.Name, "score", e.Score, "rank", above+1)
	return Result{Entry: e, Rank: above + 1, Board: board}, nil
}

// Close closes the underlying store.
func (s *Service) Close() error {
	return s.store.Close()
}
