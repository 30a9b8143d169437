package leaderboard

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore keeps entries in a PostgreSQL table through a pgx pool.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// OpenPostgres connects to url, checks the connection and creates the
// entries table if needed.
func OpenPostgres(ctx context.Context, url string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("leaderboard: failed to create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("leaderboard: failed to ping database: %w", err)
	}

	s := &PostgresStore{pool: pool}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

func (s *PostgresStore) migrate(ctx context.Context) error {
	const schema = `
	CREATE TABLE IF NOT EXISTS leaderboard_entries (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		score INTEGER NOT NULL,
		created_ms BIGINT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_leaderboard_created ON leaderboard_entries(created_ms);
	CREATE INDEX IF NOT EXISTS idx_leaderboard_score ON leaderboard_entries(score DESC);
	`
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("leaderboard: migration failed: %w", err)
	}
	return nil
}

func (s *PostgresStore) Insert(ctx context.Context, e Entry) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO leaderboard_entries (name, score, created_ms) VALUES ($1, $2, $3)`,
		e.Name, e.Score, e.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("leaderboard: failed to insert entry: %w", err)
	}
	return nil
}

func (s *PostgresStore) Top(ctx context.Context, since time.Time, limit int) ([]Entry, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT name, score, created_ms FROM leaderboard_entries
		WHERE created_ms >= $1
		ORDER BY score DESC, created_ms ASC
		LIMIT $2
	`, since.UnixMilli(), limit)
	if err != nil {
		return nil, fmt.Errorf("leaderboard: failed to query entries: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Name, &e.Score, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("leaderboard: failed to scan entry: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *PostgresStore) CountAbove(ctx context.Context, since time.Time, score int) (int, error) {
	var n int
	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM leaderboard_entries WHERE created_ms >= $1 AND score > $2`,
		since.UnixMilli(), score,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("leaderboard: failed to count entries: %w", err)
	}
	return n, nil
}

// Close closes the connection pool.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
