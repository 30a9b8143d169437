package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Leaderboard backends.
const (
	BackendAuto     = "auto"
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

// ServerConfig holds the leaderboard server settings read from the environment.
type ServerConfig struct {
	Port        string // PORT
	DatabaseURL string // DATABASE_URL: postgres URL or SQLite file path
	Backend     string // LEADERBOARD_BACKEND: auto, memory, sqlite or postgres
	Limit       int    // LEADERBOARD_LIMIT: entries returned by default
}

// DefaultEnvPaths returns the .env locations tried in order.
func DefaultEnvPaths() []string {
	paths := []string{".env", "../.env"}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".tetris", ".env"))
	}
	return paths
}

// LoadEnvFile loads the first .env file found among paths into the process
// environment. Variables already set are not overridden. It returns the
// path that was loaded, or "" when none was found.
func LoadEnvFile(paths ...string) string {
	for _, path := range paths {
		if path == "" {
			continue
		}
		if err := godotenv.Load(path); err == nil {
			return path
		}
	}
	return ""
}

// ServerFromEnv reads the leaderboard server settings from the environment.
func ServerFromEnv() ServerConfig {
	cfg := ServerConfig{
		Port:        os.Getenv("PORT"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		Backend:     strings.ToLower(os.Getenv("LEADERBOARD_BACKEND")),
		Limit:       10,
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.Backend == "" {
		cfg.Backend = BackendAuto
	}
	if n, err := strconv.Atoi(os.Getenv("LEADERBOARD_LIMIT")); err == nil && n > 0 {
		cfg.Limit = n
	}
	return cfg
}

// ResolveBackend decides which backend to use. In auto mode a postgres URL
// selects Postgres, any other non-empty value is a SQLite path, and an empty
// DATABASE_URL keeps scores in memory.
func (c ServerConfig) ResolveBackend() string {
	switch c.Backend {
	case BackendMemory, BackendSQLite, BackendPostgres:
		return c.Backend
	}
	switch {
	case c.DatabaseURL == "":
		return BackendMemory
	case strings.HasPrefix(c.DatabaseURL, "postgres://"), strings.HasPrefix(c.DatabaseURL, "postgresql://"):
		return BackendPostgres
	default:
		return BackendSQLite
	}
}
