// tetris is a falling-block puzzle game for the terminal.
//
// Usage:
//
//	tetris play                  - Play in this terminal
//	tetris scores                - Show local high scores
//	tetris list                  - List available games
//	tetris serve                 - Start SSH server for remote play
//	tetris leaderboard serve     - Run the weekly leaderboard REST service
//	tetris leaderboard top       - Print the global leaderboard
//	tetris leaderboard submit    - Submit a score by hand
//
// Global flags:
//
//	--fps <rate>             - Set tick rate (default: 60)
//	--seed <value>           - Set RNG seed for reproducible gameplay
//	--db <path>              - Set database path (default: ~/.tetris/scores.db)
//	--leaderboard-url <url>  - Leaderboard API root (default: $TETRIS_LEADERBOARD_URL)
//	--debug                  - Verbose logging
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/leaderboard"
)

var (
	// Global flags
	flagFPS            int
	flagSeed           int64
	flagDBPath         string
	flagLeaderboardURL string
	flagDebug          bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tetris",
	Short: "Tetris - a falling-block puzzle in your terminal",
	Long: `Tetris is a terminal falling-block puzzle with waves of increasing
speed, a victory target and a weekly global leaderboard.

Available commands:
  play         - Play in this terminal
  scores       - View local high scores
  list         - Show available games
  serve        - Start SSH server for remote play
  leaderboard  - Run or query the global leaderboard

Examples:
  tetris play
  tetris play --difficulty hard
  tetris scores
  tetris serve --ssh :2222
  tetris leaderboard serve
  tetris leaderboard top --leaderboard-url http://localhost:8080/api`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.tetris/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLeaderboardURL, "leaderboard-url", os.Getenv("TETRIS_LEADERBOARD_URL"),
		"Leaderboard API root, e.g. http://localhost:8080/api (empty = local scores only)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Verbose logging (the game logs to ~/.tetris/tetris.log)")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(leaderboardCmd)
}

// stderrLogger returns the logger used by the server commands.
func stderrLogger(prefix string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// gameLogger returns the logger for interactive play. The game owns the
// terminal, so it logs to ~/.tetris/tetris.log with --debug and nowhere
// otherwise. The returned func closes the file.
func gameLogger() (*log.Logger, func()) {
	discard := log.New(io.Discard)
	if !flagDebug {
		return discard, func() {}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return discard, func() {}
	}
	dir := filepath.Join(home, ".tetris")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return discard, func() {}
	}
	f, err := os.OpenFile(filepath.Join(dir, "tetris.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return discard, func() {}
	}

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "tetris",
		Level:           log.DebugLevel,
	})
	return logger, func() { f.Close() }
}

// leaderboardClient returns the configured client, or nil for local play.
func leaderboardClient() *leaderboard.Client {
	if flagLeaderboardURL == "" {
		return nil
	}
	return leaderboard.NewClient(flagLeaderboardURL)
}

// applyGameFlags passes the config and difficulty flags to the game.
func applyGameFlags(configPath, difficulty string) {
	tetris.SetConfigPath(configPath)
	tetris.SetDifficultyPreset(difficulty)
}
