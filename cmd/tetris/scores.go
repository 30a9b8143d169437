package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var (
	flagScoresClear       bool
	flagScoresInteractive bool
	flagScoresAll         bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show local high scores",
	Long: `Display the top 10 local scores and overall statistics.

With --interactive, opens a scoreboard screen that also shows this week's
global leaderboard when --leaderboard-url is set.

Examples:
  tetris scores
  tetris scores --all
  tetris scores --interactive
  tetris scores --clear`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all local scores")
	scoresCmd.Flags().BoolVar(&flagScoresAll, "all", false, "List every recorded run instead of the top 10")
	scoresCmd.Flags().BoolVarP(&flagScoresInteractive, "interactive", "i", false, "Open the interactive scoreboard")
}

func runScores(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearScores(tetris.GameID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Local scores cleared.")
		return
	}

	if flagScoresInteractive {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		var board tui.Leaderboard
		if client := leaderboardClient(); client != nil {
			board = client
		}
		if err := tui.RunScoreboard(tetris.GameID, store, board, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error running scoreboard: %v\n", err)
			os.Exit(1)
		}
		return
	}

	var scores []storage.ScoreEntry
	if flagScoresAll {
		scores, err = store.AllScores(tetris.GameID)
	} else {
		scores, err = store.TopScores(tetris.GameID, 10)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("High Scores - Tetris")
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'tetris play' to set the first high score!")
		return
	}

	fmt.Printf("  %-4s  %-20s  %-8s  %-5s  %-4s  %s\n", "Rank", "Name", "Score", "Lines", "Wave", "Date")
	fmt.Printf("  %-4s  %-20s  %-8s  %-5s  %-4s  %s\n", "----", "----", "-----", "-----", "----", "----")
	for i, entry := range scores {
		name := entry.Name
		if entry.ReachedTarget {
			name += " *"
		}
		fmt.Printf("  %-4d  %-20s  %-8d  %-5d  %-4d  %s\n",
			i+1, name, entry.Score, entry.Lines, entry.Wave, entry.CreatedAt.Local().Format("2006-01-02 15:04"))
	}

	fmt.Println()
	stats, err := store.GetGameStats(tetris.GameID)
	if err == nil {
		fmt.Printf("Best: %d   Games: %d   Average: %.0f   Lines: %d   Wins: %d\n",
			stats.HighScore, stats.GamesCount, stats.AvgScore, stats.TotalLines, stats.Wins)
	}
	fmt.Println("* reached the victory target")
}
