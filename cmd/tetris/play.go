package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-tetris/internal/audio"
	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagMute       bool
	flagVolume     float64
	flagName       string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play Tetris",
	Long: `Start a game in this terminal.

Controls:
  Left/Right, A/D   - Move
  Up, W, X          - Rotate clockwise
  Down, S           - Soft drop
  Space             - Hard drop
  C                 - Hold (continue after a win)
  F                 - Finish after a win
  P/Esc             - Pause
  R                 - Restart (after game over)
  M                 - Mute
  ?                 - All keys
  Q/Ctrl+C          - Quit

Difficulty options:
  easy   - Longer lock delay, slower waves
  normal - Standard rules
  hard   - Faster start, shorter lock delay
  fixed  - No speed-ups between waves

Examples:
  tetris play
  tetris play --difficulty easy
  tetris play --config ./my-tetris.yaml
  tetris play --mute --seed 42`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Start with sound muted")
	playCmd.Flags().Float64Var(&flagVolume, "volume", audio.DefaultConfig().Volume, "Sound volume from 0 to 1")
	playCmd.Flags().StringVar(&flagName, "name", os.Getenv("USER"), "Default leaderboard name")
}

func runPlay(_ *cobra.Command, _ []string) {
	if _, err := config.ParsePreset(flagDifficulty); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	applyGameFlags(flagConfig, flagDifficulty)

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	logger, closeLog := gameLogger()
	defer closeLog()

	game, err := registry.Create(tetris.GameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	player := audio.NewPlayer(audio.Config{Enabled: true, Volume: flagVolume}, logger)
	player.Start()
	if flagMute {
		player.ToggleMute()
	}

	opts := []tui.Option{
		tui.WithLogger(logger),
		tui.WithSoundPlayer(player),
		tui.WithPlayerName(flagName),
	}
	if client := leaderboardClient(); client != nil {
		logger.Info("leaderboard enabled", "url", client.BaseURL())
		opts = append(opts, tui.WithLeaderboard(client))
	}

	runErr := tui.Run(game, store, cfg, opts...)

	player.Stop()
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
