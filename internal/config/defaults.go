package config

import (
	_ "embed"
)

//go:embed defaults/tetris.yaml
var defaultTetrisYAML []byte

// DefaultTetrisConfig returns the default game configuration.
func DefaultTetrisConfig() TetrisConfig {
	return TetrisConfig{
		Timing: TetrisTiming{
			LockDelayMS:    2000,
			MoveResetCap:   15,
			ComboWindowMS:  3000,
			MessageMS:      2000,
			WinCountdownMS: 5000,
		},
		Scoring: TetrisScoring{
			LinePoints:  []int{5, 15, 30, 50},
			ComboBonus:  50,
			TargetScore: 5000,
			Milestones:  []int{3000, 4000, 5000},
		},
		Progression: TetrisProgression{
			LinesPerWave:      15,
			InitialIntervalMS: 1000,
			IntervalStepMS:    50,
			MinIntervalMS:     100,
		},
		Difficulty: DifficultyConfig{
			Enabled: true,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "tetris":
		return defaultTetrisYAML
	default:
		return nil
	}
}
