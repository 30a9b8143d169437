// Package config provides YAML-based game configuration loading, difficulty
// presets and the environment settings of the leaderboard server.
package config

import (
	"errors"
	"fmt"
)

// TetrisConfig contains all configuration for the falling-block game.
type TetrisConfig struct {
	Timing      TetrisTiming      `yaml:"timing"`
	Scoring     TetrisScoring     `yaml:"scoring"`
	Progression TetrisProgression `yaml:"progression"`
	Difficulty  DifficultyConfig  `yaml:"difficulty"`
}

// TetrisTiming defines lock-delay and presentation timings, in milliseconds.
type TetrisTiming struct {
	LockDelayMS    int `yaml:"lock_delay_ms"`    // Grounded time before a forced lock
	MoveResetCap   int `yaml:"move_reset_cap"`   // Grounded moves allowed before a forced lock
	ComboWindowMS  int `yaml:"combo_window_ms"`  // Max gap between clears that keeps a combo
	MessageMS      int `yaml:"message_ms"`       // How long transient status messages stay up
	WinCountdownMS int `yaml:"win_countdown_ms"` // Countdown before play resumes after a win
}

// TetrisScoring defines points, the winning score and announced milestones.
type TetrisScoring struct {
	LinePoints  []int `yaml:"line_points"` // Points for 1, 2, 3 and 4 rows at once
	ComboBonus  int   `yaml:"combo_bonus"`
	TargetScore int   `yaml:"target_score"`
	Milestones  []int `yaml:"milestones"`
}

// TetrisProgression defines how the drop interval shrinks with each wave.
type TetrisProgression struct {
	LinesPerWave      int `yaml:"lines_per_wave"`
	InitialIntervalMS int `yaml:"initial_interval_ms"`
	IntervalStepMS    int `yaml:"interval_step_ms"`
	MinIntervalMS     int `yaml:"min_interval_ms"`
}

// DifficultyConfig toggles the difficulty progression system.
type DifficultyConfig struct {
	Enabled bool `yaml:"enabled"` // When false waves never speed up gravity
}

// Validation errors.
var (
	ErrInvalidTiming      = errors.New("config: timings must be positive")
	ErrInvalidScoring     = errors.New("config: line_points needs 1 to 4 non-negative entries")
	ErrInvalidProgression = errors.New("config: progression needs positive lines per wave and 0 < min interval <= initial interval")
)

// Validate rejects values that would break the game rules.
func (c TetrisConfig) Validate() error {
	t := c.Timing
	if t.LockDelayMS <= 0 || t.MoveResetCap <= 0 || t.ComboWindowMS <= 0 || t.MessageMS < 0 || t.WinCountdownMS < 0 {
		return ErrInvalidTiming
	}

	s := c.Scoring
	if len(s.LinePoints) == 0 || len(s.LinePoints) > 4 || s.ComboBonus < 0 || s.TargetScore < 0 {
		return ErrInvalidScoring
	}
	for i, p := range s.LinePoints {
		if p < 0 {
			return fmt.Errorf("%w: line_points[%d] = %d", ErrInvalidScoring, i, p)
		}
	}

	p := c.Progression
	if p.LinesPerWave <= 0 || p.MinIntervalMS <= 0 || p.InitialIntervalMS < p.MinIntervalMS || p.IntervalStepMS < 0 {
		return ErrInvalidProgression
	}
	return nil
}
