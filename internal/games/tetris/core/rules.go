package core

import (
	"errors"
	"time"
)

// Rules holds the tunable timing and scoring parameters of a run.
// DefaultRules matches the classic game exactly.
type Rules struct {
	LockDelay    time.Duration // Grounded time before a forced lock
	MoveResetCap int           // Grounded moves/rotations allowed before a forced lock
	ComboWindow  time.Duration // Max gap between clears that keeps a combo alive

	LinePoints [5]int // Points by lines cleared at once, index 0 unused
	ComboBonus int    // Flat bonus when the combo count exceeds 1

	TargetScore int   // Score that wins the run
	Milestones  []int // Score thresholds announced once per run

	LinesPerWave    int
	InitialInterval time.Duration
	IntervalStep    time.Duration
	MinInterval     time.Duration
	WavesSpeedUp    bool // When false the drop interval never changes
}

// DefaultRules returns the standard rule set.
func DefaultRules() Rules {
	return Rules{
		LockDelay:       2000 * time.Millisecond,
		MoveResetCap:    15,
		ComboWindow:     3000 * time.Millisecond,
		LinePoints:      [5]int{0, 5, 15, 30, 50},
		ComboBonus:      50,
		TargetScore:     5000,
		Milestones:      []int{3000, 4000, 5000},
		LinesPerWave:    15,
		InitialInterval: 1000 * time.Millisecond,
		IntervalStep:    50 * time.Millisecond,
		MinInterval:     100 * time.Millisecond,
		WavesSpeedUp:    true,
	}
}

// Validation errors.
var (
	ErrBadLockDelay = errors.New("rules: lock delay must be positive")
	ErrBadInterval  = errors.New("rules: drop intervals must be positive and min <= initial")
	ErrBadWave      = errors.New("rules: lines per wave must be positive")
	ErrBadMoveCap   = errors.New("rules: move reset cap must be positive")
)

// Validate checks the rules for values that would break the state machine.
func (r Rules) Validate() error {
	if r.LockDelay <= 0 {
		return ErrBadLockDelay
	}
	if r.MoveResetCap <= 0 {
		return ErrBadMoveCap
	}
	if r.MinInterval <= 0 || r.InitialInterval < r.MinInterval || r.IntervalStep < 0 {
		return ErrBadInterval
	}
	if r.LinesPerWave <= 0 {
		return ErrBadWave
	}
	return nil
}

// PointsFor returns the base points for clearing n rows at once.
// Counts outside the table score nothing.
func (r Rules) PointsFor(n int) int {
	if n <= 0 || n >= len(r.LinePoints) {
		return 0
	}
	return r.LinePoints[n]
}

// WaveFor returns the wave reached after clearing lines rows in total.
func (r Rules) WaveFor(lines int) int {
	return lines/r.LinesPerWave + 1
}

// IntervalFor returns the gravity interval for a wave, floored at MinInterval.
func (r Rules) IntervalFor(wave int) time.Duration {
	if !r.WavesSpeedUp {
		return r.InitialInterval
	}
	interval := r.InitialInterval - time.Duration(wave-1)*r.IntervalStep
	if interval < r.MinInterval {
		return r.MinInterval
	}
	return interval
}
