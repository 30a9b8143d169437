package core

import "time"

// Event is raised by the simulation for the host to react to (sounds,
// messages, score persistence). Events are queued and drained with
// Sim.DrainEvents.
type Event interface {
	tetrisEvent()
}

// PieceLockedEvent is raised whenever a piece merges into the board.
type PieceLockedEvent struct {
	Type     PieceType
	HardDrop bool
}

func (PieceLockedEvent) tetrisEvent() {}

// LinesClearedEvent is raised when a lock completes one or more rows.
type LinesClearedEvent struct {
	Count  int
	Combo  int
	Points int
}

func (LinesClearedEvent) tetrisEvent() {}

// WaveIncreasedEvent is raised when total lines advance the wave.
type WaveIncreasedEvent struct {
	Wave     int
	Interval time.Duration
}

func (WaveIncreasedEvent) tetrisEvent() {}

// MilestoneEvent is raised the first time the score reaches a threshold.
type MilestoneEvent struct {
	Threshold int
	Score     int
}

func (MilestoneEvent) tetrisEvent() {}

// RotatedEvent is raised after a successful rotation.
type RotatedEvent struct {
	Kick int // Horizontal offset applied by the wall kick
}

func (RotatedEvent) tetrisEvent() {}

// HeldEvent is raised when the player swaps the current piece into hold.
type HeldEvent struct {
	Held PieceType
}

func (HeldEvent) tetrisEvent() {}

// WinEvent is raised once per run when the target score is reached.
// The simulation stops until Continue is called.
type WinEvent struct {
	Score int
}

func (WinEvent) tetrisEvent() {}

// GameOverEvent is raised when a freshly spawned piece cannot be placed.
type GameOverEvent struct {
	Score         int
	Lines         int
	Wave          int
	ReachedTarget bool
}

func (GameOverEvent) tetrisEvent() {}
