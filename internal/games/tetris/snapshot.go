package tetris

import (
	engine "github.com/vovakirdan/tui-tetris/internal/games/tetris/core"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick   uint64
	State  string // playing, paused, won, countdown, finished, game_over, too_small
	Status string
	Sim    engine.Snapshot
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Tick:   g.tick,
		State:  g.screenState(),
		Status: g.status.text(),
		Sim:    g.sim.Snapshot(),
	}
}

// Hash combines the frame counter with the simulation hash.
func (s *Snapshot) Hash() uint64 {
	const prime = 1099511628211
	return s.Sim.Hash()*prime ^ s.Tick
}
