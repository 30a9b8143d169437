package core

import "time"

// PieceView is a read-only copy of a piece for renderers.
type PieceView struct {
	Type  PieceType
	Shape Shape
	X, Y  int
}

func viewOf(p Piece) PieceView {
	return PieceView{Type: p.Type, Shape: p.Shape.Clone(), X: p.X, Y: p.Y}
}

// Snapshot is a deep copy of everything a host needs to draw a frame or
// compare two runs. Mutating it never affects the simulation.
type Snapshot struct {
	Board   Board
	Current PieceView
	Next    PieceView
	Hold    *PieceView // nil while the hold slot is empty
	GhostY  int

	Score    int
	Lines    int
	Wave     int
	Interval time.Duration
	Combo    int
	Clock    time.Duration
	Locked   int

	Phase        Phase
	LockProgress float64 // Fraction of the lock delay spent grounded, 0..1
	MoveResets   int
	CanHold      bool

	Running       bool
	Won           bool
	GameOver      bool
	ReachedTarget bool
}

// Snapshot returns the current state.
func (s *Sim) Snapshot() Snapshot {
	snap := Snapshot{
		Board:   s.board,
		Current: viewOf(s.current),
		Next:    viewOf(s.next),
		GhostY:  s.current.Y,

		Score:    s.score,
		Lines:    s.lines,
		Wave:     s.wave,
		Interval: s.interval,
		Combo:    s.combo,
		Clock:    s.clock,
		Locked:   s.locked,

		Phase:      s.Phase(),
		MoveResets: s.moveResets,
		CanHold:    s.CanHold(),

		Running:       s.running,
		Won:           s.won,
		GameOver:      s.gameOver,
		ReachedTarget: s.reachedTarget,
	}
	if s.current.Shape != nil {
		snap.GhostY = s.GhostY()
	}
	if s.hasHold {
		h := viewOf(s.hold)
		snap.Hold = &h
	}
	if s.grounded && s.rules.LockDelay > 0 {
		snap.LockProgress = min(1, float64(s.lockTimer)/float64(s.rules.LockDelay))
	}
	return snap
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := uint64(17)
	mix := func(v int) {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}
	for y := range Rows {
		for x := range Cols {
			mix(snap.Board[y][x])
		}
	}
	mix(int(snap.Current.Type))
	mix(snap.Current.X)
	mix(snap.Current.Y)
	for _, c := range snap.Current.Shape.Cells() {
		mix(c[0])
		mix(c[1])
	}
	mix(int(snap.Next.Type))
	if snap.Hold != nil {
		mix(int(snap.Hold.Type))
	}
	mix(snap.Score)
	mix(snap.Lines)
	mix(snap.Wave)
	mix(snap.Combo)
	mix(snap.Locked)
	mix(int(snap.Clock))
	mix(int(snap.Phase))
	return h
}
