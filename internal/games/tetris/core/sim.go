package core

import "time"

// Phase is the lock-delay state of the current piece.
type Phase int

const (
	// PhaseFalling means the piece has clearance below and gravity applies.
	PhaseFalling Phase = iota
	// PhaseGrounded means the piece rests on something and the lock timer runs.
	PhaseGrounded
)

// String returns the phase name.
func (p Phase) String() string {
	if p == PhaseGrounded {
		return "grounded"
	}
	return "falling"
}

// Sim owns the complete state of one run. It is not safe for concurrent use:
// the host serializes ticks and mutators.
type Sim struct {
	rules Rules
	rnd   Randomizer

	board   Board
	current Piece
	next    Piece
	hold    Piece
	hasHold bool
	canHold bool

	score    int
	lines    int
	wave     int
	interval time.Duration

	clock      time.Duration // Sum of all ticked time
	gravity    time.Duration // Time since the last gravity step
	lockTimer  time.Duration // Time spent grounded
	grounded   bool
	moveResets int

	combo      int
	lastClear  time.Duration
	hasCleared bool

	running       bool
	gameOver      bool
	won           bool // Stopped on the win screen, may Continue
	reachedTarget bool
	milestones    []bool
	locked        int // Pieces locked this run

	events []Event
}

// New creates a simulation with the given rules and piece source.
// The run does not begin until Start is called.
func New(rules Rules, rnd Randomizer) (*Sim, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	if rnd == nil {
		rnd = NewUniformRandomizer(time.Now().UnixNano())
	}
	return &Sim{rules: rules, rnd: rnd, wave: 1, interval: rules.InitialInterval}, nil
}

// Rules returns the rule set the simulation was built with.
func (s *Sim) Rules() Rules {
	return s.rules
}

// Start resets every field to its initial value and begins a new run.
func (s *Sim) Start() {
	s.board = Board{}
	s.current = draw(s.rnd)
	s.next = draw(s.rnd)
	s.hold = Piece{}
	s.hasHold = false
	s.canHold = true

	s.score = 0
	s.lines = 0
	s.wave = 1
	s.interval = s.rules.IntervalFor(1)

	s.clock = 0
	s.resetLockState()

	s.combo = 0
	s.lastClear = 0
	s.hasCleared = false

	s.running = true
	s.gameOver = false
	s.won = false
	s.reachedTarget = false
	s.milestones = make([]bool, len(s.rules.Milestones))
	s.locked = 0
	s.events = s.events[:0]
}

// Continue resumes a run stopped on the win screen. The host must measure
// the next Tick's elapsed time from the moment it resumes.
func (s *Sim) Continue() bool {
	if s.running || s.gameOver || !s.won {
		return false
	}
	s.won = false
	s.running = true
	return true
}

// Tick advances the simulation by elapsed wall time.
func (s *Sim) Tick(elapsed time.Duration) {
	if !s.running || elapsed <= 0 {
		return
	}
	s.clock += elapsed
	s.expireCombo()

	if s.grounded {
		if s.board.Collides(s.current, 0, 1) {
			s.lockTimer += elapsed
			if s.lockTimer >= s.rules.LockDelay || s.moveResets >= s.rules.MoveResetCap {
				s.lock(false)
			}
			return
		}
		// Slid off a ledge: gravity takes over again.
		s.resetLockState()
	}

	s.gravity += elapsed
	if s.gravity > s.interval {
		s.gravity = 0
		s.stepDown()
	}
}

// MoveLeft shifts the current piece one column left if possible.
func (s *Sim) MoveLeft() bool {
	return s.shift(-1)
}

// MoveRight shifts the current piece one column right if possible.
func (s *Sim) MoveRight() bool {
	return s.shift(1)
}

func (s *Sim) shift(dx int) bool {
	if !s.running || s.board.Collides(s.current, dx, 0) {
		return false
	}
	s.current.X += dx
	s.noteGroundedMove()
	return true
}

// SoftDrop moves the piece down one row. When blocked it grounds the piece
// instead of locking it.
func (s *Sim) SoftDrop() bool {
	if !s.running {
		return false
	}
	s.gravity = 0
	return s.stepDown()
}

// HardDrop drops the piece to its resting row and locks it immediately.
func (s *Sim) HardDrop() bool {
	if !s.running {
		return false
	}
	s.current.Y += s.dropDistance()
	s.gravity = 0
	s.lock(true)
	return true
}

// RotateCW turns the current piece clockwise, trying horizontal kicks
// 0, -1, +1, -2, +2, ... up to the rotated width. If nothing fits the piece
// is left untouched.
func (s *Sim) RotateCW() bool {
	if !s.running {
		return false
	}
	candidate := s.current
	candidate.Shape = s.current.Shape.RotateCW()

	for _, off := range kickOffsets(candidate.Shape.Width()) {
		if s.board.Collides(candidate, off, 0) {
			continue
		}
		candidate.X += off
		s.current = candidate
		s.noteGroundedMove()
		s.emit(RotatedEvent{Kick: off})
		return true
	}
	return false
}

// kickOffsets returns 0, -1, +1, ..., -limit, +limit.
func kickOffsets(limit int) []int {
	offsets := make([]int, 0, 2*limit+1)
	offsets = append(offsets, 0)
	for m := 1; m <= limit; m++ {
		offsets = append(offsets, -m, m)
	}
	return offsets
}

// Hold swaps the current piece into the hold slot. Allowed once between locks.
func (s *Sim) Hold() bool {
	if !s.running || !s.canHold {
		return false
	}
	outgoing := s.current.Respawn()

	if s.hasHold {
		s.current = s.hold.Respawn()
	} else {
		s.current = s.next
		s.next = draw(s.rnd)
		s.hasHold = true
	}
	s.hold = outgoing
	s.canHold = false
	s.resetLockState()
	s.emit(HeldEvent{Held: outgoing.Type})

	s.checkSpawn()
	return true
}

// stepDown moves the piece one row down. On collision the piece becomes
// grounded; the lock timer starts only when it was not grounded already.
func (s *Sim) stepDown() bool {
	if !s.board.Collides(s.current, 0, 1) {
		s.current.Y++
		if s.grounded {
			s.resetLockState()
		}
		return true
	}
	if !s.grounded {
		s.grounded = true
		s.lockTimer = 0
	}
	return false
}

// noteGroundedMove counts a successful move or rotation against the reset
// cap and restarts the lock timer while under it.
func (s *Sim) noteGroundedMove() {
	if !s.grounded {
		return
	}
	s.moveResets++
	if s.moveResets < s.rules.MoveResetCap {
		s.lockTimer = 0
	}
}

func (s *Sim) resetLockState() {
	s.grounded = false
	s.lockTimer = 0
	s.moveResets = 0
	s.gravity = 0
}

// dropDistance returns how many rows the current piece can fall.
func (s *Sim) dropDistance() int {
	d := 0
	for !s.board.Collides(s.current, 0, d+1) {
		d++
	}
	return d
}

// lock merges the current piece, scores cleared rows and spawns the next one.
func (s *Sim) lock(hard bool) {
	s.board.Merge(s.current)
	s.locked++
	s.emit(PieceLockedEvent{Type: s.current.Type, HardDrop: hard})

	s.resolveClears()
	s.spawnNext()
}

// spawnNext promotes the next piece and re-arms hold.
func (s *Sim) spawnNext() {
	s.current = s.next
	s.next = draw(s.rnd)
	s.canHold = true
	s.resetLockState()
	s.checkSpawn()
}

// checkSpawn ends the run if the fresh current piece overlaps the stack.
func (s *Sim) checkSpawn() {
	if !s.board.Collides(s.current, 0, 0) {
		return
	}
	s.running = false
	s.won = false
	s.gameOver = true
	s.emit(GameOverEvent{
		Score:         s.score,
		Lines:         s.lines,
		Wave:          s.wave,
		ReachedTarget: s.reachedTarget,
	})
}

func (s *Sim) sinceLastClear() time.Duration {
	return s.clock - s.lastClear
}

// expireCombo drops the combo once the window has passed without a clear.
func (s *Sim) expireCombo() {
	if s.combo > 0 && s.hasCleared && s.sinceLastClear() > s.rules.ComboWindow {
		s.combo = 0
	}
}

func (s *Sim) emit(e Event) {
	s.events = append(s.events, e)
}

// DrainEvents returns the events raised since the last call and clears the
// queue. The returned slice is owned by the caller.
func (s *Sim) DrainEvents() []Event {
	if len(s.events) == 0 {
		return nil
	}
	out := make([]Event, len(s.events))
	copy(out, s.events)
	s.events = s.events[:0]
	return out
}

// Running reports whether the simulation accepts ticks and input.
func (s *Sim) Running() bool { return s.running }

// GameOver reports whether the run ended by topping out.
func (s *Sim) GameOver() bool { return s.gameOver }

// Won reports whether the run is stopped on the win screen.
func (s *Sim) Won() bool { return s.won }

// ReachedTarget reports whether the target score was reached this run.
func (s *Sim) ReachedTarget() bool { return s.reachedTarget }

// Score returns the current score.
func (s *Sim) Score() int { return s.score }

// Lines returns the total cleared rows.
func (s *Sim) Lines() int { return s.lines }

// Wave returns the current speed tier.
func (s *Sim) Wave() int { return s.wave }

// Combo returns the current combo count.
func (s *Sim) Combo() int { return s.combo }

// Interval returns the current gravity interval.
func (s *Sim) Interval() time.Duration { return s.interval }

// Clock returns the total simulated time of the run.
func (s *Sim) Clock() time.Duration { return s.clock }

// Phase returns the lock-delay state of the current piece.
func (s *Sim) Phase() Phase {
	if s.grounded {
		return PhaseGrounded
	}
	return PhaseFalling
}

// CanHold reports whether Hold is currently allowed.
func (s *Sim) CanHold() bool { return s.running && s.canHold }

// GhostY returns the row the current piece would land on.
func (s *Sim) GhostY() int {
	return s.current.Y + s.dropDistance()
}
