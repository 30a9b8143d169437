package core

import (
	"testing"
	"time"
)

// clearWithO prepares rows at the floor that are full except columns 8 and
// 9, then hard-drops an O into the gap. The current piece must be an O.
func clearWithO(t *testing.T, s *Sim, rows int) {
	t.Helper()
	for i := range rows {
		fillRowExcept(&s.board, Rows-1-i, 8, 9)
	}
	for s.MoveRight() {
	}
	if !s.HardDrop() {
		t.Fatal("hard drop failed")
	}
}

func TestRulesPointsFor(t *testing.T) {
	r := DefaultRules()
	tests := []struct {
		lines int
		want  int
	}{
		{0, 0},
		{1, 5},
		{2, 15},
		{3, 30},
		{4, 50},
		{5, 0},
	}
	for _, tt := range tests {
		if got := r.PointsFor(tt.lines); got != tt.want {
			t.Errorf("PointsFor(%d) = %d, want %d", tt.lines, got, tt.want)
		}
	}
}

func TestRulesIntervalFor(t *testing.T) {
	r := DefaultRules()
	tests := []struct {
		wave int
		want time.Duration
	}{
		{1, 1000 * ms},
		{2, 950 * ms},
		{3, 900 * ms},
		{10, 550 * ms},
		{19, 100 * ms},
		{40, 100 * ms},
	}
	for _, tt := range tests {
		if got := r.IntervalFor(tt.wave); got != tt.want {
			t.Errorf("IntervalFor(%d) = %v, want %v", tt.wave, got, tt.want)
		}
	}

	r.WavesSpeedUp = false
	if got := r.IntervalFor(10); got != r.InitialInterval {
		t.Errorf("fixed speed IntervalFor(10) = %v, want %v", got, r.InitialInterval)
	}
}

func TestRulesWaveFor(t *testing.T) {
	r := DefaultRules()
	for lines, want := range map[int]int{0: 1, 14: 1, 15: 2, 29: 2, 30: 3} {
		if got := r.WaveFor(lines); got != want {
			t.Errorf("WaveFor(%d) = %d, want %d", lines, got, want)
		}
	}
}

func TestScoreSingleAndDouble(t *testing.T) {
	tests := []struct {
		name  string
		rows  int
		score int
	}{
		{"single", 1, 5},
		{"double", 2, 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSim(t)
			clearWithO(t, s, tt.rows)

			if s.Score() != tt.score || s.Lines() != tt.rows {
				t.Errorf("score=%d lines=%d, want %d and %d", s.Score(), s.Lines(), tt.score, tt.rows)
			}
			if s.Combo() != 1 {
				t.Errorf("combo = %d, want 1", s.Combo())
			}
		})
	}
}

func TestScoreTetris(t *testing.T) {
	s := newSim(t, PieceI)
	for i := range 4 {
		fillRowExcept(&s.board, Rows-1-i, 9)
	}
	s.RotateCW()
	for s.MoveRight() {
	}
	s.HardDrop()

	if s.Score() != 50 || s.Lines() != 4 {
		t.Errorf("score=%d lines=%d, want 50 and 4", s.Score(), s.Lines())
	}
	if snap := s.Snapshot(); filledCells(&snap.Board) != 0 {
		t.Error("board should be empty after the tetris")
	}

	events := s.DrainEvents()
	var cleared LinesClearedEvent
	for _, e := range events {
		if c, ok := e.(LinesClearedEvent); ok {
			cleared = c
		}
	}
	if cleared != (LinesClearedEvent{Count: 4, Combo: 1, Points: 50}) {
		t.Errorf("LinesClearedEvent = %+v", cleared)
	}
}

func TestComboWithinWindow(t *testing.T) {
	s := newSim(t)
	clearWithO(t, s, 2) // 15
	s.Tick(1000 * ms)
	clearWithO(t, s, 1) // 5 + 50

	if s.Combo() != 2 {
		t.Errorf("combo = %d, want 2", s.Combo())
	}
	if s.Score() != 70 {
		t.Errorf("score = %d, want 70", s.Score())
	}
}

func TestComboExpires(t *testing.T) {
	s := newSim(t)
	clearWithO(t, s, 1)
	for range 3 {
		s.Tick(1001 * ms)
	}
	if s.Combo() != 0 {
		t.Errorf("combo should expire after the window, got %d", s.Combo())
	}
	clearWithO(t, s, 1)

	if s.Combo() != 1 || s.Score() != 10 {
		t.Errorf("combo=%d score=%d, want 1 and 10", s.Combo(), s.Score())
	}
}

func TestLockWithoutClearKeepsLiveCombo(t *testing.T) {
	s := newSim(t)
	clearWithO(t, s, 1)
	s.HardDrop() // lands on the empty floor, no clear

	if s.Combo() != 1 {
		t.Errorf("a lock inside the window should not drop the combo, got %d", s.Combo())
	}
}

func TestWaveIncrease(t *testing.T) {
	s := newSim(t)
	s.lines = 14
	clearWithO(t, s, 1)

	if s.Wave() != 2 || s.Interval() != 950*ms {
		t.Errorf("wave=%d interval=%v, want 2 and 950ms", s.Wave(), s.Interval())
	}
	events := s.DrainEvents()
	if countEvents[WaveIncreasedEvent](events) != 1 {
		t.Errorf("expected one WaveIncreasedEvent in %#v", events)
	}
}

func TestThirdWaveAtThirtyLines(t *testing.T) {
	s := newSim(t)
	s.lines = 29
	s.wave = 2
	s.interval = s.Rules().IntervalFor(2)
	clearWithO(t, s, 1)

	if s.Lines() != 30 || s.Wave() != 3 || s.Interval() != 900*ms {
		t.Errorf("lines=%d wave=%d interval=%v, want 30, 3 and 900ms", s.Lines(), s.Wave(), s.Interval())
	}
}

func TestMilestonesFireOnce(t *testing.T) {
	s := newSim(t)
	s.score = 2995
	clearWithO(t, s, 1)
	clearWithO(t, s, 1)

	events := s.DrainEvents()
	if n := countEvents[MilestoneEvent](events); n != 1 {
		t.Errorf("milestone events = %d, want 1", n)
	}
}

func TestWinningLockWithBlockedSpawnEndsRun(t *testing.T) {
	s := newSim(t)
	s.score = s.Rules().TargetScore - 5
	for s.MoveRight() {
	}
	// The bottom row clears; the stack above still covers the spawn area.
	for y := range Rows - 1 {
		fillRowExcept(&s.board, y, 0, 8, 9)
	}
	fillRowExcept(&s.board, Rows-1, 8, 9)

	if !s.HardDrop() {
		t.Fatal("hard drop failed")
	}

	events := s.DrainEvents()
	win, over := -1, -1
	for i, e := range events {
		switch e := e.(type) {
		case WinEvent:
			win = i
		case GameOverEvent:
			over = i
			if !e.ReachedTarget || e.Score != s.Rules().TargetScore {
				t.Errorf("game over = %+v, want reached target at %d", e, s.Rules().TargetScore)
			}
		}
	}
	if win < 0 || over < 0 || win > over {
		t.Fatalf("want WinEvent then GameOverEvent, got %#v", events)
	}
	if s.Won() || !s.GameOver() || !s.ReachedTarget() {
		t.Errorf("won=%v gameOver=%v reached=%v, want a finished run", s.Won(), s.GameOver(), s.ReachedTarget())
	}
	if s.Continue() {
		t.Error("Continue should not revive a run that ended on spawn")
	}
}

func TestWinStopsRunOnce(t *testing.T) {
	s := newSim(t)
	s.score = s.Rules().TargetScore - 5
	clearWithO(t, s, 1)

	if !s.ReachedTarget() || !s.Won() || s.Running() {
		t.Fatal("reaching the target should stop the run on the win screen")
	}
	if countEvents[WinEvent](s.DrainEvents()) != 1 {
		t.Error("expected one WinEvent")
	}

	// Stopped: nothing moves until Continue.
	if s.HardDrop() {
		t.Error("input accepted while stopped on the win screen")
	}

	if !s.Continue() {
		t.Fatal("Continue should resume a won run")
	}
	if !s.Running() || s.Won() {
		t.Error("run should be running after Continue")
	}
	if s.Continue() {
		t.Error("Continue on a running game should be a no-op")
	}

	clearWithO(t, s, 1)
	if countEvents[WinEvent](s.DrainEvents()) != 0 {
		t.Error("the target must be announced only once per run")
	}
	if !s.Running() {
		t.Error("scoring past the target after Continue must not stop the run")
	}

	s.Start()
	if s.ReachedTarget() {
		t.Error("Start should reset the target flag")
	}
}

func TestGameOverReportsReachedTarget(t *testing.T) {
	s := newSim(t)
	s.score = s.Rules().TargetScore - 5
	clearWithO(t, s, 1)
	s.Continue()
	s.DrainEvents()

	for y := range Rows {
		fillRowExcept(&s.board, y, 0)
	}
	s.HardDrop()

	var over GameOverEvent
	for _, e := range s.DrainEvents() {
		if g, ok := e.(GameOverEvent); ok {
			over = g
		}
	}
	if !over.ReachedTarget || over.Score != s.Rules().TargetScore {
		t.Errorf("GameOverEvent = %+v", over)
	}
}
