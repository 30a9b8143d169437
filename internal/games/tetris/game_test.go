package tetris

import (
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	engine "github.com/vovakirdan/tui-tetris/internal/games/tetris/core"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

// newGame returns a game reset with the default config, isolated from any
// config files on the machine.
func newGame(t *testing.T, seed int64) *Game {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
	SetConfigPath("")
	SetDifficultyPreset("")

	g := New()
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 30, TickRate: 60, Seed: seed})
	return g
}

// useOnlyO replaces the simulation with one that deals only O pieces.
func useOnlyO(t *testing.T, g *Game, rules engine.Rules) {
	t.Helper()
	sim, err := engine.New(rules, engine.NewQueueRandomizer())
	if err != nil {
		t.Fatal(err)
	}
	sim.Start()
	g.sim = sim
	g.rules = rules
	g.DrainSounds()
}

func frame(elapsed time.Duration, actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	f.Elapsed = elapsed
	return f
}

// dropO shifts the spawned O by dx columns and hard-drops it in one frame.
func dropO(g *Game, dx int) {
	var actions []core.Action
	for ; dx < 0; dx++ {
		actions = append(actions, core.ActionLeft)
	}
	for ; dx > 0; dx-- {
		actions = append(actions, core.ActionRight)
	}
	actions = append(actions, core.ActionHardDrop)
	g.Step(frame(time.Millisecond, actions...))
}

// clearTwoRows fills the bottom two rows with five O pieces.
func clearTwoRows(g *Game) {
	for _, dx := range []int{-4, -2, 0, 2, 4} {
		dropO(g, dx)
	}
}

func TestRegistered(t *testing.T) {
	if !registry.Exists(GameID) {
		t.Fatal("tetris is not registered")
	}
	g, err := registry.Create(GameID)
	if err != nil {
		t.Fatal(err)
	}
	if g.Title() != "Tetris" {
		t.Errorf("Title() = %q", g.Title())
	}
}

func TestRulesFromDefaultConfig(t *testing.T) {
	got := RulesFromConfig(config.DefaultTetrisConfig())
	if !reflect.DeepEqual(got, engine.DefaultRules()) {
		t.Errorf("default config rules differ:\n got %+v\nwant %+v", got, engine.DefaultRules())
	}
}

func TestLoadRulesPresetAndCustomPath(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Cleanup(func() {
		SetConfigPath("")
		SetDifficultyPreset("")
	})

	SetDifficultyPreset("hard")
	_, rules := LoadRules()
	if rules.LockDelay != time.Second || rules.InitialInterval != 700*time.Millisecond {
		t.Errorf("hard preset not applied: %+v", rules)
	}

	SetDifficultyPreset("")
	path := filepath.Join(t.TempDir(), "custom.yaml")
	yaml := strings.ReplaceAll(string(config.GetDefaultYAML("tetris")), "target_score: 5000", "target_score: 800")
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}
	SetConfigPath(path)
	_, rules = LoadRules()
	if rules.TargetScore != 800 {
		t.Errorf("custom config not used, target = %d", rules.TargetScore)
	}

	SetConfigPath(filepath.Join(t.TempDir(), "missing.yaml"))
	_, rules = LoadRules()
	if !reflect.DeepEqual(rules, engine.DefaultRules()) {
		t.Error("a missing config should fall back to the defaults")
	}
}

func TestGravityUsesElapsed(t *testing.T) {
	g := newGame(t, 1)
	y := g.Snapshot().Sim.Current.Y

	g.Step(frame(999 * time.Millisecond))
	if got := g.Snapshot().Sim.Current.Y; got != y {
		t.Fatalf("piece fell before the interval elapsed: y=%d", got)
	}
	g.Step(frame(2 * time.Millisecond))
	if got := g.Snapshot().Sim.Current.Y; got != y+1 {
		t.Errorf("y = %d, want %d", got, y+1)
	}
}

func TestZeroElapsedAssumesTickRate(t *testing.T) {
	g := newGame(t, 1)
	y := g.Snapshot().Sim.Current.Y

	for range 60 {
		g.Step(core.NewInputFrame())
	}
	if got := g.Snapshot().Sim.Current.Y; got != y {
		t.Fatalf("60 frames at 60 FPS should not exceed the 1s interval, y=%d", got)
	}
	g.Step(core.NewInputFrame())
	if got := g.Snapshot().Sim.Current.Y; got != y+1 {
		t.Errorf("y = %d, want %d", got, y+1)
	}
}

func TestActionsApplyInOrder(t *testing.T) {
	g := newGame(t, 1)
	useOnlyO(t, g, engine.DefaultRules())
	x := g.Snapshot().Sim.Current.X

	g.Step(frame(time.Millisecond, core.ActionLeft, core.ActionLeft, core.ActionRight, core.ActionLeft))
	if got := g.Snapshot().Sim.Current.X; got != x-2 {
		t.Errorf("x = %d, want %d", got, x-2)
	}

	sounds := g.DrainSounds()
	moves := 0
	for _, s := range sounds {
		if s == core.SoundMove {
			moves++
		}
	}
	if moves != 4 {
		t.Errorf("move sounds = %d, want 4 (%v)", moves, sounds)
	}
	if g.DrainSounds() != nil {
		t.Error("DrainSounds should clear the queue")
	}
}

func TestHardDropLocks(t *testing.T) {
	g := newGame(t, 3)
	g.DrainSounds()

	g.Step(frame(time.Millisecond, core.ActionHardDrop))
	snap := g.Snapshot()
	if snap.Sim.Locked != 1 {
		t.Fatalf("locked = %d, want 1", snap.Sim.Locked)
	}
	sounds := g.DrainSounds()
	if !slices.Contains(sounds, core.SoundDrop) || slices.Contains(sounds, core.SoundLock) {
		t.Errorf("sounds = %v, want a drop cue and no lock cue", sounds)
	}
}

func TestPause(t *testing.T) {
	g := newGame(t, 1)
	y := g.Snapshot().Sim.Current.Y

	g.Step(frame(time.Millisecond, core.ActionPause))
	if !g.State().Paused || g.Snapshot().State != statePaused {
		t.Fatal("game should be paused")
	}
	g.Step(frame(5*time.Second, core.ActionLeft))
	if got := g.Snapshot().Sim; got.Current.Y != y || got.Clock != 0 {
		t.Error("simulation advanced while paused")
	}

	g.Step(frame(time.Millisecond, core.ActionPause))
	if g.State().Paused {
		t.Error("second pause should resume")
	}
}

func TestGameOverAndRestart(t *testing.T) {
	g := newGame(t, 42)

	for i := 0; i < 500 && !g.State().GameOver; i++ {
		g.Step(frame(time.Millisecond, core.ActionHardDrop))
	}
	if !g.State().GameOver {
		t.Fatal("stacking hard drops should end the run")
	}
	if g.Status() != "Game Over! Try again?" {
		t.Errorf("status = %q", g.Status())
	}
	if !slices.Contains(g.DrainSounds(), core.SoundLose) {
		t.Error("expected the lose cue")
	}
	if g.Snapshot().State != stateGameOver {
		t.Errorf("state = %s", g.Snapshot().State)
	}

	// Input other than restart is ignored.
	g.Step(frame(time.Millisecond, core.ActionLeft))
	if !g.State().GameOver {
		t.Fatal("game over must stick until restart")
	}

	g.Step(frame(time.Millisecond, core.ActionRestart))
	st := g.State()
	if st.GameOver || st.Score != 0 || st.Lines != 0 || st.Wave != 1 {
		t.Errorf("restart did not reset: %+v", st)
	}
	if g.Status() != "Good luck!" {
		t.Errorf("status after restart = %q", g.Status())
	}
}

func TestWinThenContinue(t *testing.T) {
	g := newGame(t, 1)
	rules := engine.DefaultRules()
	rules.TargetScore = 15
	rules.Milestones = nil
	useOnlyO(t, g, rules)

	clearTwoRows(g)

	if g.Snapshot().State != stateWon {
		t.Fatalf("state = %s, want %s (score %d)", g.Snapshot().State, stateWon, g.State().Score)
	}
	if g.Status() != "You won!" {
		t.Errorf("status = %q", g.Status())
	}
	if !slices.Contains(g.DrainSounds(), core.SoundWin) {
		t.Error("expected the win cue")
	}
	if g.State().GameOver {
		t.Error("the win screen is not a game over")
	}

	g.Step(frame(time.Millisecond, core.ActionConfirm))
	if g.Snapshot().State != stateCountdown {
		t.Fatalf("state = %s, want countdown", g.Snapshot().State)
	}
	g.Step(frame(4*time.Second, core.ActionLeft))
	if g.Snapshot().State != stateCountdown {
		t.Fatal("countdown ended early")
	}
	g.Step(frame(time.Second))
	if g.Snapshot().State != statePlaying || !g.sim.Running() {
		t.Fatalf("state = %s, want playing", g.Snapshot().State)
	}
	if g.Status() != "Keep going for a higher score!" {
		t.Errorf("status = %q", g.Status())
	}

	// The message is transient.
	g.Step(frame(2 * time.Second))
	if g.Status() == "Keep going for a higher score!" {
		t.Error("continue message should expire")
	}

	// The win is not offered twice.
	clearTwoRows(g)
	if g.sim.Won() {
		t.Error("second win screen after continuing")
	}
}

func TestWinThenFinish(t *testing.T) {
	g := newGame(t, 1)
	rules := engine.DefaultRules()
	rules.TargetScore = 15
	rules.Milestones = nil
	useOnlyO(t, g, rules)

	clearTwoRows(g)
	g.Step(frame(time.Millisecond, core.ActionFinish))

	if !g.Finished() || !g.State().GameOver || !g.State().ReachedTarget {
		t.Fatalf("finish should end the run: %+v", g.State())
	}
	if g.State().Score != 15 {
		t.Errorf("score = %d", g.State().Score)
	}

	g.Step(frame(time.Millisecond, core.ActionRestart))
	if g.Finished() || g.State().GameOver {
		t.Error("restart should clear the finished run")
	}
}

func TestWaveAndMilestoneMessages(t *testing.T) {
	g := newGame(t, 1)
	rules := engine.DefaultRules()
	rules.LinesPerWave = 2
	rules.TargetScore = 100
	rules.Milestones = []int{15, 100}
	useOnlyO(t, g, rules)

	clearTwoRows(g)
	// The wave message is suppressed once the first milestone is reached;
	// the milestone message takes its place.
	if g.Status() != "85 points to victory!" {
		t.Errorf("status = %q", g.Status())
	}
	sounds := g.DrainSounds()
	for _, want := range []core.Sound{core.SoundClear, core.SoundMilestone, core.SoundWave} {
		if !slices.Contains(sounds, want) {
			t.Errorf("missing %s cue in %v", want, sounds)
		}
	}

	g = newGame(t, 1)
	rules.Milestones = []int{50}
	useOnlyO(t, g, rules)
	clearTwoRows(g)
	if g.Status() != "WAVE 2! Speed increased!" {
		t.Errorf("status = %q", g.Status())
	}
}

func TestStatusLine(t *testing.T) {
	var s statusLine
	s.set("base")
	s.flash(0, "flash", time.Second)
	if s.text() != "flash" {
		t.Fatalf("text = %q", s.text())
	}
	s.expire(999 * time.Millisecond)
	if s.text() != "flash" {
		t.Error("flash expired early")
	}
	s.expire(time.Second)
	if s.text() != "base" {
		t.Errorf("text = %q, want base", s.text())
	}
}

func TestTooSmall(t *testing.T) {
	g := newGame(t, 1)
	g.Reset(core.RuntimeConfig{ScreenW: 20, ScreenH: 10, Seed: 1})

	if g.Snapshot().State != stateTooSmall {
		t.Fatalf("state = %s", g.Snapshot().State)
	}
	g.Step(frame(5*time.Second, core.ActionHardDrop))
	if g.Snapshot().Sim.Locked != 0 {
		t.Error("game advanced on a too-small screen")
	}

	screen := core.NewScreen(20, 10)
	g.Render(screen)
	if !strings.Contains(screen.String(), "too small") {
		t.Error("too-small overlay not drawn")
	}
}

func TestRender(t *testing.T) {
	g := newGame(t, 7)
	screen := core.NewScreen(80, 30)
	g.Render(screen)

	out := screen.String()
	for _, want := range []string{"TETRIS", "NEXT", "HOLD", "Score", "Lines", "Wave", "Good luck!"} {
		if !strings.Contains(out, want) {
			t.Errorf("render is missing %q", want)
		}
	}

	colored := false
	for y := range screen.Height() {
		for x := range screen.Width() {
			if c := screen.GetCell(x, y); c.Rune == '█' && c.Color != core.ColorDefault {
				colored = true
			}
		}
	}
	if !colored {
		t.Error("pieces should be drawn in color")
	}

	g.Step(frame(time.Millisecond, core.ActionPause))
	g.Render(screen)
	if !strings.Contains(screen.String(), "Paused") {
		t.Error("pause overlay not drawn")
	}
}

func TestDeterminism(t *testing.T) {
	run := func() uint64 {
		g := newGame(t, 12345)
		script := []core.Action{core.ActionLeft, core.ActionRotate, core.ActionHardDrop, core.ActionHold, core.ActionRight, core.ActionSoftDrop}
		for i := range 400 {
			f := frame(16 * time.Millisecond)
			if i%7 == 0 {
				f.Set(script[(i/7)%len(script)])
			}
			g.Step(f)
		}
		snap := g.Snapshot()
		return snap.Hash()
	}

	if a, b := run(), run(); a != b {
		t.Errorf("same seed and input produced different states: %x vs %x", a, b)
	}
}

func TestResizeKeepsRun(t *testing.T) {
	g := newGame(t, 9)
	g.Step(frame(time.Millisecond, core.ActionHardDrop))

	g.Resize(30, 12)
	if g.Snapshot().State != stateTooSmall {
		t.Fatalf("state = %s, want too_small", g.Snapshot().State)
	}
	g.Resize(80, 30)
	snap := g.Snapshot()
	if snap.State != statePlaying || snap.Sim.Locked != 1 {
		t.Errorf("resize restarted the run: state=%s locked=%d", snap.State, snap.Sim.Locked)
	}
}
