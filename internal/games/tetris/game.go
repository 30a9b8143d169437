// Package tetris adapts the falling-block simulation to the platform's Game
// interface: it maps actions to intents, drives the clock, keeps the status
// line and win screen, and draws the playfield into a core.Screen.
package tetris

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	engine "github.com/vovakirdan/tui-tetris/internal/games/tetris/core"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

// GameID is the registry and score-storage identifier.
const GameID = "tetris"

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil || preset == "" {
		difficultyPreset = ""
		return
	}
	difficultyPreset = p
}

// Screen states.
const (
	statePlaying   = "playing"
	statePaused    = "paused"
	stateWon       = "won"
	stateCountdown = "countdown"
	stateFinished  = "finished"
	stateGameOver  = "game_over"
	stateTooSmall  = "too_small"
)

// Game implements registry.Game for the falling-block game.
type Game struct {
	sim   *engine.Sim
	cfg   config.TetrisConfig
	rules engine.Rules
	rng   *rand.Rand

	runtime core.RuntimeConfig
	tick    uint64
	now     time.Duration // Wall time since Reset, paused time included

	paused    bool
	countdown time.Duration // Remaining time before play resumes after a win
	counting  bool
	finished  bool
	tooSmall  bool

	status statusLine
	sounds []core.Sound
}

// New creates a new game instance.
func New() *Game {
	return &Game{}
}

func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string { return GameID }

// Title returns the display name for this game.
func (g *Game) Title() string { return "Tetris" }

// LoadRules resolves the configured rules: the config file search order,
// then the difficulty preset. Any load error falls back to the defaults.
func LoadRules() (config.TetrisConfig, engine.Rules) {
	cfg, err := config.LoadTetris(configPath)
	if err != nil {
		cfg = config.DefaultTetrisConfig()
	}
	if difficultyPreset != "" {
		config.ApplyTetrisPreset(&cfg, difficultyPreset)
	}
	rules := RulesFromConfig(cfg)
	if rules.Validate() != nil {
		cfg, rules = config.DefaultTetrisConfig(), engine.DefaultRules()
	}
	return cfg, rules
}

// RulesFromConfig converts the YAML config into simulation rules.
func RulesFromConfig(cfg config.TetrisConfig) engine.Rules {
	ms := func(n int) time.Duration { return time.Duration(n) * time.Millisecond }

	r := engine.Rules{
		LockDelay:       ms(cfg.Timing.LockDelayMS),
		MoveResetCap:    cfg.Timing.MoveResetCap,
		ComboWindow:     ms(cfg.Timing.ComboWindowMS),
		ComboBonus:      cfg.Scoring.ComboBonus,
		TargetScore:     cfg.Scoring.TargetScore,
		Milestones:      append([]int(nil), cfg.Scoring.Milestones...),
		LinesPerWave:    cfg.Progression.LinesPerWave,
		InitialInterval: ms(cfg.Progression.InitialIntervalMS),
		IntervalStep:    ms(cfg.Progression.IntervalStepMS),
		MinInterval:     ms(cfg.Progression.MinIntervalMS),
		WavesSpeedUp:    cfg.Difficulty.Enabled,
	}
	for i, p := range cfg.Scoring.LinePoints {
		if i+1 < len(r.LinePoints) {
			r.LinePoints[i+1] = p
		}
	}
	return r
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	if runtime.TickRate <= 0 {
		runtime.TickRate = 60
	}
	g.runtime = runtime
	g.cfg, g.rules = LoadRules()
	g.rng = rand.New(rand.NewSource(runtime.Seed)) //#nosec G404 -- gameplay randomness, not security

	sim, err := engine.New(g.rules, engine.NewUniformRandomizer(g.rng.Int63()))
	if err != nil {
		// LoadRules only returns validated rules.
		panic(err)
	}
	g.sim = sim
	g.sim.Start()

	g.tick = 0
	g.now = 0
	g.paused = false
	g.countdown = 0
	g.counting = false
	g.finished = false
	g.tooSmall = runtime.ScreenW < MinWidth || runtime.ScreenH < MinHeight
	g.sounds = g.sounds[:0]

	g.status = statusLine{}
	g.status.flash(g.now, "Good luck!", g.messageDuration())
}

// Resize updates the screen size. The run continues; a screen below the
// minimum size suspends it until the window grows again.
func (g *Game) Resize(width, height int) {
	g.runtime.ScreenW = width
	g.runtime.ScreenH = height
	g.tooSmall = width < MinWidth || height < MinHeight
}

func (g *Game) messageDuration() time.Duration {
	return time.Duration(g.cfg.Timing.MessageMS) * time.Millisecond
}

// Step advances the game by one frame.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++
	elapsed := in.Elapsed
	if elapsed <= 0 {
		elapsed = time.Second / time.Duration(g.runtime.TickRate)
	}
	g.now += elapsed
	g.status.expire(g.now)

	if in.Has(core.ActionRestart) && (g.sim.GameOver() || g.finished) {
		g.Reset(core.RuntimeConfig{
			ScreenW:  g.runtime.ScreenW,
			ScreenH:  g.runtime.ScreenH,
			TickRate: g.runtime.TickRate,
			Seed:     g.rng.Int63(),
		})
		return core.StepResult{State: g.State()}
	}

	if g.sim.GameOver() || g.finished || g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if g.sim.Won() {
		g.stepWinScreen(in, elapsed)
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	for _, a := range in.Order {
		g.apply(a)
	}
	g.sim.Tick(elapsed)
	g.handleEvents()

	return core.StepResult{State: g.State()}
}

// stepWinScreen handles the choice between continuing and finishing.
func (g *Game) stepWinScreen(in core.InputFrame, elapsed time.Duration) {
	if g.counting {
		g.countdown -= elapsed
		if g.countdown > 0 {
			return
		}
		g.counting = false
		g.countdown = 0
		if g.sim.Continue() {
			g.status.flash(g.now, "Keep going for a higher score!", g.messageDuration())
		}
		return
	}

	switch {
	case in.Has(core.ActionFinish):
		g.finished = true
		g.status.set("You won!")
	case in.Has(core.ActionConfirm):
		g.counting = true
		g.countdown = time.Duration(g.cfg.Timing.WinCountdownMS) * time.Millisecond
		if g.countdown <= 0 {
			g.counting = false
			if g.sim.Continue() {
				g.status.flash(g.now, "Keep going for a higher score!", g.messageDuration())
			}
		}
	}
}

// apply maps one action to a simulation intent.
func (g *Game) apply(a core.Action) {
	var intent engine.Intent
	switch a {
	case core.ActionLeft:
		intent = engine.IntentMoveLeft
	case core.ActionRight:
		intent = engine.IntentMoveRight
	case core.ActionSoftDrop:
		intent = engine.IntentSoftDrop
	case core.ActionHardDrop:
		intent = engine.IntentHardDrop
	case core.ActionRotate:
		intent = engine.IntentRotateCW
	case core.ActionHold:
		intent = engine.IntentHold
	default:
		return
	}

	if !g.sim.Apply(intent) {
		return
	}
	switch intent {
	case engine.IntentMoveLeft, engine.IntentMoveRight:
		g.sounds = append(g.sounds, core.SoundMove)
	case engine.IntentHardDrop:
		g.sounds = append(g.sounds, core.SoundDrop)
	}
	// Each intent may lock a piece, clear rows or end the run.
	g.handleEvents()
}

// handleEvents turns simulation events into sounds and status messages.
func (g *Game) handleEvents() {
	for _, ev := range g.sim.DrainEvents() {
		switch e := ev.(type) {
		case engine.PieceLockedEvent:
			if !e.HardDrop {
				g.sounds = append(g.sounds, core.SoundLock)
			}
		case engine.RotatedEvent:
			g.sounds = append(g.sounds, core.SoundRotate)
		case engine.HeldEvent:
			g.sounds = append(g.sounds, core.SoundHold)
		case engine.LinesClearedEvent:
			g.sounds = append(g.sounds, core.SoundClear)
		case engine.WaveIncreasedEvent:
			g.sounds = append(g.sounds, core.SoundWave)
			if g.announceWaves() {
				g.status.flash(g.now, waveMessage(e.Wave), g.messageDuration())
			}
		case engine.MilestoneEvent:
			g.sounds = append(g.sounds, core.SoundMilestone)
			if left := g.rules.TargetScore - e.Threshold; left > 0 {
				g.status.set(victoryMessage(left))
			}
		case engine.WinEvent:
			g.sounds = append(g.sounds, core.SoundWin)
			g.status.set("You won!")
		case engine.GameOverEvent:
			if e.ReachedTarget {
				g.sounds = append(g.sounds, core.SoundWin)
			} else {
				g.sounds = append(g.sounds, core.SoundLose)
			}
			g.status.set("Game Over! Try again?")
		}
	}
}

// announceWaves reports whether wave changes still get a message. They stop
// once the run reaches its first milestone and the countdown takes over.
func (g *Game) announceWaves() bool {
	if len(g.rules.Milestones) == 0 {
		return true
	}
	return g.sim.Score() < g.rules.Milestones[0]
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:         g.sim.Score(),
		Lines:         g.sim.Lines(),
		Wave:          g.sim.Wave(),
		GameOver:      g.sim.GameOver() || g.finished,
		Paused:        g.paused,
		ReachedTarget: g.sim.ReachedTarget(),
	}
}

// Finished reports whether the player ended the run from the win screen.
func (g *Game) Finished() bool {
	return g.finished
}

// DrainSounds returns and clears the cues raised since the last call.
func (g *Game) DrainSounds() []core.Sound {
	if len(g.sounds) == 0 {
		return nil
	}
	out := append([]core.Sound(nil), g.sounds...)
	g.sounds = g.sounds[:0]
	return out
}

// Status returns the current status line text.
func (g *Game) Status() string {
	return g.status.text()
}

// screenState names what the player currently sees.
func (g *Game) screenState() string {
	switch {
	case g.tooSmall:
		return stateTooSmall
	case g.finished:
		return stateFinished
	case g.sim.GameOver():
		return stateGameOver
	case g.sim.Won() && g.counting:
		return stateCountdown
	case g.sim.Won():
		return stateWon
	case g.paused:
		return statePaused
	default:
		return statePlaying
	}
}

var (
	_ registry.Game         = (*Game)(nil)
	_ registry.SoundEmitter = (*Game)(nil)
	_ registry.Finisher     = (*Game)(nil)
	_ registry.Resizer      = (*Game)(nil)
)
