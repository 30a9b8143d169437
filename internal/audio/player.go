package audio

import (
	"io"
	"os/exec"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// Config controls the player.
type Config struct {
	Enabled bool
	Volume  float64
}

// DefaultConfig returns audio on at 80% volume.
func DefaultConfig() Config {
	return Config{Enabled: true, Volume: 0.8}
}

// Player plays cues through a detected backend. Without a backend it runs in
// silent mode and every call is a no-op.
type Player struct {
	config Config
	logger *log.Logger

	backend *BackendConfig
	cmd     *exec.Cmd
	stdin   io.WriteCloser
	mixer   *Mixer

	running atomic.Bool
	muted   atomic.Bool
	silent  atomic.Bool

	wg sync.WaitGroup
}

// NewPlayer creates a stopped player.
func NewPlayer(cfg Config, logger *log.Logger) *Player {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	p := &Player{config: cfg, logger: logger}
	p.muted.Store(!cfg.Enabled)
	return p
}

// Start launches the backend process and the mixer. A missing or failing
// backend switches the player to silent mode rather than returning an error.
func (p *Player) Start() {
	if !p.running.CompareAndSwap(false, true) {
		return
	}
	if !p.config.Enabled {
		p.silent.Store(true)
		return
	}

	backend, err := DetectBackend()
	if err != nil {
		p.logger.Info("audio disabled", "reason", err)
		p.silent.Store(true)
		return
	}
	p.backend = backend

	cmd := exec.Command(backend.Path, backend.Args...) //#nosec G204 -- path comes from a fixed candidate list
	stdin, err := cmd.StdinPipe()
	if err != nil {
		p.logger.Warn("audio pipe failed", "backend", backend.Name, "error", err)
		p.silent.Store(true)
		return
	}
	if err := cmd.Start(); err != nil {
		stdin.Close()
		p.logger.Warn("audio backend failed to start", "backend", backend.Name, "error", err)
		p.silent.Store(true)
		return
	}
	p.cmd = cmd
	p.stdin = stdin
	p.logger.Debug("audio started", "backend", backend.Name)

	p.startMixer(stdin)

	p.wg.Add(1)
	go p.monitorProcess()
}

// startMixer runs the mixer against out and watches it for pipe errors.
func (p *Player) startMixer(out io.Writer) {
	p.mixer = NewMixer(out, p.config.Volume)
	p.mixer.Start()

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		select {
		case err := <-p.mixer.Errors():
			p.logger.Warn("audio output lost", "error", err)
			p.silent.Store(true)
		case <-p.mixer.stopChan:
		}
	}()
}

func (p *Player) monitorProcess() {
	defer p.wg.Done()
	if err := p.cmd.Wait(); err != nil && p.running.Load() {
		p.silent.Store(true)
	}
}

// Stop terminates the mixer and the backend process.
func (p *Player) Stop() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	if p.mixer != nil {
		p.mixer.Stop()
	}
	if p.stdin != nil {
		p.stdin.Close()
	}
	if p.cmd != nil && p.cmd.Process != nil {
		_ = p.cmd.Process.Kill()
	}
	p.wg.Wait()
}

// Play queues cues for playback and reports whether any was accepted.
func (p *Player) Play(sounds ...core.Sound) bool {
	if !p.Enabled() {
		return false
	}
	played := false
	for _, s := range sounds {
		if s != core.SoundNone && p.mixer.Play(s) {
			played = true
		}
	}
	return played
}

// ToggleMute flips the mute state and reports whether sound is now on.
func (p *Player) ToggleMute() bool {
	muted := !p.muted.Load()
	p.muted.Store(muted)
	return !muted
}

// Muted reports the mute state.
func (p *Player) Muted() bool {
	return p.muted.Load()
}

// Enabled reports whether cues would currently be heard.
func (p *Player) Enabled() bool {
	return p.running.Load() && !p.muted.Load() && !p.silent.Load() && p.mixer != nil
}

// Backend returns the detected backend name, or "" in silent mode.
func (p *Player) Backend() string {
	if p.backend == nil || p.silent.Load() {
		return ""
	}
	return p.backend.Name
}
