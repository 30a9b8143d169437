package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/leaderboard"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

const (
	// footerLines are reserved under the game for the notice and help bar.
	footerLines = 2

	submitTimeout = 5 * time.Second
	noticeTTL     = 3 * time.Second

	retryNotice = "Try again to beat your score!"
)

// Leaderboard is the part of the leaderboard client the game uses.
type Leaderboard interface {
	Top(ctx context.Context, limit int) (leaderboard.Board, error)
	Submit(ctx context.Context, name string, score int) (leaderboard.Result, error)
}

// SoundPlayer plays audio cues.
type SoundPlayer interface {
	Play(sounds ...core.Sound) bool
	// ToggleMute flips the mute state and reports whether sound is now on.
	ToggleMute() bool
	Muted() bool
}

// submitResultMsg carries the outcome of a leaderboard submission.
type submitResultMsg struct {
	result leaderboard.Result
	err    error
}

// noticeExpiredMsg replaces a rank notice once it has been shown.
type noticeExpiredMsg struct{ seq int }

var (
	noticeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true)
	helpBarStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	helpBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2)
)

// Model is the Bubble Tea model for running a game.
type Model struct {
	game   registry.Game
	screen *core.Screen
	store  *storage.Store
	board  Leaderboard
	player SoundPlayer
	logger *log.Logger

	config     core.RuntimeConfig
	width      int
	height     int
	keys       KeyMap
	keyMapper  *KeyMapper
	help       help.Model
	inputFrame core.InputFrame
	lastTick   time.Time
	gameState  core.GameState

	entry      nameEntry
	scoreSaved bool // Whether the current run's end has been handled
	notice     string
	noticeSeq  int
	quitting   bool
}

// Option configures a Model.
type Option func(*Model)

// WithLeaderboard submits finished runs to a global leaderboard.
func WithLeaderboard(b Leaderboard) Option {
	return func(m *Model) { m.board = b }
}

// WithSoundPlayer plays the game's audio cues.
func WithSoundPlayer(p SoundPlayer) Option {
	return func(m *Model) { m.player = p }
}

// WithLogger sets the logger. The model never writes to the terminal it
// draws on, so the default discards everything.
func WithLogger(l *log.Logger) Option {
	return func(m *Model) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithPlayerName pre-fills the leaderboard name prompt.
func WithPlayerName(name string) Option {
	return func(m *Model) {
		if n, err := leaderboard.NormalizeName(name); err == nil && n != leaderboard.AnonymousName {
			m.entry.input.SetValue(n)
		}
	}
}

// NewModel creates a new Bubble Tea model for the given game.
// cfg holds the full terminal size; the game gets it minus the footer.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...Option) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}

	keys := DefaultKeyMap()
	m := Model{
		game:       game,
		store:      store,
		logger:     discardLogger(),
		width:      cfg.ScreenW,
		height:     cfg.ScreenH,
		keys:       keys,
		keyMapper:  NewKeyMapper(keys),
		help:       help.New(),
		inputFrame: core.NewInputFrame(),
		entry:      newNameEntry(),
	}
	m.config = cfg
	m.config.ScreenH = max(cfg.ScreenH-footerLines, 0)
	m.screen = core.NewScreen(m.config.ScreenW, m.config.ScreenH)
	m.help.Width = cfg.ScreenW

	for _, opt := range opts {
		opt(&m)
	}
	m.syncMuteHelp()
	return m
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	// Note: gameState will be set on first tick (value receiver limitation)

	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))

	case submitResultMsg:
		return m.handleSubmitResult(msg)

	case noticeExpiredMsg:
		if msg.seq == m.noticeSeq {
			m.notice = retryNotice
		}
		return m, nil
	}

	if m.entry.active {
		var cmd tea.Cmd
		m.entry, cmd = m.entry.update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	if m.entry.active {
		return m.handleEntryKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		// Time spent reading help does not count as game time.
		m.lastTick = time.Time{}
		return m, nil
	case m.help.ShowAll:
		// Any other key closes the full help.
		m.help.ShowAll = false
		return m, nil
	case key.Matches(msg, m.keys.Mute):
		m.toggleMute()
		return m, nil
	case msg.String() == "ctrl+s":
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// handleEntryKey routes keys to the name prompt.
func (m Model) handleEntryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		name := m.entry.name()
		m.entry.close()
		m.saveLocal(name)
		if m.board == nil {
			m.setNotice("Score saved.")
			return m, nil
		}
		m.setNotice("Submitting score...")
		return m, submitCmd(m.board, name, m.entry.score)

	case tea.KeyEsc:
		m.entry.close()
		m.saveLocal(leaderboard.AnonymousName)
		m.setNotice(retryNotice)
		return m, nil
	}

	var cmd tea.Cmd
	m.entry, cmd = m.entry.update(msg)
	return m, cmd
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width, m.height = msg.Width, msg.Height
	m.help.Width = msg.Width
	m.config.ScreenW = msg.Width
	m.config.ScreenH = max(msg.Height-footerLines, 0)
	m.screen.Resize(m.config.ScreenW, m.config.ScreenH)

	if r, ok := m.game.(registry.Resizer); ok {
		r.Resize(m.config.ScreenW, m.config.ScreenH)
		return m, nil
	}

	// Reinitialize game with new dimensions if needed
	if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}
	return m, nil
}

// handleTick advances the game by the wall time since the previous tick.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	next := tickCmd(m.config.TickRate)
	if m.entry.active || m.help.ShowAll {
		m.inputFrame.Clear()
		m.lastTick = time.Time{}
		return m, next
	}

	var elapsed time.Duration
	if !m.lastTick.IsZero() {
		elapsed = now.Sub(m.lastTick)
	}
	m.lastTick = now
	m.inputFrame.Elapsed = elapsed

	wasOver := m.gameState.GameOver
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	if emitter, ok := m.game.(registry.SoundEmitter); ok {
		if sounds := emitter.DrainSounds(); len(sounds) > 0 && m.player != nil {
			m.player.Play(sounds...)
		}
	}

	if wasOver && !m.gameState.GameOver {
		// A new run started.
		m.scoreSaved = false
		m.notice = ""
		m.noticeSeq++
	}

	if m.gameState.GameOver && !m.scoreSaved {
		m.scoreSaved = true
		m.logger.Info("run ended", "game", m.game.ID(), "score", m.gameState.Score,
			"lines", m.gameState.Lines, "wave", m.gameState.Wave)
		if m.gameState.Score > 0 {
			return m, tea.Batch(next, m.entry.open(m.gameState.Score))
		}
	}

	return m, next
}

func (m Model) handleSubmitResult(msg submitResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.logger.Warn("leaderboard submit failed", "error", msg.err)
		m.setNotice("Leaderboard unavailable, score saved locally.")
		return m, nil
	}

	r := msg.result
	m.logger.Info("score submitted", "name", r.Entry.Name, "score", r.Entry.Score, "rank", r.Rank)
	seq := m.setNotice(fmt.Sprintf("%s ranked #%d with %d points!", r.Entry.Name, r.Rank, r.Entry.Score))
	return m, tea.Tick(noticeTTL, func(time.Time) tea.Msg {
		return noticeExpiredMsg{seq: seq}
	})
}

// setNotice replaces the notice line and returns its sequence number.
func (m *Model) setNotice(text string) int {
	m.notice = text
	m.noticeSeq++
	return m.noticeSeq
}

func (m *Model) toggleMute() {
	if m.player == nil {
		return
	}
	m.player.ToggleMute()
	m.syncMuteHelp()
}

// syncMuteHelp labels the mute binding with the action the next press takes.
func (m *Model) syncMuteHelp() {
	if m.player != nil && m.player.Muted() {
		m.keys.Mute.SetHelp("m", "unmute")
	} else {
		m.keys.Mute.SetHelp("m", "mute")
	}
}

// saveLocal records the finished run in the local score database.
func (m *Model) saveLocal(name string) {
	if m.store == nil {
		return
	}
	id, err := m.store.SaveScore(storage.ScoreEntry{
		GameID:        m.game.ID(),
		Name:          name,
		Score:         m.gameState.Score,
		Lines:         m.gameState.Lines,
		Wave:          m.gameState.Wave,
		ReachedTarget: m.gameState.ReachedTarget,
	})
	if err != nil {
		m.logger.Error("could not save score", "error", err)
		return
	}
	m.logger.Debug("score saved", "id", id, "name", name, "score", m.gameState.Score)
}

func submitCmd(board Leaderboard, name string, score int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), submitTimeout)
		defer cancel()
		res, err := board.Submit(ctx, name, score)
		return submitResultMsg{result: res, err: err}
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".tetris", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("could not create screenshot directory", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return
	}
	m.setNotice("Screenshot saved to " + path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.entry.active {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.entry.view())
	}
	if m.help.ShowAll {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			helpBoxStyle.Render(m.help.View(m.keys)))
	}

	m.game.Render(m.screen)

	var b strings.Builder
	b.WriteString(RenderScreen(m.screen))
	b.WriteString("\n")
	b.WriteString(noticeStyle.Render(centerText(m.notice, m.width)))
	b.WriteString("\n")
	b.WriteString(helpBarStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// Run starts the Bubble Tea program with the given model.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...Option) error {
	model := NewModel(game, store, cfg, opts...)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
