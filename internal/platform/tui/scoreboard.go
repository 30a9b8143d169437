package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-tetris/internal/leaderboard"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// Scoreboard layout constants
const (
	maxScores    = 100 // Max local scores to load
	fetchTimeout = 5 * time.Second
	dateLayout   = "Jan 02 15:04"
)

// scoreboardTab selects the local or the global board.
type scoreboardTab int

const (
	tabLocal scoreboardTab = iota
	tabGlobal
)

func (t scoreboardTab) String() string {
	if t == tabGlobal {
		return "This week"
	}
	return "Local"
}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	NextTab key.Binding
	PrevTab key.Binding
	Refresh key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextTab, k.Refresh, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextTab, k.PrevTab},
		{k.Refresh, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "switch board"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev board"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// globalLoadedMsg carries a fetched global board.
type globalLoadedMsg struct {
	board leaderboard.Board
	err   error
}

// ScoreboardModel is the Bubble Tea model for the scoreboard screen.
type ScoreboardModel struct {
	gameID string
	store  *storage.Store
	board  Leaderboard

	tab           scoreboardTab
	local         []storage.ScoreEntry
	stats         *storage.GameStats
	global        leaderboard.Board
	globalErr     error
	globalLoading bool

	table    table.Model
	help     help.Model
	keys     ScoreboardKeyMap
	width    int
	height   int
	quitting bool
}

// NewScoreboardModel creates a new scoreboard model. board may be nil, in
// which case only local scores are shown.
func NewScoreboardModel(gameID string, store *storage.Store, board Leaderboard, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		gameID:        gameID,
		store:         store,
		board:         board,
		keys:          DefaultScoreboardKeyMap(),
		help:          help.New(),
		width:         width,
		height:        height,
		globalLoading: board != nil,
	}
	m.help.Width = width
	m.loadLocal()
	m.rebuildTable()
	return m
}

// loadLocal reads scores and stats from the local database.
func (m *ScoreboardModel) loadLocal() {
	m.local, m.stats = nil, nil
	if m.store == nil {
		return
	}
	if scores, err := m.store.TopScores(m.gameID, maxScores); err == nil {
		m.local = scores
	}
	if stats, err := m.store.GetGameStats(m.gameID); err == nil {
		m.stats = stats
	}
}

func (m ScoreboardModel) fetchGlobal() tea.Cmd {
	board := m.board
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		b, err := board.Top(ctx, leaderboard.DefaultLimit)
		return globalLoadedMsg{board: b, err: err}
	}
}

// rebuildTable creates the table for the current tab and fills it.
func (m *ScoreboardModel) rebuildTable() {
	dateWidth := len(dateLayout) + 2

	var columns []table.Column
	var rows []table.Row
	if m.tab == tabGlobal {
		columns = []table.Column{
			{Title: "Rank", Width: 6},
			{Title: "Name", Width: leaderboard.MaxNameLen + 2},
			{Title: "Score", Width: 10},
			{Title: "Date", Width: dateWidth},
		}
		for i, e := range m.global.Scores {
			rows = append(rows, table.Row{
				fmt.Sprintf("#%d", i+1),
				e.Name,
				fmt.Sprintf("%d", e.Score),
				e.Time().Local().Format(dateLayout),
			})
		}
	} else {
		columns = []table.Column{
			{Title: "Rank", Width: 6},
			{Title: "Name", Width: leaderboard.MaxNameLen + 2},
			{Title: "Score", Width: 8},
			{Title: "Lines", Width: 6},
			{Title: "Wave", Width: 5},
			{Title: "Date", Width: dateWidth},
		}
		for i, s := range m.local {
			name := s.Name
			if s.ReachedTarget {
				name += " ★"
			}
			rows = append(rows, table.Row{
				fmt.Sprintf("#%d", i+1),
				name,
				fmt.Sprintf("%d", s.Score),
				fmt.Sprintf("%d", s.Lines),
				fmt.Sprintf("%d", s.Wave),
				s.CreatedAt.Local().Format(dateLayout),
			})
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)), // Leave room for header, footer and help
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	m.table = t
}

// Init starts loading the global board.
func (m ScoreboardModel) Init() tea.Cmd {
	if m.board == nil {
		return nil
	}
	return m.fetchGlobal()
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextTab), key.Matches(msg, m.keys.PrevTab):
			if m.tab == tabLocal {
				m.tab = tabGlobal
			} else {
				m.tab = tabLocal
			}
			m.rebuildTable()
			return m, nil

		case key.Matches(msg, m.keys.Refresh):
			m.loadLocal()
			m.rebuildTable()
			if m.board != nil {
				m.globalLoading = true
				return m, m.fetchGlobal()
			}
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case globalLoadedMsg:
		m.globalLoading = false
		m.globalErr = msg.err
		if msg.err == nil {
			m.global = msg.board
		}
		m.rebuildTable()
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.rebuildTable()
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	b.WriteString(centerText(titleStyle.Render("HIGH SCORES"), m.width))
	b.WriteString("\n\n")

	b.WriteString(centerText(m.renderTabs(), m.width))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, tableStyle.Render(m.renderTableContent())))
	b.WriteString("\n")

	footerStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	b.WriteString(centerText(footerStyle.Render(m.footer()), m.width))
	b.WriteString("\n")

	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

func (m ScoreboardModel) renderTabs() string {
	tabStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Padding(0, 1)
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)

	tabs := []scoreboardTab{tabLocal}
	if m.board != nil {
		tabs = append(tabs, tabGlobal)
	}
	rendered := make([]string, len(tabs))
	for i, t := range tabs {
		if t == m.tab {
			rendered[i] = activeTabStyle.Render(t.String())
		} else {
			rendered[i] = tabStyle.Render(t.String())
		}
	}
	return strings.Join(rendered, " ")
}

// renderTableContent renders the table or a placeholder message.
func (m ScoreboardModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	if m.tab == tabGlobal {
		switch {
		case m.board == nil:
			return emptyStyle.Render("No leaderboard configured.\nUse --leaderboard-url to connect one.")
		case m.globalLoading:
			return emptyStyle.Render("Loading leaderboard...")
		case m.globalErr != nil:
			return emptyStyle.Render("Leaderboard unavailable.\nPress r to retry.")
		case len(m.global.Scores) == 0:
			return emptyStyle.Render("No scores this week yet.\nBe the first!")
		}
		return m.table.View()
	}

	if len(m.local) == 0 {
		return emptyStyle.Render("No scores recorded yet.\nPlay a game to set a high score!")
	}
	return m.table.View()
}

// footer summarizes the current board.
func (m ScoreboardModel) footer() string {
	if m.tab == tabGlobal {
		if m.board == nil || m.globalLoading || m.globalErr != nil {
			return ""
		}
		days := m.global.DaysUntilReset
		if days == 1 {
			return "Board resets in 1 day"
		}
		return fmt.Sprintf("Board resets in %d days", days)
	}
	if m.stats == nil || m.stats.GamesCount == 0 {
		return ""
	}
	return fmt.Sprintf("Best %d · %d games · %d lines · best wave %d · %d wins",
		m.stats.HighScore, m.stats.GamesCount, m.stats.TotalLines, m.stats.BestWave, m.stats.Wins)
}

// RunScoreboard runs the scoreboard screen.
func RunScoreboard(gameID string, store *storage.Store, board Leaderboard, width, height int) error {
	model := NewScoreboardModel(gameID, store, board, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
