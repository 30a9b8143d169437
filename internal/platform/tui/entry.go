package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-tetris/internal/leaderboard"
)

var (
	entryBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("14")).
			Padding(1, 3)
	entryTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	entryHintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// nameEntry is the modal asking for a leaderboard name after a run.
type nameEntry struct {
	input  textinput.Model
	score  int
	active bool
}

func newNameEntry() nameEntry {
	ti := textinput.New()
	ti.Placeholder = leaderboard.AnonymousName
	ti.CharLimit = leaderboard.MaxNameLen
	ti.Width = leaderboard.MaxNameLen + 1
	ti.Prompt = "› "
	return nameEntry{input: ti}
}

// open shows the modal for a finished run. The last name used is kept.
func (e *nameEntry) open(score int) tea.Cmd {
	e.score = score
	e.active = true
	e.input.CursorEnd()
	return e.input.Focus()
}

func (e *nameEntry) close() {
	e.active = false
	e.input.Blur()
}

// name returns the normalized name, or Anonymous when it cannot be used.
func (e *nameEntry) name() string {
	name, err := leaderboard.NormalizeName(e.input.Value())
	if err != nil {
		return leaderboard.AnonymousName
	}
	return name
}

func (e nameEntry) update(msg tea.Msg) (nameEntry, tea.Cmd) {
	var cmd tea.Cmd
	e.input, cmd = e.input.Update(msg)
	return e, cmd
}

func (e nameEntry) view() string {
	body := lipgloss.JoinVertical(lipgloss.Left,
		entryTitleStyle.Render(fmt.Sprintf("Final score: %d", e.score)),
		"",
		"Enter your name for the leaderboard:",
		e.input.View(),
		"",
		entryHintStyle.Render("enter submit · esc skip"),
	)
	return entryBoxStyle.Render(body)
}
