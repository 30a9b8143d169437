package tui

import (
	"slices"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper(DefaultKeyMap())

	tests := []struct {
		name string
		msg  tea.KeyMsg
		want []core.Action
		quit bool
	}{
		{"arrow left", tea.KeyMsg{Type: tea.KeyLeft}, []core.Action{core.ActionLeft}, false},
		{"a", runeKey("a"), []core.Action{core.ActionLeft}, false},
		{"arrow right", tea.KeyMsg{Type: tea.KeyRight}, []core.Action{core.ActionRight}, false},
		{"arrow down", tea.KeyMsg{Type: tea.KeyDown}, []core.Action{core.ActionSoftDrop}, false},
		{"arrow up", tea.KeyMsg{Type: tea.KeyUp}, []core.Action{core.ActionRotate}, false},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, []core.Action{core.ActionHardDrop}, false},
		{"c holds and continues", runeKey("c"), []core.Action{core.ActionHold, core.ActionConfirm}, false},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, []core.Action{core.ActionConfirm}, false},
		{"f", runeKey("f"), []core.Action{core.ActionFinish}, false},
		{"p", runeKey("p"), []core.Action{core.ActionPause}, false},
		{"r", runeKey("r"), []core.Action{core.ActionRestart}, false},
		{"q", runeKey("q"), nil, true},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, nil, true},
		{"unbound", runeKey("z"), nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, quit := km.MapKey(tt.msg)
			if quit != tt.quit {
				t.Errorf("quit = %v, want %v", quit, tt.quit)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("actions = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMapKeyToFrameKeepsRepeats(t *testing.T) {
	km := NewKeyMapper(DefaultKeyMap())
	frame := core.NewInputFrame()

	for range 3 {
		km.MapKeyToFrame(tea.KeyMsg{Type: tea.KeyLeft}, &frame)
	}
	km.MapKeyToFrame(tea.KeyMsg{Type: tea.KeyUp}, &frame)

	want := []core.Action{core.ActionLeft, core.ActionLeft, core.ActionLeft, core.ActionRotate}
	if !slices.Equal(frame.Order, want) {
		t.Errorf("order = %v, want %v", frame.Order, want)
	}
	if !frame.Has(core.ActionRotate) {
		t.Error("rotate should be set")
	}
}

func TestHelpListsBindings(t *testing.T) {
	keys := DefaultKeyMap()
	if len(keys.ShortHelp()) == 0 {
		t.Fatal("short help is empty")
	}
	for _, group := range keys.FullHelp() {
		for _, b := range group {
			if b.Help().Key == "" || b.Help().Desc == "" {
				t.Errorf("binding %v has no help", b.Keys())
			}
		}
	}
}
