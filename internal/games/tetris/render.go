package tetris

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/vovakirdan/tui-tetris/internal/core"
	engine "github.com/vovakirdan/tui-tetris/internal/games/tetris/core"
)

// Layout. Every board cell is two characters wide.
const (
	cellW  = 2
	boardW = engine.Cols*cellW + 2
	boardH = engine.Rows + 2
	panelW = 18
	gap    = 2

	// MinWidth and MinHeight are the smallest screen the game can draw on.
	MinWidth  = boardW + gap + panelW
	MinHeight = boardH + 2
)

// pieceColors maps piece type ids to colors.
var pieceColors = [engine.PieceCount + 1]core.Color{
	core.ColorDefault,
	core.ColorBrightCyan,
	core.ColorBrightBlue,
	core.ColorOrange,
	core.ColorBrightYellow,
	core.ColorBrightGreen,
	core.ColorBrightMagenta,
	core.ColorBrightRed,
}

func colorOf(id int) core.Color {
	if id <= 0 || id >= len(pieceColors) {
		return core.ColorDefault
	}
	return pieceColors[id]
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderOverlay(dst, "Window too small", fmt.Sprintf("Need at least %dx%d", MinWidth, MinHeight))
		return
	}

	snap := g.sim.Snapshot()
	left := max((dst.Width()-MinWidth)/2, 0)
	top := max((dst.Height()-MinHeight)/2, 0)

	g.renderHUD(dst, left, top, snap)
	g.renderBoard(dst, left, top+1, snap)
	g.renderPanel(dst, left+boardW+gap, top+1, snap)

	if msg := g.status.text(); msg != "" {
		dst.DrawTextColored(left+(boardW-utf8.RuneCountInString(msg))/2, top+1+boardH, msg, core.ColorBrightWhite)
	}

	switch g.screenState() {
	case statePaused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	case stateWon:
		g.renderOverlay(dst, fmt.Sprintf("You won with %d points!", snap.Score), "C continue  ·  F finish")
	case stateCountdown:
		secs := int((g.countdown + 999_999_999) / 1_000_000_000)
		g.renderOverlay(dst, fmt.Sprintf("Resuming in %d...", secs), "Get ready!")
	case stateFinished:
		g.renderOverlay(dst, fmt.Sprintf("Final score: %d", snap.Score), "Press R to play again")
	case stateGameOver:
		g.renderOverlay(dst, "Game Over", fmt.Sprintf("Score %d  ·  Press R to restart", snap.Score))
	}
}

// renderHUD draws the title line above the board.
func (g *Game) renderHUD(dst *core.Screen, x, y int, snap engine.Snapshot) {
	dst.DrawTextColored(x, y, "TETRIS", core.ColorBrightCyan)
	info := fmt.Sprintf("Target %d", g.rules.TargetScore)
	if snap.ReachedTarget {
		info = "Target reached!"
	}
	dst.DrawTextColored(x+MinWidth-utf8.RuneCountInString(info), y, info, core.ColorGray)
}

// renderBoard draws the well, the locked cells, the ghost and the current piece.
func (g *Game) renderBoard(dst *core.Screen, x, y int, snap engine.Snapshot) {
	dst.DrawBoxColored(core.Rect{X: x, Y: y, W: boardW, H: boardH}, core.ColorGray)

	cell := func(col, row int, r rune, c core.Color) {
		px, py := x+1+col*cellW, y+1+row
		dst.SetColored(px, py, r, c)
		dst.SetColored(px+1, py, r, c)
	}

	for row := range engine.Rows {
		for col := range engine.Cols {
			if id := snap.Board[row][col]; id != engine.Empty {
				cell(col, row, '█', colorOf(id))
			} else {
				dst.SetColored(x+1+col*cellW, y+1+row, '·', core.ColorGray)
			}
		}
	}

	if !snap.Running {
		return
	}

	cur := snap.Current
	for _, c := range cur.Shape.Cells() {
		col, row := cur.X+c[0], snap.GhostY+c[1]
		if row >= 0 && snap.GhostY != cur.Y {
			cell(col, row, '░', core.ColorGray)
		}
	}

	pieceColor := colorOf(int(cur.Type))
	if snap.Phase == engine.PhaseGrounded && snap.LockProgress > 0.66 {
		pieceColor = core.ColorBrightWhite
	}
	for _, c := range cur.Shape.Cells() {
		col, row := cur.X+c[0], cur.Y+c[1]
		if row >= 0 {
			cell(col, row, '█', pieceColor)
		}
	}
}

// renderPanel draws next/hold previews, the counters and the key hints.
func (g *Game) renderPanel(dst *core.Screen, x, y int, snap engine.Snapshot) {
	g.renderPreview(dst, x, y, "NEXT", &snap.Next, true)
	g.renderPreview(dst, x, y+5, "HOLD", snap.Hold, snap.CanHold)

	stats := []struct {
		label string
		value string
	}{
		{"Score", fmt.Sprintf("%d", snap.Score)},
		{"Lines", fmt.Sprintf("%d", snap.Lines)},
		{"Wave", fmt.Sprintf("%d", snap.Wave)},
		{"Speed", fmt.Sprintf("%dms", snap.Interval.Milliseconds())},
	}
	if snap.Combo > 1 {
		stats = append(stats, struct{ label, value string }{"Combo", fmt.Sprintf("x%d", snap.Combo)})
	}
	row := y + 11
	for _, s := range stats {
		dst.DrawTextColored(x, row, s.label, core.ColorGray)
		dst.DrawTextColored(x+panelW-utf8.RuneCountInString(s.value), row, s.value, core.ColorBrightWhite)
		row++
	}

	if snap.Phase == engine.PhaseGrounded {
		filled := int(snap.LockProgress * float64(panelW-6))
		bar := strings.Repeat("▮", filled) + strings.Repeat("▯", panelW-6-filled)
		dst.DrawTextColored(x, y+16, "Lock", core.ColorGray)
		dst.DrawTextColored(x+6, y+16, bar, core.ColorYellow)
	}

	hints := []string{"←→ move  ↑ rotate", "↓ soft  ␣ hard", "C hold  P pause"}
	for i, h := range hints {
		dst.DrawTextColored(x, y+boardH-len(hints)+i, h, core.ColorGray)
	}
}

// renderPreview draws a small boxed piece preview. A nil piece leaves it empty.
func (g *Game) renderPreview(dst *core.Screen, x, y int, title string, p *engine.PieceView, active bool) {
	border := core.ColorGray
	if !active {
		border = core.ColorRed
	}
	dst.DrawBoxColored(core.Rect{X: x, Y: y, W: panelW, H: 4}, border)
	dst.DrawTextColored(x+2, y, " "+title+" ", core.ColorWhite)
	if p == nil {
		return
	}

	ox := x + (panelW-p.Shape.Width()*cellW)/2
	for _, c := range p.Shape.Cells() {
		px, py := ox+c[0]*cellW, y+1+c[1]
		dst.SetColored(px, py, '█', colorOf(int(p.Type)))
		dst.SetColored(px+1, py, '█', colorOf(int(p.Type)))
	}
}

// renderOverlay draws a centered overlay message.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	w := max(utf8.RuneCountInString(line1), utf8.RuneCountInString(line2)) + 4
	h := 5
	box := core.CenteredRect(dst.Width(), dst.Height(), w, h)

	dst.DrawRect(box, ' ')
	dst.DrawBoxColored(box, core.ColorBrightWhite)
	dst.DrawTextCenteredColored(box.Y+1, line1, core.ColorBrightYellow)
	dst.DrawTextCentered(box.Y+3, line2)
}
