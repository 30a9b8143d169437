// Package core contains the pure falling-block simulation: the board, the
// piece catalog, rotation with wall kicks, the lock-delay state machine and
// the scoring rules. It has no dependencies on the platform or on any UI.
package core

// Board dimensions. They never change during a run.
const (
	Rows = 20
	Cols = 10
)

// Empty marks an unoccupied cell.
const Empty = 0

// Board is the grid of locked cells. Each cell is Empty or a piece type id.
// Row 0 is the top of the visible playfield.
type Board [Rows][Cols]int

// Collides reports whether the piece, translated by (dx, dy), would leave the
// playfield or overlap a locked cell. Cells above the board (row < 0) are
// only checked against the side walls.
func (b *Board) Collides(p Piece, dx, dy int) bool {
	for y, row := range p.Shape {
		for x, v := range row {
			if v == Empty {
				continue
			}
			bx := p.X + x + dx
			by := p.Y + y + dy
			if bx < 0 || bx >= Cols || by >= Rows {
				return true
			}
			if by >= 0 && b[by][bx] != Empty {
				return true
			}
		}
	}
	return false
}

// Merge writes the piece's type id into every board cell it covers.
// Cells above the board are dropped.
func (b *Board) Merge(p Piece) {
	for y, row := range p.Shape {
		for x, v := range row {
			if v == Empty {
				continue
			}
			by := p.Y + y
			if by < 0 {
				continue
			}
			b[by][p.X+x] = int(p.Type)
		}
	}
}

// rowComplete reports whether every cell in row y is filled.
func (b *Board) rowComplete(y int) bool {
	for _, v := range b[y] {
		if v == Empty {
			return false
		}
	}
	return true
}

// ClearCompletedRows removes every complete row, shifts the remaining rows
// down preserving their order and fills the top with empty rows.
// Returns the number of rows removed.
func (b *Board) ClearCompletedRows() int {
	var survivors [Rows][Cols]int
	kept := 0

	// Walk bottom-up so survivors land at the bottom of the new grid.
	for y := Rows - 1; y >= 0; y-- {
		if b.rowComplete(y) {
			continue
		}
		survivors[Rows-1-kept] = b[y]
		kept++
	}

	cleared := Rows - kept
	if cleared == 0 {
		return 0
	}

	// Rows above the survivors are already zero-valued.
	*b = survivors
	return cleared
}
