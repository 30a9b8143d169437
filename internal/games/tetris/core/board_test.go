package core

import "testing"

// fillRow fills the given columns of row y with a J cell.
func fillRow(b *Board, y int, cols ...int) {
	for _, x := range cols {
		b[y][x] = int(PieceJ)
	}
}

// fillRowExcept fills every column of row y except the listed ones.
// filledCells counts the non-empty cells on b.
func filledCells(b *Board) int {
	n := 0
	for y := range Rows {
		for x := range Cols {
			if b[y][x] != Empty {
				n++
			}
		}
	}
	return n
}

// stackHeight is the number of rows from the topmost filled cell to the floor.
func stackHeight(b *Board) int {
	for y := range Rows {
		for x := range Cols {
			if b[y][x] != Empty {
				return Rows - y
			}
		}
	}
	return 0
}

func fillRowExcept(b *Board, y int, skip ...int) {
	for x := range Cols {
		holed := false
		for _, s := range skip {
			if s == x {
				holed = true
			}
		}
		if !holed {
			b[y][x] = int(PieceJ)
		}
	}
}

func TestBoardCollides(t *testing.T) {
	var b Board
	fillRow(&b, 10, 4)

	o := NewPiece(PieceO) // 2x2 at X=4

	tests := []struct {
		name   string
		dx, dy int
		want   bool
	}{
		{"spawn", 0, 0, false},
		{"left wall", -5, 0, true},
		{"touching left wall", -4, 0, false},
		{"right wall", 5, 0, true},
		{"touching right wall", 4, 0, false},
		{"above board", 0, -3, false},
		{"floor", 0, Rows - 1, true},
		{"resting on floor", 0, Rows - 2, false},
		{"overlapping block", 0, 9, true},
		{"above block", 0, 8, false},
		{"beside block", 2, 9, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.Collides(o, tt.dx, tt.dy); got != tt.want {
				t.Errorf("Collides(%d, %d) = %v, want %v", tt.dx, tt.dy, got, tt.want)
			}
		})
	}
}

func TestBoardCollidesAboveBoardChecksWalls(t *testing.T) {
	var b Board
	for x := range Cols {
		b[0][x] = int(PieceZ)
	}
	p := NewPiece(PieceI)
	p.Y = -1

	if b.Collides(p, 0, 0) {
		t.Error("cells above the board should not collide with locked cells")
	}
	if !b.Collides(p, -4, 0) {
		t.Error("cells above the board should still collide with the left wall")
	}
}

func TestBoardMerge(t *testing.T) {
	var b Board
	p := NewPiece(PieceT) // {{0,6,0},{6,6,6}} at X=4
	p.Y = -1

	b.Merge(p)

	if filledCells(&b) != 3 {
		t.Fatalf("expected 3 merged cells (one row clipped), got %d", filledCells(&b))
	}
	for x := 4; x <= 6; x++ {
		if b[0][x] != int(PieceT) {
			t.Errorf("cell (%d,0) = %d, want %d", x, b[0][x], PieceT)
		}
	}
}

func TestClearCompletedRows(t *testing.T) {
	var b Board
	fillRowExcept(&b, 19)
	fillRow(&b, 18, 0)
	fillRowExcept(&b, 17)
	fillRow(&b, 16, 9)

	cleared := b.ClearCompletedRows()
	if cleared != 2 {
		t.Fatalf("cleared = %d, want 2", cleared)
	}

	// Survivors keep their order and sink to the floor.
	if b[19][0] != int(PieceJ) || filledCells(&b) != 2 {
		t.Errorf("row 18 should have moved to the floor, board filled=%d", filledCells(&b))
	}
	if b[18][9] != int(PieceJ) {
		t.Error("row 16 should have moved to row 18")
	}
	if stackHeight(&b) != 2 {
		t.Errorf("height = %d, want 2", stackHeight(&b))
	}
}

func TestClearCompletedRowsNone(t *testing.T) {
	var b Board
	fillRowExcept(&b, 19, 3)
	before := b

	if n := b.ClearCompletedRows(); n != 0 {
		t.Fatalf("cleared = %d, want 0", n)
	}
	if b != before {
		t.Error("board changed although no row was complete")
	}
}

func TestClearCompletedRowsFullBoard(t *testing.T) {
	var b Board
	for y := range Rows {
		fillRowExcept(&b, y)
	}
	if n := b.ClearCompletedRows(); n != Rows {
		t.Fatalf("cleared = %d, want %d", n, Rows)
	}
	if filledCells(&b) != 0 || stackHeight(&b) != 0 {
		t.Error("board should be empty after clearing every row")
	}
}
