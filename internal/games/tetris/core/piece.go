package core

import "fmt"

// PieceType identifies one of the seven tetrominoes. The value doubles as the
// colour id written into the board when the piece locks.
type PieceType int

const (
	PieceI PieceType = iota + 1
	PieceJ
	PieceL
	PieceO
	PieceS
	PieceT
	PieceZ
)

// PieceCount is the number of distinct piece types.
const PieceCount = 7

// Valid reports whether t is one of the seven catalog types.
func (t PieceType) Valid() bool {
	return t >= PieceI && t <= PieceZ
}

// String returns the conventional letter for the piece.
func (t PieceType) String() string {
	switch t {
	case PieceI:
		return "I"
	case PieceJ:
		return "J"
	case PieceL:
		return "L"
	case PieceO:
		return "O"
	case PieceS:
		return "S"
	case PieceT:
		return "T"
	case PieceZ:
		return "Z"
	default:
		return "?"
	}
}

// Shape is a small matrix of cells. Filled cells hold the piece type id.
type Shape [][]int

// catalog holds the spawn orientation of every piece, indexed by type id.
var catalog = [PieceCount + 1]Shape{
	nil,
	{{1, 1, 1, 1}},
	{{2, 0, 0}, {2, 2, 2}},
	{{0, 0, 3}, {3, 3, 3}},
	{{4, 4}, {4, 4}},
	{{0, 5, 5}, {5, 5, 0}},
	{{0, 6, 0}, {6, 6, 6}},
	{{7, 7, 0}, {0, 7, 7}},
}

func init() {
	for t := PieceI; t <= PieceZ; t++ {
		mustValidShape(t, catalog[t])
	}
}

// mustValidShape panics if the shape is not a rectangular matrix containing
// only Empty or t, with exactly four filled cells.
func mustValidShape(t PieceType, s Shape) {
	if len(s) == 0 || len(s[0]) == 0 {
		panic(fmt.Sprintf("tetris: empty shape for piece %v", t))
	}
	filled := 0
	for _, row := range s {
		if len(row) != len(s[0]) {
			panic(fmt.Sprintf("tetris: ragged shape for piece %v", t))
		}
		for _, v := range row {
			switch v {
			case Empty:
			case int(t):
				filled++
			default:
				panic(fmt.Sprintf("tetris: piece %v has foreign cell value %d", t, v))
			}
		}
	}
	if filled != 4 {
		panic(fmt.Sprintf("tetris: piece %v has %d cells, want 4", t, filled))
	}
}

// Width returns the number of columns in the shape.
func (s Shape) Width() int {
	if len(s) == 0 {
		return 0
	}
	return len(s[0])
}

// Height returns the number of rows in the shape.
func (s Shape) Height() int {
	return len(s)
}

// Clone returns a deep copy of the shape.
func (s Shape) Clone() Shape {
	out := make(Shape, len(s))
	for i, row := range s {
		out[i] = append([]int(nil), row...)
	}
	return out
}

// RotateCW returns the shape turned 90 degrees clockwise:
// out[r][c] = s[rows-1-c][r].
func (s Shape) RotateCW() Shape {
	rows, cols := s.Height(), s.Width()
	out := make(Shape, cols)
	for r := range cols {
		out[r] = make([]int, rows)
		for c := range rows {
			out[r][c] = s[rows-1-c][r]
		}
	}
	return out
}

// Cells returns the board-relative offsets of the filled cells.
func (s Shape) Cells() [][2]int {
	cells := make([][2]int, 0, 4)
	for y, row := range s {
		for x, v := range row {
			if v != Empty {
				cells = append(cells, [2]int{x, y})
			}
		}
	}
	return cells
}

// CatalogShape returns a copy of the spawn orientation for t.
// It panics on an invalid type.
func CatalogShape(t PieceType) Shape {
	if !t.Valid() {
		panic(fmt.Sprintf("tetris: invalid piece type %d", t))
	}
	return catalog[t].Clone()
}

// Piece is a tetromino with its position on the board. X and Y locate the
// top-left corner of the shape matrix.
type Piece struct {
	Shape Shape
	Type  PieceType
	X, Y  int
}

// NewPiece creates a piece of type t in spawn orientation at the spawn
// position: horizontally centred on the top row.
func NewPiece(t PieceType) Piece {
	shape := CatalogShape(t)
	return Piece{
		Shape: shape,
		Type:  t,
		X:     SpawnX(shape),
		Y:     0,
	}
}

// SpawnX returns the column at which a shape spawns.
func SpawnX(s Shape) int {
	return Cols/2 - s.Width()/2
}

// Clone returns a deep copy of the piece.
func (p Piece) Clone() Piece {
	p.Shape = p.Shape.Clone()
	return p
}

// Respawn returns a fresh piece of the same type at the spawn position in
// spawn orientation.
func (p Piece) Respawn() Piece {
	return NewPiece(p.Type)
}
