package core

import (
	"iter"
	"strings"
)

// Key is the raw contents of a board, comparable and usable as a map key.
type Key [Width * Height]BlockType

// Board is the fixed 8x10 grid. Cells are stored in row-major order:
// index = row*Width + col.
//
// Board is a value type: assignment copies it, so a returned board is an
// independent snapshot that later operations never modify.
type Board struct {
	cells Key
}

// NewBoard builds a board from row-major types. Missing entries are Empty and
// invalid types are stored as Empty.
func NewBoard(types []BlockType) Board {
	var b Board
	for i := 0; i < len(types) && i < len(b.cells); i++ {
		if types[i].Valid() {
			b.cells[i] = types[i]
		}
	}
	return b
}

func index(c Coord) int {
	return c.Row*Width + c.Col
}

func coordAt(i int) Coord {
	return Coord{Row: i / Width, Col: i % Width}
}

// InBounds returns true if the coordinate is on the board.
func InBounds(c Coord) bool {
	return c.Row >= 0 && c.Row < Height && c.Col >= 0 && c.Col < Width
}

// Get returns the type at c, or Empty if c is out of bounds.
func (b Board) Get(c Coord) BlockType {
	if !InBounds(c) {
		return Empty
	}
	return b.cells[index(c)]
}

// Cell returns the full cell at c.
func (b Board) Cell(c Coord) Cell {
	return Cell{Type: b.Get(c), Row: c.Row, Col: c.Col}
}

// Set returns a copy of b with c set to t. Out-of-bounds coordinates and
// invalid types leave the board unchanged.
func (b Board) Set(c Coord, t BlockType) Board {
	if InBounds(c) && t.Valid() {
		b.cells[index(c)] = t
	}
	return b
}

// Key returns the comparable contents of the board.
func (b Board) Key() Key {
	return b.cells
}

// Cells yields every cell in row-major order.
func (b Board) Cells() iter.Seq[Cell] {
	return func(yield func(Cell) bool) {
		for i, t := range b.cells {
			c := coordAt(i)
			if !yield(Cell{Type: t, Row: c.Row, Col: c.Col}) {
				return
			}
		}
	}
}

// Row returns a copy of the types in one row.
func (b Board) Row(row int) [Width]BlockType {
	var out [Width]BlockType
	if row < 0 || row >= Height {
		return out
	}
	copy(out[:], b.cells[row*Width:(row+1)*Width])
	return out
}

// CountMovable returns the number of movable blocks on the board.
func (b Board) CountMovable() int {
	n := 0
	for _, t := range b.cells {
		if t.IsMovable() {
			n++
		}
	}
	return n
}

// CountByType returns how many blocks of each movable type are present.
func (b Board) CountByType() map[BlockType]int {
	counts := make(map[BlockType]int)
	for _, t := range b.cells {
		if t.IsMovable() {
			counts[t]++
		}
	}
	return counts
}

// IsCleared reports whether no movable blocks remain.
func (b Board) IsCleared() bool {
	return b.CountMovable() == 0
}

// Equal reports whether two boards have identical contents.
func (b Board) Equal(other Board) bool {
	return b.cells == other.cells
}

// Lines returns the board in level-text form, one string per row.
func (b Board) Lines() []string {
	lines := make([]string, Height)
	var buf [Width]byte
	for r := range Height {
		for c := range Width {
			buf[c] = b.cells[r*Width+c].Char()
		}
		lines[r] = string(buf[:])
	}
	return lines
}

// String returns the board as level text.
func (b Board) String() string {
	return strings.Join(b.Lines(), "\n")
}
