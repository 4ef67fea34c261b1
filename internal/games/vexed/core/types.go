// Package core provides the board physics of the Vexed puzzle game.
// This package is UI-agnostic and deterministic: boards are values and every
// operation returns a new snapshot.
package core

import "fmt"

// Board dimensions and the smallest group that gets eliminated.
const (
	Width    = 10
	Height   = 8
	MinGroup = 2
)

// BlockType is the content of a single cell.
type BlockType uint8

const (
	Empty BlockType = iota
	Movable1
	Movable2
	Movable3
	Movable4
	Movable5
	Movable6
	Movable7
	Movable8
	Immovable
)

// MovableTypes is the number of distinct matchable block colors.
const MovableTypes = int(Movable8)

// IsMovable reports whether blocks of this type fall and match.
func (t BlockType) IsMovable() bool {
	return t >= Movable1 && t <= Movable8
}

// Valid reports whether t is one of the ten cell types.
func (t BlockType) Valid() bool {
	return t <= Immovable
}

// Char returns the level-text digit for t.
func (t BlockType) Char() byte {
	if !t.Valid() {
		return '0'
	}
	return '0' + byte(t)
}

// String returns a readable name for the block type.
func (t BlockType) String() string {
	switch {
	case t == Empty:
		return "Empty"
	case t == Immovable:
		return "Immovable"
	case t.IsMovable():
		return fmt.Sprintf("Movable%d", uint8(t))
	default:
		return fmt.Sprintf("BlockType(%d)", uint8(t))
	}
}

// Coord addresses a cell. Row 0 is the top of the board.
type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// C is shorthand for Coord{Row: row, Col: col}.
func C(row, col int) Coord {
	return Coord{Row: row, Col: col}
}

// Below returns the coordinate one row down.
func (c Coord) Below() Coord {
	return Coord{Row: c.Row + 1, Col: c.Col}
}

// Neighbors returns the four orthogonal neighbors (up, right, down, left).
// Out-of-bounds coordinates are included; callers filter with InBounds.
func (c Coord) Neighbors() [4]Coord {
	return [4]Coord{
		{c.Row - 1, c.Col},
		{c.Row, c.Col + 1},
		{c.Row + 1, c.Col},
		{c.Row, c.Col - 1},
	}
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Cell is a typed board position.
type Cell struct {
	Type BlockType
	Row  int
	Col  int
}

// ID returns the stable identity of the cell, derived from its position.
func (c Cell) ID() string {
	return fmt.Sprintf("%d-%d", c.Row, c.Col)
}

// Coord returns the position of the cell.
func (c Cell) Coord() Coord {
	return Coord{Row: c.Row, Col: c.Col}
}
