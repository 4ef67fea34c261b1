package core

// MoveResult is the outcome of a player move. When Accepted is false, Board is
// the input board and Reason says why.
type MoveResult struct {
	Board            Board
	Eliminated       int
	MovableRemaining int
	Completed        bool
	Accepted         bool
	Reason           Rejection
	// Steps starts with the relocation itself followed by every gravity
	// drop and elimination pass of the settlement.
	Steps []Step
}

// CheckMove validates a move without applying it. Coordinates outside the
// board return a *CoordinateError. Otherwise the checks run in order:
// destination must be Empty, source must hold a movable block, and the
// destination must be the horizontal neighbor of the source.
func CheckMove(b Board, from, to Coord) (Rejection, error) {
	if !InBounds(from) {
		return RejectNone, &CoordinateError{Coord: from}
	}
	if !InBounds(to) {
		return RejectNone, &CoordinateError{Coord: to}
	}
	if b.Get(to) != Empty {
		return RejectOccupied, nil
	}
	if !b.Get(from).IsMovable() {
		return RejectNotMovable, nil
	}
	if to.Row != from.Row || (to.Col-from.Col != 1 && from.Col-to.Col != 1) {
		return RejectNotAdjacent, nil
	}
	return RejectNone, nil
}

// Move slides the block at from into the empty cell at to, then settles the
// board gravity-first. The remaining count is the movable count before the
// move minus everything eliminated during settlement.
func Move(b Board, from, to Coord) (MoveResult, error) {
	before := b.CountMovable()
	reason, err := CheckMove(b, from, to)
	if err != nil {
		return MoveResult{Board: b, MovableRemaining: before}, err
	}
	if reason != RejectNone {
		return MoveResult{Board: b, MovableRemaining: before, Reason: reason}, nil
	}

	moved := b.Set(to, b.Get(from)).Set(from, Empty)
	s := Resolve(moved, GravityFirst)
	remaining := before - s.Eliminated

	steps := make([]Step, 0, len(s.Steps)+1)
	steps = append(steps, Step{Phase: PhaseMove, Board: moved})
	steps = append(steps, s.Steps...)

	return MoveResult{
		Board:            s.Board,
		Eliminated:       s.Eliminated,
		MovableRemaining: remaining,
		Completed:        remaining == 0,
		Accepted:         true,
		Steps:            steps,
	}, nil
}

// LegalMoves lists every accepted move on b: each movable block that has an
// empty cell to its left or right. Moves are ordered row-major by source,
// left before right.
func LegalMoves(b Board) [][2]Coord {
	var moves [][2]Coord
	for i, t := range b.cells {
		if !t.IsMovable() {
			continue
		}
		from := coordAt(i)
		for _, dc := range [2]int{-1, 1} {
			to := Coord{Row: from.Row, Col: from.Col + dc}
			if InBounds(to) && b.Get(to) == Empty {
				moves = append(moves, [2]Coord{from, to})
			}
		}
	}
	return moves
}
