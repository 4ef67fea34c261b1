package core

// GravityStep moves every unsupported movable block down by one row.
// All moves are computed from the input snapshot and then applied together,
// so a stack of blocks over a gap drops one block per step from the bottom.
// Immovable blocks never move and support whatever rests on them.
// changed is true if at least one block moved.
func GravityStep(b Board) (next Board, changed bool) {
	next = b
	for col := range Width {
		for row := Height - 2; row >= 0; row-- {
			t := b.cells[row*Width+col]
			if !t.IsMovable() || b.cells[(row+1)*Width+col] != Empty {
				continue
			}
			next.cells[(row+1)*Width+col] = t
			next.cells[row*Width+col] = Empty
			changed = true
		}
	}
	return next, changed
}

// Fall repeats GravityStep until nothing moves and returns the supported
// board together with the number of steps that changed it.
func Fall(b Board) (Board, int) {
	steps := 0
	for {
		next, changed := GravityStep(b)
		if !changed {
			return b, steps
		}
		b = next
		steps++
	}
}

// IsSupported reports whether no movable block has an empty cell below it.
func IsSupported(b Board) bool {
	_, changed := GravityStep(b)
	return !changed
}
