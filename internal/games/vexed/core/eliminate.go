package core

// Group is a connected component of same-type movable blocks.
type Group struct {
	Type  BlockType `json:"type"`
	Cells []Coord   `json:"cells"`
}

// Elimination describes one elimination pass.
type Elimination struct {
	Groups []Group `json:"groups"`
	Count  int     `json:"count"`
}

// Removed returns the set of eliminated coordinates.
func (e Elimination) Removed() map[Coord]bool {
	set := make(map[Coord]bool, e.Count)
	for _, g := range e.Groups {
		for _, c := range g.Cells {
			set[c] = true
		}
	}
	return set
}

// Components returns every connected component of the board. Two cells are
// connected when they are orthogonal neighbors of the same movable type.
// Components are listed in row-major order of their first cell, and each
// component's cells in discovery order.
func Components(b Board) []Group {
	var (
		visited [Width * Height]bool
		stack   []int
		groups  []Group
	)
	for start, t := range b.cells {
		if visited[start] || !t.IsMovable() {
			continue
		}
		g := Group{Type: t}
		visited[start] = true
		stack = append(stack[:0], start)
		for len(stack) > 0 {
			i := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			c := coordAt(i)
			g.Cells = append(g.Cells, c)
			for _, n := range c.Neighbors() {
				if !InBounds(n) {
					continue
				}
				j := index(n)
				if visited[j] || b.cells[j] != t {
					continue
				}
				visited[j] = true
				stack = append(stack, j)
			}
		}
		groups = append(groups, g)
	}
	return groups
}

// Eliminate removes every component of at least MinGroup blocks in a single
// pass over the input snapshot. Removed cells become Empty; components never
// merge across types.
func Eliminate(b Board) (Board, Elimination) {
	var e Elimination
	next := b
	for _, g := range Components(b) {
		if len(g.Cells) < MinGroup {
			continue
		}
		for _, c := range g.Cells {
			next.cells[index(c)] = Empty
		}
		e.Groups = append(e.Groups, g)
		e.Count += len(g.Cells)
	}
	return next, e
}

// HasMatch reports whether any component would be eliminated.
func HasMatch(b Board) bool {
	for i, t := range b.cells {
		if !t.IsMovable() {
			continue
		}
		c := coordAt(i)
		// right and down cover every adjacent pair once
		if c.Col+1 < Width && b.cells[i+1] == t {
			return true
		}
		if c.Row+1 < Height && b.cells[i+Width] == t {
			return true
		}
	}
	return false
}
