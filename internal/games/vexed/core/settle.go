package core

import "iter"

// Order selects which rule runs first in each settlement pass.
type Order uint8

const (
	// EliminateFirst checks for matches before letting blocks fall.
	// Level loading settles this way.
	EliminateFirst Order = iota
	// GravityFirst lets blocks fall before checking for matches.
	// Player moves settle this way, so a moved block lands before matching.
	GravityFirst
)

func (o Order) String() string {
	if o == GravityFirst {
		return "gravity-first"
	}
	return "eliminate-first"
}

// Phase identifies what produced a Step.
type Phase uint8

const (
	PhaseMove Phase = iota
	PhaseGravity
	PhaseEliminate
)

func (p Phase) String() string {
	switch p {
	case PhaseMove:
		return "move"
	case PhaseGravity:
		return "gravity"
	case PhaseEliminate:
		return "eliminate"
	default:
		return "unknown"
	}
}

// Step is one intermediate board of a settlement. Elimination is set only for
// PhaseEliminate steps.
type Step struct {
	Phase       Phase
	Board       Board
	Elimination Elimination
}

// Steps yields every board change while b settles: one step per gravity
// drop and one per elimination pass. The last yielded board (or b itself when
// nothing is yielded) is stable.
func Steps(b Board, order Order) iter.Seq[Step] {
	return func(yield func(Step) bool) {
		cur := b
		fall := func() (bool, bool) {
			moved := false
			for {
				next, changed := GravityStep(cur)
				if !changed {
					return moved, true
				}
				cur = next
				moved = true
				if !yield(Step{Phase: PhaseGravity, Board: cur}) {
					return moved, false
				}
			}
		}
		eliminate := func() (bool, bool) {
			next, e := Eliminate(cur)
			if e.Count == 0 {
				return false, true
			}
			cur = next
			return true, yield(Step{Phase: PhaseEliminate, Board: cur, Elimination: e})
		}

		for {
			var first, second func() (bool, bool)
			if order == GravityFirst {
				first, second = fall, eliminate
			} else {
				first, second = eliminate, fall
			}
			a, ok := first()
			if !ok {
				return
			}
			c, ok := second()
			if !ok {
				return
			}
			if !a && !c {
				return
			}
		}
	}
}

// Settlement is the outcome of settling a board.
type Settlement struct {
	Board        Board
	Eliminated   int
	Eliminations []Elimination
	GravitySteps int
	Steps        []Step
}

// Resolve settles b to a fixed point in the given order and records every
// intermediate step.
func Resolve(b Board, order Order) Settlement {
	s := Settlement{Board: b}
	for step := range Steps(b, order) {
		s.Board = step.Board
		s.Steps = append(s.Steps, step)
		switch step.Phase {
		case PhaseGravity:
			s.GravitySteps++
		case PhaseEliminate:
			s.Eliminations = append(s.Eliminations, step.Elimination)
			s.Eliminated += step.Elimination.Count
		}
	}
	return s
}

// Settle alternates elimination and gravity until neither changes the board.
// It returns the stable board and the total number of eliminated blocks.
func Settle(b Board) (Board, int) {
	s := Resolve(b, EliminateFirst)
	return s.Board, s.Eliminated
}

// IsStable reports whether b has no pending gravity or elimination.
func IsStable(b Board) bool {
	return IsSupported(b) && !HasMatch(b)
}
