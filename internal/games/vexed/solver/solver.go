// Package solver finds shortest move sequences that clear a Vexed board.
package solver

import (
	"context"
	"errors"
	"fmt"

	"github.com/vovakirdan/vexed/internal/games/vexed/core"
)

var (
	// ErrNoSolution means every reachable board was explored without
	// clearing the level.
	ErrNoSolution = errors.New("no solution")
	// ErrSearchLimit means the search gave up before finishing.
	ErrSearchLimit = errors.New("search limit reached")
)

// Default search bounds.
const (
	DefaultMaxNodes = 250_000
	DefaultMaxDepth = 40
)

// Options bounds the search. Zero values use the defaults.
type Options struct {
	MaxNodes int
	MaxDepth int
}

func (o Options) withDefaults() Options {
	if o.MaxNodes <= 0 {
		o.MaxNodes = DefaultMaxNodes
	}
	if o.MaxDepth <= 0 {
		o.MaxDepth = DefaultMaxDepth
	}
	return o
}

// Move is one player move.
type Move struct {
	From core.Coord `json:"from"`
	To   core.Coord `json:"to"`
}

func (m Move) String() string {
	return fmt.Sprintf("%s->%s", m.From, m.To)
}

// Solution is a shortest sequence of moves that clears the board.
type Solution struct {
	Moves    []Move
	Explored int
}

type node struct {
	board  core.Board
	parent int
	move   Move
	depth  int
}

// Solve runs a breadth-first search over accepted moves. Boards are
// deduplicated by content, so the first cleared board found gives a
// shortest solution. The input board should already be stable.
func Solve(ctx context.Context, b core.Board, opts Options) (Solution, error) {
	opts = opts.withDefaults()
	if b.IsCleared() {
		return Solution{}, nil
	}

	nodes := []node{{board: b, parent: -1}}
	seen := map[core.Key]struct{}{b.Key(): {}}
	limited := false

	for head := 0; head < len(nodes); head++ {
		if head%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return Solution{Explored: len(nodes)}, err
			}
		}

		cur := nodes[head]
		if cur.depth >= opts.MaxDepth {
			limited = true
			continue
		}

		for _, mv := range core.LegalMoves(cur.board) {
			res, err := core.Move(cur.board, mv[0], mv[1])
			if err != nil || !res.Accepted {
				continue
			}
			key := res.Board.Key()
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			nodes = append(nodes, node{
				board:  res.Board,
				parent: head,
				move:   Move{From: mv[0], To: mv[1]},
				depth:  cur.depth + 1,
			})

			if res.Board.IsCleared() {
				return Solution{Moves: path(nodes, len(nodes)-1), Explored: len(nodes)}, nil
			}
			if len(nodes) >= opts.MaxNodes {
				return Solution{Explored: len(nodes)}, ErrSearchLimit
			}
		}
	}

	if limited {
		return Solution{Explored: len(nodes)}, ErrSearchLimit
	}
	return Solution{Explored: len(nodes)}, ErrNoSolution
}

func path(nodes []node, i int) []Move {
	var moves []Move
	for ; nodes[i].parent >= 0; i = nodes[i].parent {
		moves = append(moves, nodes[i].move)
	}
	for l, r := 0, len(moves)-1; l < r; l, r = l+1, r-1 {
		moves[l], moves[r] = moves[r], moves[l]
	}
	return moves
}

// Hint returns the first move of a shortest solution.
func Hint(ctx context.Context, b core.Board, opts Options) (Move, error) {
	sol, err := Solve(ctx, b, opts)
	if err != nil {
		return Move{}, err
	}
	if len(sol.Moves) == 0 {
		return Move{}, ErrNoSolution
	}
	return sol.Moves[0], nil
}

// Replay applies moves to b and returns the final board. It fails on the
// first move the engine does not accept.
func Replay(b core.Board, moves []Move) (core.Board, error) {
	for i, m := range moves {
		res, err := core.Move(b, m.From, m.To)
		if err != nil {
			return b, fmt.Errorf("solver: move %d %s: %w", i+1, m, err)
		}
		if !res.Accepted {
			return b, fmt.Errorf("solver: move %d %s rejected: %s", i+1, m, res.Reason)
		}
		b = res.Board
	}
	return b, nil
}
