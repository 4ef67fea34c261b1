package api

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/vexed/internal/games/vexed/core"
	"github.com/vovakirdan/vexed/internal/games/vexed/solver"
)

// Boards travel as HEIGHT strings of WIDTH digits, the level text format.
type wireBoard []string

func toWire(b core.Board) wireBoard {
	return b.Lines()
}

// board parses the rows leniently, like level text. It fails only when no
// rows are given at all.
func (w wireBoard) board() (core.Board, error) {
	if len(w) == 0 {
		return core.Board{}, fmt.Errorf("board: expected up to %d rows of %d digits", core.Height, core.Width)
	}
	return core.ParseRows(w), nil
}

type wireStep struct {
	Phase   string       `json:"phase"`
	Board   wireBoard    `json:"board"`
	Groups  []core.Group `json:"groups,omitempty"`
	Removed int          `json:"removed,omitempty"`
}

func toWireSteps(steps []core.Step) []wireStep {
	out := make([]wireStep, len(steps))
	for i, st := range steps {
		out[i] = wireStep{Phase: st.Phase.String(), Board: toWire(st.Board)}
		if st.Phase == core.PhaseEliminate {
			out[i].Groups = st.Elimination.Groups
			out[i].Removed = st.Elimination.Count
		}
	}
	return out
}

type parseRequest struct {
	Text  string    `json:"text"`
	Board wireBoard `json:"board"`
}

type parseResponse struct {
	Board   wireBoard `json:"board"`
	Movable int       `json:"movable"`
	Stable  bool      `json:"stable"`
	// Problem is the first strict validation failure. The board is usable
	// either way.
	Problem string `json:"problem,omitempty"`
}

type settleRequest struct {
	Board wireBoard `json:"board"`
	Order string    `json:"order"`
}

type settleResponse struct {
	Board        wireBoard  `json:"board"`
	Eliminated   int        `json:"eliminated"`
	GravitySteps int        `json:"gravity_steps"`
	Movable      int        `json:"movable"`
	Steps        []wireStep `json:"steps"`
}

func parseOrder(s string) (core.Order, error) {
	switch strings.ToLower(s) {
	case "", "eliminate-first":
		return core.EliminateFirst, nil
	case "gravity-first":
		return core.GravityFirst, nil
	}
	return 0, fmt.Errorf("unknown order %q", s)
}

type moveRequest struct {
	Board wireBoard  `json:"board"`
	From  core.Coord `json:"from"`
	To    core.Coord `json:"to"`
}

type moveResponse struct {
	Accepted   bool           `json:"accepted"`
	Reason     core.Rejection `json:"reason,omitempty"`
	Board      wireBoard      `json:"board"`
	Eliminated int            `json:"eliminated"`
	Remaining  int            `json:"remaining"`
	Completed  bool           `json:"completed"`
	Steps      []wireStep     `json:"steps,omitempty"`
}

func toMoveResponse(res core.MoveResult) moveResponse {
	return moveResponse{
		Accepted:   res.Accepted,
		Reason:     res.Reason,
		Board:      toWire(res.Board),
		Eliminated: res.Eliminated,
		Remaining:  res.MovableRemaining,
		Completed:  res.Completed,
		Steps:      toWireSteps(res.Steps),
	}
}

type solveRequest struct {
	Board    wireBoard `json:"board"`
	MaxNodes int       `json:"max_nodes"`
	MaxDepth int       `json:"max_depth"`
}

type solveResponse struct {
	Moves    []solver.Move `json:"moves"`
	Length   int           `json:"length"`
	Explored int           `json:"explored"`
}

type packResponse struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Levels int    `json:"levels"`
}

type levelResponse struct {
	Pack    string    `json:"pack"`
	Level   int       `json:"level"`
	Title   string    `json:"title,omitempty"`
	Board   wireBoard `json:"board"`
	Settled wireBoard `json:"settled"`
	Movable int       `json:"movable"`
}

type createSessionRequest struct {
	Pack  string `json:"pack"`
	Level int    `json:"level"`
}

type sessionResponse struct {
	ID             string     `json:"id"`
	Pack           string     `json:"pack"`
	Level          int        `json:"level"`
	MaxLevel       int        `json:"max_level"`
	State          core.State `json:"state"`
	Board          wireBoard  `json:"board"`
	Remaining      int        `json:"remaining"`
	Moves          int        `json:"moves"`
	Eliminated     int        `json:"eliminated"`
	FinalCompleted bool       `json:"final_completed"`
	ElapsedMS      int64      `json:"elapsed_ms"`
}

type sessionMoveRequest struct {
	From core.Coord `json:"from"`
	To   core.Coord `json:"to"`
}

type sessionMoveResponse struct {
	moveResponse
	Session sessionResponse `json:"session"`
}
