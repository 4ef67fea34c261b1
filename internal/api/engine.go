package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/vovakirdan/vexed/internal/games/vexed/core"
	"github.com/vovakirdan/vexed/internal/games/vexed/levels"
	"github.com/vovakirdan/vexed/internal/games/vexed/solver"
	"github.com/vovakirdan/vexed/internal/registry"
)

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	var req parseRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	text := req.Text
	if text == "" {
		text = strings.Join(req.Board, "\n")
	}
	if strings.TrimSpace(text) == "" {
		writeError(w, http.StatusBadRequest, errors.New("text or board is required"))
		return
	}

	b := core.ParseLevel(text)
	resp := parseResponse{
		Board:   toWire(b),
		Movable: b.CountMovable(),
		Stable:  core.IsStable(b),
	}
	if err := core.ValidateLevel(text); err != nil {
		resp.Problem = err.Error()
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSettle(w http.ResponseWriter, r *http.Request) {
	var req settleRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	b, err := req.Board.board()
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	order, err := parseOrder(req.Order)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	st := core.Resolve(b, order)
	writeJSON(w, http.StatusOK, settleResponse{
		Board:        toWire(st.Board),
		Eliminated:   st.Eliminated,
		GravitySteps: st.GravitySteps,
		Movable:      st.Board.CountMovable(),
		Steps:        toWireSteps(st.Steps),
	})
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	b, err := req.Board.board()
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	res, err := core.Move(b, req.From, req.To)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, toMoveResponse(res))
}

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	var req solveRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	b, err := req.Board.board()
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	// clients may tighten the server's limits but not raise them
	opts := s.opts.Solver
	if opts.MaxNodes <= 0 {
		opts.MaxNodes = solver.DefaultMaxNodes
	}
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = solver.DefaultMaxDepth
	}
	if req.MaxNodes > 0 {
		opts.MaxNodes = min(req.MaxNodes, opts.MaxNodes)
	}
	if req.MaxDepth > 0 {
		opts.MaxDepth = min(req.MaxDepth, opts.MaxDepth)
	}

	b, _ = core.Settle(b)
	sol, err := solver.Solve(r.Context(), b, opts)
	switch {
	case errors.Is(err, solver.ErrNoSolution), errors.Is(err, solver.ErrSearchLimit):
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	moves := sol.Moves
	if moves == nil {
		moves = []solver.Move{}
	}
	writeJSON(w, http.StatusOK, solveResponse{Moves: moves, Length: len(moves), Explored: sol.Explored})
}

func (s *Server) handleListPacks(w http.ResponseWriter, r *http.Request) {
	infos := registry.List()
	out := make([]packResponse, 0, len(infos))
	for _, info := range infos {
		p, err := registry.Create(info.ID)
		if err != nil {
			s.logger.Warn("cannot load pack", "pack", info.ID, "error", err)
			continue
		}
		out = append(out, packResponse{ID: info.ID, Title: info.Title, Levels: p.Count()})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetLevel(w http.ResponseWriter, r *http.Request) {
	packID := chi.URLParam(r, "pack")
	n, err := strconv.Atoi(chi.URLParam(r, "n"))
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.New("level must be a number"))
		return
	}

	p, err := s.openPack(packID)
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	text, err := p.LevelText(r.Context(), n)
	if err != nil {
		writeError(w, statusForLoadError(err), err)
		return
	}

	b := core.ParseLevel(text)
	settled, _ := core.Settle(b)
	resp := levelResponse{
		Pack:    packID,
		Level:   n,
		Board:   toWire(b),
		Settled: toWire(settled),
		Movable: settled.CountMovable(),
	}
	if lp, ok := p.(*levels.Pack); ok {
		if lvl, err := lp.Level(n); err == nil {
			resp.Title = lvl.Title()
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) openPack(id string) (registry.Pack, error) {
	if !registry.Exists(id) {
		return nil, errors.New("unknown pack " + strconv.Quote(id))
	}
	return registry.Create(id)
}

func statusForLoadError(err error) int {
	if errors.Is(err, levels.ErrLevelNotFound) || errors.Is(err, core.ErrLevelOutOfRange) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
