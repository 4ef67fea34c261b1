package api

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/vovakirdan/vexed/internal/games/vexed/core"
)

var errSessionNotFound = errors.New("session not found")

type playSession struct {
	id       string
	pack     string
	session  *core.Session
	lastSeen time.Time
}

// sessionStore keeps server-side play sessions. Sessions idle longer than
// ttl are dropped on the next create.
type sessionStore struct {
	mu       sync.Mutex
	sessions map[string]*playSession
	ttl      time.Duration
	now      func() time.Time
}

func newSessionStore(ttl time.Duration, now func() time.Time) *sessionStore {
	return &sessionStore{
		sessions: make(map[string]*playSession),
		ttl:      ttl,
		now:      now,
	}
}

func (st *sessionStore) add(pack string, s *core.Session) *playSession {
	st.mu.Lock()
	defer st.mu.Unlock()

	now := st.now()
	if st.ttl > 0 {
		for id, ps := range st.sessions {
			if now.Sub(ps.lastSeen) > st.ttl {
				delete(st.sessions, id)
			}
		}
	}

	ps := &playSession{id: uuid.NewString(), pack: pack, session: s, lastSeen: now}
	st.sessions[ps.id] = ps
	return ps
}

func (st *sessionStore) get(id string) (*playSession, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	ps, ok := st.sessions[id]
	if !ok {
		return nil, errSessionNotFound
	}
	ps.lastSeen = st.now()
	return ps, nil
}

func (st *sessionStore) remove(id string) bool {
	st.mu.Lock()
	defer st.mu.Unlock()

	_, ok := st.sessions[id]
	delete(st.sessions, id)
	return ok
}

func (st *sessionStore) len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

func toSessionResponse(ps *playSession) sessionResponse {
	snap := ps.session.Snapshot()
	return sessionResponse{
		ID:             ps.id,
		Pack:           ps.pack,
		Level:          snap.Level,
		MaxLevel:       snap.MaxLevel,
		State:          snap.State,
		Board:          toWire(snap.Board),
		Remaining:      snap.Remaining,
		Moves:          snap.Moves,
		Eliminated:     snap.Eliminated,
		FinalCompleted: snap.FinalCompleted,
		ElapsedMS:      snap.Elapsed.Milliseconds(),
	}
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.Pack == "" {
		req.Pack = "classic"
	}
	if req.Level == 0 {
		req.Level = 1
	}

	p, err := s.openPack(req.Pack)
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}

	session := core.NewSession(p,
		core.WithLogger(s.logger.With("pack", req.Pack)),
		core.WithMaxLevel(s.opts.MaxLevel),
		core.WithClock(s.opts.Clock),
	)
	if err := session.Load(r.Context(), req.Level); err != nil {
		writeError(w, statusForLoadError(err), err)
		return
	}

	ps := s.sessions.add(req.Pack, session)
	s.logger.Info("session created", "id", ps.id, "pack", req.Pack, "level", req.Level)
	writeJSON(w, http.StatusCreated, toSessionResponse(ps))
}

func (s *Server) session(w http.ResponseWriter, r *http.Request) (*playSession, bool) {
	ps, err := s.sessions.get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return nil, false
	}
	return ps, true
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	if ps, ok := s.session(w, r); ok {
		writeJSON(w, http.StatusOK, toSessionResponse(ps))
	}
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if !s.sessions.remove(chi.URLParam(r, "id")) {
		writeError(w, http.StatusNotFound, errSessionNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSessionMove(w http.ResponseWriter, r *http.Request) {
	ps, ok := s.session(w, r)
	if !ok {
		return
	}
	var req sessionMoveRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	res, err := ps.session.Move(req.From, req.To)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionMoveResponse{
		moveResponse: toMoveResponse(res),
		Session:      toSessionResponse(ps),
	})
}

func (s *Server) handleSessionAction(w http.ResponseWriter, r *http.Request) {
	ps, ok := s.session(w, r)
	if !ok {
		return
	}

	var action func(context.Context) error
	switch chi.URLParam(r, "action") {
	case "restart":
		action = ps.session.Restart
	case "next":
		action = ps.session.Next
	case "previous":
		action = ps.session.Previous
	case "play-again":
		action = ps.session.PlayAgain
	default:
		writeError(w, http.StatusNotFound, errors.New("unknown action "+chi.URLParam(r, "action")))
		return
	}

	if err := action(r.Context()); err != nil {
		writeError(w, statusForLoadError(err), err)
		return
	}
	writeJSON(w, http.StatusOK, toSessionResponse(ps))
}
