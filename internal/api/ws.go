package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vovakirdan/vexed/internal/games/vexed/core"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

const wsWriteWait = 10 * time.Second

type wsRequest struct {
	Board wireBoard  `json:"board"`
	From  core.Coord `json:"from"`
	To    core.Coord `json:"to"`
	// Paced spaces frames out with the configured animation timings.
	Paced bool `json:"paced"`
}

type wsFrame struct {
	Type  string `json:"type"`
	Index int    `json:"index"`
	*wireStep
	Result *moveResponse `json:"result,omitempty"`
	Error  string        `json:"error,omitempty"`
}

// handleWebSocket resolves one move per client message and streams every
// settlement step as its own frame, followed by a result frame.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	ctx := r.Context()
	for {
		var req wsRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Debug("websocket read error", "error", err)
			}
			return
		}
		if err := s.streamMove(ctx, conn, req); err != nil {
			s.logger.Debug("websocket write error", "error", err)
			return
		}
	}
}

func (s *Server) streamMove(ctx context.Context, conn *websocket.Conn, req wsRequest) error {
	b, err := req.Board.board()
	if err != nil {
		return s.writeFrame(conn, wsFrame{Type: "error", Error: err.Error()})
	}
	res, err := core.Move(b, req.From, req.To)
	if err != nil {
		return s.writeFrame(conn, wsFrame{Type: "error", Error: err.Error()})
	}

	for i, st := range toWireSteps(res.Steps) {
		if req.Paced && i > 0 {
			if err := sleepCtx(ctx, s.frameDelay(res.Steps[i-1])); err != nil {
				return err
			}
		}
		if err := s.writeFrame(conn, wsFrame{Type: "step", Index: i, wireStep: &st}); err != nil {
			return err
		}
	}

	result := toMoveResponse(res)
	result.Steps = nil
	return s.writeFrame(conn, wsFrame{Type: "result", Result: &result})
}

// frameDelay is how long a step stays on screen before the next one.
func (s *Server) frameDelay(st core.Step) time.Duration {
	p := s.opts.Pacing
	switch st.Phase {
	case core.PhaseMove:
		return p.MoveDelay
	case core.PhaseEliminate:
		groups := len(st.Elimination.Groups)
		return p.EliminationHighlight + p.Elimination + time.Duration(max(groups-1, 0))*p.EliminationStagger
	default:
		return p.GravityStep
	}
}

func (s *Server) writeFrame(conn *websocket.Conn, f wsFrame) error {
	//nolint:errcheck // A failed deadline surfaces on the write
	conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
	return conn.WriteJSON(f)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
