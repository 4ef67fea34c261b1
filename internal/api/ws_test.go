package api

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vovakirdan/vexed/internal/config"
	"github.com/vovakirdan/vexed/internal/games/vexed/core"
)

var (
	pairFrom = core.C(6, 0)
	pairTo   = core.C(6, 1)
)

func dialWS(t *testing.T, s *Server) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/v1/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn) map[string]any {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var f map[string]any
	if err := conn.ReadJSON(&f); err != nil {
		t.Fatalf("read failed: %v", err)
	}
	return f
}

func TestWebSocketStreamsSteps(t *testing.T) {
	conn := dialWS(t, New(Options{}))

	if err := conn.WriteJSON(wsRequest{Board: pairRows, From: pairFrom, To: pairTo}); err != nil {
		t.Fatal(err)
	}

	var phases []string
	for {
		f := readFrame(t, conn)
		if f["type"] == "result" {
			result := f["result"].(map[string]any)
			if result["accepted"] != true || result["completed"] != true {
				t.Errorf("unexpected result %v", result)
			}
			break
		}
		if f["type"] != "step" {
			t.Fatalf("unexpected frame %v", f)
		}
		index, ok := f["index"].(float64)
		if !ok || int(index) != len(phases) {
			t.Errorf("step %d carries index %v", len(phases), f["index"])
		}
		phases = append(phases, f["phase"].(string))
	}

	if strings.Join(phases, ",") != "move,eliminate" {
		t.Errorf("phases = %v, expected [move eliminate]", phases)
	}
}

func TestWebSocketPacedAndErrors(t *testing.T) {
	pacing := config.Pacing{MoveDelay: 20 * time.Millisecond}
	conn := dialWS(t, New(Options{Pacing: pacing}))

	if err := conn.WriteJSON(wsRequest{Board: pairRows, From: pairFrom, To: core.C(6, -1)}); err != nil {
		t.Fatal(err)
	}
	if f := readFrame(t, conn); f["type"] != "error" || f["error"] == "" {
		t.Errorf("expected an error frame, got %v", f)
	}

	start := time.Now()
	if err := conn.WriteJSON(wsRequest{Board: pairRows, From: pairFrom, To: pairTo, Paced: true}); err != nil {
		t.Fatal(err)
	}
	for readFrame(t, conn)["type"] != "result" {
	}
	if elapsed := time.Since(start); elapsed < pacing.MoveDelay {
		t.Errorf("paced frames arrived after %v, expected at least %v", elapsed, pacing.MoveDelay)
	}
}
