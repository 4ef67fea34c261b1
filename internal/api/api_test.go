package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"

	"github.com/vovakirdan/vexed/internal/games/vexed/levels"
	"github.com/vovakirdan/vexed/internal/registry"
)

var pairRows = []string{
	"0000000000",
	"0000000000",
	"0000000000",
	"0000000000",
	"0000000000",
	"0000000000",
	"1010000000",
	"9999999999",
}

func init() {
	registry.Replace("api-test", "API Test", func() (registry.Pack, error) {
		lv := []levels.Level{
			{Number: 1, Name: "Pair", Text: strings.Join(pairRows, "\n")},
			{Number: 2, Text: strings.Join(pairRows, "\n")},
		}
		return levels.NewPack("api-test", "API Test", lv), nil
	})
}

func do(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("cannot decode %q: %v", rec.Body.String(), err)
	}
	return v
}

func TestParse(t *testing.T) {
	s := New(Options{})

	rec := do(t, s, http.MethodPost, "/v1/parse", parseRequest{Text: strings.Join(pairRows, "\n")})
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body)
	}
	resp := decodeBody[parseResponse](t, rec)
	if resp.Movable != 2 || !resp.Stable || resp.Problem != "" || len(resp.Board) != 8 {
		t.Errorf("unexpected parse response %+v", resp)
	}

	rec = do(t, s, http.MethodPost, "/v1/parse", parseRequest{Board: []string{"11"}})
	resp = decodeBody[parseResponse](t, rec)
	if resp.Problem == "" || resp.Board[0] != "1100000000" {
		t.Errorf("short boards parse leniently but report a problem, got %+v", resp)
	}

	rec = do(t, s, http.MethodPost, "/v1/parse", parseRequest{Board: []string{"é12"}})
	resp = decodeBody[parseResponse](t, rec)
	if resp.Board[0] != "0120000000" {
		t.Errorf("a multi-byte character should take one column, got %q", resp.Board[0])
	}

	if rec := do(t, s, http.MethodPost, "/v1/parse", parseRequest{}); rec.Code != http.StatusBadRequest {
		t.Errorf("empty request should be rejected, got %d", rec.Code)
	}
}

func TestSettle(t *testing.T) {
	s := New(Options{})
	floating := []string{"1000000000", "0000000000", "1000000000"}

	rec := do(t, s, http.MethodPost, "/v1/settle", settleRequest{Board: floating})
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body)
	}
	resp := decodeBody[settleResponse](t, rec)
	if resp.Eliminated != 2 || resp.Movable != 0 || resp.GravitySteps == 0 {
		t.Errorf("unexpected settlement %+v", resp)
	}
	last := resp.Steps[len(resp.Steps)-1]
	if last.Phase != "eliminate" || last.Removed != 2 {
		t.Errorf("last step should eliminate both blocks, got %+v", last)
	}

	rec = do(t, s, http.MethodPost, "/v1/settle", settleRequest{Board: floating, Order: "sideways"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unknown order should be rejected, got %d", rec.Code)
	}
}

func TestMove(t *testing.T) {
	s := New(Options{})

	testCases := []struct {
		name      string
		body      any
		status    int
		accepted  bool
		completed bool
		reason    string
	}{
		{
			name:   "accepted",
			body:   `{"board":` + mustJSON(pairRows) + `,"from":{"row":6,"col":0},"to":{"row":6,"col":1}}`,
			status: http.StatusOK, accepted: true, completed: true,
		},
		{
			name:   "not adjacent",
			body:   `{"board":` + mustJSON(pairRows) + `,"from":{"row":6,"col":0},"to":{"row":5,"col":0}}`,
			status: http.StatusOK, reason: "destination is not horizontally adjacent",
		},
		{
			name:   "occupied",
			body:   `{"board":` + mustJSON(pairRows) + `,"from":{"row":6,"col":1},"to":{"row":7,"col":1}}`,
			status: http.StatusOK, reason: "destination occupied",
		},
		{
			name:   "off the board",
			body:   `{"board":` + mustJSON(pairRows) + `,"from":{"row":6,"col":0},"to":{"row":6,"col":-1}}`,
			status: http.StatusBadRequest,
		},
		{
			name:   "malformed",
			body:   `{"board":`,
			status: http.StatusBadRequest,
		},
		{
			name:   "unknown field",
			body:   `{"grid":[]}`,
			status: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, "/v1/move", tc.body)
			if rec.Code != tc.status {
				t.Fatalf("status = %d, expected %d: %s", rec.Code, tc.status, rec.Body)
			}
			if tc.status != http.StatusOK {
				if resp := decodeBody[errorResponse](t, rec); resp.Error == "" {
					t.Error("error body is empty")
				}
				return
			}

			var resp struct {
				Accepted  bool       `json:"accepted"`
				Reason    string     `json:"reason"`
				Completed bool       `json:"completed"`
				Steps     []wireStep `json:"steps"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatal(err)
			}
			if resp.Accepted != tc.accepted || resp.Completed != tc.completed || resp.Reason != tc.reason {
				t.Errorf("unexpected move response %s", rec.Body)
			}
			if tc.accepted && (len(resp.Steps) == 0 || resp.Steps[0].Phase != "move") {
				t.Errorf("steps should start with the move, got %+v", resp.Steps)
			}
		})
	}
}

func mustJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return string(b)
}

func TestSolve(t *testing.T) {
	s := New(Options{})

	rec := do(t, s, http.MethodPost, "/v1/solve", solveRequest{Board: pairRows})
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body)
	}
	resp := decodeBody[solveResponse](t, rec)
	if resp.Length != 1 || resp.Moves[0].From.Col != 0 || resp.Moves[0].To.Col != 1 {
		t.Errorf("unexpected solution %+v", resp)
	}

	lonely := append([]string{}, pairRows...)
	lonely[6] = "1000000002"
	rec = do(t, s, http.MethodPost, "/v1/solve", solveRequest{Board: lonely})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("unsolvable board: status %d, expected 422", rec.Code)
	}
}

func TestPacksAndLevels(t *testing.T) {
	s := New(Options{})

	rec := do(t, s, http.MethodGet, "/v1/packs", nil)
	packs := decodeBody[[]packResponse](t, rec)
	found := false
	for _, p := range packs {
		if p.ID == "api-test" {
			found = p.Levels == 2 && p.Title == "API Test"
		}
	}
	if !found {
		t.Errorf("api-test pack missing from %+v", packs)
	}

	testCases := []struct {
		path   string
		status int
	}{
		{"/v1/packs/api-test/levels/1", http.StatusOK},
		{"/v1/packs/api-test/levels/3", http.StatusNotFound},
		{"/v1/packs/nope/levels/1", http.StatusNotFound},
		{"/v1/packs/api-test/levels/one", http.StatusBadRequest},
	}
	for _, tc := range testCases {
		if rec := do(t, s, http.MethodGet, tc.path, nil); rec.Code != tc.status {
			t.Errorf("GET %s = %d, expected %d", tc.path, rec.Code, tc.status)
		}
	}

	lvl := decodeBody[levelResponse](t, do(t, s, http.MethodGet, "/v1/packs/api-test/levels/1", nil))
	if lvl.Title != "Pair" || lvl.Movable != 2 || lvl.Board[6] != "1010000000" {
		t.Errorf("unexpected level %+v", lvl)
	}
}

func TestSessionLifecycle(t *testing.T) {
	s := New(Options{})

	rec := do(t, s, http.MethodPost, "/v1/sessions", createSessionRequest{Pack: "api-test"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: status %d: %s", rec.Code, rec.Body)
	}
	created := decodeBody[sessionResponse](t, rec)
	if created.ID == "" || created.Level != 1 || created.MaxLevel != 2 || created.State.String() != "playing" {
		t.Fatalf("unexpected session %+v", created)
	}
	base := "/v1/sessions/" + created.ID

	rec = do(t, s, http.MethodPost, base+"/move", sessionMoveRequest{From: pairFrom, To: pairTo})
	var moved struct {
		Accepted bool            `json:"accepted"`
		Session  sessionResponse `json:"session"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &moved); err != nil {
		t.Fatal(err)
	}
	if !moved.Accepted || moved.Session.Moves != 1 || moved.Session.State.String() != "completed" {
		t.Errorf("unexpected move result %s", rec.Body)
	}

	rec = do(t, s, http.MethodPost, base+"/move", sessionMoveRequest{From: pairFrom, To: pairTo})
	if !strings.Contains(rec.Body.String(), "level is not in play") {
		t.Errorf("moves after completion should be rejected, got %s", rec.Body)
	}

	for _, step := range []struct {
		action string
		level  int
	}{
		{"next", 2},
		{"next", 2},
		{"previous", 1},
		{"restart", 1},
		{"play-again", 1},
	} {
		rec := do(t, s, http.MethodPost, base+"/"+step.action, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: status %d", step.action, rec.Code)
		}
		if got := decodeBody[sessionResponse](t, rec); got.Level != step.level || got.Moves != 0 {
			t.Errorf("%s: got level %d moves %d, expected level %d", step.action, got.Level, got.Moves, step.level)
		}
	}

	if rec := do(t, s, http.MethodPost, base+"/jump", nil); rec.Code != http.StatusNotFound {
		t.Errorf("unknown action: status %d", rec.Code)
	}
	if rec := do(t, s, http.MethodGet, base, nil); rec.Code != http.StatusOK {
		t.Errorf("get: status %d", rec.Code)
	}
	if rec := do(t, s, http.MethodDelete, base, nil); rec.Code != http.StatusNoContent {
		t.Errorf("delete: status %d", rec.Code)
	}
	if rec := do(t, s, http.MethodGet, base, nil); rec.Code != http.StatusNotFound {
		t.Errorf("deleted session: status %d", rec.Code)
	}
}

func TestCreateSessionErrors(t *testing.T) {
	s := New(Options{})

	if rec := do(t, s, http.MethodPost, "/v1/sessions", createSessionRequest{Pack: "nope"}); rec.Code != http.StatusNotFound {
		t.Errorf("unknown pack: status %d", rec.Code)
	}
	if rec := do(t, s, http.MethodPost, "/v1/sessions", createSessionRequest{Pack: "api-test", Level: 7}); rec.Code != http.StatusNotFound {
		t.Errorf("level out of range: status %d", rec.Code)
	}
}

func TestCompression(t *testing.T) {
	s := New(Options{})

	req := httptest.NewRequest(http.MethodGet, "/v1/packs", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Header().Get("Content-Encoding") != "gzip" {
		t.Fatalf("expected gzip encoding, headers %v", rec.Header())
	}
	zr, err := gzip.NewReader(rec.Body)
	if err != nil {
		t.Fatal(err)
	}
	var packs []packResponse
	if err := json.NewDecoder(zr).Decode(&packs); err != nil {
		t.Fatalf("cannot decode gzipped body: %v", err)
	}
	if len(packs) == 0 {
		t.Error("expected at least one pack")
	}
}
