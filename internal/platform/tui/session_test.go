package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/vexed/internal/config"
	"github.com/vovakirdan/vexed/internal/games/vexed"
)

func sessionSend(t *testing.T, m SessionModel, msgs ...tea.Msg) SessionModel {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		sm, ok := next.(SessionModel)
		if !ok {
			t.Fatalf("Update returned %T", next)
		}
		m = sm
	}
	return m
}

func TestNewSessionModelUnknownPack(t *testing.T) {
	_, err := NewSessionModel(Deps{PackID: "no-such-pack"}, testRuntime(), "tester")
	if err == nil {
		t.Error("expected an error for an unknown pack")
	}
}

func TestSessionFlow(t *testing.T) {
	registerTestPack("session", 3)
	store := testStore(t)

	m, err := NewSessionModel(Deps{
		Store:  store,
		Config: config.DefaultConfig(),
		PackID: "session",
		Theme:  DefaultTheme(),
	}, testRuntime(), "tester")
	if err != nil {
		t.Fatal(err)
	}
	if m.view != viewPicker {
		t.Fatal("a session starts in the picker")
	}

	m = sessionSend(t, m, runeKey("j"), runeKey("j"), tea.KeyMsg{Type: tea.KeyEnter})
	if m.view != viewGame {
		t.Fatalf("enter should start a game, view=%v", m.view)
	}
	m = sessionSend(t, m, TickMsg{})
	if got := m.game.State().Level; got != 2 {
		t.Errorf("expected level 2, got %d", got)
	}

	m = sessionSend(t, m, runeKey("m"))
	if m.view != viewPicker || m.picker.Selected() != 0 {
		t.Fatalf("m should return to a fresh picker, view=%v", m.view)
	}
	if m.picker.resume != 2 {
		t.Errorf("picker should offer to continue from 2, got %d", m.picker.resume)
	}

	m = sessionSend(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.view != viewProgress {
		t.Fatal("tab should open the progress board")
	}
	m = sessionSend(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.view != viewPicker {
		t.Fatal("esc should leave the progress board")
	}

	next, cmd := m.Update(runeKey("q"))
	if !next.(SessionModel).quitting || cmd == nil {
		t.Error("q should quit the session")
	}
}

func TestSessionTracksWindowSize(t *testing.T) {
	registerTestPack("session-size", 1)
	m, err := NewSessionModel(Deps{PackID: "session-size"}, testRuntime(), "tester")
	if err != nil {
		t.Fatal(err)
	}

	m = sessionSend(t, m, tea.WindowSizeMsg{Width: 120, Height: 40}, tea.KeyMsg{Type: tea.KeyEnter})
	if m.config.ScreenW != 120 || m.config.ScreenH != 40 {
		t.Errorf("config not updated: %+v", m.config)
	}
	if _, ok := m.game.game.(*vexed.Game); !ok {
		t.Errorf("expected a vexed game, got %T", m.game.game)
	}
}

func TestSSHServerConfigFrom(t *testing.T) {
	cfg := SSHServerConfigFrom(config.DefaultConfig().Server)
	if cfg.Address != ":23234" || cfg.IdleTimeout.Minutes() != 30 || cfg.TickRate != 30 {
		t.Errorf("unexpected server config %+v", cfg)
	}
}

func TestResolveHostKeyPath(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	abs := "/etc/vexed/key"
	if got, _ := resolveHostKeyPath(abs); got != abs {
		t.Errorf("absolute paths pass through, got %s", got)
	}
	got, err := resolveHostKeyPath("")
	if err != nil {
		t.Fatal(err)
	}
	if got == "" || got[0] != '/' {
		t.Errorf("expected an absolute default path, got %q", got)
	}
}
