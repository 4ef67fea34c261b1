package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/vovakirdan/vexed/internal/registry"
	"github.com/vovakirdan/vexed/internal/storage"
)

func registerTestPack(id string, count int) {
	registry.Replace(id, "Pack "+id, func() (registry.Pack, error) {
		return testPack(id, count), nil
	})
}

func TestProgressModelShowsLevels(t *testing.T) {
	registerTestPack("prog-a", 3)
	store := testStore(t)
	store.RecordCompletion(storage.Completion{PackID: "prog-a", Level: 2, Moves: 6, Duration: 12 * time.Second})

	m := NewProgressModel(store, "prog-a", DefaultTheme(), 100, 30)
	if len(m.progress) != 1 || m.progress[0].Level != 2 {
		t.Fatalf("unexpected progress %+v", m.progress)
	}
	view := ansi.Strip(m.View())
	if !strings.Contains(view, "PROGRESS - Pack prog-a") {
		t.Errorf("title missing:\n%s", view)
	}
}

func TestProgressModelEmptyAndReset(t *testing.T) {
	registerTestPack("prog-b", 2)
	store := testStore(t)
	store.RecordCompletion(storage.Completion{PackID: "prog-b", Level: 1, Moves: 2})

	m := NewProgressModel(store, "prog-b", DefaultTheme(), 100, 30)
	next, _ := m.Update(runeKey("X"))
	m = next.(ProgressModel)

	if len(m.progress) != 0 {
		t.Errorf("X should clear the pack, got %+v", m.progress)
	}
	if levels, _ := store.CompletedLevels("prog-b"); len(levels) != 0 {
		t.Errorf("store still has %v", levels)
	}
	if view := ansi.Strip(m.View()); !strings.Contains(view, "No levels cleared yet") {
		t.Errorf("expected empty notice:\n%s", view)
	}
}

func TestProgressModelNavigation(t *testing.T) {
	registerTestPack("prog-c", 1)
	registerTestPack("prog-d", 1)

	m := NewProgressModel(nil, "prog-c", DefaultTheme(), 100, 30)
	start := m.currentPack()
	if start != "prog-c" {
		t.Fatalf("expected to start on prog-c, got %s", start)
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ProgressModel)
	if m.currentPack() == start {
		t.Error("tab should switch packs")
	}
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = next.(ProgressModel)
	if m.currentPack() != start {
		t.Errorf("shift+tab should return to %s, got %s", start, m.currentPack())
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if back := next.(ProgressModel); !back.IsGoingBack() || back.IsQuitting() {
		t.Error("esc goes back without quitting")
	}
	next, cmd := m.Update(runeKey("q"))
	if !next.(ProgressModel).IsQuitting() || cmd == nil {
		t.Error("q should quit")
	}
}
