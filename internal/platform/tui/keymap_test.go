package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/vexed/internal/core"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	testCases := []struct {
		name   string
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{"q", runeKey("q"), core.ActionQuit, true},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"up arrow", tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp, false},
		{"k", runeKey("k"), core.ActionUp, false},
		{"s", runeKey("s"), core.ActionDown, false},
		{"left arrow", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft, false},
		{"d", runeKey("d"), core.ActionRight, false},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionGrab, false},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm, false},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, false},
		{"r", runeKey("r"), core.ActionRestart, false},
		{"n", runeKey("n"), core.ActionNext, false},
		{"p", runeKey("p"), core.ActionPrev, false},
		{"?", runeKey("?"), core.ActionHint, false},
		{"unbound", runeKey("z"), core.ActionNone, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			action, quit := km.MapKey(tc.msg)
			if action != tc.action || quit != tc.quit {
				t.Errorf("MapKey(%q) = %v, %v; expected %v, %v", tc.msg.String(), action, quit, tc.action, tc.quit)
			}
		})
	}
}

func TestMapKeyToFrame(t *testing.T) {
	km := NewKeyMapper()
	frame := core.NewInputFrame()

	if km.MapKeyToFrame(runeKey("h"), &frame) {
		t.Error("h is not a quit key")
	}
	km.MapKeyToFrame(runeKey("z"), &frame)
	if !frame.Has(core.ActionLeft) {
		t.Error("frame should hold ActionLeft")
	}
	if frame.Has(core.ActionNone) {
		t.Error("unbound keys must not be recorded")
	}
	if !km.MapKeyToFrame(runeKey("q"), &frame) {
		t.Error("q should report quit")
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()

	testCases := []struct {
		msg    tea.KeyMsg
		action MenuAction
	}{
		{runeKey("w"), MenuActionUp},
		{tea.KeyMsg{Type: tea.KeyDown}, MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyPgUp}, MenuActionPageUp},
		{runeKey("l"), MenuActionPageDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{runeKey("b"), MenuActionBack},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionProgress},
		{runeKey("q"), MenuActionQuit},
		{runeKey("x"), MenuActionNone},
	}

	for _, tc := range testCases {
		if got := km.MapKeyToMenuAction(tc.msg); got != tc.action {
			t.Errorf("MapKeyToMenuAction(%q) = %v, expected %v", tc.msg.String(), got, tc.action)
		}
	}

	if !km.IsMenuKey(runeKey("m")) || km.IsMenuKey(runeKey("n")) {
		t.Error("only m returns to the menu")
	}
}
