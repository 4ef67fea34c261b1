package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/vexed/internal/core"
)

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to a game action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	case "up", "k", "w":
		return core.ActionUp, false
	case "down", "j", "s":
		return core.ActionDown, false
	case "left", "h", "a":
		return core.ActionLeft, false
	case "right", "l", "d":
		return core.ActionRight, false
	case " ":
		return core.ActionGrab, false
	case "enter":
		return core.ActionConfirm, false
	case "esc", "b":
		return core.ActionBack, false
	case "r":
		return core.ActionRestart, false
	case "n":
		return core.ActionNext, false
	case "p":
		return core.ActionPrev, false
	case "?":
		return core.ActionHint, false
	}
	return core.ActionNone, false
}

// MapKeyToFrame updates an input frame based on a key message.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	frame.Set(action)
	return isQuit
}

// IsMenuKey reports whether the key leaves the game for the level picker.
func (km *KeyMapper) IsMenuKey(msg tea.KeyMsg) bool {
	return msg.String() == "m"
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionPageUp
	MenuActionPageDown
	MenuActionSelect
	MenuActionBack
	MenuActionProgress
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k":
		return MenuActionUp
	case "s", "down", "j":
		return MenuActionDown
	case "pgup", "left", "h":
		return MenuActionPageUp
	case "pgdown", "right", "l":
		return MenuActionPageDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionProgress
	}
	return MenuActionNone
}
