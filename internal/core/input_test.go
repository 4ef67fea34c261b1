package core

import (
	"testing"
	"time"
)

func TestInputFrame(t *testing.T) {
	f := FrameOf(ActionLeft, ActionGrab, ActionNone)

	if !f.Has(ActionLeft) || !f.Has(ActionGrab) {
		t.Error("FrameOf should set the given actions")
	}
	if f.Has(ActionNone) || len(f.Actions) != 2 {
		t.Errorf("ActionNone must never be recorded, got %v", f.Actions)
	}

	clone := f.Clone()
	f.Clear()
	if !f.Empty() {
		t.Error("Clear should empty the frame")
	}
	if !clone.Has(ActionLeft) {
		t.Error("Clone should be independent of the original")
	}

	var zero InputFrame
	if zero.Has(ActionUp) || !zero.Empty() {
		t.Error("zero frame should report nothing")
	}
	zero.Set(ActionUp)
	if !zero.Has(ActionUp) {
		t.Error("Set on a zero frame should allocate")
	}
}

func TestActionString(t *testing.T) {
	tests := map[Action]string{
		ActionNone:  "None",
		ActionGrab:  "Grab",
		ActionHint:  "Hint",
		ActionQuit:  "Quit",
		Action(-1):  "Unknown",
		Action(999): "Unknown",
	}
	for a, want := range tests {
		if got := a.String(); got != want {
			t.Errorf("Action(%d).String() = %q, expected %q", int(a), got, want)
		}
	}
}

func TestTickInterval(t *testing.T) {
	if got := DefaultConfig().TickInterval(); got != time.Second/30 {
		t.Errorf("default interval = %v", got)
	}
	if got := (RuntimeConfig{TickRate: 60}).TickInterval(); got != time.Second/60 {
		t.Errorf("60 fps interval = %v", got)
	}
	if got := (RuntimeConfig{}).TickInterval(); got != time.Second/30 {
		t.Errorf("zero tick rate should fall back to 30 fps, got %v", got)
	}
}
