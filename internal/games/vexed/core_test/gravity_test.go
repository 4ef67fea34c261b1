package core_test

import (
	"testing"

	"github.com/vovakirdan/vexed/internal/games/vexed/core"
)

func TestGravityStep(t *testing.T) {
	testCases := []struct {
		name    string
		before  core.Board
		after   core.Board
		changed bool
	}{
		{
			name:    "block drops one row",
			before:  bottom("1000000000", emptyRow, emptyRow),
			after:   bottom(emptyRow, "1000000000", emptyRow),
			changed: true,
		},
		{
			name:    "block on the floor stays",
			before:  bottom("1000000000"),
			after:   bottom("1000000000"),
			changed: false,
		},
		{
			name:    "immovable supports",
			before:  bottom("1000000000", "9000000000"),
			after:   bottom("1000000000", "9000000000"),
			changed: false,
		},
		{
			name:    "immovable never falls",
			before:  bottom("9000000000", emptyRow),
			after:   bottom("9000000000", emptyRow),
			changed: false,
		},
		{
			name:    "stack falls from the bottom one block per step",
			before:  bottom("1000000000", "2000000000", emptyRow),
			after:   bottom("1000000000", emptyRow, "2000000000"),
			changed: true,
		},
		{
			name:    "columns are independent",
			before:  bottom("1020000000", "0090000000", emptyRow),
			after:   bottom("0020000000", "1090000000", emptyRow),
			changed: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, changed := core.GravityStep(tc.before)
			if changed != tc.changed {
				t.Errorf("expected changed=%v, got %v", tc.changed, changed)
			}
			if !got.Equal(tc.after) {
				t.Errorf("unexpected board:\n%s\nwant:\n%s", got, tc.after)
			}
		})
	}
}

func TestFallToFloor(t *testing.T) {
	b := core.Board{}.Set(core.C(0, 3), core.Movable4)

	got, steps := core.Fall(b)
	if steps != core.Height-1 {
		t.Errorf("expected %d steps, got %d", core.Height-1, steps)
	}
	if got.Get(core.C(core.Height-1, 3)) != core.Movable4 {
		t.Errorf("block should rest on the floor:\n%s", got)
	}
	if !core.IsSupported(got) {
		t.Error("board should be supported after Fall")
	}
}

func TestGravityStepDoesNotMutateInput(t *testing.T) {
	b := bottom("1000000000", emptyRow)
	before := b.Key()
	core.GravityStep(b)
	if b.Key() != before {
		t.Error("GravityStep modified its input")
	}
}

func TestGravityStepConservesBlocks(t *testing.T) {
	for _, b := range []core.Board{
		bottom("1234000000", "0000500000", "9090909090", emptyRow),
		bottom("1111111111", emptyRow, emptyRow, emptyRow),
	} {
		next, _ := core.GravityStep(b)
		if next.CountMovable() != b.CountMovable() {
			t.Errorf("gravity changed the movable count: %d -> %d", b.CountMovable(), next.CountMovable())
		}
	}
}
