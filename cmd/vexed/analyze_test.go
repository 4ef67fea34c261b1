package main

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/vovakirdan/vexed/internal/games/vexed/core"
	"github.com/vovakirdan/vexed/internal/games/vexed/levels"
	"github.com/vovakirdan/vexed/internal/games/vexed/solver"
)

func levelText(row6 string) string {
	rows := []string{
		"0000000000",
		"0000000000",
		"0000000000",
		"0000000000",
		"0000000000",
		"0000000000",
		row6,
		"9999999999",
	}
	return strings.Join(rows, "\n")
}

func analyzePack() *levels.Pack {
	return levels.NewPack("analyze", "Analyze", []levels.Level{
		{Number: 1, Text: levelText("1010000000")},
		{Number: 2, Text: levelText("1000000002")},
		{Number: 3, Text: levelText("2020030300")},
	})
}

func TestAnalyzeLevels(t *testing.T) {
	for _, workers := range []int{1, 2, 8} {
		reports := analyzeLevels(context.Background(), analyzePack(), workers, true, solver.Options{}, io.Discard)
		if len(reports) != 3 {
			t.Fatalf("workers=%d: expected 3 reports, got %d", workers, len(reports))
		}
		for i, r := range reports {
			if r.Level != i+1 {
				t.Errorf("workers=%d: report %d has level %d", workers, i, r.Level)
			}
		}

		pair := reports[0]
		if !pair.ok() || pair.Moves != 1 || pair.Movable != 2 || pair.Colors != 1 {
			t.Errorf("workers=%d: unexpected pair report %+v", workers, pair)
		}

		lonely := reports[1]
		var verr core.ValidationError
		if !errors.As(lonely.Invalid, &verr) || verr.Code != "LONE_BLOCK" {
			t.Errorf("workers=%d: expected LONE_BLOCK, got %v", workers, lonely.Invalid)
		}
		if !errors.Is(lonely.SolveErr, solver.ErrNoSolution) {
			t.Errorf("workers=%d: expected ErrNoSolution, got %v", workers, lonely.SolveErr)
		}
		if lonely.ok() {
			t.Errorf("workers=%d: lonely level should fail", workers)
		}

		two := reports[2]
		if !two.ok() || two.Moves != 2 || two.Colors != 2 || two.Movable != 4 {
			t.Errorf("workers=%d: unexpected two-pair report %+v", workers, two)
		}
	}
}

func TestAnalyzeLevelsWithoutSolve(t *testing.T) {
	reports := analyzeLevels(context.Background(), analyzePack(), 2, false, solver.Options{}, io.Discard)
	for _, r := range reports {
		if r.SolveErr != nil || r.Moves != 0 || r.Explored != 0 {
			t.Errorf("level %d should not be solved: %+v", r.Level, r)
		}
	}
	if reports[1].ok() {
		t.Error("validation failures still count without solving")
	}
}

func TestAnalyzeLevelsCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	reports := analyzeLevels(ctx, analyzePack(), 2, true, solver.Options{}, io.Discard)
	for _, r := range reports {
		if !errors.Is(r.SolveErr, context.Canceled) {
			t.Errorf("level %d: expected context.Canceled, got %v", r.Level, r.SolveErr)
		}
	}
}

func TestFmtTable(t *testing.T) {
	out := fmtTable("Classic", []string{"Levels", "Colors"}, map[string]string{
		"Levels": "59",
		"Colors": "3.10 +/- 1.20",
	})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 6 {
		t.Fatalf("expected 6 lines, got %d:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[1], "Classic") {
		t.Errorf("title row missing: %q", lines[1])
	}
	if !strings.HasPrefix(lines[3], "| Levels ") || !strings.Contains(lines[4], "3.10 +/- 1.20") {
		t.Errorf("unexpected rows:\n%s", out)
	}
	width := len([]rune(lines[0]))
	for _, line := range lines {
		if len([]rune(line)) != width {
			t.Errorf("ragged table line %q", line)
		}
	}
}

func TestPad(t *testing.T) {
	testCases := []struct {
		in    string
		width int
		want  string
	}{
		{"ab", 4, "ab  "},
		{"abcd", 2, "abcd"},
		{"", 3, "   "},
	}
	for _, tc := range testCases {
		if got := pad(tc.in, tc.width); got != tc.want {
			t.Errorf("pad(%q, %d) = %q, want %q", tc.in, tc.width, got, tc.want)
		}
	}
}
