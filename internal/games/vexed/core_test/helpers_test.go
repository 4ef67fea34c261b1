package core_test

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/vovakirdan/vexed/internal/games/vexed/core"
)

const emptyRow = "0000000000"

// bottom builds a board whose last len(rows) rows are the given rows.
func bottom(rows ...string) core.Board {
	all := make([]string, 0, core.Height)
	for range core.Height - len(rows) {
		all = append(all, emptyRow)
	}
	all = append(all, rows...)
	return core.ParseRows(all)
}

// levelText is bottom() in level-text form.
func levelText(rows ...string) string {
	return bottom(rows...).String()
}

// randomBoard returns a deterministic pseudo-random board with a mix of
// empty, movable and immovable cells.
func randomBoard(rng *rand.Rand, colors int) core.Board {
	types := make([]core.BlockType, core.Width*core.Height)
	for i := range types {
		switch n := rng.IntN(10); {
		case n < 4:
			types[i] = core.Empty
		case n < 5:
			types[i] = core.Immovable
		default:
			types[i] = core.BlockType(1 + rng.IntN(colors))
		}
	}
	return core.NewBoard(types)
}

// fixedSource serves levels from memory.
type fixedSource struct {
	levels map[int]string
	count  int
	err    error
}

func (s *fixedSource) LevelText(_ context.Context, level int) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	text, ok := s.levels[level]
	if !ok {
		return "", fmt.Errorf("no level %d", level)
	}
	return text, nil
}

func (s *fixedSource) Count() int {
	return s.count
}

// campaign returns a source of n levels that all use text.
func campaign(n int, text string) *fixedSource {
	src := &fixedSource{levels: make(map[int]string, n), count: n}
	for i := 1; i <= n; i++ {
		src.levels[i] = text
	}
	return src
}
