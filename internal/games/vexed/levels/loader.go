// Package levels provides level loading and level packs for Vexed.
// This package depends on core but core does not depend on levels.
package levels

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/vexed/internal/games/vexed/core"
	"github.com/vovakirdan/vexed/internal/games/vexed/levels/formats"
)

// ErrLevelNotFound is returned when a pack has no level with the given number.
var ErrLevelNotFound = errors.New("level not found")

// Level represents a complete level definition.
type Level struct {
	Number   int
	Name     string
	Author   string
	Text     string
	FilePath string
}

// Board parses the level text into a board. The board is not settled.
func (l Level) Board() core.Board {
	return core.ParseLevel(l.Text)
}

// Title returns the level name, or "Level N" when it has none.
func (l Level) Title() string {
	if l.Name != "" {
		return l.Name
	}
	return fmt.Sprintf("Level %d", l.Number)
}

// Loader handles loading levels from a file system.
type Loader struct {
	FS   fs.FS
	Root string
}

// NewLoader creates a new level loader over fsys rooted at root.
func NewLoader(fsys fs.FS, root string) *Loader {
	if root == "" {
		root = "."
	}
	return &Loader{FS: fsys, Root: root}
}

// NewDirLoader creates a loader for a directory on disk.
func NewDirLoader(dir string) *Loader {
	return NewLoader(os.DirFS(dir), ".")
}

// LoadAll recursively scans and loads all level files.
// Levels are sorted by number, then by path, and renumbered 1..N in that
// order so a pack with gaps still plays in sequence.
func (l *Loader) LoadAll() ([]Level, error) {
	var levels []Level

	err := fs.WalkDir(l.FS, l.Root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || formats.Detect(p) == formats.KindUnknown {
			return nil
		}

		level, err := l.LoadFile(p)
		if err != nil {
			log.Warn("skipping level file", "path", p, "error", err)
			return nil
		}
		levels = append(levels, level)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("levels: cannot walk %s: %w", l.Root, err)
	}

	sort.SliceStable(levels, func(i, j int) bool {
		if levels[i].Number != levels[j].Number {
			return levels[i].Number < levels[j].Number
		}
		return levels[i].FilePath < levels[j].FilePath
	})
	for i := range levels {
		levels[i].Number = i + 1
	}

	return levels, nil
}

// LoadFile loads a single level file. The number comes from the file
// content when present, otherwise from the file name.
func (l *Loader) LoadFile(p string) (Level, error) {
	data, err := fs.ReadFile(l.FS, p)
	if err != nil {
		return Level{}, fmt.Errorf("levels: cannot read %s: %w", p, err)
	}

	parsed, err := formats.Parse(formats.Detect(p), data)
	if err != nil {
		return Level{}, fmt.Errorf("levels: cannot parse %s: %w", p, err)
	}

	number := parsed.Number
	if number == 0 {
		number = formats.NumberFromName(p)
	}

	return Level{
		Number:   number,
		Name:     parsed.Name,
		Author:   parsed.Author,
		Text:     parsed.Text,
		FilePath: path.Clean(p),
	}, nil
}

// LoadByIndex loads the level at 1-based position n.
func (l *Loader) LoadByIndex(n int) (Level, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return Level{}, err
	}
	if n < 1 || n > len(levels) {
		return Level{}, fmt.Errorf("levels: %d of %d: %w", n, len(levels), ErrLevelNotFound)
	}
	return levels[n-1], nil
}

// Pack is an ordered set of levels. It implements core.LevelSource.
type Pack struct {
	id     string
	title  string
	levels []Level
}

// NewPack creates a pack. Levels are played in slice order.
func NewPack(id, title string, levels []Level) *Pack {
	return &Pack{id: id, title: title, levels: levels}
}

// LoadPack loads every level under root in fsys into a pack.
func LoadPack(id, title string, fsys fs.FS, root string) (*Pack, error) {
	levels, err := NewLoader(fsys, root).LoadAll()
	if err != nil {
		return nil, err
	}
	if len(levels) == 0 {
		return nil, fmt.Errorf("levels: pack %q has no levels", id)
	}
	return NewPack(id, title, levels), nil
}

// ID returns the pack identifier.
func (p *Pack) ID() string { return p.id }

// Title returns the human-readable pack name.
func (p *Pack) Title() string { return p.title }

// Count returns the number of levels.
func (p *Pack) Count() int { return len(p.levels) }

// Levels returns the levels in play order.
func (p *Pack) Levels() []Level { return p.levels }

// Level returns level n (1-based).
func (p *Pack) Level(n int) (Level, error) {
	if n < 1 || n > len(p.levels) {
		return Level{}, fmt.Errorf("levels: %s level %d: %w", p.id, n, ErrLevelNotFound)
	}
	return p.levels[n-1], nil
}

// LevelText returns the text of level n.
func (p *Pack) LevelText(ctx context.Context, n int) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	lvl, err := p.Level(n)
	if err != nil {
		return "", err
	}
	return lvl.Text, nil
}

var _ core.LevelSource = (*Pack)(nil)
