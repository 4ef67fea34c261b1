package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/vexed/internal/games/vexed/levels"
	"github.com/vovakirdan/vexed/internal/registry"
	"github.com/vovakirdan/vexed/internal/storage"
)

// LevelPickerModel lists the levels of a pack with the player's progress.
// Item 0 continues from the saved resume point.
type LevelPickerModel struct {
	pack      registry.Pack
	titles    []string
	done      map[int]bool
	best      map[int]int
	resume    int
	cursor    int
	scroll    int
	width     int
	height    int
	keyMapper *KeyMapper
	theme     Theme
	selected  int
	progress  bool
	quitting  bool
}

// NewLevelPickerModel builds the picker for pack. store may be nil.
func NewLevelPickerModel(pack registry.Pack, store *storage.Store, theme Theme, width, height int) LevelPickerModel {
	m := LevelPickerModel{
		pack:      pack,
		titles:    levelTitles(pack),
		done:      make(map[int]bool),
		best:      make(map[int]int),
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
		theme:     theme,
	}
	if store == nil {
		return m
	}

	if progress, err := store.Progress(pack.ID()); err == nil {
		for _, p := range progress {
			m.done[p.Level] = true
			m.best[p.Level] = p.BestMoves
		}
	}
	if lvl, err := store.ResumeLevel(pack.ID()); err == nil && lvl <= len(m.titles) {
		m.resume = lvl
	}
	return m
}

// levelTitles names every level of the pack.
func levelTitles(p registry.Pack) []string {
	if lp, ok := p.(*levels.Pack); ok {
		titles := make([]string, 0, lp.Count())
		for _, l := range lp.Levels() {
			titles = append(titles, l.Title())
		}
		return titles
	}
	titles := make([]string, p.Count())
	for i := range titles {
		titles[i] = fmt.Sprintf("Level %d", i+1)
	}
	return titles
}

// Init initializes the model.
func (m LevelPickerModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m LevelPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateScroll()
	}
	return m, nil
}

func (m LevelPickerModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	last := len(m.titles)

	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		m.cursor = max(m.cursor-1, 0)
	case MenuActionDown:
		m.cursor = min(m.cursor+1, last)
	case MenuActionPageUp:
		m.cursor = max(m.cursor-m.visibleItems(), 0)
	case MenuActionPageDown:
		m.cursor = min(m.cursor+m.visibleItems(), last)
	case MenuActionProgress:
		m.progress = true
	case MenuActionSelect:
		m.selected = m.levelAt(m.cursor)
	}
	m.updateScroll()
	return m, nil
}

// levelAt maps a cursor position to a level number.
func (m LevelPickerModel) levelAt(cursor int) int {
	if cursor == 0 {
		return max(m.resume, 1)
	}
	return cursor
}

func (m LevelPickerModel) visibleItems() int {
	return max(m.height-10, 3)
}

// updateScroll adjusts scroll offset to keep cursor visible.
func (m *LevelPickerModel) updateScroll() {
	visible := m.visibleItems()
	if m.cursor < m.scroll {
		m.scroll = m.cursor
	} else if m.cursor >= m.scroll+visible {
		m.scroll = m.cursor - visible + 1
	}
}

// View renders the level selection.
func (m LevelPickerModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(m.theme.MenuTitle.Render("V E X E D"), m.width))
	b.WriteString("\n\n")
	subtitle := fmt.Sprintf("%s: %d of %d levels cleared", m.pack.Title(), len(m.done), len(m.titles))
	b.WriteString(centerText(m.theme.MenuDescription.Render(subtitle), m.width))
	b.WriteString("\n\n")

	end := min(m.scroll+m.visibleItems(), len(m.titles)+1)
	for i := m.scroll; i < end; i++ {
		b.WriteString(centerText(m.renderItem(i), m.width))
		b.WriteString("\n")
	}

	if m.scroll > 0 {
		b.WriteString(centerText(m.theme.MenuDescription.Render("... more above ..."), m.width))
		b.WriteString("\n")
	}
	if end <= len(m.titles) {
		b.WriteString(centerText(m.theme.MenuDescription.Render("... more below ..."), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := m.theme.HelpText.Render("Up/Down: Navigate  |  Enter: Play  |  Tab: Progress  |  Q: Quit")
	b.WriteString(centerText(controls, m.width))
	b.WriteString("\n")

	return b.String()
}

func (m LevelPickerModel) renderItem(i int) string {
	cursor := "  "
	style := m.theme.MenuItemNormal
	if i == m.cursor {
		cursor = "> "
		style = m.theme.MenuItemActive
	}

	if i == 0 {
		label := "Start from level 1"
		if m.resume > 1 {
			label = fmt.Sprintf("Continue from level %d", m.resume)
		}
		return style.Render(cursor + label)
	}

	mark := "  "
	if m.done[i] {
		mark = "✓ "
		if i != m.cursor {
			style = m.theme.MenuItemDone
		}
	}
	line := fmt.Sprintf("%s%s%2d. %s", cursor, mark, i, m.titles[i-1])
	if best, ok := m.best[i]; ok {
		line += fmt.Sprintf("  (best %d)", best)
	}
	return style.Render(line)
}

// Selected returns the chosen level, or 0 while still choosing.
func (m LevelPickerModel) Selected() int {
	return m.selected
}

// WantsProgress returns true if the user asked for the progress board.
func (m LevelPickerModel) WantsProgress() bool {
	return m.progress
}

// IsQuitting returns true if user wants to quit.
func (m LevelPickerModel) IsQuitting() bool {
	return m.quitting
}
