package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/vexed/internal/registry"
	"github.com/vovakirdan/vexed/internal/storage"
)

// ProgressKeyMap defines the key bindings for the progress board.
type ProgressKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextPack key.Binding
	PrevPack key.Binding
	Reset    key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ProgressKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextPack, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ProgressKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextPack, k.PrevPack},
		{k.Reset, k.Back, k.Quit},
	}
}

// DefaultProgressKeyMap returns default key bindings.
func DefaultProgressKeyMap() ProgressKeyMap {
	return ProgressKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextPack: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next pack"),
		),
		PrevPack: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev pack"),
		),
		Reset: key.NewBinding(
			key.WithKeys("X"),
			key.WithHelp("X", "clear pack progress"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ProgressModel shows per-level bests for each registered pack.
type ProgressModel struct {
	packs      []registry.PackInfo
	packCursor int
	store      *storage.Store
	progress   []storage.LevelProgress
	table      table.Model
	help       help.Model
	keys       ProgressKeyMap
	theme      Theme
	width      int
	height     int
	quitting   bool
	goingBack  bool
}

// NewProgressModel creates the progress board, starting on packID.
func NewProgressModel(store *storage.Store, packID string, theme Theme, width, height int) ProgressModel {
	h := help.New()
	h.ShowAll = false

	m := ProgressModel{
		packs:  registry.List(),
		store:  store,
		keys:   DefaultProgressKeyMap(),
		help:   h,
		theme:  theme,
		width:  width,
		height: height,
	}
	for i, p := range m.packs {
		if p.ID == packID {
			m.packCursor = i
		}
	}

	m.table = m.createTable()
	m.loadProgress()
	return m
}

// createTable creates a new table with appropriate columns.
func (m *ProgressModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Level", Width: 6},
		{Title: "Best", Width: 6},
		{Title: "Plays", Width: 6},
		{Title: "Best time", Width: 10},
		{Title: "Last played", Width: 14},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

func (m *ProgressModel) currentPack() string {
	if len(m.packs) == 0 {
		return ""
	}
	return m.packs[m.packCursor].ID
}

// loadProgress reads the current pack's progress from the store.
func (m *ProgressModel) loadProgress() {
	m.progress = nil
	if m.store != nil && len(m.packs) > 0 {
		if progress, err := m.store.Progress(m.currentPack()); err == nil {
			m.progress = progress
		}
	}
	m.updateTableRows()
}

// updateTableRows fills the table from the loaded progress.
func (m *ProgressModel) updateTableRows() {
	rows := make([]table.Row, len(m.progress))
	for i, p := range m.progress {
		last := "-"
		if !p.LastPlayed.IsZero() {
			last = p.LastPlayed.Format("Jan 02 15:04")
		}
		rows[i] = table.Row{
			strconv.Itoa(p.Level),
			strconv.Itoa(p.BestMoves),
			strconv.Itoa(p.Completions),
			p.BestDuration.Round(time.Second).String(),
			last,
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the progress model.
func (m ProgressModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the progress board.
func (m ProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, nil

		case key.Matches(msg, m.keys.NextPack):
			if len(m.packs) > 0 {
				m.packCursor = (m.packCursor + 1) % len(m.packs)
				m.loadProgress()
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevPack):
			if len(m.packs) > 0 {
				m.packCursor = (m.packCursor - 1 + len(m.packs)) % len(m.packs)
				m.loadProgress()
			}
			return m, nil

		case key.Matches(msg, m.keys.Reset):
			if m.store != nil && len(m.packs) > 0 {
				//nolint:errcheck // The board reloads either way
				m.store.ClearProgress(m.currentPack())
				m.loadProgress()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the progress board.
func (m ProgressModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	title := "PROGRESS"
	if len(m.packs) > 0 {
		title = fmt.Sprintf("PROGRESS - %s", m.packs[m.packCursor].Title)
	}
	b.WriteString(m.theme.BoardTitle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	tabs := make([]string, len(m.packs))
	for i, p := range m.packs {
		if i == m.packCursor {
			tabs[i] = m.theme.TabActive.Render(p.Title)
		} else {
			tabs[i] = m.theme.TabIdle.Render(p.Title)
		}
	}
	b.WriteString(centerText(lipgloss.JoinHorizontal(lipgloss.Top, tabs...), m.width))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, m.theme.BoardBorder.Render(m.renderTableContent())))
	b.WriteString("\n")
	b.WriteString(m.theme.HelpText.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTableContent renders the table or empty message.
func (m ProgressModel) renderTableContent() string {
	if len(m.progress) == 0 {
		return m.theme.EmptyNotice.Render("No levels cleared yet.\nClear a level to see it here!")
	}
	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to the picker.
func (m ProgressModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ProgressModel) IsQuitting() bool {
	return m.quitting
}
