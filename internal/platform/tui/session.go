package tui

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/vexed/internal/config"
	"github.com/vovakirdan/vexed/internal/core"
	"github.com/vovakirdan/vexed/internal/games/vexed"
	"github.com/vovakirdan/vexed/internal/registry"
	"github.com/vovakirdan/vexed/internal/storage"
)

// Deps are the shared services a session needs.
type Deps struct {
	Store  *storage.Store // may be nil
	Config config.Config
	PackID string
	Logger *log.Logger
	Theme  Theme
}

type view int

const (
	viewPicker view = iota
	viewGame
	viewProgress
)

// SessionModel manages the full flow: level picker -> game -> picker,
// with the progress board one key away. It is the top-level model for both
// local play and SSH sessions.
type SessionModel struct {
	deps     Deps
	pack     registry.Pack
	config   core.RuntimeConfig
	username string
	view     view
	picker   LevelPickerModel
	progress ProgressModel
	game     GameModel
	quitting bool
}

// NewSessionModel creates a new session model for one player.
func NewSessionModel(deps Deps, cfg core.RuntimeConfig, username string) (SessionModel, error) {
	if deps.Logger == nil {
		deps.Logger = log.New(io.Discard)
	}
	pack, err := registry.Create(deps.PackID)
	if err != nil {
		return SessionModel{}, fmt.Errorf("tui: cannot open pack: %w", err)
	}

	return SessionModel{
		deps:     deps,
		pack:     pack,
		config:   cfg,
		username: username,
		picker:   NewLevelPickerModel(pack, deps.Store, deps.Theme, cfg.ScreenW, cfg.ScreenH),
	}, nil
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.picker.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.view {
	case viewGame:
		return m.updateGame(msg)
	case viewProgress:
		return m.updateProgress(msg)
	default:
		return m.updatePicker(msg)
	}
}

func (m SessionModel) updatePicker(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.picker.Update(msg)
	if picker, ok := next.(LevelPickerModel); ok {
		m.picker = picker
	}

	switch {
	case m.picker.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.picker.WantsProgress():
		m.progress = NewProgressModel(m.deps.Store, m.pack.ID(), m.deps.Theme, m.config.ScreenW, m.config.ScreenH)
		m.view = viewProgress
		return m, m.progress.Init()
	case m.picker.Selected() > 0:
		return m.startGame(m.picker.Selected())
	}
	return m, cmd
}

func (m SessionModel) startGame(level int) (tea.Model, tea.Cmd) {
	opts := vexed.OptionsFromConfig(m.deps.Config)
	opts.StartLevel = level
	opts.Logger = m.deps.Logger.With("user", m.username)

	game := vexed.New(m.pack, opts)
	m.game = NewGameModel(game, m.pack.ID(), m.deps.Store, opts.Logger, m.config).withMenu()
	m.view = viewGame
	m.deps.Logger.Debug("game started", "user", m.username, "pack", m.pack.ID(), "level", level)
	return m, m.game.Init()
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	if game, ok := next.(GameModel); ok {
		m.game = game
	}

	switch {
	case m.game.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.game.BackToMenu():
		return m.backToPicker()
	}
	return m, cmd
}

func (m SessionModel) updateProgress(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.progress.Update(msg)
	if progress, ok := next.(ProgressModel); ok {
		m.progress = progress
	}

	switch {
	case m.progress.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.progress.IsGoingBack():
		return m.backToPicker()
	}
	return m, cmd
}

func (m SessionModel) backToPicker() (tea.Model, tea.Cmd) {
	m.picker = NewLevelPickerModel(m.pack, m.deps.Store, m.deps.Theme, m.config.ScreenW, m.config.ScreenH)
	m.view = viewPicker
	return m, m.picker.Init()
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}
	switch m.view {
	case viewGame:
		return m.game.View()
	case viewProgress:
		return m.progress.View()
	default:
		return m.picker.View()
	}
}

// RunSession runs the picker-driven flow in the local terminal.
func RunSession(deps Deps, cfg core.RuntimeConfig) error {
	model, err := NewSessionModel(deps, cfg, "local")
	if err != nil {
		return err
	}
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
