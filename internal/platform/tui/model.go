package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/vexed/internal/core"
	"github.com/vovakirdan/vexed/internal/storage"
)

// GameModel is the Bubble Tea model that drives one game.
type GameModel struct {
	game       core.Game
	packID     string
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	keyMapper  *KeyMapper
	gameState  core.GameState
	lastLevel  int
	hasMenu    bool
	quitting   bool
	backToMenu bool
}

// NewGameModel creates a new Bubble Tea model for the given game.
// store and logger may be nil.
func NewGameModel(game core.Game, packID string, store *storage.Store, logger *log.Logger, cfg core.RuntimeConfig) GameModel {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return GameModel{
		game:       game,
		packID:     packID,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		logger:     logger,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
	}
}

// Init starts the game and the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickInterval())
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		m.game.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey records the action for the next tick.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "ctrl+s":
		m.saveScreenshot()
		return m, nil
	case m.hasMenu && m.keyMapper.IsMenuKey(msg):
		m.backToMenu = true
		return m, nil
	}

	m.keyMapper.MapKeyToFrame(msg, &m.inputFrame)
	return m, nil
}

// handleTick advances the game by one frame.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.backToMenu {
		return m, nil
	}

	result := m.game.Step(m.inputFrame)
	m.inputFrame.Clear()
	m.gameState = result.State

	if result.Quit {
		m.quitting = true
		return m, tea.Quit
	}
	if result.Cleared != nil {
		m.recordCompletion(*result.Cleared)
	}
	if lvl := m.gameState.Level; lvl > 0 && lvl != m.lastLevel {
		m.lastLevel = lvl
		m.saveResume(lvl)
	}

	return m, tickCmd(m.config.TickInterval())
}

func (m GameModel) recordCompletion(r core.LevelResult) {
	m.logger.Info("level cleared", "pack", m.packID, "level", r.Level, "moves", r.Moves, "time", r.Duration.Round(time.Second))
	if m.store == nil {
		return
	}
	_, err := m.store.RecordCompletion(storage.Completion{
		PackID:     m.packID,
		Level:      r.Level,
		Moves:      r.Moves,
		Eliminated: r.Eliminated,
		Duration:   r.Duration,
	})
	if err != nil {
		m.logger.Warn("could not record completion", "error", err)
	}
}

func (m GameModel) saveResume(level int) {
	if m.store == nil {
		return
	}
	if err := m.store.SaveResume(m.packID, level); err != nil {
		m.logger.Warn("could not save resume point", "error", err)
	}
}

// saveScreenshot saves the current screen as plain text.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".vexed", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s_%s.txt", m.game.ID(), m.packID, timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// withMenu enables the key that returns to the level picker.
func (m GameModel) withMenu() GameModel {
	m.hasMenu = true
	return m
}

// State returns the game state seen on the last tick.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// IsQuitting returns true if the user asked to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the user asked for the level picker.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run plays a single game until the user quits.
func Run(game core.Game, packID string, store *storage.Store, logger *log.Logger, cfg core.RuntimeConfig) error {
	model := NewGameModel(game, packID, store, logger, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
