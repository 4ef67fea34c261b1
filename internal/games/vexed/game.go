// Package vexed adapts the Vexed engine to the platform Game contract:
// cursor and grab controls, paced playback of settlement steps, level
// navigation and completion overlays.
package vexed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/vexed/internal/config"
	platformcore "github.com/vovakirdan/vexed/internal/core"
	"github.com/vovakirdan/vexed/internal/games/vexed/core"
	"github.com/vovakirdan/vexed/internal/games/vexed/solver"
	"github.com/vovakirdan/vexed/internal/registry"
)

// Layout constants, in terminal cells.
const (
	cellW     = 4
	hudHeight = 3
	footerH   = 3
	boardW    = core.Width*cellW + 2
	boardH    = core.Height + 2
	minW      = boardW + 2
	minH      = hudHeight + boardH + footerH
)

const hintTimeout = 2 * time.Second

// Options configures a Game.
type Options struct {
	StartLevel  int
	MaxLevel    int
	Pacing      config.Pacing
	AutoAdvance time.Duration
	Solver      solver.Options
	Logger      *log.Logger
	Clock       func() time.Time
}

// OptionsFromConfig maps a loaded configuration to game options.
func OptionsFromConfig(cfg config.Config) Options {
	return Options{
		StartLevel:  cfg.Campaign.InitialLevel,
		MaxLevel:    cfg.Campaign.MaxLevel,
		Pacing:      cfg.Animation.Pacing(),
		AutoAdvance: cfg.Campaign.AutoAdvance(),
		Solver:      solver.Options{MaxNodes: cfg.Solver.MaxNodes, MaxDepth: cfg.Solver.MaxDepth},
	}
}

// frame is one board shown during settlement playback.
type frame struct {
	board     core.Board
	highlight map[core.Coord]bool
	dur       time.Duration
}

// Game is a playable Vexed campaign over one level pack.
type Game struct {
	pack    registry.Pack
	opts    Options
	logger  *log.Logger
	now     func() time.Time
	session *core.Session
	loadErr error

	screenW  int
	screenH  int
	tooSmall bool
	board    platformcore.Rect

	cursor  core.Coord
	held    bool
	hint    *solver.Move
	message string

	frames     []frame
	frameIdx   int
	frameStart time.Time
	release    func()

	completedAt time.Time
}

// New creates a game over pack. Call Reset before the first Step.
func New(pack registry.Pack, opts Options) *Game {
	g := &Game{
		pack:   pack,
		opts:   opts,
		logger: opts.Logger,
		now:    opts.Clock,
	}
	if g.logger == nil {
		g.logger = log.New(io.Discard)
	}
	if g.now == nil {
		g.now = time.Now
	}
	return g
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return "vexed"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Vexed: " + g.pack.Title()
}

// PackID returns the pack being played.
func (g *Game) PackID() string {
	return g.pack.ID()
}

// Session exposes the engine session driving the game.
func (g *Game) Session() *core.Session {
	return g.session
}

// Reset starts a new session at the configured start level.
func (g *Game) Reset(cfg platformcore.RuntimeConfig) {
	g.stopPlayback()
	g.Resize(cfg.ScreenW, cfg.ScreenH)
	g.session = core.NewSession(g.pack,
		core.WithLogger(g.logger),
		core.WithMaxLevel(g.opts.MaxLevel),
		core.WithClock(g.now),
	)
	start := platformcore.Clamp(g.opts.StartLevel, 1, g.session.MaxLevel())
	g.load(func(ctx context.Context) error { return g.session.Load(ctx, start) })
}

// Resize recomputes the layout for a new screen size.
func (g *Game) Resize(width, height int) {
	g.screenW, g.screenH = width, height
	screen := platformcore.NewRect(0, 0, width, height)
	g.tooSmall = !screen.Fits(minW, minH)

	area := platformcore.NewRect(0, hudHeight, width, height-hudHeight-footerH)
	g.board = area.Centered(boardW, boardH)
}

func (g *Game) load(fn func(ctx context.Context) error) {
	g.stopPlayback()
	g.held = false
	g.hint = nil
	g.message = ""
	g.loadErr = fn(context.Background())
	if g.loadErr != nil {
		g.logger.Error("cannot load level", "pack", g.pack.ID(), "error", g.loadErr)
		return
	}
	g.cursor = firstMovable(g.session.Board())
	if g.session.Completed() {
		g.completedAt = g.now()
	}
}

func firstMovable(b core.Board) core.Coord {
	for c := range b.Cells() {
		if c.Type.IsMovable() {
			return c.Coord()
		}
	}
	return core.C(0, 0)
}

// Step applies one frame of input and advances playback.
func (g *Game) Step(in platformcore.InputFrame) platformcore.StepResult {
	if in.Has(platformcore.ActionQuit) {
		g.stopPlayback()
		return platformcore.StepResult{State: g.State(), Quit: true}
	}
	if g.session == nil {
		return platformcore.StepResult{State: g.State()}
	}

	now := g.now()
	if g.animating() {
		g.advancePlayback(now)
		if g.animating() {
			return platformcore.StepResult{State: g.State()}
		}
	}

	var cleared *platformcore.LevelResult
	switch {
	case g.loadErr != nil:
		if in.Has(platformcore.ActionRestart) {
			g.load(g.session.Restart)
		}
	case g.session.State() == core.StateCompleted:
		g.stepCompleted(in, now)
	case g.session.State() == core.StatePlaying:
		cleared = g.stepPlaying(in, now)
	}

	return platformcore.StepResult{State: g.State(), Cleared: cleared}
}

func (g *Game) stepCompleted(in platformcore.InputFrame, now time.Time) {
	advance := in.Has(platformcore.ActionConfirm) || in.Has(platformcore.ActionGrab)

	switch {
	case in.Has(platformcore.ActionRestart):
		g.load(g.session.Restart)
	case in.Has(platformcore.ActionPrev):
		g.load(g.session.Previous)
	case g.session.FinalCompleted():
		if advance {
			g.load(g.session.PlayAgain)
		}
	case advance || in.Has(platformcore.ActionNext):
		g.load(g.session.Next)
	case g.opts.AutoAdvance > 0 && now.Sub(g.completedAt) >= g.opts.AutoAdvance:
		g.load(g.session.Next)
	}
}

func (g *Game) stepPlaying(in platformcore.InputFrame, now time.Time) *platformcore.LevelResult {
	switch {
	case in.Has(platformcore.ActionRestart):
		g.load(g.session.Restart)
		return nil
	case in.Has(platformcore.ActionNext):
		g.load(g.session.Next)
		return nil
	case in.Has(platformcore.ActionPrev):
		g.load(g.session.Previous)
		return nil
	case in.Has(platformcore.ActionHint):
		g.showHint()
		return nil
	case in.Has(platformcore.ActionBack):
		g.held = false
		return nil
	case in.Has(platformcore.ActionGrab):
		g.toggleGrab()
		return nil
	}

	dc := 0
	if in.Has(platformcore.ActionLeft) {
		dc--
	}
	if in.Has(platformcore.ActionRight) {
		dc++
	}

	if g.held && dc != 0 {
		return g.slide(dc, now)
	}

	dr := 0
	if in.Has(platformcore.ActionUp) {
		dr--
	}
	if in.Has(platformcore.ActionDown) {
		dr++
	}
	if dr != 0 || dc != 0 {
		g.held = false
		g.cursor = core.C(
			platformcore.Clamp(g.cursor.Row+dr, 0, core.Height-1),
			platformcore.Clamp(g.cursor.Col+dc, 0, core.Width-1),
		)
	}
	return nil
}

func (g *Game) toggleGrab() {
	if g.held {
		g.held = false
		return
	}
	if !g.session.Board().Get(g.cursor).IsMovable() {
		g.message = "Nothing to grab here"
		return
	}
	g.held = true
	g.message = ""
}

func (g *Game) slide(dc int, now time.Time) *platformcore.LevelResult {
	from := g.cursor
	to := core.C(from.Row, from.Col+dc)

	res, err := g.session.Move(from, to)
	if errors.Is(err, core.ErrInvalidCoordinate) {
		g.message = "Edge of the board"
		return nil
	}
	if err != nil {
		g.message = err.Error()
		return nil
	}
	if !res.Accepted {
		g.message = rejectionMessage(res.Reason)
		return nil
	}

	g.held = false
	g.hint = nil
	g.message = ""
	g.cursor = to
	g.startPlayback(res.Steps, now)

	if !res.Completed {
		return nil
	}
	snap := g.session.Snapshot()
	if !g.animating() {
		g.completedAt = now
	}
	return &platformcore.LevelResult{
		Level:      snap.Level,
		Moves:      snap.Moves,
		Eliminated: snap.Eliminated,
		Duration:   snap.Elapsed,
	}
}

func rejectionMessage(r core.Rejection) string {
	switch r {
	case core.RejectOccupied:
		return "Blocked"
	case core.RejectNotMovable:
		return "That block does not move"
	case core.RejectNotAdjacent:
		return "Blocks slide one cell at a time"
	case core.RejectBusy:
		return "Wait for the blocks to settle"
	case core.RejectNotPlaying:
		return "Level is not in play"
	default:
		return r.String()
	}
}

func (g *Game) showHint() {
	ctx, cancel := context.WithTimeout(context.Background(), hintTimeout)
	defer cancel()

	mv, err := solver.Hint(ctx, g.session.Board(), g.opts.Solver)
	if err != nil {
		g.logger.Debug("no hint", "level", g.session.Level(), "error", err)
		g.message = "No hint available"
		return
	}
	g.hint = &mv
	g.cursor = mv.From
	g.held = false
	dir := "right"
	if mv.To.Col < mv.From.Col {
		dir = "left"
	}
	g.message = fmt.Sprintf("Hint: slide %s %s", mv.From, dir)
}

// Hint returns the last computed hint, or nil.
func (g *Game) Hint() *solver.Move {
	return g.hint
}

// Cursor returns the cell under the cursor and whether its block is held.
func (g *Game) Cursor() (core.Coord, bool) {
	return g.cursor, g.held
}

// Message returns the current status line.
func (g *Game) Message() string {
	return g.message
}

// startPlayback turns settlement steps into timed frames. The session stays
// held until the last frame has been shown.
func (g *Game) startPlayback(steps []core.Step, now time.Time) {
	p := g.opts.Pacing
	var frames []frame
	prev := g.session.Board()
	for _, st := range steps {
		switch st.Phase {
		case core.PhaseMove:
			frames = append(frames, frame{board: st.Board, dur: p.MoveDelay})
		case core.PhaseGravity:
			frames = append(frames, frame{board: st.Board, dur: p.GravityStep})
		case core.PhaseEliminate:
			stagger := p.EliminationStagger * time.Duration(max(len(st.Elimination.Groups)-1, 0))
			frames = append(frames,
				frame{board: prev, highlight: st.Elimination.Removed(), dur: p.EliminationHighlight + stagger},
				frame{board: st.Board, dur: p.Elimination},
			)
		}
		prev = st.Board
	}

	var total time.Duration
	for _, f := range frames {
		total += f.dur
	}
	if total == 0 {
		return
	}

	release, ok := g.session.Hold()
	if !ok {
		return
	}
	g.frames = frames
	g.frameIdx = 0
	g.frameStart = now
	g.release = release
}

func (g *Game) advancePlayback(now time.Time) {
	for g.frameIdx < len(g.frames) {
		d := g.frames[g.frameIdx].dur
		if now.Sub(g.frameStart) < d {
			return
		}
		g.frameStart = g.frameStart.Add(d)
		g.frameIdx++
	}
	g.stopPlayback()
	if g.session.Completed() {
		g.completedAt = now
	}
}

func (g *Game) stopPlayback() {
	if g.release != nil {
		g.release()
		g.release = nil
	}
	g.frames = nil
	g.frameIdx = 0
}

func (g *Game) animating() bool {
	return g.frameIdx < len(g.frames)
}

// State returns the current game state.
func (g *Game) State() platformcore.GameState {
	if g.session == nil {
		return platformcore.GameState{}
	}
	snap := g.session.Snapshot()
	return platformcore.GameState{
		Level:     snap.Level,
		MaxLevel:  snap.MaxLevel,
		Moves:     snap.Moves,
		Remaining: snap.Remaining,
		Busy:      g.animating(),
		Completed: snap.State == core.StateCompleted,
		Finished:  snap.FinalCompleted,
	}
}

// AutoAdvanceIn returns the time left before the next level loads, or 0.
func (g *Game) AutoAdvanceIn() time.Duration {
	if g.session == nil || !g.session.Completed() || g.session.FinalCompleted() ||
		g.opts.AutoAdvance <= 0 || g.animating() {
		return 0
	}
	return max(g.opts.AutoAdvance-g.now().Sub(g.completedAt), 0)
}
