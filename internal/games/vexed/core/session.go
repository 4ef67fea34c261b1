package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
)

// FinalLevel is the last level of the classic campaign.
const FinalLevel = 59

// ErrLevelOutOfRange is returned when loading a level outside [1, MaxLevel].
var ErrLevelOutOfRange = errors.New("level out of range")

// LevelSource provides level text by 1-based index.
type LevelSource interface {
	LevelText(ctx context.Context, level int) (string, error)
	Count() int
}

// State is the lifecycle of a session's current level.
type State uint8

const (
	StateLoading State = iota
	StatePlaying
	StateCompleted
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StatePlaying:
		return "playing"
	case StateCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// MarshalText encodes the state name.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a state name written by MarshalText.
func (s *State) UnmarshalText(text []byte) error {
	for st := StateLoading; st <= StateCompleted; st++ {
		if st.String() == string(text) {
			*s = st
			return nil
		}
	}
	return fmt.Errorf("unknown session state %q", text)
}

// Snapshot is a consistent view of a session.
type Snapshot struct {
	Level          int
	MaxLevel       int
	Board          Board
	Remaining      int
	State          State
	Moves          int
	Eliminated     int
	FinalCompleted bool
	Elapsed        time.Duration
}

// Session owns the board of the level being played. All methods are safe for
// concurrent use; a move that arrives while another is settling is rejected
// with RejectBusy instead of waiting.
type Session struct {
	mu       sync.RWMutex
	settling atomic.Bool

	source   LevelSource
	maxLevel int
	logger   *log.Logger
	now      func() time.Time

	level      int
	board      Board
	remaining  int
	state      State
	moves      int
	eliminated int
	started    time.Time
	finished   time.Time
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger used for session events.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMaxLevel overrides the last playable level. It is clamped to the
// number of levels the source provides.
func WithMaxLevel(n int) Option {
	return func(s *Session) {
		if n > 0 {
			s.maxLevel = n
		}
	}
}

// WithClock replaces time.Now for elapsed-time tracking.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		if now != nil {
			s.now = now
		}
	}
}

// NewSession creates a session in the Loading state. Call Load to start.
func NewSession(source LevelSource, opts ...Option) *Session {
	s := &Session{
		source:   source,
		maxLevel: FinalLevel,
		logger:   log.New(io.Discard),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if n := source.Count(); n > 0 && n < s.maxLevel {
		s.maxLevel = n
	}
	return s
}

// Load parses and pre-settles a level and enters Playing. A level that
// settles to no movable blocks is immediately Completed.
func (s *Session) Load(ctx context.Context, level int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(ctx, level)
}

func (s *Session) loadLocked(ctx context.Context, level int) error {
	if level < 1 || level > s.maxLevel {
		return fmt.Errorf("session: cannot load level %d of %d: %w", level, s.maxLevel, ErrLevelOutOfRange)
	}
	s.state = StateLoading
	text, err := s.source.LevelText(ctx, level)
	if err != nil {
		return fmt.Errorf("session: cannot load level %d: %w", level, err)
	}

	parsed := ParseLevel(text)
	board, eliminated := Settle(parsed)
	if eliminated > 0 {
		s.logger.Debug("level settled on load", "level", level, "eliminated", eliminated)
	}

	s.level = level
	s.board = board
	s.remaining = parsed.CountMovable() - eliminated
	s.moves = 0
	s.eliminated = 0
	s.started = s.now()
	s.finished = time.Time{}
	s.state = StatePlaying
	if s.remaining == 0 {
		s.complete()
	}
	s.logger.Debug("level loaded", "level", level, "movable", s.remaining)
	return nil
}

func (s *Session) complete() {
	s.state = StateCompleted
	s.finished = s.now()
	if s.level == s.maxLevel {
		s.logger.Info("campaign completed", "level", s.level, "moves", s.moves)
		return
	}
	s.logger.Info("level completed", "level", s.level, "moves", s.moves)
}

// Move applies a player move to the current board. Out-of-range coordinates
// return an error; every other refusal is reported in the result.
func (s *Session) Move(from, to Coord) (MoveResult, error) {
	if !s.settling.CompareAndSwap(false, true) {
		s.mu.RLock()
		defer s.mu.RUnlock()
		return MoveResult{Board: s.board, MovableRemaining: s.remaining, Reason: RejectBusy}, nil
	}
	defer s.settling.Store(false)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StatePlaying {
		return MoveResult{Board: s.board, MovableRemaining: s.remaining, Reason: RejectNotPlaying}, nil
	}

	res, err := Move(s.board, from, to)
	if err != nil {
		s.logger.Debug("move refused", "from", from, "to", to, "error", err)
		return res, err
	}
	if !res.Accepted {
		s.logger.Debug("move rejected", "from", from, "to", to, "reason", res.Reason)
		res.MovableRemaining = s.remaining
		return res, nil
	}

	s.board = res.Board
	s.remaining -= res.Eliminated
	s.moves++
	s.eliminated += res.Eliminated
	res.MovableRemaining = s.remaining
	res.Completed = s.remaining == 0
	s.logger.Debug("move applied", "from", from, "to", to, "eliminated", res.Eliminated, "remaining", s.remaining)
	if res.Completed {
		s.complete()
	}
	return res, nil
}

// Restart reloads the current level.
func (s *Session) Restart(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(ctx, max(s.level, 1))
}

// Next loads the following level, staying on the last level at the end.
func (s *Session) Next(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(ctx, min(s.level+1, s.maxLevel))
}

// Previous loads the preceding level, staying on level 1 at the start.
func (s *Session) Previous(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(ctx, max(s.level-1, 1))
}

// PlayAgain starts the campaign over from level 1.
func (s *Session) PlayAgain(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(ctx, 1)
}

// Hold marks the session as settling until release is called, so moves are
// rejected with RejectBusy while a presenter replays settlement steps.
// ok is false if the session is already settling.
func (s *Session) Hold() (release func(), ok bool) {
	if !s.settling.CompareAndSwap(false, true) {
		return func() {}, false
	}
	var once sync.Once
	return func() { once.Do(func() { s.settling.Store(false) }) }, true
}

// Settling reports whether a move is currently being resolved.
func (s *Session) Settling() bool {
	return s.settling.Load()
}

// Level returns the current 1-based level index.
func (s *Session) Level() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.level
}

// MaxLevel returns the last playable level.
func (s *Session) MaxLevel() int {
	return s.maxLevel
}

// Board returns the current stable board.
func (s *Session) Board() Board {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.board
}

// Remaining returns the number of movable blocks left.
func (s *Session) Remaining() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.remaining
}

// State returns the lifecycle state of the current level.
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Completed reports whether the current level has been cleared.
func (s *Session) Completed() bool {
	return s.State() == StateCompleted
}

// FinalCompleted reports whether the last level has been cleared.
func (s *Session) FinalCompleted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state == StateCompleted && s.level == s.maxLevel
}

// Moves returns the number of accepted moves on the current level.
func (s *Session) Moves() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.moves
}

// Snapshot returns all session fields under one lock.
func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	end := s.finished
	if end.IsZero() {
		end = s.now()
	}
	var elapsed time.Duration
	if !s.started.IsZero() {
		elapsed = end.Sub(s.started)
	}
	return Snapshot{
		Level:          s.level,
		MaxLevel:       s.maxLevel,
		Board:          s.board,
		Remaining:      s.remaining,
		State:          s.state,
		Moves:          s.moves,
		Eliminated:     s.eliminated,
		FinalCompleted: s.state == StateCompleted && s.level == s.maxLevel,
		Elapsed:        elapsed,
	}
}
