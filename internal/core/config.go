package core

import "time"

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Frames per second (default 30)
	Seed     int64 // Reserved for games with randomness; 0 means time-based
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
	}
}

// TickInterval is the wall-clock time of one frame.
func (c RuntimeConfig) TickInterval() time.Duration {
	if c.TickRate <= 0 {
		return time.Second / 30
	}
	return time.Second / time.Duration(c.TickRate)
}

// GameState is what the platform needs to know about a running puzzle.
type GameState struct {
	Level     int  // Current level, 1-based
	MaxLevel  int  // Last level of the campaign
	Moves     int  // Accepted moves on the current level
	Remaining int  // Movable blocks left on the board
	Busy      bool // A settlement is being played back
	Completed bool // Current level is cleared
	Finished  bool // The final level is cleared
}

// LevelResult describes a cleared level.
type LevelResult struct {
	Level      int
	Moves      int
	Eliminated int
	Duration   time.Duration
}

// StepResult is returned by Game.Step() after each frame.
type StepResult struct {
	State GameState
	// Cleared is set on the frame a level becomes completed.
	Cleared *LevelResult
	// Quit is set when the game asks the platform to leave.
	Quit bool
}
