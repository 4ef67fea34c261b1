package core

// Game is the contract between a puzzle and the platform presenting it.
// Games contain pure logic; the platform handles input mapping, timing
// and drawing the Screen to a terminal.
type Game interface {
	// ID returns a unique identifier, used for CLI commands and storage.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset initializes the game for the given screen.
	Reset(cfg RuntimeConfig)

	// Resize adapts the layout without touching game progress.
	Resize(width, height int)

	// Step advances presentation by one frame and applies the input.
	Step(in InputFrame) StepResult

	// Render draws the current state into the screen buffer.
	// The screen is pre-cleared before this call.
	Render(dst *Screen)

	// State returns the current game state.
	State() GameState
}
