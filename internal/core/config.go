package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and to read time.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Platform ticks per second (default 60)
	Clock    Clock // Time source; nil means SystemClock
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Clock:    SystemClock{},
	}
}

// ClockOrSystem returns the configured clock, falling back to the wall clock.
func (c RuntimeConfig) ClockOrSystem() Clock {
	if c.Clock == nil {
		return SystemClock{}
	}
	return c.Clock
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Busy  bool   // A draw is charging or running; leaving the game is refused
	Phase string // Human-readable machine phase ("idle", "charging", "running")
	Draws int    // Completed draws since the last Reset
	// Warning reports a non-fatal setup problem, such as a config that was
	// replaced by the built-in defaults. Empty when all is well.
	Warning string
}

// StepResult is returned by Game.Step() after each platform tick.
type StepResult struct {
	State GameState
	// Draw holds the resolved symbols of a draw that completed during this tick.
	// It is nil on every other tick.
	Draw []string
}
