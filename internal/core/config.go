package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (0 = use the game config)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 40,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// Status summarizes the game for the platform after a tick or input event.
type Status struct {
	Score   float64 // Elapsed play time of the current or last run, in seconds
	Ticks   int     // Ticks simulated since the last reset of the run clock
	Mode    string  // Current game mode name
	Crashed bool    // Whether the runner hit an obstacle and waits for resume
	Paused  bool    // Whether the game is paused
	Auto    bool    // Whether the autopilot is steering
}

// Running reports whether the simulation timer should be armed.
func (s Status) Running() bool {
	return !s.Crashed && !s.Paused
}
