// Package registry provides a global registry for game factories.
// Games register themselves in init() functions, allowing the platform
// to discover and instantiate games without hardcoded dependencies.
package registry

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/cuberunner/internal/config"
	"github.com/vovakirdan/cuberunner/internal/core"
)

// Game is the interface the platform drives.
// Games contain pure logic with no external dependencies (especially no Bubble Tea).
// The platform owns the timer, maps keys to actions, and displays the screen.
type Game interface {
	// ID returns a unique identifier for this game (e.g., "cuberunner").
	// Used for CLI commands and the run log.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset initializes the game state.
	// The RuntimeConfig provides screen dimensions and RNG seed.
	Reset(cfg core.RuntimeConfig)

	// Handle applies one edge-triggered input event between ticks.
	Handle(a core.Action)

	// Tick advances the simulation by one fixed tick.
	Tick()

	// Running reports whether the platform should keep the timer armed.
	Running() bool

	// Render draws the current game state into the provided screen buffer.
	Render(dst *core.Screen)

	// Status returns a summary of the current game state.
	Status() core.Status
}

// Options are passed to a factory when a game is created.
type Options struct {
	Config    config.Config
	Logger    *log.Logger // nil discards game logs
	Mode      string      // start mode name, empty for the game default
	Autopilot bool
}

// Factory is a function that creates a new instance of a game.
type Factory func(opts Options) Game

var (
	factories = make(map[string]Factory)
	mu        sync.RWMutex
)

// Register adds a game factory to the registry.
// Typically called from a game's init() function.
// Panics if a game with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	factories[id] = f
}

// Create instantiates a new game by its ID.
// Returns an error if the game ID is not registered.
func Create(id string, opts Options) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}

	return f(opts), nil
}

// Exists checks if a game with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
