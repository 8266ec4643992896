// Package cuberunner implements the cube runner: a first-person endless
// runner where cubes flow down seven lanes toward the player, who steers
// sideways and jumps to avoid them.
//
// The game is a fixed-rate state machine. Each tick spawns, advances and
// collides obstacles, lets the autopilot decide if enabled, then applies
// steering and the jump arc. Poses are rigid transforms; every motion is a
// delta applied in some pivot frame.
package cuberunner

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/cuberunner/internal/config"
	"github.com/vovakirdan/cuberunner/internal/core"
	"github.com/vovakirdan/cuberunner/internal/registry"
	"github.com/vovakirdan/cuberunner/internal/rigid"
)

// ID is the registry and run log identifier of the game.
const ID = "cuberunner"

// Game implements the cube runner game logic.
type Game struct {
	cfg        config.Config
	runtime    core.RuntimeConfig
	state      GameState
	rng        *rand.Rand
	log        *log.Logger
	clock      Clock
	steer      steering
	hit        Hitbox
	pilot      *Autopilot
	levelTicks int
	startMode  Mode
	startAuto  bool
	onCrash    func(Run)
}

// Option configures a Game.
type Option func(*Game)

// WithConfig sets the game configuration.
func WithConfig(cfg config.Config) Option {
	return func(g *Game) { g.cfg = cfg }
}

// WithLogger sets the logger for game events.
func WithLogger(l *log.Logger) Option {
	return func(g *Game) {
		if l != nil {
			g.log = l
		}
	}
}

// WithClock sets the time source of the play clock.
func WithClock(c Clock) Option {
	return func(g *Game) { g.clock = c }
}

// WithMode sets the mode a reset starts in.
func WithMode(m Mode) Option {
	return func(g *Game) { g.startMode = m }
}

// WithAutopilot starts the game with the autopilot enabled.
func WithAutopilot(on bool) Option {
	return func(g *Game) { g.startAuto = on }
}

// OnCrash registers a callback invoked once per crash with the finished run.
func OnCrash(fn func(Run)) Option {
	return func(g *Game) { g.onCrash = fn }
}

// New creates a new cube runner. Call Reset before ticking it.
func New(opts ...Option) *Game {
	g := &Game{
		cfg:   config.Default(),
		log:   log.New(io.Discard),
		clock: systemClock{},
	}
	for _, opt := range opts {
		opt(g)
	}
	g.steer = newSteering(g.cfg.Player)
	g.hit = NewHitbox(g.cfg.Obstacles.Side, g.cfg.Player.RunnerZ)
	g.pilot = NewAutopilot(g.cfg)
	g.levelTicks = g.cfg.LevelTicks()
	return g
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return ID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Cube Runner"
}

// Config returns the game configuration.
func (g *Game) Config() config.Config {
	return g.cfg
}

// Reset initializes the whole game state in the start mode.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.rng = rand.New(rand.NewSource(runtime.Seed))

	f := g.cfg.Field
	cam := g.cfg.Player.Camera
	g.state = GameState{
		Difficulty: config.NewDifficultyManager(g.cfg.Difficulty, g.cfg.Simulation.TickRate),
		Field: NewField(FieldParams{
			Lanes:       f.Lanes,
			Width:       f.Width,
			FurthestZ:   f.FurthestZ,
			NearestZ:    f.NearestZ,
			GroundY:     f.GroundY,
			Side:        g.cfg.Obstacles.Side,
			SpinDegrees: g.cfg.Obstacles.SpinDegrees,
		}),
		Rig: Rig{
			Camera: rigid.FromTranslation(mgl64.Vec3{cam[0], cam[1], cam[2]}),
			Runner: rigid.Identity(),
		},
		Offsets:    Offsets{FieldLeft: f.LeftSide},
		Autonomous: g.startAuto,
		Clock:      NewPlayClock(g.clock),
	}
	g.SetMode(g.startMode)
}

// State returns the game state for read-only inspection.
func (g *Game) State() *GameState {
	return &g.state
}

// Lanes returns the lanes for drawing.
func (g *Game) Lanes() []Lane {
	return g.state.Field.Lanes()
}

// Rig returns the camera and runner poses.
func (g *Game) Rig() Rig {
	return g.state.Rig
}

// Offsets returns the field offsets that follow the camera.
func (g *Game) Offsets() Offsets {
	return g.state.Offsets
}

// Theme returns the scene colors of the active palette.
func (g *Game) Theme() Theme {
	return g.state.Palette.Theme()
}

// Running reports whether the timer should be armed.
func (g *Game) Running() bool {
	return g.state.Running()
}

// Status returns a summary of the current game state.
func (g *Game) Status() core.Status {
	s := &g.state
	elapsed := s.Clock.Elapsed()
	if s.Crashed {
		elapsed = s.LastRun
	}
	return core.Status{
		Score:   elapsed.Seconds(),
		Ticks:   s.Ticks,
		Mode:    s.Mode.String(),
		Crashed: s.Crashed,
		Paused:  s.Paused,
		Auto:    s.Autonomous,
	}
}

// Tick advances the game by one tick: spawn, ramp difficulty, advance and
// collide, decide, steer, jump.
func (g *Game) Tick() {
	s := &g.state
	if !s.Running() {
		return
	}
	s.Ticks++

	g.spawn()
	g.ramp()

	removeZ := s.Rig.Camera.T.Z() + 0.5*g.cfg.Obstacles.Side
	s.Field.Advance(s.Difficulty.Step(), removeZ)
	g.detectCollision()

	if s.Autonomous {
		d := g.pilot.Decide(Situation{
			Camera:  s.Rig.Camera.T,
			Runner:  s.Rig.Runner.T,
			Jumping: s.Jump.InProgress,
			Step:    s.Difficulty.Step(),
			Field:   s.Field,
		})
		s.LeftHeld, s.RightHeld = d.Left, d.Right
		if d.Jump {
			s.Jump.Trigger()
		}
	}

	g.steer.apply(&s.Rig, &s.Offsets, s.LeftHeld, s.RightHeld)

	if s.Autonomous {
		s.LeftHeld, s.RightHeld = false, false
	}

	if s.Jump.InProgress {
		dy := s.Jump.Step(g.cfg.Jump.Step, g.cfg.JumpPeak())
		g.steer.lift(&s.Rig, dy)
	}
}

// spawn advances the phase counter and adds a cube every spawn interval.
func (g *Game) spawn() {
	s := &g.state
	s.Phase = (s.Phase + 1) % (3 * g.levelTicks)
	if s.Phase%s.Difficulty.Interval() != 0 {
		return
	}
	fx := g.rng.Float64()
	fz := g.rng.Float64()
	color := s.Palette.ObstacleColor(s.Phase, g.levelTicks, g.rng)
	s.Field.Spawn(fx, fz, s.Offsets.FieldLeft, color)
}

// ramp speeds up the tutorial once per level and promotes it to normal
// mode at the floor interval.
func (g *Game) ramp() {
	s := &g.state
	if s.Mode != ModeTutorial || s.Phase == 0 || s.Phase%g.levelTicks != 0 {
		return
	}
	before := s.Difficulty.Interval()
	floor := s.Difficulty.Ramp()
	if s.Difficulty.Interval() == before {
		return
	}
	if floor {
		s.Mode = ModeNormal
		s.Palette = Palette{RGB: true}
		g.log.Info("tutorial complete", "mode", s.Mode)
	}
	g.log.Info("spawn rate increased",
		"per_second", s.Difficulty.SpawnsPerSecond(),
		"step", s.Difficulty.Step())
}

// detectCollision crashes the run if any cube hits the player.
func (g *Game) detectCollision() {
	s := &g.state
	cam := s.Rig.Camera.T
	runner := s.Rig.Runner.T
	hit := false
	s.Field.Each(func(_ int, o Obstacle) bool {
		hit = g.hit.Collides(cam, runner, o.Position())
		return !hit
	})
	if hit {
		g.crash()
	}
}

func (g *Game) crash() {
	s := &g.state
	s.Crashed = true
	s.LastRun = s.Clock.Elapsed()
	run := Run{
		Mode:       s.Mode,
		Elapsed:    s.LastRun,
		Ticks:      s.Ticks,
		Autonomous: s.Autonomous,
	}
	if s.Mode == ModeTutorial {
		s.Phase = 0
		s.Difficulty.Reset()
	}
	g.log.Info("collision", "mode", run.Mode, "seconds", run.Elapsed.Seconds(), "ticks", run.Ticks)
	if g.onCrash != nil {
		g.onCrash(run)
	}
}

// SetMode switches mode. It clears the field, resets difficulty, palette and
// the play clock, and restarts a crashed run. Autopilot and pause are kept.
func (g *Game) SetMode(m Mode) {
	s := &g.state
	s.Mode = m
	s.Phase = 0
	m.Configure(s.Difficulty)
	s.Palette = PaletteFor(m, g.cfg)
	g.restartRun()
	g.log.Info("mode changed", "mode", m, "per_second", s.Difficulty.SpawnsPerSecond())
}

// restartRun clears the field and the run clock and lifts a crash.
func (g *Game) restartRun() {
	s := &g.state
	s.Field.Clear()
	s.Clock.Reset()
	s.Ticks = 0
	s.Crashed = false
}

// Handle applies one input event between ticks.
func (g *Game) Handle(a core.Action) {
	s := &g.state
	switch a {
	case core.ActionLeftPress, core.ActionLeftRelease:
		if !s.Autonomous {
			s.LeftHeld = a == core.ActionLeftPress
		}
	case core.ActionRightPress, core.ActionRightRelease:
		if !s.Autonomous {
			s.RightHeld = a == core.ActionRightPress
		}
	case core.ActionJump:
		if !s.Paused && !s.Autonomous {
			s.Jump.Trigger()
		}
	case core.ActionPause:
		g.togglePause()
	case core.ActionResume:
		if s.Crashed {
			g.restartRun()
			g.log.Info("resumed after collision", "mode", s.Mode)
		}
	case core.ActionModeTutorial:
		g.SetMode(ModeTutorial)
	case core.ActionModeNormal:
		g.SetMode(ModeNormal)
	case core.ActionModeDeath:
		g.SetMode(ModeDeath)
	case core.ActionToggleAuto:
		s.Autonomous = !s.Autonomous
		s.LeftHeld, s.RightHeld = false, false
		g.log.Info("autopilot", "enabled", s.Autonomous)
	case core.ActionSpeedUp, core.ActionSpeedDown, core.ActionSpawnFaster, core.ActionSpawnSlower:
		g.adjust(a)
	case core.ActionStepForward, core.ActionStepBack:
		if s.Paused || s.Crashed {
			s.Field.Nudge(s.Difficulty.Step(), a == core.ActionStepForward)
		}
	}
}

func (g *Game) togglePause() {
	s := &g.state
	if s.Crashed {
		return
	}
	s.Paused = !s.Paused
	if s.Paused {
		s.Clock.Pause()
		g.log.Info("paused", "obstacles", s.Field.Count())
		return
	}
	s.Clock.Resume()
	g.log.Info("unpaused")
}

// adjust applies a manual difficulty change. The tutorial ramp owns
// difficulty, so adjustments only apply in normal and death modes.
func (g *Game) adjust(a core.Action) {
	s := &g.state
	if s.Mode == ModeTutorial {
		return
	}
	d := s.Difficulty
	switch a {
	case core.ActionSpeedUp:
		d.SpeedUp()
		g.log.Info("speed increased", "step", d.Step())
	case core.ActionSpeedDown:
		if d.SpeedDown() {
			g.log.Info("speed decreased", "step", d.Step())
		}
	case core.ActionSpawnFaster:
		if d.SpawnFaster() {
			g.log.Info("spawn rate increased", "per_second", d.SpawnsPerSecond())
		} else {
			g.log.Info("spawn rate at maximum")
		}
	case core.ActionSpawnSlower:
		if d.SpawnSlower() {
			g.log.Info("spawn rate decreased", "per_second", d.SpawnsPerSecond())
		} else {
			g.log.Info("spawn rate at minimum")
		}
	}
}

// Elapsed returns the play time of the current run.
func (g *Game) Elapsed() time.Duration {
	return g.state.Clock.Elapsed()
}

// Register the game with the registry
func init() {
	registry.Register(ID, func(opts registry.Options) registry.Game {
		mode, err := ParseMode(opts.Mode)
		if err != nil {
			mode = ModeTutorial
		}
		return New(
			WithConfig(opts.Config),
			WithLogger(opts.Logger),
			WithMode(mode),
			WithAutopilot(opts.Autopilot),
		)
	})
}
