package cuberunner

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/cuberunner/internal/config"
	"github.com/vovakirdan/cuberunner/internal/core"
	"github.com/vovakirdan/cuberunner/internal/registry"
	"github.com/vovakirdan/cuberunner/internal/rigid"
	"github.com/vovakirdan/cuberunner/internal/sim"
)

// safeConfig moves the spawn field far to the side so cubes never reach
// the player.
func safeConfig() config.Config {
	cfg := config.Default()
	cfg.Field.LeftSide = 50
	return cfg
}

func newTestGame(t *testing.T, cfg config.Config, opts ...Option) (*Game, *StepClock) {
	t.Helper()
	clock := NewStepClock(time.Unix(0, 0), 25*time.Millisecond)
	opts = append([]Option{WithConfig(cfg), WithClock(clock)}, opts...)
	g := New(opts...)
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 42})
	return g, clock
}

func TestTutorialRampScenario(t *testing.T) {
	g, _ := newTestGame(t, safeConfig())
	s := g.State()
	require.Equal(t, ModeTutorial, s.Mode)
	require.Equal(t, 5, s.Difficulty.Interval())

	promotions := 0
	prevInterval := s.Difficulty.Interval()
	prevMode := s.Mode
	for tick := 1; tick <= 2000; tick++ {
		g.Tick()
		require.False(t, s.Crashed)

		if prevMode == ModeTutorial {
			require.LessOrEqual(t, s.Difficulty.Interval(), prevInterval, "tick %d", tick)
		}
		if prevMode != ModeNormal && s.Mode == ModeNormal {
			promotions++
		}
		prevInterval, prevMode = s.Difficulty.Interval(), s.Mode

		switch tick {
		case 199:
			assert.Equal(t, 5, s.Difficulty.Interval())
		case 200:
			assert.Equal(t, 4, s.Difficulty.Interval())
		case 400:
			assert.Equal(t, 3, s.Difficulty.Interval())
			assert.Equal(t, ModeTutorial, s.Mode)
		case 799:
			assert.Equal(t, 3, s.Difficulty.Interval())
			assert.Equal(t, ModeTutorial, s.Mode)
		case 800:
			assert.Equal(t, 2, s.Difficulty.Interval())
			assert.Equal(t, ModeNormal, s.Mode)
			assert.True(t, s.Palette.RGB)
			assert.False(t, s.Palette.Dark)
			assert.InDelta(t, 0.1, s.Difficulty.Step(), 1e-9)
		}
	}
	assert.Equal(t, 1, promotions)
	assert.Equal(t, ModeNormal, s.Mode)
	assert.Equal(t, 2, s.Difficulty.Interval())
}

func TestRGBPaletteCyclesByPhase(t *testing.T) {
	g, _ := newTestGame(t, safeConfig(), WithMode(ModeNormal))
	// Automatic normal mode uses the plain RGB palette.
	g.State().Palette = Palette{RGB: true}

	// colorAt returns the color of the cube spawned on the given phase tick.
	colorAt := func(phase int) core.RGB {
		for g.State().Phase != phase-1 {
			g.Tick()
		}
		g.State().Field.Clear()
		g.Tick()
		var spawned []Obstacle
		g.State().Field.Each(func(_ int, o Obstacle) bool {
			spawned = append(spawned, o)
			return true
		})
		require.Len(t, spawned, 1)
		return spawned[0].Color
	}

	red := colorAt(100)
	assert.GreaterOrEqual(t, red.R, 0.1)
	assert.Zero(t, red.G)
	assert.Zero(t, red.B)

	green := colorAt(300)
	assert.Zero(t, green.R)
	assert.GreaterOrEqual(t, green.G, 0.1)

	blue := colorAt(500)
	assert.Zero(t, blue.G)
	assert.GreaterOrEqual(t, blue.B, 0.1)
}

func TestCollisionStopsTimerUntilResume(t *testing.T) {
	g, _ := newTestGame(t, safeConfig())
	sched := sim.NewManualScheduler()
	driver := sim.NewDriver(sched, g, g.Config().Simulation.TickRate)

	var runs []Run
	g.onCrash = func(r Run) { runs = append(runs, r) }

	driver.Start()
	require.True(t, driver.Armed())
	sched.Advance(10)

	// A cube exactly on the runner's plane, in front of the player.
	place(g.State().Field, 3, mgl64.Vec3{0, 0.06, g.Config().Player.RunnerZ})
	assert.True(t, sched.Fire())

	st := g.Status()
	assert.True(t, st.Crashed)
	assert.False(t, st.Running())
	assert.False(t, driver.Armed())
	assert.False(t, sched.Fire(), "timer must not rearm on its own")
	require.Len(t, runs, 1)
	assert.Equal(t, 11, runs[0].Ticks)
	assert.Equal(t, ModeTutorial, runs[0].Mode)

	// The field stays visible until resume.
	assert.Positive(t, g.State().Field.Count())

	// Input other than resume does not restart the game.
	g.Handle(core.ActionPause)
	driver.Sync()
	assert.False(t, driver.Armed())
	assert.False(t, g.State().Paused)

	g.Handle(core.ActionResume)
	driver.Sync()
	assert.True(t, driver.Armed())
	assert.Equal(t, 0, g.State().Field.Count())
	assert.False(t, g.Status().Crashed)
	assert.True(t, sched.Fire())
}

func TestCrashInTutorialResetsRamp(t *testing.T) {
	g, _ := newTestGame(t, safeConfig())
	s := g.State()
	for i := 0; i < 400; i++ {
		g.Tick()
	}
	require.Equal(t, 3, s.Difficulty.Interval())

	place(s.Field, 3, mgl64.Vec3{0, 0.06, 3.5})
	g.Tick()
	require.True(t, s.Crashed)
	assert.Equal(t, 5, s.Difficulty.Interval())
	assert.InDelta(t, 0.06, s.Difficulty.Step(), 1e-9)
	assert.Equal(t, 0, s.Phase)
}

func TestCrashInNormalKeepsDifficulty(t *testing.T) {
	g, _ := newTestGame(t, safeConfig(), WithMode(ModeDeath))
	s := g.State()
	place(s.Field, 3, mgl64.Vec3{0, 0.06, 3.5})
	g.Tick()
	require.True(t, s.Crashed)
	assert.Equal(t, 1, s.Difficulty.Interval())

	// Ticks are ignored while crashed.
	ticks := s.Ticks
	g.Tick()
	assert.Equal(t, ticks, s.Ticks)
}

func TestPausedTimeIsExcluded(t *testing.T) {
	g, clock := newTestGame(t, safeConfig())
	tick := func(n int) {
		for i := 0; i < n; i++ {
			clock.Advance()
			g.Tick()
		}
	}

	tick(40)
	g.Handle(core.ActionPause)
	require.False(t, g.Running())
	for i := 0; i < 80; i++ {
		clock.Advance()
		g.Tick()
	}
	assert.Equal(t, 40, g.State().Ticks)
	g.Handle(core.ActionPause)
	tick(40)

	g.Handle(core.ActionPause)
	for i := 0; i < 40; i++ {
		clock.Advance()
	}
	g.Handle(core.ActionPause)
	tick(40)

	assert.Equal(t, 3*time.Second, g.Elapsed())
	assert.InDelta(t, 3.0, g.Status().Score, 1e-9)
}

func TestModeSwitchResets(t *testing.T) {
	g, _ := newTestGame(t, safeConfig())
	s := g.State()
	g.Handle(core.ActionToggleAuto)
	for i := 0; i < 100; i++ {
		g.Tick()
	}
	require.Positive(t, s.Field.Count())

	g.Handle(core.ActionModeDeath)
	assert.Equal(t, ModeDeath, s.Mode)
	assert.Equal(t, 1, s.Difficulty.Interval())
	assert.Equal(t, 0.1, s.Difficulty.Step())
	assert.Equal(t, Palette{Dark: true}, s.Palette)
	assert.Equal(t, 0, s.Field.Count())
	assert.Equal(t, 0, s.Ticks)
	assert.True(t, s.Autonomous)

	g.Handle(core.ActionModeNormal)
	assert.Equal(t, 2, s.Difficulty.Interval())
	assert.Equal(t, Palette{RGB: true, Dark: true}, s.Palette)
	assert.Equal(t, themeDark, g.Theme())

	g.Handle(core.ActionModeTutorial)
	assert.Equal(t, 5, s.Difficulty.Interval())
	assert.Equal(t, Palette{}, s.Palette)
}

func TestModeSwitchKeepsPauseAndRestartsCrash(t *testing.T) {
	g, _ := newTestGame(t, safeConfig())
	s := g.State()

	g.Handle(core.ActionPause)
	g.Handle(core.ActionModeNormal)
	assert.True(t, s.Paused)
	g.Handle(core.ActionPause)

	place(s.Field, 3, mgl64.Vec3{0, 0.06, 3.5})
	g.Tick()
	require.True(t, s.Crashed)
	g.Handle(core.ActionModeDeath)
	assert.False(t, s.Crashed)
	assert.True(t, g.Running())
}

func TestManualAdjustments(t *testing.T) {
	g, _ := newTestGame(t, safeConfig())
	s := g.State()

	g.Handle(core.ActionSpeedUp)
	g.Handle(core.ActionSpawnFaster)
	assert.Equal(t, 5, s.Difficulty.Interval(), "tutorial ignores adjustments")
	assert.InDelta(t, 0.06, s.Difficulty.Step(), 1e-9)

	g.Handle(core.ActionModeNormal)
	g.Handle(core.ActionSpeedUp)
	assert.InDelta(t, 0.12, s.Difficulty.Step(), 1e-9)
	g.Handle(core.ActionSpawnFaster)
	assert.Equal(t, 1, s.Difficulty.Interval())
	g.Handle(core.ActionSpawnFaster)
	assert.Equal(t, 1, s.Difficulty.Interval())
	g.Handle(core.ActionSpawnSlower)
	assert.Equal(t, 2, s.Difficulty.Interval())
	g.Handle(core.ActionSpeedDown)
	assert.InDelta(t, 0.1, s.Difficulty.Step(), 1e-9)
}

func TestSteeringLeftAndRelax(t *testing.T) {
	cfg := safeConfig()
	g, _ := newTestGame(t, cfg)
	s := g.State()
	maxSine := rigid.HalfAngleSine(cfg.Player.MaxTiltDegrees)

	g.Handle(core.ActionLeftPress)
	for i := 0; i < 40; i++ {
		g.Tick()
		require.LessOrEqual(t, rigid.TiltSine(s.Rig.Camera.R), maxSine+rigid.HalfAngleSine(cfg.Player.TiltStepDegrees))
	}
	assert.InDelta(t, -2.0, s.Rig.Camera.T.X(), 1e-9)
	assert.InDelta(t, 0.25, s.Rig.Camera.T.Y(), 1e-9, "lateral motion ignores tilt")
	assert.InDelta(t, cfg.Field.LeftSide-2.0, s.Offsets.FieldLeft, 1e-9)
	assert.InDelta(t, -2.0, s.Offsets.Light1X, 1e-9)
	assert.Greater(t, rigid.TiltSine(s.Rig.Camera.R), 0.25)

	g.Handle(core.ActionLeftRelease)
	for i := 0; i < 40; i++ {
		g.Tick()
	}
	assert.True(t, s.Rig.Camera.R.ApproxEqual(mgl64.QuatIdent()))
	assert.True(t, s.Rig.Runner.R.ApproxEqual(mgl64.QuatIdent()))
	assert.InDelta(t, s.Rig.Camera.T.X(), s.Rig.Runner.T.X(), 1e-12)
}

func TestSteeringRightTiltsNegative(t *testing.T) {
	g, _ := newTestGame(t, safeConfig())
	s := g.State()
	g.Handle(core.ActionRightPress)
	for i := 0; i < 5; i++ {
		g.Tick()
	}
	assert.Less(t, rigid.TiltSine(s.Rig.Camera.R), 0.0)
	assert.InDelta(t, 0.25, s.Rig.Camera.T.X(), 1e-9)
}

func TestJumpMovesRigTogether(t *testing.T) {
	g, _ := newTestGame(t, safeConfig())
	s := g.State()
	g.Handle(core.ActionJump)

	peakCamera := 0.0
	for i := 0; i < 30; i++ {
		g.Tick()
		assert.InDelta(t, s.Rig.Camera.T.Y()-0.25, s.Rig.Runner.T.Y(), 1e-9)
		peakCamera = max(peakCamera, s.Rig.Camera.T.Y())
	}
	assert.False(t, s.Jump.InProgress)
	assert.InDelta(t, 0.25, s.Rig.Camera.T.Y(), 1e-9)
	assert.InDelta(t, 0.95, peakCamera, 1e-9)
}

func TestInputIgnoredUnderAutopilot(t *testing.T) {
	g, _ := newTestGame(t, safeConfig(), WithAutopilot(true))
	s := g.State()
	g.Handle(core.ActionLeftPress)
	g.Handle(core.ActionJump)
	assert.False(t, s.LeftHeld)
	assert.False(t, s.Jump.InProgress)

	g.Tick()
	assert.False(t, s.LeftHeld)
	assert.False(t, s.RightHeld)
}

func TestStepOnlyWhileStopped(t *testing.T) {
	g, _ := newTestGame(t, safeConfig())
	s := g.State()
	place(s.Field, 0, mgl64.Vec3{50, 0.06, -1})

	g.Handle(core.ActionStepForward)
	assert.InDelta(t, -1.0, s.Field.Lanes()[0].Obstacles[0].Position().Z(), 1e-12)

	g.Handle(core.ActionPause)
	g.Handle(core.ActionStepForward)
	assert.InDelta(t, -0.94, s.Field.Lanes()[0].Obstacles[0].Position().Z(), 1e-12)
	g.Handle(core.ActionStepBack)
	assert.InDelta(t, -1.0, s.Field.Lanes()[0].Obstacles[0].Position().Z(), 1e-12)
}

func TestGameDeterminism(t *testing.T) {
	run := func() (core.Status, int) {
		g, _ := newTestGame(t, config.Default(), WithAutopilot(true), WithMode(ModeNormal))
		for i := 0; i < 2000 && g.Running(); i++ {
			g.Tick()
		}
		return g.Status(), g.State().Field.Count()
	}
	st1, n1 := run()
	st2, n2 := run()
	assert.Equal(t, st1, st2)
	assert.Equal(t, n1, n2)
}

func TestRegistered(t *testing.T) {
	require.True(t, registry.Exists(ID))
	g, err := registry.Create(ID, registry.Options{Config: config.Default()})
	require.NoError(t, err)
	assert.Equal(t, "Cube Runner", g.Title())

	g.Reset(core.DefaultConfig())
	assert.True(t, g.Running())
	assert.Equal(t, "tutorial", g.Status().Mode)

	g, err = registry.Create(ID, registry.Options{Config: config.Default(), Mode: "death", Autopilot: true})
	require.NoError(t, err)
	g.Reset(core.DefaultConfig())
	assert.Equal(t, "death", g.Status().Mode)
	assert.True(t, g.Status().Auto)
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("Death")
	require.NoError(t, err)
	assert.Equal(t, ModeDeath, m)

	_, err = ParseMode("hard")
	assert.Error(t, err)
}
