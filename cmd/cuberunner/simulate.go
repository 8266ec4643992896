package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/cuberunner/internal/config"
	"github.com/vovakirdan/cuberunner/internal/core"
	"github.com/vovakirdan/cuberunner/internal/games/cuberunner"
	"github.com/vovakirdan/cuberunner/internal/sim"
	"github.com/vovakirdan/cuberunner/internal/storage"
)

var (
	flagSimMode  string
	flagSimTicks int
	flagSimRuns  int
	flagSimSave  bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Let the autopilot play headless",
	Long: `Run the game without a terminal UI, steered by the autopilot, as fast
as the machine allows. Each run ends at the first crash or after --ticks.
Simulated time advances one tick interval per tick, so results are
reproducible for a given --seed.

Examples:
  cuberunner simulate
  cuberunner simulate --mode death --runs 10
  cuberunner simulate --ticks 20000 --seed 7 --save=false`,
	Args: cobra.NoArgs,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().StringVar(&flagSimMode, "mode", "normal", "Mode: tutorial, normal, death")
	simulateCmd.Flags().IntVar(&flagSimTicks, "ticks", 12000, "Maximum ticks per run")
	simulateCmd.Flags().IntVar(&flagSimRuns, "runs", 1, "Number of runs")
	simulateCmd.Flags().BoolVar(&flagSimSave, "save", true, "Save runs to the run log")
}

// simResult is the outcome of one headless run.
type simResult struct {
	Crashed bool
	Ticks   int
	Elapsed time.Duration
}

// steppedGame advances the simulated clock before every tick, so a crash on
// tick n reports n tick intervals of play time.
type steppedGame struct {
	*cuberunner.Game
	clock *cuberunner.StepClock
}

func (g steppedGame) Tick() {
	g.clock.Advance()
	g.Game.Tick()
}

// simulate plays one autopilot run to its first crash or maxTicks.
func simulate(cfg config.Config, mode cuberunner.Mode, seed int64, maxTicks int, logger *log.Logger) simResult {
	interval := time.Second / time.Duration(cfg.Simulation.TickRate)
	clock := cuberunner.NewStepClock(time.Unix(0, 0), interval)

	var finished *cuberunner.Run
	game := cuberunner.New(
		cuberunner.WithConfig(cfg),
		cuberunner.WithLogger(logger),
		cuberunner.WithClock(clock),
		cuberunner.WithMode(mode),
		cuberunner.WithAutopilot(true),
		cuberunner.OnCrash(func(r cuberunner.Run) { finished = &r }),
	)
	game.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: cfg.Simulation.TickRate, Seed: seed})

	sched := sim.NewManualScheduler()
	driver := sim.NewDriver(sched, steppedGame{Game: game, clock: clock}, cfg.Simulation.TickRate)
	levelTicks := cfg.LevelTicks()
	driver.OnTick(func() {
		if driver.Ticks()%levelTicks == 0 {
			st := game.Status()
			logger.Debug("progress", "ticks", st.Ticks, "seconds", st.Score, "mode", st.Mode, "cubes", game.State().Field.Count())
		}
	})
	driver.Start()
	sched.Advance(maxTicks)
	driver.Stop()

	if finished != nil {
		return simResult{Crashed: true, Ticks: finished.Ticks, Elapsed: finished.Elapsed}
	}
	return simResult{Ticks: game.State().Ticks, Elapsed: game.Elapsed()}
}

func runSimulate(_ *cobra.Command, _ []string) error {
	mode, err := cuberunner.ParseMode(flagSimMode)
	if err != nil {
		return err
	}
	if flagSimTicks <= 0 || flagSimRuns <= 0 {
		return fmt.Errorf("--ticks and --runs must be positive")
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(os.Stderr, flagLogLevel)
	if err != nil {
		return err
	}

	var store *storage.Store
	if flagSimSave {
		store, err = storage.Open(flagDBPath)
		if err != nil {
			logger.Warn("could not open run log", "error", err)
			store = nil
		} else {
			defer store.Close()
		}
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	hash := cfg.Fingerprint()

	fmt.Printf("Simulating %d %s run(s), up to %d ticks each (config %s)\n", flagSimRuns, mode, flagSimTicks, hash)
	fmt.Println()
	fmt.Printf("  %-4s  %-8s  %-9s  %s\n", "Run", "Ticks", "Seconds", "Result")
	fmt.Printf("  %-4s  %-8s  %-9s  %s\n", "---", "-----", "-------", "------")

	var total time.Duration
	for i := range flagSimRuns {
		res := simulate(cfg, mode, seed+int64(i), flagSimTicks, logger)
		total += res.Elapsed

		result := "survived"
		if res.Crashed {
			result = "crashed"
		}
		fmt.Printf("  %-4d  %-8d  %-9.2f  %s\n", i+1, res.Ticks, res.Elapsed.Seconds(), result)

		if store == nil || !res.Crashed {
			continue
		}
		_, err := store.SaveRun(storage.Run{
			Mode:       mode.String(),
			Seconds:    res.Elapsed.Seconds(),
			Ticks:      int64(res.Ticks),
			Autonomous: true,
			ConfigHash: hash,
		})
		if err != nil {
			logger.Warn("could not save run", "error", err)
		}
	}

	fmt.Println()
	fmt.Printf("Average: %.2fs\n", (total / time.Duration(flagSimRuns)).Seconds())
	return nil
}
