package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/cuberunner/internal/core"
	"github.com/vovakirdan/cuberunner/internal/games/cuberunner"
	"github.com/vovakirdan/cuberunner/internal/platform/tui"
	"github.com/vovakirdan/cuberunner/internal/registry"
	"github.com/vovakirdan/cuberunner/internal/storage"
)

var (
	flagMode    string
	flagAuto    bool
	flagLogFile string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the game",
	Long: `Start playing interactively. Every crash is saved to the run log.
Without --mode a mode picker is shown first.

Controls:
  Left/Right  - Steer (hold)
  Space       - Jump
  Up          - Continue after a crash
  P           - Pause
  T/E/D       - Tutorial, normal, death mode
  1           - Toggle autopilot
  R/V         - Faster/slower cubes (normal and death)
  Q/Z         - More/fewer cubes (normal and death)
  ,/.         - Step cubes back/forward while stopped
  S           - Screenshot
  H           - Help
  Esc/Ctrl+C  - Quit

Examples:
  cuberunner play
  cuberunner play --mode normal
  cuberunner play --auto --log-file /tmp/cuberunner.log`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagMode, "mode", "tutorial", "Start mode: tutorial, normal, death")
	playCmd.Flags().BoolVar(&flagAuto, "auto", false, "Start with the autopilot steering")
	playCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Write game logs to this file")
}

func runPlay(cmd *cobra.Command, _ []string) error {
	if _, err := cuberunner.ParseMode(flagMode); err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// The alt screen owns stdout, so logs only go to an explicit file.
	var logOut io.Writer = io.Discard
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("cannot open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	logger, err := newLogger(logOut, flagLogLevel)
	if err != nil {
		return err
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open run log: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	mode := flagMode
	if !cmd.Flags().Changed("mode") {
		mode, err = tui.RunModePicker(modeChoices(store), flagMode, width, height)
		if err != nil {
			return err
		}
		// User quit the picker
		if mode == "" {
			return nil
		}
	}

	game, err := registry.Create(cuberunner.ID, registry.Options{
		Config:    cfg,
		Logger:    logger,
		Mode:      mode,
		Autopilot: flagAuto,
	})
	if err != nil {
		return err
	}

	return tui.Run(game, tui.Options{
		Runtime: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: cfg.Simulation.TickRate,
			Seed:     flagSeed,
		},
		Store:      store,
		ConfigHash: cfg.Fingerprint(),
		Logger:     logger,
	})
}

// modeChoices lists the modes for the picker with the best recorded run.
func modeChoices(store *storage.Store) []tui.ModeChoice {
	var choices []tui.ModeChoice
	for _, m := range cuberunner.Modes() {
		c := tui.ModeChoice{Name: m.String(), Title: m.Title()}
		if store != nil {
			if best, ok, err := store.BestRun(m.String()); err == nil && ok {
				c.Detail = fmt.Sprintf("best %.2fs", best.Seconds)
			}
		}
		choices = append(choices, c)
	}
	return choices
}
