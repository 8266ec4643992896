// cuberunner is a first-person endless runner played in the terminal.
//
// Usage:
//
//	cuberunner play              - Play interactively
//	cuberunner simulate          - Let the autopilot play headless
//	cuberunner runs              - Show the longest recorded runs
//	cuberunner modes             - List game modes
//
// Global flags:
//
//	--fps <rate>        - Override the tick rate from the config (default 40)
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--db <path>         - Set run log path (default: ~/.cuberunner/runs.db)
//	--config <path>     - Load a specific config file
//	--log-level <level> - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/cuberunner/internal/config"
	"github.com/vovakirdan/cuberunner/internal/storage"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "cuberunner",
	Short: "Cube Runner - dodge cubes in your terminal",
	Long: `Cube Runner is a first-person endless runner. Cubes flow toward you
down seven lanes; steer sideways and jump to survive as long as you can.

Available commands:
  play      - Play interactively
  simulate  - Let the autopilot play headless
  runs      - Show the longest recorded runs
  modes     - List game modes

Examples:
  cuberunner play
  cuberunner play --mode death
  cuberunner simulate --runs 5 --mode normal
  cuberunner runs --mode normal`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate (0 = use the config, 40 by default)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to the run log database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(modesCmd)
}

// newLogger creates the structured logger shared by the engine and commands.
func newLogger(w io.Writer, level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "cuberunner",
		Level:           lvl,
	})
	return logger, nil
}

// loadConfig loads the config and applies the --fps override.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, err
	}
	if flagFPS > 0 {
		cfg.Simulation.TickRate = flagFPS
		if err := cfg.Validate(); err != nil {
			return config.Config{}, err
		}
	}
	return cfg, nil
}
