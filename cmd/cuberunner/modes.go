package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/cuberunner/internal/config"
	"github.com/vovakirdan/cuberunner/internal/games/cuberunner"
)

var modesCmd = &cobra.Command{
	Use:   "modes",
	Short: "List game modes",
	Long:  `Shows each game mode with the spawn rate and speed it starts at.`,
	Args:  cobra.NoArgs,
	RunE:  runModes,
}

func runModes(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fmt.Println("Game modes:")
	fmt.Println()
	fmt.Printf("  %-8s  %-8s  %-8s  %-6s  %s\n", "Mode", "Interval", "Cubes/s", "Step", "Palette")
	fmt.Printf("  %-8s  %-8s  %-8s  %-6s  %s\n", "----", "--------", "-------", "----", "-------")

	d := config.NewDifficultyManager(cfg.Difficulty, cfg.Simulation.TickRate)
	for _, m := range cuberunner.Modes() {
		m.Configure(d)
		fmt.Printf("  %-8s  %-8d  %-8d  %-6.3f  %s\n",
			m, d.Interval(), d.SpawnsPerSecond(), d.Step(), cuberunner.PaletteFor(m, cfg).Name())
	}

	fmt.Println()
	fmt.Printf("Tutorial ramps up every %.0fs until it reaches normal.\n", cfg.Simulation.LevelSeconds)
	fmt.Println("Run 'cuberunner play --mode <mode>' to start in a mode.")
	return nil
}
