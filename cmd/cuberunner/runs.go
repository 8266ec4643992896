package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/cuberunner/internal/games/cuberunner"
	"github.com/vovakirdan/cuberunner/internal/platform/tui"
	"github.com/vovakirdan/cuberunner/internal/storage"
)

var (
	flagRunsMode   string
	flagRunsLimit  int
	flagRunsClear  bool
	flagRunsBrowse bool
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Show the longest recorded runs",
	Long: `Display the longest runs from the run log, for one mode or all of them.

Examples:
  cuberunner runs
  cuberunner runs --mode death --limit 5
  cuberunner runs --mode tutorial --clear
  cuberunner runs --browse`,
	Args: cobra.NoArgs,
	RunE: runRuns,
}

func init() {
	runsCmd.Flags().StringVar(&flagRunsMode, "mode", "", "Only show this mode (default: all modes)")
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 10, "Number of runs to show")
	runsCmd.Flags().BoolVar(&flagRunsClear, "clear", false, "Delete the recorded runs instead of showing them")
	runsCmd.Flags().BoolVar(&flagRunsBrowse, "browse", false, "Browse runs interactively, one tab per mode")
}

func runRuns(_ *cobra.Command, _ []string) error {
	mode := ""
	if flagRunsMode != "" {
		m, err := cuberunner.ParseMode(flagRunsMode)
		if err != nil {
			return err
		}
		mode = m.String()
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	label := mode
	if label == "" {
		label = "all modes"
	}

	if flagRunsClear {
		n, err := store.DeleteRuns(mode)
		if err != nil {
			return err
		}
		fmt.Printf("Deleted %d run(s) (%s)\n", n, label)
		return nil
	}

	if flagRunsBrowse {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		var modes []string
		for _, m := range cuberunner.Modes() {
			modes = append(modes, m.String())
		}
		return tui.RunRunboard(store, modes, width, height)
	}

	runs, err := store.TopRuns(mode, flagRunsLimit)
	if err != nil {
		return err
	}

	fmt.Printf("Longest runs - %s\n", label)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'cuberunner play' to set the first one!")
		return nil
	}

	fmt.Printf("  %-4s  %-8s  %-9s  %-8s  %-4s  %s\n", "Rank", "Mode", "Seconds", "Ticks", "Auto", "Date")
	fmt.Printf("  %-4s  %-8s  %-9s  %-8s  %-4s  %s\n", "----", "----", "-------", "-----", "----", "----")

	for i, r := range runs {
		auto := ""
		if r.Autonomous {
			auto = "yes"
		}
		dateStr := r.CreatedAt.Local().Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-8s  %-9.2f  %-8d  %-4s  %s\n", i+1, r.Mode, r.Seconds, r.Ticks, auto, dateStr)
	}

	count, err := store.RunCount(mode)
	if err == nil {
		fmt.Println()
		fmt.Printf("Total runs: %d\n", count)
	}
	if mode != "" {
		if best, ok, err := store.BestRun(mode); err == nil && ok {
			fmt.Printf("Best: %.2fs\n", best.Seconds)
		}
	}
	return nil
}
