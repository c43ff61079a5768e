package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/evalhouse/scenegen/internal/storage"
)

var (
	flagLimit int
	flagClear bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent generation runs",
	Long: `Display the most recent generation runs with their seeds, so any
scene can be regenerated exactly.

Examples:
  scenegen history
  scenegen history --limit 50
  scenegen history --clear`,
	Run: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagLimit, "limit", 20, "Number of runs to show")
	historyCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the whole run history")
}

func runHistory(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening run database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearRuns(); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing runs: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Run history cleared.")
		return
	}

	runs, err := store.RecentRuns(flagLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Run 'scenegen generate' to create the first one.")
		return
	}

	fmt.Printf("  %-20s  %-12s  %-8s  %-9s  %s\n", "Date", "Name", "Objects", "Seed", "Result")
	fmt.Printf("  %-20s  %-12s  %-8s  %-9s  %s\n", "----", "----", "-------", "----", "------")

	for _, run := range runs {
		result := "ok"
		if run.Error != "" {
			result = run.Error
		}
		dateStr := run.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-20s  %-12s  %-8d  %-9d  %s\n",
			dateStr, run.Name, run.Objects, run.Seed, result)
	}

	stats, err := store.GetRunStats()
	if err != nil {
		return
	}
	fmt.Println()
	fmt.Printf("Total runs: %d (%d failed), avg objects per scene: %.1f\n",
		stats.RunsCount, stats.Failures, stats.AvgObjects)
}
