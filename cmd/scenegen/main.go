// scenegen generates randomized 3-D scenes for physics-simulated
// evaluation environments.
//
// Usage:
//
//	scenegen generate          - Generate scenes from a definition
//	scenegen features          - List supported feature types
//	scenegen history           - Show recent generation runs
//
// Global flags:
//
//	--seed <value>  - Set RNG seed for reproducible generation
//	--config <path> - Path to a scene definition file
//	--db <path>     - Set database path (default: ~/.scenegen/runs.db)
//	--verbose       - Enable debug logging of placement attempts
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagSeed    int64
	flagConfig  string
	flagDBPath  string
	flagVerbose bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "scenegen",
	Short: "Scenegen - Procedural scene generation for simulated rooms",
	Long: `Scenegen samples concrete 3-D scenes from a declarative definition:
walls, platforms with attached ramps, occluders, floor hazards, and
timed mechanisms like droppers, throwers, and placers.

Available commands:
  generate - Sample scenes from a definition and print them as YAML
  features - Show every feature type the engine can place
  history  - View recent generation runs

Examples:
  scenegen generate
  scenegen generate --config scene.yaml --count 5 --seed 42
  scenegen features
  scenegen history --limit 10`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a scene definition file")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.scenegen/runs.db", "Path to run history database")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")

	// Add subcommands
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(featuresCmd)
	rootCmd.AddCommand(historyCmd)
}
