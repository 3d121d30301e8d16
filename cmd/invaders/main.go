// invaders is a terminal Space Invaders game.
//
// Usage:
//
//	invaders play            - Play in the current terminal
//	invaders scores          - Show the high-score table
//	invaders serve           - Start SSH server for remote play
//	invaders headless        - Run the simulation without a terminal
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible gameplay
//	--db <path>     - Set database path (default: ~/.invaders/scores.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "invaders",
	Short: "Space Invaders in your terminal",
	Long: `invaders is a terminal rendition of the classic fixed shooter:
a marching alien fleet, destructible bunkers, one cannon, and a
shared high-score table.

Available commands:
  play      - Play in the current terminal
  scores    - View the high-score table
  serve     - Start SSH server for remote play
  headless  - Run the simulation without a terminal

Examples:
  invaders play
  invaders play --difficulty hard
  invaders scores
  invaders serve --ssh :2222
  invaders headless --ticks 3600`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.invaders/scores.db", "Path to scores database")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(headlessCmd)
}
