package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/arcadehall/invaders/internal/config"
	"github.com/arcadehall/invaders/internal/core"
	"github.com/arcadehall/invaders/internal/platform/tui"
	"github.com/arcadehall/invaders/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagShowFPS    bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the current terminal",
	Long: `Start the game in the current terminal.

Controls:
  A/D or arrows - Move the cannon
  Space         - Fire
  P             - Pause
  R             - Restart (after game over)
  Q/Ctrl+C      - Quit

Difficulty options:
  easy   - Start at lowest difficulty, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression, stays at config's initial level

Examples:
  invaders play
  invaders play --difficulty hard
  invaders play --config ./my-invaders.yaml
  invaders play --show-fps`,
	Run: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().BoolVar(&flagShowFPS, "show-fps", false, "Show frame metrics under the battlefield")
}

// parsePreset maps the CLI flag to a difficulty preset.
func parsePreset(s string) config.DifficultyPreset {
	switch s {
	case "easy":
		return config.DifficultyEasy
	case "normal":
		return config.DifficultyNormal
	case "hard":
		return config.DifficultyHard
	case "fixed":
		return config.DifficultyFixed
	}
	return ""
}

func runPlay(cmd *cobra.Command, args []string) {
	gameCfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	config.ApplyPreset(&gameCfg, parsePreset(flagDifficulty))

	bindings, err := gameCfg.Bindings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	runtime := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	runErr := tui.Run(tui.Options{
		GameConfig: gameCfg,
		Runtime:    runtime,
		Bindings:   bindings,
		Store:      store,
		Difficulty: flagDifficulty,
		ShowFPS:    flagShowFPS,
	})

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
