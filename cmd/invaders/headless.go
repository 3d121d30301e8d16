package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/arcadehall/invaders/internal/config"
	"github.com/arcadehall/invaders/internal/core"
	"github.com/arcadehall/invaders/internal/game"
	"github.com/arcadehall/invaders/internal/loop"
)

var (
	flagTicks          int
	flagHeadlessConfig string
	flagHeadlessPreset string
)

var headlessCmd = &cobra.Command{
	Use:   "headless",
	Short: "Run the simulation without a terminal",
	Long: `Run a scripted game for a fixed number of ticks and print the
outcome and frame metrics. Useful for soak-testing the simulation and
for benchmarking tick cost on a host.

The cannon is driven by a trivial bot that tracks the fleet and fires
continuously.

Examples:
  invaders headless
  invaders headless --ticks 36000 --seed 7
  invaders headless --difficulty hard`,
	Run: runHeadless,
}

func init() {
	headlessCmd.Flags().IntVar(&flagTicks, "ticks", 3600, "Number of simulation ticks to run")
	headlessCmd.Flags().StringVar(&flagHeadlessConfig, "config", "", "Path to custom game config YAML")
	headlessCmd.Flags().StringVar(&flagHeadlessPreset, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

func runHeadless(_ *cobra.Command, _ []string) {
	gameCfg, err := config.Load(flagHeadlessConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	config.ApplyPreset(&gameCfg, parsePreset(flagHeadlessPreset))

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	runtime := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: flagFPS, Seed: seed}

	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "invaders"})
	world := game.NewWorld(gameCfg, runtime)
	bot := newBot(world)

	done := make(chan struct{})
	ticks := 0

	var sched *loop.Scheduler
	sched = loop.NewScheduler(loop.NewTickerSource(flagFPS),
		func(dt float64) {
			world.Step(bot.input(), dt)
			ticks++
			if ticks >= flagTicks || world.GameOver() {
				sched.Stop()
				close(done)
			}
		},
		nil,
		loop.Config{TargetFPS: flagFPS, Logger: logger})

	start := time.Now()
	sched.Start()
	<-done
	elapsed := time.Since(start)

	stats := sched.Metrics()
	fmt.Printf("ran %d ticks in %s (seed %d)\n", ticks, elapsed.Round(time.Millisecond), seed)
	fmt.Printf("score %d, wave %d, game over: %v\n", world.Score(), world.Wave(), world.GameOver())
	fmt.Printf("fps %.1f (min %.1f, max %.1f), avg update %s\n",
		stats.FPS, stats.MinFPS, stats.MaxFPS, stats.AvgUpdate.Round(time.Microsecond))
}

// bot is a minimal autopilot: chase the fleet's horizontal center and keep
// the trigger held.
type bot struct {
	world *game.World
}

func newBot(w *game.World) *bot {
	return &bot{world: w}
}

func (b *bot) input() core.InputFrame {
	in := core.NewInputFrame()
	in.Set(core.ActionFire)
	if dir := b.world.FleetDrift(); dir < 0 {
		in.Set(core.ActionLeft)
	} else if dir > 0 {
		in.Set(core.ActionRight)
	}
	return in
}
