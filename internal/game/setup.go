package game

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/arcadehall/invaders/internal/config"
	"github.com/arcadehall/invaders/internal/core"
	"github.com/arcadehall/invaders/internal/fsm"
)

// ConfigBundle pairs the YAML game config with the runtime parameters
// (screen size, tick rate, seed) chosen by the driver.
type ConfigBundle struct {
	Game    config.Config
	Runtime core.RuntimeConfig
}

// NewSession creates the shared session for a state machine.
func NewSession(cfg ConfigBundle) *Session {
	return &Session{
		Cfg:     cfg,
		Input:   &core.InputFrame{},
		BlinkOn: true,
	}
}

// NewStateMachine builds a manager with the four game states and their
// transitions wired, starting in the menu. The menu doubles as the recovery
// fallback, so a failed transition lands the player somewhere safe.
func NewStateMachine(s *Session, logger *log.Logger) (*fsm.Manager, error) {
	menu := NewMenuState(s)
	playing := NewPlayingState(s)
	paused := NewPausedState(s)
	gameover := NewGameOverState(s)

	m := fsm.NewManager(fsm.Config{
		Recovery: fsm.Recovery{Fallback: StateMenu},
		Logger:   logger,
	})

	for _, st := range []fsm.State{menu, playing, paused, gameover} {
		if err := m.Register(st); err != nil {
			return nil, fmt.Errorf("game: register %s: %w", st.Name(), err)
		}
	}

	transitions := []fsm.Transition{
		{
			From:      StateMenu,
			To:        StatePlaying,
			Condition: func(fsm.Context) bool { return menu.startRequested },
		},
		// A finished run outranks a pause request on the same tick.
		{
			From:      StatePlaying,
			To:        StateGameOver,
			Condition: func(fsm.Context) bool { return s.World != nil && s.World.GameOver() },
			Priority:  10,
		},
		{
			From:      StatePlaying,
			To:        StatePaused,
			Condition: func(fsm.Context) bool { return playing.consumePause() },
		},
		{
			From:      StatePaused,
			To:        StatePlaying,
			Condition: func(fsm.Context) bool { return paused.consumeResume() },
		},
		{
			From:      StatePaused,
			To:        StateMenu,
			Condition: func(fsm.Context) bool { return paused.consumeMenu() },
		},
		{
			From:      StateGameOver,
			To:        StatePlaying,
			Condition: func(fsm.Context) bool { return gameover.consumeRestart() },
		},
		{
			From:      StateGameOver,
			To:        StateMenu,
			Condition: func(fsm.Context) bool { return gameover.consumeMenu() },
		},
	}
	for _, tr := range transitions {
		if err := m.AddTransition(tr); err != nil {
			return nil, fmt.Errorf("game: transition %s->%s: %w", tr.From, tr.To, err)
		}
	}

	if _, err := m.ForceState(StateMenu, nil); err != nil {
		return nil, fmt.Errorf("game: enter menu: %w", err)
	}
	return m, nil
}

// fmtScore formats the end-of-run summary line.
func fmtScore(score, wave int) string {
	return fmt.Sprintf("SCORE %d · WAVE %d", score, wave)
}
