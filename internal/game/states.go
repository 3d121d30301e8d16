package game

import (
	"github.com/arcadehall/invaders/internal/core"
	"github.com/arcadehall/invaders/internal/fsm"
)

// State machine node names.
const (
	StateMenu     = "menu"
	StatePlaying  = "playing"
	StatePaused   = "paused"
	StateGameOver = "gameover"
)

// Session is the data shared across the game states: the simulation, the
// per-tick input frame owned by the driver, and session-level flags the
// platform layer polls.
type Session struct {
	Cfg     ConfigBundle
	Input   *core.InputFrame
	World   *World
	Quit    bool // Set by states, polled by the driver
	BlinkOn bool // Toggled by the driver for menu/overlay blink

	// FinalScore holds the last finished run's score for the driver to
	// persist. Cleared once read.
	FinalScore int
	FinalWave  int
}

// MenuState is the title screen. Confirm or Fire starts a run,
// Quit exits.
type MenuState struct {
	fsm.BaseState
	s *Session

	startRequested bool
}

// NewMenuState creates the title screen state.
func NewMenuState(s *Session) *MenuState {
	return &MenuState{s: s}
}

func (m *MenuState) Name() string { return StateMenu }

func (m *MenuState) Config() fsm.StateConfig {
	return fsm.StateConfig{CanPause: false, CanResume: false}
}

func (m *MenuState) Enter(ctx fsm.Context, prev fsm.State) error {
	m.MarkEntered()
	m.startRequested = false
	return nil
}

func (m *MenuState) Exit(next fsm.State) error {
	m.MarkExited()
	return nil
}

func (m *MenuState) Update(dt float64) error {
	in := *m.s.Input
	if in.Has(core.ActionConfirm) || in.Has(core.ActionFire) {
		m.startRequested = true
	}
	if in.Has(core.ActionQuit) {
		m.s.Quit = true
	}
	return nil
}

func (m *MenuState) Render(dst *core.Screen) error {
	dst.Clear()
	mid := dst.Height() / 2
	dst.DrawTextCenteredColored(mid-4, "S P A C E   I N V A D E R S", core.ColorBrightGreen)
	if m.s.BlinkOn {
		dst.DrawTextCenteredColored(mid, "PRESS ENTER OR SPACE TO PLAY", core.ColorBrightWhite)
	}
	dst.DrawTextCenteredColored(mid+3, "a/d or arrows move · space fires · p pauses · q quits", core.ColorGray)
	return nil
}

// PlayingState runs the live simulation. A fresh world is built on entry
// unless we are returning from the pause overlay.
type PlayingState struct {
	fsm.BaseState
	s *Session

	pauseRequested bool
}

// NewPlayingState creates the live-simulation state.
func NewPlayingState(s *Session) *PlayingState {
	return &PlayingState{s: s}
}

func (p *PlayingState) Name() string { return StatePlaying }

func (p *PlayingState) Config() fsm.StateConfig {
	return fsm.StateConfig{CanPause: true, CanResume: true, Persistent: true}
}

func (p *PlayingState) Enter(ctx fsm.Context, prev fsm.State) error {
	p.MarkEntered()
	p.pauseRequested = false
	// Returning from the pause overlay keeps the run; any other entry
	// starts a fresh one.
	if prev != nil && prev.Name() == StatePaused && p.s.World != nil {
		return nil
	}
	p.s.World = NewWorld(p.s.Cfg.Game, p.s.Cfg.Runtime)
	return nil
}

func (p *PlayingState) Exit(next fsm.State) error {
	p.MarkExited()
	return nil
}

func (p *PlayingState) Update(dt float64) error {
	in := *p.s.Input
	if in.Has(core.ActionPause) || in.Has(core.ActionBack) {
		p.pauseRequested = true
		return nil
	}
	if in.Has(core.ActionQuit) {
		p.s.Quit = true
		return nil
	}
	p.s.World.Step(in, dt)
	if p.s.World.GameOver() {
		p.s.FinalScore = p.s.World.Score()
		p.s.FinalWave = p.s.World.Wave()
	}
	return nil
}

func (p *PlayingState) Render(dst *core.Screen) error {
	p.s.World.Render(dst)
	return nil
}

// consumePause reports and clears the pause request. Used as a transition
// guard so the request fires exactly one transition.
func (p *PlayingState) consumePause() bool {
	if !p.pauseRequested {
		return false
	}
	p.pauseRequested = false
	return true
}

// PausedState freezes the run and draws an overlay on top of it.
type PausedState struct {
	fsm.BaseState
	s *Session

	resumeRequested bool
	menuRequested   bool
}

// NewPausedState creates the pause overlay state.
func NewPausedState(s *Session) *PausedState {
	return &PausedState{s: s}
}

func (p *PausedState) Name() string { return StatePaused }

func (p *PausedState) Config() fsm.StateConfig {
	return fsm.StateConfig{CanPause: false, CanResume: false}
}

func (p *PausedState) Enter(ctx fsm.Context, prev fsm.State) error {
	p.MarkEntered()
	p.resumeRequested = false
	p.menuRequested = false
	return nil
}

func (p *PausedState) Exit(next fsm.State) error {
	p.MarkExited()
	return nil
}

func (p *PausedState) Update(dt float64) error {
	in := *p.s.Input
	if in.Has(core.ActionPause) || in.Has(core.ActionConfirm) {
		p.resumeRequested = true
	}
	if in.Has(core.ActionBack) {
		p.menuRequested = true
	}
	if in.Has(core.ActionQuit) {
		p.s.Quit = true
	}
	return nil
}

func (p *PausedState) Render(dst *core.Screen) error {
	// Frozen battlefield underneath, overlay on top.
	if p.s.World != nil {
		p.s.World.Render(dst)
	} else {
		dst.Clear()
	}
	mid := dst.Height() / 2
	dst.DrawTextCenteredColored(mid-1, "── PAUSED ──", core.ColorBrightYellow)
	dst.DrawTextCenteredColored(mid+1, "p resumes · esc quits to menu", core.ColorGray)
	return nil
}

func (p *PausedState) consumeResume() bool {
	if !p.resumeRequested {
		return false
	}
	p.resumeRequested = false
	return true
}

func (p *PausedState) consumeMenu() bool {
	if !p.menuRequested {
		return false
	}
	p.menuRequested = false
	return true
}

// GameOverState shows the final score and waits for a restart or a return
// to the menu.
type GameOverState struct {
	fsm.BaseState
	s *Session

	restartRequested bool
	menuRequested    bool
}

// NewGameOverState creates the end-of-run state.
func NewGameOverState(s *Session) *GameOverState {
	return &GameOverState{s: s}
}

func (g *GameOverState) Name() string { return StateGameOver }

func (g *GameOverState) Config() fsm.StateConfig {
	return fsm.StateConfig{CanPause: false, CanResume: false}
}

func (g *GameOverState) Enter(ctx fsm.Context, prev fsm.State) error {
	g.MarkEntered()
	g.restartRequested = false
	g.menuRequested = false
	return nil
}

func (g *GameOverState) Exit(next fsm.State) error {
	g.MarkExited()
	return nil
}

func (g *GameOverState) Update(dt float64) error {
	in := *g.s.Input
	if in.Has(core.ActionRestart) || in.Has(core.ActionConfirm) {
		g.restartRequested = true
	}
	if in.Has(core.ActionBack) {
		g.menuRequested = true
	}
	if in.Has(core.ActionQuit) {
		g.s.Quit = true
	}
	return nil
}

func (g *GameOverState) Render(dst *core.Screen) error {
	if g.s.World != nil {
		g.s.World.Render(dst)
	} else {
		dst.Clear()
	}
	mid := dst.Height() / 2
	dst.DrawTextCenteredColored(mid-2, "G A M E   O V E R", core.ColorBrightRed)
	if g.s.World != nil {
		dst.DrawTextCenteredColored(mid, fmtScore(g.s.World.Score(), g.s.World.Wave()), core.ColorBrightWhite)
	}
	if g.s.BlinkOn {
		dst.DrawTextCenteredColored(mid+2, "r restarts · esc returns to menu", core.ColorGray)
	}
	return nil
}

func (g *GameOverState) consumeRestart() bool {
	if !g.restartRequested {
		return false
	}
	g.restartRequested = false
	return true
}

func (g *GameOverState) consumeMenu() bool {
	if !g.menuRequested {
		return false
	}
	g.menuRequested = false
	return true
}
