package game

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/arcadehall/invaders/internal/core"
	"github.com/arcadehall/invaders/internal/fsm"
)

func testMachine(t *testing.T) (*fsm.Manager, *Session) {
	t.Helper()
	s := NewSession(ConfigBundle{Game: testConfig(), Runtime: testRuntime()})
	m, err := NewStateMachine(s, log.New(io.Discard))
	if err != nil {
		t.Fatalf("NewStateMachine() error: %v", err)
	}
	return m, s
}

// tick simulates one driver frame: push actions, update, clear input.
func tick(m *fsm.Manager, s *Session, actions ...core.Action) {
	for _, a := range actions {
		s.Input.Set(a)
	}
	m.Update(1.0 / 60)
	s.Input.Clear()
}

func TestMachineStartsInMenu(t *testing.T) {
	m, _ := testMachine(t)
	if m.CurrentName() != StateMenu {
		t.Errorf("initial state = %q, want menu", m.CurrentName())
	}
}

func TestMenuConfirmStartsRun(t *testing.T) {
	m, s := testMachine(t)

	tick(m, s, core.ActionConfirm)

	if m.CurrentName() != StatePlaying {
		t.Fatalf("state = %q, want playing", m.CurrentName())
	}
	if s.World == nil {
		t.Fatal("entering playing should build a world")
	}
	if s.World.Wave() != 1 || s.World.Score() != 0 {
		t.Errorf("fresh run: wave=%d score=%d", s.World.Wave(), s.World.Score())
	}
}

func TestMenuIgnoresUnrelatedInput(t *testing.T) {
	m, s := testMachine(t)

	tick(m, s, core.ActionLeft)
	tick(m, s, core.ActionPause)

	if m.CurrentName() != StateMenu {
		t.Errorf("state = %q, want menu", m.CurrentName())
	}
}

func TestPauseFreezesWorld(t *testing.T) {
	m, s := testMachine(t)
	tick(m, s, core.ActionConfirm)

	tick(m, s, core.ActionPause)
	if m.CurrentName() != StatePaused {
		t.Fatalf("state = %q, want paused", m.CurrentName())
	}

	before := s.World.player.Pos.X
	tick(m, s, core.ActionRight)
	tick(m, s, core.ActionRight)
	if s.World.player.Pos.X != before {
		t.Error("paused world should not advance")
	}
}

func TestPauseResumeKeepsRun(t *testing.T) {
	m, s := testMachine(t)
	tick(m, s, core.ActionConfirm)
	world := s.World

	tick(m, s, core.ActionPause)
	tick(m, s, core.ActionPause)

	if m.CurrentName() != StatePlaying {
		t.Fatalf("state = %q, want playing", m.CurrentName())
	}
	if s.World != world {
		t.Error("resume should keep the same run")
	}
}

func TestPausedEscReturnsToMenu(t *testing.T) {
	m, s := testMachine(t)
	tick(m, s, core.ActionConfirm)
	tick(m, s, core.ActionPause)

	tick(m, s, core.ActionBack)

	if m.CurrentName() != StateMenu {
		t.Errorf("state = %q, want menu", m.CurrentName())
	}
}

func TestGameOverTransition(t *testing.T) {
	m, s := testMachine(t)
	tick(m, s, core.ActionConfirm)

	s.World.over = true
	tick(m, s)

	if m.CurrentName() != StateGameOver {
		t.Fatalf("state = %q, want gameover", m.CurrentName())
	}
}

func TestGameOverRecordsFinalScore(t *testing.T) {
	m, s := testMachine(t)
	tick(m, s, core.ActionConfirm)

	s.World.score = 370
	s.World.wave = 3
	s.World.over = true
	tick(m, s)

	if s.FinalScore != 370 || s.FinalWave != 3 {
		t.Errorf("final = %d/%d, want 370/3", s.FinalScore, s.FinalWave)
	}
}

func TestGameOverOutranksPauseSameTick(t *testing.T) {
	m, s := testMachine(t)
	tick(m, s, core.ActionConfirm)

	// Finished world plus a pause press on the same tick: the higher
	// priority transition wins.
	s.World.over = true
	tick(m, s, core.ActionPause)

	if m.CurrentName() != StateGameOver {
		t.Errorf("state = %q, want gameover", m.CurrentName())
	}
}

func TestRestartStartsFreshRun(t *testing.T) {
	m, s := testMachine(t)
	tick(m, s, core.ActionConfirm)
	s.World.score = 100
	s.World.over = true
	tick(m, s)

	tick(m, s, core.ActionRestart)

	if m.CurrentName() != StatePlaying {
		t.Fatalf("state = %q, want playing", m.CurrentName())
	}
	if s.World.Score() != 0 || s.World.GameOver() {
		t.Errorf("restart: score=%d over=%v", s.World.Score(), s.World.GameOver())
	}
}

func TestGameOverEscReturnsToMenu(t *testing.T) {
	m, s := testMachine(t)
	tick(m, s, core.ActionConfirm)
	s.World.over = true
	tick(m, s)

	tick(m, s, core.ActionBack)

	if m.CurrentName() != StateMenu {
		t.Errorf("state = %q, want menu", m.CurrentName())
	}
}

func TestQuitFlagSetFromAnyState(t *testing.T) {
	m, s := testMachine(t)

	tick(m, s, core.ActionQuit)
	if !s.Quit {
		t.Error("quit from menu should set the session flag")
	}

	s.Quit = false
	m2, s2 := testMachine(t)
	tick(m2, s2, core.ActionConfirm)
	tick(m2, s2, core.ActionQuit)
	if !s2.Quit {
		t.Error("quit from playing should set the session flag")
	}
}

func TestHistoryTracksFlow(t *testing.T) {
	m, s := testMachine(t)
	tick(m, s, core.ActionConfirm)
	tick(m, s, core.ActionPause)

	h := m.History()
	if len(h) != 2 {
		t.Fatalf("history length = %d, want 2", len(h))
	}
	if h[0].Name != StateMenu || h[1].Name != StatePlaying {
		t.Errorf("history = %q,%q, want menu,playing", h[0].Name, h[1].Name)
	}
}

func TestStateRenders(t *testing.T) {
	m, s := testMachine(t)
	screen := core.NewScreen(60, 24)

	m.Render(screen)
	if screen.String() == "" {
		t.Fatal("menu render produced nothing")
	}

	tick(m, s, core.ActionConfirm)
	screen.Clear()
	m.Render(screen)
	if screen.Get(1, 0) != 'S' {
		t.Error("playing render should draw the HUD")
	}

	tick(m, s, core.ActionPause)
	m.Render(screen)
}
