package tui

import (
	"io"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/arcadehall/invaders/internal/config"
	"github.com/arcadehall/invaders/internal/core"
	"github.com/arcadehall/invaders/internal/game"
	"github.com/arcadehall/invaders/internal/loop"
)

func testModel(t *testing.T) Model {
	t.Helper()
	m, err := NewModel(Options{
		GameConfig: config.DefaultConfig(),
		Runtime:    core.RuntimeConfig{ScreenW: 60, ScreenH: 24, TickRate: 60, Seed: 7},
		Logger:     log.New(io.Discard),
	})
	if err != nil {
		t.Fatalf("NewModel() error: %v", err)
	}
	return m
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func tickModel(m Model) Model {
	next, _ := m.handleTick(time.Now())
	return next.(Model)
}

func TestKeyMapperUsesBindings(t *testing.T) {
	km := NewKeyMapper(core.Bindings{"x": core.ActionFire})

	action, quit := km.MapKey(keyMsg("x"))
	if action != core.ActionFire || quit {
		t.Errorf("MapKey(x) = %v,%v, want Fire,false", action, quit)
	}

	action, quit = km.MapKey(keyMsg("ctrl+c"))
	if action != core.ActionQuit || !quit {
		t.Errorf("MapKey(ctrl+c) = %v,%v, want Quit,true", action, quit)
	}

	if action, _ := km.MapKey(keyMsg("z")); action != core.ActionNone {
		t.Errorf("unbound key mapped to %v", action)
	}
}

func TestModelStartsRunOnEnterAndTick(t *testing.T) {
	m := testModel(t)

	next, _ := m.Update(keyMsg("enter"))
	m = next.(Model)
	m = tickModel(m)

	if m.machine.CurrentName() != game.StatePlaying {
		t.Errorf("state = %q, want playing", m.machine.CurrentName())
	}
}

func TestModelBlurPausesAndFocusResumes(t *testing.T) {
	m := testModel(t)

	next, _ := m.Update(tea.BlurMsg{})
	m = next.(Model)
	if m.sched.State() != loop.StatePaused {
		t.Fatalf("after blur: scheduler = %v, want paused", m.sched.State())
	}

	next, _ = m.Update(tea.FocusMsg{})
	m = next.(Model)
	if m.sched.State() != loop.StateRunning {
		t.Errorf("after focus: scheduler = %v, want running", m.sched.State())
	}
}

func TestModelCtrlCQuits(t *testing.T) {
	m := testModel(t)

	next, cmd := m.Update(keyMsg("ctrl+c"))
	m = next.(Model)
	if cmd == nil {
		t.Fatal("ctrl+c should produce a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+c should quit")
	}
	if m.View() != "" {
		t.Error("quitting model should render nothing")
	}
}

func TestModelInputClearedEachTick(t *testing.T) {
	m := testModel(t)

	next, _ := m.Update(keyMsg("enter"))
	m = next.(Model)
	m = tickModel(m)

	if m.session.Input.Has(core.ActionConfirm) {
		t.Error("input frame should be cleared after a tick")
	}
}

func TestRenderScreenPlainText(t *testing.T) {
	s := core.NewScreen(5, 2)
	s.DrawText(0, 0, "hello")
	s.DrawText(0, 1, "there")

	got := RenderScreen(s)
	want := "hello\nthere"
	if got != want {
		t.Errorf("RenderScreen() = %q, want %q", got, want)
	}
}

func TestRenderScreenGroupsColorRuns(t *testing.T) {
	s := core.NewScreen(4, 1)
	s.SetColored(0, 0, 'a', core.ColorRed)
	s.SetColored(1, 0, 'b', core.ColorRed)
	s.SetColored(2, 0, 'c', core.ColorGreen)

	// Styles may degrade to plain text without a TTY; the cell contents
	// must survive either way.
	got := RenderScreen(s)
	for _, r := range "abc" {
		if !containsRune(got, r) {
			t.Errorf("RenderScreen() missing %q: %q", r, got)
		}
	}
}

func containsRune(s string, r rune) bool {
	for _, c := range s {
		if c == r {
			return true
		}
	}
	return false
}
