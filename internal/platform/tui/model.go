package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/arcadehall/invaders/internal/config"
	"github.com/arcadehall/invaders/internal/core"
	"github.com/arcadehall/invaders/internal/fsm"
	"github.com/arcadehall/invaders/internal/game"
	"github.com/arcadehall/invaders/internal/loop"
	"github.com/arcadehall/invaders/internal/storage"
)

// Options configures a game model.
type Options struct {
	GameConfig config.Config
	Runtime    core.RuntimeConfig
	Bindings   core.Bindings
	Store      *storage.Store // Nil disables score persistence
	Difficulty string         // Recorded with saved scores
	ShowFPS    bool
	Logger     *log.Logger
}

// Model is the Bubble Tea model driving a full game session. Tick messages
// feed a manual frame source; the scheduler owns delta clamping, pause
// bookkeeping and metrics, and the state machine owns what a frame means.
type Model struct {
	screen  *core.Screen
	session *game.Session
	machine *fsm.Manager
	source  *loop.ManualSource
	sched   *loop.Scheduler
	keys    *KeyMapper
	store   *storage.Store
	logger  *log.Logger

	runtime    core.RuntimeConfig
	difficulty string
	showFPS    bool

	lastTick   time.Time
	scoreSaved bool
	quitting   bool
}

// NewModel creates a game model ready to be run.
func NewModel(opts Options) (Model, error) {
	if opts.Runtime.Seed == 0 {
		opts.Runtime.Seed = time.Now().UnixNano()
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	session := game.NewSession(game.ConfigBundle{
		Game:    opts.GameConfig,
		Runtime: opts.Runtime,
	})
	machine, err := game.NewStateMachine(session, opts.Logger)
	if err != nil {
		return Model{}, err
	}

	screen := core.NewScreen(opts.Runtime.ScreenW, opts.Runtime.ScreenH)
	source := loop.NewManualSource()
	sched := loop.NewScheduler(source,
		func(dt float64) { machine.Update(dt) },
		func(alpha float64) { machine.Render(screen) },
		loop.Config{
			TargetFPS: opts.Runtime.TickRate,
			Logger:    opts.Logger,
			OnError: func(phase loop.Phase, err error) bool {
				opts.Logger.Error("frame failed", "phase", phase, "error", err)
				return false
			},
		})
	sched.Start()

	return Model{
		screen:     screen,
		session:    session,
		machine:    machine,
		source:     source,
		sched:      sched,
		keys:       NewKeyMapper(opts.Bindings),
		store:      opts.Store,
		logger:     opts.Logger,
		runtime:    opts.Runtime,
		difficulty: opts.Difficulty,
		showFPS:    opts.ShowFPS,
	}, nil
}

// Init starts the tick and blink loops.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(m.runtime.TickRate), blinkCmd())
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.runtime.ScreenW = msg.Width
		m.runtime.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case tea.FocusMsg:
		m.sched.SetVisible(true)
		return m, nil

	case tea.BlurMsg:
		m.sched.SetVisible(false)
		return m, nil

	case BlinkMsg:
		m.session.BlinkOn = !m.session.BlinkOn
		return m, blinkCmd()

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.sched.State() == loop.StateErrored {
		switch msg.String() {
		case "r":
			m.sched.Start()
			return m, nil
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	if hardQuit := m.keys.MapKeyToFrame(msg, m.session.Input); hardQuit {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// handleTick advances the frame loop by the elapsed wall time.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	dt := time.Second / time.Duration(m.runtime.TickRate)
	if !m.lastTick.IsZero() {
		if elapsed := now.Sub(m.lastTick); elapsed > 0 {
			dt = elapsed
		}
	}
	m.lastTick = now

	m.source.Step(dt)
	m.session.Input.Clear()

	m = m.persistScore()

	if m.session.Quit {
		m.quitting = true
		return m, tea.Quit
	}
	return m, tickCmd(m.runtime.TickRate)
}

// persistScore saves a finished run once per game over.
func (m Model) persistScore() Model {
	switch m.machine.CurrentName() {
	case game.StateGameOver:
		if !m.scoreSaved && m.session.FinalScore > 0 {
			if m.store != nil {
				if _, err := m.store.SaveScore(m.session.FinalScore, m.session.FinalWave, m.difficulty); err != nil {
					m.logger.Warn("could not save score", "error", err)
				}
			}
			m.scoreSaved = true
		}
	case game.StatePlaying:
		m.scoreSaved = false
	}
	return m
}

// View renders the current frame.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.sched.State() == loop.StateErrored {
		return "\n  something went wrong -- press r to resume, q to quit\n"
	}

	out := RenderScreen(m.screen)
	if m.showFPS {
		stats := m.sched.Metrics()
		out += fmt.Sprintf("\n fps %.1f  update %s  render %s",
			stats.FPS, stats.AvgUpdate.Round(time.Microsecond), stats.AvgRender.Round(time.Microsecond))
	}
	return out
}

// Run starts a local Bubble Tea program for the game.
func Run(opts Options) error {
	model, err := NewModel(opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithReportFocus(), // Blur pauses, focus resumes
	)

	_, err = p.Run()
	return err
}
