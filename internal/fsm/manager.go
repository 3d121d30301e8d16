package fsm

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/arcadehall/invaders/internal/core"
)

// Errors returned for setup mistakes. Guard refusals and in-flight rejections
// return false without an error: they are expected runtime outcomes, not bugs.
var (
	ErrNilState      = errors.New("fsm: nil state")
	ErrEmptyName     = errors.New("fsm: state name is empty")
	ErrDuplicate     = errors.New("fsm: state already registered")
	ErrNotRegistered = errors.New("fsm: state not registered")
)

// HistoryEntry records one exited state.
type HistoryEntry struct {
	Name      string
	At        time.Time
	ActiveFor time.Duration
}

// Recovery configures what happens when a transition fails.
type Recovery struct {
	// Fallback is the state forced on transition failure. Empty disables
	// recovery.
	Fallback string

	// MaxRetries bounds attempts to enter the fallback. Default 1.
	MaxRetries int
}

// Config tunes a Manager.
type Config struct {
	// HistorySize bounds the transition history ring. Default 10.
	HistorySize int

	Recovery Recovery

	// Logger defaults to log.Default().
	Logger *log.Logger
}

// DefaultHistorySize is the history ring capacity when none is configured.
const DefaultHistorySize = 10

// Manager owns the state registry and mediates every transition.
// It is not goroutine-safe; all calls must come from the driving goroutine.
type Manager struct {
	states      map[string]State
	transitions map[string][]Transition

	current  State
	previous State

	enteredAt     time.Time
	currentPaused bool

	history     []HistoryEntry
	historySize int

	transitioning bool

	recovery Recovery
	logger   *log.Logger
	subs     *subscribers

	now func() time.Time // Injectable clock for tests
}

// NewManager creates an empty manager in the idle (no current state) phase.
func NewManager(cfg Config) *Manager {
	if cfg.HistorySize < 1 {
		cfg.HistorySize = DefaultHistorySize
	}
	if cfg.Recovery.MaxRetries < 1 {
		cfg.Recovery.MaxRetries = 1
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	return &Manager{
		states:      make(map[string]State),
		transitions: make(map[string][]Transition),
		historySize: cfg.HistorySize,
		recovery:    cfg.Recovery,
		logger:      cfg.Logger,
		subs:        newSubscribers(),
		now:         time.Now,
	}
}

// Register adds a state to the registry. Registration is the validation
// point: a nil state, an empty name or a duplicate name fails fast here so
// misconfiguration never surfaces mid-frame.
func (m *Manager) Register(st State) error {
	if st == nil {
		return ErrNilState
	}
	name := st.Name()
	if name == "" {
		return ErrEmptyName
	}
	if _, exists := m.states[name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicate, name)
	}
	m.states[name] = st
	m.transitions[name] = nil
	return nil
}

// AddTransition registers a permitted move. Both endpoints must already be
// registered. The source's list stays sorted by descending priority, stable
// for ties.
func (m *Manager) AddTransition(tr Transition) error {
	if _, ok := m.states[tr.From]; !ok {
		return fmt.Errorf("%w: from %q", ErrNotRegistered, tr.From)
	}
	if _, ok := m.states[tr.To]; !ok {
		return fmt.Errorf("%w: to %q", ErrNotRegistered, tr.To)
	}
	m.transitions[tr.From] = insertByPriority(m.transitions[tr.From], tr)
	return nil
}

// Current returns the active state, or nil before the first transition.
func (m *Manager) Current() State {
	return m.current
}

// CurrentName returns the active state's name, or "".
func (m *Manager) CurrentName() string {
	if m.current == nil {
		return ""
	}
	return m.current.Name()
}

// Previous returns the state active before the last transition, or nil.
func (m *Manager) Previous() State {
	return m.previous
}

// IsTransitioning reports whether a transition is in flight.
func (m *Manager) IsTransitioning() bool {
	return m.transitioning
}

// History returns a copy of the transition history, oldest first.
func (m *Manager) History() []HistoryEntry {
	out := make([]HistoryEntry, len(m.history))
	copy(out, m.history)
	return out
}

// On subscribes to manager events. The returned function unsubscribes.
func (m *Manager) On(t EventType, fn func(Event)) func() {
	return m.subs.add(t, fn)
}

// ChangeState moves to the named state if a registered transition from the
// current state permits it. The first activation (no current state) needs no
// rule. Returns false without side effects when the move is not permitted,
// when a transition is already in flight, or when the transition fails.
// An unregistered name is a setup error and returns it.
func (m *Manager) ChangeState(name string, ctx Context) (bool, error) {
	return m.changeState(name, ctx, false)
}

// ForceState moves to the named state bypassing transition rules. The
// re-entrancy guard still applies.
func (m *Manager) ForceState(name string, ctx Context) (bool, error) {
	return m.changeState(name, ctx, true)
}

func (m *Manager) changeState(name string, ctx Context, force bool) (bool, error) {
	if m.transitioning {
		m.logger.Warn("state change rejected, transition in flight", "target", name)
		return false, nil
	}
	target, ok := m.states[name]
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrNotRegistered, name)
	}

	var tr *Transition
	if !force && m.current != nil {
		tr = m.findPermitted(m.current.Name(), name, ctx)
		if tr == nil {
			return false, nil
		}
	}

	return m.transition(target, tr, ctx), nil
}

// findPermitted returns the highest-priority registered transition from→to
// whose condition passes, or nil.
func (m *Manager) findPermitted(from, to string, ctx Context) *Transition {
	for i := range m.transitions[from] {
		tr := &m.transitions[from][i]
		if tr.To == to && tr.permitted(ctx) {
			return tr
		}
	}
	return nil
}

// transition executes the approved move. The transitioning flag is held for
// the whole sequence and cleared on every path out, success or failure.
func (m *Manager) transition(target State, tr *Transition, ctx Context) bool {
	m.transitioning = true
	defer func() { m.transitioning = false }()

	from := m.CurrentName()
	if err := m.runTransition(target, tr, ctx); err != nil {
		m.logger.Error("transition failed", "from", from, "to", target.Name(), "error", err)
		m.subs.emit(Event{Type: EventTransitionError, From: from, State: target.Name(), Err: err})
		m.recoverFromFailure(ctx)
		return false
	}

	m.subs.emit(Event{Type: EventStateChanged, From: from, To: target.Name()})
	return true
}

// runTransition performs action → exit → history → swap → enter.
// Panics in any hook are converted to errors.
func (m *Manager) runTransition(target State, tr *Transition, ctx Context) error {
	if tr != nil && tr.Action != nil {
		if err := safeCall(func() error { return tr.Action(ctx) }); err != nil {
			return fmt.Errorf("action: %w", err)
		}
	}

	if m.current != nil {
		if err := safeCall(func() error { return m.current.Exit(target) }); err != nil {
			return fmt.Errorf("exit %q: %w", m.current.Name(), err)
		}
		m.pushHistory(HistoryEntry{
			Name:      m.current.Name(),
			At:        m.now(),
			ActiveFor: m.now().Sub(m.enteredAt),
		})
	}

	prev := m.current
	m.previous = prev
	m.current = target
	m.enteredAt = m.now()
	m.currentPaused = false

	if err := safeCall(func() error { return target.Enter(ctx, prev) }); err != nil {
		return fmt.Errorf("enter %q: %w", target.Name(), err)
	}
	return nil
}

// recoverFromFailure force-enters the configured fallback state. A failing
// fallback is retried up to MaxRetries times, then surfaced in the log; the
// manager stays in whatever state the failure left it.
func (m *Manager) recoverFromFailure(ctx Context) {
	fb, ok := m.states[m.recovery.Fallback]
	if !ok {
		if m.recovery.Fallback != "" {
			m.logger.Error("fallback state not registered", "fallback", m.recovery.Fallback)
		}
		return
	}
	if m.current == fb {
		return
	}

	from := m.CurrentName()
	var err error
	for attempt := 1; attempt <= m.recovery.MaxRetries; attempt++ {
		if err = m.runTransition(fb, nil, ctx); err == nil {
			m.subs.emit(Event{Type: EventStateChanged, From: from, To: fb.Name()})
			return
		}
		m.logger.Error("fallback transition failed", "fallback", fb.Name(), "attempt", attempt, "error", err)
	}
}

// pushHistory appends an entry, evicting the oldest when full.
func (m *Manager) pushHistory(e HistoryEntry) {
	if len(m.history) == m.historySize {
		copy(m.history, m.history[1:])
		m.history[len(m.history)-1] = e
		return
	}
	m.history = append(m.history, e)
}

// GoBack pops the most recent history entry and forces a transition into it.
// Returns false with no state mutation when the history is empty.
func (m *Manager) GoBack(ctx Context) bool {
	if len(m.history) == 0 {
		return false
	}
	last := m.history[len(m.history)-1]
	m.history = m.history[:len(m.history)-1]

	ok, err := m.ForceState(last.Name, ctx)
	if err != nil {
		m.logger.Error("go back failed", "target", last.Name, "error", err)
		return false
	}
	return ok
}

// Update advances the active state by dt seconds and then evaluates
// automatic transitions, firing at most one per tick. A failing update
// pauses the offending state rather than propagating into the frame loop.
func (m *Manager) Update(dt float64) {
	if m.current == nil || m.transitioning {
		return
	}

	if !m.currentPaused {
		if err := safeCall(func() error { return m.current.Update(dt) }); err != nil {
			name := m.current.Name()
			m.logger.Error("state update failed, pausing state", "state", name, "error", err)
			m.currentPaused = true
			m.current.Pause()
			m.subs.emit(Event{Type: EventUpdateError, State: name, Err: err})
			return
		}
	}

	m.evaluateAutoTransitions()
}

// evaluateAutoTransitions fires the first conditioned transition out of the
// current state whose guard passes against an empty context. One per tick:
// chained auto-transitions wait for the next update.
func (m *Manager) evaluateAutoTransitions() {
	ctx := Context{}
	list := m.transitions[m.current.Name()]
	for i := range list {
		tr := &list[i]
		if !tr.automatic() || !tr.Condition(ctx) {
			continue
		}
		target := m.states[tr.To]
		m.transition(target, tr, ctx)
		return
	}
}

// Render draws the active state. A failing render clears the surface and
// reports, so one bad frame cannot crash the host loop.
func (m *Manager) Render(dst *core.Screen) {
	if m.current == nil || m.transitioning {
		return
	}
	if err := safeCall(func() error { return m.current.Render(dst) }); err != nil {
		name := m.current.Name()
		m.logger.Error("state render failed, clearing surface", "state", name, "error", err)
		dst.Clear()
		m.subs.emit(Event{Type: EventRenderError, State: name, Err: err})
	}
}

// Pause suspends the active state if it allows pausing.
// Returns whether the state ended up paused by this call.
func (m *Manager) Pause() bool {
	if m.current == nil || m.currentPaused || !m.current.Config().CanPause {
		return false
	}
	m.currentPaused = true
	m.current.Pause()
	m.subs.emit(Event{Type: EventStatePaused, State: m.current.Name()})
	return true
}

// Resume wakes a paused state if it allows resuming.
func (m *Manager) Resume() bool {
	if m.current == nil || !m.currentPaused || !m.current.Config().CanResume {
		return false
	}
	m.currentPaused = false
	m.current.Resume()
	m.subs.emit(Event{Type: EventStateResumed, State: m.current.Name()})
	return true
}

// Paused reports whether the active state is paused.
func (m *Manager) Paused() bool {
	return m.currentPaused
}

// Shutdown exits the current state and clears the registry, transitions,
// history and subscriptions. The manager is unusable afterwards.
func (m *Manager) Shutdown() {
	if m.current != nil {
		cur := m.current
		if err := safeCall(func() error { return cur.Exit(nil) }); err != nil {
			m.logger.Error("exit during shutdown failed", "state", cur.Name(), "error", err)
		}
	}
	m.current = nil
	m.previous = nil
	m.states = make(map[string]State)
	m.transitions = make(map[string][]Transition)
	m.history = nil
	m.transitioning = false
	m.currentPaused = false
	m.subs.clear()
}

// safeCall runs fn, converting a panic into an error.
func safeCall(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
				return
			}
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn()
}
