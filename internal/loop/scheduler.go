// Package loop drives the game's frame cadence. A Scheduler owns a single
// pending frame at a time, computes clamped delta times for the update phase
// and an interpolation factor for the render phase, and contains callback
// failures so a broken frame cannot wedge the host program.
//
// The scheduler is not goroutine-safe: all calls must come from the driving
// goroutine (the Bubble Tea update loop, a TickerSource timer chain, or a
// test harness). That matches the cooperative single-threaded model the game
// runs under.
package loop

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
)

// State is the lifecycle state of a Scheduler.
type State int

const (
	StateStopped State = iota
	StateRunning
	StatePaused
	StateErrored
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateStopped:
		return "stopped"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateErrored:
		return "errored"
	default:
		return "unknown"
	}
}

// pauseOrigin records who paused the loop, so a visibility change never
// resumes a loop the caller paused explicitly.
type pauseOrigin int

const (
	pausedByNone pauseOrigin = iota
	pausedByCaller
	pausedByVisibility
)

// Phase identifies which callback a tick error came from.
type Phase string

const (
	PhaseUpdate Phase = "update"
	PhaseRender Phase = "render"
)

// UpdateFunc advances the simulation by dt seconds.
type UpdateFunc func(dt float64)

// RenderFunc draws a frame. alpha is the interpolation factor in [0, 1]:
// how far the clamped delta got toward the target frame interval.
type RenderFunc func(alpha float64)

// ErrorHandler is invoked with errors recovered from a tick phase.
// Returning true marks the error handled and the loop keeps running;
// returning false drives the scheduler into StateErrored.
type ErrorHandler func(phase Phase, err error) bool

// Config tunes a Scheduler.
type Config struct {
	// TargetFPS is advisory: the loop reports interpolation and metrics
	// relative to it but never hard-throttles. Default 60.
	TargetFPS int

	// MaxDelta caps the delta passed to update after a stall, so one hung
	// frame cannot fast-forward the simulation. Default 100ms.
	MaxDelta time.Duration

	// SampleWindow is the number of frames metrics are averaged over.
	SampleWindow int

	// OnError receives recovered tick errors. Nil means no error is ever
	// considered handled.
	OnError ErrorHandler

	// Logger defaults to log.Default().
	Logger *log.Logger
}

// Scheduler drives update/render callbacks once per scheduled frame.
type Scheduler struct {
	source FrameSource
	update UpdateFunc
	render RenderFunc

	targetInterval time.Duration
	maxDelta       time.Duration
	onError        ErrorHandler
	logger         *log.Logger

	state    State
	origin   pauseOrigin
	lastTick time.Duration
	cancel   CancelFunc

	monitor *Monitor

	subs    map[int]func(old, new State)
	nextSub int
}

// NewScheduler creates a stopped scheduler. update and render may be nil,
// in which case the corresponding phase is skipped.
func NewScheduler(source FrameSource, update UpdateFunc, render RenderFunc, cfg Config) *Scheduler {
	if cfg.TargetFPS < 1 {
		cfg.TargetFPS = 60
	}
	if cfg.MaxDelta <= 0 {
		cfg.MaxDelta = 100 * time.Millisecond
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	return &Scheduler{
		source:         source,
		update:         update,
		render:         render,
		targetInterval: time.Second / time.Duration(cfg.TargetFPS),
		maxDelta:       cfg.MaxDelta,
		onError:        cfg.OnError,
		logger:         cfg.Logger,
		monitor:        NewMonitor(cfg.SampleWindow),
		subs:           make(map[int]func(old, new State)),
	}
}

// State returns the current lifecycle state.
func (s *Scheduler) State() State {
	return s.state
}

// Metrics returns a snapshot of rolling frame statistics.
func (s *Scheduler) Metrics() Metrics {
	return s.monitor.Snapshot()
}

// OnStateChange registers a callback fired on every state transition.
// The returned function unsubscribes; it is safe to call more than once.
func (s *Scheduler) OnStateChange(fn func(old, new State)) func() {
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		delete(s.subs, id)
	}
}

// setState transitions the scheduler and notifies subscribers.
func (s *Scheduler) setState(next State) {
	if next == s.state {
		return
	}
	old := s.state
	s.state = next
	for _, fn := range s.subs {
		fn(old, next)
	}
}

// Start begins ticking. It is the documented re-entry path out of
// StateErrored. Calling Start on a running scheduler logs a warning and
// does nothing else.
func (s *Scheduler) Start() {
	if s.state == StateRunning {
		s.logger.Warn("scheduler already running, start ignored")
		return
	}
	s.cancelPending()
	s.origin = pausedByNone
	s.lastTick = s.source.Now()
	s.monitor.Reset()
	s.setState(StateRunning)
	s.schedule()
}

// Stop cancels the pending frame and halts the loop. Idempotent. A tick
// already in flight completes; callers must tolerate that one extra tick.
func (s *Scheduler) Stop() {
	if s.state == StateStopped {
		return
	}
	s.cancelPending()
	s.origin = pausedByNone
	s.setState(StateStopped)
}

// Pause suspends ticking. Only valid while running; otherwise a no-op.
func (s *Scheduler) Pause() {
	s.pauseAs(pausedByCaller)
}

// Resume continues a paused loop. The last-tick timestamp is reset so time
// spent paused never reaches the update callback as delta.
func (s *Scheduler) Resume() {
	if s.state != StatePaused {
		return
	}
	s.origin = pausedByNone
	s.lastTick = s.source.Now()
	s.setState(StateRunning)
	s.schedule()
}

// SetVisible reacts to host visibility. Going hidden auto-pauses a running
// loop; becoming visible resumes it only if the pause was visibility-driven.
// An explicit caller Pause always wins over visibility changes.
func (s *Scheduler) SetVisible(visible bool) {
	if !visible {
		s.pauseAs(pausedByVisibility)
		return
	}
	if s.state == StatePaused && s.origin == pausedByVisibility {
		s.Resume()
	}
}

func (s *Scheduler) pauseAs(origin pauseOrigin) {
	switch s.state {
	case StateRunning:
		s.cancelPending()
		s.origin = origin
		s.setState(StatePaused)
	case StatePaused:
		// A caller pause upgrades an auto-pause: visibility must no
		// longer auto-resume it.
		if origin == pausedByCaller {
			s.origin = pausedByCaller
		}
	}
}

func (s *Scheduler) cancelPending() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

func (s *Scheduler) schedule() {
	s.cancel = s.source.Schedule(s.tick)
}

// tick runs one update/render cycle and schedules the next.
func (s *Scheduler) tick(ts time.Duration) {
	if s.state != StateRunning {
		// Cancelled late or raced with a state change; drop the frame.
		return
	}
	s.cancel = nil

	rawDelta := ts - s.lastTick
	if rawDelta < 0 {
		rawDelta = 0
	}
	delta := rawDelta
	if delta > s.maxDelta {
		delta = s.maxDelta
	}
	s.lastTick = ts

	var updateDur, renderDur time.Duration

	if s.update != nil {
		begin := s.source.Now()
		if err := s.safeCall(func() { s.update(delta.Seconds()) }); err != nil {
			if !s.handleTickError(PhaseUpdate, err) {
				return
			}
		}
		updateDur = s.source.Now() - begin
	}

	if s.render != nil {
		alpha := ClampAlpha(delta, s.targetInterval)
		begin := s.source.Now()
		if err := s.safeCall(func() { s.render(alpha) }); err != nil {
			if !s.handleTickError(PhaseRender, err) {
				return
			}
		}
		renderDur = s.source.Now() - begin
	}

	s.monitor.Record(delta, updateDur, renderDur)

	// A callback may have stopped or paused the loop mid-tick.
	if s.state == StateRunning {
		s.schedule()
	}
}

// handleTickError routes a recovered error to the handler. Returns false
// when the error is unhandled and the scheduler entered StateErrored.
func (s *Scheduler) handleTickError(phase Phase, err error) bool {
	s.logger.Error("tick phase failed", "phase", string(phase), "error", err)
	if s.onError != nil && s.onError(phase, err) {
		return true
	}
	s.cancelPending()
	s.setState(StateErrored)
	return false
}

// safeCall runs fn, converting a panic into an error.
func (s *Scheduler) safeCall(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
				return
			}
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	fn()
	return nil
}

// ClampAlpha computes the render interpolation factor: how far delta got
// toward the target interval, capped at 1.
func ClampAlpha(delta, target time.Duration) float64 {
	if target <= 0 {
		return 1
	}
	a := float64(delta) / float64(target)
	if a > 1 {
		return 1
	}
	return a
}
