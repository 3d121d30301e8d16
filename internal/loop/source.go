package loop

import (
	"sync"
	"time"
)

// CancelFunc cancels a pending scheduled frame. Calling it after the frame
// has fired, or more than once, is a no-op.
type CancelFunc func()

// FrameSource abstracts the host's frame scheduling primitive. It replaces
// the callback-rescheduling-itself pattern with an explicit construct: the
// scheduler asks for exactly one future frame at a time and holds a handle
// it can cancel. Timestamps are monotonic and shared with Now, so delta
// computation never sees wall-clock jumps.
type FrameSource interface {
	// Schedule arranges for cb to be invoked once with the source's current
	// monotonic timestamp. At most one invocation results per call.
	Schedule(cb func(ts time.Duration)) CancelFunc

	// Now returns the source's current monotonic time.
	Now() time.Duration
}

// TickerSource schedules frames on real time at a fixed target rate.
// Callbacks run on timer goroutines; the Scheduler reschedules only after a
// tick finishes, so invocations never overlap.
type TickerSource struct {
	interval time.Duration
	epoch    time.Time
}

// NewTickerSource creates a source firing at the given frames per second.
// Rates below 1 fall back to 60.
func NewTickerSource(fps int) *TickerSource {
	if fps < 1 {
		fps = 60
	}
	return &TickerSource{
		interval: time.Second / time.Duration(fps),
		epoch:    time.Now(),
	}
}

// Schedule arms a one-shot timer for the next frame.
func (s *TickerSource) Schedule(cb func(ts time.Duration)) CancelFunc {
	t := time.AfterFunc(s.interval, func() {
		cb(s.Now())
	})
	return func() {
		t.Stop()
	}
}

// Now returns the monotonic time since the source was created.
func (s *TickerSource) Now() time.Duration {
	return time.Since(s.epoch)
}

// ManualSource is a frame source driven explicitly by the caller. The Bubble
// Tea platform feeds it from tick messages; tests use it to simulate stalls
// and exact frame gaps without sleeping.
type ManualSource struct {
	mu      sync.Mutex
	now     time.Duration
	pending *manualFrame
}

type manualFrame struct {
	cb func(ts time.Duration)
}

// NewManualSource creates a manual source starting at time zero.
func NewManualSource() *ManualSource {
	return &ManualSource{}
}

// Schedule records cb as the pending frame, replacing any previous one.
func (s *ManualSource) Schedule(cb func(ts time.Duration)) CancelFunc {
	s.mu.Lock()
	defer s.mu.Unlock()

	f := &manualFrame{cb: cb}
	s.pending = f
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		// Only clear if this handle still owns the pending slot
		if s.pending == f {
			s.pending = nil
		}
	}
}

// Now returns the source's current simulated time.
func (s *ManualSource) Now() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// Advance moves simulated time forward by d.
func (s *ManualSource) Advance(d time.Duration) {
	s.mu.Lock()
	s.now += d
	s.mu.Unlock()
}

// Fire invokes the pending frame callback at the current simulated time.
// Returns false if nothing was scheduled. The pending slot is cleared before
// the callback runs, so the callback is free to schedule the next frame.
func (s *ManualSource) Fire() bool {
	s.mu.Lock()
	f := s.pending
	s.pending = nil
	now := s.now
	s.mu.Unlock()

	if f == nil {
		return false
	}
	f.cb(now)
	return true
}

// Step advances simulated time by d and fires the pending frame.
func (s *ManualSource) Step(d time.Duration) bool {
	s.Advance(d)
	return s.Fire()
}

// HasPending reports whether a frame is currently scheduled.
func (s *ManualSource) HasPending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending != nil
}
