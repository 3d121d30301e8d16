package loop

import (
	"errors"
	"testing"
	"time"
)

const frame = 16 * time.Millisecond

func newTestScheduler(t *testing.T, cfg Config) (*Scheduler, *ManualSource, *[]float64) {
	t.Helper()
	src := NewManualSource()
	deltas := &[]float64{}
	update := func(dt float64) {
		*deltas = append(*deltas, dt)
	}
	sched := NewScheduler(src, update, nil, cfg)
	return sched, src, deltas
}

func TestStartStopLifecycle(t *testing.T) {
	sched, src, deltas := newTestScheduler(t, Config{})

	if sched.State() != StateStopped {
		t.Fatalf("initial state = %v", sched.State())
	}

	sched.Start()
	if sched.State() != StateRunning {
		t.Fatalf("state after Start = %v", sched.State())
	}
	if !src.HasPending() {
		t.Fatal("no frame scheduled after Start")
	}

	src.Step(frame)
	src.Step(frame)
	if len(*deltas) != 2 {
		t.Fatalf("update called %d times, expected 2", len(*deltas))
	}

	sched.Stop()
	if sched.State() != StateStopped {
		t.Fatalf("state after Stop = %v", sched.State())
	}
	if src.HasPending() {
		t.Fatal("pending frame not cancelled by Stop")
	}

	// Stop is idempotent
	sched.Stop()
	if sched.State() != StateStopped {
		t.Fatalf("state after second Stop = %v", sched.State())
	}
}

func TestStartWhileRunningIsNoOp(t *testing.T) {
	sched, src, deltas := newTestScheduler(t, Config{})
	sched.Start()
	src.Step(frame)

	sched.Start() // Should warn and do nothing
	if sched.State() != StateRunning {
		t.Fatalf("state = %v", sched.State())
	}
	src.Step(frame)
	if len(*deltas) != 2 {
		t.Fatalf("update called %d times, expected 2", len(*deltas))
	}
}

func TestDeltaClampedToMaxDelta(t *testing.T) {
	sched, src, deltas := newTestScheduler(t, Config{MaxDelta: 50 * time.Millisecond})
	sched.Start()

	// Simulated 500ms stall: observed delta must equal the 50ms cap
	src.Step(500 * time.Millisecond)

	if len(*deltas) != 1 {
		t.Fatalf("update called %d times", len(*deltas))
	}
	if got := (*deltas)[0]; got != 0.05 {
		t.Errorf("clamped delta = %v, expected 0.05", got)
	}
}

func TestPauseResumeExcludesPausedTime(t *testing.T) {
	sched, src, deltas := newTestScheduler(t, Config{MaxDelta: time.Hour})
	sched.Start()
	src.Step(frame)

	sched.Pause()
	if sched.State() != StatePaused {
		t.Fatalf("state after Pause = %v", sched.State())
	}
	if src.HasPending() {
		t.Fatal("pending frame survived Pause")
	}

	// A long pause must never be counted as delta
	src.Advance(10 * time.Second)
	sched.Resume()
	if sched.State() != StateRunning {
		t.Fatalf("state after Resume = %v", sched.State())
	}

	src.Step(frame)
	last := (*deltas)[len(*deltas)-1]
	if last != frame.Seconds() {
		t.Errorf("delta after resume = %v, expected %v (pause leaked into delta)", last, frame.Seconds())
	}
}

func TestPauseOnlyValidWhileRunning(t *testing.T) {
	sched, _, _ := newTestScheduler(t, Config{})

	sched.Pause() // Stopped: no-op
	if sched.State() != StateStopped {
		t.Fatalf("Pause from stopped changed state to %v", sched.State())
	}

	sched.Resume() // Not paused: no-op
	if sched.State() != StateStopped {
		t.Fatalf("Resume from stopped changed state to %v", sched.State())
	}
}

func TestVisibilityAutoPauseAndResume(t *testing.T) {
	sched, src, _ := newTestScheduler(t, Config{})
	sched.Start()

	sched.SetVisible(false)
	if sched.State() != StatePaused {
		t.Fatalf("state after going hidden = %v", sched.State())
	}

	sched.SetVisible(true)
	if sched.State() != StateRunning {
		t.Fatalf("state after becoming visible = %v", sched.State())
	}
	if !src.HasPending() {
		t.Fatal("no frame scheduled after auto-resume")
	}
}

func TestVisibilityDoesNotResumeManualPause(t *testing.T) {
	sched, _, _ := newTestScheduler(t, Config{})
	sched.Start()

	sched.Pause()
	sched.SetVisible(false)
	sched.SetVisible(true)
	if sched.State() != StatePaused {
		t.Fatalf("visibility resumed a caller-paused loop: %v", sched.State())
	}

	// Explicit resume still works
	sched.Resume()
	if sched.State() != StateRunning {
		t.Fatalf("state after Resume = %v", sched.State())
	}
}

func TestManualPauseUpgradesAutoPause(t *testing.T) {
	sched, _, _ := newTestScheduler(t, Config{})
	sched.Start()

	sched.SetVisible(false) // auto-pause
	sched.Pause()           // caller takes over
	sched.SetVisible(true)
	if sched.State() != StatePaused {
		t.Fatalf("visibility resumed an upgraded pause: %v", sched.State())
	}
}

func TestUnhandledUpdateErrorEntersErrored(t *testing.T) {
	src := NewManualSource()
	var handlerCalls int
	cfg := Config{
		OnError: func(phase Phase, err error) bool {
			handlerCalls++
			if phase != PhaseUpdate {
				t.Errorf("phase = %v, expected update", phase)
			}
			return false // unhandled
		},
	}
	sched := NewScheduler(src, func(dt float64) {
		panic(errors.New("boom"))
	}, nil, cfg)

	sched.Start()
	src.Step(frame)

	if handlerCalls != 1 {
		t.Fatalf("error handler called %d times", handlerCalls)
	}
	if sched.State() != StateErrored {
		t.Fatalf("state = %v, expected errored", sched.State())
	}
	if src.HasPending() {
		t.Fatal("errored scheduler still has a pending frame")
	}

	// Start is the documented re-entry path out of Errored
	sched.Start()
	if sched.State() != StateRunning {
		t.Fatalf("Start did not leave Errored: %v", sched.State())
	}
}

func TestHandledErrorKeepsTicking(t *testing.T) {
	src := NewManualSource()
	fail := true
	var updates int
	cfg := Config{
		OnError: func(phase Phase, err error) bool { return true },
	}
	sched := NewScheduler(src, func(dt float64) {
		updates++
		if fail {
			fail = false
			panic("transient")
		}
	}, nil, cfg)

	sched.Start()
	src.Step(frame)
	if sched.State() != StateRunning {
		t.Fatalf("handled error changed state to %v", sched.State())
	}
	src.Step(frame)
	if updates != 2 {
		t.Fatalf("update called %d times, expected 2", updates)
	}
}

func TestRenderErrorRouting(t *testing.T) {
	src := NewManualSource()
	var gotPhase Phase
	cfg := Config{
		OnError: func(phase Phase, err error) bool {
			gotPhase = phase
			return false
		},
	}
	sched := NewScheduler(src, nil, func(alpha float64) {
		panic("render broke")
	}, cfg)

	sched.Start()
	src.Step(frame)
	if gotPhase != PhaseRender {
		t.Errorf("phase = %v, expected render", gotPhase)
	}
	if sched.State() != StateErrored {
		t.Errorf("state = %v", sched.State())
	}
}

func TestRenderAlpha(t *testing.T) {
	src := NewManualSource()
	var alphas []float64
	sched := NewScheduler(src, nil, func(alpha float64) {
		alphas = append(alphas, alpha)
	}, Config{TargetFPS: 100, MaxDelta: time.Hour}) // 10ms target

	sched.Start()
	src.Step(5 * time.Millisecond)  // half a target interval
	src.Step(20 * time.Millisecond) // past the target: capped at 1

	if len(alphas) != 2 {
		t.Fatalf("render called %d times", len(alphas))
	}
	if alphas[0] != 0.5 {
		t.Errorf("alpha = %v, expected 0.5", alphas[0])
	}
	if alphas[1] != 1 {
		t.Errorf("alpha = %v, expected capped at 1", alphas[1])
	}
}

func TestStateChangeSubscription(t *testing.T) {
	sched, _, _ := newTestScheduler(t, Config{})

	var log []State
	unsub := sched.OnStateChange(func(old, new State) {
		log = append(log, new)
	})

	sched.Start()
	sched.Pause()
	sched.Resume()
	sched.Stop()

	want := []State{StateRunning, StatePaused, StateRunning, StateStopped}
	if len(log) != len(want) {
		t.Fatalf("got %d notifications, expected %d", len(log), len(want))
	}
	for i, s := range want {
		if log[i] != s {
			t.Errorf("notification %d = %v, expected %v", i, log[i], s)
		}
	}

	unsub()
	sched.Start()
	if len(log) != len(want) {
		t.Error("unsubscribed callback still notified")
	}
	unsub() // double-unsubscribe is safe
}

func TestStopFromWithinTick(t *testing.T) {
	src := NewManualSource()
	var sched *Scheduler
	sched = NewScheduler(src, func(dt float64) {
		sched.Stop()
	}, nil, Config{})

	sched.Start()
	src.Step(frame)

	if sched.State() != StateStopped {
		t.Fatalf("state = %v", sched.State())
	}
	if src.HasPending() {
		t.Fatal("tick rescheduled after in-tick Stop")
	}
}

func TestTickerSourceFires(t *testing.T) {
	src := NewTickerSource(200) // 5ms interval
	done := make(chan time.Duration, 1)
	cancel := src.Schedule(func(ts time.Duration) {
		done <- ts
	})
	defer cancel()

	select {
	case ts := <-done:
		if ts <= 0 {
			t.Errorf("timestamp = %v, expected monotonic positive", ts)
		}
	case <-time.After(time.Second):
		t.Fatal("ticker source never fired")
	}
}

func TestTickerSourceCancel(t *testing.T) {
	src := NewTickerSource(10) // 100ms interval
	fired := make(chan struct{}, 1)
	cancel := src.Schedule(func(ts time.Duration) {
		fired <- struct{}{}
	})
	cancel()

	select {
	case <-fired:
		t.Fatal("cancelled frame fired anyway")
	case <-time.After(250 * time.Millisecond):
	}
}

func TestManualSourceCancelOnlyOwnFrame(t *testing.T) {
	src := NewManualSource()
	var fired bool

	cancel1 := src.Schedule(func(ts time.Duration) {})
	src.Schedule(func(ts time.Duration) { fired = true })

	// Stale handle must not cancel the newer frame
	cancel1()
	if !src.Fire() {
		t.Fatal("pending frame was lost")
	}
	if !fired {
		t.Fatal("wrong frame fired")
	}
}
