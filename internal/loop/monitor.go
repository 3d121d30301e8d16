package loop

import "time"

// frameSample holds the timings recorded for a single tick.
type frameSample struct {
	delta  time.Duration
	update time.Duration
	render time.Duration
}

// Monitor collects per-frame timings into a bounded circular window and
// derives rolling statistics from it. It never accumulates unbounded state,
// so a long session costs the same memory as a short one.
type Monitor struct {
	samples []frameSample
	next    int // Write cursor into samples
	filled  int // Number of valid samples, up to len(samples)
	frames  uint64
}

// DefaultSampleWindow is the number of frames statistics are computed over.
const DefaultSampleWindow = 60

// NewMonitor creates a monitor with the given sample window.
// Windows below 1 fall back to DefaultSampleWindow.
func NewMonitor(window int) *Monitor {
	if window < 1 {
		window = DefaultSampleWindow
	}
	return &Monitor{
		samples: make([]frameSample, window),
	}
}

// Record adds one frame's timings, evicting the oldest sample when full.
func (m *Monitor) Record(delta, update, render time.Duration) {
	m.samples[m.next] = frameSample{delta: delta, update: update, render: render}
	m.next = (m.next + 1) % len(m.samples)
	if m.filled < len(m.samples) {
		m.filled++
	}
	m.frames++
}

// Reset clears the window and the frame counter for a new session.
func (m *Monitor) Reset() {
	m.next = 0
	m.filled = 0
	m.frames = 0
}

// Metrics is a read-only snapshot of rolling frame statistics.
type Metrics struct {
	FrameCount uint64 // Total frames this session

	FPS    float64 // Average over the sample window
	MinFPS float64 // Slowest frame in the window
	MaxFPS float64 // Fastest frame in the window

	LastDelta  time.Duration
	LastUpdate time.Duration
	AvgUpdate  time.Duration
	LastRender time.Duration
	AvgRender  time.Duration
}

// Snapshot computes statistics over the current window.
func (m *Monitor) Snapshot() Metrics {
	snap := Metrics{FrameCount: m.frames}
	if m.filled == 0 {
		return snap
	}

	var totalDelta, totalUpdate, totalRender time.Duration
	minDelta := time.Duration(-1)
	var maxDelta time.Duration
	for i := 0; i < m.filled; i++ {
		s := m.samples[i]
		totalDelta += s.delta
		totalUpdate += s.update
		totalRender += s.render
		if minDelta < 0 || s.delta < minDelta {
			minDelta = s.delta
		}
		if s.delta > maxDelta {
			maxDelta = s.delta
		}
	}

	last := m.samples[(m.next-1+len(m.samples))%len(m.samples)]
	snap.LastDelta = last.delta
	snap.LastUpdate = last.update
	snap.LastRender = last.render
	snap.AvgUpdate = totalUpdate / time.Duration(m.filled)
	snap.AvgRender = totalRender / time.Duration(m.filled)

	if totalDelta > 0 {
		snap.FPS = float64(m.filled) / totalDelta.Seconds()
	}
	// MinFPS comes from the largest delta, MaxFPS from the smallest
	if maxDelta > 0 {
		snap.MinFPS = 1 / maxDelta.Seconds()
	}
	if minDelta > 0 {
		snap.MaxFPS = 1 / minDelta.Seconds()
	}
	return snap
}
