package main

import (
	"sync"
	"sync/atomic"
	"time"
)

type durationRing struct {
	buf   []time.Duration
	idx   int
	count int
}

func newDurationRing(n int) *durationRing {
	if n < 1 {
		n = 1
	}
	return &durationRing{buf: make([]time.Duration, n)}
}

func (r *durationRing) add(d time.Duration) {
	if len(r.buf) == 0 {
		return
	}
	r.buf[r.idx] = d
	r.idx++
	if r.idx >= len(r.buf) {
		r.idx = 0
	}
	if r.count < len(r.buf) {
		r.count++
	}
}

type durationStats struct {
	last time.Duration
	max  time.Duration
	avg  time.Duration
	n    int
}

func (r *durationRing) snapshot() durationStats {
	if r.count == 0 {
		return durationStats{}
	}
	var sum time.Duration
	var max time.Duration
	for i := 0; i < r.count; i++ {
		d := r.buf[i]
		sum += d
		if d > max {
			max = d
		}
	}

	lastIdx := r.idx - 1
	if lastIdx < 0 {
		lastIdx = len(r.buf) - 1
	}
	last := r.buf[lastIdx]

	return durationStats{
		last: last,
		max:  max,
		avg:  sum / time.Duration(r.count),
		n:    r.count,
	}
}

// loopMetrics is written by both loops; counters are atomic and the frame
// time ring has its own lock.
type loopMetrics struct {
	enabled atomic.Bool

	startedNs atomic.Int64
	ekgTicks  atomic.Uint64
	rotations atomic.Uint64
	beatTicks atomic.Int64

	frameMu sync.Mutex
	frames  *durationRing
}

func newLoopMetrics(window int) *loopMetrics {
	m := &loopMetrics{
		frames: newDurationRing(window),
	}
	m.startedNs.Store(time.Now().UnixNano())
	return m
}

func (m *loopMetrics) setEnabled(v bool) { m.enabled.Store(v) }
func (m *loopMetrics) isEnabled() bool   { return m.enabled.Load() }

func (m *loopMetrics) observeFrame(d time.Duration) {
	if !m.isEnabled() {
		return
	}
	m.ekgTicks.Add(1)
	m.frameMu.Lock()
	m.frames.add(d)
	m.frameMu.Unlock()
}

func (m *loopMetrics) observeBeat(intervalTicks int) {
	if !m.isEnabled() {
		return
	}
	m.beatTicks.Store(int64(intervalTicks))
}

func (m *loopMetrics) observeRotation() {
	if !m.isEnabled() {
		return
	}
	m.rotations.Add(1)
}

type snapshot struct {
	started   time.Time
	ekgTicks  uint64
	rotations uint64
	beatTicks int
	frameTime durationStats
}

func (m *loopMetrics) snapshot() snapshot {
	if !m.isEnabled() {
		return snapshot{}
	}
	started := time.Time{}
	if ns := m.startedNs.Load(); ns != 0 {
		started = time.Unix(0, ns)
	}
	m.frameMu.Lock()
	frames := m.frames.snapshot()
	m.frameMu.Unlock()
	return snapshot{
		started:   started,
		ekgTicks:  m.ekgTicks.Load(),
		rotations: m.rotations.Load(),
		beatTicks: int(m.beatTicks.Load()),
		frameTime: frames,
	}
}

// bpm converts a beat interval in ticks to beats per minute.
func bpm(intervalTicks int, tick time.Duration) float64 {
	if intervalTicks <= 0 || tick <= 0 {
		return 0
	}
	return time.Minute.Seconds() / (float64(intervalTicks) * tick.Seconds())
}
