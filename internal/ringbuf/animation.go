package ringbuf

import "github.com/keilerkonzept/heartbeat-tui-demo/internal/waveform"

// MaxTick is the largest value the tick counter holds before wrapping to 0.
// The waveform only depends on the tick modulo its period, so wrapping is
// invisible apart from a jump in the baseline drift.
const MaxTick = 100000

// Animation owns the sample window, the surface height and the tick counter.
type Animation struct {
	buf    *Buffer
	height float64
	tick   int
}

// NewAnimation builds the state for a surface of width x height. The window
// holds one sample per horizontal unit and starts flat at mid-height.
func NewAnimation(width int, height float64) *Animation {
	return &Animation{
		buf:    New(width, height/2),
		height: height,
	}
}

// Step computes the sample for the current tick, shifts it into the window
// and advances the tick. It returns the new sample.
func (a *Animation) Step() float64 {
	v := waveform.Value(a.tick, a.height)
	a.buf.Push(v)
	a.tick++
	if a.tick > MaxTick {
		a.tick = 0
	}
	return v
}

// SetTick moves the tick counter, wrapping values outside [0, MaxTick].
func (a *Animation) SetTick(t int) {
	if t < 0 || t > MaxTick {
		t = 0
	}
	a.tick = t
}

func (a *Animation) Tick() int       { return a.tick }
func (a *Animation) Height() float64 { return a.height }
func (a *Animation) Width() int      { return a.buf.Len() }
func (a *Animation) Buffer() *Buffer { return a.buf }
func (a *Animation) Latest() float64 { return a.buf.Tail() }

// Samples copies the window into dst, oldest first.
func (a *Animation) Samples(dst []float64) []float64 {
	return a.buf.Snapshot(dst)
}
