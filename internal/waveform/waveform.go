// Package waveform synthesizes the EKG trace: a slow baseline sinusoid with
// a sharp periodic pulse shaped like a QRS complex.
package waveform

import "math"

// Period is the pulse period in ticks.
const Period = 80

// Margin keeps the trace off the top and bottom edge of the surface.
const Margin = 5

// Baseline is the slow drift the pulse rides on.
func Baseline(t int, height float64) float64 {
	return height/2 + math.Sin(float64(t)*0.02)*3
}

// Phase maps a tick to its position within the pulse period, in [0,1).
func Phase(t int) float64 {
	p := t % Period
	if p < 0 {
		p += Period
	}
	return float64(p) / Period
}

// Pulse is the beat offset at the given phase.
func Pulse(phase float64) float64 {
	switch {
	case phase < 0.1:
		return -15 * (1 - phase*10)
	case phase < 0.15:
		return -15 + 30*((phase-0.1)*20)
	case phase < 0.25:
		return 15 - 25*((phase-0.15)*10)
	default:
		return math.Sin(phase*10) * 2
	}
}

// Value is the vertical position of the trace at tick t on a surface of the
// given height, clamped to [Margin, height-Margin].
func Value(t int, height float64) float64 {
	return Clamp(Baseline(t, height)+Pulse(Phase(t)), height)
}

// Clamp limits v to the drawable band of a surface of the given height.
// On surfaces shorter than 2*Margin the lower bound wins.
func Clamp(v, height float64) float64 {
	return math.Max(Margin, math.Min(height-Margin, v))
}
