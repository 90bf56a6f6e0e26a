package waveform

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

const testHeight = 100.0

func TestValueStaysInBand(t *testing.T) {
	for _, h := range []float64{20, 60, 100, 240} {
		for tick := 0; tick <= 100000; tick += 7 {
			v := Value(tick, h)
			require.GreaterOrEqual(t, v, float64(Margin), "h=%v t=%d", h, tick)
			require.LessOrEqual(t, v, h-Margin, "h=%v t=%d", h, tick)
		}
	}
}

func TestPulseRepeatsEveryPeriod(t *testing.T) {
	for tick := 0; tick < 5*Period; tick++ {
		require.Equal(t, Pulse(Phase(tick)), Pulse(Phase(tick+Period)))
		off := Value(tick, testHeight) - Baseline(tick, testHeight)
		offNext := Value(tick+Period, testHeight) - Baseline(tick+Period, testHeight)
		require.InDelta(t, off, offNext, 1e-9)
	}
}

func TestPulseSegments(t *testing.T) {
	cases := []struct {
		phase float64
		want  float64
	}{
		{0, -15},
		{0.05, -7.5},
		{0.1, -15},
		{0.125, 0},
		{0.15, 15},
		{0.2, 2.5},
		{0.25, math.Sin(2.5) * 2},
		{0.5, math.Sin(5) * 2},
	}
	for _, c := range cases {
		require.InDelta(t, c.want, Pulse(c.phase), 1e-9, "phase=%v", c.phase)
	}
}

func TestSpikeShape(t *testing.T) {
	// t=4 sits in the first segment: the pulse pulls the trace up.
	require.Less(t, Pulse(Phase(4)), 0.0)
	require.Less(t, Value(4, testHeight), Baseline(4, testHeight))

	// t=8..12 is the steep rising edge.
	for tick := 8; tick < 12; tick++ {
		require.Greater(t, Value(tick+1, testHeight), Value(tick, testHeight)+5)
	}
}

func TestClampAtExtremes(t *testing.T) {
	require.Equal(t, 5.0, Clamp(-1000, testHeight))
	require.Equal(t, 95.0, Clamp(1000, testHeight))
	require.Equal(t, 42.0, Clamp(42, testHeight))

	// A surface too short for the pulse pins every sample to the margin.
	for tick := 0; tick < Period; tick++ {
		require.Equal(t, 5.0, Value(tick, 8))
	}
}

func TestPhaseNegativeTick(t *testing.T) {
	require.InDelta(t, 79.0/80, Phase(-1), 1e-12)
}

func TestDetectorFindsPeriod(t *testing.T) {
	d := NewDetector(testHeight)
	var intervals []int
	for tick := 0; tick < 6*Period; tick++ {
		if iv, ok := d.Process(Value(tick, testHeight)); ok {
			intervals = append(intervals, iv)
		}
	}
	require.Len(t, intervals, 5)
	for _, iv := range intervals {
		require.Equal(t, Period, iv)
	}
	require.Equal(t, Period, d.Interval())
}

func TestDetectorFlatSignal(t *testing.T) {
	d := NewDetector(testHeight)
	for i := 0; i < 500; i++ {
		_, ok := d.Process(testHeight / 2)
		require.False(t, ok)
	}
	require.Zero(t, d.Interval())
}
