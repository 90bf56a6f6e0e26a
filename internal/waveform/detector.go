package waveform

// Detector finds beats in a sample stream by watching for rising crossings
// of a threshold. Time is measured in ticks.
type Detector struct {
	threshold  float64
	refractory int

	tick        int
	lastPeak    int
	havePeak    bool
	lastValue   float64
	initialized bool
	interval    int
}

// NewDetector builds a detector for a surface of the given height. The
// threshold sits between the baseline and the top of the QRS spike.
func NewDetector(height float64) *Detector {
	return &Detector{
		threshold:  height/2 + 11,
		refractory: Period / 4,
	}
}

// Process feeds the next sample. It reports the beat-to-beat interval in
// ticks when a new beat is detected.
func (d *Detector) Process(value float64) (int, bool) {
	now := d.tick
	d.tick++

	if !d.initialized {
		d.initialized = true
		d.lastValue = value
		return 0, false
	}

	defer func() { d.lastValue = value }()
	if d.lastValue >= d.threshold || value < d.threshold {
		return 0, false
	}
	if d.havePeak && now-d.lastPeak <= d.refractory {
		return 0, false
	}
	if !d.havePeak {
		d.havePeak = true
		d.lastPeak = now
		return 0, false
	}
	d.interval = now - d.lastPeak
	d.lastPeak = now
	return d.interval, true
}

// Interval is the last detected beat-to-beat interval in ticks, or 0.
func (d *Detector) Interval() int {
	return d.interval
}
