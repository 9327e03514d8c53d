package power

import "gonum.org/v1/gonum/stat"

// SampleWindow keeps a bounded window of recent telemetry samples for
// observed statistics. The oldest sample is dropped once the window is full.
type SampleWindow struct {
	samples []float64
	max     int
}

// NewSampleWindow creates a window holding at most size samples.
func NewSampleWindow(size int) *SampleWindow {
	if size <= 0 {
		size = 1
	}
	return &SampleWindow{max: size}
}

// Add appends a sample, evicting the oldest one when the window is full.
func (w *SampleWindow) Add(v float64) {
	if len(w.samples) == w.max {
		copy(w.samples, w.samples[1:])
		w.samples[len(w.samples)-1] = v
		return
	}
	w.samples = append(w.samples, v)
}

// Len returns the number of stored samples.
func (w *SampleWindow) Len() int { return len(w.samples) }

// Mean returns the arithmetic mean of the stored samples, or 0 when empty.
func (w *SampleWindow) Mean() float64 {
	if len(w.samples) == 0 {
		return 0
	}
	return stat.Mean(w.samples, nil)
}

// StdDev returns the sample standard deviation, or 0 with fewer than two
// samples.
func (w *SampleWindow) StdDev() float64 {
	if len(w.samples) < 2 {
		return 0
	}
	return stat.StdDev(w.samples, nil)
}
