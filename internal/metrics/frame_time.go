package metrics

import (
	"sort"
	"time"
)

// FrameTime keeps every frame duration in milliseconds. Value is the mean.
type FrameTime struct {
	samples []float64
	sorted  []float64
	total   float64
}

func NewFrameTime(capacity int) *FrameTime {
	return &FrameTime{samples: make([]float64, 0, capacity)}
}

func (f *FrameTime) Name() string { return "frame_time_ms" }

func (f *FrameTime) Observe(d time.Duration) {
	ms := float64(d.Microseconds()) / 1000
	f.samples = append(f.samples, ms)
	f.total += ms
	f.sorted = nil
}

func (f *FrameTime) Value() float64 {
	if len(f.samples) == 0 {
		return 0
	}
	return f.total / float64(len(f.samples))
}

// Percentile returns the nearest-rank sample at p in [0, 1].
func (f *FrameTime) Percentile(p float64) float64 {
	if len(f.samples) == 0 {
		return 0
	}
	if f.sorted == nil {
		f.sorted = append([]float64(nil), f.samples...)
		sort.Float64s(f.sorted)
	}
	idx := int(p * float64(len(f.sorted)-1))
	return f.sorted[idx]
}

func (f *FrameTime) Max() float64 { return f.Percentile(1) }

// Samples returns the recorded durations in frame order.
func (f *FrameTime) Samples() []float64 { return f.samples }

func (f *FrameTime) Reset() {
	f.samples = f.samples[:0]
	f.sorted = nil
	f.total = 0
}
