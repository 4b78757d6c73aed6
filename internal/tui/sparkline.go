package tui

import "strings"

// sparklineLevels are the eight block heights, lowest first.
var sparklineLevels = []rune("▁▂▃▄▅▆▇█")

// RingBuffer keeps the most recent samples of a percentage series.
type RingBuffer struct {
	data  []float64
	head  int
	count int
}

// NewRingBuffer creates a buffer holding up to capacity samples (at least 1).
func NewRingBuffer(capacity int) *RingBuffer {
	return &RingBuffer{data: make([]float64, max(capacity, 1))}
}

// Push appends v, evicting the oldest sample when full.
func (r *RingBuffer) Push(v float64) {
	r.data[r.head] = v
	r.head = (r.head + 1) % len(r.data)
	r.count = min(r.count+1, len(r.data))
}

// Len returns the number of samples held.
func (r *RingBuffer) Len() int { return r.count }

// Cap returns the capacity.
func (r *RingBuffer) Cap() int { return len(r.data) }

// Last returns the newest sample, or 0 when empty.
func (r *RingBuffer) Last() float64 {
	if r.count == 0 {
		return 0
	}
	return r.data[(r.head-1+len(r.data))%len(r.data)]
}

// Slice returns the samples oldest first.
func (r *RingBuffer) Slice() []float64 {
	if r.count == 0 {
		return nil
	}
	out := make([]float64, r.count)
	start := (r.head - r.count + len(r.data)) % len(r.data)
	for i := range out {
		out[i] = r.data[(start+i)%len(r.data)]
	}
	return out
}

// Resize changes the capacity, keeping the newest samples that fit.
func (r *RingBuffer) Resize(capacity int) {
	capacity = max(capacity, 1)
	if capacity == len(r.data) {
		return
	}
	old := r.Slice()
	if len(old) > capacity {
		old = old[len(old)-capacity:]
	}
	r.data = make([]float64, capacity)
	r.head, r.count = 0, 0
	for _, v := range old {
		r.Push(v)
	}
}

// Reset drops every sample.
func (r *RingBuffer) Reset() {
	r.head, r.count = 0, 0
}

// RenderSparkline draws percentages (clamped to 0..100) as block characters,
// one per sample.
func RenderSparkline(values []float64) string {
	var b strings.Builder
	top := len(sparklineLevels) - 1
	for _, v := range values {
		v = min(max(v, 0), 100)
		b.WriteRune(sparklineLevels[min(int(v/100*float64(top)), top)])
	}
	return b.String()
}
