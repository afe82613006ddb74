package tui

import (
	"strings"
)

// sparklineChars maps values 0..7 to Unicode block elements ▁▂▃▄▅▆▇█.
var sparklineChars = [8]rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// History keeps the most recent converted temperatures in a fixed-capacity
// ring, oldest first when read back.
type History struct {
	data  []float64
	head  int
	count int
}

// NewHistory creates a history holding at most capacity samples.
func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = 1
	}
	return &History{data: make([]float64, capacity)}
}

// Push records a sample, overwriting the oldest one when full.
func (h *History) Push(v float64) {
	h.data[h.head] = v
	h.head = (h.head + 1) % len(h.data)
	if h.count < len(h.data) {
		h.count++
	}
}

// Len returns the number of recorded samples.
func (h *History) Len() int { return h.count }

// Last returns the most recent sample.
func (h *History) Last() (float64, bool) {
	if h.count == 0 {
		return 0, false
	}
	return h.data[(h.head-1+len(h.data))%len(h.data)], true
}

// Values returns the samples in chronological order.
func (h *History) Values() []float64 {
	out := make([]float64, 0, h.count)
	start := (h.head - h.count + len(h.data)) % len(h.data)
	for i := range h.count {
		out = append(out, h.data[(start+i)%len(h.data)])
	}
	return out
}

// RenderSparkline scales values between their minimum and maximum and
// renders one block character per value. A flat series renders at mid height.
func RenderSparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}

	var b strings.Builder
	span := hi - lo
	for _, v := range values {
		idx := len(sparklineChars) / 2
		if span > 0 {
			idx = int((v - lo) / span * float64(len(sparklineChars)-1))
		}
		b.WriteRune(sparklineChars[idx])
	}
	return b.String()
}
