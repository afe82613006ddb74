package format

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

const (
	// etaSmoothing weights the newest rate sample in the moving average.
	etaSmoothing = 0.3
	// maxETA caps estimates produced by very slow early samples.
	maxETA = 24 * time.Hour
)

// ProgressState tracks the completion ratio of several concurrent calculators.
type ProgressState struct {
	progresses     []float64
	numCalculators int
}

// NewProgressState creates a state for numCalculators calculators, all at 0.
func NewProgressState(numCalculators int) *ProgressState {
	if numCalculators < 0 {
		numCalculators = 0
	}
	return &ProgressState{
		progresses:     make([]float64, numCalculators),
		numCalculators: numCalculators,
	}
}

// Update records the progress of one calculator. Out-of-range indexes are
// ignored and values are clamped to [0, 1].
func (ps *ProgressState) Update(index int, value float64) {
	if index < 0 || index >= len(ps.progresses) {
		return
	}
	ps.progresses[index] = clamp01(value)
}

// CalculateAverage returns the mean progress across all calculators.
func (ps *ProgressState) CalculateAverage() float64 {
	if ps.numCalculators == 0 {
		return 0
	}
	var total float64
	for _, p := range ps.progresses {
		total += p
	}
	return total / float64(ps.numCalculators)
}

// ProgressWithETA extends ProgressState with a smoothed completion rate
// used to estimate the time remaining.
type ProgressWithETA struct {
	*ProgressState
	mu           sync.Mutex
	startTime    time.Time
	lastUpdate   time.Time
	lastProgress float64
	progressRate float64 // fraction per second
}

// NewProgressWithETA creates a tracker whose clock starts now.
func NewProgressWithETA(numCalculators int) *ProgressWithETA {
	now := time.Now()
	return &ProgressWithETA{
		ProgressState: NewProgressState(numCalculators),
		startTime:     now,
		lastUpdate:    now,
	}
}

// UpdateWithETA records an update and returns the new average together with
// the estimated time remaining.
func (p *ProgressWithETA) UpdateWithETA(index int, value float64) (float64, time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.Update(index, value)
	avg := p.CalculateAverage()

	now := time.Now()
	if elapsed := now.Sub(p.lastUpdate).Seconds(); elapsed > 0 && avg > p.lastProgress {
		sample := (avg - p.lastProgress) / elapsed
		if p.progressRate == 0 {
			p.progressRate = sample
		} else {
			p.progressRate = etaSmoothing*sample + (1-etaSmoothing)*p.progressRate
		}
		p.lastUpdate = now
		p.lastProgress = avg
	}
	return avg, p.etaLocked(avg)
}

// GetETA returns the current estimate without recording an update.
func (p *ProgressWithETA) GetETA() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.etaLocked(p.CalculateAverage())
}

func (p *ProgressWithETA) etaLocked(avg float64) time.Duration {
	if p.progressRate <= 0 || avg >= 1 {
		return 0
	}
	secs := (1 - avg) / p.progressRate
	eta := time.Duration(secs * float64(time.Second))
	if eta > maxETA || eta < 0 {
		return maxETA
	}
	return eta
}

// ProgressBar renders a bar of the given length using block characters.
func ProgressBar(progress float64, length int) string {
	if length <= 0 {
		return ""
	}
	filled := int(clamp01(progress) * float64(length))
	return strings.Repeat("█", filled) + strings.Repeat("░", length-filled)
}

// FormatProgressBarWithETA combines a bar, a percentage and an ETA.
func FormatProgressBarWithETA(progress float64, eta time.Duration, width int) string {
	return fmt.Sprintf("[%s] %5.1f%% ETA: %s", ProgressBar(progress, width), clamp01(progress)*100, FormatETA(eta))
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
