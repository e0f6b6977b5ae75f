package vitals

import (
	"slices"
	"time"
)

const (
	// DefaultWindow is how far back the buffer looks.
	DefaultWindow = 5 * time.Second
	// DefaultMinStable is the reading count at which output is stable.
	DefaultMinStable = 2

	maxTracePoints = 30 * 30
)

// Buffer smooths a live reading stream over a sliding window. The window is
// measured on reading timestamps, not the wall clock.
type Buffer struct {
	readings  []Reading
	trace     Trace
	window    time.Duration
	minStable int
}

// NewBuffer returns an empty buffer.
func NewBuffer(window time.Duration, minStable int) *Buffer {
	return &Buffer{
		window:    window,
		minStable: minStable,
	}
}

// Add appends a reading and drops those older than the window. Invalid
// readings are ignored.
func (b *Buffer) Add(r Reading) {
	if r.Validate() != nil {
		return
	}

	b.readings = append(b.readings, r)

	b.trace = append(b.trace, r.PulseTrace...)
	if len(b.trace) > maxTracePoints {
		b.trace = slices.Clone(b.trace[len(b.trace)-maxTracePoints:])
	}

	cutoff := r.Timestamp.Add(-b.window)

	i := 0
	for i < len(b.readings) && b.readings[i].Timestamp.Before(cutoff) {
		i++
	}

	b.readings = b.readings[i:]
}

// Len returns the number of readings in the window.
func (b *Buffer) Len() int {
	return len(b.readings)
}

// Stable reports whether enough readings are buffered.
func (b *Buffer) Stable() bool {
	return len(b.readings) >= b.minStable
}

// Span returns the time between the oldest and newest buffered reading.
func (b *Buffer) Span() time.Duration {
	if len(b.readings) < 2 {
		return 0
	}

	return b.readings[len(b.readings)-1].Timestamp.Sub(*b.readings[0].Timestamp)
}

// Aggregate merges the buffered readings into one: rates are averaged, the
// pulse traces are concatenated and apnea is set if any reading had it. It
// reports false when the buffer is empty.
func (b *Buffer) Aggregate() (Reading, bool) {
	if len(b.readings) == 0 {
		return Reading{}, false
	}

	var (
		pulse, breathing float64
		apnea            bool
	)

	for i := range b.readings {
		pulse += *b.readings[i].PulseRate
		breathing += *b.readings[i].BreathingRate
		apnea = apnea || b.readings[i].Apnea()
	}

	n := float64(len(b.readings))
	pulse /= n
	breathing /= n

	last := b.readings[len(b.readings)-1]

	return Reading{
		Timestamp:     last.Timestamp,
		PulseRate:     &pulse,
		BreathingRate: &breathing,
		ApneaDetected: &apnea,
		PulseTrace:    slices.Clone(b.trace),
	}, true
}

// Reset empties the buffer.
func (b *Buffer) Reset() {
	b.readings = nil
	b.trace = nil
}
