package vitals

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readingAt(offset time.Duration, pulse, breathing float64) Reading {
	r := reading(pulse, breathing, Trace{{offset.Seconds(), 1}})
	r.Timestamp = ptr(t0.Add(offset))

	return r
}

func TestBufferWindow(t *testing.T) {
	b := NewBuffer(DefaultWindow, DefaultMinStable)

	_, ok := b.Aggregate()
	assert.False(t, ok)

	b.Add(readingAt(0, 60, 12))
	assert.False(t, b.Stable())

	b.Add(readingAt(2*time.Second, 70, 14))
	b.Add(readingAt(4*time.Second, 80, 16))
	b.Add(readingAt(7*time.Second, 90, 18))

	require.Equal(t, 3, b.Len())
	assert.True(t, b.Stable())
	assert.Equal(t, 5*time.Second, b.Span())

	agg, ok := b.Aggregate()
	require.True(t, ok)

	assert.InDelta(t, 80, *agg.PulseRate, 1e-9)
	assert.InDelta(t, 16, *agg.BreathingRate, 1e-9)
	assert.Equal(t, t0.Add(7*time.Second), *agg.Timestamp)
	assert.Len(t, agg.PulseTrace, 4)
	assert.NoError(t, agg.Validate())
}

func TestBufferIgnoresInvalidReadings(t *testing.T) {
	b := NewBuffer(DefaultWindow, DefaultMinStable)

	b.Add(Reading{})

	assert.Zero(t, b.Len())

	b.Add(readingAt(0, 60, 12))
	b.Reset()

	assert.Zero(t, b.Len())
}
