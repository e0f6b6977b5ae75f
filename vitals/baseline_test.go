package vitals

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayoisaiah/cogload/internal/models"
)

func TestStat(t *testing.T) {
	var s Stat

	for _, v := range []float64{2, 4, 4, 4, 5, 5, 7, 9, 0, -3} {
		s.Add(v)
	}

	assert.Equal(t, 8, s.Count)
	assert.InDelta(t, 5, s.Mean, 1e-9)
	assert.InDelta(t, math.Sqrt(32.0/7), s.StdDev(), 1e-9)
	assert.InDelta(t, 2, s.Min, 1e-9)
	assert.InDelta(t, 9, s.Max, 1e-9)
}

// session returns six readings alternating around 70 bpm and 14 breaths.
func session() []models.Score {
	scores := make([]models.Score, 6)

	for i := range scores {
		pulse, breathing := 66.0, 13.0
		if i%2 == 1 {
			pulse, breathing = 74, 15
		}

		scores[i] = models.Score{
			PulseRate:     pulse,
			BreathingRate: breathing,
			HRV:           40,
			HRVDefined:    true,
		}
	}

	return scores
}

func TestProfileCalibration(t *testing.T) {
	p := NewProfile("ada")

	p.Learn(session(), t0)

	assert.False(t, p.Calibrated())
	assert.InDelta(t, 20, p.Progress(), 1e-9)
	assert.Nil(t, p.Baseline(0, true).Bands)

	for range 4 {
		p.Learn(session(), t0)
	}

	require.True(t, p.Calibrated())
	assert.InDelta(t, 100, p.Progress(), 1e-9)
	assert.Equal(t, 5, p.Sessions)

	// Calibrated profiles stop learning.
	p.Learn(session(), t0)
	assert.Equal(t, 30, p.Pulse.Count)
}

func TestProfileEmptySessionIsIgnored(t *testing.T) {
	p := NewProfile("ada")

	p.Learn(nil, t0)

	assert.Zero(t, p.Sessions)
}

func TestProfileBands(t *testing.T) {
	p := NewProfile("ada")
	for range 5 {
		p.Learn(session(), t0)
	}

	bands, ok := p.Bands()
	require.True(t, ok)

	sd := p.Pulse.StdDev()

	assert.InDelta(t, 70-0.5*sd, bands.Pulse.OptimalMin, 1e-9)
	assert.InDelta(t, 70+0.5*sd, bands.Pulse.OptimalMax, 1e-9)
	assert.InDelta(t, 70-1.5*sd, bands.Pulse.WarningMin, 1e-9)
	assert.InDelta(t, 70+1.5*sd, bands.Pulse.WarningMax, 1e-9)
	assert.InDelta(t, 70+1.5*sd+10, bands.Pulse.CriticalMax, 1e-9)

	// Breathing is clamped: the optimal band may not drop below 8.
	assert.GreaterOrEqual(t, bands.Breathing.OptimalMin, 8.0)
	assert.InDelta(t, bands.Breathing.WarningMax+2, bands.Breathing.CriticalMax, 1e-9)

	b := p.Baseline(5, true)
	require.NotNil(t, b.Bands)
	require.NotNil(t, b.NeutralHRV)
	assert.InDelta(t, 40, *b.NeutralHRV, 1e-9)
	assert.InDelta(t, 5, b.Offset, 1e-9)

	assert.Nil(t, p.Baseline(5, false).Bands)
}

func TestNilProfileBaseline(t *testing.T) {
	var p *Profile

	b := p.Baseline(3, true)

	assert.InDelta(t, 3, b.Offset, 1e-9)
	assert.Nil(t, b.Bands)
}
