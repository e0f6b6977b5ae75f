// Package vitals reduces physiological readings to focus and stress scores
// and to a cost adjustment for the event they were taken during.
package vitals

import (
	"math"

	"github.com/ayoisaiah/cogload/internal/models"
)

const (
	minPeaks       = 3
	minRRIntervals = 2
	minRRMillis    = 300
	maxRRMillis    = 2000

	hrvScoreMin    = 20
	hrvScoreMax    = 80
	rmssdFloor     = 20
	rmssdSpan      = 80
	neutralHRV     = 50
	weightBreath   = 0.35
	weightPulse    = 0.25
	weightHRV      = 0.40
	breathCritRate = 3
	pulseCritRate  = 2
	apneaPenalty   = 15

	// DefaultMaxCostDelta is the cost delta at full stress.
	DefaultMaxCostDelta = 6
)

// Band describes the scoring thresholds for one vital sign. Inside the
// optimal range there is no penalty. Between optimal and warning the score
// drops by MildSlope per unit, and past warning by SteepLow or SteepHigh per
// unit on top of that. CriticalMax is where stress starts to rise directly.
type Band struct {
	OptimalMin  float64 `json:"optimal_min"`
	OptimalMax  float64 `json:"optimal_max"`
	WarningMin  float64 `json:"warning_min"`
	WarningMax  float64 `json:"warning_max"`
	CriticalMax float64 `json:"critical_max"`
	MildSlope   float64 `json:"mild_slope"`
	SteepLow    float64 `json:"steep_low"`
	SteepHigh   float64 `json:"steep_high"`
}

// Bands holds the breathing and pulse bands.
type Bands struct {
	Breathing Band `json:"breathing"`
	Pulse     Band `json:"pulse"`
}

// DefaultBands returns population norms: 12-16 breaths and 60-80 beats per
// minute are optimal.
func DefaultBands() Bands {
	return Bands{
		Breathing: Band{
			OptimalMin:  12,
			OptimalMax:  16,
			WarningMin:  10,
			WarningMax:  18,
			CriticalMax: 20,
			MildSlope:   3,
			SteepLow:    10,
			SteepHigh:   8,
		},
		Pulse: Band{
			OptimalMin:  60,
			OptimalMax:  80,
			WarningMin:  50,
			WarningMax:  90,
			CriticalMax: 100,
			MildSlope:   1,
			SteepLow:    2,
			SteepHigh:   2,
		},
	}
}

// Score maps a rate to 0-100. The function is continuous, flat inside the
// optimal range and non-increasing as the rate moves away from it.
func (b Band) Score(rate float64) float64 {
	var penalty float64

	switch {
	case rate < b.WarningMin:
		penalty = (b.OptimalMin-b.WarningMin)*b.MildSlope +
			(b.WarningMin-rate)*b.SteepLow
	case rate < b.OptimalMin:
		penalty = (b.OptimalMin - rate) * b.MildSlope
	case rate > b.WarningMax:
		penalty = (b.WarningMax-b.OptimalMax)*b.MildSlope +
			(rate-b.WarningMax)*b.SteepHigh
	case rate > b.OptimalMax:
		penalty = (rate - b.OptimalMax) * b.MildSlope
	}

	return clamp(100-penalty, 0, 100)
}

// Baseline personalises scoring. Offset is subtracted from stress before
// the cost delta is computed. Bands replaces the population norms when set.
// NeutralHRV replaces the score used when HRV cannot be measured.
type Baseline struct {
	Bands      *Bands   `json:"bands,omitempty"`
	NeutralHRV *float64 `json:"neutral_hrv,omitempty"`
	Offset     float64  `json:"offset"`
}

// Scorer turns readings into scores.
type Scorer struct {
	maxCostDelta float64
}

// NewScorer returns a scorer. A non-positive maxCostDelta uses the default.
func NewScorer(maxCostDelta float64) *Scorer {
	if maxCostDelta <= 0 {
		maxCostDelta = DefaultMaxCostDelta
	}

	return &Scorer{maxCostDelta: maxCostDelta}
}

// Score validates r and reduces it. baseline may be nil.
func (s *Scorer) Score(r *Reading, baseline *Baseline) (models.Score, error) {
	if err := r.Validate(); err != nil {
		return models.Score{}, err
	}

	bands := DefaultBands()
	hrvFallback := float64(neutralHRV)

	var offset float64

	if baseline != nil {
		if baseline.Bands != nil {
			bands = *baseline.Bands
		}

		if baseline.NeutralHRV != nil {
			hrvFallback = *baseline.NeutralHRV
		}

		offset = baseline.Offset
	}

	pulse, breathing := *r.PulseRate, *r.BreathingRate

	out := models.Score{
		Timestamp:     *r.Timestamp,
		PulseRate:     pulse,
		BreathingRate: breathing,
		HRV:           hrvFallback,
	}

	if rmssd, ok := RMSSD(r.PulseTrace); ok {
		out.RMSSD = &rmssd
		out.HRV = HRVScore(rmssd)
		out.HRVDefined = true
	}

	breathScore := bands.Breathing.Score(breathing)
	if r.BreathingConfidence != nil {
		breathScore *= *r.BreathingConfidence
	}

	pulseScore := bands.Pulse.Score(pulse)
	if r.PulseConfidence != nil {
		pulseScore *= *r.PulseConfidence
	}

	out.Focus = clamp(
		weightBreath*breathScore+weightPulse*pulseScore+weightHRV*out.HRV,
		0,
		100,
	)

	stress := 100 - out.Focus +
		breathCritRate*math.Max(0, breathing-bands.Breathing.CriticalMax) +
		pulseCritRate*math.Max(0, pulse-bands.Pulse.CriticalMax)

	if r.Apnea() {
		stress += apneaPenalty
	}

	out.Stress = clamp(stress, 0, 100)
	out.CostDelta = s.CostDelta(out.Stress, offset)

	return out, nil
}

// CostDelta converts a stress level into points, after removing the
// personal offset.
func (s *Scorer) CostDelta(stress, offset float64) int {
	return int(math.Round((stress - offset) / 100 * s.maxCostDelta))
}

// HRVScore maps RMSSD linearly from 20ms->20 to 100ms->80, clamped.
func HRVScore(rmssd float64) float64 {
	return clamp(
		hrvScoreMin+(rmssd-rmssdFloor)*(hrvScoreMax-hrvScoreMin)/rmssdSpan,
		hrvScoreMin,
		hrvScoreMax,
	)
}

// Peaks returns the indices of local maxima that rise above the trace mean.
func Peaks(trace Trace) []int {
	if len(trace) < 3 {
		return nil
	}

	var sum float64
	for _, p := range trace {
		sum += p[1]
	}

	mean := sum / float64(len(trace))

	var peaks []int

	for i := 1; i < len(trace)-1; i++ {
		v := trace[i][1]
		if v > trace[i-1][1] && v > trace[i+1][1] && v > mean {
			peaks = append(peaks, i)
		}
	}

	return peaks
}

// RRIntervals returns successive peak to peak intervals in milliseconds,
// dropping intervals outside 30-200 beats per minute.
func RRIntervals(trace Trace) []float64 {
	peaks := Peaks(trace)
	if len(peaks) < minPeaks {
		return nil
	}

	var rr []float64

	for i := 1; i < len(peaks); i++ {
		ms := (trace[peaks[i]][0] - trace[peaks[i-1]][0]) * 1000
		if ms >= minRRMillis && ms <= maxRRMillis {
			rr = append(rr, ms)
		}
	}

	return rr
}

// RMSSD computes the root mean square of successive RR differences. It
// reports false when the trace has too few beats to measure.
func RMSSD(trace Trace) (float64, bool) {
	rr := RRIntervals(trace)
	if len(rr) < minRRIntervals {
		return 0, false
	}

	var sum float64

	for i := 1; i < len(rr); i++ {
		d := rr[i] - rr[i-1]
		sum += d * d
	}

	return math.Sqrt(sum / float64(len(rr)-1)), true
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
