package vitals

import (
	"math"
	"time"

	"github.com/ayoisaiah/cogload/internal/models"
)

const (
	minCalibrationSessions = 5
	minSamplesPerVital     = 30
)

// Stat is a running mean and variance using Welford's algorithm.
type Stat struct {
	Mean  float64 `json:"mean"`
	M2    float64 `json:"m2"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Count int     `json:"count"`
}

// Add records one observation. Non-positive values are ignored.
func (s *Stat) Add(v float64) {
	if v <= 0 {
		return
	}

	s.Count++

	if s.Count == 1 {
		s.Mean, s.Min, s.Max = v, v, v
		return
	}

	s.Min = math.Min(s.Min, v)
	s.Max = math.Max(s.Max, v)

	delta := v - s.Mean
	s.Mean += delta / float64(s.Count)
	s.M2 += delta * (v - s.Mean)
}

// StdDev returns the sample standard deviation.
func (s *Stat) StdDev() float64 {
	if s.Count < 2 {
		return 0
	}

	return math.Sqrt(s.M2 / float64(s.Count-1))
}

func (s *Stat) progress() float64 {
	return math.Min(100, float64(s.Count)/minSamplesPerVital*100)
}

// Profile learns a user's resting vitals over their first sessions.
type Profile struct {
	UpdatedAt time.Time `json:"updated_at"`
	UserID    string    `json:"user_id"`
	Pulse     Stat      `json:"pulse"`
	Breathing Stat      `json:"breathing"`
	HRV       Stat      `json:"hrv"`
	Sessions  int       `json:"calibration_sessions"`
}

// NewProfile returns an empty profile.
func NewProfile(userID string) *Profile {
	return &Profile{UserID: userID}
}

// Calibrated reports whether enough sessions and samples have been seen.
func (p *Profile) Calibrated() bool {
	return p.Sessions >= minCalibrationSessions &&
		p.Pulse.Count >= minSamplesPerVital &&
		p.Breathing.Count >= minSamplesPerVital
}

// Progress returns calibration progress as a percentage with one decimal.
func (p *Profile) Progress() float64 {
	sessions := math.Min(
		100,
		float64(p.Sessions)/minCalibrationSessions*100,
	)

	avg := (p.Pulse.progress() + p.Breathing.progress() + sessions) / 3

	return math.Round(avg*10) / 10
}

// Learn folds a finished session into the profile. Once calibrated the
// profile stops changing.
func (p *Profile) Learn(scores []models.Score, at time.Time) {
	if p.Calibrated() || len(scores) == 0 {
		return
	}

	for i := range scores {
		s := &scores[i]

		p.Pulse.Add(s.PulseRate)
		p.Breathing.Add(s.BreathingRate)

		if s.HRVDefined {
			p.HRV.Add(s.HRV)
		}
	}

	if p.Sessions < minCalibrationSessions {
		p.Sessions++
	}

	p.UpdatedAt = at
}

func personalBand(
	s *Stat,
	def Band,
	optLo, optHi, warnLo, warnHi, critHi, critGap float64,
) Band {
	sd := s.StdDev()

	b := def
	b.OptimalMin = math.Max(optLo, s.Mean-0.5*sd)
	b.OptimalMax = math.Min(optHi, s.Mean+0.5*sd)
	b.WarningMin = math.Max(warnLo, s.Mean-1.5*sd)
	b.WarningMax = math.Min(warnHi, s.Mean+1.5*sd)
	b.CriticalMax = math.Min(critHi, s.Mean+1.5*sd+critGap)

	return b
}

// Bands returns scoring bands centred on the user's resting vitals, or
// false if the profile is not calibrated yet.
func (p *Profile) Bands() (Bands, bool) {
	if !p.Calibrated() {
		return Bands{}, false
	}

	def := DefaultBands()

	return Bands{
		Breathing: personalBand(&p.Breathing, def.Breathing, 8, 24, 6, 28, 30, 2),
		Pulse:     personalBand(&p.Pulse, def.Pulse, 40, 120, 35, 130, 140, 10),
	}, true
}

// Baseline builds the scoring hook for this profile. Personal bands are
// used only when personalize is set and the profile is calibrated.
func (p *Profile) Baseline(offset float64, personalize bool) *Baseline {
	b := &Baseline{Offset: offset}

	if p == nil || !personalize {
		return b
	}

	if bands, ok := p.Bands(); ok {
		b.Bands = &bands

		if p.HRV.Count > 0 {
			neutral := p.HRV.Mean
			b.NeutralHRV = &neutral
		}
	}

	return b
}
