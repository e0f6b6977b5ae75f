package vitals

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Trace is a sampled signal as (seconds, value) pairs.
type Trace [][2]float64

// Reading is one sample from the vitals producer. Pointer fields are
// optional: nil means unknown, which is not the same as zero.
type Reading struct {
	Timestamp           *time.Time `json:"timestamp"`
	PulseRate           *float64   `json:"pulse_rate"`
	BreathingRate       *float64   `json:"breathing_rate"`
	PulseConfidence     *float64   `json:"pulse_confidence,omitempty"`
	BreathingConfidence *float64   `json:"breathing_confidence,omitempty"`
	ApneaDetected       *bool      `json:"apnea_detected,omitempty"`
	Blinking            *bool      `json:"blinking,omitempty"`
	Talking             *bool      `json:"talking,omitempty"`
	PulseTrace          Trace      `json:"pulse_trace,omitempty"`
	BreathingAmplitude  Trace      `json:"breathing_amplitude,omitempty"`
}

// Validate checks the required fields and value ranges.
func (r *Reading) Validate() error {
	switch {
	case r.Timestamp == nil || r.Timestamp.IsZero():
		return ErrMalformedReading.Fmt("timestamp is required")
	case r.PulseRate == nil:
		return ErrMalformedReading.Fmt("pulse_rate is required")
	case *r.PulseRate <= 0:
		return ErrMalformedReading.Fmt(
			fmt.Sprintf("pulse_rate must be positive, got %v", *r.PulseRate),
		)
	case r.BreathingRate == nil:
		return ErrMalformedReading.Fmt("breathing_rate is required")
	case *r.BreathingRate <= 0:
		return ErrMalformedReading.Fmt(
			fmt.Sprintf("breathing_rate must be positive, got %v", *r.BreathingRate),
		)
	}

	confidences := []struct {
		v    *float64
		name string
	}{
		{r.PulseConfidence, "pulse_confidence"},
		{r.BreathingConfidence, "breathing_confidence"},
	}

	for _, c := range confidences {
		if c.v != nil && (*c.v < 0 || *c.v > 1) {
			return ErrMalformedReading.Fmt(
				fmt.Sprintf("%s must be between 0 and 1, got %v", c.name, *c.v),
			)
		}
	}

	return nil
}

// Apnea reports whether apnea was positively detected.
func (r *Reading) Apnea() bool {
	return r.ApneaDetected != nil && *r.ApneaDetected
}

// ParseReading decodes and validates one JSON reading. Fields the producer
// adds beyond the schema are ignored.
func ParseReading(b []byte) (Reading, error) {
	var r Reading

	if err := json.Unmarshal(bytes.TrimSpace(b), &r); err != nil {
		return Reading{}, ErrMalformedReading.Fmt("invalid json").Wrap(err)
	}

	if err := r.Validate(); err != nil {
		return Reading{}, err
	}

	return r, nil
}
