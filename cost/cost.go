// Package cost assigns a cognitive cost in points to calendar events.
package cost

import (
	"fmt"
	"math"
	"time"

	"github.com/ayoisaiah/cogload/internal/catalog"
	"github.com/ayoisaiah/cogload/internal/models"
	"github.com/ayoisaiah/cogload/internal/timeutil"
)

const (
	pointsPer100Minutes = 15

	participantOverhead = 1.5
	noAgendaPenalty     = 4
	toolSwitchPenalty   = 3

	deepWorkDiscount  = 0.5
	afternoonDiscount = 0.1
)

// Params holds the tuning knobs of the cost model.
type Params struct {
	AfternoonCutoff    int
	ProximityWindow    time.Duration
	ProximityIncrement float64
}

// DefaultParams returns the default tuning knobs.
func DefaultParams() Params {
	return Params{
		AfternoonCutoff:    12,
		ProximityWindow:    30 * time.Minute,
		ProximityIncrement: 2,
	}
}

// ValidationError reports an event that cannot be costed.
type ValidationError struct {
	EventID string
	Field   string
	Reason  string
}

func (e *ValidationError) Error() string {
	if e.EventID == "" {
		return fmt.Sprintf("invalid event: %s %s", e.Field, e.Reason)
	}

	return fmt.Sprintf("invalid event %s: %s %s", e.EventID, e.Field, e.Reason)
}

// Validate rejects events whose interval is empty or inverted.
func Validate(e *models.Event) error {
	if e.StartTime.IsZero() {
		return &ValidationError{
			EventID: e.ID,
			Field:   "start_time",
			Reason:  "is required",
		}
	}

	if !e.EndTime.After(e.StartTime) {
		return &ValidationError{
			EventID: e.ID,
			Field:   "end_time",
			Reason:  "must be after start_time",
		}
	}

	return nil
}

// Model computes event costs.
type Model struct {
	params Params
}

// New returns a cost model with the given parameters.
func New(p Params) *Model {
	return &Model{params: p}
}

// Params returns the parameters the model was built with.
func (m *Model) Params() Params {
	return m.params
}

// Base returns the duration-proportional cost of an event, or the catalog
// reduction for recovery events.
func Base(e *models.Event) float64 {
	if e.Type == models.Recovery {
		return -math.Abs(catalog.Match(e.DurationMinutes()).PointValue)
	}

	return e.DurationMinutes() * pointsPer100Minutes / 100
}

// Score costs e against the other events of its day. day may contain e
// itself and events from other days; both are ignored for proximity.
func (m *Model) Score(
	e *models.Event,
	day []models.Event,
) (models.CostBreakdown, error) {
	if err := Validate(e); err != nil {
		return models.CostBreakdown{}, err
	}

	base := Base(e)

	b := models.CostBreakdown{
		EventID:           e.ID,
		EventType:         e.Type,
		Base:              base,
		DurationComponent: base,
	}

	switch e.Type {
	case models.Meeting, models.Admin:
		participants := 1
		if e.Participants != nil && *e.Participants > 1 {
			participants = *e.Participants
		}

		b.Participants = float64(participants-1) * participantOverhead

		if e.HasAgenda != nil && !*e.HasAgenda {
			b.NoAgenda = noAgendaPenalty
		}

		if e.RequiresToolSwitch != nil && *e.RequiresToolSwitch {
			b.ToolSwitch = toolSwitchPenalty
		}
	case models.DeepWork:
		b.DurationComponent = base - base*deepWorkDiscount
	}

	if e.Type != models.Recovery {
		if e.StartTime.Hour() >= m.params.AfternoonCutoff {
			b.AfternoonDiscount = -base * afternoonDiscount
		}

		b.ProximityIncrement = float64(
			m.neighbours(e, day),
		) * m.params.ProximityIncrement
	}

	b.Total = b.Sum()

	return b, nil
}

// neighbours counts the other events on the same day whose interval lies
// within the proximity window of e. Overlapping events count.
func (m *Model) neighbours(e *models.Event, day []models.Event) int {
	var n int

	for i := range day {
		o := &day[i]

		if o.ID == e.ID || !timeutil.SameDay(o.StartTime, e.StartTime) {
			continue
		}

		gap := max(o.StartTime.Sub(e.EndTime), e.StartTime.Sub(o.EndTime))
		if gap <= m.params.ProximityWindow {
			n++
		}
	}

	return n
}

// Recompute sets CalculatedCost on every event using the rest of the slice
// as schedule context. It stops at the first invalid event.
func (m *Model) Recompute(events []models.Event) error {
	for i := range events {
		b, err := m.Score(&events[i], events)
		if err != nil {
			return err
		}

		events[i].CalculatedCost = b.Total
	}

	return nil
}
