package ledger

import (
	"math"
	"time"

	"github.com/ayoisaiah/cogload/internal/models"
)

// EffectiveCost resolves which cost an event contributes to the budget.
// Precedence: prorated, then actual from a vitals session, then calculated.
func EffectiveCost(e *models.Event) float64 {
	switch {
	case e.ProratedCost != nil:
		return *e.ProratedCost
	case e.ActualCost != nil:
		return *e.ActualCost
	default:
		return e.CalculatedCost
	}
}

// Spent reports whether the event has been consumed as of asOf, either by
// being marked complete or by its end having passed.
func Spent(e *models.Event, asOf time.Time) bool {
	return e.IsCompleted || !e.EndTime.After(asOf)
}

// Prorate scales the event's effective cost by the fraction of it that had
// elapsed at the given time. The result is rounded to two decimals.
func Prorate(e *models.Event, at time.Time) float64 {
	d := e.Duration()
	if d <= 0 {
		return EffectiveCost(e)
	}

	frac := float64(at.Sub(e.StartTime)) / float64(d)
	frac = math.Max(0, math.Min(1, frac))

	return math.Round(EffectiveCost(e)*frac*100) / 100
}
