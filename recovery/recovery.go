// Package recovery suggests when to fit recovery activities into a week
// that has gone over budget.
package recovery

import (
	"time"

	"github.com/ayoisaiah/cogload/internal/catalog"
	"github.com/ayoisaiah/cogload/internal/models"
	"github.com/ayoisaiah/cogload/internal/slot"
	"github.com/ayoisaiah/cogload/internal/timeutil"
	"github.com/ayoisaiah/cogload/ledger"
)

// Params bounds the search for recovery slots.
type Params struct {
	WorkStart   int
	WorkEnd     int
	Days        int
	MaxSlots    int
	DailyBudget float64
}

// DefaultParams searches weekdays from 9 to 17, four slots per activity.
func DefaultParams() Params {
	return Params{
		WorkStart:   9,
		WorkEnd:     17,
		Days:        5,
		MaxSlots:    4,
		DailyBudget: ledger.DefaultDailyBudget,
	}
}

// Suggestion pairs a catalog activity with the free slots it fits in.
type Suggestion struct {
	Activity models.RecoveryActivity `json:"activity"`
	Slots    []models.TimeSlot       `json:"slots"`
}

// Advisor finds recovery slots.
type Advisor struct {
	params Params
}

// New returns an advisor.
func New(p Params) *Advisor {
	return &Advisor{params: p}
}

// Suggest returns candidate slots for every catalog activity when the week
// containing asOf carries debt, and nil otherwise. Events must carry current
// costs. Slots never start before asOf.
func (a *Advisor) Suggest(events []models.Event, asOf time.Time) []Suggestion {
	budget := ledger.Compute(events, asOf, a.params.DailyBudget)
	if budget.WeeklyDebt <= 0 {
		return nil
	}

	weekStart := timeutil.WeekStart(asOf)

	occupied := make(map[string][]slot.Range)

	for i := range events {
		e := &events[i]
		key := timeutil.DayKey(e.StartTime)
		occupied[key] = append(
			occupied[key],
			slot.Range{Start: e.StartTime, End: e.EndTime},
		)
	}

	for key := range occupied {
		slot.Sort(occupied[key])
	}

	priority := make(map[string]string, len(budget.Days))

	for _, d := range budget.Days {
		p := models.PriorityNormal
		if d.Scheduled > a.params.DailyBudget {
			p = models.PriorityHigh
		}

		priority[timeutil.DayKey(d.Date)] = p
	}

	activities := catalog.Activities()
	suggestions := make([]Suggestion, 0, len(activities))

	for _, act := range activities {
		s := Suggestion{
			Activity: act,
			Slots:    []models.TimeSlot{},
		}

		for i := 0; i < a.params.Days && len(s.Slots) < a.params.MaxSlots; i++ {
			day := weekStart.AddDate(0, 0, i)
			key := timeutil.DayKey(day)

			from := timeutil.AtHour(day, a.params.WorkStart)
			if asOf.After(from) {
				from = asOf
			}

			until := timeutil.AtHour(day, a.params.WorkEnd)
			if !from.Before(until) {
				continue
			}

			for _, gap := range slot.Gaps(occupied[key], from, until, act.Duration()) {
				if len(s.Slots) == a.params.MaxSlots {
					break
				}

				s.Slots = append(s.Slots, models.TimeSlot{
					Start:    gap.Start,
					End:      gap.Start.Add(act.Duration()),
					Day:      key,
					Priority: priority[key],
				})
			}
		}

		suggestions = append(suggestions, s)
	}

	return suggestions
}
