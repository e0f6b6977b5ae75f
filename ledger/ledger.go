// Package ledger tracks events and derives the daily and weekly cognitive
// budget from them.
package ledger

import (
	"slices"
	"sync"
	"time"

	"github.com/maruel/natural"

	"github.com/ayoisaiah/cogload/cost"
	"github.com/ayoisaiah/cogload/internal/models"
)

// Ledger owns a set of events and keeps their costs current. All reads are
// taken from one consistent snapshot; all writes replace the snapshot under
// a single lock.
type Ledger struct {
	model  *cost.Model
	events []models.Event
	budget float64
	mu     sync.RWMutex
}

// New builds a ledger over the given events.
func New(
	model *cost.Model,
	dailyBudget float64,
	events ...models.Event,
) (*Ledger, error) {
	l := &Ledger{
		model:  model,
		budget: dailyBudget,
	}

	if err := l.replace(slices.Clone(events)); err != nil {
		return nil, err
	}

	return l, nil
}

// Sort orders events by start time, then id.
func Sort(events []models.Event) {
	slices.SortStableFunc(events, func(a, b models.Event) int {
		if c := a.StartTime.Compare(b.StartTime); c != 0 {
			return c
		}

		switch {
		case a.ID == b.ID:
			return 0
		case natural.Less(a.ID, b.ID):
			return -1
		default:
			return 1
		}
	})
}

// replace validates, costs and installs events. The caller must hold the
// write lock or own l exclusively.
func (l *Ledger) replace(events []models.Event) error {
	seen := make(map[string]struct{}, len(events))

	for i := range events {
		if _, ok := seen[events[i].ID]; ok {
			return ErrDuplicateEvent.Fmt(events[i].ID)
		}

		seen[events[i].ID] = struct{}{}

		if err := cost.Validate(&events[i]); err != nil {
			return err
		}
	}

	if err := l.model.Recompute(events); err != nil {
		return err
	}

	Sort(events)

	l.events = events

	return nil
}

// DailyBudget returns the configured points per day.
func (l *Ledger) DailyBudget() float64 {
	return l.budget
}

// Model returns the cost model used to price events.
func (l *Ledger) Model() *cost.Model {
	return l.model
}

// Snapshot returns a copy of all events with current costs, ordered by
// start time then id.
func (l *Ledger) Snapshot() []models.Event {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return slices.Clone(l.events)
}

// Get returns a copy of one event.
func (l *Ledger) Get(id string) (models.Event, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	i := l.find(id)
	if i < 0 {
		return models.Event{}, ErrEventNotFound.Fmt(id)
	}

	return l.events[i], nil
}

func (l *Ledger) find(id string) int {
	return slices.IndexFunc(l.events, func(e models.Event) bool {
		return e.ID == id
	})
}

// Mutate applies fn to a private copy of the events and installs the result
// atomically. If fn or validation fails, the ledger is unchanged.
func (l *Ledger) Mutate(fn func(events []models.Event) ([]models.Event, error)) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	next, err := fn(slices.Clone(l.events))
	if err != nil {
		return err
	}

	return l.replace(next)
}

// Upsert inserts e or replaces the event with the same id.
func (l *Ledger) Upsert(e models.Event) error {
	return l.Mutate(func(events []models.Event) ([]models.Event, error) {
		i := slices.IndexFunc(events, func(o models.Event) bool {
			return o.ID == e.ID
		})

		if i < 0 {
			return append(events, e), nil
		}

		events[i] = e

		return events, nil
	})
}

// Delete removes the event with the given id.
func (l *Ledger) Delete(id string) error {
	return l.Mutate(func(events []models.Event) ([]models.Event, error) {
		i := slices.IndexFunc(events, func(o models.Event) bool {
			return o.ID == id
		})

		if i < 0 {
			return nil, ErrEventNotFound.Fmt(id)
		}

		return slices.Delete(events, i, i+1), nil
	})
}

func (l *Ledger) update(id string, fn func(e *models.Event)) (models.Event, error) {
	var updated models.Event

	err := l.Mutate(func(events []models.Event) ([]models.Event, error) {
		i := slices.IndexFunc(events, func(o models.Event) bool {
			return o.ID == id
		})

		if i < 0 {
			return nil, ErrEventNotFound.Fmt(id)
		}

		fn(&events[i])
		updated = events[i]

		return events, nil
	})

	return updated, err
}

// Complete marks an event done at the given time. Finishing before the
// scheduled end prorates its cost to the elapsed fraction.
func (l *Ledger) Complete(id string, at time.Time) (models.Event, error) {
	return l.update(id, func(e *models.Event) {
		e.IsCompleted = true
		e.ProratedCost = nil

		if at.Before(e.EndTime) {
			p := Prorate(e, at)
			e.ProratedCost = &p
		}
	})
}

// RecordActual stores a reconciled session cost for an event.
func (l *Ledger) RecordActual(id string, actual float64) (models.Event, error) {
	return l.update(id, func(e *models.Event) {
		e.ActualCost = &actual
	})
}

// Budget computes the budget state as of the given time.
func (l *Ledger) Budget(asOf time.Time) models.Budget {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return Compute(l.events, asOf, l.budget)
}
