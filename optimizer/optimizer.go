// Package optimizer rearranges the movable events of a week so that each
// day finishes as early as possible.
package optimizer

import (
	"bytes"
	"cmp"
	"crypto/sha256"
	"fmt"
	"maps"
	"math"
	"slices"
	"time"

	"github.com/maruel/natural"
	"github.com/oklog/ulid/v2"

	"github.com/ayoisaiah/cogload/cost"
	"github.com/ayoisaiah/cogload/internal/models"
	"github.com/ayoisaiah/cogload/internal/slot"
	"github.com/ayoisaiah/cogload/internal/timeutil"
	"github.com/ayoisaiah/cogload/ledger"
)

// Params bounds where the optimizer may place events.
type Params struct {
	WorkStart   int
	WorkEnd     int
	Days        int
	DailyBudget float64
}

// DefaultParams returns a Monday to Friday, 9 to 17 window.
func DefaultParams() Params {
	return Params{
		WorkStart:   9,
		WorkEnd:     17,
		Days:        5,
		DailyBudget: ledger.DefaultDailyBudget,
	}
}

// Optimizer computes proposals. It holds no state between runs.
type Optimizer struct {
	model  *cost.Model
	params Params
}

// New returns an optimizer that scores proposals with model.
func New(model *cost.Model, p Params) *Optimizer {
	return &Optimizer{
		model:  model,
		params: p,
	}
}

// Movable reports whether the optimizer may relocate e. Recovery events and
// meetings that still lack participants or an agenda stay where they are.
func Movable(e *models.Event) bool {
	return e.Flexibility == models.Movable &&
		e.Type != models.Recovery &&
		e.Enriched()
}

// InWeek returns the events starting in the week that begins at weekStart.
func InWeek(events []models.Event, weekStart time.Time) []models.Event {
	end := weekStart.AddDate(0, 0, timeutil.DaysInAWeek)

	var out []models.Event

	for i := range events {
		s := events[i].StartTime
		if !s.Before(weekStart) && s.Before(end) {
			out = append(out, events[i])
		}
	}

	return out
}

func rangeOf(e *models.Event) slot.Range {
	return slot.Range{Start: e.StartTime, End: e.EndTime}
}

// longestFirst orders events by duration, longest first, then by id. The
// order does not depend on where the events currently sit.
func longestFirst(a, b *models.Event) int {
	if c := cmp.Compare(b.Duration(), a.Duration()); c != 0 {
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
}

type placement struct {
	start time.Time
	day   string
	score float64
}

// place finds the day that lets e finish earliest.
func (o *Optimizer) place(
	e *models.Event,
	days []time.Time,
	occupied map[string][]slot.Range,
) (placement, bool) {
	var (
		best  placement
		found bool
	)

	d := e.Duration()

	for _, day := range days {
		key := timeutil.DayKey(day)

		start, ok := slot.EarliestFit(
			occupied[key],
			timeutil.AtHour(day, o.params.WorkStart),
			timeutil.AtHour(day, o.params.WorkEnd),
			d,
		)
		if !ok {
			continue
		}

		score := timeutil.HourOf(start.Add(d))

		if !found || score < best.score {
			best = placement{start: start, day: key, score: score}
			found = true
		}
	}

	return best, found
}

// assign places the movable events in order around the fixed ranges and
// the pinned events, which keep their current times. It returns the first
// event that does not fit, if any.
func (o *Optimizer) assign(
	movable []*models.Event,
	pinned map[string]bool,
	fixed map[string][]slot.Range,
	days []time.Time,
) (map[string]time.Time, *models.Event) {
	occupied := make(map[string][]slot.Range, len(fixed))

	for key, ranges := range fixed {
		occupied[key] = slices.Clone(ranges)
	}

	for _, e := range movable {
		if pinned[e.ID] {
			key := timeutil.DayKey(e.StartTime)
			occupied[key] = slot.Insert(occupied[key], rangeOf(e))
		}
	}

	starts := make(map[string]time.Time, len(movable))

	for _, e := range movable {
		if pinned[e.ID] {
			continue
		}

		best, ok := o.place(e, days, occupied)
		if !ok {
			return nil, e
		}

		occupied[best.day] = slot.Insert(
			occupied[best.day],
			slot.Range{Start: best.start, End: best.start.Add(e.Duration())},
		)
		starts[e.ID] = best.start
	}

	return starts, nil
}

// Propose computes an optimization proposal for the week containing
// weekStart. It does not modify events.
//
// An event that cannot be placed stays where it is and the week is laid out
// again around it, so placements never land on an unplaceable event.
func (o *Optimizer) Propose(
	events []models.Event,
	weekStart time.Time,
) (*models.Proposal, error) {
	weekStart = timeutil.WeekStart(weekStart)

	before := InWeek(events, weekStart)

	if err := o.model.Recompute(before); err != nil {
		return nil, err
	}

	days := make([]time.Time, o.params.Days)
	for i := range days {
		days[i] = weekStart.AddDate(0, 0, i)
	}

	fixed := make(map[string][]slot.Range)

	var movable []*models.Event

	for i := range before {
		e := &before[i]

		if Movable(e) {
			movable = append(movable, e)
			continue
		}

		key := timeutil.DayKey(e.StartTime)
		fixed[key] = append(fixed[key], rangeOf(e))
	}

	for key := range fixed {
		slot.Sort(fixed[key])
	}

	slices.SortStableFunc(movable, longestFirst)

	window := time.Duration(o.params.WorkEnd-o.params.WorkStart) * time.Hour
	pinned := make(map[string]bool)

	for _, e := range movable {
		if e.Duration() > window {
			pinned[e.ID] = true
		}
	}

	var starts map[string]time.Time

	for {
		var stuck *models.Event

		starts, stuck = o.assign(movable, pinned, fixed, days)
		if stuck == nil {
			break
		}

		pinned[stuck.ID] = true
	}

	after := slices.Clone(before)
	index := make(map[string]int, len(after))

	for i := range after {
		index[after[i].ID] = i
	}

	p := &models.Proposal{
		WeekStart:   weekStart,
		Changes:     []models.Change{},
		Unplaceable: []string{},
	}

	for _, e := range movable {
		if pinned[e.ID] {
			p.Unplaceable = append(p.Unplaceable, e.ID)
			continue
		}

		start := starts[e.ID]
		if start.Equal(e.StartTime) {
			continue
		}

		end := start.Add(e.Duration())

		moved := &after[index[e.ID]]
		moved.StartTime = start
		moved.EndTime = end

		p.Changes = append(p.Changes, models.Change{
			EventID:       e.ID,
			Title:         e.Title,
			OriginalStart: e.StartTime,
			OriginalEnd:   e.EndTime,
			NewStart:      start,
			NewEnd:        end,
		})
	}

	if err := o.model.Recompute(after); err != nil {
		return nil, err
	}

	o.summarize(p, before, after, days)

	p.Snapshot = make(map[string]string, len(before))
	for i := range before {
		p.Snapshot[before[i].ID] = before[i].Fingerprint()
	}

	id, err := proposalID(weekStart, p.Snapshot)
	if err != nil {
		return nil, err
	}

	p.ID = id

	return p, nil
}

func (o *Optimizer) summarize(
	p *models.Proposal,
	before, after []models.Event,
	days []time.Time,
) {
	beforeTotals := ledger.DayTotals(before)
	afterTotals := ledger.DayTotals(after)

	p.CurrentMaxDailyDebt = round2(
		ledger.MaxDailyDebt(beforeTotals, o.params.DailyBudget),
	)
	p.ProposedMaxDailyDebt = round2(
		ledger.MaxDailyDebt(afterTotals, o.params.DailyBudget),
	)
	p.TotalDebtReduction = round2(
		totalDebt(beforeTotals, o.params.DailyBudget) -
			totalDebt(afterTotals, o.params.DailyBudget),
	)

	p.Gaps = make([]models.DayGap, 0, len(days))

	for _, day := range days {
		from := timeutil.AtHour(day, o.params.WorkStart)

		p.Gaps = append(p.Gaps, models.DayGap{
			Day:    timeutil.DayKey(day),
			Before: slot.GapPenalty(dayRanges(before, day), from),
			After:  slot.GapPenalty(dayRanges(after, day), from),
		})
	}
}

// DayGapPenalty returns the idle gap penalty of one day of events.
func (o *Optimizer) DayGapPenalty(events []models.Event, day time.Time) int {
	return slot.GapPenalty(
		dayRanges(events, day),
		timeutil.AtHour(day, o.params.WorkStart),
	)
}

func dayRanges(events []models.Event, day time.Time) []slot.Range {
	var ranges []slot.Range

	for i := range events {
		if timeutil.SameDay(events[i].StartTime, day) {
			ranges = append(ranges, rangeOf(&events[i]))
		}
	}

	slot.Sort(ranges)

	return ranges
}

// totalDebt sums daily debts in date order so the result is reproducible.
func totalDebt(totals map[string]float64, budget float64) float64 {
	var sum float64

	for _, key := range slices.Sorted(maps.Keys(totals)) {
		sum += ledger.Debt(totals[key], budget)
	}

	return sum
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// proposalID derives a stable id from the week and the event versions the
// proposal was computed from.
func proposalID(weekStart time.Time, snapshot map[string]string) (string, error) {
	h := sha256.New()

	for _, id := range slices.Sorted(maps.Keys(snapshot)) {
		fmt.Fprintf(h, "%s=%s\n", id, snapshot[id])
	}

	id, err := ulid.New(
		ulid.Timestamp(weekStart),
		bytes.NewReader(h.Sum(nil)),
	)
	if err != nil {
		return "", err
	}

	return id.String(), nil
}
