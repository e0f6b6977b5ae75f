package app

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/cogload/calendar"
	"github.com/ayoisaiah/cogload/classify"
	"github.com/ayoisaiah/cogload/cost"
	"github.com/ayoisaiah/cogload/internal/models"
	"github.com/ayoisaiah/cogload/internal/pathutil"
	"github.com/ayoisaiah/cogload/internal/static"
	"github.com/ayoisaiah/cogload/internal/timeutil"
	"github.com/ayoisaiah/cogload/ledger"
	"github.com/ayoisaiah/cogload/optimizer"
	"github.com/ayoisaiah/cogload/report"
)

// importWeeks is how far past the selected week recurring events are
// expanded.
const importWeeks = 4

const manualSource = "manual"

func ptr[T any](v T) *T {
	return &v
}

// optionalBool returns a pointer to the flag value, or nil if it was not
// given.
func optionalBool(ctx *cli.Context, name string) *bool {
	if !ctx.IsSet(name) {
		return nil
	}

	return ptr(ctx.Bool(name))
}

func optionalInt(ctx *cli.Context, name string) *int {
	if !ctx.IsSet(name) {
		return nil
	}

	return ptr(ctx.Int(name))
}

// eventFromFlags builds a new event from the event add flags.
func (r *runner) eventFromFlags(ctx *cli.Context) (models.Event, error) {
	title := ctx.String("title")
	if title == "" {
		return models.Event{}, errMissingFlag.Fmt("title")
	}

	if ctx.String("start") == "" {
		return models.Event{}, errMissingFlag.Fmt("start")
	}

	start, err := r.parseTime(ctx, "start")
	if err != nil {
		return models.Event{}, err
	}

	var end time.Time

	switch {
	case ctx.String("end") != "":
		end, err = r.parseTime(ctx, "end")
		if err != nil {
			return models.Event{}, err
		}
	case ctx.Duration("duration") > 0:
		end = start.Add(ctx.Duration("duration"))
	default:
		return models.Event{}, errEventSpan
	}

	eventType, err := models.ParseEventType(ctx.String("type"))
	if err != nil {
		return models.Event{}, err
	}

	e := models.Event{
		ID:                 ulid.Make().String(),
		Title:              title,
		Description:        ctx.String("description"),
		Source:             manualSource,
		Type:               eventType,
		StartTime:          start,
		EndTime:            end,
		UpdatedAt:          time.Now(),
		Participants:       optionalInt(ctx, "participants"),
		HasAgenda:          optionalBool(ctx, "agenda"),
		RequiresToolSwitch: optionalBool(ctx, "tool-switch"),
		Flexibility:        models.FlexibilityFromBool(optionalBool(ctx, "flexible")),
	}

	classify.Fill(&e)

	if err := cost.Validate(&e); err != nil {
		return models.Event{}, err
	}

	return e, nil
}

// merge keeps what the user recorded locally about an event when the
// calendar it came from is imported again.
func merge(prev, next models.Event) models.Event {
	if next.Flexibility == models.FlexUnset {
		next.Flexibility = prev.Flexibility
	}

	if next.Participants == nil {
		next.Participants = prev.Participants
	}

	if next.HasAgenda == nil {
		next.HasAgenda = prev.HasAgenda
	}

	if next.RequiresToolSwitch == nil {
		next.RequiresToolSwitch = prev.RequiresToolSwitch
	}

	if next.ActualCost == nil {
		next.ActualCost = prev.ActualCost
	}

	if prev.IsCompleted {
		next.IsCompleted = true

		if next.StartTime.Equal(prev.StartTime) && next.EndTime.Equal(prev.EndTime) {
			next.ProratedCost = prev.ProratedCost
		}
	}

	return next
}

// upsertAll merges imported events into the ledger.
func upsertAll(l *ledger.Ledger, imported []models.Event) error {
	return l.Mutate(func(events []models.Event) ([]models.Event, error) {
		index := make(map[string]int, len(events))

		for i := range events {
			index[events[i].ID] = i
		}

		for _, e := range imported {
			if i, ok := index[e.ID]; ok {
				events[i] = merge(events[i], e)
				continue
			}

			index[e.ID] = len(events)
			events = append(events, e)
		}

		return events, nil
	})
}

func importAction(ctx *cli.Context, r *runner) error {
	path := ctx.Args().First()

	if ctx.Bool("sample") {
		path = filepath.Join(pathutil.DataDir(), static.SampleWeek)
	}

	if path == "" {
		return errMissingArg.Fmt("file", "import")
	}

	week, err := r.week(ctx)
	if err != nil {
		return err
	}

	imported, err := calendar.Load(path, calendar.Options{
		From:     week,
		To:       week.AddDate(0, 0, importWeeks*timeutil.DaysInAWeek),
		Now:      r.asOf(),
		Location: time.Local,
	})
	if err != nil {
		return err
	}

	l, err := r.mutate(func(l *ledger.Ledger) error {
		return upsertAll(l, imported)
	})
	if err != nil {
		return err
	}

	slog.Info(
		"events imported",
		slog.String("path", path),
		slog.Int("count", len(imported)),
	)

	snapshot := l.Snapshot()

	saved := make([]models.Event, 0, len(imported))

	for i := range imported {
		if e, err := l.Get(imported[i].ID); err == nil {
			saved = append(saved, e)
		}
	}

	return r.print(saved, func() {
		pterm.Success.WithWriter(r.out).Printfln(
			"Imported %d events from %s",
			len(saved),
			filepath.Base(path),
		)

		for i := range saved {
			e := &saved[i]

			if others := optimizer.Collisions(e, snapshot); len(others) > 0 {
				report.Collisions(r.out, e, others, r.cfg.Clock())
			}
		}
	})
}

func addEventAction(ctx *cli.Context, r *runner) error {
	e, err := r.eventFromFlags(ctx)
	if err != nil {
		return err
	}

	events, err := r.db.Events()
	if err != nil {
		return err
	}

	ok, err := r.confirmCollisions(ctx, &e, optimizer.Collisions(&e, events))
	if err != nil {
		return err
	}

	if !ok {
		pterm.Info.WithWriter(r.out).Println("Event not added")
		return nil
	}

	return r.saveAndExplain(e)
}

// saveAndExplain stores e and prints its cost breakdown.
func (r *runner) saveAndExplain(e models.Event) error {
	l, err := r.mutate(func(l *ledger.Ledger) error {
		return l.Upsert(e)
	})
	if err != nil {
		return err
	}

	return r.explain(l, e.ID)
}

func (r *runner) explain(l *ledger.Ledger, id string) error {
	e, err := l.Get(id)
	if err != nil {
		return err
	}

	b, err := l.Model().Score(&e, l.Snapshot())
	if err != nil {
		return err
	}

	return r.print(b, func() {
		report.Breakdown(r.out, &e, &b)
	})
}

func listEventsAction(ctx *cli.Context, r *runner) error {
	week, err := r.week(ctx)
	if err != nil {
		return err
	}

	l, err := r.load()
	if err != nil {
		return err
	}

	events := optimizer.InWeek(l.Snapshot(), week)

	return r.print(events, func() {
		report.Events(r.out, events, r.cfg.Clock())
	})
}

// update edits one stored event and prints its new cost.
func (r *runner) update(id string, fn func(e *models.Event) error) error {
	if id == "" {
		return errMissingArg.Fmt("event id", "event")
	}

	l, err := r.mutate(func(l *ledger.Ledger) error {
		e, err := l.Get(id)
		if err != nil {
			return err
		}

		if err := fn(&e); err != nil {
			return err
		}

		e.UpdatedAt = time.Now()

		return l.Upsert(e)
	})
	if err != nil {
		return err
	}

	return r.explain(l, id)
}

func enrichEventAction(ctx *cli.Context, r *runner) error {
	return r.update(ctx.Args().First(), func(e *models.Event) error {
		if v := optionalInt(ctx, "participants"); v != nil {
			e.Participants = v
		}

		if v := optionalBool(ctx, "agenda"); v != nil {
			e.HasAgenda = v
		}

		if v := optionalBool(ctx, "tool-switch"); v != nil {
			e.RequiresToolSwitch = v
		}

		return nil
	})
}

func flexEventAction(ctx *cli.Context, r *runner) error {
	if ctx.NArg() < 2 {
		return errMissingArg.Fmt("flexibility", "event flex")
	}

	flex, err := models.ParseFlexibility(ctx.Args().Get(1))
	if err != nil {
		return err
	}

	return r.update(ctx.Args().First(), func(e *models.Event) error {
		e.Flexibility = flex
		return nil
	})
}

func moveEventAction(ctx *cli.Context, r *runner) error {
	id := ctx.Args().First()
	if id == "" {
		return errMissingArg.Fmt("event id", "event move")
	}

	if ctx.String("start") == "" {
		return errMissingFlag.Fmt("start")
	}

	start, err := r.parseTime(ctx, "start")
	if err != nil {
		return err
	}

	e, err := r.db.GetEvent(id)
	if err != nil {
		return err
	}

	moved := e
	moved.StartTime = start
	moved.EndTime = start.Add(e.Duration())
	moved.UpdatedAt = time.Now()

	events, err := r.db.Events()
	if err != nil {
		return err
	}

	ok, err := r.confirmCollisions(ctx, &moved, optimizer.Collisions(&moved, events))
	if err != nil {
		return err
	}

	if !ok {
		pterm.Info.WithWriter(r.out).Println("Event not moved")
		return nil
	}

	slog.Info(
		"event moved",
		slog.String("event_id", id),
		slog.Time("from", e.StartTime),
		slog.Time("to", moved.StartTime),
	)

	return r.saveAndExplain(moved)
}

func completeEventAction(ctx *cli.Context, r *runner) error {
	id := ctx.Args().First()
	if id == "" {
		return errMissingArg.Fmt("event id", "event complete")
	}

	at, err := r.parseTime(ctx, "at")
	if err != nil {
		return err
	}

	var done models.Event

	_, err = r.mutate(func(l *ledger.Ledger) error {
		done, err = l.Complete(id, at)
		return err
	})
	if err != nil {
		return err
	}

	return r.print(done, func() {
		msg := fmt.Sprintf("%s completed", done.Title)

		if done.ProratedCost != nil {
			msg += fmt.Sprintf(
				" early: cost prorated to %.2f",
				*done.ProratedCost,
			)
		}

		pterm.Success.WithWriter(r.out).Println(msg)
	})
}

func deleteEventAction(ctx *cli.Context, r *runner) error {
	id := ctx.Args().First()
	if id == "" {
		return errMissingArg.Fmt("event id", "event delete")
	}

	e, err := r.db.GetEvent(id)
	if err != nil {
		return err
	}

	if !ctx.Bool("yes") && interactive() {
		report.Events(r.out, []models.Event{e}, r.cfg.Clock())

		ok, err := confirm("Delete this event permanently?")
		if err != nil || !ok {
			return err
		}
	}

	if _, err := r.mutate(func(l *ledger.Ledger) error {
		return l.Delete(id)
	}); err != nil {
		return err
	}

	pterm.Success.WithWriter(r.out).Printfln("Deleted %s", e.Title)

	return nil
}
