package app

import (
	"bytes"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/cogload/cost"
	"github.com/ayoisaiah/cogload/internal/config"
	"github.com/ayoisaiah/cogload/internal/models"
	"github.com/ayoisaiah/cogload/ledger"
	"github.com/ayoisaiah/cogload/optimizer"
	"github.com/ayoisaiah/cogload/store"
	"github.com/ayoisaiah/cogload/vitals"
)

var monday = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func at(day, hour, minute int) time.Time {
	return monday.AddDate(0, 0, day).
		Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

func testConfig() *config.Config {
	return &config.Config{
		Budget:   config.BudgetConfig{Daily: ledger.DefaultDailyBudget},
		Schedule: config.ScheduleConfig{WorkStart: 9, WorkEnd: 17, Days: 5},
		Cost: config.CostConfig{
			AfternoonCutoff:    12,
			ProximityWindow:    30 * time.Minute,
			ProximityIncrement: 2,
		},
		Vitals: config.VitalsConfig{
			Aggregation:  vitals.Median,
			MaxCostDelta: vitals.DefaultMaxCostDelta,
			Personalize:  true,
		},
		Recovery: config.RecoveryConfig{MaxSlots: 4},
		Session:  config.SessionConfig{User: "sam"},
		Display:  config.DisplayConfig{TwentyFourHour: true},
		CLI:      config.CLIConfig{AsOf: at(0, 8, 0), JSON: true},
	}
}

func newTestRunner(t *testing.T) (*runner, *bytes.Buffer) {
	t.Helper()

	db, err := store.NewClient(filepath.Join(t.TempDir(), "cogload.db"))
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = db.Close()
	})

	var out bytes.Buffer

	return newRunner(testConfig(), db, &out), &out
}

func newContext(t *testing.T, flags []cli.Flag, args ...string) *cli.Context {
	t.Helper()

	set := flag.NewFlagSet("test", flag.ContinueOnError)

	for _, f := range flags {
		require.NoError(t, f.Apply(set))
	}

	require.NoError(t, set.Parse(args))

	return cli.NewContext(&cli.App{}, set, nil)
}

func seed(t *testing.T, r *runner, events ...models.Event) {
	t.Helper()

	_, err := r.mutate(func(l *ledger.Ledger) error {
		for _, e := range events {
			if err := l.Upsert(e); err != nil {
				return err
			}
		}

		return nil
	})
	require.NoError(t, err)
}

func TestCommandTree(t *testing.T) {
	a := Get()

	var names []string
	for _, c := range a.Commands {
		names = append(names, c.Name)
	}

	assert.Equal(t, []string{
		"import", "event", "score", "budget", "optimize", "apply",
		"recover", "session", "baseline", "watch", "edit-config",
	}, names)

	event := a.Command("event")
	require.NotNil(t, event)

	var subs []string
	for _, c := range event.Subcommands {
		subs = append(subs, c.Name)
	}

	assert.Equal(t, []string{
		"add", "list", "enrich", "flex", "move", "complete", "delete",
	}, subs)
}

var addFlags = []cli.Flag{
	titleFlag,
	descriptionFlag,
	startFlag,
	endFlag,
	durationFlag,
	typeFlag,
	participantsFlag,
	agendaFlag,
	toolSwitchFlag,
	flexibleFlag,
	yesFlag,
}

func TestEventFromFlags(t *testing.T) {
	r, _ := newTestRunner(t)

	ctx := newContext(t, addFlags,
		"-title", "Client sync",
		"-start", "2026-03-02 10:00",
		"-duration", "1h",
		"-participants", "4",
		"-agenda=false",
	)

	e, err := r.eventFromFlags(ctx)
	require.NoError(t, err)

	assert.NotEmpty(t, e.ID)
	assert.Equal(t, models.Meeting, e.Type, "type is guessed from the title")
	assert.Equal(t, 10, e.StartTime.Hour())
	assert.Equal(t, time.Hour, e.Duration())
	require.NotNil(t, e.Participants)
	assert.Equal(t, 4, *e.Participants)
	require.NotNil(t, e.HasAgenda)
	assert.False(t, *e.HasAgenda)
	assert.Nil(t, e.RequiresToolSwitch, "unset flags stay unknown")
	assert.Equal(t, models.FlexUnset, e.Flexibility)
	assert.Equal(t, manualSource, e.Source)
}

func TestEventFromFlagsErrors(t *testing.T) {
	r, _ := newTestRunner(t)

	cases := []struct {
		name string
		args []string
		want error
	}{
		{
			name: "missing title",
			args: []string{"-start", "2026-03-02 10:00", "-duration", "1h"},
			want: errMissingFlag,
		},
		{
			name: "missing start",
			args: []string{"-title", "Sync", "-duration", "1h"},
			want: errMissingFlag,
		},
		{
			name: "no end or duration",
			args: []string{"-title", "Sync", "-start", "2026-03-02 10:00"},
			want: errEventSpan,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := r.eventFromFlags(newContext(t, addFlags, tc.args...))
			assert.ErrorIs(t, err, tc.want)
		})
	}

	_, err := r.eventFromFlags(newContext(t, addFlags,
		"-title", "Sync",
		"-start", "2026-03-02 10:00",
		"-duration", "1h",
		"-type", "party",
	))
	assert.Error(t, err)

	var verr *cost.ValidationError

	_, err = r.eventFromFlags(newContext(t, addFlags,
		"-title", "Sync",
		"-start", "2026-03-02 10:00",
		"-end", "2026-03-02 09:00",
	))
	assert.True(t, errors.As(err, &verr), "got %v", err)
}

func TestMerge(t *testing.T) {
	prev := models.Event{
		ID:           "standup",
		StartTime:    at(0, 9, 0),
		EndTime:      at(0, 9, 15),
		Participants: ptr(6),
		HasAgenda:    ptr(true),
		Flexibility:  models.Unmovable,
		IsCompleted:  true,
		ProratedCost: ptr(1.5),
		ActualCost:   ptr(4.0),
	}

	t.Run("keeps local edits", func(t *testing.T) {
		next := models.Event{ID: "standup", Title: "Standup", StartTime: prev.StartTime, EndTime: prev.EndTime}

		got := merge(prev, next)

		assert.Equal(t, "Standup", got.Title)
		assert.Equal(t, models.Unmovable, got.Flexibility)
		assert.Equal(t, 6, *got.Participants)
		assert.True(t, got.IsCompleted)
		assert.InDelta(t, 1.5, *got.ProratedCost, 1e-9)
		assert.InDelta(t, 4.0, *got.ActualCost, 1e-9)
	})

	t.Run("calendar values win", func(t *testing.T) {
		next := models.Event{
			ID:           "standup",
			StartTime:    at(0, 10, 0),
			EndTime:      at(0, 10, 15),
			Participants: ptr(3),
			Flexibility:  models.Movable,
		}

		got := merge(prev, next)

		assert.Equal(t, 3, *got.Participants)
		assert.Equal(t, models.Movable, got.Flexibility)
		assert.Nil(t, got.ProratedCost, "proration does not survive a reschedule")
	})
}

func TestSaveAndExplain(t *testing.T) {
	r, out := newTestRunner(t)

	e := models.Event{
		ID:           "sync",
		Title:        "Client sync",
		Type:         models.Meeting,
		StartTime:    at(0, 10, 0),
		EndTime:      at(0, 11, 0),
		Participants: ptr(4),
		HasAgenda:    ptr(false),
	}

	require.NoError(t, r.saveAndExplain(e))

	var b models.CostBreakdown
	require.NoError(t, json.Unmarshal(out.Bytes(), &b))

	assert.Equal(t, "sync", b.EventID)
	assert.InDelta(t, 9.0, b.DurationComponent, 1e-9)
	assert.InDelta(t, 4.5, b.Participants, 1e-9)
	assert.InDelta(t, 4.0, b.NoAgenda, 1e-9)
	assert.InDelta(t, 17.5, b.Total, 1e-9)

	stored, err := r.db.GetEvent("sync")
	require.NoError(t, err)
	assert.InDelta(t, 17.5, stored.CalculatedCost, 1e-9)
}

func TestConfirmCollisions(t *testing.T) {
	r, out := newTestRunner(t)
	r.cfg.CLI.JSON = false

	e := models.Event{ID: "new", Title: "New", StartTime: at(0, 10, 0), EndTime: at(0, 11, 0)}
	other := models.Event{ID: "old", Title: "Old", StartTime: at(0, 10, 30), EndTime: at(0, 11, 30)}

	ok, err := r.confirmCollisions(newContext(t, []cli.Flag{yesFlag}), &e, nil)
	require.NoError(t, err)
	assert.True(t, ok, "nothing to confirm without collisions")

	ok, err = r.confirmCollisions(
		newContext(t, []cli.Flag{yesFlag}, "-yes"),
		&e,
		[]models.Event{other},
	)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Contains(t, out.String(), "Old")
}

// scenarioWeek has a fixed meeting from 10 to 11 each weekday and three
// movable deep work blocks late in the day.
func scenarioWeek() []models.Event {
	events := make([]models.Event, 0, 8)

	for day := range 5 {
		events = append(events, models.Event{
			ID:           fmt.Sprintf("m%d", day+1),
			Title:        "Team sync",
			Type:         models.Meeting,
			StartTime:    at(day, 10, 0),
			EndTime:      at(day, 11, 0),
			Participants: ptr(1),
			HasAgenda:    ptr(true),
			Flexibility:  models.Unmovable,
		})
	}

	block := func(id string, start time.Time) models.Event {
		return models.Event{
			ID:          id,
			Title:       "Deep work " + id,
			Type:        models.DeepWork,
			StartTime:   start,
			EndTime:     start.Add(90 * time.Minute),
			Flexibility: models.Movable,
		}
	}

	return append(events,
		block("d1", at(0, 14, 0)),
		block("d2", at(0, 15, 30)),
		block("d3", at(1, 15, 0)),
	)
}

func TestOptimizeAndApply(t *testing.T) {
	r, _ := newTestRunner(t)

	seed(t, r, scenarioWeek()...)

	l, err := r.load()
	require.NoError(t, err)

	p, err := optimizer.New(l.Model(), r.cfg.OptimizerParams()).Propose(l.Snapshot(), monday)
	require.NoError(t, err)
	require.Len(t, p.Changes, 3)
	require.NoError(t, r.db.SaveProposal(p))

	stored, applied, err := r.applyProposal(p.ID, []string{"d1"})
	require.NoError(t, err)
	assert.Equal(t, []string{"d1"}, applied)

	for _, c := range stored.Changes {
		assert.Equal(t, c.EventID == "d1", c.Applied, c.EventID)
	}

	d1, err := r.db.GetEvent("d1")
	require.NoError(t, err)
	assert.True(t, at(0, 11, 0).Equal(d1.StartTime), "d1 starts at %v", d1.StartTime)

	d2, err := r.db.GetEvent("d2")
	require.NoError(t, err)
	assert.True(t, at(0, 15, 30).Equal(d2.StartTime), "unselected changes are left alone")

	_, _, err = r.applyProposal(p.ID, []string{"d2"})

	var conflict *optimizer.ConflictError
	require.True(t, errors.As(err, &conflict), "got %v", err)
	assert.Equal(t, []string{"d1"}, conflict.Changed)
}

const readingsFile = `{"timestamp":"2026-03-02T10:00:00Z","pulse_rate":70,"breathing_rate":14}
{"timestamp":"2026-03-02T10:00:05Z","pulse_rate":110,"breathing_rate":22}

not json
{"timestamp":"2026-03-02T10:00:10Z","pulse_rate":-1,"breathing_rate":14}
`

func TestReadReadings(t *testing.T) {
	readings, skipped, err := readReadings(strings.NewReader(readingsFile))
	require.NoError(t, err)

	assert.Len(t, readings, 2)
	assert.Equal(t, 2, skipped)
}

func TestSessionChargesLinkedEvent(t *testing.T) {
	r, _ := newTestRunner(t)

	seed(t, r, models.Event{
		ID:           "review",
		Title:        "Design review",
		Type:         models.Meeting,
		StartTime:    at(0, 10, 0),
		EndTime:      at(0, 11, 0),
		Participants: ptr(1),
		HasAgenda:    ptr(true),
	})

	m, _, err := r.manager()
	require.NoError(t, err)

	s, err := m.Start("sam", "review", 9, at(0, 10, 0))
	require.NoError(t, err)

	readings, _, err := readReadings(strings.NewReader(readingsFile))
	require.NoError(t, err)

	_, err = m.Record("sam", readings...)
	require.NoError(t, err)

	ended, err := r.endSession(at(0, 11, 0))
	require.NoError(t, err)
	assert.Equal(t, s.ID, ended.ID)
	require.NotNil(t, ended.ActualCost)

	e, err := r.db.GetEvent("review")
	require.NoError(t, err)
	require.NotNil(t, e.ActualCost)
	assert.InDelta(t, *ended.ActualCost, *e.ActualCost, 1e-9)
	assert.InDelta(t, *ended.ActualCost, ledger.EffectiveCost(&e), 1e-9)

	profile, err := r.db.Profile("sam")
	require.NoError(t, err)
	assert.Equal(t, 1, profile.Sessions)
	assert.Equal(t, 2, profile.Pulse.Count)

	active, err := r.db.ActiveSession("sam")
	require.NoError(t, err)
	assert.Nil(t, active)
}

func TestRepeatSessionsEstimateFromModel(t *testing.T) {
	r, _ := newTestRunner(t)

	seed(t, r, models.Event{
		ID:           "review",
		Title:        "Design review",
		Type:         models.Meeting,
		StartTime:    at(0, 10, 0),
		EndTime:      at(0, 11, 0),
		Participants: ptr(1),
		HasAgenda:    ptr(true),
	})

	readings, _, err := readReadings(strings.NewReader(readingsFile))
	require.NoError(t, err)

	var actuals []float64

	for range 2 {
		s, err := r.startSession("review")
		require.NoError(t, err)
		assert.InDelta(t, 9.0, s.EstimatedCost, 1e-9, "estimate ignores earlier actual costs")

		m, _, err := r.manager()
		require.NoError(t, err)

		_, err = m.Record("sam", readings...)
		require.NoError(t, err)

		ended, err := r.endSession(at(0, 11, 0))
		require.NoError(t, err)
		require.NotNil(t, ended.ActualCost)

		actuals = append(actuals, *ended.ActualCost)
	}

	assert.InDelta(t, actuals[0], actuals[1], 1e-9, "deltas do not stack across sessions")

	e, err := r.db.GetEvent("review")
	require.NoError(t, err)
	assert.InDelta(t, actuals[1], *e.ActualCost, 1e-9)
}

func TestSessionWithDeletedEvent(t *testing.T) {
	r, _ := newTestRunner(t)

	m, _, err := r.manager()
	require.NoError(t, err)

	_, err = m.Start("sam", "gone", 5, at(0, 10, 0))
	require.NoError(t, err)

	ended, err := r.endSession(at(0, 10, 30))
	require.NoError(t, err)
	assert.InDelta(t, 5.0, *ended.ActualCost, 1e-9, "no readings keeps the estimate")
}
