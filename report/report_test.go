package report

import (
	"bytes"
	"os"
	"testing"
	"time"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"

	"github.com/ayoisaiah/cogload/internal/catalog"
	"github.com/ayoisaiah/cogload/internal/models"
	"github.com/ayoisaiah/cogload/recovery"
	"github.com/ayoisaiah/cogload/vitals"
)

const clock = "15:04"

var monday = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func TestMain(m *testing.M) {
	pterm.DisableColor()
	pterm.DisableStyling()

	os.Exit(m.Run())
}

func ptr[T any](v T) *T {
	return &v
}

func TestEvents(t *testing.T) {
	var buf bytes.Buffer

	Events(&buf, []models.Event{
		{
			ID:             "standup",
			Title:          "Standup",
			Type:           models.Meeting,
			StartTime:      monday.Add(9 * time.Hour),
			EndTime:        monday.Add(9*time.Hour + 30*time.Minute),
			CalculatedCost: 4.5,
		},
		{
			ID:             "walk",
			Title:          "Walk",
			Type:           models.Recovery,
			StartTime:      monday.Add(12 * time.Hour),
			EndTime:        monday.Add(12*time.Hour + 30*time.Minute),
			CalculatedCost: -10,
			IsCompleted:    true,
		},
	}, clock)

	out := buf.String()

	assert.Contains(t, out, "standup")
	assert.Contains(t, out, "Mon Mar 02 09:00")
	assert.Contains(t, out, "needs details")
	assert.Contains(t, out, "-10.0")
	assert.Contains(t, out, "done")
}

func TestEventsEmpty(t *testing.T) {
	var buf bytes.Buffer

	Events(&buf, nil, clock)

	assert.Contains(t, buf.String(), noEventsMsg)
}

func TestBreakdown(t *testing.T) {
	var buf bytes.Buffer

	e := &models.Event{
		ID:           "sync",
		Title:        "Sync",
		Type:         models.Meeting,
		Participants: ptr(3),
		HasAgenda:    ptr(false),
	}

	Breakdown(&buf, e, &models.CostBreakdown{
		Base:              9,
		DurationComponent: 9,
		Participants:      3,
		NoAgenda:          4,
		Total:             16,
	})

	out := buf.String()

	assert.Contains(t, out, "Participants")
	assert.Contains(t, out, "No agenda")
	assert.NotContains(t, out, "Tool switch")
	assert.Contains(t, out, "16.0")
}

func TestBudget(t *testing.T) {
	var buf bytes.Buffer

	Budget(&buf, &models.Budget{
		AsOf:        monday.Add(15 * time.Hour),
		DailyBudget: 20,
		DailySpent:  24,
		DailyDebt:   4,
		WeeklyDebt:  4,
		Days: []models.DayBudget{
			{Date: monday, Scheduled: 24, Spent: 24, Debt: 4},
			{Date: monday.AddDate(0, 0, 1), Scheduled: 8},
		},
	})

	out := buf.String()

	assert.Contains(t, out, "Debt: 4.0")
	assert.Contains(t, out, "Mon 02")
	assert.Contains(t, out, "Tue 03")
}

func TestProposal(t *testing.T) {
	var buf bytes.Buffer

	Proposal(&buf, &models.Proposal{
		ID:        "p1",
		WeekStart: monday,
		Changes: []models.Change{{
			EventID:       "d1",
			Title:         "Deep work",
			OriginalStart: monday.Add(14 * time.Hour),
			NewStart:      monday.Add(11 * time.Hour),
		}},
		Unplaceable:         []string{"marathon"},
		Gaps:                []models.DayGap{{Day: "2026-03-02", Before: 6, After: 1}},
		CurrentMaxDailyDebt: 3.8,
		TotalDebtReduction:  3.8,
	}, clock)

	out := buf.String()

	assert.Contains(t, out, "Mon Mar 02 14:00")
	assert.Contains(t, out, "Mon Mar 02 11:00")
	assert.Contains(t, out, "marathon")
	assert.Contains(t, out, "cogload apply p1")
}

func TestRecovery(t *testing.T) {
	var buf bytes.Buffer

	Recovery(&buf, nil, clock)
	assert.Contains(t, buf.String(), "no recovery needed")

	buf.Reset()

	micro, _ := catalog.Lookup(catalog.MicroBreak)

	Recovery(&buf, []recovery.Suggestion{{
		Activity: micro,
		Slots: []models.TimeSlot{{
			Start:    monday.Add(14 * time.Hour),
			End:      monday.Add(14*time.Hour + 10*time.Minute),
			Priority: models.PriorityHigh,
		}},
	}}, clock)

	out := buf.String()

	assert.Contains(t, out, micro.Name)
	assert.Contains(t, out, "14:10")
	assert.Contains(t, out, models.PriorityHigh)
}

func TestSession(t *testing.T) {
	var buf bytes.Buffer

	Session(&buf, &models.Session{
		ID:         "s1",
		StartTime:  monday.Add(9 * time.Hour),
		EndTime:    monday.Add(10 * time.Hour),
		ActualCost: ptr(8.0),
		Skipped:    2,
		Readings: []models.Score{
			{Focus: 70, Stress: 30, HRV: 50},
			{Focus: 50, Stress: 50, HRV: 50},
		},
	}, clock)

	out := buf.String()

	assert.Contains(t, out, "ended 10:00")
	assert.Contains(t, out, "Actual cost: 8.0")
	assert.Contains(t, out, "Skipped: 2")
	assert.Contains(t, out, "Focus: avg 60, min 50")
}

func TestBaseline(t *testing.T) {
	var buf bytes.Buffer

	Baseline(&buf, vitals.NewProfile("sam"))

	out := buf.String()

	assert.Contains(t, out, "Calibration: 0.0%")
	assert.Contains(t, out, "population norms")
	assert.Contains(t, out, "12.0-16.0")
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer

	assert.NoError(t, JSON(&buf, map[string]int{"b": 2, "a": 1}))
	assert.Equal(t, "{\n  \"a\": 1,\n  \"b\": 2\n}\n", buf.String())
}
