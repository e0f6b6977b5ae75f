package ledger

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayoisaiah/cogload/cost"
	"github.com/ayoisaiah/cogload/internal/models"
)

var monday = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func ptr[T any](v T) *T {
	return &v
}

// meeting returns a one-participant meeting with an agenda, costing 0.15
// points per minute in the morning.
func meeting(id string, day, hour, minutes int) models.Event {
	start := monday.AddDate(0, 0, day).Add(time.Duration(hour) * time.Hour)

	return models.Event{
		ID:           id,
		Title:        id,
		Type:         models.Meeting,
		StartTime:    start,
		EndTime:      start.Add(time.Duration(minutes) * time.Minute),
		Participants: ptr(1),
		HasAgenda:    ptr(true),
	}
}

func newLedger(t *testing.T, events ...models.Event) *Ledger {
	t.Helper()

	l, err := New(cost.New(cost.DefaultParams()), DefaultDailyBudget, events...)
	require.NoError(t, err)

	return l
}

func TestEffectiveCostPrecedence(t *testing.T) {
	cases := []struct {
		name     string
		prorated *float64
		actual   *float64
		want     float64
	}{
		{name: "calculated", want: 10},
		{name: "actual over calculated", actual: ptr(12.0), want: 12},
		{name: "prorated over calculated", prorated: ptr(4.0), want: 4},
		{
			name:     "prorated over actual",
			prorated: ptr(4.0),
			actual:   ptr(12.0),
			want:     4,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := models.Event{
				CalculatedCost: 10,
				ActualCost:     tc.actual,
				ProratedCost:   tc.prorated,
			}

			assert.InDelta(t, tc.want, EffectiveCost(&e), 1e-9)
		})
	}
}

func TestBudgetSpentAndScheduled(t *testing.T) {
	l := newLedger(t,
		meeting("past", 0, 9, 60),    // 9 points, ended
		meeting("future", 0, 15, 60), // afternoon, 8.1 points, not started
	)

	b := l.Budget(monday.Add(12 * time.Hour))

	assert.InDelta(t, 9.0, b.DailySpent, 1e-9)
	assert.InDelta(t, 17.1, b.DailyScheduled, 1e-9)
	assert.InDelta(t, 11.0, b.DailyRemaining, 1e-9)
	assert.Zero(t, b.DailyDebt)
	assert.InDelta(t, 140.0, b.WeeklyBudget, 1e-9)
	assert.Len(t, b.Days, 7)
}

func TestWeeklyDebtIsSumOfDailyDebts(t *testing.T) {
	// Monday: three spread-out hours, 27 points, 7 over budget.
	// Tuesday: one hour, 9 points, under budget.
	l := newLedger(t,
		meeting("a", 0, 8, 60),
		meeting("b", 0, 10, 60),
		meeting("c", 0, 4, 60),
		meeting("d", 1, 9, 60),
	)

	b := l.Budget(monday.AddDate(0, 0, 6))

	assert.InDelta(t, 7.0, b.Days[0].Debt, 1e-9)
	assert.Zero(t, b.Days[1].Debt)
	assert.InDelta(t, 7.0, b.WeeklyDebt, 1e-9)
	assert.InDelta(t, 36.0, b.WeeklySpent, 1e-9)
}

func TestCompletedFutureEventIsSpent(t *testing.T) {
	l := newLedger(t, meeting("a", 0, 15, 60))

	_, err := l.Complete("a", monday.Add(15*time.Hour+30*time.Minute))
	require.NoError(t, err)

	b := l.Budget(monday.Add(15*time.Hour + 30*time.Minute))

	// 8.1 halved.
	assert.InDelta(t, 4.05, b.DailySpent, 1e-9)
}

func TestCompleteProration(t *testing.T) {
	cases := []struct {
		name string
		at   time.Time
		want *float64
	}{
		{
			name: "a quarter through",
			at:   monday.Add(9*time.Hour + 15*time.Minute),
			want: ptr(2.25),
		},
		{
			name: "before start clamps to zero",
			at:   monday.Add(8 * time.Hour),
			want: ptr(0.0),
		},
		{
			name: "after end is not prorated",
			at:   monday.Add(11 * time.Hour),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			l := newLedger(t, meeting("a", 0, 9, 60))

			e, err := l.Complete("a", tc.at)
			require.NoError(t, err)

			assert.True(t, e.IsCompleted)

			if tc.want == nil {
				assert.Nil(t, e.ProratedCost)
				return
			}

			require.NotNil(t, e.ProratedCost)
			assert.InDelta(t, *tc.want, *e.ProratedCost, 1e-9)
		})
	}
}

func TestRecordActualOverridesCalculated(t *testing.T) {
	l := newLedger(t, meeting("a", 0, 9, 60))

	_, err := l.RecordActual("a", 11)
	require.NoError(t, err)

	b := l.Budget(monday.Add(12 * time.Hour))
	assert.InDelta(t, 11.0, b.DailySpent, 1e-9)
}

func TestUpsertRecomputesNeighbours(t *testing.T) {
	l := newLedger(t, meeting("a", 0, 9, 60))

	require.NoError(t, l.Upsert(meeting("b", 0, 10, 60)))

	a, err := l.Get("a")
	require.NoError(t, err)

	assert.InDelta(t, 11.0, a.CalculatedCost, 1e-9)
}

func TestUpsertRejectsInvalidEvent(t *testing.T) {
	l := newLedger(t, meeting("a", 0, 9, 60))

	bad := meeting("b", 0, 10, 60)
	bad.EndTime = bad.StartTime

	var vErr *cost.ValidationError
	require.ErrorAs(t, l.Upsert(bad), &vErr)

	assert.Len(t, l.Snapshot(), 1)
}

func TestDeleteMissing(t *testing.T) {
	l := newLedger(t)

	err := l.Delete("nope")
	assert.True(t, errors.Is(err, ErrEventNotFound))
}

func TestMutateIsAllOrNothing(t *testing.T) {
	l := newLedger(t, meeting("a", 0, 9, 60))

	err := l.Mutate(func(events []models.Event) ([]models.Event, error) {
		events[0].Title = "changed"
		return nil, errors.New("boom")
	})
	require.Error(t, err)

	a, err := l.Get("a")
	require.NoError(t, err)
	assert.Equal(t, "a", a.Title)
}

func TestSnapshotOrder(t *testing.T) {
	l := newLedger(t,
		meeting("e10", 0, 9, 30),
		meeting("e9", 0, 9, 30),
		meeting("e1", 0, 8, 30),
	)

	var ids []string
	for _, e := range l.Snapshot() {
		ids = append(ids, e.ID)
	}

	assert.Equal(t, []string{"e1", "e9", "e10"}, ids)
}

func TestConcurrentReadsSeeConsistentSnapshots(t *testing.T) {
	l := newLedger(t, meeting("a", 0, 9, 60), meeting("x", 1, 9, 60))

	var wg sync.WaitGroup

	for i := range 20 {
		wg.Add(2)

		go func() {
			defer wg.Done()

			_ = l.Upsert(meeting("x", 1, 9+i%3, 60))
		}()

		go func() {
			defer wg.Done()

			b := l.Budget(monday.AddDate(0, 0, 6))
			assert.InDelta(t, 18.0, b.WeeklySpent, 1e-9)
		}()
	}

	wg.Wait()
}
