package recovery

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayoisaiah/cogload/cost"
	"github.com/ayoisaiah/cogload/internal/catalog"
	"github.com/ayoisaiah/cogload/internal/models"
)

var monday = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func ptr[T any](v T) *T {
	return &v
}

func at(day, hour int) time.Time {
	return monday.AddDate(0, 0, day).Add(time.Duration(hour) * time.Hour)
}

func meeting(id string, day, hour int) models.Event {
	return models.Event{
		ID:           id,
		Type:         models.Meeting,
		StartTime:    at(day, hour),
		EndTime:      at(day, hour+1),
		Participants: ptr(1),
		HasAgenda:    ptr(true),
	}
}

func costed(t *testing.T, events ...models.Event) []models.Event {
	t.Helper()

	require.NoError(t, cost.New(cost.DefaultParams()).Recompute(events))

	return events
}

func TestSuggestWithoutDebt(t *testing.T) {
	events := costed(t, meeting("a", 0, 9))

	got := New(DefaultParams()).Suggest(events, at(0, 14))

	assert.Nil(t, got)
}

func TestSuggestOverdrawnWeek(t *testing.T) {
	// 27 points spent on Monday by 2pm.
	events := costed(t,
		meeting("a", 0, 7),
		meeting("b", 0, 9),
		meeting("c", 0, 11),
		meeting("d", 1, 9),
	)

	got := New(DefaultParams()).Suggest(events, at(0, 14))

	require.Len(t, got, len(catalog.Activities()))

	for _, s := range got {
		require.Len(t, s.Slots, 4, s.Activity.Name)

		for i := 1; i < len(s.Slots); i++ {
			assert.True(t, s.Slots[i-1].Start.Before(s.Slots[i].Start))
		}

		for _, sl := range s.Slots {
			assert.False(t, sl.Start.Before(at(0, 14)), "slot before as-of")
			assert.Equal(t, s.Activity.Duration(), sl.End.Sub(sl.Start))
		}
	}

	micro := got[0]
	assert.Equal(t, catalog.MicroBreak, micro.Activity.Type)
	assert.Equal(t, at(0, 14), micro.Slots[0].Start)
	assert.Equal(t, models.PriorityHigh, micro.Slots[0].Priority)

	// Tuesday's meeting occupies 9 to 10.
	assert.Equal(t, at(1, 10), micro.Slots[1].Start)
	assert.Equal(t, models.PriorityNormal, micro.Slots[1].Priority)
	assert.Equal(t, at(2, 9), micro.Slots[2].Start)
	assert.Equal(t, at(3, 9), micro.Slots[3].Start)
}

func TestSuggestSkipsGapsTooShort(t *testing.T) {
	events := costed(t,
		meeting("a", 0, 7),
		meeting("b", 0, 9),
		meeting("c", 0, 11),
		// Leave only 15:00 to 16:00 free on Monday afternoon.
		meeting("d", 0, 14),
		meeting("e", 0, 16),
	)

	p := DefaultParams()
	p.Days = 1

	got := New(p).Suggest(events, at(0, 14))

	for _, s := range got {
		switch {
		case s.Activity.DurationMinutes <= 60:
			require.Len(t, s.Slots, 1, s.Activity.Name)
			assert.Equal(t, at(0, 15), s.Slots[0].Start)
		default:
			assert.Empty(t, s.Slots, s.Activity.Name)
		}
	}
}
