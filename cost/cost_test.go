package cost

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayoisaiah/cogload/internal/models"
)

var monday = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func ptr[T any](v T) *T {
	return &v
}

func event(
	id string,
	typ models.EventType,
	startHour, startMin, minutes int,
) models.Event {
	start := monday.Add(
		time.Duration(startHour)*time.Hour + time.Duration(startMin)*time.Minute,
	)

	return models.Event{
		ID:        id,
		Title:     id,
		Type:      typ,
		StartTime: start,
		EndTime:   start.Add(time.Duration(minutes) * time.Minute),
	}
}

func meeting(id string, hour, minutes, participants int, agenda bool) models.Event {
	e := event(id, models.Meeting, hour, 0, minutes)
	e.Participants = ptr(participants)
	e.HasAgenda = ptr(agenda)

	return e
}

func TestScore(t *testing.T) {
	cases := []struct {
		name  string
		event models.Event
		want  float64
	}{
		{
			name:  "morning meeting",
			event: meeting("a", 9, 60, 1, true),
			want:  9.0,
		},
		{
			name:  "afternoon meeting",
			event: meeting("a", 14, 60, 1, true),
			want:  8.1,
		},
		{
			name:  "deep work",
			event: event("a", models.DeepWork, 9, 0, 120),
			want:  9.0,
		},
		{
			name:  "crowded meeting without agenda",
			event: meeting("a", 9, 30, 4, false),
			want:  13.0,
		},
		{
			name:  "unenriched meeting defaults to one participant with agenda",
			event: event("a", models.Meeting, 9, 0, 60),
			want:  9.0,
		},
		{
			name:  "participants below one are clamped",
			event: meeting("a", 9, 60, 0, true),
			want:  9.0,
		},
		{
			name:  "recovery uses the catalog value",
			event: event("a", models.Recovery, 15, 0, 30),
			want:  -10,
		},
		{
			name:  "unknown events pay duration only",
			event: event("a", models.Unknown, 9, 0, 40),
			want:  6.0,
		},
	}

	m := New(DefaultParams())

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b, err := m.Score(&tc.event, nil)
			require.NoError(t, err)

			assert.InDelta(t, tc.want, b.Total, 1e-9)
			assert.InDelta(t, b.Total, b.Sum(), 1e-9)
		})
	}
}

func TestScoreToolSwitch(t *testing.T) {
	e := meeting("a", 9, 60, 1, true)
	e.RequiresToolSwitch = ptr(true)

	b, err := New(DefaultParams()).Score(&e, nil)
	require.NoError(t, err)

	assert.InDelta(t, 3.0, b.ToolSwitch, 1e-9)
	assert.InDelta(t, 12.0, b.Total, 1e-9)
}

func TestScoreBreakdownTerms(t *testing.T) {
	e := meeting("a", 13, 60, 3, false)
	next := meeting("b", 14, 30, 1, true)

	b, err := New(DefaultParams()).Score(&e, []models.Event{e, next})
	require.NoError(t, err)

	assert.InDelta(t, 9.0, b.Base, 1e-9)
	assert.InDelta(t, 9.0, b.DurationComponent, 1e-9)
	assert.InDelta(t, 3.0, b.Participants, 1e-9)
	assert.InDelta(t, 4.0, b.NoAgenda, 1e-9)
	assert.InDelta(t, -0.9, b.AfternoonDiscount, 1e-9)
	assert.InDelta(t, 2.0, b.ProximityIncrement, 1e-9)
	assert.InDelta(t, 17.1, b.Total, 1e-9)
}

func TestProximity(t *testing.T) {
	e := meeting("e", 10, 60, 1, true)

	cases := []struct {
		name  string
		other models.Event
		want  float64
	}{
		{
			name:  "back to back after",
			other: meeting("o", 11, 30, 1, true),
			want:  2,
		},
		{
			name:  "ends exactly thirty minutes before",
			other: event("o", models.Meeting, 9, 0, 30),
			want:  2,
		},
		{
			name:  "long block ending fifteen minutes before",
			other: event("o", models.Meeting, 7, 0, 165),
			want:  2,
		},
		{
			name:  "long block ending forty minutes before",
			other: event("o", models.Meeting, 6, 0, 200),
			want:  0,
		},
		{
			name:  "starts forty minutes after",
			other: event("o", models.Meeting, 11, 40, 30),
			want:  0,
		},
		{
			name:  "overlapping",
			other: event("o", models.Meeting, 10, 30, 60),
			want:  2,
		},
		{
			name: "different day",
			other: func() models.Event {
				o := meeting("o", 11, 30, 1, true)
				o.StartTime = o.StartTime.AddDate(0, 0, 1)
				o.EndTime = o.EndTime.AddDate(0, 0, 1)

				return o
			}(),
			want: 0,
		},
	}

	m := New(DefaultParams())

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b, err := m.Score(&e, []models.Event{e, tc.other})
			require.NoError(t, err)

			assert.InDelta(t, tc.want, b.ProximityIncrement, 1e-9)
		})
	}
}

func TestRecoveryIgnoresProximityAndAfternoon(t *testing.T) {
	r := event("r", models.Recovery, 14, 0, 10)
	neighbour := meeting("m", 14, 60, 1, true)
	neighbour.StartTime = r.EndTime
	neighbour.EndTime = r.EndTime.Add(time.Hour)

	b, err := New(DefaultParams()).Score(&r, []models.Event{r, neighbour})
	require.NoError(t, err)

	assert.InDelta(t, -5.0, b.Total, 1e-9)
	assert.Zero(t, b.ProximityIncrement)
	assert.Zero(t, b.AfternoonDiscount)
}

func TestConfigurableCutoff(t *testing.T) {
	p := DefaultParams()
	p.AfternoonCutoff = 15

	e := meeting("a", 14, 60, 1, true)

	b, err := New(p).Score(&e, nil)
	require.NoError(t, err)

	assert.InDelta(t, 9.0, b.Total, 1e-9)
}

func TestValidation(t *testing.T) {
	e := event("bad", models.Meeting, 10, 0, 0)

	_, err := New(DefaultParams()).Score(&e, nil)

	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "end_time", vErr.Field)
	assert.Equal(t, "bad", vErr.EventID)
}

func TestRecompute(t *testing.T) {
	events := []models.Event{
		meeting("a", 9, 60, 1, true),
		meeting("b", 10, 60, 1, true),
	}

	require.NoError(t, New(DefaultParams()).Recompute(events))

	assert.InDelta(t, 11.0, events[0].CalculatedCost, 1e-9)
	assert.InDelta(t, 11.0, events[1].CalculatedCost, 1e-9)
}
