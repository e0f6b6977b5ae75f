package timeutil

import (
	"testing"
	"time"
)

func TestWeekStart(t *testing.T) {
	cases := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			name: "monday maps to itself",
			in:   time.Date(2026, 3, 2, 15, 4, 0, 0, time.UTC),
			want: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "wednesday",
			in:   time.Date(2026, 3, 4, 9, 0, 0, 0, time.UTC),
			want: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "sunday belongs to the previous monday",
			in:   time.Date(2026, 3, 8, 23, 0, 0, 0, time.UTC),
			want: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := WeekStart(tc.in)
			if !got.Equal(tc.want) {
				t.Errorf("WeekStart(%v) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestWeekRange(t *testing.T) {
	start, end := WeekRange(time.Date(2026, 3, 5, 12, 0, 0, 0, time.UTC))

	if end.Sub(start) != 7*24*time.Hour {
		t.Errorf("expected a seven day range, got %v", end.Sub(start))
	}
}

func TestHourOf(t *testing.T) {
	got := HourOf(time.Date(2026, 3, 2, 14, 30, 0, 0, time.UTC))
	if got != 14.5 {
		t.Errorf("HourOf(14:30) = %v, want 14.5", got)
	}
}

func TestAtHour(t *testing.T) {
	day := time.Date(2026, 3, 2, 18, 45, 0, 0, time.UTC)

	got := AtHour(day, 9)
	want := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	if !got.Equal(want) {
		t.Errorf("AtHour = %v, want %v", got, want)
	}
}

func TestSameDay(t *testing.T) {
	a := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	b := time.Date(2026, 3, 2, 23, 59, 0, 0, time.UTC)
	c := time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)

	if !SameDay(a, b) {
		t.Error("expected same day")
	}

	if SameDay(a, c) {
		t.Error("expected different days")
	}
}

func TestFromStrEmptyReturnsNow(t *testing.T) {
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	got, err := FromStr("  ", now)
	if err != nil {
		t.Fatal(err)
	}

	if !got.Equal(now) {
		t.Errorf("FromStr(\"\") = %v, want %v", got, now)
	}
}
