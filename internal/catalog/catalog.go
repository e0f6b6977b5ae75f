// Package catalog holds the fixed set of recovery activities and the point
// values used to cost recovery events.
package catalog

import (
	"slices"

	"github.com/ayoisaiah/cogload/internal/models"
)

const (
	MicroBreak    = "micro_break"
	Walk          = "walk_30min"
	DeepWorkBlock = "deep_work_60min"
	Exercise      = "exercise"
	Nature        = "nature_2hr"
	FullDayOff    = "full_day_off"
)

// fullDayMinutes is the shortest recovery event treated as a day off.
const fullDayMinutes = 480

var activities = []models.RecoveryActivity{
	{
		Type:            MicroBreak,
		Name:            "Micro Break",
		PointValue:      -5,
		DurationMinutes: 10,
		Description:     "Step away from the screen.",
	},
	{
		Type:            Walk,
		Name:            "30 Min Walk",
		PointValue:      -10,
		DurationMinutes: 30,
		Description:     "Walk outside without your phone.",
	},
	{
		Type:            DeepWorkBlock,
		Name:            "Deep Work Block",
		PointValue:      -12,
		DurationMinutes: 60,
		Description:     "Uninterrupted single-task work.",
	},
	{
		Type:            Exercise,
		Name:            "Exercise Session",
		PointValue:      -15,
		DurationMinutes: 45,
		Description:     "Moderate exercise to reset.",
	},
	{
		Type:            Nature,
		Name:            "Nature Recharge",
		PointValue:      -20,
		DurationMinutes: 120,
		Description:     "Time outdoors, away from work.",
	},
}

var dayOff = models.RecoveryActivity{
	Type:            FullDayOff,
	Name:            "Full Day Off",
	PointValue:      -40,
	DurationMinutes: fullDayMinutes,
	Description:     "A whole day away from work.",
}

// Activities returns the schedulable catalog, shortest activity first. The
// returned slice is a copy.
func Activities() []models.RecoveryActivity {
	out := slices.Clone(activities)

	slices.SortStableFunc(out, func(a, b models.RecoveryActivity) int {
		return a.DurationMinutes - b.DurationMinutes
	})

	return out
}

// Lookup finds an activity by its type.
func Lookup(activityType string) (models.RecoveryActivity, bool) {
	if activityType == FullDayOff {
		return dayOff, true
	}

	for _, a := range activities {
		if a.Type == activityType {
			return a, true
		}
	}

	return models.RecoveryActivity{}, false
}

// Match picks the activity a recovery event of the given length counts as.
func Match(minutes float64) models.RecoveryActivity {
	var t string

	switch {
	case minutes >= fullDayMinutes:
		t = FullDayOff
	case minutes <= 15:
		t = MicroBreak
	case minutes <= 30:
		t = Walk
	case minutes <= 60:
		t = DeepWorkBlock
	case minutes <= 90:
		t = Exercise
	default:
		t = Nature
	}

	a, _ := Lookup(t)

	return a
}
