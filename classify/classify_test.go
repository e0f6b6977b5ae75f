package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ayoisaiah/cogload/internal/models"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		title       string
		description string
		want        models.EventType
	}{
		{"Lunch", "", models.Recovery},
		{"Gym session", "", models.Recovery},
		{"Deep work: parser", "", models.DeepWork},
		{"Coding block", "", models.DeepWork},
		{"Inbox", "Email triage", models.Admin},
		{"Quarterly planning", "", models.Admin},
		{"Weekly sync", "", models.Meeting},
		{"1:1 with Sam", "", models.Meeting},
		{"Client meetings", "", models.Meeting},
		{"Something else", "", models.Meeting},
		// Recovery is checked first.
		{"Walk and talk with the team", "", models.Recovery},
		// Keywords only match at the start of a word.
		{"Interest rate discussion", "", models.Meeting},
		{"Snapshot cleanup", "", models.Admin},
	}

	for _, tc := range cases {
		t.Run(tc.title, func(t *testing.T) {
			assert.Equal(t, tc.want, Classify(tc.title, tc.description))
		})
	}
}

func TestFill(t *testing.T) {
	e := models.Event{Title: "Yoga", Type: models.Unknown}
	Fill(&e)
	assert.Equal(t, models.Recovery, e.Type)

	e = models.Event{Title: "Yoga", Type: models.Admin}
	Fill(&e)
	assert.Equal(t, models.Admin, e.Type)
}
