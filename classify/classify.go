// Package classify guesses an event's type from its title and description.
package classify

import (
	"regexp"
	"strings"

	"github.com/ayoisaiah/cogload/internal/models"
)

type rule struct {
	re  *regexp.Regexp
	typ models.EventType
}

// Keywords lists the words that select each type, in the order they are
// checked. A keyword matches at the start of a word, so "meetings" matches
// "meeting" but "interest" does not match "rest".
var Keywords = []struct {
	Type  models.EventType
	Words []string
}{
	{
		Type: models.Recovery,
		Words: []string{
			"break", "lunch", "walk", "exercise", "gym", "rest",
			"meditation", "yoga", "personal", "recovery", "relax", "nap",
		},
	},
	{
		Type: models.DeepWork,
		Words: []string{
			"focus", "deep work", "coding", "writing", "design", "research",
			"study", "development", "implementation", "concentrate", "solo",
		},
	},
	{
		Type: models.Admin,
		Words: []string{
			"email", "admin", "organize", "paperwork", "schedule", "planning",
			"review docs", "cleanup", "filing", "expense",
		},
	},
	{
		Type: models.Meeting,
		Words: []string{
			"meeting", "call", "sync", "standup", "1:1", "interview",
			"review", "discussion", "catchup", "chat", "team", "client",
		},
	},
}

var rules = compile()

func compile() []rule {
	out := make([]rule, 0, len(Keywords))

	for _, k := range Keywords {
		quoted := make([]string, len(k.Words))
		for i, w := range k.Words {
			quoted[i] = regexp.QuoteMeta(w)
		}

		out = append(out, rule{
			typ: k.Type,
			re:  regexp.MustCompile(`\b(?:` + strings.Join(quoted, "|") + `)`),
		})
	}

	return out
}

// Classify returns the first type whose keywords appear in the title or
// description. Unmatched events are treated as meetings.
func Classify(title, description string) models.EventType {
	text := strings.ToLower(title + " " + description)

	for _, r := range rules {
		if r.re.MatchString(text) {
			return r.typ
		}
	}

	return models.Meeting
}

// Fill classifies the event if its type is unknown.
func Fill(e *models.Event) {
	if e.Type == "" || e.Type == models.Unknown {
		e.Type = Classify(e.Title, e.Description)
	}
}
