package calendar

import (
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/oklog/ulid/v2"
	"gopkg.in/yaml.v3"

	"github.com/ayoisaiah/cogload/internal/models"
	"github.com/ayoisaiah/cogload/internal/timeutil"
)

// File is the YAML event file layout.
type File struct {
	Events []Entry `yaml:"events"`
}

// Entry is one event in a YAML file. Either Start or Day+At places it;
// Day+At is relative to the ISO week of Options.Now. Either End or Duration
// sets its length.
type Entry struct {
	Participants       *int          `yaml:"participants"`
	HasAgenda          *bool         `yaml:"has_agenda"`
	RequiresToolSwitch *bool         `yaml:"requires_tool_switch"`
	ID                 string        `yaml:"id"`
	Title              string        `yaml:"title"`
	Description        string        `yaml:"description"`
	Type               string        `yaml:"type"`
	Flexibility        string        `yaml:"flexibility"`
	Start              string        `yaml:"start"`
	End                string        `yaml:"end"`
	Day                string        `yaml:"day"`
	At                 string        `yaml:"at"`
	Duration           time.Duration `yaml:"duration"`
	Completed          bool          `yaml:"completed"`
}

var weekdays = map[string]int{
	"monday":    0,
	"tuesday":   1,
	"wednesday": 2,
	"thursday":  3,
	"friday":    4,
	"saturday":  5,
	"sunday":    6,
}

// ParseYAML reads a YAML event file. Entries that cannot be placed in time
// are skipped with a warning; a malformed document is an error.
func ParseYAML(r io.Reader, source string, opts Options) ([]models.Event, error) {
	body, err := readAll(r)
	if err != nil {
		return nil, errParseYAML.Wrap(err)
	}

	var f File

	if err := yaml.Unmarshal(body, &f); err != nil {
		return nil, errParseYAML.Wrap(err)
	}

	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	week := timeutil.WeekStart(now.In(opts.location()))

	events := make([]models.Event, 0, len(f.Events))

	for i := range f.Events {
		e, err := f.Events[i].event(week, opts.location())
		if err != nil {
			slog.Warn("skipping event entry", "source", source, "error", err)
			continue
		}

		if !opts.inWindow(e.StartTime, e.EndTime) {
			continue
		}

		events = append(events, e)
	}

	return finish(events, source, now), nil
}

func (en *Entry) event(week time.Time, loc *time.Location) (models.Event, error) {
	e := models.Event{
		ID:                 en.ID,
		Title:              en.Title,
		Description:        en.Description,
		Participants:       en.Participants,
		HasAgenda:          en.HasAgenda,
		RequiresToolSwitch: en.RequiresToolSwitch,
		IsCompleted:        en.Completed,
	}

	if e.ID == "" {
		e.ID = ulid.Make().String()
	}

	var err error

	if e.Type, err = models.ParseEventType(en.Type); err != nil {
		return e, err
	}

	if e.Flexibility, err = models.ParseFlexibility(en.Flexibility); err != nil {
		return e, err
	}

	if e.StartTime, err = en.start(week, loc); err != nil {
		return e, err
	}

	switch {
	case en.End != "":
		e.EndTime, err = parseTime(en.End, e.StartTime, loc)
		if err != nil {
			return e, errBadTime.Fmt(en.Title, "end", en.End)
		}
	case en.Duration > 0:
		e.EndTime = e.StartTime.Add(en.Duration)
	default:
		return e, errMissingEnd.Fmt(en.Title)
	}

	return e, nil
}

func (en *Entry) start(week time.Time, loc *time.Location) (time.Time, error) {
	if en.Start != "" {
		t, err := dateparse.ParseIn(en.Start, loc)
		if err != nil {
			return t, errBadTime.Fmt(en.Title, "start", en.Start)
		}

		return t, nil
	}

	offset, ok := weekdays[strings.ToLower(strings.TrimSpace(en.Day))]
	if !ok {
		return time.Time{}, errBadTime.Fmt(en.Title, "start", en.Day)
	}

	clock, err := time.Parse("15:04", strings.TrimSpace(en.At))
	if err != nil {
		return time.Time{}, errBadTime.Fmt(en.Title, "start", en.At)
	}

	day := week.AddDate(0, 0, offset)

	return time.Date(
		day.Year(), day.Month(), day.Day(),
		clock.Hour(), clock.Minute(), 0, 0,
		loc,
	), nil
}

// parseTime accepts a full timestamp or a bare HH:MM on the start's date.
func parseTime(s string, start time.Time, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)

	if clock, err := time.Parse("15:04", s); err == nil {
		return time.Date(
			start.Year(), start.Month(), start.Day(),
			clock.Hour(), clock.Minute(), 0, 0,
			loc,
		), nil
	}

	return dateparse.ParseIn(s, loc)
}
