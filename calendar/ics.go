package calendar

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/teambition/rrule-go"

	"github.com/ayoisaiah/cogload/classify"
	"github.com/ayoisaiah/cogload/internal/models"
)

const (
	maxOccurrences = 500

	propFlexible   = "X-COGLOAD-FLEXIBLE"
	propToolSwitch = "X-COGLOAD-TOOL-SWITCH"
)

// vevent is the subset of a VEVENT needed to build events.
type vevent struct {
	start       time.Time
	end         time.Time
	recurrence  *time.Time
	toolSwitch  *bool
	uid         string
	summary     string
	description string
	rrule       string
	eventType   models.EventType
	exdates     []time.Time
	flex        models.Flexibility
	attendees   int
	allDay      bool
}

// ParseICS reads VEVENTs from an iCalendar stream. Recurring events are
// expanded inside the options window and overridden instances
// (RECURRENCE-ID) replace the occurrence they name. All-day events are only
// kept when they are recovery, since they otherwise occupy no working time.
func ParseICS(r io.Reader, source string, opts Options) ([]models.Event, error) {
	body, err := readAll(r)
	if err != nil {
		return nil, errParseICS.Wrap(err)
	}

	if len(body) == 0 {
		return nil, errParseICS.Wrap(errors.New("empty calendar"))
	}

	cal, err := ical.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		return nil, errParseICS.Wrap(err)
	}

	var (
		base      []vevent
		overrides = make(map[string][]vevent)
	)

	for _, comp := range cal.Events() {
		ev, err := parseVEvent(comp, opts.location())
		if err != nil {
			slog.Warn("skipping calendar entry", "source", source, "error", err)
			continue
		}

		if ev.recurrence != nil {
			overrides[ev.uid] = append(overrides[ev.uid], ev)
			continue
		}

		base = append(base, ev)
	}

	var events []models.Event

	for i := range base {
		for _, occ := range expand(&base[i], overrides[base[i].uid], opts) {
			e := occ.event()
			classify.Fill(&e)

			if occ.allDay && e.Type != models.Recovery {
				continue
			}

			events = append(events, e)
		}
	}

	slog.Info(
		"calendar parsed",
		"source", source,
		"entries", len(base),
		"events", len(events),
	)

	return finish(events, source, time.Now()), nil
}

func parseVEvent(ve *ical.VEvent, loc *time.Location) (vevent, error) {
	var out vevent

	p := ve.GetProperty(ical.ComponentPropertyUniqueId)
	if p == nil || p.Value == "" {
		return out, errors.New("missing UID")
	}

	out.uid = p.Value

	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
		out.summary = p.Value
	}

	if p := ve.GetProperty(ical.ComponentPropertyDescription); p != nil {
		out.description = p.Value
	}

	start, err := ve.GetStartAt()
	if err != nil {
		if start, err = ve.GetAllDayStartAt(); err != nil {
			return out, err
		}
	}

	if p := ve.GetProperty(ical.ComponentPropertyDtStart); p != nil {
		out.allDay = !strings.Contains(p.Value, "T")
	}

	end, err := ve.GetEndAt()
	if err != nil && out.allDay {
		end, err = ve.GetAllDayEndAt()
	}

	if err != nil {
		if !out.allDay {
			return out, errors.New("missing DTEND")
		}

		end = start.AddDate(0, 0, 1)
	}

	if out.allDay {
		start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, loc)
		end = time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, loc)
	}

	out.start, out.end = start, end

	if p := ve.GetProperty(ical.ComponentPropertyRrule); p != nil {
		out.rrule = p.Value
	}

	for _, p := range ve.GetProperties(ical.ComponentPropertyExdate) {
		for _, part := range strings.Split(p.Value, ",") {
			if t, err := parseICSTime(part, loc); err == nil {
				out.exdates = append(out.exdates, t)
			}
		}
	}

	if p := ve.GetProperty(ical.ComponentProperty("RECURRENCE-ID")); p != nil {
		if t, err := parseICSTime(p.Value, loc); err == nil {
			out.recurrence = &t
		}
	}

	if p := ve.GetProperty(ical.ComponentPropertyCategories); p != nil {
		for _, c := range strings.Split(p.Value, ",") {
			if t, err := models.ParseEventType(c); err == nil && t != models.Unknown {
				out.eventType = t
				break
			}
		}
	}

	if p := ve.GetProperty(ical.ComponentProperty(propFlexible)); p != nil {
		out.flex, _ = models.ParseFlexibility(p.Value)
	}

	if p := ve.GetProperty(ical.ComponentProperty(propToolSwitch)); p != nil {
		v := strings.EqualFold(strings.TrimSpace(p.Value), "true")
		out.toolSwitch = &v
	}

	out.attendees = len(ve.GetProperties(ical.ComponentPropertyAttendee))

	return out, nil
}

// expand returns the occurrences of ev inside the window, with overrides
// applied.
func expand(ev *vevent, overrides []vevent, opts Options) []vevent {
	if ev.rrule == "" {
		if !opts.inWindow(ev.start, ev.end) {
			return nil
		}

		return []vevent{*ev}
	}

	rule, err := rrule.StrToRRule(ev.rrule)
	if err != nil {
		slog.Warn("skipping recurrence", "uid", ev.uid, "rrule", ev.rrule, "error", err)
		return nil
	}

	rule.DTStart(ev.start)

	var set rrule.Set

	set.RRule(rule)

	for _, ex := range ev.exdates {
		set.ExDate(ex.In(ev.start.Location()))
	}

	from, to := opts.From, opts.To
	if from.IsZero() {
		from = ev.start
	}

	if to.IsZero() {
		to = from.AddDate(0, 0, 7)
	}

	times := set.Between(from.Add(-ev.end.Sub(ev.start)), to, true)
	if len(times) > maxOccurrences {
		slog.Warn("truncating recurrence", "uid", ev.uid, "cap", maxOccurrences)
		times = times[:maxOccurrences]
	}

	out := make([]vevent, 0, len(times))

	for _, start := range times {
		occ := *ev
		occ.start = start
		occ.end = start.Add(ev.end.Sub(ev.start))
		occ.recurrence = &start

		for i := range overrides {
			if overrides[i].recurrence.Equal(start) {
				o := overrides[i]
				o.recurrence = &start
				occ = o
				break
			}
		}

		if opts.inWindow(occ.start, occ.end) {
			out = append(out, occ)
		}
	}

	return out
}

func (v *vevent) id() string {
	if v.rrule == "" && v.recurrence == nil {
		return v.uid
	}

	return v.uid + "/" + v.recurrence.UTC().Format("20060102T150405Z")
}

func (v *vevent) event() models.Event {
	e := models.Event{
		ID:                 v.id(),
		Title:              v.summary,
		Description:        v.description,
		StartTime:          v.start,
		EndTime:            v.end,
		Type:               v.eventType,
		Flexibility:        v.flex,
		RequiresToolSwitch: v.toolSwitch,
	}

	if e.Type == "" {
		e.Type = models.Unknown
	}

	if v.attendees > 0 {
		n := v.attendees
		e.Participants = &n
	}

	return e
}

// parseICSTime handles the DATE and DATE-TIME forms used by EXDATE and
// RECURRENCE-ID values.
func parseICSTime(v string, loc *time.Location) (time.Time, error) {
	v = strings.TrimSpace(v)

	switch {
	case v == "":
		return time.Time{}, errors.New("empty time value")
	case strings.HasSuffix(v, "Z"):
		return time.Parse("20060102T150405Z", v)
	case strings.Contains(v, "T"):
		return time.ParseInLocation("20060102T150405", v, loc)
	}

	return time.ParseInLocation("20060102", v, loc)
}
