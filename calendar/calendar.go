// Package calendar imports events from iCalendar and YAML files.
package calendar

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ayoisaiah/cogload/classify"
	"github.com/ayoisaiah/cogload/internal/models"
)

// Options controls how events are read.
type Options struct {
	// From and To bound recurrence expansion. Events that do not intersect
	// the window are dropped.
	From time.Time
	To   time.Time
	// Now anchors relative YAML entries ("day: tuesday") to its ISO week.
	Now      time.Time
	Location *time.Location
}

func (o *Options) location() *time.Location {
	if o.Location == nil {
		return time.Local
	}

	return o.Location
}

func (o *Options) inWindow(start, end time.Time) bool {
	if !o.From.IsZero() && !end.After(o.From) {
		return false
	}

	if !o.To.IsZero() && !start.Before(o.To) {
		return false
	}

	return true
}

// Load reads the file at path, choosing the format from its extension.
func Load(path string, opts Options) ([]models.Event, error) {
	var parse func(io.Reader, string, Options) ([]models.Event, error)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".ics", ".ical":
		parse = ParseICS
	case ".yml", ".yaml":
		parse = ParseYAML
	default:
		return nil, errUnsupportedFormat.Fmt(path)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return parse(bytes.NewReader(b), filepath.Base(path), opts)
}

// finish classifies events with no type and tags their source.
func finish(events []models.Event, source string, at time.Time) []models.Event {
	for i := range events {
		classify.Fill(&events[i])

		if events[i].Source == "" {
			events[i].Source = source
		}

		events[i].UpdatedAt = at
	}

	return events
}

func readAll(r io.Reader) ([]byte, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	return bytes.TrimSpace(b), nil
}
