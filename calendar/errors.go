package calendar

import "github.com/ayoisaiah/cogload/internal/apperr"

var (
	errUnsupportedFormat = &apperr.Error{
		Message: "unsupported calendar file %q: expected .ics, .yml or .yaml",
	}

	errParseICS = &apperr.Error{
		Message: "unable to parse calendar",
	}

	errParseYAML = &apperr.Error{
		Message: "unable to parse event file",
	}

	errBadTime = &apperr.Error{
		Message: "event %q: unable to parse %s time %q",
	}

	errMissingEnd = &apperr.Error{
		Message: "event %q: one of end or duration is required",
	}
)
