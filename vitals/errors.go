package vitals

import "github.com/ayoisaiah/cogload/internal/apperr"

var (
	ErrMalformedReading = &apperr.Error{
		Message: "malformed reading: %s",
	}

	errUnknownAggregation = &apperr.Error{
		Message: "unknown aggregation method %q: use mean, median or p90",
	}
)
