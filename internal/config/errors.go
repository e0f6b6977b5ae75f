package config

import "github.com/ayoisaiah/cogload/internal/apperr"

var (
	errConfigOption = &apperr.Error{
		Message: "config option error",
	}

	errConfigValidation = &apperr.Error{
		Message: "config validation error",
	}

	errReadConfig = &apperr.Error{
		Message: "reading config file failed",
	}

	errWriteConfig = &apperr.Error{
		Message: "writing default config failed",
	}

	errPrompt = &apperr.Error{
		Message: "user prompt failed",
	}

	errInvalidWorkHours = &apperr.Error{
		Message: "work hours must satisfy 0 <= start < end <= 24, got %d to %d",
	}

	errInvalidDays = &apperr.Error{
		Message: "schedule days must be between 1 and 7, got %d",
	}

	errInvalidBudget = &apperr.Error{
		Message: "daily budget must be greater than zero, got %v",
	}

	errInvalidCutoff = &apperr.Error{
		Message: "afternoon cutoff must be an hour between 0 and 23, got %d",
	}

	errInvalidWindow = &apperr.Error{
		Message: "proximity window cannot be negative, got %v",
	}

	errInvalidIncrement = &apperr.Error{
		Message: "proximity increment cannot be negative, got %v",
	}

	errInvalidAggregation = &apperr.Error{
		Message: "unknown aggregation method %q: use mean, median or p90",
	}

	errInvalidMaxDelta = &apperr.Error{
		Message: "max cost delta must be greater than zero, got %v",
	}

	errInvalidMaxSlots = &apperr.Error{
		Message: "recovery max slots must be at least 1, got %d",
	}

	errInvalidSchedule = &apperr.Error{
		Message: "invalid watch schedule %q",
	}

	errInvalidCLITime = &apperr.Error{
		Message: "invalid --%s value",
	}
)
