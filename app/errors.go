package app

import "github.com/ayoisaiah/cogload/internal/apperr"

var (
	errMissingFlag = &apperr.Error{
		Message: "--%s is required",
	}

	errMissingArg = &apperr.Error{
		Message: "missing %s: see cogload %s --help",
	}

	errEventSpan = &apperr.Error{
		Message: "provide either --end or --duration",
	}

	errInvalidTime = &apperr.Error{
		Message: "invalid --%s value",
	}

	errNeedsConfirmation = &apperr.Error{
		Message: "the event overlaps others: pass --yes to save it anyway",
	}

	errNotificationsDisabled = &apperr.Error{
		Message: "notifications are disabled: set notifications.enabled in the config file",
	}

	errOpenReadings = &apperr.Error{
		Message: "unable to open readings file",
	}
)
