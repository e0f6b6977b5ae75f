package session

import "github.com/ayoisaiah/cogload/internal/apperr"

var (
	ErrSessionActive = &apperr.Error{
		Message: "a session (%s) is already active for %s: end it before starting another",
	}

	ErrNoActiveSession = &apperr.Error{
		Message: "no active session for %s",
	}

	errHookParse = &apperr.Error{
		Message: "unable to parse session.cmd option",
	}
)
