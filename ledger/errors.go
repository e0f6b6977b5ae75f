package ledger

import "github.com/ayoisaiah/cogload/internal/apperr"

var (
	ErrEventNotFound = &apperr.Error{
		Message: "event %s not found",
	}

	ErrDuplicateEvent = &apperr.Error{
		Message: "event %s appears more than once",
	}
)
