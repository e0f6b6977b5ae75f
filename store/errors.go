package store

import "github.com/ayoisaiah/cogload/internal/apperr"

var (
	errAlreadyRunning = &apperr.Error{
		Message: "is cogload already running? Only one instance can access the database at a time",
	}

	errProposalNotFound = &apperr.Error{
		Message: "proposal %s not found: run optimize to create one",
	}
)
