package store

import (
	"time"

	"github.com/ayoisaiah/cogload/internal/models"
	"github.com/ayoisaiah/cogload/vitals"
)

// DB is the database storage interface.
type DB interface {
	// Events returns every stored event ordered by start time then id.
	Events() ([]models.Event, error)
	// GetEvent returns a single event.
	GetEvent(id string) (models.Event, error)
	// UpdateEvents loads all events, passes them to fn and writes back the
	// result in the same transaction. Events missing from the result are
	// deleted.
	UpdateEvents(fn func(events []models.Event) ([]models.Event, error)) error
	// SaveProposal stores an optimization proposal under its id.
	SaveProposal(p *models.Proposal) error
	// GetProposal retrieves a stored proposal.
	GetProposal(id string) (*models.Proposal, error)
	// ApplyProposal runs fn on a stored proposal and the current events in
	// one transaction, persisting both if fn succeeds.
	ApplyProposal(
		id string,
		fn func(p *models.Proposal, events []models.Event) ([]models.Event, error),
	) (*models.Proposal, error)
	// ActiveSession returns the user's running session, or nil if none.
	ActiveSession(userID string) (*models.Session, error)
	// SaveActiveSession creates or overwrites the user's running session.
	SaveActiveSession(s *models.Session) error
	// CompleteSession moves a finished session out of the active bucket.
	CompleteSession(s *models.Session) error
	// Sessions returns the completed sessions that started in [from, to).
	Sessions(from, to time.Time) ([]models.Session, error)
	// Profile returns the stored baseline for userID, or a fresh one.
	Profile(userID string) (*vitals.Profile, error)
	// SaveProfile stores a baseline.
	SaveProfile(p *vitals.Profile) error
	// DeleteProfile removes a stored baseline.
	DeleteProfile(userID string) error
	// Close ends the database connection
	Close() error
}
