// Package session manages live vitals monitoring sessions and reconciles
// the readings collected during one into an actual event cost.
package session

import (
	"log/slog"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/ayoisaiah/cogload/internal/models"
	"github.com/ayoisaiah/cogload/vitals"
)

// Store persists sessions. ActiveSession returns nil and no error when the
// user has no active session.
type Store interface {
	ActiveSession(userID string) (*models.Session, error)
	SaveActiveSession(s *models.Session) error
	CompleteSession(s *models.Session) error
}

// Manager enforces one active session per user.
type Manager struct {
	store       Store
	scorer      *vitals.Scorer
	baseline    *vitals.Baseline
	aggregation string
	mu          sync.Mutex
}

// Option configures a Manager.
type Option func(*Manager)

// WithBaseline scores readings against a personal baseline.
func WithBaseline(b *vitals.Baseline) Option {
	return func(m *Manager) {
		m.baseline = b
	}
}

// WithAggregation picks how deltas are combined at the end of a session.
func WithAggregation(method string) Option {
	return func(m *Manager) {
		m.aggregation = method
	}
}

// NewManager returns a session manager.
func NewManager(store Store, scorer *vitals.Scorer, opts ...Option) *Manager {
	m := &Manager{
		store:       store,
		scorer:      scorer,
		aggregation: vitals.Median,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Start opens a session for userID, optionally linked to an event whose
// current cost is estimated. It fails if one is already active.
func (m *Manager) Start(
	userID, eventID string,
	estimated float64,
	at time.Time,
) (*models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	active, err := m.store.ActiveSession(userID)
	if err != nil {
		return nil, err
	}

	if active != nil {
		return nil, ErrSessionActive.Fmt(active.ID, userID)
	}

	s := &models.Session{
		ID:            ulid.Make().String(),
		UserID:        userID,
		EventID:       eventID,
		StartTime:     at,
		EstimatedCost: estimated,
		Readings:      []models.Score{},
	}

	if err := m.store.SaveActiveSession(s); err != nil {
		return nil, err
	}

	slog.Info(
		"session started",
		slog.String("session_id", s.ID),
		slog.String("user", userID),
		slog.String("event_id", eventID),
		slog.Float64("estimated_cost", estimated),
	)

	return s, nil
}

// Active returns the user's active session.
func (m *Manager) Active(userID string) (*models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.active(userID)
}

func (m *Manager) active(userID string) (*models.Session, error) {
	s, err := m.store.ActiveSession(userID)
	if err != nil {
		return nil, err
	}

	if s == nil {
		return nil, ErrNoActiveSession.Fmt(userID)
	}

	return s, nil
}

// Record scores readings in arrival order and appends them to the user's
// active session. Malformed readings are counted as skipped and logged; the
// first such error is returned after the valid readings are saved, so
// callers may treat it as a warning.
func (m *Manager) Record(
	userID string,
	readings ...vitals.Reading,
) ([]models.Score, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.active(userID)
	if err != nil {
		return nil, err
	}

	var (
		scores  []models.Score
		skipErr error
	)

	for i := range readings {
		score, err := m.scorer.Score(&readings[i], m.baseline)
		if err != nil {
			s.Skipped++

			slog.Warn(
				"skipping reading",
				slog.String("session_id", s.ID),
				slog.Any("error", err),
			)

			if skipErr == nil {
				skipErr = err
			}

			continue
		}

		s.Readings = append(s.Readings, score)
		scores = append(scores, score)
	}

	if err := m.store.SaveActiveSession(s); err != nil {
		return nil, err
	}

	return scores, skipErr
}

// End finalises the user's active session and sets its actual cost.
func (m *Manager) End(userID string, at time.Time) (*models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.active(userID)
	if err != nil {
		return nil, err
	}

	actual, err := ReconcileWith(s, m.aggregation)
	if err != nil {
		return nil, err
	}

	s.EndTime = at
	s.ActualCost = &actual

	if err := m.store.CompleteSession(s); err != nil {
		return nil, err
	}

	slog.Info(
		"session ended",
		slog.String("session_id", s.ID),
		slog.Int("readings", len(s.Readings)),
		slog.Int("skipped", s.Skipped),
		slog.Float64("actual_cost", actual),
	)

	return s, nil
}

// Reconcile returns the estimated cost plus the median reading delta. A
// session without readings keeps its estimate.
func Reconcile(s *models.Session) float64 {
	actual, _ := ReconcileWith(s, vitals.Median)

	return actual
}

// ReconcileWith is Reconcile with a chosen aggregation method.
func ReconcileWith(s *models.Session, method string) (float64, error) {
	if len(s.Readings) == 0 {
		return s.EstimatedCost, nil
	}

	delta, err := vitals.Aggregate(s.Deltas(), method)
	if err != nil {
		return 0, err
	}

	return s.EstimatedCost + delta, nil
}
