package optimizer

import (
	"fmt"
	"slices"
	"strings"

	"github.com/ayoisaiah/cogload/internal/apperr"
	"github.com/ayoisaiah/cogload/internal/models"
)

var errUnknownChange = &apperr.Error{
	Message: "proposal %s has no change for event %s",
}

// ConflictError rejects a proposal whose events were edited, deleted or
// joined by new events after it was computed.
type ConflictError struct {
	ProposalID string
	Changed    []string
	Deleted    []string
	Added      []string
}

func (e *ConflictError) Error() string {
	var parts []string

	if len(e.Changed) > 0 {
		parts = append(parts, "changed: "+strings.Join(e.Changed, ", "))
	}

	if len(e.Deleted) > 0 {
		parts = append(parts, "deleted: "+strings.Join(e.Deleted, ", "))
	}

	if len(e.Added) > 0 {
		parts = append(parts, "added: "+strings.Join(e.Added, ", "))
	}

	return fmt.Sprintf(
		"proposal %s is stale (%s); run optimize again",
		e.ProposalID,
		strings.Join(parts, "; "),
	)
}

// Validate checks that the week still matches the snapshot the proposal
// was computed from.
func Validate(p *models.Proposal, current []models.Event) error {
	conflict := &ConflictError{ProposalID: p.ID}

	seen := make(map[string]bool, len(p.Snapshot))

	for _, e := range InWeek(current, p.WeekStart) {
		fp, ok := p.Snapshot[e.ID]
		if !ok {
			conflict.Added = append(conflict.Added, e.ID)
			continue
		}

		seen[e.ID] = true

		if fp != e.Fingerprint() {
			conflict.Changed = append(conflict.Changed, e.ID)
		}
	}

	for id := range p.Snapshot {
		if !seen[id] {
			// Moved out of the week or removed outright.
			i := slices.IndexFunc(current, func(e models.Event) bool {
				return e.ID == id
			})

			if i >= 0 {
				conflict.Changed = append(conflict.Changed, id)
			} else {
				conflict.Deleted = append(conflict.Deleted, id)
			}
		}
	}

	if len(conflict.Changed)+len(conflict.Deleted)+len(conflict.Added) == 0 {
		return nil
	}

	slices.Sort(conflict.Changed)
	slices.Sort(conflict.Deleted)
	slices.Sort(conflict.Added)

	return conflict
}

// Apply validates p against current and returns a copy of current with the
// proposal's changes applied, along with the ids that moved. When only is
// non-empty, just those changes are applied. Nothing is applied on error.
func Apply(
	p *models.Proposal,
	current []models.Event,
	only []string,
) ([]models.Event, []string, error) {
	if err := Validate(p, current); err != nil {
		return nil, nil, err
	}

	selected := make(map[string]bool, len(p.Changes))

	for _, c := range p.Changes {
		selected[c.EventID] = len(only) == 0
	}

	for _, id := range only {
		if _, ok := selected[id]; !ok {
			return nil, nil, errUnknownChange.Fmt(p.ID, id)
		}

		selected[id] = true
	}

	next := slices.Clone(current)

	var applied []string

	for _, c := range p.Changes {
		if !selected[c.EventID] {
			continue
		}

		i := slices.IndexFunc(next, func(e models.Event) bool {
			return e.ID == c.EventID
		})

		next[i].StartTime = c.NewStart
		next[i].EndTime = c.NewEnd

		applied = append(applied, c.EventID)
	}

	return next, applied, nil
}

// MarkApplied flags the changes in p whose ids are listed.
func MarkApplied(p *models.Proposal, ids []string) {
	for i := range p.Changes {
		if slices.Contains(ids, p.Changes[i].EventID) {
			p.Changes[i].Applied = true
		}
	}
}

// Collisions returns the events that overlap e, excluding e itself. Manual
// placements are checked with it before they are saved.
func Collisions(e *models.Event, events []models.Event) []models.Event {
	var out []models.Event

	for i := range events {
		o := &events[i]

		if o.ID != e.ID && e.Overlaps(o) {
			out = append(out, *o)
		}
	}

	return out
}
