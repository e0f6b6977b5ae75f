package app

import (
	"io"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/cogload/cost"
	"github.com/ayoisaiah/cogload/internal/config"
	"github.com/ayoisaiah/cogload/internal/models"
	"github.com/ayoisaiah/cogload/internal/timeutil"
	"github.com/ayoisaiah/cogload/ledger"
	"github.com/ayoisaiah/cogload/report"
	"github.com/ayoisaiah/cogload/session"
	"github.com/ayoisaiah/cogload/store"
	"github.com/ayoisaiah/cogload/vitals"
)

// runner carries what every action needs: settings, storage and somewhere
// to print.
type runner struct {
	cfg   *config.Config
	db    store.DB
	out   io.Writer
	model *cost.Model
}

func newRunner(cfg *config.Config, db store.DB, out io.Writer) *runner {
	return &runner{
		cfg:   cfg,
		db:    db,
		out:   out,
		model: cost.New(cfg.CostParams()),
	}
}

func (r *runner) asOf() time.Time {
	if r.cfg.CLI.AsOf.IsZero() {
		return time.Now()
	}

	return r.cfg.CLI.AsOf
}

// parseTime reads a date flag relative to the evaluation time. An empty
// flag yields the evaluation time.
func (r *runner) parseTime(ctx *cli.Context, name string) (time.Time, error) {
	t, err := timeutil.FromStr(ctx.String(name), r.asOf())
	if err != nil {
		return time.Time{}, errInvalidTime.Fmt(name).Wrap(err)
	}

	return t, nil
}

// week returns the Monday of the week named by --week.
func (r *runner) week(ctx *cli.Context) (time.Time, error) {
	t, err := r.parseTime(ctx, "week")
	if err != nil {
		return time.Time{}, err
	}

	return timeutil.WeekStart(t), nil
}

func (r *runner) newLedger(events []models.Event) (*ledger.Ledger, error) {
	return ledger.New(r.model, r.cfg.Budget.Daily, events...)
}

// load returns a ledger over every stored event.
func (r *runner) load() (*ledger.Ledger, error) {
	events, err := r.db.Events()
	if err != nil {
		return nil, err
	}

	return r.newLedger(events)
}

// mutate runs fn against a ledger of the stored events and saves the
// result in the same transaction. Nothing is saved if fn fails.
func (r *runner) mutate(fn func(l *ledger.Ledger) error) (*ledger.Ledger, error) {
	var out *ledger.Ledger

	err := r.db.UpdateEvents(func(events []models.Event) ([]models.Event, error) {
		l, err := r.newLedger(events)
		if err != nil {
			return nil, err
		}

		if err := fn(l); err != nil {
			return nil, err
		}

		out = l

		return l.Snapshot(), nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// manager builds a session manager that scores against the user's
// baseline.
func (r *runner) manager() (*session.Manager, *vitals.Baseline, error) {
	profile, err := r.db.Profile(r.cfg.Session.User)
	if err != nil {
		return nil, nil, err
	}

	baseline := profile.Baseline(
		r.cfg.Vitals.BaselineOffset,
		r.cfg.Vitals.Personalize,
	)

	m := session.NewManager(
		r.db,
		vitals.NewScorer(r.cfg.Vitals.MaxCostDelta),
		session.WithBaseline(baseline),
		session.WithAggregation(r.cfg.Vitals.Aggregation),
	)

	return m, baseline, nil
}

// print writes v as JSON when --json is set and calls human otherwise.
func (r *runner) print(v any, human func()) error {
	if r.cfg.CLI.JSON {
		return report.JSON(r.out, v)
	}

	human()

	return nil
}
