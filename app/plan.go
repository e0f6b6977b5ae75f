package app

import (
	"log/slog"

	"github.com/davecgh/go-spew/spew"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/cogload/internal/models"
	"github.com/ayoisaiah/cogload/optimizer"
	"github.com/ayoisaiah/cogload/recovery"
	"github.com/ayoisaiah/cogload/report"
)

func scoreAction(ctx *cli.Context, r *runner) error {
	id := ctx.Args().First()
	if id == "" {
		return errMissingArg.Fmt("event id", "score")
	}

	l, err := r.load()
	if err != nil {
		return err
	}

	return r.explain(l, id)
}

func budgetAction(_ *cli.Context, r *runner) error {
	l, err := r.load()
	if err != nil {
		return err
	}

	b := l.Budget(r.asOf())

	return r.print(b, func() {
		report.Budget(r.out, &b)
	})
}

func optimizeAction(ctx *cli.Context, r *runner) error {
	week, err := r.week(ctx)
	if err != nil {
		return err
	}

	l, err := r.load()
	if err != nil {
		return err
	}

	o := optimizer.New(l.Model(), r.cfg.OptimizerParams())

	p, err := o.Propose(l.Snapshot(), week)
	if err != nil {
		return err
	}

	slog.Debug(spew.Sdump(p))

	if !p.Empty() {
		if err := r.db.SaveProposal(p); err != nil {
			return err
		}
	}

	return r.print(p, func() {
		report.Proposal(r.out, p, r.cfg.Clock())
	})
}

// applyProposal applies a stored proposal to the stored events in one
// transaction and returns it with the applied changes marked.
func (r *runner) applyProposal(id string, only []string) (*models.Proposal, []string, error) {
	var applied []string

	p, err := r.db.ApplyProposal(
		id,
		func(p *models.Proposal, events []models.Event) ([]models.Event, error) {
			next, ids, err := optimizer.Apply(p, events, only)
			if err != nil {
				return nil, err
			}

			l, err := r.newLedger(next)
			if err != nil {
				return nil, err
			}

			optimizer.MarkApplied(p, ids)
			applied = ids

			return l.Snapshot(), nil
		},
	)
	if err != nil {
		return nil, nil, err
	}

	slog.Info(
		"proposal applied",
		slog.String("proposal_id", id),
		slog.Any("events", applied),
	)

	return p, applied, nil
}

func applyAction(ctx *cli.Context, r *runner) error {
	id := ctx.Args().First()
	if id == "" {
		return errMissingArg.Fmt("proposal id", "apply")
	}

	p, applied, err := r.applyProposal(id, ctx.StringSlice("only"))
	if err != nil {
		return err
	}

	return r.print(p, func() {
		pterm.Success.WithWriter(r.out).Printfln(
			"Applied %d of %d changes from proposal %s",
			len(applied),
			len(p.Changes),
			p.ID,
		)
	})
}

func recoverAction(_ *cli.Context, r *runner) error {
	l, err := r.load()
	if err != nil {
		return err
	}

	suggestions := recovery.New(r.cfg.RecoveryParams()).Suggest(
		l.Snapshot(),
		r.asOf(),
	)

	if suggestions == nil {
		suggestions = []recovery.Suggestion{}
	}

	return r.print(suggestions, func() {
		report.Recovery(r.out, suggestions, r.cfg.Clock())
	})
}
