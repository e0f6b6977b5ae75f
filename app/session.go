package app

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/cogload/internal/config"
	"github.com/ayoisaiah/cogload/internal/models"
	"github.com/ayoisaiah/cogload/internal/pathutil"
	"github.com/ayoisaiah/cogload/ledger"
	"github.com/ayoisaiah/cogload/monitor"
	"github.com/ayoisaiah/cogload/notify"
	"github.com/ayoisaiah/cogload/report"
	"github.com/ayoisaiah/cogload/session"
	"github.com/ayoisaiah/cogload/store"
	"github.com/ayoisaiah/cogload/vitals"
)

const stdinArg = "-"

// openReadings returns the named file, or stdin when the name is empty or
// "-".
func openReadings(name string) (io.ReadCloser, error) {
	if name == "" || name == stdinArg {
		return io.NopCloser(config.Stdin), nil
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, errOpenReadings.Wrap(err)
	}

	return f, nil
}

// readReadings parses one reading per non-blank line. Lines that do not
// parse are reported and counted.
func readReadings(r io.Reader) ([]vitals.Reading, int, error) {
	var (
		readings []vitals.Reading
		skipped  int
	)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}

		reading, err := vitals.ParseReading(line)
		if err != nil {
			skipped++

			slog.Warn("skipping reading", slog.Any("error", err))

			continue
		}

		readings = append(readings, reading)
	}

	return readings, skipped, scanner.Err()
}

// startSession opens a session for the configured user. A linked event's
// estimate is its modelled cost, whatever earlier sessions recorded.
func (r *runner) startSession(eventID string) (*models.Session, error) {
	var estimated float64

	if eventID != "" {
		l, err := r.load()
		if err != nil {
			return nil, err
		}

		e, err := l.Get(eventID)
		if err != nil {
			return nil, err
		}

		estimated = e.CalculatedCost
	}

	m, _, err := r.manager()
	if err != nil {
		return nil, err
	}

	return m.Start(r.cfg.Session.User, eventID, estimated, r.asOf())
}

func startSessionAction(ctx *cli.Context, r *runner) error {
	s, err := r.startSession(ctx.String("event"))
	if err != nil {
		return err
	}

	return r.print(s, func() {
		report.Session(r.out, s, r.cfg.Clock())
	})
}

func recordSessionAction(ctx *cli.Context, r *runner) error {
	src, err := openReadings(ctx.Args().First())
	if err != nil {
		return err
	}

	defer src.Close()

	readings, skipped, err := readReadings(src)
	if err != nil {
		return err
	}

	m, _, err := r.manager()
	if err != nil {
		return err
	}

	scores, err := m.Record(r.cfg.Session.User, readings...)
	if err != nil && !errors.Is(err, vitals.ErrMalformedReading) {
		return err
	}

	skipped += len(readings) - len(scores)

	return r.print(scores, func() {
		pterm.Success.WithWriter(r.out).Printfln(
			"Recorded %d readings",
			len(scores),
		)

		if skipped > 0 {
			pterm.Warning.WithWriter(r.out).Printfln(
				"Skipped %d malformed readings (see the log for details)",
				skipped,
			)
		}
	})
}

// endSession finalises the user's session, charges the reconciled cost to
// the linked event and folds the readings into the baseline.
func (r *runner) endSession(at time.Time) (*models.Session, error) {
	m, _, err := r.manager()
	if err != nil {
		return nil, err
	}

	s, err := m.End(r.cfg.Session.User, at)
	if err != nil {
		return nil, err
	}

	if s.EventID != "" && s.ActualCost != nil {
		_, err := r.mutate(func(l *ledger.Ledger) error {
			_, err := l.RecordActual(s.EventID, *s.ActualCost)
			return err
		})
		if err != nil {
			if !errors.Is(err, ledger.ErrEventNotFound) {
				return nil, err
			}

			slog.Warn(
				"session event no longer exists",
				slog.String("session_id", s.ID),
				slog.String("event_id", s.EventID),
			)
		}
	}

	profile, err := r.db.Profile(s.UserID)
	if err != nil {
		return nil, err
	}

	if !profile.Calibrated() {
		profile.Learn(s.Readings, at)

		if err := r.db.SaveProfile(profile); err != nil {
			return nil, err
		}
	}

	return s, nil
}

func endSessionAction(ctx *cli.Context, r *runner) error {
	s, err := r.endSession(r.asOf())
	if err != nil {
		return err
	}

	if err := session.RunHook(ctx.Context, r.cfg.Session.Cmd, s); err != nil {
		pterm.Error.Printfln("session command failed: %v", err)
	}

	return r.print(s, func() {
		report.Session(r.out, s, r.cfg.Clock())
	})
}

func sessionStatusAction(ctx *cli.Context, r *runner) error {
	s, err := r.db.ActiveSession(r.cfg.Session.User)
	if err != nil {
		return err
	}

	if s != nil {
		return r.print(s, func() {
			report.Session(r.out, s, r.cfg.Clock())
		})
	}

	week, err := r.week(ctx)
	if err != nil {
		return err
	}

	sessions, err := r.db.Sessions(week, week.AddDate(0, 0, 7))
	if err != nil {
		return err
	}

	return r.print(sessions, func() {
		pterm.Info.WithWriter(r.out).Printfln(
			"No active session for %s",
			r.cfg.Session.User,
		)

		report.Sessions(r.out, sessions, r.cfg.Clock())
	})
}

func monitorSessionAction(ctx *cli.Context, r *runner) error {
	name := ctx.Args().First()

	src, err := openReadings(name)
	if err != nil {
		return err
	}

	defer src.Close()

	m, baseline, err := r.manager()
	if err != nil {
		return err
	}

	// Keys cannot be read from a stdin that carries the readings.
	fromStdin := name == "" || name == stdinArg

	mon := monitor.New(monitor.Options{
		Manager:   m,
		Scorer:    vitals.NewScorer(r.cfg.Vitals.MaxCostDelta),
		Baseline:  baseline,
		Source:    src,
		UserID:    r.cfg.Session.User,
		Clock:     r.cfg.Clock(),
		ExitOnEnd: fromStdin,
	})

	var opts []tea.ProgramOption

	if fromStdin {
		opts = append(opts, tea.WithInput(nil))
	}

	if _, err := tea.NewProgram(mon, opts...).Run(); err != nil {
		return err
	}

	if err := mon.Err(); err != nil {
		return err
	}

	pterm.Success.WithWriter(r.out).Printfln(
		"Recorded %d readings. Run 'cogload session end' to reconcile",
		mon.Recorded(),
	)

	return nil
}

func baselineAction(ctx *cli.Context, r *runner) error {
	user := r.cfg.Session.User

	if ctx.Bool("reset") {
		if err := r.db.DeleteProfile(user); err != nil {
			return err
		}

		pterm.Success.WithWriter(r.out).Printfln("Baseline for %s reset", user)

		return nil
	}

	p, err := r.db.Profile(user)
	if err != nil {
		return err
	}

	return r.print(p, func() {
		report.Baseline(r.out, p)
	})
}

// checkBudget opens the store just long enough to read the events so the
// watch loop does not hold the database lock between ticks.
func checkBudget(cfg *config.Config, w *notify.Watcher) {
	db, err := store.NewClient(pathutil.DBFilePath())
	if err != nil {
		slog.Warn("watch: unable to open store", slog.Any("error", err))
		return
	}

	defer db.Close()

	l, err := newRunner(cfg, db, io.Discard).load()
	if err != nil {
		slog.Warn("watch: unable to load events", slog.Any("error", err))
		return
	}

	b := l.Budget(time.Now())

	if _, err := w.Check(&b); err != nil {
		slog.Warn("watch: unable to notify", slog.Any("error", err))
	}
}

func watchAction(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	if !cfg.Notifications.Enabled {
		return errNotificationsDisabled
	}

	w := notify.NewWatcher()

	sigCtx, stop := signal.NotifyContext(ctx.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	pterm.Info.Printfln(
		"Watching the budget on schedule %q. Press Ctrl-C to stop",
		cfg.Watch.Schedule,
	)

	checkBudget(cfg, w)

	return notify.Watch(sigCtx, cfg.Watch.Schedule, func() {
		checkBudget(cfg, w)
	})
}
