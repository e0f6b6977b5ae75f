// Package notify raises desktop alerts when the daily cognitive budget is
// overdrawn and runs the periodic check that drives them.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/gen2brain/beeep"
	"github.com/robfig/cron/v3"

	"github.com/ayoisaiah/cogload/internal/apperr"
	"github.com/ayoisaiah/cogload/internal/models"
	"github.com/ayoisaiah/cogload/internal/timeutil"
)

var errSchedule = &apperr.Error{
	Message: "invalid watch schedule %q",
}

const overdraftTitle = "Cognitive budget overdrawn"

// Sender delivers one notification. beeep.Notify satisfies it.
type Sender func(title, message, icon string) error

// Watcher remembers the last debt it alerted on so that a steady overdraft
// only notifies once per day.
type Watcher struct {
	send     Sender
	icon     string
	day      string
	lastDebt float64
	mu       sync.Mutex
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithSender replaces the desktop notifier.
func WithSender(s Sender) Option {
	return func(w *Watcher) {
		w.send = s
	}
}

// WithIcon sets the notification icon path.
func WithIcon(path string) Option {
	return func(w *Watcher) {
		w.icon = path
	}
}

// NewWatcher returns a watcher that notifies through beeep.
func NewWatcher(opts ...Option) *Watcher {
	w := &Watcher{
		send: beeep.Notify,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Check alerts when the daily debt in b has gone from zero to positive or
// grown since the previous check on the same day. It reports whether a
// notification was sent.
func (w *Watcher) Check(b *models.Budget) (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	day := timeutil.DayKey(b.AsOf)
	if day != w.day {
		w.day = day
		w.lastDebt = 0
	}

	prev := w.lastDebt
	w.lastDebt = b.DailyDebt

	if b.DailyDebt <= 0 || b.DailyDebt <= prev {
		return false, nil
	}

	msg := fmt.Sprintf(
		"Today's debt is %.1f points (%.1f spent of %.1f)",
		b.DailyDebt,
		b.DailySpent,
		b.DailyBudget,
	)

	slog.Info(
		"budget overdrawn",
		slog.String("day", day),
		slog.Float64("debt", b.DailyDebt),
		slog.Float64("previous_debt", prev),
	)

	if err := w.send(overdraftTitle, msg, w.icon); err != nil {
		return false, err
	}

	return true, nil
}

// Watch runs fn on the cron schedule until ctx is cancelled, then waits for
// a running fn to return.
func Watch(ctx context.Context, schedule string, fn func()) error {
	c := cron.New()

	if _, err := c.AddFunc(schedule, fn); err != nil {
		return errSchedule.Fmt(schedule).Wrap(err)
	}

	slog.Info("watch started", slog.String("schedule", schedule))

	c.Start()

	<-ctx.Done()

	<-c.Stop().Done()

	slog.Info("watch stopped")

	return nil
}
