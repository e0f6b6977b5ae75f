// Package monitor is the live terminal view of an active session. Readings
// are consumed one JSON object per line from a stream, recorded against the
// session and shown smoothed over a short window.
package monitor

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"log/slog"
	"slices"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/davecgh/go-spew/spew"

	"github.com/ayoisaiah/cogload/internal/models"
	"github.com/ayoisaiah/cogload/session"
	"github.com/ayoisaiah/cogload/vitals"
)

const maxLineSize = 1 << 20

type (
	readingMsg struct {
		line []byte
	}

	doneMsg struct {
		err error
	}
)

// Options configures a Monitor.
type Options struct {
	Manager  *session.Manager
	Scorer   *vitals.Scorer
	Baseline *vitals.Baseline
	Source   io.Reader
	UserID   string
	Clock    string

	// ExitOnEnd stops the program once Source is exhausted. Set it when
	// no key input is available to quit with.
	ExitOnEnd bool
}

// Monitor is a bubbletea model. Each raw reading goes through the session
// manager so reconciliation sees every delta; the display uses the buffered
// aggregate instead.
type Monitor struct {
	err       error
	warning   error
	manager   *session.Manager
	scorer    *vitals.Scorer
	baseline  *vitals.Baseline
	buffer    *vitals.Buffer
	scanner   *bufio.Scanner
	smoothed  *models.Score
	userID    string
	clock     string
	help      help.Model
	focus     progress.Model
	stress    progress.Model
	recorded  int
	skipped   int
	width     int
	paused    bool
	pending   bool
	done      bool
	exitOnEnd bool
}

// New returns a monitor reading from opts.Source.
func New(opts Options) *Monitor {
	scanner := bufio.NewScanner(opts.Source)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	scorer := opts.Scorer
	if scorer == nil {
		scorer = vitals.NewScorer(0)
	}

	clock := opts.Clock
	if clock == "" {
		clock = "15:04:05"
	}

	return &Monitor{
		manager:  opts.Manager,
		scorer:   scorer,
		baseline: opts.Baseline,
		buffer:   vitals.NewBuffer(vitals.DefaultWindow, vitals.DefaultMinStable),
		scanner:  scanner,
		userID:   opts.UserID,
		clock:    clock,
		help:     help.New(),
		focus:    progress.New(progress.WithGradient("#FF7CCB", "#5A56E0")),
		stress:   progress.New(progress.WithGradient("#A8E6CF", "#FF5F56")),

		exitOnEnd: opts.ExitOnEnd,
	}
}

// Err returns the error that stopped the monitor, if any.
func (m *Monitor) Err() error {
	return m.err
}

// Recorded returns the number of readings saved to the session.
func (m *Monitor) Recorded() int {
	return m.recorded
}

// Skipped returns the number of malformed readings.
func (m *Monitor) Skipped() int {
	return m.skipped
}

func (m *Monitor) Init() tea.Cmd {
	return m.next()
}

// next reads one line off the stream. At most one read is in flight.
func (m *Monitor) next() tea.Cmd {
	if m.pending || m.done {
		return nil
	}

	m.pending = true

	return func() tea.Msg {
		if m.scanner.Scan() {
			return readingMsg{line: slices.Clone(m.scanner.Bytes())}
		}

		return doneMsg{err: m.scanner.Err()}
	}
}

func (m *Monitor) handleReading(msg readingMsg) (tea.Model, tea.Cmd) {
	m.pending = false

	if len(bytes.TrimSpace(msg.line)) == 0 {
		return m, m.resume()
	}

	r, err := vitals.ParseReading(msg.line)
	if err != nil {
		m.skipped++
		m.warning = err

		slog.Warn("skipping reading", slog.Any("error", err))

		return m, m.resume()
	}

	scores, err := m.manager.Record(m.userID, r)
	if err != nil && !errors.Is(err, vitals.ErrMalformedReading) {
		m.err = err
		return m, tea.Quit
	}

	m.recorded += len(scores)

	m.buffer.Add(r)

	if agg, ok := m.buffer.Aggregate(); ok {
		score, err := m.scorer.Score(&agg, m.baseline)
		if err == nil {
			m.smoothed = &score
		}
	}

	return m, m.resume()
}

func (m *Monitor) resume() tea.Cmd {
	if m.paused {
		return nil
	}

	return m.next()
}

func (m *Monitor) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case readingMsg:
		return m.handleReading(msg)

	case doneMsg:
		m.pending = false
		m.done = true

		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}

		if m.exitOnEnd {
			return m, tea.Quit
		}

		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width

		barWidth := min(max(msg.Width-padding*2-labelWidth, minBarWidth), maxBarWidth)
		m.focus.Width = barWidth
		m.stress.Width = barWidth

		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, defaultKeymap.quit):
			return m, tea.Quit

		case key.Matches(msg, defaultKeymap.pause):
			m.paused = !m.paused

			return m, m.resume()
		}

		return m, nil

	default:
		slog.Debug(spew.Sdump(msg))
	}

	return m, nil
}
