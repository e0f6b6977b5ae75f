package report

import (
	"fmt"
	"io"

	"github.com/pterm/pterm"

	"github.com/ayoisaiah/cogload/internal/models"
	"github.com/ayoisaiah/cogload/internal/ui"
	"github.com/ayoisaiah/cogload/vitals"
)

const noSessionsMsg = "No sessions found for the specified time range"

// Session prints the state of a single session.
func Session(w io.Writer, s *models.Session, clock string) {
	status := ui.Green("active")
	if !s.Active() {
		status = "ended " + s.EndTime.Format(clock)
	}

	header(w, fmt.Sprintf("Session %s (%s)", s.ID, status))

	fmt.Fprintln(w, "Started:", s.StartTime.Format(dateLayout+" "+clock))

	if s.EventID != "" {
		fmt.Fprintln(w, "Event:", s.EventID)
		fmt.Fprintln(w, "Estimated cost:", points(s.EstimatedCost))
	}

	if !s.Active() {
		fmt.Fprintln(w, "Length:", duration(s.EndTime.Sub(s.StartTime)))
	}

	if s.ActualCost != nil {
		fmt.Fprintln(w, "Actual cost:", ui.Cost(*s.ActualCost))
	}

	sum := vitals.Summarize(s.Readings)

	fmt.Fprint(w, section("Readings"))
	fmt.Fprintln(w, "Count:", sum.Count)

	if s.Skipped > 0 {
		fmt.Fprintln(w, "Skipped:", ui.Yellow(s.Skipped))
	}

	if sum.Count > 0 {
		fmt.Fprintf(w, "Focus: avg %.0f, min %.0f\n", sum.AvgFocus, sum.MinFocus)
		fmt.Fprintf(w, "Stress: avg %.0f, max %.0f\n", sum.AvgStress, sum.MaxStress)
		fmt.Fprintf(w, "HRV score: avg %.0f\n", sum.AvgHRV)
	}
}

// Sessions prints a table of completed sessions.
func Sessions(w io.Writer, sessions []models.Session, clock string) {
	if len(sessions) == 0 {
		pterm.Info.WithWriter(w).Println(noSessionsMsg)
		return
	}

	data := [][]string{
		{"#", "START", "LENGTH", "EVENT", "ESTIMATED", "ACTUAL", "READINGS"},
	}

	for i := range sessions {
		s := &sessions[i]

		actual := ""
		if s.ActualCost != nil {
			actual = ui.Cost(*s.ActualCost)
		}

		data = append(data, []string{
			fmt.Sprintf("%d", i+1),
			s.StartTime.Format(dateLayout + " " + clock),
			duration(s.EndTime.Sub(s.StartTime)),
			s.EventID,
			points(s.EstimatedCost),
			actual,
			fmt.Sprintf("%d", len(s.Readings)),
		})
	}

	ui.PrintTable(data, w)
}

// Baseline prints calibration progress and the bands in use.
func Baseline(w io.Writer, p *vitals.Profile) {
	header(w, "Baseline for "+p.UserID)

	fmt.Fprintf(w, "Calibration: %.1f%% (%d sessions)\n", p.Progress(), p.Sessions)

	bands, personal := p.Bands()
	if !personal {
		bands = vitals.DefaultBands()

		fmt.Fprintln(w, "Scoring against population norms until calibrated")
	}

	data := [][]string{
		{"VITAL", "MEAN", "OPTIMAL", "WARNING", "CRITICAL ABOVE"},
		{
			"Breathing",
			fmt.Sprintf("%.1f", p.Breathing.Mean),
			fmt.Sprintf("%.1f-%.1f", bands.Breathing.OptimalMin, bands.Breathing.OptimalMax),
			fmt.Sprintf("%.1f-%.1f", bands.Breathing.WarningMin, bands.Breathing.WarningMax),
			fmt.Sprintf("%.1f", bands.Breathing.CriticalMax),
		},
		{
			"Pulse",
			fmt.Sprintf("%.1f", p.Pulse.Mean),
			fmt.Sprintf("%.1f-%.1f", bands.Pulse.OptimalMin, bands.Pulse.OptimalMax),
			fmt.Sprintf("%.1f-%.1f", bands.Pulse.WarningMin, bands.Pulse.WarningMax),
			fmt.Sprintf("%.1f", bands.Pulse.CriticalMax),
		},
	}

	ui.PrintTable(data, w)
}
