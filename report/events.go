package report

import (
	"fmt"
	"io"

	"github.com/pterm/pterm"

	"github.com/ayoisaiah/cogload/internal/models"
	"github.com/ayoisaiah/cogload/internal/ui"
	"github.com/ayoisaiah/cogload/ledger"
)

const noEventsMsg = "No events found for the specified week"

// Events prints a table of events with their effective cost.
func Events(w io.Writer, events []models.Event, clock string) {
	if len(events) == 0 {
		pterm.Info.WithWriter(w).Println(noEventsMsg)
		return
	}

	data := [][]string{
		{"#", "ID", "TITLE", "TYPE", "WHEN", "LENGTH", "COST", "FLEX", "STATUS"},
	}

	for i := range events {
		e := &events[i]

		status := ""

		switch {
		case e.IsCompleted:
			status = ui.Green("done")
		case !e.Enriched():
			status = ui.Yellow("needs details")
		}

		data = append(data, []string{
			fmt.Sprintf("%d", i+1),
			e.ID,
			e.Title,
			string(e.Type),
			e.StartTime.Format(dateLayout + " " + clock),
			duration(e.Duration()),
			ui.Cost(ledger.EffectiveCost(e)),
			e.Flexibility.String(),
			status,
		})
	}

	ui.PrintTable(data, w)
}

// Breakdown prints the terms of an event's cost.
func Breakdown(w io.Writer, e *models.Event, b *models.CostBreakdown) {
	header(w, fmt.Sprintf("%s (%s)", e.Title, e.Type))

	rows := []struct {
		label string
		value float64
	}{
		{"Base", b.Base},
		{"Duration", b.DurationComponent},
		{"Tool switch", b.ToolSwitch},
		{"Participants", b.Participants},
		{"No agenda", b.NoAgenda},
		{"Afternoon discount", b.AfternoonDiscount},
		{"Proximity", b.ProximityIncrement},
	}

	data := [][]string{{"TERM", "POINTS"}}

	for _, r := range rows {
		if r.value == 0 && r.label != "Duration" {
			continue
		}

		data = append(data, []string{r.label, points(r.value)})
	}

	data = append(data, []string{ui.Highlight("Total"), ui.Cost(b.Total)})

	ui.PrintTable(data, w)

	if e.ActualCost != nil || e.ProratedCost != nil {
		fmt.Fprintln(w, "Effective cost:", ui.Cost(ledger.EffectiveCost(e)))
	}

	if !e.Enriched() {
		pterm.Fprintln(w, ui.Yellow(
			"Participants or agenda are unknown; run 'cogload event enrich "+e.ID+"' for an accurate cost",
		))
	}
}

// Collisions warns about events that overlap a placement.
func Collisions(w io.Writer, e *models.Event, others []models.Event, clock string) {
	if len(others) == 0 {
		return
	}

	pterm.Fprintln(w, ui.Yellow(fmt.Sprintf(
		"%q overlaps %d event(s):", e.Title, len(others),
	)))

	for i := range others {
		o := &others[i]

		fmt.Fprintf(
			w,
			"  %s  %s - %s\n",
			o.Title,
			o.StartTime.Format(dateLayout+" "+clock),
			o.EndTime.Format(clock),
		)
	}
}
