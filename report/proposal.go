package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/pterm/pterm"

	"github.com/ayoisaiah/cogload/internal/models"
	"github.com/ayoisaiah/cogload/internal/ui"
)

// Proposal prints the moves a proposal makes and their effect.
func Proposal(w io.Writer, p *models.Proposal, clock string) {
	header(w, "Week of "+p.WeekStart.Format("Jan 02, 2006"))

	if p.Empty() {
		pterm.Info.WithWriter(w).Println("Nothing to move: the week is already as compact as it can be")
	} else {
		data := [][]string{{"EVENT", "FROM", "TO", "APPLIED"}}

		for i := range p.Changes {
			c := &p.Changes[i]

			applied := ""
			if c.Applied {
				applied = ui.Green("yes")
			}

			data = append(data, []string{
				c.Title,
				c.OriginalStart.Format(dateLayout + " " + clock),
				c.NewStart.Format(dateLayout + " " + clock),
				applied,
			})
		}

		ui.PrintTable(data, w)
	}

	if len(p.Unplaceable) > 0 {
		pterm.Fprintln(w, ui.Yellow(
			"No free slot for: "+strings.Join(p.Unplaceable, ", "),
		))
	}

	fmt.Fprint(w, section("Idle gap penalty"))

	gaps := [][]string{{"DAY", "BEFORE", "AFTER"}}
	for _, g := range p.Gaps {
		gaps = append(gaps, []string{
			g.Day,
			fmt.Sprintf("%d", g.Before),
			fmt.Sprintf("%d", g.After),
		})
	}

	ui.PrintTable(gaps, w)

	fmt.Fprint(w, section("Debt"))
	fmt.Fprintln(w, "Worst day now:", debt(p.CurrentMaxDailyDebt))
	fmt.Fprintln(w, "Worst day after:", debt(p.ProposedMaxDailyDebt))
	fmt.Fprintln(w, "Total reduction:", ui.Green(points(p.TotalDebtReduction)))

	if !p.Empty() {
		fmt.Fprintf(w, "\nApply with: cogload apply %s\n", p.ID)
	}
}
