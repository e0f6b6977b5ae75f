package report

import (
	"fmt"
	"io"

	"github.com/pterm/pterm"

	"github.com/ayoisaiah/cogload/internal/models"
	"github.com/ayoisaiah/cogload/internal/ui"
	"github.com/ayoisaiah/cogload/recovery"
)

// Recovery prints recovery suggestions, one table per activity.
func Recovery(w io.Writer, suggestions []recovery.Suggestion, clock string) {
	if len(suggestions) == 0 {
		pterm.Success.WithWriter(w).Println("No cognitive debt this week: no recovery needed")
		return
	}

	for i := range suggestions {
		s := &suggestions[i]

		fmt.Fprintf(
			w,
			"%s%s\n",
			section(fmt.Sprintf(
				"%s (%s, %s points)",
				s.Activity.Name,
				duration(s.Activity.Duration()),
				points(s.Activity.PointValue),
			)),
			s.Activity.Description,
		)

		if len(s.Slots) == 0 {
			fmt.Fprintln(w, "No free slot this week")
			continue
		}

		data := [][]string{{"DAY", "FROM", "TO", "PRIORITY"}}

		for _, slot := range s.Slots {
			priority := slot.Priority
			if priority == models.PriorityHigh {
				priority = ui.Red(priority)
			}

			data = append(data, []string{
				slot.Start.Format("Mon Jan 02"),
				slot.Start.Format(clock),
				slot.End.Format(clock),
				priority,
			})
		}

		ui.PrintTable(data, w)
	}
}
