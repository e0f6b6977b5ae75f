package report

import (
	"fmt"
	"io"
	"math"

	"github.com/pterm/pterm"

	"github.com/ayoisaiah/cogload/internal/models"
	"github.com/ayoisaiah/cogload/internal/ui"
)

// Budget prints today's and this week's budget with a per-day chart of
// scheduled cost.
func Budget(w io.Writer, b *models.Budget) {
	header(w, "Budget as of "+b.AsOf.Format("Mon Jan 02, 2006 15:04"))

	fmt.Fprint(w, section("Today"))
	fmt.Fprintln(w, "Budget:", points(b.DailyBudget))
	fmt.Fprintln(w, "Spent:", ui.Cost(b.DailySpent))
	fmt.Fprintln(w, "Scheduled:", points(b.DailyScheduled))
	fmt.Fprintln(w, "Remaining:", remaining(b.DailyRemaining))

	if b.Overdrafted() {
		fmt.Fprintln(w, "Debt:", ui.Red(points(b.DailyDebt)))
	}

	fmt.Fprint(w, section("This week"))
	fmt.Fprintln(w, "Budget:", points(b.WeeklyBudget))
	fmt.Fprintln(w, "Spent:", ui.Cost(b.WeeklySpent))
	fmt.Fprintln(w, "Scheduled:", points(b.WeeklyScheduled))
	fmt.Fprintln(w, "Debt:", debt(b.WeeklyDebt))

	fmt.Fprint(w, dayChart(b.Days))
}

func remaining(v float64) string {
	if v < 0 {
		return ui.Red(points(v))
	}

	return ui.Green(points(v))
}

func debt(v float64) string {
	if v > 0 {
		return ui.Red(points(v))
	}

	return ui.Green(points(v))
}

func dayChart(days []models.DayBudget) string {
	if len(days) == 0 {
		return ""
	}

	bars := make(pterm.Bars, 0, len(days))

	for i := range days {
		bars = append(bars, pterm.Bar{
			Label: days[i].Date.Format("Mon 02"),
			Value: int(math.Round(days[i].Scheduled)),
		})
	}

	chart, err := pterm.DefaultBarChart.WithHorizontalBarCharacter(barChartChar).
		WithHorizontal().
		WithShowValue().
		WithBars(bars).
		Srender()
	if err != nil {
		pterm.Error.Println(err)
		return ""
	}

	return section("Scheduled cost per day") + chart
}
