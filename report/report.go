// Package report renders cogload results for the terminal.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/hako/durafmt"
	"github.com/pterm/pterm"

	"github.com/ayoisaiah/cogload/internal/ui"
)

const (
	barChartChar = "▇"
	dateLayout   = "Mon Jan 02"
)

// JSON writes v as indented JSON.
func JSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(b))

	return err
}

func header(w io.Writer, text string) {
	fmt.Fprint(w, pterm.DefaultHeader.
		WithBackgroundStyle(pterm.NewStyle(pterm.BgYellow)).
		WithTextStyle(pterm.NewStyle(pterm.FgBlack)).
		Sprintln(text))
}

func section(title string) string {
	return fmt.Sprintf("\n%s\n", ui.Cyan(title))
}

func duration(d time.Duration) string {
	//nolint:gomnd // limit to first 2 units
	return durafmt.Parse(d).LimitToUnit("hours").LimitFirstN(2).String()
}

func points(v float64) string {
	return fmt.Sprintf("%.1f", v)
}
