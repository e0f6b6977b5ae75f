package monitor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	padding     = 2
	labelWidth  = 10
	minBarWidth = 20
	maxBarWidth = 60
)

var (
	baseStyle = lipgloss.NewStyle().Padding(1, padding)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#5A56E0")).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().Width(labelWidth)

	dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))

	positiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))

	negativeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("78"))
)

func (m *Monitor) status() string {
	switch {
	case m.done:
		return "stream ended"
	case m.paused:
		return "paused"
	case m.smoothed == nil:
		return "waiting for readings"
	case !m.buffer.Stable():
		return "stabilising"
	}

	return "live"
}

func signed(delta int) string {
	s := fmt.Sprintf("%+d", delta)

	switch {
	case delta > 0:
		return positiveStyle.Render(s)
	case delta < 0:
		return negativeStyle.Render(s)
	}

	return s
}

func (m *Monitor) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("cogload session"))
	b.WriteString("  ")
	b.WriteString(dimStyle.Render(m.status()))
	b.WriteString("\n\n")

	if s := m.smoothed; s != nil {
		b.WriteString(labelStyle.Render("Focus"))
		b.WriteString(m.focus.ViewAs(s.Focus / 100))
		b.WriteString(fmt.Sprintf(" %3.0f\n", s.Focus))

		b.WriteString(labelStyle.Render("Stress"))
		b.WriteString(m.stress.ViewAs(s.Stress / 100))
		b.WriteString(fmt.Sprintf(" %3.0f\n\n", s.Stress))

		b.WriteString(labelStyle.Render("Pulse"))
		b.WriteString(fmt.Sprintf("%.0f bpm\n", s.PulseRate))

		b.WriteString(labelStyle.Render("Breathing"))
		b.WriteString(fmt.Sprintf("%.1f /min\n", s.BreathingRate))

		hrv := "n/a"
		if s.HRVDefined {
			hrv = fmt.Sprintf("%.0f", s.HRV)
		}

		b.WriteString(labelStyle.Render("HRV"))
		b.WriteString(hrv + "\n")

		b.WriteString(labelStyle.Render("Delta"))
		b.WriteString(signed(s.CostDelta))
		b.WriteString("\n")

		b.WriteString(labelStyle.Render("At"))
		b.WriteString(s.Timestamp.Format(m.clock))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(
		fmt.Sprintf("%d recorded, %d skipped", m.recorded, m.skipped),
	))
	b.WriteString("\n")

	if m.warning != nil {
		b.WriteString(warnStyle.Render(m.warning.Error()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.ShortHelpView(defaultKeymap.ShortHelp()))

	return baseStyle.Render(b.String())
}
