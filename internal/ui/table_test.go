package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlignNumbers(t *testing.T) {
	data := [][]string{
		{"ID", "COST", "NOTE"},
		{"a", "9.0", "short"},
		{"b", Red("12.5"), ""},
		{"c", "", "1"},
		{"d", "-5.0", "late start"},
	}

	got := alignNumbers(data)

	assert.Equal(t, " 9.0", got[1][1])
	assert.Equal(t, Red("12.5"), got[2][1])
	assert.Equal(t, "    ", got[3][1])
	assert.Equal(t, "-5.0", got[4][1])
	assert.Equal(t, "short", got[1][2], "mixed columns are left alone")
	assert.Equal(t, "9.0", data[1][1], "input is not modified")
}

func TestPrintTableRightAlignsCosts(t *testing.T) {
	pterm.DisableStyling()
	t.Cleanup(pterm.EnableStyling)

	var buf bytes.Buffer

	PrintTable([][]string{
		{"ID", "COST"},
		{"a", "9.0"},
		{"b", "12.5"},
	}, &buf)

	var lineA, lineB string

	for _, line := range strings.Split(buf.String(), "\n") {
		switch {
		case strings.Contains(line, "9.0") && !strings.Contains(line, "12.5"):
			lineA = line
		case strings.Contains(line, "12.5"):
			lineB = line
		}
	}

	require.NotEmpty(t, lineA)
	require.NotEmpty(t, lineB)
	assert.Equal(t,
		strings.Index(lineB, "12.5")+len("12.5"),
		strings.Index(lineA, "9.0")+len("9.0"),
	)
}
