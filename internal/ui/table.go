package ui

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/pterm/pterm"
)

// PrintTable renders data as a boxed table whose first row is the header.
// Columns holding only numbers, such as costs and debts, are right aligned
// so their decimal points line up.
func PrintTable(data [][]string, writer io.Writer) {
	table := pterm.DefaultTable
	table.Boxed = true

	str, err := table.WithHasHeader().WithData(alignNumbers(data)).Srender()
	if err != nil {
		pterm.Error.Printfln("Failed to output table: %s", err.Error())
		return
	}

	fmt.Fprintln(writer, str)
}

func visibleWidth(cell string) int {
	return utf8.RuneCountInString(pterm.RemoveColorFromString(cell))
}

func isNumber(cell string) bool {
	_, err := strconv.ParseFloat(strings.TrimSpace(pterm.RemoveColorFromString(cell)), 64)
	return err == nil
}

// alignNumbers returns a copy of data with the cells of numeric columns
// padded on the left. Blank cells do not stop a column from being numeric.
func alignNumbers(data [][]string) [][]string {
	if len(data) < 2 {
		return data
	}

	out := make([][]string, len(data))
	for i := range data {
		out[i] = append([]string(nil), data[i]...)
	}

	for col := range data[0] {
		numeric := false
		width := visibleWidth(data[0][col])

		for _, row := range data[1:] {
			if col >= len(row) || strings.TrimSpace(row[col]) == "" {
				continue
			}

			if !isNumber(row[col]) {
				numeric = false
				break
			}

			numeric = true
			width = max(width, visibleWidth(row[col]))
		}

		if !numeric {
			continue
		}

		for _, row := range out[1:] {
			if col < len(row) {
				row[col] = strings.Repeat(" ", width-visibleWidth(row[col])) + row[col]
			}
		}
	}

	return out
}
