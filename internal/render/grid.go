package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/psantana5/fieldbench/internal/report"
)

// AbsentPlaceholder is printed for cells a run never measured. It must
// never be confused with a measured "0.0".
const AbsentPlaceholder = "-"

// FormatCell formats one cell with one decimal place
func FormatCell(c report.Cell) string {
	if !c.Present {
		return AbsentPlaceholder
	}
	return strconv.FormatFloat(c.Value, 'f', 1, 64)
}

// Header returns the grid header: the row label column followed by the
// 1-based run numbers.
func Header(m *report.Matrix) []string {
	header := make([]string, 0, m.Columns()+1)
	header = append(header, "Workload")
	for col := 1; col <= m.Columns(); col++ {
		header = append(header, strconv.Itoa(col))
	}
	return header
}

// Lines returns the formatted body of the grid, one slice per row
func Lines(m *report.Matrix) [][]string {
	lines := make([][]string, 0, m.Len())
	for _, name := range m.Rows() {
		line := make([]string, 0, m.Columns()+1)
		line = append(line, name)
		for _, cell := range m.Row(name) {
			line = append(line, FormatCell(cell))
		}
		lines = append(lines, line)
	}
	return lines
}

// GridOptions tune the terminal grid
type GridOptions struct {
	Caption string // printed above the grid when set
}

// Grid writes the matrix as a terminal table, milliseconds per cell
func Grid(w io.Writer, m *report.Matrix, opts GridOptions) error {
	if opts.Caption != "" {
		if _, err := fmt.Fprintln(w, opts.Caption); err != nil {
			return err
		}
	}
	if m.Len() == 0 {
		_, err := fmt.Fprintln(w, "No runs recorded")
		return err
	}

	table := tablewriter.NewWriter(w)

	header := Header(m)
	cols := make([]any, len(header))
	for i, h := range header {
		cols[i] = h
	}
	table.Header(cols...)

	for _, line := range Lines(m) {
		if err := table.Append(line); err != nil {
			return fmt.Errorf("failed to append row %q: %w", line[0], err)
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}
	return nil
}
