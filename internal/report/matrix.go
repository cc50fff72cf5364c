package report

// Cell is one (workload, run) entry of a Matrix. Present is false when the
// run never reported that workload; a measured zero is Present with Value 0.
type Cell struct {
	Value   float64
	Present bool
}

// Absent marks a run that has no data for a row
var Absent = Cell{}

// Measured wraps a real timing
func Measured(v float64) Cell {
	return Cell{Value: v, Present: true}
}

// Matrix pivots any number of run results into one row per workload and one
// column per run. Rows appear in the order names were first seen across
// runs, and runs are numbered from 1 in the order they were added.
//
// Every row always holds exactly Columns() cells. Rows are never removed or
// reordered. Matrix is not safe for concurrent use.
type Matrix struct {
	rows    []string
	index   map[string]int
	cells   [][]Cell
	columns int
}

// NewMatrix creates a matrix and adds the initial runs to it
func NewMatrix(initial ...RunResult) *Matrix {
	m := &Matrix{index: make(map[string]int)}
	m.Add(initial...)
	return m
}

// Add appends one column per run, in order
func (m *Matrix) Add(runs ...RunResult) {
	for _, run := range runs {
		m.addRun(run)
	}
}

func (m *Matrix) addRun(run RunResult) {
	m.columns++

	for i, name := range m.rows {
		cell := Absent
		if v, ok := run.Value(name); ok {
			cell = Measured(v)
		}
		m.cells[i] = append(m.cells[i], cell)
	}

	run.Each(func(name string, elapsed float64) {
		if _, ok := m.index[name]; ok {
			return
		}
		row := make([]Cell, m.columns)
		row[m.columns-1] = Measured(elapsed)
		m.index[name] = len(m.rows)
		m.rows = append(m.rows, name)
		m.cells = append(m.cells, row)
	})
}

// Columns returns the number of runs added so far
func (m *Matrix) Columns() int {
	return m.columns
}

// Rows returns the row names in order
func (m *Matrix) Rows() []string {
	out := make([]string, len(m.rows))
	copy(out, m.rows)
	return out
}

// Len returns the number of rows
func (m *Matrix) Len() int {
	return len(m.rows)
}

// Cell returns the cell for row name and 1-based column. Unknown rows and
// out of range columns read as Absent.
func (m *Matrix) Cell(name string, column int) Cell {
	i, ok := m.index[name]
	if !ok || column < 1 || column > m.columns {
		return Absent
	}
	return m.cells[i][column-1]
}

// Row returns a copy of all cells of a row, or nil if the row is unknown
func (m *Matrix) Row(name string) []Cell {
	i, ok := m.index[name]
	if !ok {
		return nil
	}
	out := make([]Cell, len(m.cells[i]))
	copy(out, m.cells[i])
	return out
}

// Clone returns an independent copy of the matrix
func (m *Matrix) Clone() *Matrix {
	c := &Matrix{
		rows:    m.Rows(),
		index:   make(map[string]int, len(m.index)),
		cells:   make([][]Cell, len(m.cells)),
		columns: m.columns,
	}
	for k, v := range m.index {
		c.index[k] = v
	}
	for i, row := range m.cells {
		c.cells[i] = append([]Cell(nil), row...)
	}
	return c
}
