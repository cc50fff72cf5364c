package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(entries ...Entry) RunResult {
	return NewRunResult(entries...)
}

func TestMatrix_RowOrderAndAbsentCells(t *testing.T) {
	a := run(Entry{"x", 1.0}, Entry{"y", 2.0})
	b := run(Entry{"y", 3.0}, Entry{"z", 4.0})

	m := NewMatrix(a, b)

	assert.Equal(t, []string{"x", "y", "z"}, m.Rows())
	assert.Equal(t, 2, m.Columns())

	assert.Equal(t, Measured(1.0), m.Cell("x", 1))
	assert.Equal(t, Absent, m.Cell("x", 2))
	assert.Equal(t, Measured(2.0), m.Cell("y", 1))
	assert.Equal(t, Measured(3.0), m.Cell("y", 2))
	assert.Equal(t, Absent, m.Cell("z", 1))
	assert.Equal(t, Measured(4.0), m.Cell("z", 2))
}

func TestMatrix_EveryRowHasOneCellPerColumn(t *testing.T) {
	m := NewMatrix()
	m.Add(run(Entry{"a", 1}))
	m.Add(run(Entry{"b", 1}))
	m.Add(run(Entry{"c", 1}), run())
	m.Add(run(Entry{"a", 2}, Entry{"d", 1}))

	require.Equal(t, 5, m.Columns())
	for _, name := range m.Rows() {
		assert.Len(t, m.Row(name), m.Columns(), "row %s", name)
	}

	assert.Equal(t, []Cell{Measured(1), Absent, Absent, Absent, Measured(2)}, m.Row("a"))
	assert.Equal(t, []Cell{Absent, Absent, Absent, Absent, Measured(1)}, m.Row("d"))
}

func TestMatrix_EmptyAddIsNoop(t *testing.T) {
	m := NewMatrix(run(Entry{"a", 1}, Entry{"b", 2}))
	before := m.Clone()

	m.Add()

	assert.Equal(t, before.Rows(), m.Rows())
	assert.Equal(t, before.Columns(), m.Columns())
	assert.Equal(t, before.Row("a"), m.Row("a"))
}

func TestMatrix_EmptyRunAddsColumnOfAbsent(t *testing.T) {
	m := NewMatrix(run(Entry{"a", 1}))
	m.Add(run())

	assert.Equal(t, 2, m.Columns())
	assert.Equal(t, Absent, m.Cell("a", 2))
}

func TestMatrix_MonotonicColumns(t *testing.T) {
	m := NewMatrix()
	prevRows := []string{}
	for i := 0; i < 10; i++ {
		name := string(rune('a' + i%4))
		m.Add(run(Entry{name, float64(i)}))

		assert.Equal(t, i+1, m.Columns())
		rows := m.Rows()
		require.GreaterOrEqual(t, len(rows), len(prevRows))
		assert.Equal(t, prevRows, rows[:len(prevRows)], "existing rows keep their order")
		prevRows = rows
	}
}

func TestMatrix_ZeroIsNotAbsent(t *testing.T) {
	m := NewMatrix(run(Entry{"fast", 0}))

	c := m.Cell("fast", 1)
	assert.True(t, c.Present)
	assert.Equal(t, 0.0, c.Value)
	assert.NotEqual(t, Absent, c)
}

func TestMatrix_OutOfRangeReadsAbsent(t *testing.T) {
	m := NewMatrix(run(Entry{"a", 1}))

	assert.Equal(t, Absent, m.Cell("a", 0))
	assert.Equal(t, Absent, m.Cell("a", 2))
	assert.Equal(t, Absent, m.Cell("missing", 1))
	assert.Nil(t, m.Row("missing"))
}

func TestMatrix_CloneIsIndependent(t *testing.T) {
	m := NewMatrix(run(Entry{"a", 1}))
	c := m.Clone()

	m.Add(run(Entry{"b", 2}))

	assert.Equal(t, 1, c.Columns())
	assert.Equal(t, []string{"a"}, c.Rows())
	assert.Len(t, c.Row("a"), 1)
}

func TestMatrix_IdenticalRunsHaveNoAbsentCells(t *testing.T) {
	m := NewMatrix()
	for i := 0; i < 3; i++ {
		m.Add(run(Entry{"A", 1.5}, Entry{"B", 2.5}))
	}

	require.Equal(t, 2, m.Len())
	require.Equal(t, 3, m.Columns())
	for _, name := range m.Rows() {
		for _, cell := range m.Row(name) {
			assert.True(t, cell.Present)
			assert.GreaterOrEqual(t, cell.Value, 0.0)
		}
	}
}
