package report

import "time"

// Document is the serializable form of a measurement session
type Document struct {
	Session     string    `json:"session" yaml:"session"`
	GeneratedAt time.Time `json:"generated_at" yaml:"generated_at"`
	Iterations  int       `json:"iterations" yaml:"iterations"`
	Runs        int       `json:"runs" yaml:"runs"`
	Host        any       `json:"host,omitempty" yaml:"host,omitempty"`
	Rows        []Row     `json:"rows" yaml:"rows"`
}

// Row is one workload across all runs. A nil cell means the run has no data
// for this workload.
type Row struct {
	Workload string     `json:"workload" yaml:"workload"`
	Cells    []*float64 `json:"cells" yaml:"cells"`
}

// NewDocument flattens a matrix into a Document
func NewDocument(session string, iterations int, host any, m *Matrix) Document {
	doc := Document{
		Session:     session,
		GeneratedAt: time.Now().UTC(),
		Iterations:  iterations,
		Runs:        m.Columns(),
		Host:        host,
		Rows:        make([]Row, 0, m.Len()),
	}
	for _, name := range m.Rows() {
		row := Row{Workload: name, Cells: make([]*float64, m.Columns())}
		for i, cell := range m.Row(name) {
			if cell.Present {
				v := cell.Value
				row.Cells[i] = &v
			}
		}
		doc.Rows = append(doc.Rows, row)
	}
	return doc
}
