package render

import (
	"html/template"
	"io"

	"github.com/psantana5/fieldbench/internal/report"
)

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>fieldbench {{.Session}}</title>
{{if .Refresh}}<meta http-equiv="refresh" content="{{.Refresh}}">{{end}}
<style>
body { font-family: sans-serif; }
table { border-collapse: collapse; }
th, td { border: 1px solid #999; padding: 2px 8px; }
td.num { text-align: right; font-family: monospace; }
td.absent { color: #aaa; text-align: center; }
</style>
</head>
<body>
<h1>fieldbench</h1>
<p>Session {{.Session}} &middot; {{.Status}}{{if .Caption}} &middot; {{.Caption}}{{end}}</p>
{{if .Error}}<p><strong>{{.Error}}</strong></p>{{end}}
<table>
<thead><tr>{{range .Header}}<th>{{.}}</th>{{end}}</tr></thead>
<tbody>
{{range .Rows}}<tr><th>{{.Name}}</th>{{range .Cells}}{{if .Present}}<td class="num">{{.Text}}</td>{{else}}<td class="absent">{{.Text}}</td>{{end}}{{end}}</tr>
{{end}}</tbody>
</table>
</body>
</html>
`))

// Page is the data behind the HTML grid
type Page struct {
	Session string
	Status  string
	Caption string
	Error   string
	Refresh int // seconds, 0 disables auto refresh
}

type htmlCell struct {
	Text    string
	Present bool
}

type htmlRow struct {
	Name  string
	Cells []htmlCell
}

// HTML writes the matrix as a standalone page
func HTML(w io.Writer, m *report.Matrix, page Page) error {
	rows := make([]htmlRow, 0, m.Len())
	for _, name := range m.Rows() {
		row := htmlRow{Name: name}
		for _, cell := range m.Row(name) {
			row.Cells = append(row.Cells, htmlCell{Text: FormatCell(cell), Present: cell.Present})
		}
		rows = append(rows, row)
	}

	return pageTemplate.Execute(w, struct {
		Page
		Header []string
		Rows   []htmlRow
	}{
		Page:   page,
		Header: Header(m),
		Rows:   rows,
	})
}
