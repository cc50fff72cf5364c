package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/psantana5/fieldbench/internal/report"
)

// Format names a presenter
type Format string

const (
	FormatTable      Format = "table"
	FormatJSON       Format = "json"
	FormatYAML       Format = "yaml"
	FormatPrometheus Format = "prometheus"
)

// Formats lists every supported format
var Formats = []Format{FormatTable, FormatJSON, FormatYAML, FormatPrometheus}

// ParseFormat validates a format name
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown output format %q (expected one of %v)", s, Formats)
}

// JSON writes the document as indented JSON
func JSON(w io.Writer, doc report.Document) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(doc)
}

// YAML writes the document as YAML
func YAML(w io.Writer, doc report.Document) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(doc); err != nil {
		return err
	}
	return encoder.Close()
}

// Prometheus writes the matrix in the Prometheus text format
func Prometheus(w io.Writer, m *report.Matrix) error {
	text, err := report.PrometheusExport(m)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, text)
	return err
}

// Write renders doc/m in the requested format. caption is only used by the
// table format.
func Write(w io.Writer, format Format, doc report.Document, m *report.Matrix, caption string) error {
	switch format {
	case FormatJSON:
		return JSON(w, doc)
	case FormatYAML:
		return YAML(w, doc)
	case FormatPrometheus:
		return Prometheus(w, m)
	case FormatTable:
		return Grid(w, m, GridOptions{Caption: caption})
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
