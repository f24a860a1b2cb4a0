package report

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"securewatch/internal/models"
)

// SeverityLabel is the badge text of a severity, e.g. "Critical".
func SeverityLabel(s models.Severity) string {
	return Label(string(s))
}

// StatusLabel is the badge text of a status, e.g. "Investigating".
func StatusLabel(s models.Status) string {
	return Label(string(s))
}

// Label title-cases a lower-case identifier, treating '-' and '_' as spaces.
// A Caser keeps state between calls, so each call builds its own.
func Label(s string) string {
	s = strings.NewReplacer("-", " ", "_", " ").Replace(strings.TrimSpace(s))
	return cases.Title(language.English).String(s)
}
