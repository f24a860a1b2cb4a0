package service

import (
	"time"

	"securewatch/internal/models"
)

// LogFilter narrows the notification log by time range and type.
type LogFilter struct {
	From time.Time // inclusive; zero means no lower bound
	To   time.Time // inclusive; zero means no upper bound
	Type string    // "", "INCIDENT_REASSIGNED", "FIX_APPLIED", ...
}

// IncidentFilter narrows the incident list. Empty fields match everything.
type IncidentFilter struct {
	Severity models.Severity
	Status   models.Status
	Query    string
}
