package models

import "time"

// Notification types appended to the notification log.
const (
	NotificationReassigned      = "INCIDENT_REASSIGNED"
	NotificationResolved        = "INCIDENT_RESOLVED"
	NotificationTicketCreated   = "TICKET_CREATED"
	NotificationFixApplied      = "FIX_APPLIED"
	NotificationReportExported  = "REPORT_EXPORTED"
	NotificationSolutionStarted = "SOLUTION_EXECUTING"
	NotificationWeeklyDigest    = "WEEKLY_DIGEST"
)

// Notification is a transient user-visible notice, kept in the log.
type Notification struct {
	ID          string    `json:"id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Metadata    any       `json:"metadata,omitempty"`
}
