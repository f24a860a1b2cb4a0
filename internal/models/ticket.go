package models

import "time"

// Ticket is a mock issue-tracker ticket created from an incident.
type Ticket struct {
	Key         string    `json:"key"` // <PROJECT>-<number>
	Project     string    `json:"project"`
	IssueType   string    `json:"issue_type"`
	Priority    string    `json:"priority"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Assignee    string    `json:"assignee,omitempty"`
	IncidentID  string    `json:"incident_id"`
	CreatedAt   time.Time `json:"created_at"`
}
