package models

// Severity of an incident as shown on the cards.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
)

// Status of an incident as shown on the cards.
type Status string

const (
	StatusOpen          Status = "open"
	StatusInvestigating Status = "investigating"
	StatusResolved      Status = "resolved"
)

// Incident is a display-only mock record. Every field is a literal supplied by
// the mock dataset; nothing here is derived or validated.
type Incident struct {
	ID              string          `json:"id"`
	Title           string          `json:"title"`
	Severity        Severity        `json:"severity"`
	Status          Status          `json:"status"`
	Timestamp       string          `json:"timestamp"`        // e.g. "2024-01-15 14:23:15 UTC"
	RelativeTime    string          `json:"relative_time"`    // e.g. "2 min ago"
	Assignee        string          `json:"assignee"`
	Reporter        string          `json:"reporter,omitempty"`
	Description     string          `json:"description"`
	AIConfidence    int             `json:"ai_confidence"` // percent
	EstimatedImpact string          `json:"estimated_impact,omitempty"`
	SuggestedAction string          `json:"suggested_action"`
	AffectedSystems []string        `json:"affected_systems"`
	Timeline        []TimelineEntry `json:"timeline"`
	Logs            []LogEntry      `json:"logs"`
	Metrics         MetricsSnapshot `json:"metrics"`
}

// TimelineEntry is one row of the incident timeline tab.
type TimelineEntry struct {
	Time  string `json:"time"`
	Event string `json:"event"`
	Type  string `json:"type"` // alert | creation | assignment | analysis | reference | solution
	User  string `json:"user"`
}

// LogEntry is one row of the system logs tab.
type LogEntry struct {
	Timestamp string `json:"timestamp"`
	Level     string `json:"level"` // ERROR | WARN | INFO
	Service   string `json:"service"`
	Message   string `json:"message"`
}

// MetricsSnapshot is the metrics tab of an incident.
type MetricsSnapshot struct {
	ErrorRate     float64 `json:"error_rate"`       // %
	ResponseTime  int     `json:"response_time_ms"` // ms
	Throughput    int     `json:"throughput"`       // req/s
	CPUUsage      int     `json:"cpu_usage"`        // %
	MemoryUsage   int     `json:"memory_usage"`     // %
	DBConnections int     `json:"db_connections"`
}

// IncidentSummary is the card projection of an incident.
type IncidentSummary struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Severity        Severity `json:"severity"`
	Timestamp       string   `json:"timestamp"`
	Assignee        string   `json:"assignee"`
	Status          Status   `json:"status"`
	AIConfidence    int      `json:"ai_confidence"`
	SuggestedAction string   `json:"suggested_action"`
}

// Summary projects the incident onto its card.
func (i Incident) Summary() IncidentSummary {
	return IncidentSummary{
		ID:              i.ID,
		Title:           i.Title,
		Severity:        i.Severity,
		Timestamp:       i.RelativeTime,
		Assignee:        i.Assignee,
		Status:          i.Status,
		AIConfidence:    i.AIConfidence,
		SuggestedAction: i.SuggestedAction,
	}
}
