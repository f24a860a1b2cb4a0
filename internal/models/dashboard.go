package models

// MetricTile is one of the cards in the dashboard metrics row.
type MetricTile struct {
	Title  string `json:"title"`
	Value  string `json:"value"`
	Change string `json:"change"`
	Trend  string `json:"trend"`  // up | down
	Status string `json:"status"` // critical | warning | success | info
}

// SimilarIncident is a canned match in the AI analysis panel.
type SimilarIncident struct {
	ID         string `json:"id"`
	Similarity string `json:"similarity"`
	Resolution string `json:"resolution"`
}

// AIAnalysis is the canned content of the AI analysis panel.
type AIAnalysis struct {
	Issue             string            `json:"issue"`
	RootCause         string            `json:"root_cause"`
	RecommendedFix    string            `json:"recommended_fix"`
	ContributingItems []string          `json:"contributing_factors,omitempty"`
	RemediationPlan   []string          `json:"remediation_plan,omitempty"`
	SimilarIncidents  []SimilarIncident `json:"similar_incidents"`
	AutomatedActions  []string          `json:"automated_actions"`
	Status            string            `json:"status"`
}

// Dashboard is the home view.
type Dashboard struct {
	Metrics   []MetricTile      `json:"metrics"`
	Incidents []IncidentSummary `json:"incidents"`
	Analysis  AIAnalysis        `json:"analysis"`
}

// Option is a selectable value in a dialog (resolution category, priority, ...).
type Option struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
}
