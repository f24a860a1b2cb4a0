package models

import "time"

// Settings backs the settings page.
type Settings struct {
	OrganizationName       string    `json:"organization_name" validate:"required"`
	Timezone               string    `json:"timezone" validate:"required"`
	IncidentPrefix         string    `json:"incident_prefix" validate:"required,alphanum,max=8"`
	AutoRefresh            bool      `json:"auto_refresh"`
	DarkMode               bool      `json:"dark_mode"`
	NotifyCritical         bool      `json:"notify_critical"`
	NotifyAnalysisComplete bool      `json:"notify_analysis_complete"`
	WeeklyReports          bool      `json:"weekly_reports"`
	TwoFactorAuth          bool      `json:"two_factor_auth"`
	IPWhitelist            bool      `json:"ip_whitelist"`
	ConfidenceThreshold    int       `json:"confidence_threshold" validate:"min=0,max=100"`
	AutoExecuteFixes       bool      `json:"auto_execute_fixes"`
	UpdatedAt              time.Time `json:"updated_at,omitempty"`
}
