package models

import "time"

// FixStep is one stage of the automated fix animation.
type FixStep struct {
	ID          string        `json:"id"`
	Label       string        `json:"label"`
	Description string        `json:"description,omitempty"`
	Duration    time.Duration `json:"duration_ns"`
	Icon        string        `json:"icon,omitempty"`
}

// ProposedFix is a canned remediation shown before applying a fix.
type ProposedFix struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Impact      string `json:"impact"`     // High | Medium
	Confidence  string `json:"confidence"` // opaque literal, e.g. "98%"
}
