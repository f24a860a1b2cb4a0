package mock

import "securewatch/internal/models"

// SeedIncidents returns the incidents shown on the dashboard, newest first.
func SeedIncidents() []models.Incident {
	return []models.Incident{
		{
			ID:              "INC-2024-0952",
			Title:           "Database Connection Timeout - Auth Service",
			Severity:        models.SeverityCritical,
			Status:          models.StatusInvestigating,
			Timestamp:       "2024-01-15 14:23:15 UTC",
			RelativeTime:    "2 min ago",
			Assignee:        "Sarah Chen",
			Reporter:        "System Monitor",
			Description:     "Multiple users unable to authenticate due to database connection timeouts. Affecting approximately 847 users across 3 regions.",
			AIConfidence:    95,
			EstimatedImpact: "High - Core authentication service",
			SuggestedAction: "Scale database connections and implement circuit breaker pattern",
			AffectedSystems: []string{"Auth Service", "User Database", "Session Manager"},
			Timeline: []models.TimelineEntry{
				{Time: "14:23:15", Event: "Initial alert triggered", Type: "alert", User: "System"},
				{Time: "14:23:47", Event: "Incident created automatically", Type: "creation", User: "AI Monitor"},
				{Time: "14:24:12", Event: "Sarah Chen assigned", Type: "assignment", User: "Auto-Assignment"},
				{Time: "14:25:33", Event: "Root cause analysis initiated", Type: "analysis", User: "AI Assistant"},
				{Time: "14:26:45", Event: "Similar incidents identified", Type: "reference", User: "AI Assistant"},
				{Time: "14:27:21", Event: "Mitigation plan proposed", Type: "solution", User: "AI Assistant"},
			},
			Logs: []models.LogEntry{
				{Timestamp: "14:23:15", Level: "ERROR", Service: "auth-service", Message: "Connection timeout after 30s to database pool"},
				{Timestamp: "14:23:16", Level: "ERROR", Service: "auth-service", Message: "Failed to acquire connection from pool: timeout"},
				{Timestamp: "14:23:17", Level: "WARN", Service: "auth-service", Message: "Connection pool exhausted: 50/50 connections in use"},
				{Timestamp: "14:23:20", Level: "ERROR", Service: "session-manager", Message: "Auth service unavailable, rejecting session requests"},
				{Timestamp: "14:23:25", Level: "INFO", Service: "load-balancer", Message: "Health check failed for auth-service-1, auth-service-2"},
			},
			Metrics: models.MetricsSnapshot{
				ErrorRate:     45.7,
				ResponseTime:  8500,
				Throughput:    234,
				CPUUsage:      78,
				MemoryUsage:   92,
				DBConnections: 50,
			},
		},
		{
			ID:              "INC-2024-0951",
			Title:           "API Rate Limit Exceeded - Payment Gateway",
			Severity:        models.SeverityWarning,
			Status:          models.StatusOpen,
			Timestamp:       "2024-01-15 14:10:02 UTC",
			RelativeTime:    "15 min ago",
			Assignee:        "Mike Rodriguez",
			Reporter:        "Gateway Monitor",
			Description:     "Payment gateway is returning HTTP 429 for a growing share of checkout requests.",
			AIConfidence:    87,
			EstimatedImpact: "Medium - Checkout latency",
			SuggestedAction: "Implement exponential backoff and request queuing",
			AffectedSystems: []string{"Payment Gateway", "Checkout API"},
			Timeline: []models.TimelineEntry{
				{Time: "14:10:02", Event: "Initial alert triggered", Type: "alert", User: "System"},
				{Time: "14:10:30", Event: "Incident created automatically", Type: "creation", User: "AI Monitor"},
				{Time: "14:11:05", Event: "Mike Rodriguez assigned", Type: "assignment", User: "Auto-Assignment"},
			},
			Logs: []models.LogEntry{
				{Timestamp: "14:10:02", Level: "WARN", Service: "payment-gateway", Message: "Upstream responded 429 Too Many Requests"},
				{Timestamp: "14:10:09", Level: "ERROR", Service: "checkout-api", Message: "Payment authorization failed after 3 attempts"},
			},
			Metrics: models.MetricsSnapshot{
				ErrorRate:     12.3,
				ResponseTime:  2300,
				Throughput:    812,
				CPUUsage:      41,
				MemoryUsage:   58,
				DBConnections: 18,
			},
		},
		{
			ID:              "INC-2024-0950",
			Title:           "SSL Certificate Renewal Alert",
			Severity:        models.SeverityInfo,
			Status:          models.StatusResolved,
			Timestamp:       "2024-01-15 13:25:40 UTC",
			RelativeTime:    "1 hour ago",
			Assignee:        "Alex Park",
			Reporter:        "Certificate Monitor",
			Description:     "Certificate for api.securewatch.io was due to expire within 14 days.",
			AIConfidence:    99,
			EstimatedImpact: "Low - No user impact",
			SuggestedAction: "Certificate successfully renewed via automated process",
			AffectedSystems: []string{"Edge Proxy"},
			Timeline: []models.TimelineEntry{
				{Time: "13:25:40", Event: "Initial alert triggered", Type: "alert", User: "System"},
				{Time: "13:26:12", Event: "Automated renewal executed", Type: "solution", User: "AI Assistant"},
			},
			Logs: []models.LogEntry{
				{Timestamp: "13:25:40", Level: "INFO", Service: "cert-manager", Message: "Certificate expires in 14 days, scheduling renewal"},
				{Timestamp: "13:26:12", Level: "INFO", Service: "cert-manager", Message: "Certificate renewed, valid for 90 days"},
			},
			Metrics: models.MetricsSnapshot{
				ErrorRate:     0,
				ResponseTime:  120,
				Throughput:    1540,
				CPUUsage:      22,
				MemoryUsage:   35,
				DBConnections: 8,
			},
		},
	}
}

// SeedTeam returns the roster offered by the reassign dialog.
func SeedTeam() []models.TeamMember {
	return []models.TeamMember{
		{ID: "1", Name: "Sarah Chen", Role: "Senior Engineer", Available: true, Expertise: []string{"Database", "Auth"}},
		{ID: "2", Name: "Mike Johnson", Role: "DevOps Engineer", Available: true, Expertise: []string{"Infrastructure", "Monitoring"}},
		{ID: "3", Name: "Lisa Wang", Role: "Security Analyst", Available: false, Expertise: []string{"Security", "Compliance"}},
		{ID: "4", Name: "David Kim", Role: "Backend Engineer", Available: true, Expertise: []string{"API", "Database"}},
		{ID: "5", Name: "Emma Rodriguez", Role: "Site Reliability Engineer", Available: true, Expertise: []string{"Performance", "Scaling"}},
	}
}
