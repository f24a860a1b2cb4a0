package mock

import (
	"time"

	"securewatch/internal/models"
)

// Catalog is the canned, read-only content of the dashboard and the apply-fix
// dialog. Accessors return copies.
type Catalog struct {
	steps    []models.FixStep
	proposed []models.ProposedFix
	tiles    []models.MetricTile
	analysis models.AIAnalysis
}

func NewCatalog() *Catalog {
	return &Catalog{
		steps: []models.FixStep{
			{ID: "analyze", Label: "Analyzing current system state...", Duration: 1000 * time.Millisecond, Icon: "activity"},
			{ID: "scale-pool", Label: "Scaling database connection pool...", Duration: 1500 * time.Millisecond, Icon: "database"},
			{ID: "circuit-breaker", Label: "Implementing circuit breaker pattern...", Duration: 2000 * time.Millisecond, Icon: "zap"},
			{ID: "retry", Label: "Adding retry logic with backoff...", Duration: 1200 * time.Millisecond, Icon: "refresh"},
			{ID: "autoscale", Label: "Deploying auto-scaling policies...", Duration: 1800 * time.Millisecond, Icon: "server"},
			{ID: "verify", Label: "Verifying fix effectiveness...", Duration: 1000 * time.Millisecond, Icon: "check"},
		},
		proposed: []models.ProposedFix{
			{Title: "Scale Database Connection Pool", Description: "Increase pool size from 50 to 100 connections", Impact: "High", Confidence: "98%"},
			{Title: "Implement Circuit Breaker", Description: "Add circuit breaker pattern for database calls", Impact: "Medium", Confidence: "95%"},
			{Title: "Add Retry Logic", Description: "Implement exponential backoff retry mechanism", Impact: "Medium", Confidence: "92%"},
		},
		tiles: []models.MetricTile{
			{Title: "Active Incidents", Value: "12", Change: "+3", Trend: "up", Status: "critical"},
			{Title: "Avg Resolution Time", Value: "2.4h", Change: "-15%", Trend: "down", Status: "success"},
			{Title: "AI Accuracy", Value: "94.2%", Change: "+2.1%", Trend: "up", Status: "success"},
			{Title: "Systems Monitored", Value: "847", Change: "+12", Trend: "up", Status: "info"},
		},
		analysis: models.AIAnalysis{
			Issue:          "Database connection timeout affecting user authentication.",
			RootCause:      "Connection pool exhaustion due to increased traffic load (3x normal).",
			RecommendedFix: "Scale database connections and implement circuit breaker pattern.",
			SimilarIncidents: []models.SimilarIncident{
				{ID: "INC-2024-0847", Similarity: "94%", Resolution: "2h 15m"},
				{ID: "INC-2024-0723", Similarity: "87%", Resolution: "1h 45m"},
				{ID: "INC-2024-0612", Similarity: "82%", Resolution: "3h 10m"},
			},
			AutomatedActions: []string{"Create Jira Ticket", "Execute Auto-Fix Script", "Deploy Recommended Solution"},
			Status:           "Analysis complete",
		},
	}
}

func (c *Catalog) FixSteps() []models.FixStep {
	return append([]models.FixStep(nil), c.steps...)
}

func (c *Catalog) ProposedFixes() []models.ProposedFix {
	return append([]models.ProposedFix(nil), c.proposed...)
}

func (c *Catalog) MetricTiles() []models.MetricTile {
	return append([]models.MetricTile(nil), c.tiles...)
}

func (c *Catalog) Analysis() models.AIAnalysis {
	a := c.analysis
	a.ContributingItems = append([]string(nil), c.analysis.ContributingItems...)
	a.RemediationPlan = append([]string(nil), c.analysis.RemediationPlan...)
	a.SimilarIncidents = append([]models.SimilarIncident(nil), c.analysis.SimilarIncidents...)
	a.AutomatedActions = append([]string(nil), c.analysis.AutomatedActions...)
	return a
}
