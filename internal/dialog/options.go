package dialog

import "securewatch/internal/models"

// ResolutionCategories are the choices of the resolve dialog.
var ResolutionCategories = []models.Option{
	{ID: "fixed", Label: "Fixed", Description: "Issue has been permanently resolved"},
	{ID: "workaround", Label: "Workaround Applied", Description: "Temporary solution implemented"},
	{ID: "duplicate", Label: "Duplicate", Description: "Duplicate of another incident"},
	{ID: "false-positive", Label: "False Positive", Description: "Not an actual incident"},
	{ID: "user-error", Label: "User Error", Description: "Caused by user mistake"},
}

// TicketProjects are the projects offered by the ticket dialog.
var TicketProjects = []models.Option{
	{ID: "INFRA", Label: "Infrastructure (INFRA)"},
	{ID: "SEC", Label: "Security (SEC)"},
	{ID: "OPS", Label: "Operations (OPS)"},
	{ID: "DEV", Label: "Development (DEV)"},
}

// TicketIssueTypes are the issue types offered by the ticket dialog.
var TicketIssueTypes = []models.Option{
	{ID: "bug", Label: "Bug"},
	{ID: "task", Label: "Task"},
	{ID: "story", Label: "Story"},
	{ID: "epic", Label: "Epic"},
}

// TicketPriorities are the priorities offered by the ticket dialog.
var TicketPriorities = []models.Option{
	{ID: "highest", Label: "Highest"},
	{ID: "high", Label: "High"},
	{ID: "medium", Label: "Medium"},
	{ID: "low", Label: "Low"},
}

// Options groups every selectable list, keyed by dialog kind.
func Options() map[Kind]any {
	return map[Kind]any{
		KindResolve: map[string][]models.Option{"categories": ResolutionCategories},
		KindTicket: map[string][]models.Option{
			"projects":    TicketProjects,
			"issue_types": TicketIssueTypes,
			"priorities":  TicketPriorities,
		},
	}
}

func findOption(opts []models.Option, id string) (models.Option, bool) {
	for _, o := range opts {
		if o.ID == id {
			return o, true
		}
	}
	return models.Option{}, false
}
