package dialog

import (
	"context"
	"strings"

	"securewatch/internal/models"
)

// TicketCreator files a ticket and assigns its key.
type TicketCreator interface {
	CreateTicket(ctx context.Context, t models.Ticket) (models.Ticket, error)
}

// TicketForm is the local state of a create-ticket dialog. It opens
// prefilled from the incident.
type TicketForm struct {
	Project     string `json:"project" validate:"required,oneof=INFRA SEC OPS DEV"`
	IssueType   string `json:"issue_type" validate:"required,oneof=bug task story epic"`
	Priority    string `json:"priority" validate:"required,oneof=highest high medium low"`
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description"`
	Assignee    string `json:"assignee"`
	Severity    string `json:"severity"`
}

func (f *TicketForm) normalize() {
	f.Project = strings.ToUpper(strings.TrimSpace(f.Project))
	f.IssueType = strings.ToLower(strings.TrimSpace(f.IssueType))
	f.Priority = strings.ToLower(strings.TrimSpace(f.Priority))
	f.Title = strings.TrimSpace(f.Title)
	f.Description = strings.TrimSpace(f.Description)
	f.Assignee = strings.TrimSpace(f.Assignee)
}

func newTicketForm(inc models.Incident) TicketForm {
	return TicketForm{
		Project:     "INFRA",
		IssueType:   "bug",
		Priority:    "high",
		Title:       inc.Title,
		Description: inc.Description,
		Severity:    string(inc.Severity),
	}
}

// TicketDialog files a ticket for an incident.
type TicketDialog struct {
	base
	form    TicketForm
	tickets TicketCreator
}

func (d *TicketDialog) View() View {
	d.mu.Lock()
	defer d.mu.Unlock()
	v := d.viewLocked()
	v.Form = d.form
	v.Options = Options()[KindTicket]
	return v
}

func (d *TicketDialog) Submit(ctx context.Context, decode Decoder) (Outcome, error) {
	d.mu.Lock()
	form := d.form
	d.mu.Unlock()

	return d.submitForm(ctx, decode, &form, func() (models.Notification, *models.Ticket, error) {
		tk, err := d.tickets.CreateTicket(ctx, models.Ticket{
			Project:     form.Project,
			IssueType:   form.IssueType,
			Priority:    form.Priority,
			Title:       form.Title,
			Description: form.Description,
			Assignee:    form.Assignee,
			IncidentID:  d.incidentID,
		})
		if err != nil {
			return models.Notification{}, nil, err
		}
		d.form = form
		return models.Notification{
			Type:        models.NotificationTicketCreated,
			Title:       "Jira Ticket Created",
			Description: "Ticket " + tk.Key + " created successfully",
			Metadata:    map[string]any{"ticket": tk.Key, "project": tk.Project},
		}, &tk, nil
	})
}
