package dialog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"securewatch/internal/models"
)

// ErrMemberNotFound is returned by a TeamDirectory for unknown member ids.
var ErrMemberNotFound = errors.New("team member not found")

// TeamDirectory resolves selectable team members.
type TeamDirectory interface {
	Members(ctx context.Context) ([]models.TeamMember, error)
	Member(ctx context.Context, id string) (models.TeamMember, error)
}

// IncidentUpdater applies dialog outcomes to the mock incident store.
type IncidentUpdater interface {
	Reassign(ctx context.Context, incidentID string, member models.TeamMember, reason string) error
	Resolve(ctx context.Context, incidentID string, category models.Option, details, preventive string) error
}

// ReassignForm is the local state of a reassign dialog.
type ReassignForm struct {
	CurrentAssignee string `json:"current_assignee"`
	MemberID        string `json:"member_id" validate:"required"`
	Reason          string `json:"reason"`
}

func (f *ReassignForm) normalize() {
	f.MemberID = strings.TrimSpace(f.MemberID)
	f.Reason = strings.TrimSpace(f.Reason)
}

// ReassignDialog hands an incident over to another team member.
type ReassignDialog struct {
	base
	form      ReassignForm
	team      TeamDirectory
	incidents IncidentUpdater
}

func (d *ReassignDialog) View() View {
	d.mu.Lock()
	defer d.mu.Unlock()
	v := d.viewLocked()
	v.Form = d.form
	return v
}

func (d *ReassignDialog) Submit(ctx context.Context, decode Decoder) (Outcome, error) {
	form := d.formCopy()
	return d.submitForm(ctx, decode, &form, func() (models.Notification, *models.Ticket, error) {
		member, err := d.team.Member(ctx, form.MemberID)
		if errors.Is(err, ErrMemberNotFound) {
			return models.Notification{}, nil, fieldError("member_id", "is not a known team member")
		}
		if err != nil {
			return models.Notification{}, nil, fmt.Errorf("lookup member %q: %w", form.MemberID, err)
		}
		if !member.Available {
			return models.Notification{}, nil, fieldError("member_id", "is not available")
		}
		if err := d.incidents.Reassign(ctx, d.incidentID, member, form.Reason); err != nil {
			return models.Notification{}, nil, err
		}
		d.form = form
		return models.Notification{
			Type:        models.NotificationReassigned,
			Title:       "Incident Reassigned",
			Description: "Successfully reassigned to " + member.Name,
			Metadata: map[string]any{
				"from":   form.CurrentAssignee,
				"to":     member.Name,
				"reason": form.Reason,
			},
		}, nil, nil
	})
}

func (d *ReassignDialog) formCopy() ReassignForm {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.form
}
