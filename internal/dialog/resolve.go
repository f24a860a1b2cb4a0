package dialog

import (
	"context"
	"strings"

	"securewatch/internal/models"
)

// ResolveForm is the local state of a resolve dialog.
type ResolveForm struct {
	Category           string `json:"category" validate:"required,oneof=fixed workaround duplicate false-positive user-error"`
	Resolution         string `json:"resolution" validate:"required"`
	PreventiveMeasures string `json:"preventive_measures"`
}

func (f *ResolveForm) normalize() {
	f.Category = strings.ToLower(strings.TrimSpace(f.Category))
	f.Resolution = strings.TrimSpace(f.Resolution)
	f.PreventiveMeasures = strings.TrimSpace(f.PreventiveMeasures)
}

// ResolveDialog marks an incident resolved under a category.
type ResolveDialog struct {
	base
	form      ResolveForm
	incidents IncidentUpdater
}

func (d *ResolveDialog) View() View {
	d.mu.Lock()
	defer d.mu.Unlock()
	v := d.viewLocked()
	v.Form = d.form
	v.Options = map[string][]models.Option{"categories": ResolutionCategories}
	return v
}

func (d *ResolveDialog) Submit(ctx context.Context, decode Decoder) (Outcome, error) {
	d.mu.Lock()
	form := d.form
	d.mu.Unlock()

	return d.submitForm(ctx, decode, &form, func() (models.Notification, *models.Ticket, error) {
		category, ok := findOption(ResolutionCategories, form.Category)
		if !ok {
			return models.Notification{}, nil, fieldError("category", "is not a resolution category")
		}
		if err := d.incidents.Resolve(ctx, d.incidentID, category, form.Resolution, form.PreventiveMeasures); err != nil {
			return models.Notification{}, nil, err
		}
		d.form = form
		return models.Notification{
			Type:        models.NotificationResolved,
			Title:       "Incident Resolved",
			Description: "Incident " + d.incidentID + " has been marked as " + strings.ToLower(category.Label),
			Metadata:    map[string]any{"category": category.ID},
		}, nil, nil
	})
}
