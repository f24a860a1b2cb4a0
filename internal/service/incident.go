package service

import (
	"context"
	"errors"
	"fmt"

	"securewatch/internal/models"
	"securewatch/internal/report"
	"securewatch/internal/repository"
	"securewatch/internal/repository/mock"
)

// ErrIncidentNotFound is returned for unknown incident ids.
var ErrIncidentNotFound = mock.ErrNotFound

// IncidentDetail is the incident page: the full incident with its badge
// labels and the tickets filed for it.
type IncidentDetail struct {
	models.Incident
	SeverityLabel string          `json:"severity_label"`
	StatusLabel   string          `json:"status_label"`
	Tickets       []models.Ticket `json:"tickets"`
}

// ReportFile is a rendered incident report ready for download.
type ReportFile struct {
	Name        string
	ContentType string
	Body        []byte
}

type IncidentService struct {
	incidents repository.IncidentRepo
	team      repository.TeamRepo
	tickets   repository.TicketRepo
	catalog   *mock.Catalog
	notifier  *NotificationService
}

func NewIncidentService(repos *repository.Repository, notifier *NotificationService) *IncidentService {
	return &IncidentService{
		incidents: repos.Incidents,
		team:      repos.Team,
		tickets:   repos.Tickets,
		catalog:   repos.Catalog,
		notifier:  notifier,
	}
}

func (s *IncidentService) List(ctx context.Context, f IncidentFilter) ([]models.IncidentSummary, error) {
	incs, err := s.incidents.List(ctx, mock.IncidentFilter{
		Severity: f.Severity,
		Status:   f.Status,
		Query:    f.Query,
	})
	if err != nil {
		return nil, err
	}
	out := make([]models.IncidentSummary, len(incs))
	for i, inc := range incs {
		out[i] = inc.Summary()
	}
	return out, nil
}

func (s *IncidentService) Get(ctx context.Context, id string) (IncidentDetail, error) {
	inc, err := s.incidents.Get(ctx, id)
	if err != nil {
		return IncidentDetail{}, err
	}
	tickets, err := s.tickets.List(ctx, id)
	if err != nil {
		return IncidentDetail{}, fmt.Errorf("list tickets of %s: %w", id, err)
	}
	return IncidentDetail{
		Incident:      inc,
		SeverityLabel: report.SeverityLabel(inc.Severity),
		StatusLabel:   report.StatusLabel(inc.Status),
		Tickets:       tickets,
	}, nil
}

// Incident returns the raw incident, as needed to open a dialog.
func (s *IncidentService) Incident(ctx context.Context, id string) (models.Incident, error) {
	return s.incidents.Get(ctx, id)
}

func (s *IncidentService) Team(ctx context.Context) ([]models.TeamMember, error) {
	return s.team.Members(ctx)
}

func (s *IncidentService) ProposedFixes(context.Context) []models.ProposedFix {
	return s.catalog.ProposedFixes()
}

func (s *IncidentService) FixSteps(context.Context) []models.FixStep {
	return s.catalog.FixSteps()
}

// ExecuteSolution starts the recommended solution. Nothing is deployed; the
// request is recorded on the timeline and announced.
func (s *IncidentService) ExecuteSolution(ctx context.Context, id string) (models.Notification, error) {
	err := s.incidents.AppendTimeline(ctx, id, models.TimelineEntry{
		Event: "Automated solution deployment initiated",
		Type:  "solution",
		User:  "AI Assistant",
	})
	if err != nil {
		return models.Notification{}, err
	}
	n := models.Notification{
		Type:        models.NotificationSolutionStarted,
		Title:       "Solution Executing",
		Description: "Automated solution deployment initiated",
		Metadata:    map[string]any{"incident_id": id},
	}
	if err := s.notifier.Notify(ctx, n); err != nil {
		return models.Notification{}, err
	}
	return n, nil
}

// ExportReport renders the plain-text report of an incident.
func (s *IncidentService) ExportReport(ctx context.Context, id string) (ReportFile, error) {
	inc, err := s.incidents.Get(ctx, id)
	if err != nil {
		return ReportFile{}, err
	}
	body, err := report.Bytes(inc)
	if err != nil {
		return ReportFile{}, err
	}
	err = s.notifier.Notify(ctx, models.Notification{
		Type:        models.NotificationReportExported,
		Title:       "Report Exported",
		Description: fmt.Sprintf("Incident report %s downloaded successfully", inc.ID),
		Metadata:    map[string]any{"incident_id": inc.ID, "file": report.Filename(inc.ID)},
	})
	if err != nil {
		return ReportFile{}, err
	}
	return ReportFile{
		Name:        report.Filename(inc.ID),
		ContentType: report.ContentType,
		Body:        body,
	}, nil
}

// Reassign and Resolve apply dialog outcomes to the incident store.

func (s *IncidentService) Reassign(ctx context.Context, incidentID string, member models.TeamMember, reason string) error {
	_, err := s.incidents.Reassign(ctx, incidentID, member, reason)
	return err
}

func (s *IncidentService) Resolve(ctx context.Context, incidentID string, category models.Option, details, preventive string) error {
	if preventive != "" {
		details += " (preventive: " + preventive + ")"
	}
	_, err := s.incidents.Resolve(ctx, incidentID, category, details)
	return err
}

// IsNotFound reports whether err means an unknown incident.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrIncidentNotFound)
}
