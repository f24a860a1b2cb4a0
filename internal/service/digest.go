package service

import (
	"context"
	"fmt"

	"securewatch/internal/models"
	"securewatch/internal/repository"
	"securewatch/internal/repository/mock"
)

// DigestService builds the weekly incident digest.
type DigestService struct {
	settings  *SettingsService
	incidents repository.IncidentRepo
	notifier  *NotificationService
}

func NewDigestService(settings *SettingsService, incidents repository.IncidentRepo, notifier *NotificationService) *DigestService {
	return &DigestService{settings: settings, incidents: incidents, notifier: notifier}
}

// RunWeeklyDigest emits one WEEKLY_DIGEST notification summarising incidents
// by status. It does nothing and reports false while weekly reports are off.
func (s *DigestService) RunWeeklyDigest(ctx context.Context) (bool, error) {
	st, err := s.settings.Get(ctx)
	if err != nil {
		return false, fmt.Errorf("load settings: %w", err)
	}
	if !st.WeeklyReports {
		return false, nil
	}

	incs, err := s.incidents.List(ctx, mock.IncidentFilter{})
	if err != nil {
		return false, fmt.Errorf("list incidents: %w", err)
	}
	counts := map[models.Status]int{}
	for _, inc := range incs {
		counts[inc.Status]++
	}

	err = s.notifier.Notify(ctx, models.Notification{
		Type:  models.NotificationWeeklyDigest,
		Title: "Weekly Incident Digest",
		Description: fmt.Sprintf("%s: %d incidents (%d open, %d investigating, %d resolved)",
			st.OrganizationName, len(incs),
			counts[models.StatusOpen], counts[models.StatusInvestigating], counts[models.StatusResolved]),
		Metadata: map[string]any{
			"total":         len(incs),
			"open":          counts[models.StatusOpen],
			"investigating": counts[models.StatusInvestigating],
			"resolved":      counts[models.StatusResolved],
		},
	})
	if err != nil {
		return false, err
	}
	return true, nil
}
