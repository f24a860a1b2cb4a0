package service

import (
	"context"

	"securewatch/internal/models"
	"securewatch/internal/repository"
	"securewatch/internal/repository/mock"
)

// DashboardService assembles the home view from the mock datasets.
type DashboardService struct {
	incidents repository.IncidentRepo
	catalog   *mock.Catalog
}

func NewDashboardService(incidents repository.IncidentRepo, catalog *mock.Catalog) *DashboardService {
	return &DashboardService{incidents: incidents, catalog: catalog}
}

// Get returns the metric tiles, the incident cards and the AI analysis panel.
func (s *DashboardService) Get(ctx context.Context) (models.Dashboard, error) {
	incs, err := s.incidents.List(ctx, mock.IncidentFilter{})
	if err != nil {
		return models.Dashboard{}, err
	}
	summaries := make([]models.IncidentSummary, len(incs))
	for i, inc := range incs {
		summaries[i] = inc.Summary()
	}
	return models.Dashboard{
		Metrics:   s.catalog.MetricTiles(),
		Incidents: summaries,
		Analysis:  s.catalog.Analysis(),
	}, nil
}
