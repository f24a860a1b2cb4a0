package service

import (
	"context"
	"testing"
)

func TestDashboardService_Get(t *testing.T) {
	env := newTestEnv(t)

	d, err := env.svc.Dashboard.Get(context.Background())
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(d.Metrics) != 4 {
		t.Fatalf("want 4 metric tiles, got %d", len(d.Metrics))
	}
	if d.Metrics[0].Title != "Active Incidents" || d.Metrics[0].Value != "12" {
		t.Fatalf("unexpected first tile: %+v", d.Metrics[0])
	}
	if len(d.Incidents) != 3 {
		t.Fatalf("want 3 incident cards, got %d", len(d.Incidents))
	}
	if len(d.Analysis.SimilarIncidents) != 3 {
		t.Fatalf("want 3 similar incidents, got %d", len(d.Analysis.SimilarIncidents))
	}
}
