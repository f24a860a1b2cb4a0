package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"securewatch/internal/logger"
	"securewatch/internal/models"
	"securewatch/internal/repository"
	"securewatch/internal/repository/mock"
)

// memNotificationRepo keeps appended notifications in memory.
type memNotificationRepo struct {
	mu    sync.Mutex
	items []models.Notification
}

func (r *memNotificationRepo) Append(_ context.Context, n models.Notification) (models.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, n)
	return n, nil
}

func (r *memNotificationRepo) List(_ context.Context, _, _ time.Time, typ string) ([]models.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Notification
	for _, n := range r.items {
		if typ == "" || n.Type == typ {
			out = append(out, n)
		}
	}
	return out, nil
}

func (r *memNotificationRepo) byType(typ string) []models.Notification {
	out, _ := r.List(context.Background(), time.Time{}, time.Time{}, typ)
	return out
}

// memSettingsRepo is an in-memory repository.SettingsRepo.
type memSettingsRepo struct {
	saved   models.Settings
	loadErr error
}

func (r *memSettingsRepo) Save(_ context.Context, s models.Settings) error {
	if s.UpdatedAt.IsZero() {
		s.UpdatedAt = time.Now().UTC()
	}
	r.saved = s
	return nil
}

func (r *memSettingsRepo) Load(context.Context) (models.Settings, error) {
	return r.saved, r.loadErr
}

type testEnv struct {
	svc           *Service
	notifications *memNotificationRepo
	settings      *memSettingsRepo
	repos         *repository.Repository
}

func newTestEnv(t *testing.T, steps ...models.FixStep) *testEnv {
	t.Helper()

	catalog := mock.NewCatalog()
	if len(steps) == 0 {
		steps = []models.FixStep{
			{ID: "a", Label: "step a", Duration: 5 * time.Millisecond},
			{ID: "b", Label: "step b", Duration: 5 * time.Millisecond},
		}
	}
	env := &testEnv{
		notifications: &memNotificationRepo{},
		settings:      &memSettingsRepo{},
	}
	env.repos = &repository.Repository{
		Notifications: env.notifications,
		Settings:      env.settings,
		Auth:          &mockAuthRepo{},
		Incidents:     mock.NewIncidentStore(mock.SeedIncidents()),
		Team:          mock.NewTeamStore(mock.SeedTeam()),
		Tickets:       mock.NewTicketStore(mock.WithTicketNumbers(func() int { return 1234 })),
		Catalog:       catalog,
	}

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	env.svc = NewService(ctx, env.repos, Config{
		SigningKey:    testSigningKey,
		TokenTTL:      time.Hour,
		SimulatorTick: time.Millisecond,
		SessionTTL:    time.Minute,
		DefaultSettings: models.Settings{
			OrganizationName: "Acme Corp",
			Timezone:         "utc",
			IncidentPrefix:   "INC",
		},
		FixSteps: steps,
	}, logger.Nop())
	t.Cleanup(func() { env.svc.Dialogs.(*DialogService).CloseAll() })

	return env
}
