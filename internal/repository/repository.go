package repository

import (
	"context"
	"database/sql"
	"time"

	"securewatch/internal/models"
	"securewatch/internal/repository/mock"
)

type Authorization interface {
	Create(ctx context.Context, username, hash string) (int, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

type NotificationRepo interface {
	Append(ctx context.Context, n models.Notification) (models.Notification, error)
	List(ctx context.Context, from, to time.Time, typ string) ([]models.Notification, error)
}

type SettingsRepo interface {
	Save(ctx context.Context, s models.Settings) error
	Load(ctx context.Context) (models.Settings, error)
}

type IncidentRepo interface {
	List(ctx context.Context, f mock.IncidentFilter) ([]models.Incident, error)
	Get(ctx context.Context, id string) (models.Incident, error)
	Reassign(ctx context.Context, id string, member models.TeamMember, reason string) (models.Incident, error)
	Resolve(ctx context.Context, id string, category models.Option, details string) (models.Incident, error)
	AppendTimeline(ctx context.Context, id string, e models.TimelineEntry) error
}

type TeamRepo interface {
	Members(ctx context.Context) ([]models.TeamMember, error)
	Member(ctx context.Context, id string) (models.TeamMember, error)
}

type TicketRepo interface {
	CreateTicket(ctx context.Context, t models.Ticket) (models.Ticket, error)
	List(ctx context.Context, incidentID string) ([]models.Ticket, error)
}

// Repository groups the SQLite-backed stores and the in-memory mock data.
type Repository struct {
	Notifications NotificationRepo
	Settings      SettingsRepo
	Auth          Authorization
	Incidents     IncidentRepo
	Team          TeamRepo
	Tickets       TicketRepo
	Catalog       *mock.Catalog
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Notifications: NewNotificationSQLite(db),
		Settings:      NewSettingsSQLite(db),
		Auth:          NewUserSQLite(db),
		Incidents:     mock.NewIncidentStore(mock.SeedIncidents()),
		Team:          mock.NewTeamStore(mock.SeedTeam()),
		Tickets:       mock.NewTicketStore(),
		Catalog:       mock.NewCatalog(),
	}
}
