package service

import (
	"context"
	"time"

	"securewatch/internal/dialog"
	"securewatch/internal/logger"
	"securewatch/internal/metrics"
	"securewatch/internal/models"
	"securewatch/internal/progress"
	"securewatch/internal/repository"
)

type Authorization interface {
	SignUp(ctx context.Context, username, password string) (int, error)
	GenerateToken(ctx context.Context, username, password string) (string, error)
	ParseToken(accessToken string) (int, error)
}

// Incidents exposes the incident list and detail pages and their actions.
type Incidents interface {
	List(ctx context.Context, f IncidentFilter) ([]models.IncidentSummary, error)
	Get(ctx context.Context, id string) (IncidentDetail, error)
	Team(ctx context.Context) ([]models.TeamMember, error)
	ProposedFixes(ctx context.Context) []models.ProposedFix
	FixSteps(ctx context.Context) []models.FixStep
	ExecuteSolution(ctx context.Context, id string) (models.Notification, error)
	ExportReport(ctx context.Context, id string) (ReportFile, error)
}

// Dashboard exposes the read-only home view.
type Dashboard interface {
	Get(ctx context.Context) (models.Dashboard, error)
}

// Dialogs exposes dialog sessions.
type Dialogs interface {
	Open(ctx context.Context, incidentID string, kind dialog.Kind) (dialog.View, error)
	View(ctx context.Context, id string) (dialog.View, error)
	Submit(ctx context.Context, id string, decode dialog.Decoder) (dialog.Outcome, error)
	Close(ctx context.Context, id string) (dialog.View, error)
	FixDialog(id string) (*dialog.FixDialog, error)
}

// Notifications exposes the append-only notification log.
type Notifications interface {
	Notify(ctx context.Context, n models.Notification) error
	List(ctx context.Context, f LogFilter) ([]models.Notification, error)
}

// Settings exposes the settings page.
type Settings interface {
	Get(ctx context.Context) (models.Settings, error)
	Update(ctx context.Context, s models.Settings) (models.Settings, error)
}

// Sweeper runs the background loop that evicts idle dialog sessions.
// Stop via context cancellation in main() for graceful shutdown.
type Sweeper interface {
	Run(ctx context.Context, tick time.Duration)
}

// Digest builds the scheduled weekly digest.
type Digest interface {
	RunWeeklyDigest(ctx context.Context) (bool, error)
}

// Config carries the tunables services need from the loaded configuration.
type Config struct {
	SigningKey      string
	TokenTTL        time.Duration
	SimulatorTick   time.Duration
	SessionTTL      time.Duration
	DefaultSettings models.Settings
	// FixSteps overrides the canned apply-fix steps when set.
	FixSteps []models.FixStep
}

// Service aggregates all sub-services.
type Service struct {
	Incidents
	Dashboard
	Dialogs
	Notifications
	Settings
	Sweeper
	Digest
	Authorization
}

// NewService wires the repository layer into concrete services. ctx bounds
// background work such as running fixes.
func NewService(ctx context.Context, repos *repository.Repository, cfg Config, log *logger.Logger) *Service {
	notifications := NewNotificationService(repos.Notifications)
	incidents := NewIncidentService(repos, notifications)

	steps := cfg.FixSteps
	if len(steps) == 0 {
		steps = repos.Catalog.FixSteps()
	}

	manager := dialog.NewManager(ctx, dialog.Config{
		SessionTTL:    cfg.SessionTTL,
		Tick:          cfg.SimulatorTick,
		FixSteps:      steps,
		ProposedFixes: repos.Catalog.ProposedFixes(),
	}, dialog.Deps{
		Notifier:  notifications,
		Team:      repos.Team,
		Incidents: incidents,
		Tickets:   repos.Tickets,
	},
		dialog.WithErrorHandler(func(err error) {
			log.Errorw("fix_notification_failed", "err", err)
		}),
		dialog.WithFixCompleted(func(incidentID string, snap progress.Snapshot) {
			metrics.RecordFixCompleted(snap.CompletedAt.Sub(snap.StartedAt))
			err := incidents.Resolve(ctx, incidentID, models.Option{ID: "fixed", Label: "Fixed"}, "Automated fix applied", "")
			if err != nil {
				log.Errorw("fix_resolve_failed", "incident_id", incidentID, "err", err)
				return
			}
			log.Infow("fix_completed", "incident_id", incidentID, "steps", snap.Steps)
		}),
	)
	dialogs := NewDialogService(manager, incidents)
	settings := NewSettingsService(repos.Settings, cfg.DefaultSettings)

	return &Service{
		Incidents:     incidents,
		Dashboard:     NewDashboardService(repos.Incidents, repos.Catalog),
		Dialogs:       dialogs,
		Notifications: notifications,
		Settings:      settings,
		Sweeper:       NewSweeperService(dialogs),
		Digest:        NewDigestService(settings, repos.Incidents, notifications),
		Authorization: NewAuthService(repos.Auth, cfg.SigningKey, cfg.TokenTTL),
	}
}
