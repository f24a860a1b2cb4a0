package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"securewatch/internal/models"
	"securewatch/internal/repository"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidSettings wraps a settings validation failure.
var ErrInvalidSettings = errors.New("invalid settings")

type SettingsService struct {
	repo     repository.SettingsRepo
	defaults models.Settings
	validate *validator.Validate
}

func NewSettingsService(repo repository.SettingsRepo, defaults models.Settings) *SettingsService {
	return &SettingsService{repo: repo, defaults: defaults, validate: validator.New()}
}

// Get returns the saved settings, or the configured defaults before the
// first save.
func (s *SettingsService) Get(ctx context.Context) (models.Settings, error) {
	saved, err := s.repo.Load(ctx)
	if err != nil {
		return models.Settings{}, err
	}
	if saved.UpdatedAt.IsZero() {
		return s.defaults, nil
	}
	return saved, nil
}

// Update validates and stores in, returning what was saved.
func (s *SettingsService) Update(ctx context.Context, in models.Settings) (models.Settings, error) {
	in.OrganizationName = strings.TrimSpace(in.OrganizationName)
	in.IncidentPrefix = strings.ToUpper(strings.TrimSpace(in.IncidentPrefix))
	in.Timezone = strings.TrimSpace(in.Timezone)
	in.UpdatedAt = time.Time{} // stamped by the repository

	if err := s.validate.Struct(in); err != nil {
		return models.Settings{}, fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}
	if err := s.repo.Save(ctx, in); err != nil {
		return models.Settings{}, err
	}
	return s.repo.Load(ctx)
}
