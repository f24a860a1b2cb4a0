package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"securewatch/internal/metrics"
	"securewatch/internal/models"
	"securewatch/internal/repository"
)

type NotificationService struct {
	repo repository.NotificationRepo
}

func NewNotificationService(repo repository.NotificationRepo) *NotificationService {
	return &NotificationService{repo: repo}
}

var (
	ErrInvalidTimeRange = errors.New("invalid time range: from must be <= to")
	errEmptyTitle       = errors.New("notification title is empty")
)

// normalizeToUTC returns t in UTC, preserving zero time values.
func normalizeToUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}

// normalizeType trims spaces and uppercases the notification type filter.
func normalizeType(s string) string {
	return strings.TrimSpace(strings.ToUpper(s))
}

// normalizeAndValidateFilter prepares query parameters and validates the time range.
func normalizeAndValidateFilter(f LogFilter) (time.Time, time.Time, string, error) {
	from := normalizeToUTC(f.From)
	to := normalizeToUTC(f.To)

	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return time.Time{}, time.Time{}, "", ErrInvalidTimeRange
	}

	return from, to, normalizeType(f.Type), nil
}

// Notify appends n to the notification log.
func (s *NotificationService) Notify(ctx context.Context, n models.Notification) error {
	if strings.TrimSpace(n.Title) == "" {
		return errEmptyTitle
	}
	stored, err := s.repo.Append(ctx, n)
	if err != nil {
		return err
	}
	metrics.RecordNotification(stored.Type)
	return nil
}

func (s *NotificationService) List(ctx context.Context, f LogFilter) ([]models.Notification, error) {
	from, to, typ, err := normalizeAndValidateFilter(f)
	if err != nil {
		return nil, err
	}
	return s.repo.List(ctx, from, to, typ)
}
