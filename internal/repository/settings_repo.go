package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"securewatch/internal/models"
)

type SettingsSQLite struct {
	db *sql.DB
}

func NewSettingsSQLite(db *sql.DB) *SettingsSQLite {
	return &SettingsSQLite{db: db}
}

const (
	settingsRowID = 1

	upsertSettingsSQL = `
		INSERT INTO settings (id, payload, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			payload=excluded.payload,
			updated_at=excluded.updated_at
	`

	selectSettingsSQL = `SELECT payload, updated_at FROM settings WHERE id=?`
)

// Save upserts the single settings row (id always 1).
func (r *SettingsSQLite) Save(ctx context.Context, s models.Settings) error {
	ts := s.UpdatedAt
	if ts.IsZero() {
		ts = time.Now().UTC()
	} else {
		ts = ts.UTC()
	}
	s.UpdatedAt = ts

	payload, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	_, err = r.db.ExecContext(ctx, upsertSettingsSQL, settingsRowID, string(payload), ts)
	return err
}

// Load fetches the settings row. A zero Settings (UpdatedAt zero) means
// nothing has been saved yet.
func (r *SettingsSQLite) Load(ctx context.Context) (models.Settings, error) {
	var (
		payload   string
		updatedAt time.Time
	)
	err := r.db.QueryRowContext(ctx, selectSettingsSQL, settingsRowID).Scan(&payload, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Settings{}, nil
		}
		return models.Settings{}, err
	}

	var s models.Settings
	if err := json.Unmarshal([]byte(payload), &s); err != nil {
		return models.Settings{}, fmt.Errorf("decode settings: %w", err)
	}
	s.UpdatedAt = updatedAt.UTC()
	return s, nil
}
