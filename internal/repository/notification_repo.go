package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"securewatch/internal/models"

	"github.com/google/uuid"
)

type NotificationSQLite struct {
	db *sql.DB
}

func NewNotificationSQLite(db *sql.DB) *NotificationSQLite { return &NotificationSQLite{db: db} }

const insertNotificationSQL = `
		INSERT INTO notifications (id, occurred_at, type, title, message, meta)
		VALUES (?, ?, ?, ?, ?, ?)
	`

// sqliteTimeLayout matches SQLite's CURRENT_TIMESTAMP so stored values and
// filter bounds compare as text.
const sqliteTimeLayout = "2006-01-02 15:04:05"

const selectNotificationsSQL = `SELECT id, occurred_at, type, title, message, meta FROM notifications`

// Append inserts a notification, filling ID and OccurredAt when empty, and
// returns the stored row.
func (r *NotificationSQLite) Append(ctx context.Context, n models.Notification) (models.Notification, error) {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.OccurredAt.IsZero() {
		n.OccurredAt = time.Now().UTC()
	} else {
		n.OccurredAt = n.OccurredAt.UTC()
	}
	n.Type = strings.ToUpper(strings.TrimSpace(n.Type))

	var metaPtr *string
	if n.Metadata != nil {
		if b, err := json.Marshal(n.Metadata); err == nil {
			s := string(b)
			metaPtr = &s
		}
	}

	_, err := r.db.ExecContext(ctx, insertNotificationSQL,
		n.ID,
		n.OccurredAt.Format(sqliteTimeLayout),
		n.Type,
		n.Title,
		n.Description,
		metaPtr,
	)
	if err != nil {
		return models.Notification{}, err
	}
	return n, nil
}

// List returns notifications filtered by [from, to] (inclusive) and/or type,
// newest first.
func (r *NotificationSQLite) List(ctx context.Context, from, to time.Time, typ string) ([]models.Notification, error) {
	var (
		conds []string
		args  []any
	)

	if !from.IsZero() {
		conds = append(conds, "occurred_at >= ?")
		args = append(args, from.UTC().Format(sqliteTimeLayout))
	}
	if !to.IsZero() {
		conds = append(conds, "occurred_at <= ?")
		args = append(args, to.UTC().Format(sqliteTimeLayout))
	}
	if typ = strings.ToUpper(strings.TrimSpace(typ)); typ != "" {
		conds = append(conds, "type = ?")
		args = append(args, typ)
	}

	q := selectNotificationsSQL
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY occurred_at DESC"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.Notification, 0, 64)
	for rows.Next() {
		var n models.Notification
		var metaStr sql.NullString
		if err := rows.Scan(&n.ID, &n.OccurredAt, &n.Type, &n.Title, &n.Description, &metaStr); err != nil {
			return nil, err
		}
		n.OccurredAt = n.OccurredAt.UTC()

		if metaStr.Valid && metaStr.String != "" {
			var v any
			if err := json.Unmarshal([]byte(metaStr.String), &v); err == nil {
				n.Metadata = v
			} else {
				n.Metadata = metaStr.String // keep raw if malformed
			}
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
