package repository

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"securewatch/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func ctx(t *testing.T) context.Context {
	t.Helper()
	c, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	t.Cleanup(cancel)
	return c
}

func TestNotificationAppend_Success_WithDefaults(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer db.Close()

	repo := NewNotificationSQLite(db)

	mock.ExpectExec(regexp.QuoteMeta(insertNotificationSQL)).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(),
			models.NotificationTicketCreated, "Jira Ticket Created", "Ticket INFRA-1234 created successfully",
			`{"key":"INFRA-1234"}`,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	got, err := repo.Append(ctx(t), models.Notification{
		Type:        "  ticket_created ",
		Title:       "Jira Ticket Created",
		Description: "Ticket INFRA-1234 created successfully",
		Metadata:    map[string]any{"key": "INFRA-1234"},
	})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	if got.ID == "" {
		t.Fatalf("expected generated id")
	}
	if got.OccurredAt.IsZero() || got.OccurredAt.Location() != time.UTC {
		t.Fatalf("expected UTC timestamp, got %v", got.OccurredAt)
	}
	if got.Type != models.NotificationTicketCreated {
		t.Fatalf("type not normalized: %q", got.Type)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestNotificationAppend_DBError(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer db.Close()

	repo := NewNotificationSQLite(db)

	mock.ExpectExec("INSERT INTO notifications").
		WillReturnError(errors.New("down"))

	_, err = repo.Append(ctx(t), models.Notification{
		Type:        models.NotificationResolved,
		Description: "x",
	})
	if err == nil || !strings.Contains(err.Error(), "down") {
		t.Fatalf("expected error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestNotificationList_NoFilters_And_MetadataParsing(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer db.Close()

	repo := NewNotificationSQLite(db)

	now := time.Date(2024, 1, 15, 14, 32, 0, 0, time.UTC)
	js, _ := json.Marshal(map[string]any{"incident_id": "INC-2024-0952"})

	rows := sqlmock.NewRows([]string{"id", "occurred_at", "type", "title", "message", "meta"}).
		AddRow("2", now.Add(time.Minute), models.NotificationResolved, "Incident Resolved", "m2", nil).
		AddRow("1", now, models.NotificationReassigned, "Incident Reassigned", "m1", string(js))

	mock.ExpectQuery(regexp.QuoteMeta(selectNotificationsSQL + ` ORDER BY occurred_at DESC`)).
		WillReturnRows(rows)

	got, err := repo.List(ctx(t), time.Time{}, time.Time{}, "")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("want 2, got %d", len(got))
	}
	if got[0].ID != "2" || got[1].ID != "1" {
		t.Fatalf("unexpected ids: %v, %v", got[0].ID, got[1].ID)
	}
	if got[1].Title != "Incident Reassigned" {
		t.Fatalf("unexpected title: %q", got[1].Title)
	}
	b1, _ := json.Marshal(got[1].Metadata)
	if string(b1) != string(js) {
		t.Fatalf("metadata mismatch: %s vs %s", string(b1), string(js))
	}
	if got[0].Metadata != nil {
		t.Fatalf("expected nil meta, got %#v", got[0].Metadata)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestNotificationList_MalformedMetaKeptRaw(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer db.Close()

	repo := NewNotificationSQLite(db)

	rows := sqlmock.NewRows([]string{"id", "occurred_at", "type", "title", "message", "meta"}).
		AddRow("1", time.Now().UTC(), models.NotificationFixApplied, "t", "m", "{not json")
	mock.ExpectQuery("SELECT id, occurred_at, type, title, message, meta FROM notifications").
		WillReturnRows(rows)

	got, err := repo.List(ctx(t), time.Time{}, time.Time{}, "")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if raw, ok := got[0].Metadata.(string); !ok || raw != "{not json" {
		t.Fatalf("expected raw meta, got %#v", got[0].Metadata)
	}
}

func TestNotificationList_WithFilters_OrderAndArgs(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer db.Close()

	repo := NewNotificationSQLite(db)

	from := time.Date(2024, 1, 15, 11, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

	query := selectNotificationsSQL + ` WHERE occurred_at >= ? AND occurred_at <= ? AND type = ? ORDER BY occurred_at DESC`

	rows := sqlmock.NewRows([]string{"id", "occurred_at", "type", "title", "message", "meta"}).
		AddRow("3", to, models.NotificationFixApplied, "AI Fix Applied Successfully", "c", nil)

	mock.ExpectQuery(regexp.QuoteMeta(query)).
		WithArgs("2024-01-15 11:00:00", "2024-01-15 12:00:00", models.NotificationFixApplied).
		WillReturnRows(rows)

	got, err := repo.List(ctx(t), from, to, " fix_applied ")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 1 || got[0].ID != "3" {
		t.Fatalf("unexpected results: %+v", got)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestNotificationList_ScanError(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer db.Close()

	repo := NewNotificationSQLite(db)

	rows := sqlmock.NewRows([]string{"id", "occurred_at", "type", "title", "message", "meta"}).
		// occurred_at wrong type to force scan error
		AddRow("x", 123, "INFO", "t", "msg", nil)

	mock.ExpectQuery(regexp.QuoteMeta(selectNotificationsSQL + ` ORDER BY occurred_at DESC`)).
		WillReturnRows(rows)

	if _, err = repo.List(ctx(t), time.Time{}, time.Time{}, ""); err == nil {
		t.Fatalf("expected scan error, got nil")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}
