// Package dialog holds the modal input-collection units of the console.
//
// Every dialog instance owns its form values, its open/closed flag and, for
// the apply-fix dialog, its own progress simulator. Instances share nothing.
// A successful submission emits exactly one notification and closes the
// dialog; a failed precondition returns a *ValidationError and leaves the
// dialog open without notifying anyone.
package dialog

import (
	"context"
	"errors"
	"sync"
	"time"

	"securewatch/internal/models"
	"securewatch/internal/progress"
)

// Kind identifies a dialog type.
type Kind string

const (
	KindReassign Kind = "reassign"
	KindResolve  Kind = "resolve"
	KindTicket   Kind = "ticket"
	KindFix      Kind = "fix"
)

// State is the open/closed flag of a dialog instance.
type State string

const (
	StateOpen   State = "open"
	StateClosed State = "closed"
)

var (
	ErrNotFound       = errors.New("dialog not found")
	ErrClosed         = errors.New("dialog is closed")
	ErrUnknownKind    = errors.New("unknown dialog kind")
	ErrAlreadyApplied = errors.New("fix already applied; close the dialog")
)

// Notifier receives the success notification of a dialog.
type Notifier interface {
	Notify(ctx context.Context, n models.Notification) error
}

// Decoder fills a form from the submitted payload. Fields absent from the
// payload keep their current values.
type Decoder func(v any) error

// View is the read model of a dialog instance.
type View struct {
	ID         string             `json:"id"`
	Kind       Kind               `json:"kind"`
	IncidentID string             `json:"incident_id"`
	State      State              `json:"state"`
	OpenedAt   time.Time          `json:"opened_at"`
	ClosedAt   *time.Time         `json:"closed_at,omitempty"`
	Form       any                `json:"form,omitempty"`
	Options    any                `json:"options,omitempty"`
	Progress   *progress.Snapshot `json:"progress,omitempty"`
}

// Outcome is the result of a submission.
type Outcome struct {
	Notification *models.Notification `json:"notification,omitempty"`
	Ticket       *models.Ticket       `json:"ticket,omitempty"`
	Progress     *progress.Snapshot   `json:"progress,omitempty"`
	Closed       bool                 `json:"closed"`
}

// Dialog is one open modal.
type Dialog interface {
	View() View
	Submit(ctx context.Context, decode Decoder) (Outcome, error)
	// Close reports whether this call closed the dialog.
	Close() bool
}

type base struct {
	id         string
	kind       Kind
	incidentID string
	notifier   Notifier
	now        func() time.Time

	mu       sync.Mutex
	state    State
	openedAt time.Time
	closedAt time.Time
	onClose  func()

	// applied holds the store change of a submission whose notification
	// has not been delivered yet. Retries only resend the notification.
	applied *appliedResult
}

type appliedResult struct {
	notification models.Notification
	ticket       *models.Ticket
}

func (b *base) init(id string, kind Kind, incidentID string, notifier Notifier, now func() time.Time) {
	b.id = id
	b.kind = kind
	b.incidentID = incidentID
	b.notifier = notifier
	b.now = now
	b.state = StateOpen
	b.openedAt = now().UTC()
}

func (b *base) Close() bool {
	b.mu.Lock()
	closed := b.closeLocked()
	fn := b.onClose
	b.mu.Unlock()

	if closed && fn != nil {
		fn()
	}
	return closed
}

func (b *base) closeLocked() bool {
	if b.state == StateClosed {
		return false
	}
	b.state = StateClosed
	b.closedAt = b.now().UTC()
	return true
}

func (b *base) viewLocked() View {
	v := View{
		ID:         b.id,
		Kind:       b.kind,
		IncidentID: b.incidentID,
		State:      b.state,
		OpenedAt:   b.openedAt,
	}
	if !b.closedAt.IsZero() {
		ts := b.closedAt
		v.ClosedAt = &ts
	}
	return v
}

// submitForm runs the shared submit flow of the form dialogs. It must be
// called without b.mu held. apply runs at most once per dialog; once it has
// succeeded, later calls ignore the payload and only retry the notification.
func (b *base) submitForm(ctx context.Context, decode Decoder, form normalizer, apply func() (models.Notification, *models.Ticket, error)) (Outcome, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == StateClosed {
		return Outcome{}, ErrClosed
	}
	if b.applied == nil {
		if decode != nil {
			if err := decode(form); err != nil {
				return Outcome{}, &ValidationError{Fields: map[string]string{"body": err.Error()}}
			}
		}
		form.normalize()
		if err := validateForm(form); err != nil {
			return Outcome{}, err
		}

		n, ticket, err := apply()
		if err != nil {
			return Outcome{}, err
		}
		b.applied = &appliedResult{notification: b.stamp(n), ticket: ticket}
	}

	n := b.applied.notification
	if err := b.notifier.Notify(ctx, n); err != nil {
		return Outcome{}, err
	}
	b.closeLocked()
	return Outcome{Notification: &n, Ticket: b.applied.ticket, Closed: true}, nil
}

func (b *base) stamp(n models.Notification) models.Notification {
	if n.OccurredAt.IsZero() {
		n.OccurredAt = b.now().UTC()
	}
	meta, _ := n.Metadata.(map[string]any)
	if meta == nil {
		meta = map[string]any{}
	}
	meta["incident_id"] = b.incidentID
	meta["dialog_id"] = b.id
	n.Metadata = meta
	return n
}
