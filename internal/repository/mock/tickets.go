package mock

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"securewatch/internal/models"
)

var errEmptyProject = errors.New("create ticket: empty project")

// TicketStore files mock tracker tickets. Keys are <PROJECT>-<1000..1999>.
type TicketStore struct {
	mu      sync.Mutex
	next    func() int
	now     func() time.Time
	tickets []models.Ticket
}

// TicketOption configures a TicketStore.
type TicketOption func(*TicketStore)

// WithTicketNumbers replaces the random ticket number source.
func WithTicketNumbers(next func() int) TicketOption {
	return func(s *TicketStore) { s.next = next }
}

func NewTicketStore(opts ...TicketOption) *TicketStore {
	s := &TicketStore{
		next: func() int { return 1000 + rand.IntN(1000) },
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *TicketStore) CreateTicket(_ context.Context, t models.Ticket) (models.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	project := strings.ToUpper(strings.TrimSpace(t.Project))
	if project == "" {
		return models.Ticket{}, errEmptyProject
	}
	t.Project = project
	t.Key = fmt.Sprintf("%s-%d", project, s.next())
	if t.CreatedAt.IsZero() {
		t.CreatedAt = s.now().UTC()
	}
	s.tickets = append(s.tickets, t)
	return t, nil
}

// List returns tickets filed for incidentID, or every ticket when it is empty.
func (s *TicketStore) List(_ context.Context, incidentID string) ([]models.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Ticket, 0, len(s.tickets))
	for _, t := range s.tickets {
		if incidentID == "" || t.IncidentID == incidentID {
			out = append(out, t)
		}
	}
	return out, nil
}
