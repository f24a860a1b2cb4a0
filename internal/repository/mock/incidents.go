// Package mock holds the in-memory datasets behind the console: incidents,
// team roster, tickets and the canned dashboard catalog. Nothing here is
// persisted; stores are rebuilt from the seed on every start.
package mock

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"securewatch/internal/models"
)

// ErrNotFound is returned for unknown incident ids.
var ErrNotFound = errors.New("incident not found")

// IncidentFilter narrows List. Empty fields match everything.
type IncidentFilter struct {
	Severity models.Severity
	Status   models.Status
	Query    string // case-insensitive match on id, title or assignee
}

// StoreOption configures an IncidentStore.
type StoreOption func(*IncidentStore)

// WithClock sets the clock used for timeline entries.
func WithClock(now func() time.Time) StoreOption {
	return func(s *IncidentStore) { s.now = now }
}

// IncidentStore keeps the mock incidents in seed order.
type IncidentStore struct {
	mu        sync.Mutex
	now       func() time.Time
	order     []string
	incidents map[string]models.Incident
}

func NewIncidentStore(seed []models.Incident, opts ...StoreOption) *IncidentStore {
	s := &IncidentStore{
		now:       time.Now,
		incidents: make(map[string]models.Incident, len(seed)),
	}
	for _, opt := range opts {
		opt(s)
	}
	for _, inc := range seed {
		if _, dup := s.incidents[inc.ID]; !dup {
			s.order = append(s.order, inc.ID)
		}
		s.incidents[inc.ID] = cloneIncident(inc)
	}
	return s
}

func (s *IncidentStore) List(_ context.Context, f IncidentFilter) ([]models.Incident, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	needle := strings.ToLower(strings.TrimSpace(f.Query))
	out := make([]models.Incident, 0, len(s.order))
	for _, id := range s.order {
		inc := s.incidents[id]
		if f.Severity != "" && inc.Severity != f.Severity {
			continue
		}
		if f.Status != "" && inc.Status != f.Status {
			continue
		}
		if needle != "" && !matchesQuery(needle, inc) {
			continue
		}
		out = append(out, cloneIncident(inc))
	}
	return out, nil
}

func (s *IncidentStore) Get(_ context.Context, id string) (models.Incident, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	inc, ok := s.incidents[id]
	if !ok {
		return models.Incident{}, ErrNotFound
	}
	return cloneIncident(inc), nil
}

// Reassign hands the incident to member and records it on the timeline.
func (s *IncidentStore) Reassign(_ context.Context, id string, member models.TeamMember, reason string) (models.Incident, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	inc, ok := s.incidents[id]
	if !ok {
		return models.Incident{}, ErrNotFound
	}
	event := member.Name + " assigned"
	if reason = strings.TrimSpace(reason); reason != "" {
		event += ": " + reason
	}
	inc.Assignee = member.Name
	inc.Timeline = append(inc.Timeline, s.entry(event, "assignment", "Manual Reassignment"))
	s.incidents[id] = inc
	return cloneIncident(inc), nil
}

// Resolve marks the incident resolved under the given category.
func (s *IncidentStore) Resolve(_ context.Context, id string, category models.Option, details string) (models.Incident, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	inc, ok := s.incidents[id]
	if !ok {
		return models.Incident{}, ErrNotFound
	}
	event := "Resolved as " + strings.ToLower(category.Label)
	if details = strings.TrimSpace(details); details != "" {
		event += ": " + details
	}
	inc.Status = models.StatusResolved
	inc.Timeline = append(inc.Timeline, s.entry(event, "solution", inc.Assignee))
	s.incidents[id] = inc
	return cloneIncident(inc), nil
}

// AppendTimeline adds e to the incident timeline; an empty Time is stamped.
func (s *IncidentStore) AppendTimeline(_ context.Context, id string, e models.TimelineEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	inc, ok := s.incidents[id]
	if !ok {
		return ErrNotFound
	}
	if e.Time == "" {
		e.Time = s.now().UTC().Format(time.TimeOnly)
	}
	inc.Timeline = append(inc.Timeline, e)
	s.incidents[id] = inc
	return nil
}

func (s *IncidentStore) entry(event, typ, user string) models.TimelineEntry {
	return models.TimelineEntry{
		Time:  s.now().UTC().Format(time.TimeOnly),
		Event: event,
		Type:  typ,
		User:  user,
	}
}

func matchesQuery(needle string, inc models.Incident) bool {
	for _, field := range []string{inc.ID, inc.Title, inc.Assignee} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

func cloneIncident(in models.Incident) models.Incident {
	out := in
	out.AffectedSystems = append([]string(nil), in.AffectedSystems...)
	out.Timeline = append([]models.TimelineEntry(nil), in.Timeline...)
	out.Logs = append([]models.LogEntry(nil), in.Logs...)
	return out
}
