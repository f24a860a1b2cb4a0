package dialog

import (
	"context"
	"fmt"
	"sync"
	"time"

	"securewatch/internal/models"
	"securewatch/internal/progress"

	"github.com/google/uuid"
	"github.com/jellydator/ttlcache/v3"
)

// DefaultSessionTTL is how long an untouched dialog stays addressable.
const DefaultSessionTTL = 30 * time.Minute

// Config tunes a Manager.
type Config struct {
	SessionTTL    time.Duration
	Tick          time.Duration
	FixSteps      []models.FixStep
	ProposedFixes []models.ProposedFix
}

// Deps are the collaborators dialogs act on.
type Deps struct {
	Notifier  Notifier
	Team      TeamDirectory
	Incidents IncidentUpdater
	Tickets   TicketCreator
}

// Option configures a Manager.
type Option func(*Manager)

// WithClock replaces time.Now for dialogs and fix runs.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithErrorHandler receives errors raised outside a request, such as a
// failed completion notification of a fix run.
func WithErrorHandler(fn func(error)) Option {
	return func(m *Manager) { m.onError = fn }
}

// WithFixCompleted is called once per completed fix run.
func WithFixCompleted(fn func(incidentID string, snap progress.Snapshot)) Option {
	return func(m *Manager) { m.onFixDone = fn }
}

// Manager keeps open dialog instances addressable by id. Sessions idle for
// longer than the TTL are evicted, which closes them.
//
// ttlcache runs eviction callbacks on their own goroutines, so the manager
// also tracks live dialogs itself and closes them synchronously in
// DeleteExpired and CloseAll. The eviction callback stays as a backstop.
type Manager struct {
	ctx       context.Context
	cfg       Config
	deps      Deps
	now       func() time.Time
	onError   func(error)
	onFixDone func(string, progress.Snapshot)
	sessions  *ttlcache.Cache[string, Dialog]

	mu   sync.Mutex
	live map[string]Dialog
}

// NewManager builds a manager. ctx bounds every fix run it starts.
func NewManager(ctx context.Context, cfg Config, deps Deps, opts ...Option) *Manager {
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = DefaultSessionTTL
	}
	m := &Manager{
		ctx:  ctx,
		cfg:  cfg,
		deps: deps,
		now:  time.Now,
		live: make(map[string]Dialog),
		sessions: ttlcache.New[string, Dialog](
			ttlcache.WithTTL[string, Dialog](cfg.SessionTTL),
		),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.sessions.OnEviction(func(_ context.Context, _ ttlcache.EvictionReason, item *ttlcache.Item[string, Dialog]) {
		m.forget(item.Key())
		item.Value().Close()
	})
	return m
}

// Open creates a dialog of the given kind for inc.
func (m *Manager) Open(kind Kind, inc models.Incident) (Dialog, error) {
	id := uuid.NewString()

	var d Dialog
	switch kind {
	case KindReassign:
		rd := &ReassignDialog{team: m.deps.Team, incidents: m.deps.Incidents}
		rd.init(id, kind, inc.ID, m.deps.Notifier, m.now)
		rd.form.CurrentAssignee = inc.Assignee
		d = rd
	case KindResolve:
		rd := &ResolveDialog{incidents: m.deps.Incidents}
		rd.init(id, kind, inc.ID, m.deps.Notifier, m.now)
		d = rd
	case KindTicket:
		td := &TicketDialog{tickets: m.deps.Tickets, form: newTicketForm(inc)}
		td.init(id, kind, inc.ID, m.deps.Notifier, m.now)
		d = td
	case KindFix:
		fd, err := m.newFixDialog(id, inc)
		if err != nil {
			return nil, err
		}
		d = fd
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}

	m.mu.Lock()
	m.live[id] = d
	m.mu.Unlock()
	m.sessions.Set(id, d, ttlcache.DefaultTTL)
	return d, nil
}

func (m *Manager) newFixDialog(id string, inc models.Incident) (*FixDialog, error) {
	sim, err := progress.NewSimulator(toProgressSteps(m.cfg.FixSteps))
	if err != nil {
		return nil, fmt.Errorf("build fix simulator: %w", err)
	}
	fd := &FixDialog{
		ctx:      m.ctx,
		steps:    append([]models.FixStep(nil), m.cfg.FixSteps...),
		proposed: append([]models.ProposedFix(nil), m.cfg.ProposedFixes...),
		onError:  m.onError,
	}
	if m.onFixDone != nil {
		incidentID := inc.ID
		fd.onDone = func(s progress.Snapshot) { m.onFixDone(incidentID, s) }
	}
	fd.runner = progress.NewRunner(sim, m.cfg.Tick,
		progress.WithClock(m.now),
		progress.OnComplete(fd.complete),
	)
	fd.init(id, KindFix, inc.ID, m.deps.Notifier, m.now)
	fd.onClose = fd.runner.Cancel
	return fd, nil
}

// Get returns an addressable dialog and refreshes its TTL.
func (m *Manager) Get(id string) (Dialog, error) {
	item := m.sessions.Get(id)
	if item == nil {
		return nil, ErrNotFound
	}
	return item.Value(), nil
}

// Close closes a dialog and forgets it. It reports whether this call closed it.
func (m *Manager) Close(id string) (bool, error) {
	d, err := m.Get(id)
	if err != nil {
		return false, err
	}
	closed := d.Close()
	m.forget(id)
	m.sessions.Delete(id)
	return closed, nil
}

// DeleteExpired evicts sessions past their TTL and closes them before
// returning.
func (m *Manager) DeleteExpired() {
	m.sessions.DeleteExpired()

	var expired []Dialog
	m.mu.Lock()
	for id, d := range m.live {
		if !m.sessions.Has(id) {
			expired = append(expired, d)
			delete(m.live, id)
		}
	}
	m.mu.Unlock()

	for _, d := range expired {
		d.Close()
	}
}

// Len is the number of addressable dialogs.
func (m *Manager) Len() int {
	return m.sessions.Len()
}

// CloseAll closes every dialog, cancelling any fix run, before returning.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	all := m.live
	m.live = make(map[string]Dialog)
	m.mu.Unlock()

	for _, d := range all {
		d.Close()
	}
	m.sessions.DeleteAll()
}

func (m *Manager) forget(id string) {
	m.mu.Lock()
	delete(m.live, id)
	m.mu.Unlock()
}
