package dialog

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"securewatch/internal/models"
	"securewatch/internal/progress"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- Test doubles ----

type recordingNotifier struct {
	mu  sync.Mutex
	got []models.Notification
	err error
}

func (n *recordingNotifier) Notify(_ context.Context, ev models.Notification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return n.err
	}
	n.got = append(n.got, ev)
	return nil
}

func (n *recordingNotifier) setErr(err error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.err = err
}

func (n *recordingNotifier) all() []models.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]models.Notification(nil), n.got...)
}

type teamStub struct{ members []models.TeamMember }

func (t *teamStub) Members(context.Context) ([]models.TeamMember, error) { return t.members, nil }

func (t *teamStub) Member(_ context.Context, id string) (models.TeamMember, error) {
	for _, m := range t.members {
		if m.ID == id {
			return m, nil
		}
	}
	return models.TeamMember{}, ErrMemberNotFound
}

type incidentsStub struct {
	reassigned []string
	resolved   []string
}

func (s *incidentsStub) Reassign(_ context.Context, id string, m models.TeamMember, _ string) error {
	s.reassigned = append(s.reassigned, id+"->"+m.Name)
	return nil
}

func (s *incidentsStub) Resolve(_ context.Context, id string, c models.Option, _, _ string) error {
	s.resolved = append(s.resolved, id+":"+c.ID)
	return nil
}

type ticketsStub struct{ created []models.Ticket }

func (s *ticketsStub) CreateTicket(_ context.Context, t models.Ticket) (models.Ticket, error) {
	t.Key = t.Project + "-1234"
	s.created = append(s.created, t)
	return t, nil
}

type fixture struct {
	notifier  *recordingNotifier
	incidents *incidentsStub
	tickets   *ticketsStub
	manager   *Manager
}

func newFixture(t *testing.T, steps []models.FixStep, opts ...Option) *fixture {
	t.Helper()
	f := &fixture{
		notifier:  &recordingNotifier{},
		incidents: &incidentsStub{},
		tickets:   &ticketsStub{},
	}
	team := &teamStub{members: []models.TeamMember{
		{ID: "1", Name: "Sarah Chen", Available: true},
		{ID: "3", Name: "Lisa Wang", Available: false},
	}}
	if steps == nil {
		steps = []models.FixStep{{ID: "only", Label: "Only step", Duration: time.Hour}}
	}
	f.manager = NewManager(context.Background(), Config{
		SessionTTL: time.Minute,
		Tick:       2 * time.Millisecond,
		FixSteps:   steps,
	}, Deps{Notifier: f.notifier, Team: team, Incidents: f.incidents, Tickets: f.tickets}, opts...)
	t.Cleanup(f.manager.CloseAll)
	return f
}

var testIncident = models.Incident{
	ID:          "INC-2024-0952",
	Title:       "Database Connection Timeout - Auth Service",
	Severity:    models.SeverityCritical,
	Assignee:    "Mike Johnson",
	Description: "Multiple users unable to authenticate",
}

func jsonBody(t *testing.T, v any) Decoder {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return func(dst any) error { return json.Unmarshal(raw, dst) }
}

func requireValidation(t *testing.T, err error, field string) {
	t.Helper()
	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "expected *ValidationError, got %v", err)
	assert.Contains(t, verr.Fields, field)
}

// ---- Tests ----

func TestReassign_EmptyMemberNeverNotifies(t *testing.T) {
	f := newFixture(t, nil)
	d, err := f.manager.Open(KindReassign, testIncident)
	require.NoError(t, err)

	for _, body := range []map[string]any{{}, {"member_id": ""}, {"member_id": "   ", "reason": "load"}} {
		_, err = d.Submit(context.Background(), jsonBody(t, body))
		requireValidation(t, err, "member_id")
	}
	assert.Empty(t, f.notifier.all())
	assert.Equal(t, StateOpen, d.View().State)
	assert.Empty(t, f.incidents.reassigned)
}

func TestReassign_UnknownOrBusyMember(t *testing.T) {
	f := newFixture(t, nil)
	d, err := f.manager.Open(KindReassign, testIncident)
	require.NoError(t, err)

	_, err = d.Submit(context.Background(), jsonBody(t, map[string]string{"member_id": "99"}))
	requireValidation(t, err, "member_id")

	_, err = d.Submit(context.Background(), jsonBody(t, map[string]string{"member_id": "3"}))
	requireValidation(t, err, "member_id")

	assert.Empty(t, f.notifier.all())
}

func TestReassign_SuccessNotifiesOnceAndCloses(t *testing.T) {
	f := newFixture(t, nil)
	d, err := f.manager.Open(KindReassign, testIncident)
	require.NoError(t, err)
	assert.Equal(t, "Mike Johnson", d.View().Form.(ReassignForm).CurrentAssignee)

	out, err := d.Submit(context.Background(), jsonBody(t, map[string]string{"member_id": "1", "reason": "db expert"}))
	require.NoError(t, err)
	assert.True(t, out.Closed)
	require.NotNil(t, out.Notification)
	assert.Equal(t, "Successfully reassigned to Sarah Chen", out.Notification.Description)

	got := f.notifier.all()
	require.Len(t, got, 1)
	assert.Equal(t, models.NotificationReassigned, got[0].Type)
	assert.Equal(t, StateClosed, d.View().State)
	assert.Equal(t, []string{"INC-2024-0952->Sarah Chen"}, f.incidents.reassigned)

	// closed dialogs accept nothing and emit nothing more
	_, err = d.Submit(context.Background(), jsonBody(t, map[string]string{"member_id": "1"}))
	assert.ErrorIs(t, err, ErrClosed)
	assert.False(t, d.Close())
	assert.Len(t, f.notifier.all(), 1)
}

func TestResolve_RequiresCategoryAndDetails(t *testing.T) {
	f := newFixture(t, nil)
	d, err := f.manager.Open(KindResolve, testIncident)
	require.NoError(t, err)

	cases := []struct {
		name  string
		body  map[string]string
		field string
	}{
		{"no category", map[string]string{"resolution": "scaled pool"}, "category"},
		{"no resolution", map[string]string{"category": "fixed"}, "resolution"},
		{"blank resolution", map[string]string{"category": "fixed", "resolution": "  "}, "resolution"},
		{"bad category", map[string]string{"category": "magic", "resolution": "x"}, "category"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := d.Submit(context.Background(), jsonBody(t, tc.body))
			requireValidation(t, err, tc.field)
		})
	}
	assert.Empty(t, f.notifier.all())
	assert.Empty(t, f.incidents.resolved)
}

func TestResolve_Success(t *testing.T) {
	f := newFixture(t, nil)
	d, err := f.manager.Open(KindResolve, testIncident)
	require.NoError(t, err)

	out, err := d.Submit(context.Background(), jsonBody(t, map[string]string{
		"category":   "false-positive",
		"resolution": "alert threshold was wrong",
	}))
	require.NoError(t, err)
	assert.True(t, out.Closed)
	assert.Equal(t, "Incident INC-2024-0952 has been marked as false positive", out.Notification.Description)
	assert.Len(t, f.notifier.all(), 1)
	assert.Equal(t, []string{"INC-2024-0952:false-positive"}, f.incidents.resolved)
}

func TestTicket_PrefilledFromIncident(t *testing.T) {
	f := newFixture(t, nil)
	d, err := f.manager.Open(KindTicket, testIncident)
	require.NoError(t, err)

	form := d.View().Form.(TicketForm)
	assert.Equal(t, testIncident.Title, form.Title)
	assert.Equal(t, "INFRA", form.Project)
	assert.Equal(t, "bug", form.IssueType)
	assert.Equal(t, "high", form.Priority)

	// an empty payload keeps the prefilled title
	out, err := d.Submit(context.Background(), jsonBody(t, map[string]string{"project": "sec"}))
	require.NoError(t, err)
	require.NotNil(t, out.Ticket)
	assert.Equal(t, "SEC-1234", out.Ticket.Key)
	assert.Equal(t, "Ticket SEC-1234 created successfully", out.Notification.Description)
	assert.Len(t, f.notifier.all(), 1)
}

func TestTicket_ClearedTitleFails(t *testing.T) {
	f := newFixture(t, nil)
	d, err := f.manager.Open(KindTicket, testIncident)
	require.NoError(t, err)

	_, err = d.Submit(context.Background(), jsonBody(t, map[string]string{"title": ""}))
	requireValidation(t, err, "title")

	_, err = d.Submit(context.Background(), jsonBody(t, map[string]string{"priority": "urgent"}))
	requireValidation(t, err, "priority")

	assert.Empty(t, f.tickets.created)
	assert.Empty(t, f.notifier.all())
}

func TestSubmit_NotifierFailureKeepsDialogOpen(t *testing.T) {
	f := newFixture(t, nil)
	f.notifier.setErr(errors.New("db down"))
	d, err := f.manager.Open(KindResolve, testIncident)
	require.NoError(t, err)

	_, err = d.Submit(context.Background(), jsonBody(t, map[string]string{"category": "fixed", "resolution": "done"}))
	require.Error(t, err)
	assert.Equal(t, StateOpen, d.View().State)

	_, err = d.Submit(context.Background(), jsonBody(t, map[string]string{"category": "duplicate", "resolution": "again"}))
	require.Error(t, err)

	f.notifier.setErr(nil)
	out, err := d.Submit(context.Background(), nil)
	require.NoError(t, err)
	assert.True(t, out.Closed)
	assert.Equal(t, []string{testIncident.ID + ":fixed"}, f.incidents.resolved)
	require.Len(t, f.notifier.all(), 1)
}

func TestTicket_NotifierRetryFilesOneTicket(t *testing.T) {
	f := newFixture(t, nil)
	f.notifier.setErr(errors.New("db down"))
	d, err := f.manager.Open(KindTicket, testIncident)
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		_, err = d.Submit(context.Background(), nil)
		require.Error(t, err)
		assert.Equal(t, StateOpen, d.View().State)
	}
	assert.Len(t, f.tickets.created, 1)
	assert.Empty(t, f.notifier.all())

	f.notifier.setErr(nil)
	out, err := d.Submit(context.Background(), nil)
	require.NoError(t, err)
	require.NotNil(t, out.Ticket)
	assert.Equal(t, "INFRA-1234", out.Ticket.Key)
	assert.Len(t, f.tickets.created, 1)

	got := f.notifier.all()
	require.Len(t, got, 1)
	assert.Equal(t, models.NotificationTicketCreated, got[0].Type)
	assert.Equal(t, StateClosed, d.View().State)
}

func TestFix_RunsToCompletionAndNotifiesOnce(t *testing.T) {
	steps := []models.FixStep{
		{ID: "analyze", Label: "Analyzing current system state...", Duration: 10 * time.Millisecond},
		{ID: "verify", Label: "Verifying fix effectiveness...", Duration: 10 * time.Millisecond},
	}
	done := make(chan progress.Snapshot, 1)
	f := newFixture(t, steps, WithFixCompleted(func(id string, s progress.Snapshot) {
		assert.Equal(t, testIncident.ID, id)
		done <- s
	}))

	d, err := f.manager.Open(KindFix, testIncident)
	require.NoError(t, err)
	assert.Equal(t, progress.StateIdle, d.View().Progress.State)

	out, err := d.Submit(context.Background(), nil)
	require.NoError(t, err)
	assert.False(t, out.Closed)
	assert.Equal(t, progress.StateRunning, out.Progress.State)

	select {
	case snap := <-done:
		assert.Equal(t, progress.StateCompleted, snap.State)
	case <-time.After(2 * time.Second):
		t.Fatal("fix run did not complete")
	}

	got := f.notifier.all()
	require.Len(t, got, 1)
	assert.Equal(t, models.NotificationFixApplied, got[0].Type)

	// completed but still open until closed explicitly
	v := d.View()
	assert.Equal(t, StateOpen, v.State)
	assert.Equal(t, 100.0, v.Progress.Percent)

	_, err = d.Submit(context.Background(), nil)
	assert.ErrorIs(t, err, ErrAlreadyApplied)

	closed, err := f.manager.Close(v.ID)
	require.NoError(t, err)
	assert.True(t, closed)
}

func TestFix_CloseWhileRunningResets(t *testing.T) {
	f := newFixture(t, nil)
	d, err := f.manager.Open(KindFix, testIncident)
	require.NoError(t, err)

	_, err = d.Submit(context.Background(), nil)
	require.NoError(t, err)
	fd := d.(*FixDialog)
	require.Eventually(t, func() bool { return fd.Progress().Percent > 0 }, time.Second, 2*time.Millisecond)

	_, err = d.Submit(context.Background(), nil)
	assert.ErrorIs(t, err, progress.ErrAlreadyRunning)

	assert.True(t, d.Close())
	snap := fd.Progress()
	assert.Equal(t, progress.StateIdle, snap.State)
	assert.Zero(t, snap.Percent)
	assert.Equal(t, progress.NoStep, snap.ActiveIndex)
	assert.Empty(t, f.notifier.all())
}

func TestManager_OpenGetClose(t *testing.T) {
	f := newFixture(t, nil)

	_, err := f.manager.Open(Kind("bogus"), testIncident)
	assert.ErrorIs(t, err, ErrUnknownKind)

	_, err = f.manager.Get("missing")
	assert.ErrorIs(t, err, ErrNotFound)

	d, err := f.manager.Open(KindResolve, testIncident)
	require.NoError(t, err)
	id := d.View().ID

	got, err := f.manager.Get(id)
	require.NoError(t, err)
	assert.Same(t, d, got)

	closed, err := f.manager.Close(id)
	require.NoError(t, err)
	assert.True(t, closed)
	assert.Equal(t, StateClosed, d.View().State)

	_, err = f.manager.Get(id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestManager_InstancesAreIsolated(t *testing.T) {
	f := newFixture(t, nil)
	a, err := f.manager.Open(KindResolve, testIncident)
	require.NoError(t, err)
	b, err := f.manager.Open(KindResolve, testIncident)
	require.NoError(t, err)

	_, err = a.Submit(context.Background(), jsonBody(t, map[string]string{"category": "fixed", "resolution": "done"}))
	require.NoError(t, err)

	assert.Equal(t, StateClosed, a.View().State)
	assert.Equal(t, StateOpen, b.View().State)
	assert.Empty(t, b.View().Form.(ResolveForm).Resolution)
}

func TestManager_ExpiryClosesSession(t *testing.T) {
	f := &fixture{notifier: &recordingNotifier{}}
	m := NewManager(context.Background(), Config{
		SessionTTL: 10 * time.Millisecond,
		FixSteps:   []models.FixStep{{Label: "x", Duration: time.Hour}},
	}, Deps{Notifier: f.notifier})
	defer m.CloseAll()

	d, err := m.Open(KindFix, testIncident)
	require.NoError(t, err)
	_, err = d.Submit(context.Background(), nil)
	require.NoError(t, err)

	time.Sleep(30 * time.Millisecond)
	m.DeleteExpired()

	assert.Equal(t, StateClosed, d.View().State)
	assert.Equal(t, progress.StateIdle, d.(*FixDialog).Progress().State)
	assert.Zero(t, m.Len())
}

func TestManager_CloseAllClosesBeforeReturning(t *testing.T) {
	f := newFixture(t, nil)

	fix, err := f.manager.Open(KindFix, testIncident)
	require.NoError(t, err)
	_, err = fix.Submit(context.Background(), nil)
	require.NoError(t, err)
	form, err := f.manager.Open(KindResolve, testIncident)
	require.NoError(t, err)

	f.manager.CloseAll()

	assert.Equal(t, StateClosed, fix.View().State)
	assert.Equal(t, progress.StateIdle, fix.(*FixDialog).Progress().State)
	assert.Equal(t, StateClosed, form.View().State)
	assert.Zero(t, f.manager.Len())
}

// blockingNotifier parks the first Notify call until released.
type blockingNotifier struct {
	recordingNotifier
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func (n *blockingNotifier) Notify(ctx context.Context, ev models.Notification) error {
	n.once.Do(func() {
		close(n.entered)
		<-n.release
	})
	return n.recordingNotifier.Notify(ctx, ev)
}

func TestFix_CloseWaitsForCompletionNotice(t *testing.T) {
	notifier := &blockingNotifier{entered: make(chan struct{}), release: make(chan struct{})}
	m := NewManager(context.Background(), Config{
		Tick:     time.Millisecond,
		FixSteps: []models.FixStep{{Label: "x", Duration: 5 * time.Millisecond}},
	}, Deps{Notifier: notifier})
	defer m.CloseAll()

	d, err := m.Open(KindFix, testIncident)
	require.NoError(t, err)
	_, err = d.Submit(context.Background(), nil)
	require.NoError(t, err)

	select {
	case <-notifier.entered:
	case <-time.After(2 * time.Second):
		t.Fatal("completion notice was not sent")
	}

	closed := make(chan bool, 1)
	go func() { closed <- d.Close() }()

	assert.Never(t, func() bool { return len(closed) > 0 }, 30*time.Millisecond, time.Millisecond)
	close(notifier.release)

	select {
	case ok := <-closed:
		assert.True(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("close did not return")
	}
	got := notifier.all()
	require.Len(t, got, 1)
	assert.Equal(t, models.NotificationFixApplied, got[0].Type)
	assert.Equal(t, StateClosed, d.View().State)
}
