package handlers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"

	"securewatch/internal/dialog"
	"securewatch/internal/models"
	"securewatch/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpID      int
	signUpErr     error
	genTokenToken string
	genTokenErr   error
	parseID       int
	parseErr      error

	lastSignUpUsername string
	lastSignUpPassword string
	lastGenUsername    string
	lastGenPassword    string
	lastParseToken     string
}

func (m *mockAuth) SignUp(_ context.Context, username, password string) (int, error) {
	m.lastSignUpUsername = username
	m.lastSignUpPassword = password
	return m.signUpID, m.signUpErr
}
func (m *mockAuth) GenerateToken(_ context.Context, username, password string) (string, error) {
	m.lastGenUsername = username
	m.lastGenPassword = password
	return m.genTokenToken, m.genTokenErr
}
func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

type mockIncidents struct {
	list       []models.IncidentSummary
	listErr    error
	lastFilter service.IncidentFilter

	detail service.IncidentDetail
	getErr error

	team    []models.TeamMember
	fixes   []models.ProposedFix
	steps   []models.FixStep
	notice  models.Notification
	execErr error

	report    service.ReportFile
	reportErr error
	lastID    string
}

func (m *mockIncidents) List(_ context.Context, f service.IncidentFilter) ([]models.IncidentSummary, error) {
	m.lastFilter = f
	return m.list, m.listErr
}
func (m *mockIncidents) Get(_ context.Context, id string) (service.IncidentDetail, error) {
	m.lastID = id
	return m.detail, m.getErr
}
func (m *mockIncidents) Team(context.Context) ([]models.TeamMember, error) { return m.team, nil }
func (m *mockIncidents) ProposedFixes(context.Context) []models.ProposedFix { return m.fixes }
func (m *mockIncidents) FixSteps(context.Context) []models.FixStep { return m.steps }
func (m *mockIncidents) ExecuteSolution(_ context.Context, id string) (models.Notification, error) {
	m.lastID = id
	return m.notice, m.execErr
}
func (m *mockIncidents) ExportReport(_ context.Context, id string) (service.ReportFile, error) {
	m.lastID = id
	return m.report, m.reportErr
}

type mockDashboard struct {
	resp models.Dashboard
	err  error
}

func (m *mockDashboard) Get(context.Context) (models.Dashboard, error) { return m.resp, m.err }

type mockDialogs struct {
	view      dialog.View
	openErr   error
	viewErr   error
	outcome   dialog.Outcome
	submitErr error
	closeErr  error
	fix       *dialog.FixDialog
	fixErr    error

	lastIncident string
	lastKind     dialog.Kind
	lastSID      string
	decoded      map[string]any
}

func (m *mockDialogs) Open(_ context.Context, incidentID string, kind dialog.Kind) (dialog.View, error) {
	m.lastIncident = incidentID
	m.lastKind = kind
	return m.view, m.openErr
}
func (m *mockDialogs) View(_ context.Context, id string) (dialog.View, error) {
	m.lastSID = id
	return m.view, m.viewErr
}
func (m *mockDialogs) Submit(_ context.Context, id string, decode dialog.Decoder) (dialog.Outcome, error) {
	m.lastSID = id
	m.decoded = map[string]any{}
	if err := decode(&m.decoded); err != nil {
		return dialog.Outcome{}, err
	}
	return m.outcome, m.submitErr
}
func (m *mockDialogs) Close(_ context.Context, id string) (dialog.View, error) {
	m.lastSID = id
	return m.view, m.closeErr
}
func (m *mockDialogs) FixDialog(id string) (*dialog.FixDialog, error) {
	m.lastSID = id
	return m.fix, m.fixErr
}

type mockNotifications struct {
	resp       []models.Notification
	err        error
	lastFilter service.LogFilter
}

func (m *mockNotifications) Notify(context.Context, models.Notification) error { return nil }
func (m *mockNotifications) List(_ context.Context, f service.LogFilter) ([]models.Notification, error) {
	m.lastFilter = f
	return m.resp, m.err
}

type mockSettings struct {
	current models.Settings
	saved   models.Settings
	getErr  error
	saveErr error
}

func (m *mockSettings) Get(context.Context) (models.Settings, error) { return m.current, m.getErr }
func (m *mockSettings) Update(_ context.Context, s models.Settings) (models.Settings, error) {
	if m.saveErr != nil {
		return models.Settings{}, m.saveErr
	}
	m.saved = s
	return s, nil
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}

// doAuthed serves one request carrying a valid bearer token.
func doAuthed(r http.Handler, method, target string, body io.Reader) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, body)
	for k, vv := range authHeader("valid") {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	r.ServeHTTP(w, req)
	return w
}

func doRaw(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
