package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T) string {
	t.Helper()
	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}

func TestRecordersAreExposed(t *testing.T) {
	RecordNotification("FIX_APPLIED")
	RecordDialogOpened("fix")
	RecordDialogSubmission("resolve", "invalid")
	RecordFixStarted()
	RecordFixCompleted(8500 * time.Millisecond)
	SetActiveDialogs(3)

	body := scrape(t)
	assert.Contains(t, body, `securewatch_notifications_emitted_total{type="FIX_APPLIED"} 1`)
	assert.Contains(t, body, `securewatch_dialogs_opened_total{kind="fix"} 1`)
	assert.Contains(t, body, `securewatch_dialogs_submissions_total{kind="resolve",result="invalid"} 1`)
	assert.Contains(t, body, `securewatch_fix_runs_total{outcome="started"} 1`)
	assert.Contains(t, body, `securewatch_fix_run_duration_seconds_count 1`)
	assert.Contains(t, body, `securewatch_dialogs_active 3`)
}
