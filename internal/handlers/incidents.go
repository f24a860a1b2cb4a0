package handlers

import (
	"net/http"
	"strings"

	"securewatch/internal/models"
	"securewatch/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	statusOK = "ok"

	errLoadDashboard = "failed to load dashboard"
	errLoadIncidents = "failed to load incidents"
	errLoadIncident  = "failed to load incident"
	errLoadTeam      = "failed to load team"
	errExportReport  = "failed to export report"
	errExecute       = "failed to execute solution"
)

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      Dashboard
// @Description  Metric tiles, incident cards and the AI analysis panel.
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  models.Dashboard
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/dashboard [get]
// @Security     BearerAuth
func (h *Handler) getDashboard(c *gin.Context) {
	d, err := h.services.Dashboard.Get(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errLoadDashboard, "dashboard_get_failed", err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// @Summary      List incidents
// @Tags         incidents
// @Produce      json
// @Param        severity  query     string  false  "Severity"  Enums(critical,warning,info)
// @Param        status    query     string  false  "Status"    Enums(open,investigating,resolved)
// @Param        q         query     string  false  "Search over id, title and assignee"
// @Success      200       {object}  map[string]interface{}  "count, incidents"
// @Failure      401       {object}  map[string]string
// @Failure      500       {object}  map[string]string
// @Router       /api/v1/incidents [get]
// @Security     BearerAuth
func (h *Handler) listIncidents(c *gin.Context) {
	f := service.IncidentFilter{
		Severity: models.Severity(strings.ToLower(strings.TrimSpace(c.Query("severity")))),
		Status:   models.Status(strings.ToLower(strings.TrimSpace(c.Query("status")))),
		Query:    c.Query("q"),
	}
	incs, err := h.services.Incidents.List(c.Request.Context(), f)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errLoadIncidents, "incidents_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":     len(incs),
		"incidents": incs,
	})
}

// @Summary      Get incident
// @Tags         incidents
// @Produce      json
// @Param        id   path      string  true  "Incident id"  example(INC-2024-0952)
// @Success      200  {object}  service.IncidentDetail
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/incidents/{id} [get]
// @Security     BearerAuth
func (h *Handler) getIncident(c *gin.Context) {
	id := c.Param("id")
	d, err := h.services.Incidents.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err, errLoadIncident, "incident_get_failed", "id", id)
		return
	}
	c.JSON(http.StatusOK, d)
}

// @Summary      Export incident report
// @Description  Plain-text report download; emits a "Report Exported" notification.
// @Tags         incidents
// @Produce      plain
// @Param        id   path      string  true  "Incident id"
// @Success      200  {string}  string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/incidents/{id}/report [get]
// @Security     BearerAuth
func (h *Handler) exportReport(c *gin.Context) {
	id := c.Param("id")
	f, err := h.services.Incidents.ExportReport(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err, errExportReport, "incident_report_failed", "id", id)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+f.Name+`"`)
	c.Data(http.StatusOK, f.ContentType, f.Body)
}

// @Summary      Execute recommended solution
// @Tags         incidents
// @Produce      json
// @Param        id   path      string  true  "Incident id"
// @Success      200  {object}  models.Notification
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/incidents/{id}/execute [post]
// @Security     BearerAuth
func (h *Handler) executeSolution(c *gin.Context) {
	id := c.Param("id")
	n, err := h.services.Incidents.ExecuteSolution(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err, errExecute, "incident_execute_failed", "id", id)
		return
	}
	c.JSON(http.StatusOK, n)
}

// @Summary      Team roster
// @Tags         team
// @Produce      json
// @Success      200  {array}   models.TeamMember
// @Router       /api/v1/team [get]
// @Security     BearerAuth
func (h *Handler) getTeam(c *gin.Context) {
	team, err := h.services.Incidents.Team(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errLoadTeam, "team_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, team)
}

// @Summary      Proposed fixes
// @Tags         fixes
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "fixes, steps"
// @Router       /api/v1/fixes/proposed [get]
// @Security     BearerAuth
func (h *Handler) getProposedFixes(c *gin.Context) {
	ctx := c.Request.Context()
	c.JSON(http.StatusOK, gin.H{
		"fixes": h.services.Incidents.ProposedFixes(ctx),
		"steps": h.services.Incidents.FixSteps(ctx),
	})
}
