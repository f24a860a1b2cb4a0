package handlers

import (
	"net/http"

	"securewatch/internal/models"

	"github.com/gin-gonic/gin"
)

const (
	errLoadSettings = "failed to load settings"
	errSaveSettings = "failed to save settings"
)

// @Summary      Get settings
// @Tags         settings
// @Produce      json
// @Success      200  {object}  models.Settings
// @Router       /api/v1/settings [get]
// @Security     BearerAuth
func (h *Handler) getSettings(c *gin.Context) {
	s, err := h.services.Settings.Get(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errLoadSettings, "settings_get_failed", err)
		return
	}
	c.JSON(http.StatusOK, s)
}

// @Summary      Save settings
// @Tags         settings
// @Accept       json
// @Produce      json
// @Param        body  body      models.Settings  true  "Settings"
// @Success      200   {object}  models.Settings
// @Failure      400   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /api/v1/settings [put]
// @Security     BearerAuth
func (h *Handler) updateSettings(c *gin.Context) {
	var in models.Settings
	if ok := h.bindJSONOrBadRequest(c, &in); !ok {
		return
	}
	saved, err := h.services.Settings.Update(c.Request.Context(), in)
	if err != nil {
		h.respondError(c, err, errSaveSettings, "settings_update_failed")
		return
	}
	if h.log != nil {
		h.log.Infow("settings_updated", "organization", saved.OrganizationName)
	}
	c.JSON(http.StatusOK, saved)
}
