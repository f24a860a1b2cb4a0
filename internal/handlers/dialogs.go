package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"securewatch/internal/dialog"

	"github.com/gin-gonic/gin"
)

const (
	errOpenDialog   = "failed to open dialog"
	errLoadDialog   = "failed to load dialog"
	errSubmitDialog = "failed to submit dialog"
	errCloseDialog  = "failed to close dialog"
)

// bodyDecoder decodes the request body into a dialog form. An empty body
// leaves the form untouched.
func bodyDecoder(c *gin.Context) dialog.Decoder {
	return func(v any) error {
		if c.Request.Body == nil || c.Request.ContentLength == 0 {
			return nil
		}
		err := c.ShouldBindJSON(v)
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
}

// @Summary      Open dialog
// @Description  Opens a reassign, resolve, ticket or fix dialog for the incident.
// @Tags         dialogs
// @Produce      json
// @Param        id    path      string  true  "Incident id"
// @Param        kind  path      string  true  "Dialog kind"  Enums(reassign,resolve,ticket,fix)
// @Success      201   {object}  dialog.View
// @Failure      404   {object}  map[string]string
// @Router       /api/v1/incidents/{id}/dialogs/{kind} [post]
// @Security     BearerAuth
func (h *Handler) openDialog(c *gin.Context) {
	id := c.Param("id")
	kind := dialog.Kind(strings.ToLower(c.Param("kind")))
	v, err := h.services.Dialogs.Open(c.Request.Context(), id, kind)
	if err != nil {
		h.respondError(c, err, errOpenDialog, "dialog_open_failed", "incident_id", id, "kind", kind)
		return
	}
	if h.log != nil {
		h.log.Infow("dialog_opened", "sid", v.ID, "incident_id", id, "kind", kind)
	}
	c.JSON(http.StatusCreated, v)
}

// @Summary      Get dialog
// @Tags         dialogs
// @Produce      json
// @Param        sid  path      string  true  "Dialog session id"
// @Success      200  {object}  dialog.View
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/dialogs/{sid} [get]
// @Security     BearerAuth
func (h *Handler) getDialog(c *gin.Context) {
	sid := c.Param("sid")
	v, err := h.services.Dialogs.View(c.Request.Context(), sid)
	if err != nil {
		h.respondError(c, err, errLoadDialog, "dialog_get_failed", "sid", sid)
		return
	}
	c.JSON(http.StatusOK, v)
}

// @Summary      Submit dialog
// @Description  Validates the form and applies it. A fix dialog starts its progress run instead.
// @Tags         dialogs
// @Accept       json
// @Produce      json
// @Param        sid   path      string  true  "Dialog session id"
// @Success      200   {object}  dialog.Outcome
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      422   {object}  map[string]interface{}  "error, fields"
// @Router       /api/v1/dialogs/{sid}/submit [post]
// @Security     BearerAuth
func (h *Handler) submitDialog(c *gin.Context) {
	sid := c.Param("sid")
	out, err := h.services.Dialogs.Submit(c.Request.Context(), sid, bodyDecoder(c))
	if err != nil {
		h.respondError(c, err, errSubmitDialog, "dialog_submit_failed", "sid", sid)
		return
	}
	c.JSON(http.StatusOK, out)
}

// @Summary      Close dialog
// @Description  Discards the form; a running fix is cancelled.
// @Tags         dialogs
// @Produce      json
// @Param        sid  path      string  true  "Dialog session id"
// @Success      200  {object}  dialog.View
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/dialogs/{sid}/close [post]
// @Security     BearerAuth
func (h *Handler) closeDialog(c *gin.Context) {
	sid := c.Param("sid")
	v, err := h.services.Dialogs.Close(c.Request.Context(), sid)
	if err != nil {
		h.respondError(c, err, errCloseDialog, "dialog_close_failed", "sid", sid)
		return
	}
	c.JSON(http.StatusOK, v)
}
