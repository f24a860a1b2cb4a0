package handlers

import (
	"errors"
	"net/http"

	"securewatch/internal/dialog"
	"securewatch/internal/progress"
	"securewatch/internal/service"

	"github.com/gin-gonic/gin"
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// respondError maps domain errors to status codes. Anything unrecognised is
// logged under logKey and reported as a 500 with fallback.
func (h *Handler) respondError(c *gin.Context, err error, fallback, logKey string, kv ...interface{}) {
	var verr *dialog.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": verr.Error(), "fields": verr.Fields})
	case errors.Is(err, service.ErrInvalidSettings):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case service.IsNotFound(err),
		errors.Is(err, dialog.ErrNotFound),
		errors.Is(err, dialog.ErrUnknownKind),
		errors.Is(err, service.ErrNotFixDialog):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, dialog.ErrClosed),
		errors.Is(err, dialog.ErrAlreadyApplied),
		errors.Is(err, progress.ErrAlreadyRunning):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidTimeRange):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.logAndJSONError(c, http.StatusInternalServerError, fallback, logKey, err, kv...)
	}
}
