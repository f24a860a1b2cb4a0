package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"securewatch/internal/metrics"

	"github.com/gin-gonic/gin"
)

// wsTokenQuery lets a WebSocket handshake carry its bearer token as
// ?access_token=, since browsers cannot set headers on it. Mount it only on
// upgrade routes, ahead of userIdMiddleware.
func (h *Handler) wsTokenQuery(c *gin.Context) {
	if c.GetHeader("Authorization") == "" {
		if tok := c.Query("access_token"); tok != "" {
			c.Request.Header.Set("Authorization", "Bearer "+tok)
		}
	}
	c.Next()
}

func (h *Handler) userIdMiddleware(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "missing Authorization header",
		})
		return
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid Authorization header format",
		})
		return
	}

	userId, err := h.services.ParseToken(parts[1])
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid or expired token",
		})
		return
	}

	// store in Gin context
	c.Set("userId", userId)
	c.Next()
}

// signInLimit rejects sign-in bursts beyond the configured rate.
func (h *Handler) signInLimit(c *gin.Context) {
	if !h.signInLimiter.Allow() {
		if h.log != nil {
			h.log.Infow("auth_sign_in_throttled", "ip", c.ClientIP())
		}
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
			"error": "too many sign-in attempts",
		})
		return
	}
	c.Next()
}

// metricsMiddleware records request latency by route template.
func (h *Handler) metricsMiddleware(c *gin.Context) {
	start := time.Now()
	c.Next()

	route := c.FullPath()
	if route == "" {
		route = "unmatched"
	}
	metrics.HTTPRequestDuration.
		WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
		Observe(time.Since(start).Seconds())
}
