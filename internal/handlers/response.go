package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"file_vault/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/samber/oops"
)

// Common response/status constants to avoid magic strings and typos.
const (
	statusOK       = "ok"
	statusDegraded = "degraded"

	msgInternal         = "internal server error"
	msgInvalidResetCode = "Invalid or expired code"
	msgUserNotFound     = "User not found"
	msgFileNotFound     = "File not found"

	healthPingTimeout = 2 * time.Second
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		if oe, ok := oops.AsOops(err); ok {
			fields = append(fields, "code", oe.Code(), "context", oe.Context())
		}
		if httpCode >= http.StatusInternalServerError {
			h.log.Errorw(logKey, fields...)
		} else {
			h.log.Infow(logKey, fields...)
		}
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// serviceError maps a service error onto an HTTP status and message.
func (h *Handler) serviceError(c *gin.Context, logKey string, err error, kv ...interface{}) {
	code, msg := httpError(err)
	h.logAndJSONError(c, code, msg, logKey, err, kv...)
}

func httpError(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrValidation):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, service.ErrInvalidResetCode):
		return http.StatusBadRequest, msgInvalidResetCode
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid credentials"
	case errors.Is(err, service.ErrUnauthenticated), errors.Is(err, service.ErrInvalidToken):
		return http.StatusUnauthorized, "invalid or expired token"
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden, "Access denied"
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, "not found"
	default:
		return http.StatusInternalServerError, msgInternal
	}
}

// @Summary      Root
// @Tags         system
// @Produce      plain
// @Success      200  {string}  string  "Hello World!"
// @Router       / [get]
func (h *Handler) root(c *gin.Context) {
	c.String(http.StatusOK, "Hello World!")
}

// @Summary      Health check
// @Description  Reports 503 when the database does not answer a ping.
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	if h.db == nil {
		c.JSON(http.StatusOK, gin.H{"status": statusOK})
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthPingTimeout)
	defer cancel()
	if err := h.db.PingContext(ctx); err != nil {
		if h.log != nil {
			h.log.Errorw("health_db_ping_failed", "err", err)
		}
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": statusDegraded, "db": "unreachable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusOK, "db": statusOK})
}
