package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"file_vault/internal/models"
	"file_vault/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	ctxUserID = "userId"
	ctxRole   = "role"

	defaultOriginPrefix = "http://localhost:"
)

// authMiddleware resolves the bearer token into an identity and attaches it
// to both the gin context and the request context.
func (h *Handler) authMiddleware(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "missing Authorization header",
		})
		return
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid Authorization header format",
		})
		return
	}

	id, err := h.services.ParseToken(strings.TrimSpace(parts[1]))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid or expired token",
		})
		return
	}

	c.Set(ctxUserID, id.UserID)
	c.Set(ctxRole, id.Role)
	c.Request = c.Request.WithContext(models.WithIdentity(c.Request.Context(), id))
	c.Next()
}

// requireRole rejects callers whose identity does not satisfy role.
// It must run after authMiddleware.
func (h *Handler) requireRole(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, _ := identity(c)
		if err := service.Authorize(id, role); err != nil {
			if errors.Is(err, service.ErrUnauthenticated) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
				return
			}
			if h.log != nil {
				h.log.Infow("access_denied", "user_id", id.UserID, "role", id.Role, "required", role, "path", c.FullPath())
			}
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied"})
			return
		}
		c.Next()
	}
}

// identity returns the caller attached by authMiddleware.
func identity(c *gin.Context) (models.Identity, bool) {
	return models.IdentityFrom(c.Request.Context())
}

// corsMiddleware admits requests without an Origin and those whose origin
// starts with the configured prefix.
func (h *Handler) corsMiddleware(c *gin.Context) {
	origin := c.GetHeader("Origin")
	if origin == "" {
		c.Next()
		return
	}
	if !h.originAllowed(origin) {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Not allowed by CORS"})
		return
	}

	hdr := c.Writer.Header()
	hdr.Set("Access-Control-Allow-Origin", origin)
	hdr.Set("Access-Control-Allow-Credentials", "true")
	hdr.Add("Vary", "Origin")

	if c.Request.Method == http.MethodOptions {
		hdr.Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		hdr.Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
		c.AbortWithStatus(http.StatusNoContent)
		return
	}
	c.Next()
}

func (h *Handler) originAllowed(origin string) bool {
	return origin == "" || strings.HasPrefix(origin, h.originPrefix)
}

// requestLogger records one log line and one metrics sample per request.
func (h *Handler) requestLogger(c *gin.Context) {
	start := time.Now()
	c.Next()

	elapsed := time.Since(start)
	route := c.FullPath()
	status := c.Writer.Status()
	h.metrics.ObserveRequest(route, c.Request.Method, status, elapsed)
	if h.log != nil {
		h.log.Infow("http_request",
			"method", c.Request.Method,
			"route", route,
			"status", status,
			"latency", elapsed,
		)
	}
}
