package handlers

import (
	"context"

	"file_vault/internal/logger"
	"file_vault/internal/metrics"
	"file_vault/internal/models"
	"file_vault/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Pinger reports whether the backing database is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services     *service.Service
	log          *logger.Logger
	metrics      *metrics.Metrics
	db           Pinger
	originPrefix string
}

// Option customizes a Handler.
type Option func(*Handler)

// WithMetrics exposes m on /metrics and records request metrics into it.
func WithMetrics(m *metrics.Metrics) Option {
	return func(h *Handler) { h.metrics = m }
}

// WithDB makes /health ping the database.
func WithDB(db Pinger) Option {
	return func(h *Handler) { h.db = db }
}

// WithAllowedOriginPrefix sets the CORS origin prefix (default "http://localhost:").
func WithAllowedOriginPrefix(prefix string) Option {
	return func(h *Handler) { h.originPrefix = prefix }
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger, opts ...Option) *Handler {
	h := &Handler{services: services, log: log, originPrefix: defaultOriginPrefix}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), h.requestLogger, h.corsMiddleware)

	router.GET("/", h.root)
	router.GET("/health", h.health)
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	if h.metrics != nil {
		router.GET("/metrics", gin.WrapH(h.metrics.Handler()))
	}

	api := router.Group("/api")
	{
		h.registerAuthRoutes(api)
		h.registerFileRoutes(api)
		h.registerUserRoutes(api)
		h.registerAuditRoutes(api)
	}

	return router
}

func (h *Handler) registerAuthRoutes(api *gin.RouterGroup) {
	auth := api.Group("/auth")
	{
		auth.POST("/registerAdmin", h.registerAdmin)
		auth.POST("/login", h.login)
		auth.POST("/send-reset-code", h.sendResetCode)
		auth.POST("/verify-reset-code", h.verifyResetCode)
		auth.POST("/reset-password", h.resetPassword)
	}
}

func (h *Handler) registerFileRoutes(api *gin.RouterGroup) {
	files := api.Group("/files", h.authMiddleware)
	{
		files.GET("", h.listFiles)
		files.GET("/ws", h.wsConnect)
		files.GET("/:id/download", h.downloadFile)
		files.POST("", h.requireRole(models.RoleAdmin), h.uploadFile)
		files.DELETE("/:id", h.requireRole(models.RoleAdmin), h.removeFile)
	}
}

func (h *Handler) registerUserRoutes(api *gin.RouterGroup) {
	users := api.Group("/users")
	{
		users.GET("/users", h.listUsers)
		users.POST("/add-user", h.authMiddleware, h.requireRole(models.RoleAdmin), h.addUser)
		users.DELETE("/remove-user/:id", h.authMiddleware, h.requireRole(models.RoleAdmin), h.removeUser)
		users.PATCH("/update-details", h.authMiddleware, h.updateDetails)
	}
}

func (h *Handler) registerAuditRoutes(api *gin.RouterGroup) {
	api.GET("/audit", h.authMiddleware, h.requireRole(models.RoleAdmin), h.getAuditEvents)
}
