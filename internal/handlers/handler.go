package handlers

import (
	_ "securewatch/docs"
	"securewatch/internal/logger"
	"securewatch/internal/metrics"
	"securewatch/internal/service"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const (
	defaultSignInRate  = 1
	defaultSignInBurst = 5
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services      *service.Service
	log           *logger.Logger
	signInLimiter *rate.Limiter
}

// Option configures a Handler.
type Option func(*Handler)

// WithSignInLimit caps sign-in attempts at perSecond with the given burst.
func WithSignInLimit(perSecond float64, burst int) Option {
	return func(h *Handler) { h.signInLimiter = rate.NewLimiter(rate.Limit(perSecond), burst) }
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger, opts ...Option) *Handler {
	h := &Handler{
		services:      services,
		log:           log,
		signInLimiter: rate.NewLimiter(defaultSignInRate, defaultSignInBurst),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), h.metricsMiddleware)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))
	router.GET("/health", h.health)

	h.registerAuthRoutes(router)
	h.registerAPIRoutes(router)

	// Apply-fix progress stream (HTTP upgrade) on the same port.
	router.GET("/ws/dialogs/:sid", h.wsTokenQuery, h.userIdMiddleware, h.wsFixProgress)

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/sign-up", h.signUp)
		auth.POST("/sign-in", h.signInLimit, h.signIn)
	}
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1", h.userIdMiddleware)
	{
		api.GET("/dashboard", h.getDashboard)
		api.GET("/team", h.getTeam)
		api.GET("/fixes/proposed", h.getProposedFixes)
		h.registerIncidentRoutes(api)
		h.registerDialogRoutes(api)
		h.registerNotificationRoutes(api)
		h.registerSettingsRoutes(api)
	}
}

func (h *Handler) registerIncidentRoutes(api *gin.RouterGroup) {
	incidents := api.Group("/incidents")
	{
		incidents.GET("", h.listIncidents)
		incidents.GET("/:id", h.getIncident)
		incidents.GET("/:id/report", h.exportReport)
		incidents.POST("/:id/execute", h.executeSolution)
		incidents.POST("/:id/dialogs/:kind", h.openDialog)
	}
}

func (h *Handler) registerDialogRoutes(api *gin.RouterGroup) {
	dialogs := api.Group("/dialogs")
	{
		dialogs.GET("/:sid", h.getDialog)
		// Body example: {"member_id":"2","reason":"database expertise"}
		dialogs.POST("/:sid/submit", h.submitDialog)
		dialogs.POST("/:sid/close", h.closeDialog)
	}
}

func (h *Handler) registerNotificationRoutes(api *gin.RouterGroup) {
	api.GET("/notifications", h.getNotifications)
}

func (h *Handler) registerSettingsRoutes(api *gin.RouterGroup) {
	settings := api.Group("/settings")
	{
		settings.GET("", h.getSettings)
		settings.PUT("", h.updateSettings)
	}
}
