package v1

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все маршруты API v1
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	// Открытые маршруты
	api.POST("/auth/login", h.login)
	api.POST("/auth/signup", h.signup)
	api.GET("/system/health", h.healthCheck)

	// Остальное доступно только в рамках сессии
	protected := api.Group("", SessionAuthMiddleware(h.sessionService, h.cookies, h.logger))
	{
		protected.POST("/auth/logout", h.logout)
		protected.GET("/auth/me", h.me)
		protected.GET("/dashboard", h.dashboard)
		protected.GET("/zones", h.listZones)
		protected.GET("/events", h.recentEvents)
	}

	alerts := protected.Group("/alerts")
	{
		alerts.GET("", h.listAlerts)
		alerts.GET("/nearby", h.nearbyAlerts)
		alerts.GET("/unread-count", h.unreadCount)
		alerts.POST("/read-all", h.markAllAlertsRead)
		alerts.GET("/:id", h.getAlert)
		alerts.POST("/:id/read", h.markAlertRead)
	}

	incidents := protected.Group("/incidents")
	{
		incidents.GET("", h.listIncidents)
		incidents.POST("", h.createIncident)
		incidents.GET("/:id", h.getIncident)
		incidents.POST("/:id/updates", h.appendUpdate)
	}
}
