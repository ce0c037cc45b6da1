package router

import (
	"github.com/gin-gonic/gin"

	"hrdesk/internal/config"
	"hrdesk/internal/handler"
	"hrdesk/internal/middleware"
	"hrdesk/internal/service"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	authSvc service.AuthService,
	loginH *handler.LoginHandler,
	screenH *handler.ScreenHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// Public login wizard routes
	login := v1.Group("/login")
	login.POST("/start", loginH.Start)
	login.POST("/field", loginH.SetField)
	login.POST("/next", loginH.Next)
	login.POST("/prev", loginH.Prev)
	login.POST("/submit", loginH.Submit)

	// Protected routes - require a valid session token
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))

	screens := protected.Group("/screens/:kind")
	screens.GET("", screenH.Get)
	screens.POST("/refresh", screenH.Refresh)
	screens.PUT("/search", screenH.Search)
	screens.PUT("/filter", screenH.Filter)
	screens.PUT("/sort", screenH.Sort)
	screens.POST("/records", screenH.CreateRecord)
	screens.PATCH("/records/:id", screenH.UpdateRecord)
	screens.DELETE("/records/:id", screenH.DeleteRecord)
	screens.GET("/export", screenH.Export)
	screens.DELETE("", screenH.Release)

	protected.GET("/attendance/summary", screenH.AttendanceSummary)

	return r
}
