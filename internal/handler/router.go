package handler

import (
	"WorkshopMapDashboard/internal/logging"
	"WorkshopMapDashboard/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RouterOptions carries the settings the route table needs beyond Handler.
type RouterOptions struct {
	InviteCode       string
	ExportRatePerMin int
	Swagger          bool
}

// NewRouter registers every route on a fresh gin engine.
func NewRouter(h *Handler, opts RouterOptions) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), logging.GinLogger(h.Logger.Named("http")))

	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowHeaders = append(config.AllowHeaders, "Authorization", "X-Invite-Code")
	config.ExposeHeaders = []string{"Content-Disposition"}
	router.Use(cors.New(config))

	router.GET("/healthz", h.Health)

	router.POST("/signup", middleware.InviteCodeMiddleware(opts.InviteCode), h.Signup)
	router.POST("/login", h.Login)

	api := router.Group("/api")
	{
		api.GET("/meta", h.Meta)
		api.GET("/markers", h.Markers)
		api.GET("/heatmap", h.Heatmap)
		api.GET("/counts/:field", h.Counts)
		api.GET("/dashboard", h.DashboardQuery)
		api.POST("/dashboard", h.DashboardJSON)
		api.GET("/export.csv", middleware.RateLimitPerIP(opts.ExportRatePerMin), h.Export)
		api.GET("/views/:id", h.GetView)
		api.GET("/views/:id/qr.png", h.ViewQRCode)
	}

	admin := router.Group("/admin").Use(middleware.AuthMiddleware(h.Tokens))
	{
		admin.GET("/views", h.ListViews)
		admin.POST("/views", h.CreateView)
		admin.DELETE("/views/:id", h.DeleteView)
		admin.GET("/exports", h.ListExports)
		admin.POST("/refresh", h.Refresh)
	}

	router.GET("/ws/dashboard", h.DashboardSocket)

	if opts.Swagger {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
	return router
}
