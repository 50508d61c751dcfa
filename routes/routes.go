package routes

import (
	"time"

	"rosa/handlers"
	"rosa/middleware"
	"rosa/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// RegisterCatalogRoutes registers the public service and cabin lists.
func RegisterCatalogRoutes(r gin.IRouter, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	{
		api.GET("/services", hb.Catalog.ListServices)
		api.GET("/cabanas", hb.Catalog.ListCabins)
	}
}

// RegisterAdminRoutes sets up the staff endpoints.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	adminGroup := r.Group("/api/admin")
	{
		adminGroup.Use(hb.AdminAuth)

		adminGroup.GET("/agendamentos", hb.Admin.GetDayGrid)
		adminGroup.GET("/agendamentos/stream", hb.Admin.StreamDay)
		adminGroup.GET("/agendamentos/integrity", hb.Admin.CheckIntegrity)
		adminGroup.POST("/agendamentos/slots", hb.Admin.ReserveSlot)
		adminGroup.POST("/agendamentos/block", hb.Admin.Block)
		adminGroup.POST("/agendamentos/unblock", hb.Admin.Unblock)
		adminGroup.POST("/agendamentos/release", hb.Admin.Release)
		adminGroup.POST("/agendamentos/revoke", hb.Admin.Revoke)
		adminGroup.PATCH("/agendamentos/:id", hb.Admin.UpdateGuest)
		adminGroup.DELETE("/agendamentos/:id", hb.Admin.CancelBooking)

		adminGroup.PUT("/services/:id", hb.Admin.UpsertService)
		adminGroup.POST("/comandas", hb.Comanda.IssueComanda)
	}
}

// RegisterOpsRoutes registers health and metrics endpoints.
func RegisterOpsRoutes(r *gin.Engine) {
	r.GET("/health", handlers.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, logger *zap.Logger, maxRequestsPerMin int) {
	r.Use(utils.ErrorHandler())
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.MetricsMiddleware())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterOpsRoutes(r)

	limited := r.Group("")
	limited.Use(middleware.RateLimitMiddleware(maxRequestsPerMin))
	{
		RegisterCatalogRoutes(limited, hb)
		RegisterBookingRoutes(limited, hb)
	}
	RegisterAdminRoutes(r, hb)
}
