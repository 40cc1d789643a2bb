package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/GarageLog/garage-log-backend/config"
	"github.com/GarageLog/garage-log-backend/handlers"
	"github.com/GarageLog/garage-log-backend/middleware"
)

// Dependencies struct holds all dependencies required for setting up routes.
type Dependencies struct {
	Config            *config.Config
	JWTValidator      middleware.Validator
	VehicleHandler    *handlers.VehicleHandler
	TimelineHandler   *handlers.TimelineHandler
	ExtractionHandler *handlers.ExtractionHandler
	HealthHandler     *handlers.HealthHandler
	Logger            *zap.SugaredLogger
}

// SetupRouter configures and returns the main Gin engine with all routes defined.
func SetupRouter(deps Dependencies) *gin.Engine {
	r := gin.Default()

	// Global middleware
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(&deps.Config.Server))

	// Health and metrics routes (no auth)
	r.GET("/health", deps.HealthHandler.ReadinessCheck)
	r.GET("/health/liveness", deps.HealthHandler.LivenessCheck)
	r.GET("/health/readiness", deps.HealthHandler.ReadinessCheck)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Versioned API group
	v1 := r.Group("/v1")
	{
		authRoutes := v1.Group("")
		authRoutes.Use(middleware.AuthMiddleware(deps.JWTValidator))
		{
			vehicleRoutes := authRoutes.Group("/vehicles")
			{
				vehicleRoutes.POST("", deps.VehicleHandler.CreateVehicleHandler)
				vehicleRoutes.GET("", deps.VehicleHandler.ListVehiclesHandler)
				vehicleRoutes.GET("/:id", deps.VehicleHandler.GetVehicleHandler)
				vehicleRoutes.PUT("/:id", deps.VehicleHandler.UpdateVehicleHandler)
				vehicleRoutes.DELETE("/:id", deps.VehicleHandler.DeleteVehicleHandler)

				// Timeline routes, nested under the owning vehicle
				timelineRoutes := vehicleRoutes.Group("/:id/timeline")
				{
					timelineRoutes.POST("", deps.TimelineHandler.CreateItemHandler)
					timelineRoutes.GET("", deps.TimelineHandler.GetFeedHandler)
					timelineRoutes.GET("/:itemId", deps.TimelineHandler.GetItemHandler)
					timelineRoutes.PUT("/:itemId", deps.TimelineHandler.UpdateItemHandler)
					timelineRoutes.DELETE("/:itemId", deps.TimelineHandler.DeleteItemHandler)
				}

				// Vision extraction for pre-filling timeline items
				vehicleRoutes.POST("/:id/extract", deps.ExtractionHandler.ExtractHandler)
			}
		}
	}

	return r
}
