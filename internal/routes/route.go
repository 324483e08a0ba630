package routes

import (
	"fmt"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/carrental/internal/config"
	"github.com/joshua-takyi/carrental/internal/container"
	"github.com/joshua-takyi/carrental/internal/handlers"
	"github.com/joshua-takyi/carrental/internal/middleware"
	"github.com/joshua-takyi/carrental/internal/models"
)

// SetupRoutes configures all routes with the dependency container
func SetupRoutes(c *container.Container, cfg *config.Config) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Content-Type", "Authorization", "Accept"},
	}))

	// Add middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(c.Logger))
	r.Use(middleware.ErrorHandler(c.Logger, cfg))
	r.Use(gin.CustomRecovery(func(ctx *gin.Context, _ any) {
		ctx.JSON(http.StatusInternalServerError, models.ErrorResponse("Internal server error", ""))
	}))

	// Liveness
	r.GET("/", handlers.Home(c.BookingService, cfg))

	api := r.Group("/api")
	{
		api.GET("/db-status", handlers.DBStatus(c.BookingService))

		bookingRoutes := api.Group("/bookings")
		{
			bookingRoutes.POST("", handlers.CreateBooking(c.BookingService, cfg))
			bookingRoutes.GET("", handlers.ListBookings(c.BookingService, cfg))
		}
	}

	r.NoRoute(func(ctx *gin.Context) {
		ctx.JSON(http.StatusNotFound, models.ErrorResponse(fmt.Sprintf("Route %s not found", ctx.Request.URL.Path), ""))
	})

	return r
}
