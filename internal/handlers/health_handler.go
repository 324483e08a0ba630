package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/carrental/internal/config"
	"github.com/joshua-takyi/carrental/internal/services"
)

const apiVersion = "1.0.0"

// Home reports process liveness and the current store connection state.
func Home(bs *services.BookingService, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"success":     true,
			"message":     "Car rental booking API is running",
			"version":     apiVersion,
			"environment": cfg.Environment,
			"database":    bs.ConnectionState(),
		})
	}
}

// DBStatus probes the store with a count. It always answers 200; health is
// carried by the success flag and a -1 count means the probe itself failed.
func DBStatus(bs *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		state, count := bs.DBStatus(c.Request.Context())

		message := "Database is reachable"
		healthy := state == "connected" && count >= 0
		if !healthy {
			message = "Database is not reachable"
		}

		c.JSON(http.StatusOK, gin.H{
			"success":  healthy,
			"message":  message,
			"database": state,
			"bookings": count,
		})
	}
}
