package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/carrental/internal/config"
	"github.com/joshua-takyi/carrental/internal/models"
	"github.com/joshua-takyi/carrental/internal/services"
)

func CreateBooking(bs *services.BookingService, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input services.CreateBookingInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("Invalid request body", errorDetail(cfg, err)))
			return
		}

		booking, err := bs.CreateBooking(c.Request.Context(), &input)
		if err != nil {
			status, message := bookingErrorStatus(err)
			c.JSON(status, models.ErrorResponse(message, errorDetail(cfg, err)))
			return
		}

		c.JSON(http.StatusCreated, models.SuccessResponse(gin.H{
			"bookingId":   booking.BookingID,
			"name":        booking.Name,
			"carModel":    booking.CarModel,
			"pickupDate":  booking.PickupDate,
			"totalAmount": booking.TotalAmount,
		}, "Booking created successfully"))
	}
}

func ListBookings(bs *services.BookingService, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		bookings, err := bs.ListBookings(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse("Failed to fetch bookings", errorDetail(cfg, err)))
			return
		}

		summaries := make([]models.BookingSummary, 0, len(bookings))
		for _, booking := range bookings {
			summaries = append(summaries, booking.Summary())
		}

		c.JSON(http.StatusOK, models.SuccessResponse(summaries, "Bookings retrieved successfully"))
	}
}

// bookingErrorStatus maps persistence-layer sentinels to response codes.
// ErrDuplicateKey only reaches here after the retry budget is exhausted.
func bookingErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, models.ErrNotConnected):
		return http.StatusServiceUnavailable, "Database not connected"
	case errors.Is(err, models.ErrValidation):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, models.ErrDuplicateKey):
		return http.StatusConflict, "Could not allocate a unique booking id"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

// errorDetail exposes the underlying error only in development deployments.
func errorDetail(cfg *config.Config, err error) string {
	if cfg.IsDevelopment() {
		return err.Error()
	}
	return ""
}
