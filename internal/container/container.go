package container

import (
	"log/slog"

	"github.com/joshua-takyi/carrental/internal/connect"
	"github.com/joshua-takyi/carrental/internal/models"
	"github.com/joshua-takyi/carrental/internal/services"
)

// Container holds all application dependencies
type Container struct {
	Logger         *slog.Logger
	Mongo          *connect.Mongo
	BookingRepo    models.BookingRepo
	BookingService *services.BookingService
}

// NewContainer creates a new dependency injection container
func NewContainer(logger *slog.Logger, mongo *connect.Mongo) *Container {
	bookingRepo := models.MongodbNewRepo(mongo)
	bookingService := services.NewBookingService(bookingRepo)

	return &Container{
		Logger:         logger,
		Mongo:          mongo,
		BookingRepo:    bookingRepo,
		BookingService: bookingService,
	}
}
