package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	BookingDbName  = "carrental"
	BookingColName = "bookings"

	BookingStatusConfirmed = "confirmed"
)

// Booking is the persisted reservation document. Known fields are closed;
// unknown client fields travel through the Extra map so forward compatibility
// stays explicit instead of relying on a schemaless collection.
type Booking struct {
	ID              primitive.ObjectID     `bson:"_id,omitempty" json:"id"`
	BookingID       string                 `bson:"bookingId" json:"bookingId"`
	Name            string                 `bson:"name" json:"name" validate:"required"`
	Email           string                 `bson:"email" json:"email" validate:"required"`
	Phone           string                 `bson:"phone" json:"phone" validate:"required"`
	CarModel        string                 `bson:"carModel" json:"carModel" validate:"required"`
	CarID           int                    `bson:"carId" json:"carId"`
	PickupDate      time.Time              `bson:"pickupDate,omitempty" json:"pickupDate,omitempty"`
	ReturnDate      time.Time              `bson:"returnDate,omitempty" json:"returnDate,omitempty"`
	PickupLocation  string                 `bson:"pickupLocation,omitempty" json:"pickupLocation,omitempty"`
	SpecialRequests string                 `bson:"specialRequests" json:"specialRequests"`
	DailyRate       float64                `bson:"dailyRate" json:"dailyRate"`
	RentalDays      int                    `bson:"rentalDays" json:"rentalDays"`
	TotalAmount     float64                `bson:"totalAmount" json:"totalAmount"`
	Status          string                 `bson:"status" json:"status"`
	CreatedAt       time.Time              `bson:"createdAt" json:"createdAt"`
	Extra           map[string]interface{} `bson:",inline" json:"extra,omitempty"`
}

// BookingSummary is the reduced projection returned by the listing endpoint.
type BookingSummary struct {
	ID        primitive.ObjectID `json:"id"`
	BookingID string             `json:"bookingId"`
	Name      string             `json:"name"`
	CarModel  string             `json:"carModel"`
	Status    string             `json:"status"`
	CreatedAt time.Time          `json:"createdAt"`
}

func (b *Booking) Summary() BookingSummary {
	return BookingSummary{
		ID:        b.ID,
		BookingID: b.BookingID,
		Name:      b.Name,
		CarModel:  b.CarModel,
		Status:    b.Status,
		CreatedAt: b.CreatedAt,
	}
}

func (b *Booking) BeforeCreate() error {
	if b.ID.IsZero() {
		b.ID = primitive.NewObjectID()
	}
	if b.Status == "" {
		b.Status = BookingStatusConfirmed
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}
	return nil
}

// ValidateBooking reports missing required fields with a hand-written
// message; raw validator output never reaches a response body.
func (b *Booking) ValidateBooking() error {
	err := Validate.Struct(b)
	if err == nil {
		return nil
	}

	var invalid validator.ValidationErrors
	if errors.As(err, &invalid) {
		fields := make([]string, 0, len(invalid))
		for _, fe := range invalid {
			fields = append(fields, fe.Field())
		}
		return fmt.Errorf("%w: missing required fields: %s", ErrValidation, strings.Join(fields, ", "))
	}
	return fmt.Errorf("%w: invalid booking record", ErrValidation)
}
