package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/joshua-takyi/carrental/internal/connect"
	"github.com/joshua-takyi/carrental/internal/helpers"
	"github.com/joshua-takyi/carrental/internal/models"
)

// maxIDAttempts bounds the generate-and-insert loop: one initial attempt
// plus one retry with a widened identifier space.
const maxIDAttempts = 2

const listLimit = 10

type BookingService struct {
	bookingRepo models.BookingRepo
}

func NewBookingService(bookingRepo models.BookingRepo) *BookingService {
	return &BookingService{
		bookingRepo: bookingRepo,
	}
}

// CreateBookingInput is the loosely-typed request body. Numeric fields are
// interface{} because clients send them as numbers or strings; coercion
// happens during normalization.
type CreateBookingInput struct {
	Name            string                 `json:"name"`
	Email           string                 `json:"email"`
	Phone           string                 `json:"phone"`
	CarModel        string                 `json:"carModel"`
	CarID           interface{}            `json:"carId"`
	PickupDate      string                 `json:"pickupDate"`
	ReturnDate      string                 `json:"returnDate"`
	PickupLocation  string                 `json:"pickupLocation"`
	Location        string                 `json:"location"`
	SpecialRequests string                 `json:"specialRequests"`
	DailyRate       interface{}            `json:"dailyRate"`
	RentalDays      interface{}            `json:"rentalDays"`
	TotalAmount     interface{}            `json:"totalAmount"`
	Extra           map[string]interface{} `json:"extra"`
}

func (bs *BookingService) CreateBooking(ctx context.Context, input *CreateBookingInput) (*models.Booking, error) {
	if bs.bookingRepo.State() != connect.Connected {
		return nil, models.ErrNotConnected
	}

	booking, err := bs.normalize(input)
	if err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		booking.BookingID = helpers.GenerateBookingID(attempt)
		created, err := bs.bookingRepo.CreateBooking(ctx, booking)
		if err == nil {
			return created, nil
		}
		if !errors.Is(err, models.ErrDuplicateKey) {
			return nil, err
		}
		lastErr = err
	}
	return nil, lastErr
}

func (bs *BookingService) normalize(input *CreateBookingInput) (*models.Booking, error) {
	name := helpers.StringTrim(input.Name)
	email := helpers.StringTrim(input.Email)
	phone := helpers.StringTrim(input.Phone)
	carModel := helpers.StringTrim(input.CarModel)

	if name == "" || email == "" || phone == "" || carModel == "" {
		return nil, fmt.Errorf("%w: name, email, phone and carModel are required", models.ErrValidation)
	}

	pickupLocation := helpers.StringTrim(input.PickupLocation)
	if pickupLocation == "" {
		// older clients send the field as "location"
		pickupLocation = helpers.StringTrim(input.Location)
	}

	booking := &models.Booking{
		Name:            name,
		Email:           email,
		Phone:           phone,
		CarModel:        carModel,
		CarID:           helpers.ToInt(input.CarID, 1),
		PickupLocation:  pickupLocation,
		SpecialRequests: helpers.StringTrim(input.SpecialRequests),
		DailyRate:       helpers.ToFloat(input.DailyRate, 0),
		RentalDays:      helpers.ToInt(input.RentalDays, 1),
		TotalAmount:     helpers.ToFloat(input.TotalAmount, 0),
		Status:          models.BookingStatusConfirmed,
		Extra:           pruneExtra(input.Extra),
	}

	if raw := helpers.StringTrim(input.PickupDate); raw != "" {
		parsed, err := helpers.ParseDate(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid pickupDate: %v", models.ErrValidation, err)
		}
		booking.PickupDate = parsed
	}
	if raw := helpers.StringTrim(input.ReturnDate); raw != "" {
		parsed, err := helpers.ParseDate(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid returnDate: %v", models.ErrValidation, err)
		}
		booking.ReturnDate = parsed
	}

	return booking, nil
}

// reservedExtraKeys are the declared bson field names of the Booking
// document. An extension key shadowing one of them would make the inlined
// map conflict with a struct field at encode time.
var reservedExtraKeys = map[string]struct{}{
	"_id": {}, "bookingId": {}, "name": {}, "email": {}, "phone": {},
	"carModel": {}, "carId": {}, "pickupDate": {}, "returnDate": {},
	"pickupLocation": {}, "specialRequests": {}, "dailyRate": {},
	"rentalDays": {}, "totalAmount": {}, "status": {}, "createdAt": {},
}

func pruneExtra(extra map[string]interface{}) map[string]interface{} {
	if len(extra) == 0 {
		return nil
	}
	out := make(map[string]interface{}, len(extra))
	for key, value := range extra {
		if _, reserved := reservedExtraKeys[key]; reserved {
			continue
		}
		out[key] = value
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func (bs *BookingService) ListBookings(ctx context.Context) ([]*models.Booking, error) {
	return bs.bookingRepo.ListBookings(ctx, listLimit)
}

func (bs *BookingService) ConnectionState() string {
	return bs.bookingRepo.State().String()
}

// DBStatus probes the store. A failed count is reported as -1 rather than
// propagated; the endpoint always answers 200.
func (bs *BookingService) DBStatus(ctx context.Context) (string, int64) {
	state := bs.bookingRepo.State()
	count, err := bs.bookingRepo.CountBookings(ctx)
	if err != nil {
		count = -1
	}
	return state.String(), count
}
