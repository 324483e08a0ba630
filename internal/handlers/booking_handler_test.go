package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"regexp"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/carrental/internal/config"
	"github.com/joshua-takyi/carrental/internal/connect"
	"github.com/joshua-takyi/carrental/internal/container"
	"github.com/joshua-takyi/carrental/internal/models"
	"github.com/joshua-takyi/carrental/internal/routes"
	"github.com/joshua-takyi/carrental/internal/services"
)

type fakeBookingRepo struct {
	state    connect.State
	bookings []*models.Booking
	dupsLeft int
	listErr  error
	countErr error
}

func (f *fakeBookingRepo) CreateBooking(ctx context.Context, booking *models.Booking) (*models.Booking, error) {
	if f.state != connect.Connected {
		return nil, models.ErrNotConnected
	}
	if err := booking.ValidateBooking(); err != nil {
		return nil, err
	}
	if err := booking.BeforeCreate(); err != nil {
		return nil, err
	}
	if f.dupsLeft > 0 {
		f.dupsLeft--
		return nil, fmt.Errorf("%w: %s", models.ErrDuplicateKey, booking.BookingID)
	}
	stored := *booking
	f.bookings = append(f.bookings, &stored)
	return &stored, nil
}

func (f *fakeBookingRepo) ListBookings(ctx context.Context, limit int) ([]*models.Booking, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	if f.state != connect.Connected {
		return nil, models.ErrNotConnected
	}
	out := make([]*models.Booking, len(f.bookings))
	copy(out, f.bookings)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeBookingRepo) CountBookings(ctx context.Context) (int64, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	if f.state != connect.Connected {
		return 0, models.ErrNotConnected
	}
	return int64(len(f.bookings)), nil
}

func (f *fakeBookingRepo) EnsureBookingIndexes(ctx context.Context) error { return nil }

func (f *fakeBookingRepo) State() connect.State { return f.state }

func newTestRouter(repo models.BookingRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &config.Config{
		Port:        "5001",
		MongoDBURI:  "mongodb://localhost:27017",
		Environment: "development",
	}
	c := &container.Container{
		Logger:         logger,
		BookingRepo:    repo,
		BookingService: services.NewBookingService(repo),
	}
	return routes.SetupRoutes(c, cfg)
}

func doRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not valid JSON: %v\n%s", err, w.Body.String())
	}
	return body
}

const validBookingJSON = `{
	"name": "A",
	"email": "a@x.com",
	"phone": "123",
	"carModel": "Sedan",
	"carId": 2,
	"pickupDate": "2024-01-01",
	"returnDate": "2024-01-03",
	"location": "Downtown",
	"dailyRate": 50,
	"rentalDays": 2,
	"totalAmount": 100
}`

func TestCreateBookingEndpoint(t *testing.T) {
	repo := &fakeBookingRepo{state: connect.Connected}
	router := newTestRouter(repo)

	w := doRequest(router, http.MethodPost, "/api/bookings", validBookingJSON)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201\n%s", w.Code, w.Body.String())
	}

	body := decodeBody(t, w)
	if body["success"] != true {
		t.Error("success flag is not true")
	}

	data, ok := body["data"].(map[string]interface{})
	if !ok {
		t.Fatalf("response data missing: %v", body)
	}
	bookingID, _ := data["bookingId"].(string)
	if !regexp.MustCompile(`^CR\d+$`).MatchString(bookingID) {
		t.Errorf("bookingId %q does not match CR<digits>", bookingID)
	}
	if data["totalAmount"] != float64(100) {
		t.Errorf("totalAmount = %v, want 100", data["totalAmount"])
	}
	if data["carModel"] != "Sedan" {
		t.Errorf("carModel = %v, want Sedan", data["carModel"])
	}
	if len(repo.bookings) != 1 {
		t.Fatalf("expected 1 stored record, got %d", len(repo.bookings))
	}
	if repo.bookings[0].BookingID != bookingID {
		t.Error("stored record does not match returned booking id")
	}
}

func TestCreateBookingMissingFieldEndpoint(t *testing.T) {
	repo := &fakeBookingRepo{state: connect.Connected}
	router := newTestRouter(repo)

	w := doRequest(router, http.MethodPost, "/api/bookings", `{"name":"A","phone":"123","carModel":"Sedan"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}

	body := decodeBody(t, w)
	if body["success"] != false {
		t.Error("success flag is not false")
	}
	if msg, _ := body["message"].(string); msg == "" {
		t.Error("400 response missing descriptive message")
	}
	if len(repo.bookings) != 0 {
		t.Error("record persisted despite missing required field")
	}
}

func TestCreateBookingMalformedJSON(t *testing.T) {
	repo := &fakeBookingRepo{state: connect.Connected}
	router := newTestRouter(repo)

	w := doRequest(router, http.MethodPost, "/api/bookings", `{"name":`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestCreateBookingWhileDisconnected(t *testing.T) {
	repo := &fakeBookingRepo{state: connect.Disconnected}
	router := newTestRouter(repo)

	w := doRequest(router, http.MethodPost, "/api/bookings", validBookingJSON)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", w.Code)
	}
	if len(repo.bookings) != 0 {
		t.Error("partial record written while disconnected")
	}
}

func TestCreateBookingUnresolvedDuplicate(t *testing.T) {
	repo := &fakeBookingRepo{state: connect.Connected, dupsLeft: 2}
	router := newTestRouter(repo)

	w := doRequest(router, http.MethodPost, "/api/bookings", validBookingJSON)
	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409\n%s", w.Code, w.Body.String())
	}
}

func TestListBookingsEndpoint(t *testing.T) {
	repo := &fakeBookingRepo{state: connect.Connected}
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 15; i++ {
		repo.bookings = append(repo.bookings, &models.Booking{
			BookingID: fmt.Sprintf("CR17000000000%02d", i),
			Name:      fmt.Sprintf("client-%02d", i),
			Email:     "a@x.com",
			Phone:     "123",
			CarModel:  "Sedan",
			Status:    models.BookingStatusConfirmed,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
	}
	router := newTestRouter(repo)

	w := doRequest(router, http.MethodGet, "/api/bookings", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	body := decodeBody(t, w)
	data, ok := body["data"].([]interface{})
	if !ok {
		t.Fatalf("response data missing: %v", body)
	}
	if len(data) != 10 {
		t.Fatalf("expected 10 bookings, got %d", len(data))
	}

	first, _ := data[0].(map[string]interface{})
	if first["name"] != "client-14" {
		t.Errorf("first booking = %v, want newest (client-14)", first["name"])
	}
	last, _ := data[9].(map[string]interface{})
	if last["name"] != "client-05" {
		t.Errorf("last booking = %v, want client-05", last["name"])
	}
	if _, hasEmail := first["email"]; hasEmail {
		t.Error("listing leaks fields outside the reduced projection")
	}
}

func TestListBookingsFailure(t *testing.T) {
	repo := &fakeBookingRepo{state: connect.Connected, listErr: errors.New("cursor exploded")}
	router := newTestRouter(repo)

	w := doRequest(router, http.MethodGet, "/api/bookings", "")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
}

func TestListBookingsWhileDisconnected(t *testing.T) {
	repo := &fakeBookingRepo{state: connect.Disconnected}
	router := newTestRouter(repo)

	w := doRequest(router, http.MethodGet, "/api/bookings", "")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
}

func TestUnknownRouteNamesPath(t *testing.T) {
	repo := &fakeBookingRepo{state: connect.Connected}
	router := newTestRouter(repo)

	w := doRequest(router, http.MethodGet, "/api/unknown-path", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}

	body := decodeBody(t, w)
	msg, _ := body["message"].(string)
	if !strings.Contains(msg, "/api/unknown-path") {
		t.Errorf("404 body %q does not name the unmatched path", msg)
	}
}

func TestHomeEndpoint(t *testing.T) {
	repo := &fakeBookingRepo{state: connect.Connected}
	router := newTestRouter(repo)

	w := doRequest(router, http.MethodGet, "/", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	body := decodeBody(t, w)
	if body["database"] != "connected" {
		t.Errorf("database state = %v, want connected", body["database"])
	}
	if body["success"] != true {
		t.Error("success flag is not true")
	}
}

func TestDBStatusEndpoint(t *testing.T) {
	repo := &fakeBookingRepo{state: connect.Connected}
	repo.bookings = append(repo.bookings, &models.Booking{BookingID: "CR1", Name: "A", Email: "a@x.com", Phone: "123", CarModel: "Sedan"})
	router := newTestRouter(repo)

	w := doRequest(router, http.MethodGet, "/api/db-status", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	body := decodeBody(t, w)
	if body["success"] != true {
		t.Error("success flag is not true for healthy store")
	}
	if body["bookings"] != float64(1) {
		t.Errorf("bookings = %v, want 1", body["bookings"])
	}
}

func TestDBStatusProbeFailure(t *testing.T) {
	repo := &fakeBookingRepo{state: connect.Connected, countErr: errors.New("probe failed")}
	router := newTestRouter(repo)

	w := doRequest(router, http.MethodGet, "/api/db-status", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 even when the probe fails", w.Code)
	}

	body := decodeBody(t, w)
	if body["success"] != false {
		t.Error("success flag should be false when the probe fails")
	}
	if body["bookings"] != float64(-1) {
		t.Errorf("bookings = %v, want -1", body["bookings"])
	}
}
