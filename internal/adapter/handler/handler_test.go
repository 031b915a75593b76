package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/srgjo27/bus_reservation/internal/adapter/handler"
	"github.com/srgjo27/bus_reservation/internal/adapter/repository/memory"
	"github.com/srgjo27/bus_reservation/internal/core/domain"
	"github.com/srgjo27/bus_reservation/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRouter(t *testing.T, waitlistCapacity int) *mux.Router {
	t.Helper()

	passengerRepo := memory.NewPassengerRepository()
	tripRepo := memory.NewTripRepository()

	registry := services.NewRegistryService(passengerRepo, tripRepo, waitlistCapacity, 100)
	booking := services.NewBookingService(tripRepo, passengerRepo, nil, nil)

	return handler.NewRouter(handler.NewRegistryHandler(registry), handler.NewBookingHandler(booking))
}

func do(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	return out
}

func registerPassenger(t *testing.T, router http.Handler, name string) domain.Passenger {
	t.Helper()

	rec := do(t, router, http.MethodPost, "/passengers", domain.PassengerDetails{
		Name: name, Phone: "9800000000", Email: "rider@example.com", City: "Pokhara", Age: 28,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	return decode[domain.Passenger](t, rec)
}

func registerTrip(t *testing.T, router http.Handler, id string, seats int) {
	t.Helper()

	rec := do(t, router, http.MethodPost, "/trips", domain.TripDetails{
		ID: id, Origin: "Kathmandu", Destination: "Pokhara", DepartureTime: "07:30", TotalSeats: seats, Fare: 1200,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func TestHealth(t *testing.T) {
	router := setupTestRouter(t, 10)

	rec := do(t, router, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())
}

func TestRegisterPassenger(t *testing.T) {
	router := setupTestRouter(t, 10)

	p := registerPassenger(t, router, "Alice")
	assert.Equal(t, "P001", p.ID)

	rec := do(t, router, http.MethodPost, "/passengers", domain.PassengerDetails{
		Name: "Bob", Phone: "12345", Email: "bob@example.com", City: "Butwal", Age: 40,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode[map[string]string](t, rec)["error"], "phone")

	req := httptest.NewRequest(http.MethodPost, "/passengers", bytes.NewBufferString("{"))
	bad := httptest.NewRecorder()
	router.ServeHTTP(bad, req)
	assert.Equal(t, http.StatusBadRequest, bad.Code)
}

func TestListPassengers_NewestFirst(t *testing.T) {
	router := setupTestRouter(t, 10)
	registerPassenger(t, router, "Alice")
	registerPassenger(t, router, "Bob")

	rec := do(t, router, http.MethodGet, "/passengers?order=newest", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	passengers := decode[[]domain.Passenger](t, rec)
	require.Len(t, passengers, 2)
	assert.Equal(t, "Bob", passengers[0].Name)
	assert.Equal(t, "Alice", passengers[1].Name)
}

func TestTrips(t *testing.T) {
	router := setupTestRouter(t, 10)
	registerTrip(t, router, "B1", 10)

	rec := do(t, router, http.MethodPost, "/trips", domain.TripDetails{
		ID: "b1", Origin: "Kathmandu", Destination: "Pokhara", DepartureTime: "09:00", TotalSeats: 10, Fare: 900,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, router, http.MethodGet, "/trips/b1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	summary := decode[services.TripSummary](t, rec)
	assert.Equal(t, "B1", summary.ID)
	assert.Equal(t, 10, summary.AvailableSeats)

	rec = do(t, router, http.MethodGet, "/trips?origin=kathmandu&destination=POKHARA", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]services.TripSummary](t, rec), 1)

	rec = do(t, router, http.MethodGet, "/trips?origin=kathmandu", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, router, http.MethodGet, "/trips/NOPE", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBookingFlow(t *testing.T) {
	router := setupTestRouter(t, 1)
	registerTrip(t, router, "B1", 2)
	alice := registerPassenger(t, router, "Alice")
	bob := registerPassenger(t, router, "Bob")
	carol := registerPassenger(t, router, "Carol")

	rec := do(t, router, http.MethodPost, "/bookings", services.BookSeatRequest{TripID: "B1", PassengerID: alice.ID, SeatNumber: 1})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	confirmed := decode[services.BookSeatResponse](t, rec)
	assert.Equal(t, "CONFIRMED", confirmed.Status)
	assert.NotEmpty(t, confirmed.BookingID)

	rec = do(t, router, http.MethodPost, "/bookings", services.BookSeatRequest{TripID: "B1", PassengerID: bob.ID, SeatNumber: 1})
	require.Equal(t, http.StatusAccepted, rec.Code, rec.Body.String())
	waitlisted := decode[services.BookSeatResponse](t, rec)
	assert.Equal(t, "WAITLISTED", waitlisted.Status)
	assert.Equal(t, 1, waitlisted.WaitlistPosition)

	rec = do(t, router, http.MethodPost, "/bookings", services.BookSeatRequest{TripID: "B1", PassengerID: carol.ID, SeatNumber: 1})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, router, http.MethodPost, "/bookings", services.BookSeatRequest{TripID: "B1", PassengerID: carol.ID, SeatNumber: 3})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, router, http.MethodDelete, "/trips/B1/bookings/1?passenger_id="+carol.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, router, http.MethodDelete, "/trips/B1/bookings/1?passenger_id="+alice.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	cancel := decode[services.CancelBookingResponse](t, rec)
	require.NotNil(t, cancel.Promoted)
	assert.Equal(t, bob.ID, cancel.Promoted.PassengerID)

	rec = do(t, router, http.MethodGet, "/trips/B1/seats", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	seatMap := decode[domain.SeatMap](t, rec)
	assert.Equal(t, []int{2}, seatMap.AvailableSeats)
	assert.Equal(t, 0, seatMap.WaitlistLength)

	rec = do(t, router, http.MethodGet, "/bookings", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	bookings := decode[[]services.TripBookings](t, rec)
	require.Len(t, bookings, 1)
	require.Len(t, bookings[0].Bookings, 1)
	assert.Equal(t, bob.ID, bookings[0].Bookings[0].Passenger.ID)
}

func TestWaitlistEndpoints(t *testing.T) {
	router := setupTestRouter(t, 1)
	registerTrip(t, router, "B1", 2)
	alice := registerPassenger(t, router, "Alice")
	bob := registerPassenger(t, router, "Bob")

	rec := do(t, router, http.MethodPost, "/trips/B1/waitlist", map[string]string{"passenger_id": alice.ID})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, 1, decode[services.WaitlistResponse](t, rec).Position)

	rec = do(t, router, http.MethodPost, "/trips/B1/waitlist", map[string]string{"passenger_id": bob.ID})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, router, http.MethodGet, "/trips/B1/waitlist", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	waitlist := decode[services.TripWaitlist](t, rec)
	require.Len(t, waitlist.Passengers, 1)
	assert.Equal(t, alice.ID, waitlist.Passengers[0].ID)

	rec = do(t, router, http.MethodGet, "/waitlists", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]services.TripWaitlist](t, rec), 1)

	rec = do(t, router, http.MethodGet, "/trips/NOPE/waitlist", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
