package handler

import (
	"net/http"

	"github.com/gorilla/mux"
)

func NewRouter(registry *RegistryHandler, booking *BookingHandler) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/passengers", registry.RegisterPassenger).Methods(http.MethodPost)
	r.HandleFunc("/passengers", registry.ListPassengers).Methods(http.MethodGet)

	r.HandleFunc("/trips", registry.RegisterTrip).Methods(http.MethodPost)
	r.HandleFunc("/trips", registry.ListTrips).Methods(http.MethodGet)
	r.HandleFunc("/trips/{id}", registry.GetTrip).Methods(http.MethodGet)
	r.HandleFunc("/trips/{id}/seats", booking.GetSeats).Methods(http.MethodGet)
	r.HandleFunc("/trips/{id}/waitlist", booking.GetWaitlist).Methods(http.MethodGet)
	r.HandleFunc("/trips/{id}/waitlist", booking.RequestWaitlist).Methods(http.MethodPost)
	r.HandleFunc("/trips/{id}/bookings/{seat:[0-9]+}", booking.CancelBooking).Methods(http.MethodDelete)

	r.HandleFunc("/bookings", booking.BookSeat).Methods(http.MethodPost)
	r.HandleFunc("/bookings", booking.ListBookings).Methods(http.MethodGet)
	r.HandleFunc("/waitlists", booking.ListWaitlists).Methods(http.MethodGet)

	r.HandleFunc("/health", healthCheck).Methods(http.MethodGet)

	return r
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}
