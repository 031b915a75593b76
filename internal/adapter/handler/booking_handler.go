package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/srgjo27/bus_reservation/internal/core/domain"
	"github.com/srgjo27/bus_reservation/internal/core/services"
)

type BookingHandler struct {
	svc *services.BookingService
}

func NewBookingHandler(svc *services.BookingService) *BookingHandler {
	return &BookingHandler{svc: svc}
}

// BookSeat answers 201 for a confirmed seat and 202 when the passenger was
// waitlisted instead.
func (h *BookingHandler) BookSeat(w http.ResponseWriter, r *http.Request) {
	var req services.BookSeatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	resp, err := h.svc.BookSeat(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	status := http.StatusCreated
	if resp.Status == string(domain.BookingWaitlisted) {
		status = http.StatusAccepted
	}

	respondJSON(w, status, resp)
}

func (h *BookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	seat, err := strconv.Atoi(vars["seat"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid seat number")
		return
	}

	resp, err := h.svc.CancelBooking(r.Context(), services.CancelBookingRequest{
		TripID:      vars["id"],
		PassengerID: r.URL.Query().Get("passenger_id"),
		SeatNumber:  seat,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, resp)
}

func (h *BookingHandler) RequestWaitlist(w http.ResponseWriter, r *http.Request) {
	var body struct {
		PassengerID string `json:"passenger_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	resp, err := h.svc.RequestWaitlist(r.Context(), services.WaitlistRequest{
		TripID:      mux.Vars(r)["id"],
		PassengerID: body.PassengerID,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, resp)
}

func (h *BookingHandler) GetSeats(w http.ResponseWriter, r *http.Request) {
	seatMap, err := h.svc.SeatMap(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, seatMap)
}

func (h *BookingHandler) GetWaitlist(w http.ResponseWriter, r *http.Request) {
	waitlist, err := h.svc.Waitlist(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, waitlist)
}

func (h *BookingHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.svc.ListBookings(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, bookings)
}

func (h *BookingHandler) ListWaitlists(w http.ResponseWriter, r *http.Request) {
	waitlists, err := h.svc.ListWaitlists(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, waitlists)
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("Failed to encode response: %v", err)
		}
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case domain.IsValidation(err):
		respondError(w, http.StatusBadRequest, err.Error())
	case domain.IsNotFound(err), domain.IsReservationNotFound(err):
		respondError(w, http.StatusNotFound, err.Error())
	case domain.IsQueueFull(err):
		respondError(w, http.StatusConflict, err.Error())
	default:
		log.Printf("Request failed: %v", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
	}
}
