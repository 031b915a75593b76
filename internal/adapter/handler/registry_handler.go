package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/srgjo27/bus_reservation/internal/core/domain"
	"github.com/srgjo27/bus_reservation/internal/core/services"
)

type RegistryHandler struct {
	svc *services.RegistryService
}

func NewRegistryHandler(svc *services.RegistryService) *RegistryHandler {
	return &RegistryHandler{svc: svc}
}

func (h *RegistryHandler) RegisterPassenger(w http.ResponseWriter, r *http.Request) {
	var details domain.PassengerDetails
	if err := json.NewDecoder(r.Body).Decode(&details); err != nil {
		respondError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	passenger, err := h.svc.RegisterPassenger(r.Context(), details)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, passenger)
}

// ListPassengers accepts ?order=newest for newest-to-oldest.
func (h *RegistryHandler) ListPassengers(w http.ResponseWriter, r *http.Request) {
	passengers, err := h.svc.ListPassengers(r.Context(), r.URL.Query().Get("order") == "newest")
	if err != nil {
		writeServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, passengers)
}

func (h *RegistryHandler) RegisterTrip(w http.ResponseWriter, r *http.Request) {
	var details domain.TripDetails
	if err := json.NewDecoder(r.Body).Decode(&details); err != nil {
		respondError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	trip, err := h.svc.RegisterTrip(r.Context(), details)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	summary, err := h.svc.GetTrip(r.Context(), trip.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, summary)
}

// ListTrips searches by route when origin or destination is given.
func (h *RegistryHandler) ListTrips(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var (
		trips []services.TripSummary
		err   error
	)
	if q.Has("origin") || q.Has("destination") {
		trips, err = h.svc.SearchTrips(r.Context(), q.Get("origin"), q.Get("destination"))
	} else {
		trips, err = h.svc.ListTrips(r.Context())
	}

	if err != nil {
		writeServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, trips)
}

func (h *RegistryHandler) GetTrip(w http.ResponseWriter, r *http.Request) {
	trip, err := h.svc.GetTrip(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, trip)
}
