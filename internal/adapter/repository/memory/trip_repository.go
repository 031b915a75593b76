package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/srgjo27/bus_reservation/internal/core/domain"
)

type TripRepository struct {
	mu    sync.RWMutex
	trips []*domain.Trip
	byID  map[string]*domain.Trip
}

func NewTripRepository() *TripRepository {
	return &TripRepository{byID: make(map[string]*domain.Trip)}
}

func (r *TripRepository) Add(ctx context.Context, trip *domain.Trip) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.byID[key(trip.ID)] != nil {
		return domain.ValidationError{Field: "trip_id", Msg: fmt.Sprintf("bus number %s already exists", trip.ID)}
	}

	r.trips = append(r.trips, trip)
	r.byID[key(trip.ID)] = trip

	return nil
}

func (r *TripRepository) FindByID(ctx context.Context, tripID string) (*domain.Trip, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	trip, ok := r.byID[key(tripID)]
	if !ok {
		return nil, domain.NotFoundError{Resource: "trip", ID: tripID}
	}

	return trip, nil
}

func (r *TripRepository) List(ctx context.Context) ([]*domain.Trip, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Trip, len(r.trips))
	copy(out, r.trips)

	return out, nil
}
