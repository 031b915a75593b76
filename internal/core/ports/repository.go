package ports

import (
	"context"

	"github.com/srgjo27/bus_reservation/internal/core/domain"
)

// PassengerRepository is the passenger registry. It owns id allocation.
type PassengerRepository interface {
	Register(ctx context.Context, details domain.PassengerDetails) (*domain.Passenger, error)
	Restore(ctx context.Context, passenger *domain.Passenger) error
	FindByID(ctx context.Context, passengerID string) (*domain.Passenger, error)
	List(ctx context.Context) ([]*domain.Passenger, error)
}

type TripRepository interface {
	Add(ctx context.Context, trip *domain.Trip) error
	FindByID(ctx context.Context, tripID string) (*domain.Trip, error)
	List(ctx context.Context) ([]*domain.Trip, error)
}

// StateStore persists the flat snapshot of all reservation state.
type StateStore interface {
	Load(ctx context.Context) (*domain.Snapshot, error)
	Save(ctx context.Context, snapshot *domain.Snapshot) error
}
