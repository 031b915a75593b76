package services

import (
	"context"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/srgjo27/bus_reservation/internal/core/domain"
	"github.com/srgjo27/bus_reservation/internal/core/ports"
)

const (
	DefaultWaitlistCapacity = 100
	DefaultMaxSeats         = 100
)

var departurePattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

type TripSummary struct {
	ID             string  `json:"id"`
	Origin         string  `json:"origin"`
	Destination    string  `json:"destination"`
	DepartureTime  string  `json:"departure_time"`
	TotalSeats     int     `json:"total_seats"`
	Fare           float64 `json:"fare"`
	AvailableSeats int     `json:"available_seats"`
	BookedSeats    int     `json:"booked_seats"`
	WaitlistLength int     `json:"waitlist_length"`
}

// RegistryService registers passengers and trips and answers lookups over them.
type RegistryService struct {
	passengerRepo    ports.PassengerRepository
	tripRepo         ports.TripRepository
	waitlistCapacity int
	maxSeats         int
}

func NewRegistryService(passengerRepo ports.PassengerRepository, tripRepo ports.TripRepository, waitlistCapacity, maxSeats int) *RegistryService {
	if waitlistCapacity <= 0 {
		waitlistCapacity = DefaultWaitlistCapacity
	}
	if maxSeats <= 0 {
		maxSeats = DefaultMaxSeats
	}

	return &RegistryService{
		passengerRepo:    passengerRepo,
		tripRepo:         tripRepo,
		waitlistCapacity: waitlistCapacity,
		maxSeats:         maxSeats,
	}
}

func (s *RegistryService) RegisterPassenger(ctx context.Context, details domain.PassengerDetails) (*domain.Passenger, error) {
	details.Name = strings.TrimSpace(details.Name)
	details.Phone = strings.TrimSpace(details.Phone)
	details.Email = strings.TrimSpace(details.Email)
	details.City = strings.TrimSpace(details.City)

	if err := details.Validate(); err != nil {
		return nil, err
	}

	return s.passengerRepo.Register(ctx, details)
}

func (s *RegistryService) RegisterTrip(ctx context.Context, details domain.TripDetails) (*domain.Trip, error) {
	if details.TotalSeats <= 0 || details.TotalSeats > s.maxSeats {
		return nil, domain.ValidationError{
			Field: "total_seats",
			Msg:   fmt.Sprintf("must be between 1 and %d", s.maxSeats),
		}
	}

	details.DepartureTime = strings.TrimSpace(details.DepartureTime)
	if !departurePattern.MatchString(details.DepartureTime) {
		return nil, domain.ValidationError{Field: "departure_time", Msg: "use HH:MM (24-hour)"}
	}

	trip, err := domain.NewTrip(details, s.waitlistCapacity)
	if err != nil {
		return nil, err
	}

	if err := s.tripRepo.Add(ctx, trip); err != nil {
		return nil, err
	}

	return trip, nil
}

// ListPassengers returns passengers in registration order, or newest first.
func (s *RegistryService) ListPassengers(ctx context.Context, newestFirst bool) ([]*domain.Passenger, error) {
	passengers, err := s.passengerRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	if newestFirst {
		slices.Reverse(passengers)
	}

	return passengers, nil
}

func (s *RegistryService) GetPassenger(ctx context.Context, passengerID string) (*domain.Passenger, error) {
	passengerID = strings.TrimSpace(passengerID)
	if passengerID == "" {
		return nil, domain.ValidationError{Field: "passenger_id", Msg: "passenger id cannot be empty"}
	}

	return s.passengerRepo.FindByID(ctx, passengerID)
}

func (s *RegistryService) GetTrip(ctx context.Context, tripID string) (*TripSummary, error) {
	trip, err := s.tripRepo.FindByID(ctx, strings.TrimSpace(tripID))
	if err != nil {
		return nil, err
	}

	summary := summarize(trip)
	return &summary, nil
}

func (s *RegistryService) ListTrips(ctx context.Context) ([]TripSummary, error) {
	trips, err := s.tripRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]TripSummary, 0, len(trips))
	for _, trip := range trips {
		out = append(out, summarize(trip))
	}

	return out, nil
}

// SearchTrips matches origin and destination case-insensitively.
func (s *RegistryService) SearchTrips(ctx context.Context, origin, destination string) ([]TripSummary, error) {
	origin = strings.TrimSpace(origin)
	destination = strings.TrimSpace(destination)

	if origin == "" {
		return nil, domain.ValidationError{Field: "origin", Msg: "starting point cannot be empty"}
	}
	if destination == "" {
		return nil, domain.ValidationError{Field: "destination", Msg: "ending point cannot be empty"}
	}

	trips, err := s.tripRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	out := []TripSummary{}
	for _, trip := range trips {
		if strings.EqualFold(trip.Origin, origin) && strings.EqualFold(trip.Destination, destination) {
			out = append(out, summarize(trip))
		}
	}

	return out, nil
}

func summarize(trip *domain.Trip) TripSummary {
	trip.Lock()
	defer trip.Unlock()

	booked := trip.BookedCount()

	return TripSummary{
		ID:             trip.ID,
		Origin:         trip.Origin,
		Destination:    trip.Destination,
		DepartureTime:  trip.DepartureTime,
		TotalSeats:     trip.TotalSeats,
		Fare:           trip.Fare,
		AvailableSeats: trip.TotalSeats - booked,
		BookedSeats:    booked,
		WaitlistLength: trip.WaitlistLen(),
	}
}
