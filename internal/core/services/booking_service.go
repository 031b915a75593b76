package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/srgjo27/bus_reservation/internal/core/domain"
	"github.com/srgjo27/bus_reservation/internal/core/ports"
)

type BookSeatRequest struct {
	TripID      string `json:"trip_id"`
	PassengerID string `json:"passenger_id"`
	SeatNumber  int    `json:"seat_number"`
}

type BookSeatResponse struct {
	Status           string  `json:"status"`
	TripID           string  `json:"trip_id"`
	SeatNumber       int     `json:"seat_number"`
	PassengerID      string  `json:"passenger_id"`
	PassengerName    string  `json:"passenger_name"`
	BookingID        string  `json:"booking_id,omitempty"`
	Fare             float64 `json:"fare,omitempty"`
	WaitlistPosition int     `json:"waitlist_position,omitempty"`
}

type CancelBookingRequest struct {
	TripID      string `json:"trip_id"`
	PassengerID string `json:"passenger_id"`
	SeatNumber  int    `json:"seat_number"`
}

type Promotion struct {
	PassengerID   string  `json:"passenger_id"`
	PassengerName string  `json:"passenger_name"`
	BookingID     string  `json:"booking_id"`
	Fare          float64 `json:"fare"`
}

type CancelBookingResponse struct {
	TripID        string                        `json:"trip_id"`
	SeatNumber    int                           `json:"seat_number"`
	PassengerID   string                        `json:"passenger_id"`
	PassengerName string                        `json:"passenger_name"`
	Notifications []domain.NeighborNotification `json:"notifications"`
	Promoted      *Promotion                    `json:"promoted,omitempty"`
}

type WaitlistRequest struct {
	TripID      string `json:"trip_id"`
	PassengerID string `json:"passenger_id"`
}

type WaitlistResponse struct {
	TripID        string `json:"trip_id"`
	PassengerID   string `json:"passenger_id"`
	PassengerName string `json:"passenger_name"`
	Position      int    `json:"position"`
}

type TripBookings struct {
	TripID   string            `json:"trip_id"`
	Bookings []*domain.Booking `json:"bookings"`
}

type TripWaitlist struct {
	TripID     string              `json:"trip_id"`
	Passengers []*domain.Passenger `json:"passengers"`
}

// BookingService runs booking, cancellation and waitlist requests against a
// trip. Every mutation of a trip happens while holding that trip's lock, so a
// seat freed by a cancellation is handed to the waitlist head before any other
// request can see it.
type BookingService struct {
	tripRepo      ports.TripRepository
	passengerRepo ports.PassengerRepository
	sink          ports.NotificationSink
	cache         ports.SeatCache
	notifyTimeout time.Duration
}

const defaultNotifyTimeout = 2 * time.Second

// NewBookingService wires the service. sink and cache may be nil.
func NewBookingService(tripRepo ports.TripRepository, passengerRepo ports.PassengerRepository, sink ports.NotificationSink, cache ports.SeatCache) *BookingService {
	return &BookingService{
		tripRepo:      tripRepo,
		passengerRepo: passengerRepo,
		sink:          sink,
		cache:         cache,
		notifyTimeout: defaultNotifyTimeout,
	}
}

// SetNotifyTimeout bounds each neighbour notification. Notifications are sent
// while the trip is locked, so a stalled sink holds up every request for that
// trip until the timeout fires. Non-positive values are ignored.
func (s *BookingService) SetNotifyTimeout(d time.Duration) {
	if d > 0 {
		s.notifyTimeout = d
	}
}

func (s *BookingService) BookSeat(ctx context.Context, req BookSeatRequest) (*BookSeatResponse, error) {
	trip, passenger, err := s.resolve(ctx, req.TripID, req.PassengerID)
	if err != nil {
		return nil, err
	}

	if !trip.InRange(req.SeatNumber) {
		return nil, seatRangeError(trip)
	}

	trip.Lock()
	res, err := trip.BookSeat(passenger, req.SeatNumber)
	trip.Unlock()

	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, trip.ID)

	resp := &BookSeatResponse{
		Status:        string(res.Status),
		TripID:        trip.ID,
		SeatNumber:    req.SeatNumber,
		PassengerID:   passenger.ID,
		PassengerName: passenger.Name,
	}

	switch res.Status {
	case domain.BookingConfirmed:
		resp.BookingID = res.Booking.ID.String()
		resp.Fare = res.Booking.Fare
		log.Printf("Seat %d on %s booked for %s", req.SeatNumber, trip.ID, passenger)
	case domain.BookingWaitlisted:
		resp.WaitlistPosition = res.WaitlistPosition
		log.Printf("Seat %d on %s unavailable, %s waitlisted at position %d", req.SeatNumber, trip.ID, passenger, res.WaitlistPosition)
	}

	return resp, nil
}

// CancelBooking frees a seat held by the passenger. Neighbours in the
// adjacent seat numbers are notified before the seat is released, then the
// earliest waitlisted passenger, if any, is booked into it.
func (s *BookingService) CancelBooking(ctx context.Context, req CancelBookingRequest) (*CancelBookingResponse, error) {
	trip, passenger, err := s.resolve(ctx, req.TripID, req.PassengerID)
	if err != nil {
		return nil, err
	}

	if !trip.InRange(req.SeatNumber) {
		return nil, seatRangeError(trip)
	}

	trip.Lock()
	resp, err := s.cancelLocked(ctx, trip, passenger, req.SeatNumber)
	trip.Unlock()

	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, trip.ID)

	return resp, nil
}

func (s *BookingService) cancelLocked(ctx context.Context, trip *domain.Trip, passenger *domain.Passenger, seatNumber int) (*CancelBookingResponse, error) {
	if !trip.HeldBy(seatNumber, passenger) {
		return nil, domain.ReservationNotFoundError{TripID: trip.ID, SeatNumber: seatNumber, PassengerID: passenger.ID}
	}

	notifications := trip.NeighborNotifications(seatNumber, passenger)
	for _, n := range notifications {
		s.notify(ctx, n)
	}

	if _, err := trip.CancelSeat(seatNumber, passenger); err != nil {
		return nil, err
	}

	log.Printf("Reservation cancelled for %s, seat %d on %s", passenger, seatNumber, trip.ID)

	resp := &CancelBookingResponse{
		TripID:        trip.ID,
		SeatNumber:    seatNumber,
		PassengerID:   passenger.ID,
		PassengerName: passenger.Name,
		Notifications: notifications,
	}

	if trip.WaitlistLen() == 0 {
		return resp, nil
	}

	next, err := trip.NextWaiting()
	if err != nil {
		return nil, fmt.Errorf("failed to read waiting list: %w", err)
	}

	res, err := trip.BookSeat(next, seatNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to promote %s into seat %d: %w", next.ID, seatNumber, err)
	}

	resp.Promoted = &Promotion{
		PassengerID:   next.ID,
		PassengerName: next.Name,
		BookingID:     res.Booking.ID.String(),
		Fare:          res.Booking.Fare,
	}
	log.Printf("Seat %d on %s assigned to %s from waiting list", seatNumber, trip.ID, next)

	return resp, nil
}

// RequestWaitlist queues the passenger without trying a seat first.
func (s *BookingService) RequestWaitlist(ctx context.Context, req WaitlistRequest) (*WaitlistResponse, error) {
	trip, passenger, err := s.resolve(ctx, req.TripID, req.PassengerID)
	if err != nil {
		return nil, err
	}

	trip.Lock()
	position, err := trip.JoinWaitlist(passenger)
	trip.Unlock()

	if err != nil {
		return nil, fmt.Errorf("cannot queue %s on trip %s: %w", passenger.ID, trip.ID, err)
	}

	s.invalidate(ctx, trip.ID)
	log.Printf("%s added to waiting list for bus %s at position %d", passenger, trip.ID, position)

	return &WaitlistResponse{
		TripID:        trip.ID,
		PassengerID:   passenger.ID,
		PassengerName: passenger.Name,
		Position:      position,
	}, nil
}

// SeatMap serves the trip's availability from the cache when one is
// configured and fills it on a miss. A fill that raced with a booking change
// is dropped again so the stale map is not served until the entry expires.
func (s *BookingService) SeatMap(ctx context.Context, tripID string) (*domain.SeatMap, error) {
	trip, err := s.tripRepo.FindByID(ctx, tripID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		cached, err := s.cache.GetSeatMap(ctx, trip.ID)
		if err != nil {
			log.Printf("Seat cache read failed for %s: %v", trip.ID, err)
		} else if cached != nil {
			return cached, nil
		}
	}

	trip.Lock()
	seatMap := trip.SeatMap()
	version := trip.Version()
	trip.Unlock()

	if s.cache == nil {
		return &seatMap, nil
	}

	if err := s.cache.SetSeatMap(ctx, seatMap); err != nil {
		log.Printf("Seat cache write failed for %s: %v", trip.ID, err)
		return &seatMap, nil
	}

	trip.Lock()
	changed := trip.Version() != version
	trip.Unlock()

	if changed {
		s.invalidate(ctx, trip.ID)
	}

	return &seatMap, nil
}

func (s *BookingService) ListBookings(ctx context.Context) ([]TripBookings, error) {
	trips, err := s.tripRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]TripBookings, 0, len(trips))
	for _, trip := range trips {
		trip.Lock()
		bookings := trip.Bookings()
		trip.Unlock()

		out = append(out, TripBookings{TripID: trip.ID, Bookings: bookings})
	}

	return out, nil
}

func (s *BookingService) ListWaitlists(ctx context.Context) ([]TripWaitlist, error) {
	trips, err := s.tripRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]TripWaitlist, 0, len(trips))
	for _, trip := range trips {
		out = append(out, waitlistOf(trip))
	}

	return out, nil
}

func (s *BookingService) Waitlist(ctx context.Context, tripID string) (*TripWaitlist, error) {
	trip, err := s.tripRepo.FindByID(ctx, tripID)
	if err != nil {
		return nil, err
	}

	w := waitlistOf(trip)
	return &w, nil
}

func waitlistOf(trip *domain.Trip) TripWaitlist {
	trip.Lock()
	defer trip.Unlock()

	passengers := make([]*domain.Passenger, 0, trip.WaitlistLen())
	for p := range trip.Waiting() {
		passengers = append(passengers, p)
	}

	return TripWaitlist{TripID: trip.ID, Passengers: passengers}
}

func (s *BookingService) resolve(ctx context.Context, tripID, passengerID string) (*domain.Trip, *domain.Passenger, error) {
	if strings.TrimSpace(tripID) == "" {
		return nil, nil, domain.ValidationError{Field: "trip_id", Msg: "bus number cannot be empty"}
	}

	if strings.TrimSpace(passengerID) == "" {
		return nil, nil, domain.ValidationError{Field: "passenger_id", Msg: "passenger id cannot be empty"}
	}

	passenger, err := s.passengerRepo.FindByID(ctx, strings.TrimSpace(passengerID))
	if err != nil {
		return nil, nil, err
	}

	trip, err := s.tripRepo.FindByID(ctx, strings.TrimSpace(tripID))
	if err != nil {
		return nil, nil, err
	}

	return trip, passenger, nil
}

func (s *BookingService) notify(ctx context.Context, n domain.NeighborNotification) {
	if s.sink == nil {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, s.notifyTimeout)
	defer cancel()

	if err := s.sink.Notify(ctx, n); err != nil {
		log.Printf("Neighbor notification for %s on %s not delivered: %v", n.Neighbor.ID, n.TripID, err)
	}
}

func (s *BookingService) invalidate(ctx context.Context, tripID string) {
	if s.cache == nil {
		return
	}

	if err := s.cache.Invalidate(ctx, tripID); err != nil {
		log.Printf("Failed to invalidate seat cache for %s: %v", tripID, err)
	}
}

func seatRangeError(trip *domain.Trip) error {
	return domain.ValidationError{
		Field: "seat_number",
		Msg:   fmt.Sprintf("must be between 1 and %d", trip.TotalSeats),
	}
}
