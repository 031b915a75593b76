package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingConfirmed  BookingStatus = "CONFIRMED"
	BookingWaitlisted BookingStatus = "WAITLISTED"
)

// Booking ties one passenger to one seat on one trip. It is created only by
// Trip.BookSeat and lives in the trip's seat table until cancelled.
type Booking struct {
	ID         uuid.UUID  `json:"id"`
	TripID     string     `json:"trip_id"`
	Passenger  *Passenger `json:"passenger"`
	SeatNumber int        `json:"seat_number"`
	Fare       float64    `json:"fare"`
	BookedAt   time.Time  `json:"booked_at"`
}

func (b *Booking) String() string {
	return fmt.Sprintf("Seat %d booked by %s (ID: %s)", b.SeatNumber, b.Passenger.Name, b.Passenger.ID)
}

func (b *Booking) Record() BookingRecord {
	return BookingRecord{
		TripID:      b.TripID,
		PassengerID: b.Passenger.ID,
		SeatNumber:  b.SeatNumber,
	}
}

// SeatResult is the outcome of Trip.BookSeat. Booking is set when Status is
// BookingConfirmed, WaitlistPosition (1-based) when it is BookingWaitlisted.
type SeatResult struct {
	Status           BookingStatus
	SeatNumber       int
	Booking          *Booking
	WaitlistPosition int
}
