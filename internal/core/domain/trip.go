package domain

import (
	"fmt"
	"iter"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

type SeatStatus string

const (
	SeatAvailable SeatStatus = "AVAILABLE"
	SeatBooked    SeatStatus = "BOOKED"
)

type TripDetails struct {
	ID            string  `json:"id"`
	Origin        string  `json:"origin"`
	Destination   string  `json:"destination"`
	DepartureTime string  `json:"departure_time"`
	TotalSeats    int     `json:"total_seats"`
	Fare          float64 `json:"fare"`
}

func (d TripDetails) Validate() error {
	if strings.TrimSpace(d.ID) == "" {
		return ValidationError{Field: "trip_id", Msg: "trip id cannot be empty"}
	}

	if d.TotalSeats <= 0 {
		return ValidationError{Field: "total_seats", Msg: "total seats must be positive"}
	}

	if d.Fare <= 0 {
		return ValidationError{Field: "fare", Msg: "fare must be positive"}
	}

	if strings.TrimSpace(d.Origin) == "" {
		return ValidationError{Field: "origin", Msg: "starting point cannot be empty"}
	}

	if strings.TrimSpace(d.Destination) == "" {
		return ValidationError{Field: "destination", Msg: "ending point cannot be empty"}
	}

	if strings.EqualFold(strings.TrimSpace(d.Origin), strings.TrimSpace(d.Destination)) {
		return ValidationError{Field: "destination", Msg: "starting and ending points cannot be the same"}
	}

	return nil
}

// Trip is the seat ledger of one scheduled run. It owns a fixed seat table
// (seat n lives at index n-1) and exactly one waiting list. Seat availability
// is derived from the seat table, so a seat is Booked iff it holds a Booking.
//
// Trip methods do not lock. Callers that share a Trip across goroutines must
// hold Lock for the whole of an operation.
type Trip struct {
	mu sync.Mutex

	ID            string
	Origin        string
	Destination   string
	DepartureTime string
	TotalSeats    int
	Fare          float64

	seats    []*Booking
	waitlist *BoundedQueue[*Passenger]
	version  uint64
}

func NewTrip(d TripDetails, waitlistCapacity int) (*Trip, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	waitlist, err := NewBoundedQueue[*Passenger](waitlistCapacity)
	if err != nil {
		return nil, err
	}

	return &Trip{
		ID:            strings.TrimSpace(d.ID),
		Origin:        strings.TrimSpace(d.Origin),
		Destination:   strings.TrimSpace(d.Destination),
		DepartureTime: d.DepartureTime,
		TotalSeats:    d.TotalSeats,
		Fare:          d.Fare,
		seats:         make([]*Booking, d.TotalSeats),
		waitlist:      waitlist,
	}, nil
}

func (t *Trip) Lock()   { t.mu.Lock() }
func (t *Trip) Unlock() { t.mu.Unlock() }

// Version increases on every change to the seat table or waiting list.
func (t *Trip) Version() uint64 { return t.version }

func (t *Trip) InRange(seatNumber int) bool {
	return seatNumber >= 1 && seatNumber <= t.TotalSeats
}

// IsSeatAvailable is false for seat numbers outside [1, TotalSeats].
func (t *Trip) IsSeatAvailable(seatNumber int) bool {
	if !t.InRange(seatNumber) {
		return false
	}
	return t.seats[seatNumber-1] == nil
}

// SeatStatus reports SeatBooked for seat numbers out of range.
func (t *Trip) SeatStatus(seatNumber int) SeatStatus {
	if t.IsSeatAvailable(seatNumber) {
		return SeatAvailable
	}
	return SeatBooked
}

// BookingAt returns the booking holding seatNumber, or nil.
func (t *Trip) BookingAt(seatNumber int) *Booking {
	if !t.InRange(seatNumber) {
		return nil
	}
	return t.seats[seatNumber-1]
}

// BookSeat books seatNumber for p when it is free. Otherwise p joins the
// waiting list, which also covers seat numbers out of range. When the waiting
// list is full the result is an error wrapping ErrQueueFull and nothing
// changes.
func (t *Trip) BookSeat(p *Passenger, seatNumber int) (SeatResult, error) {
	if p == nil {
		return SeatResult{}, ValidationError{Field: "passenger", Msg: "passenger cannot be nil"}
	}

	if t.IsSeatAvailable(seatNumber) {
		booking := &Booking{
			ID:         uuid.New(),
			TripID:     t.ID,
			Passenger:  p,
			SeatNumber: seatNumber,
			Fare:       t.Fare,
			BookedAt:   time.Now(),
		}
		t.seats[seatNumber-1] = booking
		t.version++

		return SeatResult{
			Status:     BookingConfirmed,
			SeatNumber: seatNumber,
			Booking:    booking,
		}, nil
	}

	position, err := t.JoinWaitlist(p)
	if err != nil {
		return SeatResult{}, fmt.Errorf("seat %d on trip %s: %w: %w", seatNumber, t.ID, ErrSeatUnavailable, err)
	}

	return SeatResult{
		Status:           BookingWaitlisted,
		SeatNumber:       seatNumber,
		WaitlistPosition: position,
	}, nil
}

// HeldBy reports whether seatNumber is booked by p.
func (t *Trip) HeldBy(seatNumber int, p *Passenger) bool {
	booking := t.BookingAt(seatNumber)
	return booking != nil && booking.Passenger.SameAs(p)
}

// CancelSeat frees seatNumber when it is booked by p and returns the removed
// booking.
func (t *Trip) CancelSeat(seatNumber int, p *Passenger) (*Booking, error) {
	if p == nil {
		return nil, ValidationError{Field: "passenger", Msg: "passenger cannot be nil"}
	}

	if !t.HeldBy(seatNumber, p) {
		return nil, ReservationNotFoundError{TripID: t.ID, SeatNumber: seatNumber, PassengerID: p.ID}
	}

	booking := t.seats[seatNumber-1]
	t.seats[seatNumber-1] = nil
	t.version++

	return booking, nil
}

// NeighborNotifications builds one notification for each booked seat at
// seatNumber-1 and seatNumber+1. Adjacency is numeric only.
func (t *Trip) NeighborNotifications(seatNumber int, canceler *Passenger) []NeighborNotification {
	var out []NeighborNotification
	for _, n := range []int{seatNumber - 1, seatNumber + 1} {
		booking := t.BookingAt(n)
		if booking == nil {
			continue
		}

		out = append(out, NeighborNotification{
			TripID:       t.ID,
			NeighborSeat: n,
			Neighbor:     booking.Passenger,
			CanceledSeat: seatNumber,
			Canceler:     canceler,
		})
	}

	return out
}

// JoinWaitlist enqueues p and returns its 1-based position.
func (t *Trip) JoinWaitlist(p *Passenger) (int, error) {
	if p == nil {
		return 0, ValidationError{Field: "passenger", Msg: "passenger cannot be nil"}
	}

	if err := t.waitlist.Enqueue(p); err != nil {
		return 0, err
	}
	t.version++

	return t.waitlist.Len(), nil
}

// NextWaiting removes the earliest queued passenger.
func (t *Trip) NextWaiting() (*Passenger, error) {
	p, err := t.waitlist.Dequeue()
	if err != nil {
		return nil, err
	}
	t.version++
	return p, nil
}

func (t *Trip) WaitlistLen() int { return t.waitlist.Len() }

func (t *Trip) WaitlistCap() int { return t.waitlist.Cap() }

// Waiting yields queued passengers head to tail.
func (t *Trip) Waiting() iter.Seq[*Passenger] {
	return t.waitlist.All()
}

// Bookings returns active bookings ordered by seat number.
func (t *Trip) Bookings() []*Booking {
	var out []*Booking
	for _, b := range t.seats {
		if b != nil {
			out = append(out, b)
		}
	}
	return out
}

func (t *Trip) AvailableSeats() []int {
	var out []int
	for n := 1; n <= t.TotalSeats; n++ {
		if t.SeatStatus(n) == SeatAvailable {
			out = append(out, n)
		}
	}
	return out
}

func (t *Trip) BookedCount() int {
	n := 0
	for seat := 1; seat <= t.TotalSeats; seat++ {
		if t.SeatStatus(seat) == SeatBooked {
			n++
		}
	}
	return n
}

// SeatMap summarises availability for display and caching.
type SeatMap struct {
	TripID         string `cbor:"trip_id" json:"trip_id"`
	TotalSeats     int    `cbor:"total_seats" json:"total_seats"`
	AvailableSeats []int  `cbor:"available_seats" json:"available_seats"`
	BookedSeats    int    `cbor:"booked_seats" json:"booked_seats"`
	WaitlistLength int    `cbor:"waitlist_length" json:"waitlist_length"`
}

func (t *Trip) SeatMap() SeatMap {
	available := t.AvailableSeats()
	if available == nil {
		available = []int{}
	}

	return SeatMap{
		TripID:         t.ID,
		TotalSeats:     t.TotalSeats,
		AvailableSeats: available,
		BookedSeats:    t.BookedCount(),
		WaitlistLength: t.waitlist.Len(),
	}
}

func (t *Trip) Record() TripRecord {
	return TripRecord{
		ID:            t.ID,
		SeatCount:     t.TotalSeats,
		Origin:        t.Origin,
		Destination:   t.Destination,
		DepartureTime: t.DepartureTime,
		Fare:          t.Fare,
	}
}

// Records flattens the seat table (by seat number) and the waiting list
// (head to tail).
func (t *Trip) Records() ([]BookingRecord, []WaitlistRecord) {
	var bookings []BookingRecord
	for _, b := range t.Bookings() {
		bookings = append(bookings, b.Record())
	}

	var waiting []WaitlistRecord
	for p := range t.waitlist.All() {
		waiting = append(waiting, WaitlistRecord{TripID: t.ID, PassengerID: p.ID})
	}

	return bookings, waiting
}

func (t *Trip) String() string {
	return fmt.Sprintf("Bus Number: %s | Route: %s to %s | Time: %s | Total Seats: %d | Fare: RS.%v",
		t.ID, t.Origin, t.Destination, t.DepartureTime, t.TotalSeats, t.Fare)
}
