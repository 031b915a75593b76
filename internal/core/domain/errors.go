package domain

import (
	"errors"
	"fmt"
)

var (
	ErrQueueFull       = errors.New("waiting list is full")
	ErrQueueEmpty      = errors.New("waiting list is empty")
	ErrSeatUnavailable = errors.New("seat not available")
)

type ValidationError struct {
	Field string
	Msg   string
}

func (e ValidationError) Error() string {
	switch {
	case e.Field != "" && e.Msg != "":
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Msg)
	case e.Msg != "":
		return e.Msg
	case e.Field != "":
		return fmt.Sprintf("invalid %s", e.Field)
	default:
		return "validation error"
	}
}

type NotFoundError struct {
	Resource string
	ID       string
}

func (e NotFoundError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ReservationNotFoundError is returned when a cancellation names a seat that
// is not booked by the claimed passenger.
type ReservationNotFoundError struct {
	TripID      string
	SeatNumber  int
	PassengerID string
}

func (e ReservationNotFoundError) Error() string {
	return fmt.Sprintf("reservation not found for seat %d on trip %s (passenger %s)", e.SeatNumber, e.TripID, e.PassengerID)
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsReservationNotFound(err error) bool {
	var target ReservationNotFoundError
	return errors.As(err, &target)
}

func IsQueueFull(err error) bool {
	return errors.Is(err, ErrQueueFull)
}
