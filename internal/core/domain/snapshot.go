package domain

// Snapshot is the flat, ordered form of the whole reservation state. Waitlist
// entries of a trip appear head to tail so reloading keeps FIFO priority.
type Snapshot struct {
	Passengers []PassengerRecord
	Trips      []TripRecord
	Bookings   []BookingRecord
	Waitlist   []WaitlistRecord
}

type PassengerRecord struct {
	ID    string
	Name  string
	Phone string
	Email string
	City  string
	Age   int
}

type TripRecord struct {
	ID            string
	SeatCount     int
	Origin        string
	Destination   string
	DepartureTime string
	Fare          float64
}

type BookingRecord struct {
	TripID      string
	PassengerID string
	SeatNumber  int
}

type WaitlistRecord struct {
	TripID      string
	PassengerID string
}

func (r PassengerRecord) Details() PassengerDetails {
	return PassengerDetails{
		Name:  r.Name,
		Phone: r.Phone,
		Email: r.Email,
		City:  r.City,
		Age:   r.Age,
	}
}

func (r TripRecord) Details() TripDetails {
	return TripDetails{
		ID:            r.ID,
		Origin:        r.Origin,
		Destination:   r.Destination,
		DepartureTime: r.DepartureTime,
		TotalSeats:    r.SeatCount,
		Fare:          r.Fare,
	}
}
