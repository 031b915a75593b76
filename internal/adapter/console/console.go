package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/srgjo27/bus_reservation/internal/core/domain"
	"github.com/srgjo27/bus_reservation/internal/core/services"
)

const menu = `
TRAVEL BOOKING SYSTEM
1. Register Passenger
2. Register Bus
3. Search Buses
4. Book Seat
5. Cancel Booking
6. Request New Seat
7. View All Bookings
8. View All Passengers
9. View All Buses
10. View Available Seats
11. View Request New Seats
12. View Passengers (Newest to Oldest)
0. Exit
`

const separator = "----------------------"

// Console is the interactive menu. State is persisted after every command
// that changes it and once more on exit.
type Console struct {
	registry  *services.RegistryService
	booking   *services.BookingService
	snapshots *services.SnapshotService

	in  *bufio.Scanner
	out io.Writer
}

func New(registry *services.RegistryService, booking *services.BookingService, snapshots *services.SnapshotService, in io.Reader, out io.Writer) *Console {
	return &Console{
		registry:  registry,
		booking:   booking,
		snapshots: snapshots,
		in:        bufio.NewScanner(in),
		out:       out,
	}
}

type command struct {
	run      func(ctx context.Context) error
	mutating bool
}

func (c *Console) commands() map[int]command {
	return map[int]command{
		1:  {c.registerPassenger, true},
		2:  {c.registerBus, true},
		3:  {c.searchBuses, false},
		4:  {c.bookSeat, true},
		5:  {c.cancelBooking, true},
		6:  {c.requestNewSeat, true},
		7:  {c.viewBookings, false},
		8:  {func(ctx context.Context) error { return c.viewPassengers(ctx, false) }, false},
		9:  {c.viewBuses, false},
		10: {c.viewAvailableSeats, false},
		11: {c.viewWaitlists, false},
		12: {func(ctx context.Context) error { return c.viewPassengers(ctx, true) }, false},
	}
}

// Run reads commands until 0 or end of input.
func (c *Console) Run(ctx context.Context) error {
	commands := c.commands()

	for {
		if err := ctx.Err(); err != nil {
			return c.exit(context.WithoutCancel(ctx))
		}

		fmt.Fprint(c.out, menu)
		line, err := c.prompt("Enter your choice: ")
		if err != nil {
			return c.exit(ctx)
		}

		choice, err := strconv.Atoi(line)
		if err != nil {
			c.println("Invalid input. Please enter a valid number.")
			continue
		}

		if choice == 0 {
			return c.exit(ctx)
		}

		cmd, ok := commands[choice]
		if !ok {
			c.println("Invalid choice. Please select a number between 0 and 12.")
			continue
		}

		if err := cmd.run(ctx); err != nil {
			if errors.Is(err, io.EOF) {
				return c.exit(ctx)
			}
			c.println("Error: " + err.Error())
			continue
		}

		if cmd.mutating {
			c.persist(ctx)
		}
	}
}

func (c *Console) exit(ctx context.Context) error {
	if c.snapshots != nil {
		if err := c.snapshots.Persist(ctx); err != nil {
			c.println("Error saving data: " + err.Error())
			return err
		}
	}

	c.println("Data saving process completed. Exiting...")
	return nil
}

func (c *Console) persist(ctx context.Context) {
	if c.snapshots == nil {
		return
	}

	if err := c.snapshots.Persist(ctx); err != nil {
		c.println("Error saving data: " + err.Error())
	}
}

func (c *Console) prompt(label string) (string, error) {
	fmt.Fprint(c.out, label)

	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}

	return strings.TrimSpace(c.in.Text()), nil
}

func (c *Console) promptInt(label, field string) (int, error) {
	line, err := c.prompt(label)
	if err != nil {
		return 0, err
	}

	n, err := strconv.Atoi(line)
	if err != nil {
		return 0, domain.ValidationError{Field: field, Msg: "please enter a number"}
	}

	return n, nil
}

func (c *Console) println(a ...any) {
	fmt.Fprintln(c.out, a...)
}

func (c *Console) printf(format string, a ...any) {
	fmt.Fprintf(c.out, format, a...)
}

func (c *Console) registerPassenger(ctx context.Context) error {
	var d domain.PassengerDetails
	var err error

	if d.Name, err = c.prompt("Enter Name: "); err != nil {
		return err
	}
	if d.Phone, err = c.prompt("Phone (10 digits): "); err != nil {
		return err
	}
	if d.Email, err = c.prompt("Email: "); err != nil {
		return err
	}
	if d.City, err = c.prompt("City: "); err != nil {
		return err
	}
	if d.Age, err = c.promptInt("Age: ", "age"); err != nil {
		return err
	}

	p, err := c.registry.RegisterPassenger(ctx, d)
	if err != nil {
		return err
	}

	c.println("Passenger registered successfully with ID: " + p.ID)
	return nil
}

func (c *Console) registerBus(ctx context.Context) error {
	var d domain.TripDetails
	var err error

	if d.ID, err = c.prompt("Enter Bus Number: "); err != nil {
		return err
	}
	if d.TotalSeats, err = c.promptInt("Total Seats (1-100): ", "total_seats"); err != nil {
		return err
	}
	if d.Origin, err = c.prompt("Starting Point: "); err != nil {
		return err
	}
	if d.Destination, err = c.prompt("Ending Point: "); err != nil {
		return err
	}
	if d.DepartureTime, err = c.prompt("Starting Time (HH:MM): "); err != nil {
		return err
	}

	fare, err := c.prompt("Fare: ")
	if err != nil {
		return err
	}
	if d.Fare, err = strconv.ParseFloat(fare, 64); err != nil {
		return domain.ValidationError{Field: "fare", Msg: "please enter a number"}
	}

	if _, err := c.registry.RegisterTrip(ctx, d); err != nil {
		return err
	}

	c.println("Bus registered successfully.")
	return nil
}

func (c *Console) searchBuses(ctx context.Context) error {
	origin, err := c.prompt("Enter Starting Point: ")
	if err != nil {
		return err
	}
	destination, err := c.prompt("Enter Ending Point: ")
	if err != nil {
		return err
	}

	trips, err := c.registry.SearchTrips(ctx, origin, destination)
	if err != nil {
		return err
	}

	c.printf("\nBuses from %s to %s:\n", origin, destination)
	if len(trips) == 0 {
		c.printf("No buses found for the route %s to %s.\n", origin, destination)
		return nil
	}

	for _, t := range trips {
		c.printTrip(t)
	}
	return nil
}

func (c *Console) bookSeat(ctx context.Context) error {
	passengerID, err := c.prompt("Enter Passenger ID: ")
	if err != nil {
		return err
	}

	if _, err := c.registry.GetPassenger(ctx, passengerID); err != nil {
		return err
	}

	trips, err := c.registry.ListTrips(ctx)
	if err != nil {
		return err
	}

	c.println("\nAvailable Buses:")
	for _, t := range trips {
		c.printTrip(t)
	}

	tripID, err := c.prompt("Enter Bus Number to book: ")
	if err != nil {
		return err
	}

	trip, err := c.registry.GetTrip(ctx, tripID)
	if err != nil {
		return err
	}

	seat, err := c.promptInt(fmt.Sprintf("Enter Seat Number (1-%d): ", trip.TotalSeats), "seat_number")
	if err != nil {
		return err
	}

	resp, err := c.booking.BookSeat(ctx, services.BookSeatRequest{
		TripID:      trip.ID,
		PassengerID: passengerID,
		SeatNumber:  seat,
	})
	if err != nil {
		return err
	}

	if resp.Status == string(domain.BookingWaitlisted) {
		c.printf("Seat %d is already booked. %s (ID: %s) added to waiting list at position %d\n",
			seat, resp.PassengerName, resp.PassengerID, resp.WaitlistPosition)
		return nil
	}

	c.printf("Seat %d booked for %s (ID: %s) at RS.%v\n", seat, resp.PassengerName, resp.PassengerID, resp.Fare)
	return nil
}

func (c *Console) cancelBooking(ctx context.Context) error {
	tripID, err := c.prompt("Enter Bus Number: ")
	if err != nil {
		return err
	}
	passengerID, err := c.prompt("Enter Passenger ID: ")
	if err != nil {
		return err
	}
	seat, err := c.promptInt("Enter Seat Number: ", "seat_number")
	if err != nil {
		return err
	}

	resp, err := c.booking.CancelBooking(ctx, services.CancelBookingRequest{
		TripID:      tripID,
		PassengerID: passengerID,
		SeatNumber:  seat,
	})
	if err != nil {
		return err
	}

	c.printf("Reservation cancelled for %s (ID: %s)\n", resp.PassengerName, resp.PassengerID)

	if p := resp.Promoted; p != nil {
		c.printf("Seat %d assigned to %s (ID: %s) from waiting list at RS.%v\n", seat, p.PassengerName, p.PassengerID, p.Fare)
	}
	return nil
}

func (c *Console) requestNewSeat(ctx context.Context) error {
	passengerID, err := c.prompt("Enter Passenger ID: ")
	if err != nil {
		return err
	}
	tripID, err := c.prompt("Enter Bus Number: ")
	if err != nil {
		return err
	}

	resp, err := c.booking.RequestWaitlist(ctx, services.WaitlistRequest{TripID: tripID, PassengerID: passengerID})
	if err != nil {
		return err
	}

	c.printf("%s (ID: %s) added to waiting list for bus %s\n", resp.PassengerName, resp.PassengerID, resp.TripID)
	return nil
}

func (c *Console) viewBookings(ctx context.Context) error {
	all, err := c.booking.ListBookings(ctx)
	if err != nil {
		return err
	}

	for _, tb := range all {
		c.println("\nBus: " + tb.TripID)
		if len(tb.Bookings) == 0 {
			c.println("No bookings.")
			continue
		}
		for _, b := range tb.Bookings {
			c.println(b)
		}
	}
	return nil
}

func (c *Console) viewPassengers(ctx context.Context, newestFirst bool) error {
	passengers, err := c.registry.ListPassengers(ctx, newestFirst)
	if err != nil {
		return err
	}

	if newestFirst {
		c.println("\nRegistered Passengers (Newest to Oldest):")
	} else {
		c.println("\nRegistered Passengers:")
	}

	if len(passengers) == 0 {
		c.println("No passengers registered yet.")
		return nil
	}

	for _, p := range passengers {
		c.printf("Passenger ID: %s\nName: %s\nPhone: %s\nEmail: %s\nCity: %s\nAge: %d\n%s\n",
			p.ID, p.Name, p.Phone, p.Email, p.City, p.Age, separator)
	}
	return nil
}

func (c *Console) viewBuses(ctx context.Context) error {
	trips, err := c.registry.ListTrips(ctx)
	if err != nil {
		return err
	}

	c.println("\nRegistered Buses:")
	if len(trips) == 0 {
		c.println("No buses registered yet.")
		return nil
	}

	for _, t := range trips {
		c.printTrip(t)
		c.printf("Waiting List Length: %d\n%s\n", t.WaitlistLength, separator)
	}
	return nil
}

func (c *Console) viewAvailableSeats(ctx context.Context) error {
	tripID, err := c.prompt("Enter Bus Number: ")
	if err != nil {
		return err
	}

	trip, err := c.registry.GetTrip(ctx, tripID)
	if err != nil {
		return err
	}

	seatMap, err := c.booking.SeatMap(ctx, trip.ID)
	if err != nil {
		return err
	}

	c.printTrip(*trip)
	c.printf("Available Seats: ")
	if len(seatMap.AvailableSeats) == 0 {
		c.println("No seats available.")
	} else {
		seats := make([]string, len(seatMap.AvailableSeats))
		for i, n := range seatMap.AvailableSeats {
			seats[i] = strconv.Itoa(n)
		}
		c.printf("[%s]\nTotal Available Seats: %d\n", strings.Join(seats, ", "), len(seats))
	}
	c.printf("Total Booked Seats: %d\n", seatMap.BookedSeats)
	return nil
}

func (c *Console) viewWaitlists(ctx context.Context) error {
	waitlists, err := c.booking.ListWaitlists(ctx)
	if err != nil {
		return err
	}

	c.println("\nWaiting List for Requested Seats:")

	anyWaiting := false
	for _, w := range waitlists {
		c.println("\nBus: " + w.TripID)
		if len(w.Passengers) == 0 {
			c.println("No passengers in waiting list.")
			continue
		}

		anyWaiting = true
		c.println("Passengers in waiting list:")
		for _, p := range w.Passengers {
			c.printf("Passenger ID: %s, Name: %s\n", p.ID, p.Name)
		}
	}

	if !anyWaiting {
		c.println("No passengers in any waiting list across all buses.")
	}
	return nil
}

func (c *Console) printTrip(t services.TripSummary) {
	c.printf("Bus Number: %s | Route: %s to %s | Time: %s | Total Seats: %d | Fare: RS.%v\n",
		t.ID, t.Origin, t.Destination, t.DepartureTime, t.TotalSeats, t.Fare)
	c.printf("Seats Available: %d | Booked: %d\n", t.AvailableSeats, t.BookedSeats)
}
