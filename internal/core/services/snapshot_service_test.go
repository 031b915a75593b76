package services_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/srgjo27/bus_reservation/internal/adapter/repository/memory"
	"github.com/srgjo27/bus_reservation/internal/core/domain"
	"github.com/srgjo27/bus_reservation/internal/core/ports/mocks"
	"github.com/srgjo27/bus_reservation/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func seatVector(trip *domain.Trip) []string {
	out := make([]string, trip.TotalSeats)
	for i := range out {
		if b := trip.BookingAt(i + 1); b != nil {
			out[i] = b.Passenger.ID
		}
	}
	return out
}

func TestSnapshot_RoundTrip(t *testing.T) {
	f := newFixture(t, 10, nil, nil)
	trip := f.trip(t, "B100", 4)
	f.trip(t, "B200", 2)
	a := f.passenger(t, "A")
	b := f.passenger(t, "B")
	c := f.passenger(t, "C")

	f.book(t, "B100", a, 3)
	f.book(t, "B100", b, 1)
	f.book(t, "B100", c, 3)
	f.book(t, "B100", a, 1)

	src := services.NewSnapshotService(nil, f.passengers, f.trips, 10)
	snap, err := src.Snapshot(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []domain.WaitlistRecord{
		{TripID: "B100", PassengerID: c.ID},
		{TripID: "B100", PassengerID: a.ID},
	}, snap.Waitlist)

	passengers := memory.NewPassengerRepository()
	trips := memory.NewTripRepository()
	dst := services.NewSnapshotService(nil, passengers, trips, 10)

	report, err := dst.Restore(context.Background(), snap)
	require.NoError(t, err)
	assert.Equal(t, services.RestoreReport{Passengers: 3, Trips: 2, Bookings: 2, Waitlisted: 2}, report)

	restored, err := trips.FindByID(context.Background(), "B100")
	require.NoError(t, err)
	assert.Equal(t, seatVector(trip), seatVector(restored))
	assert.Equal(t, waitlistIDs(trip), waitlistIDs(restored))

	again, err := dst.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, snap, again)

	next, err := passengers.Register(context.Background(), domain.PassengerDetails{Name: "D"})
	require.NoError(t, err)
	assert.Equal(t, "P004", next.ID)
}

func TestRestore_SkipsUnresolvableRecords(t *testing.T) {
	passengers := memory.NewPassengerRepository()
	trips := memory.NewTripRepository()
	svc := services.NewSnapshotService(nil, passengers, trips, 1)

	snap := &domain.Snapshot{
		Passengers: []domain.PassengerRecord{
			{ID: "P001", Name: "A"},
			{ID: "P002", Name: "B"},
			{ID: "P003", Name: "C"},
			{ID: "", Name: "nobody"},
		},
		Trips: []domain.TripRecord{
			{ID: "B1", SeatCount: 2, Origin: "X", Destination: "Y", DepartureTime: "10:00", Fare: 10},
			{ID: "B2", SeatCount: 0, Origin: "X", Destination: "Y", DepartureTime: "10:00", Fare: 10},
		},
		Bookings: []domain.BookingRecord{
			{TripID: "B1", PassengerID: "P001", SeatNumber: 1},
			{TripID: "B1", PassengerID: "P002", SeatNumber: 1},
			{TripID: "B1", PassengerID: "P404", SeatNumber: 2},
			{TripID: "B2", PassengerID: "P001", SeatNumber: 1},
		},
		Waitlist: []domain.WaitlistRecord{
			{TripID: "B1", PassengerID: "P002"},
			{TripID: "B1", PassengerID: "P003"},
		},
	}

	report, err := svc.Restore(context.Background(), snap)
	require.NoError(t, err)

	assert.Equal(t, services.RestoreReport{Passengers: 3, Trips: 1, Bookings: 1, Waitlisted: 1, Skipped: 6}, report)

	trip, err := trips.FindByID(context.Background(), "B1")
	require.NoError(t, err)
	assert.Equal(t, []string{"P001", ""}, seatVector(trip))
	assert.Equal(t, []string{"P002"}, waitlistIDs(trip))
}

func TestPersistIfChanged(t *testing.T) {
	store := mocks.NewStateStore(t)
	f := newFixture(t, 10, nil, nil)
	f.trip(t, "B100", 2)
	alice := f.passenger(t, "Alice")

	svc := services.NewSnapshotService(store, f.passengers, f.trips, 10)

	store.On("Save", mock.Anything, mock.AnythingOfType("*domain.Snapshot")).Return(nil).Twice()

	saved, err := svc.PersistIfChanged(context.Background())
	require.NoError(t, err)
	assert.True(t, saved)

	saved, err = svc.PersistIfChanged(context.Background())
	require.NoError(t, err)
	assert.False(t, saved)

	f.book(t, "B100", alice, 1)

	saved, err = svc.PersistIfChanged(context.Background())
	require.NoError(t, err)
	assert.True(t, saved)
}

func TestPersist_WrapsStoreError(t *testing.T) {
	store := mocks.NewStateStore(t)
	f := newFixture(t, 10, nil, nil)
	svc := services.NewSnapshotService(store, f.passengers, f.trips, 10)

	boom := errors.New("disk full")
	store.On("Save", mock.Anything, mock.Anything).Return(boom).Once()

	err := svc.Persist(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "failed to save state")
}

func TestLoad(t *testing.T) {
	store := mocks.NewStateStore(t)
	passengers := memory.NewPassengerRepository()
	trips := memory.NewTripRepository()
	svc := services.NewSnapshotService(store, passengers, trips, 10)

	store.On("Load", mock.Anything).Return(&domain.Snapshot{
		Passengers: []domain.PassengerRecord{{ID: "P001", Name: "A"}},
		Trips:      []domain.TripRecord{{ID: "B1", SeatCount: 1, Origin: "X", Destination: "Y", DepartureTime: "10:00", Fare: 10}},
		Bookings:   []domain.BookingRecord{{TripID: "B1", PassengerID: "P001", SeatNumber: 1}},
	}, nil).Once()

	report, err := svc.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.Bookings)

	saved, err := svc.PersistIfChanged(context.Background())
	require.NoError(t, err)
	assert.False(t, saved)
}

func TestLoad_FailureBlocksPersist(t *testing.T) {
	store := mocks.NewStateStore(t)
	f := newFixture(t, 10, nil, nil)
	svc := services.NewSnapshotService(store, f.passengers, f.trips, 10)

	store.On("Load", mock.Anything).Return(nil, errors.New("bookings.txt: is a directory")).Once()

	_, err := svc.Load(context.Background())
	require.Error(t, err)

	f.passenger(t, "Alice")

	err = svc.Persist(context.Background())
	assert.ErrorIs(t, err, services.ErrNotLoaded)
	assert.Contains(t, err.Error(), "is a directory")

	saved, err := svc.PersistIfChanged(context.Background())
	assert.ErrorIs(t, err, services.ErrNotLoaded)
	assert.False(t, saved)

	store.On("Load", mock.Anything).Return(&domain.Snapshot{}, nil).Once()
	store.On("Save", mock.Anything, mock.AnythingOfType("*domain.Snapshot")).Return(nil).Once()

	_, err = svc.Load(context.Background())
	require.NoError(t, err)
	require.NoError(t, svc.Persist(context.Background()))
}

func TestRunAutosave(t *testing.T) {
	store := mocks.NewStateStore(t)
	f := newFixture(t, 10, nil, nil)
	f.trip(t, "B100", 2)
	svc := services.NewSnapshotService(store, f.passengers, f.trips, 10)

	var saves atomic.Int32
	store.On("Save", mock.Anything, mock.Anything).Run(func(mock.Arguments) {
		saves.Add(1)
	}).Return(nil).Once()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		svc.RunAutosave(ctx, 5*time.Millisecond)
		close(done)
	}()

	assert.Eventually(t, func() bool { return saves.Load() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	cancel()
	<-done

	assert.Equal(t, int32(1), saves.Load())
}
