package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"reflect"
	"sync"
	"time"

	"github.com/srgjo27/bus_reservation/internal/core/domain"
	"github.com/srgjo27/bus_reservation/internal/core/ports"
)

// ErrNotLoaded is returned by Persist and PersistIfChanged after a failed
// Load. Writing then would replace stored state with a partial copy.
var ErrNotLoaded = errors.New("state was not loaded")

type RestoreReport struct {
	Passengers int
	Trips      int
	Bookings   int
	Waitlisted int
	Skipped    int
}

// SnapshotService moves reservation state between the registries and a
// StateStore.
type SnapshotService struct {
	store            ports.StateStore
	passengerRepo    ports.PassengerRepository
	tripRepo         ports.TripRepository
	waitlistCapacity int

	mu        sync.Mutex
	lastSaved *domain.Snapshot
	loadErr   error
}

func NewSnapshotService(store ports.StateStore, passengerRepo ports.PassengerRepository, tripRepo ports.TripRepository, waitlistCapacity int) *SnapshotService {
	if waitlistCapacity <= 0 {
		waitlistCapacity = DefaultWaitlistCapacity
	}

	return &SnapshotService{
		store:            store,
		passengerRepo:    passengerRepo,
		tripRepo:         tripRepo,
		waitlistCapacity: waitlistCapacity,
	}
}

// Snapshot flattens the current state. Each trip is read under its lock.
func (s *SnapshotService) Snapshot(ctx context.Context) (*domain.Snapshot, error) {
	passengers, err := s.passengerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list passengers: %w", err)
	}

	trips, err := s.tripRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list trips: %w", err)
	}

	snap := &domain.Snapshot{}
	for _, p := range passengers {
		snap.Passengers = append(snap.Passengers, p.Record())
	}

	for _, trip := range trips {
		trip.Lock()
		bookings, waiting := trip.Records()
		record := trip.Record()
		trip.Unlock()

		snap.Trips = append(snap.Trips, record)
		snap.Bookings = append(snap.Bookings, bookings...)
		snap.Waitlist = append(snap.Waitlist, waiting...)
	}

	return snap, nil
}

// Restore replays a snapshot into the registries. Records that reference
// unknown trips or passengers, bookings for occupied seats and waitlist
// entries beyond capacity are skipped and counted.
func (s *SnapshotService) Restore(ctx context.Context, snap *domain.Snapshot) (RestoreReport, error) {
	var report RestoreReport
	if snap == nil {
		return report, nil
	}

	for _, rec := range snap.Passengers {
		p, err := domain.NewPassenger(rec.ID, rec.Details())
		if err != nil {
			log.Printf("Skipping invalid passenger data %s: %v", rec.ID, err)
			report.Skipped++
			continue
		}

		if err := s.passengerRepo.Restore(ctx, p); err != nil {
			if domain.IsValidation(err) {
				log.Printf("Skipping passenger %s: %v", rec.ID, err)
				report.Skipped++
				continue
			}
			return report, fmt.Errorf("failed to restore passenger %s: %w", rec.ID, err)
		}
		report.Passengers++
	}

	for _, rec := range snap.Trips {
		trip, err := domain.NewTrip(rec.Details(), s.waitlistCapacity)
		if err != nil {
			log.Printf("Skipping invalid bus data %s: %v", rec.ID, err)
			report.Skipped++
			continue
		}

		if err := s.tripRepo.Add(ctx, trip); err != nil {
			if domain.IsValidation(err) {
				log.Printf("Skipping bus %s: %v", rec.ID, err)
				report.Skipped++
				continue
			}
			return report, fmt.Errorf("failed to restore trip %s: %w", rec.ID, err)
		}
		report.Trips++
	}

	for _, rec := range snap.Bookings {
		trip, passenger, ok := s.lookup(ctx, rec.TripID, rec.PassengerID, "booking")
		if !ok {
			report.Skipped++
			continue
		}

		trip.Lock()
		available := trip.IsSeatAvailable(rec.SeatNumber)
		if available {
			_, err := trip.BookSeat(passenger, rec.SeatNumber)
			available = err == nil
		}
		trip.Unlock()

		if !available {
			log.Printf("Skipping booking %s;%s;%d: seat unavailable", rec.TripID, rec.PassengerID, rec.SeatNumber)
			report.Skipped++
			continue
		}
		report.Bookings++
	}

	for _, rec := range snap.Waitlist {
		trip, passenger, ok := s.lookup(ctx, rec.TripID, rec.PassengerID, "waiting list")
		if !ok {
			report.Skipped++
			continue
		}

		trip.Lock()
		_, err := trip.JoinWaitlist(passenger)
		trip.Unlock()

		if err != nil {
			log.Printf("Waiting list full for bus %s, cannot add passenger: %s", rec.TripID, rec.PassengerID)
			report.Skipped++
			continue
		}
		report.Waitlisted++
	}

	return report, nil
}

func (s *SnapshotService) lookup(ctx context.Context, tripID, passengerID, kind string) (*domain.Trip, *domain.Passenger, bool) {
	trip, err := s.tripRepo.FindByID(ctx, tripID)
	if err != nil {
		log.Printf("Bus not found for %s: %s;%s", kind, tripID, passengerID)
		return nil, nil, false
	}

	passenger, err := s.passengerRepo.FindByID(ctx, passengerID)
	if err != nil {
		log.Printf("Passenger not found for %s: %s;%s", kind, tripID, passengerID)
		return nil, nil, false
	}

	return trip, passenger, true
}

// Load reads the store and restores it into the registries.
func (s *SnapshotService) Load(ctx context.Context) (RestoreReport, error) {
	snap, err := s.store.Load(ctx)
	if err != nil {
		return RestoreReport{}, s.failLoad(fmt.Errorf("failed to load state: %w", err))
	}

	report, err := s.Restore(ctx, snap)
	if err != nil {
		return report, s.failLoad(err)
	}

	log.Printf("Loaded %d passengers, %d buses, %d bookings, %d waiting (%d skipped)",
		report.Passengers, report.Trips, report.Bookings, report.Waitlisted, report.Skipped)

	current, err := s.Snapshot(ctx)
	if err != nil {
		return report, s.failLoad(err)
	}

	s.mu.Lock()
	s.lastSaved = current
	s.loadErr = nil
	s.mu.Unlock()

	return report, nil
}

func (s *SnapshotService) failLoad(err error) error {
	s.mu.Lock()
	s.loadErr = err
	s.mu.Unlock()

	return err
}

// Persist writes the current state unconditionally.
func (s *SnapshotService) Persist(ctx context.Context) error {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return err
	}

	return s.save(ctx, snap)
}

// PersistIfChanged writes only when the state differs from the last write.
func (s *SnapshotService) PersistIfChanged(ctx context.Context) (bool, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return false, err
	}

	s.mu.Lock()
	unchanged := s.lastSaved != nil && reflect.DeepEqual(s.lastSaved, snap)
	s.mu.Unlock()

	if unchanged {
		return false, nil
	}

	if err := s.save(ctx, snap); err != nil {
		return false, err
	}

	return true, nil
}

func (s *SnapshotService) save(ctx context.Context, snap *domain.Snapshot) error {
	s.mu.Lock()
	loadErr := s.loadErr
	s.mu.Unlock()

	if loadErr != nil {
		return fmt.Errorf("refusing to save state: %w: %v", ErrNotLoaded, loadErr)
	}

	if err := s.store.Save(ctx, snap); err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}

	s.mu.Lock()
	s.lastSaved = snap
	s.mu.Unlock()

	return nil
}

func (s *SnapshotService) RunAutosave(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Printf("Autosave worker started: saving changed state every %s...", interval)

	for {
		select {
		case <-ctx.Done():
			log.Println("Autosave worker stopped.")
			return
		case <-ticker.C:
			saved, err := s.PersistIfChanged(ctx)
			if err != nil {
				if !errors.Is(err, context.Canceled) {
					log.Printf("Autosave failed: %v", err)
				}
				continue
			}

			if saved {
				log.Println("State changed, snapshot saved.")
			}
		}
	}
}
