package flatfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/srgjo27/bus_reservation/internal/core/domain"
)

const (
	PassengersFile = "passengers.txt"
	TripsFile      = "buses.txt"
	BookingsFile   = "bookings.txt"
	WaitlistFile   = "waitinglist.txt"
)

// StateStore keeps state in four ';'-delimited text files under one
// directory. Malformed lines are logged and skipped on load.
type StateStore struct {
	dir string
}

func NewStateStore(dir string) *StateStore {
	return &StateStore{dir: dir}
}

func (s *StateStore) Load(ctx context.Context) (*domain.Snapshot, error) {
	snap := &domain.Snapshot{}

	err := s.readFile(PassengersFile, 6, func(f []string) error {
		age, err := strconv.Atoi(f[5])
		if err != nil {
			return fmt.Errorf("invalid age: %w", err)
		}
		snap.Passengers = append(snap.Passengers, domain.PassengerRecord{
			ID: f[0], Name: f[1], Phone: f[2], Email: f[3], City: f[4], Age: age,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = s.readFile(TripsFile, 6, func(f []string) error {
		seats, err := strconv.Atoi(f[1])
		if err != nil {
			return fmt.Errorf("invalid seats: %w", err)
		}
		fare, err := strconv.ParseFloat(f[5], 64)
		if err != nil {
			return fmt.Errorf("invalid fare: %w", err)
		}
		snap.Trips = append(snap.Trips, domain.TripRecord{
			ID: f[0], SeatCount: seats, Origin: f[2], Destination: f[3], DepartureTime: f[4], Fare: fare,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = s.readFile(BookingsFile, 3, func(f []string) error {
		seat, err := strconv.Atoi(f[2])
		if err != nil {
			return fmt.Errorf("invalid seat number: %w", err)
		}
		snap.Bookings = append(snap.Bookings, domain.BookingRecord{TripID: f[0], PassengerID: f[1], SeatNumber: seat})
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = s.readFile(WaitlistFile, 2, func(f []string) error {
		snap.Waitlist = append(snap.Waitlist, domain.WaitlistRecord{TripID: f[0], PassengerID: f[1]})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return snap, nil
}

func (s *StateStore) Save(ctx context.Context, snap *domain.Snapshot) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create data dir: %w", err)
	}

	passengers := make([][]string, 0, len(snap.Passengers))
	for _, p := range snap.Passengers {
		passengers = append(passengers, []string{p.ID, p.Name, p.Phone, p.Email, p.City, strconv.Itoa(p.Age)})
	}

	trips := make([][]string, 0, len(snap.Trips))
	for _, t := range snap.Trips {
		trips = append(trips, []string{
			t.ID, strconv.Itoa(t.SeatCount), t.Origin, t.Destination, t.DepartureTime,
			strconv.FormatFloat(t.Fare, 'f', -1, 64),
		})
	}

	bookings := make([][]string, 0, len(snap.Bookings))
	for _, b := range snap.Bookings {
		bookings = append(bookings, []string{b.TripID, b.PassengerID, strconv.Itoa(b.SeatNumber)})
	}

	waiting := make([][]string, 0, len(snap.Waitlist))
	for _, w := range snap.Waitlist {
		waiting = append(waiting, []string{w.TripID, w.PassengerID})
	}

	files := []struct {
		name    string
		records [][]string
	}{
		{PassengersFile, passengers},
		{TripsFile, trips},
		{BookingsFile, bookings},
		{WaitlistFile, waiting},
	}

	// Every file is written out before any is replaced, so a failed write
	// leaves the previous set intact. The renames themselves are sequential.
	staged := make([]string, 0, len(files))
	defer func() {
		for _, tmp := range staged {
			os.Remove(tmp)
		}
	}()

	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		tmp, err := s.stageFile(f.name, f.records)
		if err != nil {
			return err
		}
		staged = append(staged, tmp)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	for i, f := range files {
		path := filepath.Join(s.dir, f.name)
		if err := os.Rename(staged[i], path); err != nil {
			return fmt.Errorf("failed to replace %s: %w", path, err)
		}
	}

	return nil
}

func (s *StateStore) readFile(name string, fields int, parse func([]string) error) error {
	path := filepath.Join(s.dir, name)

	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Printf("No %s found at %s", name, path)
			return nil
		}
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	r := newReader(file)
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				log.Printf("Skipping unreadable line %d in %s: %v", perr.Line, name, perr.Err)
				continue
			}
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		for i := range record {
			record[i] = strings.TrimSpace(record[i])
		}

		if len(record) != fields {
			log.Printf("Skipping invalid data in %s: %s", name, strings.Join(record, ";"))
			continue
		}

		if err := parse(record); err != nil {
			log.Printf("Skipping invalid data in %s: %s - %v", name, strings.Join(record, ";"), err)
		}
	}

	return nil
}

// stageFile writes records to a temp file next to name and returns its path.
func (s *StateStore) stageFile(name string, records [][]string) (string, error) {
	tmp, err := os.CreateTemp(s.dir, name+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file for %s: %w", name, err)
	}

	w := csv.NewWriter(tmp)
	w.Comma = ';'
	if err := w.WriteAll(records); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to write %s: %w", name, err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to close %s: %w", name, err)
	}

	return tmp.Name(), nil
}

func newReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	return cr
}
