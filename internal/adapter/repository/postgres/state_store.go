package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/srgjo27/bus_reservation/internal/core/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS passengers (
	position INT PRIMARY KEY,
	id TEXT NOT NULL,
	name TEXT NOT NULL,
	phone TEXT NOT NULL,
	email TEXT NOT NULL,
	city TEXT NOT NULL,
	age INT NOT NULL
);
CREATE TABLE IF NOT EXISTS trips (
	position INT PRIMARY KEY,
	id TEXT NOT NULL,
	seat_count INT NOT NULL,
	origin TEXT NOT NULL,
	destination TEXT NOT NULL,
	departure_time TEXT NOT NULL,
	fare DOUBLE PRECISION NOT NULL
);
ALTER TABLE trips ALTER COLUMN fare TYPE DOUBLE PRECISION;
CREATE TABLE IF NOT EXISTS bookings (
	position INT PRIMARY KEY,
	trip_id TEXT NOT NULL,
	passenger_id TEXT NOT NULL,
	seat_number INT NOT NULL
);
CREATE TABLE IF NOT EXISTS waitlist_entries (
	position INT PRIMARY KEY,
	trip_id TEXT NOT NULL,
	passenger_id TEXT NOT NULL
);
`

// StateStore keeps the snapshot in four tables. Rows carry their position in
// the snapshot so loads return registration, seat and queue order unchanged.
type StateStore struct {
	db *sql.DB
}

func NewStateStore(db *sql.DB) *StateStore {
	return &StateStore{db: db}
}

func (s *StateStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

func (s *StateStore) Load(ctx context.Context) (*domain.Snapshot, error) {
	snap := &domain.Snapshot{}

	err := s.query(ctx, `SELECT id, name, phone, email, city, age FROM passengers ORDER BY position`, func(rows *sql.Rows) error {
		var p domain.PassengerRecord
		if err := rows.Scan(&p.ID, &p.Name, &p.Phone, &p.Email, &p.City, &p.Age); err != nil {
			return err
		}
		snap.Passengers = append(snap.Passengers, p)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load passengers: %w", err)
	}

	err = s.query(ctx, `SELECT id, seat_count, origin, destination, departure_time, fare FROM trips ORDER BY position`, func(rows *sql.Rows) error {
		var t domain.TripRecord
		if err := rows.Scan(&t.ID, &t.SeatCount, &t.Origin, &t.Destination, &t.DepartureTime, &t.Fare); err != nil {
			return err
		}
		snap.Trips = append(snap.Trips, t)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load trips: %w", err)
	}

	err = s.query(ctx, `SELECT trip_id, passenger_id, seat_number FROM bookings ORDER BY position`, func(rows *sql.Rows) error {
		var b domain.BookingRecord
		if err := rows.Scan(&b.TripID, &b.PassengerID, &b.SeatNumber); err != nil {
			return err
		}
		snap.Bookings = append(snap.Bookings, b)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load bookings: %w", err)
	}

	err = s.query(ctx, `SELECT trip_id, passenger_id FROM waitlist_entries ORDER BY position`, func(rows *sql.Rows) error {
		var w domain.WaitlistRecord
		if err := rows.Scan(&w.TripID, &w.PassengerID); err != nil {
			return err
		}
		snap.Waitlist = append(snap.Waitlist, w)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load waiting lists: %w", err)
	}

	return snap, nil
}

func (s *StateStore) query(ctx context.Context, query string, scan func(*sql.Rows) error) error {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return err
	}

	defer rows.Close()

	for rows.Next() {
		if err := scan(rows); err != nil {
			return err
		}
	}

	return rows.Err()
}

// Save replaces the stored snapshot in one transaction.
func (s *StateStore) Save(ctx context.Context, snap *domain.Snapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer tx.Rollback()

	for _, table := range []string{"waitlist_entries", "bookings", "trips", "passengers"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	passengers := make([][]any, 0, len(snap.Passengers))
	for i, p := range snap.Passengers {
		passengers = append(passengers, []any{i, p.ID, p.Name, p.Phone, p.Email, p.City, p.Age})
	}

	trips := make([][]any, 0, len(snap.Trips))
	for i, t := range snap.Trips {
		trips = append(trips, []any{i, t.ID, t.SeatCount, t.Origin, t.Destination, t.DepartureTime, t.Fare})
	}

	bookings := make([][]any, 0, len(snap.Bookings))
	for i, b := range snap.Bookings {
		bookings = append(bookings, []any{i, b.TripID, b.PassengerID, b.SeatNumber})
	}

	waiting := make([][]any, 0, len(snap.Waitlist))
	for i, w := range snap.Waitlist {
		waiting = append(waiting, []any{i, w.TripID, w.PassengerID})
	}

	inserts := []struct {
		table string
		query string
		rows  [][]any
	}{
		{"passengers", `INSERT INTO passengers (position, id, name, phone, email, city, age) VALUES ($1, $2, $3, $4, $5, $6, $7)`, passengers},
		{"trips", `INSERT INTO trips (position, id, seat_count, origin, destination, departure_time, fare) VALUES ($1, $2, $3, $4, $5, $6, $7)`, trips},
		{"bookings", `INSERT INTO bookings (position, trip_id, passenger_id, seat_number) VALUES ($1, $2, $3, $4)`, bookings},
		{"waitlist_entries", `INSERT INTO waitlist_entries (position, trip_id, passenger_id) VALUES ($1, $2, $3)`, waiting},
	}

	for _, ins := range inserts {
		if err := insertAll(ctx, tx, ins.query, ins.rows); err != nil {
			return fmt.Errorf("failed to insert %s: %w", ins.table, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func insertAll(ctx context.Context, tx *sql.Tx, query string, rows [][]any) error {
	if len(rows) == 0 {
		return nil
	}

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}

	defer stmt.Close()

	for _, args := range rows {
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("row %v: %w", args[0], err)
		}
	}

	return nil
}
