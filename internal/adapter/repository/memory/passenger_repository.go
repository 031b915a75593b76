package memory

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/srgjo27/bus_reservation/internal/core/domain"
)

const passengerIDPrefix = "P"

// PassengerRepository keeps passengers in registration order and hands out
// ids of the form P001, P002, ...
type PassengerRepository struct {
	mu         sync.RWMutex
	passengers []*domain.Passenger
	byID       map[string]*domain.Passenger
	nextID     int
}

func NewPassengerRepository() *PassengerRepository {
	return &PassengerRepository{
		byID:   make(map[string]*domain.Passenger),
		nextID: 1,
	}
}

func (r *PassengerRepository) Register(ctx context.Context, details domain.PassengerDetails) (*domain.Passenger, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := fmt.Sprintf("%s%03d", passengerIDPrefix, r.nextID)
	for r.byID[key(id)] != nil {
		r.nextID++
		id = fmt.Sprintf("%s%03d", passengerIDPrefix, r.nextID)
	}

	p, err := domain.NewPassenger(id, details)
	if err != nil {
		return nil, err
	}

	r.nextID++
	r.add(p)

	return p, nil
}

// Restore inserts a passenger that already has an id and moves the allocator
// past it.
func (r *PassengerRepository) Restore(ctx context.Context, p *domain.Passenger) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.byID[key(p.ID)] != nil {
		return domain.ValidationError{Field: "passenger_id", Msg: fmt.Sprintf("passenger %s already exists", p.ID)}
	}

	if n, ok := parseSequence(p.ID); ok && n >= r.nextID {
		r.nextID = n + 1
	}

	r.add(p)

	return nil
}

func (r *PassengerRepository) FindByID(ctx context.Context, passengerID string) (*domain.Passenger, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[key(passengerID)]
	if !ok {
		return nil, domain.NotFoundError{Resource: "passenger", ID: passengerID}
	}

	return p, nil
}

func (r *PassengerRepository) List(ctx context.Context) ([]*domain.Passenger, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Passenger, len(r.passengers))
	copy(out, r.passengers)

	return out, nil
}

func (r *PassengerRepository) add(p *domain.Passenger) {
	r.passengers = append(r.passengers, p)
	r.byID[key(p.ID)] = p
}

func parseSequence(id string) (int, bool) {
	if len(id) <= len(passengerIDPrefix) || !strings.EqualFold(id[:len(passengerIDPrefix)], passengerIDPrefix) {
		return 0, false
	}

	n, err := strconv.Atoi(id[len(passengerIDPrefix):])
	if err != nil {
		return 0, false
	}

	return n, true
}

func key(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}
