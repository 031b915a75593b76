package ports

import (
	"context"

	"github.com/srgjo27/bus_reservation/internal/core/domain"
)

type NotificationSink interface {
	Notify(ctx context.Context, notification domain.NeighborNotification) error
}

// SeatCache holds per-trip seat maps. GetSeatMap returns nil, nil on a miss.
type SeatCache interface {
	GetSeatMap(ctx context.Context, tripID string) (*domain.SeatMap, error)
	SetSeatMap(ctx context.Context, seatMap domain.SeatMap) error
	Invalidate(ctx context.Context, tripID string) error
}
