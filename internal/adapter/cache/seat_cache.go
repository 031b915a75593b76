package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/redis/go-redis/v9"

	"github.com/srgjo27/bus_reservation/internal/core/domain"
)

const DefaultTTL = 5 * time.Minute

var encMode cbor.EncMode

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("cache: CBOR encoder initialization failed: " + err.Error())
	}
}

// SeatCache stores seat maps in Redis as deterministic CBOR under
// "seats:<trip id>".
type SeatCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewSeatCache(client redis.Cmdable, ttl time.Duration) *SeatCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &SeatCache{client: client, ttl: ttl}
}

func Key(tripID string) string {
	return fmt.Sprintf("seats:%s", tripID)
}

func (c *SeatCache) GetSeatMap(ctx context.Context, tripID string) (*domain.SeatMap, error) {
	data, err := c.client.Get(ctx, Key(tripID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read seat map %s: %w", tripID, err)
	}

	var seatMap domain.SeatMap
	if err := cbor.Unmarshal(data, &seatMap); err != nil {
		return nil, fmt.Errorf("failed to decode seat map %s: %w", tripID, err)
	}

	return &seatMap, nil
}

func (c *SeatCache) SetSeatMap(ctx context.Context, seatMap domain.SeatMap) error {
	data, err := Encode(seatMap)
	if err != nil {
		return err
	}

	if err := c.client.Set(ctx, Key(seatMap.TripID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write seat map %s: %w", seatMap.TripID, err)
	}

	return nil
}

func (c *SeatCache) Invalidate(ctx context.Context, tripID string) error {
	return c.client.Del(ctx, Key(tripID)).Err()
}

// Encode returns the cached representation of a seat map.
func Encode(seatMap domain.SeatMap) ([]byte, error) {
	data, err := encMode.Marshal(seatMap)
	if err != nil {
		return nil, fmt.Errorf("failed to encode seat map %s: %w", seatMap.TripID, err)
	}
	return data, nil
}
