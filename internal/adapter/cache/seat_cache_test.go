package cache_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/srgjo27/bus_reservation/internal/adapter/cache"
	"github.com/srgjo27/bus_reservation/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeatCache_RoundTrip(t *testing.T) {
	db, mockRedis := redismock.NewClientMock()
	c := cache.NewSeatCache(db, time.Minute)
	ctx := context.Background()

	seatMap := domain.SeatMap{
		TripID:         "B100",
		TotalSeats:     4,
		AvailableSeats: []int{1, 3},
		BookedSeats:    2,
		WaitlistLength: 1,
	}

	data, err := cache.Encode(seatMap)
	require.NoError(t, err)

	mockRedis.ExpectSet("seats:B100", data, time.Minute).SetVal("OK")
	mockRedis.ExpectGet("seats:B100").SetVal(string(data))

	require.NoError(t, c.SetSeatMap(ctx, seatMap))

	got, err := c.GetSeatMap(ctx, "B100")
	require.NoError(t, err)
	assert.Equal(t, &seatMap, got)

	assert.NoError(t, mockRedis.ExpectationsWereMet())
}

func TestSeatCache_Miss(t *testing.T) {
	db, mockRedis := redismock.NewClientMock()
	c := cache.NewSeatCache(db, 0)

	mockRedis.ExpectGet("seats:B100").RedisNil()

	got, err := c.GetSeatMap(context.Background(), "B100")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.NoError(t, mockRedis.ExpectationsWereMet())
}

func TestSeatCache_GetError(t *testing.T) {
	db, mockRedis := redismock.NewClientMock()
	c := cache.NewSeatCache(db, 0)

	mockRedis.ExpectGet("seats:B100").SetErr(errors.New("connection refused"))

	_, err := c.GetSeatMap(context.Background(), "B100")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestSeatCache_CorruptPayload(t *testing.T) {
	db, mockRedis := redismock.NewClientMock()
	c := cache.NewSeatCache(db, 0)

	mockRedis.ExpectGet("seats:B100").SetVal("not cbor")

	_, err := c.GetSeatMap(context.Background(), "B100")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode seat map")
}

func TestSeatCache_Invalidate(t *testing.T) {
	db, mockRedis := redismock.NewClientMock()
	c := cache.NewSeatCache(db, 0)

	mockRedis.ExpectDel("seats:B100").SetVal(1)

	require.NoError(t, c.Invalidate(context.Background(), "B100"))
	assert.NoError(t, mockRedis.ExpectationsWereMet())
}

func TestEncode_Deterministic(t *testing.T) {
	seatMap := domain.SeatMap{TripID: "B1", TotalSeats: 2, AvailableSeats: []int{2}, BookedSeats: 1}

	a, err := cache.Encode(seatMap)
	require.NoError(t, err)
	b, err := cache.Encode(seatMap)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}
