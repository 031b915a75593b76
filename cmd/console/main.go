package main

import (
	"context"
	"log"
	"os"

	"github.com/spf13/pflag"

	"github.com/srgjo27/bus_reservation/internal/adapter/cache"
	"github.com/srgjo27/bus_reservation/internal/adapter/console"
	"github.com/srgjo27/bus_reservation/internal/adapter/notify"
	"github.com/srgjo27/bus_reservation/internal/adapter/repository/memory"
	"github.com/srgjo27/bus_reservation/internal/core/ports"
	"github.com/srgjo27/bus_reservation/internal/core/services"
	"github.com/srgjo27/bus_reservation/internal/platform/bootstrap"
	"github.com/srgjo27/bus_reservation/internal/platform/config"
)

func main() {
	configPath := pflag.String("config", "", "path to YAML config file")
	dataDir := pflag.String("data-dir", "", "directory for flat-file storage (overrides config)")
	pflag.Parse()

	config.LoadEnvFile(".env")

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if *dataDir != "" {
		cfg.Storage.DataDir = *dataDir
	}

	ctx := context.Background()

	store, closeStore, err := bootstrap.OpenStateStore(ctx, cfg.Storage)
	if err != nil {
		log.Fatalf("Failed to open storage: %v", err)
	}
	defer closeStore()

	redisClient, err := bootstrap.OpenRedis(ctx, cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	sinks := notify.Multi{notify.NewWriterSink(os.Stdout)}
	var seatCache ports.SeatCache
	if redisClient != nil {
		defer redisClient.Close()
		sinks = append(sinks, notify.NewRedisSink(redisClient, cfg.Redis.Channel))
		seatCache = cache.NewSeatCache(redisClient, cfg.Redis.CacheTTL)
	}

	passengerRepo := memory.NewPassengerRepository()
	tripRepo := memory.NewTripRepository()

	snapshotService := services.NewSnapshotService(store, passengerRepo, tripRepo, cfg.Reservation.WaitlistCapacity)
	if _, err := snapshotService.Load(ctx); err != nil {
		log.Fatalf("Error loading initial data: %v", err)
	}

	bookingService := services.NewBookingService(tripRepo, passengerRepo, sinks, seatCache)
	bookingService.SetNotifyTimeout(cfg.Reservation.NotifyTimeout)

	c := console.New(
		services.NewRegistryService(passengerRepo, tripRepo, cfg.Reservation.WaitlistCapacity, cfg.Reservation.MaxSeats),
		bookingService,
		snapshotService,
		os.Stdin,
		os.Stdout,
	)

	if err := c.Run(ctx); err != nil {
		log.Fatalf("Console stopped: %v", err)
	}
}
