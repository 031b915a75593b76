package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/srgjo27/bus_reservation/internal/adapter/cache"
	"github.com/srgjo27/bus_reservation/internal/adapter/handler"
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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := bootstrap.OpenStateStore(ctx, cfg.Storage)
	if err != nil {
		log.Fatalf("Failed to open storage: %v", err)
	}
	defer closeStore()

	redisClient, err := bootstrap.OpenRedis(ctx, cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	sinks := notify.Multi{notify.LogSink{}}
	var seatCache ports.SeatCache
	if redisClient != nil {
		defer redisClient.Close()
		sinks = append(sinks, notify.NewRedisSink(redisClient, cfg.Redis.Channel))
		seatCache = cache.NewSeatCache(redisClient, cfg.Redis.CacheTTL)
	}

	passengerRepo := memory.NewPassengerRepository()
	tripRepo := memory.NewTripRepository()

	registryService := services.NewRegistryService(passengerRepo, tripRepo, cfg.Reservation.WaitlistCapacity, cfg.Reservation.MaxSeats)
	bookingService := services.NewBookingService(tripRepo, passengerRepo, sinks, seatCache)
	bookingService.SetNotifyTimeout(cfg.Reservation.NotifyTimeout)
	snapshotService := services.NewSnapshotService(store, passengerRepo, tripRepo, cfg.Reservation.WaitlistCapacity)

	if _, err := snapshotService.Load(ctx); err != nil {
		log.Fatalf("Failed to load state: %v", err)
	}

	go snapshotService.RunAutosave(ctx, cfg.AutosaveInterval)

	router := handler.NewRouter(
		handler.NewRegistryHandler(registryService),
		handler.NewBookingHandler(bookingService),
	)

	server := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("Server starting on %s", cfg.HTTP.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server startup failed: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	if err := snapshotService.Persist(shutdownCtx); err != nil {
		log.Printf("Failed to save state: %v", err)
		os.Exit(1)
	}

	log.Println("Server exiting")
}
