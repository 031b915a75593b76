// Package config loads runtime settings for the reservation binaries.
//
// Settings come from built-in defaults, then an optional YAML file, then
// environment variables. A .env file can seed the environment first.
package config

import (
	"bufio"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/srgjo27/bus_reservation/internal/platform/database"
)

const (
	DriverFile     = "file"
	DriverPostgres = "postgres"
)

type Config struct {
	HTTP             HTTPConfig        `yaml:"http"`
	Storage          StorageConfig     `yaml:"storage"`
	Redis            RedisConfig       `yaml:"redis"`
	Reservation      ReservationConfig `yaml:"reservation"`
	AutosaveInterval time.Duration     `yaml:"autosave_interval"`
}

type HTTPConfig struct {
	Addr string `yaml:"addr"`
}

type StorageConfig struct {
	// Driver is "file" or "postgres".
	Driver   string          `yaml:"driver"`
	DataDir  string          `yaml:"data_dir"`
	Postgres database.Config `yaml:"postgres"`
}

// RedisConfig enables the seat cache and notification channel when Addr is set.
type RedisConfig struct {
	Addr     string        `yaml:"addr"`
	DB       int           `yaml:"db"`
	CacheTTL time.Duration `yaml:"cache_ttl"`
	Channel  string        `yaml:"channel"`
}

type ReservationConfig struct {
	WaitlistCapacity int `yaml:"waitlist_capacity"`
	MaxSeats         int `yaml:"max_seats"`
	// NotifyTimeout bounds each neighbour notification, which is sent while
	// the trip is locked.
	NotifyTimeout time.Duration `yaml:"notify_timeout"`
}

func Default() *Config {
	return &Config{
		HTTP: HTTPConfig{Addr: ":8080"},
		Storage: StorageConfig{
			Driver:  DriverFile,
			DataDir: ".",
			Postgres: database.Config{
				Host:   "localhost",
				Port:   "5432",
				User:   "postgres",
				DBName: "bus_reservation",
			},
		},
		Redis: RedisConfig{
			CacheTTL: 5 * time.Minute,
			Channel:  "seat-notifications",
		},
		Reservation: ReservationConfig{
			WaitlistCapacity: 100,
			MaxSeats:         100,
			NotifyTimeout:    2 * time.Second,
		},
		AutosaveInterval: 30 * time.Second,
	}
}

// Load builds the configuration. An empty path skips the YAML file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}

		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyEnv() {
	setString(&c.Storage.Postgres.Host, "DB_HOST")
	setString(&c.Storage.Postgres.Port, "DB_PORT")
	setString(&c.Storage.Postgres.User, "DB_USER")
	setString(&c.Storage.Postgres.Password, "DB_PASSWORD")
	setString(&c.Storage.Postgres.DBName, "DB_NAME")
	setString(&c.HTTP.Addr, "HTTP_ADDR")
	setString(&c.Storage.Driver, "STORAGE_DRIVER")
	setString(&c.Storage.DataDir, "DATA_DIR")

	if host := os.Getenv("REDIS_HOST"); host != "" {
		port := os.Getenv("REDIS_PORT")
		if port == "" {
			port = "6379"
		}
		c.Redis.Addr = host + ":" + port
	}
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func (c *Config) Validate() error {
	var errs []error

	switch c.Storage.Driver {
	case DriverFile:
		if c.Storage.DataDir == "" {
			errs = append(errs, errors.New("storage.data_dir is required for the file driver"))
		}
	case DriverPostgres:
		if c.Storage.Postgres.Host == "" || c.Storage.Postgres.DBName == "" {
			errs = append(errs, errors.New("storage.postgres.host and storage.postgres.dbname are required"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown storage.driver %q", c.Storage.Driver))
	}

	if c.Reservation.WaitlistCapacity <= 0 {
		errs = append(errs, errors.New("reservation.waitlist_capacity must be positive"))
	}

	if c.Reservation.MaxSeats <= 0 {
		errs = append(errs, errors.New("reservation.max_seats must be positive"))
	}

	if c.Reservation.NotifyTimeout <= 0 {
		errs = append(errs, errors.New("reservation.notify_timeout must be positive"))
	}

	if c.AutosaveInterval <= 0 {
		errs = append(errs, errors.New("autosave_interval must be positive"))
	}

	return errors.Join(errs...)
}

// LoadEnvFile copies KEY=VALUE lines into the process environment.
// A missing file is not an error.
func LoadEnvFile(path string) {
	file, err := os.Open(path)
	if err != nil {
		log.Printf("No %s file found, using OS environment.", path)
		return
	}

	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}

		os.Setenv(strings.TrimSpace(key), strings.Trim(strings.TrimSpace(value), `"`))
	}

	if err := scanner.Err(); err != nil {
		log.Printf("Failed to read %s: %v", path, err)
	}
}
