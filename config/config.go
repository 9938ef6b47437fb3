package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// Storage backends
const (
	StoragePostgres  = "postgres"
	StorageSQLite    = "sqlite"
	StorageFirestore = "firestore"
	StorageFile      = "file"
)

// Authentication modes
const (
	AuthAccounts = "accounts"
	AuthShared   = "shared"
	AuthNone     = "none"
)

// Config holds application configuration loaded from environment variables
type Config struct {
	Port     string
	LogLevel log.Level

	StorageBackend      string
	PGURL               string
	SQLitePath          string
	FirestoreProject    string
	FirestoreCollection string
	HoldingsFile        string

	AuthMode       string
	SharedPassword string
	JWTSecret      string
	SessionTTL     time.Duration

	RedisAddr     string
	RedisPassword string

	MarketDataProvider   string
	AVKey                string
	MaxConcurrentFetches int
	FetchTimeout         time.Duration
	MarketTimezone       string
}

// Load reads configuration from environment variables. Values from a .env
// file in the working directory are used only where the shell sets nothing.
func Load() (*Config, error) {
	// a missing .env is fine
	_ = godotenv.Load()

	cfg := &Config{
		Port:                getEnv("PORT", "8080"),
		StorageBackend:      getEnv("STORAGE_BACKEND", StorageFile),
		PGURL:               os.Getenv("PG_URL"),
		SQLitePath:          getEnv("SQLITE_PATH", "portfolio.db"),
		FirestoreProject:    os.Getenv("FIRESTORE_PROJECT"),
		FirestoreCollection: getEnv("FIRESTORE_COLLECTION", "portfolios"),
		HoldingsFile:        getEnv("HOLDINGS_FILE", "holdings.json"),
		AuthMode:            getEnv("AUTH_MODE", AuthNone),
		SharedPassword:      os.Getenv("SHARED_PASSWORD"),
		JWTSecret:           os.Getenv("JWT_SECRET"),
		RedisAddr:           os.Getenv("REDIS_ADDR"),
		RedisPassword:       os.Getenv("REDIS_PASSWORD"),
		MarketDataProvider:  getEnv("MARKET_DATA_PROVIDER", "yahoo"),
		AVKey:               os.Getenv("AV_KEY"),
		MarketTimezone:      getEnv("MARKET_TIMEZONE", "Europe/Paris"),
	}

	var err error
	if cfg.LogLevel, err = log.ParseLevel(getEnv("LOG_LEVEL", "info")); err != nil {
		return nil, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	if cfg.SessionTTL, err = durationEnv("SESSION_TTL", 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.FetchTimeout, err = durationEnv("FETCH_TIMEOUT", 15*time.Second); err != nil {
		return nil, err
	}
	if cfg.MaxConcurrentFetches, err = intEnv("MAX_CONCURRENT_FETCHES", 4); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that every setting the selected modes depend on is present
func (c *Config) Validate() error {
	switch c.StorageBackend {
	case StoragePostgres:
		if c.PGURL == "" {
			return fmt.Errorf("PG_URL environment variable is required for the postgres backend")
		}
	case StorageFirestore:
		if c.FirestoreProject == "" {
			return fmt.Errorf("FIRESTORE_PROJECT environment variable is required for the firestore backend")
		}
	case StorageSQLite, StorageFile:
	default:
		return fmt.Errorf("STORAGE_BACKEND must be one of postgres, sqlite, firestore, file; got %q", c.StorageBackend)
	}

	switch c.AuthMode {
	case AuthAccounts:
		if c.StorageBackend != StoragePostgres && c.StorageBackend != StorageSQLite {
			return fmt.Errorf("AUTH_MODE=accounts requires the postgres or sqlite backend")
		}
	case AuthShared:
		if c.SharedPassword == "" {
			return fmt.Errorf("SHARED_PASSWORD environment variable is required when AUTH_MODE=shared")
		}
	case AuthNone:
	default:
		return fmt.Errorf("AUTH_MODE must be one of accounts, shared, none; got %q", c.AuthMode)
	}
	if c.AuthMode != AuthNone && c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET environment variable is required when AUTH_MODE=%s", c.AuthMode)
	}

	switch c.MarketDataProvider {
	case "yahoo":
	case "alphavantage":
		if c.AVKey == "" {
			return fmt.Errorf("AV_KEY environment variable is required for the alphavantage provider")
		}
	default:
		return fmt.Errorf("MARKET_DATA_PROVIDER must be yahoo or alphavantage; got %q", c.MarketDataProvider)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%s must be a positive duration such as 15s, got %q", key, v)
	}
	return d, nil
}

func intEnv(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", key, v)
	}
	return n, nil
}
