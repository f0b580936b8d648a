package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const PROD_STRING = "prod"

// Backend kinds selectable with BACKEND.
const (
	BackendSimulated = "simulated"
	BackendRemote    = "remote"
)

// Config holds all application configuration loaded from environment.
type Config struct {
	IsProduction      bool
	ProdOrigins       string
	HTTPAddr          string
	LogLevel          string
	JWTSecret         string
	JWTAccessTokenTTL time.Duration

	Backend          string
	RemoteBackendURL string
	RemoteTimeout    time.Duration

	SimReadDelay    time.Duration
	SimWriteDelay   time.Duration
	SimBookDelay    time.Duration
	SimAuthDelay    time.Duration
	SimRestoreDelay time.Duration
}

// Load loads configuration from .env (optional) and environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		log.Printf("failed to load .env file: %v", err)
	}

	return FromEnv()
}

// FromEnv builds the configuration from the process environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{}
	var err error

	// Production origin (default: empty)
	cfg.ProdOrigins = getEnv("PROD_ORIGINS", "")

	// Application environment (default: dev)
	appEnvStr := getEnv("APP_ENV", "dev")
	cfg.IsProduction = appEnvStr == PROD_STRING

	// HTTP listen address (default: :8080)
	cfg.HTTPAddr = getEnv("HTTP_ADDR", ":8080")

	// Log level (default: info)
	cfg.LogLevel = getEnv("LOG_LEVEL", "info")

	// JWT secret is required for signing session tokens
	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	if cfg.JWTAccessTokenTTL, err = getEnvAsDuration("JWT_ACCESS_TOKEN_TTL", 24*time.Hour); err != nil {
		return nil, err
	}

	// Listings backend (default: simulated)
	cfg.Backend = getEnv("BACKEND", BackendSimulated)
	switch cfg.Backend {
	case BackendSimulated:
	case BackendRemote:
		cfg.RemoteBackendURL = os.Getenv("REMOTE_BACKEND_URL")
		if cfg.RemoteBackendURL == "" {
			return nil, fmt.Errorf("REMOTE_BACKEND_URL is required when BACKEND=%s", BackendRemote)
		}
	default:
		return nil, fmt.Errorf("invalid BACKEND %q: want %q or %q", cfg.Backend, BackendSimulated, BackendRemote)
	}

	if cfg.RemoteTimeout, err = getEnvAsDuration("REMOTE_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}

	// Simulated latencies
	if cfg.SimReadDelay, err = getEnvAsDuration("SIM_READ_DELAY", time.Second); err != nil {
		return nil, err
	}
	if cfg.SimWriteDelay, err = getEnvAsDuration("SIM_WRITE_DELAY", 1500*time.Millisecond); err != nil {
		return nil, err
	}
	if cfg.SimBookDelay, err = getEnvAsDuration("SIM_BOOK_DELAY", time.Second); err != nil {
		return nil, err
	}
	if cfg.SimAuthDelay, err = getEnvAsDuration("SIM_AUTH_DELAY", time.Second); err != nil {
		return nil, err
	}
	if cfg.SimRestoreDelay, err = getEnvAsDuration("SIM_RESTORE_DELAY", 500*time.Millisecond); err != nil {
		return nil, err
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable if set,
// otherwise returns the provided default value.
func getEnv(key, defaultValue string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer.
// It returns the default value if the variable is not set.
// It returns an error if the variable is set but is not a valid integer.
func getEnvAsInt(key string, defaultValue int) (int, error) {
	valStr := getEnv(key, "")
	if valStr == "" {
		return defaultValue, nil
	}

	val, err := strconv.Atoi(valStr)
	if err != nil {
		return 0, fmt.Errorf("env %s value %q is not a valid integer: %w", key, valStr, err)
	}

	return val, nil
}

// getEnvAsDuration parses a time.Duration such as "500ms" or "1h".
// A bare integer is read as milliseconds.
func getEnvAsDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	valStr := getEnv(key, "")
	if valStr == "" {
		return defaultValue, nil
	}

	d, err := time.ParseDuration(valStr)
	if ms, intErr := getEnvAsInt(key, 0); intErr == nil {
		d, err = time.Duration(ms)*time.Millisecond, nil
	}
	if err != nil {
		return 0, fmt.Errorf("env %s value %q is not a valid duration: %w", key, valStr, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("env %s must not be negative", key)
	}
	return d, nil
}
