package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// RateLimitConfig indicates how many requests are allowed within a given interval.
type RateLimitConfig struct {
	Requests int
	Interval time.Duration
}

// RefreshConfig controls the background profile refresh.
type RefreshConfig struct {
	StaleAfter time.Duration
	Workers    int
	QueueSize  int
}

// FetchConfig controls outbound requests to external profile pages.
type FetchConfig struct {
	Timeout   time.Duration
	RateLimit RateLimitConfig
}

// LogConfig selects the log level and output format.
type LogConfig struct {
	Level  string
	Pretty bool
}

// Config aggregates application-wide configuration values.
type Config struct {
	DatabaseURL       string
	DatabaseMaxConns  int
	Port              string
	AdminPassword     string
	AdminPasswordHash string
	JWTSecret         string
	TokenTTL          time.Duration
	CORSOrigins       []string
	Fetch             FetchConfig
	Refresh           RefreshConfig
	Log               LogConfig
}

// Load reads configuration from environment variables and applies sane defaults.
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		Port:              getEnv("PORT", "8000"),
		AdminPassword:     os.Getenv("ADMIN_PASSWORD"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		JWTSecret:         getEnv("JWT_SECRET", "dev-secret"),
		TokenTTL:          parseDuration(getEnv("JWT_TTL", "30m"), 30*time.Minute),
		CORSOrigins:       splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")),
		Fetch: FetchConfig{
			Timeout: parseDuration(getEnv("FETCH_TIMEOUT", "10s"), 10*time.Second),
		},
		Refresh: RefreshConfig{
			StaleAfter: parseDuration(getEnv("REFRESH_STALE_AFTER", "24h"), 24*time.Hour),
		},
		Log: LogConfig{
			Level:  strings.ToLower(getEnv("LOG_LEVEL", "info")),
			Pretty: parseBool(getEnv("LOG_PRETTY", "false")),
		},
	}

	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is required")
	}
	if cfg.AdminPassword == "" && cfg.AdminPasswordHash == "" {
		return nil, errors.New("one of ADMIN_PASSWORD or ADMIN_PASSWORD_HASH is required")
	}

	rl, err := parseRateLimit(getEnv("FETCH_RATE_LIMIT", "10/min"))
	if err != nil {
		return nil, fmt.Errorf("invalid FETCH_RATE_LIMIT value: %w", err)
	}
	cfg.Fetch.RateLimit = rl

	workers, err := parsePositiveInt(getEnv("REFRESH_WORKERS", "2"))
	if err != nil {
		return nil, fmt.Errorf("invalid REFRESH_WORKERS value: %w", err)
	}
	cfg.Refresh.Workers = workers

	queueSize, err := parsePositiveInt(getEnv("REFRESH_QUEUE_SIZE", "64"))
	if err != nil {
		return nil, fmt.Errorf("invalid REFRESH_QUEUE_SIZE value: %w", err)
	}
	cfg.Refresh.QueueSize = queueSize

	maxConns, err := parsePositiveInt(getEnv("DATABASE_MAX_CONNS", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid DATABASE_MAX_CONNS value: %w", err)
	}
	cfg.DatabaseMaxConns = maxConns

	return cfg, nil
}

func parseRateLimit(value string) (RateLimitConfig, error) {
	parts := strings.Split(value, "/")
	if len(parts) != 2 {
		return RateLimitConfig{}, fmt.Errorf("expected format <requests>/<interval>, got %q", value)
	}

	requests, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || requests <= 0 {
		return RateLimitConfig{}, fmt.Errorf("invalid request count: %v", parts[0])
	}

	unit := strings.ToLower(strings.TrimSpace(parts[1]))
	var interval time.Duration
	switch unit {
	case "s", "sec", "second", "seconds":
		interval = time.Second
	case "m", "min", "minute", "minutes":
		interval = time.Minute
	case "h", "hr", "hour", "hours":
		interval = time.Hour
	default:
		return RateLimitConfig{}, fmt.Errorf("unsupported interval unit: %s", unit)
	}

	return RateLimitConfig{Requests: requests, Interval: interval}, nil
}

func parsePositiveInt(value string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, fmt.Errorf("must be positive, got %d", n)
	}
	return n, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return fallback
}

func parseDuration(input string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(input)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func parseBool(input string) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(input))
	return err == nil && b
}

func splitList(input string) []string {
	var out []string
	for _, item := range strings.Split(input, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
