package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the gateway.
type Config struct {
	App      AppConfig
	Upstream UpstreamConfig
	Auth     AuthConfig
	Store    StoreConfig
	Redis    RedisConfig
	Logger   LoggerConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// UpstreamConfig points at the remote booking API.
type UpstreamConfig struct {
	BaseURL        string
	TimeoutSeconds int
}

// AuthConfig defines session and credential parameters.
type AuthConfig struct {
	SessionSecret        string
	CredentialTTLMinutes int
	SecureCookies        bool
}

// StoreBackend selects the credential store implementation.
type StoreBackend string

const (
	StoreBackendRedis  StoreBackend = "redis"
	StoreBackendSQLite StoreBackend = "sqlite"
)

// StoreConfig selects and configures credential persistence.
type StoreConfig struct {
	Backend    StoreBackend
	SQLitePath string
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	backend := StoreBackend(strings.ToLower(getEnv("CREDENTIAL_STORE_BACKEND", string(StoreBackendSQLite))))
	switch backend {
	case StoreBackendRedis, StoreBackendSQLite:
	default:
		return nil, fmt.Errorf("invalid CREDENTIAL_STORE_BACKEND: %q", backend)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "hotel-front"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Upstream: UpstreamConfig{
			BaseURL:        getEnv("BOOKING_API_URL", "http://127.0.0.1:9090/api"),
			TimeoutSeconds: getEnvAsInt("BOOKING_API_TIMEOUT_SECONDS", 15),
		},
		Auth: AuthConfig{
			SessionSecret:        getEnv("AUTH_SESSION_SECRET", "dev-secret"),
			CredentialTTLMinutes: getEnvAsInt("AUTH_CREDENTIAL_TTL_MINUTES", 300),
			SecureCookies:        getEnvAsBool("AUTH_SECURE_COOKIES", false),
		},
		Store: StoreConfig{
			Backend:    backend,
			SQLitePath: getEnv("CREDENTIAL_STORE_SQLITE_PATH", "hotel-front.db"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// Timeout returns the upstream call timeout duration.
func (u UpstreamConfig) Timeout() time.Duration {
	if u.TimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(u.TimeoutSeconds) * time.Second
}

// CredentialTTL returns the shared lifetime for stored credentials. It
// matches the booking API's token lifetime.
func (a AuthConfig) CredentialTTL() time.Duration {
	if a.CredentialTTLMinutes <= 0 {
		return 5 * time.Hour
	}
	return time.Duration(a.CredentialTTLMinutes) * time.Minute
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
