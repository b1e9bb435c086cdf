package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Profile storage backends.
const (
	BackendSurreal  = "surreal"
	BackendPostgres = "postgres"
)

// DefaultPlanID is the plan requested by the "Extend Subscription" action.
const DefaultPlanID = "price_copper_weekly"

// Provider exposes read access to the application configuration. Components
// depend on this interface rather than on the concrete Config so tests can
// supply a partial implementation.
type Provider interface {
	GetServerAddr() string
	GetAppBaseURL() string
	GetSessionSecret() string
	GetSessionTTL() time.Duration
	GetDBURL() string
	GetDBNs() string
	GetDBDb() string
	GetDBUser() string
	GetDBPass() string
	GetDBQueryTimeout() time.Duration
	GetProfileBackend() string
	GetDatabaseURL() string
	GetSubscriptionAPIURL() string
	GetSubscriptionTimeout() time.Duration
	GetSubscriptionPlanID() string
	GetQueryCacheSize() int
	GetQueryCacheTTL() time.Duration
	GetDisplayLocation() *time.Location
	GetLogFormat() string
	GetLogLevel() string
}

// Config holds all configuration for the application.
type Config struct {
	ServerAddr     string        `validate:"required"`
	AppBaseURL     string        `validate:"required,url"`
	SessionSecret  string        `validate:"required,min=16"`
	SessionTTL     time.Duration `validate:"gt=0"`
	DBUrl          string        `validate:"required"`
	DBNs           string        `validate:"required"`
	DBDb           string        `validate:"required"`
	DBUser         string
	DBPass         string
	DBQueryTimeout time.Duration `validate:"gt=0"`
	ProfileBackend string        `validate:"oneof=surreal postgres"`
	DatabaseURL    string        `validate:"required_if=ProfileBackend postgres"`

	SubscriptionAPIURL  string        `validate:"required"`
	SubscriptionTimeout time.Duration `validate:"gt=0"`
	SubscriptionPlanID  string        `validate:"required"`

	QueryCacheSize int           `validate:"gt=0"`
	QueryCacheTTL  time.Duration `validate:"gt=0"`

	DisplayTimezone string `validate:"required"`
	displayLocation *time.Location

	LogFormat string `validate:"oneof=text json"`
	LogLevel  string `validate:"oneof=debug info warn error"`
}

// New loads configuration from the environment, reading a .env file first
// when one is present.
func New() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}
	return FromEnv()
}

// FromEnv builds and validates a Config from the current process environment.
func FromEnv() (*Config, error) {
	cfg := &Config{
		ServerAddr:          getEnv("SERVER_ADDR", ":8080"),
		AppBaseURL:          getEnv("APP_BASE_URL", "http://localhost:8080"),
		SessionSecret:       os.Getenv("SESSION_SECRET"),
		SessionTTL:          getEnvDuration("SESSION_TTL", 7*24*time.Hour),
		DBUrl:               os.Getenv("SURREAL_URL"),
		DBNs:                os.Getenv("SURREAL_NS"),
		DBDb:                os.Getenv("SURREAL_DB"),
		DBUser:              os.Getenv("SURREAL_USER"),
		DBPass:              os.Getenv("SURREAL_PASS"),
		DBQueryTimeout:      getEnvDuration("DB_QUERY_TIMEOUT", 5*time.Second),
		ProfileBackend:      getEnv("PROFILE_BACKEND", BackendSurreal),
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		SubscriptionAPIURL:  getEnv("SUBSCRIPTION_API_URL", "http://localhost:8080/api/get-subscription-details"),
		SubscriptionTimeout: getEnvDuration("SUBSCRIPTION_TIMEOUT", 10*time.Second),
		SubscriptionPlanID:  getEnv("SUBSCRIPTION_PLAN_ID", DefaultPlanID),
		QueryCacheSize:      getEnvInt("QUERY_CACHE_SIZE", 1024),
		QueryCacheTTL:       getEnvDuration("QUERY_CACHE_TTL", 5*time.Minute),
		DisplayTimezone:     getEnv("DISPLAY_TIMEZONE", "UTC"),
		LogFormat:           getEnv("LOG_FORMAT", "text"),
		LogLevel:            getEnv("LOG_LEVEL", "debug"),
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	loc, err := time.LoadLocation(cfg.DisplayTimezone)
	if err != nil {
		return nil, fmt.Errorf("invalid DISPLAY_TIMEZONE %q: %w", cfg.DisplayTimezone, err)
	}
	cfg.displayLocation = loc

	return cfg, nil
}

func (c *Config) GetServerAddr() string                 { return c.ServerAddr }
func (c *Config) GetAppBaseURL() string                 { return c.AppBaseURL }
func (c *Config) GetSessionSecret() string              { return c.SessionSecret }
func (c *Config) GetSessionTTL() time.Duration          { return c.SessionTTL }
func (c *Config) GetDBURL() string                      { return c.DBUrl }
func (c *Config) GetDBNs() string                       { return c.DBNs }
func (c *Config) GetDBDb() string                       { return c.DBDb }
func (c *Config) GetDBUser() string                     { return c.DBUser }
func (c *Config) GetDBPass() string                     { return c.DBPass }
func (c *Config) GetDBQueryTimeout() time.Duration      { return c.DBQueryTimeout }
func (c *Config) GetProfileBackend() string             { return c.ProfileBackend }
func (c *Config) GetDatabaseURL() string                { return c.DatabaseURL }
func (c *Config) GetSubscriptionAPIURL() string         { return c.SubscriptionAPIURL }
func (c *Config) GetSubscriptionTimeout() time.Duration { return c.SubscriptionTimeout }
func (c *Config) GetSubscriptionPlanID() string         { return c.SubscriptionPlanID }
func (c *Config) GetQueryCacheSize() int                { return c.QueryCacheSize }
func (c *Config) GetQueryCacheTTL() time.Duration       { return c.QueryCacheTTL }
func (c *Config) GetLogFormat() string                  { return c.LogFormat }
func (c *Config) GetLogLevel() string                   { return c.LogLevel }

// GetDisplayLocation returns the timezone used to render dates to users.
func (c *Config) GetDisplayLocation() *time.Location {
	if c.displayLocation == nil {
		return time.UTC
	}
	return c.displayLocation
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultValue
}
