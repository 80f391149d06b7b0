package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// Store drivers.
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// JWTConfig defines issuer/secret pair for auth verification.
type JWTConfig struct {
	Issuer string
	Secret []byte
}

// Config holds runtime configuration shared across the application.
type Config struct {
	Addr                  string
	Env                   string
	StoreDriver           string
	MongoURI              string
	MongoDatabase         string
	ApplicationCollection string
	AssessmentCollection  string
	SQLDSN                string
	RedisAddr             string
	ListingCacheTTL       time.Duration
	Timeout               time.Duration
	AllowedOrigins        []string
	JWTConfigs            []JWTConfig
	JWTAudience           string
}

// Load reads environment variables and returns a fully populated Config.
func Load() (Config, error) {
	timeout, err := parseDuration("STORE_CONNECT_TIMEOUT", 10*time.Second)
	if err != nil {
		return Config{}, err
	}
	cacheTTL, err := parseDuration("LISTING_CACHE_TTL", 5*time.Minute)
	if err != nil {
		return Config{}, err
	}

	driver := strings.ToLower(strings.TrimSpace(envOrDefault("STORE_DRIVER", DriverMongo)))
	switch driver {
	case DriverMongo, DriverPostgres, DriverSQLite:
	default:
		return Config{}, fmt.Errorf("unsupported STORE_DRIVER %q", driver)
	}
	sqlDSN := strings.TrimSpace(os.Getenv("SQL_DSN"))
	if driver == DriverSQLite && sqlDSN == "" {
		sqlDSN = "file:marketplace.db?_foreign_keys=on"
	}
	if driver == DriverPostgres && sqlDSN == "" {
		return Config{}, errors.New("SQL_DSN must be set when STORE_DRIVER=postgres")
	}

	var jwtConfigs []JWTConfig
	if secret := strings.TrimSpace(os.Getenv("AUTH_ADMIN_JWT_SECRET")); secret != "" {
		jwtConfigs = append(jwtConfigs, JWTConfig{
			Issuer: envOrDefault("AUTH_ADMIN_JWT_ISSUER", "marketplace-admin"),
			Secret: []byte(secret),
		})
	}
	if len(jwtConfigs) == 0 {
		return Config{}, errors.New("JWT secret not configured: set AUTH_ADMIN_JWT_SECRET")
	}

	return Config{
		Addr:                  envOrDefault("HTTP_ADDR", ":8080"),
		Env:                   envOrDefault("APP_ENV", "development"),
		StoreDriver:           driver,
		MongoURI:              envOrDefault("MONGO_URI", "mongodb://mongo:27017"),
		MongoDatabase:         envOrDefault("MONGO_DB", "marketplace"),
		ApplicationCollection: envOrDefault("APPLICATION_COLLECTION", "vendor_applications"),
		AssessmentCollection:  envOrDefault("ASSESSMENT_COLLECTION", "vendor_assessments"),
		SQLDSN:                sqlDSN,
		RedisAddr:             strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		ListingCacheTTL:       cacheTTL,
		Timeout:               timeout,
		AllowedOrigins:        parseList("API_ALLOWED_ORIGINS", []string{"*"}),
		JWTConfigs:            jwtConfigs,
		JWTAudience:           strings.TrimSpace(os.Getenv("AUTH_JWT_AUDIENCE")),
	}, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return parsed, nil
}

func parseList(key string, fallback []string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			values = append(values, part)
		}
	}

	if len(values) == 0 {
		return fallback
	}
	return values
}
