package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("AUTH_ADMIN_JWT_SECRET", "s3cret")
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("API_ALLOWED_ORIGINS", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, DriverMongo, cfg.StoreDriver)
	assert.Equal(t, "vendor_assessments", cfg.AssessmentCollection)
	assert.Equal(t, 5*time.Minute, cfg.ListingCacheTTL)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	require.Len(t, cfg.JWTConfigs, 1)
	assert.Equal(t, "marketplace-admin", cfg.JWTConfigs[0].Issuer)
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("AUTH_ADMIN_JWT_SECRET", "")
	_, err := Load()
	assert.Error(t, err)
}

func TestLoadSQLDrivers(t *testing.T) {
	t.Setenv("AUTH_ADMIN_JWT_SECRET", "s3cret")

	t.Setenv("STORE_DRIVER", "SQLite")
	t.Setenv("SQL_DSN", "")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DriverSQLite, cfg.StoreDriver)
	assert.NotEmpty(t, cfg.SQLDSN)

	t.Setenv("STORE_DRIVER", "postgres")
	_, err = Load()
	assert.Error(t, err)

	t.Setenv("STORE_DRIVER", "cassandra")
	_, err = Load()
	assert.Error(t, err)
}

func TestLoadParsesListsAndDurations(t *testing.T) {
	t.Setenv("AUTH_ADMIN_JWT_SECRET", "s3cret")
	t.Setenv("STORE_DRIVER", "mongo")
	t.Setenv("API_ALLOWED_ORIGINS", " https://a.example , ,https://b.example")
	t.Setenv("LISTING_CACHE_TTL", "90s")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.Equal(t, 90*time.Second, cfg.ListingCacheTTL)

	t.Setenv("LISTING_CACHE_TTL", "soon")
	_, err = Load()
	assert.Error(t, err)
}
