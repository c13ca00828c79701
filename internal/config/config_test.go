package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := FromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Port)
	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, StorageMemory, cfg.StorageDriver)
	assert.Equal(t, "./data", cfg.CatalogConfig.Source)
	assert.Equal(t, 10*time.Second, cfg.CatalogConfig.Timeout)
	assert.Equal(t, 30*time.Minute, cfg.SessionConfig.TTL)
	assert.Equal(t, "petflu_session", cfg.SessionConfig.CookieName)
	assert.Equal(t, 365*24*time.Hour, cfg.SessionConfig.CookieMaxAge)
	assert.Greater(t, cfg.SessionConfig.CookieMaxAge, cfg.SessionConfig.TTL)
	assert.False(t, cfg.KafkaConfig.Enabled)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
}

func TestFromViper_Environment(t *testing.T) {
	t.Setenv("STOREFRONT_SERVICE_PORT", "9090")
	t.Setenv("STOREFRONT_STORAGE_DRIVER", "Postgres")
	t.Setenv("STOREFRONT_DB_HOST", "db.internal")
	t.Setenv("STOREFRONT_KAFKA_ENABLED", "true")
	t.Setenv("STOREFRONT_KAFKA_BROKERS", "k1:9092, k2:9092")
	t.Setenv("STOREFRONT_CATALOG_SOURCE", "https://cdn.petflu.com.br/data")
	t.Setenv("STOREFRONT_SESSION_TTL", "2h")

	cfg, err := FromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Port)
	assert.Equal(t, StoragePostgres, cfg.StorageDriver)
	assert.Equal(t, "db.internal", cfg.DBConfig.Host)
	assert.Contains(t, cfg.DBConfig.DSN(), "host=db.internal port=5432")
	assert.True(t, cfg.KafkaConfig.Enabled)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaConfig.Brokers)
	assert.Equal(t, "https://cdn.petflu.com.br/data", cfg.CatalogConfig.Source)
	assert.Equal(t, 2*time.Hour, cfg.SessionConfig.TTL)
}

func TestFromViper_InvalidStorageDriver(t *testing.T) {
	t.Setenv("STOREFRONT_STORAGE_DRIVER", "localstorage")

	_, err := FromViper(viper.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "localstorage")
}

func TestFromViper_CookieMaxAgeShorterThanTTL(t *testing.T) {
	t.Setenv("STOREFRONT_SESSION_TTL", "2h")
	t.Setenv("STOREFRONT_SESSION_COOKIE_MAX_AGE", "1h")

	_, err := FromViper(viper.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cookie max age")
}
