package config_test

import (
	"testing"

	"parkflow/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "per_hour_block", cfg.App.BillingMode)
	assert.Equal(t, 20, cfg.App.NearbyLimit)
	assert.Equal(t, "5432", cfg.DB.Postgres.Write.Port)
	assert.Equal(t, "disable", cfg.DB.Postgres.Read.SSLMode)
	assert.Equal(t, "parkflow.", cfg.Kafka.TopicPrefix)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("APP_BILLING_MODE", "per_minute")
	t.Setenv("APP_CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("DB_POSTGRES_WRITE_HOST", "primary.db")
	t.Setenv("DB_POSTGRES_READ_HOST", "replica.db")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "per_minute", cfg.App.BillingMode)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.App.CORS.AllowedOrigins)
	assert.Equal(t, "primary.db", cfg.DB.Postgres.Write.Host)
	assert.Equal(t, "replica.db", cfg.DB.Postgres.Read.Host)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
}

func TestLoadRejectsMalformedValues(t *testing.T) {
	t.Setenv("CACHE_TTL", "five minutes")

	_, err := config.Load()
	assert.Error(t, err)
}
