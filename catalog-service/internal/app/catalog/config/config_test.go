package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8081", cfg.Server.Address())
	assert.Equal(t, "", cfg.Server.BasePath)
	assert.Equal(t, "localhost:6379", cfg.Redis.Address())
	assert.Equal(t, time.Hour, cfg.Redis.TTL)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "product_events", cfg.Kafka.Topic)
	assert.Equal(t, int32(25), cfg.Database.MaxConns)
	assert.True(t, cfg.Database.Seed)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowOrigins)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("SERVER_BASE_PATH", "api/")
	t.Setenv("REDIS_ENABLED", "false")
	t.Setenv("REDIS_CATEGORIES_TTL", "15m")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092")
	t.Setenv("DB_SEED", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "/api", cfg.Server.BasePath)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, 15*time.Minute, cfg.Redis.TTL)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.False(t, cfg.Database.Seed)
}

func TestLoad_InvalidRedisDB(t *testing.T) {
	t.Setenv("REDIS_DB", "42")

	_, err := Load()
	assert.ErrorContains(t, err, "REDIS_DB")
}

func TestLoad_KafkaEnabledWithoutBrokers(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", " , ")

	_, err := Load()
	assert.ErrorContains(t, err, "KAFKA_BROKERS")
}

func TestDatabaseConfig_DSNEscapesPassword(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "db",
		Port:     "5432",
		User:     "catalog",
		Password: "p@ss:word",
		DBName:   "products",
		SSLMode:  "disable",
	}

	assert.Equal(t, "postgres://catalog:p%40ss%3Aword@db:5432/products?sslmode=disable", cfg.DSN())
}

func TestNormalizeBasePath(t *testing.T) {
	cases := map[string]string{
		"":       "",
		"/":      "",
		"api":    "/api",
		"/api/":  "/api",
		" /v1/ ": "/v1",
	}
	for in, want := range cases {
		assert.Equal(t, want, normalizeBasePath(in), "input %q", in)
	}
}
