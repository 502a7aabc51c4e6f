package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func clearEnv(t *testing.T, keys ...string) {
	for _, k := range keys {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t, "PORT", "API_PREFIX", "REDIS_HOST", "REDIS_PORT", "EVENT_BROKER",
		"KAFKA_BOOKING_TOPIC", "RABBITMQ_EXCHANGE", "JWT_EXPIRES_IN", "DB_NAME",
		"S3_ENDPOINT", "SMTP_HOST")

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "/api", cfg.GetAPIBasePath())
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, "none", cfg.Events.Broker)
	assert.Equal(t, "booking-events", cfg.Events.KafkaTopic)
	assert.Equal(t, "drivehub.events", cfg.Events.RabbitMQExchange)
	assert.Equal(t, time.Hour, cfg.JWT.JWTExpiresIn)
	assert.Contains(t, cfg.Database.DSN, "dbname=drivehub_db")
	assert.False(t, cfg.StorageEnabled())
	assert.False(t, cfg.SMTPEnabled())
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("GIN_MODE", "release")
	t.Setenv("EVENT_BROKER", "RabbitMQ")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092 ,")
	t.Setenv("JWT_EXPIRES_IN", "120")
	t.Setenv("RATE_LIMIT_WINDOW_DURATION", "30s")
	t.Setenv("RATE_LIMIT_AUTH_REQUESTS", "not-a-number")
	t.Setenv("S3_ENDPOINT", "localhost:9000")
	t.Setenv("S3_ACCESS_KEY", "minio")
	t.Setenv("S3_SECRET_KEY", "minio123")

	cfg := Load()

	assert.Equal(t, ":9090", cfg.GetServerAddress())
	assert.True(t, cfg.IsProduction())
	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, "rabbitmq", cfg.Events.Broker)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Events.KafkaBrokers)
	assert.Equal(t, 2*time.Minute, cfg.JWT.JWTExpiresIn)
	assert.Equal(t, 30*time.Second, cfg.RateLimit.WindowDuration)
	assert.Equal(t, 10, cfg.RateLimit.AuthRequests)
	assert.True(t, cfg.StorageEnabled())
}
