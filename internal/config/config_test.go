package config_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MiniShop/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", strings.Repeat("s", 32))

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "", cfg.DatabaseURL)
	assert.Equal(t, 10*time.Minute, cfg.RedisTTL)
	assert.Equal(t, 15*time.Minute, cfg.TokenTTL)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Equal(t, "ministore.payments", cfg.KafkaTopic)
	assert.Empty(t, cfg.MetricsToken, "metrics endpoint is off by default")
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", strings.Repeat("s", 40))
	t.Setenv("PORT", "9090")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("REDIS_TTL", "30s")
	t.Setenv("METRICS_TOKEN", "m")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 30*time.Second, cfg.RedisTTL)
	assert.Equal(t, "m", cfg.MetricsToken)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing secret", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")
		_, err := config.Load()
		require.Error(t, err)
	})

	t.Run("short secret", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "short")
		_, err := config.Load()
		require.ErrorContains(t, err, "JWT_SECRET")
	})

	t.Run("bad queue size", func(t *testing.T) {
		t.Setenv("JWT_SECRET", strings.Repeat("s", 32))
		t.Setenv("EVENT_QUEUE_SIZE", "0")
		_, err := config.Load()
		require.ErrorContains(t, err, "EVENT_QUEUE_SIZE")
	})
}
