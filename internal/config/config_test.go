package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv(envMap(nil))
	require.NoError(t, err)

	assert.False(t, cfg.RunLocal)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "orders", cfg.Tables.Orders)
	assert.Equal(t, "shipping_rates", cfg.Tables.ShippingRates)
	assert.Equal(t, GuardDynamoDB, cfg.GuardBackend)
	assert.Equal(t, EventsSQS, cfg.EventsBackend)
	assert.Equal(t, MediaSigned, cfg.Media.Backend)
	assert.Equal(t, 24*time.Hour, cfg.DuplicateWindow)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, 6.0, cfg.OrderRatePerMinute)
	assert.Equal(t, 3, cfg.OrderRateBurst)
}

func TestFromEnv_Overrides(t *testing.T) {
	cfg, err := FromEnv(envMap(map[string]string{
		"RUN_LOCAL":        "true",
		"ORDERS_TABLE":     "prod-orders",
		"GUARD_BACKEND":    "redis",
		"EVENTS_BACKEND":   "kafka",
		"KAFKA_BROKERS":    "k1:9092, k2:9092 ,",
		"DUPLICATE_WINDOW": "12h",
		"ORDER_RATE_BURST": "10",
	}))
	require.NoError(t, err)

	assert.True(t, cfg.RunLocal)
	assert.Equal(t, "prod-orders", cfg.Tables.Orders)
	assert.Equal(t, GuardRedis, cfg.GuardBackend)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 12*time.Hour, cfg.DuplicateWindow)
	assert.Equal(t, 10, cfg.OrderRateBurst)
}

func TestFromEnv_Invalid(t *testing.T) {
	cases := map[string]map[string]string{
		"guard":    {"GUARD_BACKEND": "memcached"},
		"events":   {"EVENTS_BACKEND": "nats"},
		"media":    {"MEDIA_BACKEND": "ftp"},
		"window":   {"DUPLICATE_WINDOW": "soon"},
		"negative": {"DUPLICATE_WINDOW": "-1h"},
		"timezone": {"STORE_TIMEZONE": "Mars/Olympus"},
		"rate":     {"ORDER_RATE_PER_MINUTE": "fast"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := FromEnv(envMap(env))
			assert.Error(t, err)
		})
	}
}

func TestApplySecrets(t *testing.T) {
	cfg, err := FromEnv(envMap(map[string]string{"JWT_SECRET": "from-env"}))
	require.NoError(t, err)

	cfg.ApplySecrets(map[string]string{"JWT_SECRET": "from-sm", "MEDIA_API_SECRET": "media"})
	assert.Equal(t, "from-sm", cfg.JWTSecret)
	assert.Equal(t, "media", cfg.Media.APISecret)
	assert.Empty(t, cfg.Media.APIKey)
}
