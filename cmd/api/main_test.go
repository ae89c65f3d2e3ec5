package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/imrishuroy/go-cod-storefront/internal/aws"
	"github.com/imrishuroy/go-cod-storefront/internal/aws/awstest"
	"github.com/imrishuroy/go-cod-storefront/internal/config"
	orderevents "github.com/imrishuroy/go-cod-storefront/internal/events"
	"github.com/imrishuroy/go-cod-storefront/internal/guard"
	"github.com/imrishuroy/go-cod-storefront/internal/handlers"
	"github.com/imrishuroy/go-cod-storefront/internal/media"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T, env map[string]string) config.Config {
	t.Helper()
	cfg, err := config.FromEnv(func(k string) string { return env[k] })
	require.NoError(t, err)
	return cfg
}

func TestHealthAndCORS(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := testConfig(t, map[string]string{"CORS_ORIGINS": "https://shop.example"})
	r := setupRouter(cfg, handlers.HandlerConfig{Log: zerolog.Nop()}, zerolog.Nop())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/orders", nil)
	req.Header.Set("Origin", "https://shop.example")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "https://shop.example", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestBackendSelection(t *testing.T) {
	clients := &aws.AWSClients{
		DynamoDB: awstest.NewDynamo(),
		SQS:      &awstest.SQS{},
		S3:       awstest.NewS3(),
	}

	cfg := testConfig(t, nil)
	assert.IsType(t, &guard.Store{}, newGuard(cfg, clients))
	assert.IsType(t, orderevents.Nop{}, newPublisher(cfg, clients), "sqs without a queue url publishes nothing")
	assert.IsType(t, &media.Signed{}, newUploader(cfg, clients))

	cfg = testConfig(t, map[string]string{
		"GUARD_BACKEND":    "redis",
		"EVENTS_BACKEND":   "sqs",
		"ORDERS_QUEUE_URL": "https://sqs/orders",
		"MEDIA_BACKEND":    "s3",
	})
	assert.IsType(t, &guard.Redis{}, newGuard(cfg, clients))
	assert.IsType(t, &orderevents.SQSPublisher{}, newPublisher(cfg, clients))
	assert.IsType(t, &media.S3{}, newUploader(cfg, clients))

	cfg = testConfig(t, map[string]string{"EVENTS_BACKEND": "kafka"})
	assert.IsType(t, &orderevents.KafkaPublisher{}, newPublisher(cfg, clients))
}
