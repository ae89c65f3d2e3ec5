package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // STORE_TIMEZONE must resolve on minimal images

	"github.com/joho/godotenv"
)

// Backend names accepted by the *_BACKEND variables.
const (
	GuardDynamoDB = "dynamodb"
	GuardRedis    = "redis"

	EventsSQS   = "sqs"
	EventsKafka = "kafka"
	EventsNone  = "none"

	MediaSigned = "signed"
	MediaS3     = "s3"
)

// Tables names every DynamoDB table the service touches.
type Tables struct {
	Orders        string
	OrderGuards   string
	Products      string
	ProductTypes  string
	Reviews       string
	ShippingRates string
	Settings      string
}

// Media configures the image upload backend.
type Media struct {
	Backend   string
	UploadURL string // signed backend: upload endpoint
	DeleteURL string // signed backend: destroy endpoint
	APIKey    string
	APISecret string
	Folder    string
	Bucket    string // s3 backend
	CDNBase   string // s3 backend: public URL prefix
}

// Config is the full runtime configuration, read from the environment.
type Config struct {
	RunLocal bool
	Addr     string
	LogLevel string
	Timezone string

	Tables Tables

	GuardBackend    string
	RedisAddr       string
	DuplicateWindow time.Duration

	EventsBackend    string
	QueueURL         string
	KafkaBrokers     []string
	KafkaTopic       string
	MetricsNamespace string

	Media Media

	JWTSecret      string
	SecretARN      string
	CORSOrigins    []string
	TrustedProxies []string

	// OrderRatePerMinute limits order submissions per client IP; 0 disables.
	OrderRatePerMinute float64
	OrderRateBurst     int
}

// Load reads .env (when present) and then the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function.
func FromEnv(getenv func(string) string) (Config, error) {
	get := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}

	cfg := Config{
		RunLocal: get("RUN_LOCAL", "false") == "true",
		Addr:     get("ADDR", ":8080"),
		LogLevel: get("LOG_LEVEL", "info"),
		Timezone: get("STORE_TIMEZONE", "Africa/Algiers"),
		Tables: Tables{
			Orders:        get("ORDERS_TABLE", "orders"),
			OrderGuards:   get("ORDER_GUARDS_TABLE", "order_guards"),
			Products:      get("PRODUCTS_TABLE", "products"),
			ProductTypes:  get("PRODUCT_TYPES_TABLE", "product_types"),
			Reviews:       get("REVIEWS_TABLE", "reviews"),
			ShippingRates: get("SHIPPING_RATES_TABLE", "shipping_rates"),
			Settings:      get("STORE_SETTINGS_TABLE", "store_settings"),
		},
		GuardBackend:     get("GUARD_BACKEND", GuardDynamoDB),
		RedisAddr:        get("REDIS_ADDR", "localhost:6379"),
		EventsBackend:    get("EVENTS_BACKEND", EventsSQS),
		QueueURL:         get("ORDERS_QUEUE_URL", ""),
		KafkaBrokers:     splitList(get("KAFKA_BROKERS", "localhost:9092")),
		KafkaTopic:       get("KAFKA_TOPIC", "orders"),
		MetricsNamespace: get("METRIC_NAMESPACE", "Storefront/Orders"),
		Media: Media{
			Backend:   get("MEDIA_BACKEND", MediaSigned),
			UploadURL: get("MEDIA_UPLOAD_URL", ""),
			DeleteURL: get("MEDIA_DELETE_URL", ""),
			APIKey:    get("MEDIA_API_KEY", ""),
			APISecret: get("MEDIA_API_SECRET", ""),
			Folder:    get("MEDIA_FOLDER", "storefront"),
			Bucket:    get("MEDIA_BUCKET", ""),
			CDNBase:   get("ASSETS_CDN_BASE_URL", ""),
		},
		JWTSecret:      get("JWT_SECRET", ""),
		SecretARN:      get("SECRET_ARN", ""),
		CORSOrigins:    splitList(get("CORS_ORIGINS", "*")),
		TrustedProxies: splitList(get("TRUSTED_PROXIES", "")),
		OrderRateBurst: 3,
	}

	var err error
	if cfg.DuplicateWindow, err = time.ParseDuration(get("DUPLICATE_WINDOW", "24h")); err != nil {
		return cfg, fmt.Errorf("DUPLICATE_WINDOW: %w", err)
	}
	if cfg.OrderRatePerMinute, err = strconv.ParseFloat(get("ORDER_RATE_PER_MINUTE", "6"), 64); err != nil {
		return cfg, fmt.Errorf("ORDER_RATE_PER_MINUTE: %w", err)
	}
	if v := getenv("ORDER_RATE_BURST"); v != "" {
		if cfg.OrderRateBurst, err = strconv.Atoi(v); err != nil {
			return cfg, fmt.Errorf("ORDER_RATE_BURST: %w", err)
		}
	}

	return cfg, cfg.Validate()
}

// Validate checks enumerated settings and cross-field requirements.
func (c Config) Validate() error {
	var errs []error
	if c.GuardBackend != GuardDynamoDB && c.GuardBackend != GuardRedis {
		errs = append(errs, fmt.Errorf("GUARD_BACKEND must be %q or %q, got %q", GuardDynamoDB, GuardRedis, c.GuardBackend))
	}
	switch c.EventsBackend {
	case EventsSQS, EventsKafka, EventsNone:
	default:
		errs = append(errs, fmt.Errorf("EVENTS_BACKEND must be sqs, kafka or none, got %q", c.EventsBackend))
	}
	switch c.Media.Backend {
	case MediaSigned, MediaS3:
	default:
		errs = append(errs, fmt.Errorf("MEDIA_BACKEND must be signed or s3, got %q", c.Media.Backend))
	}
	if c.DuplicateWindow <= 0 {
		errs = append(errs, errors.New("DUPLICATE_WINDOW must be positive"))
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("STORE_TIMEZONE: %w", err))
	}
	return errors.Join(errs...)
}

// ApplySecrets overrides secret fields with values fetched from Secrets Manager.
func (c *Config) ApplySecrets(values map[string]string) {
	if v := values["JWT_SECRET"]; v != "" {
		c.JWTSecret = v
	}
	if v := values["MEDIA_API_KEY"]; v != "" {
		c.Media.APIKey = v
	}
	if v := values["MEDIA_API_SECRET"]; v != "" {
		c.Media.APISecret = v
	}
}

// Location returns the store timezone, UTC if it cannot be loaded.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
