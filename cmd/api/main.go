package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/imrishuroy/go-cod-storefront/internal/aws"
	"github.com/imrishuroy/go-cod-storefront/internal/catalog"
	"github.com/imrishuroy/go-cod-storefront/internal/checkout"
	"github.com/imrishuroy/go-cod-storefront/internal/config"
	orderevents "github.com/imrishuroy/go-cod-storefront/internal/events"
	"github.com/imrishuroy/go-cod-storefront/internal/guard"
	"github.com/imrishuroy/go-cod-storefront/internal/handlers"
	"github.com/imrishuroy/go-cod-storefront/internal/live"
	"github.com/imrishuroy/go-cod-storefront/internal/logging"
	"github.com/imrishuroy/go-cod-storefront/internal/media"
	"github.com/imrishuroy/go-cod-storefront/internal/orders"
	"github.com/imrishuroy/go-cod-storefront/internal/reviews"
	"github.com/imrishuroy/go-cod-storefront/internal/settings"
	"github.com/imrishuroy/go-cod-storefront/internal/shipping"
	"github.com/rs/zerolog"
)

func setupRouter(cfg config.Config, hc handlers.HandlerConfig, log zerolog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), logging.RequestLogger(log))

	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		log.Warn().Err(err).Msg("invalid TRUSTED_PROXIES, trusting none")
		_ = r.SetTrustedProxies(nil)
	}

	corsCfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Authorization", "Content-Type"},
		ExposeHeaders: []string{"Location", "Content-Disposition"},
		MaxAge:        12 * time.Hour,
	}
	if len(cfg.CORSOrigins) == 0 || (len(cfg.CORSOrigins) == 1 && cfg.CORSOrigins[0] == "*") {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.CORSOrigins
	}
	r.Use(cors.New(corsCfg))

	// health
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	handlers.Register(r, hc)

	return r
}

func newGuard(cfg config.Config, clients *aws.AWSClients) guard.Guard {
	if cfg.GuardBackend == config.GuardRedis {
		return guard.NewRedis(redis.NewClient(&redis.Options{Addr: cfg.RedisAddr}), cfg.DuplicateWindow)
	}
	return guard.NewStore(clients.DynamoDB, cfg.Tables.OrderGuards, cfg.DuplicateWindow)
}

func newPublisher(cfg config.Config, clients *aws.AWSClients) orderevents.Publisher {
	switch cfg.EventsBackend {
	case config.EventsKafka:
		return orderevents.NewKafkaPublisher(orderevents.NewKafkaWriter(cfg.KafkaBrokers, cfg.KafkaTopic))
	case config.EventsSQS:
		if cfg.QueueURL != "" {
			return orderevents.NewSQSPublisher(clients.SQS, cfg.QueueURL)
		}
	}
	return orderevents.Nop{}
}

func newUploader(cfg config.Config, clients *aws.AWSClients) media.Uploader {
	m := cfg.Media
	if m.Backend == config.MediaS3 {
		return media.NewS3(clients.S3, m.Bucket, m.Folder, m.CDNBase)
	}
	return media.NewSigned(m.UploadURL, m.DeleteURL, m.APIKey, m.APISecret, m.Folder)
}

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	log := logging.New(os.Stdout, "storefront-api", cfg.LogLevel)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	clients, err := aws.NewAWSClients(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init aws clients")
	}

	if cfg.SecretARN != "" {
		values, err := aws.LoadSecretJSON(ctx, clients.Secrets, cfg.SecretARN)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load secrets")
		}
		cfg.ApplySecrets(values)
	}
	if cfg.JWTSecret == "" {
		log.Warn().Msg("JWT_SECRET is empty, admin routes will reject every request")
	}

	catalogStore := catalog.NewStore(clients.DynamoDB, cfg.Tables.ProductTypes, cfg.Tables.Products)
	shippingStore := shipping.NewStore(clients.DynamoDB, cfg.Tables.ShippingRates)
	ordersStore := orders.NewStore(clients.DynamoDB, cfg.Tables.Orders)
	hub := live.NewHub(log)

	hc := handlers.HandlerConfig{
		Orders:   ordersStore,
		Catalog:  catalogStore,
		Shipping: shippingStore,
		Settings: settings.NewStore(clients.DynamoDB, cfg.Tables.Settings),
		Reviews:  reviews.NewStore(clients.DynamoDB, cfg.Tables.Reviews),
		Checkout: &checkout.Service{
			Products:  catalogStore,
			Rates:     shippingStore,
			Orders:    ordersStore,
			Guard:     newGuard(cfg, clients),
			Publisher: newPublisher(cfg, clients),
			Notifier:  hub,
			Log:       log,
		},
		Media:        newUploader(cfg, clients),
		Hub:          hub,
		JWTSecret:    cfg.JWTSecret,
		Location:     cfg.Location(),
		OrderLimiter: handlers.NewIPRateLimiter(cfg.OrderRatePerMinute, cfg.OrderRateBurst),
		Log:          log,
	}

	r := setupRouter(cfg, hc, log)

	// if environment variable RUN_LOCAL is set to "true", run local HTTP server for development.
	if cfg.RunLocal {
		log.Info().Str("addr", cfg.Addr).Msg("running local server")
		if err := r.Run(cfg.Addr); err != nil {
			log.Fatal().Err(err).Msg("failed to run local server")
		}
		return
	}

	// lambda adapter
	adapter := ginadapter.New(r)

	lambda.Start(func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		return adapter.ProxyWithContext(ctx, req)
	})
}
