package main

import (
	"context"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/imrishuroy/go-cod-storefront/internal/aws"
	"github.com/imrishuroy/go-cod-storefront/internal/config"
	"github.com/imrishuroy/go-cod-storefront/internal/logging"
)

func main() {
	cfg, err := config.Load()
	log := logging.New(os.Stdout, "order-worker", cfg.LogLevel)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	clients, err := aws.NewAWSClients(context.Background())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init aws clients")
	}
	p := NewProcessor(aws.NewMetrics(clients.CloudWatch, cfg.MetricsNamespace), log)

	// RUN_LOCAL=true feeds a single message from LOCAL_SQS_BODY through the handler.
	if cfg.RunLocal {
		body := os.Getenv("LOCAL_SQS_BODY")
		if body == "" {
			body = `{"type":"order.created","order_id":"local-order-1","wilaya":"Alger","total_price":1000}`
		}
		resp, err := p.Handle(context.Background(), events.SQSEvent{
			Records: []events.SQSMessage{{MessageId: "local-1", Body: body}},
		})
		if err != nil || len(resp.BatchItemFailures) > 0 {
			log.Fatal().Err(err).Int("failures", len(resp.BatchItemFailures)).Msg("local handler error")
		}
		return
	}

	lambda.Start(p.Handle)
}
