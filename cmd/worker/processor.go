package main

import (
	"context"
	"encoding/json"

	"github.com/aws/aws-lambda-go/events"
	orderevents "github.com/imrishuroy/go-cod-storefront/internal/events"
	"github.com/rs/zerolog"
)

// Recorder stores per-order metrics.
type Recorder interface {
	RecordOrder(ctx context.Context, wilaya string, total int64) error
}

// Processor turns order.created messages into CloudWatch metrics.
type Processor struct {
	metrics Recorder
	log     zerolog.Logger
}

// NewProcessor creates a worker processor.
func NewProcessor(metrics Recorder, log zerolog.Logger) *Processor {
	return &Processor{metrics: metrics, log: log}
}

// Handle processes an SQS batch. Messages that cannot be decoded are logged
// and dropped since a retry cannot fix them; metric failures are reported
// back as batch item failures so only those messages are redelivered.
func (p *Processor) Handle(ctx context.Context, ev events.SQSEvent) (events.SQSEventResponse, error) {
	var resp events.SQSEventResponse
	for _, rec := range ev.Records {
		var msg orderevents.OrderEvent
		if err := json.Unmarshal([]byte(rec.Body), &msg); err != nil {
			p.log.Error().Err(err).Str("message_id", rec.MessageId).Msg("invalid message body")
			continue
		}
		if msg.Type != orderevents.TypeOrderCreated {
			p.log.Debug().Str("type", msg.Type).Str("message_id", rec.MessageId).Msg("skip event")
			continue
		}

		if err := p.metrics.RecordOrder(ctx, msg.Wilaya, msg.TotalPrice); err != nil {
			p.log.Warn().Err(err).Str("order_id", msg.OrderID).Msg("record order metrics")
			resp.BatchItemFailures = append(resp.BatchItemFailures, events.SQSBatchItemFailure{ItemIdentifier: rec.MessageId})
			continue
		}
		p.log.Info().Str("order_id", msg.OrderID).Str("wilaya", msg.Wilaya).Msg("order metrics recorded")
	}
	return resp, nil
}
