package main

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/imrishuroy/go-cod-storefront/internal/aws"
	"github.com/imrishuroy/go-cod-storefront/internal/aws/awstest"
	orderevents "github.com/imrishuroy/go-cod-storefront/internal/events"
	"github.com/imrishuroy/go-cod-storefront/internal/orders"
	"github.com/rs/zerolog"
)

func message(t *testing.T, id string, ev orderevents.OrderEvent) events.SQSMessage {
	t.Helper()
	b, err := json.Marshal(ev)
	if err != nil {
		t.Fatal(err)
	}
	return events.SQSMessage{MessageId: id, Body: string(b)}
}

func TestProcessor_RecordsMetrics(t *testing.T) {
	cw := &awstest.CloudWatch{}
	p := NewProcessor(aws.NewMetrics(cw, "Test/Orders"), zerolog.Nop())

	ev := orderevents.NewOrderCreated(orders.Order{OrderID: "o1", Wilaya: "Oran", TotalPrice: 6520, CreatedAt: time.Now()})
	resp, err := p.Handle(context.Background(), events.SQSEvent{Records: []events.SQSMessage{message(t, "m1", ev)}})
	if err != nil {
		t.Fatalf("Handle error: %v", err)
	}
	if len(resp.BatchItemFailures) != 0 {
		t.Fatalf("unexpected failures: %+v", resp.BatchItemFailures)
	}
	if len(cw.Puts) != 1 {
		t.Fatalf("expected one PutMetricData call, got %d", len(cw.Puts))
	}
	if *cw.Puts[0].Namespace != "Test/Orders" {
		t.Fatalf("unexpected namespace %s", *cw.Puts[0].Namespace)
	}
	if got := *cw.Puts[0].MetricData[1].Value; got != 6520 {
		t.Fatalf("unexpected revenue %v", got)
	}
}

func TestProcessor_SkipsBadAndForeignMessages(t *testing.T) {
	cw := &awstest.CloudWatch{}
	p := NewProcessor(aws.NewMetrics(cw, ""), zerolog.Nop())

	resp, err := p.Handle(context.Background(), events.SQSEvent{Records: []events.SQSMessage{
		{MessageId: "bad", Body: "{not json"},
		message(t, "other", orderevents.OrderEvent{Type: "order.deleted", OrderID: "o1"}),
	}})
	if err != nil {
		t.Fatalf("Handle error: %v", err)
	}
	if len(resp.BatchItemFailures) != 0 || len(cw.Puts) != 0 {
		t.Fatalf("expected nothing recorded or retried, got %+v / %d", resp.BatchItemFailures, len(cw.Puts))
	}
}

type flakyRecorder struct{ failFor string }

func (f flakyRecorder) RecordOrder(ctx context.Context, wilaya string, total int64) error {
	if wilaya == f.failFor {
		return errors.New("throttled")
	}
	return nil
}

func TestProcessor_PartialBatchFailure(t *testing.T) {
	p := NewProcessor(flakyRecorder{failFor: "Alger"}, zerolog.Nop())

	resp, err := p.Handle(context.Background(), events.SQSEvent{Records: []events.SQSMessage{
		message(t, "m1", orderevents.OrderEvent{Type: orderevents.TypeOrderCreated, Wilaya: "Oran"}),
		message(t, "m2", orderevents.OrderEvent{Type: orderevents.TypeOrderCreated, Wilaya: "Alger"}),
	}})
	if err != nil {
		t.Fatalf("Handle error: %v", err)
	}
	if len(resp.BatchItemFailures) != 1 || resp.BatchItemFailures[0].ItemIdentifier != "m2" {
		t.Fatalf("expected only m2 to be retried, got %+v", resp.BatchItemFailures)
	}
}
