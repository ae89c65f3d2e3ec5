package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/imrishuroy/go-cod-storefront/internal/aws/awstest"
	"github.com/imrishuroy/go-cod-storefront/internal/orders"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEvent() OrderEvent {
	return NewOrderCreated(orders.Order{
		OrderID:     "o1",
		ProductID:   "p1",
		ProductName: "Dress",
		Wilaya:      "Oran",
		Quantity:    2,
		TotalPrice:  6400,
		CreatedAt:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	})
}

func TestSQSPublisher(t *testing.T) {
	q := &awstest.SQS{}
	p := NewSQSPublisher(q, "https://sqs/orders")

	require.NoError(t, p.Publish(context.Background(), sampleEvent()))
	require.Len(t, q.Sent, 1)

	in := q.Sent[0]
	assert.Equal(t, "https://sqs/orders", *in.QueueUrl)
	assert.Equal(t, "Oran", *in.MessageAttributes["wilaya"].StringValue)

	var got OrderEvent
	require.NoError(t, json.Unmarshal([]byte(*in.MessageBody), &got))
	assert.Equal(t, TypeOrderCreated, got.Type)
	assert.Equal(t, int64(6400), got.TotalPrice)
}

func TestSQSPublisher_Error(t *testing.T) {
	q := &awstest.SQS{Err: errors.New("denied")}
	assert.Error(t, NewSQSPublisher(q, "u").Publish(context.Background(), sampleEvent()))
}

type fakeWriter struct {
	msgs []kafka.Message
	err  error
}

func (f *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func TestKafkaPublisher(t *testing.T) {
	w := &fakeWriter{}
	require.NoError(t, NewKafkaPublisher(w).Publish(context.Background(), sampleEvent()))
	require.Len(t, w.msgs, 1)
	assert.Equal(t, "order-o1", string(w.msgs[0].Key))

	var got OrderEvent
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &got))
	assert.Equal(t, "o1", got.OrderID)

	w.err = errors.New("no brokers")
	assert.Error(t, NewKafkaPublisher(w).Publish(context.Background(), sampleEvent()))
}

func TestNop(t *testing.T) {
	assert.NoError(t, Nop{}.Publish(context.Background(), sampleEvent()))
}
