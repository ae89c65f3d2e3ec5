package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/sqs"
	sqstypes "github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/imrishuroy/go-cod-storefront/internal/aws"
)

// SQSPublisher wraps an SQS client and a queue URL.
type SQSPublisher struct {
	SQS      aws.SQSAPI
	QueueURL string
}

// NewSQSPublisher returns a publisher bound to a queue URL.
func NewSQSPublisher(client aws.SQSAPI, queueURL string) *SQSPublisher {
	return &SQSPublisher{SQS: client, QueueURL: queueURL}
}

// Publish sends the event as the message body; event type and wilaya are
// copied into message attributes for subscription filters.
func (p *SQSPublisher) Publish(ctx context.Context, ev OrderEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	input := &sqs.SendMessageInput{
		QueueUrl:    &p.QueueURL,
		MessageBody: aws.String(string(body)),
		MessageAttributes: map[string]sqstypes.MessageAttributeValue{
			"event_type": {DataType: aws.String("String"), StringValue: aws.String(ev.Type)},
			"wilaya":     {DataType: aws.String("String"), StringValue: aws.String(ev.Wilaya)},
		},
	}
	if _, err := p.SQS.SendMessage(ctx, input); err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}
