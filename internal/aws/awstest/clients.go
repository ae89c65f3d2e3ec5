package awstest

import (
	"context"
	"io"
	"sync"

	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

// SQS records every message sent.
type SQS struct {
	mu   sync.Mutex
	Sent []*sqs.SendMessageInput
	Err  error
}

func (q *SQS) SendMessage(ctx context.Context, in *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.Err != nil {
		return nil, q.Err
	}
	q.Sent = append(q.Sent, in)
	id := "msg-1"
	return &sqs.SendMessageOutput{MessageId: &id}, nil
}

// CloudWatch records every PutMetricData call.
type CloudWatch struct {
	mu   sync.Mutex
	Puts []*cloudwatch.PutMetricDataInput
	Err  error
}

func (c *CloudWatch) PutMetricData(ctx context.Context, in *cloudwatch.PutMetricDataInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return nil, c.Err
	}
	c.Puts = append(c.Puts, in)
	return &cloudwatch.PutMetricDataOutput{}, nil
}

// S3 keeps uploaded objects in memory, keyed by object key.
type S3 struct {
	mu      sync.Mutex
	Objects map[string][]byte
	Err     error
}

func NewS3() *S3 { return &S3{Objects: map[string][]byte{}} }

func (s *S3) PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	b, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	s.Objects[*in.Key] = b
	return &s3.PutObjectOutput{}, nil
}

func (s *S3) DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	delete(s.Objects, *in.Key)
	return &s3.DeleteObjectOutput{}, nil
}

// Secrets serves fixed secret strings by id.
type Secrets struct {
	Values map[string]string
	Err    error
}

func (s *Secrets) GetSecretValue(ctx context.Context, in *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	v, ok := s.Values[*in.SecretId]
	if !ok {
		return &secretsmanager.GetSecretValueOutput{}, nil
	}
	return &secretsmanager.GetSecretValueOutput{SecretString: &v}, nil
}
