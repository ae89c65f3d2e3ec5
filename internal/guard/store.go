package guard

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/imrishuroy/go-cod-storefront/internal/aws"
)

// Store keeps guards in DynamoDB. Expired rows are removed by the table TTL,
// but TTL deletion lags, so Claim also treats a past expires_at as free.
type Store struct {
	client    aws.DynamoDBAPI
	tableName string
	window    time.Duration
	nowFunc   func() time.Time
}

// NewStore returns a configured Store. window <= 0 uses DefaultWindow.
func NewStore(client aws.DynamoDBAPI, tableName string, window time.Duration) *Store {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Store{
		client:    client,
		tableName: tableName,
		window:    window,
		nowFunc:   time.Now,
	}
}

func (s *Store) Claim(ctx context.Context, key, orderID string) (bool, error) {
	now := s.nowFunc()
	rec := Record{
		GuardKey:  key,
		OrderID:   orderID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.window).Unix(),
	}

	item, err := attributevalue.MarshalMap(rec)
	if err != nil {
		return false, fmt.Errorf("marshal guard: %w", err)
	}

	_, err = s.client.PutItem(ctx, &dyn.PutItemInput{
		TableName:           &s.tableName,
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(guard_key) OR expires_at < :now"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":now": &types.AttributeValueMemberN{Value: strconv.FormatInt(now.Unix(), 10)},
		},
	})
	if err != nil {
		if aws.IsConditionFailed(err) {
			return false, nil
		}
		return false, fmt.Errorf("put guard: %w", err)
	}
	return true, nil
}

func (s *Store) Release(ctx context.Context, key string) error {
	_, err := s.client.DeleteItem(ctx, &dyn.DeleteItemInput{
		TableName: &s.tableName,
		Key: map[string]types.AttributeValue{
			"guard_key": &types.AttributeValueMemberS{Value: key},
		},
	})
	if err != nil {
		return fmt.Errorf("delete guard: %w", err)
	}
	return nil
}

// Get returns the stored record for key, or nil when there is none.
func (s *Store) Get(ctx context.Context, key string) (*Record, error) {
	out, err := s.client.GetItem(ctx, &dyn.GetItemInput{
		TableName: &s.tableName,
		Key: map[string]types.AttributeValue{
			"guard_key": &types.AttributeValueMemberS{Value: key},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("get guard: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, nil
	}
	var rec Record
	if err := attributevalue.UnmarshalMap(out.Item, &rec); err != nil {
		return nil, fmt.Errorf("unmarshal guard: %w", err)
	}
	return &rec, nil
}
