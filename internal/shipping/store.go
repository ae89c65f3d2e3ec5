package shipping

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/imrishuroy/go-cod-storefront/internal/aws"
)

var (
	ErrNotFound = errors.New("shipping rate not found")
	ErrExists   = errors.New("shipping rate already exists for wilaya")
)

// Store manages the shipping_rates table, one row per wilaya.
type Store struct {
	client    aws.DynamoDBAPI
	tableName string
	nowFunc   func() time.Time
}

func NewStore(client aws.DynamoDBAPI, tableName string) *Store {
	return &Store{client: client, tableName: tableName, nowFunc: time.Now}
}

// List returns every rate sorted by wilaya.
func (s *Store) List(ctx context.Context) ([]Rate, error) {
	items, err := aws.ScanAll(ctx, s.client, s.tableName)
	if err != nil {
		return nil, err
	}
	out := make([]Rate, 0, len(items))
	if err := attributevalue.UnmarshalListOfMaps(items, &out); err != nil {
		return nil, fmt.Errorf("unmarshal rates: %w", err)
	}
	for i := range out {
		out[i].derive()
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Wilaya < out[j].Wilaya })
	return out, nil
}

func (s *Store) Get(ctx context.Context, wilaya string) (Rate, error) {
	out, err := s.client.GetItem(ctx, &dyn.GetItemInput{
		TableName: &s.tableName,
		Key:       rateKey(wilaya),
	})
	if err != nil {
		return Rate{}, fmt.Errorf("get rate: %w", err)
	}
	if len(out.Item) == 0 {
		return Rate{}, ErrNotFound
	}
	var r Rate
	if err := attributevalue.UnmarshalMap(out.Item, &r); err != nil {
		return Rate{}, fmt.Errorf("unmarshal rate: %w", err)
	}
	r.derive()
	return r, nil
}

// Create adds a rate for a wilaya that has none yet.
func (s *Store) Create(ctx context.Context, r Rate) error {
	return s.put(ctx, r, "attribute_not_exists(wilaya)", ErrExists)
}

// Update replaces the rate of an existing wilaya.
func (s *Store) Update(ctx context.Context, wilaya string, r Rate) error {
	r.Wilaya = wilaya
	return s.put(ctx, r, "attribute_exists(wilaya)", ErrNotFound)
}

func (s *Store) Delete(ctx context.Context, wilaya string) error {
	out, err := s.client.DeleteItem(ctx, &dyn.DeleteItemInput{
		TableName:    &s.tableName,
		Key:          rateKey(wilaya),
		ReturnValues: types.ReturnValueAllOld,
	})
	if err != nil {
		return fmt.Errorf("delete rate: %w", err)
	}
	if len(out.Attributes) == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) put(ctx context.Context, r Rate, cond string, condErr error) error {
	r.UpdatedAt = s.nowFunc()
	item, err := attributevalue.MarshalMap(r)
	if err != nil {
		return fmt.Errorf("marshal rate: %w", err)
	}
	_, err = s.client.PutItem(ctx, &dyn.PutItemInput{
		TableName:           &s.tableName,
		Item:                item,
		ConditionExpression: aws.String(cond),
	})
	if err != nil {
		if aws.IsConditionFailed(err) {
			return condErr
		}
		return fmt.Errorf("put rate: %w", err)
	}
	return nil
}

func rateKey(wilaya string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"wilaya": &types.AttributeValueMemberS{Value: wilaya},
	}
}
