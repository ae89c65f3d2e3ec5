// Package reviews stores customer reviews, partitioned by product.
package reviews

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"github.com/imrishuroy/go-cod-storefront/internal/aws"
	"github.com/shopspring/decimal"
)

var ErrInvalidRating = errors.New("rating must be between 1 and 5")

// Review is one row of the reviews table. ReviewID starts with the creation
// time so the sort key orders reviews chronologically.
type Review struct {
	ProductID string    `dynamodbav:"product_id" json:"product_id"` // PK
	ReviewID  string    `dynamodbav:"review_id" json:"id"`          // SK
	Rating    int       `dynamodbav:"rating" json:"rating"`
	Name      string    `dynamodbav:"name,omitempty" json:"name,omitempty"`
	Comment   string    `dynamodbav:"comment,omitempty" json:"comment,omitempty"`
	CreatedAt time.Time `dynamodbav:"created_at" json:"created_at"`
}

// Summary aggregates the ratings of a product.
type Summary struct {
	Count   int     `json:"count"`
	Average float64 `json:"average"` // one decimal, 0 when there are no reviews
}

type Store struct {
	client    aws.DynamoDBAPI
	tableName string
	nowFunc   func() time.Time
	newID     func() string
}

func NewStore(client aws.DynamoDBAPI, tableName string) *Store {
	return &Store{client: client, tableName: tableName, nowFunc: time.Now, newID: uuid.NewString}
}

// Create appends a review to a product.
func (s *Store) Create(ctx context.Context, productID string, r Review) (Review, error) {
	if r.Rating < 1 || r.Rating > 5 {
		return Review{}, ErrInvalidRating
	}
	now := s.nowFunc().UTC()
	r.ProductID = productID
	r.CreatedAt = now
	r.ReviewID = now.Format("20060102T150405.000000000") + "#" + s.newID()

	item, err := attributevalue.MarshalMap(r)
	if err != nil {
		return Review{}, fmt.Errorf("marshal review: %w", err)
	}
	if _, err := s.client.PutItem(ctx, &dyn.PutItemInput{TableName: &s.tableName, Item: item}); err != nil {
		return Review{}, fmt.Errorf("put review: %w", err)
	}
	return r, nil
}

// List returns the reviews of a product, newest first.
func (s *Store) List(ctx context.Context, productID string) ([]Review, error) {
	forward := false
	p := dyn.NewQueryPaginator(s.client, &dyn.QueryInput{
		TableName:              &s.tableName,
		KeyConditionExpression: aws.String("product_id = :p"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":p": &types.AttributeValueMemberS{Value: productID},
		},
		ScanIndexForward: &forward,
	})

	out := []Review{}
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("query reviews: %w", err)
		}
		var batch []Review
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &batch); err != nil {
			return nil, fmt.Errorf("unmarshal reviews: %w", err)
		}
		out = append(out, batch...)
	}
	return out, nil
}

// Summarize computes the count and average rating of a set of reviews.
func Summarize(list []Review) Summary {
	if len(list) == 0 {
		return Summary{}
	}
	var sum int64
	for _, r := range list {
		sum += int64(r.Rating)
	}
	avg := decimal.NewFromInt(sum).Div(decimal.NewFromInt(int64(len(list)))).Round(1)
	return Summary{Count: len(list), Average: avg.InexactFloat64()}
}
