// Package settings stores the single storefront configuration row.
package settings

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/imrishuroy/go-cod-storefront/internal/aws"
)

// RowID is the fixed key of the settings row.
const RowID = "default"

// Socials holds social profile links.
type Socials struct {
	Facebook  string `dynamodbav:"facebook,omitempty" json:"facebook,omitempty"`
	Instagram string `dynamodbav:"instagram,omitempty" json:"instagram,omitempty"`
	TikTok    string `dynamodbav:"tiktok,omitempty" json:"tiktok,omitempty"`
}

// Settings is the storefront configuration.
type Settings struct {
	SettingsID      string    `dynamodbav:"settings_id" json:"-"` // PK, always RowID
	Name            string    `dynamodbav:"name" json:"name"`
	Logo            string    `dynamodbav:"logo,omitempty" json:"logo"`
	HeroImages      []string  `dynamodbav:"hero_images,omitempty" json:"hero_images"`
	Socials         Socials   `dynamodbav:"socials" json:"socials"`
	Phone           string    `dynamodbav:"phone,omitempty" json:"phone"`
	FacebookPixelID string    `dynamodbav:"facebook_pixel_id,omitempty" json:"facebook_pixel_id"`
	UpdatedAt       time.Time `dynamodbav:"updated_at" json:"updated_at"`
}

// Defaults is served until an admin saves the settings.
func Defaults() Settings {
	return Settings{
		SettingsID: RowID,
		Name:       "My Store",
		HeroImages: []string{},
	}
}

type Store struct {
	client    aws.DynamoDBAPI
	tableName string
	nowFunc   func() time.Time
}

func NewStore(client aws.DynamoDBAPI, tableName string) *Store {
	return &Store{client: client, tableName: tableName, nowFunc: time.Now}
}

// Get returns the settings row, or Defaults when it was never written.
func (s *Store) Get(ctx context.Context) (Settings, error) {
	out, err := s.client.GetItem(ctx, &dyn.GetItemInput{
		TableName: &s.tableName,
		Key: map[string]types.AttributeValue{
			"settings_id": &types.AttributeValueMemberS{Value: RowID},
		},
	})
	if err != nil {
		return Settings{}, fmt.Errorf("get settings: %w", err)
	}
	if len(out.Item) == 0 {
		return Defaults(), nil
	}
	var st Settings
	if err := attributevalue.UnmarshalMap(out.Item, &st); err != nil {
		return Settings{}, fmt.Errorf("unmarshal settings: %w", err)
	}
	if st.HeroImages == nil {
		st.HeroImages = []string{}
	}
	return st, nil
}

// Put replaces the whole row.
func (s *Store) Put(ctx context.Context, st Settings) (Settings, error) {
	st.SettingsID = RowID
	st.UpdatedAt = s.nowFunc()
	item, err := attributevalue.MarshalMap(st)
	if err != nil {
		return Settings{}, fmt.Errorf("marshal settings: %w", err)
	}
	if _, err := s.client.PutItem(ctx, &dyn.PutItemInput{TableName: &s.tableName, Item: item}); err != nil {
		return Settings{}, fmt.Errorf("put settings: %w", err)
	}
	if st.HeroImages == nil {
		st.HeroImages = []string{}
	}
	return st, nil
}
