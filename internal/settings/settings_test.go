package settings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/imrishuroy/go-cod-storefront/internal/aws/awstest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_GetDefaultsWhenMissing(t *testing.T) {
	db := awstest.NewDynamo()
	db.DefineTable("store_settings", "settings_id", "")
	s := NewStore(db, "store_settings")

	got, err := s.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Defaults(), got)
	assert.Equal(t, 0, db.Len("store_settings"))
}

func TestStore_PutIsSingleton(t *testing.T) {
	db := awstest.NewDynamo()
	db.DefineTable("store_settings", "settings_id", "")
	s := NewStore(db, "store_settings")
	now := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	s.nowFunc = func() time.Time { return now }
	ctx := context.Background()

	_, err := s.Put(ctx, Settings{Name: "First", Phone: "0555123456"})
	require.NoError(t, err)
	_, err = s.Put(ctx, Settings{
		SettingsID:      "other",
		Name:            "Second",
		HeroImages:      []string{"https://cdn/h.jpg"},
		Socials:         Socials{Instagram: "https://instagram.com/shop"},
		FacebookPixelID: "123456789012345",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, db.Len("store_settings"))

	got, err := s.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Second", got.Name)
	assert.Empty(t, got.Phone, "put replaces the whole row")
	assert.Equal(t, "https://instagram.com/shop", got.Socials.Instagram)
	assert.Equal(t, "123456789012345", got.FacebookPixelID)
	assert.True(t, got.UpdatedAt.Equal(now))
}

func TestStore_GetError(t *testing.T) {
	db := awstest.NewDynamo()
	db.DefineTable("store_settings", "settings_id", "")
	db.Errs["GetItem"] = errors.New("boom")
	_, err := NewStore(db, "store_settings").Get(context.Background())
	assert.Error(t, err)
}
