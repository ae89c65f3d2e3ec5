package shipping

import (
	"context"
	"errors"
	"testing"

	"github.com/imrishuroy/go-cod-storefront/internal/aws/awstest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore() (*Store, *awstest.Dynamo) {
	db := awstest.NewDynamo()
	db.DefineTable("shipping_rates", "wilaya", "")
	return NewStore(db, "shipping_rates"), db
}

func TestStore_CreateListDerivesHomePrice(t *testing.T) {
	s, _ := newTestStore()
	ctx := context.Background()

	require.NoError(t, s.Create(ctx, Rate{Wilaya: "Oran", BasePrice: 400, Communes: []string{"Bir El Djir"}}))
	require.NoError(t, s.Create(ctx, Rate{Wilaya: "Alger", BasePrice: 555}))

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Alger", list[0].Wilaya)
	assert.Equal(t, int64(722), list[0].HomePrice)
	assert.Equal(t, []string{}, list[0].Communes)
	assert.Equal(t, int64(520), list[1].HomePrice)

	got, err := s.Get(ctx, "Oran")
	require.NoError(t, err)
	assert.Equal(t, int64(520), got.HomePrice)
	assert.True(t, got.HasCommune("Bir El Djir"))
	assert.False(t, got.HasCommune("Es Senia"))
}

func TestStore_CreateDuplicate(t *testing.T) {
	s, db := newTestStore()
	ctx := context.Background()
	require.NoError(t, s.Create(ctx, Rate{Wilaya: "Oran", BasePrice: 400}))
	assert.ErrorIs(t, s.Create(ctx, Rate{Wilaya: "Oran", BasePrice: 500}), ErrExists)

	got, _ := s.Get(ctx, "Oran")
	assert.Equal(t, int64(400), got.BasePrice)
	assert.Equal(t, 1, db.Len("shipping_rates"))
}

func TestStore_UpdateDelete(t *testing.T) {
	s, _ := newTestStore()
	ctx := context.Background()
	require.NoError(t, s.Create(ctx, Rate{Wilaya: "Oran", BasePrice: 400}))

	require.NoError(t, s.Update(ctx, "Oran", Rate{BasePrice: 450}))
	got, _ := s.Get(ctx, "Oran")
	assert.Equal(t, int64(450), got.BasePrice)
	assert.Equal(t, int64(585), got.HomePrice)

	assert.ErrorIs(t, s.Update(ctx, "Blida", Rate{BasePrice: 1}), ErrNotFound)

	require.NoError(t, s.Delete(ctx, "Oran"))
	assert.ErrorIs(t, s.Delete(ctx, "Oran"), ErrNotFound)
	_, err := s.Get(ctx, "Oran")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRate_HasCommuneEmptyList(t *testing.T) {
	assert.True(t, Rate{}.HasCommune("anything"))
}

func TestStore_ScanError(t *testing.T) {
	s, db := newTestStore()
	db.Errs["Scan"] = errors.New("boom")
	_, err := s.List(context.Background())
	assert.Error(t, err)
}
