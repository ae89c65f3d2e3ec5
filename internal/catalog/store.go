package catalog

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"github.com/imrishuroy/go-cod-storefront/internal/aws"
)

var (
	ErrNotFound    = errors.New("not found")
	ErrUnknownType = errors.New("unknown product type")
)

// Store reads and writes the product_types and products tables.
type Store struct {
	client        aws.DynamoDBAPI
	typesTable    string
	productsTable string
	nowFunc       func() time.Time
	newID         func() string
}

// NewStore creates a catalog Store.
func NewStore(client aws.DynamoDBAPI, typesTable, productsTable string) *Store {
	return &Store{
		client:        client,
		typesTable:    typesTable,
		productsTable: productsTable,
		nowFunc:       time.Now,
		newID:         uuid.NewString,
	}
}

// ListTypes returns every product type sorted by name, with product counts.
func (s *Store) ListTypes(ctx context.Context) ([]ProductType, error) {
	list, err := s.scanTypes(ctx)
	if err != nil {
		return nil, err
	}
	products, err := s.scanProducts(ctx)
	if err != nil {
		return nil, err
	}
	counts := map[string]int{}
	for _, p := range products {
		counts[p.TypeID]++
	}
	for i := range list {
		list[i].ProductCount = counts[list[i].TypeID]
	}
	sort.Slice(list, func(i, j int) bool {
		return strings.ToLower(list[i].Name) < strings.ToLower(list[j].Name)
	})
	return list, nil
}

// GetType fetches one product type with its product count.
func (s *Store) GetType(ctx context.Context, id string) (ProductType, error) {
	var t ProductType
	if err := s.get(ctx, s.typesTable, "type_id", id, &t); err != nil {
		return ProductType{}, err
	}
	products, err := s.scanProducts(ctx)
	if err != nil {
		return ProductType{}, err
	}
	for _, p := range products {
		if p.TypeID == id {
			t.ProductCount++
		}
	}
	return t, nil
}

// CreateType stores a new product type under a generated id.
func (s *Store) CreateType(ctx context.Context, t ProductType) (ProductType, error) {
	t.TypeID = s.newID()
	t.ProductCount = 0
	if err := s.put(ctx, s.typesTable, t, "attribute_not_exists(type_id)"); err != nil {
		return ProductType{}, err
	}
	return t, nil
}

// UpdateType replaces an existing product type.
func (s *Store) UpdateType(ctx context.Context, id string, t ProductType) (ProductType, error) {
	t.TypeID = id
	if err := s.put(ctx, s.typesTable, t, "attribute_exists(type_id)"); err != nil {
		return ProductType{}, err
	}
	return t, nil
}

// DeleteType removes a product type. Its products are left in place.
func (s *Store) DeleteType(ctx context.Context, id string) error {
	return s.delete(ctx, s.typesTable, "type_id", id)
}

// ListProducts returns the products matching f, newest first.
func (s *Store) ListProducts(ctx context.Context, f ProductFilter) ([]Product, error) {
	all, err := s.scanProducts(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Product, 0, len(all))
	for _, p := range all {
		if f.Match(p) {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// GetProduct fetches one product.
func (s *Store) GetProduct(ctx context.Context, id string) (Product, error) {
	var p Product
	if err := s.get(ctx, s.productsTable, "product_id", id, &p); err != nil {
		return Product{}, err
	}
	return p, nil
}

// CreateProduct stores a new product. Its type must exist.
func (s *Store) CreateProduct(ctx context.Context, p Product) (Product, error) {
	if err := s.requireType(ctx, p.TypeID); err != nil {
		return Product{}, err
	}
	now := s.nowFunc()
	p.ProductID = s.newID()
	p.CreatedAt = now
	p.UpdatedAt = now
	if err := s.put(ctx, s.productsTable, p, "attribute_not_exists(product_id)"); err != nil {
		return Product{}, err
	}
	return p, nil
}

// UpdateProduct replaces an existing product, keeping its created_at.
func (s *Store) UpdateProduct(ctx context.Context, id string, p Product) (Product, error) {
	current, err := s.GetProduct(ctx, id)
	if err != nil {
		return Product{}, err
	}
	if p.TypeID != current.TypeID {
		if err := s.requireType(ctx, p.TypeID); err != nil {
			return Product{}, err
		}
	}
	p.ProductID = id
	p.CreatedAt = current.CreatedAt
	p.UpdatedAt = s.nowFunc()
	if err := s.put(ctx, s.productsTable, p, "attribute_exists(product_id)"); err != nil {
		return Product{}, err
	}
	return p, nil
}

// DeleteProduct removes a product. Orders keep their copied name and price.
func (s *Store) DeleteProduct(ctx context.Context, id string) error {
	return s.delete(ctx, s.productsTable, "product_id", id)
}

// TypeIndex returns product id -> type id and type id -> type name maps,
// used to resolve an order's product type.
func (s *Store) TypeIndex(ctx context.Context) (productType, typeName map[string]string, err error) {
	list, err := s.scanTypes(ctx)
	if err != nil {
		return nil, nil, err
	}
	products, err := s.scanProducts(ctx)
	if err != nil {
		return nil, nil, err
	}
	typeName = make(map[string]string, len(list))
	for _, t := range list {
		typeName[t.TypeID] = t.Name
	}
	productType = make(map[string]string, len(products))
	for _, p := range products {
		productType[p.ProductID] = p.TypeID
	}
	return productType, typeName, nil
}

func (s *Store) requireType(ctx context.Context, typeID string) error {
	var t ProductType
	err := s.get(ctx, s.typesTable, "type_id", typeID, &t)
	if errors.Is(err, ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrUnknownType, typeID)
	}
	return err
}

func (s *Store) scanTypes(ctx context.Context) ([]ProductType, error) {
	items, err := aws.ScanAll(ctx, s.client, s.typesTable)
	if err != nil {
		return nil, err
	}
	out := make([]ProductType, 0, len(items))
	if err := attributevalue.UnmarshalListOfMaps(items, &out); err != nil {
		return nil, fmt.Errorf("unmarshal product types: %w", err)
	}
	return out, nil
}

func (s *Store) scanProducts(ctx context.Context) ([]Product, error) {
	items, err := aws.ScanAll(ctx, s.client, s.productsTable)
	if err != nil {
		return nil, err
	}
	out := make([]Product, 0, len(items))
	if err := attributevalue.UnmarshalListOfMaps(items, &out); err != nil {
		return nil, fmt.Errorf("unmarshal products: %w", err)
	}
	return out, nil
}

func (s *Store) get(ctx context.Context, table, keyName, id string, out interface{}) error {
	res, err := s.client.GetItem(ctx, &dyn.GetItemInput{
		TableName: &table,
		Key:       map[string]types.AttributeValue{keyName: &types.AttributeValueMemberS{Value: id}},
	})
	if err != nil {
		return fmt.Errorf("get %s: %w", table, err)
	}
	if len(res.Item) == 0 {
		return ErrNotFound
	}
	if err := attributevalue.UnmarshalMap(res.Item, out); err != nil {
		return fmt.Errorf("unmarshal %s: %w", table, err)
	}
	return nil
}

func (s *Store) put(ctx context.Context, table string, v interface{}, cond string) error {
	item, err := attributevalue.MarshalMap(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", table, err)
	}
	_, err = s.client.PutItem(ctx, &dyn.PutItemInput{
		TableName:           &table,
		Item:                item,
		ConditionExpression: aws.String(cond),
	})
	if err != nil {
		if aws.IsConditionFailed(err) {
			return ErrNotFound
		}
		return fmt.Errorf("put %s: %w", table, err)
	}
	return nil
}

func (s *Store) delete(ctx context.Context, table, keyName, id string) error {
	out, err := s.client.DeleteItem(ctx, &dyn.DeleteItemInput{
		TableName:    &table,
		Key:          map[string]types.AttributeValue{keyName: &types.AttributeValueMemberS{Value: id}},
		ReturnValues: types.ReturnValueAllOld,
	})
	if err != nil {
		return fmt.Errorf("delete %s: %w", table, err)
	}
	if len(out.Attributes) == 0 {
		return ErrNotFound
	}
	return nil
}
