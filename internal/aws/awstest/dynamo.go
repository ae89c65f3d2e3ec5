// Package awstest holds in-memory fakes of the AWS client interfaces for unit tests.
package awstest

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type table struct {
	pk, sk string
	items  map[string]map[string]types.AttributeValue
}

// Dynamo is a small in-memory DynamoDB. It understands the handful of
// condition and update expressions used by the stores in this repo:
// attribute_exists / attribute_not_exists, "<", "=", OR, and plain SET lists.
type Dynamo struct {
	mu     sync.Mutex
	tables map[string]*table

	// Errs forces the named operation ("PutItem", "Scan", ...) to fail.
	Errs  map[string]error
	Calls map[string]int
}

// NewDynamo returns an empty fake.
func NewDynamo() *Dynamo {
	return &Dynamo{
		tables: map[string]*table{},
		Errs:   map[string]error{},
		Calls:  map[string]int{},
	}
}

// DefineTable registers a table with its partition key and optional sort key.
func (d *Dynamo) DefineTable(name, pk, sk string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.tables[name] = &table{pk: pk, sk: sk, items: map[string]map[string]types.AttributeValue{}}
}

// Items returns a copy of every item stored in a table.
func (d *Dynamo) Items(name string) []map[string]types.AttributeValue {
	d.mu.Lock()
	defer d.mu.Unlock()
	t, ok := d.tables[name]
	if !ok {
		return nil
	}
	return t.sorted()
}

// Len returns the number of items in a table.
func (d *Dynamo) Len(name string) int {
	return len(d.Items(name))
}

func (d *Dynamo) begin(op, name string) (*table, error) {
	d.Calls[op]++
	if err := d.Errs[op]; err != nil {
		return nil, err
	}
	t, ok := d.tables[name]
	if !ok {
		return nil, &types.ResourceNotFoundException{Message: strPtr("table " + name + " not found")}
	}
	return t, nil
}

func (t *table) keyOf(item map[string]types.AttributeValue) (string, error) {
	pk, ok := item[t.pk]
	if !ok {
		return "", fmt.Errorf("missing key attribute %s", t.pk)
	}
	k := scalar(pk)
	if t.sk != "" {
		sk, ok := item[t.sk]
		if !ok {
			return "", fmt.Errorf("missing key attribute %s", t.sk)
		}
		k += "\x00" + scalar(sk)
	}
	return k, nil
}

func (t *table) sorted() []map[string]types.AttributeValue {
	keys := make([]string, 0, len(t.items))
	for k := range t.items {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]map[string]types.AttributeValue, 0, len(keys))
	for _, k := range keys {
		out = append(out, clone(t.items[k]))
	}
	return out
}

func (d *Dynamo) PutItem(ctx context.Context, in *dyn.PutItemInput, optFns ...func(*dyn.Options)) (*dyn.PutItemOutput, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	t, err := d.begin("PutItem", *in.TableName)
	if err != nil {
		return nil, err
	}
	k, err := t.keyOf(in.Item)
	if err != nil {
		return nil, err
	}
	if in.ConditionExpression != nil {
		ok, err := eval(*in.ConditionExpression, t.items[k], in.ExpressionAttributeNames, in.ExpressionAttributeValues)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, &types.ConditionalCheckFailedException{Message: strPtr("condition failed")}
		}
	}
	t.items[k] = clone(in.Item)
	return &dyn.PutItemOutput{}, nil
}

func (d *Dynamo) GetItem(ctx context.Context, in *dyn.GetItemInput, optFns ...func(*dyn.Options)) (*dyn.GetItemOutput, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	t, err := d.begin("GetItem", *in.TableName)
	if err != nil {
		return nil, err
	}
	k, err := t.keyOf(in.Key)
	if err != nil {
		return nil, err
	}
	item, ok := t.items[k]
	if !ok {
		return &dyn.GetItemOutput{}, nil
	}
	return &dyn.GetItemOutput{Item: clone(item)}, nil
}

func (d *Dynamo) UpdateItem(ctx context.Context, in *dyn.UpdateItemInput, optFns ...func(*dyn.Options)) (*dyn.UpdateItemOutput, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	t, err := d.begin("UpdateItem", *in.TableName)
	if err != nil {
		return nil, err
	}
	k, err := t.keyOf(in.Key)
	if err != nil {
		return nil, err
	}
	current := t.items[k]
	if in.ConditionExpression != nil {
		ok, err := eval(*in.ConditionExpression, current, in.ExpressionAttributeNames, in.ExpressionAttributeValues)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, &types.ConditionalCheckFailedException{Message: strPtr("condition failed")}
		}
	}
	item := clone(current)
	if item == nil {
		item = clone(in.Key)
	}
	if in.UpdateExpression != nil {
		expr := strings.TrimSpace(*in.UpdateExpression)
		if !strings.HasPrefix(expr, "SET ") {
			return nil, fmt.Errorf("unsupported update expression %q", expr)
		}
		for _, assign := range strings.Split(strings.TrimPrefix(expr, "SET "), ",") {
			parts := strings.SplitN(assign, "=", 2)
			if len(parts) != 2 {
				return nil, fmt.Errorf("bad assignment %q", assign)
			}
			name := resolveName(strings.TrimSpace(parts[0]), in.ExpressionAttributeNames)
			v, ok := in.ExpressionAttributeValues[strings.TrimSpace(parts[1])]
			if !ok {
				return nil, fmt.Errorf("missing value %s", parts[1])
			}
			item[name] = v
		}
	}
	t.items[k] = item
	return &dyn.UpdateItemOutput{Attributes: clone(item)}, nil
}

func (d *Dynamo) DeleteItem(ctx context.Context, in *dyn.DeleteItemInput, optFns ...func(*dyn.Options)) (*dyn.DeleteItemOutput, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	t, err := d.begin("DeleteItem", *in.TableName)
	if err != nil {
		return nil, err
	}
	k, err := t.keyOf(in.Key)
	if err != nil {
		return nil, err
	}
	old, ok := t.items[k]
	delete(t.items, k)
	out := &dyn.DeleteItemOutput{}
	if ok && in.ReturnValues == types.ReturnValueAllOld {
		out.Attributes = old
	}
	return out, nil
}

func (d *Dynamo) Scan(ctx context.Context, in *dyn.ScanInput, optFns ...func(*dyn.Options)) (*dyn.ScanOutput, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	t, err := d.begin("Scan", *in.TableName)
	if err != nil {
		return nil, err
	}
	items := t.sorted()
	return &dyn.ScanOutput{Items: items, Count: int32(len(items))}, nil
}

func (d *Dynamo) Query(ctx context.Context, in *dyn.QueryInput, optFns ...func(*dyn.Options)) (*dyn.QueryOutput, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	t, err := d.begin("Query", *in.TableName)
	if err != nil {
		return nil, err
	}
	if in.KeyConditionExpression == nil {
		return nil, errors.New("missing key condition")
	}
	var items []map[string]types.AttributeValue
	for _, item := range t.sorted() {
		ok, err := eval(*in.KeyConditionExpression, item, in.ExpressionAttributeNames, in.ExpressionAttributeValues)
		if err != nil {
			return nil, err
		}
		if ok {
			items = append(items, item)
		}
	}
	if in.ScanIndexForward != nil && !*in.ScanIndexForward {
		for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
			items[i], items[j] = items[j], items[i]
		}
	}
	return &dyn.QueryOutput{Items: items, Count: int32(len(items))}, nil
}

func eval(expr string, item map[string]types.AttributeValue, names map[string]string, values map[string]types.AttributeValue) (bool, error) {
	for _, term := range strings.Split(expr, " OR ") {
		ok, err := evalTerm(strings.TrimSpace(term), item, names, values)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

func evalTerm(term string, item map[string]types.AttributeValue, names map[string]string, values map[string]types.AttributeValue) (bool, error) {
	switch {
	case strings.HasPrefix(term, "attribute_not_exists(") && strings.HasSuffix(term, ")"):
		name := resolveName(term[len("attribute_not_exists("):len(term)-1], names)
		_, ok := item[name]
		return !ok, nil
	case strings.HasPrefix(term, "attribute_exists(") && strings.HasSuffix(term, ")"):
		name := resolveName(term[len("attribute_exists("):len(term)-1], names)
		_, ok := item[name]
		return ok, nil
	}
	for _, op := range []string{"<", "="} {
		parts := strings.SplitN(term, " "+op+" ", 2)
		if len(parts) != 2 {
			continue
		}
		have, ok := item[resolveName(strings.TrimSpace(parts[0]), names)]
		if !ok {
			return false, nil
		}
		want, ok := values[strings.TrimSpace(parts[1])]
		if !ok {
			return false, fmt.Errorf("missing value %s", parts[1])
		}
		c := compare(have, want)
		if op == "<" {
			return c < 0, nil
		}
		return c == 0, nil
	}
	return false, fmt.Errorf("unsupported condition %q", term)
}

func compare(a, b types.AttributeValue) int {
	an, aNum := a.(*types.AttributeValueMemberN)
	bn, bNum := b.(*types.AttributeValueMemberN)
	if aNum && bNum {
		x, _ := strconv.ParseFloat(an.Value, 64)
		y, _ := strconv.ParseFloat(bn.Value, 64)
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}
		return 0
	}
	return strings.Compare(scalar(a), scalar(b))
}

func resolveName(name string, names map[string]string) string {
	if strings.HasPrefix(name, "#") {
		if n, ok := names[name]; ok {
			return n
		}
	}
	return name
}

func scalar(v types.AttributeValue) string {
	switch tv := v.(type) {
	case *types.AttributeValueMemberS:
		return tv.Value
	case *types.AttributeValueMemberN:
		return tv.Value
	case *types.AttributeValueMemberBOOL:
		return strconv.FormatBool(tv.Value)
	}
	return fmt.Sprintf("%v", v)
}

func clone(item map[string]types.AttributeValue) map[string]types.AttributeValue {
	if item == nil {
		return nil
	}
	out := make(map[string]types.AttributeValue, len(item))
	for k, v := range item {
		out[k] = v
	}
	return out
}

func strPtr(s string) *string { return &s }
