package aws_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internalaws "github.com/imrishuroy/go-cod-storefront/internal/aws"
	"github.com/imrishuroy/go-cod-storefront/internal/aws/awstest"
)

func TestScanAll(t *testing.T) {
	db := awstest.NewDynamo()
	db.DefineTable("rates", "wilaya", "")
	for _, w := range []string{"Oran", "Alger", "Setif"} {
		_, err := db.PutItem(context.Background(), putInput("rates", w))
		require.NoError(t, err)
	}

	items, err := internalaws.ScanAll(context.Background(), db, "rates")
	require.NoError(t, err)
	assert.Len(t, items, 3)

	db.Errs["Scan"] = errors.New("boom")
	_, err = internalaws.ScanAll(context.Background(), db, "rates")
	assert.Error(t, err)
}

func TestIsConditionFailed(t *testing.T) {
	assert.True(t, internalaws.IsConditionFailed(&types.ConditionalCheckFailedException{}))
	assert.False(t, internalaws.IsConditionFailed(errors.New("other")))
	assert.False(t, internalaws.IsConditionFailed(nil))
}

func TestMetricsRecordOrder(t *testing.T) {
	cw := &awstest.CloudWatch{}
	m := internalaws.NewMetrics(cw, "")

	require.NoError(t, m.RecordOrder(context.Background(), "Oran", 3520))
	require.Len(t, cw.Puts, 1)
	put := cw.Puts[0]
	assert.Equal(t, "Storefront/Orders", *put.Namespace)
	require.Len(t, put.MetricData, 2)
	assert.Equal(t, 3520.0, *put.MetricData[1].Value)
	assert.Equal(t, "Oran", *put.MetricData[0].Dimensions[0].Value)
}

func TestLoadSecretJSON(t *testing.T) {
	sm := &awstest.Secrets{Values: map[string]string{"arn:app": `{"JWT_SECRET":"s3cr3t"}`}}

	got, err := internalaws.LoadSecretJSON(context.Background(), sm, "arn:app")
	require.NoError(t, err)
	assert.Equal(t, "s3cr3t", got["JWT_SECRET"])

	_, err = internalaws.LoadSecretJSON(context.Background(), sm, "arn:missing")
	assert.Error(t, err)
}
