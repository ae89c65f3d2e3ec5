package aws

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
)

// Metrics publishes storefront counters to CloudWatch.
type Metrics struct {
	CW        CloudWatchAPI
	Namespace string
	nowFunc   func() time.Time
}

// NewMetrics returns a Metrics bound to a namespace.
func NewMetrics(cw CloudWatchAPI, namespace string) *Metrics {
	if namespace == "" {
		namespace = "Storefront/Orders"
	}
	return &Metrics{CW: cw, Namespace: namespace, nowFunc: time.Now}
}

// RecordOrder emits OrdersPlaced and OrderRevenue for one order, dimensioned by wilaya.
func (m *Metrics) RecordOrder(ctx context.Context, wilaya string, total int64) error {
	now := m.nowFunc()
	dims := []cwtypes.Dimension{{Name: String("Wilaya"), Value: String(wilaya)}}
	one, revenue := 1.0, float64(total)

	_, err := m.CW.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
		Namespace: &m.Namespace,
		MetricData: []cwtypes.MetricDatum{
			{MetricName: String("OrdersPlaced"), Timestamp: &now, Unit: cwtypes.StandardUnitCount, Value: &one, Dimensions: dims},
			{MetricName: String("OrderRevenue"), Timestamp: &now, Unit: cwtypes.StandardUnitNone, Value: &revenue, Dimensions: dims},
		},
	})
	if err != nil {
		return fmt.Errorf("put metric data: %w", err)
	}
	return nil
}
