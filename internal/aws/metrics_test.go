package aws

import (
	"context"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
)

type captureCloudWatch struct {
	inputs []*cloudwatch.PutMetricDataInput
}

func (c *captureCloudWatch) PutMetricData(ctx context.Context, params *cloudwatch.PutMetricDataInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error) {
	c.inputs = append(c.inputs, params)
	return &cloudwatch.PutMetricDataOutput{}, nil
}

func TestCountOrderEvent(t *testing.T) {
	mock := &captureCloudWatch{}
	m := NewMetricsEmitter(mock, "OrderService")
	fixed := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m.nowFunc = func() time.Time { return fixed }

	if err := m.CountOrderEvent(context.Background(), EventOrderCreated); err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}

	if len(mock.inputs) != 1 {
		t.Fatalf("expected 1 put, got %d", len(mock.inputs))
	}
	in := mock.inputs[0]
	if *in.Namespace != "OrderService" {
		t.Fatalf("namespace mismatch: %s", *in.Namespace)
	}
	if len(in.MetricData) != 1 {
		t.Fatalf("expected 1 datum, got %d", len(in.MetricData))
	}
	d := in.MetricData[0]
	if *d.MetricName != "OrderEvents" || *d.Value != 1.0 {
		t.Fatalf("datum mismatch: %+v", d)
	}
	if len(d.Dimensions) != 1 || *d.Dimensions[0].Value != EventOrderCreated {
		t.Fatalf("dimension mismatch: %+v", d.Dimensions)
	}
	if !d.Timestamp.Equal(fixed) {
		t.Fatalf("timestamp mismatch: %v", d.Timestamp)
	}
}
