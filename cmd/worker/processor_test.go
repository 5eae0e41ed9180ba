package main

import (
	"context"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	log "github.com/sirupsen/logrus"

	"github.com/orderhub/go-order-service/internal/aws"
)

type captureCloudWatch struct {
	inputs []*cloudwatch.PutMetricDataInput
	err    error
}

func (c *captureCloudWatch) PutMetricData(ctx context.Context, params *cloudwatch.PutMetricDataInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error) {
	if c.err != nil {
		return nil, c.err
	}
	c.inputs = append(c.inputs, params)
	return &cloudwatch.PutMetricDataOutput{}, nil
}

func newTestProcessor(cw aws.CloudWatchAPI) *Processor {
	return &Processor{
		metrics: aws.NewMetricsEmitter(cw, "OrderServiceTest"),
		logger:  log.WithField("component", "worker-test"),
	}
}

func TestHandle_CountsCreatedAndDeleted(t *testing.T) {
	mock := &captureCloudWatch{}
	p := newTestProcessor(mock)

	ev := events.SQSEvent{
		Records: []events.SQSMessage{
			{Body: `{"event":"order_created","orderId":"A1"}`},
			{Body: `{"event":"order_deleted","orderId":"A1","correlationId":"req-9"}`},
		},
	}

	if err := p.Handle(context.Background(), ev); err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}
	if len(mock.inputs) != 2 {
		t.Fatalf("expected 2 metric puts, got %d", len(mock.inputs))
	}
}

func TestHandle_InvalidBodyFailsBatch(t *testing.T) {
	p := newTestProcessor(&captureCloudWatch{})

	ev := events.SQSEvent{
		Records: []events.SQSMessage{
			{Body: `not json`},
		},
	}
	if err := p.Handle(context.Background(), ev); err == nil {
		t.Fatal("expected error for invalid body, got nil")
	}
}

func TestHandle_UnknownEventFails(t *testing.T) {
	p := newTestProcessor(&captureCloudWatch{})

	ev := events.SQSEvent{
		Records: []events.SQSMessage{
			{Body: `{"event":"order_exploded","orderId":"A1"}`},
		},
	}
	if err := p.Handle(context.Background(), ev); err == nil {
		t.Fatal("expected error for unknown event, got nil")
	}
}
