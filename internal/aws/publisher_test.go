package aws

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

type captureSQS struct {
	inputs []*sqs.SendMessageInput
	err    error
}

func (c *captureSQS) SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
	if c.err != nil {
		return nil, c.err
	}
	c.inputs = append(c.inputs, params)
	return &sqs.SendMessageOutput{}, nil
}

func TestPublishOrderEvent(t *testing.T) {
	mock := &captureSQS{}
	p := NewPublisher(mock, "https://sqs.test/orders")

	ev := OrderEvent{
		Event:         EventOrderCreated,
		OrderID:       "A1",
		CorrelationID: "req-1",
		OccurredAt:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := p.PublishOrderEvent(context.Background(), ev); err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}

	if len(mock.inputs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(mock.inputs))
	}
	in := mock.inputs[0]
	if *in.QueueUrl != "https://sqs.test/orders" {
		t.Fatalf("queue url mismatch: %s", *in.QueueUrl)
	}

	var got OrderEvent
	if err := json.Unmarshal([]byte(*in.MessageBody), &got); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	if got.Event != EventOrderCreated || got.OrderID != "A1" || got.CorrelationID != "req-1" {
		t.Fatalf("body mismatch: %+v", got)
	}

	for _, attr := range []string{"event", "order_id", "correlation_id"} {
		if _, ok := in.MessageAttributes[attr]; !ok {
			t.Fatalf("missing message attribute %q", attr)
		}
	}
}

func TestPublishOrderEvent_DefaultsOccurredAt(t *testing.T) {
	mock := &captureSQS{}
	p := NewPublisher(mock, "q")

	if err := p.PublishOrderEvent(context.Background(), OrderEvent{Event: EventOrderDeleted, OrderID: "A2"}); err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}

	var got OrderEvent
	if err := json.Unmarshal([]byte(*mock.inputs[0].MessageBody), &got); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	if got.OccurredAt.IsZero() {
		t.Fatal("occurredAt not defaulted")
	}
}

func TestPublishOrderEvent_SendFailure(t *testing.T) {
	mock := &captureSQS{err: errors.New("boom")}
	p := NewPublisher(mock, "q")

	err := p.PublishOrderEvent(context.Background(), OrderEvent{Event: EventOrderCreated, OrderID: "A3"})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}
