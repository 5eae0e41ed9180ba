package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-lambda-go/events"
	log "github.com/sirupsen/logrus"

	"github.com/orderhub/go-order-service/internal/aws"
)

// Processor consumes order lifecycle events from SQS and turns them into
// CloudWatch counters. It carries no order state of its own; the orders table
// is the single source of truth and the worker only observes.
type Processor struct {
	metrics *aws.MetricsEmitter
	logger  *log.Entry
}

// NewProcessor wires the processor with AWS clients injected.
func NewProcessor(clients *aws.AWSClients, namespace string) *Processor {
	return &Processor{
		metrics: aws.NewMetricsEmitter(clients.CloudWatch, namespace),
		logger:  log.WithField("component", "worker"),
	}
}

// Handle receives an SQS batch event and processes each message.
// Returning an error makes the Lambda runtime retry the batch; repeated
// failures land the message in the DLQ.
func (p *Processor) Handle(ctx context.Context, ev events.SQSEvent) error {
	for _, rec := range ev.Records {
		if err := p.processMessage(ctx, rec); err != nil {
			p.logger.WithError(err).Error("worker error")
			return err
		}
	}
	return nil
}

func (p *Processor) processMessage(ctx context.Context, rec events.SQSMessage) error {
	var msg queueMessage
	if err := json.Unmarshal([]byte(rec.Body), &msg); err != nil {
		return fmt.Errorf("invalid message body: %w", err)
	}

	switch msg.Event {
	case aws.EventOrderCreated, aws.EventOrderDeleted:
	default:
		return fmt.Errorf("unknown event type %q for order=%s", msg.Event, msg.OrderID)
	}

	p.logger.WithFields(log.Fields{
		"event":    msg.Event,
		"order_id": msg.OrderID,
		"corr":     msg.CorrelationID,
	}).Info("received order event")

	if err := p.metrics.CountOrderEvent(ctx, msg.Event); err != nil {
		return fmt.Errorf("failed to record metric for order=%s: %w", msg.OrderID, err)
	}
	return nil
}
