package main

// queueMessage is the payload sent from API -> SQS -> worker.
type queueMessage struct {
	Event         string `json:"event"`
	OrderID       string `json:"orderId"`
	CorrelationID string `json:"correlationId,omitempty"`
	OccurredAt    string `json:"occurredAt,omitempty"`
}
