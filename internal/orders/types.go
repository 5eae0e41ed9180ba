package orders

import "time"

// Item is a line entry embedded in an Order. It has no identity of its own;
// it lives and dies with its parent document.
type Item struct {
	ProductID int     `dynamodbav:"productId" json:"productId"`
	Quantity  float64 `dynamodbav:"quantity" json:"quantity"`
	Price     float64 `dynamodbav:"price" json:"price"`
}

// Order is the canonical document stored in the orders DynamoDB table.
// OrderID is the partition key and is unique across the table.
// CreatedAt/UpdatedAt are maintained by the store layer on every write.
type Order struct {
	OrderID      string    `dynamodbav:"orderId" json:"orderId"` // PK
	Value        float64   `dynamodbav:"value" json:"value"`
	CreationDate time.Time `dynamodbav:"creationDate" json:"creationDate"`
	Items        []Item    `dynamodbav:"items" json:"items"`
	CreatedAt    time.Time `dynamodbav:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `dynamodbav:"updatedAt" json:"updatedAt"`
}
