package validation

import "time"

// ItemInput is one line entry of an external order submission.
// idItem is deliberately untyped: clients send it as a string or a number
// and the mapper is responsible for coercing it.
type ItemInput struct {
	IDItem         interface{} `json:"idItem" validate:"required"`
	QuantidadeItem float64     `json:"quantidadeItem" validate:"required"`
	ValorItem      float64     `json:"valorItem" validate:"required"`
}

// CreateOrderRequest is the external-shaped payload for POST /order.
// Field names follow the submission contract, not the canonical schema;
// the mapper performs the translation. dataCriacao may be a date string
// or a numeric epoch, so it stays untyped here.
type CreateOrderRequest struct {
	NumeroPedido string      `json:"numeroPedido" validate:"required"`
	ValorTotal   float64     `json:"valorTotal" validate:"required"`
	DataCriacao  interface{} `json:"dataCriacao" validate:"required"`
	Items        []ItemInput `json:"items" validate:"omitempty,dive"`
}

// UpdateItem mirrors the canonical item shape for partial updates.
type UpdateItem struct {
	ProductID int     `json:"productId" validate:"required"`
	Quantity  float64 `json:"quantity" validate:"required"`
	Price     float64 `json:"price" validate:"required"`
}

// UpdateOrderRequest is the payload for PUT /order/:orderId. Unlike create it
// uses canonical field names and skips the mapper; that asymmetry is part of
// the external contract. Absent fields leave the stored value untouched;
// items, when present, replace the whole sequence.
type UpdateOrderRequest struct {
	Value        *float64      `json:"value"`
	CreationDate *time.Time    `json:"creationDate"`
	Items        *[]UpdateItem `json:"items" validate:"omitempty,dive"`
}
