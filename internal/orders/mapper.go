package orders

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/orderhub/go-order-service/internal/validation"
)

// MappingError reports input that could not be translated into the canonical
// order shape. Handlers surface it as a client error, distinct from a
// duplicate-key conflict.
type MappingError struct {
	Field  string
	Reason string
}

func (e *MappingError) Error() string {
	return fmt.Sprintf("cannot map order input: %s: %s", e.Field, e.Reason)
}

// MapCreateRequest translates an external order submission into the canonical
// Order. Pure: no I/O, deterministic for a given input.
//
// Field mapping: numeroPedido->orderId and valorTotal->value are copied
// verbatim, dataCriacao->creationDate is parsed into a time.Time, and each
// item maps idItem->productId (coerced to integer), quantidadeItem->quantity,
// valorItem->price, preserving item order.
func MapCreateRequest(req validation.CreateOrderRequest) (Order, error) {
	creationDate, err := parseCreationDate(req.DataCriacao)
	if err != nil {
		return Order{}, &MappingError{Field: "dataCriacao", Reason: err.Error()}
	}

	if req.Items == nil {
		return Order{}, &MappingError{Field: "items", Reason: "missing or not an array"}
	}

	items := make([]Item, 0, len(req.Items))
	for i, it := range req.Items {
		productID, err := coerceProductID(it.IDItem)
		if err != nil {
			return Order{}, &MappingError{
				Field:  fmt.Sprintf("items[%d].idItem", i),
				Reason: err.Error(),
			}
		}
		items = append(items, Item{
			ProductID: productID,
			Quantity:  it.QuantidadeItem,
			Price:     it.ValorItem,
		})
	}

	return Order{
		OrderID:      req.NumeroPedido,
		Value:        req.ValorTotal,
		CreationDate: creationDate,
		Items:        items,
	}, nil
}

// epochMillisThreshold separates second-resolution epochs from
// millisecond-resolution ones; anything at or above it is treated as millis.
const epochMillisThreshold = 1e12

// parseCreationDate accepts the date-like shapes clients actually send:
// RFC3339, a bare datetime, a bare date, or a numeric epoch. Unparseable
// input is an error, never a sentinel "invalid date" value.
func parseCreationDate(v interface{}) (time.Time, error) {
	switch t := v.(type) {
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return time.Time{}, fmt.Errorf("empty date string")
		}
		for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
			if ts, err := time.Parse(layout, s); err == nil {
				return ts.UTC(), nil
			}
		}
		return time.Time{}, fmt.Errorf("unparseable date %q", s)
	case float64:
		return epochToTime(int64(t)), nil
	case json.Number:
		n, err := t.Int64()
		if err != nil {
			return time.Time{}, fmt.Errorf("unparseable epoch %q", t.String())
		}
		return epochToTime(n), nil
	case nil:
		return time.Time{}, fmt.Errorf("missing date")
	default:
		return time.Time{}, fmt.Errorf("unsupported date type %T", v)
	}
}

func epochToTime(n int64) time.Time {
	if n >= epochMillisThreshold {
		return time.UnixMilli(n).UTC()
	}
	return time.Unix(n, 0).UTC()
}

// coerceProductID converts an idItem value to an integer. Strings must be
// fully numeric; floats must carry an integral value.
func coerceProductID(v interface{}) (int, error) {
	switch t := v.(type) {
	case string:
		id, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return 0, fmt.Errorf("idItem %q is not an integer", t)
		}
		return id, nil
	case float64:
		if t != math.Trunc(t) {
			return 0, fmt.Errorf("idItem %v is not an integer", t)
		}
		return int(t), nil
	case json.Number:
		id, err := strconv.Atoi(t.String())
		if err != nil {
			return 0, fmt.Errorf("idItem %q is not an integer", t.String())
		}
		return id, nil
	case int:
		return t, nil
	case nil:
		return 0, fmt.Errorf("missing idItem")
	default:
		return 0, fmt.Errorf("idItem has unsupported type %T", v)
	}
}
