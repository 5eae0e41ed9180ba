package orders

import "time"

// OrderPatch is a typed partial update of an Order. Nil fields are left
// untouched; a non-nil Items replaces the stored sequence wholesale (there is
// no element-level merge). OrderID is deliberately not patchable.
type OrderPatch struct {
	Value        *float64
	CreationDate *time.Time
	Items        *[]Item
}

// IsEmpty reports whether the patch names no fields at all.
func (p OrderPatch) IsEmpty() bool {
	return p.Value == nil && p.CreationDate == nil && p.Items == nil
}
