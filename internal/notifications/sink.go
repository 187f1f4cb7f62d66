package notifications

import (
	"context"

	"github.com/google/uuid"
)

// Event names published to suppliers.
const (
	EventOrderCreated       = "order.created"
	EventOrderStatusChanged = "order.status_changed"
)

// OrderEvent is the supplier-facing payload for order lifecycle events. A nil
// SupplierID addresses the platform's own store.
type OrderEvent struct {
	Event          string     `json:"event"`
	OrderID        uuid.UUID  `json:"order_id"`
	OrderNumber    string     `json:"order_number"`
	ParentOrderID  uuid.UUID  `json:"parent_order_id"`
	SupplierID     *uuid.UUID `json:"supplier_id"`
	Status         string     `json:"status"`
	PreviousStatus string     `json:"previous_status,omitempty"`
	TotalAmount    string     `json:"total_amount"`
}

// Sink delivers supplier order events. Delivery is best-effort: callers must
// never fail or roll back order writes because a notification did not go out.
type Sink interface {
	Notify(ctx context.Context, event OrderEvent) error
}

// NopSink discards every event. Used when Pub/Sub is not configured.
type NopSink struct{}

func (NopSink) Notify(context.Context, OrderEvent) error { return nil }
