package orders

import (
	"time"

	"github.com/angelmondragon/tradelink-backend/pkg/db/models"
	"github.com/angelmondragon/tradelink-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/tradelink-backend/pkg/errors"
)

// nextForward maps each status to its single forward successor. The
// lifecycle is a chain; skipping steps is not allowed.
var nextForward = map[enums.OrderStatus]enums.OrderStatus{
	enums.OrderStatusPending:    enums.OrderStatusConfirmed,
	enums.OrderStatusConfirmed:  enums.OrderStatusProcessing,
	enums.OrderStatusProcessing: enums.OrderStatusShipped,
	enums.OrderStatusShipped:    enums.OrderStatusDelivered,
}

// CanTransition reports whether the status graph permits moving from one
// status to another. Cancellation is allowed from any non-terminal state;
// delivered and cancelled permit nothing.
func CanTransition(from, to enums.OrderStatus) bool {
	if from.IsTerminal() {
		return false
	}
	if to == enums.OrderStatusCancelled {
		return true
	}
	return nextForward[from] == to
}

// ApplyTransition returns a copy of the order advanced to newStatus. The
// order itself is left untouched; a rejected transition changes nothing.
// Reaching delivered stamps the actual delivery timestamp.
func ApplyTransition(order models.SupplierOrder, newStatus enums.OrderStatus, now time.Time) (models.SupplierOrder, error) {
	if !newStatus.IsValid() {
		return order, pkgerrors.New(pkgerrors.CodeValidation, "unknown order status").
			WithDetails(map[string]any{"status": string(newStatus)})
	}
	if !CanTransition(order.Status, newStatus) {
		return order, pkgerrors.New(pkgerrors.CodeStateConflict, "order status transition not allowed").
			WithDetails(map[string]any{
				"order_id": order.ID,
				"from":     order.Status.String(),
				"to":       newStatus.String(),
			})
	}

	order.Status = newStatus
	order.UpdatedAt = now
	if newStatus == enums.OrderStatusDelivered {
		delivered := now
		order.ActualDelivery = &delivered
	}
	return order, nil
}
