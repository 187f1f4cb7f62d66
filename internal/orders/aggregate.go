package orders

import (
	"github.com/google/uuid"

	"github.com/angelmondragon/tradelink-backend/pkg/db/models"
	"github.com/angelmondragon/tradelink-backend/pkg/enums"
)

// ChildProgress is the buyer-facing view of one supplier order.
type ChildProgress struct {
	OrderID        uuid.UUID         `json:"order_id"`
	OrderNumber    string            `json:"order_number"`
	SupplierName   string            `json:"supplier_name"`
	Status         enums.OrderStatus `json:"status"`
	Progress       int               `json:"progress"`
	TrackingNumber *string           `json:"tracking_number,omitempty"`
}

// AggregateView summarizes a parent order across its children. The overall
// status is the least-progressed non-cancelled child: a parent is only as
// done as its slowest supplier.
type AggregateView struct {
	Status   enums.OrderStatus `json:"status"`
	Progress int               `json:"progress"`
	Children []ChildProgress   `json:"children"`
}

// AggregateProgress derives the buyer-facing summary for a set of child
// orders. Cancelled children are excluded from the minimum but still listed
// individually; if every child is cancelled the aggregate is cancelled.
func AggregateProgress(children []models.SupplierOrder) AggregateView {
	view := AggregateView{
		Status:   enums.OrderStatusCancelled,
		Children: make([]ChildProgress, 0, len(children)),
	}

	minRank := -1
	for _, child := range children {
		view.Children = append(view.Children, ChildProgress{
			OrderID:        child.ID,
			OrderNumber:    child.OrderNumber,
			SupplierName:   child.SupplierName,
			Status:         child.Status,
			Progress:       child.Status.Progress(),
			TrackingNumber: child.TrackingNumber,
		})

		rank, counts := child.Status.Rank()
		if !counts {
			continue
		}
		if minRank < 0 || rank < minRank {
			minRank = rank
			view.Status = child.Status
		}
	}

	view.Progress = view.Status.Progress()
	return view
}
