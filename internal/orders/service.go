package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/tradelink-backend/internal/notifications"
	"github.com/angelmondragon/tradelink-backend/pkg/db/models"
	"github.com/angelmondragon/tradelink-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/tradelink-backend/pkg/errors"
	"github.com/angelmondragon/tradelink-backend/pkg/logger"
	"github.com/angelmondragon/tradelink-backend/pkg/metrics"
)

// TransitionInput carries a supplier's status change request. TrackingNumber
// is only meaningful when moving to shipped.
type TransitionInput struct {
	OrderID        uuid.UUID
	NewStatus      enums.OrderStatus
	TrackingNumber *string
}

// ParentSummary is the buyer-facing roll-up for one checkout.
type ParentSummary struct {
	Parent    models.ParentOrder `json:"parent"`
	Aggregate AggregateView      `json:"aggregate"`
}

// Service exposes order reads and the supplier-driven status lifecycle.
type Service interface {
	Get(ctx context.Context, id uuid.UUID) (*models.SupplierOrder, error)
	List(ctx context.Context, filter ListFilter) ([]models.SupplierOrder, int64, error)
	ParentSummary(ctx context.Context, parentID uuid.UUID) (*ParentSummary, error)
	Transition(ctx context.Context, input TransitionInput) (*models.SupplierOrder, error)
}

type service struct {
	repo    Repository
	sink    notifications.Sink
	metrics *metrics.CheckoutMetrics
	logg    *logger.Logger
}

// NewService wires the order service.
func NewService(repo Repository, sink notifications.Sink, m *metrics.CheckoutMetrics, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("order repository required")
	}
	if sink == nil {
		sink = notifications.NopSink{}
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, sink: sink, metrics: m, logg: logg}, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.SupplierOrder, error) {
	order, err := s.repo.FindSupplierOrder(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return order, nil
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]models.SupplierOrder, int64, error) {
	rows, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return rows, total, nil
}

func (s *service) ParentSummary(ctx context.Context, parentID uuid.UUID) (*ParentSummary, error) {
	parent, err := s.repo.FindParent(ctx, parentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "parent order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load parent order")
	}
	return &ParentSummary{
		Parent:    *parent,
		Aggregate: AggregateProgress(parent.Children),
	}, nil
}

// Transition validates the requested move against the status graph, then
// applies it with a previous-status guard so racing suppliers cannot stack
// conflicting transitions.
func (s *service) Transition(ctx context.Context, input TransitionInput) (*models.SupplierOrder, error) {
	order, err := s.Get(ctx, input.OrderID)
	if err != nil {
		return nil, err
	}

	applied, err := ApplyTransition(*order, input.NewStatus, order.UpdatedAt)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if applied.ActualDelivery != nil && order.ActualDelivery == nil {
		updates["actual_delivery"] = gorm.Expr("now()")
	}
	if input.NewStatus == enums.OrderStatusShipped && input.TrackingNumber != nil {
		updates["tracking_number"] = *input.TrackingNumber
	}

	ok, err := s.repo.UpdateStatusConditional(ctx, order.ID, order.Status, input.NewStatus, updates)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
	}
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "order status changed concurrently").
			WithDetails(map[string]any{
				"order_id": order.ID,
				"expected": order.Status.String(),
			})
	}

	s.metrics.IncTransition(input.NewStatus.String())

	updated, err := s.Get(ctx, order.ID)
	if err != nil {
		return nil, err
	}

	// Notification failures never undo the transition.
	notifyCtx := s.logg.WithOrderID(ctx, updated.ID.String())
	if err := s.sink.Notify(notifyCtx, notifications.OrderEvent{
		Event:          notifications.EventOrderStatusChanged,
		OrderID:        updated.ID,
		OrderNumber:    updated.OrderNumber,
		ParentOrderID:  updated.ParentOrderID,
		SupplierID:     updated.SupplierID,
		Status:         updated.Status.String(),
		PreviousStatus: order.Status.String(),
		TotalAmount:    updated.TotalAmount.StringFixed(2),
	}); err != nil {
		s.logg.Warn(notifyCtx, fmt.Sprintf("notifying status change: %v", err))
	}

	return updated, nil
}
