package checkout

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/angelmondragon/tradelink-backend/internal/cart"
	"github.com/angelmondragon/tradelink-backend/internal/notifications"
	"github.com/angelmondragon/tradelink-backend/internal/orders"
	"github.com/angelmondragon/tradelink-backend/pkg/db"
	"github.com/angelmondragon/tradelink-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/tradelink-backend/pkg/errors"
	"github.com/angelmondragon/tradelink-backend/pkg/logger"
	"github.com/angelmondragon/tradelink-backend/pkg/metrics"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// rateResolver resolves the platform commission rate for an order amount.
type rateResolver interface {
	ResolveRate(ctx context.Context, amount decimal.Decimal) (decimal.Decimal, error)
}

// Quote is the pre-checkout preview: the cart partitioned by supplier with
// per-group and overall totals. Stock issues are surfaced, not rejected, so
// the buyer can fix the cart before paying.
type Quote struct {
	Groups         []cart.SupplierGroup `json:"groups"`
	Subtotal       decimal.Decimal      `json:"subtotal"`
	ShippingTotal  decimal.Decimal      `json:"shipping_total"`
	Total          decimal.Decimal      `json:"total"`
	HasStockIssues bool                 `json:"has_stock_issues"`
}

// Result is a completed checkout: the persisted parent and its children.
type Result struct {
	Parent   models.ParentOrder     `json:"parent"`
	Children []models.SupplierOrder `json:"children"`
}

// Service runs the checkout pipeline: group, price, split, persist, notify.
type Service interface {
	Quote(ctx context.Context, items []cart.Item) (*Quote, error)
	Checkout(ctx context.Context, items []cart.Item, input Input) (*Result, error)
}

type service struct {
	orders  orders.Repository
	rates   rateResolver
	tx      txRunner
	sink    notifications.Sink
	metrics *metrics.CheckoutMetrics
	logg    *logger.Logger
}

// NewService wires the checkout service.
func NewService(orderRepo orders.Repository, rates rateResolver, tx txRunner, sink notifications.Sink, m *metrics.CheckoutMetrics, logg *logger.Logger) (Service, error) {
	if orderRepo == nil {
		return nil, fmt.Errorf("order repository required")
	}
	if rates == nil {
		return nil, fmt.Errorf("rate resolver required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if sink == nil {
		sink = notifications.NopSink{}
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{orders: orderRepo, rates: rates, tx: tx, sink: sink, metrics: m, logg: logg}, nil
}

func (s *service) Quote(ctx context.Context, items []cart.Item) (*Quote, error) {
	if len(items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	groups := cart.GroupBySupplier(items)
	quote := &Quote{
		Groups:        groups,
		Subtotal:      decimal.Zero,
		ShippingTotal: decimal.Zero,
		Total:         decimal.Zero,
	}
	for _, group := range groups {
		quote.Subtotal = quote.Subtotal.Add(group.Subtotal)
		quote.ShippingTotal = quote.ShippingTotal.Add(group.ShippingCost)
		quote.Total = quote.Total.Add(group.Total)
		quote.HasStockIssues = quote.HasStockIssues || group.HasStockIssues
	}
	return quote, nil
}

// Checkout splits the cart into supplier orders and persists them atomically.
// The commission rate is resolved per group total at this moment and stamped
// onto each child; later tier edits never touch it.
func (s *service) Checkout(ctx context.Context, items []cart.Item, input Input) (*Result, error) {
	groups := cart.GroupBySupplier(items)

	rates := make(map[string]decimal.Decimal, len(groups))
	for _, group := range groups {
		if group.HasStockIssues {
			// Split reports the precise line; skip rate lookups for a cart
			// that cannot check out anyway.
			continue
		}
		rate, err := s.rates.ResolveRate(ctx, group.Total)
		if err != nil {
			s.metrics.IncReject(rejectReason(err))
			return nil, err
		}
		rates[group.Key] = rate
	}

	split, err := Split(groups, input, rates, time.Now().UTC())
	if err != nil {
		s.metrics.IncReject(rejectReason(err))
		return nil, err
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		return s.orders.WithTx(tx).CreateCheckout(ctx, &split.Parent, split.Children)
	})
	if err != nil {
		if db.IsUniqueViolation(err, "order_number") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "order number collision, retry checkout")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist checkout orders")
	}

	s.metrics.ObserveSplit(len(split.Children))
	s.notifyCreated(ctx, split.Children)

	return &Result{Parent: split.Parent, Children: split.Children}, nil
}

// notifyCreated fans out order.created events after commit. Failures are
// logged and swallowed; the orders already exist.
func (s *service) notifyCreated(ctx context.Context, children []models.SupplierOrder) {
	for _, child := range children {
		eventCtx := s.logg.WithOrderID(ctx, child.ID.String())
		if err := s.sink.Notify(eventCtx, notifications.OrderEvent{
			Event:         notifications.EventOrderCreated,
			OrderID:       child.ID,
			OrderNumber:   child.OrderNumber,
			ParentOrderID: child.ParentOrderID,
			SupplierID:    child.SupplierID,
			Status:        child.Status.String(),
			TotalAmount:   child.TotalAmount.StringFixed(2),
		}); err != nil {
			s.logg.Warn(eventCtx, fmt.Sprintf("notifying order creation: %v", err))
		}
	}
}

func rejectReason(err error) string {
	if typed := pkgerrors.As(err); typed != nil {
		return string(typed.Code())
	}
	return "internal"
}
