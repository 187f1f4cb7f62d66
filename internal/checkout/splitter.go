package checkout

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/tradelink-backend/internal/cart"
	"github.com/angelmondragon/tradelink-backend/pkg/db/models"
	"github.com/angelmondragon/tradelink-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/tradelink-backend/pkg/errors"
	"github.com/angelmondragon/tradelink-backend/pkg/types"
)

// Input is the buyer-provided half of a checkout. Cart items arrive
// separately and are grouped before the split.
type Input struct {
	BuyerID         uuid.UUID     `json:"buyer_id"`
	PaymentMethod   string        `json:"payment_method"`
	ShippingAddress types.Address `json:"shipping_address"`
}

// SplitResult is the outcome of one checkout split: a single parent and one
// child per supplier group. Nothing is persisted yet.
type SplitResult struct {
	Parent   models.ParentOrder
	Children []models.SupplierOrder
}

// Split carves validated supplier groups into a parent order and independent
// supplier orders. All-or-nothing: any invalid group or line aborts the whole
// split before a single order is built. Rates are keyed by group key and must
// cover every group.
//
// A single-supplier checkout still produces a parent with one child, so every
// checkout reads the same way downstream.
func Split(groups []cart.SupplierGroup, input Input, rates map[string]decimal.Decimal, now time.Time) (*SplitResult, error) {
	if err := validateSplit(groups, input, rates); err != nil {
		return nil, err
	}

	address := input.ShippingAddress.Normalize()

	parent := models.ParentOrder{
		ID:          uuid.New(),
		OrderNumber: newOrderNumber(now),
		BuyerID:     input.BuyerID,
		TotalAmount: decimal.Zero,
	}

	children := make([]models.SupplierOrder, 0, len(groups))
	for _, group := range groups {
		child := models.SupplierOrder{
			ID:              uuid.New(),
			OrderNumber:     newOrderNumber(now),
			ParentOrderID:   parent.ID,
			BuyerID:         input.BuyerID,
			SupplierID:      group.SupplierID,
			SupplierName:    group.SupplierName,
			Status:          enums.OrderStatusPending,
			PaymentStatus:   enums.PaymentStatusPending,
			PaymentMethod:   input.PaymentMethod,
			Subtotal:        group.Subtotal,
			ShippingTotal:   group.ShippingCost,
			TotalAmount:     group.Total,
			CommissionRate:  rates[group.Key],
			ShippingAddress: address,
		}
		if group.EstimatedDelivery != "" {
			estimate := group.EstimatedDelivery
			child.EstimatedDelivery = &estimate
		}

		for position, item := range group.Items {
			child.Items = append(child.Items, models.SupplierOrderItem{
				OrderID:     child.ID,
				ProductID:   item.ProductID,
				ProductName: item.ProductName,
				Quantity:    item.Quantity,
				UnitPrice:   item.UnitPrice,
				TotalPrice:  item.TotalPrice,
				Position:    position,
			})
		}

		parent.TotalAmount = parent.TotalAmount.Add(child.TotalAmount)
		children = append(children, child)
	}

	return &SplitResult{Parent: parent, Children: children}, nil
}

func validateSplit(groups []cart.SupplierGroup, input Input, rates map[string]decimal.Decimal) error {
	if len(groups) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "checkout requires at least one item")
	}
	if input.BuyerID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "buyer id required")
	}
	if strings.TrimSpace(input.PaymentMethod) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "payment method required")
	}
	if !input.ShippingAddress.IsComplete() {
		return pkgerrors.New(pkgerrors.CodeValidation, "shipping address incomplete")
	}

	for _, group := range groups {
		if group.HasStockIssues {
			return pkgerrors.New(pkgerrors.CodeValidation, "cart has stock issues").
				WithDetails(map[string]any{"supplier": group.SupplierName})
		}
		if _, ok := rates[group.Key]; !ok {
			return pkgerrors.New(pkgerrors.CodeTierConfig, "no commission rate resolved for supplier").
				WithDetails(map[string]any{"supplier": group.SupplierName})
		}
		for _, item := range group.Items {
			if err := validateLine(item); err != nil {
				return err
			}
		}
	}
	return nil
}

func validateLine(item cart.Item) error {
	if item.Quantity <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "item quantity must be positive").
			WithDetails(map[string]any{"product_id": item.ProductID})
	}
	if item.UnitPrice.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "item unit price must not be negative").
			WithDetails(map[string]any{"product_id": item.ProductID})
	}
	expected := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
	if !item.TotalPrice.Equal(expected) {
		return pkgerrors.New(pkgerrors.CodeValidation, "item total does not match quantity times unit price").
			WithDetails(map[string]any{
				"product_id": item.ProductID,
				"expected":   expected.StringFixed(2),
				"got":        item.TotalPrice.StringFixed(2),
			})
	}
	return nil
}

// newOrderNumber builds a buyer-visible order number: date for support staff,
// random suffix for uniqueness. The unique index on order_number backstops
// the entropy.
func newOrderNumber(now time.Time) string {
	suffix := make([]byte, 4)
	if _, err := rand.Read(suffix); err != nil {
		return fmt.Sprintf("TL-%s-%s", now.Format("20060102"), strings.ToUpper(uuid.NewString()[:8]))
	}
	return fmt.Sprintf("TL-%s-%s", now.Format("20060102"), strings.ToUpper(hex.EncodeToString(suffix)))
}
