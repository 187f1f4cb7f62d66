package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	// PlatformSupplierKey is the partition key for items sold by the
	// platform's own virtual store (no supplier assigned).
	PlatformSupplierKey = "admin"
	// PlatformSupplierName is the display name of the virtual store.
	PlatformSupplierName = "Platform Store"
)

// Item is one buyer-selected product line. Carts live client-side until
// checkout, so items arrive in the request and are never persisted as-is.
type Item struct {
	ProductID    uuid.UUID       `json:"product_id" validate:"required"`
	ProductName  string          `json:"product_name"`
	SupplierID   *uuid.UUID      `json:"supplier_id"`
	SupplierName string          `json:"supplier_name"`
	Quantity     int             `json:"quantity" validate:"required,min=1"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	TotalPrice   decimal.Decimal `json:"total_price"`
	MOQ          int             `json:"moq,omitempty"`
	InStock      *bool           `json:"in_stock,omitempty"`
	ShippingCost decimal.Decimal `json:"shipping_cost,omitempty"`
	LeadTime     string          `json:"lead_time,omitempty"`
}

// SupplierKey returns the partition key for the item's supplier.
func (i Item) SupplierKey() string {
	if i.SupplierID == nil {
		return PlatformSupplierKey
	}
	return i.SupplierID.String()
}

// HasStockIssue reports whether the line cannot be checked out as-is:
// explicitly out of stock, or quantity below the supplier's MOQ.
func (i Item) HasStockIssue() bool {
	if i.InStock != nil && !*i.InStock {
		return true
	}
	return i.MOQ > 0 && i.Quantity < i.MOQ
}

// SupplierGroup aggregates one supplier's share of the cart. It is derived
// on every call and never persisted.
type SupplierGroup struct {
	Key               string          `json:"key"`
	SupplierID        *uuid.UUID      `json:"supplier_id"`
	SupplierName      string          `json:"supplier_name"`
	Items             []Item          `json:"items"`
	Subtotal          decimal.Decimal `json:"subtotal"`
	ShippingCost      decimal.Decimal `json:"shipping_cost"`
	Total             decimal.Decimal `json:"total"`
	EstimatedDelivery string          `json:"estimated_delivery,omitempty"`
	HasStockIssues    bool            `json:"has_stock_issues"`
}
