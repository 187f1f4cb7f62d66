package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/tradelink-backend/pkg/enums"
	"github.com/angelmondragon/tradelink-backend/pkg/types"
)

// SupplierOrder is a single supplier's independent order carved out of one
// checkout. Structure and amounts are immutable after creation; only status,
// payment status, tracking number, and timestamps mutate.
type SupplierOrder struct {
	ID                uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderNumber       string              `gorm:"column:order_number;uniqueIndex;not null" json:"order_number"`
	ParentOrderID     uuid.UUID           `gorm:"column:parent_order_id;type:uuid;not null" json:"parent_order_id"`
	BuyerID           uuid.UUID           `gorm:"column:buyer_id;type:uuid;not null" json:"buyer_id"`
	SupplierID        *uuid.UUID          `gorm:"column:supplier_id;type:uuid" json:"supplier_id"`
	SupplierName      string              `gorm:"column:supplier_name;not null" json:"supplier_name"`
	Status            enums.OrderStatus   `gorm:"column:status;not null;default:'pending'" json:"status"`
	PaymentStatus     enums.PaymentStatus `gorm:"column:payment_status;not null;default:'pending'" json:"payment_status"`
	PaymentMethod     string              `gorm:"column:payment_method;not null" json:"payment_method"`
	Subtotal          decimal.Decimal     `gorm:"column:subtotal;type:numeric(14,2);not null" json:"subtotal"`
	ShippingTotal     decimal.Decimal     `gorm:"column:shipping_total;type:numeric(14,2);not null" json:"shipping_total"`
	TotalAmount       decimal.Decimal     `gorm:"column:total_amount;type:numeric(14,2);not null" json:"total_amount"`
	CommissionRate    decimal.Decimal     `gorm:"column:commission_rate;type:numeric(6,4);not null" json:"commission_rate"`
	TrackingNumber    *string             `gorm:"column:tracking_number" json:"tracking_number"`
	EstimatedDelivery *string             `gorm:"column:estimated_delivery" json:"estimated_delivery"`
	ShippingAddress   types.Address       `gorm:"column:shipping_address;type:jsonb;serializer:json" json:"shipping_address"`
	Items             []SupplierOrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
	ActualDelivery    *time.Time          `gorm:"column:actual_delivery" json:"actual_delivery"`
	CreatedAt         time.Time           `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time           `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// IsPlatformOrder reports whether the order belongs to the platform's own
// virtual store rather than a third-party supplier.
func (o SupplierOrder) IsPlatformOrder() bool {
	return o.SupplierID == nil
}
