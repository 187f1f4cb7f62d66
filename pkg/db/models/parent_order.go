package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ParentOrder is the buyer-facing aggregate spanning the supplier orders
// produced by one checkout. Amounts are frozen at creation.
type ParentOrder struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderNumber string          `gorm:"column:order_number;uniqueIndex;not null" json:"order_number"`
	BuyerID     uuid.UUID       `gorm:"column:buyer_id;type:uuid;not null" json:"buyer_id"`
	TotalAmount decimal.Decimal `gorm:"column:total_amount;type:numeric(14,2);not null" json:"total_amount"`
	Children    []SupplierOrder `gorm:"foreignKey:ParentOrderID;constraint:OnDelete:CASCADE" json:"children,omitempty"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}
