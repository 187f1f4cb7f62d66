package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CommissionTier maps an order-amount range to a platform commission rate.
// Among active tiers, ranges never overlap. The range is half-open:
// [MinAmount, MaxAmount), with a nil MaxAmount meaning unbounded.
type CommissionTier struct {
	ID        uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	MinAmount decimal.Decimal  `gorm:"column:min_amount;type:numeric(14,2);not null" json:"min_amount"`
	MaxAmount *decimal.Decimal `gorm:"column:max_amount;type:numeric(14,2)" json:"max_amount"`
	Rate      decimal.Decimal  `gorm:"column:rate;type:numeric(6,4);not null" json:"rate"`
	IsActive  bool             `gorm:"column:is_active;not null;default:true" json:"is_active"`
	CreatedAt time.Time        `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time        `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// Contains reports whether amount falls inside the tier's half-open range.
func (t CommissionTier) Contains(amount decimal.Decimal) bool {
	if amount.LessThan(t.MinAmount) {
		return false
	}
	if t.MaxAmount == nil {
		return true
	}
	return amount.LessThan(*t.MaxAmount)
}

// Overlaps reports whether two half-open ranges intersect, treating a nil
// max as positive infinity. Adjacent tiers ([0,1000) and [1000,+inf)) do
// not overlap.
func (t CommissionTier) Overlaps(other CommissionTier) bool {
	if other.MaxAmount != nil && !t.MinAmount.LessThan(*other.MaxAmount) {
		return false
	}
	if t.MaxAmount != nil && !other.MinAmount.LessThan(*t.MaxAmount) {
		return false
	}
	return true
}

// RangeLabel renders the tier range for operator-facing error messages.
func (t CommissionTier) RangeLabel() string {
	if t.MaxAmount == nil {
		return "[" + t.MinAmount.StringFixed(2) + ", +inf)"
	}
	return "[" + t.MinAmount.StringFixed(2) + ", " + t.MaxAmount.StringFixed(2) + ")"
}
