package models

import (
	"time"

	"github.com/google/uuid"
)

// Notification is the persisted portal copy of a supplier-facing event. The
// pub/sub publish is fire-and-forget; this row is what the supplier portal
// bell reads.
type Notification struct {
	ID         uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	SupplierID *uuid.UUID `gorm:"column:supplier_id;type:uuid" json:"supplier_id"`
	Event      string     `gorm:"column:event;not null" json:"event"`
	Payload    string     `gorm:"column:payload;type:jsonb" json:"payload"`
	ReadAt     *time.Time `gorm:"column:read_at" json:"read_at"`
	CreatedAt  time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}
