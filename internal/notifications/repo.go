package notifications

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/tradelink-backend/pkg/db/models"
)

// Repository persists the portal copy of supplier notifications.
type Repository interface {
	Create(ctx context.Context, notification *models.Notification) error
	ListBySupplier(ctx context.Context, supplierID *uuid.UUID, limit int) ([]models.Notification, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository wires the gorm-backed notification repository.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, notification *models.Notification) error {
	return r.db.WithContext(ctx).Create(notification).Error
}

func (r *repository) ListBySupplier(ctx context.Context, supplierID *uuid.UUID, limit int) ([]models.Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	query := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit)
	if supplierID == nil {
		query = query.Where("supplier_id IS NULL")
	} else {
		query = query.Where("supplier_id = ?", *supplierID)
	}
	var rows []models.Notification
	err := query.Find(&rows).Error
	return rows, err
}

func (r *repository) MarkRead(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("id = ? AND read_at IS NULL", id).
		Update("read_at", gorm.Expr("now()")).Error
}
