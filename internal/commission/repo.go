package commission

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/tradelink-backend/pkg/db/models"
)

// Repository defines persistence operations for commission tiers.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, tier *models.CommissionTier) (*models.CommissionTier, error)
	Update(ctx context.Context, tier *models.CommissionTier) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.CommissionTier, error)
	ListAll(ctx context.Context) ([]models.CommissionTier, error)
	ListActive(ctx context.Context) ([]models.CommissionTier, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a commission tier repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, tier *models.CommissionTier) (*models.CommissionTier, error) {
	if err := r.db.WithContext(ctx).Create(tier).Error; err != nil {
		return nil, err
	}
	return tier, nil
}

func (r *repository) Update(ctx context.Context, tier *models.CommissionTier) error {
	return r.db.WithContext(ctx).
		Model(&models.CommissionTier{}).
		Where("id = ?", tier.ID).
		Updates(map[string]any{
			"min_amount": tier.MinAmount,
			"max_amount": tier.MaxAmount,
			"rate":       tier.Rate,
			"is_active":  tier.IsActive,
		}).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.CommissionTier{}, "id = ?", id).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.CommissionTier, error) {
	var tier models.CommissionTier
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&tier).Error
	if err != nil {
		return nil, err
	}
	return &tier, nil
}

func (r *repository) ListAll(ctx context.Context) ([]models.CommissionTier, error) {
	var tiers []models.CommissionTier
	err := r.db.WithContext(ctx).Order("min_amount ASC").Find(&tiers).Error
	if err != nil {
		return nil, err
	}
	return tiers, nil
}

func (r *repository) ListActive(ctx context.Context) ([]models.CommissionTier, error) {
	var tiers []models.CommissionTier
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("min_amount ASC").
		Find(&tiers).Error
	if err != nil {
		return nil, err
	}
	return tiers, nil
}
