package orders

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/tradelink-backend/pkg/db/models"
	"github.com/angelmondragon/tradelink-backend/pkg/enums"
)

// ListFilter narrows and pages order listings. Zero values mean "no filter";
// Page is 1-based.
type ListFilter struct {
	BuyerID    uuid.UUID
	SupplierID *uuid.UUID
	Status     enums.OrderStatus
	Page       int
	PageSize   int
}

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

func (f ListFilter) limitOffset() (limit, offset int) {
	limit = f.PageSize
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	page := f.Page
	if page < 1 {
		page = 1
	}
	return limit, (page - 1) * limit
}

// Repository persists parent and supplier orders.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateCheckout(ctx context.Context, parent *models.ParentOrder, children []models.SupplierOrder) error
	FindParent(ctx context.Context, id uuid.UUID) (*models.ParentOrder, error)
	FindSupplierOrder(ctx context.Context, id uuid.UUID) (*models.SupplierOrder, error)
	FindByParent(ctx context.Context, parentID uuid.UUID) ([]models.SupplierOrder, error)
	List(ctx context.Context, filter ListFilter) ([]models.SupplierOrder, int64, error)
	UpdateStatusConditional(ctx context.Context, id uuid.UUID, from, to enums.OrderStatus, updates map[string]any) (bool, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository wires the gorm-backed order repository.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

// CreateCheckout writes the parent and all children. Callers run it inside a
// transaction so a partial split never becomes visible.
func (r *repository) CreateCheckout(ctx context.Context, parent *models.ParentOrder, children []models.SupplierOrder) error {
	if err := r.db.WithContext(ctx).Create(parent).Error; err != nil {
		return err
	}
	for i := range children {
		children[i].ParentOrderID = parent.ID
	}
	return r.db.WithContext(ctx).Create(&children).Error
}

func (r *repository) FindParent(ctx context.Context, id uuid.UUID) (*models.ParentOrder, error) {
	var parent models.ParentOrder
	err := r.db.WithContext(ctx).
		Preload("Children", func(db *gorm.DB) *gorm.DB { return db.Order("created_at, order_number") }).
		Preload("Children.Items", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		First(&parent, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &parent, nil
}

func (r *repository) FindSupplierOrder(ctx context.Context, id uuid.UUID) (*models.SupplierOrder, error) {
	var order models.SupplierOrder
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		First(&order, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repository) FindByParent(ctx context.Context, parentID uuid.UUID) ([]models.SupplierOrder, error) {
	var children []models.SupplierOrder
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Where("parent_order_id = ?", parentID).
		Order("created_at, order_number").
		Find(&children).Error
	return children, err
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]models.SupplierOrder, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.SupplierOrder{})
	if filter.BuyerID != uuid.Nil {
		query = query.Where("buyer_id = ?", filter.BuyerID)
	}
	if filter.SupplierID != nil {
		query = query.Where("supplier_id = ?", *filter.SupplierID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit, offset := filter.limitOffset()
	var rows []models.SupplierOrder
	err := query.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	return rows, total, err
}

// UpdateStatusConditional advances the status only if the row still holds the
// expected previous status. A false return means a concurrent writer won.
func (r *repository) UpdateStatusConditional(ctx context.Context, id uuid.UUID, from, to enums.OrderStatus, updates map[string]any) (bool, error) {
	if updates == nil {
		updates = map[string]any{}
	}
	updates["status"] = to
	updates["updated_at"] = time.Now().UTC()

	res := r.db.WithContext(ctx).
		Model(&models.SupplierOrder{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
