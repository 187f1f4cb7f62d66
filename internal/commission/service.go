package commission

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/angelmondragon/tradelink-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/tradelink-backend/pkg/errors"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service manages the admin-facing commission tier lifecycle and resolves
// rates for checkout.
type Service interface {
	Create(ctx context.Context, input TierInput) (*models.CommissionTier, error)
	Update(ctx context.Context, id uuid.UUID, input TierInput) (*models.CommissionTier, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ToggleActive(ctx context.Context, id uuid.UUID) (*models.CommissionTier, error)
	List(ctx context.Context) ([]models.CommissionTier, error)
	ResolveRate(ctx context.Context, amount decimal.Decimal) (decimal.Decimal, error)
}

// TierInput carries the admin-provided tier fields.
type TierInput struct {
	MinAmount decimal.Decimal  `json:"min_amount"`
	MaxAmount *decimal.Decimal `json:"max_amount"`
	Rate      decimal.Decimal  `json:"rate"`
	IsActive  bool             `json:"is_active"`
}

type service struct {
	repo Repository
	tx   txRunner
}

// NewService wires the commission tier service.
func NewService(repo Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("commission repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx}, nil
}

func (s *service) Create(ctx context.Context, input TierInput) (*models.CommissionTier, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	var created *models.CommissionTier
	// Overlap check and insert run in one transaction so two concurrent
	// edits cannot both pass the check.
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		candidate := models.CommissionTier{
			MinAmount: input.MinAmount,
			MaxAmount: input.MaxAmount,
			Rate:      input.Rate,
			IsActive:  input.IsActive,
		}
		if err := s.ensureNoOverlap(ctx, repo, candidate, uuid.Nil); err != nil {
			return err
		}

		var err error
		created, err = repo.Create(ctx, &candidate)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create commission tier")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input TierInput) (*models.CommissionTier, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tier id required")
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}

	var updated *models.CommissionTier
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		existing, err := repo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "commission tier not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load commission tier")
		}

		existing.MinAmount = input.MinAmount
		existing.MaxAmount = input.MaxAmount
		existing.Rate = input.Rate
		existing.IsActive = input.IsActive

		if err := s.ensureNoOverlap(ctx, repo, *existing, id); err != nil {
			return err
		}
		if err := repo.Update(ctx, existing); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update commission tier")
		}
		updated = existing
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "tier id required")
	}
	// Deleting a tier never touches rates already stamped on orders.
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete commission tier")
	}
	return nil
}

func (s *service) ToggleActive(ctx context.Context, id uuid.UUID) (*models.CommissionTier, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tier id required")
	}

	var toggled *models.CommissionTier
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		existing, err := repo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "commission tier not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load commission tier")
		}

		existing.IsActive = !existing.IsActive
		// Re-activating must re-check overlap: an inactive tier may have
		// been superseded by a newer active range.
		if existing.IsActive {
			if err := s.ensureNoOverlap(ctx, repo, *existing, id); err != nil {
				return err
			}
		}
		if err := repo.Update(ctx, existing); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "toggle commission tier")
		}
		toggled = existing
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toggled, nil
}

func (s *service) List(ctx context.Context) ([]models.CommissionTier, error) {
	tiers, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list commission tiers")
	}
	return tiers, nil
}

func (s *service) ResolveRate(ctx context.Context, amount decimal.Decimal) (decimal.Decimal, error) {
	tiers, err := s.repo.ListActive(ctx)
	if err != nil {
		return decimal.Zero, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load active commission tiers")
	}
	return Resolve(amount, tiers)
}

// ensureNoOverlap rejects a candidate whose half-open range intersects any
// other active tier. The candidate itself (on update) is skipped via ignoreID.
// Inactive candidates never conflict.
func (s *service) ensureNoOverlap(ctx context.Context, repo Repository, candidate models.CommissionTier, ignoreID uuid.UUID) error {
	if !candidate.IsActive {
		return nil
	}
	active, err := repo.ListActive(ctx)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load active commission tiers")
	}
	for _, other := range active {
		if ignoreID != uuid.Nil && other.ID == ignoreID {
			continue
		}
		if candidate.Overlaps(other) {
			return pkgerrors.New(pkgerrors.CodeConflict,
				fmt.Sprintf("tier range %s overlaps existing active tier %s", candidate.RangeLabel(), other.RangeLabel())).
				WithDetails(map[string]any{
					"conflicting_tier_id": other.ID,
					"conflicting_range":   other.RangeLabel(),
				})
		}
	}
	return nil
}

func validateInput(input TierInput) error {
	if input.MinAmount.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "min_amount must not be negative")
	}
	if input.MaxAmount != nil && !input.MinAmount.LessThan(*input.MaxAmount) {
		return pkgerrors.New(pkgerrors.CodeValidation, "max_amount must be greater than min_amount")
	}
	if input.Rate.IsNegative() || input.Rate.GreaterThan(decimal.NewFromInt(1)) {
		return pkgerrors.New(pkgerrors.CodeValidation, "rate must be between 0 and 1")
	}
	return nil
}
