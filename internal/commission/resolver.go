package commission

import (
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/tradelink-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/tradelink-backend/pkg/errors"
)

// Resolve finds the single active tier containing amount and returns its
// rate. Tier ranges are half-open [min, max), nil max meaning unbounded.
//
// Zero matches is an operator configuration problem, not a default-to-zero
// situation: the caller must surface it to admins. More than one match should
// be impossible while the non-overlap invariant holds, but tier rows can
// predate the invariant check, so the resolver detects and rejects ambiguity
// rather than silently picking a tier.
func Resolve(amount decimal.Decimal, tiers []models.CommissionTier) (decimal.Decimal, error) {
	if amount.IsNegative() {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "amount must not be negative")
	}

	var matches []models.CommissionTier
	for _, tier := range tiers {
		if !tier.IsActive {
			continue
		}
		if tier.Contains(amount) {
			matches = append(matches, tier)
		}
	}

	switch len(matches) {
	case 0:
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeTierConfig, "no commission tier matches amount").
			WithDetails(map[string]any{"amount": amount.StringFixed(2)})
	case 1:
		return matches[0].Rate, nil
	default:
		ranges := make([]string, 0, len(matches))
		for _, m := range matches {
			ranges = append(ranges, m.RangeLabel())
		}
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeTierConfig, "multiple commission tiers match amount").
			WithDetails(map[string]any{
				"amount": amount.StringFixed(2),
				"ranges": ranges,
			})
	}
}
