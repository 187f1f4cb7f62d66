package commission

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/tradelink-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/tradelink-backend/pkg/errors"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func tier(min string, max *decimal.Decimal, rate string, active bool) models.CommissionTier {
	return models.CommissionTier{
		ID:        uuid.New(),
		MinAmount: dec(min),
		MaxAmount: max,
		Rate:      dec(rate),
		IsActive:  active,
	}
}

func TestResolveBoundaryIsHalfOpen(t *testing.T) {
	tiers := []models.CommissionTier{
		tier("0", decPtr("1000"), "0.05", true),
		tier("1000", nil, "0.03", true),
	}

	rate, err := Resolve(dec("999"), tiers)
	require.NoError(t, err)
	assert.True(t, rate.Equal(dec("0.05")))

	// The max boundary is exclusive: exactly 1000 lands in the upper tier.
	rate, err = Resolve(dec("1000"), tiers)
	require.NoError(t, err)
	assert.True(t, rate.Equal(dec("0.03")))

	rate, err = Resolve(dec("0"), tiers)
	require.NoError(t, err)
	assert.True(t, rate.Equal(dec("0.05")))
}

func TestResolveIgnoresInactiveTiers(t *testing.T) {
	tiers := []models.CommissionTier{
		tier("0", decPtr("500"), "0.10", false),
		tier("0", nil, "0.02", true),
	}

	rate, err := Resolve(dec("100"), tiers)
	require.NoError(t, err)
	assert.True(t, rate.Equal(dec("0.02")))
}

func TestResolveNoMatchingTier(t *testing.T) {
	tiers := []models.CommissionTier{
		tier("100", decPtr("1000"), "0.05", true),
	}

	_, err := Resolve(dec("50"), tiers)
	require.Error(t, err)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeTierConfig))

	_, err = Resolve(dec("10"), nil)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeTierConfig))
}

func TestResolveRejectsAmbiguousConfiguration(t *testing.T) {
	// Overlapping active tiers should be impossible, but the resolver must
	// not silently pick one if they exist anyway.
	tiers := []models.CommissionTier{
		tier("0", decPtr("1000"), "0.05", true),
		tier("500", decPtr("2000"), "0.03", true),
	}

	_, err := Resolve(dec("750"), tiers)
	require.Error(t, err)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeTierConfig))
}

func TestResolveRejectsNegativeAmount(t *testing.T) {
	_, err := Resolve(dec("-1"), nil)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))
}

func TestResolveIsDeterministic(t *testing.T) {
	tiers := []models.CommissionTier{
		tier("0", decPtr("100"), "0.08", true),
		tier("100", decPtr("1000"), "0.05", true),
		tier("1000", nil, "0.03", true),
	}

	first, err := Resolve(dec("100"), tiers)
	require.NoError(t, err)
	for range 10 {
		again, err := Resolve(dec("100"), tiers)
		require.NoError(t, err)
		assert.True(t, first.Equal(again))
	}
}
