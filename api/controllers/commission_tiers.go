package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/tradelink-backend/api/responses"
	"github.com/angelmondragon/tradelink-backend/api/validators"
	"github.com/angelmondragon/tradelink-backend/internal/commission"
	"github.com/angelmondragon/tradelink-backend/pkg/db/models"
	"github.com/angelmondragon/tradelink-backend/pkg/logger"
)

type tierRequest struct {
	MinAmount decimal.Decimal  `json:"min_amount"`
	MaxAmount *decimal.Decimal `json:"max_amount"`
	Rate      decimal.Decimal  `json:"rate"`
	IsActive  bool             `json:"is_active"`
}

func (r tierRequest) toInput() commission.TierInput {
	return commission.TierInput{
		MinAmount: r.MinAmount,
		MaxAmount: r.MaxAmount,
		Rate:      r.Rate,
		IsActive:  r.IsActive,
	}
}

// ListTiers returns every configured commission tier, active or not.
func ListTiers(svc commission.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tiers, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), w, logg, err)
			return
		}
		if tiers == nil {
			tiers = []models.CommissionTier{}
		}
		responses.WriteSuccess(w, http.StatusOK, tiers)
	}
}

// CreateTier adds a commission tier after range validation.
func CreateTier(svc commission.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req tierRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), w, logg, err)
			return
		}

		tier, err := svc.Create(r.Context(), req.toInput())
		if err != nil {
			responses.WriteError(r.Context(), w, logg, err)
			return
		}
		responses.WriteSuccess(w, http.StatusCreated, tier)
	}
}

// UpdateTier replaces a tier's range, rate, and active flag.
func UpdateTier(svc commission.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(chi.URLParam(r, "tierId"), "tier id")
		if err != nil {
			responses.WriteError(r.Context(), w, logg, err)
			return
		}

		var req tierRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), w, logg, err)
			return
		}

		tier, err := svc.Update(r.Context(), id, req.toInput())
		if err != nil {
			responses.WriteError(r.Context(), w, logg, err)
			return
		}
		responses.WriteSuccess(w, http.StatusOK, tier)
	}
}

// DeleteTier removes a tier. Rates stamped on existing orders are untouched.
func DeleteTier(svc commission.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(chi.URLParam(r, "tierId"), "tier id")
		if err != nil {
			responses.WriteError(r.Context(), w, logg, err)
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), w, logg, err)
			return
		}
		responses.WriteSuccess(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}

// ToggleTier flips a tier's active flag, re-checking overlap on activation.
func ToggleTier(svc commission.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(chi.URLParam(r, "tierId"), "tier id")
		if err != nil {
			responses.WriteError(r.Context(), w, logg, err)
			return
		}

		tier, err := svc.ToggleActive(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), w, logg, err)
			return
		}
		responses.WriteSuccess(w, http.StatusOK, tier)
	}
}
