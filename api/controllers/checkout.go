package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/angelmondragon/tradelink-backend/api/responses"
	"github.com/angelmondragon/tradelink-backend/api/validators"
	"github.com/angelmondragon/tradelink-backend/internal/cart"
	"github.com/angelmondragon/tradelink-backend/internal/checkout"
	"github.com/angelmondragon/tradelink-backend/pkg/logger"
	"github.com/angelmondragon/tradelink-backend/pkg/types"
)

type quoteRequest struct {
	Items []cart.Item `json:"items" validate:"required,min=1,dive"`
}

type checkoutRequest struct {
	BuyerID         uuid.UUID     `json:"buyer_id" validate:"required"`
	PaymentMethod   string        `json:"payment_method" validate:"required"`
	ShippingAddress types.Address `json:"shipping_address"`
	Items           []cart.Item   `json:"items" validate:"required,min=1,dive"`
}

// QuoteCheckout previews the supplier split for a cart without creating
// anything.
func QuoteCheckout(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req quoteRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), w, logg, err)
			return
		}

		quote, err := svc.Quote(r.Context(), req.Items)
		if err != nil {
			responses.WriteError(r.Context(), w, logg, err)
			return
		}
		responses.WriteSuccess(w, http.StatusOK, quote)
	}
}

// ExecuteCheckout splits the cart into supplier orders and persists them.
func ExecuteCheckout(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req checkoutRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), w, logg, err)
			return
		}

		ctx := logg.WithField(r.Context(), "buyer_id", req.BuyerID.String())
		result, err := svc.Checkout(ctx, req.Items, checkout.Input{
			BuyerID:         req.BuyerID,
			PaymentMethod:   req.PaymentMethod,
			ShippingAddress: req.ShippingAddress,
		})
		if err != nil {
			responses.WriteError(ctx, w, logg, err)
			return
		}
		responses.WriteSuccess(w, http.StatusCreated, result)
	}
}
