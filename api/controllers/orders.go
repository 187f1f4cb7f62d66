package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/tradelink-backend/api/responses"
	"github.com/angelmondragon/tradelink-backend/api/validators"
	"github.com/angelmondragon/tradelink-backend/internal/orders"
	"github.com/angelmondragon/tradelink-backend/pkg/db/models"
	"github.com/angelmondragon/tradelink-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/tradelink-backend/pkg/errors"
	"github.com/angelmondragon/tradelink-backend/pkg/logger"
)

type transitionRequest struct {
	Status         string  `json:"status" validate:"required"`
	TrackingNumber *string `json:"tracking_number"`
}

type orderListResponse struct {
	Orders   []models.SupplierOrder `json:"orders"`
	Total    int64                  `json:"total"`
	Page     int                    `json:"page"`
	PageSize int                    `json:"page_size"`
}

// ListOrders returns supplier orders filtered by buyer, supplier, or status.
func ListOrders(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := listFilterFromQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), w, logg, err)
			return
		}

		rows, total, err := svc.List(r.Context(), filter)
		if err != nil {
			responses.WriteError(r.Context(), w, logg, err)
			return
		}

		if rows == nil {
			rows = []models.SupplierOrder{}
		}
		responses.WriteSuccess(w, http.StatusOK, orderListResponse{
			Orders:   rows,
			Total:    total,
			Page:     filter.Page,
			PageSize: filter.PageSize,
		})
	}
}

// GetOrder returns one supplier order with its items.
func GetOrder(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(chi.URLParam(r, "orderId"), "order id")
		if err != nil {
			responses.WriteError(r.Context(), w, logg, err)
			return
		}

		order, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), w, logg, err)
			return
		}
		responses.WriteSuccess(w, http.StatusOK, order)
	}
}

// GetParentOrder returns the buyer-facing roll-up for one checkout.
func GetParentOrder(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(chi.URLParam(r, "parentId"), "parent order id")
		if err != nil {
			responses.WriteError(r.Context(), w, logg, err)
			return
		}

		summary, err := svc.ParentSummary(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), w, logg, err)
			return
		}
		responses.WriteSuccess(w, http.StatusOK, summary)
	}
}

// TransitionOrder applies a supplier's status change to one order.
func TransitionOrder(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(chi.URLParam(r, "orderId"), "order id")
		if err != nil {
			responses.WriteError(r.Context(), w, logg, err)
			return
		}

		var req transitionRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), w, logg, err)
			return
		}

		status, err := enums.ParseOrderStatus(strings.ToLower(strings.TrimSpace(req.Status)))
		if err != nil {
			responses.WriteError(r.Context(), w, logg, pkgerrors.New(pkgerrors.CodeValidation, "unknown order status").
				WithDetails(map[string]any{"status": req.Status}))
			return
		}

		ctx := logg.WithOrderID(r.Context(), id.String())
		order, err := svc.Transition(ctx, orders.TransitionInput{
			OrderID:        id,
			NewStatus:      status,
			TrackingNumber: req.TrackingNumber,
		})
		if err != nil {
			responses.WriteError(ctx, w, logg, err)
			return
		}
		responses.WriteSuccess(w, http.StatusOK, order)
	}
}

func listFilterFromQuery(r *http.Request) (orders.ListFilter, error) {
	var filter orders.ListFilter

	if raw := strings.TrimSpace(r.URL.Query().Get("buyer_id")); raw != "" {
		id, err := validators.PathUUID(raw, "buyer_id")
		if err != nil {
			return filter, err
		}
		filter.BuyerID = id
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("supplier_id")); raw != "" {
		id, err := validators.PathUUID(raw, "supplier_id")
		if err != nil {
			return filter, err
		}
		filter.SupplierID = &id
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
		status, err := enums.ParseOrderStatus(strings.ToLower(raw))
		if err != nil {
			return filter, pkgerrors.New(pkgerrors.CodeValidation, "unknown order status").
				WithDetails(map[string]any{"status": raw})
		}
		filter.Status = status
	}

	page, err := validators.QueryInt(r, "page", 1)
	if err != nil {
		return filter, err
	}
	pageSize, err := validators.QueryInt(r, "page_size", 0)
	if err != nil {
		return filter, err
	}
	filter.Page = page
	filter.PageSize = pageSize
	return filter, nil
}
