package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/tradelink-backend/internal/orders"
	"github.com/angelmondragon/tradelink-backend/pkg/db/models"
	"github.com/angelmondragon/tradelink-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/tradelink-backend/pkg/errors"
)

type stubOrderService struct {
	get        func(ctx context.Context, id uuid.UUID) (*models.SupplierOrder, error)
	list       func(ctx context.Context, filter orders.ListFilter) ([]models.SupplierOrder, int64, error)
	parent     func(ctx context.Context, parentID uuid.UUID) (*orders.ParentSummary, error)
	transition func(ctx context.Context, input orders.TransitionInput) (*models.SupplierOrder, error)
}

func (s *stubOrderService) Get(ctx context.Context, id uuid.UUID) (*models.SupplierOrder, error) {
	return s.get(ctx, id)
}

func (s *stubOrderService) List(ctx context.Context, filter orders.ListFilter) ([]models.SupplierOrder, int64, error) {
	return s.list(ctx, filter)
}

func (s *stubOrderService) ParentSummary(ctx context.Context, parentID uuid.UUID) (*orders.ParentSummary, error) {
	return s.parent(ctx, parentID)
}

func (s *stubOrderService) Transition(ctx context.Context, input orders.TransitionInput) (*models.SupplierOrder, error) {
	return s.transition(ctx, input)
}

func orderRouter(svc orders.Service) http.Handler {
	r := chi.NewRouter()
	logg := testLogger()
	r.Get("/orders", ListOrders(svc, logg))
	r.Get("/orders/parent/{parentId}", GetParentOrder(svc, logg))
	r.Get("/orders/{orderId}", GetOrder(svc, logg))
	r.Post("/orders/{orderId}/status", TransitionOrder(svc, logg))
	return r
}

func TestTransitionOrderParsesStatusAndTracking(t *testing.T) {
	orderID := uuid.New()
	svc := &stubOrderService{
		get: func(ctx context.Context, id uuid.UUID) (*models.SupplierOrder, error) {
			return &models.SupplierOrder{ID: id, Status: enums.OrderStatusProcessing}, nil
		},
		transition: func(ctx context.Context, input orders.TransitionInput) (*models.SupplierOrder, error) {
			assert.Equal(t, orderID, input.OrderID)
			assert.Equal(t, enums.OrderStatusShipped, input.NewStatus)
			require.NotNil(t, input.TrackingNumber)
			assert.Equal(t, "1Z999", *input.TrackingNumber)
			return &models.SupplierOrder{ID: orderID, Status: enums.OrderStatusShipped, TrackingNumber: input.TrackingNumber}, nil
		},
	}

	body := `{"status": "shipped", "tracking_number": "1Z999"}`
	req := httptest.NewRequest(http.MethodPost, "/orders/"+orderID.String()+"/status", strings.NewReader(body))
	rec := httptest.NewRecorder()
	orderRouter(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var envelope struct {
		Data models.SupplierOrder `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, enums.OrderStatusShipped, envelope.Data.Status)
}

func TestTransitionOrderRejectsUnknownStatus(t *testing.T) {
	svc := &stubOrderService{
		transition: func(context.Context, orders.TransitionInput) (*models.SupplierOrder, error) {
			t.Fatal("service must not be called")
			return nil, nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/orders/"+uuid.NewString()+"/status", strings.NewReader(`{"status": "teleported"}`))
	rec := httptest.NewRecorder()
	orderRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTransitionOrderMapsStateConflictTo422(t *testing.T) {
	svc := &stubOrderService{
		transition: func(context.Context, orders.TransitionInput) (*models.SupplierOrder, error) {
			return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "order status transition not allowed")
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/orders/"+uuid.NewString()+"/status", strings.NewReader(`{"status": "pending"}`))
	rec := httptest.NewRecorder()
	orderRouter(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, string(pkgerrors.CodeStateConflict), envelope.Error.Code)
}

func TestGetOrderInvalidID(t *testing.T) {
	svc := &stubOrderService{
		get: func(context.Context, uuid.UUID) (*models.SupplierOrder, error) {
			t.Fatal("service must not be called")
			return nil, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/orders/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	orderRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetOrderNotFound(t *testing.T) {
	svc := &stubOrderService{
		get: func(context.Context, uuid.UUID) (*models.SupplierOrder, error) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/orders/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()
	orderRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListOrdersBuildsFilterFromQuery(t *testing.T) {
	supplierID := uuid.New()
	svc := &stubOrderService{
		list: func(ctx context.Context, filter orders.ListFilter) ([]models.SupplierOrder, int64, error) {
			require.NotNil(t, filter.SupplierID)
			assert.Equal(t, supplierID, *filter.SupplierID)
			assert.Equal(t, enums.OrderStatusShipped, filter.Status)
			assert.Equal(t, 2, filter.Page)
			assert.Equal(t, 10, filter.PageSize)
			return []models.SupplierOrder{{ID: uuid.New()}}, 11, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/orders?supplier_id="+supplierID.String()+"&status=shipped&page=2&page_size=10", nil)
	rec := httptest.NewRecorder()
	orderRouter(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var envelope struct {
		Data struct {
			Total int64 `json:"total"`
			Page  int   `json:"page"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, int64(11), envelope.Data.Total)
	assert.Equal(t, 2, envelope.Data.Page)
}

func TestGetParentOrderReturnsAggregate(t *testing.T) {
	parentID := uuid.New()
	svc := &stubOrderService{
		parent: func(ctx context.Context, id uuid.UUID) (*orders.ParentSummary, error) {
			assert.Equal(t, parentID, id)
			return &orders.ParentSummary{
				Parent: models.ParentOrder{ID: parentID, OrderNumber: "TL-P"},
				Aggregate: orders.AggregateView{
					Status:   enums.OrderStatusConfirmed,
					Progress: 40,
				},
			}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/orders/parent/"+parentID.String(), nil)
	rec := httptest.NewRecorder()
	orderRouter(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var envelope struct {
		Data orders.ParentSummary `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, 40, envelope.Data.Aggregate.Progress)
}
