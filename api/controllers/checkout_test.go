package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/tradelink-backend/internal/cart"
	"github.com/angelmondragon/tradelink-backend/internal/checkout"
	"github.com/angelmondragon/tradelink-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/tradelink-backend/pkg/errors"
	"github.com/angelmondragon/tradelink-backend/pkg/logger"
)

type stubCheckoutService struct {
	quote    func(ctx context.Context, items []cart.Item) (*checkout.Quote, error)
	checkout func(ctx context.Context, items []cart.Item, input checkout.Input) (*checkout.Result, error)
}

func (s *stubCheckoutService) Quote(ctx context.Context, items []cart.Item) (*checkout.Quote, error) {
	return s.quote(ctx, items)
}

func (s *stubCheckoutService) Checkout(ctx context.Context, items []cart.Item, input checkout.Input) (*checkout.Result, error) {
	return s.checkout(ctx, items, input)
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test"})
}

func checkoutBody(buyerID uuid.UUID) string {
	return `{
		"buyer_id": "` + buyerID.String() + `",
		"payment_method": "card",
		"shipping_address": {"street": "500 Market St", "city": "San Francisco", "state": "CA", "postal_code": "94105"},
		"items": [{"product_id": "` + uuid.NewString() + `", "quantity": 2, "unit_price": "10.00", "total_price": "20.00", "supplier_name": "Acme"}]
	}`
}

func TestExecuteCheckoutCreated(t *testing.T) {
	buyerID := uuid.New()
	svc := &stubCheckoutService{
		checkout: func(ctx context.Context, items []cart.Item, input checkout.Input) (*checkout.Result, error) {
			assert.Equal(t, buyerID, input.BuyerID)
			require.Len(t, items, 1)
			return &checkout.Result{
				Parent: models.ParentOrder{ID: uuid.New(), OrderNumber: "TL-20260829-AAAA1111", TotalAmount: decimal.RequireFromString("20.00")},
				Children: []models.SupplierOrder{
					{ID: uuid.New(), OrderNumber: "TL-20260829-BBBB2222"},
				},
			}, nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", strings.NewReader(checkoutBody(buyerID)))
	rec := httptest.NewRecorder()
	ExecuteCheckout(svc, testLogger())(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var envelope struct {
		Data checkout.Result `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "TL-20260829-AAAA1111", envelope.Data.Parent.OrderNumber)
	assert.Len(t, envelope.Data.Children, 1)
}

func TestExecuteCheckoutRejectsUnknownFields(t *testing.T) {
	svc := &stubCheckoutService{
		checkout: func(context.Context, []cart.Item, checkout.Input) (*checkout.Result, error) {
			t.Fatal("service must not be called")
			return nil, nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", strings.NewReader(`{"surprise": true}`))
	rec := httptest.NewRecorder()
	ExecuteCheckout(svc, testLogger())(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, string(pkgerrors.CodeValidation), envelope.Error.Code)
}

func TestExecuteCheckoutMapsTierConfigTo422(t *testing.T) {
	svc := &stubCheckoutService{
		checkout: func(context.Context, []cart.Item, checkout.Input) (*checkout.Result, error) {
			return nil, pkgerrors.New(pkgerrors.CodeTierConfig, "no commission tier matches amount")
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", strings.NewReader(checkoutBody(uuid.New())))
	rec := httptest.NewRecorder()
	ExecuteCheckout(svc, testLogger())(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestQuoteCheckoutReturnsGroups(t *testing.T) {
	svc := &stubCheckoutService{
		quote: func(ctx context.Context, items []cart.Item) (*checkout.Quote, error) {
			return &checkout.Quote{
				Groups:         cart.GroupBySupplier(items),
				Subtotal:       decimal.RequireFromString("20.00"),
				ShippingTotal:  decimal.Zero,
				Total:          decimal.RequireFromString("20.00"),
				HasStockIssues: false,
			}, nil
		},
	}

	body := `{"items": [{"product_id": "` + uuid.NewString() + `", "quantity": 2, "unit_price": "10.00", "total_price": "20.00", "supplier_name": "Acme"}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout/quote", strings.NewReader(body))
	rec := httptest.NewRecorder()
	QuoteCheckout(svc, testLogger())(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var envelope struct {
		Data checkout.Quote `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Len(t, envelope.Data.Groups, 1)
	assert.False(t, envelope.Data.HasStockIssues)
}
