package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/tradelink-backend/pkg/config"
	"github.com/angelmondragon/tradelink-backend/pkg/db/models"
	"github.com/angelmondragon/tradelink-backend/pkg/logger"
)

type stubNotificationRepo struct {
	created   []models.Notification
	createErr error
}

func (s *stubNotificationRepo) Create(ctx context.Context, notification *models.Notification) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.created = append(s.created, *notification)
	return nil
}

func (s *stubNotificationRepo) ListBySupplier(context.Context, *uuid.UUID, int) ([]models.Notification, error) {
	return nil, nil
}

func (s *stubNotificationRepo) MarkRead(context.Context, uuid.UUID) error { return nil }

func TestNotifyPersistsPortalCopy(t *testing.T) {
	repo := &stubNotificationRepo{}
	sink, err := NewService(repo, nil, config.PubSubConfig{}, logger.New(logger.Options{ServiceName: "test"}))
	require.NoError(t, err)

	supplierID := uuid.New()
	event := OrderEvent{
		Event:       EventOrderCreated,
		OrderID:     uuid.New(),
		OrderNumber: "TL-20260829-ABCD1234",
		SupplierID:  &supplierID,
		Status:      "pending",
		TotalAmount: "120.00",
	}
	require.NoError(t, sink.Notify(context.Background(), event))

	require.Len(t, repo.created, 1)
	stored := repo.created[0]
	assert.Equal(t, EventOrderCreated, stored.Event)
	require.NotNil(t, stored.SupplierID)
	assert.Equal(t, supplierID, *stored.SupplierID)

	var payload OrderEvent
	require.NoError(t, json.Unmarshal([]byte(stored.Payload), &payload))
	assert.Equal(t, event.OrderNumber, payload.OrderNumber)
	assert.Equal(t, event.TotalAmount, payload.TotalAmount)
}

func TestNotifySwallowsPersistenceFailure(t *testing.T) {
	repo := &stubNotificationRepo{createErr: errors.New("disk full")}
	sink, err := NewService(repo, nil, config.PubSubConfig{}, logger.New(logger.Options{ServiceName: "test"}))
	require.NoError(t, err)

	// Best-effort: callers must never fail an order write over this.
	assert.NoError(t, sink.Notify(context.Background(), OrderEvent{Event: EventOrderStatusChanged}))
}

func TestNopSink(t *testing.T) {
	assert.NoError(t, NopSink{}.Notify(context.Background(), OrderEvent{Event: EventOrderCreated}))
}
