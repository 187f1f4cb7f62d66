package orders

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/tradelink-backend/pkg/db/models"
	"github.com/angelmondragon/tradelink-backend/pkg/enums"
)

func child(status enums.OrderStatus) models.SupplierOrder {
	return models.SupplierOrder{
		ID:           uuid.New(),
		OrderNumber:  "TL-" + uuid.NewString()[:8],
		SupplierName: "Supplier",
		Status:       status,
	}
}

func TestAggregateIsLeastProgressedChild(t *testing.T) {
	view := AggregateProgress([]models.SupplierOrder{
		child(enums.OrderStatusDelivered),
		child(enums.OrderStatusShipped),
		child(enums.OrderStatusProcessing),
	})

	assert.Equal(t, enums.OrderStatusProcessing, view.Status)
	assert.Equal(t, 60, view.Progress)
	require.Len(t, view.Children, 3)
	assert.Equal(t, 100, view.Children[0].Progress)
}

func TestAggregateExcludesCancelledChildren(t *testing.T) {
	view := AggregateProgress([]models.SupplierOrder{
		child(enums.OrderStatusCancelled),
		child(enums.OrderStatusShipped),
	})

	// The cancelled child is listed but does not drag the minimum down.
	assert.Equal(t, enums.OrderStatusShipped, view.Status)
	assert.Equal(t, 80, view.Progress)
	require.Len(t, view.Children, 2)
	assert.Equal(t, enums.OrderStatusCancelled, view.Children[0].Status)
	assert.Equal(t, 0, view.Children[0].Progress)
}

func TestAggregateAllCancelled(t *testing.T) {
	view := AggregateProgress([]models.SupplierOrder{
		child(enums.OrderStatusCancelled),
		child(enums.OrderStatusCancelled),
	})

	assert.Equal(t, enums.OrderStatusCancelled, view.Status)
	assert.Equal(t, 0, view.Progress)
}

func TestAggregateSingleChildMirrorsIt(t *testing.T) {
	view := AggregateProgress([]models.SupplierOrder{child(enums.OrderStatusConfirmed)})
	assert.Equal(t, enums.OrderStatusConfirmed, view.Status)
	assert.Equal(t, 40, view.Progress)
}
