package cart

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(v bool) *bool { return &v }

func item(supplier *uuid.UUID, name string, qty int, unit string) Item {
	unitPrice := decimal.RequireFromString(unit)
	return Item{
		ProductID:    uuid.New(),
		ProductName:  name,
		SupplierID:   supplier,
		SupplierName: name + " Co",
		Quantity:     qty,
		UnitPrice:    unitPrice,
		TotalPrice:   unitPrice.Mul(decimal.NewFromInt(int64(qty))),
	}
}

func TestGroupBySupplierPartitionsAndTotals(t *testing.T) {
	supplierX := uuid.New()
	supplierY := uuid.New()

	items := []Item{
		item(&supplierX, "X", 3, "10"),
		item(&supplierY, "Y", 1, "20"),
		item(&supplierX, "X", 2, "5"),
	}

	groups := GroupBySupplier(items)
	require.Len(t, groups, 2)

	// First appearance order: X before Y.
	assert.Equal(t, supplierX.String(), groups[0].Key)
	assert.Equal(t, supplierY.String(), groups[1].Key)

	// Items keep cart order within the group.
	require.Len(t, groups[0].Items, 2)
	assert.Equal(t, 3, groups[0].Items[0].Quantity)
	assert.Equal(t, 2, groups[0].Items[1].Quantity)

	assert.True(t, groups[0].Subtotal.Equal(decimal.NewFromInt(40)))
	assert.True(t, groups[1].Subtotal.Equal(decimal.NewFromInt(20)))

	// Group subtotals conserve the cart total.
	sum := decimal.Zero
	for _, g := range groups {
		sum = sum.Add(g.Subtotal)
	}
	assert.True(t, sum.Equal(decimal.NewFromInt(60)))
}

func TestGroupBySupplierPlatformFallback(t *testing.T) {
	it := item(nil, "", 1, "9.99")
	it.SupplierName = ""

	groups := GroupBySupplier([]Item{it})
	require.Len(t, groups, 1)
	assert.Equal(t, PlatformSupplierKey, groups[0].Key)
	assert.Equal(t, PlatformSupplierName, groups[0].SupplierName)
	assert.Nil(t, groups[0].SupplierID)
}

func TestGroupBySupplierStockIssuesAreSticky(t *testing.T) {
	supplier := uuid.New()

	healthy := item(&supplier, "A", 5, "10")
	outOfStock := item(&supplier, "A", 1, "10")
	outOfStock.InStock = boolPtr(false)

	groups := GroupBySupplier([]Item{healthy, outOfStock})
	require.Len(t, groups, 1)
	assert.True(t, groups[0].HasStockIssues)
}

func TestGroupBySupplierMOQViolationFlagsGroup(t *testing.T) {
	supplier := uuid.New()
	below := item(&supplier, "A", 2, "10")
	below.MOQ = 5

	groups := GroupBySupplier([]Item{below})
	require.Len(t, groups, 1)
	assert.True(t, groups[0].HasStockIssues)

	meets := item(&supplier, "A", 5, "10")
	meets.MOQ = 5
	groups = GroupBySupplier([]Item{meets})
	assert.False(t, groups[0].HasStockIssues)
}

func TestGroupBySupplierShippingAndTotal(t *testing.T) {
	supplier := uuid.New()
	a := item(&supplier, "A", 1, "10")
	a.ShippingCost = decimal.RequireFromString("2.50")
	b := item(&supplier, "A", 1, "5")
	b.ShippingCost = decimal.RequireFromString("1.50")

	groups := GroupBySupplier([]Item{a, b})
	require.Len(t, groups, 1)
	assert.True(t, groups[0].ShippingCost.Equal(decimal.NewFromInt(4)))
	assert.True(t, groups[0].Total.Equal(decimal.NewFromInt(19)))
}

func TestGroupBySupplierLeadTimeKeepsGreatestString(t *testing.T) {
	supplier := uuid.New()
	a := item(&supplier, "A", 1, "10")
	a.LeadTime = "3-5 days"
	b := item(&supplier, "A", 1, "10")
	b.LeadTime = "7-10 days"

	groups := GroupBySupplier([]Item{a, b})
	assert.Equal(t, "7-10 days", groups[0].EstimatedDelivery)

	// Known quirk of the string ordering: "9 days" compares greater than
	// "10 days".
	c := item(&supplier, "A", 1, "10")
	c.LeadTime = "9 days"
	d := item(&supplier, "A", 1, "10")
	d.LeadTime = "10 days"
	groups = GroupBySupplier([]Item{c, d})
	assert.Equal(t, "9 days", groups[0].EstimatedDelivery)
}

func TestGroupBySupplierEmptyInput(t *testing.T) {
	assert.Empty(t, GroupBySupplier(nil))
	assert.Empty(t, GroupBySupplier([]Item{}))
}

func TestGroupBySupplierIdempotent(t *testing.T) {
	supplierX := uuid.New()
	supplierY := uuid.New()
	items := []Item{
		item(&supplierX, "X", 3, "10"),
		item(&supplierY, "Y", 1, "20"),
		item(&supplierX, "X", 2, "5"),
	}

	first := GroupBySupplier(items)

	var flattened []Item
	for _, g := range first {
		flattened = append(flattened, g.Items...)
	}
	second := GroupBySupplier(flattened)

	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].Key, second[i].Key)
		assert.True(t, first[i].Subtotal.Equal(second[i].Subtotal))
		assert.Len(t, second[i].Items, len(first[i].Items))
	}
}
