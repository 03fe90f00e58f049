package views

import (
	"strings"
	"testing"

	"github.com/diyeddin/delivery-ui/internal/cart"
	"github.com/diyeddin/delivery-ui/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestCart_GroupedWithTotal(t *testing.T) {
	var b strings.Builder
	Cart(&b, []cart.StoreGroup{
		{StoreName: "Golden Rose Florist", Lines: []domain.CartLine{
			{ProductID: 1, Name: "Rose Bouquet", Price: 49.5, Quantity: 2},
		}},
		{StoreName: "Velvet Patisserie", Lines: []domain.CartLine{
			{ProductID: 9, Name: "Macarons", Price: 12, Quantity: 1},
		}},
	}, 111.0, 3)

	out := b.String()
	assert.Contains(t, out, "Golden Rose Florist")
	assert.Contains(t, out, "Velvet Patisserie")
	assert.Contains(t, out, "Rose Bouquet")
	assert.Contains(t, out, "3 item(s), total $111.00")
	// Store order follows the group order.
	assert.Less(t, strings.Index(out, "Golden Rose Florist"), strings.Index(out, "Velvet Patisserie"))
}

func TestCart_Empty(t *testing.T) {
	var b strings.Builder
	Cart(&b, nil, 0, 0)
	assert.Contains(t, b.String(), "empty")
}

func TestOrders_NewestFirstWithProgress(t *testing.T) {
	var b strings.Builder
	Orders(&b, []domain.Order{
		{ID: 1, Status: domain.OrderStatusDelivered, TotalPrice: 20},
		{ID: 2, Status: domain.OrderStatusConfirmed, TotalPrice: 35},
	})

	out := b.String()
	assert.Less(t, strings.Index(out, "Order #2"), strings.Index(out, "Order #1"))
	assert.Contains(t, out, "Packing")
	assert.Contains(t, out, " 35%")
	assert.Contains(t, out, "100%")
	assert.Contains(t, out, "[x] Ordered")
}

func TestFulfillment_Lanes(t *testing.T) {
	var b strings.Builder
	Fulfillment(&b, []domain.Order{
		{ID: 1, Status: domain.OrderStatusPending},
		{ID: 2, Status: domain.OrderStatusConfirmed},
		{ID: 3, Status: domain.OrderStatusInTransit},
	})

	out := b.String()
	assert.Contains(t, out, "New (1)")
	assert.Contains(t, out, "Ready for pickup (1)")
	assert.Contains(t, out, "In delivery / done (1)")
	assert.NotContains(t, out, "Cancelled")
}

func TestFulfillment_CancelledGetsOwnLane(t *testing.T) {
	var b strings.Builder
	Fulfillment(&b, []domain.Order{
		{ID: 7, Status: domain.OrderStatusInTransit},
		{ID: 8, Status: domain.OrderStatusCancelled},
	})

	out := b.String()
	assert.Contains(t, out, "In delivery / done (1)")
	assert.Contains(t, out, "Cancelled (1)")
	assert.Contains(t, out, "#8")
	// The cancelled order must not leak into the delivery lane.
	assert.Less(t, strings.Index(out, "In delivery / done"), strings.Index(out, "Cancelled"))
}

func TestInventory_ShowsStockUnits(t *testing.T) {
	var b strings.Builder
	Inventory(&b, []domain.Product{
		{ID: 21, Name: "Rose Bouquet", Price: 49.5, Stock: 12, Description: "A dozen reds"},
		{ID: 22, Name: "Tulip Mix", Price: 30, Stock: 0},
	})

	out := b.String()
	assert.Contains(t, out, "Rose Bouquet")
	assert.Contains(t, out, "12 units")
	assert.Contains(t, out, "0 units")
	assert.Contains(t, out, "A dozen reds")
}

func TestJobs_SuggestsNextDriverStep(t *testing.T) {
	var b strings.Builder
	Jobs(&b,
		[]domain.Order{{ID: 4, Status: domain.OrderStatusConfirmed}},
		[]domain.Order{
			{ID: 5, Status: domain.OrderStatusPickedUp},
			{ID: 6, Status: domain.OrderStatusDelivered},
		})

	out := b.String()
	assert.Contains(t, out, "Available (1)")
	// Terminal orders drop out of the active lane.
	assert.Contains(t, out, "Active (1)")
	assert.Contains(t, out, "Next step for #5: mark in_transit")
}
