package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatus_IsTerminal(t *testing.T) {
	assert.True(t, OrderStatusDelivered.IsTerminal())
	assert.True(t, OrderStatusCancelled.IsTerminal())
	assert.False(t, OrderStatusPending.IsTerminal())
	assert.False(t, OrderStatusInTransit.IsTerminal())
}

func TestOrderStatus_Known(t *testing.T) {
	for _, s := range []OrderStatus{
		OrderStatusPending, OrderStatusConfirmed, OrderStatusAssigned,
		OrderStatusPickedUp, OrderStatusInTransit, OrderStatusDelivered,
		OrderStatusCancelled,
	} {
		assert.True(t, s.Known(), string(s))
	}
	assert.False(t, OrderStatus("bogus_status").Known())
}

func TestNextDriverStatus(t *testing.T) {
	assert.Equal(t, OrderStatusPickedUp, NextDriverStatus(OrderStatusAssigned))
	assert.Equal(t, OrderStatusInTransit, NextDriverStatus(OrderStatusPickedUp))
	assert.Equal(t, OrderStatusDelivered, NextDriverStatus(OrderStatusInTransit))

	// Nothing for a driver to do before assignment or after delivery.
	assert.Equal(t, OrderStatus(""), NextDriverStatus(OrderStatusPending))
	assert.Equal(t, OrderStatus(""), NextDriverStatus(OrderStatusDelivered))
	assert.Equal(t, OrderStatus(""), NextDriverStatus(OrderStatusCancelled))
}

func TestCartLine_Subtotal(t *testing.T) {
	l := CartLine{Price: 12.5, Quantity: 3}
	assert.InDelta(t, 37.5, l.Subtotal(), 1e-9)
}
