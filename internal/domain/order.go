package domain

import "time"

// OrderStatus is the raw status string the backend reports for an order.
// The client never transitions an order itself; it requests a transition
// through the API and re-polls to observe the result.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusAssigned  OrderStatus = "assigned"
	OrderStatusPickedUp  OrderStatus = "picked_up"
	OrderStatusInTransit OrderStatus = "in_transit"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// IsTerminal reports whether the order can change no further.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// Known reports whether s is one of the statuses the backend is documented
// to emit. Unknown values still render, just with a neutral treatment.
func (s OrderStatus) Known() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusAssigned,
		OrderStatusPickedUp, OrderStatusInTransit, OrderStatusDelivered,
		OrderStatusCancelled:
		return true
	}
	return false
}

// String representation (for logging)
func (s OrderStatus) String() string {
	return string(s)
}

// NextDriverStatus returns the forward transition a driver may request from
// the given status, or "" when no driver transition applies.
func NextDriverStatus(s OrderStatus) OrderStatus {
	switch s {
	case OrderStatusAssigned:
		return OrderStatusPickedUp
	case OrderStatusPickedUp:
		return OrderStatusInTransit
	case OrderStatusInTransit:
		return OrderStatusDelivered
	}
	return ""
}

type OrderItem struct {
	ProductID   int64   `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

type Order struct {
	ID              int64       `json:"id"`
	StoreID         int64       `json:"store_id"`
	Status          OrderStatus `json:"status"`
	TotalPrice      float64     `json:"total_price"`
	DeliveryAddress string      `json:"delivery_address"`
	CreatedAt       time.Time   `json:"created_at"`
	Items           []OrderItem `json:"items"`
}
