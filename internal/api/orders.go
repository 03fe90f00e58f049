package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/diyeddin/delivery-ui/internal/domain"
)

type OrderItemRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

type SubmitOrderRequest struct {
	DeliveryAddress string             `json:"delivery_address"`
	Items           []OrderItemRequest `json:"items"`
}

// SubmitOrder places an order. Best effort, single request: the caller
// clears the cart only after this returns without error.
func (c *Client) SubmitOrder(ctx context.Context, req SubmitOrderRequest) (*domain.Order, error) {
	var order domain.Order
	if err := c.doJSON(ctx, http.MethodPost, "/orders/", "/orders/", nil, req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// MyOrders lists the calling customer's orders.
func (c *Client) MyOrders(ctx context.Context) ([]domain.Order, error) {
	return c.listOrders(ctx, "/orders/me")
}

// AvailableOrders lists orders a driver can claim.
func (c *Client) AvailableOrders(ctx context.Context) ([]domain.Order, error) {
	return c.listOrders(ctx, "/orders/available")
}

// AssignedOrders lists the calling driver's claimed orders.
func (c *Client) AssignedOrders(ctx context.Context) ([]domain.Order, error) {
	return c.listOrders(ctx, "/orders/assigned-to-me")
}

// StoreOrders lists every order against the calling owner's store.
func (c *Client) StoreOrders(ctx context.Context) ([]domain.Order, error) {
	return c.listOrders(ctx, "/orders/store/all")
}

func (c *Client) listOrders(ctx context.Context, path string) ([]domain.Order, error) {
	var orders []domain.Order
	if err := c.doJSON(ctx, http.MethodGet, path, path, nil, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// AcceptOrder asks the backend to assign the order to the calling driver.
func (c *Client) AcceptOrder(ctx context.Context, orderID int64) error {
	path := fmt.Sprintf("/orders/%d/accept", orderID)
	return c.doJSON(ctx, http.MethodPut, "/orders/{id}/accept", path, nil, nil, nil)
}

type setStatusRequest struct {
	Status domain.OrderStatus `json:"status"`
}

// SetOrderStatus requests a delivery-side transition (driver path).
func (c *Client) SetOrderStatus(ctx context.Context, orderID int64, status domain.OrderStatus) error {
	path := fmt.Sprintf("/orders/%d/status", orderID)
	return c.doJSON(ctx, http.MethodPut, "/orders/{id}/status", path, nil, setStatusRequest{Status: status}, nil)
}

// MoveOrderStatus requests a fulfillment-side transition (owner path); the
// target status rides in the query string.
func (c *Client) MoveOrderStatus(ctx context.Context, orderID int64, status domain.OrderStatus) error {
	path := fmt.Sprintf("/orders/%d/move-status", orderID)
	params := url.Values{}
	params.Set("status", string(status))
	return c.doJSON(ctx, http.MethodPut, "/orders/{id}/move-status", path, params, nil, nil)
}
