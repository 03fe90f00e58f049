package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/diyeddin/delivery-ui/internal/domain"
)

func (c *Client) ListStores(ctx context.Context) ([]domain.Store, error) {
	var stores []domain.Store
	if err := c.doJSON(ctx, http.MethodGet, "/stores/", "/stores/", nil, nil, &stores); err != nil {
		return nil, err
	}
	return stores, nil
}

func (c *Client) GetStore(ctx context.Context, storeID int64) (*domain.Store, error) {
	var store domain.Store
	path := fmt.Sprintf("/stores/%d", storeID)
	if err := c.doJSON(ctx, http.MethodGet, "/stores/{id}", path, nil, nil, &store); err != nil {
		return nil, err
	}
	return &store, nil
}

func (c *Client) StoreProducts(ctx context.Context, storeID int64) ([]domain.Product, error) {
	var products []domain.Product
	path := fmt.Sprintf("/stores/%d/products", storeID)
	if err := c.doJSON(ctx, http.MethodGet, "/stores/{id}/products", path, nil, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// MyStore fetches the store owned by the calling account.
func (c *Client) MyStore(ctx context.Context) (*domain.Store, error) {
	var store domain.Store
	if err := c.doJSON(ctx, http.MethodGet, "/stores/me", "/stores/me", nil, nil, &store); err != nil {
		return nil, err
	}
	return &store, nil
}

type UpdateStoreRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	BannerURL   string `json:"banner_url"`
}

func (c *Client) UpdateStore(ctx context.Context, storeID int64, req UpdateStoreRequest) (*domain.Store, error) {
	var store domain.Store
	path := fmt.Sprintf("/stores/%d", storeID)
	if err := c.doJSON(ctx, http.MethodPut, "/stores/{id}", path, nil, req, &store); err != nil {
		return nil, err
	}
	return &store, nil
}

// ProductPayload is the owner-side product form: the full set of fields,
// sent whole on both create and update.
type ProductPayload struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
}

func (c *Client) CreateProduct(ctx context.Context, req ProductPayload) (*domain.Product, error) {
	var product domain.Product
	if err := c.doJSON(ctx, http.MethodPost, "/products/", "/products/", nil, req, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) UpdateProduct(ctx context.Context, productID int64, req ProductPayload) (*domain.Product, error) {
	var product domain.Product
	path := fmt.Sprintf("/products/%d", productID)
	if err := c.doJSON(ctx, http.MethodPut, "/products/{id}", path, nil, req, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) DeleteProduct(ctx context.Context, productID int64) error {
	path := fmt.Sprintf("/products/%d", productID)
	return c.doJSON(ctx, http.MethodDelete, "/products/{id}", path, nil, nil, nil)
}

// SearchProducts queries the catalog. An empty query lists everything;
// inStockOnly narrows to products currently available.
func (c *Client) SearchProducts(ctx context.Context, query string, inStockOnly bool) ([]domain.Product, error) {
	params := url.Values{}
	if query != "" {
		params.Set("q", query)
	}
	if inStockOnly {
		params.Set("in_stock", "true")
	}

	var products []domain.Product
	if err := c.doJSON(ctx, http.MethodGet, "/products/", "/products/", params, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}
