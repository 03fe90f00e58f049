package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/diyeddin/delivery-ui/internal/domain"
)

type UpdateProfileRequest struct {
	Name string `json:"name"`
}

func (c *Client) UpdateProfile(ctx context.Context, req UpdateProfileRequest) (*domain.User, error) {
	var user domain.User
	if err := c.doJSON(ctx, http.MethodPut, "/users/me", "/users/me", nil, req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) ListUsers(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	if err := c.doJSON(ctx, http.MethodGet, "/users/", "/users/", nil, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

type setRoleRequest struct {
	Role domain.Role `json:"role"`
}

func (c *Client) SetUserRole(ctx context.Context, userID int64, role domain.Role) error {
	path := fmt.Sprintf("/users/%d/role", userID)
	return c.doJSON(ctx, http.MethodPut, "/users/{id}/role", path, nil, setRoleRequest{Role: role}, nil)
}
