package api

import (
	"context"
	"net/http"
	"net/url"
)

type loginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Login exchanges credentials for a bearer token. The endpoint takes a
// form-encoded body with the email in the username field.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	var resp loginResponse
	if err := c.doForm(ctx, "/auth/login", "/auth/login", form, &resp); err != nil {
		return "", err
	}
	return resp.AccessToken, nil
}

type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

func (c *Client) Signup(ctx context.Context, req SignupRequest) error {
	return c.doJSON(ctx, http.MethodPost, "/auth/signup", "/auth/signup", nil, req, nil)
}
