package api

import (
	"context"
	"net/http"

	"tinqs/internal/model"
)

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	body := map[string]string{"email": email, "password": password}
	var out struct {
		AuthToken string `json:"authToken"`
	}
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &out); err != nil {
		return "", err
	}
	return out.AuthToken, nil
}

// Signup creates an account. The caller logs in afterwards; signup does not
// return a token.
func (c *Client) Signup(ctx context.Context, email, password, name string) (model.User, error) {
	body := map[string]string{"email": email, "password": password, "name": name}
	var out model.User
	err := c.do(ctx, http.MethodPost, "/auth/signup", body, &out)
	return out, err
}

// Verify checks the stored token and returns the authenticated user.
func (c *Client) Verify(ctx context.Context) (model.User, error) {
	var out model.User
	err := c.do(ctx, http.MethodGet, "/auth/verify", nil, &out)
	return out, err
}

func (c *Client) UpdateProfile(ctx context.Context, name string) (model.User, error) {
	body := map[string]string{"name": name}
	var out model.User
	err := c.do(ctx, http.MethodPut, "/auth/profile", body, &out)
	return out, err
}

func (c *Client) ChangePassword(ctx context.Context, current, next string) error {
	body := map[string]string{"currentPassword": current, "newPassword": next}
	return c.do(ctx, http.MethodPut, "/auth/change-password", body, nil)
}

// DeleteAccount removes the account server-side. Callers clear the stored
// token afterwards.
func (c *Client) DeleteAccount(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/auth/delete-account", nil, nil)
}
