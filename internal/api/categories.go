package api

import (
	"context"
	"net/http"

	"tinqs/internal/model"
)

type categoryPayload struct {
	Name string `json:"name"`
}

func (c *Client) Categories(ctx context.Context) ([]model.Category, error) {
	var out []model.Category
	if err := c.do(ctx, http.MethodGet, "/categories", nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []model.Category{}
	}
	return out, nil
}

// CreateCategory creates a category. Names are unique per user server-side;
// a duplicate yields a 409 (see IsConflict).
func (c *Client) CreateCategory(ctx context.Context, name string) (model.Category, error) {
	var out model.Category
	err := c.do(ctx, http.MethodPost, "/categories", categoryPayload{Name: name}, &out)
	return out, err
}

func (c *Client) RenameCategory(ctx context.Context, id, name string) (model.Category, error) {
	var out model.Category
	err := c.do(ctx, http.MethodPut, "/categories/"+id, categoryPayload{Name: name}, &out)
	return out, err
}

// DeleteCategory deletes a category. Tasks referencing it are kept by the
// server; their category reference becomes absent.
func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/categories/"+id, nil, nil)
}
