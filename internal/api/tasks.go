package api

import (
	"context"
	"net/http"

	"tinqs/internal/model"
)

func (c *Client) Tasks(ctx context.Context) ([]model.Task, error) {
	var out []model.Task
	if err := c.do(ctx, http.MethodGet, "/tasks", nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []model.Task{}
	}
	return out, nil
}

func (c *Client) Task(ctx context.Context, id string) (model.Task, error) {
	var out model.Task
	err := c.do(ctx, http.MethodGet, "/tasks/"+id, nil, &out)
	return out, err
}

func (c *Client) CreateTask(ctx context.Context, p model.TaskPayload) (model.Task, error) {
	var out model.Task
	err := c.do(ctx, http.MethodPost, "/tasks", p, &out)
	return out, err
}

func (c *Client) UpdateTask(ctx context.Context, id string, p model.TaskPayload) (model.Task, error) {
	var out model.Task
	err := c.do(ctx, http.MethodPut, "/tasks/"+id, p, &out)
	return out, err
}

func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/tasks/"+id, nil, nil)
}
