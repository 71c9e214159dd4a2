// Package data is the shared data-access layer between the views and the
// API client. Collections are cached until the next write so switching
// views doesn't re-fetch, and every write invalidates so views never render
// state the server has moved past.
package data

import (
	"context"
	"sync"

	"tinqs/internal/api"
	"tinqs/internal/model"
)

type Store struct {
	api *api.Client

	mu      sync.Mutex
	tasks   []model.Task
	tasksOK bool
	cats    []model.Category
	catsOK  bool
}

func New(c *api.Client) *Store {
	return &Store{api: c}
}

// Tasks returns the cached task list, fetching on first use.
func (s *Store) Tasks(ctx context.Context) ([]model.Task, error) {
	s.mu.Lock()
	if s.tasksOK {
		out := s.tasks
		s.mu.Unlock()
		return out, nil
	}
	s.mu.Unlock()

	tasks, err := s.api.Tasks(ctx)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.tasks = tasks
	s.tasksOK = true
	s.mu.Unlock()
	return tasks, nil
}

func (s *Store) Categories(ctx context.Context) ([]model.Category, error) {
	s.mu.Lock()
	if s.catsOK {
		out := s.cats
		s.mu.Unlock()
		return out, nil
	}
	s.mu.Unlock()

	cats, err := s.api.Categories(ctx)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.cats = cats
	s.catsOK = true
	s.mu.Unlock()
	return cats, nil
}

// Task reads a single task. Single reads bypass the cache: the edit view
// wants the freshest copy.
func (s *Store) Task(ctx context.Context, id string) (model.Task, error) {
	return s.api.Task(ctx, id)
}

// Invalidate drops both cached collections.
func (s *Store) Invalidate() {
	s.mu.Lock()
	s.tasks = nil
	s.tasksOK = false
	s.cats = nil
	s.catsOK = false
	s.mu.Unlock()
}

func (s *Store) invalidateTasks() {
	s.mu.Lock()
	s.tasks = nil
	s.tasksOK = false
	s.mu.Unlock()
}

func (s *Store) CreateTask(ctx context.Context, p model.TaskPayload) (model.Task, error) {
	t, err := s.api.CreateTask(ctx, p)
	if err != nil {
		return model.Task{}, err
	}
	s.invalidateTasks()
	return t, nil
}

func (s *Store) UpdateTask(ctx context.Context, id string, p model.TaskPayload) (model.Task, error) {
	t, err := s.api.UpdateTask(ctx, id, p)
	if err != nil {
		return model.Task{}, err
	}
	s.invalidateTasks()
	return t, nil
}

func (s *Store) DeleteTask(ctx context.Context, id string) error {
	if err := s.api.DeleteTask(ctx, id); err != nil {
		return err
	}
	s.invalidateTasks()
	return nil
}

func (s *Store) CreateCategory(ctx context.Context, name string) (model.Category, error) {
	c, err := s.api.CreateCategory(ctx, name)
	if err != nil {
		return model.Category{}, err
	}
	s.mu.Lock()
	s.cats = nil
	s.catsOK = false
	s.mu.Unlock()
	return c, nil
}

func (s *Store) RenameCategory(ctx context.Context, id, name string) (model.Category, error) {
	c, err := s.api.RenameCategory(ctx, id, name)
	if err != nil {
		return model.Category{}, err
	}
	// Tasks embed category names in some server responses, so drop both.
	s.Invalidate()
	return c, nil
}

// DeleteCategory deletes server-side and invalidates both collections:
// the server clears the category reference on tasks that used it.
func (s *Store) DeleteCategory(ctx context.Context, id string) error {
	if err := s.api.DeleteCategory(ctx, id); err != nil {
		return err
	}
	s.Invalidate()
	return nil
}
