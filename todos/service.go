package todos

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/taskmind/go-task-client/api"
)

// Todo is a task record owned by the authenticated user. IDs are
// server-assigned; list ordering is whatever the server returns.
type Todo struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateRequest is the payload for creating a todo.
type CreateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Completed   bool   `json:"completed"`
}

// UpdateRequest is a partial todo; nil fields are left untouched by the
// server.
type UpdateRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Completed   *bool   `json:"completed,omitempty"`
}

// Service wraps the request pipeline with the todo endpoints.
type Service struct {
	client *api.Client
}

func NewService(client *api.Client) *Service {
	return &Service{client: client}
}

// List fetches all todos for the authenticated user.
func (s *Service) List(ctx context.Context) ([]Todo, error) {
	var todos []Todo
	if err := s.client.Get(ctx, "/api/todos", &todos); err != nil {
		return nil, err
	}
	return todos, nil
}

// Create creates a todo. An empty or whitespace title is rejected before
// any network call.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Todo, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("title is required")
	}
	var created Todo
	if err := s.client.Post(ctx, "/api/todos", req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Get fetches a single todo by id.
func (s *Service) Get(ctx context.Context, id int64) (*Todo, error) {
	var todo Todo
	if err := s.client.Get(ctx, fmt.Sprintf("/api/todos/%d", id), &todo); err != nil {
		return nil, err
	}
	return &todo, nil
}

// Update applies a partial update and returns the server's representation.
func (s *Service) Update(ctx context.Context, id int64, req UpdateRequest) (*Todo, error) {
	var updated Todo
	if err := s.client.Put(ctx, fmt.Sprintf("/api/todos/%d", id), req, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

type toggleRequest struct {
	Completed bool `json:"completed"`
}

// Toggle flips the completion flag and returns the server's representation.
func (s *Service) Toggle(ctx context.Context, id int64, completed bool) (*Todo, error) {
	var updated Todo
	if err := s.client.Patch(ctx, fmt.Sprintf("/api/todos/%d/complete", id), toggleRequest{Completed: completed}, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes a todo. The server answers 204 on success.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.client.Delete(ctx, fmt.Sprintf("/api/todos/%d", id))
}
