package task

import "context"

// ListOptions filters task listings.
type ListOptions struct {
	AssigneeID string
	ProjectID  string
	Statuses   []Status
	Search     string
	Limit      int
}

// Repository provides persistence for tasks.
type Repository interface {
	Create(ctx context.Context, t *Task) error
	Get(ctx context.Context, id string) (*Task, error)
	List(ctx context.Context, opts ListOptions) ([]Task, error)
	Update(ctx context.Context, t *Task) error
	Delete(ctx context.Context, id string) error
}
