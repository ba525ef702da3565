package project

import "context"

// ListOptions filters project listings.
type ListOptions struct {
	Statuses []Status
	MemberID string
	Search   string
	Limit    int
}

// Repository provides persistence for projects.
type Repository interface {
	Create(ctx context.Context, proj *Project) error
	Get(ctx context.Context, id string) (*Project, error)
	List(ctx context.Context, opts ListOptions) ([]Project, error)
	Update(ctx context.Context, proj *Project) error
	Delete(ctx context.Context, id string) error
}
