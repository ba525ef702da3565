package user

import "context"

// ListOptions filters user listings.
type ListOptions struct {
	Role       *Role
	Department string
	Search     string
}

// Repository provides persistence for users.
type Repository interface {
	Create(ctx context.Context, u *User) error
	Get(ctx context.Context, id string) (*User, error)
	List(ctx context.Context, opts ListOptions) ([]User, error)
	Update(ctx context.Context, u *User) error
	Delete(ctx context.Context, id string) error
}
