package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rpggio/teamboard/internal/repository/repoerr"
)

var validate = validator.New()

// Service handles user operations.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new user service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// CreateRequest defines user creation inputs.
type CreateRequest struct {
	ID         string `validate:"omitempty,uuid4"`
	Name       string `validate:"required,min=1,max=255"`
	Email      string `validate:"required,email"`
	Role       Role   `validate:"required,oneof=admin team_member"`
	Department string `validate:"max=255"`
}

// Create creates a new user. New users count as active as of creation.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*User, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	id := req.ID
	if strings.TrimSpace(id) == "" {
		id = uuid.NewString()
	}

	now := time.Now()
	u := &User{
		ID:         id,
		Name:       req.Name,
		Email:      req.Email,
		Role:       req.Role,
		Department: req.Department,
		JoinedAt:   now,
		LastActive: now,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	return u, nil
}

// Get fetches a user by ID.
func (s *Service) Get(ctx context.Context, id string) (*User, error) {
	u, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repoerr.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("getting user: %w", err)
	}
	return u, nil
}

// List returns users matching the given filters.
func (s *Service) List(ctx context.Context, opts ListOptions) ([]User, error) {
	opts.Search = strings.TrimSpace(opts.Search)
	return s.repo.List(ctx, opts)
}

// TeamMembers returns all users with the team_member role.
func (s *Service) TeamMembers(ctx context.Context) ([]User, error) {
	role := RoleTeamMember
	return s.repo.List(ctx, ListOptions{Role: &role})
}

// Touch records activity for a user, moving their last-active instant forward.
func (s *Service) Touch(ctx context.Context, id string, at time.Time) error {
	u, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if at.Before(u.LastActive) {
		return nil
	}
	u.LastActive = at
	if err := s.repo.Update(ctx, u); err != nil {
		return fmt.Errorf("updating user activity: %w", err)
	}
	return nil
}

// Delete removes a user.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repoerr.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("deleting user: %w", err)
	}
	return nil
}
