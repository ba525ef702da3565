package task

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

// Service handles task operations.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new task service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// CreateRequest defines task creation inputs.
type CreateRequest struct {
	ID             string   `validate:"omitempty,uuid4"`
	Title          string   `validate:"required,min=1,max=255"`
	Description    string   `validate:"max=4096"`
	Status         Status   `validate:"omitempty,oneof=todo in_progress review completed"`
	Priority       Priority `validate:"required,oneof=low medium high critical"`
	AssigneeID     string   `validate:"required"`
	ProjectID      string   `validate:"required"`
	DueDate        time.Time
	EstimatedHours *float64 `validate:"omitempty,gte=0"`
}

// UpdateRequest defines mutable task fields. Nil pointers leave the
// existing value untouched.
type UpdateRequest struct {
	Title          *string
	Description    *string
	Status         *Status   `validate:"omitempty,oneof=todo in_progress review completed"`
	Priority       *Priority `validate:"omitempty,oneof=low medium high critical"`
	AssigneeID     *string
	DueDate        *time.Time
	EstimatedHours *float64 `validate:"omitempty,gte=0"`
	ActualHours    *float64 `validate:"omitempty,gte=0"`
}

// Create creates a new task. Status defaults to todo.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Task, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	id := req.ID
	if strings.TrimSpace(id) == "" {
		id = uuid.NewString()
	}

	status := req.Status
	if status == "" {
		status = StatusTodo
	}

	now := time.Now()
	t := &Task{
		ID:             id,
		Title:          req.Title,
		Description:    req.Description,
		Status:         status,
		Priority:       req.Priority,
		AssigneeID:     req.AssigneeID,
		ProjectID:      req.ProjectID,
		DueDate:        req.DueDate,
		CreatedAt:      now,
		UpdatedAt:      now,
		EstimatedHours: req.EstimatedHours,
	}

	if err := s.repo.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("creating task: %w", err)
	}

	return t, nil
}

// Get fetches a task by ID.
func (s *Service) Get(ctx context.Context, id string) (*Task, error) {
	t, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repoerr.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("getting task: %w", err)
	}
	return t, nil
}

// List returns tasks matching the given filters.
func (s *Service) List(ctx context.Context, opts ListOptions) ([]Task, error) {
	opts.Search = strings.TrimSpace(opts.Search)
	return s.repo.List(ctx, opts)
}

// Update applies the given changes to a task. UpdatedAt always moves
// forward, never behind CreatedAt.
func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (*Task, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	t, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, fmt.Errorf("%w: empty title", ErrInvalidInput)
		}
		t.Title = *req.Title
	}
	if req.Description != nil {
		t.Description = *req.Description
	}
	if req.Status != nil {
		t.Status = *req.Status
	}
	if req.Priority != nil {
		t.Priority = *req.Priority
	}
	if req.AssigneeID != nil {
		t.AssigneeID = *req.AssigneeID
	}
	if req.DueDate != nil {
		t.DueDate = *req.DueDate
	}
	if req.EstimatedHours != nil {
		t.EstimatedHours = req.EstimatedHours
	}
	if req.ActualHours != nil {
		t.ActualHours = req.ActualHours
	}

	t.UpdatedAt = time.Now()
	if t.UpdatedAt.Before(t.CreatedAt) {
		t.UpdatedAt = t.CreatedAt
	}

	if err := s.repo.Update(ctx, t); err != nil {
		return nil, fmt.Errorf("updating task: %w", err)
	}

	return t, nil
}

// SetStatus transitions a task to the given status.
func (s *Service) SetStatus(ctx context.Context, id string, status Status) (*Task, error) {
	return s.Update(ctx, id, UpdateRequest{Status: &status})
}

// Delete removes a task.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repoerr.ErrNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("deleting task: %w", err)
	}
	return nil
}
