package project

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

// Service handles project operations.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new project service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// CreateRequest defines project creation inputs.
type CreateRequest struct {
	ID          string   `validate:"omitempty,uuid4"`
	Name        string   `validate:"required,min=1,max=255"`
	Description string   `validate:"max=4096"`
	Status      Status   `validate:"required,oneof=planning in_progress review completed on_hold"`
	Priority    Priority `validate:"required,oneof=low medium high critical"`
	StartDate   time.Time
	EndDate     time.Time
	Progress    int
	MemberIDs   []string
	Budget      *float64 `validate:"omitempty,gte=0"`
	Client      string   `validate:"max=255"`
}

// UpdateRequest defines mutable project fields. Nil pointers leave the
// existing value untouched.
type UpdateRequest struct {
	Name        *string
	Description *string
	Status      *Status   `validate:"omitempty,oneof=planning in_progress review completed on_hold"`
	Priority    *Priority `validate:"omitempty,oneof=low medium high critical"`
	EndDate     *time.Time
	Progress    *int
	MemberIDs   *[]string
	Budget      *float64 `validate:"omitempty,gte=0"`
	Client      *string
}

// Create creates a new project. Progress is clamped to [0,100] and the
// member list de-duplicated, preserving first occurrence order.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Project, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}
	if req.EndDate.Before(req.StartDate) {
		return nil, fmt.Errorf("%w: end date before start date", ErrInvalidInput)
	}

	id := req.ID
	if strings.TrimSpace(id) == "" {
		id = uuid.NewString()
	}

	proj := &Project{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Progress:    clampProgress(req.Progress),
		MemberIDs:   dedupe(req.MemberIDs),
		Budget:      req.Budget,
		Client:      req.Client,
		CreatedAt:   time.Now(),
	}

	if err := s.repo.Create(ctx, proj); err != nil {
		return nil, fmt.Errorf("creating project: %w", err)
	}

	return proj, nil
}

// Get fetches a project by ID.
func (s *Service) Get(ctx context.Context, id string) (*Project, error) {
	proj, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repoerr.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("getting project: %w", err)
	}
	return proj, nil
}

// List returns projects matching the given filters.
func (s *Service) List(ctx context.Context, opts ListOptions) ([]Project, error) {
	opts.Search = strings.TrimSpace(opts.Search)
	return s.repo.List(ctx, opts)
}

// Update applies the given changes to a project.
func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (*Project, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	proj, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, fmt.Errorf("%w: empty name", ErrInvalidInput)
		}
		proj.Name = *req.Name
	}
	if req.Description != nil {
		proj.Description = *req.Description
	}
	if req.Status != nil {
		proj.Status = *req.Status
	}
	if req.Priority != nil {
		proj.Priority = *req.Priority
	}
	if req.EndDate != nil {
		proj.EndDate = *req.EndDate
	}
	if req.Progress != nil {
		proj.Progress = clampProgress(*req.Progress)
	}
	if req.MemberIDs != nil {
		proj.MemberIDs = dedupe(*req.MemberIDs)
	}
	if req.Budget != nil {
		proj.Budget = req.Budget
	}
	if req.Client != nil {
		proj.Client = *req.Client
	}

	if err := s.repo.Update(ctx, proj); err != nil {
		return nil, fmt.Errorf("updating project: %w", err)
	}

	return proj, nil
}

// Delete removes a project.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repoerr.ErrNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("deleting project: %w", err)
	}
	return nil
}

func clampProgress(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
