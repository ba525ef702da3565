// Package seed loads the bundled demo dataset into an empty database.
// The dataset mirrors the kind of workspace the dashboard is built for:
// a handful of team members, a few projects in mixed states, and tasks
// spread across statuses, priorities, and due dates.
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"time"

	"github.com/rpggio/teamboard/internal/domain/project"
	"github.com/rpggio/teamboard/internal/domain/task"
	"github.com/rpggio/teamboard/internal/domain/user"
	"github.com/rpggio/teamboard/internal/repository"
	"gopkg.in/yaml.v3"
)

//go:embed dataset.yaml
var datasetYAML []byte

type dataset struct {
	Users    []userRecord    `yaml:"users"`
	Projects []projectRecord `yaml:"projects"`
	Tasks    []taskRecord    `yaml:"tasks"`
}

type userRecord struct {
	ID         string    `yaml:"id"`
	Name       string    `yaml:"name"`
	Email      string    `yaml:"email"`
	Role       string    `yaml:"role"`
	Department string    `yaml:"department"`
	JoinedAt   time.Time `yaml:"joined_at"`
	LastActive time.Time `yaml:"last_active"`
}

type projectRecord struct {
	ID          string    `yaml:"id"`
	Name        string    `yaml:"name"`
	Description string    `yaml:"description"`
	Status      string    `yaml:"status"`
	Priority    string    `yaml:"priority"`
	StartDate   time.Time `yaml:"start_date"`
	EndDate     time.Time `yaml:"end_date"`
	Progress    int       `yaml:"progress"`
	Members     []string  `yaml:"members"`
	Budget      *float64  `yaml:"budget"`
	Client      string    `yaml:"client"`
}

type taskRecord struct {
	ID             string    `yaml:"id"`
	Title          string    `yaml:"title"`
	Description    string    `yaml:"description"`
	Status         string    `yaml:"status"`
	Priority       string    `yaml:"priority"`
	AssigneeID     string    `yaml:"assignee_id"`
	ProjectID      string    `yaml:"project_id"`
	DueDate        time.Time `yaml:"due_date"`
	CreatedAt      time.Time `yaml:"created_at"`
	UpdatedAt      time.Time `yaml:"updated_at"`
	EstimatedHours *float64  `yaml:"estimated_hours"`
	ActualHours    *float64  `yaml:"actual_hours"`
}

// Repositories are the stores the seeder writes through.
type Repositories struct {
	Users    repository.UserRepository
	Projects repository.ProjectRepository
	Tasks    repository.TaskRepository
}

// Load parses the embedded dataset and inserts it. A database that already
// holds users is left untouched.
func Load(ctx context.Context, repos Repositories, logger *slog.Logger) error {
	existing, err := repos.Users.List(ctx, user.ListOptions{})
	if err != nil {
		return fmt.Errorf("checking existing users: %w", err)
	}
	if len(existing) > 0 {
		logger.Info("seed skipped, database not empty", "users", len(existing))
		return nil
	}

	var ds dataset
	if err := yaml.Unmarshal(datasetYAML, &ds); err != nil {
		return fmt.Errorf("parsing seed dataset: %w", err)
	}

	for _, rec := range ds.Users {
		u := &user.User{
			ID:         rec.ID,
			Name:       rec.Name,
			Email:      rec.Email,
			Role:       user.Role(rec.Role),
			Department: rec.Department,
			JoinedAt:   rec.JoinedAt,
			LastActive: rec.LastActive,
		}
		if err := repos.Users.Create(ctx, u); err != nil {
			return fmt.Errorf("seeding user %s: %w", rec.ID, err)
		}
	}

	for _, rec := range ds.Projects {
		p := &project.Project{
			ID:          rec.ID,
			Name:        rec.Name,
			Description: rec.Description,
			Status:      project.Status(rec.Status),
			Priority:    project.Priority(rec.Priority),
			StartDate:   rec.StartDate,
			EndDate:     rec.EndDate,
			Progress:    rec.Progress,
			MemberIDs:   rec.Members,
			Budget:      rec.Budget,
			Client:      rec.Client,
			CreatedAt:   rec.StartDate,
		}
		if err := repos.Projects.Create(ctx, p); err != nil {
			return fmt.Errorf("seeding project %s: %w", rec.ID, err)
		}
	}

	for _, rec := range ds.Tasks {
		t := &task.Task{
			ID:             rec.ID,
			Title:          rec.Title,
			Description:    rec.Description,
			Status:         task.Status(rec.Status),
			Priority:       task.Priority(rec.Priority),
			AssigneeID:     rec.AssigneeID,
			ProjectID:      rec.ProjectID,
			DueDate:        rec.DueDate,
			CreatedAt:      rec.CreatedAt,
			UpdatedAt:      rec.UpdatedAt,
			EstimatedHours: rec.EstimatedHours,
			ActualHours:    rec.ActualHours,
		}
		if err := repos.Tasks.Create(ctx, t); err != nil {
			return fmt.Errorf("seeding task %s: %w", rec.ID, err)
		}
	}

	logger.Info("seed loaded",
		"users", len(ds.Users),
		"projects", len(ds.Projects),
		"tasks", len(ds.Tasks))
	return nil
}
