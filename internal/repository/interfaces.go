package repository

import (
	"context"
	"time"

	"github.com/rpggio/teamboard/internal/domain/project"
	"github.com/rpggio/teamboard/internal/domain/task"
	"github.com/rpggio/teamboard/internal/domain/user"
)

// UserRepository manages user persistence
type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	Get(ctx context.Context, id string) (*user.User, error)
	List(ctx context.Context, opts user.ListOptions) ([]user.User, error)
	Update(ctx context.Context, u *user.User) error
	Delete(ctx context.Context, id string) error
}

// ProjectRepository manages project persistence
type ProjectRepository interface {
	Create(ctx context.Context, proj *project.Project) error
	Get(ctx context.Context, id string) (*project.Project, error)
	List(ctx context.Context, opts project.ListOptions) ([]project.Project, error)
	Update(ctx context.Context, proj *project.Project) error
	Delete(ctx context.Context, id string) error
}

// TaskRepository manages task persistence
type TaskRepository interface {
	Create(ctx context.Context, t *task.Task) error
	Get(ctx context.Context, id string) (*task.Task, error)
	List(ctx context.Context, opts task.ListOptions) ([]task.Task, error)
	Update(ctx context.Context, t *task.Task) error
	Delete(ctx context.Context, id string) error
}

// SessionRepository manages login session persistence. Tokens are stored
// hashed; the raw token never touches the database.
type SessionRepository interface {
	Create(ctx context.Context, tokenHash, userID string, createdAt time.Time) error
	GetUserID(ctx context.Context, tokenHash string) (string, error)
	Delete(ctx context.Context, tokenHash string) error
}
