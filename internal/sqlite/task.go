package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/rpggio/teamboard/internal/domain/task"
	"github.com/rpggio/teamboard/internal/repository"
)

// TaskRepository implements repository.TaskRepository for SQLite
type TaskRepository struct {
	db *DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create inserts a new task
func (r *TaskRepository) Create(ctx context.Context, t *task.Task) error {
	query := `
		INSERT INTO tasks (id, title, description, status, priority, assignee_id, project_id, due_date, created_at, updated_at, estimated_hours, actual_hours)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		t.Title,
		t.Description,
		t.Status,
		t.Priority,
		t.AssigneeID,
		t.ProjectID,
		t.DueDate,
		t.CreatedAt,
		t.UpdatedAt,
		t.EstimatedHours,
		t.ActualHours,
	)

	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("failed to create task: %w", err)
	}

	return nil
}

// Get retrieves a task by ID
func (r *TaskRepository) Get(ctx context.Context, id string) (*task.Task, error) {
	query := `
		SELECT id, title, description, status, priority, assignee_id, project_id, due_date, created_at, updated_at, estimated_hours, actual_hours
		FROM tasks
		WHERE id = ?
	`

	t, err := scanTask(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	return t, nil
}

// List returns tasks matching the given filters, in insertion order
func (r *TaskRepository) List(ctx context.Context, opts task.ListOptions) ([]task.Task, error) {
	query := `
		SELECT id, title, description, status, priority, assignee_id, project_id, due_date, created_at, updated_at, estimated_hours, actual_hours
		FROM tasks
		WHERE 1=1
	`
	var args []any

	if opts.AssigneeID != "" {
		query += " AND assignee_id = ?"
		args = append(args, opts.AssigneeID)
	}
	if opts.ProjectID != "" {
		query += " AND project_id = ?"
		args = append(args, opts.ProjectID)
	}
	if len(opts.Statuses) > 0 {
		placeholders := strings.Repeat("?,", len(opts.Statuses))
		query += " AND status IN (" + placeholders[:len(placeholders)-1] + ")"
		for _, s := range opts.Statuses {
			args = append(args, s)
		}
	}
	if opts.Search != "" {
		query += " AND lower(title) LIKE ?"
		args = append(args, "%"+strings.ToLower(opts.Search)+"%")
	}

	query += " ORDER BY rowid ASC"
	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []task.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, *t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating task rows: %w", err)
	}

	return tasks, nil
}

// Update replaces a task's mutable fields
func (r *TaskRepository) Update(ctx context.Context, t *task.Task) error {
	query := `
		UPDATE tasks
		SET title = ?, description = ?, status = ?, priority = ?, assignee_id = ?, due_date = ?, updated_at = ?, estimated_hours = ?, actual_hours = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		t.Title,
		t.Description,
		t.Status,
		t.Priority,
		t.AssigneeID,
		t.DueDate,
		t.UpdatedAt,
		t.EstimatedHours,
		t.ActualHours,
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// Delete removes a task
func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

func scanTask(row rowScanner) (*task.Task, error) {
	var t task.Task
	var description sql.NullString
	var estimated, actual sql.NullFloat64
	err := row.Scan(
		&t.ID,
		&t.Title,
		&description,
		&t.Status,
		&t.Priority,
		&t.AssigneeID,
		&t.ProjectID,
		&t.DueDate,
		&t.CreatedAt,
		&t.UpdatedAt,
		&estimated,
		&actual,
	)
	if err != nil {
		return nil, err
	}
	t.Description = description.String
	if estimated.Valid {
		t.EstimatedHours = &estimated.Float64
	}
	if actual.Valid {
		t.ActualHours = &actual.Float64
	}
	return &t, nil
}
