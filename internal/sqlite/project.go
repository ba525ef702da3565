package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/rpggio/teamboard/internal/domain/project"
	"github.com/rpggio/teamboard/internal/repository"
)

// ProjectRepository implements repository.ProjectRepository for SQLite
type ProjectRepository struct {
	db *DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// Create inserts a new project and its team membership
func (r *ProjectRepository) Create(ctx context.Context, proj *project.Project) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO projects (id, name, description, status, priority, start_date, end_date, progress, budget, client, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = tx.ExecContext(ctx, query,
		proj.ID,
		proj.Name,
		proj.Description,
		proj.Status,
		proj.Priority,
		proj.StartDate,
		proj.EndDate,
		proj.Progress,
		proj.Budget,
		proj.Client,
		proj.CreatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("failed to create project: %w", err)
	}

	if err := insertMembers(ctx, tx, proj.ID, proj.MemberIDs); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// Get retrieves a project by ID, including its ordered member list
func (r *ProjectRepository) Get(ctx context.Context, id string) (*project.Project, error) {
	query := `
		SELECT id, name, description, status, priority, start_date, end_date, progress, budget, client, created_at
		FROM projects
		WHERE id = ?
	`

	proj, err := scanProject(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	members, err := r.members(ctx, id)
	if err != nil {
		return nil, err
	}
	proj.MemberIDs = members

	return proj, nil
}

// List returns projects matching the given filters, in insertion order.
// Insertion order keeps derived views (calendar event grouping in
// particular) stable across identical snapshots.
func (r *ProjectRepository) List(ctx context.Context, opts project.ListOptions) ([]project.Project, error) {
	query := `
		SELECT id, name, description, status, priority, start_date, end_date, progress, budget, client, created_at
		FROM projects
		WHERE 1=1
	`
	var args []any

	if len(opts.Statuses) > 0 {
		placeholders := strings.Repeat("?,", len(opts.Statuses))
		query += " AND status IN (" + placeholders[:len(placeholders)-1] + ")"
		for _, s := range opts.Statuses {
			args = append(args, s)
		}
	}
	if opts.MemberID != "" {
		query += " AND id IN (SELECT project_id FROM project_members WHERE user_id = ?)"
		args = append(args, opts.MemberID)
	}
	if opts.Search != "" {
		query += " AND (lower(name) LIKE ? OR lower(client) LIKE ?)"
		pattern := "%" + strings.ToLower(opts.Search) + "%"
		args = append(args, pattern, pattern)
	}

	query += " ORDER BY rowid ASC"
	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var projects []project.Project
	for rows.Next() {
		proj, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, *proj)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating project rows: %w", err)
	}

	for i := range projects {
		members, err := r.members(ctx, projects[i].ID)
		if err != nil {
			return nil, err
		}
		projects[i].MemberIDs = members
	}

	return projects, nil
}

// Update replaces a project's mutable fields and its member list
func (r *ProjectRepository) Update(ctx context.Context, proj *project.Project) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		UPDATE projects
		SET name = ?, description = ?, status = ?, priority = ?, end_date = ?, progress = ?, budget = ?, client = ?
		WHERE id = ?
	`

	result, err := tx.ExecContext(ctx, query,
		proj.Name,
		proj.Description,
		proj.Status,
		proj.Priority,
		proj.EndDate,
		proj.Progress,
		proj.Budget,
		proj.Client,
		proj.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM project_members WHERE project_id = ?`, proj.ID); err != nil {
		return fmt.Errorf("failed to clear project members: %w", err)
	}
	if err := insertMembers(ctx, tx, proj.ID, proj.MemberIDs); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// Delete removes a project; membership rows cascade
func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
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

func (r *ProjectRepository) members(ctx context.Context, projectID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT user_id FROM project_members WHERE project_id = ? ORDER BY position ASC`, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get project members: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan project member: %w", err)
		}
		ids = append(ids, id)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating member rows: %w", err)
	}

	return ids, nil
}

func insertMembers(ctx context.Context, tx *sql.Tx, projectID string, memberIDs []string) error {
	for i, userID := range memberIDs {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO project_members (project_id, user_id, position) VALUES (?, ?, ?)`,
			projectID, userID, i)
		if err != nil {
			return fmt.Errorf("failed to add project member: %w", err)
		}
	}
	return nil
}

func scanProject(row rowScanner) (*project.Project, error) {
	var proj project.Project
	var description, client sql.NullString
	var budget sql.NullFloat64
	err := row.Scan(
		&proj.ID,
		&proj.Name,
		&description,
		&proj.Status,
		&proj.Priority,
		&proj.StartDate,
		&proj.EndDate,
		&proj.Progress,
		&budget,
		&client,
		&proj.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	proj.Description = description.String
	proj.Client = client.String
	if budget.Valid {
		proj.Budget = &budget.Float64
	}
	return &proj, nil
}
