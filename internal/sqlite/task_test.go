package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/rpggio/teamboard/internal/domain/task"
	"github.com/rpggio/teamboard/internal/repository"
	"github.com/stretchr/testify/require"
)

func newTestTask(id, title, assigneeID, projectID string, status task.Status) *task.Task {
	now := time.Date(2024, 8, 20, 10, 0, 0, 0, time.UTC)
	hours := 16.0
	return &task.Task{
		ID:             id,
		Title:          title,
		Description:    "A test task",
		Status:         status,
		Priority:       task.PriorityHigh,
		AssigneeID:     assigneeID,
		ProjectID:      projectID,
		DueDate:        now.AddDate(0, 0, 14),
		CreatedAt:      now,
		UpdatedAt:      now,
		EstimatedHours: &hours,
	}
}

func TestTaskRepository_CreateAndGet(t *testing.T) {
	db := NewTestDB(t)
	repo := NewTaskRepository(db)
	ctx := context.Background()

	tk := newTestTask("t1", "Build homepage hero", "u1", "p1", task.StatusInProgress)
	require.NoError(t, repo.Create(ctx, tk))

	got, err := repo.Get(ctx, "t1")
	require.NoError(t, err)
	require.Equal(t, "Build homepage hero", got.Title)
	require.Equal(t, task.StatusInProgress, got.Status)
	require.Equal(t, "u1", got.AssigneeID)
	require.NotNil(t, got.EstimatedHours)
	require.Equal(t, 16.0, *got.EstimatedHours)
	require.Nil(t, got.ActualHours)
}

func TestTaskRepository_Get_NotFound(t *testing.T) {
	db := NewTestDB(t)
	repo := NewTaskRepository(db)

	_, err := repo.Get(context.Background(), "missing")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestTaskRepository_Create_DuplicateID(t *testing.T) {
	db := NewTestDB(t)
	repo := NewTaskRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newTestTask("t1", "Build homepage hero", "u1", "p1", task.StatusTodo)))
	err := repo.Create(ctx, newTestTask("t1", "Same ID", "u2", "p2", task.StatusTodo))
	require.ErrorIs(t, err, repository.ErrDuplicate)
}

func TestTaskRepository_List(t *testing.T) {
	db := NewTestDB(t)
	repo := NewTaskRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newTestTask("t1", "Build homepage hero", "u1", "p1", task.StatusInProgress)))
	require.NoError(t, repo.Create(ctx, newTestTask("t2", "Fix checkout regression", "u1", "p1", task.StatusTodo)))
	require.NoError(t, repo.Create(ctx, newTestTask("t3", "App onboarding wireframes", "u2", "p2", task.StatusCompleted)))

	t.Run("all in insertion order", func(t *testing.T) {
		tasks, err := repo.List(ctx, task.ListOptions{})
		require.NoError(t, err)
		require.Len(t, tasks, 3)
		require.Equal(t, "t1", tasks[0].ID)
		require.Equal(t, "t2", tasks[1].ID)
		require.Equal(t, "t3", tasks[2].ID)
	})

	t.Run("by assignee", func(t *testing.T) {
		tasks, err := repo.List(ctx, task.ListOptions{AssigneeID: "u1"})
		require.NoError(t, err)
		require.Len(t, tasks, 2)
	})

	t.Run("by project", func(t *testing.T) {
		tasks, err := repo.List(ctx, task.ListOptions{ProjectID: "p2"})
		require.NoError(t, err)
		require.Len(t, tasks, 1)
		require.Equal(t, "t3", tasks[0].ID)
	})

	t.Run("by status", func(t *testing.T) {
		tasks, err := repo.List(ctx, task.ListOptions{
			Statuses: []task.Status{task.StatusTodo, task.StatusCompleted},
		})
		require.NoError(t, err)
		require.Len(t, tasks, 2)
	})

	t.Run("search matches title", func(t *testing.T) {
		tasks, err := repo.List(ctx, task.ListOptions{Search: "CHECKOUT"})
		require.NoError(t, err)
		require.Len(t, tasks, 1)
		require.Equal(t, "t2", tasks[0].ID)
	})

	t.Run("limit", func(t *testing.T) {
		tasks, err := repo.List(ctx, task.ListOptions{Limit: 1})
		require.NoError(t, err)
		require.Len(t, tasks, 1)
		require.Equal(t, "t1", tasks[0].ID)
	})
}

func TestTaskRepository_Update(t *testing.T) {
	db := NewTestDB(t)
	repo := NewTaskRepository(db)
	ctx := context.Background()

	tk := newTestTask("t1", "Build homepage hero", "u1", "p1", task.StatusTodo)
	require.NoError(t, repo.Create(ctx, tk))

	actual := 9.0
	tk.Status = task.StatusCompleted
	tk.ActualHours = &actual
	tk.UpdatedAt = tk.UpdatedAt.Add(time.Hour)
	require.NoError(t, repo.Update(ctx, tk))

	got, err := repo.Get(ctx, "t1")
	require.NoError(t, err)
	require.Equal(t, task.StatusCompleted, got.Status)
	require.NotNil(t, got.ActualHours)
	require.Equal(t, 9.0, *got.ActualHours)
	require.True(t, got.UpdatedAt.Equal(tk.UpdatedAt))
}

func TestTaskRepository_Update_NotFound(t *testing.T) {
	db := NewTestDB(t)
	repo := NewTaskRepository(db)

	err := repo.Update(context.Background(), newTestTask("ghost", "Ghost", "u1", "p1", task.StatusTodo))
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestTaskRepository_Delete(t *testing.T) {
	db := NewTestDB(t)
	repo := NewTaskRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newTestTask("t1", "Doomed", "u1", "p1", task.StatusTodo)))
	require.NoError(t, repo.Delete(ctx, "t1"))

	_, err := repo.Get(ctx, "t1")
	require.ErrorIs(t, err, repository.ErrNotFound)

	require.ErrorIs(t, repo.Delete(ctx, "t1"), repository.ErrNotFound)
}
