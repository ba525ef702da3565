package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/rpggio/teamboard/internal/domain/project"
	"github.com/rpggio/teamboard/internal/repository"
	"github.com/stretchr/testify/require"
)

func newTestProject(id, name string, status project.Status) *project.Project {
	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	budget := 48000.0
	return &project.Project{
		ID:          id,
		Name:        name,
		Description: "A test project",
		Status:      status,
		Priority:    project.PriorityHigh,
		StartDate:   start,
		EndDate:     start.AddDate(0, 3, 0),
		Progress:    65,
		MemberIDs:   []string{"u1", "u2"},
		Budget:      &budget,
		Client:      "Acme Corp",
		CreatedAt:   start,
	}
}

func TestProjectRepository_CreateAndGet(t *testing.T) {
	db := NewTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	proj := newTestProject("p1", "Website Redesign", project.StatusInProgress)
	require.NoError(t, repo.Create(ctx, proj))

	got, err := repo.Get(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, "Website Redesign", got.Name)
	require.Equal(t, project.StatusInProgress, got.Status)
	require.Equal(t, []string{"u1", "u2"}, got.MemberIDs)
	require.NotNil(t, got.Budget)
	require.Equal(t, 48000.0, *got.Budget)
}

func TestProjectRepository_Get_NotFound(t *testing.T) {
	db := NewTestDB(t)
	repo := NewProjectRepository(db)

	_, err := repo.Get(context.Background(), "missing")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestProjectRepository_Create_DuplicateID(t *testing.T) {
	db := NewTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newTestProject("p1", "Website Redesign", project.StatusInProgress)))
	err := repo.Create(ctx, newTestProject("p1", "Same ID", project.StatusPlanning))
	require.ErrorIs(t, err, repository.ErrDuplicate)
}

func TestProjectRepository_NilBudget(t *testing.T) {
	db := NewTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	proj := newTestProject("p1", "No Budget", project.StatusPlanning)
	proj.Budget = nil
	require.NoError(t, repo.Create(ctx, proj))

	got, err := repo.Get(ctx, "p1")
	require.NoError(t, err)
	require.Nil(t, got.Budget)
}

func TestProjectRepository_MemberOrderSurvivesRoundTrip(t *testing.T) {
	db := NewTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	proj := newTestProject("p1", "Ordered", project.StatusPlanning)
	proj.MemberIDs = []string{"u9", "u1", "u5", "u3"}
	require.NoError(t, repo.Create(ctx, proj))

	got, err := repo.Get(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, []string{"u9", "u1", "u5", "u3"}, got.MemberIDs)
}

func TestProjectRepository_List(t *testing.T) {
	db := NewTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newTestProject("p1", "Website Redesign", project.StatusInProgress)))
	mobile := newTestProject("p2", "Mobile App", project.StatusPlanning)
	mobile.MemberIDs = []string{"u3"}
	mobile.Client = "Initech"
	require.NoError(t, repo.Create(ctx, mobile))
	require.NoError(t, repo.Create(ctx, newTestProject("p3", "Brand Campaign", project.StatusCompleted)))

	t.Run("all in insertion order", func(t *testing.T) {
		projects, err := repo.List(ctx, project.ListOptions{})
		require.NoError(t, err)
		require.Len(t, projects, 3)
		require.Equal(t, "p1", projects[0].ID)
		require.Equal(t, "p2", projects[1].ID)
		require.Equal(t, "p3", projects[2].ID)
		require.Equal(t, []string{"u1", "u2"}, projects[0].MemberIDs)
	})

	t.Run("by status", func(t *testing.T) {
		projects, err := repo.List(ctx, project.ListOptions{
			Statuses: []project.Status{project.StatusInProgress, project.StatusCompleted},
		})
		require.NoError(t, err)
		require.Len(t, projects, 2)
	})

	t.Run("by member", func(t *testing.T) {
		projects, err := repo.List(ctx, project.ListOptions{MemberID: "u3"})
		require.NoError(t, err)
		require.Len(t, projects, 1)
		require.Equal(t, "p2", projects[0].ID)
	})

	t.Run("search matches client", func(t *testing.T) {
		projects, err := repo.List(ctx, project.ListOptions{Search: "initech"})
		require.NoError(t, err)
		require.Len(t, projects, 1)
		require.Equal(t, "p2", projects[0].ID)
	})

	t.Run("limit", func(t *testing.T) {
		projects, err := repo.List(ctx, project.ListOptions{Limit: 2})
		require.NoError(t, err)
		require.Len(t, projects, 2)
	})
}

func TestProjectRepository_Update(t *testing.T) {
	db := NewTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	proj := newTestProject("p1", "Website Redesign", project.StatusInProgress)
	require.NoError(t, repo.Create(ctx, proj))

	proj.Status = project.StatusCompleted
	proj.Progress = 100
	proj.MemberIDs = []string{"u2"}
	require.NoError(t, repo.Update(ctx, proj))

	got, err := repo.Get(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, project.StatusCompleted, got.Status)
	require.Equal(t, 100, got.Progress)
	require.Equal(t, []string{"u2"}, got.MemberIDs)
}

func TestProjectRepository_Update_NotFound(t *testing.T) {
	db := NewTestDB(t)
	repo := NewProjectRepository(db)

	err := repo.Update(context.Background(), newTestProject("ghost", "Ghost", project.StatusPlanning))
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestProjectRepository_Delete_CascadesMembers(t *testing.T) {
	db := NewTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newTestProject("p1", "Doomed", project.StatusPlanning)))
	require.NoError(t, repo.Delete(ctx, "p1"))

	_, err := repo.Get(ctx, "p1")
	require.ErrorIs(t, err, repository.ErrNotFound)

	var count int
	require.NoError(t, db.QueryRow(
		`SELECT COUNT(*) FROM project_members WHERE project_id = 'p1'`).Scan(&count))
	require.Zero(t, count)

	require.ErrorIs(t, repo.Delete(ctx, "p1"), repository.ErrNotFound)
}
