package metrics_test

import (
	"testing"
	"time"

	"github.com/rpggio/teamboard/internal/domain/task"
	"github.com/rpggio/teamboard/internal/domain/user"
	"github.com/rpggio/teamboard/internal/metrics"
	"github.com/stretchr/testify/require"
)

func TestPerMemberRollup(t *testing.T) {
	now := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)
	u := user.User{
		ID:         "u1",
		Name:       "Mike Rodriguez",
		Department: "Engineering",
		LastActive: now.AddDate(0, 0, -2),
	}
	tasks := []task.Task{
		{ID: "t1", AssigneeID: "u1", Status: task.StatusCompleted},
		{ID: "t2", AssigneeID: "u1", Status: task.StatusInProgress},
		{ID: "t3", AssigneeID: "u1", Status: task.StatusTodo},
		{ID: "t4", AssigneeID: "u2", Status: task.StatusCompleted},
	}

	got := metrics.PerMemberRollup(u, tasks, now)

	require.Equal(t, "u1", got.UserID)
	require.Equal(t, "Mike Rodriguez", got.Name)
	require.Equal(t, "Engineering", got.Department)
	require.Equal(t, 3, got.AssignedCount)
	require.Equal(t, 1, got.CompletedCount)
	require.Equal(t, 33.3, got.CompletionRate)
	require.Equal(t, metrics.LevelRecent, got.Activity.Level)
	require.Equal(t, 2, got.Activity.ElapsedDays)
}

func TestPerMemberRollup_NoAssignedTasks(t *testing.T) {
	now := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)
	u := user.User{ID: "u1", Name: "Emily Watson", LastActive: now.AddDate(0, 0, -5)}

	got := metrics.PerMemberRollup(u, nil, now)

	require.Zero(t, got.AssignedCount)
	require.Zero(t, got.CompletedCount)
	require.Zero(t, got.CompletionRate)
	require.Equal(t, metrics.LevelInactive, got.Activity.Level)
}
