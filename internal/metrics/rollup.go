package metrics

import (
	"time"

	"github.com/rpggio/teamboard/internal/domain/task"
	"github.com/rpggio/teamboard/internal/domain/user"
)

// MemberRollup summarizes one member's task load and presence.
type MemberRollup struct {
	UserID         string   `json:"user_id"`
	Name           string   `json:"name"`
	Department     string   `json:"department,omitempty"`
	AssignedCount  int      `json:"assigned_count"`
	CompletedCount int      `json:"completed_count"`
	CompletionRate float64  `json:"completion_rate"`
	Activity       Activity `json:"activity"`
}

// PerMemberRollup derives a member's rollup from the task snapshot. A member
// with no assigned tasks gets zero counts and a zero rate. Presence uses the
// last-active policy.
func PerMemberRollup(u user.User, tasks []task.Task, now time.Time) MemberRollup {
	assigned := 0
	completed := 0
	for _, t := range tasks {
		if t.AssigneeID != u.ID {
			continue
		}
		assigned++
		if t.Status == task.StatusCompleted {
			completed++
		}
	}
	return MemberRollup{
		UserID:         u.ID,
		Name:           u.Name,
		Department:     u.Department,
		AssignedCount:  assigned,
		CompletedCount: completed,
		CompletionRate: CompletionRate(completed, assigned),
		Activity:       Classify(u.LastActive, now, LastActivePolicy),
	}
}
