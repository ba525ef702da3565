package metrics

import (
	"time"

	"github.com/rpggio/teamboard/internal/domain/project"
	"github.com/rpggio/teamboard/internal/domain/task"
	"github.com/rpggio/teamboard/internal/domain/user"
)

// Overview holds the headline numbers on the admin dashboard.
type Overview struct {
	TeamMembers    int     `json:"team_members"`
	ActiveProjects int     `json:"active_projects"`
	CompletedTasks int     `json:"completed_tasks"`
	TotalBudget    float64 `json:"total_budget"`
}

// AdminOverview derives the admin dashboard headline numbers. Admin accounts
// are not counted as team members; projects without a budget contribute zero.
func AdminOverview(users []user.User, projects []project.Project, tasks []task.Task) Overview {
	var o Overview
	for _, u := range users {
		if u.Role == user.RoleTeamMember {
			o.TeamMembers++
		}
	}
	for _, p := range projects {
		if p.Status == project.StatusInProgress {
			o.ActiveProjects++
		}
		if p.Budget != nil {
			o.TotalBudget += *p.Budget
		}
	}
	for _, t := range tasks {
		if t.Status == task.StatusCompleted {
			o.CompletedTasks++
		}
	}
	return o
}

// Report is the full analytics view.
type Report struct {
	ProjectCompletionRate float64                     `json:"project_completion_rate"`
	TaskCompletionRate    float64                     `json:"task_completion_rate"`
	TeamMembers           int                         `json:"team_members"`
	ActiveMembers         int                         `json:"active_members"`
	OverdueTasks          int                         `json:"overdue_tasks"`
	ProjectsByStatus      []EnumCount[project.Status] `json:"projects_by_status"`
	TasksByPriority       []EnumCount[task.Priority]  `json:"tasks_by_priority"`
	MemberPerformance     []MemberRollup              `json:"member_performance"`
}

// Analytics derives the analytics view from one snapshot. Active members are
// those seen within the last three days (active or recent under the
// last-active policy). Member performance keeps the input order of users.
func Analytics(users []user.User, projects []project.Project, tasks []task.Task, now time.Time) Report {
	completedProjects := 0
	for _, p := range projects {
		if p.Status == project.StatusCompleted {
			completedProjects++
		}
	}
	completedTasks := 0
	for _, t := range tasks {
		if t.Status == task.StatusCompleted {
			completedTasks++
		}
	}

	r := Report{
		ProjectCompletionRate: CompletionRate(completedProjects, len(projects)),
		TaskCompletionRate:    CompletionRate(completedTasks, len(tasks)),
		OverdueTasks: OverdueCount(tasks, now,
			func(t task.Task) time.Time { return t.DueDate },
			func(t task.Task) bool { return t.Status == task.StatusCompleted }),
		ProjectsByStatus: GroupCountsByEnum(projects,
			func(p project.Project) project.Status { return p.Status }, project.Statuses),
		TasksByPriority: GroupCountsByEnum(tasks,
			func(t task.Task) task.Priority { return t.Priority }, task.Priorities),
	}

	for _, u := range users {
		if u.Role != user.RoleTeamMember {
			continue
		}
		r.TeamMembers++
		if ElapsedDays(u.LastActive, now) <= 3 {
			r.ActiveMembers++
		}
		r.MemberPerformance = append(r.MemberPerformance, PerMemberRollup(u, tasks, now))
	}

	return r
}

// MemberOverview holds the headline numbers on a member's own dashboard.
type MemberOverview struct {
	CompletedTasks  int `json:"completed_tasks"`
	InProgressTasks int `json:"in_progress_tasks"`
	OverdueTasks    int `json:"overdue_tasks"`
	Projects        int `json:"projects"`
	ActiveProjects  int `json:"active_projects"`
}

// MemberDashboard derives a member's own dashboard from one snapshot. Only
// tasks assigned to the member and projects the member belongs to count.
func MemberDashboard(userID string, projects []project.Project, tasks []task.Task, now time.Time) MemberOverview {
	var o MemberOverview
	var mine []task.Task
	for _, t := range tasks {
		if t.AssigneeID != userID {
			continue
		}
		mine = append(mine, t)
		switch t.Status {
		case task.StatusCompleted:
			o.CompletedTasks++
		case task.StatusInProgress:
			o.InProgressTasks++
		}
	}
	o.OverdueTasks = OverdueCount(mine, now,
		func(t task.Task) time.Time { return t.DueDate },
		func(t task.Task) bool { return t.Status == task.StatusCompleted })
	for _, p := range projects {
		if !p.HasMember(userID) {
			continue
		}
		o.Projects++
		if p.Status == project.StatusInProgress {
			o.ActiveProjects++
		}
	}
	return o
}

// TaskActivityEntry is one row of the task activity feed.
type TaskActivityEntry struct {
	TaskID       string   `json:"task_id"`
	TaskTitle    string   `json:"task_title"`
	AssigneeName string   `json:"assignee_name"`
	Activity     Activity `json:"activity"`
}

// TaskActivity classifies task update recency under the task-update policy,
// in task input order. An empty assigneeID includes every task; an assignee
// missing from the user snapshot renders as "Unknown" rather than erroring.
func TaskActivity(users []user.User, tasks []task.Task, assigneeID string, now time.Time) []TaskActivityEntry {
	names := make(map[string]string, len(users))
	for _, u := range users {
		names[u.ID] = u.Name
	}

	var out []TaskActivityEntry
	for _, t := range tasks {
		if assigneeID != "" && t.AssigneeID != assigneeID {
			continue
		}
		name, ok := names[t.AssigneeID]
		if !ok {
			name = "Unknown"
		}
		out = append(out, TaskActivityEntry{
			TaskID:       t.ID,
			TaskTitle:    t.Title,
			AssigneeName: name,
			Activity:     Classify(t.UpdatedAt, now, TaskUpdatePolicy),
		})
	}
	return out
}
