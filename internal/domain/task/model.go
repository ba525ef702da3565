package task

import "time"

// Status represents the workflow state of a task.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in_progress"
	StatusReview     Status = "review"
	StatusCompleted  Status = "completed"
)

// Statuses lists all task statuses in display order.
var Statuses = []Status{StatusTodo, StatusInProgress, StatusReview, StatusCompleted}

// Priority represents task urgency. The levels mirror project priorities.
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// Priorities lists all priorities in display order.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}

// Task represents a unit of work assigned to a user within a project.
// Assignee and project references are not checked against their collections;
// an orphaned reference simply matches nothing downstream.
type Task struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description,omitempty"`
	Status         Status    `json:"status"`
	Priority       Priority  `json:"priority"`
	AssigneeID     string    `json:"assignee_id"`
	ProjectID      string    `json:"project_id"`
	DueDate        time.Time `json:"due_date"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	EstimatedHours *float64  `json:"estimated_hours,omitempty"`
	ActualHours    *float64  `json:"actual_hours,omitempty"`
}
