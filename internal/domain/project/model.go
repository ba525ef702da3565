package project

import "time"

// Status represents the lifecycle stage of a project.
type Status string

const (
	StatusPlanning   Status = "planning"
	StatusInProgress Status = "in_progress"
	StatusReview     Status = "review"
	StatusCompleted  Status = "completed"
	StatusOnHold     Status = "on_hold"
)

// Statuses lists all project statuses in display order. Views render
// distributions in this order, so it must stay fixed.
var Statuses = []Status{StatusPlanning, StatusInProgress, StatusReview, StatusCompleted, StatusOnHold}

// Priority represents project urgency.
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// Priorities lists all priorities in display order.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}

// Project represents a body of work with a deadline and an assigned team.
// Progress is a display percentage kept in [0,100] by the write path.
type Project struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Status      Status    `json:"status"`
	Priority    Priority  `json:"priority"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	Progress    int       `json:"progress"`
	MemberIDs   []string  `json:"member_ids"`
	Budget      *float64  `json:"budget,omitempty"`
	Client      string    `json:"client,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// HasMember reports whether the given user is on the project team.
func (p *Project) HasMember(userID string) bool {
	for _, id := range p.MemberIDs {
		if id == userID {
			return true
		}
	}
	return false
}
