package user

import "time"

// Role distinguishes admin users from regular team members.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleTeamMember Role = "team_member"
)

// User represents a member of the workspace.
type User struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Role       Role      `json:"role"`
	Department string    `json:"department,omitempty"`
	JoinedAt   time.Time `json:"joined_at"`
	LastActive time.Time `json:"last_active"`
}
