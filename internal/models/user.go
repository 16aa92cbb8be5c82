package models

import (
	"time"
)

// Role determines which capabilities a user holds. It is immutable per user
// and changed only through the team:change_role capability.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleManager  Role = "MANAGER"
	RoleEmployee Role = "EMPLOYEE"
)

// ValidRoles defines allowed user roles
var ValidRoles = map[Role]bool{
	RoleAdmin:    true,
	RoleManager:  true,
	RoleEmployee: true,
}

// User represents a workspace member
type User struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Role      Role      `json:"role" db:"role"`
	TeamIDs   []string  `json:"team_ids" db:"team_ids"`
	AvatarURL *string   `json:"avatar_url,omitempty" db:"avatar_url"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// CreateUser is the payload for creating a user
type CreateUser struct {
	Name    string   `json:"name"`
	Email   string   `json:"email"`
	Role    Role     `json:"role"`
	TeamIDs []string `json:"team_ids"`
}

// UpdateUser is the payload for updating a workspace member. Zero-valued
// fields keep their stored value; TeamIDs replaces the list when non-nil.
type UpdateUser struct {
	Name    string   `json:"name"`
	Role    Role     `json:"role"`
	TeamIDs []string `json:"team_ids"`
}
