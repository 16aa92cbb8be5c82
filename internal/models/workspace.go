package models

import (
	"time"
)

// Workspace groups all tracking data for one organization
type Workspace struct {
	ID           string    `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Currency     string    `json:"currency" db:"currency"`
	Timezone     string    `json:"timezone" db:"timezone"`
	WeekStartsOn int       `json:"week_starts_on" db:"week_starts_on"` // 0 = Sunday .. 6 = Saturday
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Client represents a billing client within a workspace
type Client struct {
	ID          string    `json:"id" db:"id"`
	WorkspaceID string    `json:"workspace_id" db:"workspace_id"`
	Name        string    `json:"name" db:"name"`
	Address     *string   `json:"address,omitempty" db:"address"`
	Currency    string    `json:"currency" db:"currency"`
	Active      bool      `json:"active" db:"active"`
	Note        *string   `json:"note,omitempty" db:"note"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// CreateClient is the payload for creating a client
type CreateClient struct {
	WorkspaceID string  `json:"workspace_id"`
	Name        string  `json:"name"`
	Address     *string `json:"address,omitempty"`
	Currency    string  `json:"currency"`
	Active      bool    `json:"active"`
	Note        *string `json:"note,omitempty"`
}

// Team groups users for reporting purposes
type Team struct {
	ID          string    `json:"id" db:"id"`
	WorkspaceID string    `json:"workspace_id" db:"workspace_id"`
	Name        string    `json:"name" db:"name"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}
