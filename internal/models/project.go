package models

import (
	"time"
)

// EstimateType describes how a project estimate is expressed
type EstimateType string

const (
	EstimateNone   EstimateType = "NONE"
	EstimateTime   EstimateType = "TIME"
	EstimateBudget EstimateType = "BUDGET"
)

// Project represents a tracked project, optionally tied to a client
type Project struct {
	ID                string       `json:"id" db:"id"`
	WorkspaceID       string       `json:"workspace_id" db:"workspace_id"`
	ClientID          *string      `json:"client_id,omitempty" db:"client_id"`
	Name              string       `json:"name" db:"name"`
	Color             string       `json:"color" db:"color"` // #RRGGBB
	BillableByDefault bool         `json:"billable_by_default" db:"billable_by_default"`
	BillableRate      *float64     `json:"billable_rate,omitempty" db:"billable_rate"`
	EstimateType      EstimateType `json:"estimate_type" db:"estimate_type"`
	EstimateValue     *float64     `json:"estimate_value,omitempty" db:"estimate_value"`
	Active            bool         `json:"active" db:"active"`
	IsPublic          bool         `json:"is_public" db:"is_public"`
	AssignedMemberIDs []string     `json:"assigned_member_ids" db:"assigned_member_ids"`
	CreatedAt         time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time    `json:"updated_at" db:"updated_at"`
}

// CreateProject is the payload for creating a project
type CreateProject struct {
	WorkspaceID       string       `json:"workspace_id"`
	ClientID          *string      `json:"client_id,omitempty"`
	Name              string       `json:"name"`
	Color             string       `json:"color"`
	BillableByDefault bool         `json:"billable_by_default"`
	BillableRate      *float64     `json:"billable_rate,omitempty"`
	EstimateType      EstimateType `json:"estimate_type"`
	EstimateValue     *float64     `json:"estimate_value,omitempty"`
	Active            bool         `json:"active"`
	IsPublic          bool         `json:"is_public"`
	AssignedMemberIDs []string     `json:"assigned_member_ids"`
}

// Tag labels time entries across projects
type Tag struct {
	ID          string    `json:"id" db:"id"`
	WorkspaceID string    `json:"workspace_id" db:"workspace_id"`
	Name        string    `json:"name" db:"name"`
	Color       string    `json:"color" db:"color"`
	Active      bool      `json:"active" db:"active"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// CreateTag is the payload for creating a tag
type CreateTag struct {
	WorkspaceID string `json:"workspace_id"`
	Name        string `json:"name"`
	Color       string `json:"color"`
	Active      bool   `json:"active"`
}

// Category classifies time entries for reporting. Everyone may read the
// catalog; only holders of the categories write capability maintain it.
type Category struct {
	ID          string    `json:"id" db:"id"`
	WorkspaceID string    `json:"workspace_id" db:"workspace_id"`
	Name        string    `json:"name" db:"name"`
	Color       string    `json:"color" db:"color"`
	Active      bool      `json:"active" db:"active"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// CreateCategory is the payload for creating a category
type CreateCategory struct {
	WorkspaceID string `json:"workspace_id"`
	Name        string `json:"name"`
	Color       string `json:"color"`
	Active      bool   `json:"active"`
}
