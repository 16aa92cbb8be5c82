package models

import (
	"time"
)

// TimeEntry represents one logged work interval.
// Date is YYYY-MM-DD; StartTime and EndTime are HH:MM (24h).
type TimeEntry struct {
	ID              string    `json:"id" db:"id"`
	WorkspaceID     string    `json:"workspace_id" db:"workspace_id"`
	UserID          string    `json:"user_id" db:"user_id"`
	ProjectID       *string   `json:"project_id,omitempty" db:"project_id"`
	Description     string    `json:"description" db:"description"`
	Date            string    `json:"date" db:"date"`
	StartTime       string    `json:"start_time" db:"start_time"`
	EndTime         string    `json:"end_time" db:"end_time"`
	DurationMinutes int       `json:"duration_minutes" db:"duration_minutes"`
	TagIDs          []string  `json:"tag_ids" db:"tag_ids"`
	Billable        bool      `json:"billable" db:"billable"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

// CreateTimeEntry is the payload for creating a time entry, used both by the
// manual entry form and by CSV import rows after name resolution.
type CreateTimeEntry struct {
	WorkspaceID     string   `json:"workspace_id"`
	UserID          string   `json:"user_id"`
	ProjectID       *string  `json:"project_id,omitempty"`
	Description     string   `json:"description"`
	Date            string   `json:"date"`
	StartTime       string   `json:"start_time"`
	EndTime         string   `json:"end_time"`
	DurationMinutes int      `json:"duration_minutes"`
	TagIDs          []string `json:"tag_ids"`
	Billable        bool     `json:"billable"`
}

// UserSettings holds per-user tracker preferences
type UserSettings struct {
	ID                     string   `json:"id" db:"id"`
	UserID                 string   `json:"user_id" db:"user_id"`
	DefaultProjectID       *string  `json:"default_project_id,omitempty" db:"default_project_id"`
	DefaultTagIDs          []string `json:"default_tag_ids" db:"default_tag_ids"`
	DefaultDurationMinutes int      `json:"default_duration_minutes" db:"default_duration_minutes"`
	DefaultStartTime       string   `json:"default_start_time" db:"default_start_time"`
	Theme                  string   `json:"theme" db:"theme"` // light, dark, system
}
