// Package validation implements the structural rules for manually created
// records. The same checks back the CSV import pipeline, which translates
// the internal field names to the file's own column vocabulary.
package validation

import (
	"fmt"
	"regexp"

	"github.com/pirxey/timetrack-api/internal/models"
)

var (
	dateRe     = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timeRe     = regexp.MustCompile(`^\d{2}:\d{2}$`)
	hexColorRe = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)
)

// FieldError represents a single validation error
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidateCreateTimeEntry runs the ordered field checks for a candidate time
// entry. All violations are returned; nothing is thrown.
func ValidateCreateTimeEntry(e *models.CreateTimeEntry) []FieldError {
	var errs []FieldError

	if e.WorkspaceID == "" {
		errs = append(errs, FieldError{Field: "workspace_id", Message: "workspace_id is required"})
	}
	if e.UserID == "" {
		errs = append(errs, FieldError{Field: "user_id", Message: "user_id is required"})
	}
	if e.Description == "" {
		errs = append(errs, FieldError{Field: "description", Message: "description is required"})
	}
	if !dateRe.MatchString(e.Date) {
		errs = append(errs, FieldError{Field: "date", Message: "invalid date format (YYYY-MM-DD)"})
	}
	if !timeRe.MatchString(e.StartTime) {
		errs = append(errs, FieldError{Field: "start_time", Message: "invalid time format (HH:MM)"})
	}
	if !timeRe.MatchString(e.EndTime) {
		errs = append(errs, FieldError{Field: "end_time", Message: "invalid time format (HH:MM)"})
	}
	if e.DurationMinutes < 1 {
		errs = append(errs, FieldError{Field: "duration_minutes", Message: "duration must be at least 1 minute"})
	}

	return errs
}

// ValidateCreateProject validates a project payload
func ValidateCreateProject(p *models.CreateProject) []FieldError {
	var errs []FieldError

	if p.WorkspaceID == "" {
		errs = append(errs, FieldError{Field: "workspace_id", Message: "workspace_id is required"})
	}
	if p.Name == "" {
		errs = append(errs, FieldError{Field: "name", Message: "name is required"})
	}
	if !hexColorRe.MatchString(p.Color) {
		errs = append(errs, FieldError{Field: "color", Message: "invalid color (expected #RRGGBB)"})
	}
	switch p.EstimateType {
	case models.EstimateNone, models.EstimateTime, models.EstimateBudget:
	default:
		errs = append(errs, FieldError{
			Field:   "estimate_type",
			Message: fmt.Sprintf("invalid estimate type %q, must be one of: NONE, TIME, BUDGET", p.EstimateType),
		})
	}
	if p.BillableRate != nil && *p.BillableRate < 0 {
		errs = append(errs, FieldError{Field: "billable_rate", Message: "billable rate must not be negative"})
	}
	if p.EstimateValue != nil && *p.EstimateValue < 0 {
		errs = append(errs, FieldError{Field: "estimate_value", Message: "estimate value must not be negative"})
	}

	return errs
}

// ValidateCreateTag validates a tag payload
func ValidateCreateTag(tag *models.CreateTag) []FieldError {
	var errs []FieldError

	if tag.WorkspaceID == "" {
		errs = append(errs, FieldError{Field: "workspace_id", Message: "workspace_id is required"})
	}
	if tag.Name == "" {
		errs = append(errs, FieldError{Field: "name", Message: "name is required"})
	}
	if !hexColorRe.MatchString(tag.Color) {
		errs = append(errs, FieldError{Field: "color", Message: "invalid color (expected #RRGGBB)"})
	}

	return errs
}

// ValidateCreateCategory validates a category payload
func ValidateCreateCategory(c *models.CreateCategory) []FieldError {
	var errs []FieldError

	if c.WorkspaceID == "" {
		errs = append(errs, FieldError{Field: "workspace_id", Message: "workspace_id is required"})
	}
	if c.Name == "" {
		errs = append(errs, FieldError{Field: "name", Message: "name is required"})
	}
	if !hexColorRe.MatchString(c.Color) {
		errs = append(errs, FieldError{Field: "color", Message: "invalid color (expected #RRGGBB)"})
	}

	return errs
}

// ValidateCreateClient validates a client payload
func ValidateCreateClient(c *models.CreateClient) []FieldError {
	var errs []FieldError

	if c.WorkspaceID == "" {
		errs = append(errs, FieldError{Field: "workspace_id", Message: "workspace_id is required"})
	}
	if c.Name == "" {
		errs = append(errs, FieldError{Field: "name", Message: "name is required"})
	}
	if c.Currency == "" {
		errs = append(errs, FieldError{Field: "currency", Message: "currency is required"})
	}

	return errs
}

// ValidateCreateUser validates a user payload
func ValidateCreateUser(u *models.CreateUser) []FieldError {
	var errs []FieldError

	if u.Name == "" {
		errs = append(errs, FieldError{Field: "name", Message: "name is required"})
	}
	if u.Email == "" {
		errs = append(errs, FieldError{Field: "email", Message: "email is required"})
	}
	if !models.ValidRoles[u.Role] {
		errs = append(errs, FieldError{
			Field:   "role",
			Message: "invalid role, must be one of: ADMIN, MANAGER, EMPLOYEE",
		})
	}

	return errs
}
