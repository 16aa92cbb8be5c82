package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pirxey/timetrack-api/internal/config"
	"github.com/pirxey/timetrack-api/internal/models"
	"github.com/pirxey/timetrack-api/internal/report"
	"github.com/pirxey/timetrack-api/internal/repository"
	"github.com/pirxey/timetrack-api/internal/validation"
)

var (
	// ErrForbidden is returned when the acting user lacks the capability for
	// an operation or targets a record outside their scope
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound is returned when the target record does not exist
	ErrNotFound = errors.New("not found")

	// ErrFileTooLarge is returned when an upload exceeds the configured limit
	ErrFileTooLarge = errors.New("file too large")

	// ErrTooManyRows is returned when an import file exceeds the row limit
	ErrTooManyRows = errors.New("too many rows")
)

// ValidationFailed carries field-level errors from a rejected payload
type ValidationFailed struct {
	Errors []validation.FieldError
}

func (e *ValidationFailed) Error() string {
	fields := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		fields[i] = fe.Field
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(fields, ", "))
}

// ImportService defines the interface for CSV import operations
type ImportService interface {
	// Validate parses and validates an uploaded file without persisting
	Validate(ctx context.Context, user *models.User, workspaceID, csvText string) (*models.ImportResult, error)
	// Import validates and, when the batch is clean, persists it atomically
	Import(ctx context.Context, user *models.User, workspaceID, csvText string) (*models.ImportResult, error)
	// Template returns the downloadable CSV template
	Template() string
}

// EntryService defines the interface for time entry operations
type EntryService interface {
	ListVisible(ctx context.Context, user *models.User, f repository.EntryFilter) ([]*models.TimeEntry, error)
	Create(ctx context.Context, user *models.User, payload *models.CreateTimeEntry) (*models.TimeEntry, error)
	Update(ctx context.Context, user *models.User, id string, payload *models.CreateTimeEntry) (*models.TimeEntry, error)
	Delete(ctx context.Context, user *models.User, id string) error
}

// CatalogService defines the interface for projects, tags, clients, teams
// and workspace members
type CatalogService interface {
	VisibleProjects(ctx context.Context, user *models.User, workspaceID string) ([]*models.Project, error)
	CreateProject(ctx context.Context, user *models.User, payload *models.CreateProject) (*models.Project, error)
	UpdateProject(ctx context.Context, user *models.User, id string, payload *models.CreateProject) (*models.Project, error)
	DeleteProject(ctx context.Context, user *models.User, id string) error

	ListTags(ctx context.Context, workspaceID string) ([]*models.Tag, error)
	CreateTag(ctx context.Context, user *models.User, payload *models.CreateTag) (*models.Tag, error)
	DeleteTag(ctx context.Context, user *models.User, id string) error

	ListCategories(ctx context.Context, user *models.User, workspaceID string) ([]*models.Category, error)
	CreateCategory(ctx context.Context, user *models.User, payload *models.CreateCategory) (*models.Category, error)
	UpdateCategory(ctx context.Context, user *models.User, id string, payload *models.CreateCategory) (*models.Category, error)
	DeleteCategory(ctx context.Context, user *models.User, id string) error

	ListClients(ctx context.Context, user *models.User, workspaceID string) ([]*models.Client, error)
	CreateClient(ctx context.Context, user *models.User, payload *models.CreateClient) (*models.Client, error)
	DeleteClient(ctx context.Context, user *models.User, id string) error

	ListTeams(ctx context.Context, workspaceID string) ([]*models.Team, error)
	ListMembers(ctx context.Context, user *models.User) ([]*models.User, error)
	InviteMember(ctx context.Context, user *models.User, payload *models.CreateUser) (*models.User, error)
	UpdateMember(ctx context.Context, user *models.User, id string, payload *models.UpdateUser) (*models.User, error)
	RemoveMember(ctx context.Context, user *models.User, id string) error
	GetUser(ctx context.Context, id string) (*models.User, error)

	GetSettings(ctx context.Context, user *models.User) (*models.UserSettings, error)
	UpdateSettings(ctx context.Context, user *models.User, settings *models.UserSettings) (*models.UserSettings, error)
}

// Report is one rendered report: the filtered entries plus optional grouping
type Report struct {
	Entries      []*models.TimeEntry `json:"entries"`
	Groups       []report.Group      `json:"groups,omitempty"`
	TotalMinutes int                 `json:"total_minutes"`
	EntryCount   int                 `json:"entry_count"`
}

// ReportService defines the interface for reports and file exports
type ReportService interface {
	Build(ctx context.Context, user *models.User, workspaceID string, f *report.Filter, dim report.Dimension) (*Report, error)
	ExportCSV(ctx context.Context, user *models.User, workspaceID string, f *report.Filter) (string, error)
	ExportExcel(ctx context.Context, user *models.User, workspaceID string, f *report.Filter, dim report.Dimension) ([]byte, error)
}

// Services holds all service interfaces
type Services struct {
	Import  ImportService
	Entry   EntryService
	Catalog CatalogService
	Report  ReportService
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, cfg *config.Config, log zerolog.Logger) *Services {
	return &Services{
		Import:  newImportService(repos, cfg, log),
		Entry:   newEntryService(repos, log),
		Catalog: newCatalogService(repos, log),
		Report:  newReportService(repos, log),
	}
}
