package repository

import (
	"context"

	"github.com/pirxey/timetrack-api/internal/database"
	"github.com/pirxey/timetrack-api/internal/models"
)

// EntryFilter narrows time entry queries. Zero values mean "no constraint";
// From and To are inclusive YYYY-MM-DD bounds.
type EntryFilter struct {
	From      string
	To        string
	UserID    string
	ProjectID string
}

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	Count(ctx context.Context) (int, error)
}

// WorkspaceRepository defines the interface for workspace data operations
type WorkspaceRepository interface {
	Create(ctx context.Context, ws *models.Workspace) error
	GetByID(ctx context.Context, id string) (*models.Workspace, error)
	List(ctx context.Context) ([]*models.Workspace, error)
}

// ClientRepository defines the interface for client data operations
type ClientRepository interface {
	Create(ctx context.Context, client *models.Client) error
	Update(ctx context.Context, client *models.Client) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*models.Client, error)
	List(ctx context.Context, workspaceID string) ([]*models.Client, error)
}

// TeamRepository defines the interface for team data operations
type TeamRepository interface {
	Create(ctx context.Context, team *models.Team) error
	GetByID(ctx context.Context, id string) (*models.Team, error)
	List(ctx context.Context, workspaceID string) ([]*models.Team, error)
}

// ProjectRepository defines the interface for project data operations
type ProjectRepository interface {
	Create(ctx context.Context, project *models.Project) error
	Update(ctx context.Context, project *models.Project) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*models.Project, error)
	List(ctx context.Context, workspaceID string) ([]*models.Project, error)
}

// TagRepository defines the interface for tag data operations
type TagRepository interface {
	Create(ctx context.Context, tag *models.Tag) error
	Update(ctx context.Context, tag *models.Tag) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*models.Tag, error)
	List(ctx context.Context, workspaceID string) ([]*models.Tag, error)
}

// CategoryRepository defines the interface for category data operations
type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	Update(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*models.Category, error)
	List(ctx context.Context, workspaceID string) ([]*models.Category, error)
}

// EntryRepository defines the interface for time entry data operations
type EntryRepository interface {
	Create(ctx context.Context, entry *models.TimeEntry) error
	Update(ctx context.Context, entry *models.TimeEntry) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*models.TimeEntry, error)
	List(ctx context.Context, f EntryFilter) ([]*models.TimeEntry, error)
	// ListScoped returns entries owned by ownerID or attached to one of the
	// given projects, used for assigned-projects visibility.
	ListScoped(ctx context.Context, ownerID string, projectIDs []string, f EntryFilter) ([]*models.TimeEntry, error)
	BulkInsert(ctx context.Context, entries []*models.TimeEntry) (int, error)
	Count(ctx context.Context) (int, error)
}

// SettingsRepository defines the interface for user settings operations
type SettingsRepository interface {
	GetByUserID(ctx context.Context, userID string) (*models.UserSettings, error)
	Upsert(ctx context.Context, settings *models.UserSettings) error
}

// Repositories holds all repository interfaces
type Repositories struct {
	User      UserRepository
	Workspace WorkspaceRepository
	Client    ClientRepository
	Team      TeamRepository
	Project   ProjectRepository
	Tag       TagRepository
	Category  CategoryRepository
	Entry     EntryRepository
	Settings  SettingsRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		User:      NewUserRepo(db),
		Workspace: NewWorkspaceRepo(db),
		Client:    NewClientRepo(db),
		Team:      NewTeamRepo(db),
		Project:   NewProjectRepo(db),
		Tag:       NewTagRepo(db),
		Category:  NewCategoryRepo(db),
		Entry:     NewEntryRepo(db),
		Settings:  NewSettingsRepo(db),
	}
}
