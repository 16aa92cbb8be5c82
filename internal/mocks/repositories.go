package mocks

import (
	"context"
	"sort"

	"golang.org/x/exp/slices"

	"github.com/pirxey/timetrack-api/internal/models"
	"github.com/pirxey/timetrack-api/internal/repository"
)

// MockUserRepository is an in-memory implementation of UserRepository
type MockUserRepository struct {
	Users map[string]*models.User
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{Users: make(map[string]*models.User)}
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	m.Users[user.ID] = user
	return nil
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	m.Users[user.ID] = user
	return nil
}

func (m *MockUserRepository) Delete(ctx context.Context, id string) error {
	delete(m.Users, id)
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	return m.Users[id], nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range m.Users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (m *MockUserRepository) List(ctx context.Context) ([]*models.User, error) {
	users := make([]*models.User, 0, len(m.Users))
	for _, u := range m.Users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Name < users[j].Name })
	return users, nil
}

func (m *MockUserRepository) Count(ctx context.Context) (int, error) {
	return len(m.Users), nil
}

// MockWorkspaceRepository is an in-memory implementation of WorkspaceRepository
type MockWorkspaceRepository struct {
	Workspaces map[string]*models.Workspace
}

func NewMockWorkspaceRepository() *MockWorkspaceRepository {
	return &MockWorkspaceRepository{Workspaces: make(map[string]*models.Workspace)}
}

func (m *MockWorkspaceRepository) Create(ctx context.Context, ws *models.Workspace) error {
	m.Workspaces[ws.ID] = ws
	return nil
}

func (m *MockWorkspaceRepository) GetByID(ctx context.Context, id string) (*models.Workspace, error) {
	return m.Workspaces[id], nil
}

func (m *MockWorkspaceRepository) List(ctx context.Context) ([]*models.Workspace, error) {
	workspaces := make([]*models.Workspace, 0, len(m.Workspaces))
	for _, ws := range m.Workspaces {
		workspaces = append(workspaces, ws)
	}
	sort.Slice(workspaces, func(i, j int) bool { return workspaces[i].Name < workspaces[j].Name })
	return workspaces, nil
}

// MockClientRepository is an in-memory implementation of ClientRepository
type MockClientRepository struct {
	Clients map[string]*models.Client
}

func NewMockClientRepository() *MockClientRepository {
	return &MockClientRepository{Clients: make(map[string]*models.Client)}
}

func (m *MockClientRepository) Create(ctx context.Context, client *models.Client) error {
	m.Clients[client.ID] = client
	return nil
}

func (m *MockClientRepository) Update(ctx context.Context, client *models.Client) error {
	m.Clients[client.ID] = client
	return nil
}

func (m *MockClientRepository) Delete(ctx context.Context, id string) error {
	delete(m.Clients, id)
	return nil
}

func (m *MockClientRepository) GetByID(ctx context.Context, id string) (*models.Client, error) {
	return m.Clients[id], nil
}

func (m *MockClientRepository) List(ctx context.Context, workspaceID string) ([]*models.Client, error) {
	clients := make([]*models.Client, 0, len(m.Clients))
	for _, c := range m.Clients {
		if c.WorkspaceID == workspaceID {
			clients = append(clients, c)
		}
	}
	sort.Slice(clients, func(i, j int) bool { return clients[i].Name < clients[j].Name })
	return clients, nil
}

// MockTeamRepository is an in-memory implementation of TeamRepository
type MockTeamRepository struct {
	Teams map[string]*models.Team
}

func NewMockTeamRepository() *MockTeamRepository {
	return &MockTeamRepository{Teams: make(map[string]*models.Team)}
}

func (m *MockTeamRepository) Create(ctx context.Context, team *models.Team) error {
	m.Teams[team.ID] = team
	return nil
}

func (m *MockTeamRepository) GetByID(ctx context.Context, id string) (*models.Team, error) {
	return m.Teams[id], nil
}

func (m *MockTeamRepository) List(ctx context.Context, workspaceID string) ([]*models.Team, error) {
	teams := make([]*models.Team, 0, len(m.Teams))
	for _, t := range m.Teams {
		if t.WorkspaceID == workspaceID {
			teams = append(teams, t)
		}
	}
	sort.Slice(teams, func(i, j int) bool { return teams[i].Name < teams[j].Name })
	return teams, nil
}

// MockProjectRepository is an in-memory implementation of ProjectRepository
type MockProjectRepository struct {
	Projects map[string]*models.Project
}

func NewMockProjectRepository() *MockProjectRepository {
	return &MockProjectRepository{Projects: make(map[string]*models.Project)}
}

func (m *MockProjectRepository) Create(ctx context.Context, project *models.Project) error {
	m.Projects[project.ID] = project
	return nil
}

func (m *MockProjectRepository) Update(ctx context.Context, project *models.Project) error {
	m.Projects[project.ID] = project
	return nil
}

func (m *MockProjectRepository) Delete(ctx context.Context, id string) error {
	delete(m.Projects, id)
	return nil
}

func (m *MockProjectRepository) GetByID(ctx context.Context, id string) (*models.Project, error) {
	return m.Projects[id], nil
}

func (m *MockProjectRepository) List(ctx context.Context, workspaceID string) ([]*models.Project, error) {
	projects := make([]*models.Project, 0, len(m.Projects))
	for _, p := range m.Projects {
		if p.WorkspaceID == workspaceID {
			projects = append(projects, p)
		}
	}
	sort.Slice(projects, func(i, j int) bool { return projects[i].Name < projects[j].Name })
	return projects, nil
}

// MockTagRepository is an in-memory implementation of TagRepository
type MockTagRepository struct {
	Tags map[string]*models.Tag
}

func NewMockTagRepository() *MockTagRepository {
	return &MockTagRepository{Tags: make(map[string]*models.Tag)}
}

func (m *MockTagRepository) Create(ctx context.Context, tag *models.Tag) error {
	m.Tags[tag.ID] = tag
	return nil
}

func (m *MockTagRepository) Update(ctx context.Context, tag *models.Tag) error {
	m.Tags[tag.ID] = tag
	return nil
}

func (m *MockTagRepository) Delete(ctx context.Context, id string) error {
	delete(m.Tags, id)
	return nil
}

func (m *MockTagRepository) GetByID(ctx context.Context, id string) (*models.Tag, error) {
	return m.Tags[id], nil
}

func (m *MockTagRepository) List(ctx context.Context, workspaceID string) ([]*models.Tag, error) {
	tags := make([]*models.Tag, 0, len(m.Tags))
	for _, t := range m.Tags {
		if t.WorkspaceID == workspaceID {
			tags = append(tags, t)
		}
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i].Name < tags[j].Name })
	return tags, nil
}

// MockCategoryRepository is an in-memory implementation of CategoryRepository
type MockCategoryRepository struct {
	Categories map[string]*models.Category
}

func NewMockCategoryRepository() *MockCategoryRepository {
	return &MockCategoryRepository{Categories: make(map[string]*models.Category)}
}

func (m *MockCategoryRepository) Create(ctx context.Context, category *models.Category) error {
	m.Categories[category.ID] = category
	return nil
}

func (m *MockCategoryRepository) Update(ctx context.Context, category *models.Category) error {
	m.Categories[category.ID] = category
	return nil
}

func (m *MockCategoryRepository) Delete(ctx context.Context, id string) error {
	delete(m.Categories, id)
	return nil
}

func (m *MockCategoryRepository) GetByID(ctx context.Context, id string) (*models.Category, error) {
	return m.Categories[id], nil
}

func (m *MockCategoryRepository) List(ctx context.Context, workspaceID string) ([]*models.Category, error) {
	categories := make([]*models.Category, 0, len(m.Categories))
	for _, c := range m.Categories {
		if c.WorkspaceID == workspaceID {
			categories = append(categories, c)
		}
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].Name < categories[j].Name })
	return categories, nil
}

// MockEntryRepository is an in-memory implementation of EntryRepository
type MockEntryRepository struct {
	Entries         map[string]*models.TimeEntry
	InsertError     error
	BulkInsertCalls int
}

func NewMockEntryRepository() *MockEntryRepository {
	return &MockEntryRepository{Entries: make(map[string]*models.TimeEntry)}
}

func (m *MockEntryRepository) Create(ctx context.Context, entry *models.TimeEntry) error {
	if m.InsertError != nil {
		return m.InsertError
	}
	m.Entries[entry.ID] = entry
	return nil
}

func (m *MockEntryRepository) Update(ctx context.Context, entry *models.TimeEntry) error {
	m.Entries[entry.ID] = entry
	return nil
}

func (m *MockEntryRepository) Delete(ctx context.Context, id string) error {
	delete(m.Entries, id)
	return nil
}

func (m *MockEntryRepository) GetByID(ctx context.Context, id string) (*models.TimeEntry, error) {
	return m.Entries[id], nil
}

func (m *MockEntryRepository) List(ctx context.Context, f repository.EntryFilter) ([]*models.TimeEntry, error) {
	var entries []*models.TimeEntry
	for _, e := range m.Entries {
		if matchesFilter(e, f) {
			entries = append(entries, e)
		}
	}
	sortEntries(entries)
	return entries, nil
}

func (m *MockEntryRepository) ListScoped(ctx context.Context, ownerID string, projectIDs []string, f repository.EntryFilter) ([]*models.TimeEntry, error) {
	var entries []*models.TimeEntry
	for _, e := range m.Entries {
		inScope := e.UserID == ownerID ||
			(e.ProjectID != nil && slices.Contains(projectIDs, *e.ProjectID))
		if inScope && matchesFilter(e, f) {
			entries = append(entries, e)
		}
	}
	sortEntries(entries)
	return entries, nil
}

func (m *MockEntryRepository) BulkInsert(ctx context.Context, entries []*models.TimeEntry) (int, error) {
	m.BulkInsertCalls++
	if m.InsertError != nil {
		return 0, m.InsertError
	}
	for _, e := range entries {
		m.Entries[e.ID] = e
	}
	return len(entries), nil
}

func (m *MockEntryRepository) Count(ctx context.Context) (int, error) {
	return len(m.Entries), nil
}

func matchesFilter(e *models.TimeEntry, f repository.EntryFilter) bool {
	if f.From != "" && e.Date < f.From {
		return false
	}
	if f.To != "" && e.Date > f.To {
		return false
	}
	if f.UserID != "" && e.UserID != f.UserID {
		return false
	}
	if f.ProjectID != "" && (e.ProjectID == nil || *e.ProjectID != f.ProjectID) {
		return false
	}
	return true
}

func sortEntries(entries []*models.TimeEntry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Date != entries[j].Date {
			return entries[i].Date > entries[j].Date
		}
		return entries[i].StartTime > entries[j].StartTime
	})
}

// MockSettingsRepository is an in-memory implementation of SettingsRepository
type MockSettingsRepository struct {
	Settings map[string]*models.UserSettings
}

func NewMockSettingsRepository() *MockSettingsRepository {
	return &MockSettingsRepository{Settings: make(map[string]*models.UserSettings)}
}

func (m *MockSettingsRepository) GetByUserID(ctx context.Context, userID string) (*models.UserSettings, error) {
	return m.Settings[userID], nil
}

func (m *MockSettingsRepository) Upsert(ctx context.Context, settings *models.UserSettings) error {
	m.Settings[settings.UserID] = settings
	return nil
}

// NewRepositories builds a repository set backed entirely by mocks
func NewRepositories() *repository.Repositories {
	return &repository.Repositories{
		User:      NewMockUserRepository(),
		Workspace: NewMockWorkspaceRepository(),
		Client:    NewMockClientRepository(),
		Team:      NewMockTeamRepository(),
		Project:   NewMockProjectRepository(),
		Tag:       NewMockTagRepository(),
		Category:  NewMockCategoryRepository(),
		Entry:     NewMockEntryRepository(),
		Settings:  NewMockSettingsRepository(),
	}
}
