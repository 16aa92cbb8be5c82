package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/exp/slices"

	"github.com/pirxey/timetrack-api/internal/models"
	"github.com/pirxey/timetrack-api/internal/rbac"
	"github.com/pirxey/timetrack-api/internal/repository"
	"github.com/pirxey/timetrack-api/internal/validation"
)

// catalogService handles projects, tags, categories, clients, teams and members
type catalogService struct {
	repos *repository.Repositories
	log   zerolog.Logger
}

func newCatalogService(repos *repository.Repositories, log zerolog.Logger) *catalogService {
	return &catalogService{
		repos: repos,
		log:   log.With().Str("service", "catalog").Logger(),
	}
}

// VisibleProjects returns the projects the user may pick from. Users with
// full entry visibility see every project; everyone else sees public
// projects plus the ones they are assigned to.
func (s *catalogService) VisibleProjects(ctx context.Context, user *models.User, workspaceID string) ([]*models.Project, error) {
	projects, err := s.repos.Project.List(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	if rbac.HasCapability(user.Role, rbac.CapTimeEntriesAllRead) {
		return projects, nil
	}

	visible := projects[:0]
	for _, p := range projects {
		if p.IsPublic || slices.Contains(p.AssignedMemberIDs, user.ID) {
			visible = append(visible, p)
		}
	}
	return visible, nil
}

// CreateProject validates and persists a new project
func (s *catalogService) CreateProject(ctx context.Context, user *models.User, payload *models.CreateProject) (*models.Project, error) {
	if !rbac.HasCapability(user.Role, rbac.CapProjectsWrite) {
		return nil, ErrForbidden
	}
	if errs := validation.ValidateCreateProject(payload); len(errs) > 0 {
		return nil, &ValidationFailed{Errors: errs}
	}

	now := time.Now()
	project := &models.Project{
		ID:                uuid.New().String(),
		WorkspaceID:       payload.WorkspaceID,
		ClientID:          payload.ClientID,
		Name:              payload.Name,
		Color:             payload.Color,
		BillableByDefault: payload.BillableByDefault,
		BillableRate:      payload.BillableRate,
		EstimateType:      payload.EstimateType,
		EstimateValue:     payload.EstimateValue,
		Active:            payload.Active,
		IsPublic:          payload.IsPublic,
		AssignedMemberIDs: payload.AssignedMemberIDs,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := s.repos.Project.Create(ctx, project); err != nil {
		return nil, err
	}
	s.log.Debug().Str("project_id", project.ID).Msg("project created")
	return project, nil
}

// UpdateProject replaces the mutable fields of an existing project. Users
// holding only projects:manage_members may change member assignments and
// nothing else.
func (s *catalogService) UpdateProject(ctx context.Context, user *models.User, id string, payload *models.CreateProject) (*models.Project, error) {
	canWrite := rbac.HasCapability(user.Role, rbac.CapProjectsWrite)
	canAssign := rbac.HasCapability(user.Role, rbac.CapProjectsManageMembers)
	if !canWrite && !canAssign {
		return nil, ErrForbidden
	}
	project, err := s.repos.Project.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrNotFound
	}

	if !canWrite {
		if !slices.Equal(payload.AssignedMemberIDs, project.AssignedMemberIDs) {
			project.AssignedMemberIDs = payload.AssignedMemberIDs
			project.UpdatedAt = time.Now()
			if err := s.repos.Project.Update(ctx, project); err != nil {
				return nil, err
			}
		}
		return project, nil
	}

	if payload.WorkspaceID == "" {
		payload.WorkspaceID = project.WorkspaceID
	}
	if errs := validation.ValidateCreateProject(payload); len(errs) > 0 {
		return nil, &ValidationFailed{Errors: errs}
	}

	project.ClientID = payload.ClientID
	project.Name = payload.Name
	project.Color = payload.Color
	project.BillableByDefault = payload.BillableByDefault
	project.BillableRate = payload.BillableRate
	project.EstimateType = payload.EstimateType
	project.EstimateValue = payload.EstimateValue
	project.Active = payload.Active
	project.IsPublic = payload.IsPublic
	project.AssignedMemberIDs = payload.AssignedMemberIDs
	project.UpdatedAt = time.Now()

	if err := s.repos.Project.Update(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// DeleteProject removes a project
func (s *catalogService) DeleteProject(ctx context.Context, user *models.User, id string) error {
	if !rbac.HasCapability(user.Role, rbac.CapProjectsDelete) {
		return ErrForbidden
	}
	project, err := s.repos.Project.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if project == nil {
		return ErrNotFound
	}
	return s.repos.Project.Delete(ctx, id)
}

// ListTags returns every tag in the workspace
func (s *catalogService) ListTags(ctx context.Context, workspaceID string) ([]*models.Tag, error) {
	return s.repos.Tag.List(ctx, workspaceID)
}

// CreateTag validates and persists a new tag
func (s *catalogService) CreateTag(ctx context.Context, user *models.User, payload *models.CreateTag) (*models.Tag, error) {
	if !rbac.HasCapability(user.Role, rbac.CapTagsWrite) {
		return nil, ErrForbidden
	}
	if errs := validation.ValidateCreateTag(payload); len(errs) > 0 {
		return nil, &ValidationFailed{Errors: errs}
	}

	now := time.Now()
	tag := &models.Tag{
		ID:          uuid.New().String(),
		WorkspaceID: payload.WorkspaceID,
		Name:        payload.Name,
		Color:       payload.Color,
		Active:      payload.Active,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repos.Tag.Create(ctx, tag); err != nil {
		return nil, err
	}
	return tag, nil
}

// DeleteTag removes a tag
func (s *catalogService) DeleteTag(ctx context.Context, user *models.User, id string) error {
	if !rbac.HasCapability(user.Role, rbac.CapTagsDelete) {
		return ErrForbidden
	}
	tag, err := s.repos.Tag.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if tag == nil {
		return ErrNotFound
	}
	return s.repos.Tag.Delete(ctx, id)
}

// ListCategories returns the workspace category catalog
func (s *catalogService) ListCategories(ctx context.Context, user *models.User, workspaceID string) ([]*models.Category, error) {
	if !rbac.HasCapability(user.Role, rbac.CapCategoriesRead) {
		return nil, ErrForbidden
	}
	return s.repos.Category.List(ctx, workspaceID)
}

// CreateCategory validates and persists a new category
func (s *catalogService) CreateCategory(ctx context.Context, user *models.User, payload *models.CreateCategory) (*models.Category, error) {
	if !rbac.HasCapability(user.Role, rbac.CapCategoriesWrite) {
		return nil, ErrForbidden
	}
	if errs := validation.ValidateCreateCategory(payload); len(errs) > 0 {
		return nil, &ValidationFailed{Errors: errs}
	}

	now := time.Now()
	category := &models.Category{
		ID:          uuid.New().String(),
		WorkspaceID: payload.WorkspaceID,
		Name:        payload.Name,
		Color:       payload.Color,
		Active:      payload.Active,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repos.Category.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// UpdateCategory renames or recolors an existing category
func (s *catalogService) UpdateCategory(ctx context.Context, user *models.User, id string, payload *models.CreateCategory) (*models.Category, error) {
	if !rbac.HasCapability(user.Role, rbac.CapCategoriesWrite) {
		return nil, ErrForbidden
	}
	category, err := s.repos.Category.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrNotFound
	}
	if errs := validation.ValidateCreateCategory(payload); len(errs) > 0 {
		return nil, &ValidationFailed{Errors: errs}
	}

	category.Name = payload.Name
	category.Color = payload.Color
	category.Active = payload.Active
	category.UpdatedAt = time.Now()
	if err := s.repos.Category.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory removes a category
func (s *catalogService) DeleteCategory(ctx context.Context, user *models.User, id string) error {
	if !rbac.HasCapability(user.Role, rbac.CapCategoriesWrite) {
		return ErrForbidden
	}
	category, err := s.repos.Category.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrNotFound
	}
	return s.repos.Category.Delete(ctx, id)
}

// ListClients returns every client in the workspace for users who may read
// the client catalog
func (s *catalogService) ListClients(ctx context.Context, user *models.User, workspaceID string) ([]*models.Client, error) {
	if !rbac.HasCapability(user.Role, rbac.CapClientsRead) {
		return nil, ErrForbidden
	}
	return s.repos.Client.List(ctx, workspaceID)
}

// CreateClient validates and persists a new client
func (s *catalogService) CreateClient(ctx context.Context, user *models.User, payload *models.CreateClient) (*models.Client, error) {
	if !rbac.HasCapability(user.Role, rbac.CapClientsWrite) {
		return nil, ErrForbidden
	}
	if errs := validation.ValidateCreateClient(payload); len(errs) > 0 {
		return nil, &ValidationFailed{Errors: errs}
	}

	now := time.Now()
	client := &models.Client{
		ID:          uuid.New().String(),
		WorkspaceID: payload.WorkspaceID,
		Name:        payload.Name,
		Address:     payload.Address,
		Currency:    payload.Currency,
		Active:      payload.Active,
		Note:        payload.Note,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repos.Client.Create(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

// DeleteClient removes a client
func (s *catalogService) DeleteClient(ctx context.Context, user *models.User, id string) error {
	if !rbac.HasCapability(user.Role, rbac.CapClientsDelete) {
		return ErrForbidden
	}
	client, err := s.repos.Client.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if client == nil {
		return ErrNotFound
	}
	return s.repos.Client.Delete(ctx, id)
}

// ListTeams returns every team in the workspace
func (s *catalogService) ListTeams(ctx context.Context, workspaceID string) ([]*models.Team, error) {
	return s.repos.Team.List(ctx, workspaceID)
}

// ListMembers returns all workspace members
func (s *catalogService) ListMembers(ctx context.Context, user *models.User) ([]*models.User, error) {
	if !rbac.HasCapability(user.Role, rbac.CapTeamRead) {
		return nil, ErrForbidden
	}
	return s.repos.User.List(ctx)
}

// InviteMember creates a new workspace member. The email must be unused.
func (s *catalogService) InviteMember(ctx context.Context, user *models.User, payload *models.CreateUser) (*models.User, error) {
	if !rbac.HasCapability(user.Role, rbac.CapTeamInvite) {
		return nil, ErrForbidden
	}
	if errs := validation.ValidateCreateUser(payload); len(errs) > 0 {
		return nil, &ValidationFailed{Errors: errs}
	}
	existing, err := s.repos.User.GetByEmail(ctx, payload.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, &ValidationFailed{Errors: []validation.FieldError{
			{Field: "email", Message: "email already in use"},
		}}
	}

	teamIDs := payload.TeamIDs
	if teamIDs == nil {
		teamIDs = []string{}
	}
	now := time.Now()
	member := &models.User{
		ID:        uuid.New().String(),
		Name:      payload.Name,
		Email:     payload.Email,
		Role:      payload.Role,
		TeamIDs:   teamIDs,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repos.User.Create(ctx, member); err != nil {
		return nil, err
	}
	s.log.Info().Str("member_id", member.ID).Str("role", string(member.Role)).Msg("member invited")
	return member, nil
}

// UpdateMember applies changes to a workspace member. Changing the role
// requires team:change_role; name and team changes require team:write.
func (s *catalogService) UpdateMember(ctx context.Context, user *models.User, id string, payload *models.UpdateUser) (*models.User, error) {
	member, err := s.repos.User.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, ErrNotFound
	}

	if payload.Role != "" && payload.Role != member.Role {
		if !rbac.HasCapability(user.Role, rbac.CapTeamChangeRole) {
			return nil, ErrForbidden
		}
		if !models.ValidRoles[payload.Role] {
			return nil, &ValidationFailed{Errors: []validation.FieldError{
				{Field: "role", Message: "invalid role, must be one of: ADMIN, MANAGER, EMPLOYEE"},
			}}
		}
		s.log.Info().Str("member_id", member.ID).
			Str("from", string(member.Role)).Str("to", string(payload.Role)).
			Msg("member role changed")
		member.Role = payload.Role
	}
	if payload.Name != "" || payload.TeamIDs != nil {
		if !rbac.HasCapability(user.Role, rbac.CapTeamWrite) {
			return nil, ErrForbidden
		}
		if payload.Name != "" {
			member.Name = payload.Name
		}
		if payload.TeamIDs != nil {
			member.TeamIDs = payload.TeamIDs
		}
	}

	member.UpdatedAt = time.Now()
	if err := s.repos.User.Update(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

// RemoveMember deletes a workspace member. Members cannot remove themselves,
// which keeps at least one account able to administer the workspace.
func (s *catalogService) RemoveMember(ctx context.Context, user *models.User, id string) error {
	if !rbac.HasCapability(user.Role, rbac.CapTeamWrite) {
		return ErrForbidden
	}
	if id == user.ID {
		return ErrForbidden
	}
	member, err := s.repos.User.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if member == nil {
		return ErrNotFound
	}
	return s.repos.User.Delete(ctx, id)
}

// GetUser resolves a user by id, used by the identification middleware
func (s *catalogService) GetUser(ctx context.Context, id string) (*models.User, error) {
	return s.repos.User.GetByID(ctx, id)
}

// GetSettings returns the user's tracker preferences, falling back to the
// defaults when none are stored yet
func (s *catalogService) GetSettings(ctx context.Context, user *models.User) (*models.UserSettings, error) {
	if !rbac.HasCapability(user.Role, rbac.CapSettingsOwn) {
		return nil, ErrForbidden
	}
	settings, err := s.repos.Settings.GetByUserID(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		settings = &models.UserSettings{
			UserID:                 user.ID,
			DefaultTagIDs:          []string{},
			DefaultDurationMinutes: 60,
			DefaultStartTime:       "09:00",
			Theme:                  "system",
		}
	}
	return settings, nil
}

// UpdateSettings stores the user's own tracker preferences
func (s *catalogService) UpdateSettings(ctx context.Context, user *models.User, settings *models.UserSettings) (*models.UserSettings, error) {
	if !rbac.HasCapability(user.Role, rbac.CapSettingsOwn) {
		return nil, ErrForbidden
	}
	settings.UserID = user.ID
	if settings.ID == "" {
		settings.ID = uuid.New().String()
	}
	if settings.DefaultTagIDs == nil {
		settings.DefaultTagIDs = []string{}
	}
	if err := s.repos.Settings.Upsert(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}
