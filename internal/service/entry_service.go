package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/exp/slices"

	"github.com/pirxey/timetrack-api/internal/format"
	"github.com/pirxey/timetrack-api/internal/models"
	"github.com/pirxey/timetrack-api/internal/rbac"
	"github.com/pirxey/timetrack-api/internal/repository"
	"github.com/pirxey/timetrack-api/internal/validation"
)

// entryService handles time entry CRUD with role-scoped visibility
type entryService struct {
	repos *repository.Repositories
	log   zerolog.Logger
}

func newEntryService(repos *repository.Repositories, log zerolog.Logger) *entryService {
	return &entryService{
		repos: repos,
		log:   log.With().Str("service", "entries").Logger(),
	}
}

// ListVisible returns the entries the user may see. Admins see everything,
// managers see their own entries plus those on their assigned projects,
// employees see only their own.
func (s *entryService) ListVisible(ctx context.Context, user *models.User, f repository.EntryFilter) ([]*models.TimeEntry, error) {
	switch {
	case rbac.HasCapability(user.Role, rbac.CapTimeEntriesAllRead):
		return s.repos.Entry.List(ctx, f)
	case rbac.HasCapability(user.Role, rbac.CapTimeEntriesAssignedProjectsRead):
		assigned, err := s.assignedProjectIDs(ctx, user)
		if err != nil {
			return nil, err
		}
		return s.repos.Entry.ListScoped(ctx, user.ID, assigned, f)
	default:
		f.UserID = user.ID
		return s.repos.Entry.List(ctx, f)
	}
}

// Create validates and persists a new entry on behalf of the user. Writing
// an entry for someone else requires time_entries:all:write.
func (s *entryService) Create(ctx context.Context, user *models.User, payload *models.CreateTimeEntry) (*models.TimeEntry, error) {
	if payload.UserID == "" {
		payload.UserID = user.ID
	}
	if !s.mayWrite(user, payload.UserID) {
		return nil, ErrForbidden
	}
	deriveDuration(payload)
	if errs := validation.ValidateCreateTimeEntry(payload); len(errs) > 0 {
		return nil, &ValidationFailed{Errors: errs}
	}

	now := time.Now()
	entry := &models.TimeEntry{
		ID:              uuid.New().String(),
		WorkspaceID:     payload.WorkspaceID,
		UserID:          payload.UserID,
		ProjectID:       payload.ProjectID,
		Description:     payload.Description,
		Date:            payload.Date,
		StartTime:       payload.StartTime,
		EndTime:         payload.EndTime,
		DurationMinutes: payload.DurationMinutes,
		TagIDs:          payload.TagIDs,
		Billable:        payload.Billable,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.repos.Entry.Create(ctx, entry); err != nil {
		return nil, err
	}

	s.log.Debug().Str("entry_id", entry.ID).Str("user_id", entry.UserID).Msg("entry created")
	return entry, nil
}

// Update replaces the mutable fields of an existing entry
func (s *entryService) Update(ctx context.Context, user *models.User, id string, payload *models.CreateTimeEntry) (*models.TimeEntry, error) {
	entry, err := s.repos.Entry.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, ErrNotFound
	}
	if !s.mayWrite(user, entry.UserID) {
		return nil, ErrForbidden
	}
	if payload.UserID == "" {
		payload.UserID = entry.UserID
	}
	if payload.WorkspaceID == "" {
		payload.WorkspaceID = entry.WorkspaceID
	}
	deriveDuration(payload)
	if errs := validation.ValidateCreateTimeEntry(payload); len(errs) > 0 {
		return nil, &ValidationFailed{Errors: errs}
	}

	entry.ProjectID = payload.ProjectID
	entry.Description = payload.Description
	entry.Date = payload.Date
	entry.StartTime = payload.StartTime
	entry.EndTime = payload.EndTime
	entry.DurationMinutes = payload.DurationMinutes
	entry.TagIDs = payload.TagIDs
	entry.Billable = payload.Billable
	entry.UpdatedAt = time.Now()

	if err := s.repos.Entry.Update(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// Delete removes an entry the user is allowed to write
func (s *entryService) Delete(ctx context.Context, user *models.User, id string) error {
	entry, err := s.repos.Entry.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if entry == nil {
		return ErrNotFound
	}
	if !s.mayWrite(user, entry.UserID) {
		return ErrForbidden
	}
	return s.repos.Entry.Delete(ctx, id)
}

// deriveDuration fills in the minutes from the clock times when the caller
// left them out, with the same single midnight rollover the importer applies
func deriveDuration(payload *models.CreateTimeEntry) {
	if payload.DurationMinutes != 0 {
		return
	}
	start, startOK := format.ParseClock(payload.StartTime)
	end, endOK := format.ParseClock(payload.EndTime)
	if !startOK || !endOK {
		return
	}
	minutes := end - start
	if minutes < 0 {
		minutes += 24 * 60
	}
	payload.DurationMinutes = minutes
}

// mayWrite reports whether the user can modify entries owned by ownerID
func (s *entryService) mayWrite(user *models.User, ownerID string) bool {
	if ownerID == user.ID {
		return rbac.HasCapability(user.Role, rbac.CapTimeEntriesOwnWrite)
	}
	return rbac.HasCapability(user.Role, rbac.CapTimeEntriesAllWrite)
}

// assignedProjectIDs lists the projects where the user is an assigned member
func (s *entryService) assignedProjectIDs(ctx context.Context, user *models.User) ([]string, error) {
	projects, err := s.repos.Project.List(ctx, s.workspaceIDFor(ctx, user))
	if err != nil {
		return nil, err
	}
	var ids []string
	for _, p := range projects {
		if slices.Contains(p.AssignedMemberIDs, user.ID) {
			ids = append(ids, p.ID)
		}
	}
	return ids, nil
}

// workspaceIDFor resolves the single workspace the user belongs to. The
// tracker is single-workspace today, so the first one wins.
func (s *entryService) workspaceIDFor(ctx context.Context, user *models.User) string {
	workspaces, err := s.repos.Workspace.List(ctx)
	if err != nil || len(workspaces) == 0 {
		return ""
	}
	return workspaces[0].ID
}
