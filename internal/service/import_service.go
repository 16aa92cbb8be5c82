package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/pirxey/timetrack-api/internal/config"
	"github.com/pirxey/timetrack-api/internal/csvio"
	"github.com/pirxey/timetrack-api/internal/importer"
	"github.com/pirxey/timetrack-api/internal/models"
	"github.com/pirxey/timetrack-api/internal/rbac"
	"github.com/pirxey/timetrack-api/internal/repository"
)

// importService handles CSV import validation and atomic commits
type importService struct {
	repos *repository.Repositories
	cfg   *config.Config
	log   zerolog.Logger
}

func newImportService(repos *repository.Repositories, cfg *config.Config, log zerolog.Logger) *importService {
	return &importService{
		repos: repos,
		cfg:   cfg,
		log:   log.With().Str("service", "import").Logger(),
	}
}

// Validate parses and validates an uploaded file without persisting anything.
// It backs the preview screen: the caller gets the full error list and the
// would-be summary.
func (s *importService) Validate(ctx context.Context, user *models.User, workspaceID, csvText string) (*models.ImportResult, error) {
	return s.validate(ctx, user, workspaceID, csvText)
}

// Import validates the file and, when every row passes, persists the whole
// batch in one COPY transaction. A batch with any error persists nothing.
func (s *importService) Import(ctx context.Context, user *models.User, workspaceID, csvText string) (*models.ImportResult, error) {
	result, err := s.validate(ctx, user, workspaceID, csvText)
	if err != nil {
		return nil, err
	}
	if !result.Valid {
		s.log.Info().
			Str("user_id", user.ID).
			Int("errors", len(result.Errors)).
			Msg("import rejected, nothing persisted")
		return result, nil
	}

	now := time.Now()
	entries := make([]*models.TimeEntry, len(result.Entries))
	for i, c := range result.Entries {
		entries[i] = &models.TimeEntry{
			ID:              uuid.New().String(),
			WorkspaceID:     c.WorkspaceID,
			UserID:          c.UserID,
			ProjectID:       c.ProjectID,
			Description:     c.Description,
			Date:            c.Date,
			StartTime:       c.StartTime,
			EndTime:         c.EndTime,
			DurationMinutes: c.DurationMinutes,
			TagIDs:          c.TagIDs,
			Billable:        c.Billable,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
	}

	inserted, err := s.repos.Entry.BulkInsert(ctx, entries)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", user.ID).Msg("bulk insert failed")
		return nil, err
	}

	s.log.Info().
		Str("user_id", user.ID).
		Int("entries", inserted).
		Int("total_minutes", result.Summary.TotalMinutes).
		Msg("import committed")
	return result, nil
}

// Template returns the downloadable CSV template with one example row
func (s *importService) Template() string {
	return csvio.Template()
}

func (s *importService) validate(ctx context.Context, user *models.User, workspaceID, csvText string) (*models.ImportResult, error) {
	if !rbac.HasCapability(user.Role, rbac.CapTimeEntriesOwnWrite) {
		return nil, ErrForbidden
	}
	if int64(len(csvText)) > s.cfg.Import.MaxUploadSize {
		return nil, ErrFileTooLarge
	}

	file, err := csvio.Parse(csvText)
	if err != nil {
		return nil, err
	}
	if len(file.Rows) > s.cfg.Import.MaxRows {
		return nil, ErrTooManyRows
	}

	if headerErrs := importer.ValidateHeaders(file.Headers); len(headerErrs) > 0 {
		return &models.ImportResult{
			Valid:   false,
			Entries: []*models.CreateTimeEntry{},
			Errors:  headerErrs,
		}, nil
	}

	projects, err := s.repos.Project.List(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	tags, err := s.repos.Tag.List(ctx, workspaceID)
	if err != nil {
		return nil, err
	}

	result := importer.Validate(file.Rows, projects, tags, user.ID, workspaceID)
	s.log.Debug().
		Str("user_id", user.ID).
		Int("rows", len(file.Rows)).
		Bool("valid", result.Valid).
		Msg("import file validated")
	return result, nil
}
