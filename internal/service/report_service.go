package service

import (
	"context"

	"github.com/rs/zerolog"
	"golang.org/x/exp/slices"

	"github.com/pirxey/timetrack-api/internal/export"
	"github.com/pirxey/timetrack-api/internal/models"
	"github.com/pirxey/timetrack-api/internal/rbac"
	"github.com/pirxey/timetrack-api/internal/report"
	"github.com/pirxey/timetrack-api/internal/repository"
)

// reportService builds reports and file exports over role-scoped entries
type reportService struct {
	repos *repository.Repositories
	log   zerolog.Logger
}

func newReportService(repos *repository.Repositories, log zerolog.Logger) *reportService {
	return &reportService{
		repos: repos,
		log:   log.With().Str("service", "reports").Logger(),
	}
}

// Build assembles one report: scope the entries by role, apply the filter,
// then group by the requested dimension.
func (s *reportService) Build(ctx context.Context, user *models.User, workspaceID string, f *report.Filter, dim report.Dimension) (*Report, error) {
	entries, rctx, err := s.scopedEntries(ctx, user, workspaceID, f)
	if err != nil {
		return nil, err
	}

	r := &Report{
		Entries:      entries,
		TotalMinutes: report.TotalMinutes(entries),
		EntryCount:   len(entries),
	}
	if dim != report.DimensionNone {
		r.Groups = report.GroupEntries(entries, dim, rctx)
	}
	return r, nil
}

// ExportCSV renders the scoped, filtered entries as CSV text
func (s *reportService) ExportCSV(ctx context.Context, user *models.User, workspaceID string, f *report.Filter) (string, error) {
	entries, rctx, err := s.scopedEntries(ctx, user, workspaceID, f)
	if err != nil {
		return "", err
	}
	return export.EntriesToCSV(entries, rctx)
}

// ExportExcel renders the scoped, filtered entries as an xlsx workbook,
// optionally grouped
func (s *reportService) ExportExcel(ctx context.Context, user *models.User, workspaceID string, f *report.Filter, dim report.Dimension) ([]byte, error) {
	entries, rctx, err := s.scopedEntries(ctx, user, workspaceID, f)
	if err != nil {
		return nil, err
	}

	var groups []report.Group
	if dim != report.DimensionNone {
		groups = report.GroupEntries(entries, dim, rctx)
	}
	wb, err := export.Workbook(entries, rctx, dim, groups)
	if err != nil {
		return nil, err
	}
	buf, err := wb.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// scopedEntries loads the catalog snapshot and the entries the user's
// reporting capabilities allow, then applies the filter.
func (s *reportService) scopedEntries(ctx context.Context, user *models.User, workspaceID string, f *report.Filter) ([]*models.TimeEntry, *report.Context, error) {
	projects, err := s.repos.Project.List(ctx, workspaceID)
	if err != nil {
		return nil, nil, err
	}
	tags, err := s.repos.Tag.List(ctx, workspaceID)
	if err != nil {
		return nil, nil, err
	}
	teams, err := s.repos.Team.List(ctx, workspaceID)
	if err != nil {
		return nil, nil, err
	}
	users, err := s.repos.User.List(ctx)
	if err != nil {
		return nil, nil, err
	}
	clients, err := s.repos.Client.List(ctx, workspaceID)
	if err != nil {
		return nil, nil, err
	}
	rctx := report.NewContext(projects, tags, teams, users, clients)

	base := repository.EntryFilter{From: f.From, To: f.To}
	var entries []*models.TimeEntry
	switch {
	case rbac.HasCapability(user.Role, rbac.CapReportsAll):
		entries, err = s.repos.Entry.List(ctx, base)
	case rbac.HasCapability(user.Role, rbac.CapReportsAssignedProjects):
		var assigned []string
		for _, p := range projects {
			if slices.Contains(p.AssignedMemberIDs, user.ID) {
				assigned = append(assigned, p.ID)
			}
		}
		entries, err = s.repos.Entry.ListScoped(ctx, user.ID, assigned, base)
	default:
		base.UserID = user.ID
		entries, err = s.repos.Entry.List(ctx, base)
	}
	if err != nil {
		return nil, nil, err
	}

	return report.FilterEntries(entries, f, rctx), rctx, nil
}
