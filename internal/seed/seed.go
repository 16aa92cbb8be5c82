// Package seed loads a small deterministic demo dataset so a fresh
// developer environment has something to look at. It never runs against a
// database that already has users.
package seed

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/pirxey/timetrack-api/internal/models"
	"github.com/pirxey/timetrack-api/internal/repository"
)

const (
	workspaceID = "ws-pirxey-001"

	userAlicja  = "usr-alicja-001"
	userMateusz = "usr-mateusz-002"
	userJulia   = "usr-julia-003"

	teamCore   = "team-core-001"
	teamDesign = "team-design-002"

	clientNordic = "cli-nordic-001"
	clientAurora = "cli-aurora-002"

	projectDashboard = "prj-dashboard-001"
	projectMobile    = "prj-mobile-002"
	projectInternal  = "prj-internal-003"

	tagSpotkanie = "tag-spotkanie-001"
	tagCoding    = "tag-coding-002"
	tagPlanning  = "tag-planning-003"

	categoryKlienci    = "cat-klienci-001"
	categoryWewnetrzne = "cat-wewnetrzne-002"
)

// Run inserts the demo dataset. It is a no-op when any user already exists.
func Run(ctx context.Context, repos *repository.Repositories, log zerolog.Logger) error {
	count, err := repos.User.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		log.Info().Msg("Demo data skipped, users already present")
		return nil
	}

	now := time.Now()

	ws := &models.Workspace{
		ID: workspaceID, Name: "Pirxey", Currency: "PLN",
		Timezone: "Europe/Warsaw", WeekStartsOn: 1,
		CreatedAt: now, UpdatedAt: now,
	}
	if err := repos.Workspace.Create(ctx, ws); err != nil {
		return err
	}

	teams := []*models.Team{
		{ID: teamCore, WorkspaceID: workspaceID, Name: "Core", CreatedAt: now, UpdatedAt: now},
		{ID: teamDesign, WorkspaceID: workspaceID, Name: "Design", CreatedAt: now, UpdatedAt: now},
	}
	for _, t := range teams {
		if err := repos.Team.Create(ctx, t); err != nil {
			return err
		}
	}

	users := []*models.User{
		{ID: userAlicja, Name: "Alicja Kowalska", Email: "alicja@pirxey.dev", Role: models.RoleAdmin,
			TeamIDs: []string{teamCore}, CreatedAt: now, UpdatedAt: now},
		{ID: userMateusz, Name: "Mateusz Nowak", Email: "mateusz@pirxey.dev", Role: models.RoleManager,
			TeamIDs: []string{teamCore, teamDesign}, CreatedAt: now, UpdatedAt: now},
		{ID: userJulia, Name: "Julia Wiśniewska", Email: "julia@pirxey.dev", Role: models.RoleEmployee,
			TeamIDs: []string{teamDesign}, CreatedAt: now, UpdatedAt: now},
	}
	for _, u := range users {
		if err := repos.User.Create(ctx, u); err != nil {
			return err
		}
	}

	clients := []*models.Client{
		{ID: clientNordic, WorkspaceID: workspaceID, Name: "Nordic Retail", Currency: "EUR",
			Active: true, CreatedAt: now, UpdatedAt: now},
		{ID: clientAurora, WorkspaceID: workspaceID, Name: "Aurora Labs", Currency: "PLN",
			Active: true, CreatedAt: now, UpdatedAt: now},
	}
	for _, c := range clients {
		if err := repos.Client.Create(ctx, c); err != nil {
			return err
		}
	}

	nordic := clientNordic
	aurora := clientAurora
	rate := 180.0
	projects := []*models.Project{
		{ID: projectDashboard, WorkspaceID: workspaceID, ClientID: &nordic, Name: "Pirxey Dashboard",
			Color: "#3B82F6", BillableByDefault: true, BillableRate: &rate, EstimateType: models.EstimateNone,
			Active: true, IsPublic: true, AssignedMemberIDs: []string{userMateusz, userJulia},
			CreatedAt: now, UpdatedAt: now},
		{ID: projectMobile, WorkspaceID: workspaceID, ClientID: &aurora, Name: "Mobile App",
			Color: "#10B981", BillableByDefault: true, EstimateType: models.EstimateTime,
			Active: true, IsPublic: false, AssignedMemberIDs: []string{userMateusz},
			CreatedAt: now, UpdatedAt: now},
		{ID: projectInternal, WorkspaceID: workspaceID, Name: "Internal",
			Color: "#6366F1", EstimateType: models.EstimateNone,
			Active: true, IsPublic: true, AssignedMemberIDs: []string{},
			CreatedAt: now, UpdatedAt: now},
	}
	for _, p := range projects {
		if err := repos.Project.Create(ctx, p); err != nil {
			return err
		}
	}

	tags := []*models.Tag{
		{ID: tagSpotkanie, WorkspaceID: workspaceID, Name: "spotkanie", Color: "#F59E0B",
			Active: true, CreatedAt: now, UpdatedAt: now},
		{ID: tagCoding, WorkspaceID: workspaceID, Name: "coding", Color: "#3B82F6",
			Active: true, CreatedAt: now, UpdatedAt: now},
		{ID: tagPlanning, WorkspaceID: workspaceID, Name: "planning", Color: "#8B5CF6",
			Active: true, CreatedAt: now, UpdatedAt: now},
	}
	for _, t := range tags {
		if err := repos.Tag.Create(ctx, t); err != nil {
			return err
		}
	}

	categories := []*models.Category{
		{ID: categoryKlienci, WorkspaceID: workspaceID, Name: "Praca dla klienta", Color: "#10B981",
			Active: true, CreatedAt: now, UpdatedAt: now},
		{ID: categoryWewnetrzne, WorkspaceID: workspaceID, Name: "Wewnetrzne", Color: "#64748B",
			Active: true, CreatedAt: now, UpdatedAt: now},
	}
	for _, c := range categories {
		if err := repos.Category.Create(ctx, c); err != nil {
			return err
		}
	}

	dashboard := projectDashboard
	internal := projectInternal
	entries := []*models.TimeEntry{
		{ID: "ent-seed-001", WorkspaceID: workspaceID, UserID: userJulia, ProjectID: &dashboard,
			Description: "Sprint planning", Date: "2026-02-02", StartTime: "09:00", EndTime: "10:30",
			DurationMinutes: 90, TagIDs: []string{tagSpotkanie, tagPlanning}, Billable: true,
			CreatedAt: now, UpdatedAt: now},
		{ID: "ent-seed-002", WorkspaceID: workspaceID, UserID: userJulia, ProjectID: &dashboard,
			Description: "Report filters", Date: "2026-02-02", StartTime: "11:00", EndTime: "15:00",
			DurationMinutes: 240, TagIDs: []string{tagCoding}, Billable: true,
			CreatedAt: now, UpdatedAt: now},
		{ID: "ent-seed-003", WorkspaceID: workspaceID, UserID: userMateusz, ProjectID: &internal,
			Description: "1:1 meetings", Date: "2026-02-03", StartTime: "13:00", EndTime: "14:00",
			DurationMinutes: 60, TagIDs: []string{tagSpotkanie}, Billable: false,
			CreatedAt: now, UpdatedAt: now},
		{ID: "ent-seed-004", WorkspaceID: workspaceID, UserID: userAlicja,
			Description: "Email and admin", Date: "2026-02-03", StartTime: "08:30", EndTime: "09:15",
			DurationMinutes: 45, TagIDs: []string{}, Billable: false,
			CreatedAt: now, UpdatedAt: now},
	}
	for _, e := range entries {
		if err := repos.Entry.Create(ctx, e); err != nil {
			return err
		}
	}

	log.Info().
		Int("users", len(users)).
		Int("projects", len(projects)).
		Int("entries", len(entries)).
		Msg("Demo data loaded")
	return nil
}
