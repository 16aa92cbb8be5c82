package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/pirxey/timetrack-api/internal/config"
	"github.com/pirxey/timetrack-api/internal/csvio"
	"github.com/pirxey/timetrack-api/internal/mocks"
	"github.com/pirxey/timetrack-api/internal/models"
	"github.com/pirxey/timetrack-api/internal/report"
	"github.com/pirxey/timetrack-api/internal/repository"
	"github.com/pirxey/timetrack-api/internal/service"
)

const testWorkspace = "ws-test-001"

func setup(t *testing.T) (*repository.Repositories, *service.Services) {
	t.Helper()

	repos := mocks.NewRepositories()
	cfg := &config.Config{
		Import: config.ImportConfig{MaxUploadSize: 1 << 20, MaxRows: 100},
	}
	services := service.NewServices(repos, cfg, zerolog.Nop())

	ctx := context.Background()
	now := time.Now()

	repos.Workspace.Create(ctx, &models.Workspace{
		ID: testWorkspace, Name: "Test", Currency: "PLN", Timezone: "Europe/Warsaw",
		CreatedAt: now, UpdatedAt: now,
	})

	users := []*models.User{
		{ID: "usr-admin", Name: "Alicja", Email: "alicja@test.dev", Role: models.RoleAdmin},
		{ID: "usr-manager", Name: "Mateusz", Email: "mateusz@test.dev", Role: models.RoleManager},
		{ID: "usr-employee", Name: "Julia", Email: "julia@test.dev", Role: models.RoleEmployee},
	}
	for _, u := range users {
		repos.User.Create(ctx, u)
	}

	projects := []*models.Project{
		{ID: "prj-dashboard", WorkspaceID: testWorkspace, Name: "Pirxey Dashboard", Color: "#3B82F6",
			EstimateType: models.EstimateNone, Active: true, IsPublic: true,
			AssignedMemberIDs: []string{"usr-manager"}},
		{ID: "prj-mobile", WorkspaceID: testWorkspace, Name: "Mobile App", Color: "#10B981",
			EstimateType: models.EstimateNone, Active: true, IsPublic: false,
			AssignedMemberIDs: []string{"usr-manager", "usr-employee"}},
		{ID: "prj-secret", WorkspaceID: testWorkspace, Name: "Secret", Color: "#EF4444",
			EstimateType: models.EstimateNone, Active: true, IsPublic: false,
			AssignedMemberIDs: []string{}},
	}
	for _, p := range projects {
		repos.Project.Create(ctx, p)
	}

	tags := []*models.Tag{
		{ID: "tag-spotkanie", WorkspaceID: testWorkspace, Name: "spotkanie", Color: "#F59E0B", Active: true},
		{ID: "tag-planning", WorkspaceID: testWorkspace, Name: "planning", Color: "#8B5CF6", Active: true},
	}
	for _, tag := range tags {
		repos.Tag.Create(ctx, tag)
	}

	return repos, services
}

func getUser(t *testing.T, repos *repository.Repositories, id string) *models.User {
	t.Helper()
	u, err := repos.User.GetByID(context.Background(), id)
	if err != nil || u == nil {
		t.Fatalf("fixture user %s missing", id)
	}
	return u
}

func seedEntry(t *testing.T, repos *repository.Repositories, id, userID string, projectID *string) {
	t.Helper()
	err := repos.Entry.Create(context.Background(), &models.TimeEntry{
		ID: id, WorkspaceID: testWorkspace, UserID: userID, ProjectID: projectID,
		Description: "work", Date: "2026-03-02", StartTime: "09:00", EndTime: "10:00",
		DurationMinutes: 60, TagIDs: []string{},
	})
	if err != nil {
		t.Fatalf("seed entry %s: %v", id, err)
	}
}

func TestImportServiceCommitsValidBatch(t *testing.T) {
	repos, services := setup(t)
	user := getUser(t, repos, "usr-employee")

	csvText := strings.Join([]string{
		"Description,Project,Date,Start,End,Tags,Billable",
		"Sprint planning,Pirxey Dashboard,2026-03-02,09:00,10:30,spotkanie; planning,Yes",
		"Code review,,2026-03-02,11:00,11:45,,no",
	}, "\n")

	result, err := services.Import.Import(context.Background(), user, testWorkspace, csvText)
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if !result.Valid {
		t.Fatalf("expected valid batch, got errors: %v", result.Errors)
	}
	if result.Summary.TotalEntries != 2 || result.Summary.TotalMinutes != 135 {
		t.Errorf("summary = %d entries / %d min, want 2 / 135",
			result.Summary.TotalEntries, result.Summary.TotalMinutes)
	}

	count, _ := repos.Entry.Count(context.Background())
	if count != 2 {
		t.Errorf("persisted %d entries, want 2", count)
	}

	persisted, _ := repos.Entry.List(context.Background(), repository.EntryFilter{UserID: user.ID})
	for _, e := range persisted {
		if e.UserID != user.ID {
			t.Errorf("entry %s attributed to %s, want importing user", e.ID, e.UserID)
		}
		if e.ID == "" {
			t.Error("persisted entry has no id")
		}
	}
}

func TestImportServiceRejectsInvalidBatchWithoutPersisting(t *testing.T) {
	repos, services := setup(t)
	user := getUser(t, repos, "usr-employee")

	csvText := strings.Join([]string{
		"Description,Project,Date,Start,End,Tags,Billable",
		"Fine row,,2026-03-02,09:00,10:00,,no",
		"Bad row,Ghost Project,2026-03-02,11:00,12:00,,no",
	}, "\n")

	result, err := services.Import.Import(context.Background(), user, testWorkspace, csvText)
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if result.Valid {
		t.Fatal("expected invalid batch")
	}
	if len(result.Entries) != 0 {
		t.Errorf("invalid batch carried %d entries, want 0", len(result.Entries))
	}

	count, _ := repos.Entry.Count(context.Background())
	if count != 0 {
		t.Errorf("persisted %d entries from a rejected batch, want 0", count)
	}
	entryRepo := repos.Entry.(*mocks.MockEntryRepository)
	if entryRepo.BulkInsertCalls != 0 {
		t.Errorf("BulkInsert called %d times for a rejected batch", entryRepo.BulkInsertCalls)
	}
}

func TestImportServiceFileLimits(t *testing.T) {
	repos, services := setup(t)
	user := getUser(t, repos, "usr-employee")
	ctx := context.Background()

	if _, err := services.Import.Validate(ctx, user, testWorkspace, ""); !errors.Is(err, csvio.ErrEmptyFile) {
		t.Errorf("empty file: got %v, want ErrEmptyFile", err)
	}
	if _, err := services.Import.Validate(ctx, user, testWorkspace, "Description,Project,Date,Start,End,Tags,Billable\n"); !errors.Is(err, csvio.ErrNoDataRows) {
		t.Errorf("header only: got %v, want ErrNoDataRows", err)
	}

	var sb strings.Builder
	sb.WriteString("Description,Project,Date,Start,End,Tags,Billable\n")
	for i := 0; i < 101; i++ {
		sb.WriteString("row,,2026-03-02,09:00,10:00,,no\n")
	}
	if _, err := services.Import.Validate(ctx, user, testWorkspace, sb.String()); !errors.Is(err, service.ErrTooManyRows) {
		t.Errorf("oversized file: got %v, want ErrTooManyRows", err)
	}
}

func TestEntryServiceListVisibleScopes(t *testing.T) {
	repos, services := setup(t)
	ctx := context.Background()

	mobile := "prj-mobile"
	secret := "prj-secret"
	seedEntry(t, repos, "ent-admin", "usr-admin", nil)
	seedEntry(t, repos, "ent-manager", "usr-manager", nil)
	seedEntry(t, repos, "ent-employee", "usr-employee", nil)
	// Entry by the employee on a project where the manager is assigned
	seedEntry(t, repos, "ent-mobile", "usr-employee", &mobile)
	// Entry nobody but its author and admins should see
	seedEntry(t, repos, "ent-secret", "usr-admin", &secret)

	tests := []struct {
		name    string
		userID  string
		wantIDs []string
	}{
		{"admin sees everything", "usr-admin",
			[]string{"ent-admin", "ent-manager", "ent-employee", "ent-mobile", "ent-secret"}},
		{"manager sees own plus assigned projects", "usr-manager",
			[]string{"ent-manager", "ent-mobile"}},
		{"employee sees only own", "usr-employee",
			[]string{"ent-employee", "ent-mobile"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := services.Entry.ListVisible(ctx, getUser(t, repos, tt.userID), repository.EntryFilter{})
			if err != nil {
				t.Fatalf("ListVisible failed: %v", err)
			}
			got := make(map[string]bool, len(entries))
			for _, e := range entries {
				got[e.ID] = true
			}
			if len(got) != len(tt.wantIDs) {
				t.Errorf("got %d entries, want %d (%v)", len(got), len(tt.wantIDs), got)
			}
			for _, id := range tt.wantIDs {
				if !got[id] {
					t.Errorf("missing entry %s", id)
				}
			}
		})
	}
}

func TestEntryServiceWritePermissions(t *testing.T) {
	repos, services := setup(t)
	ctx := context.Background()

	seedEntry(t, repos, "ent-julia", "usr-employee", nil)

	payload := &models.CreateTimeEntry{
		WorkspaceID: testWorkspace, UserID: "usr-employee",
		Description: "edited", Date: "2026-03-02", StartTime: "09:00", EndTime: "10:00",
		DurationMinutes: 60, TagIDs: []string{},
	}

	// The manager lacks time_entries:all:write
	if _, err := services.Entry.Update(ctx, getUser(t, repos, "usr-manager"), "ent-julia", payload); !errors.Is(err, service.ErrForbidden) {
		t.Errorf("manager editing another user's entry: got %v, want ErrForbidden", err)
	}

	// The owner may edit
	if _, err := services.Entry.Update(ctx, getUser(t, repos, "usr-employee"), "ent-julia", payload); err != nil {
		t.Errorf("owner edit failed: %v", err)
	}

	// Admins may edit anyone's entries
	if _, err := services.Entry.Update(ctx, getUser(t, repos, "usr-admin"), "ent-julia", payload); err != nil {
		t.Errorf("admin edit failed: %v", err)
	}

	if err := services.Entry.Delete(ctx, getUser(t, repos, "usr-manager"), "ent-julia"); !errors.Is(err, service.ErrForbidden) {
		t.Errorf("manager delete: got %v, want ErrForbidden", err)
	}
	if err := services.Entry.Delete(ctx, getUser(t, repos, "usr-employee"), "ent-julia"); err != nil {
		t.Errorf("owner delete failed: %v", err)
	}
}

func TestEntryServiceCreateValidates(t *testing.T) {
	repos, services := setup(t)

	_, err := services.Entry.Create(context.Background(), getUser(t, repos, "usr-employee"), &models.CreateTimeEntry{
		WorkspaceID: testWorkspace,
		Description: "",
		Date:        "2026-03-02", StartTime: "09:00", EndTime: "10:00",
		DurationMinutes: 60,
	})
	var vf *service.ValidationFailed
	if !errors.As(err, &vf) {
		t.Fatalf("got %v, want ValidationFailed", err)
	}
	if len(vf.Errors) == 0 || vf.Errors[0].Field != "description" {
		t.Errorf("unexpected field errors: %v", vf.Errors)
	}
}

func TestEntryServiceDerivesDuration(t *testing.T) {
	repos, services := setup(t)

	entry, err := services.Entry.Create(context.Background(), getUser(t, repos, "usr-employee"), &models.CreateTimeEntry{
		WorkspaceID: testWorkspace,
		Description: "Late shift",
		Date:        "2026-03-02", StartTime: "22:00", EndTime: "02:00",
		TagIDs: []string{},
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if entry.DurationMinutes != 240 {
		t.Errorf("derived duration = %d, want 240 across midnight", entry.DurationMinutes)
	}
}

func TestCatalogServiceVisibleProjects(t *testing.T) {
	repos, services := setup(t)
	ctx := context.Background()

	admin, _ := services.Catalog.VisibleProjects(ctx, getUser(t, repos, "usr-admin"), testWorkspace)
	if len(admin) != 3 {
		t.Errorf("admin sees %d projects, want 3", len(admin))
	}

	employee, _ := services.Catalog.VisibleProjects(ctx, getUser(t, repos, "usr-employee"), testWorkspace)
	names := make(map[string]bool)
	for _, p := range employee {
		names[p.Name] = true
	}
	if len(employee) != 2 || !names["Pirxey Dashboard"] || !names["Mobile App"] {
		t.Errorf("employee sees %v, want public project and assigned private one", names)
	}
}

func TestCatalogServiceClientAccess(t *testing.T) {
	repos, services := setup(t)
	ctx := context.Background()

	if _, err := services.Catalog.ListClients(ctx, getUser(t, repos, "usr-employee"), testWorkspace); !errors.Is(err, service.ErrForbidden) {
		t.Errorf("employee listing clients: got %v, want ErrForbidden", err)
	}
	if _, err := services.Catalog.ListClients(ctx, getUser(t, repos, "usr-manager"), testWorkspace); err != nil {
		t.Errorf("manager listing clients failed: %v", err)
	}

	payload := &models.CreateClient{WorkspaceID: testWorkspace, Name: "Nordic Retail", Currency: "EUR", Active: true}
	if _, err := services.Catalog.CreateClient(ctx, getUser(t, repos, "usr-manager"), payload); !errors.Is(err, service.ErrForbidden) {
		t.Errorf("manager creating client: got %v, want ErrForbidden", err)
	}
	if _, err := services.Catalog.CreateClient(ctx, getUser(t, repos, "usr-admin"), payload); err != nil {
		t.Errorf("admin creating client failed: %v", err)
	}
}

func TestCatalogServiceInviteMember(t *testing.T) {
	repos, services := setup(t)
	ctx := context.Background()

	payload := &models.CreateUser{
		Name: "Piotr Zieliński", Email: "piotr@test.dev", Role: models.RoleEmployee,
	}

	// Only team:invite holders may add members
	if _, err := services.Catalog.InviteMember(ctx, getUser(t, repos, "usr-manager"), payload); !errors.Is(err, service.ErrForbidden) {
		t.Errorf("manager inviting: got %v, want ErrForbidden", err)
	}

	member, err := services.Catalog.InviteMember(ctx, getUser(t, repos, "usr-admin"), payload)
	if err != nil {
		t.Fatalf("InviteMember failed: %v", err)
	}
	if member.ID == "" || member.Role != models.RoleEmployee {
		t.Errorf("unexpected member: %+v", member)
	}

	// Duplicate email rejected
	var vf *service.ValidationFailed
	if _, err := services.Catalog.InviteMember(ctx, getUser(t, repos, "usr-admin"), payload); !errors.As(err, &vf) {
		t.Errorf("duplicate email: got %v, want ValidationFailed", err)
	}

	// Bad role rejected
	_, err = services.Catalog.InviteMember(ctx, getUser(t, repos, "usr-admin"), &models.CreateUser{
		Name: "X", Email: "x@test.dev", Role: "OWNER",
	})
	if !errors.As(err, &vf) {
		t.Errorf("invalid role: got %v, want ValidationFailed", err)
	}
}

func TestCatalogServiceCategoryLifecycle(t *testing.T) {
	repos, services := setup(t)
	ctx := context.Background()

	payload := &models.CreateCategory{
		WorkspaceID: testWorkspace, Name: "Praca dla klienta", Color: "#10B981", Active: true,
	}

	// categories:write is admin-only
	if _, err := services.Catalog.CreateCategory(ctx, getUser(t, repos, "usr-manager"), payload); !errors.Is(err, service.ErrForbidden) {
		t.Errorf("manager creating category: got %v, want ErrForbidden", err)
	}
	if _, err := services.Catalog.CreateCategory(ctx, getUser(t, repos, "usr-employee"), payload); !errors.Is(err, service.ErrForbidden) {
		t.Errorf("employee creating category: got %v, want ErrForbidden", err)
	}

	category, err := services.Catalog.CreateCategory(ctx, getUser(t, repos, "usr-admin"), payload)
	if err != nil {
		t.Fatalf("CreateCategory failed: %v", err)
	}
	if category.ID == "" || category.Name != "Praca dla klienta" {
		t.Errorf("unexpected category: %+v", category)
	}

	// categories:read is held by every role
	listed, err := services.Catalog.ListCategories(ctx, getUser(t, repos, "usr-employee"), testWorkspace)
	if err != nil {
		t.Fatalf("ListCategories failed: %v", err)
	}
	if len(listed) != 1 || listed[0].ID != category.ID {
		t.Errorf("listed categories = %+v, want the created one", listed)
	}

	updated, err := services.Catalog.UpdateCategory(ctx, getUser(t, repos, "usr-admin"), category.ID, &models.CreateCategory{
		WorkspaceID: testWorkspace, Name: "Wewnetrzne", Color: "#64748B", Active: false,
	})
	if err != nil {
		t.Fatalf("UpdateCategory failed: %v", err)
	}
	if updated.Name != "Wewnetrzne" || updated.Active {
		t.Errorf("update not applied: %+v", updated)
	}

	// Bad color rejected
	var vf *service.ValidationFailed
	if _, err := services.Catalog.UpdateCategory(ctx, getUser(t, repos, "usr-admin"), category.ID, &models.CreateCategory{
		WorkspaceID: testWorkspace, Name: "X", Color: "green",
	}); !errors.As(err, &vf) {
		t.Errorf("invalid color: got %v, want ValidationFailed", err)
	}

	if err := services.Catalog.DeleteCategory(ctx, getUser(t, repos, "usr-manager"), category.ID); !errors.Is(err, service.ErrForbidden) {
		t.Errorf("manager deleting category: got %v, want ErrForbidden", err)
	}
	if err := services.Catalog.DeleteCategory(ctx, getUser(t, repos, "usr-admin"), category.ID); err != nil {
		t.Fatalf("DeleteCategory failed: %v", err)
	}
	if err := services.Catalog.DeleteCategory(ctx, getUser(t, repos, "usr-admin"), category.ID); !errors.Is(err, service.ErrNotFound) {
		t.Errorf("deleting twice: got %v, want ErrNotFound", err)
	}
}

func TestCatalogServiceMemberRoleChange(t *testing.T) {
	repos, services := setup(t)
	ctx := context.Background()

	promote := &models.UpdateUser{Role: models.RoleManager}

	// team:change_role is admin-only
	if _, err := services.Catalog.UpdateMember(ctx, getUser(t, repos, "usr-manager"), "usr-employee", promote); !errors.Is(err, service.ErrForbidden) {
		t.Errorf("manager changing role: got %v, want ErrForbidden", err)
	}

	member, err := services.Catalog.UpdateMember(ctx, getUser(t, repos, "usr-admin"), "usr-employee", promote)
	if err != nil {
		t.Fatalf("UpdateMember failed: %v", err)
	}
	if member.Role != models.RoleManager {
		t.Errorf("role = %s, want MANAGER", member.Role)
	}
	if stored := getUser(t, repos, "usr-employee"); stored.Role != models.RoleManager {
		t.Errorf("stored role = %s, want MANAGER", stored.Role)
	}

	// Bad role rejected
	var vf *service.ValidationFailed
	if _, err := services.Catalog.UpdateMember(ctx, getUser(t, repos, "usr-admin"), "usr-employee", &models.UpdateUser{Role: "OWNER"}); !errors.As(err, &vf) {
		t.Errorf("invalid role: got %v, want ValidationFailed", err)
	}

	// Name and team changes go through team:write
	renamed, err := services.Catalog.UpdateMember(ctx, getUser(t, repos, "usr-admin"), "usr-employee", &models.UpdateUser{
		Name: "Julia Nowak", TeamIDs: []string{"team-core"},
	})
	if err != nil {
		t.Fatalf("UpdateMember name change failed: %v", err)
	}
	if renamed.Name != "Julia Nowak" || len(renamed.TeamIDs) != 1 {
		t.Errorf("name change not applied: %+v", renamed)
	}

	if _, err := services.Catalog.UpdateMember(ctx, getUser(t, repos, "usr-admin"), "usr-missing", promote); !errors.Is(err, service.ErrNotFound) {
		t.Errorf("unknown member: got %v, want ErrNotFound", err)
	}
}

func TestCatalogServiceRemoveMember(t *testing.T) {
	repos, services := setup(t)
	ctx := context.Background()

	if err := services.Catalog.RemoveMember(ctx, getUser(t, repos, "usr-manager"), "usr-employee"); !errors.Is(err, service.ErrForbidden) {
		t.Errorf("manager removing member: got %v, want ErrForbidden", err)
	}
	if err := services.Catalog.RemoveMember(ctx, getUser(t, repos, "usr-admin"), "usr-admin"); !errors.Is(err, service.ErrForbidden) {
		t.Errorf("removing own account: got %v, want ErrForbidden", err)
	}

	if err := services.Catalog.RemoveMember(ctx, getUser(t, repos, "usr-admin"), "usr-employee"); err != nil {
		t.Fatalf("RemoveMember failed: %v", err)
	}
	if u, _ := repos.User.GetByID(ctx, "usr-employee"); u != nil {
		t.Error("member still present after removal")
	}

	if err := services.Catalog.RemoveMember(ctx, getUser(t, repos, "usr-admin"), "usr-employee"); !errors.Is(err, service.ErrNotFound) {
		t.Errorf("removing twice: got %v, want ErrNotFound", err)
	}
}

func TestCatalogServiceSettingsRoundTrip(t *testing.T) {
	repos, services := setup(t)
	ctx := context.Background()
	user := getUser(t, repos, "usr-employee")

	// Defaults before anything is stored
	settings, err := services.Catalog.GetSettings(ctx, user)
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	if settings.DefaultDurationMinutes != 60 || settings.DefaultStartTime != "09:00" || settings.Theme != "system" {
		t.Errorf("unexpected defaults: %+v", settings)
	}

	settings.Theme = "dark"
	settings.DefaultDurationMinutes = 30
	if _, err := services.Catalog.UpdateSettings(ctx, user, settings); err != nil {
		t.Fatalf("UpdateSettings failed: %v", err)
	}

	stored, err := services.Catalog.GetSettings(ctx, user)
	if err != nil {
		t.Fatalf("GetSettings after update failed: %v", err)
	}
	if stored.Theme != "dark" || stored.DefaultDurationMinutes != 30 {
		t.Errorf("settings not persisted: %+v", stored)
	}
	if stored.ID == "" {
		t.Error("stored settings have no id")
	}
}

func TestReportServiceScopesAndGroups(t *testing.T) {
	repos, services := setup(t)
	ctx := context.Background()

	dashboard := "prj-dashboard"
	mobile := "prj-mobile"
	seedEntry(t, repos, "ent-r1", "usr-employee", &dashboard)
	seedEntry(t, repos, "ent-r2", "usr-employee", &mobile)
	seedEntry(t, repos, "ent-r3", "usr-admin", &dashboard)

	// Employees report over their own entries only
	r, err := services.Report.Build(ctx, getUser(t, repos, "usr-employee"), testWorkspace, &report.Filter{}, report.DimensionProject)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if r.EntryCount != 2 || r.TotalMinutes != 120 {
		t.Errorf("employee report: %d entries / %d min, want 2 / 120", r.EntryCount, r.TotalMinutes)
	}
	if len(r.Groups) != 2 {
		t.Errorf("got %d groups, want 2", len(r.Groups))
	}

	// Admin CSV export covers everything
	text, err := services.Report.ExportCSV(ctx, getUser(t, repos, "usr-admin"), testWorkspace, &report.Filter{})
	if err != nil {
		t.Fatalf("ExportCSV failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(text), "\n")
	if len(lines) != 4 {
		t.Errorf("CSV has %d lines, want header plus 3 entries", len(lines))
	}
}
