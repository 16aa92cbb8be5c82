package report

import (
	"testing"

	"github.com/pirxey/timetrack-api/internal/models"
)

func strPtr(s string) *string { return &s }

func testContext() *Context {
	clients := []*models.Client{
		{ID: "cli-1", Name: "Nordic Retail"},
	}
	projects := []*models.Project{
		{ID: "prj-1", Name: "Pirxey Dashboard", Color: "#3B82F6", ClientID: strPtr("cli-1")},
		{ID: "prj-2", Name: "Mobile App", Color: "#22C55E"},
	}
	users := []*models.User{
		{ID: "usr-1", Name: "Alicja Kowalska", TeamIDs: []string{"team-1", "team-2"}},
		{ID: "usr-2", Name: "Mateusz Nowak", TeamIDs: []string{"team-1"}},
	}
	teams := []*models.Team{
		{ID: "team-1", Name: "Core"},
		{ID: "team-2", Name: "Design"},
	}
	return NewContext(projects, nil, teams, users, clients)
}

func testEntries() []*models.TimeEntry {
	return []*models.TimeEntry{
		{ID: "e1", UserID: "usr-1", ProjectID: strPtr("prj-1"), Date: "2026-02-02", DurationMinutes: 90, TagIDs: []string{"tag-1"}, Billable: true},
		{ID: "e2", UserID: "usr-1", ProjectID: strPtr("prj-2"), Date: "2026-02-03", DurationMinutes: 60},
		{ID: "e3", UserID: "usr-2", ProjectID: nil, Date: "2026-02-04", DurationMinutes: 45},
		{ID: "e4", UserID: "usr-2", ProjectID: strPtr("prj-1"), Date: "2026-02-10", DurationMinutes: 120, Billable: true},
	}
}

func TestFilterEntries(t *testing.T) {
	ctx := testContext()
	entries := testEntries()
	billable := true

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"date range", Filter{From: "2026-02-03", To: "2026-02-04"}, []string{"e2", "e3"}},
		{"by user", Filter{UserID: "usr-2"}, []string{"e3", "e4"}},
		{"by project", Filter{ProjectID: "prj-1"}, []string{"e1", "e4"}},
		{"by client via project", Filter{ClientID: "cli-1"}, []string{"e1", "e4"}},
		{"by tag", Filter{TagID: "tag-1"}, []string{"e1"}},
		{"billable only", Filter{Billable: &billable}, []string{"e1", "e4"}},
		{"combined", Filter{UserID: "usr-2", From: "2026-02-05"}, []string{"e4"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterEntries(entries, &tt.filter, ctx)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d entries, want %d", len(got), len(tt.want))
			}
			for i, id := range tt.want {
				if got[i].ID != id {
					t.Errorf("entry[%d] = %s, want %s", i, got[i].ID, id)
				}
			}
		})
	}
}

func TestGroupByProject(t *testing.T) {
	ctx := testContext()
	groups := GroupEntries(testEntries(), DimensionProject, ctx)

	if len(groups) != 3 {
		t.Fatalf("got %d groups, want 3", len(groups))
	}
	// Descending minutes: prj-1 (210), prj-2 (60), none (45)
	if groups[0].Label != "Pirxey Dashboard" || groups[0].TotalMinutes != 210 {
		t.Errorf("groups[0] = %s/%d", groups[0].Label, groups[0].TotalMinutes)
	}
	if groups[0].Color != "#3B82F6" {
		t.Errorf("project group should carry the project color, got %q", groups[0].Color)
	}
	if groups[2].Label != "No project" || groups[2].TotalMinutes != 45 {
		t.Errorf("groups[2] = %s/%d", groups[2].Label, groups[2].TotalMinutes)
	}
}

func TestGroupByTeamPlacesEntryInEveryTeam(t *testing.T) {
	ctx := testContext()
	groups := GroupEntries(testEntries(), DimensionTeam, ctx)

	var core, design *Group
	for i := range groups {
		switch groups[i].Label {
		case "Core":
			core = &groups[i]
		case "Design":
			design = &groups[i]
		}
	}
	if core == nil || design == nil {
		t.Fatalf("missing team groups: %+v", groups)
	}
	// usr-1 is in both teams, so e1 and e2 count twice across groups
	if core.EntryCount != 4 {
		t.Errorf("Core has %d entries, want all 4", core.EntryCount)
	}
	if design.EntryCount != 2 {
		t.Errorf("Design has %d entries, want usr-1's 2", design.EntryCount)
	}
}

func TestGroupByNoneReturnsNil(t *testing.T) {
	if groups := GroupEntries(testEntries(), DimensionNone, testContext()); groups != nil {
		t.Errorf("dimension none should not group, got %v", groups)
	}
}

func TestTotalMinutes(t *testing.T) {
	if got := TotalMinutes(testEntries()); got != 315 {
		t.Errorf("TotalMinutes = %d, want 315", got)
	}
}
