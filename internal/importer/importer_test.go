package importer

import (
	"reflect"
	"testing"

	"github.com/pirxey/timetrack-api/internal/csvio"
	"github.com/pirxey/timetrack-api/internal/models"
)

const (
	workspaceID = "ws-pirxey-001"
	userID      = "usr-alicja-001"
)

func catalogProjects() []*models.Project {
	return []*models.Project{
		{ID: "prj-dashboard-001", WorkspaceID: workspaceID, Name: "Pirxey Dashboard", Color: "#3B82F6"},
		{ID: "prj-mobile-002", WorkspaceID: workspaceID, Name: "Mobile App", Color: "#22C55E"},
	}
}

func catalogTags() []*models.Tag {
	return []*models.Tag{
		{ID: "tag-spotkanie-001", WorkspaceID: workspaceID, Name: "spotkanie", Color: "#3B82F6"},
		{ID: "tag-coding-002", WorkspaceID: workspaceID, Name: "coding", Color: "#22C55E"},
		{ID: "tag-planning-003", WorkspaceID: workspaceID, Name: "planning", Color: "#EAB308"},
	}
}

func row(description, project, date, start, end, tags, billable string) csvio.Row {
	return csvio.Row{
		csvio.ColDescription: description,
		csvio.ColProject:     project,
		csvio.ColDate:        date,
		csvio.ColStart:       start,
		csvio.ColEnd:         end,
		csvio.ColTags:        tags,
		csvio.ColBillable:    billable,
	}
}

func TestValidateHeaders(t *testing.T) {
	if errs := ValidateHeaders(csvio.ImportHeaders); len(errs) != 0 {
		t.Fatalf("complete header produced errors: %v", errs)
	}

	// Missing Tags column: exactly one header error referencing it
	headers := []string{"Description", "Project", "Date", "Start", "End", "Billable"}
	errs := ValidateHeaders(headers)
	if len(errs) != 1 {
		t.Fatalf("got %d header errors, want 1: %v", len(errs), errs)
	}
	if errs[0].Row != 1 || errs[0].Field != "Header" {
		t.Errorf("header error position = {row %d, field %q}, want {row 1, field Header}", errs[0].Row, errs[0].Field)
	}
	if want := `missing required column: "Tags"`; errs[0].Message != want {
		t.Errorf("header error message = %q, want %q", errs[0].Message, want)
	}
}

func TestValidateAllRowsValid(t *testing.T) {
	rows := []csvio.Row{
		row("Sprint planning", "Pirxey Dashboard", "2026-02-07", "09:00", "10:30", "spotkanie; planning", "Yes"),
		row("Bugfixing", "Mobile App", "2026-02-07", "11:00", "12:00", "coding", "no"),
		row("Admin work", "", "2026-02-08", "08:00", "08:45", "", ""),
	}

	result := Validate(rows, catalogProjects(), catalogTags(), userID, workspaceID)

	if !result.Valid {
		t.Fatalf("result invalid, errors: %v", result.Errors)
	}
	if len(result.Entries) != len(rows) {
		t.Fatalf("got %d entries, want %d", len(result.Entries), len(rows))
	}

	sum := 0
	for _, e := range result.Entries {
		sum += e.DurationMinutes
	}
	if result.Summary.TotalMinutes != sum {
		t.Errorf("summary total %d, want sum of durations %d", result.Summary.TotalMinutes, sum)
	}
	if result.Summary.TotalEntries != 3 {
		t.Errorf("summary total entries = %d, want 3", result.Summary.TotalEntries)
	}

	// Descending minutes: dashboard 90, mobile 60, no-project 45
	got := make([]int, len(result.Summary.ByProject))
	for i, b := range result.Summary.ByProject {
		got[i] = b.Minutes
	}
	if !reflect.DeepEqual(got, []int{90, 60, 45}) {
		t.Errorf("summary minutes order = %v, want [90 60 45]", got)
	}
	last := result.Summary.ByProject[2]
	if last.Name != "No project" || last.Color != "#6B7280" {
		t.Errorf("no-project bucket = %+v", last)
	}

	first := result.Entries[0]
	if first.ProjectID == nil || *first.ProjectID != "prj-dashboard-001" {
		t.Errorf("first entry project = %v", first.ProjectID)
	}
	if !first.Billable {
		t.Error("Yes should parse as billable")
	}
	if result.Entries[1].Billable {
		t.Error("no should parse as not billable")
	}
}

func TestValidateUnknownProject(t *testing.T) {
	rows := []csvio.Row{
		row("Planning", "Pirxey Dashboard", "2026-02-07", "09:00", "10:00", "", ""),
		row("Planning", "Nonexistent Project", "2026-02-07", "10:00", "11:00", "", ""),
	}

	result := Validate(rows, catalogProjects(), catalogTags(), userID, workspaceID)

	if result.Valid {
		t.Fatal("result should be invalid")
	}
	if len(result.Entries) != 0 {
		t.Errorf("invalid batch must return no entries, got %d", len(result.Entries))
	}
	if len(result.Errors) != 1 {
		t.Fatalf("got %d errors, want 1: %v", len(result.Errors), result.Errors)
	}
	e := result.Errors[0]
	if e.Row != 3 || e.Field != csvio.ColProject {
		t.Errorf("error position = {row %d, field %q}, want {row 3, field Project}", e.Row, e.Field)
	}
}

func TestValidateTagResolution(t *testing.T) {
	rows := []csvio.Row{
		// Case-insensitive match, order preserved
		row("Meeting", "", "2026-02-07", "09:00", "10:00", "SPOTKANIE; planning", ""),
	}
	result := Validate(rows, catalogProjects(), catalogTags(), userID, workspaceID)
	if !result.Valid {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	want := []string{"tag-spotkanie-001", "tag-planning-003"}
	if !reflect.DeepEqual(result.Entries[0].TagIDs, want) {
		t.Errorf("tag ids = %v, want %v", result.Entries[0].TagIDs, want)
	}

	// Each unmatched token errors individually
	rows = []csvio.Row{
		row("Meeting", "", "2026-02-07", "09:00", "10:00", "spotkanie; nope; alsono", ""),
	}
	result = Validate(rows, catalogProjects(), catalogTags(), userID, workspaceID)
	if len(result.Errors) != 2 {
		t.Fatalf("got %d tag errors, want 2: %v", len(result.Errors), result.Errors)
	}
	for _, e := range result.Errors {
		if e.Field != csvio.ColTags || e.Row != 2 {
			t.Errorf("tag error position = %+v", e)
		}
	}
}

func TestValidateDuplicateTagsPreserved(t *testing.T) {
	rows := []csvio.Row{
		row("Meeting", "", "2026-02-07", "09:00", "10:00", "coding; coding", ""),
	}
	result := Validate(rows, catalogProjects(), catalogTags(), userID, workspaceID)
	if !result.Valid {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	want := []string{"tag-coding-002", "tag-coding-002"}
	if !reflect.DeepEqual(result.Entries[0].TagIDs, want) {
		t.Errorf("duplicate tags not preserved: %v", result.Entries[0].TagIDs)
	}
}

func TestValidateMidnightRollover(t *testing.T) {
	rows := []csvio.Row{
		row("Night shift", "", "2026-02-07", "22:00", "02:00", "", ""),
	}
	result := Validate(rows, catalogProjects(), catalogTags(), userID, workspaceID)
	if !result.Valid {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if got := result.Entries[0].DurationMinutes; got != 240 {
		t.Errorf("rollover duration = %d, want (24*60 - 22*60) + 2*60 = 240", got)
	}
}

func TestValidateEndEqualsStartFails(t *testing.T) {
	rows := []csvio.Row{
		row("Zero interval", "", "2026-02-07", "09:00", "09:00", "", ""),
	}
	result := Validate(rows, catalogProjects(), catalogTags(), userID, workspaceID)

	// End equal to start must fail the minimum-duration check rather than
	// silently wrapping to a full day.
	if result.Valid {
		t.Fatal("zero-length interval should be invalid")
	}
	if len(result.Errors) != 1 || result.Errors[0].Field != csvio.ColDuration {
		t.Fatalf("errors = %v, want one Duration error", result.Errors)
	}
}

func TestValidateSchemaErrorsUseColumnNames(t *testing.T) {
	rows := []csvio.Row{
		row("", "", "07.02.2026", "9 am", "10:00", "", ""),
	}
	result := Validate(rows, catalogProjects(), catalogTags(), userID, workspaceID)
	if result.Valid {
		t.Fatal("result should be invalid")
	}

	fields := make(map[string]bool)
	for _, e := range result.Errors {
		fields[e.Field] = true
		if e.Row != 2 {
			t.Errorf("error row = %d, want 2", e.Row)
		}
	}
	for _, want := range []string{csvio.ColDescription, csvio.ColDate, csvio.ColStart, csvio.ColDuration} {
		if !fields[want] {
			t.Errorf("expected an error for column %q, got fields %v", want, fields)
		}
	}
}

func TestValidateSummaryBuiltForInvalidBatch(t *testing.T) {
	rows := []csvio.Row{
		row("Planning", "Pirxey Dashboard", "2026-02-07", "09:00", "10:00", "", ""),
		row("Planning", "Nonexistent Project", "2026-02-07", "10:00", "12:00", "", ""),
	}
	result := Validate(rows, catalogProjects(), catalogTags(), userID, workspaceID)
	if result.Valid {
		t.Fatal("result should be invalid")
	}
	if result.Summary.TotalEntries != 2 || result.Summary.TotalMinutes != 180 {
		t.Errorf("summary = %+v, want 2 entries / 180 minutes for the error screen", result.Summary)
	}
}

func TestValidateIdempotence(t *testing.T) {
	rows := []csvio.Row{
		row("Planning", "Pirxey Dashboard", "2026-02-07", "09:00", "10:00", "spotkanie", "yes"),
		row("Coding", "Mobile App", "2026-02-07", "10:00", "12:00", "missing-tag", ""),
	}
	projects, tags := catalogProjects(), catalogTags()

	first := Validate(rows, projects, tags, userID, workspaceID)
	second := Validate(rows, projects, tags, userID, workspaceID)

	if !reflect.DeepEqual(first.Errors, second.Errors) {
		t.Errorf("error lists differ between runs:\n%v\n%v", first.Errors, second.Errors)
	}
	if !reflect.DeepEqual(first.Summary, second.Summary) {
		t.Errorf("summaries differ between runs:\n%+v\n%+v", first.Summary, second.Summary)
	}
}

func TestTemplateRoundTrip(t *testing.T) {
	f, err := csvio.Parse(csvio.Template())
	if err != nil {
		t.Fatalf("parsing template: %v", err)
	}
	if errs := ValidateHeaders(f.Headers); len(errs) != 0 {
		t.Fatalf("template headers invalid: %v", errs)
	}

	result := Validate(f.Rows, catalogProjects(), catalogTags(), userID, workspaceID)
	if !result.Valid {
		t.Fatalf("template should validate cleanly, errors: %v", result.Errors)
	}
	if len(result.Entries) != 1 {
		t.Fatalf("template yields %d entries, want 1", len(result.Entries))
	}

	entry := result.Entries[0]
	if entry.Description != "Sprint planning" || entry.Date != "2026-02-07" {
		t.Errorf("template entry = %+v", entry)
	}
	if entry.ProjectID == nil || *entry.ProjectID != "prj-dashboard-001" {
		t.Errorf("template project = %v", entry.ProjectID)
	}
	if entry.DurationMinutes != 90 {
		t.Errorf("template duration = %d, want 90", entry.DurationMinutes)
	}
	if !entry.Billable {
		t.Error("template example row is billable")
	}
	if len(entry.TagIDs) != 2 {
		t.Errorf("template tags = %v, want two resolved ids", entry.TagIDs)
	}
}
