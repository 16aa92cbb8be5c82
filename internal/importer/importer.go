// Package importer turns parsed CSV rows plus the current project and tag
// catalogs into either a committable batch of time entries or a fully
// enumerated error list. It never commits anything itself and never returns
// an error for malformed data: all problems surface as ImportError values.
package importer

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"

	"github.com/pirxey/timetrack-api/internal/csvio"
	"github.com/pirxey/timetrack-api/internal/format"
	"github.com/pirxey/timetrack-api/internal/models"
	"github.com/pirxey/timetrack-api/internal/validation"
)

// noProjectKey is the summary bucket for rows without a project reference.
const (
	noProjectKey   = "__none__"
	noProjectName  = "No project"
	noProjectColor = "#6B7280"
)

// billableTokens is the affirmative vocabulary for the Billable column.
// Anything else is treated as not billable, without an error.
var billableTokens = map[string]bool{
	"yes":  true,
	"true": true,
	"1":    true,
}

// fieldToColumn translates internal field names to the file's own column
// vocabulary for user comprehension.
var fieldToColumn = map[string]string{
	"description":      csvio.ColDescription,
	"date":             csvio.ColDate,
	"start_time":       csvio.ColStart,
	"end_time":         csvio.ColEnd,
	"duration_minutes": csvio.ColDuration,
}

// ValidateHeaders checks the header record against the required column set.
// Each missing column yields one error at row 1 with field "Header". Row
// processing must be skipped entirely when this returns errors.
func ValidateHeaders(headers []string) []models.ImportError {
	present := make(map[string]bool, len(headers))
	for _, h := range headers {
		present[strings.TrimSpace(h)] = true
	}

	var errs []models.ImportError
	for _, required := range csvio.ImportHeaders {
		if !present[required] {
			errs = append(errs, models.ImportError{
				Row:     1,
				Field:   "Header",
				Message: fmt.Sprintf("missing required column: %q", required),
			})
		}
	}
	return errs
}

// Validate resolves every row against the reference catalogs and assembles
// the batch result. All rows are evaluated so the error list is complete; the
// summary reflects what would have been imported even when the batch as a
// whole is rejected. When any error exists the entry list comes back empty:
// batches commit atomically or not at all.
func Validate(rows []csvio.Row, projects []*models.Project, tags []*models.Tag, userID, workspaceID string) *models.ImportResult {
	projectsByName := make(map[string]*models.Project, len(projects))
	projectsByID := make(map[string]*models.Project, len(projects))
	for _, p := range projects {
		projectsByName[strings.ToLower(p.Name)] = p
		projectsByID[p.ID] = p
	}
	tagsByName := make(map[string]*models.Tag, len(tags))
	for _, tag := range tags {
		tagsByName[strings.ToLower(tag.Name)] = tag
	}

	var errs []models.ImportError
	entries := make([]*models.CreateTimeEntry, 0, len(rows))
	buckets := make(map[string]*models.ProjectImportSummary)
	bucketOrder := make([]string, 0)
	totalMinutes := 0

	for i, row := range rows {
		rowNum := i + 2 // row 1 is the header, data starts at row 2

		// Project resolution
		var projectID *string
		if name := row[csvio.ColProject]; name != "" {
			project, ok := projectsByName[strings.ToLower(name)]
			if !ok {
				errs = append(errs, models.ImportError{
					Row:     rowNum,
					Field:   csvio.ColProject,
					Message: fmt.Sprintf("unknown project: %q", name),
				})
			} else {
				projectID = &project.ID
			}
		}

		// Tag resolution. Matched ids keep input order; duplicates are
		// preserved, mirroring a repeated tag name in the input.
		var tagIDs []string
		if rawTags := row[csvio.ColTags]; rawTags != "" {
			for _, token := range strings.Split(rawTags, ";") {
				name := strings.TrimSpace(token)
				if name == "" {
					continue
				}
				tag, ok := tagsByName[strings.ToLower(name)]
				if !ok {
					errs = append(errs, models.ImportError{
						Row:     rowNum,
						Field:   csvio.ColTags,
						Message: fmt.Sprintf("unknown tag: %q", name),
					})
					continue
				}
				tagIDs = append(tagIDs, tag.ID)
			}
		}

		// Billable flag: absence of a recognized token is not a failure
		billable := billableTokens[strings.ToLower(row[csvio.ColBillable])]

		// Duration: end − start, corrected once for a single midnight
		// rollover. An end equal to start stays at zero and is rejected
		// by the schema checks below instead of wrapping to a full day.
		startTime := row[csvio.ColStart]
		endTime := row[csvio.ColEnd]
		durationMinutes := 0
		startMin, startOK := format.ParseClock(startTime)
		endMin, endOK := format.ParseClock(endTime)
		if startOK && endOK {
			durationMinutes = endMin - startMin
			if durationMinutes < 0 {
				durationMinutes += 24 * 60
			}
		}

		entry := &models.CreateTimeEntry{
			WorkspaceID:     workspaceID,
			UserID:          userID,
			ProjectID:       projectID,
			Description:     row[csvio.ColDescription],
			Date:            row[csvio.ColDate],
			StartTime:       startTime,
			EndTime:         endTime,
			DurationMinutes: durationMinutes,
			TagIDs:          tagIDs,
			Billable:        billable,
		}

		// Schema validation, with field names translated to column names
		for _, fieldErr := range validation.ValidateCreateTimeEntry(entry) {
			column, ok := fieldToColumn[fieldErr.Field]
			if !ok {
				column = fieldErr.Field
			}
			errs = append(errs, models.ImportError{
				Row:     rowNum,
				Field:   column,
				Message: fieldErr.Message,
			})
		}

		entries = append(entries, entry)

		// Summary contribution, regardless of row errors
		key := noProjectKey
		name, color := noProjectName, noProjectColor
		if projectID != nil {
			project := projectsByID[*projectID]
			key, name, color = project.ID, project.Name, project.Color
		}
		bucket, ok := buckets[key]
		if !ok {
			bucket = &models.ProjectImportSummary{Name: name, Color: color}
			buckets[key] = bucket
			bucketOrder = append(bucketOrder, key)
		}
		bucket.Minutes += durationMinutes
		bucket.Count++
		totalMinutes += durationMinutes
	}

	byProject := make([]models.ProjectImportSummary, 0, len(buckets))
	for _, key := range bucketOrder {
		byProject = append(byProject, *buckets[key])
	}
	slices.SortStableFunc(byProject, func(a, b models.ProjectImportSummary) int {
		return b.Minutes - a.Minutes
	})

	valid := len(errs) == 0
	if !valid {
		entries = entries[:0]
	}

	return &models.ImportResult{
		Valid:   valid,
		Entries: entries,
		Errors:  errs,
		Summary: models.ImportSummary{
			TotalEntries: len(rows),
			TotalMinutes: totalMinutes,
			ByProject:    byProject,
		},
	}
}
