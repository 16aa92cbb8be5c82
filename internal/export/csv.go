// Package export renders time entries into the downloadable CSV and Excel
// report formats.
package export

import (
	"bytes"
	"encoding/csv"
	"strings"

	"github.com/pirxey/timetrack-api/internal/format"
	"github.com/pirxey/timetrack-api/internal/models"
	"github.com/pirxey/timetrack-api/internal/report"
)

// reportHeaders are the columns of both report formats.
var reportHeaders = []string{
	"User",
	"Teams",
	"Project",
	"Client",
	"Description",
	"Date",
	"Start",
	"End",
	"Duration",
	"Tags",
	"Billable",
}

// EntriesToCSV renders entries as a flat CSV report. The caller prefixes a
// byte-order-mark when serving the file so spreadsheet tools pick up UTF-8.
func EntriesToCSV(entries []*models.TimeEntry, ctx *report.Context) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(reportHeaders); err != nil {
		return "", err
	}
	for _, e := range entries {
		if err := w.Write(entryRecord(e, ctx)); err != nil {
			return "", err
		}
	}
	w.Flush()
	return buf.String(), w.Error()
}

// entryRecord resolves one entry's references into display values.
func entryRecord(e *models.TimeEntry, ctx *report.Context) []string {
	userName := ""
	var teamNames []string
	if user := ctx.User(e.UserID); user != nil {
		userName = user.Name
		for _, teamID := range user.TeamIDs {
			if team := ctx.Team(teamID); team != nil {
				teamNames = append(teamNames, team.Name)
			}
		}
	}

	projectName := "No project"
	clientName := "No client"
	if e.ProjectID != nil {
		if project := ctx.Project(*e.ProjectID); project != nil {
			projectName = project.Name
			if project.ClientID != nil {
				if client := ctx.Client(*project.ClientID); client != nil {
					clientName = client.Name
				}
			}
		}
	}

	var tagNames []string
	for _, tagID := range e.TagIDs {
		if tag := ctx.Tag(tagID); tag != nil {
			tagNames = append(tagNames, tag.Name)
		}
	}

	billable := "No"
	if e.Billable {
		billable = "Yes"
	}

	return []string{
		userName,
		strings.Join(teamNames, "; "),
		projectName,
		clientName,
		e.Description,
		e.Date,
		e.StartTime,
		e.EndTime,
		format.Duration(e.DurationMinutes),
		strings.Join(tagNames, "; "),
		billable,
	}
}
