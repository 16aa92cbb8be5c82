package csvio

import (
	"bytes"
	"encoding/csv"
)

// Required column names of the import file format. ImportHeaders is the
// single source of truth for header validation and template generation.
const (
	ColDescription = "Description"
	ColProject     = "Project"
	ColDate        = "Date"
	ColStart       = "Start"
	ColEnd         = "End"
	ColTags        = "Tags"
	ColBillable    = "Billable"

	// ColDuration is not part of the file; it names the computed duration
	// in user-facing validation messages.
	ColDuration = "Duration"
)

// ImportHeaders lists the required columns in file order.
var ImportHeaders = []string{
	ColDescription,
	ColProject,
	ColDate,
	ColStart,
	ColEnd,
	ColTags,
	ColBillable,
}

// Template returns a downloadable import template: the required header row
// plus one illustrative example row.
func Template() string {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Write(ImportHeaders)
	w.Write([]string{
		"Sprint planning",
		"Pirxey Dashboard",
		"2026-02-07",
		"09:00",
		"10:30",
		"spotkanie; planning",
		"Yes",
	})
	w.Flush()
	return buf.String()
}
