package models

// ImportError represents a single problem found while validating an imported
// file. Row is the 1-based line in the source file (row 1 is the header, so
// the first data row is row 2). Errors are collected, never thrown: the
// validator always returns a complete result.
type ImportError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ProjectImportSummary aggregates the rows of one resolved project. The
// NoProjectKey bucket collects rows without a project reference.
type ProjectImportSummary struct {
	Name    string `json:"name"`
	Color   string `json:"color"`
	Minutes int    `json:"minutes"`
	Count   int    `json:"count"`
}

// ImportSummary is the aggregate view over all rows of one import batch. It
// reflects what would have been imported even when the batch is rejected, so
// the error screen can still show context.
type ImportSummary struct {
	TotalEntries int                    `json:"total_entries"`
	TotalMinutes int                    `json:"total_minutes"`
	ByProject    []ProjectImportSummary `json:"by_project"`
}

// ImportResult is the outcome of validating one import batch. When Valid is
// false the entry list is empty: batches commit atomically or not at all.
type ImportResult struct {
	Valid   bool               `json:"valid"`
	Entries []*CreateTimeEntry `json:"entries"`
	Errors  []ImportError      `json:"errors"`
	Summary ImportSummary      `json:"summary"`
}
