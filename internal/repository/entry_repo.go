package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/pirxey/timetrack-api/internal/database"
	"github.com/pirxey/timetrack-api/internal/models"
)

const entryColumns = `id, workspace_id, user_id, project_id, description, date, start_time, end_time,
	duration_minutes, tag_ids, billable, created_at, updated_at`

// entryRepo is the concrete implementation of EntryRepository
type entryRepo struct {
	db *database.DB
}

// NewEntryRepo creates a new time entry repository
func NewEntryRepo(db *database.DB) EntryRepository {
	return &entryRepo{db: db}
}

// Create inserts a new time entry
func (r *entryRepo) Create(ctx context.Context, entry *models.TimeEntry) error {
	query := `
		INSERT INTO time_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err := r.db.ExecContext(ctx, query,
		entry.ID, entry.WorkspaceID, entry.UserID, entry.ProjectID, entry.Description,
		entry.Date, entry.StartTime, entry.EndTime, entry.DurationMinutes,
		pq.Array(entry.TagIDs), entry.Billable, entry.CreatedAt, time.Now(),
	)
	return err
}

// Update updates an existing time entry
func (r *entryRepo) Update(ctx context.Context, entry *models.TimeEntry) error {
	query := `
		UPDATE time_entries SET project_id = $2, description = $3, date = $4, start_time = $5,
			end_time = $6, duration_minutes = $7, tag_ids = $8, billable = $9, updated_at = $10
		WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, query,
		entry.ID, entry.ProjectID, entry.Description, entry.Date, entry.StartTime,
		entry.EndTime, entry.DurationMinutes, pq.Array(entry.TagIDs), entry.Billable, time.Now(),
	)
	return err
}

// Delete removes a time entry
func (r *entryRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM time_entries WHERE id = $1", id)
	return err
}

// GetByID retrieves a time entry by ID
func (r *entryRepo) GetByID(ctx context.Context, id string) (*models.TimeEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM time_entries WHERE id = $1`

	var entry models.TimeEntry
	var projectID sql.NullString
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&entry.ID, &entry.WorkspaceID, &entry.UserID, &projectID, &entry.Description,
		&entry.Date, &entry.StartTime, &entry.EndTime, &entry.DurationMinutes,
		pq.Array(&entry.TagIDs), &entry.Billable, &entry.CreatedAt, &entry.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if projectID.Valid {
		entry.ProjectID = &projectID.String
	}
	return &entry, nil
}

// List retrieves all time entries matching the filter
func (r *entryRepo) List(ctx context.Context, f EntryFilter) ([]*models.TimeEntry, error) {
	clauses, args := appendFilter(nil, nil, f)
	return r.query(ctx, clauses, args)
}

// ListScoped retrieves entries owned by ownerID or attached to one of the
// given projects, then applies the filter on top.
func (r *entryRepo) ListScoped(ctx context.Context, ownerID string, projectIDs []string, f EntryFilter) ([]*models.TimeEntry, error) {
	clauses := []string{"(user_id = $1 OR project_id = ANY($2))"}
	args := []interface{}{ownerID, pq.Array(projectIDs)}
	clauses, args = appendFilter(clauses, args, f)
	return r.query(ctx, clauses, args)
}

// BulkInsert inserts a validated batch of entries using PostgreSQL COPY.
// The batch commits atomically: any failure rolls back every row.
func (r *entryRepo) BulkInsert(ctx context.Context, entries []*models.TimeEntry) (int, error) {
	if len(entries) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn("time_entries",
		"id", "workspace_id", "user_id", "project_id", "description", "date",
		"start_time", "end_time", "duration_minutes", "tag_ids", "billable",
		"created_at", "updated_at",
	))
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	now := time.Now()
	for _, entry := range entries {
		tagIDs := entry.TagIDs
		if tagIDs == nil {
			tagIDs = []string{}
		}
		if _, err := stmt.ExecContext(ctx,
			entry.ID, entry.WorkspaceID, entry.UserID, entry.ProjectID, entry.Description,
			entry.Date, entry.StartTime, entry.EndTime, entry.DurationMinutes,
			pq.Array(tagIDs), entry.Billable, now, now,
		); err != nil {
			return 0, err
		}
	}

	if _, err := stmt.ExecContext(ctx); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(entries), nil
}

// Count returns the number of time entries
func (r *entryRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM time_entries").Scan(&count)
	return count, err
}

func (r *entryRepo) query(ctx context.Context, clauses []string, args []interface{}) ([]*models.TimeEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM time_entries`
	for i, clause := range clauses {
		if i == 0 {
			query += " WHERE " + clause
		} else {
			query += " AND " + clause
		}
	}
	query += " ORDER BY date DESC, start_time DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*models.TimeEntry
	for rows.Next() {
		var entry models.TimeEntry
		var projectID sql.NullString
		if err := rows.Scan(
			&entry.ID, &entry.WorkspaceID, &entry.UserID, &projectID, &entry.Description,
			&entry.Date, &entry.StartTime, &entry.EndTime, &entry.DurationMinutes,
			pq.Array(&entry.TagIDs), &entry.Billable, &entry.CreatedAt, &entry.UpdatedAt,
		); err != nil {
			return nil, err
		}
		if projectID.Valid {
			entry.ProjectID = &projectID.String
		}
		entries = append(entries, &entry)
	}
	return entries, rows.Err()
}

func appendFilter(clauses []string, args []interface{}, f EntryFilter) ([]string, []interface{}) {
	if f.From != "" {
		args = append(args, f.From)
		clauses = append(clauses, fmt.Sprintf("date >= $%d", len(args)))
	}
	if f.To != "" {
		args = append(args, f.To)
		clauses = append(clauses, fmt.Sprintf("date <= $%d", len(args)))
	}
	if f.UserID != "" {
		args = append(args, f.UserID)
		clauses = append(clauses, fmt.Sprintf("user_id = $%d", len(args)))
	}
	if f.ProjectID != "" {
		args = append(args, f.ProjectID)
		clauses = append(clauses, fmt.Sprintf("project_id = $%d", len(args)))
	}
	return clauses, args
}
