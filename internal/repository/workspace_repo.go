package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/pirxey/timetrack-api/internal/database"
	"github.com/pirxey/timetrack-api/internal/models"
)

// workspaceRepo is the concrete implementation of WorkspaceRepository
type workspaceRepo struct {
	db *database.DB
}

// NewWorkspaceRepo creates a new workspace repository
func NewWorkspaceRepo(db *database.DB) WorkspaceRepository {
	return &workspaceRepo{db: db}
}

// Create inserts a new workspace
func (r *workspaceRepo) Create(ctx context.Context, ws *models.Workspace) error {
	query := `
		INSERT INTO workspaces (id, name, currency, timezone, week_starts_on, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		ws.ID, ws.Name, ws.Currency, ws.Timezone, ws.WeekStartsOn,
		ws.CreatedAt, time.Now(),
	)
	return err
}

// GetByID retrieves a workspace by ID
func (r *workspaceRepo) GetByID(ctx context.Context, id string) (*models.Workspace, error) {
	query := `
		SELECT id, name, currency, timezone, week_starts_on, created_at, updated_at
		FROM workspaces WHERE id = $1
	`
	var ws models.Workspace
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&ws.ID, &ws.Name, &ws.Currency, &ws.Timezone, &ws.WeekStartsOn,
		&ws.CreatedAt, &ws.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ws, nil
}

// List retrieves all workspaces
func (r *workspaceRepo) List(ctx context.Context) ([]*models.Workspace, error) {
	query := `
		SELECT id, name, currency, timezone, week_starts_on, created_at, updated_at
		FROM workspaces ORDER BY name
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var workspaces []*models.Workspace
	for rows.Next() {
		var ws models.Workspace
		if err := rows.Scan(
			&ws.ID, &ws.Name, &ws.Currency, &ws.Timezone, &ws.WeekStartsOn,
			&ws.CreatedAt, &ws.UpdatedAt,
		); err != nil {
			return nil, err
		}
		workspaces = append(workspaces, &ws)
	}
	return workspaces, rows.Err()
}
