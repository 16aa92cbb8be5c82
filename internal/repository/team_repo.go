package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/pirxey/timetrack-api/internal/database"
	"github.com/pirxey/timetrack-api/internal/models"
)

// teamRepo is the concrete implementation of TeamRepository
type teamRepo struct {
	db *database.DB
}

// NewTeamRepo creates a new team repository
func NewTeamRepo(db *database.DB) TeamRepository {
	return &teamRepo{db: db}
}

// Create inserts a new team
func (r *teamRepo) Create(ctx context.Context, team *models.Team) error {
	query := `
		INSERT INTO teams (id, workspace_id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.ExecContext(ctx, query,
		team.ID, team.WorkspaceID, team.Name, team.CreatedAt, time.Now(),
	)
	return err
}

// GetByID retrieves a team by ID
func (r *teamRepo) GetByID(ctx context.Context, id string) (*models.Team, error) {
	query := `
		SELECT id, workspace_id, name, created_at, updated_at
		FROM teams WHERE id = $1
	`
	var team models.Team
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&team.ID, &team.WorkspaceID, &team.Name, &team.CreatedAt, &team.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &team, nil
}

// List retrieves all teams for a workspace ordered by name
func (r *teamRepo) List(ctx context.Context, workspaceID string) ([]*models.Team, error) {
	query := `
		SELECT id, workspace_id, name, created_at, updated_at
		FROM teams WHERE workspace_id = $1 ORDER BY name
	`
	rows, err := r.db.QueryContext(ctx, query, workspaceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var teams []*models.Team
	for rows.Next() {
		var team models.Team
		if err := rows.Scan(
			&team.ID, &team.WorkspaceID, &team.Name, &team.CreatedAt, &team.UpdatedAt,
		); err != nil {
			return nil, err
		}
		teams = append(teams, &team)
	}
	return teams, rows.Err()
}
