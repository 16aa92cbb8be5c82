package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/lib/pq"
	"github.com/pirxey/timetrack-api/internal/database"
	"github.com/pirxey/timetrack-api/internal/models"
)

// projectRepo is the concrete implementation of ProjectRepository
type projectRepo struct {
	db *database.DB
}

// NewProjectRepo creates a new project repository
func NewProjectRepo(db *database.DB) ProjectRepository {
	return &projectRepo{db: db}
}

// Create inserts a new project
func (r *projectRepo) Create(ctx context.Context, project *models.Project) error {
	query := `
		INSERT INTO projects (id, workspace_id, client_id, name, color, billable_by_default,
			billable_rate, estimate_type, estimate_value, active, is_public, assigned_member_ids,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	_, err := r.db.ExecContext(ctx, query,
		project.ID, project.WorkspaceID, project.ClientID, project.Name, project.Color,
		project.BillableByDefault, project.BillableRate, project.EstimateType, project.EstimateValue,
		project.Active, project.IsPublic, pq.Array(project.AssignedMemberIDs),
		project.CreatedAt, time.Now(),
	)
	return err
}

// Update updates an existing project
func (r *projectRepo) Update(ctx context.Context, project *models.Project) error {
	query := `
		UPDATE projects SET client_id = $2, name = $3, color = $4, billable_by_default = $5,
			billable_rate = $6, estimate_type = $7, estimate_value = $8, active = $9,
			is_public = $10, assigned_member_ids = $11, updated_at = $12
		WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, query,
		project.ID, project.ClientID, project.Name, project.Color, project.BillableByDefault,
		project.BillableRate, project.EstimateType, project.EstimateValue, project.Active,
		project.IsPublic, pq.Array(project.AssignedMemberIDs), time.Now(),
	)
	return err
}

// Delete removes a project
func (r *projectRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM projects WHERE id = $1", id)
	return err
}

// GetByID retrieves a project by ID
func (r *projectRepo) GetByID(ctx context.Context, id string) (*models.Project, error) {
	query := `
		SELECT id, workspace_id, client_id, name, color, billable_by_default, billable_rate,
			estimate_type, estimate_value, active, is_public, assigned_member_ids, created_at, updated_at
		FROM projects WHERE id = $1
	`
	var project models.Project
	var clientID sql.NullString
	var billableRate, estimateValue sql.NullFloat64
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&project.ID, &project.WorkspaceID, &clientID, &project.Name, &project.Color,
		&project.BillableByDefault, &billableRate, &project.EstimateType, &estimateValue,
		&project.Active, &project.IsPublic, pq.Array(&project.AssignedMemberIDs),
		&project.CreatedAt, &project.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	applyProjectNullables(&project, clientID, billableRate, estimateValue)
	return &project, nil
}

// List retrieves all projects for a workspace ordered by name
func (r *projectRepo) List(ctx context.Context, workspaceID string) ([]*models.Project, error) {
	query := `
		SELECT id, workspace_id, client_id, name, color, billable_by_default, billable_rate,
			estimate_type, estimate_value, active, is_public, assigned_member_ids, created_at, updated_at
		FROM projects WHERE workspace_id = $1 ORDER BY name
	`
	rows, err := r.db.QueryContext(ctx, query, workspaceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []*models.Project
	for rows.Next() {
		var project models.Project
		var clientID sql.NullString
		var billableRate, estimateValue sql.NullFloat64
		if err := rows.Scan(
			&project.ID, &project.WorkspaceID, &clientID, &project.Name, &project.Color,
			&project.BillableByDefault, &billableRate, &project.EstimateType, &estimateValue,
			&project.Active, &project.IsPublic, pq.Array(&project.AssignedMemberIDs),
			&project.CreatedAt, &project.UpdatedAt,
		); err != nil {
			return nil, err
		}
		applyProjectNullables(&project, clientID, billableRate, estimateValue)
		projects = append(projects, &project)
	}
	return projects, rows.Err()
}

func applyProjectNullables(p *models.Project, clientID sql.NullString, billableRate, estimateValue sql.NullFloat64) {
	if clientID.Valid {
		p.ClientID = &clientID.String
	}
	if billableRate.Valid {
		p.BillableRate = &billableRate.Float64
	}
	if estimateValue.Valid {
		p.EstimateValue = &estimateValue.Float64
	}
}
