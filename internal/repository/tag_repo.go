package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/pirxey/timetrack-api/internal/database"
	"github.com/pirxey/timetrack-api/internal/models"
)

// tagRepo is the concrete implementation of TagRepository
type tagRepo struct {
	db *database.DB
}

// NewTagRepo creates a new tag repository
func NewTagRepo(db *database.DB) TagRepository {
	return &tagRepo{db: db}
}

// Create inserts a new tag
func (r *tagRepo) Create(ctx context.Context, tag *models.Tag) error {
	query := `
		INSERT INTO tags (id, workspace_id, name, color, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		tag.ID, tag.WorkspaceID, tag.Name, tag.Color, tag.Active,
		tag.CreatedAt, time.Now(),
	)
	return err
}

// Update updates an existing tag
func (r *tagRepo) Update(ctx context.Context, tag *models.Tag) error {
	query := `
		UPDATE tags SET name = $2, color = $3, active = $4, updated_at = $5
		WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, query,
		tag.ID, tag.Name, tag.Color, tag.Active, time.Now(),
	)
	return err
}

// Delete removes a tag
func (r *tagRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM tags WHERE id = $1", id)
	return err
}

// GetByID retrieves a tag by ID
func (r *tagRepo) GetByID(ctx context.Context, id string) (*models.Tag, error) {
	query := `
		SELECT id, workspace_id, name, color, active, created_at, updated_at
		FROM tags WHERE id = $1
	`
	var tag models.Tag
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&tag.ID, &tag.WorkspaceID, &tag.Name, &tag.Color, &tag.Active,
		&tag.CreatedAt, &tag.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

// List retrieves all tags for a workspace ordered by name
func (r *tagRepo) List(ctx context.Context, workspaceID string) ([]*models.Tag, error) {
	query := `
		SELECT id, workspace_id, name, color, active, created_at, updated_at
		FROM tags WHERE workspace_id = $1 ORDER BY name
	`
	rows, err := r.db.QueryContext(ctx, query, workspaceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []*models.Tag
	for rows.Next() {
		var tag models.Tag
		if err := rows.Scan(
			&tag.ID, &tag.WorkspaceID, &tag.Name, &tag.Color, &tag.Active,
			&tag.CreatedAt, &tag.UpdatedAt,
		); err != nil {
			return nil, err
		}
		tags = append(tags, &tag)
	}
	return tags, rows.Err()
}
