package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/pirxey/timetrack-api/internal/database"
	"github.com/pirxey/timetrack-api/internal/models"
)

// categoryRepo is the concrete implementation of CategoryRepository
type categoryRepo struct {
	db *database.DB
}

// NewCategoryRepo creates a new category repository
func NewCategoryRepo(db *database.DB) CategoryRepository {
	return &categoryRepo{db: db}
}

// Create inserts a new category
func (r *categoryRepo) Create(ctx context.Context, category *models.Category) error {
	query := `
		INSERT INTO categories (id, workspace_id, name, color, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		category.ID, category.WorkspaceID, category.Name, category.Color, category.Active,
		category.CreatedAt, time.Now(),
	)
	return err
}

// Update updates an existing category
func (r *categoryRepo) Update(ctx context.Context, category *models.Category) error {
	query := `
		UPDATE categories SET name = $2, color = $3, active = $4, updated_at = $5
		WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, query,
		category.ID, category.Name, category.Color, category.Active, time.Now(),
	)
	return err
}

// Delete removes a category
func (r *categoryRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM categories WHERE id = $1", id)
	return err
}

// GetByID retrieves a category by ID
func (r *categoryRepo) GetByID(ctx context.Context, id string) (*models.Category, error) {
	query := `
		SELECT id, workspace_id, name, color, active, created_at, updated_at
		FROM categories WHERE id = $1
	`
	var category models.Category
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&category.ID, &category.WorkspaceID, &category.Name, &category.Color, &category.Active,
		&category.CreatedAt, &category.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// List retrieves all categories for a workspace ordered by name
func (r *categoryRepo) List(ctx context.Context, workspaceID string) ([]*models.Category, error) {
	query := `
		SELECT id, workspace_id, name, color, active, created_at, updated_at
		FROM categories WHERE workspace_id = $1 ORDER BY name
	`
	rows, err := r.db.QueryContext(ctx, query, workspaceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*models.Category
	for rows.Next() {
		var category models.Category
		if err := rows.Scan(
			&category.ID, &category.WorkspaceID, &category.Name, &category.Color, &category.Active,
			&category.CreatedAt, &category.UpdatedAt,
		); err != nil {
			return nil, err
		}
		categories = append(categories, &category)
	}
	return categories, rows.Err()
}
