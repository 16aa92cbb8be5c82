package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/pirxey/timetrack-api/internal/database"
	"github.com/pirxey/timetrack-api/internal/models"
)

// clientRepo is the concrete implementation of ClientRepository
type clientRepo struct {
	db *database.DB
}

// NewClientRepo creates a new client repository
func NewClientRepo(db *database.DB) ClientRepository {
	return &clientRepo{db: db}
}

// Create inserts a new client
func (r *clientRepo) Create(ctx context.Context, client *models.Client) error {
	query := `
		INSERT INTO clients (id, workspace_id, name, address, currency, active, note, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.ExecContext(ctx, query,
		client.ID, client.WorkspaceID, client.Name, client.Address,
		client.Currency, client.Active, client.Note,
		client.CreatedAt, time.Now(),
	)
	return err
}

// Update updates an existing client
func (r *clientRepo) Update(ctx context.Context, client *models.Client) error {
	query := `
		UPDATE clients SET name = $2, address = $3, currency = $4, active = $5, note = $6, updated_at = $7
		WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, query,
		client.ID, client.Name, client.Address, client.Currency,
		client.Active, client.Note, time.Now(),
	)
	return err
}

// Delete removes a client
func (r *clientRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM clients WHERE id = $1", id)
	return err
}

// GetByID retrieves a client by ID
func (r *clientRepo) GetByID(ctx context.Context, id string) (*models.Client, error) {
	query := `
		SELECT id, workspace_id, name, address, currency, active, note, created_at, updated_at
		FROM clients WHERE id = $1
	`
	var client models.Client
	var address, note sql.NullString
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&client.ID, &client.WorkspaceID, &client.Name, &address,
		&client.Currency, &client.Active, &note,
		&client.CreatedAt, &client.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if address.Valid {
		client.Address = &address.String
	}
	if note.Valid {
		client.Note = &note.String
	}
	return &client, nil
}

// List retrieves all clients for a workspace ordered by name
func (r *clientRepo) List(ctx context.Context, workspaceID string) ([]*models.Client, error) {
	query := `
		SELECT id, workspace_id, name, address, currency, active, note, created_at, updated_at
		FROM clients WHERE workspace_id = $1 ORDER BY name
	`
	rows, err := r.db.QueryContext(ctx, query, workspaceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clients []*models.Client
	for rows.Next() {
		var client models.Client
		var address, note sql.NullString
		if err := rows.Scan(
			&client.ID, &client.WorkspaceID, &client.Name, &address,
			&client.Currency, &client.Active, &note,
			&client.CreatedAt, &client.UpdatedAt,
		); err != nil {
			return nil, err
		}
		if address.Valid {
			client.Address = &address.String
		}
		if note.Valid {
			client.Note = &note.String
		}
		clients = append(clients, &client)
	}
	return clients, rows.Err()
}
