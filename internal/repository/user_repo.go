package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/lib/pq"
	"github.com/pirxey/timetrack-api/internal/database"
	"github.com/pirxey/timetrack-api/internal/models"
)

// userRepo is the concrete implementation of UserRepository
type userRepo struct {
	db *database.DB
}

// NewUserRepo creates a new user repository
func NewUserRepo(db *database.DB) UserRepository {
	return &userRepo{db: db}
}

// Create inserts a new user
func (r *userRepo) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, name, email, role, team_ids, avatar_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.Name, user.Email, user.Role,
		pq.Array(user.TeamIDs), user.AvatarURL,
		user.CreatedAt, time.Now(),
	)
	return err
}

// Update updates an existing user
func (r *userRepo) Update(ctx context.Context, user *models.User) error {
	query := `
		UPDATE users SET name = $2, email = $3, role = $4, team_ids = $5, avatar_url = $6, updated_at = $7
		WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.Name, user.Email, user.Role,
		pq.Array(user.TeamIDs), user.AvatarURL, time.Now(),
	)
	return err
}

// Delete removes a user
func (r *userRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM users WHERE id = $1", id)
	return err
}

// GetByID retrieves a user by ID
func (r *userRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := `
		SELECT id, name, email, role, team_ids, avatar_url, created_at, updated_at
		FROM users WHERE id = $1
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

// GetByEmail retrieves a user by email
func (r *userRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, name, email, role, team_ids, avatar_url, created_at, updated_at
		FROM users WHERE email = $1
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, email))
}

// List retrieves all users ordered by name
func (r *userRepo) List(ctx context.Context) ([]*models.User, error) {
	query := `
		SELECT id, name, email, role, team_ids, avatar_url, created_at, updated_at
		FROM users ORDER BY name
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		var user models.User
		var avatarURL sql.NullString
		if err := rows.Scan(
			&user.ID, &user.Name, &user.Email, &user.Role,
			pq.Array(&user.TeamIDs), &avatarURL, &user.CreatedAt, &user.UpdatedAt,
		); err != nil {
			return nil, err
		}
		if avatarURL.Valid {
			user.AvatarURL = &avatarURL.String
		}
		users = append(users, &user)
	}
	return users, rows.Err()
}

// Count returns the number of users
func (r *userRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&count)
	return count, err
}

func (r *userRepo) scanOne(row *sql.Row) (*models.User, error) {
	var user models.User
	var avatarURL sql.NullString
	err := row.Scan(
		&user.ID, &user.Name, &user.Email, &user.Role,
		pq.Array(&user.TeamIDs), &avatarURL, &user.CreatedAt, &user.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if avatarURL.Valid {
		user.AvatarURL = &avatarURL.String
	}
	return &user, nil
}
